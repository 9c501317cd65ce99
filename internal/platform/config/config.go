package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config is centralized process configuration.
// Keep infra values here and pass typed config into builders.
type Config struct {
	ServiceName string `envconfig:"SERVICE_NAME" default:"govledger"`
	HTTPPort    string `envconfig:"HTTP_PORT" default:"8080"`

	// DeployerPrincipal is seeded as owner and first admin on an empty
	// instance.
	DeployerPrincipal string `envconfig:"DEPLOYER_PRINCIPAL" default:"principal.deployer"`

	PostgresDSN string `envconfig:"POSTGRES_DSN"`

	RedisAddr     string `envconfig:"REDIS_ADDR"`
	RedisPassword string `envconfig:"REDIS_PASSWORD"`
	RedisDB       int    `envconfig:"REDIS_DB" default:"0"`

	AuthzCacheTTL time.Duration `envconfig:"AUTHZ_CACHE_TTL" default:"30s"`

	FinalizerInterval  time.Duration `envconfig:"FINALIZER_INTERVAL" default:"15s"`
	FinalizerBatchSize int           `envconfig:"FINALIZER_BATCH_SIZE" default:"100"`

	AuditTrailLimit int `envconfig:"AUDIT_TRAIL_LIMIT" default:"100"`
	BoardListLimit  int `envconfig:"BOARD_LIST_LIMIT" default:"100"`
}

func Load() (Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}
