package bootstrap

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	votingsystem "govledger/contexts/governance/voting-system"
	votingaccess "govledger/contexts/governance/voting-system/adapters/accesscontrol"
	votingmemory "govledger/contexts/governance/voting-system/adapters/memory"
	votingpostgres "govledger/contexts/governance/voting-system/adapters/postgres"
	"govledger/contexts/governance/voting-system/application/workers"
	accesscontrol "govledger/contexts/identity-access/access-control"
	accessmemory "govledger/contexts/identity-access/access-control/adapters/memory"
	accesspostgres "govledger/contexts/identity-access/access-control/adapters/postgres"
	accessredis "govledger/contexts/identity-access/access-control/adapters/redis"
	accessports "govledger/contexts/identity-access/access-control/ports"
	counter "govledger/contexts/ledger-apps/counter"
	counteraccess "govledger/contexts/ledger-apps/counter/adapters/accesscontrol"
	counterpostgres "govledger/contexts/ledger-apps/counter/adapters/postgres"
	messageboard "govledger/contexts/ledger-apps/message-board"
	boardaccess "govledger/contexts/ledger-apps/message-board/adapters/accesscontrol"
	boardpostgres "govledger/contexts/ledger-apps/message-board/adapters/postgres"
	"govledger/internal/platform/cache"
	"govledger/internal/platform/chain"
	"govledger/internal/platform/config"
	"govledger/internal/platform/db"
	"govledger/internal/platform/httpserver"
	"govledger/internal/shared/ledgerseq"
)

// Package bootstrap is the composition root.
// Keep construction/wiring here so module code stays framework-agnostic.

type APIApp struct {
	server   *httpserver.Server
	postgres *db.Postgres
	redis    *redis.Client
	logger   *slog.Logger
}

type WorkerApp struct {
	postgres     *db.Postgres
	finalizer    workers.Finalizer
	pollInterval time.Duration
	logger       *slog.Logger
}

func BuildAPI() (*APIApp, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger := slog.Default().With("service", cfg.ServiceName, "process", "api")
	sequencer := ledgerseq.New()

	if strings.TrimSpace(cfg.PostgresDSN) == "" {
		server := buildInMemoryServer(cfg, sequencer, logger)
		return &APIApp{server: server, logger: logger}, nil
	}

	pg, err := db.Connect(cfg.PostgresDSN)
	if err != nil {
		return nil, err
	}

	var (
		redisClient *redis.Client
		authzCache  accessports.AuthorizationCache
	)
	if strings.TrimSpace(cfg.RedisAddr) != "" {
		redisClient, err = cache.New(context.Background(), cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			_ = pg.Close()
			return nil, err
		}
		authzCache = accessredis.NewDecisionCache(redisClient)
	} else {
		authzCache = accessmemory.NewStore()
	}

	accessRepo := accesspostgres.NewRepository(pg.DB, logger)
	if err := accessRepo.EnsureDeployed(context.Background(), cfg.DeployerPrincipal, time.Now().UTC()); err != nil {
		_ = pg.Close()
		return nil, err
	}

	accessModule := accesscontrol.NewModule(accesscontrol.Dependencies{
		Repo:      accessRepo,
		Cache:     authzCache,
		Clock:     accesspostgres.SystemClock{},
		IDGen:     accesspostgres.UUIDGenerator{},
		Sequencer: sequencer,
		CacheTTL:  cfg.AuthzCacheTTL,
		Logger:    logger,
	})

	register := chain.NewPostgresRegister(pg.DB)
	votingModule := votingsystem.NewModule(votingsystem.Dependencies{
		Repo:      votingpostgres.NewRepository(pg.DB, logger),
		Authz:     votingaccess.Provider{Authorization: accessModule.Authorization},
		Heights:   register,
		Clock:     votingpostgres.SystemClock{},
		Sequencer: sequencer,
		Logger:    logger,
	})
	counterModule := counter.NewModule(counter.Dependencies{
		Repo:      counterpostgres.NewRepository(pg.DB, logger),
		Authz:     counteraccess.Provider{Authorization: accessModule.Authorization},
		Sequencer: sequencer,
		Logger:    logger,
	})
	boardModule := messageboard.NewModule(messageboard.Dependencies{
		Repo:      boardpostgres.NewRepository(pg.DB, logger),
		Authz:     boardaccess.Provider{Authorization: accessModule.Authorization},
		Clock:     boardpostgres.SystemClock{},
		IDGen:     boardpostgres.UUIDGenerator{},
		Sequencer: sequencer,
		Logger:    logger,
	})

	server := httpserver.New(httpserver.Modules{
		Access:  accessModule,
		Voting:  votingModule,
		Counter: counterModule,
		Board:   boardModule,
		Advancer: chain.Advancer{
			Register: register,
			Authz:    accessModule.Authorization,
			Logger:   logger,
		},
	}, logger, normalizeAddr(cfg.HTTPPort), cfg.AuditTrailLimit, cfg.BoardListLimit)

	return &APIApp{
		server:   server,
		postgres: pg,
		redis:    redisClient,
		logger:   logger,
	}, nil
}

// buildInMemoryServer wires every module against in-process stores. Local
// runs and smoke tests use this path; state does not survive a restart.
func buildInMemoryServer(cfg config.Config, sequencer *ledgerseq.Sequencer, logger *slog.Logger) *httpserver.Server {
	accessModule := accesscontrol.NewInMemoryModule(cfg.DeployerPrincipal, sequencer, logger)

	register := chain.NewMemoryRegister()
	votingStore := votingmemory.NewStore()
	votingModule := votingsystem.NewModule(votingsystem.Dependencies{
		Repo:      votingStore,
		Authz:     votingaccess.Provider{Authorization: accessModule.Authorization},
		Heights:   register,
		Clock:     votingStore,
		Sequencer: sequencer,
		Logger:    logger,
	})
	counterModule := counter.NewInMemoryModule(counteraccess.Provider{Authorization: accessModule.Authorization}, sequencer, logger)
	boardModule := messageboard.NewInMemoryModule(boardaccess.Provider{Authorization: accessModule.Authorization}, sequencer, logger)

	return httpserver.New(httpserver.Modules{
		Access:  accessModule,
		Voting:  votingModule,
		Counter: counterModule,
		Board:   boardModule,
		Advancer: chain.Advancer{
			Register: register,
			Authz:    accessModule.Authorization,
			Logger:   logger,
		},
	}, logger, normalizeAddr(cfg.HTTPPort), cfg.AuditTrailLimit, cfg.BoardListLimit)
}

func BuildWorker() (*WorkerApp, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger := slog.Default().With("service", cfg.ServiceName, "process", "worker")
	if strings.TrimSpace(cfg.PostgresDSN) == "" {
		return nil, errors.New("POSTGRES_DSN is required")
	}

	pg, err := db.Connect(cfg.PostgresDSN)
	if err != nil {
		return nil, err
	}

	sequencer := ledgerseq.New()
	accessRepo := accesspostgres.NewRepository(pg.DB, logger)
	accessModule := accesscontrol.NewModule(accesscontrol.Dependencies{
		Repo:      accessRepo,
		Cache:     accessmemory.NewStore(),
		Clock:     accesspostgres.SystemClock{},
		IDGen:     accesspostgres.UUIDGenerator{},
		Sequencer: sequencer,
		CacheTTL:  cfg.AuthzCacheTTL,
		Logger:    logger,
	})

	register := chain.NewPostgresRegister(pg.DB)
	votingModule := votingsystem.NewModule(votingsystem.Dependencies{
		Repo:      votingpostgres.NewRepository(pg.DB, logger),
		Authz:     votingaccess.Provider{Authorization: accessModule.Authorization},
		Heights:   register,
		Clock:     votingpostgres.SystemClock{},
		Sequencer: sequencer,
		Logger:    logger,
	})

	finalizer := votingModule.Finalizer
	finalizer.BatchSize = cfg.FinalizerBatchSize

	return &WorkerApp{
		postgres:     pg,
		finalizer:    finalizer,
		pollInterval: cfg.FinalizerInterval,
		logger:       logger,
	}, nil
}

func (a *APIApp) Run(_ context.Context) error {
	if a.logger != nil {
		a.logger.Info("api app started",
			"event", "bootstrap_api_started",
			"module", "internal/app/bootstrap",
			"layer", "platform",
		)
	}
	return a.server.Start()
}

func (a *APIApp) Close() error {
	if a.redis != nil {
		_ = a.redis.Close()
	}
	if a.postgres != nil {
		return a.postgres.Close()
	}
	return nil
}

func (w *WorkerApp) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	w.logger.Info("worker app started",
		"event", "bootstrap_worker_started",
		"module", "internal/app/bootstrap",
		"layer", "platform",
		"poll_interval", w.pollInterval.String(),
	)

	for {
		if err := w.finalizer.RunOnce(ctx); err != nil {
			return err
		}
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

func (w *WorkerApp) Close() error {
	if w.postgres != nil {
		return w.postgres.Close()
	}
	return nil
}

func normalizeAddr(port string) string {
	value := strings.TrimSpace(port)
	if value == "" {
		return ":8080"
	}
	if strings.HasPrefix(value, ":") {
		return value
	}
	return ":" + value
}
