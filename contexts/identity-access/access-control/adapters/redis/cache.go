package redisadapter

import (
	"context"
	"errors"
	"time"

	"govledger/contexts/identity-access/access-control/ports"

	"github.com/redis/go-redis/v9"
)

const (
	decisionAllowed = "1"
	decisionDenied  = "0"
)

// DecisionCache stores authorization check outcomes keyed by principal so
// hot-path checks can skip the repository between mutations.
type DecisionCache struct {
	client *redis.Client
}

func NewDecisionCache(client *redis.Client) *DecisionCache {
	return &DecisionCache{client: client}
}

func (c *DecisionCache) GetDecision(ctx context.Context, key string) (bool, bool, error) {
	val, err := c.client.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, false, nil
		}
		return false, false, err
	}
	return val == decisionAllowed, true, nil
}

func (c *DecisionCache) PutDecision(ctx context.Context, key string, allowed bool, ttl time.Duration) error {
	val := decisionDenied
	if allowed {
		val = decisionAllowed
	}
	return c.client.Set(ctx, key, val, ttl).Err()
}

func (c *DecisionCache) Invalidate(ctx context.Context, principal string) error {
	keys := ports.DecisionKeys(principal)
	return c.client.Del(ctx, keys...).Err()
}

var _ ports.AuthorizationCache = (*DecisionCache)(nil)
