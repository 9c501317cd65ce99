package redisadapter

import (
	"context"
	"testing"
	"time"

	"govledger/contexts/identity-access/access-control/ports"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newCache(t *testing.T) (*DecisionCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return NewDecisionCache(client), mr
}

func TestDecisionRoundTrip(t *testing.T) {
	cache, _ := newCache(t)
	ctx := context.Background()

	key := ports.AuthorizedDecisionKey("principal.alice")
	if _, found, err := cache.GetDecision(ctx, key); err != nil || found {
		t.Fatalf("expected miss on empty cache, found=%v err=%v", found, err)
	}

	if err := cache.PutDecision(ctx, key, true, time.Minute); err != nil {
		t.Fatalf("put failed: %v", err)
	}
	allowed, found, err := cache.GetDecision(ctx, key)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if !found || !allowed {
		t.Fatalf("expected cached allow, found=%v allowed=%v", found, allowed)
	}

	if err := cache.PutDecision(ctx, key, false, time.Minute); err != nil {
		t.Fatalf("put failed: %v", err)
	}
	allowed, found, err = cache.GetDecision(ctx, key)
	if err != nil || !found || allowed {
		t.Fatalf("expected cached deny, found=%v allowed=%v err=%v", found, allowed, err)
	}
}

func TestDecisionExpiry(t *testing.T) {
	cache, mr := newCache(t)
	ctx := context.Background()

	key := ports.AdminDecisionKey("principal.alice")
	if err := cache.PutDecision(ctx, key, true, time.Second); err != nil {
		t.Fatalf("put failed: %v", err)
	}
	mr.FastForward(2 * time.Second)

	if _, found, err := cache.GetDecision(ctx, key); err != nil || found {
		t.Fatalf("expected miss after ttl, found=%v err=%v", found, err)
	}
}

func TestInvalidateClearsAllDecisionKeys(t *testing.T) {
	cache, _ := newCache(t)
	ctx := context.Background()

	for _, key := range ports.DecisionKeys("principal.alice") {
		if err := cache.PutDecision(ctx, key, true, time.Minute); err != nil {
			t.Fatalf("put failed: %v", err)
		}
	}
	if err := cache.Invalidate(ctx, "principal.alice"); err != nil {
		t.Fatalf("invalidate failed: %v", err)
	}
	for _, key := range ports.DecisionKeys("principal.alice") {
		if _, found, err := cache.GetDecision(ctx, key); err != nil || found {
			t.Fatalf("expected %s cleared, found=%v err=%v", key, found, err)
		}
	}
}
