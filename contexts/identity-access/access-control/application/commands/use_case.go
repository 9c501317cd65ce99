package commands

import (
	"context"
	"log/slog"
	"time"

	application "govledger/contexts/identity-access/access-control/application"
	"govledger/contexts/identity-access/access-control/ports"
	"govledger/internal/shared/ledgerseq"
)

// AccessUseCase orchestrates every authorization-root mutation. All methods
// take an explicit caller principal and run their whole check-then-write span
// under the instance sequencer, so a mutation either commits in full against
// the latest committed state or leaves no trace.
type AccessUseCase struct {
	Repo      ports.Repository
	Cache     ports.AuthorizationCache
	Clock     ports.Clock
	IDGen     ports.IDGenerator
	Sequencer *ledgerseq.Sequencer
	Logger    *slog.Logger
}

func (uc AccessUseCase) now() time.Time {
	if uc.Clock != nil {
		return uc.Clock.Now().UTC()
	}
	return time.Now().UTC()
}

// invalidate drops cached authorization decisions for principal. Cache is
// optional wiring; a miss-only deployment passes nil.
func (uc AccessUseCase) invalidate(ctx context.Context, principal string) {
	if uc.Cache == nil {
		return
	}
	if err := uc.Cache.Invalidate(ctx, principal); err != nil {
		application.ResolveLogger(uc.Logger).Warn("authorization cache invalidate failed",
			"event", "access_cache_invalidation_failed",
			"module", "identity-access/access-control",
			"layer", "application",
			"principal", principal,
			"error", err.Error(),
		)
	}
}

func (uc AccessUseCase) newAuditID(ctx context.Context) (string, error) {
	return uc.IDGen.NewID(ctx)
}
