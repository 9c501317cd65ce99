package queries

import (
	"context"
	"log/slog"
	"strings"
	"time"

	application "govledger/contexts/identity-access/access-control/application"
	"govledger/contexts/identity-access/access-control/domain/entities"
	"govledger/contexts/identity-access/access-control/ports"
)

// AuthorizationUseCase answers the read-only authorization queries. Reads are
// pure functions of the last committed write and never fail on domain grounds;
// the boolean decisions are fronted by an optional TTL cache.
type AuthorizationUseCase struct {
	Repo     ports.Repository
	Cache    ports.AuthorizationCache
	CacheTTL time.Duration
	Logger   *slog.Logger
}

func (uc AuthorizationUseCase) GetContractOwner(ctx context.Context) (string, error) {
	return uc.Repo.GetOwner(ctx)
}

// HasAdminRole reports admin-set membership.
func (uc AuthorizationUseCase) HasAdminRole(ctx context.Context, principal string) (bool, error) {
	principal = strings.TrimSpace(principal)
	key := ports.AdminDecisionKey(principal)
	if decision, hit := uc.cached(ctx, key); hit {
		return decision, nil
	}
	isAdmin, err := uc.Repo.IsAdmin(ctx, principal)
	if err != nil {
		return false, err
	}
	uc.store(ctx, key, isAdmin)
	return isAdmin, nil
}

// HasRole reports whether principal holds any explicit role entry.
func (uc AuthorizationUseCase) HasRole(ctx context.Context, principal string) (bool, error) {
	_, found, err := uc.Repo.GetRole(ctx, strings.TrimSpace(principal))
	if err != nil {
		return false, err
	}
	return found, nil
}

// GetUserRole returns the explicit role tag, with found=false for principals
// outside the role map.
func (uc AuthorizationUseCase) GetUserRole(ctx context.Context, principal string) (entities.Role, bool, error) {
	return uc.Repo.GetRole(ctx, strings.TrimSpace(principal))
}

// IsAuthorized is the shared gate consulted by every collaborating program:
// admin-set membership or any role entry authorizes the principal.
func (uc AuthorizationUseCase) IsAuthorized(ctx context.Context, principal string) (bool, error) {
	principal = strings.TrimSpace(principal)
	key := ports.AuthorizedDecisionKey(principal)
	if decision, hit := uc.cached(ctx, key); hit {
		return decision, nil
	}

	isAdmin, err := uc.Repo.IsAdmin(ctx, principal)
	if err != nil {
		return false, err
	}
	authorized := isAdmin
	if !authorized {
		_, found, err := uc.Repo.GetRole(ctx, principal)
		if err != nil {
			return false, err
		}
		authorized = found
	}
	uc.store(ctx, key, authorized)
	return authorized, nil
}

func (uc AuthorizationUseCase) ListAdmins(ctx context.Context) ([]string, error) {
	return uc.Repo.ListAdmins(ctx)
}

func (uc AuthorizationUseCase) ListAuditTrail(ctx context.Context, limit int) ([]entities.AuditEntry, error) {
	return uc.Repo.ListAuditTrail(ctx, limit)
}

// cached returns (decision, hit). Cache failures degrade to repository reads.
func (uc AuthorizationUseCase) cached(ctx context.Context, key string) (bool, bool) {
	if uc.Cache == nil {
		return false, false
	}
	decision, found, err := uc.Cache.GetDecision(ctx, key)
	if err != nil {
		application.ResolveLogger(uc.Logger).Warn("authorization cache read failed",
			"event", "access_cache_read_failed",
			"module", "identity-access/access-control",
			"layer", "application",
			"key", key,
			"error", err.Error(),
		)
		return false, false
	}
	return decision, found
}

func (uc AuthorizationUseCase) store(ctx context.Context, key string, decision bool) {
	if uc.Cache == nil {
		return
	}
	ttl := uc.CacheTTL
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	if err := uc.Cache.PutDecision(ctx, key, decision, ttl); err != nil {
		application.ResolveLogger(uc.Logger).Warn("authorization cache write failed",
			"event", "access_cache_write_failed",
			"module", "identity-access/access-control",
			"layer", "application",
			"key", key,
			"error", err.Error(),
		)
	}
}
