package ports

import (
	"context"
	"time"

	"govledger/contexts/identity-access/access-control/domain/entities"
)

// AddAdminInput carries one admin promotion plus its audit row. Repositories
// apply the whole input atomically.
type AddAdminInput struct {
	AuditID   string
	Target    string
	GrantedBy string
	At        time.Time
}

type RemoveAdminInput struct {
	AuditID   string
	Target    string
	RemovedBy string
	At        time.Time
}

type SetUserRoleInput struct {
	AuditID   string
	Target    string
	GrantedBy string
	At        time.Time
}

// ClearRoleInput serves both revocation by an admin and self-renouncement;
// Action distinguishes them in the audit trail.
type ClearRoleInput struct {
	AuditID string
	Target  string
	Actor   string
	Action  string
	At      time.Time
}

// ReplaceOwnerInput swaps the owner slot and, when PromoteToAdmin is set,
// promotes the new owner to admin in the same atomic step.
type ReplaceOwnerInput struct {
	AuditID        string
	NewOwner       string
	PreviousOwner  string
	PromoteToAdmin bool
	At             time.Time
}

type Repository interface {
	// EnsureDeployed seeds deployer as owner plus admin on first use and is a
	// no-op once an owner exists.
	EnsureDeployed(ctx context.Context, deployer string, at time.Time) error

	GetOwner(ctx context.Context) (string, error)
	IsAdmin(ctx context.Context, principal string) (bool, error)
	ListAdmins(ctx context.Context) ([]string, error)
	GetRole(ctx context.Context, principal string) (entities.Role, bool, error)

	AddAdmin(ctx context.Context, input AddAdminInput) error
	RemoveAdmin(ctx context.Context, input RemoveAdminInput) error
	SetUserRole(ctx context.Context, input SetUserRoleInput) error
	ClearRole(ctx context.Context, input ClearRoleInput) error
	ReplaceOwner(ctx context.Context, input ReplaceOwnerInput) error

	ListAuditTrail(ctx context.Context, limit int) ([]entities.AuditEntry, error)
}

// AuthorizationCache fronts the hot boolean queries. Decisions are keyed by
// query kind plus principal; every role mutation invalidates the principal.
type AuthorizationCache interface {
	GetDecision(ctx context.Context, key string) (bool, bool, error)
	PutDecision(ctx context.Context, key string, allowed bool, ttl time.Duration) error
	Invalidate(ctx context.Context, principal string) error
}

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}
