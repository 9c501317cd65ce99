package ports

import "context"

// Repository holds the single shared counter value. Mutations run under the
// instance sequencer, so read-then-set is race free.
type Repository interface {
	GetCount(ctx context.Context) (uint64, error)
	SetCount(ctx context.Context, value uint64) error
}

type AuthorizationProvider interface {
	IsAuthorized(ctx context.Context, principal string) (bool, error)
}
