// Package chain holds the operator-advanced block height register. Every
// time-gated operation in the system reads its height from here; nothing in
// the process derives height from wall-clock time.
package chain

import (
	"context"
	"errors"
	"log/slog"
	"strings"
)

var (
	// ErrHeightRegression rejects advances at or below the current height.
	ErrHeightRegression = errors.New("height must be strictly greater than the current height")
	// ErrUnauthorized rejects advances from non-admin principals.
	ErrUnauthorized = errors.New("caller is not an admin")
)

// Register is the durable height slot.
type Register interface {
	CurrentHeight(ctx context.Context) (uint64, error)
	SetHeight(ctx context.Context, height uint64) error
}

// AdminChecker is the slice of access-control this package needs.
type AdminChecker interface {
	HasAdminRole(ctx context.Context, principal string) (bool, error)
}

// Advancer applies admin-gated, strictly monotonic height advances.
type Advancer struct {
	Register Register
	Authz    AdminChecker
	Logger   *slog.Logger
}

func (a Advancer) Advance(ctx context.Context, caller string, height uint64) (uint64, error) {
	caller = strings.TrimSpace(caller)
	admin, err := a.Authz.HasAdminRole(ctx, caller)
	if err != nil {
		return 0, err
	}
	if !admin {
		return 0, ErrUnauthorized
	}
	current, err := a.Register.CurrentHeight(ctx)
	if err != nil {
		return 0, err
	}
	if height <= current {
		return 0, ErrHeightRegression
	}
	if err := a.Register.SetHeight(ctx, height); err != nil {
		return 0, err
	}
	if a.Logger != nil {
		a.Logger.Info("chain height advanced",
			"event", "chain_height_advanced",
			"module", "platform/chain",
			"layer", "platform",
			"caller", caller,
			"height", height,
		)
	}
	return height, nil
}
