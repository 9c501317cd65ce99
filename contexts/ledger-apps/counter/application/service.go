package application

import (
	"context"
	"log/slog"
	"strings"

	domainerrors "govledger/contexts/ledger-apps/counter/domain/errors"
	"govledger/contexts/ledger-apps/counter/ports"
	"govledger/internal/shared/ledgerseq"
)

type Service struct {
	Repo      ports.Repository
	Authz     ports.AuthorizationProvider
	Sequencer *ledgerseq.Sequencer
	Logger    *slog.Logger
}

func (s Service) Increment(ctx context.Context, caller string) (uint64, error) {
	return s.apply(ctx, caller, "increment", func(count uint64) (uint64, error) {
		return count + 1, nil
	})
}

func (s Service) Decrement(ctx context.Context, caller string) (uint64, error) {
	return s.apply(ctx, caller, "decrement", func(count uint64) (uint64, error) {
		if count == 0 {
			return 0, domainerrors.ErrCounterUnderflow
		}
		return count - 1, nil
	})
}

func (s Service) GetCount(ctx context.Context) (uint64, error) {
	return s.Repo.GetCount(ctx)
}

func (s Service) apply(ctx context.Context, caller string, action string, step func(uint64) (uint64, error)) (uint64, error) {
	logger := s.logger()
	caller = strings.TrimSpace(caller)

	var value uint64
	err := s.Sequencer.Do(func() error {
		authorized, err := s.Authz.IsAuthorized(ctx, caller)
		if err != nil {
			return err
		}
		if !authorized {
			return domainerrors.ErrUnauthorized
		}
		count, err := s.Repo.GetCount(ctx)
		if err != nil {
			return err
		}
		next, err := step(count)
		if err != nil {
			return err
		}
		if err := s.Repo.SetCount(ctx, next); err != nil {
			return err
		}
		value = next
		return nil
	})
	if err != nil {
		logger.Warn("counter mutation rejected",
			"event", "counter_"+action+"_rejected",
			"module", "ledger-apps/counter",
			"layer", "application",
			"caller", caller,
			"code", domainerrors.Code(err),
			"error", err.Error(),
		)
		return 0, err
	}

	logger.Info("counter mutation completed",
		"event", "counter_"+action+"_completed",
		"module", "ledger-apps/counter",
		"layer", "application",
		"caller", caller,
		"count", value,
	)
	return value, nil
}

func (s Service) logger() *slog.Logger {
	if s.Logger == nil {
		return slog.Default()
	}
	return s.Logger
}
