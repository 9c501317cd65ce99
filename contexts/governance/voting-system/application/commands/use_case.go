package commands

import (
	"context"
	"log/slog"
	"time"

	"govledger/contexts/governance/voting-system/ports"
	"govledger/internal/shared/ledgerseq"
)

// ProposalUseCase orchestrates every proposal mutation. All methods take an
// explicit caller principal and run their whole check-then-write span under
// the instance sequencer, so a failed call never consumes a proposal id and
// tallies only ever move with a committed vote row.
type ProposalUseCase struct {
	Repo      ports.ProposalRepository
	Authz     ports.AuthorizationProvider
	Heights   ports.BlockClock
	Clock     ports.Clock
	Sequencer *ledgerseq.Sequencer
	Logger    *slog.Logger
}

func (uc ProposalUseCase) now() time.Time {
	if uc.Clock != nil {
		return uc.Clock.Now().UTC()
	}
	return time.Now().UTC()
}

func (uc ProposalUseCase) currentHeight(ctx context.Context) (uint64, error) {
	return uc.Heights.CurrentHeight(ctx)
}
