package workers

import (
	"context"
	"errors"
	"log/slog"

	application "govledger/contexts/governance/voting-system/application"
	"govledger/contexts/governance/voting-system/application/commands"
	domainerrors "govledger/contexts/governance/voting-system/domain/errors"
	"govledger/contexts/governance/voting-system/ports"
)

// FinalizerCaller attributes sweep-triggered finalizations in logs.
// Finalization is permissionless, so the principal needs no privileges.
const FinalizerCaller = "principal.finalizer"

// Finalizer resolves proposals whose voting window elapsed. It goes through
// the same use case as an external caller, so a concurrent manual
// finalization is benign.
type Finalizer struct {
	Repo      ports.ProposalRepository
	Heights   ports.BlockClock
	Proposals commands.ProposalUseCase
	BatchSize int
	Logger    *slog.Logger
}

// RunOnce finalizes a bounded batch of elapsed active proposals. Proposals
// that lost the race to another finalizer are skipped, any other failure
// stops the cycle for the retry loop.
func (f Finalizer) RunOnce(ctx context.Context) error {
	logger := application.ResolveLogger(f.Logger)
	limit := f.BatchSize
	if limit <= 0 {
		limit = 100
	}

	height, err := f.Heights.CurrentHeight(ctx)
	if err != nil {
		logger.Error("finalizer height read failed",
			"event", "voting_finalizer_height_failed",
			"module", "governance/voting-system",
			"layer", "worker",
			"error", err.Error(),
		)
		return err
	}

	elapsed, err := f.Repo.ListElapsedActive(ctx, height, limit)
	if err != nil {
		logger.Error("finalizer list failed",
			"event", "voting_finalizer_list_failed",
			"module", "governance/voting-system",
			"layer", "worker",
			"error", err.Error(),
		)
		return err
	}
	if len(elapsed) == 0 {
		logger.Debug("finalizer found no elapsed proposals",
			"event", "voting_finalizer_noop",
			"module", "governance/voting-system",
			"layer", "worker",
			"height", height,
		)
		return nil
	}

	for _, proposal := range elapsed {
		result, err := f.Proposals.FinalizeProposal(ctx, commands.FinalizeProposalCommand{
			Caller:     FinalizerCaller,
			ProposalID: proposal.ID,
		})
		if err != nil {
			if errors.Is(err, domainerrors.ErrProposalNotActive) {
				continue
			}
			logger.Error("finalizer sweep failed",
				"event", "voting_finalizer_sweep_failed",
				"module", "governance/voting-system",
				"layer", "worker",
				"proposal_id", proposal.ID,
				"error", err.Error(),
			)
			return err
		}
		logger.Info("finalizer resolved proposal",
			"event", "voting_finalizer_resolved",
			"module", "governance/voting-system",
			"layer", "worker",
			"proposal_id", proposal.ID,
			"status", string(result.Status),
			"height", height,
		)
	}
	return nil
}
