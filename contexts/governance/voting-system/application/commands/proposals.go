package commands

import (
	"context"
	"strings"

	application "govledger/contexts/governance/voting-system/application"
	"govledger/contexts/governance/voting-system/domain/entities"
	domainerrors "govledger/contexts/governance/voting-system/domain/errors"
	"govledger/contexts/governance/voting-system/ports"
)

type CreateProposalCommand struct {
	Caller      string
	Title       string
	Description string
	Duration    uint64
}

type CreateProposalResult struct {
	ProposalID  uint64
	StartHeight uint64
	EndHeight   uint64
}

type FinalizeProposalCommand struct {
	Caller     string
	ProposalID uint64
}

type FinalizeProposalResult struct {
	Status entities.ProposalStatus
}

type CancelProposalCommand struct {
	Caller     string
	ProposalID uint64
}

// CreateProposal opens a new proposal at the current height. The id counter
// only advances after every precondition holds.
func (uc ProposalUseCase) CreateProposal(ctx context.Context, cmd CreateProposalCommand) (CreateProposalResult, error) {
	logger := application.ResolveLogger(uc.Logger)
	caller := strings.TrimSpace(cmd.Caller)
	title := strings.TrimSpace(cmd.Title)
	description := strings.TrimSpace(cmd.Description)
	logger.Info("create proposal started",
		"event", "voting_create_proposal_started",
		"module", "governance/voting-system",
		"layer", "application",
		"caller", caller,
		"duration", cmd.Duration,
	)

	var result CreateProposalResult
	err := uc.Sequencer.Do(func() error {
		authorized, err := uc.Authz.IsAuthorized(ctx, caller)
		if err != nil {
			return err
		}
		if !authorized {
			return domainerrors.ErrUnauthorized
		}
		if title == "" || len(title) > entities.MaxTitleLength {
			return domainerrors.ErrInvalidVote
		}
		if description == "" || len(description) > entities.MaxDescriptionLength {
			return domainerrors.ErrInvalidVote
		}
		config, err := uc.Repo.GetConfig(ctx)
		if err != nil {
			return err
		}
		if cmd.Duration < config.MinDuration || cmd.Duration > config.MaxDuration {
			return domainerrors.ErrInvalidDuration
		}
		height, err := uc.currentHeight(ctx)
		if err != nil {
			return err
		}

		id, err := uc.Repo.CreateProposal(ctx, ports.CreateProposalInput{
			Title:       title,
			Description: description,
			Proposer:    caller,
			StartHeight: height,
			EndHeight:   height + cmd.Duration,
			At:          uc.now(),
		})
		if err != nil {
			return err
		}
		result = CreateProposalResult{
			ProposalID:  id,
			StartHeight: height,
			EndHeight:   height + cmd.Duration,
		}
		return nil
	})
	if err != nil {
		logger.Warn("create proposal rejected",
			"event", "voting_create_proposal_rejected",
			"module", "governance/voting-system",
			"layer", "application",
			"caller", caller,
			"code", domainerrors.Code(err),
			"error", err.Error(),
		)
		return CreateProposalResult{}, err
	}

	logger.Info("create proposal completed",
		"event", "voting_create_proposal_completed",
		"module", "governance/voting-system",
		"layer", "application",
		"caller", caller,
		"proposal_id", result.ProposalID,
		"end_height", result.EndHeight,
	)
	return result, nil
}

// FinalizeProposal resolves an elapsed proposal under strict majority. Any
// principal may call it; the outcome is a pure function of committed votes,
// so an arbitrary caller cannot bias it.
func (uc ProposalUseCase) FinalizeProposal(ctx context.Context, cmd FinalizeProposalCommand) (FinalizeProposalResult, error) {
	logger := application.ResolveLogger(uc.Logger)
	caller := strings.TrimSpace(cmd.Caller)

	var result FinalizeProposalResult
	err := uc.Sequencer.Do(func() error {
		proposal, found, err := uc.Repo.GetProposal(ctx, cmd.ProposalID)
		if err != nil {
			return err
		}
		if !found {
			return domainerrors.ErrProposalNotFound
		}
		height, err := uc.currentHeight(ctx)
		if err != nil {
			return err
		}
		if !proposal.Elapsed(height) {
			return domainerrors.ErrProposalStillActive
		}
		if proposal.Status != entities.ProposalStatusActive {
			return domainerrors.ErrProposalNotActive
		}

		status := proposal.Outcome()
		if err := uc.Repo.SetProposalStatus(ctx, ports.SetStatusInput{
			ProposalID: proposal.ID,
			Status:     status,
			At:         uc.now(),
		}); err != nil {
			return err
		}
		result = FinalizeProposalResult{Status: status}
		return nil
	})
	if err != nil {
		logger.Warn("finalize proposal rejected",
			"event", "voting_finalize_proposal_rejected",
			"module", "governance/voting-system",
			"layer", "application",
			"caller", caller,
			"proposal_id", cmd.ProposalID,
			"code", domainerrors.Code(err),
			"error", err.Error(),
		)
		return FinalizeProposalResult{}, err
	}

	logger.Info("finalize proposal completed",
		"event", "voting_finalize_proposal_completed",
		"module", "governance/voting-system",
		"layer", "application",
		"caller", caller,
		"proposal_id", cmd.ProposalID,
		"status", string(result.Status),
	)
	return result, nil
}

// CancelProposal is the admin emergency override. It forces an active
// proposal to failed regardless of the window or the tallies.
func (uc ProposalUseCase) CancelProposal(ctx context.Context, cmd CancelProposalCommand) error {
	logger := application.ResolveLogger(uc.Logger)
	caller := strings.TrimSpace(cmd.Caller)

	err := uc.Sequencer.Do(func() error {
		admin, err := uc.Authz.HasAdminRole(ctx, caller)
		if err != nil {
			return err
		}
		if !admin {
			return domainerrors.ErrUnauthorized
		}
		proposal, found, err := uc.Repo.GetProposal(ctx, cmd.ProposalID)
		if err != nil {
			return err
		}
		if !found {
			return domainerrors.ErrProposalNotFound
		}
		if proposal.Status != entities.ProposalStatusActive {
			return domainerrors.ErrProposalNotActive
		}

		return uc.Repo.SetProposalStatus(ctx, ports.SetStatusInput{
			ProposalID: proposal.ID,
			Status:     entities.ProposalStatusFailed,
			At:         uc.now(),
		})
	})
	if err != nil {
		logger.Warn("cancel proposal rejected",
			"event", "voting_cancel_proposal_rejected",
			"module", "governance/voting-system",
			"layer", "application",
			"caller", caller,
			"proposal_id", cmd.ProposalID,
			"code", domainerrors.Code(err),
			"error", err.Error(),
		)
		return err
	}

	logger.Info("cancel proposal completed",
		"event", "voting_cancel_proposal_completed",
		"module", "governance/voting-system",
		"layer", "application",
		"caller", caller,
		"proposal_id", cmd.ProposalID,
	)
	return nil
}
