package commands

import (
	"context"
	"strings"

	application "govledger/contexts/governance/voting-system/application"
	"govledger/contexts/governance/voting-system/domain/entities"
	domainerrors "govledger/contexts/governance/voting-system/domain/errors"
	"govledger/contexts/governance/voting-system/ports"
)

type CastVoteCommand struct {
	Caller     string
	ProposalID uint64
	Choice     entities.VoteChoice
}

type CastVoteResult struct {
	YesVotes uint64
	NoVotes  uint64
}

// CastVote records one write-once ballot and bumps the matching tally in the
// same committed step. Tallies stay a pure function of the vote rows.
func (uc ProposalUseCase) CastVote(ctx context.Context, cmd CastVoteCommand) (CastVoteResult, error) {
	logger := application.ResolveLogger(uc.Logger)
	caller := strings.TrimSpace(cmd.Caller)

	var result CastVoteResult
	err := uc.Sequencer.Do(func() error {
		proposal, found, err := uc.Repo.GetProposal(ctx, cmd.ProposalID)
		if err != nil {
			return err
		}
		if !found {
			return domainerrors.ErrProposalNotFound
		}
		authorized, err := uc.Authz.IsAuthorized(ctx, caller)
		if err != nil {
			return err
		}
		if !authorized {
			return domainerrors.ErrUnauthorized
		}
		height, err := uc.currentHeight(ctx)
		if err != nil {
			return err
		}
		if proposal.Status != entities.ProposalStatusActive || !proposal.WithinWindow(height) {
			return domainerrors.ErrProposalNotActive
		}
		_, voted, err := uc.Repo.GetVote(ctx, proposal.ID, caller)
		if err != nil {
			return err
		}
		if voted {
			return domainerrors.ErrAlreadyVoted
		}
		if !entities.ValidChoice(cmd.Choice) {
			return domainerrors.ErrInvalidVote
		}

		if err := uc.Repo.RecordVote(ctx, ports.RecordVoteInput{
			ProposalID: proposal.ID,
			Voter:      caller,
			Choice:     cmd.Choice,
			Height:     height,
			At:         uc.now(),
		}); err != nil {
			return err
		}
		updated, _, err := uc.Repo.GetProposal(ctx, proposal.ID)
		if err != nil {
			return err
		}
		result = CastVoteResult{
			YesVotes: updated.YesVotes,
			NoVotes:  updated.NoVotes,
		}
		return nil
	})
	if err != nil {
		logger.Warn("cast vote rejected",
			"event", "voting_cast_vote_rejected",
			"module", "governance/voting-system",
			"layer", "application",
			"caller", caller,
			"proposal_id", cmd.ProposalID,
			"code", domainerrors.Code(err),
			"error", err.Error(),
		)
		return CastVoteResult{}, err
	}

	logger.Info("cast vote completed",
		"event", "voting_cast_vote_completed",
		"module", "governance/voting-system",
		"layer", "application",
		"caller", caller,
		"proposal_id", cmd.ProposalID,
		"choice", string(cmd.Choice),
	)
	return result, nil
}
