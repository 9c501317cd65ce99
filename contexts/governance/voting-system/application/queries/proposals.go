package queries

import (
	"context"

	"govledger/contexts/governance/voting-system/domain/entities"
	domainerrors "govledger/contexts/governance/voting-system/domain/errors"
	"govledger/contexts/governance/voting-system/ports"
)

// ProposalQueryUseCase serves the read side. Queries are pure reads of the
// last committed state and carry no caller attribution.
type ProposalQueryUseCase struct {
	Repo ports.ProposalRepository
}

// ProposalResult is the tally and status snapshot of one proposal.
type ProposalResult struct {
	ProposalID uint64
	YesVotes   uint64
	NoVotes    uint64
	Status     entities.ProposalStatus
}

func (uc ProposalQueryUseCase) GetProposal(ctx context.Context, id uint64) (entities.Proposal, error) {
	proposal, found, err := uc.Repo.GetProposal(ctx, id)
	if err != nil {
		return entities.Proposal{}, err
	}
	if !found {
		return entities.Proposal{}, domainerrors.ErrProposalNotFound
	}
	return proposal, nil
}

func (uc ProposalQueryUseCase) GetProposalCount(ctx context.Context) (uint64, error) {
	return uc.Repo.CountProposals(ctx)
}

func (uc ProposalQueryUseCase) ListProposals(ctx context.Context) ([]entities.Proposal, error) {
	return uc.Repo.ListProposals(ctx)
}

func (uc ProposalQueryUseCase) GetVote(ctx context.Context, proposalID uint64, voter string) (entities.Vote, bool, error) {
	if _, err := uc.GetProposal(ctx, proposalID); err != nil {
		return entities.Vote{}, false, err
	}
	return uc.Repo.GetVote(ctx, proposalID, voter)
}

func (uc ProposalQueryUseCase) GetVotingConfig(ctx context.Context) (entities.VotingConfig, error) {
	return uc.Repo.GetConfig(ctx)
}

func (uc ProposalQueryUseCase) GetProposalResult(ctx context.Context, id uint64) (ProposalResult, error) {
	proposal, err := uc.GetProposal(ctx, id)
	if err != nil {
		return ProposalResult{}, err
	}
	return ProposalResult{
		ProposalID: proposal.ID,
		YesVotes:   proposal.YesVotes,
		NoVotes:    proposal.NoVotes,
		Status:     proposal.Status,
	}, nil
}
