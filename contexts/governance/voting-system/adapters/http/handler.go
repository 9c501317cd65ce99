package httpadapter

import (
	"context"
	"log/slog"

	"govledger/contexts/governance/voting-system/application/commands"
	"govledger/contexts/governance/voting-system/application/queries"
	"govledger/contexts/governance/voting-system/domain/entities"
	httptransport "govledger/contexts/governance/voting-system/transport/http"
)

type Handler struct {
	Proposals commands.ProposalUseCase
	Queries   queries.ProposalQueryUseCase
	Logger    *slog.Logger
}

func (h Handler) CreateProposalHandler(ctx context.Context, caller string, req httptransport.CreateProposalRequest) (httptransport.CreateProposalResponse, error) {
	result, err := h.Proposals.CreateProposal(ctx, commands.CreateProposalCommand{
		Caller:      caller,
		Title:       req.Title,
		Description: req.Description,
		Duration:    req.Duration,
	})
	if err != nil {
		return httptransport.CreateProposalResponse{}, err
	}
	return httptransport.CreateProposalResponse{
		ProposalID:  result.ProposalID,
		StartHeight: result.StartHeight,
		EndHeight:   result.EndHeight,
	}, nil
}

func (h Handler) CastVoteHandler(ctx context.Context, caller string, proposalID uint64, req httptransport.CastVoteRequest) (httptransport.CastVoteResponse, error) {
	result, err := h.Proposals.CastVote(ctx, commands.CastVoteCommand{
		Caller:     caller,
		ProposalID: proposalID,
		Choice:     entities.VoteChoice(req.Choice),
	})
	if err != nil {
		return httptransport.CastVoteResponse{}, err
	}
	return httptransport.CastVoteResponse{
		ProposalID: proposalID,
		YesVotes:   result.YesVotes,
		NoVotes:    result.NoVotes,
	}, nil
}

func (h Handler) FinalizeProposalHandler(ctx context.Context, caller string, proposalID uint64) (httptransport.FinalizeProposalResponse, error) {
	result, err := h.Proposals.FinalizeProposal(ctx, commands.FinalizeProposalCommand{
		Caller:     caller,
		ProposalID: proposalID,
	})
	if err != nil {
		return httptransport.FinalizeProposalResponse{}, err
	}
	return httptransport.FinalizeProposalResponse{
		ProposalID: proposalID,
		Status:     string(result.Status),
	}, nil
}

func (h Handler) CancelProposalHandler(ctx context.Context, caller string, proposalID uint64) error {
	return h.Proposals.CancelProposal(ctx, commands.CancelProposalCommand{
		Caller:     caller,
		ProposalID: proposalID,
	})
}

func (h Handler) UpdateVotingConfigHandler(ctx context.Context, caller string, req httptransport.UpdateVotingConfigRequest) error {
	return h.Proposals.UpdateVotingConfig(ctx, commands.UpdateVotingConfigCommand{
		Caller:      caller,
		MinDuration: req.MinDuration,
		MaxDuration: req.MaxDuration,
	})
}

func (h Handler) ProposalHandler(ctx context.Context, proposalID uint64) (httptransport.ProposalResponse, error) {
	proposal, err := h.Queries.GetProposal(ctx, proposalID)
	if err != nil {
		return httptransport.ProposalResponse{}, err
	}
	return mapProposal(proposal), nil
}

func (h Handler) ProposalListHandler(ctx context.Context) (httptransport.ProposalListResponse, error) {
	proposals, err := h.Queries.ListProposals(ctx)
	if err != nil {
		return httptransport.ProposalListResponse{}, err
	}
	items := make([]httptransport.ProposalResponse, 0, len(proposals))
	for _, proposal := range proposals {
		items = append(items, mapProposal(proposal))
	}
	return httptransport.ProposalListResponse{Items: items}, nil
}

func (h Handler) ProposalCountHandler(ctx context.Context) (httptransport.ProposalCountResponse, error) {
	count, err := h.Queries.GetProposalCount(ctx)
	if err != nil {
		return httptransport.ProposalCountResponse{}, err
	}
	return httptransport.ProposalCountResponse{Count: count}, nil
}

func (h Handler) ProposalResultHandler(ctx context.Context, proposalID uint64) (httptransport.ProposalResultResponse, error) {
	result, err := h.Queries.GetProposalResult(ctx, proposalID)
	if err != nil {
		return httptransport.ProposalResultResponse{}, err
	}
	return httptransport.ProposalResultResponse{
		ProposalID: result.ProposalID,
		YesVotes:   result.YesVotes,
		NoVotes:    result.NoVotes,
		Status:     string(result.Status),
	}, nil
}

func (h Handler) VoteHandler(ctx context.Context, proposalID uint64, voter string) (httptransport.VoteResponse, error) {
	vote, found, err := h.Queries.GetVote(ctx, proposalID, voter)
	if err != nil {
		return httptransport.VoteResponse{}, err
	}
	if !found {
		return httptransport.VoteResponse{
			ProposalID: proposalID,
			Voter:      voter,
			Found:      false,
		}, nil
	}
	return httptransport.VoteResponse{
		ProposalID: vote.ProposalID,
		Voter:      vote.Voter,
		Choice:     string(vote.Choice),
		Height:     vote.Height,
		Found:      true,
	}, nil
}

func (h Handler) VotingConfigHandler(ctx context.Context) (httptransport.VotingConfigResponse, error) {
	config, err := h.Queries.GetVotingConfig(ctx)
	if err != nil {
		return httptransport.VotingConfigResponse{}, err
	}
	return httptransport.VotingConfigResponse{
		MinDuration: config.MinDuration,
		MaxDuration: config.MaxDuration,
	}, nil
}

func mapProposal(proposal entities.Proposal) httptransport.ProposalResponse {
	return httptransport.ProposalResponse{
		ProposalID:  proposal.ID,
		Title:       proposal.Title,
		Description: proposal.Description,
		Proposer:    proposal.Proposer,
		StartHeight: proposal.StartHeight,
		EndHeight:   proposal.EndHeight,
		YesVotes:    proposal.YesVotes,
		NoVotes:     proposal.NoVotes,
		Status:      string(proposal.Status),
	}
}
