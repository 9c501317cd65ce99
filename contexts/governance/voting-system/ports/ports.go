package ports

import (
	"context"
	"time"

	"govledger/contexts/governance/voting-system/domain/entities"
)

// CreateProposalInput allocates the next dense id and persists the proposal
// in one atomic step. Repositories return the allocated id.
type CreateProposalInput struct {
	Title       string
	Description string
	Proposer    string
	StartHeight uint64
	EndHeight   uint64
	At          time.Time
}

// RecordVoteInput persists the vote row and bumps the matching tally in one
// atomic step.
type RecordVoteInput struct {
	ProposalID uint64
	Voter      string
	Choice     entities.VoteChoice
	Height     uint64
	At         time.Time
}

type SetStatusInput struct {
	ProposalID uint64
	Status     entities.ProposalStatus
	At         time.Time
}

type ProposalRepository interface {
	CreateProposal(ctx context.Context, input CreateProposalInput) (uint64, error)
	GetProposal(ctx context.Context, id uint64) (entities.Proposal, bool, error)
	ListProposals(ctx context.Context) ([]entities.Proposal, error)
	// ListElapsedActive returns active proposals whose window closed strictly
	// before height, oldest first.
	ListElapsedActive(ctx context.Context, height uint64, limit int) ([]entities.Proposal, error)
	CountProposals(ctx context.Context) (uint64, error)

	GetVote(ctx context.Context, proposalID uint64, voter string) (entities.Vote, bool, error)
	RecordVote(ctx context.Context, input RecordVoteInput) error

	// SetProposalStatus commits a terminal transition only while the stored
	// status is still active; a concurrent writer that already resolved the
	// proposal surfaces as ErrProposalNotActive.
	SetProposalStatus(ctx context.Context, input SetStatusInput) error

	GetConfig(ctx context.Context) (entities.VotingConfig, error)
	SaveConfig(ctx context.Context, config entities.VotingConfig) error
}

// AuthorizationProvider is the only surface this module sees of
// access-control.
type AuthorizationProvider interface {
	IsAuthorized(ctx context.Context, principal string) (bool, error)
	HasAdminRole(ctx context.Context, principal string) (bool, error)
}

// BlockClock supplies the externally advanced ledger height. Never
// wall-clock derived.
type BlockClock interface {
	CurrentHeight(ctx context.Context) (uint64, error)
}

type Clock interface {
	Now() time.Time
}
