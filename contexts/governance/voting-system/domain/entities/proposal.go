package entities

import "time"

type ProposalStatus string

const (
	ProposalStatusActive ProposalStatus = "active"
	ProposalStatusPassed ProposalStatus = "passed"
	ProposalStatusFailed ProposalStatus = "failed"
)

type VoteChoice string

const (
	VoteChoiceYes VoteChoice = "yes"
	VoteChoiceNo  VoteChoice = "no"
)

// ValidChoice reports whether choice is one of the two accepted ballots.
func ValidChoice(choice VoteChoice) bool {
	return choice == VoteChoiceYes || choice == VoteChoiceNo
}

const (
	MaxTitleLength       = 128
	MaxDescriptionLength = 2048
)

// Proposal ids are dense and 1-based; the allocator only advances on a
// successful create, so a failed call never burns an id.
type Proposal struct {
	ID          uint64
	Title       string
	Description string
	Proposer    string
	StartHeight uint64
	EndHeight   uint64
	YesVotes    uint64
	NoVotes     uint64
	Status      ProposalStatus
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// WithinWindow reports whether height falls inside the inclusive voting
// window.
func (p Proposal) WithinWindow(height uint64) bool {
	return height >= p.StartHeight && height <= p.EndHeight
}

// Elapsed reports whether the voting window closed strictly before height.
func (p Proposal) Elapsed(height uint64) bool {
	return height > p.EndHeight
}

// Outcome computes the terminal status under strict majority. A tie fails.
func (p Proposal) Outcome() ProposalStatus {
	if p.YesVotes > p.NoVotes {
		return ProposalStatusPassed
	}
	return ProposalStatusFailed
}

type Vote struct {
	ProposalID uint64
	Voter      string
	Choice     VoteChoice
	Height     uint64
	CastAt     time.Time
}

// VotingConfig bounds the duration of newly created proposals, in blocks.
// In-flight proposals keep the end height computed at creation.
type VotingConfig struct {
	MinDuration uint64
	MaxDuration uint64
}

// DefaultVotingConfig is roughly one day to two weeks at ten-minute blocks.
func DefaultVotingConfig() VotingConfig {
	return VotingConfig{
		MinDuration: 144,
		MaxDuration: 20160,
	}
}
