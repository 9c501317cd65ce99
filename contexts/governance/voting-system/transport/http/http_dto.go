package http

type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type CreateProposalRequest struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description" validate:"required"`
	Duration    uint64 `json:"duration" validate:"required"`
}

type CreateProposalResponse struct {
	ProposalID  uint64 `json:"proposal_id"`
	StartHeight uint64 `json:"start_height"`
	EndHeight   uint64 `json:"end_height"`
}

type CastVoteRequest struct {
	Choice string `json:"choice" validate:"required,oneof=yes no"`
}

type CastVoteResponse struct {
	ProposalID uint64 `json:"proposal_id"`
	YesVotes   uint64 `json:"yes_votes"`
	NoVotes    uint64 `json:"no_votes"`
}

type FinalizeProposalResponse struct {
	ProposalID uint64 `json:"proposal_id"`
	Status     string `json:"status"`
}

type UpdateVotingConfigRequest struct {
	MinDuration uint64 `json:"min_duration" validate:"required"`
	MaxDuration uint64 `json:"max_duration" validate:"required"`
}

type ProposalResponse struct {
	ProposalID  uint64 `json:"proposal_id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Proposer    string `json:"proposer"`
	StartHeight uint64 `json:"start_height"`
	EndHeight   uint64 `json:"end_height"`
	YesVotes    uint64 `json:"yes_votes"`
	NoVotes     uint64 `json:"no_votes"`
	Status      string `json:"status"`
}

type ProposalListResponse struct {
	Items []ProposalResponse `json:"items"`
}

type ProposalCountResponse struct {
	Count uint64 `json:"count"`
}

type ProposalResultResponse struct {
	ProposalID uint64 `json:"proposal_id"`
	YesVotes   uint64 `json:"yes_votes"`
	NoVotes    uint64 `json:"no_votes"`
	Status     string `json:"status"`
}

type VoteResponse struct {
	ProposalID uint64 `json:"proposal_id"`
	Voter      string `json:"voter"`
	Choice     string `json:"choice,omitempty"`
	Height     uint64 `json:"height,omitempty"`
	Found      bool   `json:"found"`
}

type VotingConfigResponse struct {
	MinDuration uint64 `json:"min_duration"`
	MaxDuration uint64 `json:"max_duration"`
}
