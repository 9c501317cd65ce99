package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"govledger/contexts/governance/voting-system/domain/entities"
	domainerrors "govledger/contexts/governance/voting-system/domain/errors"
	"govledger/contexts/governance/voting-system/ports"
)

type voteKey struct {
	proposalID uint64
	voter      string
}

// Store is the in-memory proposal repository used by tests and local runs.
// It also serves as the block clock, with a manually advanced height.
type Store struct {
	mu sync.RWMutex

	proposals map[uint64]entities.Proposal
	votes     map[voteKey]entities.Vote
	config    entities.VotingConfig
	nextID    uint64
	height    uint64
}

func NewStore() *Store {
	return &Store{
		proposals: make(map[uint64]entities.Proposal),
		votes:     make(map[voteKey]entities.Vote),
		config:    entities.DefaultVotingConfig(),
		nextID:    1,
	}
}

func (s *Store) CreateProposal(_ context.Context, input ports.CreateProposalInput) (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextID
	s.nextID++
	s.proposals[id] = entities.Proposal{
		ID:          id,
		Title:       input.Title,
		Description: input.Description,
		Proposer:    input.Proposer,
		StartHeight: input.StartHeight,
		EndHeight:   input.EndHeight,
		Status:      entities.ProposalStatusActive,
		CreatedAt:   input.At,
		UpdatedAt:   input.At,
	}
	return id, nil
}

func (s *Store) GetProposal(_ context.Context, id uint64) (entities.Proposal, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	proposal, ok := s.proposals[id]
	return proposal, ok, nil
}

func (s *Store) ListProposals(_ context.Context) ([]entities.Proposal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	items := make([]entities.Proposal, 0, len(s.proposals))
	for _, proposal := range s.proposals {
		items = append(items, proposal)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })
	return items, nil
}

func (s *Store) ListElapsedActive(_ context.Context, height uint64, limit int) ([]entities.Proposal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	items := make([]entities.Proposal, 0)
	for _, proposal := range s.proposals {
		if proposal.Status == entities.ProposalStatusActive && proposal.Elapsed(height) {
			items = append(items, proposal)
		}
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })
	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}
	return items, nil
}

func (s *Store) CountProposals(_ context.Context) (uint64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.nextID - 1, nil
}

func (s *Store) GetVote(_ context.Context, proposalID uint64, voter string) (entities.Vote, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	vote, ok := s.votes[voteKey{proposalID: proposalID, voter: voter}]
	return vote, ok, nil
}

func (s *Store) RecordVote(_ context.Context, input ports.RecordVoteInput) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.votes[voteKey{proposalID: input.ProposalID, voter: input.Voter}] = entities.Vote{
		ProposalID: input.ProposalID,
		Voter:      input.Voter,
		Choice:     input.Choice,
		Height:     input.Height,
		CastAt:     input.At,
	}
	proposal := s.proposals[input.ProposalID]
	if input.Choice == entities.VoteChoiceYes {
		proposal.YesVotes++
	} else {
		proposal.NoVotes++
	}
	proposal.UpdatedAt = input.At
	s.proposals[input.ProposalID] = proposal
	return nil
}

func (s *Store) SetProposalStatus(_ context.Context, input ports.SetStatusInput) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	proposal, ok := s.proposals[input.ProposalID]
	if !ok {
		return domainerrors.ErrProposalNotFound
	}
	if proposal.Status != entities.ProposalStatusActive {
		return domainerrors.ErrProposalNotActive
	}
	proposal.Status = input.Status
	proposal.UpdatedAt = input.At
	s.proposals[input.ProposalID] = proposal
	return nil
}

func (s *Store) GetConfig(_ context.Context) (entities.VotingConfig, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.config, nil
}

func (s *Store) SaveConfig(_ context.Context, config entities.VotingConfig) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.config = config
	return nil
}

func (s *Store) CurrentHeight(_ context.Context) (uint64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.height, nil
}

// SetHeight moves the manual block clock. Test helper.
func (s *Store) SetHeight(height uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.height = height
}

func (s *Store) Now() time.Time {
	return time.Now().UTC()
}

var (
	_ ports.ProposalRepository = (*Store)(nil)
	_ ports.BlockClock         = (*Store)(nil)
	_ ports.Clock              = (*Store)(nil)
)
