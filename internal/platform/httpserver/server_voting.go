package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	votingerrors "govledger/contexts/governance/voting-system/domain/errors"
	votinghttp "govledger/contexts/governance/voting-system/transport/http"
	"govledger/internal/platform/metrics"
)

func (s *Server) handleCreateProposal(w http.ResponseWriter, r *http.Request) {
	caller, ok := resolveCaller(w, r, writeVotingMissingCaller)
	if !ok {
		return
	}
	var req votinghttp.CreateProposalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeVotingError(w, http.StatusBadRequest, votingerrors.ErrInvalidVote)
		return
	}
	if err := s.validate.Struct(req); err != nil {
		writeVotingError(w, http.StatusBadRequest, votingerrors.ErrInvalidVote)
		return
	}
	resp, err := s.voting.Handler.CreateProposalHandler(r.Context(), caller, req)
	if err != nil {
		writeVotingDomainError(w, err)
		return
	}
	metrics.OperationsTotal.WithLabelValues("voting-system", "create_proposal", "ok").Inc()
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleListProposals(w http.ResponseWriter, r *http.Request) {
	resp, err := s.voting.Handler.ProposalListHandler(r.Context())
	if err != nil {
		writeVotingDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleProposalCount(w http.ResponseWriter, r *http.Request) {
	resp, err := s.voting.Handler.ProposalCountHandler(r.Context())
	if err != nil {
		writeVotingDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetProposal(w http.ResponseWriter, r *http.Request) {
	proposalID, err := pathUint(r, "proposal_id")
	if err != nil {
		writeVotingError(w, http.StatusNotFound, votingerrors.ErrProposalNotFound)
		return
	}
	resp, err := s.voting.Handler.ProposalHandler(r.Context(), proposalID)
	if err != nil {
		writeVotingDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleProposalResult(w http.ResponseWriter, r *http.Request) {
	proposalID, err := pathUint(r, "proposal_id")
	if err != nil {
		writeVotingError(w, http.StatusNotFound, votingerrors.ErrProposalNotFound)
		return
	}
	resp, err := s.voting.Handler.ProposalResultHandler(r.Context(), proposalID)
	if err != nil {
		writeVotingDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCastVote(w http.ResponseWriter, r *http.Request) {
	caller, ok := resolveCaller(w, r, writeVotingMissingCaller)
	if !ok {
		return
	}
	proposalID, err := pathUint(r, "proposal_id")
	if err != nil {
		writeVotingError(w, http.StatusNotFound, votingerrors.ErrProposalNotFound)
		return
	}
	var req votinghttp.CastVoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeVotingError(w, http.StatusBadRequest, votingerrors.ErrInvalidVote)
		return
	}
	if err := s.validate.Struct(req); err != nil {
		writeVotingError(w, http.StatusBadRequest, votingerrors.ErrInvalidVote)
		return
	}
	resp, err := s.voting.Handler.CastVoteHandler(r.Context(), caller, proposalID, req)
	if err != nil {
		writeVotingDomainError(w, err)
		return
	}
	metrics.OperationsTotal.WithLabelValues("voting-system", "cast_vote", "ok").Inc()
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetVote(w http.ResponseWriter, r *http.Request) {
	proposalID, err := pathUint(r, "proposal_id")
	if err != nil {
		writeVotingError(w, http.StatusNotFound, votingerrors.ErrProposalNotFound)
		return
	}
	resp, err := s.voting.Handler.VoteHandler(r.Context(), proposalID, r.PathValue("voter"))
	if err != nil {
		writeVotingDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleFinalizeProposal(w http.ResponseWriter, r *http.Request) {
	caller, ok := resolveCaller(w, r, writeVotingMissingCaller)
	if !ok {
		return
	}
	proposalID, err := pathUint(r, "proposal_id")
	if err != nil {
		writeVotingError(w, http.StatusNotFound, votingerrors.ErrProposalNotFound)
		return
	}
	resp, err := s.voting.Handler.FinalizeProposalHandler(r.Context(), caller, proposalID)
	if err != nil {
		writeVotingDomainError(w, err)
		return
	}
	metrics.OperationsTotal.WithLabelValues("voting-system", "finalize_proposal", "ok").Inc()
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCancelProposal(w http.ResponseWriter, r *http.Request) {
	caller, ok := resolveCaller(w, r, writeVotingMissingCaller)
	if !ok {
		return
	}
	proposalID, err := pathUint(r, "proposal_id")
	if err != nil {
		writeVotingError(w, http.StatusNotFound, votingerrors.ErrProposalNotFound)
		return
	}
	if err := s.voting.Handler.CancelProposalHandler(r.Context(), caller, proposalID); err != nil {
		writeVotingDomainError(w, err)
		return
	}
	metrics.OperationsTotal.WithLabelValues("voting-system", "cancel_proposal", "ok").Inc()
	writeJSON(w, http.StatusOK, votinghttp.FinalizeProposalResponse{
		ProposalID: proposalID,
		Status:     "failed",
	})
}

func (s *Server) handleVotingConfig(w http.ResponseWriter, r *http.Request) {
	resp, err := s.voting.Handler.VotingConfigHandler(r.Context())
	if err != nil {
		writeVotingDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleUpdateVotingConfig(w http.ResponseWriter, r *http.Request) {
	caller, ok := resolveCaller(w, r, writeVotingMissingCaller)
	if !ok {
		return
	}
	var req votinghttp.UpdateVotingConfigRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeVotingError(w, http.StatusBadRequest, votingerrors.ErrInvalidDuration)
		return
	}
	if err := s.validate.Struct(req); err != nil {
		writeVotingError(w, http.StatusBadRequest, votingerrors.ErrInvalidDuration)
		return
	}
	if err := s.voting.Handler.UpdateVotingConfigHandler(r.Context(), caller, req); err != nil {
		writeVotingDomainError(w, err)
		return
	}
	metrics.OperationsTotal.WithLabelValues("voting-system", "update_voting_config", "ok").Inc()
	writeJSON(w, http.StatusOK, votinghttp.VotingConfigResponse{
		MinDuration: req.MinDuration,
		MaxDuration: req.MaxDuration,
	})
}

func writeVotingMissingCaller(w http.ResponseWriter) {
	writeVotingError(w, http.StatusUnauthorized, votingerrors.ErrUnauthorized)
}

func writeVotingDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, votingerrors.ErrUnauthorized):
		writeVotingError(w, http.StatusForbidden, votingerrors.ErrUnauthorized)
	case errors.Is(err, votingerrors.ErrProposalNotFound):
		writeVotingError(w, http.StatusNotFound, votingerrors.ErrProposalNotFound)
	case errors.Is(err, votingerrors.ErrInvalidVote),
		errors.Is(err, votingerrors.ErrInvalidDuration):
		writeVotingError(w, http.StatusBadRequest, err)
	case errors.Is(err, votingerrors.ErrProposalNotActive),
		errors.Is(err, votingerrors.ErrAlreadyVoted),
		errors.Is(err, votingerrors.ErrProposalStillActive):
		writeVotingError(w, http.StatusConflict, err)
	default:
		writeJSON(w, http.StatusInternalServerError, votinghttp.ErrorResponse{
			Message: "internal server error",
		})
	}
}

func writeVotingError(w http.ResponseWriter, status int, err error) {
	code := votingerrors.Code(err)
	metrics.DomainErrorsTotal.WithLabelValues("voting-system", strconv.Itoa(code)).Inc()
	writeJSON(w, status, votinghttp.ErrorResponse{
		Code:    code,
		Message: err.Error(),
	})
}
