package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	countererrors "govledger/contexts/ledger-apps/counter/domain/errors"
	counterhttp "govledger/contexts/ledger-apps/counter/transport/http"
	boarderrors "govledger/contexts/ledger-apps/message-board/domain/errors"
	boardhttp "govledger/contexts/ledger-apps/message-board/transport/http"
	"govledger/internal/platform/metrics"
)

func (s *Server) handleCounterIncrement(w http.ResponseWriter, r *http.Request) {
	caller, ok := resolveCaller(w, r, writeCounterMissingCaller)
	if !ok {
		return
	}
	resp, err := s.counter.Handler.IncrementHandler(r.Context(), caller)
	if err != nil {
		writeCounterDomainError(w, err)
		return
	}
	metrics.OperationsTotal.WithLabelValues("counter", "increment", "ok").Inc()
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCounterDecrement(w http.ResponseWriter, r *http.Request) {
	caller, ok := resolveCaller(w, r, writeCounterMissingCaller)
	if !ok {
		return
	}
	resp, err := s.counter.Handler.DecrementHandler(r.Context(), caller)
	if err != nil {
		writeCounterDomainError(w, err)
		return
	}
	metrics.OperationsTotal.WithLabelValues("counter", "decrement", "ok").Inc()
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCounterValue(w http.ResponseWriter, r *http.Request) {
	resp, err := s.counter.Handler.CountHandler(r.Context())
	if err != nil {
		writeCounterDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handlePostMessage(w http.ResponseWriter, r *http.Request) {
	caller, ok := resolveCaller(w, r, writeBoardMissingCaller)
	if !ok {
		return
	}
	var req boardhttp.PostMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBoardError(w, http.StatusBadRequest, boarderrors.ErrInvalidMessage)
		return
	}
	if err := s.validate.Struct(req); err != nil {
		writeBoardError(w, http.StatusBadRequest, boarderrors.ErrInvalidMessage)
		return
	}
	resp, err := s.board.Handler.PostMessageHandler(r.Context(), caller, req)
	if err != nil {
		writeBoardDomainError(w, err)
		return
	}
	metrics.OperationsTotal.WithLabelValues("message-board", "post_message", "ok").Inc()
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleListMessages(w http.ResponseWriter, r *http.Request) {
	resp, err := s.board.Handler.MessageListHandler(r.Context(), queryLimit(r, s.boardLimit))
	if err != nil {
		writeBoardDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetMessage(w http.ResponseWriter, r *http.Request) {
	resp, err := s.board.Handler.MessageHandler(r.Context(), r.PathValue("message_id"))
	if err != nil {
		writeBoardDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleUpdateMessage(w http.ResponseWriter, r *http.Request) {
	caller, ok := resolveCaller(w, r, writeBoardMissingCaller)
	if !ok {
		return
	}
	var req boardhttp.UpdateMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBoardError(w, http.StatusBadRequest, boarderrors.ErrInvalidMessage)
		return
	}
	if err := s.validate.Struct(req); err != nil {
		writeBoardError(w, http.StatusBadRequest, boarderrors.ErrInvalidMessage)
		return
	}
	resp, err := s.board.Handler.UpdateMessageHandler(r.Context(), caller, r.PathValue("message_id"), req)
	if err != nil {
		writeBoardDomainError(w, err)
		return
	}
	metrics.OperationsTotal.WithLabelValues("message-board", "update_message", "ok").Inc()
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleDeleteMessage(w http.ResponseWriter, r *http.Request) {
	caller, ok := resolveCaller(w, r, writeBoardMissingCaller)
	if !ok {
		return
	}
	if err := s.board.Handler.DeleteMessageHandler(r.Context(), caller, r.PathValue("message_id")); err != nil {
		writeBoardDomainError(w, err)
		return
	}
	metrics.OperationsTotal.WithLabelValues("message-board", "delete_message", "ok").Inc()
	writeJSON(w, http.StatusOK, map[string]bool{"deleted": true})
}

func writeCounterMissingCaller(w http.ResponseWriter) {
	writeCounterError(w, http.StatusUnauthorized, countererrors.ErrUnauthorized)
}

func writeCounterDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, countererrors.ErrUnauthorized):
		writeCounterError(w, http.StatusForbidden, countererrors.ErrUnauthorized)
	case errors.Is(err, countererrors.ErrCounterUnderflow):
		writeCounterError(w, http.StatusConflict, countererrors.ErrCounterUnderflow)
	default:
		writeJSON(w, http.StatusInternalServerError, counterhttp.ErrorResponse{
			Message: "internal server error",
		})
	}
}

func writeCounterError(w http.ResponseWriter, status int, err error) {
	code := countererrors.Code(err)
	metrics.DomainErrorsTotal.WithLabelValues("counter", strconv.Itoa(code)).Inc()
	writeJSON(w, status, counterhttp.ErrorResponse{
		Code:    code,
		Message: err.Error(),
	})
}

func writeBoardMissingCaller(w http.ResponseWriter) {
	writeBoardError(w, http.StatusUnauthorized, boarderrors.ErrUnauthorized)
}

func writeBoardDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, boarderrors.ErrUnauthorized):
		writeBoardError(w, http.StatusForbidden, boarderrors.ErrUnauthorized)
	case errors.Is(err, boarderrors.ErrMessageNotFound):
		writeBoardError(w, http.StatusNotFound, boarderrors.ErrMessageNotFound)
	case errors.Is(err, boarderrors.ErrInvalidMessage):
		writeBoardError(w, http.StatusBadRequest, boarderrors.ErrInvalidMessage)
	case errors.Is(err, boarderrors.ErrNotMessageOwner):
		writeBoardError(w, http.StatusForbidden, boarderrors.ErrNotMessageOwner)
	default:
		writeJSON(w, http.StatusInternalServerError, boardhttp.ErrorResponse{
			Message: "internal server error",
		})
	}
}

func writeBoardError(w http.ResponseWriter, status int, err error) {
	code := boarderrors.Code(err)
	metrics.DomainErrorsTotal.WithLabelValues("message-board", strconv.Itoa(code)).Inc()
	writeJSON(w, status, boardhttp.ErrorResponse{
		Code:    code,
		Message: err.Error(),
	})
}
