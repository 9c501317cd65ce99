package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	accesserrors "govledger/contexts/identity-access/access-control/domain/errors"
	accesshttp "govledger/contexts/identity-access/access-control/transport/http"
	"govledger/internal/platform/metrics"
)

func (s *Server) handleAddAdmin(w http.ResponseWriter, r *http.Request) {
	caller, ok := resolveCaller(w, r, writeAccessMissingCaller)
	if !ok {
		return
	}
	var req accesshttp.AddAdminRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeAccessError(w, http.StatusBadRequest, accesserrors.ErrInvalidPrincipal)
		return
	}
	if err := s.validate.Struct(req); err != nil {
		writeAccessError(w, http.StatusBadRequest, accesserrors.ErrInvalidPrincipal)
		return
	}
	if err := s.access.Handler.AddAdminHandler(r.Context(), caller, req); err != nil {
		writeAccessDomainError(w, err)
		return
	}
	metrics.OperationsTotal.WithLabelValues("access-control", "add_admin", "ok").Inc()
	writeJSON(w, http.StatusOK, accesshttp.AdminCheckResponse{
		Principal: req.Principal,
		Admin:     true,
	})
}

func (s *Server) handleRemoveAdmin(w http.ResponseWriter, r *http.Request) {
	caller, ok := resolveCaller(w, r, writeAccessMissingCaller)
	if !ok {
		return
	}
	principal := r.PathValue("principal")
	err := s.access.Handler.RemoveAdminHandler(r.Context(), caller, accesshttp.RemoveAdminRequest{
		Principal: principal,
	})
	if err != nil {
		writeAccessDomainError(w, err)
		return
	}
	metrics.OperationsTotal.WithLabelValues("access-control", "remove_admin", "ok").Inc()
	writeJSON(w, http.StatusOK, accesshttp.AdminCheckResponse{
		Principal: principal,
		Admin:     false,
	})
}

func (s *Server) handleListAdmins(w http.ResponseWriter, r *http.Request) {
	resp, err := s.access.Handler.AdminListHandler(r.Context())
	if err != nil {
		writeAccessDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGrantUserRole(w http.ResponseWriter, r *http.Request) {
	caller, ok := resolveCaller(w, r, writeAccessMissingCaller)
	if !ok {
		return
	}
	var req accesshttp.GrantUserRoleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeAccessError(w, http.StatusBadRequest, accesserrors.ErrInvalidPrincipal)
		return
	}
	if err := s.validate.Struct(req); err != nil {
		writeAccessError(w, http.StatusBadRequest, accesserrors.ErrInvalidPrincipal)
		return
	}
	if err := s.access.Handler.GrantUserRoleHandler(r.Context(), caller, req); err != nil {
		writeAccessDomainError(w, err)
		return
	}
	metrics.OperationsTotal.WithLabelValues("access-control", "grant_user_role", "ok").Inc()
	writeJSON(w, http.StatusOK, accesshttp.RoleResponse{
		Principal: req.Principal,
		Role:      "user",
		Found:     true,
	})
}

func (s *Server) handleRevokeUserRole(w http.ResponseWriter, r *http.Request) {
	caller, ok := resolveCaller(w, r, writeAccessMissingCaller)
	if !ok {
		return
	}
	principal := r.PathValue("principal")
	err := s.access.Handler.RevokeUserRoleHandler(r.Context(), caller, accesshttp.RevokeUserRoleRequest{
		Principal: principal,
	})
	if err != nil {
		writeAccessDomainError(w, err)
		return
	}
	metrics.OperationsTotal.WithLabelValues("access-control", "revoke_user_role", "ok").Inc()
	writeJSON(w, http.StatusOK, accesshttp.RoleResponse{
		Principal: principal,
		Found:     false,
	})
}

func (s *Server) handleRenounceRole(w http.ResponseWriter, r *http.Request) {
	caller, ok := resolveCaller(w, r, writeAccessMissingCaller)
	if !ok {
		return
	}
	if err := s.access.Handler.RenounceRoleHandler(r.Context(), caller); err != nil {
		writeAccessDomainError(w, err)
		return
	}
	metrics.OperationsTotal.WithLabelValues("access-control", "renounce_role", "ok").Inc()
	writeJSON(w, http.StatusOK, accesshttp.RoleResponse{
		Principal: caller,
		Found:     false,
	})
}

func (s *Server) handleTransferOwnership(w http.ResponseWriter, r *http.Request) {
	caller, ok := resolveCaller(w, r, writeAccessMissingCaller)
	if !ok {
		return
	}
	var req accesshttp.TransferOwnershipRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeAccessError(w, http.StatusBadRequest, accesserrors.ErrInvalidPrincipal)
		return
	}
	if err := s.validate.Struct(req); err != nil {
		writeAccessError(w, http.StatusBadRequest, accesserrors.ErrInvalidPrincipal)
		return
	}
	if err := s.access.Handler.TransferOwnershipHandler(r.Context(), caller, req); err != nil {
		writeAccessDomainError(w, err)
		return
	}
	metrics.OperationsTotal.WithLabelValues("access-control", "transfer_ownership", "ok").Inc()
	writeJSON(w, http.StatusOK, accesshttp.OwnerResponse{Owner: req.NewOwner})
}

func (s *Server) handleGetOwner(w http.ResponseWriter, r *http.Request) {
	resp, err := s.access.Handler.OwnerHandler(r.Context())
	if err != nil {
		writeAccessDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleAdminCheck(w http.ResponseWriter, r *http.Request) {
	resp, err := s.access.Handler.AdminCheckHandler(r.Context(), r.PathValue("principal"))
	if err != nil {
		writeAccessDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetRole(w http.ResponseWriter, r *http.Request) {
	resp, err := s.access.Handler.RoleHandler(r.Context(), r.PathValue("principal"))
	if err != nil {
		writeAccessDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleRoleCheck(w http.ResponseWriter, r *http.Request) {
	resp, err := s.access.Handler.RoleCheckHandler(r.Context(), r.PathValue("principal"))
	if err != nil {
		writeAccessDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleAuthorizationCheck(w http.ResponseWriter, r *http.Request) {
	resp, err := s.access.Handler.AuthorizationHandler(r.Context(), r.PathValue("principal"))
	if err != nil {
		writeAccessDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleAuditTrail(w http.ResponseWriter, r *http.Request) {
	resp, err := s.access.Handler.AuditTrailHandler(r.Context(), queryLimit(r, s.auditLimit))
	if err != nil {
		writeAccessDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func writeAccessMissingCaller(w http.ResponseWriter) {
	writeAccessError(w, http.StatusUnauthorized, accesserrors.ErrUnauthorized)
}

func writeAccessDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, accesserrors.ErrUnauthorized):
		writeAccessError(w, http.StatusForbidden, accesserrors.ErrUnauthorized)
	case errors.Is(err, accesserrors.ErrInvalidPrincipal):
		writeAccessError(w, http.StatusBadRequest, accesserrors.ErrInvalidPrincipal)
	case errors.Is(err, accesserrors.ErrAlreadyAdmin),
		errors.Is(err, accesserrors.ErrNotAdmin),
		errors.Is(err, accesserrors.ErrCannotRemoveLastAdmin),
		errors.Is(err, accesserrors.ErrCannotRevokeAdmin):
		writeAccessError(w, http.StatusConflict, err)
	case errors.Is(err, accesserrors.ErrNoRoleFound):
		writeAccessError(w, http.StatusNotFound, accesserrors.ErrNoRoleFound)
	default:
		writeJSON(w, http.StatusInternalServerError, accesshttp.ErrorResponse{
			Message: "internal server error",
		})
	}
}

func writeAccessError(w http.ResponseWriter, status int, err error) {
	code := accesserrors.Code(err)
	metrics.DomainErrorsTotal.WithLabelValues("access-control", strconv.Itoa(code)).Inc()
	writeJSON(w, status, accesshttp.ErrorResponse{
		Code:    code,
		Message: err.Error(),
	})
}
