package httpserver

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	votingsystem "govledger/contexts/governance/voting-system"
	accesscontrol "govledger/contexts/identity-access/access-control"
	counter "govledger/contexts/ledger-apps/counter"
	messageboard "govledger/contexts/ledger-apps/message-board"
	"govledger/internal/platform/chain"
	"govledger/internal/platform/metrics"

	"github.com/go-playground/validator/v10"
	httpSwagger "github.com/swaggo/http-swagger"
	_ "govledger/internal/platform/httpserver/docs"
)

// callerHeader carries the explicit caller principal on every mutating
// route. There is no ambient identity.
const callerHeader = "X-Caller-Principal"

type Server struct {
	mux      *http.ServeMux
	logger   *slog.Logger
	addr     string
	validate *validator.Validate

	access   accesscontrol.Module
	voting   votingsystem.Module
	counter  counter.Module
	board    messageboard.Module
	advancer chain.Advancer

	auditLimit int
	boardLimit int
}

type Modules struct {
	Access   accesscontrol.Module
	Voting   votingsystem.Module
	Counter  counter.Module
	Board    messageboard.Module
	Advancer chain.Advancer
}

func New(modules Modules, logger *slog.Logger, addr string, auditLimit int, boardLimit int) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	if addr == "" {
		addr = ":8080"
	}
	if auditLimit <= 0 {
		auditLimit = 100
	}
	if boardLimit <= 0 {
		boardLimit = 100
	}

	s := &Server{
		mux:        http.NewServeMux(),
		logger:     logger,
		addr:       addr,
		validate:   validator.New(),
		access:     modules.Access,
		voting:     modules.Voting,
		counter:    modules.Counter,
		board:      modules.Board,
		advancer:   modules.Advancer,
		auditLimit: auditLimit,
		boardLimit: boardLimit,
	}
	s.registerRoutes()
	return s
}

func (s *Server) Start() error {
	s.logger.Info("http server starting",
		"event", "http_server_starting",
		"module", "internal/platform/httpserver",
		"layer", "platform",
		"addr", s.addr,
	)
	return http.ListenAndServe(s.addr, s.mux)
}

func (s *Server) registerRoutes() {
	s.mux.Handle("/swagger/", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))
	s.mux.Handle("GET /metrics", metrics.Handler())
	s.mux.HandleFunc("GET /healthz", s.handleHealth)

	s.mux.HandleFunc("GET /v1/chain/height", s.handleChainHeight)
	s.mux.HandleFunc("POST /v1/chain/height", s.handleChainAdvance)

	s.mux.HandleFunc("POST /v1/access/admins", s.handleAddAdmin)
	s.mux.HandleFunc("DELETE /v1/access/admins/{principal}", s.handleRemoveAdmin)
	s.mux.HandleFunc("GET /v1/access/admins", s.handleListAdmins)
	s.mux.HandleFunc("POST /v1/access/roles", s.handleGrantUserRole)
	s.mux.HandleFunc("DELETE /v1/access/roles/{principal}", s.handleRevokeUserRole)
	s.mux.HandleFunc("POST /v1/access/roles/renounce", s.handleRenounceRole)
	s.mux.HandleFunc("POST /v1/access/owner/transfer", s.handleTransferOwnership)
	s.mux.HandleFunc("GET /v1/access/owner", s.handleGetOwner)
	s.mux.HandleFunc("GET /v1/access/principals/{principal}/admin", s.handleAdminCheck)
	s.mux.HandleFunc("GET /v1/access/principals/{principal}/role", s.handleGetRole)
	s.mux.HandleFunc("GET /v1/access/principals/{principal}/roles", s.handleRoleCheck)
	s.mux.HandleFunc("GET /v1/access/principals/{principal}/authorized", s.handleAuthorizationCheck)
	s.mux.HandleFunc("GET /v1/access/audit", s.handleAuditTrail)

	s.mux.HandleFunc("POST /v1/voting/proposals", s.handleCreateProposal)
	s.mux.HandleFunc("GET /v1/voting/proposals", s.handleListProposals)
	s.mux.HandleFunc("GET /v1/voting/proposals/count", s.handleProposalCount)
	s.mux.HandleFunc("GET /v1/voting/proposals/{proposal_id}", s.handleGetProposal)
	s.mux.HandleFunc("GET /v1/voting/proposals/{proposal_id}/result", s.handleProposalResult)
	s.mux.HandleFunc("POST /v1/voting/proposals/{proposal_id}/votes", s.handleCastVote)
	s.mux.HandleFunc("GET /v1/voting/proposals/{proposal_id}/votes/{voter}", s.handleGetVote)
	s.mux.HandleFunc("POST /v1/voting/proposals/{proposal_id}/finalize", s.handleFinalizeProposal)
	s.mux.HandleFunc("POST /v1/voting/proposals/{proposal_id}/cancel", s.handleCancelProposal)
	s.mux.HandleFunc("GET /v1/voting/config", s.handleVotingConfig)
	s.mux.HandleFunc("PUT /v1/voting/config", s.handleUpdateVotingConfig)

	s.mux.HandleFunc("POST /v1/counter/increment", s.handleCounterIncrement)
	s.mux.HandleFunc("POST /v1/counter/decrement", s.handleCounterDecrement)
	s.mux.HandleFunc("GET /v1/counter", s.handleCounterValue)

	s.mux.HandleFunc("POST /v1/board/messages", s.handlePostMessage)
	s.mux.HandleFunc("GET /v1/board/messages", s.handleListMessages)
	s.mux.HandleFunc("GET /v1/board/messages/{message_id}", s.handleGetMessage)
	s.mux.HandleFunc("PUT /v1/board/messages/{message_id}", s.handleUpdateMessage)
	s.mux.HandleFunc("DELETE /v1/board/messages/{message_id}", s.handleDeleteMessage)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleChainHeight(w http.ResponseWriter, r *http.Request) {
	height, err := s.advancer.Register.CurrentHeight(r.Context())
	if err != nil {
		writeTransportError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]uint64{"height": height})
}

type chainAdvanceRequest struct {
	Height uint64 `json:"height" validate:"required"`
}

func (s *Server) handleChainAdvance(w http.ResponseWriter, r *http.Request) {
	caller := strings.TrimSpace(r.Header.Get(callerHeader))
	if caller == "" {
		writeTransportError(w, http.StatusUnauthorized, callerHeader+" header is required")
		return
	}
	var req chainAdvanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeTransportError(w, http.StatusBadRequest, "request body must be valid JSON")
		return
	}
	if err := s.validate.Struct(req); err != nil {
		writeTransportError(w, http.StatusBadRequest, "height is required")
		return
	}

	height, err := s.advancer.Advance(r.Context(), caller, req.Height)
	if err != nil {
		switch {
		case errors.Is(err, chain.ErrUnauthorized):
			writeTransportError(w, http.StatusForbidden, err.Error())
		case errors.Is(err, chain.ErrHeightRegression):
			writeTransportError(w, http.StatusConflict, err.Error())
		default:
			writeTransportError(w, http.StatusInternalServerError, "internal server error")
		}
		return
	}
	metrics.ChainHeight.Set(float64(height))
	writeJSON(w, http.StatusOK, map[string]uint64{"height": height})
}

// resolveCaller extracts the explicit caller principal, or writes the
// module's unauthorized error when the header is missing.
func resolveCaller(w http.ResponseWriter, r *http.Request, write func(http.ResponseWriter)) (string, bool) {
	caller := strings.TrimSpace(r.Header.Get(callerHeader))
	if caller == "" {
		write(w)
		return "", false
	}
	return caller, true
}

func pathUint(r *http.Request, name string) (uint64, error) {
	return strconv.ParseUint(r.PathValue(name), 10, 64)
}

func queryLimit(r *http.Request, fallback int) int {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return fallback
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit <= 0 {
		return fallback
	}
	return limit
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// writeTransportError covers failures that never reach a module, so the
// body carries no domain code.
func writeTransportError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"message": message})
}
