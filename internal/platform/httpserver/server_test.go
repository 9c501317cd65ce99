package httpserver

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	votingsystem "govledger/contexts/governance/voting-system"
	votingaccess "govledger/contexts/governance/voting-system/adapters/accesscontrol"
	votingmemory "govledger/contexts/governance/voting-system/adapters/memory"
	accesscontrol "govledger/contexts/identity-access/access-control"
	counter "govledger/contexts/ledger-apps/counter"
	counteraccess "govledger/contexts/ledger-apps/counter/adapters/accesscontrol"
	messageboard "govledger/contexts/ledger-apps/message-board"
	boardaccess "govledger/contexts/ledger-apps/message-board/adapters/accesscontrol"
	"govledger/internal/platform/chain"
	"govledger/internal/shared/ledgerseq"
)

const testDeployer = "principal.deployer"

func newTestServer() *Server {
	sequencer := ledgerseq.New()
	access := accesscontrol.NewInMemoryModule(testDeployer, sequencer, slog.Default())
	register := chain.NewMemoryRegister()
	votingStore := votingmemory.NewStore()
	voting := votingsystem.NewModule(votingsystem.Dependencies{
		Repo:      votingStore,
		Authz:     votingaccess.Provider{Authorization: access.Authorization},
		Heights:   register,
		Clock:     votingStore,
		Sequencer: sequencer,
		Logger:    slog.Default(),
	})
	return New(Modules{
		Access:  access,
		Voting:  voting,
		Counter: counter.NewInMemoryModule(counteraccess.Provider{Authorization: access.Authorization}, sequencer, slog.Default()),
		Board:   messageboard.NewInMemoryModule(boardaccess.Provider{Authorization: access.Authorization}, sequencer, slog.Default()),
		Advancer: chain.Advancer{
			Register: register,
			Authz:    access.Authorization,
			Logger:   slog.Default(),
		},
	}, slog.Default(), ":0", 100, 100)
}

// do drives the mux directly; caller names the explicit principal header or
// empty to omit it.
func do(server *Server, method, path, caller string, body []byte) *httptest.ResponseRecorder {
	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, path, bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if caller != "" {
		req.Header.Set("X-Caller-Principal", caller)
	}
	rr := httptest.NewRecorder()
	server.mux.ServeHTTP(rr, req)
	return rr
}

func decode(t *testing.T, rr *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.Unmarshal(rr.Body.Bytes(), v); err != nil {
		t.Fatalf("decoding response failed: %v body=%s", err, rr.Body.String())
	}
}

func TestHealthEndpoint(t *testing.T) {
	server := newTestServer()
	rr := do(server, http.MethodGet, "/healthz", "", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rr.Code, rr.Body.String())
	}
}

func TestChainAdvanceRequiresCaller(t *testing.T) {
	server := newTestServer()
	rr := do(server, http.MethodPost, "/v1/chain/height", "", []byte(`{"height":10}`))
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d body=%s", rr.Code, rr.Body.String())
	}
}

func TestChainAdvanceRejectsNonAdmin(t *testing.T) {
	server := newTestServer()
	rr := do(server, http.MethodPost, "/v1/chain/height", "principal.rando", []byte(`{"height":10}`))
	if rr.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d body=%s", rr.Code, rr.Body.String())
	}
}

func TestChainAdvanceIsStrictlyMonotonic(t *testing.T) {
	server := newTestServer()

	rr := do(server, http.MethodPost, "/v1/chain/height", testDeployer, []byte(`{"height":10}`))
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rr.Code, rr.Body.String())
	}

	rr = do(server, http.MethodPost, "/v1/chain/height", testDeployer, []byte(`{"height":10}`))
	if rr.Code != http.StatusConflict {
		t.Fatalf("expected 409 on replayed height, got %d body=%s", rr.Code, rr.Body.String())
	}

	rr = do(server, http.MethodGet, "/v1/chain/height", "", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rr.Code, rr.Body.String())
	}
	var height map[string]uint64
	decode(t, rr, &height)
	if height["height"] != 10 {
		t.Fatalf("expected height 10, got %d", height["height"])
	}
}
