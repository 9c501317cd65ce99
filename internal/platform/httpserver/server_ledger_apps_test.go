package httpserver

import (
	"net/http"
	"testing"

	counterhttp "govledger/contexts/ledger-apps/counter/transport/http"
	boardhttp "govledger/contexts/ledger-apps/message-board/transport/http"
)

func TestCounterIncrementRequiresAuthorization(t *testing.T) {
	server := newTestServer()
	rr := do(server, http.MethodPost, "/v1/counter/increment", "principal.rando", nil)
	if rr.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d body=%s", rr.Code, rr.Body.String())
	}
	var errResp counterhttp.ErrorResponse
	decode(t, rr, &errResp)
	if errResp.Code != 300 {
		t.Fatalf("expected code 300, got %d", errResp.Code)
	}
}

func TestCounterIncrementAndUnderflow(t *testing.T) {
	server := newTestServer()
	seedRoleHolder(t, server, "principal.alice")

	rr := do(server, http.MethodPost, "/v1/counter/increment", "principal.alice", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rr.Code, rr.Body.String())
	}
	var count counterhttp.CountResponse
	decode(t, rr, &count)
	if count.Count != 1 {
		t.Fatalf("expected count 1, got %d", count.Count)
	}

	rr = do(server, http.MethodPost, "/v1/counter/decrement", "principal.alice", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rr.Code, rr.Body.String())
	}

	rr = do(server, http.MethodPost, "/v1/counter/decrement", "principal.alice", nil)
	if rr.Code != http.StatusConflict {
		t.Fatalf("expected 409 at zero, got %d body=%s", rr.Code, rr.Body.String())
	}
	var errResp counterhttp.ErrorResponse
	decode(t, rr, &errResp)
	if errResp.Code != 301 {
		t.Fatalf("expected code 301, got %d", errResp.Code)
	}

	rr = do(server, http.MethodGet, "/v1/counter", "", nil)
	decode(t, rr, &count)
	if count.Count != 0 {
		t.Fatalf("expected count 0, got %d", count.Count)
	}
}

func TestBoardPostAndUpdateOwnership(t *testing.T) {
	server := newTestServer()
	seedRoleHolder(t, server, "principal.alice")

	rr := do(server, http.MethodPost, "/v1/board/messages", "principal.alice", []byte(`{"content":"first post"}`))
	if rr.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d body=%s", rr.Code, rr.Body.String())
	}
	var posted boardhttp.MessageResponse
	decode(t, rr, &posted)
	if posted.Author != "principal.alice" {
		t.Fatalf("expected author principal.alice, got %q", posted.Author)
	}

	// Admins moderate via delete; editing stays with the author.
	rr = do(server, http.MethodPut, "/v1/board/messages/"+posted.MessageID, testDeployer, []byte(`{"content":"edited"}`))
	if rr.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d body=%s", rr.Code, rr.Body.String())
	}
	var errResp boardhttp.ErrorResponse
	decode(t, rr, &errResp)
	if errResp.Code != 403 {
		t.Fatalf("expected code 403, got %d", errResp.Code)
	}

	rr = do(server, http.MethodPut, "/v1/board/messages/"+posted.MessageID, "principal.alice", []byte(`{"content":"edited"}`))
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rr.Code, rr.Body.String())
	}

	rr = do(server, http.MethodDelete, "/v1/board/messages/"+posted.MessageID, testDeployer, nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200 for admin delete, got %d body=%s", rr.Code, rr.Body.String())
	}

	rr = do(server, http.MethodGet, "/v1/board/messages/"+posted.MessageID, "", nil)
	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404 after delete, got %d body=%s", rr.Code, rr.Body.String())
	}
}
