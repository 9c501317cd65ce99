package httpserver

import (
	"net/http"
	"testing"

	accesshttp "govledger/contexts/identity-access/access-control/transport/http"
)

func TestAddAdminRequiresCaller(t *testing.T) {
	server := newTestServer()
	rr := do(server, http.MethodPost, "/v1/access/admins", "", []byte(`{"principal":"principal.alice"}`))
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d body=%s", rr.Code, rr.Body.String())
	}
	var errResp accesshttp.ErrorResponse
	decode(t, rr, &errResp)
	if errResp.Code != 100 {
		t.Fatalf("expected code 100, got %d", errResp.Code)
	}
}

func TestAddAdminRejectsNonAdminCaller(t *testing.T) {
	server := newTestServer()
	rr := do(server, http.MethodPost, "/v1/access/admins", "principal.rando", []byte(`{"principal":"principal.alice"}`))
	if rr.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d body=%s", rr.Code, rr.Body.String())
	}
}

func TestAddAdminAndCheck(t *testing.T) {
	server := newTestServer()

	rr := do(server, http.MethodPost, "/v1/access/admins", testDeployer, []byte(`{"principal":"principal.alice"}`))
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rr.Code, rr.Body.String())
	}

	rr = do(server, http.MethodGet, "/v1/access/principals/principal.alice/admin", "", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rr.Code, rr.Body.String())
	}
	var check accesshttp.AdminCheckResponse
	decode(t, rr, &check)
	if !check.Admin {
		t.Fatalf("expected principal.alice to be admin, body=%s", rr.Body.String())
	}
}

func TestRemoveAdminRejectsSelfRemoval(t *testing.T) {
	server := newTestServer()

	rr := do(server, http.MethodPost, "/v1/access/admins", testDeployer, []byte(`{"principal":"principal.alice"}`))
	if rr.Code != http.StatusOK {
		t.Fatalf("seeding admin failed: %d body=%s", rr.Code, rr.Body.String())
	}

	rr = do(server, http.MethodDelete, "/v1/access/admins/principal.alice", "principal.alice", nil)
	if rr.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d body=%s", rr.Code, rr.Body.String())
	}
	var errResp accesshttp.ErrorResponse
	decode(t, rr, &errResp)
	if errResp.Code != 103 {
		t.Fatalf("expected code 103, got %d", errResp.Code)
	}

	rr = do(server, http.MethodDelete, "/v1/access/admins/principal.alice", testDeployer, nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200 on peer removal, got %d body=%s", rr.Code, rr.Body.String())
	}
}

func TestGrantAndRevokeUserRole(t *testing.T) {
	server := newTestServer()

	rr := do(server, http.MethodPost, "/v1/access/roles", testDeployer, []byte(`{"principal":"principal.bob"}`))
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rr.Code, rr.Body.String())
	}

	rr = do(server, http.MethodGet, "/v1/access/principals/principal.bob/authorized", "", nil)
	var authorized accesshttp.AuthorizationResponse
	decode(t, rr, &authorized)
	if !authorized.Authorized {
		t.Fatalf("expected principal.bob authorized, body=%s", rr.Body.String())
	}

	rr = do(server, http.MethodDelete, "/v1/access/roles/principal.bob", testDeployer, nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rr.Code, rr.Body.String())
	}

	rr = do(server, http.MethodGet, "/v1/access/principals/principal.bob/authorized", "", nil)
	decode(t, rr, &authorized)
	if authorized.Authorized {
		t.Fatalf("expected principal.bob unauthorized after revoke, body=%s", rr.Body.String())
	}
}

func TestRoleCheckReflectsGrants(t *testing.T) {
	server := newTestServer()

	rr := do(server, http.MethodGet, "/v1/access/principals/principal.bob/roles", "", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rr.Code, rr.Body.String())
	}
	var check accesshttp.RoleCheckResponse
	decode(t, rr, &check)
	if check.HasRole {
		t.Fatalf("expected no role before grant, body=%s", rr.Body.String())
	}

	rr = do(server, http.MethodPost, "/v1/access/roles", testDeployer, []byte(`{"principal":"principal.bob"}`))
	if rr.Code != http.StatusOK {
		t.Fatalf("granting role failed: %d body=%s", rr.Code, rr.Body.String())
	}

	rr = do(server, http.MethodGet, "/v1/access/principals/principal.bob/roles", "", nil)
	decode(t, rr, &check)
	if !check.HasRole {
		t.Fatalf("expected role after grant, body=%s", rr.Body.String())
	}
}

func TestTransferOwnership(t *testing.T) {
	server := newTestServer()

	rr := do(server, http.MethodPost, "/v1/access/owner/transfer", testDeployer, []byte(`{"new_owner":"principal.alice"}`))
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rr.Code, rr.Body.String())
	}

	rr = do(server, http.MethodGet, "/v1/access/owner", "", nil)
	var owner accesshttp.OwnerResponse
	decode(t, rr, &owner)
	if owner.Owner != "principal.alice" {
		t.Fatalf("expected owner principal.alice, got %q", owner.Owner)
	}
}

func TestAuditTrailRecordsMutations(t *testing.T) {
	server := newTestServer()

	rr := do(server, http.MethodPost, "/v1/access/roles", testDeployer, []byte(`{"principal":"principal.bob"}`))
	if rr.Code != http.StatusOK {
		t.Fatalf("seeding role failed: %d body=%s", rr.Code, rr.Body.String())
	}

	rr = do(server, http.MethodGet, "/v1/access/audit", "", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rr.Code, rr.Body.String())
	}
	var trail accesshttp.AuditTrailResponse
	decode(t, rr, &trail)
	if len(trail.Items) == 0 {
		t.Fatalf("expected audit entries, body=%s", rr.Body.String())
	}
}
