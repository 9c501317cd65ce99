package counter

import (
	"context"
	"errors"
	"testing"

	accesscontrol "govledger/contexts/identity-access/access-control"
	accesscommands "govledger/contexts/identity-access/access-control/application/commands"
	accesscontroladapter "govledger/contexts/ledger-apps/counter/adapters/accesscontrol"
	domainerrors "govledger/contexts/ledger-apps/counter/domain/errors"
	"govledger/internal/shared/ledgerseq"
)

func newModule(t *testing.T) Module {
	t.Helper()
	sequencer := ledgerseq.New()
	access := accesscontrol.NewInMemoryModule("principal.deployer", sequencer, nil)
	if err := access.Access.GrantUserRole(context.Background(), accesscommands.GrantUserRoleCommand{
		Caller: "principal.deployer",
		Target: "principal.alice",
	}); err != nil {
		t.Fatalf("seeding role failed: %v", err)
	}
	return NewInMemoryModule(accesscontroladapter.Provider{
		Authorization: access.Authorization,
	}, sequencer, nil)
}

func TestIncrementAndDecrement(t *testing.T) {
	module := newModule(t)
	ctx := context.Background()

	count, err := module.Handler.IncrementHandler(ctx, "principal.alice")
	if err != nil {
		t.Fatalf("increment failed: %v", err)
	}
	if count.Count != 1 {
		t.Fatalf("expected count 1, got %d", count.Count)
	}
	count, err = module.Handler.IncrementHandler(ctx, "principal.deployer")
	if err != nil {
		t.Fatalf("increment failed: %v", err)
	}
	if count.Count != 2 {
		t.Fatalf("expected count 2, got %d", count.Count)
	}

	count, err = module.Handler.DecrementHandler(ctx, "principal.alice")
	if err != nil {
		t.Fatalf("decrement failed: %v", err)
	}
	if count.Count != 1 {
		t.Fatalf("expected count 1, got %d", count.Count)
	}
}

func TestMutationsRequireAuthorization(t *testing.T) {
	module := newModule(t)
	ctx := context.Background()

	_, err := module.Handler.IncrementHandler(ctx, "principal.stranger")
	if !errors.Is(err, domainerrors.ErrUnauthorized) {
		t.Fatalf("expected unauthorized, got %v", err)
	}
	if domainerrors.Code(err) != 300 {
		t.Fatalf("expected code 300, got %d", domainerrors.Code(err))
	}
	count, err := module.Handler.CountHandler(ctx)
	if err != nil {
		t.Fatalf("count query failed: %v", err)
	}
	if count.Count != 0 {
		t.Fatalf("expected rejected mutation to leave count at 0, got %d", count.Count)
	}
}

func TestDecrementUnderflow(t *testing.T) {
	module := newModule(t)
	ctx := context.Background()

	_, err := module.Handler.DecrementHandler(ctx, "principal.alice")
	if !errors.Is(err, domainerrors.ErrCounterUnderflow) {
		t.Fatalf("expected underflow, got %v", err)
	}
	if domainerrors.Code(err) != 301 {
		t.Fatalf("expected code 301, got %d", domainerrors.Code(err))
	}
}
