package messageboard

import (
	"context"
	"errors"
	"strings"
	"testing"

	accesscontrol "govledger/contexts/identity-access/access-control"
	accesscommands "govledger/contexts/identity-access/access-control/application/commands"
	accesscontroladapter "govledger/contexts/ledger-apps/message-board/adapters/accesscontrol"
	"govledger/contexts/ledger-apps/message-board/domain/entities"
	domainerrors "govledger/contexts/ledger-apps/message-board/domain/errors"
	httptransport "govledger/contexts/ledger-apps/message-board/transport/http"
	"govledger/internal/shared/ledgerseq"
)

func newModule(t *testing.T) Module {
	t.Helper()
	sequencer := ledgerseq.New()
	access := accesscontrol.NewInMemoryModule("principal.deployer", sequencer, nil)
	for _, principal := range []string{"principal.alice", "principal.bob"} {
		if err := access.Access.GrantUserRole(context.Background(), accesscommands.GrantUserRoleCommand{
			Caller: "principal.deployer",
			Target: principal,
		}); err != nil {
			t.Fatalf("seeding role for %s failed: %v", principal, err)
		}
	}
	return NewInMemoryModule(accesscontroladapter.Provider{
		Authorization: access.Authorization,
	}, sequencer, nil)
}

func TestPostMessage(t *testing.T) {
	module := newModule(t)
	ctx := context.Background()

	posted, err := module.Handler.PostMessageHandler(ctx, "principal.alice", httptransport.PostMessageRequest{
		Content: "hello board",
	})
	if err != nil {
		t.Fatalf("post failed: %v", err)
	}
	if posted.MessageID == "" || posted.Author != "principal.alice" {
		t.Fatalf("unexpected message %+v", posted)
	}

	_, err = module.Handler.PostMessageHandler(ctx, "principal.stranger", httptransport.PostMessageRequest{
		Content: "should not land",
	})
	if !errors.Is(err, domainerrors.ErrUnauthorized) {
		t.Fatalf("expected unauthorized, got %v", err)
	}

	_, err = module.Handler.PostMessageHandler(ctx, "principal.alice", httptransport.PostMessageRequest{
		Content: "   ",
	})
	if !errors.Is(err, domainerrors.ErrInvalidMessage) {
		t.Fatalf("expected invalid message for blank content, got %v", err)
	}
	_, err = module.Handler.PostMessageHandler(ctx, "principal.alice", httptransport.PostMessageRequest{
		Content: strings.Repeat("x", entities.MaxContentLength+1),
	})
	if !errors.Is(err, domainerrors.ErrInvalidMessage) {
		t.Fatalf("expected invalid message for oversized content, got %v", err)
	}
}

func TestUpdateMessageAuthorOnly(t *testing.T) {
	module := newModule(t)
	ctx := context.Background()

	posted, err := module.Handler.PostMessageHandler(ctx, "principal.alice", httptransport.PostMessageRequest{
		Content: "original content",
	})
	if err != nil {
		t.Fatalf("post failed: %v", err)
	}

	_, err = module.Handler.UpdateMessageHandler(ctx, "principal.bob", posted.MessageID, httptransport.UpdateMessageRequest{
		Content: "hijacked",
	})
	if !errors.Is(err, domainerrors.ErrNotMessageOwner) {
		t.Fatalf("expected not-owner, got %v", err)
	}
	// Admins do not get update rights over other authors.
	_, err = module.Handler.UpdateMessageHandler(ctx, "principal.deployer", posted.MessageID, httptransport.UpdateMessageRequest{
		Content: "admin edit",
	})
	if !errors.Is(err, domainerrors.ErrNotMessageOwner) {
		t.Fatalf("expected not-owner for admin, got %v", err)
	}

	_, err = module.Handler.UpdateMessageHandler(ctx, "principal.alice", "missing-id", httptransport.UpdateMessageRequest{
		Content: "whatever",
	})
	if !errors.Is(err, domainerrors.ErrMessageNotFound) {
		t.Fatalf("expected not-found, got %v", err)
	}

	updated, err := module.Handler.UpdateMessageHandler(ctx, "principal.alice", posted.MessageID, httptransport.UpdateMessageRequest{
		Content: "revised content",
	})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.Content != "revised content" {
		t.Fatalf("expected revised content, got %q", updated.Content)
	}
}

func TestDeleteMessageAuthorOrAdmin(t *testing.T) {
	module := newModule(t)
	ctx := context.Background()

	posted, err := module.Handler.PostMessageHandler(ctx, "principal.alice", httptransport.PostMessageRequest{
		Content: "to be moderated",
	})
	if err != nil {
		t.Fatalf("post failed: %v", err)
	}

	err = module.Handler.DeleteMessageHandler(ctx, "principal.bob", posted.MessageID)
	if !errors.Is(err, domainerrors.ErrNotMessageOwner) {
		t.Fatalf("expected not-owner, got %v", err)
	}
	// Admin moderation path.
	if err := module.Handler.DeleteMessageHandler(ctx, "principal.deployer", posted.MessageID); err != nil {
		t.Fatalf("admin delete failed: %v", err)
	}
	_, err = module.Handler.MessageHandler(ctx, posted.MessageID)
	if !errors.Is(err, domainerrors.ErrMessageNotFound) {
		t.Fatalf("expected not-found after delete, got %v", err)
	}

	err = module.Handler.DeleteMessageHandler(ctx, "principal.deployer", posted.MessageID)
	if !errors.Is(err, domainerrors.ErrMessageNotFound) {
		t.Fatalf("expected not-found on second delete, got %v", err)
	}
}

func TestListMessagesNewestFirst(t *testing.T) {
	module := newModule(t)
	ctx := context.Background()

	for _, content := range []string{"first post", "second post", "third post"} {
		if _, err := module.Handler.PostMessageHandler(ctx, "principal.alice", httptransport.PostMessageRequest{
			Content: content,
		}); err != nil {
			t.Fatalf("post failed: %v", err)
		}
	}

	list, err := module.Handler.MessageListHandler(ctx, 2)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(list.Items) != 2 {
		t.Fatalf("expected limit of 2 items, got %d", len(list.Items))
	}
}
