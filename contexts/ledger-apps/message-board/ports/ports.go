package ports

import (
	"context"
	"time"

	"govledger/contexts/ledger-apps/message-board/domain/entities"
)

type UpdateMessageInput struct {
	MessageID string
	Content   string
	At        time.Time
}

type Repository interface {
	CreateMessage(ctx context.Context, message entities.Message) error
	GetMessage(ctx context.Context, id string) (entities.Message, bool, error)
	UpdateMessage(ctx context.Context, input UpdateMessageInput) error
	DeleteMessage(ctx context.Context, id string) error
	// ListMessages returns messages newest first, bounded by limit.
	ListMessages(ctx context.Context, limit int) ([]entities.Message, error)
}

type AuthorizationProvider interface {
	IsAuthorized(ctx context.Context, principal string) (bool, error)
	HasAdminRole(ctx context.Context, principal string) (bool, error)
}

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}
