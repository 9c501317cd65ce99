package postgresadapter

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"govledger/contexts/ledger-apps/message-board/domain/entities"
	"govledger/contexts/ledger-apps/message-board/ports"

	"gorm.io/gorm"
)

type Repository struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewRepository(db *gorm.DB, logger *slog.Logger) *Repository {
	if logger == nil {
		logger = slog.Default()
	}
	return &Repository{
		db:     db,
		logger: logger,
	}
}

func (r *Repository) CreateMessage(ctx context.Context, message entities.Message) error {
	row := messageModel{
		MessageID: message.MessageID,
		Author:    message.Author,
		Content:   message.Content,
		PostedAt:  message.PostedAt.UTC(),
		UpdatedAt: message.UpdatedAt.UTC(),
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return r.logError("board_repo_create_failed", err, "message_id", message.MessageID)
	}
	return nil
}

func (r *Repository) GetMessage(ctx context.Context, id string) (entities.Message, bool, error) {
	var row messageModel
	err := r.db.WithContext(ctx).
		Where("message_id = ?", id).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Message{}, false, nil
		}
		return entities.Message{}, false, r.logError("board_repo_get_failed", err, "message_id", id)
	}
	return row.toEntity(), true, nil
}

func (r *Repository) UpdateMessage(ctx context.Context, input ports.UpdateMessageInput) error {
	err := r.db.WithContext(ctx).
		Model(&messageModel{}).
		Where("message_id = ?", input.MessageID).
		Updates(map[string]any{
			"content":    input.Content,
			"updated_at": input.At.UTC(),
		}).Error
	if err != nil {
		return r.logError("board_repo_update_failed", err, "message_id", input.MessageID)
	}
	return nil
}

func (r *Repository) DeleteMessage(ctx context.Context, id string) error {
	if err := r.db.WithContext(ctx).
		Where("message_id = ?", id).
		Delete(&messageModel{}).Error; err != nil {
		return r.logError("board_repo_delete_failed", err, "message_id", id)
	}
	return nil
}

func (r *Repository) ListMessages(ctx context.Context, limit int) ([]entities.Message, error) {
	if limit <= 0 {
		limit = 100
	}
	var rows []messageModel
	if err := r.db.WithContext(ctx).
		Order("posted_at DESC").
		Limit(limit).
		Find(&rows).Error; err != nil {
		return nil, r.logError("board_repo_list_failed", err, "limit", limit)
	}
	items := make([]entities.Message, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items, nil
}

func (r *Repository) logError(event string, err error, attrs ...any) error {
	fields := make([]any, 0, len(attrs)+8)
	fields = append(fields,
		"event", event,
		"module", "ledger-apps/message-board",
		"layer", "adapter",
		"error", err.Error(),
	)
	fields = append(fields, attrs...)
	r.logger.Error("message board repository operation failed", fields...)
	return err
}

type messageModel struct {
	MessageID string    `gorm:"column:message_id;primaryKey"`
	Author    string    `gorm:"column:author"`
	Content   string    `gorm:"column:content"`
	PostedAt  time.Time `gorm:"column:posted_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (messageModel) TableName() string {
	return "board_messages"
}

func (m messageModel) toEntity() entities.Message {
	return entities.Message{
		MessageID: m.MessageID,
		Author:    m.Author,
		Content:   m.Content,
		PostedAt:  m.PostedAt.UTC(),
		UpdatedAt: m.UpdatedAt.UTC(),
	}
}

var _ ports.Repository = (*Repository)(nil)
