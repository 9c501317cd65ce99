package application

import (
	"context"
	"log/slog"
	"strings"

	"govledger/contexts/ledger-apps/message-board/domain/entities"
	domainerrors "govledger/contexts/ledger-apps/message-board/domain/errors"
	"govledger/contexts/ledger-apps/message-board/ports"
	"govledger/internal/shared/ledgerseq"
)

type Service struct {
	Repo      ports.Repository
	Authz     ports.AuthorizationProvider
	Clock     ports.Clock
	IDGen     ports.IDGenerator
	Sequencer *ledgerseq.Sequencer
	Logger    *slog.Logger
}

// PostMessage stores a new message attributed to caller.
func (s Service) PostMessage(ctx context.Context, caller string, content string) (entities.Message, error) {
	logger := s.logger()
	caller = strings.TrimSpace(caller)
	content = strings.TrimSpace(content)

	var message entities.Message
	err := s.Sequencer.Do(func() error {
		authorized, err := s.Authz.IsAuthorized(ctx, caller)
		if err != nil {
			return err
		}
		if !authorized {
			return domainerrors.ErrUnauthorized
		}
		if !entities.ValidContent(content) {
			return domainerrors.ErrInvalidMessage
		}

		id, err := s.IDGen.NewID(ctx)
		if err != nil {
			return err
		}
		now := s.Clock.Now().UTC()
		message = entities.Message{
			MessageID: id,
			Author:    caller,
			Content:   content,
			PostedAt:  now,
			UpdatedAt: now,
		}
		return s.Repo.CreateMessage(ctx, message)
	})
	if err != nil {
		logger.Warn("post message rejected",
			"event", "board_post_message_rejected",
			"module", "ledger-apps/message-board",
			"layer", "application",
			"caller", caller,
			"code", domainerrors.Code(err),
			"error", err.Error(),
		)
		return entities.Message{}, err
	}

	logger.Info("post message completed",
		"event", "board_post_message_completed",
		"module", "ledger-apps/message-board",
		"layer", "application",
		"caller", caller,
		"message_id", message.MessageID,
	)
	return message, nil
}

// UpdateMessage replaces the content of a message its author posted.
func (s Service) UpdateMessage(ctx context.Context, caller string, id string, content string) (entities.Message, error) {
	logger := s.logger()
	caller = strings.TrimSpace(caller)
	content = strings.TrimSpace(content)

	var message entities.Message
	err := s.Sequencer.Do(func() error {
		existing, found, err := s.Repo.GetMessage(ctx, id)
		if err != nil {
			return err
		}
		if !found {
			return domainerrors.ErrMessageNotFound
		}
		if existing.Author != caller {
			return domainerrors.ErrNotMessageOwner
		}
		if !entities.ValidContent(content) {
			return domainerrors.ErrInvalidMessage
		}

		now := s.Clock.Now().UTC()
		if err := s.Repo.UpdateMessage(ctx, ports.UpdateMessageInput{
			MessageID: id,
			Content:   content,
			At:        now,
		}); err != nil {
			return err
		}
		message = existing
		message.Content = content
		message.UpdatedAt = now
		return nil
	})
	if err != nil {
		logger.Warn("update message rejected",
			"event", "board_update_message_rejected",
			"module", "ledger-apps/message-board",
			"layer", "application",
			"caller", caller,
			"message_id", id,
			"code", domainerrors.Code(err),
			"error", err.Error(),
		)
		return entities.Message{}, err
	}

	logger.Info("update message completed",
		"event", "board_update_message_completed",
		"module", "ledger-apps/message-board",
		"layer", "application",
		"caller", caller,
		"message_id", id,
	)
	return message, nil
}

// DeleteMessage removes a message. The author may always delete their own;
// admins may delete anyone's.
func (s Service) DeleteMessage(ctx context.Context, caller string, id string) error {
	logger := s.logger()
	caller = strings.TrimSpace(caller)

	err := s.Sequencer.Do(func() error {
		existing, found, err := s.Repo.GetMessage(ctx, id)
		if err != nil {
			return err
		}
		if !found {
			return domainerrors.ErrMessageNotFound
		}
		if existing.Author != caller {
			admin, err := s.Authz.HasAdminRole(ctx, caller)
			if err != nil {
				return err
			}
			if !admin {
				return domainerrors.ErrNotMessageOwner
			}
		}
		return s.Repo.DeleteMessage(ctx, id)
	})
	if err != nil {
		logger.Warn("delete message rejected",
			"event", "board_delete_message_rejected",
			"module", "ledger-apps/message-board",
			"layer", "application",
			"caller", caller,
			"message_id", id,
			"code", domainerrors.Code(err),
			"error", err.Error(),
		)
		return err
	}

	logger.Info("delete message completed",
		"event", "board_delete_message_completed",
		"module", "ledger-apps/message-board",
		"layer", "application",
		"caller", caller,
		"message_id", id,
	)
	return nil
}

func (s Service) GetMessage(ctx context.Context, id string) (entities.Message, error) {
	message, found, err := s.Repo.GetMessage(ctx, id)
	if err != nil {
		return entities.Message{}, err
	}
	if !found {
		return entities.Message{}, domainerrors.ErrMessageNotFound
	}
	return message, nil
}

func (s Service) ListMessages(ctx context.Context, limit int) ([]entities.Message, error) {
	return s.Repo.ListMessages(ctx, limit)
}

func (s Service) logger() *slog.Logger {
	if s.Logger == nil {
		return slog.Default()
	}
	return s.Logger
}
