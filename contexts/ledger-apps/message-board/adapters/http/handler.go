package httpadapter

import (
	"context"
	"log/slog"
	"time"

	"govledger/contexts/ledger-apps/message-board/application"
	"govledger/contexts/ledger-apps/message-board/domain/entities"
	httptransport "govledger/contexts/ledger-apps/message-board/transport/http"
)

type Handler struct {
	Service application.Service
	Logger  *slog.Logger
}

func (h Handler) PostMessageHandler(ctx context.Context, caller string, req httptransport.PostMessageRequest) (httptransport.MessageResponse, error) {
	message, err := h.Service.PostMessage(ctx, caller, req.Content)
	if err != nil {
		return httptransport.MessageResponse{}, err
	}
	return mapMessage(message), nil
}

func (h Handler) UpdateMessageHandler(ctx context.Context, caller string, id string, req httptransport.UpdateMessageRequest) (httptransport.MessageResponse, error) {
	message, err := h.Service.UpdateMessage(ctx, caller, id, req.Content)
	if err != nil {
		return httptransport.MessageResponse{}, err
	}
	return mapMessage(message), nil
}

func (h Handler) DeleteMessageHandler(ctx context.Context, caller string, id string) error {
	return h.Service.DeleteMessage(ctx, caller, id)
}

func (h Handler) MessageHandler(ctx context.Context, id string) (httptransport.MessageResponse, error) {
	message, err := h.Service.GetMessage(ctx, id)
	if err != nil {
		return httptransport.MessageResponse{}, err
	}
	return mapMessage(message), nil
}

func (h Handler) MessageListHandler(ctx context.Context, limit int) (httptransport.MessageListResponse, error) {
	messages, err := h.Service.ListMessages(ctx, limit)
	if err != nil {
		return httptransport.MessageListResponse{}, err
	}
	items := make([]httptransport.MessageResponse, 0, len(messages))
	for _, message := range messages {
		items = append(items, mapMessage(message))
	}
	return httptransport.MessageListResponse{Items: items}, nil
}

func mapMessage(message entities.Message) httptransport.MessageResponse {
	return httptransport.MessageResponse{
		MessageID: message.MessageID,
		Author:    message.Author,
		Content:   message.Content,
		PostedAt:  message.PostedAt.UTC().Format(time.RFC3339),
		UpdatedAt: message.UpdatedAt.UTC().Format(time.RFC3339),
	}
}
