package httpadapter

import (
	"context"
	"log/slog"

	"govledger/contexts/ledger-apps/counter/application"
	httptransport "govledger/contexts/ledger-apps/counter/transport/http"
)

type Handler struct {
	Service application.Service
	Logger  *slog.Logger
}

func (h Handler) IncrementHandler(ctx context.Context, caller string) (httptransport.CountResponse, error) {
	count, err := h.Service.Increment(ctx, caller)
	if err != nil {
		return httptransport.CountResponse{}, err
	}
	return httptransport.CountResponse{Count: count}, nil
}

func (h Handler) DecrementHandler(ctx context.Context, caller string) (httptransport.CountResponse, error) {
	count, err := h.Service.Decrement(ctx, caller)
	if err != nil {
		return httptransport.CountResponse{}, err
	}
	return httptransport.CountResponse{Count: count}, nil
}

func (h Handler) CountHandler(ctx context.Context) (httptransport.CountResponse, error) {
	count, err := h.Service.GetCount(ctx)
	if err != nil {
		return httptransport.CountResponse{}, err
	}
	return httptransport.CountResponse{Count: count}, nil
}
