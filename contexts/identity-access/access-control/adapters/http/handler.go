package httpadapter

import (
	"context"
	"log/slog"
	"time"

	"govledger/contexts/identity-access/access-control/application/commands"
	"govledger/contexts/identity-access/access-control/application/queries"
	httptransport "govledger/contexts/identity-access/access-control/transport/http"
)

type Handler struct {
	Access        commands.AccessUseCase
	Authorization queries.AuthorizationUseCase
	Logger        *slog.Logger
}

func (h Handler) AddAdminHandler(ctx context.Context, caller string, req httptransport.AddAdminRequest) error {
	return h.Access.AddAdmin(ctx, commands.AddAdminCommand{
		Caller: caller,
		Target: req.Principal,
	})
}

func (h Handler) RemoveAdminHandler(ctx context.Context, caller string, req httptransport.RemoveAdminRequest) error {
	return h.Access.RemoveAdmin(ctx, commands.RemoveAdminCommand{
		Caller: caller,
		Target: req.Principal,
	})
}

func (h Handler) GrantUserRoleHandler(ctx context.Context, caller string, req httptransport.GrantUserRoleRequest) error {
	return h.Access.GrantUserRole(ctx, commands.GrantUserRoleCommand{
		Caller: caller,
		Target: req.Principal,
	})
}

func (h Handler) RevokeUserRoleHandler(ctx context.Context, caller string, req httptransport.RevokeUserRoleRequest) error {
	return h.Access.RevokeUserRole(ctx, commands.RevokeUserRoleCommand{
		Caller: caller,
		Target: req.Principal,
	})
}

func (h Handler) RenounceRoleHandler(ctx context.Context, caller string) error {
	return h.Access.RenounceRole(ctx, commands.RenounceRoleCommand{
		Caller: caller,
	})
}

func (h Handler) TransferOwnershipHandler(ctx context.Context, caller string, req httptransport.TransferOwnershipRequest) error {
	return h.Access.TransferOwnership(ctx, commands.TransferOwnershipCommand{
		Caller:   caller,
		NewOwner: req.NewOwner,
	})
}

func (h Handler) OwnerHandler(ctx context.Context) (httptransport.OwnerResponse, error) {
	owner, err := h.Authorization.GetContractOwner(ctx)
	if err != nil {
		return httptransport.OwnerResponse{}, err
	}
	return httptransport.OwnerResponse{Owner: owner}, nil
}

func (h Handler) AdminCheckHandler(ctx context.Context, principal string) (httptransport.AdminCheckResponse, error) {
	admin, err := h.Authorization.HasAdminRole(ctx, principal)
	if err != nil {
		return httptransport.AdminCheckResponse{}, err
	}
	return httptransport.AdminCheckResponse{
		Principal: principal,
		Admin:     admin,
	}, nil
}

func (h Handler) RoleCheckHandler(ctx context.Context, principal string) (httptransport.RoleCheckResponse, error) {
	has, err := h.Authorization.HasRole(ctx, principal)
	if err != nil {
		return httptransport.RoleCheckResponse{}, err
	}
	return httptransport.RoleCheckResponse{
		Principal: principal,
		HasRole:   has,
	}, nil
}

func (h Handler) AuthorizationHandler(ctx context.Context, principal string) (httptransport.AuthorizationResponse, error) {
	authorized, err := h.Authorization.IsAuthorized(ctx, principal)
	if err != nil {
		return httptransport.AuthorizationResponse{}, err
	}
	return httptransport.AuthorizationResponse{
		Principal:  principal,
		Authorized: authorized,
	}, nil
}

func (h Handler) RoleHandler(ctx context.Context, principal string) (httptransport.RoleResponse, error) {
	role, found, err := h.Authorization.GetUserRole(ctx, principal)
	if err != nil {
		return httptransport.RoleResponse{}, err
	}
	return httptransport.RoleResponse{
		Principal: principal,
		Role:      string(role),
		Found:     found,
	}, nil
}

func (h Handler) AdminListHandler(ctx context.Context) (httptransport.AdminListResponse, error) {
	admins, err := h.Authorization.ListAdmins(ctx)
	if err != nil {
		return httptransport.AdminListResponse{}, err
	}
	return httptransport.AdminListResponse{Admins: admins}, nil
}

func (h Handler) AuditTrailHandler(ctx context.Context, limit int) (httptransport.AuditTrailResponse, error) {
	entries, err := h.Authorization.ListAuditTrail(ctx, limit)
	if err != nil {
		return httptransport.AuditTrailResponse{}, err
	}
	items := make([]httptransport.AuditEntryItem, 0, len(entries))
	for _, entry := range entries {
		items = append(items, httptransport.AuditEntryItem{
			AuditID:    entry.AuditID,
			Action:     entry.Action,
			Actor:      entry.Actor,
			Subject:    entry.Subject,
			OccurredAt: entry.OccurredAt.UTC().Format(time.RFC3339),
		})
	}
	return httptransport.AuditTrailResponse{Items: items}, nil
}
