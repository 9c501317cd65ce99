package accesscontroladapter

import (
	"context"

	accessqueries "govledger/contexts/identity-access/access-control/application/queries"
	"govledger/contexts/ledger-apps/message-board/ports"
)

// Provider bridges the access-control read side into this module's
// authorization port.
type Provider struct {
	Authorization accessqueries.AuthorizationUseCase
}

func (p Provider) IsAuthorized(ctx context.Context, principal string) (bool, error) {
	return p.Authorization.IsAuthorized(ctx, principal)
}

func (p Provider) HasAdminRole(ctx context.Context, principal string) (bool, error) {
	return p.Authorization.HasAdminRole(ctx, principal)
}

var _ ports.AuthorizationProvider = (Provider{})
