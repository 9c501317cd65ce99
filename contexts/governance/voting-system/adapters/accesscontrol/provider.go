package accesscontroladapter

import (
	"context"

	"govledger/contexts/governance/voting-system/ports"
	accessqueries "govledger/contexts/identity-access/access-control/application/queries"
)

// Provider bridges the access-control read side into this module's
// authorization port. Calls are synchronous reads against the shared
// authorization root.
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
