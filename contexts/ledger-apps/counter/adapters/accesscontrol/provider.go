package accesscontroladapter

import (
	"context"

	accessqueries "govledger/contexts/identity-access/access-control/application/queries"
	"govledger/contexts/ledger-apps/counter/ports"
)

// Provider bridges the access-control read side into this module's
// authorization port.
type Provider struct {
	Authorization accessqueries.AuthorizationUseCase
}

func (p Provider) IsAuthorized(ctx context.Context, principal string) (bool, error) {
	return p.Authorization.IsAuthorized(ctx, principal)
}

var _ ports.AuthorizationProvider = (Provider{})
