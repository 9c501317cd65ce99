package accesscontrol

import (
	"context"
	"log/slog"
	"time"

	httpadapter "govledger/contexts/identity-access/access-control/adapters/http"
	"govledger/contexts/identity-access/access-control/adapters/memory"
	"govledger/contexts/identity-access/access-control/application/commands"
	"govledger/contexts/identity-access/access-control/application/queries"
	"govledger/contexts/identity-access/access-control/ports"
	"govledger/internal/shared/ledgerseq"
)

type Module struct {
	Handler       httpadapter.Handler
	Access        commands.AccessUseCase
	Authorization queries.AuthorizationUseCase
	Store         *memory.Store
}

type Dependencies struct {
	Repo      ports.Repository
	Cache     ports.AuthorizationCache
	Clock     ports.Clock
	IDGen     ports.IDGenerator
	Sequencer *ledgerseq.Sequencer
	CacheTTL  time.Duration
	Logger    *slog.Logger
}

func NewModule(deps Dependencies) Module {
	accessUseCase := commands.AccessUseCase{
		Repo:      deps.Repo,
		Cache:     deps.Cache,
		Clock:     deps.Clock,
		IDGen:     deps.IDGen,
		Sequencer: deps.Sequencer,
		Logger:    deps.Logger,
	}
	authorizationUseCase := queries.AuthorizationUseCase{
		Repo:     deps.Repo,
		Cache:    deps.Cache,
		CacheTTL: deps.CacheTTL,
		Logger:   deps.Logger,
	}
	return Module{
		Handler: httpadapter.Handler{
			Access:        accessUseCase,
			Authorization: authorizationUseCase,
			Logger:        deps.Logger,
		},
		Access:        accessUseCase,
		Authorization: authorizationUseCase,
	}
}

// NewInMemoryModule seeds the deployer as owner and first admin, matching
// what instantiation on the host ledger does.
func NewInMemoryModule(deployer string, sequencer *ledgerseq.Sequencer, logger *slog.Logger) Module {
	store := memory.NewStore()
	_ = store.EnsureDeployed(context.Background(), deployer, time.Now().UTC())
	module := NewModule(Dependencies{
		Repo:      store,
		Cache:     store,
		Clock:     store,
		IDGen:     store,
		Sequencer: sequencer,
		Logger:    logger,
	})
	module.Store = store
	return module
}
