package counter

import (
	"log/slog"

	httpadapter "govledger/contexts/ledger-apps/counter/adapters/http"
	"govledger/contexts/ledger-apps/counter/adapters/memory"
	"govledger/contexts/ledger-apps/counter/application"
	"govledger/contexts/ledger-apps/counter/ports"
	"govledger/internal/shared/ledgerseq"
)

type Module struct {
	Handler httpadapter.Handler
	Service application.Service
	Store   *memory.Store
}

type Dependencies struct {
	Repo      ports.Repository
	Authz     ports.AuthorizationProvider
	Sequencer *ledgerseq.Sequencer
	Logger    *slog.Logger
}

func NewModule(deps Dependencies) Module {
	service := application.Service{
		Repo:      deps.Repo,
		Authz:     deps.Authz,
		Sequencer: deps.Sequencer,
		Logger:    deps.Logger,
	}
	return Module{
		Handler: httpadapter.Handler{
			Service: service,
			Logger:  deps.Logger,
		},
		Service: service,
	}
}

func NewInMemoryModule(authz ports.AuthorizationProvider, sequencer *ledgerseq.Sequencer, logger *slog.Logger) Module {
	store := memory.NewStore()
	module := NewModule(Dependencies{
		Repo:      store,
		Authz:     authz,
		Sequencer: sequencer,
		Logger:    logger,
	})
	module.Store = store
	return module
}
