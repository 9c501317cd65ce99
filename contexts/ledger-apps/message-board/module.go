package messageboard

import (
	"log/slog"

	httpadapter "govledger/contexts/ledger-apps/message-board/adapters/http"
	"govledger/contexts/ledger-apps/message-board/adapters/memory"
	"govledger/contexts/ledger-apps/message-board/application"
	"govledger/contexts/ledger-apps/message-board/ports"
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
	Clock     ports.Clock
	IDGen     ports.IDGenerator
	Sequencer *ledgerseq.Sequencer
	Logger    *slog.Logger
}

func NewModule(deps Dependencies) Module {
	service := application.Service{
		Repo:      deps.Repo,
		Authz:     deps.Authz,
		Clock:     deps.Clock,
		IDGen:     deps.IDGen,
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
		Clock:     store,
		IDGen:     store,
		Sequencer: sequencer,
		Logger:    logger,
	})
	module.Store = store
	return module
}
