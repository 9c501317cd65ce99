package votingsystem

import (
	"log/slog"

	httpadapter "govledger/contexts/governance/voting-system/adapters/http"
	"govledger/contexts/governance/voting-system/adapters/memory"
	"govledger/contexts/governance/voting-system/application/commands"
	"govledger/contexts/governance/voting-system/application/queries"
	"govledger/contexts/governance/voting-system/application/workers"
	"govledger/contexts/governance/voting-system/ports"
	"govledger/internal/shared/ledgerseq"
)

type Module struct {
	Handler   httpadapter.Handler
	Proposals commands.ProposalUseCase
	Queries   queries.ProposalQueryUseCase
	Finalizer workers.Finalizer
	Store     *memory.Store
}

type Dependencies struct {
	Repo      ports.ProposalRepository
	Authz     ports.AuthorizationProvider
	Heights   ports.BlockClock
	Clock     ports.Clock
	Sequencer *ledgerseq.Sequencer
	Logger    *slog.Logger
}

func NewModule(deps Dependencies) Module {
	proposalUseCase := commands.ProposalUseCase{
		Repo:      deps.Repo,
		Authz:     deps.Authz,
		Heights:   deps.Heights,
		Clock:     deps.Clock,
		Sequencer: deps.Sequencer,
		Logger:    deps.Logger,
	}
	queryUseCase := queries.ProposalQueryUseCase{
		Repo: deps.Repo,
	}
	return Module{
		Handler: httpadapter.Handler{
			Proposals: proposalUseCase,
			Queries:   queryUseCase,
			Logger:    deps.Logger,
		},
		Proposals: proposalUseCase,
		Queries:   queryUseCase,
		Finalizer: workers.Finalizer{
			Repo:      deps.Repo,
			Heights:   deps.Heights,
			Proposals: proposalUseCase,
			Logger:    deps.Logger,
		},
	}
}

// NewInMemoryModule backs the repository and the block clock with one memory
// store; tests drive time through Store.SetHeight.
func NewInMemoryModule(authz ports.AuthorizationProvider, sequencer *ledgerseq.Sequencer, logger *slog.Logger) Module {
	store := memory.NewStore()
	module := NewModule(Dependencies{
		Repo:      store,
		Authz:     authz,
		Heights:   store,
		Clock:     store,
		Sequencer: sequencer,
		Logger:    logger,
	})
	module.Store = store
	return module
}
