package electionservice

import (
	"log/slog"

	httpadapter "concord/contexts/group-governance/election-service/adapters/http"
	"concord/contexts/group-governance/election-service/adapters/memory"
	"concord/contexts/group-governance/election-service/application/commands"
	"concord/contexts/group-governance/election-service/application/queries"
	"concord/contexts/group-governance/election-service/application/workers"
	"concord/contexts/group-governance/election-service/ports"
)

type Module struct {
	Handler httpadapter.Handler
	Closer  workers.ElectionCloser
	Store   *memory.Store
}

type Dependencies struct {
	Repo   ports.Repository
	Fanout ports.FanoutPublisher
	Clock  ports.Clock
	Logger *slog.Logger
}

func NewModule(deps Dependencies) Module {
	commandService := commands.Service{
		Repo:   deps.Repo,
		Fanout: deps.Fanout,
		Clock:  deps.Clock,
		Logger: deps.Logger,
	}
	queryService := queries.Service{Repo: deps.Repo}
	return Module{
		Handler: httpadapter.Handler{
			Commands: commandService,
			Queries:  queryService,
			Logger:   deps.Logger,
		},
		Closer: workers.ElectionCloser{
			Repo:     deps.Repo,
			Commands: commandService,
			Clock:    deps.Clock,
			Logger:   deps.Logger,
		},
	}
}

func NewInMemoryModule(fanout ports.FanoutPublisher, logger *slog.Logger) Module {
	store := memory.NewStore()
	module := NewModule(Dependencies{
		Repo:   store,
		Fanout: fanout,
		Clock:  store,
		Logger: logger,
	})
	module.Store = store
	return module
}
