package membershipservice

import (
	"log/slog"

	httpadapter "concord/contexts/group-governance/membership-service/adapters/http"
	"concord/contexts/group-governance/membership-service/adapters/memory"
	"concord/contexts/group-governance/membership-service/application/commands"
	"concord/contexts/group-governance/membership-service/application/queries"
	"concord/contexts/group-governance/membership-service/ports"
)

type Module struct {
	Handler httpadapter.Handler
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
