package notificationservice

import (
	"log/slog"

	httpadapter "concord/contexts/group-governance/notification-service/adapters/http"
	"concord/contexts/group-governance/notification-service/adapters/memory"
	"concord/contexts/group-governance/notification-service/application"
	"concord/contexts/group-governance/notification-service/application/commands"
	"concord/contexts/group-governance/notification-service/application/queries"
	"concord/contexts/group-governance/notification-service/ports"
)

type Module struct {
	Handler    httpadapter.Handler
	Dispatcher application.Dispatcher
	Store      *memory.Store
}

type Dependencies struct {
	Repo   ports.Repository
	Mailer ports.Mailer
	Clock  ports.Clock
	Logger *slog.Logger
}

func NewModule(deps Dependencies) Module {
	return Module{
		Handler: httpadapter.Handler{
			Commands: commands.Service{Repo: deps.Repo, Clock: deps.Clock, Logger: deps.Logger},
			Queries:  queries.Service{Repo: deps.Repo},
			Logger:   deps.Logger,
		},
		Dispatcher: application.Dispatcher{
			Repo:   deps.Repo,
			Mailer: deps.Mailer,
			Clock:  deps.Clock,
			Logger: deps.Logger,
		},
	}
}

func NewInMemoryModule(mailer ports.Mailer, logger *slog.Logger) Module {
	store := memory.NewStore()
	module := NewModule(Dependencies{
		Repo:   store,
		Mailer: mailer,
		Clock:  store,
		Logger: logger,
	})
	module.Store = store
	return module
}
