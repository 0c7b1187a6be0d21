package notificationservice

import (
	"log/slog"

	httpadapter "fanforge/contexts/creator-community/notification-service/adapters/http"
	"fanforge/contexts/creator-community/notification-service/adapters/memory"
	"fanforge/contexts/creator-community/notification-service/application/commands"
	"fanforge/contexts/creator-community/notification-service/application/queries"
	"fanforge/contexts/creator-community/notification-service/ports"
)

type Module struct {
	Handler httpadapter.Handler
	Record  commands.RecordNotificationUseCase
	Store   *memory.Store
}

type Dependencies struct {
	Repository ports.NotificationRepository
	Clock      ports.Clock
	IDGen      ports.IDGenerator
	Logger     *slog.Logger
}

func NewModule(deps Dependencies) Module {
	record := commands.RecordNotificationUseCase{
		Repository: deps.Repository,
		Clock:      deps.Clock,
		IDGen:      deps.IDGen,
		Logger:     deps.Logger,
	}
	markRead := commands.MarkReadUseCase{
		Repository: deps.Repository,
		Clock:      deps.Clock,
		Logger:     deps.Logger,
	}
	queryUseCase := queries.QueryUseCase{
		Repository: deps.Repository,
	}

	return Module{
		Handler: httpadapter.Handler{
			MarkRead: markRead,
			Queries:  queryUseCase,
			Logger:   deps.Logger,
		},
		Record: record,
	}
}

// NewInMemoryModule wires the module against the in-memory store. Tests and
// local development only.
func NewInMemoryModule(seed memory.Seed, logger *slog.Logger) Module {
	store := memory.NewStore(seed)
	module := NewModule(Dependencies{
		Repository: store,
		Clock:      store,
		IDGen:      store,
		Logger:     logger,
	})
	module.Store = store
	return module
}
