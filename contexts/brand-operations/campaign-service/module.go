package campaignservice

import (
	"context"
	"log/slog"

	httpadapter "fanforge/contexts/brand-operations/campaign-service/adapters/http"
	"fanforge/contexts/brand-operations/campaign-service/adapters/memory"
	"fanforge/contexts/brand-operations/campaign-service/application/commands"
	"fanforge/contexts/brand-operations/campaign-service/application/queries"
	"fanforge/contexts/brand-operations/campaign-service/ports"
)

type Module struct {
	Handler httpadapter.Handler
	Store   *memory.Store
}

type Dependencies struct {
	Repository ports.CampaignRepository
	History    ports.HistoryRepository
	Authority  ports.BrandAuthority
	Clock      ports.Clock
	IDGen      ports.IDGenerator
	Logger     *slog.Logger
}

func NewModule(deps Dependencies) Module {
	createCampaign := commands.CreateCampaignUseCase{
		Repository: deps.Repository,
		Authority:  deps.Authority,
		Clock:      deps.Clock,
		IDGen:      deps.IDGen,
		Logger:     deps.Logger,
	}
	updateCampaign := commands.UpdateCampaignUseCase{
		Repository: deps.Repository,
		Authority:  deps.Authority,
		Clock:      deps.Clock,
		Logger:     deps.Logger,
	}
	lifecycle := commands.CampaignLifecycleUseCase{
		Repository: deps.Repository,
		History:    deps.History,
		Authority:  deps.Authority,
		Clock:      deps.Clock,
		IDGen:      deps.IDGen,
		Logger:     deps.Logger,
	}
	queryUseCase := queries.QueryUseCase{
		Repository: deps.Repository,
	}

	return Module{
		Handler: httpadapter.Handler{
			CreateCampaign: createCampaign,
			UpdateCampaign: updateCampaign,
			Lifecycle:      lifecycle,
			Queries:        queryUseCase,
			Logger:         deps.Logger,
		},
	}
}

// AuthorityFunc adapts a plain function to the BrandAuthority port.
type AuthorityFunc func(userID string, brandID string) bool

func (f AuthorityFunc) CanManageBrand(_ context.Context, userID string, brandID string) (bool, error) {
	return f(userID, brandID), nil
}

// NewInMemoryModule wires the module against the in-memory store. Tests and
// local development only.
func NewInMemoryModule(seed memory.Seed, authority AuthorityFunc, logger *slog.Logger) Module {
	store := memory.NewStore(seed)
	if authority == nil {
		authority = func(string, string) bool { return true }
	}
	module := NewModule(Dependencies{
		Repository: store,
		History:    store,
		Authority:  authority,
		Clock:      store,
		IDGen:      store,
		Logger:     logger,
	})
	module.Store = store
	return module
}
