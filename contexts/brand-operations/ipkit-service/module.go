package ipkitservice

import (
	"context"
	"log/slog"

	httpadapter "fanforge/contexts/brand-operations/ipkit-service/adapters/http"
	"fanforge/contexts/brand-operations/ipkit-service/adapters/memory"
	"fanforge/contexts/brand-operations/ipkit-service/application/commands"
	"fanforge/contexts/brand-operations/ipkit-service/application/queries"
	"fanforge/contexts/brand-operations/ipkit-service/ports"
)

type Module struct {
	Handler httpadapter.Handler
	Store   *memory.Store
}

type Dependencies struct {
	Kits      ports.KitRepository
	Assets    ports.AssetRepository
	Blobs     ports.BlobStore
	Authority ports.BrandAuthority
	Clock     ports.Clock
	IDGen     ports.IDGenerator
	Logger    *slog.Logger
}

func NewModule(deps Dependencies) Module {
	manageKits := commands.ManageKitUseCase{
		Kits:      deps.Kits,
		Authority: deps.Authority,
		Clock:     deps.Clock,
		IDGen:     deps.IDGen,
		Logger:    deps.Logger,
	}
	manageAssets := commands.ManageAssetUseCase{
		Kits:      deps.Kits,
		Assets:    deps.Assets,
		Blobs:     deps.Blobs,
		Authority: deps.Authority,
		Clock:     deps.Clock,
		IDGen:     deps.IDGen,
		Logger:    deps.Logger,
	}
	queryUseCase := queries.QueryUseCase{
		Kits:   deps.Kits,
		Assets: deps.Assets,
		Blobs:  deps.Blobs,
	}

	return Module{
		Handler: httpadapter.Handler{
			ManageKits:   manageKits,
			ManageAssets: manageAssets,
			Queries:      queryUseCase,
			Logger:       deps.Logger,
		},
	}
}

// AuthorityFunc adapts a plain function to the BrandAuthority port.
type AuthorityFunc func(userID string, brandID string) bool

func (f AuthorityFunc) CanManageBrand(_ context.Context, userID string, brandID string) (bool, error) {
	return f(userID, brandID), nil
}

// NewInMemoryModule wires the module against the in-memory store, which also
// doubles as the blob store. Tests and local development only.
func NewInMemoryModule(seed memory.Seed, authority AuthorityFunc, logger *slog.Logger) Module {
	store := memory.NewStore(seed)
	if authority == nil {
		authority = func(string, string) bool { return true }
	}
	module := NewModule(Dependencies{
		Kits:      store,
		Assets:    store,
		Blobs:     store,
		Authority: authority,
		Clock:     store,
		IDGen:     store,
		Logger:    logger,
	})
	module.Store = store
	return module
}
