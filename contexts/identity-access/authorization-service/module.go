package authorizationservice

import (
	"context"
	"log/slog"
	"strings"
	"time"

	httpadapter "fanforge/contexts/identity-access/authorization-service/adapters/http"
	"fanforge/contexts/identity-access/authorization-service/adapters/memory"
	"fanforge/contexts/identity-access/authorization-service/application/commands"
	"fanforge/contexts/identity-access/authorization-service/application/queries"
	"fanforge/contexts/identity-access/authorization-service/domain/services"
	"fanforge/contexts/identity-access/authorization-service/ports"
)

type Module struct {
	Handler      httpadapter.Handler
	CheckUseCase queries.CheckPermissionUseCase
	Store        *memory.Store
	Cache        *memory.PermissionCache
}

type Dependencies struct {
	Repository         ports.Repository
	PermissionCache    ports.PermissionCache
	Clock              ports.Clock
	IDGen              ports.IDGenerator
	PermissionCacheTTL time.Duration
	Logger             *slog.Logger
}

func NewModule(deps Dependencies) Module {
	checkPermission := queries.CheckPermissionUseCase{
		Repository:         deps.Repository,
		PermissionCache:    deps.PermissionCache,
		Clock:              deps.Clock,
		PermissionCacheTTL: deps.PermissionCacheTTL,
		Logger:             deps.Logger,
	}
	// Role management requires brand.manage on the target brand, which
	// platform admins hold everywhere.
	adminAuthority := permissionAuthority{check: checkPermission}
	grantRole := commands.GrantRoleUseCase{
		Repository:      deps.Repository,
		PermissionCache: deps.PermissionCache,
		Authority:       adminAuthority,
		Clock:           deps.Clock,
		IDGen:           deps.IDGen,
		Logger:          deps.Logger,
	}
	revokeRole := commands.RevokeRoleUseCase{
		Repository:      deps.Repository,
		PermissionCache: deps.PermissionCache,
		Authority:       adminAuthority,
		Clock:           deps.Clock,
		Logger:          deps.Logger,
	}
	listRoles := queries.ListUserRolesUseCase{Repository: deps.Repository}

	return Module{
		Handler: httpadapter.Handler{
			GrantRole:       grantRole,
			RevokeRole:      revokeRole,
			CheckPermission: checkPermission,
			ListRoles:       listRoles,
			Logger:          deps.Logger,
		},
		CheckUseCase: checkPermission,
	}
}

type permissionAuthority struct {
	check queries.CheckPermissionUseCase
}

func (a permissionAuthority) CanManageRoles(ctx context.Context, actorID string, brandID string) (bool, error) {
	decision, err := a.check.Execute(ctx, queries.CheckPermissionQuery{
		UserID:     strings.TrimSpace(actorID),
		Permission: services.PermissionBrandManage,
		BrandID:    strings.TrimSpace(brandID),
	})
	if err != nil {
		return false, err
	}
	return decision.Allowed, nil
}

// NewInMemoryModule wires the module against the in-memory store and cache.
// Tests and local development only.
func NewInMemoryModule(seed memory.Seed, logger *slog.Logger) Module {
	store := memory.NewStore(seed)
	cache := memory.NewPermissionCache()
	module := NewModule(Dependencies{
		Repository:      store,
		PermissionCache: cache,
		Clock:           store,
		IDGen:           store,
		Logger:          logger,
	})
	module.Store = store
	module.Cache = cache
	return module
}
