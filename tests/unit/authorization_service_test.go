package unit

import (
	"context"
	"errors"
	"testing"
	"time"

	authorizationservice "fanforge/contexts/identity-access/authorization-service"
	"fanforge/contexts/identity-access/authorization-service/adapters/memory"
	"fanforge/contexts/identity-access/authorization-service/application/queries"
	"fanforge/contexts/identity-access/authorization-service/domain/entities"
	domainerrors "fanforge/contexts/identity-access/authorization-service/domain/errors"
	httptransport "fanforge/contexts/identity-access/authorization-service/transport/http"
)

func authzSeed() memory.Seed {
	return memory.Seed{Assignments: []entities.RoleAssignment{
		{
			AssignmentID: "seed-admin",
			UserID:       "admin-1",
			Role:         entities.RolePlatformAdmin,
			AssignedBy:   "bootstrap",
			IsActive:     true,
		},
		{
			AssignmentID: "seed-owner",
			UserID:       "owner-1",
			Role:         entities.RoleBrandOwner,
			BrandID:      "brand-1",
			AssignedBy:   "admin-1",
			IsActive:     true,
		},
	}}
}

func TestCheckPermissionBrandScoping(t *testing.T) {
	module := authorizationservice.NewInMemoryModule(authzSeed(), nil)

	inBrand, err := module.Handler.CheckPermissionHandler(context.Background(), httptransport.CheckPermissionRequest{
		UserID:     "owner-1",
		Permission: "submission.review",
		BrandID:    "brand-1",
	})
	if err != nil {
		t.Fatalf("check failed: %v", err)
	}
	if !inBrand.Allowed || inBrand.Reason != "permission_granted" {
		t.Fatalf("owner must review own brand: %+v", inBrand)
	}

	otherBrand, err := module.Handler.CheckPermissionHandler(context.Background(), httptransport.CheckPermissionRequest{
		UserID:     "owner-1",
		Permission: "submission.review",
		BrandID:    "brand-2",
	})
	if err != nil {
		t.Fatalf("check failed: %v", err)
	}
	if otherBrand.Allowed || otherBrand.Reason != "permission_missing" {
		t.Fatalf("brand-scoped role must not leak across brands: %+v", otherBrand)
	}

	// Platform admins match any brand through the wildcard scope.
	adminCheck, err := module.Handler.CheckPermissionHandler(context.Background(), httptransport.CheckPermissionRequest{
		UserID:     "admin-1",
		Permission: "brand.manage",
		BrandID:    "brand-2",
	})
	if err != nil {
		t.Fatalf("check failed: %v", err)
	}
	if !adminCheck.Allowed {
		t.Fatalf("platform admin must manage any brand: %+v", adminCheck)
	}
}

func TestCheckPermissionUsesCacheUntilInvalidated(t *testing.T) {
	module := authorizationservice.NewInMemoryModule(authzSeed(), nil)

	first, err := module.Handler.CheckPermissionHandler(context.Background(), httptransport.CheckPermissionRequest{
		UserID:     "owner-1",
		Permission: "brand.manage",
		BrandID:    "brand-1",
	})
	if err != nil {
		t.Fatalf("check failed: %v", err)
	}
	if first.CacheHit {
		t.Fatalf("first lookup must miss the cache")
	}

	second, err := module.Handler.CheckPermissionHandler(context.Background(), httptransport.CheckPermissionRequest{
		UserID:     "owner-1",
		Permission: "brand.manage",
		BrandID:    "brand-1",
	})
	if err != nil {
		t.Fatalf("check failed: %v", err)
	}
	if !second.CacheHit {
		t.Fatalf("second lookup must hit the cache")
	}

	// Revoking drops the cached entry, so the next decision reflects the
	// revocation immediately.
	if _, err := module.Handler.RevokeRoleHandler(context.Background(), "admin-1", httptransport.RevokeRoleRequest{
		UserID:  "owner-1",
		Role:    "brand_owner",
		BrandID: "brand-1",
	}); err != nil {
		t.Fatalf("revoke failed: %v", err)
	}

	third, err := module.Handler.CheckPermissionHandler(context.Background(), httptransport.CheckPermissionRequest{
		UserID:     "owner-1",
		Permission: "brand.manage",
		BrandID:    "brand-1",
	})
	if err != nil {
		t.Fatalf("check failed: %v", err)
	}
	if third.Allowed {
		t.Fatalf("revoked role must deny on the next check")
	}
	if third.CacheHit {
		t.Fatalf("revocation must invalidate the cache")
	}
}

func TestGrantRoleFlow(t *testing.T) {
	module := authorizationservice.NewInMemoryModule(authzSeed(), nil)

	granted, err := module.Handler.GrantRoleHandler(context.Background(), "admin-1", httptransport.GrantRoleRequest{
		UserID:  "reviewer-1",
		Role:    "brand_reviewer",
		BrandID: "brand-1",
		Reason:  "campaign season staffing",
	})
	if err != nil {
		t.Fatalf("grant failed: %v", err)
	}
	if !granted.Assignment.IsActive || granted.Assignment.AssignedBy != "admin-1" {
		t.Fatalf("unexpected assignment: %+v", granted.Assignment)
	}

	check, err := module.Handler.CheckPermissionHandler(context.Background(), httptransport.CheckPermissionRequest{
		UserID:     "reviewer-1",
		Permission: "submission.review",
		BrandID:    "brand-1",
	})
	if err != nil {
		t.Fatalf("check failed: %v", err)
	}
	if !check.Allowed {
		t.Fatalf("granted reviewer must pass the review check")
	}

	manage, err := module.Handler.CheckPermissionHandler(context.Background(), httptransport.CheckPermissionRequest{
		UserID:     "reviewer-1",
		Permission: "brand.manage",
		BrandID:    "brand-1",
	})
	if err != nil {
		t.Fatalf("check failed: %v", err)
	}
	if manage.Allowed {
		t.Fatalf("reviewers must not manage the brand")
	}

	_, err = module.Handler.GrantRoleHandler(context.Background(), "admin-1", httptransport.GrantRoleRequest{
		UserID:  "reviewer-1",
		Role:    "brand_reviewer",
		BrandID: "brand-1",
	})
	if !errors.Is(err, domainerrors.ErrAssignmentDuplicate) {
		t.Fatalf("expected duplicate assignment error, got %v", err)
	}
}

func TestGrantRoleAuthorizationAndValidation(t *testing.T) {
	module := authorizationservice.NewInMemoryModule(authzSeed(), nil)

	_, err := module.Handler.GrantRoleHandler(context.Background(), "creator-9", httptransport.GrantRoleRequest{
		UserID:  "friend-1",
		Role:    "brand_reviewer",
		BrandID: "brand-1",
	})
	if !errors.Is(err, domainerrors.ErrForbidden) {
		t.Fatalf("expected forbidden for non-manager actor, got %v", err)
	}

	// Brand owners manage their own brand's roles without platform rights.
	if _, err := module.Handler.GrantRoleHandler(context.Background(), "owner-1", httptransport.GrantRoleRequest{
		UserID:  "reviewer-2",
		Role:    "brand_reviewer",
		BrandID: "brand-1",
	}); err != nil {
		t.Fatalf("brand owner grant failed: %v", err)
	}

	_, err = module.Handler.GrantRoleHandler(context.Background(), "admin-1", httptransport.GrantRoleRequest{
		UserID: "friend-1",
		Role:   "superhero",
	})
	if !errors.Is(err, domainerrors.ErrInvalidRole) {
		t.Fatalf("expected invalid role error, got %v", err)
	}

	_, err = module.Handler.GrantRoleHandler(context.Background(), "", httptransport.GrantRoleRequest{
		UserID: "friend-1",
		Role:   "creator",
	})
	if !errors.Is(err, domainerrors.ErrUnauthenticated) {
		t.Fatalf("expected unauthenticated error, got %v", err)
	}
}

func TestRevokeMissingAssignment(t *testing.T) {
	module := authorizationservice.NewInMemoryModule(authzSeed(), nil)

	_, err := module.Handler.RevokeRoleHandler(context.Background(), "admin-1", httptransport.RevokeRoleRequest{
		UserID:  "ghost",
		Role:    "brand_reviewer",
		BrandID: "brand-1",
	})
	if !errors.Is(err, domainerrors.ErrAssignmentNotFound) {
		t.Fatalf("expected assignment not found, got %v", err)
	}
}

func TestListRolesReturnsActiveAssignments(t *testing.T) {
	module := authorizationservice.NewInMemoryModule(authzSeed(), nil)

	listed, err := module.Handler.ListRolesHandler(context.Background(), "owner-1")
	if err != nil {
		t.Fatalf("list roles failed: %v", err)
	}
	if len(listed.Items) != 1 || listed.Items[0].Role != "brand_owner" {
		t.Fatalf("unexpected role list: %+v", listed.Items)
	}

	if _, err := module.Handler.RevokeRoleHandler(context.Background(), "admin-1", httptransport.RevokeRoleRequest{
		UserID:  "owner-1",
		Role:    "brand_owner",
		BrandID: "brand-1",
	}); err != nil {
		t.Fatalf("revoke failed: %v", err)
	}
	listed, err = module.Handler.ListRolesHandler(context.Background(), "owner-1")
	if err != nil {
		t.Fatalf("list roles failed: %v", err)
	}
	if len(listed.Items) != 0 {
		t.Fatalf("revoked assignments must disappear from the list, got %+v", listed.Items)
	}
}

type failingAssignmentRepo struct{}

func (failingAssignmentRepo) ListActiveAssignments(context.Context, string) ([]entities.RoleAssignment, error) {
	return nil, errors.New("store offline")
}

func (failingAssignmentRepo) GrantRole(context.Context, entities.RoleAssignment) error {
	return errors.New("store offline")
}

func (failingAssignmentRepo) RevokeRole(context.Context, string, entities.RoleName, string, string, time.Time) (entities.RoleAssignment, error) {
	return entities.RoleAssignment{}, errors.New("store offline")
}

func TestCheckPermissionDeniesByDefaultOnLookupFailure(t *testing.T) {
	check := queries.CheckPermissionUseCase{Repository: failingAssignmentRepo{}}

	decision, err := check.Execute(context.Background(), queries.CheckPermissionQuery{
		UserID:     "owner-1",
		Permission: "brand.manage",
		BrandID:    "brand-1",
	})
	if err != nil {
		t.Fatalf("lookup failures must not surface as errors: %v", err)
	}
	if decision.Allowed {
		t.Fatalf("lookup failure must deny")
	}
	if decision.Reason != "deny_by_default" {
		t.Fatalf("unexpected reason: %q", decision.Reason)
	}
}

func TestCheckPermissionValidatesInput(t *testing.T) {
	module := authorizationservice.NewInMemoryModule(authzSeed(), nil)

	_, err := module.Handler.CheckPermissionHandler(context.Background(), httptransport.CheckPermissionRequest{
		Permission: "brand.manage",
	})
	if !errors.Is(err, domainerrors.ErrInvalidUserID) {
		t.Fatalf("expected invalid user id, got %v", err)
	}

	_, err = module.Handler.CheckPermissionHandler(context.Background(), httptransport.CheckPermissionRequest{
		UserID: "owner-1",
	})
	if !errors.Is(err, domainerrors.ErrInvalidPermission) {
		t.Fatalf("expected invalid permission, got %v", err)
	}
}

func TestPermissionCacheExpiresByDeadline(t *testing.T) {
	cache := memory.NewPermissionCache()
	now := time.Date(2026, 1, 15, 10, 0, 0, 0, time.UTC)

	if err := cache.Set(context.Background(), "owner-1", []string{"brand.manage@brand-1"}, now.Add(5*time.Minute)); err != nil {
		t.Fatalf("set failed: %v", err)
	}

	items, hit, err := cache.Get(context.Background(), "owner-1", now.Add(time.Minute))
	if err != nil || !hit {
		t.Fatalf("expected fresh entry, hit=%v err=%v", hit, err)
	}
	if len(items) != 1 || items[0] != "brand.manage@brand-1" {
		t.Fatalf("unexpected cached permissions: %v", items)
	}

	_, hit, err = cache.Get(context.Background(), "owner-1", now.Add(5*time.Minute))
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if hit {
		t.Fatalf("entry past its deadline must miss")
	}
}
