package ports

import (
	"context"
	"time"

	"fanforge/contexts/identity-access/authorization-service/domain/entities"
)

// Clock abstracts current time for deterministic tests.
type Clock interface {
	Now() time.Time
}

// IDGenerator abstracts UUID generation.
type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}

// PermissionCache stores flattened scoped permissions with TTL semantics.
type PermissionCache interface {
	Get(ctx context.Context, userID string, now time.Time) ([]string, bool, error)
	Set(ctx context.Context, userID string, permissions []string, expiresAt time.Time) error
	Invalidate(ctx context.Context, userID string) error
}

// Repository is the write/read boundary for authorization state.
type Repository interface {
	ListActiveAssignments(ctx context.Context, userID string) ([]entities.RoleAssignment, error)
	GrantRole(ctx context.Context, assignment entities.RoleAssignment) error
	RevokeRole(ctx context.Context, userID string, role entities.RoleName, brandID string, revokedBy string, revokedAt time.Time) (entities.RoleAssignment, error)
}
