package commands

import (
	"context"
	"log/slog"
	"strings"

	application "fanforge/contexts/identity-access/authorization-service/application"
	"fanforge/contexts/identity-access/authorization-service/domain/entities"
	domainerrors "fanforge/contexts/identity-access/authorization-service/domain/errors"
	"fanforge/contexts/identity-access/authorization-service/ports"
)

type GrantRoleCommand struct {
	ActorID string
	UserID  string
	Role    entities.RoleName
	BrandID string
	Reason  string
}

// GrantRoleUseCase assigns a role and invalidates the grantee's cached
// permissions so the new grant is visible on the next check.
type GrantRoleUseCase struct {
	Repository      ports.Repository
	PermissionCache ports.PermissionCache
	Authority       AdminAuthority
	Clock           ports.Clock
	IDGen           ports.IDGenerator
	Logger          *slog.Logger
}

// AdminAuthority answers whether the actor may manage role assignments for a
// brand. Platform admins and the brand's owner qualify.
type AdminAuthority interface {
	CanManageRoles(ctx context.Context, actorID string, brandID string) (bool, error)
}

func (u GrantRoleUseCase) Execute(ctx context.Context, cmd GrantRoleCommand) (entities.RoleAssignment, error) {
	logger := application.ResolveLogger(u.Logger)
	if strings.TrimSpace(cmd.ActorID) == "" {
		return entities.RoleAssignment{}, domainerrors.ErrUnauthenticated
	}
	if strings.TrimSpace(cmd.UserID) == "" {
		return entities.RoleAssignment{}, domainerrors.ErrInvalidUserID
	}
	if !entities.ValidRole(cmd.Role) {
		return entities.RoleAssignment{}, domainerrors.ErrInvalidRole
	}
	allowed, err := u.Authority.CanManageRoles(ctx, strings.TrimSpace(cmd.ActorID), strings.TrimSpace(cmd.BrandID))
	if err != nil {
		return entities.RoleAssignment{}, err
	}
	if !allowed {
		return entities.RoleAssignment{}, domainerrors.ErrForbidden
	}

	assignmentID, err := u.IDGen.NewID(ctx)
	if err != nil {
		return entities.RoleAssignment{}, err
	}
	assignment := entities.RoleAssignment{
		AssignmentID: assignmentID,
		UserID:       strings.TrimSpace(cmd.UserID),
		Role:         cmd.Role,
		BrandID:      strings.TrimSpace(cmd.BrandID),
		AssignedBy:   strings.TrimSpace(cmd.ActorID),
		Reason:       strings.TrimSpace(cmd.Reason),
		AssignedAt:   u.Clock.Now().UTC(),
		IsActive:     true,
	}
	if err := u.Repository.GrantRole(ctx, assignment); err != nil {
		return entities.RoleAssignment{}, err
	}
	if u.PermissionCache != nil {
		_ = u.PermissionCache.Invalidate(ctx, assignment.UserID)
	}

	logger.Info("role granted",
		"event", "authz_role_granted",
		"module", "identity-access/authorization-service",
		"layer", "application",
		"user_id", assignment.UserID,
		"role", string(assignment.Role),
		"brand_id", assignment.BrandID,
		"assigned_by", assignment.AssignedBy,
	)
	return assignment, nil
}
