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

type RevokeRoleCommand struct {
	ActorID string
	UserID  string
	Role    entities.RoleName
	BrandID string
}

type RevokeRoleUseCase struct {
	Repository      ports.Repository
	PermissionCache ports.PermissionCache
	Authority       AdminAuthority
	Clock           ports.Clock
	Logger          *slog.Logger
}

func (u RevokeRoleUseCase) Execute(ctx context.Context, cmd RevokeRoleCommand) (entities.RoleAssignment, error) {
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

	assignment, err := u.Repository.RevokeRole(
		ctx,
		strings.TrimSpace(cmd.UserID),
		cmd.Role,
		strings.TrimSpace(cmd.BrandID),
		strings.TrimSpace(cmd.ActorID),
		u.Clock.Now().UTC(),
	)
	if err != nil {
		return entities.RoleAssignment{}, err
	}
	if u.PermissionCache != nil {
		_ = u.PermissionCache.Invalidate(ctx, assignment.UserID)
	}

	logger.Info("role revoked",
		"event", "authz_role_revoked",
		"module", "identity-access/authorization-service",
		"layer", "application",
		"user_id", assignment.UserID,
		"role", string(assignment.Role),
		"brand_id", assignment.BrandID,
		"revoked_by", assignment.RevokedBy,
	)
	return assignment, nil
}
