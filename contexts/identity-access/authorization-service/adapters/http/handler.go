package httpadapter

import (
	"context"
	"log/slog"
	"time"

	"fanforge/contexts/identity-access/authorization-service/application/commands"
	"fanforge/contexts/identity-access/authorization-service/application/queries"
	"fanforge/contexts/identity-access/authorization-service/domain/entities"
	httptransport "fanforge/contexts/identity-access/authorization-service/transport/http"
)

type Handler struct {
	GrantRole       commands.GrantRoleUseCase
	RevokeRole      commands.RevokeRoleUseCase
	CheckPermission queries.CheckPermissionUseCase
	ListRoles       queries.ListUserRolesUseCase
	Logger          *slog.Logger
}

func (h Handler) GrantRoleHandler(ctx context.Context, actorID string, req httptransport.GrantRoleRequest) (httptransport.RoleAssignmentResponse, error) {
	assignment, err := h.GrantRole.Execute(ctx, commands.GrantRoleCommand{
		ActorID: actorID,
		UserID:  req.UserID,
		Role:    entities.RoleName(req.Role),
		BrandID: req.BrandID,
		Reason:  req.Reason,
	})
	if err != nil {
		return httptransport.RoleAssignmentResponse{}, err
	}
	return httptransport.RoleAssignmentResponse{Assignment: mapAssignment(assignment)}, nil
}

func (h Handler) RevokeRoleHandler(ctx context.Context, actorID string, req httptransport.RevokeRoleRequest) (httptransport.RoleAssignmentResponse, error) {
	assignment, err := h.RevokeRole.Execute(ctx, commands.RevokeRoleCommand{
		ActorID: actorID,
		UserID:  req.UserID,
		Role:    entities.RoleName(req.Role),
		BrandID: req.BrandID,
	})
	if err != nil {
		return httptransport.RoleAssignmentResponse{}, err
	}
	return httptransport.RoleAssignmentResponse{Assignment: mapAssignment(assignment)}, nil
}

func (h Handler) CheckPermissionHandler(ctx context.Context, req httptransport.CheckPermissionRequest) (httptransport.CheckPermissionResponse, error) {
	decision, err := h.CheckPermission.Execute(ctx, queries.CheckPermissionQuery{
		UserID:     req.UserID,
		Permission: req.Permission,
		BrandID:    req.BrandID,
	})
	if err != nil {
		return httptransport.CheckPermissionResponse{}, err
	}
	return httptransport.CheckPermissionResponse{
		Allowed:   decision.Allowed,
		Reason:    decision.Reason,
		CacheHit:  decision.CacheHit,
		CheckedAt: decision.CheckedAt.Format(time.RFC3339),
	}, nil
}

func (h Handler) ListRolesHandler(ctx context.Context, userID string) (httptransport.ListRolesResponse, error) {
	assignments, err := h.ListRoles.Execute(ctx, userID)
	if err != nil {
		return httptransport.ListRolesResponse{}, err
	}
	items := make([]httptransport.RoleAssignmentDTO, 0, len(assignments))
	for _, assignment := range assignments {
		items = append(items, mapAssignment(assignment))
	}
	return httptransport.ListRolesResponse{Items: items}, nil
}

func mapAssignment(assignment entities.RoleAssignment) httptransport.RoleAssignmentDTO {
	dto := httptransport.RoleAssignmentDTO{
		AssignmentID: assignment.AssignmentID,
		UserID:       assignment.UserID,
		Role:         string(assignment.Role),
		BrandID:      assignment.BrandID,
		AssignedBy:   assignment.AssignedBy,
		Reason:       assignment.Reason,
		AssignedAt:   assignment.AssignedAt.Format(time.RFC3339),
		IsActive:     assignment.IsActive,
		RevokedBy:    assignment.RevokedBy,
	}
	if assignment.RevokedAt != nil {
		dto.RevokedAt = assignment.RevokedAt.Format(time.RFC3339)
	}
	return dto
}
