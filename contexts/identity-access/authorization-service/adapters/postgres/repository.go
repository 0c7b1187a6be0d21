package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"fanforge/contexts/identity-access/authorization-service/domain/entities"
	domainerrors "fanforge/contexts/identity-access/authorization-service/domain/errors"
	"fanforge/contexts/identity-access/authorization-service/ports"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

var _ ports.Repository = (*Repository)(nil)

func (r *Repository) ListActiveAssignments(ctx context.Context, userID string) ([]entities.RoleAssignment, error) {
	var models []roleAssignmentModel
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND is_active = ?", userID, true).
		Order("assigned_at ASC").
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	assignments := make([]entities.RoleAssignment, 0, len(models))
	for _, model := range models {
		assignments = append(assignments, model.toEntity())
	}
	return assignments, nil
}

func (r *Repository) GrantRole(ctx context.Context, assignment entities.RoleAssignment) error {
	model := fromEntity(assignment)
	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		if isUniqueViolation(err) {
			return domainerrors.ErrAssignmentDuplicate
		}
		return err
	}
	return nil
}

func (r *Repository) RevokeRole(
	ctx context.Context,
	userID string,
	role entities.RoleName,
	brandID string,
	revokedBy string,
	revokedAt time.Time,
) (entities.RoleAssignment, error) {
	result := r.db.WithContext(ctx).
		Model(&roleAssignmentModel{}).
		Where("user_id = ? AND role = ? AND brand_id = ? AND is_active = ?", userID, string(role), brandID, true).
		Updates(map[string]any{
			"is_active":  false,
			"revoked_at": revokedAt,
			"revoked_by": revokedBy,
		})
	if result.Error != nil {
		return entities.RoleAssignment{}, result.Error
	}
	if result.RowsAffected == 0 {
		return entities.RoleAssignment{}, domainerrors.ErrAssignmentNotFound
	}

	var model roleAssignmentModel
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND role = ? AND brand_id = ?", userID, string(role), brandID).
		Order("revoked_at DESC").
		First(&model).Error
	if err != nil {
		return entities.RoleAssignment{}, err
	}
	return model.toEntity(), nil
}

type roleAssignmentModel struct {
	AssignmentID string     `gorm:"column:assignment_id;primaryKey"`
	UserID       string     `gorm:"column:user_id;index"`
	Role         string     `gorm:"column:role"`
	BrandID      string     `gorm:"column:brand_id"`
	AssignedBy   string     `gorm:"column:assigned_by"`
	Reason       string     `gorm:"column:reason"`
	AssignedAt   time.Time  `gorm:"column:assigned_at"`
	IsActive     bool       `gorm:"column:is_active;index"`
	RevokedAt    *time.Time `gorm:"column:revoked_at"`
	RevokedBy    string     `gorm:"column:revoked_by"`
}

func (roleAssignmentModel) TableName() string { return "role_assignments" }

func (m roleAssignmentModel) toEntity() entities.RoleAssignment {
	return entities.RoleAssignment{
		AssignmentID: m.AssignmentID,
		UserID:       m.UserID,
		Role:         entities.RoleName(m.Role),
		BrandID:      m.BrandID,
		AssignedBy:   m.AssignedBy,
		Reason:       m.Reason,
		AssignedAt:   m.AssignedAt,
		IsActive:     m.IsActive,
		RevokedAt:    m.RevokedAt,
		RevokedBy:    m.RevokedBy,
	}
}

func fromEntity(assignment entities.RoleAssignment) roleAssignmentModel {
	return roleAssignmentModel{
		AssignmentID: assignment.AssignmentID,
		UserID:       assignment.UserID,
		Role:         string(assignment.Role),
		BrandID:      assignment.BrandID,
		AssignedBy:   assignment.AssignedBy,
		Reason:       assignment.Reason,
		AssignedAt:   assignment.AssignedAt,
		IsActive:     assignment.IsActive,
		RevokedAt:    assignment.RevokedAt,
		RevokedBy:    assignment.RevokedBy,
	}
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
