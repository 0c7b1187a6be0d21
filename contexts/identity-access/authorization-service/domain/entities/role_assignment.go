package entities

import "time"

type RoleName string

const (
	RoleBrandOwner    RoleName = "brand_owner"
	RoleBrandReviewer RoleName = "brand_reviewer"
	RoleCreator       RoleName = "creator"
	RolePlatformAdmin RoleName = "platform_admin"
)

func ValidRole(role RoleName) bool {
	switch role {
	case RoleBrandOwner, RoleBrandReviewer, RoleCreator, RolePlatformAdmin:
		return true
	default:
		return false
	}
}

// RoleAssignment binds a user to a role, optionally scoped to one brand.
// Platform-wide roles leave BrandID empty.
type RoleAssignment struct {
	AssignmentID string
	UserID       string
	Role         RoleName
	BrandID      string
	AssignedBy   string
	Reason       string
	AssignedAt   time.Time
	IsActive     bool
	RevokedAt    *time.Time
	RevokedBy    string
}
