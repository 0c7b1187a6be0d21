package services

import "fanforge/contexts/identity-access/authorization-service/domain/entities"

const (
	PermissionBrandManage      = "brand.manage"
	PermissionSubmissionReview = "submission.review"
	PermissionSubmissionCreate = "submission.create"
	PermissionPlatformAdmin    = "platform.admin"
)

// rolePermissions is the static role-to-permission policy. Brand-scoped
// assignments confer their permissions only inside that brand;
// platform_admin confers everything everywhere.
var rolePermissions = map[entities.RoleName][]string{
	entities.RoleBrandOwner:    {PermissionBrandManage, PermissionSubmissionReview},
	entities.RoleBrandReviewer: {PermissionSubmissionReview},
	entities.RoleCreator:       {PermissionSubmissionCreate},
	entities.RolePlatformAdmin: {PermissionPlatformAdmin, PermissionBrandManage, PermissionSubmissionReview, PermissionSubmissionCreate},
}

// ScopedPermission renders one permission grant as "permission@scope", where
// scope is a brand ID or "*" for platform-wide grants. The flattened form is
// what the permission cache stores.
func ScopedPermission(permission string, brandID string) string {
	scope := brandID
	if scope == "" {
		scope = "*"
	}
	return permission + "@" + scope
}

// EffectivePermissions flattens active assignments into scoped permission
// strings.
func EffectivePermissions(assignments []entities.RoleAssignment) []string {
	seen := make(map[string]struct{})
	out := make([]string, 0, len(assignments))
	for _, assignment := range assignments {
		if !assignment.IsActive {
			continue
		}
		scope := assignment.BrandID
		if assignment.Role == entities.RolePlatformAdmin {
			scope = ""
		}
		for _, permission := range rolePermissions[assignment.Role] {
			scoped := ScopedPermission(permission, scope)
			if _, ok := seen[scoped]; ok {
				continue
			}
			seen[scoped] = struct{}{}
			out = append(out, scoped)
		}
	}
	return out
}

// GrantsPermission reports whether the scoped permission set allows the
// permission within the brand. A platform-wide grant matches any brand.
func GrantsPermission(scoped []string, permission string, brandID string) bool {
	want := ScopedPermission(permission, brandID)
	wildcard := ScopedPermission(permission, "")
	for _, item := range scoped {
		if item == want || item == wildcard {
			return true
		}
	}
	return false
}
