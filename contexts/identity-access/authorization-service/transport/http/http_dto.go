package http

type ErrorResponse struct {
	Error string `json:"error"`
}

type GrantRoleRequest struct {
	UserID  string `json:"user_id"`
	Role    string `json:"role"`
	BrandID string `json:"brand_id,omitempty"`
	Reason  string `json:"reason,omitempty"`
}

type RevokeRoleRequest struct {
	UserID  string `json:"user_id"`
	Role    string `json:"role"`
	BrandID string `json:"brand_id,omitempty"`
}

type RoleAssignmentDTO struct {
	AssignmentID string `json:"assignment_id"`
	UserID       string `json:"user_id"`
	Role         string `json:"role"`
	BrandID      string `json:"brand_id,omitempty"`
	AssignedBy   string `json:"assigned_by"`
	Reason       string `json:"reason,omitempty"`
	AssignedAt   string `json:"assigned_at"`
	IsActive     bool   `json:"is_active"`
	RevokedAt    string `json:"revoked_at,omitempty"`
	RevokedBy    string `json:"revoked_by,omitempty"`
}

type RoleAssignmentResponse struct {
	Assignment RoleAssignmentDTO `json:"assignment"`
}

type ListRolesResponse struct {
	Items []RoleAssignmentDTO `json:"items"`
}

type CheckPermissionRequest struct {
	UserID     string `json:"user_id"`
	Permission string `json:"permission"`
	BrandID    string `json:"brand_id,omitempty"`
}

type CheckPermissionResponse struct {
	Allowed   bool   `json:"allowed"`
	Reason    string `json:"reason"`
	CacheHit  bool   `json:"cache_hit"`
	CheckedAt string `json:"checked_at"`
}
