package entities

import "time"

// PermissionDecision is the result of one permission check.
type PermissionDecision struct {
	UserID     string
	Permission string
	BrandID    string
	Allowed    bool
	Reason     string
	CheckedAt  time.Time
	CacheHit   bool
}
