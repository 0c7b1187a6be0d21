package errors

import "errors"

var (
	ErrInvalidUserID       = errors.New("user id is required")
	ErrInvalidRole         = errors.New("unknown role")
	ErrInvalidPermission   = errors.New("permission is required")
	ErrAssignmentNotFound  = errors.New("role assignment not found")
	ErrAssignmentDuplicate = errors.New("role already assigned")
	ErrUnauthenticated     = errors.New("caller identity is missing")
	ErrForbidden           = errors.New("caller may not manage roles")
)
