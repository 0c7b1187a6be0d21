package errors

import "errors"

var (
	ErrNotificationNotFound = errors.New("notification not found")
	ErrInvalidNotification  = errors.New("invalid notification input")
	ErrUnauthenticated      = errors.New("caller identity is missing")
	ErrNotRecipient         = errors.New("caller is not the notification recipient")
)
