package ports

import (
	"context"
	"time"

	"fanforge/contexts/creator-community/notification-service/domain/entities"
)

type ListFilter struct {
	RecipientID string
	UnreadOnly  bool
	Limit       int
}

type NotificationRepository interface {
	AddNotification(ctx context.Context, notification entities.Notification) error
	GetNotification(ctx context.Context, notificationID string) (entities.Notification, error)
	ListNotifications(ctx context.Context, filter ListFilter) ([]entities.Notification, error)
	MarkRead(ctx context.Context, notificationID string, readAt time.Time) error
	CountUnread(ctx context.Context, recipientID string) (int64, error)
}

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}
