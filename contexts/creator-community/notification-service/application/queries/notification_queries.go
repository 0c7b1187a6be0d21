package queries

import (
	"context"
	"strings"

	"fanforge/contexts/creator-community/notification-service/domain/entities"
	domainerrors "fanforge/contexts/creator-community/notification-service/domain/errors"
	"fanforge/contexts/creator-community/notification-service/ports"
)

type QueryUseCase struct {
	Repository ports.NotificationRepository
}

func (uc QueryUseCase) ListForRecipient(ctx context.Context, recipientID string, unreadOnly bool, limit int) ([]entities.Notification, error) {
	if strings.TrimSpace(recipientID) == "" {
		return nil, domainerrors.ErrUnauthenticated
	}
	return uc.Repository.ListNotifications(ctx, ports.ListFilter{
		RecipientID: strings.TrimSpace(recipientID),
		UnreadOnly:  unreadOnly,
		Limit:       limit,
	})
}

func (uc QueryUseCase) CountUnread(ctx context.Context, recipientID string) (int64, error) {
	if strings.TrimSpace(recipientID) == "" {
		return 0, domainerrors.ErrUnauthenticated
	}
	return uc.Repository.CountUnread(ctx, strings.TrimSpace(recipientID))
}
