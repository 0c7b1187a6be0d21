package httpadapter

import (
	"context"
	"log/slog"
	"time"

	"fanforge/contexts/creator-community/notification-service/application/commands"
	"fanforge/contexts/creator-community/notification-service/application/queries"
	"fanforge/contexts/creator-community/notification-service/domain/entities"
	httptransport "fanforge/contexts/creator-community/notification-service/transport/http"
)

type Handler struct {
	MarkRead commands.MarkReadUseCase
	Queries  queries.QueryUseCase
	Logger   *slog.Logger
}

func (h Handler) ListNotificationsHandler(
	ctx context.Context,
	userID string,
	unreadOnly bool,
	limit int,
) (httptransport.ListNotificationsResponse, error) {
	notifications, err := h.Queries.ListForRecipient(ctx, userID, unreadOnly, limit)
	if err != nil {
		return httptransport.ListNotificationsResponse{}, err
	}
	unread, err := h.Queries.CountUnread(ctx, userID)
	if err != nil {
		return httptransport.ListNotificationsResponse{}, err
	}
	items := make([]httptransport.NotificationDTO, 0, len(notifications))
	for _, notification := range notifications {
		items = append(items, mapNotification(notification))
	}
	return httptransport.ListNotificationsResponse{Items: items, UnreadCount: unread}, nil
}

func (h Handler) MarkReadHandler(ctx context.Context, userID string, notificationID string) error {
	return h.MarkRead.Execute(ctx, commands.MarkReadCommand{
		ActorID:        userID,
		NotificationID: notificationID,
	})
}

func mapNotification(notification entities.Notification) httptransport.NotificationDTO {
	dto := httptransport.NotificationDTO{
		NotificationID: notification.NotificationID,
		Type:           string(notification.Type),
		Title:          notification.Title,
		Body:           notification.Body,
		Data:           notification.Data,
		IsRead:         notification.IsRead,
		CreatedAt:      notification.CreatedAt.Format(time.RFC3339),
	}
	if notification.ReadAt != nil {
		dto.ReadAt = notification.ReadAt.Format(time.RFC3339)
	}
	return dto
}
