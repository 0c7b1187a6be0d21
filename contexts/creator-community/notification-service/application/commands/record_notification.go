package commands

import (
	"context"
	"log/slog"
	"strings"

	application "fanforge/contexts/creator-community/notification-service/application"
	"fanforge/contexts/creator-community/notification-service/domain/entities"
	domainerrors "fanforge/contexts/creator-community/notification-service/domain/errors"
	"fanforge/contexts/creator-community/notification-service/ports"
)

type RecordNotificationCommand struct {
	RecipientID string
	Type        entities.NotificationType
	Title       string
	Body        string
	Data        map[string]any
}

// RecordNotificationUseCase persists an in-app notification. Other modules
// reach it through the Notifier adapter in the composition root, not through
// HTTP.
type RecordNotificationUseCase struct {
	Repository ports.NotificationRepository
	Clock      ports.Clock
	IDGen      ports.IDGenerator
	Logger     *slog.Logger
}

func (uc RecordNotificationUseCase) Execute(ctx context.Context, cmd RecordNotificationCommand) (entities.Notification, error) {
	logger := application.ResolveLogger(uc.Logger)
	notificationID, err := uc.IDGen.NewID(ctx)
	if err != nil {
		return entities.Notification{}, err
	}
	notification := entities.Notification{
		NotificationID: notificationID,
		RecipientID:    strings.TrimSpace(cmd.RecipientID),
		Type:           cmd.Type,
		Title:          strings.TrimSpace(cmd.Title),
		Body:           strings.TrimSpace(cmd.Body),
		Data:           cmd.Data,
		CreatedAt:      uc.Clock.Now().UTC(),
	}
	if !notification.ValidateBasics() {
		return entities.Notification{}, domainerrors.ErrInvalidNotification
	}
	if err := uc.Repository.AddNotification(ctx, notification); err != nil {
		return entities.Notification{}, err
	}

	logger.Info("notification recorded",
		"event", "notification_recorded",
		"module", "creator-community/notification-service",
		"layer", "application",
		"notification_id", notification.NotificationID,
		"recipient_id", notification.RecipientID,
		"type", string(notification.Type),
	)
	return notification, nil
}
