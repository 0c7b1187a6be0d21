package commands

import (
	"context"
	"log/slog"
	"strings"

	application "fanforge/contexts/creator-community/notification-service/application"
	domainerrors "fanforge/contexts/creator-community/notification-service/domain/errors"
	"fanforge/contexts/creator-community/notification-service/ports"
)

type MarkReadCommand struct {
	ActorID        string
	NotificationID string
}

type MarkReadUseCase struct {
	Repository ports.NotificationRepository
	Clock      ports.Clock
	Logger     *slog.Logger
}

func (uc MarkReadUseCase) Execute(ctx context.Context, cmd MarkReadCommand) error {
	logger := application.ResolveLogger(uc.Logger)
	if strings.TrimSpace(cmd.ActorID) == "" {
		return domainerrors.ErrUnauthenticated
	}
	notification, err := uc.Repository.GetNotification(ctx, strings.TrimSpace(cmd.NotificationID))
	if err != nil {
		return err
	}
	if notification.RecipientID != strings.TrimSpace(cmd.ActorID) {
		return domainerrors.ErrNotRecipient
	}
	if notification.IsRead {
		return nil
	}
	if err := uc.Repository.MarkRead(ctx, notification.NotificationID, uc.Clock.Now().UTC()); err != nil {
		return err
	}

	logger.Info("notification read",
		"event", "notification_read",
		"module", "creator-community/notification-service",
		"layer", "application",
		"notification_id", notification.NotificationID,
	)
	return nil
}
