package unit

import (
	"context"
	"errors"
	"testing"

	notificationservice "fanforge/contexts/creator-community/notification-service"
	"fanforge/contexts/creator-community/notification-service/adapters/memory"
	"fanforge/contexts/creator-community/notification-service/application/commands"
	"fanforge/contexts/creator-community/notification-service/domain/entities"
	domainerrors "fanforge/contexts/creator-community/notification-service/domain/errors"
)

func TestRecordAndListNotifications(t *testing.T) {
	module := notificationservice.NewInMemoryModule(memory.Seed{}, nil)

	recorded, err := module.Record.Execute(context.Background(), commands.RecordNotificationCommand{
		RecipientID: "creator-1",
		Type:        entities.NotificationTypeSubmissionApproved,
		Title:       "Your submission was approved",
		Data:        map[string]any{"submission_id": "sub-1"},
	})
	if err != nil {
		t.Fatalf("record failed: %v", err)
	}
	if recorded.IsRead {
		t.Fatalf("new notifications start unread")
	}

	if _, err := module.Record.Execute(context.Background(), commands.RecordNotificationCommand{
		RecipientID: "creator-2",
		Type:        entities.NotificationTypeSystem,
		Title:       "Welcome to FanForge",
	}); err != nil {
		t.Fatalf("record failed: %v", err)
	}

	listed, err := module.Handler.ListNotificationsHandler(context.Background(), "creator-1", false, 0)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(listed.Items) != 1 {
		t.Fatalf("recipients must only see their own notifications, got %d", len(listed.Items))
	}
	if listed.UnreadCount != 1 {
		t.Fatalf("expected one unread, got %d", listed.UnreadCount)
	}
	if listed.Items[0].Data["submission_id"] != "sub-1" {
		t.Fatalf("payload data lost: %+v", listed.Items[0].Data)
	}
}

func TestRecordNotificationValidation(t *testing.T) {
	module := notificationservice.NewInMemoryModule(memory.Seed{}, nil)

	_, err := module.Record.Execute(context.Background(), commands.RecordNotificationCommand{
		RecipientID: "",
		Type:        entities.NotificationTypeSystem,
		Title:       "Orphan",
	})
	if !errors.Is(err, domainerrors.ErrInvalidNotification) {
		t.Fatalf("expected invalid notification for missing recipient, got %v", err)
	}

	_, err = module.Record.Execute(context.Background(), commands.RecordNotificationCommand{
		RecipientID: "creator-1",
		Type:        entities.NotificationTypeSystem,
		Title:       "   ",
	})
	if !errors.Is(err, domainerrors.ErrInvalidNotification) {
		t.Fatalf("expected invalid notification for empty title, got %v", err)
	}
}

func TestMarkReadScopedToRecipient(t *testing.T) {
	module := notificationservice.NewInMemoryModule(memory.Seed{}, nil)

	recorded, err := module.Record.Execute(context.Background(), commands.RecordNotificationCommand{
		RecipientID: "creator-1",
		Type:        entities.NotificationTypeSubmissionRejected,
		Title:       "Your submission was not approved",
	})
	if err != nil {
		t.Fatalf("record failed: %v", err)
	}

	err = module.Handler.MarkReadHandler(context.Background(), "creator-2", recorded.NotificationID)
	if !errors.Is(err, domainerrors.ErrNotRecipient) {
		t.Fatalf("expected not recipient error, got %v", err)
	}

	err = module.Handler.MarkReadHandler(context.Background(), "", recorded.NotificationID)
	if !errors.Is(err, domainerrors.ErrUnauthenticated) {
		t.Fatalf("expected unauthenticated error, got %v", err)
	}

	if err := module.Handler.MarkReadHandler(context.Background(), "creator-1", recorded.NotificationID); err != nil {
		t.Fatalf("mark read failed: %v", err)
	}
	// Re-reading an already read notification is a no-op.
	if err := module.Handler.MarkReadHandler(context.Background(), "creator-1", recorded.NotificationID); err != nil {
		t.Fatalf("second mark read must be a no-op: %v", err)
	}

	listed, err := module.Handler.ListNotificationsHandler(context.Background(), "creator-1", false, 0)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if listed.UnreadCount != 0 {
		t.Fatalf("expected zero unread, got %d", listed.UnreadCount)
	}
	if !listed.Items[0].IsRead || listed.Items[0].ReadAt == "" {
		t.Fatalf("expected read state persisted: %+v", listed.Items[0])
	}
}

func TestListNotificationsUnreadFilterAndLimit(t *testing.T) {
	module := notificationservice.NewInMemoryModule(memory.Seed{}, nil)

	var firstID string
	for i := 0; i < 3; i++ {
		recorded, err := module.Record.Execute(context.Background(), commands.RecordNotificationCommand{
			RecipientID: "creator-1",
			Type:        entities.NotificationTypeSystem,
			Title:       "Digest",
		})
		if err != nil {
			t.Fatalf("record failed: %v", err)
		}
		if i == 0 {
			firstID = recorded.NotificationID
		}
	}
	if err := module.Handler.MarkReadHandler(context.Background(), "creator-1", firstID); err != nil {
		t.Fatalf("mark read failed: %v", err)
	}

	unread, err := module.Handler.ListNotificationsHandler(context.Background(), "creator-1", true, 0)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(unread.Items) != 2 || unread.UnreadCount != 2 {
		t.Fatalf("expected two unread notifications, got %d items / %d unread", len(unread.Items), unread.UnreadCount)
	}

	limited, err := module.Handler.ListNotificationsHandler(context.Background(), "creator-1", false, 1)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(limited.Items) != 1 {
		t.Fatalf("expected limit applied, got %d", len(limited.Items))
	}
}
