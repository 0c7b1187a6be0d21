package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"fanforge/contexts/creator-community/notification-service/domain/entities"
	domainerrors "fanforge/contexts/creator-community/notification-service/domain/errors"
	"fanforge/contexts/creator-community/notification-service/ports"
)

type Store struct {
	mu            sync.Mutex
	notifications map[string]entities.Notification
	now           time.Time
	idSeq         int
}

type Seed struct {
	Notifications []entities.Notification
	Now           time.Time
}

func NewStore(seed Seed) *Store {
	store := &Store{
		notifications: make(map[string]entities.Notification),
		now:           seed.Now,
	}
	if store.now.IsZero() {
		store.now = time.Date(2026, 1, 15, 10, 0, 0, 0, time.UTC)
	}
	for _, notification := range seed.Notifications {
		store.notifications[notification.NotificationID] = notification
	}
	return store
}

var _ ports.NotificationRepository = (*Store)(nil)

func (s *Store) AddNotification(_ context.Context, notification entities.Notification) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notifications[notification.NotificationID] = notification
	return nil
}

func (s *Store) GetNotification(_ context.Context, notificationID string) (entities.Notification, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	notification, ok := s.notifications[notificationID]
	if !ok {
		return entities.Notification{}, domainerrors.ErrNotificationNotFound
	}
	return notification, nil
}

func (s *Store) ListNotifications(_ context.Context, filter ports.ListFilter) ([]entities.Notification, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	notifications := make([]entities.Notification, 0)
	for _, notification := range s.notifications {
		if notification.RecipientID != filter.RecipientID {
			continue
		}
		if filter.UnreadOnly && notification.IsRead {
			continue
		}
		notifications = append(notifications, notification)
	}
	sort.Slice(notifications, func(i, j int) bool {
		return notifications[i].CreatedAt.After(notifications[j].CreatedAt)
	})
	if filter.Limit > 0 && len(notifications) > filter.Limit {
		notifications = notifications[:filter.Limit]
	}
	return notifications, nil
}

func (s *Store) MarkRead(_ context.Context, notificationID string, readAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	notification, ok := s.notifications[notificationID]
	if !ok {
		return domainerrors.ErrNotificationNotFound
	}
	notification.IsRead = true
	notification.ReadAt = &readAt
	s.notifications[notificationID] = notification
	return nil
}

func (s *Store) CountUnread(_ context.Context, recipientID string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var count int64
	for _, notification := range s.notifications {
		if notification.RecipientID == recipientID && !notification.IsRead {
			count++
		}
	}
	return count, nil
}

func (s *Store) Now() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.now
}

func (s *Store) NewID(_ context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.idSeq++
	return fmt.Sprintf("notification-id-%04d", s.idSeq), nil
}
