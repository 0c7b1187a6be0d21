package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"gorm.io/gorm"

	"fanforge/contexts/creator-community/notification-service/domain/entities"
	domainerrors "fanforge/contexts/creator-community/notification-service/domain/errors"
	"fanforge/contexts/creator-community/notification-service/ports"
)

const defaultListLimit = 50

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

var _ ports.NotificationRepository = (*Repository)(nil)

func (r *Repository) AddNotification(ctx context.Context, notification entities.Notification) error {
	model := fromEntity(notification)
	return r.db.WithContext(ctx).Create(&model).Error
}

func (r *Repository) GetNotification(ctx context.Context, notificationID string) (entities.Notification, error) {
	var model notificationModel
	err := r.db.WithContext(ctx).
		Where("notification_id = ?", notificationID).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Notification{}, domainerrors.ErrNotificationNotFound
		}
		return entities.Notification{}, err
	}
	return model.toEntity(), nil
}

func (r *Repository) ListNotifications(ctx context.Context, filter ports.ListFilter) ([]entities.Notification, error) {
	limit := filter.Limit
	if limit <= 0 || limit > 200 {
		limit = defaultListLimit
	}
	query := r.db.WithContext(ctx).
		Model(&notificationModel{}).
		Where("recipient_id = ?", filter.RecipientID)
	if filter.UnreadOnly {
		query = query.Where("is_read = ?", false)
	}

	var models []notificationModel
	if err := query.Order("created_at DESC").Limit(limit).Find(&models).Error; err != nil {
		return nil, err
	}
	notifications := make([]entities.Notification, 0, len(models))
	for _, model := range models {
		notifications = append(notifications, model.toEntity())
	}
	return notifications, nil
}

func (r *Repository) MarkRead(ctx context.Context, notificationID string, readAt time.Time) error {
	result := r.db.WithContext(ctx).
		Model(&notificationModel{}).
		Where("notification_id = ?", notificationID).
		Updates(map[string]any{
			"is_read": true,
			"read_at": readAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotificationNotFound
	}
	return nil
}

func (r *Repository) CountUnread(ctx context.Context, recipientID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&notificationModel{}).
		Where("recipient_id = ? AND is_read = ?", recipientID, false).
		Count(&count).Error
	return count, err
}

type notificationModel struct {
	NotificationID string     `gorm:"column:notification_id;primaryKey"`
	RecipientID    string     `gorm:"column:recipient_id;index"`
	Type           string     `gorm:"column:type"`
	Title          string     `gorm:"column:title"`
	Body           string     `gorm:"column:body"`
	Data           []byte     `gorm:"column:data"`
	IsRead         bool       `gorm:"column:is_read;index"`
	CreatedAt      time.Time  `gorm:"column:created_at"`
	ReadAt         *time.Time `gorm:"column:read_at"`
}

func (notificationModel) TableName() string { return "notifications" }

func (m notificationModel) toEntity() entities.Notification {
	data := map[string]any{}
	if len(m.Data) > 0 {
		_ = json.Unmarshal(m.Data, &data)
	}
	return entities.Notification{
		NotificationID: m.NotificationID,
		RecipientID:    m.RecipientID,
		Type:           entities.NotificationType(m.Type),
		Title:          m.Title,
		Body:           m.Body,
		Data:           data,
		IsRead:         m.IsRead,
		CreatedAt:      m.CreatedAt,
		ReadAt:         m.ReadAt,
	}
}

func fromEntity(notification entities.Notification) notificationModel {
	data := map[string]any{}
	if notification.Data != nil {
		data = notification.Data
	}
	dataRaw, _ := json.Marshal(data)
	return notificationModel{
		NotificationID: notification.NotificationID,
		RecipientID:    notification.RecipientID,
		Type:           string(notification.Type),
		Title:          notification.Title,
		Body:           notification.Body,
		Data:           dataRaw,
		IsRead:         notification.IsRead,
		CreatedAt:      notification.CreatedAt,
		ReadAt:         notification.ReadAt,
	}
}
