package entities

import (
	"strings"
	"time"
)

type NotificationType string

const (
	NotificationTypeSubmissionApproved NotificationType = "submission_approved"
	NotificationTypeSubmissionRejected NotificationType = "submission_rejected"
	NotificationTypeSystem             NotificationType = "system"
)

// Notification is one in-app message for a user. Read state is per
// notification; there is no read-all cursor.
type Notification struct {
	NotificationID string
	RecipientID    string
	Type           NotificationType
	Title          string
	Body           string
	Data           map[string]any
	IsRead         bool
	CreatedAt      time.Time
	ReadAt         *time.Time
}

func (n Notification) ValidateBasics() bool {
	return strings.TrimSpace(n.RecipientID) != "" &&
		strings.TrimSpace(n.Title) != "" &&
		n.Type != ""
}
