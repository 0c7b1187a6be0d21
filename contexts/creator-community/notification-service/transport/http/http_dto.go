package http

type ErrorResponse struct {
	Error string `json:"error"`
}

type NotificationDTO struct {
	NotificationID string         `json:"notification_id"`
	Type           string         `json:"type"`
	Title          string         `json:"title"`
	Body           string         `json:"body,omitempty"`
	Data           map[string]any `json:"data,omitempty"`
	IsRead         bool           `json:"is_read"`
	CreatedAt      string         `json:"created_at"`
	ReadAt         string         `json:"read_at,omitempty"`
}

type ListNotificationsResponse struct {
	Items       []NotificationDTO `json:"items"`
	UnreadCount int64             `json:"unread_count"`
}
