package httpserver

import (
	"errors"
	"net/http"
	"strconv"

	notificationerrors "fanforge/contexts/creator-community/notification-service/domain/errors"
	notificationhttp "fanforge/contexts/creator-community/notification-service/transport/http"
)

func (s *Server) handleListNotifications(w http.ResponseWriter, r *http.Request) {
	userID := requestUserID(r)
	if userID == "" {
		writeNotificationError(w, http.StatusUnauthorized, "X-User-Id header is required")
		return
	}
	query := r.URL.Query()
	limit := 0
	if limitRaw := query.Get("limit"); limitRaw != "" {
		parsed, err := strconv.Atoi(limitRaw)
		if err != nil {
			writeNotificationError(w, http.StatusBadRequest, "limit must be an integer")
			return
		}
		limit = parsed
	}
	resp, err := s.notifications.Handler.ListNotificationsHandler(
		r.Context(),
		userID,
		query.Get("unread") == "true",
		limit,
	)
	if err != nil {
		writeNotificationDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleMarkNotificationRead(w http.ResponseWriter, r *http.Request) {
	userID := requestUserID(r)
	if userID == "" {
		writeNotificationError(w, http.StatusUnauthorized, "X-User-Id header is required")
		return
	}
	if err := s.notifications.Handler.MarkReadHandler(r.Context(), userID, r.PathValue("notification_id")); err != nil {
		writeNotificationDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func writeNotificationDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, notificationerrors.ErrUnauthenticated):
		writeNotificationError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, notificationerrors.ErrNotRecipient):
		writeNotificationError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, notificationerrors.ErrNotificationNotFound):
		writeNotificationError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, notificationerrors.ErrInvalidNotification):
		writeNotificationError(w, http.StatusBadRequest, err.Error())
	default:
		writeNotificationError(w, http.StatusInternalServerError, "internal server error")
	}
}

func writeNotificationError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, notificationhttp.ErrorResponse{Error: message})
}
