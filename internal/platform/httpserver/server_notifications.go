package httpserver

import (
	"errors"
	"net/http"

	notificationerrors "concord/contexts/group-governance/notification-service/domain/errors"
	notificationhttp "concord/contexts/group-governance/notification-service/transport/http"
)

func writeNotificationError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, notificationhttp.ErrorResponse{Code: code, Message: message})
}

func writeNotificationDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, notificationerrors.ErrNotFound):
		writeNotificationError(w, http.StatusNotFound, "not_found", err.Error())
	default:
		writeNotificationError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func (s *Server) handleListNotifications(w http.ResponseWriter, r *http.Request) {
	c, ok := resolveCaller(r)
	if !ok {
		writeNotificationError(w, http.StatusUnauthorized, "missing_user", "X-User-Id header is required")
		return
	}
	resp, err := s.notifications.Handler.ListNotifications(r.Context(), c.ID)
	if err != nil {
		writeNotificationDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleMarkNotificationRead(w http.ResponseWriter, r *http.Request) {
	c, ok := resolveCaller(r)
	if !ok {
		writeNotificationError(w, http.StatusUnauthorized, "missing_user", "X-User-Id header is required")
		return
	}
	notificationID, ok := pathID(r, "notification_id")
	if !ok {
		writeNotificationError(w, http.StatusBadRequest, "invalid_id", "notification_id must be a positive integer")
		return
	}
	resp, err := s.notifications.Handler.MarkRead(r.Context(), c.ID, notificationID)
	if err != nil {
		writeNotificationDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}
