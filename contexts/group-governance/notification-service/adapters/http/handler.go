package httpadapter

import (
	"context"
	"log/slog"

	"concord/contexts/group-governance/notification-service/application/commands"
	"concord/contexts/group-governance/notification-service/application/queries"
	"concord/contexts/group-governance/notification-service/domain/entities"
	transporthttp "concord/contexts/group-governance/notification-service/transport/http"
)

type Handler struct {
	Commands commands.Service
	Queries  queries.Service
	Logger   *slog.Logger
}

func (h Handler) ListNotifications(ctx context.Context, callerID uint) ([]transporthttp.NotificationResponse, error) {
	notifications, err := h.Queries.ListForUser(ctx, callerID)
	if err != nil {
		return nil, err
	}
	out := make([]transporthttp.NotificationResponse, 0, len(notifications))
	for _, notification := range notifications {
		out = append(out, toResponse(notification))
	}
	return out, nil
}

func (h Handler) MarkRead(ctx context.Context, callerID uint, notificationID uint) (transporthttp.NotificationResponse, error) {
	notification, err := h.Commands.MarkRead(ctx, callerID, notificationID)
	if err != nil {
		return transporthttp.NotificationResponse{}, err
	}
	return toResponse(notification), nil
}

func toResponse(notification entities.Notification) transporthttp.NotificationResponse {
	return transporthttp.NotificationResponse{
		ID:         notification.ID,
		UserID:     notification.UserID,
		Type:       notification.Type,
		Message:    notification.Message,
		GroupID:    notification.GroupID,
		MeetingID:  notification.MeetingID,
		InviteID:   notification.InviteID,
		ElectionID: notification.ElectionID,
		PositionID: notification.PositionID,
		IsRead:     notification.IsRead,
		CreatedAt:  notification.CreatedAt,
	}
}
