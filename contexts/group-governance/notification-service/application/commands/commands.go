package commands

import (
	"context"
	"log/slog"
	"time"

	"concord/contexts/group-governance/notification-service/domain/entities"
	"concord/contexts/group-governance/notification-service/ports"
)

type Service struct {
	Repo   ports.Repository
	Clock  ports.Clock
	Logger *slog.Logger
}

// MarkRead flips the read flag on the caller's own notification. Read state
// is the only mutable part of a notification row.
func (s Service) MarkRead(ctx context.Context, callerID uint, notificationID uint) (entities.Notification, error) {
	notification, err := s.Repo.MarkRead(ctx, notificationID, callerID, s.now())
	if err != nil {
		return entities.Notification{}, err
	}
	return notification, nil
}

func (s Service) now() time.Time {
	if s.Clock != nil {
		return s.Clock.Now().UTC()
	}
	return time.Now().UTC()
}
