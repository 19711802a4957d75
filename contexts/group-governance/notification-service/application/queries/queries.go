package queries

import (
	"context"

	"concord/contexts/group-governance/notification-service/domain/entities"
	"concord/contexts/group-governance/notification-service/ports"
)

type Service struct {
	Repo ports.Repository
}

func (s Service) ListForUser(ctx context.Context, userID uint) ([]entities.Notification, error) {
	return s.Repo.ListForUser(ctx, userID)
}
