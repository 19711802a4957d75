package queries

import (
	"context"
	"fmt"

	"concord/contexts/group-governance/membership-service/domain/entities"
	domainerrors "concord/contexts/group-governance/membership-service/domain/errors"
	"concord/contexts/group-governance/membership-service/ports"
)

// Read-only membership views. No invariant beyond reflecting committed rows.
type Service struct {
	Repo ports.Repository
}

func (s Service) GetGroup(ctx context.Context, groupID uint) (entities.Group, error) {
	group, found, err := s.Repo.GetGroup(ctx, groupID)
	if err != nil {
		return entities.Group{}, err
	}
	if !found {
		return entities.Group{}, fmt.Errorf("%w: group", domainerrors.ErrNotFound)
	}
	return group, nil
}

func (s Service) ListGroupsForUser(ctx context.Context, userID uint) ([]entities.Group, error) {
	return s.Repo.ListGroupsForUser(ctx, userID)
}

func (s Service) ListMembers(ctx context.Context, groupID uint) ([]entities.GroupMember, error) {
	_, found, err := s.Repo.GetGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, fmt.Errorf("%w: group", domainerrors.ErrNotFound)
	}
	return s.Repo.ListMembers(ctx, groupID)
}

func (s Service) ListInvitesForUser(ctx context.Context, userID uint) ([]entities.GroupInvite, error) {
	return s.Repo.ListInvitesForUser(ctx, userID)
}
