package commands

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	application "concord/contexts/group-governance/membership-service/application"
	"concord/contexts/group-governance/membership-service/domain/entities"
	domainerrors "concord/contexts/group-governance/membership-service/domain/errors"
	"concord/contexts/group-governance/membership-service/ports"
)

// Service orchestrates membership workflows: validate input, run the
// transactional repository method, publish fan-out only after commit.
type Service struct {
	Repo   ports.Repository
	Fanout ports.FanoutPublisher
	Clock  ports.Clock
	Logger *slog.Logger
}

type CreateGroupInput struct {
	Name        string
	Description string
}

// CreateGroup creates the group and the creator's membership row atomically.
// The creator performed the action, so no fan-out is emitted.
func (s Service) CreateGroup(ctx context.Context, caller ports.Identity, input CreateGroupInput) (entities.Group, error) {
	logger := application.ResolveLogger(s.Logger)
	if strings.TrimSpace(input.Name) == "" {
		return entities.Group{}, fmt.Errorf("%w: name", domainerrors.ErrMissingFields)
	}

	group, err := s.Repo.CreateGroup(ctx, entities.Group{
		Name:        strings.TrimSpace(input.Name),
		Description: strings.TrimSpace(input.Description),
		CreatorID:   caller.ID,
	}, s.now())
	if err != nil {
		return entities.Group{}, err
	}

	logger.Info("group created",
		"event", "membership_group_created",
		"module", "group-governance/membership-service",
		"layer", "application",
		"group_id", group.ID,
		"creator_id", caller.ID,
	)
	return group, nil
}

// DeleteGroup removes the group; members, invites, meetings and elections go
// with it through the store's cascade.
func (s Service) DeleteGroup(ctx context.Context, caller ports.Identity, groupID uint) error {
	logger := application.ResolveLogger(s.Logger)
	if groupID == 0 {
		return fmt.Errorf("%w: group", domainerrors.ErrMissingFields)
	}

	group, err := s.Repo.DeleteGroup(ctx, groupID)
	if err != nil {
		return err
	}

	logger.Info("group deleted",
		"event", "membership_group_deleted",
		"module", "group-governance/membership-service",
		"layer", "application",
		"group_id", group.ID,
		"actor_id", caller.ID,
	)
	return nil
}

// LeaveGroup deletes the caller's membership row.
func (s Service) LeaveGroup(ctx context.Context, caller ports.Identity, groupID uint) error {
	logger := application.ResolveLogger(s.Logger)
	if groupID == 0 {
		return fmt.Errorf("%w: group", domainerrors.ErrMissingFields)
	}

	if err := s.Repo.RemoveMember(ctx, groupID, caller.ID); err != nil {
		return err
	}

	logger.Info("member left group",
		"event", "membership_member_left",
		"module", "group-governance/membership-service",
		"layer", "application",
		"group_id", groupID,
		"user_id", caller.ID,
	)
	return nil
}

// RemoveMember deletes another user's membership row (admin action).
func (s Service) RemoveMember(ctx context.Context, caller ports.Identity, groupID uint, userID uint) error {
	logger := application.ResolveLogger(s.Logger)
	if groupID == 0 || userID == 0 {
		return fmt.Errorf("%w: group, user", domainerrors.ErrMissingFields)
	}

	if err := s.Repo.RemoveMember(ctx, groupID, userID); err != nil {
		return err
	}

	logger.Info("member removed from group",
		"event", "membership_member_removed",
		"module", "group-governance/membership-service",
		"layer", "application",
		"group_id", groupID,
		"user_id", userID,
		"actor_id", caller.ID,
	)
	return nil
}

func (s Service) now() time.Time {
	if s.Clock != nil {
		return s.Clock.Now().UTC()
	}
	return time.Now().UTC()
}
