package queries

import (
	"context"
	"fmt"

	"concord/contexts/group-governance/meeting-service/domain/entities"
	domainerrors "concord/contexts/group-governance/meeting-service/domain/errors"
	"concord/contexts/group-governance/meeting-service/ports"
)

type Service struct {
	Repo ports.Repository
}

func (s Service) GetMeeting(ctx context.Context, meetingID uint) (entities.GroupMeeting, error) {
	meeting, found, err := s.Repo.GetMeeting(ctx, meetingID)
	if err != nil {
		return entities.GroupMeeting{}, err
	}
	if !found {
		return entities.GroupMeeting{}, fmt.Errorf("%w: meeting", domainerrors.ErrNotFound)
	}
	return meeting, nil
}

func (s Service) ListMeetingsForGroup(ctx context.Context, groupID uint) ([]entities.GroupMeeting, error) {
	return s.Repo.ListMeetingsForGroup(ctx, groupID)
}

func (s Service) ListInvitesForUser(ctx context.Context, userID uint) ([]entities.GroupMeetingInvite, error) {
	return s.Repo.ListInvitesForUser(ctx, userID)
}

func (s Service) ListInvitesForMeeting(ctx context.Context, meetingID uint) ([]entities.GroupMeetingInvite, error) {
	_, found, err := s.Repo.GetMeeting(ctx, meetingID)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, fmt.Errorf("%w: meeting", domainerrors.ErrNotFound)
	}
	return s.Repo.ListInvitesForMeeting(ctx, meetingID)
}
