package commands

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	application "concord/contexts/group-governance/meeting-service/application"
	"concord/contexts/group-governance/meeting-service/domain/entities"
	domainerrors "concord/contexts/group-governance/meeting-service/domain/errors"
	"concord/contexts/group-governance/meeting-service/ports"
	"concord/internal/shared/fanout"
)

type Service struct {
	Repo   ports.Repository
	Fanout ports.FanoutPublisher
	Clock  ports.Clock
	Logger *slog.Logger
}

type CreateMeetingInput struct {
	Location   string
	TimeFrom   time.Time
	TimeTo     time.Time
	GroupID    uint
	InviteeIDs []uint
}

// CreateMeeting writes the meeting and its bulk pending invites atomically.
// Without an explicit invitee list the invite set is a snapshot of the
// group's members at creation time, and that same snapshot feeds every
// notification and email recipient.
func (s Service) CreateMeeting(ctx context.Context, caller ports.Identity, input CreateMeetingInput) (entities.GroupMeeting, error) {
	logger := application.ResolveLogger(s.Logger)

	var missing []string
	if strings.TrimSpace(input.Location) == "" {
		missing = append(missing, "location")
	}
	if input.TimeFrom.IsZero() {
		missing = append(missing, "time_from")
	}
	if input.TimeTo.IsZero() {
		missing = append(missing, "time_to")
	}
	if input.GroupID == 0 {
		missing = append(missing, "group")
	}
	if len(missing) > 0 {
		return entities.GroupMeeting{}, fmt.Errorf("%w: %s", domainerrors.ErrMissingFields, strings.Join(missing, ", "))
	}

	if _, found, err := s.Repo.GetGroup(ctx, input.GroupID); err != nil {
		return entities.GroupMeeting{}, err
	} else if !found {
		return entities.GroupMeeting{}, fmt.Errorf("%w: group", domainerrors.ErrInvalidPayload)
	}

	now := s.now()
	res, err := s.Repo.CreateMeeting(ctx, entities.GroupMeeting{
		GroupID:   input.GroupID,
		CreatorID: caller.ID,
		Location:  strings.TrimSpace(input.Location),
		TimeFrom:  input.TimeFrom.UTC(),
		TimeTo:    input.TimeTo.UTC(),
	}, input.InviteeIDs, now)
	if err != nil {
		return entities.GroupMeeting{}, err
	}

	logger.Info("meeting created",
		"event", "meeting_created",
		"module", "group-governance/meeting-service",
		"layer", "application",
		"meeting_id", res.Meeting.ID,
		"group_id", res.Meeting.GroupID,
		"creator_id", caller.ID,
		"invite_count", len(res.Invites),
	)

	refs := fanout.Refs{GroupID: fanout.Ref(res.Meeting.GroupID), MeetingID: fanout.Ref(res.Meeting.ID)}
	when := res.Meeting.TimeFrom.Format(time.RFC1123)
	delivery := fanout.NewDelivery("meeting-service", now)
	delivery.AddNotice(caller.ID, fanout.TypeMeetingInvite,
		fmt.Sprintf("You scheduled a meeting at %s on %s", res.Meeting.Location, when), refs)
	delivery.AddEmail(caller.Email,
		fmt.Sprintf("Meeting scheduled: %s", res.Meeting.Location),
		fmt.Sprintf("Your meeting for %s at %s on %s was scheduled.", res.Group.Name, res.Meeting.Location, when),
		fmt.Sprintf("<p>Your meeting for <strong>%s</strong> at %s on %s was scheduled.</p>", res.Group.Name, res.Meeting.Location, when),
	)
	for _, invitee := range res.Invitees {
		if invitee.ID == caller.ID {
			continue
		}
		delivery.AddNotice(invitee.ID, fanout.TypeMeetingInvite,
			fmt.Sprintf("%s invited you to a meeting at %s on %s", caller.Name, res.Meeting.Location, when), refs)
		delivery.AddEmail(invitee.Email,
			fmt.Sprintf("Meeting invitation: %s", res.Meeting.Location),
			fmt.Sprintf("%s invited you to a %s meeting at %s on %s.", caller.Name, res.Group.Name, res.Meeting.Location, when),
			fmt.Sprintf("<p>%s invited you to a <strong>%s</strong> meeting at %s on %s.</p>", caller.Name, res.Group.Name, res.Meeting.Location, when),
		)
	}
	s.publish(ctx, delivery)

	return res.Meeting, nil
}

// RespondInvite applies the caller's terminal RSVP. A second response finds
// no pending row and fails with the resolved sentinel.
func (s Service) RespondInvite(ctx context.Context, caller ports.Identity, meetingID uint, status entities.InviteStatus) (entities.GroupMeetingInvite, error) {
	logger := application.ResolveLogger(s.Logger)
	if meetingID == 0 {
		return entities.GroupMeetingInvite{}, fmt.Errorf("%w: meeting", domainerrors.ErrMissingFields)
	}
	if !status.Terminal() {
		return entities.GroupMeetingInvite{}, fmt.Errorf("%w: status", domainerrors.ErrInvalidPayload)
	}

	now := s.now()
	res, err := s.Repo.RespondInvite(ctx, meetingID, caller.ID, status, now)
	if err != nil {
		return entities.GroupMeetingInvite{}, err
	}

	logger.Info("meeting invite resolved",
		"event", "meeting_invite_resolved",
		"module", "group-governance/meeting-service",
		"layer", "application",
		"invite_id", res.Invite.ID,
		"meeting_id", meetingID,
		"user_id", caller.ID,
		"status", string(res.Invite.Status),
	)

	refs := fanout.Refs{
		GroupID:   fanout.Ref(res.Meeting.GroupID),
		MeetingID: fanout.Ref(res.Meeting.ID),
		InviteID:  fanout.Ref(res.Invite.ID),
	}
	delivery := fanout.NewDelivery("meeting-service", now)
	if status == entities.InviteStatusAccepted {
		delivery.AddNotice(res.Creator.ID, fanout.TypeMeetingInviteAccepted,
			fmt.Sprintf("%s is attending your meeting at %s", res.Responder.Name, res.Meeting.Location), refs)
		delivery.AddNotice(res.Responder.ID, fanout.TypeMeetingInviteAccepted,
			fmt.Sprintf("You are attending the meeting at %s", res.Meeting.Location), refs)
	} else {
		delivery.AddNotice(res.Creator.ID, fanout.TypeMeetingInviteDeclined,
			fmt.Sprintf("%s declined your meeting at %s", res.Responder.Name, res.Meeting.Location), refs)
		delivery.AddNotice(res.Responder.ID, fanout.TypeMeetingInviteDeclined,
			fmt.Sprintf("You declined the meeting at %s", res.Meeting.Location), refs)
	}
	s.publish(ctx, delivery)

	return res.Invite, nil
}

func (s Service) publish(ctx context.Context, delivery fanout.Delivery) {
	if s.Fanout == nil {
		return
	}
	s.Fanout.Publish(ctx, delivery)
}

func (s Service) now() time.Time {
	if s.Clock != nil {
		return s.Clock.Now().UTC()
	}
	return time.Now().UTC()
}
