package ports

import (
	"context"
	"time"

	"concord/contexts/group-governance/meeting-service/domain/entities"
	"concord/internal/shared/fanout"
)

type Identity struct {
	ID    uint
	Name  string
	Email string
	Role  string
}

// CreateMeetingResult returns the single invitee snapshot taken inside the
// creation transaction; notifications and emails both use it so recipient
// sets cannot diverge.
type CreateMeetingResult struct {
	Meeting  entities.GroupMeeting
	Group    entities.GroupRef
	Invites  []entities.GroupMeetingInvite
	Invitees []entities.User
}

type RespondInviteResult struct {
	Invite    entities.GroupMeetingInvite
	Meeting   entities.GroupMeeting
	Creator   entities.User
	Responder entities.User
}

type Repository interface {
	GetGroup(ctx context.Context, groupID uint) (entities.GroupRef, bool, error)
	GetMeeting(ctx context.Context, meetingID uint) (entities.GroupMeeting, bool, error)

	// CreateMeeting writes the meeting and one pending invite per invitee in
	// one transaction. With an empty inviteeIDs, the invitee set is the
	// group's current members snapshotted inside the same transaction.
	CreateMeeting(ctx context.Context, meeting entities.GroupMeeting, inviteeIDs []uint, now time.Time) (CreateMeetingResult, error)

	RespondInvite(ctx context.Context, meetingID uint, userID uint, status entities.InviteStatus, now time.Time) (RespondInviteResult, error)

	ListMeetingsForGroup(ctx context.Context, groupID uint) ([]entities.GroupMeeting, error)
	ListInvitesForUser(ctx context.Context, userID uint) ([]entities.GroupMeetingInvite, error)
	ListInvitesForMeeting(ctx context.Context, meetingID uint) ([]entities.GroupMeetingInvite, error)
}

type FanoutPublisher interface {
	Publish(ctx context.Context, delivery fanout.Delivery)
}

type Clock interface {
	Now() time.Time
}
