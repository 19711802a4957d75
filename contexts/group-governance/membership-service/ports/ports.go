package ports

import (
	"context"
	"time"

	"concord/contexts/group-governance/membership-service/domain/entities"
	"concord/internal/shared/fanout"
)

// Identity is the already-authenticated caller passed in by the transport
// layer. Authentication itself is owned externally.
type Identity struct {
	ID    uint
	Name  string
	Email string
	Role  string
}

// RespondInviteResult carries everything the post-commit fan-out needs so no
// second query runs outside the transaction.
type RespondInviteResult struct {
	Invite   entities.GroupInvite
	Group    entities.Group
	Sender   entities.User
	Receiver entities.User
}

// Repository methods that mutate run as one transaction each; on error the
// store is left untouched.
type Repository interface {
	GetUser(ctx context.Context, userID uint) (entities.User, bool, error)
	GetGroup(ctx context.Context, groupID uint) (entities.Group, bool, error)

	CreateGroup(ctx context.Context, group entities.Group, now time.Time) (entities.Group, error)
	DeleteGroup(ctx context.Context, groupID uint) (entities.Group, error)
	ListGroupsForUser(ctx context.Context, userID uint) ([]entities.Group, error)
	ListMembers(ctx context.Context, groupID uint) ([]entities.GroupMember, error)
	RemoveMember(ctx context.Context, groupID uint, userID uint) error

	CreateInvite(ctx context.Context, invite entities.GroupInvite, now time.Time) (entities.GroupInvite, error)
	RespondInvite(ctx context.Context, inviteID uint, receiverID uint, status entities.InviteStatus, now time.Time) (RespondInviteResult, error)
	ListInvitesForUser(ctx context.Context, userID uint) ([]entities.GroupInvite, error)
}

type FanoutPublisher interface {
	Publish(ctx context.Context, delivery fanout.Delivery)
}

type Clock interface {
	Now() time.Time
}
