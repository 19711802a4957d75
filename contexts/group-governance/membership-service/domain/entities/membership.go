package entities

import "time"

type InviteStatus string

const (
	InviteStatusPending  InviteStatus = "pending"
	InviteStatusAccepted InviteStatus = "accepted"
	InviteStatusDeclined InviteStatus = "declined"
)

// Terminal reports whether no further transition is permitted.
func (s InviteStatus) Terminal() bool {
	return s == InviteStatusAccepted || s == InviteStatusDeclined
}

// User is the read-only directory projection owned by the external identity
// service. Membership only ever reads it.
type User struct {
	ID    uint
	Name  string
	Email string
	Role  string
}

type Group struct {
	ID          uint
	Name        string
	Description string
	CreatorID   uint
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// GroupMember rows are created at group creation (creator auto-joins) or via
// an accepted invite, never updated, and deleted on leave or removal.
type GroupMember struct {
	ID       uint
	GroupID  uint
	UserID   uint
	JoinedAt time.Time
}

// GroupInvite transitions pending -> accepted or pending -> declined exactly
// once; both outcomes are terminal.
type GroupInvite struct {
	ID         uint
	GroupID    uint
	SenderID   uint
	ReceiverID uint
	Status     InviteStatus
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
