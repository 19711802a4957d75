package entities

import "time"

type InviteStatus string

const (
	InviteStatusPending  InviteStatus = "pending"
	InviteStatusAccepted InviteStatus = "accepted"
	InviteStatusDeclined InviteStatus = "declined"
)

func (s InviteStatus) Terminal() bool {
	return s == InviteStatusAccepted || s == InviteStatusDeclined
}

// User is the read-only directory projection shared with membership.
type User struct {
	ID    uint
	Name  string
	Email string
	Role  string
}

// GroupRef is the minimal group projection meetings need.
type GroupRef struct {
	ID   uint
	Name string
}

// GroupMeeting is immutable once created.
type GroupMeeting struct {
	ID        uint
	GroupID   uint
	CreatorID uint
	Location  string
	TimeFrom  time.Time
	TimeTo    time.Time
	CreatedAt time.Time
}

// GroupMeetingInvite is one row per invited user, bulk-created pending at
// meeting creation, with exactly one terminal transition per row.
type GroupMeetingInvite struct {
	ID        uint
	MeetingID uint
	UserID    uint
	Status    InviteStatus
	CreatedAt time.Time
	UpdatedAt time.Time
}
