package entities

import "time"

// Notification is one in-app message for one user. Rows are append-only;
// only the read flag changes after creation.
type Notification struct {
	ID         uint
	UserID     uint
	Type       string
	Message    string
	GroupID    *uint
	MeetingID  *uint
	InviteID   *uint
	ElectionID *uint
	PositionID *uint
	IsRead     bool
	CreatedAt  time.Time
}
