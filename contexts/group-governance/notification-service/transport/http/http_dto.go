package http

import "time"

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type NotificationResponse struct {
	ID         uint      `json:"id"`
	UserID     uint      `json:"user_id"`
	Type       string    `json:"type"`
	Message    string    `json:"message"`
	GroupID    *uint     `json:"group_id,omitempty"`
	MeetingID  *uint     `json:"meeting_id,omitempty"`
	InviteID   *uint     `json:"invite_id,omitempty"`
	ElectionID *uint     `json:"election_id,omitempty"`
	PositionID *uint     `json:"position_id,omitempty"`
	IsRead     bool      `json:"is_read"`
	CreatedAt  time.Time `json:"created_at"`
}
