package http

import "time"

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type CreateMeetingRequest struct {
	Location   string    `json:"location"`
	TimeFrom   time.Time `json:"time_from"`
	TimeTo     time.Time `json:"time_to"`
	GroupID    uint      `json:"group_id"`
	InviteeIDs []uint    `json:"invitee_ids,omitempty"`
}

type MeetingResponse struct {
	ID        uint      `json:"id"`
	GroupID   uint      `json:"group_id"`
	CreatorID uint      `json:"creator_id"`
	Location  string    `json:"location"`
	TimeFrom  time.Time `json:"time_from"`
	TimeTo    time.Time `json:"time_to"`
	CreatedAt time.Time `json:"created_at"`
}

type RespondInviteRequest struct {
	Status string `json:"status"`
}

type MeetingInviteResponse struct {
	ID        uint      `json:"id"`
	MeetingID uint      `json:"meeting_id"`
	UserID    uint      `json:"user_id"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
