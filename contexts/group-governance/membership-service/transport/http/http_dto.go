package http

import "time"

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type CreateGroupRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type GroupResponse struct {
	ID          uint      `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatorID   uint      `json:"creator_id"`
	CreatedAt   time.Time `json:"created_at"`
}

type MemberResponse struct {
	ID       uint      `json:"id"`
	GroupID  uint      `json:"group_id"`
	UserID   uint      `json:"user_id"`
	JoinedAt time.Time `json:"joined_at"`
}

type CreateInviteRequest struct {
	ReceiverID uint `json:"receiver_id"`
	GroupID    uint `json:"group_id"`
}

type RespondInviteRequest struct {
	Status string `json:"status"`
}

type InviteResponse struct {
	ID         uint      `json:"id"`
	GroupID    uint      `json:"group_id"`
	SenderID   uint      `json:"sender_id"`
	ReceiverID uint      `json:"receiver_id"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
