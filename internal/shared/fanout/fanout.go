package fanout

import (
	"time"

	"github.com/google/uuid"
)

// Notice types recorded on notification rows. Emitting services reference these
// instead of importing the notification service directly.
const (
	TypeGroupInvite           = "group_invite"
	TypeGroupInviteAccepted   = "group_invite_accepted"
	TypeGroupInviteDeclined   = "group_invite_declined"
	TypeMeetingInvite         = "meeting_invite"
	TypeMeetingInviteAccepted = "meeting_invite_accepted"
	TypeMeetingInviteDeclined = "meeting_invite_declined"
	TypeElectionCreated       = "election_created"
	TypeElectionEnded         = "election_ended"
	TypePositionCreated       = "position_created"
	TypeCandidateNominated    = "candidate_nominated"
)

// Refs points a notice at the records it is about. All fields optional.
type Refs struct {
	GroupID    *uint `json:"group_id,omitempty"`
	MeetingID  *uint `json:"meeting_id,omitempty"`
	InviteID   *uint `json:"invite_id,omitempty"`
	ElectionID *uint `json:"election_id,omitempty"`
	PositionID *uint `json:"position_id,omitempty"`
}

// Notice is one in-app notification to create for one user.
type Notice struct {
	UserID  uint   `json:"user_id"`
	Type    string `json:"type"`
	Message string `json:"message"`
	Refs    Refs   `json:"refs"`
}

// Email is one outbound message for the mailer.
type Email struct {
	To       string `json:"to"`
	Subject  string `json:"subject"`
	TextBody string `json:"text_body"`
	HTMLBody string `json:"html_body"`
}

// Delivery is the unit of post-commit fan-out. Workflows publish one delivery
// after their transaction commits; the dispatcher consumes it best-effort.
// A delivery is never part of the transactional guarantee and may be dropped.
type Delivery struct {
	DeliveryID string    `json:"delivery_id"`
	Source     string    `json:"source"`
	OccurredAt time.Time `json:"occurred_at"`
	Notices    []Notice  `json:"notices"`
	Emails     []Email   `json:"emails"`
}

func NewDelivery(source string, occurredAt time.Time) Delivery {
	return Delivery{
		DeliveryID: uuid.NewString(),
		Source:     source,
		OccurredAt: occurredAt.UTC(),
	}
}

func (d *Delivery) AddNotice(userID uint, noticeType string, message string, refs Refs) {
	d.Notices = append(d.Notices, Notice{
		UserID:  userID,
		Type:    noticeType,
		Message: message,
		Refs:    refs,
	})
}

func (d *Delivery) AddEmail(to string, subject string, textBody string, htmlBody string) {
	if to == "" {
		return
	}
	d.Emails = append(d.Emails, Email{
		To:       to,
		Subject:  subject,
		TextBody: textBody,
		HTMLBody: htmlBody,
	})
}

// Ref builds an optional reference value inline.
func Ref(id uint) *uint { return &id }
