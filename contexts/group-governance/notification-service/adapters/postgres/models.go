package postgresadapter

import (
	"time"

	"concord/contexts/group-governance/notification-service/domain/entities"
)

type notificationModel struct {
	ID         uint   `gorm:"primaryKey"`
	UserID     uint   `gorm:"not null;index"`
	Type       string `gorm:"size:64;not null"`
	Message    string `gorm:"size:500;not null"`
	GroupID    *uint
	MeetingID  *uint
	InviteID   *uint
	ElectionID *uint
	PositionID *uint
	IsRead     bool `gorm:"not null;default:false"`
	CreatedAt  time.Time
}

func (notificationModel) TableName() string { return "notifications" }

// Models lists what this adapter migrates. Reference columns carry no FK
// constraints on purpose: notification rows outlive the records they point
// at, and cascade deletes must never reach into a user's inbox.
func Models() []any {
	return []any{&notificationModel{}}
}

func Constraints() []string { return nil }

func (m notificationModel) toEntity() entities.Notification {
	return entities.Notification{
		ID:         m.ID,
		UserID:     m.UserID,
		Type:       m.Type,
		Message:    m.Message,
		GroupID:    m.GroupID,
		MeetingID:  m.MeetingID,
		InviteID:   m.InviteID,
		ElectionID: m.ElectionID,
		PositionID: m.PositionID,
		IsRead:     m.IsRead,
		CreatedAt:  m.CreatedAt,
	}
}
