package postgresadapter

import (
	"time"

	"concord/contexts/group-governance/meeting-service/domain/entities"
)

// Read-only projections of tables owned elsewhere.
type userRow struct {
	ID    uint
	Name  string
	Email string
	Role  string
}

func (userRow) TableName() string { return "users" }

type groupRow struct {
	ID   uint
	Name string
}

func (groupRow) TableName() string { return "groups" }

type memberRow struct {
	GroupID uint
	UserID  uint
}

func (memberRow) TableName() string { return "group_members" }

type meetingModel struct {
	ID        uint   `gorm:"primaryKey"`
	GroupID   uint   `gorm:"not null;index"`
	CreatorID uint   `gorm:"not null"`
	Location  string `gorm:"size:255;not null"`
	TimeFrom  time.Time
	TimeTo    time.Time
	CreatedAt time.Time
}

func (meetingModel) TableName() string { return "group_meetings" }

type meetingInviteModel struct {
	ID        uint   `gorm:"primaryKey"`
	MeetingID uint   `gorm:"not null;uniqueIndex:idx_meeting_invites_meeting_user"`
	UserID    uint   `gorm:"not null;uniqueIndex:idx_meeting_invites_meeting_user"`
	Status    string `gorm:"size:16;not null;index"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (meetingInviteModel) TableName() string { return "group_meeting_invites" }

func Models() []any {
	return []any{&meetingModel{}, &meetingInviteModel{}}
}

func Constraints() []string {
	return []string{
		`ALTER TABLE group_meetings DROP CONSTRAINT IF EXISTS fk_group_meetings_group,
			ADD CONSTRAINT fk_group_meetings_group FOREIGN KEY (group_id) REFERENCES groups(id) ON DELETE CASCADE`,
		`ALTER TABLE group_meeting_invites DROP CONSTRAINT IF EXISTS fk_group_meeting_invites_meeting,
			ADD CONSTRAINT fk_group_meeting_invites_meeting FOREIGN KEY (meeting_id) REFERENCES group_meetings(id) ON DELETE CASCADE`,
	}
}

func (m meetingModel) toEntity() entities.GroupMeeting {
	return entities.GroupMeeting{
		ID:        m.ID,
		GroupID:   m.GroupID,
		CreatorID: m.CreatorID,
		Location:  m.Location,
		TimeFrom:  m.TimeFrom,
		TimeTo:    m.TimeTo,
		CreatedAt: m.CreatedAt,
	}
}

func (m meetingInviteModel) toEntity() entities.GroupMeetingInvite {
	return entities.GroupMeetingInvite{
		ID:        m.ID,
		MeetingID: m.MeetingID,
		UserID:    m.UserID,
		Status:    entities.InviteStatus(m.Status),
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func (u userRow) toEntity() entities.User {
	return entities.User{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role}
}
