package postgresadapter

import (
	"time"

	"concord/contexts/group-governance/membership-service/domain/entities"
)

// userModel is a read-only projection of the identity service's users table.
// Membership migrates the table shape but never writes rows.
type userModel struct {
	ID        uint   `gorm:"primaryKey"`
	Name      string `gorm:"size:120;not null"`
	Email     string `gorm:"size:255;uniqueIndex;not null"`
	Role      string `gorm:"size:32;not null;default:member"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (userModel) TableName() string { return "users" }

type groupModel struct {
	ID          uint   `gorm:"primaryKey"`
	Name        string `gorm:"size:120;not null"`
	Description string `gorm:"size:500"`
	CreatorID   uint   `gorm:"not null;index"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (groupModel) TableName() string { return "groups" }

type groupMemberModel struct {
	ID       uint      `gorm:"primaryKey"`
	GroupID  uint      `gorm:"not null;uniqueIndex:idx_group_members_group_user"`
	UserID   uint      `gorm:"not null;uniqueIndex:idx_group_members_group_user"`
	JoinedAt time.Time `gorm:"not null"`
}

func (groupMemberModel) TableName() string { return "group_members" }

type groupInviteModel struct {
	ID         uint   `gorm:"primaryKey"`
	GroupID    uint   `gorm:"not null;index"`
	SenderID   uint   `gorm:"not null"`
	ReceiverID uint   `gorm:"not null;index"`
	Status     string `gorm:"size:16;not null;index"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (groupInviteModel) TableName() string { return "group_invites" }

// Models lists what this adapter migrates.
func Models() []any {
	return []any{&userModel{}, &groupModel{}, &groupMemberModel{}, &groupInviteModel{}}
}

// Constraints adds the FK cascades AutoMigrate cannot derive from
// cross-package models. Statements are idempotent.
func Constraints() []string {
	return []string{
		`ALTER TABLE group_members DROP CONSTRAINT IF EXISTS fk_group_members_group,
			ADD CONSTRAINT fk_group_members_group FOREIGN KEY (group_id) REFERENCES groups(id) ON DELETE CASCADE`,
		`ALTER TABLE group_invites DROP CONSTRAINT IF EXISTS fk_group_invites_group,
			ADD CONSTRAINT fk_group_invites_group FOREIGN KEY (group_id) REFERENCES groups(id) ON DELETE CASCADE`,
	}
}

func (m userModel) toEntity() entities.User {
	return entities.User{ID: m.ID, Name: m.Name, Email: m.Email, Role: m.Role}
}

func (m groupModel) toEntity() entities.Group {
	return entities.Group{
		ID:          m.ID,
		Name:        m.Name,
		Description: m.Description,
		CreatorID:   m.CreatorID,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

func (m groupMemberModel) toEntity() entities.GroupMember {
	return entities.GroupMember{ID: m.ID, GroupID: m.GroupID, UserID: m.UserID, JoinedAt: m.JoinedAt}
}

func (m groupInviteModel) toEntity() entities.GroupInvite {
	return entities.GroupInvite{
		ID:         m.ID,
		GroupID:    m.GroupID,
		SenderID:   m.SenderID,
		ReceiverID: m.ReceiverID,
		Status:     entities.InviteStatus(m.Status),
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}
}
