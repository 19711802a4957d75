package postgresadapter

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"concord/contexts/group-governance/membership-service/domain/entities"
	domainerrors "concord/contexts/group-governance/membership-service/domain/errors"
	"concord/contexts/group-governance/membership-service/ports"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

type Repository struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewRepository(db *gorm.DB, logger *slog.Logger) *Repository {
	if logger == nil {
		logger = slog.Default()
	}
	return &Repository{db: db, logger: logger}
}

func (r *Repository) GetUser(ctx context.Context, userID uint) (entities.User, bool, error) {
	var row userModel
	err := r.db.WithContext(ctx).First(&row, userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.User{}, false, nil
		}
		return entities.User{}, false, r.logError("membership_repo_get_user_failed", err, "user_id", userID)
	}
	return row.toEntity(), true, nil
}

func (r *Repository) GetGroup(ctx context.Context, groupID uint) (entities.Group, bool, error) {
	var row groupModel
	err := r.db.WithContext(ctx).First(&row, groupID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Group{}, false, nil
		}
		return entities.Group{}, false, r.logError("membership_repo_get_group_failed", err, "group_id", groupID)
	}
	return row.toEntity(), true, nil
}

// CreateGroup inserts the group and the creator's membership row in one
// transaction; the creator auto-joins or neither row exists.
func (r *Repository) CreateGroup(ctx context.Context, group entities.Group, now time.Time) (entities.Group, error) {
	row := groupModel{
		Name:        group.Name,
		Description: group.Description,
		CreatorID:   group.CreatorID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&row).Error; err != nil {
			return err
		}
		member := groupMemberModel{GroupID: row.ID, UserID: group.CreatorID, JoinedAt: now}
		return tx.Create(&member).Error
	})
	if err != nil {
		return entities.Group{}, r.logError("membership_repo_create_group_failed", err, "creator_id", group.CreatorID)
	}
	return row.toEntity(), nil
}

// DeleteGroup returns the deleted group's values; children (members, invites,
// meetings, elections) are removed by FK cascade.
func (r *Repository) DeleteGroup(ctx context.Context, groupID uint) (entities.Group, error) {
	var row groupModel
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&row, groupID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domainerrors.ErrNotFound
			}
			return err
		}
		return tx.Delete(&groupModel{}, groupID).Error
	})
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return entities.Group{}, err
		}
		return entities.Group{}, r.logError("membership_repo_delete_group_failed", err, "group_id", groupID)
	}
	return row.toEntity(), nil
}

func (r *Repository) ListGroupsForUser(ctx context.Context, userID uint) ([]entities.Group, error) {
	var rows []groupModel
	err := r.db.WithContext(ctx).
		Table("groups").
		Select("groups.*").
		Joins("JOIN group_members ON group_members.group_id = groups.id").
		Where("group_members.user_id = ?", userID).
		Order("groups.id ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, r.logError("membership_repo_list_groups_failed", err, "user_id", userID)
	}
	out := make([]entities.Group, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toEntity())
	}
	return out, nil
}

func (r *Repository) ListMembers(ctx context.Context, groupID uint) ([]entities.GroupMember, error) {
	var rows []groupMemberModel
	err := r.db.WithContext(ctx).
		Where("group_id = ?", groupID).
		Order("id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, r.logError("membership_repo_list_members_failed", err, "group_id", groupID)
	}
	out := make([]entities.GroupMember, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toEntity())
	}
	return out, nil
}

func (r *Repository) RemoveMember(ctx context.Context, groupID uint, userID uint) error {
	res := r.db.WithContext(ctx).
		Where("group_id = ? AND user_id = ?", groupID, userID).
		Delete(&groupMemberModel{})
	if res.Error != nil {
		return r.logError("membership_repo_remove_member_failed", res.Error, "group_id", groupID, "user_id", userID)
	}
	if res.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

func (r *Repository) CreateInvite(ctx context.Context, invite entities.GroupInvite, now time.Time) (entities.GroupInvite, error) {
	row := groupInviteModel{
		GroupID:    invite.GroupID,
		SenderID:   invite.SenderID,
		ReceiverID: invite.ReceiverID,
		Status:     string(entities.InviteStatusPending),
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(&row).Error
	})
	if err != nil {
		return entities.GroupInvite{}, r.logError("membership_repo_create_invite_failed", err,
			"group_id", invite.GroupID, "receiver_id", invite.ReceiverID)
	}
	return row.toEntity(), nil
}

// RespondInvite applies the pending -> terminal transition. The pending
// filter makes a second response miss the row entirely, and the accepted
// branch's membership check aborts the transaction before anything commits,
// so a conflicting accept leaves the invite pending.
func (r *Repository) RespondInvite(
	ctx context.Context,
	inviteID uint,
	receiverID uint,
	status entities.InviteStatus,
	now time.Time,
) (ports.RespondInviteResult, error) {
	var out ports.RespondInviteResult
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var invite groupInviteModel
		err := tx.Where("id = ? AND status = ?", inviteID, string(entities.InviteStatusPending)).
			First(&invite).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domainerrors.ErrInviteResolved
			}
			return err
		}
		if invite.ReceiverID != receiverID {
			return domainerrors.ErrInviteResolved
		}

		if err := tx.Model(&groupInviteModel{}).
			Where("id = ?", invite.ID).
			Updates(map[string]any{"status": string(status), "updated_at": now}).Error; err != nil {
			return err
		}
		invite.Status = string(status)
		invite.UpdatedAt = now

		if status == entities.InviteStatusAccepted {
			var count int64
			if err := tx.Model(&groupMemberModel{}).
				Where("group_id = ? AND user_id = ?", invite.GroupID, receiverID).
				Count(&count).Error; err != nil {
				return err
			}
			if count > 0 {
				return domainerrors.ErrAlreadyMember
			}
			member := groupMemberModel{GroupID: invite.GroupID, UserID: receiverID, JoinedAt: now}
			if err := tx.Create(&member).Error; err != nil {
				if isUniqueViolation(err) {
					return domainerrors.ErrAlreadyMember
				}
				return err
			}
		}

		var group groupModel
		if err := tx.First(&group, invite.GroupID).Error; err != nil {
			return err
		}
		var sender, receiver userModel
		if err := tx.First(&sender, invite.SenderID).Error; err != nil {
			return err
		}
		if err := tx.First(&receiver, invite.ReceiverID).Error; err != nil {
			return err
		}

		out = ports.RespondInviteResult{
			Invite:   invite.toEntity(),
			Group:    group.toEntity(),
			Sender:   sender.toEntity(),
			Receiver: receiver.toEntity(),
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, domainerrors.ErrInviteResolved) || errors.Is(err, domainerrors.ErrAlreadyMember) {
			return ports.RespondInviteResult{}, err
		}
		return ports.RespondInviteResult{}, r.logError("membership_repo_respond_invite_failed", err,
			"invite_id", inviteID, "receiver_id", receiverID)
	}
	return out, nil
}

func (r *Repository) ListInvitesForUser(ctx context.Context, userID uint) ([]entities.GroupInvite, error) {
	var rows []groupInviteModel
	err := r.db.WithContext(ctx).
		Where("receiver_id = ? OR sender_id = ?", userID, userID).
		Order("id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, r.logError("membership_repo_list_invites_failed", err, "user_id", userID)
	}
	out := make([]entities.GroupInvite, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toEntity())
	}
	return out, nil
}

func (r *Repository) logError(event string, err error, args ...any) error {
	fields := append([]any{
		"event", event,
		"module", "group-governance/membership-service",
		"layer", "adapter",
		"error", err.Error(),
	}, args...)
	r.logger.Error("membership repository operation failed", fields...)
	return err
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}
