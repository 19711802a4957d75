package postgresadapter

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"concord/contexts/group-governance/meeting-service/domain/entities"
	domainerrors "concord/contexts/group-governance/meeting-service/domain/errors"
	"concord/contexts/group-governance/meeting-service/ports"

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

func (r *Repository) GetGroup(ctx context.Context, groupID uint) (entities.GroupRef, bool, error) {
	var row groupRow
	err := r.db.WithContext(ctx).First(&row, groupID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.GroupRef{}, false, nil
		}
		return entities.GroupRef{}, false, r.logError("meeting_repo_get_group_failed", err, "group_id", groupID)
	}
	return entities.GroupRef{ID: row.ID, Name: row.Name}, true, nil
}

func (r *Repository) GetMeeting(ctx context.Context, meetingID uint) (entities.GroupMeeting, bool, error) {
	var row meetingModel
	err := r.db.WithContext(ctx).First(&row, meetingID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.GroupMeeting{}, false, nil
		}
		return entities.GroupMeeting{}, false, r.logError("meeting_repo_get_meeting_failed", err, "meeting_id", meetingID)
	}
	return row.toEntity(), true, nil
}

// CreateMeeting writes the meeting row plus one pending invite per invitee
// in one transaction. The derived-invitee path snapshots group members
// inside the same transaction, and that snapshot is the only recipient
// source returned to the caller.
func (r *Repository) CreateMeeting(
	ctx context.Context,
	meeting entities.GroupMeeting,
	inviteeIDs []uint,
	now time.Time,
) (ports.CreateMeetingResult, error) {
	var out ports.CreateMeetingResult
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var group groupRow
		if err := tx.First(&group, meeting.GroupID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domainerrors.ErrInvalidPayload
			}
			return err
		}

		row := meetingModel{
			GroupID:   meeting.GroupID,
			CreatorID: meeting.CreatorID,
			Location:  meeting.Location,
			TimeFrom:  meeting.TimeFrom,
			TimeTo:    meeting.TimeTo,
			CreatedAt: now,
		}
		if err := tx.Create(&row).Error; err != nil {
			return err
		}

		snapshot := inviteeIDs
		if len(snapshot) == 0 {
			var members []memberRow
			if err := tx.Where("group_id = ?", meeting.GroupID).Order("id ASC").Find(&members).Error; err != nil {
				return err
			}
			for _, member := range members {
				snapshot = append(snapshot, member.UserID)
			}
		}

		out = ports.CreateMeetingResult{
			Meeting: row.toEntity(),
			Group:   entities.GroupRef{ID: group.ID, Name: group.Name},
		}
		for _, userID := range snapshot {
			invite := meetingInviteModel{
				MeetingID: row.ID,
				UserID:    userID,
				Status:    string(entities.InviteStatusPending),
				CreatedAt: now,
				UpdatedAt: now,
			}
			if err := tx.Create(&invite).Error; err != nil {
				return err
			}
			out.Invites = append(out.Invites, invite.toEntity())
		}

		if len(snapshot) > 0 {
			var users []userRow
			if err := tx.Where("id IN ?", snapshot).Find(&users).Error; err != nil {
				return err
			}
			for _, user := range users {
				out.Invitees = append(out.Invitees, user.toEntity())
			}
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, domainerrors.ErrInvalidPayload) {
			return ports.CreateMeetingResult{}, err
		}
		return ports.CreateMeetingResult{}, r.logError("meeting_repo_create_meeting_failed", err,
			"group_id", meeting.GroupID, "creator_id", meeting.CreatorID)
	}
	return out, nil
}

// RespondInvite resolves the caller's own pending row for the meeting. A
// missing pending row means the invite never existed or is already terminal.
func (r *Repository) RespondInvite(
	ctx context.Context,
	meetingID uint,
	userID uint,
	status entities.InviteStatus,
	now time.Time,
) (ports.RespondInviteResult, error) {
	var out ports.RespondInviteResult
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var invite meetingInviteModel
		err := tx.Where("meeting_id = ? AND user_id = ? AND status = ?",
			meetingID, userID, string(entities.InviteStatusPending)).
			First(&invite).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domainerrors.ErrInviteResolved
			}
			return err
		}

		if err := tx.Model(&meetingInviteModel{}).
			Where("id = ?", invite.ID).
			Updates(map[string]any{"status": string(status), "updated_at": now}).Error; err != nil {
			return err
		}
		invite.Status = string(status)
		invite.UpdatedAt = now

		var meeting meetingModel
		if err := tx.First(&meeting, meetingID).Error; err != nil {
			return err
		}
		var creator, responder userRow
		if err := tx.First(&creator, meeting.CreatorID).Error; err != nil {
			return err
		}
		if err := tx.First(&responder, userID).Error; err != nil {
			return err
		}

		out = ports.RespondInviteResult{
			Invite:    invite.toEntity(),
			Meeting:   meeting.toEntity(),
			Creator:   creator.toEntity(),
			Responder: responder.toEntity(),
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, domainerrors.ErrInviteResolved) {
			return ports.RespondInviteResult{}, err
		}
		return ports.RespondInviteResult{}, r.logError("meeting_repo_respond_invite_failed", err,
			"meeting_id", meetingID, "user_id", userID)
	}
	return out, nil
}

func (r *Repository) ListMeetingsForGroup(ctx context.Context, groupID uint) ([]entities.GroupMeeting, error) {
	var rows []meetingModel
	err := r.db.WithContext(ctx).
		Where("group_id = ?", groupID).
		Order("time_from ASC").
		Find(&rows).Error
	if err != nil {
		return nil, r.logError("meeting_repo_list_meetings_failed", err, "group_id", groupID)
	}
	out := make([]entities.GroupMeeting, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toEntity())
	}
	return out, nil
}

func (r *Repository) ListInvitesForUser(ctx context.Context, userID uint) ([]entities.GroupMeetingInvite, error) {
	var rows []meetingInviteModel
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, r.logError("meeting_repo_list_user_invites_failed", err, "user_id", userID)
	}
	out := make([]entities.GroupMeetingInvite, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toEntity())
	}
	return out, nil
}

func (r *Repository) ListInvitesForMeeting(ctx context.Context, meetingID uint) ([]entities.GroupMeetingInvite, error) {
	var rows []meetingInviteModel
	err := r.db.WithContext(ctx).
		Where("meeting_id = ?", meetingID).
		Order("id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, r.logError("meeting_repo_list_meeting_invites_failed", err, "meeting_id", meetingID)
	}
	out := make([]entities.GroupMeetingInvite, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toEntity())
	}
	return out, nil
}

func (r *Repository) logError(event string, err error, args ...any) error {
	fields := append([]any{
		"event", event,
		"module", "group-governance/meeting-service",
		"layer", "adapter",
		"error", err.Error(),
	}, args...)
	r.logger.Error("meeting repository operation failed", fields...)
	return err
}
