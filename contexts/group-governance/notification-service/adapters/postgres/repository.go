package postgresadapter

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"concord/contexts/group-governance/notification-service/domain/entities"
	domainerrors "concord/contexts/group-governance/notification-service/domain/errors"

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

func (r *Repository) Create(ctx context.Context, notification entities.Notification, now time.Time) (entities.Notification, error) {
	row := notificationModel{
		UserID:     notification.UserID,
		Type:       notification.Type,
		Message:    notification.Message,
		GroupID:    notification.GroupID,
		MeetingID:  notification.MeetingID,
		InviteID:   notification.InviteID,
		ElectionID: notification.ElectionID,
		PositionID: notification.PositionID,
		IsRead:     false,
		CreatedAt:  now,
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return entities.Notification{}, r.logError("notification_repo_create_failed", err,
			"user_id", notification.UserID, "type", notification.Type)
	}
	return row.toEntity(), nil
}

func (r *Repository) ListForUser(ctx context.Context, userID uint) ([]entities.Notification, error) {
	var rows []notificationModel
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("id DESC").
		Find(&rows).Error
	if err != nil {
		return nil, r.logError("notification_repo_list_failed", err, "user_id", userID)
	}
	out := make([]entities.Notification, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toEntity())
	}
	return out, nil
}

func (r *Repository) MarkRead(ctx context.Context, notificationID uint, userID uint, _ time.Time) (entities.Notification, error) {
	var out entities.Notification
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var row notificationModel
		err := tx.Where("id = ? AND user_id = ?", notificationID, userID).First(&row).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domainerrors.ErrNotFound
			}
			return err
		}
		if err := tx.Model(&notificationModel{}).Where("id = ?", row.ID).Update("is_read", true).Error; err != nil {
			return err
		}
		row.IsRead = true
		out = row.toEntity()
		return nil
	})
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return entities.Notification{}, err
		}
		return entities.Notification{}, r.logError("notification_repo_mark_read_failed", err,
			"notification_id", notificationID, "user_id", userID)
	}
	return out, nil
}

func (r *Repository) logError(event string, err error, args ...any) error {
	fields := append([]any{
		"event", event,
		"module", "group-governance/notification-service",
		"layer", "adapter",
		"error", err.Error(),
	}, args...)
	r.logger.Error("notification repository operation failed", fields...)
	return err
}
