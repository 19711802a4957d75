package ports

import (
	"context"
	"time"

	"concord/contexts/group-governance/notification-service/domain/entities"
)

// Repository is the persistence port for notification rows.
type Repository interface {
	Create(ctx context.Context, notification entities.Notification, now time.Time) (entities.Notification, error)
	ListForUser(ctx context.Context, userID uint) ([]entities.Notification, error)

	// MarkRead flips the read flag on the caller's own row. Returns
	// ErrNotFound when the row is absent or owned by someone else.
	MarkRead(ctx context.Context, notificationID uint, userID uint, now time.Time) (entities.Notification, error)
}

// Mailer sends one outbound message. Implementations must not be relied on
// for delivery; callers treat every send as best-effort.
type Mailer interface {
	Send(to string, subject string, textBody string, htmlBody string) error
}

// Clock abstracts time for deterministic tests.
type Clock interface {
	Now() time.Time
}
