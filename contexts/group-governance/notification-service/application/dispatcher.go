package application

import (
	"context"
	"log/slog"
	"time"

	"concord/contexts/group-governance/notification-service/domain/entities"
	"concord/contexts/group-governance/notification-service/ports"
	"concord/internal/shared/fanout"
)

// Dispatcher consumes post-commit deliveries from the dispatch queue. It
// writes one notification row per notice and sends each email, logging and
// swallowing every failure: nothing here may propagate back to the workflow
// that published the delivery.
type Dispatcher struct {
	Repo   ports.Repository
	Mailer ports.Mailer
	Clock  ports.Clock
	Logger *slog.Logger
}

func (d Dispatcher) Handle(ctx context.Context, delivery fanout.Delivery) error {
	logger := d.logger()
	now := d.now()

	for _, notice := range delivery.Notices {
		_, err := d.Repo.Create(ctx, entities.Notification{
			UserID:     notice.UserID,
			Type:       notice.Type,
			Message:    notice.Message,
			GroupID:    notice.Refs.GroupID,
			MeetingID:  notice.Refs.MeetingID,
			InviteID:   notice.Refs.InviteID,
			ElectionID: notice.Refs.ElectionID,
			PositionID: notice.Refs.PositionID,
		}, now)
		if err != nil {
			logger.Error("notification write failed",
				"event", "notification_write_failed",
				"module", "group-governance/notification-service",
				"layer", "application",
				"delivery_id", delivery.DeliveryID,
				"user_id", notice.UserID,
				"type", notice.Type,
				"error", err.Error(),
			)
		}
	}

	if d.Mailer != nil {
		for _, email := range delivery.Emails {
			if err := d.Mailer.Send(email.To, email.Subject, email.TextBody, email.HTMLBody); err != nil {
				logger.Error("notification email failed",
					"event", "notification_email_failed",
					"module", "group-governance/notification-service",
					"layer", "application",
					"delivery_id", delivery.DeliveryID,
					"to", email.To,
					"error", err.Error(),
				)
			}
		}
	}

	logger.Info("delivery dispatched",
		"event", "delivery_dispatched",
		"module", "group-governance/notification-service",
		"layer", "application",
		"delivery_id", delivery.DeliveryID,
		"source", delivery.Source,
		"notices", len(delivery.Notices),
		"emails", len(delivery.Emails),
	)
	return nil
}

func (d Dispatcher) logger() *slog.Logger {
	if d.Logger != nil {
		return d.Logger
	}
	return slog.Default()
}

func (d Dispatcher) now() time.Time {
	if d.Clock != nil {
		return d.Clock.Now().UTC()
	}
	return time.Now().UTC()
}
