package workers

import (
	"context"
	"log/slog"
	"time"

	application "concord/contexts/group-governance/election-service/application"
	"concord/contexts/group-governance/election-service/application/commands"
	"concord/contexts/group-governance/election-service/ports"
)

// ElectionCloser ends elections whose voting window has passed. It reuses the
// EndElection command so the cascade delete and post-commit notification
// behave exactly like a manual termination.
type ElectionCloser struct {
	Repo     ports.Repository
	Commands commands.Service
	Clock    ports.Clock
	Logger   *slog.Logger
}

// RunOnce scans for expired elections and ends each one. Failures on a
// single election are logged and do not stop the sweep.
func (w ElectionCloser) RunOnce(ctx context.Context) error {
	logger := application.ResolveLogger(w.Logger)

	now := w.now()
	expired, err := w.Repo.ListExpiredElections(ctx, now)
	if err != nil {
		return err
	}
	for _, election := range expired {
		if _, err := w.Commands.EndElection(ctx, ports.Identity{}, election.ID); err != nil {
			logger.Error("election close failed",
				"event", "election_close_failed",
				"module", "group-governance/election-service",
				"layer", "worker",
				"election_id", election.ID,
				"error", err.Error(),
			)
			continue
		}
		logger.Info("expired election closed",
			"event", "election_closed",
			"module", "group-governance/election-service",
			"layer", "worker",
			"election_id", election.ID,
			"date_to", election.DateTo,
		)
	}
	return nil
}

func (w ElectionCloser) now() time.Time {
	if w.Clock != nil {
		return w.Clock.Now().UTC()
	}
	return time.Now().UTC()
}
