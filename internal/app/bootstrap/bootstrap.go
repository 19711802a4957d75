package bootstrap

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	electionservice "concord/contexts/group-governance/election-service"
	electionpostgres "concord/contexts/group-governance/election-service/adapters/postgres"
	electionworkers "concord/contexts/group-governance/election-service/application/workers"
	meetingservice "concord/contexts/group-governance/meeting-service"
	meetingpostgres "concord/contexts/group-governance/meeting-service/adapters/postgres"
	membershipservice "concord/contexts/group-governance/membership-service"
	membershippostgres "concord/contexts/group-governance/membership-service/adapters/postgres"
	notificationservice "concord/contexts/group-governance/notification-service"
	notificationapp "concord/contexts/group-governance/notification-service/application"
	notificationpostgres "concord/contexts/group-governance/notification-service/adapters/postgres"
	notificationports "concord/contexts/group-governance/notification-service/ports"
	"concord/internal/platform/config"
	"concord/internal/platform/db"
	"concord/internal/platform/dispatch"
	"concord/internal/platform/httpserver"
	"concord/internal/platform/mail"
)

// Package bootstrap is the composition root.
// Keep construction/wiring here so module code stays framework-agnostic.

type APIApp struct {
	server     *httpserver.Server
	postgres   *db.Postgres
	queue      *dispatch.Queue
	dispatcher notificationapp.Dispatcher
	logger     *slog.Logger
}

type WorkerApp struct {
	postgres     *db.Postgres
	queue        *dispatch.Queue
	dispatcher   notificationapp.Dispatcher
	closer       electionworkers.ElectionCloser
	pollInterval time.Duration
	logger       *slog.Logger
}

func BuildAPI() (*APIApp, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger := slog.Default().With("service", cfg.ServiceName, "process", "api")
	if strings.TrimSpace(cfg.PostgresDSN) == "" {
		return nil, errors.New("POSTGRES_DSN is required")
	}

	pg, err := db.Connect(cfg.PostgresDSN)
	if err != nil {
		return nil, err
	}

	if err := pg.Migrate(allModels(), allConstraints()); err != nil {
		_ = pg.Close()
		return nil, err
	}

	queue := dispatch.NewQueue(cfg.DispatchQueueSize, logger)
	mailer := buildMailer(cfg, logger)

	notificationModule := notificationservice.NewModule(notificationservice.Dependencies{
		Repo:   notificationpostgres.NewRepository(pg.DB, logger),
		Mailer: mailer,
		Clock:  notificationpostgres.SystemClock{},
		Logger: logger,
	})
	membershipModule := membershipservice.NewModule(membershipservice.Dependencies{
		Repo:   membershippostgres.NewRepository(pg.DB, logger),
		Fanout: queue,
		Clock:  membershippostgres.SystemClock{},
		Logger: logger,
	})
	meetingModule := meetingservice.NewModule(meetingservice.Dependencies{
		Repo:   meetingpostgres.NewRepository(pg.DB, logger),
		Fanout: queue,
		Clock:  meetingpostgres.SystemClock{},
		Logger: logger,
	})
	electionModule := electionservice.NewModule(electionservice.Dependencies{
		Repo:   electionpostgres.NewRepository(pg.DB, logger),
		Fanout: queue,
		Clock:  electionpostgres.SystemClock{},
		Logger: logger,
	})

	server := httpserver.New(
		membershipModule,
		meetingModule,
		electionModule,
		notificationModule,
		logger,
		normalizeAddr(cfg.HTTPPort),
	)
	return &APIApp{
		server:     server,
		postgres:   pg,
		queue:      queue,
		dispatcher: notificationModule.Dispatcher,
		logger:     logger,
	}, nil
}

func BuildWorker() (*WorkerApp, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger := slog.Default().With("service", cfg.ServiceName, "process", "worker")
	if strings.TrimSpace(cfg.PostgresDSN) == "" {
		return nil, errors.New("POSTGRES_DSN is required")
	}

	pg, err := db.Connect(cfg.PostgresDSN)
	if err != nil {
		return nil, err
	}

	queue := dispatch.NewQueue(cfg.DispatchQueueSize, logger)
	mailer := buildMailer(cfg, logger)

	notificationModule := notificationservice.NewModule(notificationservice.Dependencies{
		Repo:   notificationpostgres.NewRepository(pg.DB, logger),
		Mailer: mailer,
		Clock:  notificationpostgres.SystemClock{},
		Logger: logger,
	})
	electionModule := electionservice.NewModule(electionservice.Dependencies{
		Repo:   electionpostgres.NewRepository(pg.DB, logger),
		Fanout: queue,
		Clock:  electionpostgres.SystemClock{},
		Logger: logger,
	})

	return &WorkerApp{
		postgres:     pg,
		queue:        queue,
		dispatcher:   notificationModule.Dispatcher,
		closer:       electionModule.Closer,
		pollInterval: cfg.WorkerPollInterval,
		logger:       logger,
	}, nil
}

func (a *APIApp) Run(ctx context.Context) error {
	a.queue.Subscribe(ctx, a.dispatcher.Handle)
	a.logger.Info("api app started",
		"event", "bootstrap_api_started",
		"module", "internal/app/bootstrap",
		"layer", "platform",
	)
	return a.server.Start()
}

func (a *APIApp) Close() error {
	if a.queue != nil {
		a.queue.Close()
	}
	if a.postgres != nil {
		return a.postgres.Close()
	}
	return nil
}

func (w *WorkerApp) Run(ctx context.Context) error {
	w.queue.Subscribe(ctx, w.dispatcher.Handle)

	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	w.logger.Info("worker app started",
		"event", "bootstrap_worker_started",
		"module", "internal/app/bootstrap",
		"layer", "platform",
		"poll_interval", w.pollInterval.String(),
	)

	for {
		if err := w.closer.RunOnce(ctx); err != nil {
			return err
		}
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

func (w *WorkerApp) Close() error {
	if w.queue != nil {
		w.queue.Close()
	}
	if w.postgres != nil {
		return w.postgres.Close()
	}
	return nil
}

// allModels orders membership first: the shared users and groups tables must
// exist before the other adapters add FKs against them.
func allModels() []any {
	var models []any
	models = append(models, membershippostgres.Models()...)
	models = append(models, meetingpostgres.Models()...)
	models = append(models, electionpostgres.Models()...)
	models = append(models, notificationpostgres.Models()...)
	return models
}

func allConstraints() []string {
	var constraints []string
	constraints = append(constraints, membershippostgres.Constraints()...)
	constraints = append(constraints, meetingpostgres.Constraints()...)
	constraints = append(constraints, electionpostgres.Constraints()...)
	constraints = append(constraints, notificationpostgres.Constraints()...)
	return constraints
}

func buildMailer(cfg config.Config, logger *slog.Logger) notificationports.Mailer {
	if cfg.MailConfigured() {
		return mail.NewSMTPMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword, cfg.MailFrom, logger)
	}
	return mail.NewNopMailer(logger)
}

func normalizeAddr(port string) string {
	value := strings.TrimSpace(port)
	if value == "" {
		return ":8080"
	}
	if strings.HasPrefix(value, ":") {
		return value
	}
	return ":" + value
}
