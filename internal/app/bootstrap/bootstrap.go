// Package bootstrap is the composition root: it loads configuration and wires
// adapters into the deliberation module so the rest of the code stays
// construction-free.
package bootstrap

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	deliberationengine "quorum/contexts/governance-core/deliberation-engine"
	postgresadapter "quorum/contexts/governance-core/deliberation-engine/adapters/postgres"
	workerapp "quorum/contexts/governance-core/deliberation-engine/application/workers"
	eventsv1 "quorum/contracts/gen/events/v1"
	"quorum/internal/platform/config"
	"quorum/internal/platform/db"
	"quorum/internal/platform/httpserver"
	"quorum/internal/platform/messaging"
)

// APIApp owns the HTTP process: the composed deliberation module behind the
// platform server plus the postgres handle it closes on shutdown.
type APIApp struct {
	server   *httpserver.Server
	postgres *db.Postgres
	logger   *slog.Logger
}

type WorkerApp struct {
	postgres     *db.Postgres
	outboxRelay  workerapp.OutboxRelay
	roster       workerapp.CommitteeRosterConsumer
	windows      *workerapp.VotingWindowMonitor
	relayEnabled bool
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

	repo := postgresadapter.NewRepository(pg.DB, logger)
	module := deliberationengine.NewModule(deliberationengine.Dependencies{
		Items:          repo,
		Committees:     repo,
		Idempotency:    repo,
		Outbox:         repo,
		Clock:          postgresadapter.SystemClock{},
		IDGen:          postgresadapter.UUIDGenerator{},
		IdempotencyTTL: 7 * 24 * time.Hour,
		Logger:         logger,
	})

	server := httpserver.New(module, logger, normalizeAddr(cfg.HTTPPort))
	return &APIApp{
		server:   server,
		postgres: pg,
		logger:   logger,
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

	kafka, err := messaging.NewKafka(cfg.KafkaBrokers, logger)
	if err != nil {
		return nil, err
	}

	repo := postgresadapter.NewRepository(pg.DB, logger)
	return &WorkerApp{
		postgres: pg,
		outboxRelay: workerapp.OutboxRelay{
			Outbox:    repo,
			Publisher: kafka,
			Clock:     postgresadapter.SystemClock{},
			BatchSize: 100,
			Logger:    logger,
		},
		roster: workerapp.CommitteeRosterConsumer{
			Subscriber:    kafka,
			Dedup:         repo,
			Committees:    repo,
			Clock:         postgresadapter.SystemClock{},
			ConsumerGroup: "deliberation-engine-committee-cg",
			DedupTTL:      7 * 24 * time.Hour,
			Disabled:      !cfg.EnableCommitteeRosterConsumer,
			Logger:        logger,
		},
		windows: &workerapp.VotingWindowMonitor{
			Items:    repo,
			Outbox:   repo,
			Clock:    postgresadapter.SystemClock{},
			IDGen:    postgresadapter.UUIDGenerator{},
			Disabled: !cfg.EnableVotingWindowMonitor,
			Logger:   logger,
		},
		relayEnabled: cfg.EnableOutboxRelay,
		pollInterval: 2 * time.Second,
		logger:       logger,
	}, nil
}

func (a *APIApp) Run(_ context.Context) error {
	if a.logger != nil {
		a.logger.Info("api app started",
			"event", "bootstrap_api_started",
			"module", "internal/app/bootstrap",
			"layer", "platform",
		)
	}
	return a.server.Start()
}

func (a *APIApp) Close() error {
	if a.postgres != nil {
		return a.postgres.Close()
	}
	return nil
}

func (w *WorkerApp) Run(ctx context.Context) error {
	if err := w.roster.Start(ctx); err != nil {
		return err
	}

	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	w.logger.Info("worker app started",
		"event", "bootstrap_worker_started",
		"module", "internal/app/bootstrap",
		"layer", "platform",
		"poll_interval", w.pollInterval.String(),
		"committee_topics", eventsv1.CommitteeUpdated+","+eventsv1.CommitteeArchived,
	)

	for {
		if err := w.windows.RunOnce(ctx); err != nil {
			return err
		}
		if w.relayEnabled {
			if err := w.outboxRelay.RunOnce(ctx); err != nil {
				return err
			}
		}
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

func (w *WorkerApp) Close() error {
	if w.postgres != nil {
		return w.postgres.Close()
	}
	return nil
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
