package deliberationengine

import (
	"log/slog"
	"time"

	httpadapter "quorum/contexts/governance-core/deliberation-engine/adapters/http"
	"quorum/contexts/governance-core/deliberation-engine/adapters/memory"
	"quorum/contexts/governance-core/deliberation-engine/application/commands"
	"quorum/contexts/governance-core/deliberation-engine/application/queries"
	"quorum/contexts/governance-core/deliberation-engine/domain/entities"
	"quorum/contexts/governance-core/deliberation-engine/ports"
)

type Module struct {
	Handler    httpadapter.Handler
	Commands   commands.DeliberationUseCase
	Dashboard  queries.DashboardUseCase
	Committees ports.CommitteeDirectory
	Store      *memory.Store
}

type Dependencies struct {
	Items          ports.DeliberationRepository
	Committees     ports.CommitteeDirectory
	Idempotency    ports.IdempotencyStore
	Outbox         ports.OutboxWriter
	Clock          ports.Clock
	IDGen          ports.IDGenerator
	IdempotencyTTL time.Duration
	Logger         *slog.Logger
}

func NewModule(deps Dependencies) Module {
	deliberationUseCase := commands.DeliberationUseCase{
		Items:          deps.Items,
		Committees:     deps.Committees,
		Idempotency:    deps.Idempotency,
		Outbox:         deps.Outbox,
		Clock:          deps.Clock,
		IDGen:          deps.IDGen,
		IdempotencyTTL: deps.IdempotencyTTL,
		Logger:         deps.Logger,
	}
	dashboardUseCase := queries.DashboardUseCase{
		Items: deps.Items,
		Clock: deps.Clock,
	}
	return Module{
		Handler: httpadapter.Handler{
			Deliberations: deliberationUseCase,
			Dashboard:     dashboardUseCase,
			Logger:        deps.Logger,
		},
		Commands:   deliberationUseCase,
		Dashboard:  dashboardUseCase,
		Committees: deps.Committees,
	}
}

func NewInMemoryModule(seed []entities.DeliberationItem, logger *slog.Logger) Module {
	store := memory.NewStore(seed)
	module := NewModule(Dependencies{
		Items:          store,
		Committees:     store,
		Idempotency:    store,
		Outbox:         store,
		Clock:          store,
		IDGen:          store,
		IdempotencyTTL: 7 * 24 * time.Hour,
		Logger:         logger,
	})
	module.Store = store
	return module
}
