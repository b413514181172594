package ports

import (
	"context"
	"time"

	contractsv1 "quorum/contracts/gen/events/v1"

	"quorum/contexts/governance-core/deliberation-engine/domain/entities"
)

// DeliberationRepository is the aggregate store. Save persists the whole item
// including stages, votes, audit trail, minutes, and execution items.
type DeliberationRepository interface {
	SaveItem(ctx context.Context, item entities.DeliberationItem) error
	GetItem(ctx context.Context, itemID string) (entities.DeliberationItem, error)
	ListItems(ctx context.Context, filter ListFilter) ([]entities.DeliberationItem, error)
}

// ListFilter narrows repository listings. Zero values mean "no constraint".
type ListFilter struct {
	Status      entities.DeliberationStatus
	CommitteeID string
	SearchText  string
}

// CommitteeProjection mirrors the committee directory owned by the host
// application: display name plus the expected voter population used for
// quorum computation.
type CommitteeProjection struct {
	CommitteeID    string
	Name           string
	PopulationSize int
	Archived       bool
}

// CommitteeDirectory resolves committees consulted at submission and
// voting-start time.
type CommitteeDirectory interface {
	GetCommittee(ctx context.Context, committeeID string) (CommitteeProjection, error)
	SaveCommittee(ctx context.Context, committee CommitteeProjection) error
}

type IdempotencyRecord struct {
	Key         string
	RequestHash string
	ItemID      string
	ExpiresAt   time.Time
}

type IdempotencyStore interface {
	Get(ctx context.Context, key string, now time.Time) (IdempotencyRecord, bool, error)
	Put(ctx context.Context, record IdempotencyRecord) error
}

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}

// EventEnvelope is the canonical wire shape for emitted domain events.
type EventEnvelope = contractsv1.Envelope

type OutboxMessage struct {
	OutboxID     string
	EventType    string
	PartitionKey string
	Payload      []byte
	CreatedAt    time.Time
}

type OutboxWriter interface {
	AppendOutbox(ctx context.Context, envelope EventEnvelope) error
}

type OutboxRepository interface {
	ListPendingOutbox(ctx context.Context, limit int) ([]OutboxMessage, error)
	MarkOutboxPublished(ctx context.Context, outboxID string, publishedAt time.Time) error
}

type EventPublisher interface {
	Publish(ctx context.Context, topic string, event EventEnvelope) error
}

type EventSubscriber interface {
	Subscribe(ctx context.Context, topic string, consumerGroup string, handler func(context.Context, EventEnvelope) error) error
}

// EventDedupStore reserves consumed event ids so worker replays are no-ops.
type EventDedupStore interface {
	ReserveEvent(ctx context.Context, eventID string, payloadHash string, expiresAt time.Time) (bool, error)
}
