package workers

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"log/slog"
	"strings"
	"time"

	application "quorum/contexts/governance-core/deliberation-engine/application"
	"quorum/contexts/governance-core/deliberation-engine/ports"
	eventsv1 "quorum/contracts/gen/events/v1"
)

const defaultCommitteeCG = "deliberation-engine-committee-cg"

// CommitteeRosterConsumer maintains the local committee projection (display
// name and expected voter population) from directory events published by the
// host application. The projection feeds quorum computation at voting start.
type CommitteeRosterConsumer struct {
	Subscriber    ports.EventSubscriber
	Dedup         ports.EventDedupStore
	Committees    ports.CommitteeDirectory
	Clock         ports.Clock
	ConsumerGroup string
	DedupTTL      time.Duration
	Disabled      bool
	Logger        *slog.Logger
}

func (c CommitteeRosterConsumer) Start(ctx context.Context) error {
	logger := application.ResolveLogger(c.Logger)
	if c.Disabled {
		logger.Info("committee roster consumer disabled by feature flag",
			"event", "deliberation_committee_consumer_disabled",
			"module", "governance-core/deliberation-engine",
			"layer", "worker",
		)
		return nil
	}
	group := strings.TrimSpace(c.ConsumerGroup)
	if group == "" {
		group = defaultCommitteeCG
	}
	if err := c.Subscriber.Subscribe(ctx, eventsv1.CommitteeUpdated, group, c.handleCommitteeUpdated); err != nil {
		return err
	}
	if err := c.Subscriber.Subscribe(ctx, eventsv1.CommitteeArchived, group, c.handleCommitteeArchived); err != nil {
		return err
	}
	logger.Info("committee roster consumer subscriptions active",
		"event", "deliberation_committee_consumer_started",
		"module", "governance-core/deliberation-engine",
		"layer", "worker",
		"consumer_group", group,
	)
	return nil
}

func (c CommitteeRosterConsumer) handleCommitteeUpdated(ctx context.Context, event ports.EventEnvelope) error {
	logger := application.ResolveLogger(c.Logger)
	if replayed, err := c.reserveEvent(ctx, event); err != nil {
		return err
	} else if replayed {
		return nil
	}
	var payload struct {
		CommitteeID    string `json:"committee_id"`
		Name           string `json:"name"`
		PopulationSize int    `json:"population_size"`
	}
	if err := json.Unmarshal(event.Data, &payload); err != nil {
		logger.Error("committee.updated payload decode failed",
			"event", "deliberation_committee_updated_decode_failed",
			"module", "governance-core/deliberation-engine",
			"layer", "worker",
			"event_id", event.EventID,
			"error", err.Error(),
		)
		return err
	}
	if strings.TrimSpace(payload.CommitteeID) == "" {
		return nil
	}
	if err := c.Committees.SaveCommittee(ctx, ports.CommitteeProjection{
		CommitteeID:    strings.TrimSpace(payload.CommitteeID),
		Name:           strings.TrimSpace(payload.Name),
		PopulationSize: payload.PopulationSize,
	}); err != nil {
		return err
	}
	logger.Info("committee projection updated",
		"event", "deliberation_committee_projection_updated",
		"module", "governance-core/deliberation-engine",
		"layer", "worker",
		"committee_id", strings.TrimSpace(payload.CommitteeID),
		"population_size", payload.PopulationSize,
	)
	return nil
}

func (c CommitteeRosterConsumer) handleCommitteeArchived(ctx context.Context, event ports.EventEnvelope) error {
	logger := application.ResolveLogger(c.Logger)
	if replayed, err := c.reserveEvent(ctx, event); err != nil {
		return err
	} else if replayed {
		return nil
	}
	var payload struct {
		CommitteeID string `json:"committee_id"`
	}
	if err := json.Unmarshal(event.Data, &payload); err != nil {
		return err
	}
	committeeID := strings.TrimSpace(payload.CommitteeID)
	if committeeID == "" {
		return nil
	}
	existing, err := c.Committees.GetCommittee(ctx, committeeID)
	if err != nil {
		// Archiving an unknown committee is a no-op, not a failure.
		return nil
	}
	existing.Archived = true
	if err := c.Committees.SaveCommittee(ctx, existing); err != nil {
		return err
	}
	logger.Info("committee projection archived",
		"event", "deliberation_committee_projection_archived",
		"module", "governance-core/deliberation-engine",
		"layer", "worker",
		"committee_id", committeeID,
	)
	return nil
}

func (c CommitteeRosterConsumer) reserveEvent(ctx context.Context, event ports.EventEnvelope) (bool, error) {
	if c.Dedup == nil {
		return false, nil
	}
	now := time.Now().UTC()
	if c.Clock != nil {
		now = c.Clock.Now().UTC()
	}
	ttl := c.DedupTTL
	if ttl <= 0 {
		ttl = 7 * 24 * time.Hour
	}
	sum := sha256.Sum256(event.Data)
	return c.Dedup.ReserveEvent(ctx, event.EventID, hex.EncodeToString(sum[:]), now.Add(ttl))
}
