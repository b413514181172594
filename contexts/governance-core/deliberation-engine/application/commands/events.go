package commands

import (
	"context"
	"encoding/json"
	"time"

	"quorum/contexts/governance-core/deliberation-engine/domain/entities"
	"quorum/contexts/governance-core/deliberation-engine/ports"
)

// appendItemEvent writes one domain event to the outbox. The outbox is
// optional for pure read/test wiring, so nil is treated as no-op. Events are
// partitioned by item id for stable per-aggregate ordering on consumers.
func (uc DeliberationUseCase) appendItemEvent(
	ctx context.Context,
	eventType string,
	item entities.DeliberationItem,
	occurredAt time.Time,
	metadata map[string]any,
) error {
	if uc.Outbox == nil {
		return nil
	}
	eventID, err := uc.IDGen.NewID(ctx)
	if err != nil {
		return err
	}
	data := map[string]any{
		"item_id":            item.ItemID,
		"status":             string(item.Status),
		"owner_committee_id": item.OwnerCommitteeID,
		"current_stage_id":   item.CurrentStageID,
		"occurred_at":        occurredAt.Format(time.RFC3339),
	}
	for key, value := range metadata {
		data[key] = value
	}
	payload, err := json.Marshal(data)
	if err != nil {
		return err
	}
	return uc.Outbox.AppendOutbox(ctx, ports.EventEnvelope{
		EventID:          eventID,
		EventType:        eventType,
		OccurredAt:       occurredAt.UTC(),
		SourceService:    "deliberation-engine",
		TraceID:          eventID,
		SchemaVersion:    1,
		PartitionKeyPath: "item_id",
		PartitionKey:     item.ItemID,
		Data:             payload,
	})
}
