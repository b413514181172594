package workers

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	application "quorum/contexts/governance-core/deliberation-engine/application"
	"quorum/contexts/governance-core/deliberation-engine/domain/entities"
	"quorum/contexts/governance-core/deliberation-engine/ports"
	eventsv1 "quorum/contracts/gen/events/v1"
)

// VotingWindowMonitor scans open voting windows whose advisory due date has
// passed and emits deliberation.voting_overdue events for the notification
// pipeline. It deliberately never closes a vote: closing is always an
// explicit CloseVoting command issued by the host scheduler or a user.
type VotingWindowMonitor struct {
	Items    ports.DeliberationRepository
	Outbox   ports.OutboxWriter
	Clock    ports.Clock
	IDGen    ports.IDGenerator
	Disabled bool
	Logger   *slog.Logger

	// notified tracks item ids already flagged this process lifetime so a
	// stale window produces one event per overdue episode, not one per scan.
	notified map[string]time.Time
}

func (m *VotingWindowMonitor) RunOnce(ctx context.Context) error {
	logger := application.ResolveLogger(m.Logger)
	if m.Disabled {
		return nil
	}
	now := time.Now().UTC()
	if m.Clock != nil {
		now = m.Clock.Now().UTC()
	}
	if m.notified == nil {
		m.notified = make(map[string]time.Time)
	}

	items, err := m.Items.ListItems(ctx, ports.ListFilter{Status: entities.StatusInVoting})
	if err != nil {
		logger.Error("voting window scan failed",
			"event", "deliberation_window_scan_failed",
			"module", "governance-core/deliberation-engine",
			"layer", "worker",
			"error", err.Error(),
		)
		return err
	}

	overdue := 0
	for _, item := range items {
		if item.VotingDueDate == nil || !item.VotingDueDate.Before(now) {
			continue
		}
		if flagged, ok := m.notified[item.ItemID]; ok && !item.VotingDueDate.After(flagged) {
			continue
		}
		if err := m.emitOverdue(ctx, item, now); err != nil {
			return err
		}
		m.notified[item.ItemID] = *item.VotingDueDate
		overdue++
	}

	if overdue > 0 {
		logger.Info("overdue voting windows flagged",
			"event", "deliberation_windows_overdue",
			"module", "governance-core/deliberation-engine",
			"layer", "worker",
			"overdue_count", overdue,
		)
	}
	return nil
}

func (m *VotingWindowMonitor) emitOverdue(
	ctx context.Context,
	item entities.DeliberationItem,
	now time.Time,
) error {
	if m.Outbox == nil {
		return nil
	}
	eventID, err := m.IDGen.NewID(ctx)
	if err != nil {
		return err
	}
	payload, err := json.Marshal(map[string]any{
		"item_id":          item.ItemID,
		"current_stage_id": item.CurrentStageID,
		"due_date":         item.VotingDueDate.UTC().Format(time.RFC3339),
		"quorum_present":   item.QuorumPresent,
		"quorum_required":  item.QuorumRequired,
	})
	if err != nil {
		return err
	}
	return m.Outbox.AppendOutbox(ctx, ports.EventEnvelope{
		EventID:          eventID,
		EventType:        eventsv1.DeliberationVotingOverdue,
		OccurredAt:       now,
		SourceService:    "deliberation-engine",
		TraceID:          eventID,
		SchemaVersion:    1,
		PartitionKeyPath: "item_id",
		PartitionKey:     item.ItemID,
		Data:             payload,
	})
}
