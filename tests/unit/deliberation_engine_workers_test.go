package unit

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	deliberationmemory "quorum/contexts/governance-core/deliberation-engine/adapters/memory"
	deliberationworkers "quorum/contexts/governance-core/deliberation-engine/application/workers"
	"quorum/contexts/governance-core/deliberation-engine/domain/entities"
	domainerrors "quorum/contexts/governance-core/deliberation-engine/domain/errors"
	"quorum/contexts/governance-core/deliberation-engine/ports"
	httptransport "quorum/contexts/governance-core/deliberation-engine/transport/http"
)

type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time {
	return c.now
}

type capturePublisher struct {
	published []ports.EventEnvelope
	fail      bool
}

func (p *capturePublisher) Publish(_ context.Context, _ string, event ports.EventEnvelope) error {
	if p.fail {
		return errors.New("broker unavailable")
	}
	p.published = append(p.published, event)
	return nil
}

type stubSubscriber struct {
	handlers map[string]func(context.Context, ports.EventEnvelope) error
}

func (s *stubSubscriber) Subscribe(
	_ context.Context,
	topic string,
	_ string,
	handler func(context.Context, ports.EventEnvelope) error,
) error {
	if s.handlers == nil {
		s.handlers = map[string]func(context.Context, ports.EventEnvelope) error{}
	}
	s.handlers[topic] = handler
	return nil
}

func TestOutboxRelayPublishesPendingEvents(t *testing.T) {
	module := seedBoardModule(3)
	chair := actorFor("chair-1", "Avery Chair")
	if _, err := module.Handler.SubmitDeliberationHandler(context.Background(), chair, "idem-relay-1", httptransport.SubmitDeliberationRequest{
		Title:            "Commission the security review",
		OwnerCommitteeID: "committee-board",
	}); err != nil {
		t.Fatalf("submit failed: %v", err)
	}

	pending, err := module.Store.ListPendingOutbox(context.Background(), 10)
	if err != nil {
		t.Fatalf("list pending outbox failed: %v", err)
	}
	if len(pending) != 1 {
		t.Fatalf("expected 1 pending outbox row after submit, got %d", len(pending))
	}

	publisher := &capturePublisher{}
	relay := deliberationworkers.OutboxRelay{
		Outbox:    module.Store,
		Publisher: publisher,
		Clock:     fixedClock{now: time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)},
	}
	if err := relay.RunOnce(context.Background()); err != nil {
		t.Fatalf("relay run failed: %v", err)
	}
	if len(publisher.published) != 1 {
		t.Fatalf("expected 1 published event, got %d", len(publisher.published))
	}
	if publisher.published[0].EventType != "deliberation.submitted" {
		t.Fatalf("unexpected event type: %s", publisher.published[0].EventType)
	}

	remaining, err := module.Store.ListPendingOutbox(context.Background(), 10)
	if err != nil {
		t.Fatalf("list pending outbox failed: %v", err)
	}
	if len(remaining) != 0 {
		t.Fatalf("expected outbox drained, got %d rows", len(remaining))
	}
}

func TestOutboxRelayStopsOnPublishFailure(t *testing.T) {
	module := seedBoardModule(3)
	chair := actorFor("chair-1", "Avery Chair")
	if _, err := module.Handler.SubmitDeliberationHandler(context.Background(), chair, "idem-relay-2", httptransport.SubmitDeliberationRequest{
		Title:            "Upgrade the badge system",
		OwnerCommitteeID: "committee-board",
	}); err != nil {
		t.Fatalf("submit failed: %v", err)
	}

	relay := deliberationworkers.OutboxRelay{
		Outbox:    module.Store,
		Publisher: &capturePublisher{fail: true},
	}
	if err := relay.RunOnce(context.Background()); err == nil {
		t.Fatalf("expected relay failure when broker publish fails")
	}

	pending, err := module.Store.ListPendingOutbox(context.Background(), 10)
	if err != nil {
		t.Fatalf("list pending outbox failed: %v", err)
	}
	if len(pending) != 1 {
		t.Fatalf("expected row retained for retry, got %d rows", len(pending))
	}
}

func TestCommitteeRosterConsumerUpdatesProjection(t *testing.T) {
	now := time.Date(2026, 3, 10, 11, 0, 0, 0, time.UTC)
	store := deliberationmemory.NewStore(nil)
	sub := &stubSubscriber{}
	consumer := deliberationworkers.CommitteeRosterConsumer{
		Subscriber: sub,
		Dedup:      store,
		Committees: store,
		Clock:      fixedClock{now: now},
	}
	if err := consumer.Start(context.Background()); err != nil {
		t.Fatalf("start roster consumer failed: %v", err)
	}
	updated := sub.handlers["committee.updated"]
	archived := sub.handlers["committee.archived"]
	if updated == nil || archived == nil {
		t.Fatalf("expected committee.updated and committee.archived handlers registered")
	}

	payload, _ := json.Marshal(map[string]any{
		"committee_id":    "committee-risk",
		"name":            "Risk Committee",
		"population_size": 7,
	})
	event := ports.EventEnvelope{
		EventID:   "event-committee-1",
		EventType: "committee.updated",
		Data:      payload,
	}
	if err := updated(context.Background(), event); err != nil {
		t.Fatalf("committee.updated handler failed: %v", err)
	}
	committee, err := store.GetCommittee(context.Background(), "committee-risk")
	if err != nil {
		t.Fatalf("load committee projection failed: %v", err)
	}
	if committee.Name != "Risk Committee" || committee.PopulationSize != 7 {
		t.Fatalf("unexpected projection: %+v", committee)
	}

	// Replaying the same event id is a no-op.
	if err := updated(context.Background(), event); err != nil {
		t.Fatalf("replayed committee.updated failed: %v", err)
	}

	archivePayload, _ := json.Marshal(map[string]any{"committee_id": "committee-risk"})
	if err := archived(context.Background(), ports.EventEnvelope{
		EventID:   "event-committee-2",
		EventType: "committee.archived",
		Data:      archivePayload,
	}); err != nil {
		t.Fatalf("committee.archived handler failed: %v", err)
	}
	// Archived committees stop resolving, so quorum can no longer be
	// computed against a retired roster.
	if _, err := store.GetCommittee(context.Background(), "committee-risk"); !errors.Is(err, domainerrors.ErrCommitteeNotFound) {
		t.Fatalf("expected archived committee to stop resolving, got %v", err)
	}

	unknownPayload, _ := json.Marshal(map[string]any{"committee_id": "committee-ghost"})
	if err := archived(context.Background(), ports.EventEnvelope{
		EventID:   "event-committee-3",
		EventType: "committee.archived",
		Data:      unknownPayload,
	}); err != nil {
		t.Fatalf("archiving an unknown committee should be a no-op, got %v", err)
	}
}

func TestVotingWindowMonitorFlagsOverdueOncePerEpisode(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	dueDate := now.Add(-3 * time.Hour)
	store := deliberationmemory.NewStore([]entities.DeliberationItem{
		{
			ItemID:         "item-overdue",
			Title:          "Stalled facility vote",
			Status:         entities.StatusInVoting,
			CurrentStageID: "stage-1",
			VotingDueDate:  &dueDate,
			QuorumRequired: 3,
			QuorumPresent:  1,
			CreatedAt:      now.Add(-48 * time.Hour),
		},
		{
			ItemID:        "item-on-time",
			Title:         "Healthy vote",
			Status:        entities.StatusInVoting,
			VotingDueDate: timePtr(now.Add(2 * time.Hour)),
			CreatedAt:     now.Add(-2 * time.Hour),
		},
	})

	monitor := deliberationworkers.VotingWindowMonitor{
		Items:  store,
		Outbox: store,
		Clock:  fixedClock{now: now},
		IDGen:  store,
	}
	if err := monitor.RunOnce(context.Background()); err != nil {
		t.Fatalf("window monitor run failed: %v", err)
	}
	if err := monitor.RunOnce(context.Background()); err != nil {
		t.Fatalf("second window monitor run failed: %v", err)
	}

	pending, err := store.ListPendingOutbox(context.Background(), 10)
	if err != nil {
		t.Fatalf("list pending outbox failed: %v", err)
	}
	if len(pending) != 1 {
		t.Fatalf("expected exactly one overdue event across repeated scans, got %d", len(pending))
	}
	var event ports.EventEnvelope
	if err := json.Unmarshal(pending[0].Payload, &event); err != nil {
		t.Fatalf("decode outbox payload failed: %v", err)
	}
	if event.EventType != "deliberation.voting_overdue" {
		t.Fatalf("unexpected event type: %s", event.EventType)
	}
	if event.PartitionKey != "item-overdue" {
		t.Fatalf("expected overdue event for the stalled item, got %s", event.PartitionKey)
	}

	item, err := store.GetItem(context.Background(), "item-overdue")
	if err != nil {
		t.Fatalf("load item failed: %v", err)
	}
	if item.Status != entities.StatusInVoting {
		t.Fatalf("monitor must never close a vote, got status %s", item.Status)
	}
}

func timePtr(value time.Time) *time.Time {
	return &value
}
