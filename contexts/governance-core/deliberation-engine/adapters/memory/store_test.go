package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"quorum/contexts/governance-core/deliberation-engine/domain/entities"
	domainerrors "quorum/contexts/governance-core/deliberation-engine/domain/errors"
	"quorum/contexts/governance-core/deliberation-engine/ports"
)

func TestStoreHandsOutItemCopies(t *testing.T) {
	store := NewStore([]entities.DeliberationItem{{
		ItemID: "item-1",
		Title:  "Original title",
		Stages: []entities.Stage{{StageID: "stage-1", Sequence: 1, Status: entities.StagePending}},
		Votes:  []entities.VoteRecord{{VoteID: "vote-1", VoterID: "member-1", Vote: entities.VoteYes}},
	}})

	loaded, err := store.GetItem(context.Background(), "item-1")
	if err != nil {
		t.Fatalf("get item failed: %v", err)
	}
	loaded.Title = "Mutated title"
	loaded.Stages[0].Status = entities.StageActive
	loaded.Votes[0].Vote = entities.VoteNo

	reloaded, err := store.GetItem(context.Background(), "item-1")
	if err != nil {
		t.Fatalf("reload item failed: %v", err)
	}
	if reloaded.Title != "Original title" {
		t.Fatalf("stored title mutated through a returned copy: %q", reloaded.Title)
	}
	if reloaded.Stages[0].Status != entities.StagePending {
		t.Fatalf("stored stage mutated through a returned copy: %s", reloaded.Stages[0].Status)
	}
	if reloaded.Votes[0].Vote != entities.VoteYes {
		t.Fatalf("stored vote mutated through a returned copy: %s", reloaded.Votes[0].Vote)
	}

	if _, err := store.GetItem(context.Background(), "item-ghost"); !errors.Is(err, domainerrors.ErrItemNotFound) {
		t.Fatalf("expected item not found, got %v", err)
	}
}

func TestStoreListItemsFilters(t *testing.T) {
	now := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)
	store := NewStore([]entities.DeliberationItem{
		{
			ItemID:           "item-1",
			Title:            "Renew hosting contract",
			Description:      "Annual renewal with the current provider",
			Status:           entities.StatusSubmitted,
			OwnerCommitteeID: "committee-it",
			CreatedAt:        now,
		},
		{
			ItemID:                "item-2",
			Title:                 "Hire a compliance officer",
			Status:                entities.StatusInVoting,
			OwnerCommitteeID:      "committee-hr",
			DependentCommitteeIDs: []string{"committee-it"},
			CreatedAt:             now.Add(time.Hour),
		},
	})

	byStatus, err := store.ListItems(context.Background(), ports.ListFilter{Status: entities.StatusInVoting})
	if err != nil {
		t.Fatalf("list by status failed: %v", err)
	}
	if len(byStatus) != 1 || byStatus[0].ItemID != "item-2" {
		t.Fatalf("expected only item-2 in voting, got %d items", len(byStatus))
	}

	// Committee filter matches owner and dependent committees alike.
	byCommittee, err := store.ListItems(context.Background(), ports.ListFilter{CommitteeID: "committee-it"})
	if err != nil {
		t.Fatalf("list by committee failed: %v", err)
	}
	if len(byCommittee) != 2 {
		t.Fatalf("expected both items for committee-it, got %d", len(byCommittee))
	}

	bySearch, err := store.ListItems(context.Background(), ports.ListFilter{SearchText: "RENEWAL"})
	if err != nil {
		t.Fatalf("list by search failed: %v", err)
	}
	if len(bySearch) != 1 || bySearch[0].ItemID != "item-1" {
		t.Fatalf("expected case-insensitive description match, got %d items", len(bySearch))
	}
}

func TestStoreIdempotencyExpiryAndConflict(t *testing.T) {
	store := NewStore(nil)
	now := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)

	record := ports.IdempotencyRecord{
		Key:         "idem-1",
		RequestHash: "hash-a",
		ItemID:      "item-1",
		ExpiresAt:   now.Add(time.Hour),
	}
	if err := store.Put(context.Background(), record); err != nil {
		t.Fatalf("put idempotency record failed: %v", err)
	}
	if _, found, err := store.Get(context.Background(), "idem-1", now); err != nil || !found {
		t.Fatalf("expected live record, found=%v err=%v", found, err)
	}

	conflicting := record
	conflicting.RequestHash = "hash-b"
	if err := store.Put(context.Background(), conflicting); !errors.Is(err, domainerrors.ErrIdempotencyConflict) {
		t.Fatalf("expected idempotency conflict, got %v", err)
	}

	if _, found, err := store.Get(context.Background(), "idem-1", now.Add(2*time.Hour)); err != nil || found {
		t.Fatalf("expected record expired, found=%v err=%v", found, err)
	}
	// After expiry the key is reusable with a new payload.
	if err := store.Put(context.Background(), conflicting); err != nil {
		t.Fatalf("expected reuse after expiry, got %v", err)
	}
}

func TestStoreOutboxLifecycle(t *testing.T) {
	store := NewStore(nil)
	if err := store.AppendOutbox(context.Background(), ports.EventEnvelope{
		EventID:      "event-1",
		EventType:    "deliberation.submitted",
		PartitionKey: "item-1",
	}); err != nil {
		t.Fatalf("append outbox failed: %v", err)
	}

	pending, err := store.ListPendingOutbox(context.Background(), 10)
	if err != nil {
		t.Fatalf("list pending failed: %v", err)
	}
	if len(pending) != 1 || pending[0].EventType != "deliberation.submitted" {
		t.Fatalf("unexpected pending rows: %+v", pending)
	}

	if err := store.MarkOutboxPublished(context.Background(), pending[0].OutboxID, time.Now().UTC()); err != nil {
		t.Fatalf("mark published failed: %v", err)
	}
	remaining, err := store.ListPendingOutbox(context.Background(), 10)
	if err != nil {
		t.Fatalf("list pending after publish failed: %v", err)
	}
	if len(remaining) != 0 {
		t.Fatalf("expected no pending rows after publish, got %d", len(remaining))
	}
}

func TestStoreReserveEventDedup(t *testing.T) {
	store := NewStore(nil)
	expires := time.Now().UTC().Add(time.Hour)

	replayed, err := store.ReserveEvent(context.Background(), "event-1", "hash-a", expires)
	if err != nil || replayed {
		t.Fatalf("first reserve should succeed, replayed=%v err=%v", replayed, err)
	}
	replayed, err = store.ReserveEvent(context.Background(), "event-1", "hash-a", expires)
	if err != nil || !replayed {
		t.Fatalf("second reserve should report replay, replayed=%v err=%v", replayed, err)
	}
	if _, err := store.ReserveEvent(context.Background(), "event-1", "hash-b", expires); !errors.Is(err, domainerrors.ErrConflict) {
		t.Fatalf("expected conflict for same id with different payload, got %v", err)
	}
}
