package queries

import (
	"context"
	"testing"
	"time"

	"quorum/contexts/governance-core/deliberation-engine/adapters/memory"
	"quorum/contexts/governance-core/deliberation-engine/domain/entities"
)

type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time {
	return c.now
}

func seedDashboardStore(now time.Time) *memory.Store {
	overdueDue := now.Add(-6 * time.Hour)
	openDue := now.Add(6 * time.Hour)
	recentResolved := now.Add(-10 * 24 * time.Hour)
	staleResolved := now.Add(-45 * 24 * time.Hour)

	return memory.NewStore([]entities.DeliberationItem{
		{
			ItemID:        "item-overdue",
			Title:         "Overdue facility vote",
			Status:        entities.StatusInVoting,
			VotingDueDate: &overdueDue,
			CreatedAt:     now.Add(-72 * time.Hour),
		},
		{
			ItemID:        "item-open",
			Title:         "Open vendor vote",
			Status:        entities.StatusInVoting,
			VotingDueDate: &openDue,
			CreatedAt:     now.Add(-48 * time.Hour),
		},
		{
			ItemID:     "item-recent",
			Title:      "Recently resolved budget line",
			Status:     entities.StatusResolved,
			ResolvedAt: &recentResolved,
			CreatedAt:  now.Add(-20 * 24 * time.Hour),
		},
		{
			ItemID:     "item-stale",
			Title:      "Old resolved policy change",
			Status:     entities.StatusResolved,
			ResolvedAt: &staleResolved,
			CreatedAt:  now.Add(-60 * 24 * time.Hour),
		},
	})
}

func TestQueueSummaryComputesKPIBuckets(t *testing.T) {
	now := time.Date(2026, 5, 4, 10, 0, 0, 0, time.UTC)
	useCase := DashboardUseCase{Items: seedDashboardStore(now), Clock: fixedClock{now: now}}

	summary, err := useCase.QueueSummary(context.Background())
	if err != nil {
		t.Fatalf("queue summary failed: %v", err)
	}
	if summary.Total != 4 {
		t.Fatalf("expected 4 items, got %d", summary.Total)
	}
	if summary.CountsByStatus[entities.StatusInVoting] != 2 {
		t.Fatalf("expected 2 in_voting, got %d", summary.CountsByStatus[entities.StatusInVoting])
	}
	if summary.CountsByStatus[entities.StatusResolved] != 2 {
		t.Fatalf("expected 2 resolved, got %d", summary.CountsByStatus[entities.StatusResolved])
	}
	if summary.Overdue != 1 {
		t.Fatalf("expected 1 overdue item, got %d", summary.Overdue)
	}
	if summary.ResolvedRecent != 1 {
		t.Fatalf("expected 1 recently resolved item, got %d", summary.ResolvedRecent)
	}
}

func TestListDeliberationsKPIBucketFilters(t *testing.T) {
	now := time.Date(2026, 5, 4, 10, 0, 0, 0, time.UTC)
	useCase := DashboardUseCase{Items: seedDashboardStore(now), Clock: fixedClock{now: now}}

	overdue, err := useCase.ListDeliberations(context.Background(), ListQuery{KPIBucket: "overdue"})
	if err != nil {
		t.Fatalf("overdue list failed: %v", err)
	}
	if len(overdue) != 1 || overdue[0].ItemID != "item-overdue" {
		t.Fatalf("expected only the overdue item, got %d items", len(overdue))
	}

	recent, err := useCase.ListDeliberations(context.Background(), ListQuery{KPIBucket: "resolved_recent"})
	if err != nil {
		t.Fatalf("resolved_recent list failed: %v", err)
	}
	if len(recent) != 1 || recent[0].ItemID != "item-recent" {
		t.Fatalf("expected only the recently resolved item, got %d items", len(recent))
	}
}

func TestListDeliberationsSortsNewestFirst(t *testing.T) {
	now := time.Date(2026, 5, 4, 10, 0, 0, 0, time.UTC)
	useCase := DashboardUseCase{Items: seedDashboardStore(now), Clock: fixedClock{now: now}}

	items, err := useCase.ListDeliberations(context.Background(), ListQuery{})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(items) != 4 {
		t.Fatalf("expected 4 items, got %d", len(items))
	}
	for index := 1; index < len(items); index++ {
		if items[index].CreatedAt.After(items[index-1].CreatedAt) {
			t.Fatalf("expected newest-first ordering, %s is newer than %s",
				items[index].ItemID, items[index-1].ItemID)
		}
	}
	if items[0].ItemID != "item-open" {
		t.Fatalf("expected the newest item first, got %s", items[0].ItemID)
	}
}
