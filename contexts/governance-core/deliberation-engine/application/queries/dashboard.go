package queries

import (
	"context"
	"sort"
	"strings"
	"time"

	"quorum/contexts/governance-core/deliberation-engine/domain/entities"
	"quorum/contexts/governance-core/deliberation-engine/ports"
)

// DashboardUseCase serves the read-only projections behind the governance
// dashboard: queue counts, filtered lists, and KPI buckets. It never mutates
// items.
type DashboardUseCase struct {
	Items ports.DeliberationRepository
	Clock ports.Clock
}

// QueueSummary aggregates the deliberation queue for dashboard tiles.
type QueueSummary struct {
	CountsByStatus map[entities.DeliberationStatus]int
	Overdue        int
	ResolvedRecent int
	Total          int
}

// ListQuery narrows the deliberation list view.
type ListQuery struct {
	Status      entities.DeliberationStatus
	CommitteeID string
	SearchText  string
	KPIBucket   string // "", "overdue", "resolved_recent"
}

const resolvedRecentWindow = 30 * 24 * time.Hour

func (uc DashboardUseCase) now() time.Time {
	if uc.Clock != nil {
		return uc.Clock.Now().UTC()
	}
	return time.Now().UTC()
}

// GetItem returns one deliberation with its full trail.
func (uc DashboardUseCase) GetItem(ctx context.Context, itemID string) (entities.DeliberationItem, error) {
	return uc.Items.GetItem(ctx, strings.TrimSpace(itemID))
}

// QueueSummary computes per-status counts plus the overdue and
// recently-resolved KPI buckets in one repository pass.
func (uc DashboardUseCase) QueueSummary(ctx context.Context) (QueueSummary, error) {
	items, err := uc.Items.ListItems(ctx, ports.ListFilter{})
	if err != nil {
		return QueueSummary{}, err
	}
	now := uc.now()
	summary := QueueSummary{
		CountsByStatus: make(map[entities.DeliberationStatus]int),
		Total:          len(items),
	}
	for _, item := range items {
		summary.CountsByStatus[item.Status]++
		if isOverdue(item, now) {
			summary.Overdue++
		}
		if isResolvedRecent(item, now) {
			summary.ResolvedRecent++
		}
	}
	return summary, nil
}

// ListDeliberations returns items matching the filter, most recently created
// first. Free-text search matches title and description case-insensitively.
func (uc DashboardUseCase) ListDeliberations(
	ctx context.Context,
	query ListQuery,
) ([]entities.DeliberationItem, error) {
	items, err := uc.Items.ListItems(ctx, ports.ListFilter{
		Status:      query.Status,
		CommitteeID: strings.TrimSpace(query.CommitteeID),
		SearchText:  strings.TrimSpace(query.SearchText),
	})
	if err != nil {
		return nil, err
	}

	now := uc.now()
	filtered := make([]entities.DeliberationItem, 0, len(items))
	for _, item := range items {
		switch strings.TrimSpace(query.KPIBucket) {
		case "overdue":
			if !isOverdue(item, now) {
				continue
			}
		case "resolved_recent":
			if !isResolvedRecent(item, now) {
				continue
			}
		}
		filtered = append(filtered, item)
	}

	sort.Slice(filtered, func(i, j int) bool {
		if filtered[i].CreatedAt.Equal(filtered[j].CreatedAt) {
			return filtered[i].ItemID < filtered[j].ItemID
		}
		return filtered[i].CreatedAt.After(filtered[j].CreatedAt)
	})
	return filtered, nil
}

// isOverdue reports an open voting window whose advisory due date has
// passed. Overdue detection is display data; it never closes the vote.
func isOverdue(item entities.DeliberationItem, now time.Time) bool {
	return item.Status == entities.StatusInVoting &&
		item.VotingDueDate != nil &&
		item.VotingDueDate.Before(now)
}

func isResolvedRecent(item entities.DeliberationItem, now time.Time) bool {
	return item.ResolvedAt != nil && now.Sub(item.ResolvedAt.UTC()) <= resolvedRecentWindow
}
