package memory

import (
	"bytes"
	"context"
	"encoding/json"
	"sort"
	"strings"
	"sync"
	"time"

	"quorum/contexts/governance-core/deliberation-engine/domain/entities"
	domainerrors "quorum/contexts/governance-core/deliberation-engine/domain/errors"
	"quorum/contexts/governance-core/deliberation-engine/ports"

	"github.com/google/uuid"
)

type outboxRecord struct {
	message   ports.OutboxMessage
	published bool
}

type dedupRecord struct {
	payloadHash string
	expiresAt   time.Time
}

// Store is the in-memory adapter backing tests and local wiring. It
// implements every port the deliberation engine consumes. Reads and writes
// hand out deep copies so callers can apply functional updates without
// aliasing stored state.
type Store struct {
	mu sync.RWMutex

	items       map[string]entities.DeliberationItem
	committees  map[string]ports.CommitteeProjection
	idempotency map[string]ports.IdempotencyRecord
	outbox      map[string]outboxRecord
	eventDedup  map[string]dedupRecord
}

func NewStore(seed []entities.DeliberationItem) *Store {
	items := make(map[string]entities.DeliberationItem, len(seed))
	for _, item := range seed {
		items[item.ItemID] = cloneItem(item)
	}
	return &Store{
		items:       items,
		committees:  make(map[string]ports.CommitteeProjection),
		idempotency: make(map[string]ports.IdempotencyRecord),
		outbox:      make(map[string]outboxRecord),
		eventDedup:  make(map[string]dedupRecord),
	}
}

func (s *Store) SaveItem(_ context.Context, item entities.DeliberationItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[strings.TrimSpace(item.ItemID)] = cloneItem(item)
	return nil
}

func (s *Store) GetItem(_ context.Context, itemID string) (entities.DeliberationItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	item, ok := s.items[strings.TrimSpace(itemID)]
	if !ok {
		return entities.DeliberationItem{}, domainerrors.ErrItemNotFound
	}
	return cloneItem(item), nil
}

func (s *Store) ListItems(_ context.Context, filter ports.ListFilter) ([]entities.DeliberationItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	needle := strings.ToLower(strings.TrimSpace(filter.SearchText))
	committeeID := strings.TrimSpace(filter.CommitteeID)

	items := make([]entities.DeliberationItem, 0, len(s.items))
	for _, item := range s.items {
		if filter.Status != "" && item.Status != filter.Status {
			continue
		}
		if committeeID != "" && !itemTouchesCommittee(item, committeeID) {
			continue
		}
		if needle != "" &&
			!strings.Contains(strings.ToLower(item.Title), needle) &&
			!strings.Contains(strings.ToLower(item.Description), needle) {
			continue
		}
		items = append(items, cloneItem(item))
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].CreatedAt.Equal(items[j].CreatedAt) {
			return items[i].ItemID < items[j].ItemID
		}
		return items[i].CreatedAt.Before(items[j].CreatedAt)
	})
	return items, nil
}

func (s *Store) GetCommittee(_ context.Context, committeeID string) (ports.CommitteeProjection, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	committee, ok := s.committees[strings.TrimSpace(committeeID)]
	if !ok || committee.Archived {
		return ports.CommitteeProjection{}, domainerrors.ErrCommitteeNotFound
	}
	return committee, nil
}

func (s *Store) SaveCommittee(_ context.Context, committee ports.CommitteeProjection) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.committees[strings.TrimSpace(committee.CommitteeID)] = ports.CommitteeProjection{
		CommitteeID:    strings.TrimSpace(committee.CommitteeID),
		Name:           strings.TrimSpace(committee.Name),
		PopulationSize: committee.PopulationSize,
		Archived:       committee.Archived,
	}
	return nil
}

// SetCommittee seeds the committee projection for tests and local wiring.
func (s *Store) SetCommittee(committee ports.CommitteeProjection) {
	_ = s.SaveCommittee(context.Background(), committee)
}

func (s *Store) Get(_ context.Context, key string, now time.Time) (ports.IdempotencyRecord, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key = strings.TrimSpace(key)
	record, exists := s.idempotency[key]
	if !exists {
		return ports.IdempotencyRecord{}, false, nil
	}
	if !record.ExpiresAt.After(now.UTC()) {
		delete(s.idempotency, key)
		return ports.IdempotencyRecord{}, false, nil
	}
	return record, true, nil
}

func (s *Store) Put(_ context.Context, record ports.IdempotencyRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := strings.TrimSpace(record.Key)
	existing, exists := s.idempotency[key]
	if exists {
		if existing.RequestHash != record.RequestHash || existing.ItemID != record.ItemID {
			return domainerrors.ErrIdempotencyConflict
		}
		return nil
	}
	s.idempotency[key] = ports.IdempotencyRecord{
		Key:         key,
		RequestHash: strings.TrimSpace(record.RequestHash),
		ItemID:      strings.TrimSpace(record.ItemID),
		ExpiresAt:   record.ExpiresAt.UTC(),
	}
	return nil
}

func (s *Store) AppendOutbox(_ context.Context, envelope ports.EventEnvelope) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	payload, err := json.Marshal(envelope)
	if err != nil {
		return err
	}
	outboxID := strings.TrimSpace(envelope.EventID)
	if outboxID == "" {
		outboxID = uuid.NewString()
	}
	if existing, ok := s.outbox[outboxID]; ok {
		if !bytes.Equal(existing.message.Payload, payload) {
			return domainerrors.ErrConflict
		}
		return nil
	}
	createdAt := envelope.OccurredAt.UTC()
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}
	s.outbox[outboxID] = outboxRecord{
		message: ports.OutboxMessage{
			OutboxID:     outboxID,
			EventType:    strings.TrimSpace(envelope.EventType),
			PartitionKey: strings.TrimSpace(envelope.PartitionKey),
			Payload:      payload,
			CreatedAt:    createdAt,
		},
	}
	return nil
}

func (s *Store) ListPendingOutbox(_ context.Context, limit int) ([]ports.OutboxMessage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if limit <= 0 {
		limit = 100
	}
	items := make([]ports.OutboxMessage, 0, len(s.outbox))
	for _, row := range s.outbox {
		if row.published {
			continue
		}
		items = append(items, row.message)
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].CreatedAt.Equal(items[j].CreatedAt) {
			return items[i].OutboxID < items[j].OutboxID
		}
		return items[i].CreatedAt.Before(items[j].CreatedAt)
	})
	if len(items) > limit {
		items = items[:limit]
	}
	return items, nil
}

func (s *Store) MarkOutboxPublished(_ context.Context, outboxID string, _ time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	row, ok := s.outbox[strings.TrimSpace(outboxID)]
	if !ok {
		return domainerrors.ErrConflict
	}
	row.published = true
	s.outbox[strings.TrimSpace(outboxID)] = row
	return nil
}

func (s *Store) ReserveEvent(
	_ context.Context,
	eventID string,
	payloadHash string,
	expiresAt time.Time,
) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := strings.TrimSpace(eventID)
	existing, ok := s.eventDedup[key]
	if ok {
		if !existing.expiresAt.IsZero() && time.Now().UTC().After(existing.expiresAt.UTC()) {
			delete(s.eventDedup, key)
		} else {
			if existing.payloadHash != strings.TrimSpace(payloadHash) {
				return false, domainerrors.ErrConflict
			}
			return true, nil
		}
	}
	s.eventDedup[key] = dedupRecord{
		payloadHash: strings.TrimSpace(payloadHash),
		expiresAt:   expiresAt.UTC(),
	}
	return false, nil
}

func (s *Store) Now() time.Time {
	return time.Now().UTC()
}

func (s *Store) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}

func itemTouchesCommittee(item entities.DeliberationItem, committeeID string) bool {
	if item.OwnerCommitteeID == committeeID {
		return true
	}
	for _, dependent := range item.DependentCommitteeIDs {
		if dependent == committeeID {
			return true
		}
	}
	for _, stage := range item.Stages {
		if stage.CommitteeID == committeeID {
			return true
		}
	}
	return false
}

func cloneItem(item entities.DeliberationItem) entities.DeliberationItem {
	clone := item
	clone.DependentCommitteeIDs = append([]string(nil), item.DependentCommitteeIDs...)
	clone.DependentCommitteeNames = append([]string(nil), item.DependentCommitteeNames...)
	clone.Stages = append([]entities.Stage(nil), item.Stages...)
	clone.Votes = append([]entities.VoteRecord(nil), item.Votes...)
	clone.Evidence = append([]entities.EvidenceRef(nil), item.Evidence...)
	clone.ExecutionItems = append([]entities.ExecutionItem(nil), item.ExecutionItems...)
	clone.AuditTrail = append([]entities.AuditTrailEntry(nil), item.AuditTrail...)
	if item.Minutes != nil {
		minutes := *item.Minutes
		minutes.EvidenceList = append([]string(nil), item.Minutes.EvidenceList...)
		minutes.ActionItems = append([]string(nil), item.Minutes.ActionItems...)
		clone.Minutes = &minutes
	}
	return clone
}
