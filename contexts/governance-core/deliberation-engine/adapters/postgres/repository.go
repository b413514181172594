package postgresadapter

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"time"

	"quorum/contexts/governance-core/deliberation-engine/domain/entities"
	domainerrors "quorum/contexts/governance-core/deliberation-engine/domain/errors"
	"quorum/contexts/governance-core/deliberation-engine/ports"
	"quorum/internal/shared/outbox"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	outboxStatusPending   = outbox.StatusPending
	outboxStatusPublished = outbox.StatusPublished
)

// Repository persists the deliberation aggregate across normalized tables
// inside one transaction per SaveItem, so a failed command never leaves a
// partially applied transition behind.
type Repository struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewRepository(db *gorm.DB, logger *slog.Logger) *Repository {
	if logger == nil {
		logger = slog.Default()
	}
	return &Repository{db: db, logger: logger}
}

// SystemClock satisfies ports.Clock with wall time.
type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now().UTC()
}

// UUIDGenerator satisfies ports.IDGenerator.
type UUIDGenerator struct{}

func (UUIDGenerator) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}

func (r *Repository) SaveItem(ctx context.Context, item entities.DeliberationItem) error {
	itemRow, err := itemModelFromEntity(item)
	if err != nil {
		return err
	}
	stageRows := stageModelsFromEntity(item)
	voteRows := voteModelsFromEntity(item)
	auditRows := auditModelsFromEntity(item)
	taskRows := taskModelsFromEntity(item)

	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			UpdateAll: true,
		}).Create(&itemRow).Error; err != nil {
			return err
		}
		for _, row := range stageRows {
			if err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "id"}},
				UpdateAll: true,
			}).Create(&row).Error; err != nil {
				return err
			}
		}
		// Votes are cleared on stage transitions, so the persisted set is
		// replaced wholesale to mirror the in-memory aggregate.
		if err := tx.Where("item_id = ?", itemRow.ID).Delete(&voteModel{}).Error; err != nil {
			return err
		}
		if len(voteRows) > 0 {
			if err := tx.Create(&voteRows).Error; err != nil {
				return err
			}
		}
		// Audit entries are append-only; existing rows are never rewritten.
		for _, row := range auditRows {
			if err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "id"}},
				DoNothing: true,
			}).Create(&row).Error; err != nil {
				return err
			}
		}
		for _, row := range taskRows {
			if err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "id"}},
				UpdateAll: true,
			}).Create(&row).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if isUniqueViolation(err) {
			return domainerrors.ErrConflict
		}
		return r.logError("deliberation_repo_save_item_failed", err,
			"item_id", strings.TrimSpace(item.ItemID),
		)
	}
	return nil
}

func (r *Repository) GetItem(ctx context.Context, itemID string) (entities.DeliberationItem, error) {
	var row itemModel
	err := r.db.WithContext(ctx).
		Where("id = ?", strings.TrimSpace(itemID)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.DeliberationItem{}, domainerrors.ErrItemNotFound
		}
		return entities.DeliberationItem{}, r.logError("deliberation_repo_get_item_failed", err,
			"item_id", strings.TrimSpace(itemID),
		)
	}
	return r.assembleItem(ctx, row)
}

func (r *Repository) ListItems(ctx context.Context, filter ports.ListFilter) ([]entities.DeliberationItem, error) {
	tx := r.db.WithContext(ctx).Model(&itemModel{})
	if filter.Status != "" {
		tx = tx.Where("status = ?", string(filter.Status))
	}
	if committeeID := strings.TrimSpace(filter.CommitteeID); committeeID != "" {
		tx = tx.Where(
			"owner_committee_id = ? OR id IN (?)",
			committeeID,
			r.db.Model(&stageModel{}).Select("item_id").Where("committee_id = ?", committeeID),
		)
	}
	if needle := strings.TrimSpace(filter.SearchText); needle != "" {
		pattern := "%" + needle + "%"
		tx = tx.Where("title ILIKE ? OR description ILIKE ?", pattern, pattern)
	}

	var rows []itemModel
	if err := tx.Order("created_at ASC").Find(&rows).Error; err != nil {
		return nil, r.logError("deliberation_repo_list_items_failed", err,
			"status", string(filter.Status),
		)
	}
	items := make([]entities.DeliberationItem, 0, len(rows))
	for _, row := range rows {
		item, err := r.assembleItem(ctx, row)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

func (r *Repository) assembleItem(ctx context.Context, row itemModel) (entities.DeliberationItem, error) {
	item, err := row.toEntity()
	if err != nil {
		return entities.DeliberationItem{}, err
	}

	var stageRows []stageModel
	if err := r.db.WithContext(ctx).
		Where("item_id = ?", row.ID).
		Order("sequence ASC").
		Find(&stageRows).Error; err != nil {
		return entities.DeliberationItem{}, r.logError("deliberation_repo_load_stages_failed", err, "item_id", row.ID)
	}
	for _, stageRow := range stageRows {
		item.Stages = append(item.Stages, stageRow.toEntity())
	}

	var voteRows []voteModel
	if err := r.db.WithContext(ctx).
		Where("item_id = ?", row.ID).
		Order("voted_at ASC").
		Find(&voteRows).Error; err != nil {
		return entities.DeliberationItem{}, r.logError("deliberation_repo_load_votes_failed", err, "item_id", row.ID)
	}
	for _, voteRow := range voteRows {
		item.Votes = append(item.Votes, voteRow.toEntity())
	}

	var auditRows []auditModel
	if err := r.db.WithContext(ctx).
		Where("item_id = ?", row.ID).
		Order("ordinal DESC").
		Find(&auditRows).Error; err != nil {
		return entities.DeliberationItem{}, r.logError("deliberation_repo_load_audit_failed", err, "item_id", row.ID)
	}
	for _, auditRow := range auditRows {
		item.AuditTrail = append(item.AuditTrail, auditRow.toEntity())
	}

	var taskRows []taskModel
	if err := r.db.WithContext(ctx).
		Where("item_id = ?", row.ID).
		Order("created_at ASC").
		Find(&taskRows).Error; err != nil {
		return entities.DeliberationItem{}, r.logError("deliberation_repo_load_tasks_failed", err, "item_id", row.ID)
	}
	for _, taskRow := range taskRows {
		item.ExecutionItems = append(item.ExecutionItems, taskRow.toEntity())
	}

	return item, nil
}

func (r *Repository) GetCommittee(ctx context.Context, committeeID string) (ports.CommitteeProjection, error) {
	var row committeeModel
	err := r.db.WithContext(ctx).
		Where("id = ?", strings.TrimSpace(committeeID)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.CommitteeProjection{}, domainerrors.ErrCommitteeNotFound
		}
		return ports.CommitteeProjection{}, r.logError("deliberation_repo_get_committee_failed", err,
			"committee_id", strings.TrimSpace(committeeID),
		)
	}
	if row.Archived {
		return ports.CommitteeProjection{}, domainerrors.ErrCommitteeNotFound
	}
	return ports.CommitteeProjection{
		CommitteeID:    row.ID,
		Name:           row.Name,
		PopulationSize: row.PopulationSize,
		Archived:       row.Archived,
	}, nil
}

func (r *Repository) SaveCommittee(ctx context.Context, committee ports.CommitteeProjection) error {
	row := committeeModel{
		ID:             strings.TrimSpace(committee.CommitteeID),
		Name:           strings.TrimSpace(committee.Name),
		PopulationSize: committee.PopulationSize,
		Archived:       committee.Archived,
	}
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		UpdateAll: true,
	}).Create(&row).Error
	if err != nil {
		return r.logError("deliberation_repo_save_committee_failed", err,
			"committee_id", row.ID,
		)
	}
	return nil
}

func (r *Repository) Get(ctx context.Context, key string, now time.Time) (ports.IdempotencyRecord, bool, error) {
	var row idempotencyModel
	err := r.db.WithContext(ctx).
		Where("key = ?", strings.TrimSpace(key)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.IdempotencyRecord{}, false, nil
		}
		return ports.IdempotencyRecord{}, false, r.logError("deliberation_repo_idempotency_get_failed", err)
	}
	if !row.ExpiresAt.After(now.UTC()) {
		_ = r.db.WithContext(ctx).Where("key = ?", row.Key).Delete(&idempotencyModel{}).Error
		return ports.IdempotencyRecord{}, false, nil
	}
	return ports.IdempotencyRecord{
		Key:         row.Key,
		RequestHash: row.RequestHash,
		ItemID:      row.ItemID,
		ExpiresAt:   row.ExpiresAt.UTC(),
	}, true, nil
}

func (r *Repository) Put(ctx context.Context, record ports.IdempotencyRecord) error {
	row := idempotencyModel{
		Key:         strings.TrimSpace(record.Key),
		RequestHash: strings.TrimSpace(record.RequestHash),
		ItemID:      strings.TrimSpace(record.ItemID),
		ExpiresAt:   record.ExpiresAt.UTC(),
	}
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoNothing: true,
	}).Create(&row).Error
	if err != nil {
		if isUniqueViolation(err) {
			return domainerrors.ErrIdempotencyConflict
		}
		return r.logError("deliberation_repo_idempotency_put_failed", err)
	}
	return nil
}

func (r *Repository) AppendOutbox(ctx context.Context, envelope ports.EventEnvelope) error {
	payload, err := json.Marshal(envelope)
	if err != nil {
		return err
	}
	outboxID := strings.TrimSpace(envelope.EventID)
	if outboxID == "" {
		outboxID = uuid.NewString()
	}
	createdAt := envelope.OccurredAt.UTC()
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}
	row := outboxModel{
		OutboxID:     outboxID,
		EventType:    strings.TrimSpace(envelope.EventType),
		PartitionKey: strings.TrimSpace(envelope.PartitionKey),
		Payload:      payload,
		Status:       outboxStatusPending,
		CreatedAt:    createdAt,
	}
	err = r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "outbox_id"}},
		DoNothing: true,
	}).Create(&row).Error
	if err != nil {
		return r.logError("deliberation_repo_outbox_append_failed", err,
			"outbox_id", outboxID,
			"event_type", row.EventType,
		)
	}
	return nil
}

func (r *Repository) ListPendingOutbox(ctx context.Context, limit int) ([]ports.OutboxMessage, error) {
	if limit <= 0 {
		limit = 100
	}
	var rows []outboxModel
	if err := r.db.WithContext(ctx).
		Where("status = ?", outboxStatusPending).
		Order("created_at ASC").
		Limit(limit).
		Find(&rows).Error; err != nil {
		return nil, r.logError("deliberation_repo_outbox_list_failed", err)
	}
	items := make([]ports.OutboxMessage, 0, len(rows))
	for _, row := range rows {
		items = append(items, ports.OutboxMessage{
			OutboxID:     row.OutboxID,
			EventType:    row.EventType,
			PartitionKey: row.PartitionKey,
			Payload:      row.Payload,
			CreatedAt:    row.CreatedAt.UTC(),
		})
	}
	return items, nil
}

func (r *Repository) MarkOutboxPublished(ctx context.Context, outboxID string, publishedAt time.Time) error {
	timestamp := publishedAt.UTC()
	result := r.db.WithContext(ctx).Model(&outboxModel{}).
		Where("outbox_id = ?", strings.TrimSpace(outboxID)).
		Updates(map[string]any{
			"status":       outboxStatusPublished,
			"published_at": &timestamp,
		})
	if result.Error != nil {
		return r.logError("deliberation_repo_outbox_mark_failed", result.Error, "outbox_id", outboxID)
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrConflict
	}
	return nil
}

func (r *Repository) ReserveEvent(
	ctx context.Context,
	eventID string,
	payloadHash string,
	expiresAt time.Time,
) (bool, error) {
	row := eventDedupModel{
		EventID:     strings.TrimSpace(eventID),
		PayloadHash: strings.TrimSpace(payloadHash),
		ExpiresAt:   expiresAt.UTC(),
		ProcessedAt: time.Now().UTC(),
	}
	result := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "event_id"}},
		DoNothing: true,
	}).Create(&row)
	if result.Error != nil {
		return false, r.logError("deliberation_repo_event_reserve_failed", result.Error,
			"event_id", row.EventID,
		)
	}
	if result.RowsAffected == 0 {
		var existing eventDedupModel
		if err := r.db.WithContext(ctx).
			Where("event_id = ?", row.EventID).
			First(&existing).Error; err != nil {
			return false, r.logError("deliberation_repo_event_reserve_lookup_failed", err,
				"event_id", row.EventID,
			)
		}
		if existing.PayloadHash != row.PayloadHash {
			return false, domainerrors.ErrConflict
		}
		return true, nil
	}
	return false, nil
}

func (r *Repository) logError(event string, err error, attrs ...any) error {
	fields := make([]any, 0, len(attrs)+8)
	fields = append(fields,
		"event", event,
		"module", "governance-core/deliberation-engine",
		"layer", "adapter",
		"error", err.Error(),
	)
	fields = append(fields, attrs...)
	r.logger.Error("deliberation repository operation failed", fields...)
	return err
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

var _ ports.DeliberationRepository = (*Repository)(nil)
var _ ports.CommitteeDirectory = (*Repository)(nil)
var _ ports.IdempotencyStore = (*Repository)(nil)
var _ ports.OutboxWriter = (*Repository)(nil)
var _ ports.OutboxRepository = (*Repository)(nil)
var _ ports.EventDedupStore = (*Repository)(nil)
