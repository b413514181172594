package commands

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"quorum/contexts/governance-core/deliberation-engine/domain/entities"
	domainerrors "quorum/contexts/governance-core/deliberation-engine/domain/errors"
	"quorum/contexts/governance-core/deliberation-engine/ports"
)

// Actor identifies the user issuing a command. Identity is supplied by the
// host application; the engine performs no authorization checks.
type Actor struct {
	UserID   string
	UserName string
}

// DeliberationUseCase owns every state-machine transition of the
// deliberation aggregate. All commands validate preconditions before
// mutating and persist all-or-nothing: an invalid command returns a typed
// error and leaves the stored item untouched.
type DeliberationUseCase struct {
	Items          ports.DeliberationRepository
	Committees     ports.CommitteeDirectory
	Idempotency    ports.IdempotencyStore
	Outbox         ports.OutboxWriter
	Clock          ports.Clock
	IDGen          ports.IDGenerator
	IdempotencyTTL time.Duration
	Logger         *slog.Logger
}

func (uc DeliberationUseCase) now() time.Time {
	now := time.Now().UTC()
	if uc.Clock != nil {
		now = uc.Clock.Now().UTC()
	}
	return now
}

func (uc DeliberationUseCase) resolveIdempotencyTTL() time.Duration {
	if uc.IdempotencyTTL <= 0 {
		return 7 * 24 * time.Hour
	}
	return uc.IdempotencyTTL
}

// loadMutable fetches the item and rejects commands against terminal states.
func (uc DeliberationUseCase) loadMutable(ctx context.Context, itemID string) (entities.DeliberationItem, error) {
	item, err := uc.Items.GetItem(ctx, strings.TrimSpace(itemID))
	if err != nil {
		return entities.DeliberationItem{}, err
	}
	if item.Status.Terminal() {
		return entities.DeliberationItem{}, domainerrors.ErrItemImmutable
	}
	return item, nil
}

// appendAudit prepends an immutable trail entry; the trail is newest-first.
func (uc DeliberationUseCase) appendAudit(
	ctx context.Context,
	item *entities.DeliberationItem,
	actor Actor,
	action entities.AuditAction,
	description string,
	previousValue string,
	newValue string,
	at time.Time,
) error {
	entryID, err := uc.IDGen.NewID(ctx)
	if err != nil {
		return err
	}
	entry := entities.AuditTrailEntry{
		EntryID:       entryID,
		Action:        action,
		Description:   description,
		UserID:        strings.TrimSpace(actor.UserID),
		UserName:      strings.TrimSpace(actor.UserName),
		PreviousValue: previousValue,
		NewValue:      newValue,
		Timestamp:     at.UTC(),
	}
	item.AuditTrail = append([]entities.AuditTrailEntry{entry}, item.AuditTrail...)
	return nil
}

// replaceStage produces a new stage list with the matching stage swapped,
// leaving the input slice untouched so before/after snapshots stay comparable.
func replaceStage(stages []entities.Stage, updated entities.Stage) []entities.Stage {
	next := make([]entities.Stage, len(stages))
	copy(next, stages)
	for index, stage := range next {
		if stage.StageID == updated.StageID {
			next[index] = updated
		}
	}
	return next
}

func statusForStageType(stageType entities.StageType) entities.DeliberationStatus {
	switch stageType {
	case entities.StagePublishMinutes:
		return entities.StatusAwaitingMinutes
	case entities.StageExecution:
		return entities.StatusInExecution
	default:
		return entities.StatusInReview
	}
}
