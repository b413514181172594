package commands

import (
	"context"
	"fmt"
	"strings"

	application "quorum/contexts/governance-core/deliberation-engine/application"
	"quorum/contexts/governance-core/deliberation-engine/domain/entities"
	domainerrors "quorum/contexts/governance-core/deliberation-engine/domain/errors"
	eventsv1 "quorum/contracts/gen/events/v1"
)

type ReturnForRevisionCommand struct {
	ItemID string
	Actor  Actor
	Reason string
}

type ResubmitCommand struct {
	ItemID string
	Actor  Actor
}

type WithdrawCommand struct {
	ItemID string
	Actor  Actor
	Reason string
}

type AddEvidenceCommand struct {
	ItemID string
	Actor  Actor
	Name   string
	URL    string
}

// ReturnForRevision sends a submitted or in-review item back to its
// requester. Voting-stage items must be closed first.
func (uc DeliberationUseCase) ReturnForRevision(
	ctx context.Context,
	cmd ReturnForRevisionCommand,
) (entities.DeliberationItem, error) {
	item, err := uc.loadMutable(ctx, cmd.ItemID)
	if err != nil {
		return entities.DeliberationItem{}, err
	}
	if item.Status != entities.StatusSubmitted && item.Status != entities.StatusInReview {
		return entities.DeliberationItem{}, domainerrors.ErrInvalidTransition
	}

	now := uc.now()
	previous := item.Status
	item.Status = entities.StatusReturnedForRevision
	description := "returned for revision"
	if reason := strings.TrimSpace(cmd.Reason); reason != "" {
		description = fmt.Sprintf("returned for revision: %s", reason)
	}
	if err := uc.appendAudit(ctx, &item, cmd.Actor, entities.AuditStatusChanged,
		description, string(previous), string(item.Status), now); err != nil {
		return entities.DeliberationItem{}, err
	}
	if err := uc.Items.SaveItem(ctx, item); err != nil {
		return entities.DeliberationItem{}, err
	}
	if err := uc.appendItemEvent(ctx, eventsv1.DeliberationReturned, item, now, map[string]any{
		"reason": strings.TrimSpace(cmd.Reason),
	}); err != nil {
		return entities.DeliberationItem{}, err
	}

	application.ResolveLogger(uc.Logger).Info("deliberation returned for revision",
		"event", "deliberation_returned",
		"module", "governance-core/deliberation-engine",
		"layer", "application",
		"item_id", item.ItemID,
	)
	return item, nil
}

// Resubmit brings a returned item back into review without rebuilding the
// stage plan; the original plan still applies.
func (uc DeliberationUseCase) Resubmit(
	ctx context.Context,
	cmd ResubmitCommand,
) (entities.DeliberationItem, error) {
	item, err := uc.loadMutable(ctx, cmd.ItemID)
	if err != nil {
		return entities.DeliberationItem{}, err
	}
	if item.Status != entities.StatusReturnedForRevision {
		return entities.DeliberationItem{}, domainerrors.ErrInvalidTransition
	}

	now := uc.now()
	item.Status = entities.StatusInReview
	if err := uc.appendAudit(ctx, &item, cmd.Actor, entities.AuditStatusChanged,
		"deliberation resubmitted for review",
		string(entities.StatusReturnedForRevision), string(entities.StatusInReview), now); err != nil {
		return entities.DeliberationItem{}, err
	}
	if err := uc.Items.SaveItem(ctx, item); err != nil {
		return entities.DeliberationItem{}, err
	}

	application.ResolveLogger(uc.Logger).Info("deliberation resubmitted",
		"event", "deliberation_resubmitted",
		"module", "governance-core/deliberation-engine",
		"layer", "application",
		"item_id", item.ItemID,
	)
	return item, nil
}

// Withdraw cancels the deliberation. Withdrawal is a terminal state, not an
// abortable operation: no in-flight work needs interruption because no
// command is asynchronous.
func (uc DeliberationUseCase) Withdraw(
	ctx context.Context,
	cmd WithdrawCommand,
) (entities.DeliberationItem, error) {
	item, err := uc.loadMutable(ctx, cmd.ItemID)
	if err != nil {
		return entities.DeliberationItem{}, err
	}

	now := uc.now()
	previous := item.Status
	item.Status = entities.StatusWithdrawn
	description := "deliberation withdrawn"
	if reason := strings.TrimSpace(cmd.Reason); reason != "" {
		description = fmt.Sprintf("deliberation withdrawn: %s", reason)
	}
	if err := uc.appendAudit(ctx, &item, cmd.Actor, entities.AuditStatusChanged,
		description, string(previous), string(entities.StatusWithdrawn), now); err != nil {
		return entities.DeliberationItem{}, err
	}
	if err := uc.Items.SaveItem(ctx, item); err != nil {
		return entities.DeliberationItem{}, err
	}
	if err := uc.appendItemEvent(ctx, eventsv1.DeliberationWithdrawn, item, now, map[string]any{
		"reason": strings.TrimSpace(cmd.Reason),
	}); err != nil {
		return entities.DeliberationItem{}, err
	}

	application.ResolveLogger(uc.Logger).Info("deliberation withdrawn",
		"event", "deliberation_withdrawn",
		"module", "governance-core/deliberation-engine",
		"layer", "application",
		"item_id", item.ItemID,
	)
	return item, nil
}

// AddEvidence attaches a named evidence reference; the engine stores the
// reference only, file handling is external.
func (uc DeliberationUseCase) AddEvidence(
	ctx context.Context,
	cmd AddEvidenceCommand,
) (entities.DeliberationItem, error) {
	if strings.TrimSpace(cmd.Name) == "" {
		return entities.DeliberationItem{}, domainerrors.ErrValidation
	}
	item, err := uc.loadMutable(ctx, cmd.ItemID)
	if err != nil {
		return entities.DeliberationItem{}, err
	}

	now := uc.now()
	evidenceID, err := uc.IDGen.NewID(ctx)
	if err != nil {
		return entities.DeliberationItem{}, err
	}
	item.Evidence = append(item.Evidence, entities.EvidenceRef{
		EvidenceID: evidenceID,
		Name:       strings.TrimSpace(cmd.Name),
		URL:        strings.TrimSpace(cmd.URL),
		AddedByID:  strings.TrimSpace(cmd.Actor.UserID),
		AddedAt:    now,
	})
	if err := uc.appendAudit(ctx, &item, cmd.Actor, entities.AuditEvidenceAdded,
		fmt.Sprintf("evidence attached: %s", strings.TrimSpace(cmd.Name)),
		"", evidenceID, now); err != nil {
		return entities.DeliberationItem{}, err
	}
	if err := uc.Items.SaveItem(ctx, item); err != nil {
		return entities.DeliberationItem{}, err
	}

	application.ResolveLogger(uc.Logger).Info("evidence added",
		"event", "deliberation_evidence_added",
		"module", "governance-core/deliberation-engine",
		"layer", "application",
		"item_id", item.ItemID,
		"evidence_id", evidenceID,
	)
	return item, nil
}
