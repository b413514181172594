package commands

import (
	"context"
	"fmt"

	application "quorum/contexts/governance-core/deliberation-engine/application"
	"quorum/contexts/governance-core/deliberation-engine/domain/entities"
	domainerrors "quorum/contexts/governance-core/deliberation-engine/domain/errors"
	"quorum/contexts/governance-core/deliberation-engine/domain/services"
	eventsv1 "quorum/contracts/gen/events/v1"
)

type GenerateMinutesCommand struct {
	ItemID string
	Actor  Actor
}

type PublishMinutesCommand struct {
	ItemID string
	Actor  Actor
}

// GenerateMinutes builds a draft minutes record from the current tallies,
// evidence, and execution items. The deliberation status is unchanged; the
// draft can be regenerated any number of times before publication.
func (uc DeliberationUseCase) GenerateMinutes(
	ctx context.Context,
	cmd GenerateMinutesCommand,
) (entities.DeliberationItem, error) {
	logger := application.ResolveLogger(uc.Logger)
	item, err := uc.loadMutable(ctx, cmd.ItemID)
	if err != nil {
		return entities.DeliberationItem{}, err
	}
	if len(item.Votes) == 0 && item.VoteResult == "" {
		return entities.DeliberationItem{}, domainerrors.ErrInvalidTransition
	}

	now := uc.now()
	minutes := services.GenerateMinutes(item, now)
	item.Minutes = &minutes
	item.MinutesSummary = services.MinutesSummary(minutes)

	if err := uc.appendAudit(ctx, &item, cmd.Actor, entities.AuditMinutesGenerated,
		"minutes draft generated", "", string(entities.MinutesDraft), now); err != nil {
		return entities.DeliberationItem{}, err
	}
	if err := uc.Items.SaveItem(ctx, item); err != nil {
		return entities.DeliberationItem{}, err
	}
	if err := uc.appendItemEvent(ctx, eventsv1.MinutesGenerated, item, now, map[string]any{
		"voting_result": item.Minutes.VotingResult,
	}); err != nil {
		return entities.DeliberationItem{}, err
	}

	logger.Info("minutes generated",
		"event", "deliberation_minutes_generated",
		"module", "governance-core/deliberation-engine",
		"layer", "application",
		"item_id", item.ItemID,
	)
	return item, nil
}

// PublishMinutes completes the publish_minutes stage, activates the execution
// stage when present, and moves the item into execution. The resolved
// timestamp is set here when voting closed without one. Publishing is only
// valid once voting has resolved into awaiting_minutes; while a ballot is
// still open the draft stays a draft.
func (uc DeliberationUseCase) PublishMinutes(
	ctx context.Context,
	cmd PublishMinutesCommand,
) (entities.DeliberationItem, error) {
	logger := application.ResolveLogger(uc.Logger)
	item, err := uc.loadMutable(ctx, cmd.ItemID)
	if err != nil {
		return entities.DeliberationItem{}, err
	}
	if item.Status != entities.StatusAwaitingMinutes {
		return entities.DeliberationItem{}, domainerrors.ErrInvalidTransition
	}
	if item.Minutes == nil {
		return entities.DeliberationItem{}, domainerrors.ErrInvalidTransition
	}
	if item.Minutes.Status == entities.MinutesPublished {
		return entities.DeliberationItem{}, domainerrors.ErrInvalidTransition
	}

	now := uc.now()
	publishedAt := now

	var publishStage *entities.Stage
	for index := range item.Stages {
		if item.Stages[index].StageType == entities.StagePublishMinutes {
			stage := item.Stages[index]
			publishStage = &stage
			break
		}
	}
	if publishStage != nil && publishStage.Status != entities.StageCompleted {
		completed := *publishStage
		completed.Status = entities.StageCompleted
		completed.ClosedAt = &publishedAt
		item.Stages = replaceStage(item.Stages, completed)
	}

	if next, found := item.NextPendingStage(0); found && next.StageType == entities.StageExecution {
		activated := next
		activated.Status = entities.StageActive
		openedAt := now
		activated.OpenedAt = &openedAt
		item.Stages = replaceStage(item.Stages, activated)
		item.CurrentStageID = activated.StageID
	}

	minutes := *item.Minutes
	minutes.Status = entities.MinutesPublished
	minutes.PublishedAt = &publishedAt
	item.Minutes = &minutes
	if item.ResolvedAt == nil {
		item.ResolvedAt = &publishedAt
	}
	previous := item.Status
	item.Status = entities.StatusInExecution

	if err := uc.appendAudit(ctx, &item, cmd.Actor, entities.AuditMinutesPublished,
		fmt.Sprintf("minutes published for %q", item.Title),
		string(previous), string(entities.StatusInExecution), now); err != nil {
		return entities.DeliberationItem{}, err
	}
	if err := uc.Items.SaveItem(ctx, item); err != nil {
		return entities.DeliberationItem{}, err
	}
	if err := uc.appendItemEvent(ctx, eventsv1.MinutesPublished, item, now, map[string]any{
		"decision_text": minutes.DecisionText,
	}); err != nil {
		return entities.DeliberationItem{}, err
	}

	logger.Info("minutes published",
		"event", "deliberation_minutes_published",
		"module", "governance-core/deliberation-engine",
		"layer", "application",
		"item_id", item.ItemID,
	)
	return item, nil
}
