package commands

import (
	"context"
	"fmt"
	"strings"
	"time"

	application "quorum/contexts/governance-core/deliberation-engine/application"
	"quorum/contexts/governance-core/deliberation-engine/domain/entities"
	domainerrors "quorum/contexts/governance-core/deliberation-engine/domain/errors"
	eventsv1 "quorum/contracts/gen/events/v1"
)

type CreateExecutionTaskCommand struct {
	ItemID           string
	Actor            Actor
	Title            string
	OwnerName        string
	DueDate          *time.Time
	LinkedEntityType entities.LinkedEntityType
	LinkedEntityID   string
}

type CreateExecutionTaskResult struct {
	Item entities.DeliberationItem
	Task entities.ExecutionItem
}

type UpdateExecutionTaskCommand struct {
	ItemID string
	TaskID string
	Actor  Actor
	Status entities.ExecutionStatus
}

// CreateExecutionTask appends a follow-up task to the deliberation. The
// linked project/contract/risk reference is stored without existence
// validation; the external services own that. A resolved item moves into
// execution when its first task is created.
func (uc DeliberationUseCase) CreateExecutionTask(
	ctx context.Context,
	cmd CreateExecutionTaskCommand,
) (CreateExecutionTaskResult, error) {
	logger := application.ResolveLogger(uc.Logger)
	if strings.TrimSpace(cmd.Title) == "" {
		return CreateExecutionTaskResult{}, domainerrors.ErrValidation
	}
	if cmd.LinkedEntityType != "" &&
		cmd.LinkedEntityType != entities.LinkedProject &&
		cmd.LinkedEntityType != entities.LinkedContract &&
		cmd.LinkedEntityType != entities.LinkedRisk {
		return CreateExecutionTaskResult{}, domainerrors.ErrValidation
	}

	item, err := uc.loadMutable(ctx, cmd.ItemID)
	if err != nil {
		return CreateExecutionTaskResult{}, err
	}

	now := uc.now()
	taskID, err := uc.IDGen.NewID(ctx)
	if err != nil {
		return CreateExecutionTaskResult{}, err
	}
	task := entities.ExecutionItem{
		TaskID:           taskID,
		Title:            strings.TrimSpace(cmd.Title),
		OwnerName:        strings.TrimSpace(cmd.OwnerName),
		DueDate:          cmd.DueDate,
		Status:           entities.ExecutionPending,
		LinkedEntityType: cmd.LinkedEntityType,
		LinkedEntityID:   strings.TrimSpace(cmd.LinkedEntityID),
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	item.ExecutionItems = append(item.ExecutionItems, task)
	if item.Status == entities.StatusResolved {
		item.Status = entities.StatusInExecution
	}

	if err := uc.appendAudit(ctx, &item, cmd.Actor, entities.AuditExecutionTaskCreated,
		fmt.Sprintf("execution task created: %s", task.Title),
		"", task.TaskID, now); err != nil {
		return CreateExecutionTaskResult{}, err
	}
	if err := uc.Items.SaveItem(ctx, item); err != nil {
		return CreateExecutionTaskResult{}, err
	}
	if err := uc.appendItemEvent(ctx, eventsv1.ExecutionTaskCreated, item, now, map[string]any{
		"task_id":            task.TaskID,
		"linked_entity_type": string(task.LinkedEntityType),
		"linked_entity_id":   task.LinkedEntityID,
	}); err != nil {
		return CreateExecutionTaskResult{}, err
	}

	logger.Info("execution task created",
		"event", "deliberation_execution_task_created",
		"module", "governance-core/deliberation-engine",
		"layer", "application",
		"item_id", item.ItemID,
		"task_id", task.TaskID,
	)
	return CreateExecutionTaskResult{Item: item, Task: task}, nil
}

// UpdateExecutionTaskStatus advances a follow-up task through
// pending/in_progress/completed. When the last open task completes while the
// item is in execution, the deliberation closes.
func (uc DeliberationUseCase) UpdateExecutionTaskStatus(
	ctx context.Context,
	cmd UpdateExecutionTaskCommand,
) (entities.DeliberationItem, error) {
	logger := application.ResolveLogger(uc.Logger)
	if cmd.Status != entities.ExecutionPending &&
		cmd.Status != entities.ExecutionInProgress &&
		cmd.Status != entities.ExecutionCompleted {
		return entities.DeliberationItem{}, domainerrors.ErrValidation
	}

	item, err := uc.loadMutable(ctx, cmd.ItemID)
	if err != nil {
		return entities.DeliberationItem{}, err
	}

	now := uc.now()
	previous := entities.ExecutionStatus("")
	updated := false
	tasks := make([]entities.ExecutionItem, len(item.ExecutionItems))
	copy(tasks, item.ExecutionItems)
	for index, task := range tasks {
		if task.TaskID == strings.TrimSpace(cmd.TaskID) {
			previous = task.Status
			task.Status = cmd.Status
			task.UpdatedAt = now
			tasks[index] = task
			updated = true
			break
		}
	}
	if !updated {
		return entities.DeliberationItem{}, domainerrors.ErrTaskNotFound
	}
	item.ExecutionItems = tasks

	if err := uc.appendAudit(ctx, &item, cmd.Actor, entities.AuditFieldEdited,
		fmt.Sprintf("execution task %s status updated", cmd.TaskID),
		string(previous), string(cmd.Status), now); err != nil {
		return entities.DeliberationItem{}, err
	}

	if item.Status == entities.StatusInExecution && allTasksCompleted(tasks) {
		item.Status = entities.StatusClosed
		if err := uc.appendAudit(ctx, &item, cmd.Actor, entities.AuditStatusChanged,
			"all execution tasks completed; deliberation closed",
			string(entities.StatusInExecution), string(entities.StatusClosed), now); err != nil {
			return entities.DeliberationItem{}, err
		}
	}

	if err := uc.Items.SaveItem(ctx, item); err != nil {
		return entities.DeliberationItem{}, err
	}
	if err := uc.appendItemEvent(ctx, eventsv1.ExecutionTaskUpdated, item, now, map[string]any{
		"task_id": strings.TrimSpace(cmd.TaskID),
		"status":  string(cmd.Status),
	}); err != nil {
		return entities.DeliberationItem{}, err
	}

	logger.Info("execution task updated",
		"event", "deliberation_execution_task_updated",
		"module", "governance-core/deliberation-engine",
		"layer", "application",
		"item_id", item.ItemID,
		"task_id", strings.TrimSpace(cmd.TaskID),
		"status", string(cmd.Status),
	)
	return item, nil
}

func allTasksCompleted(tasks []entities.ExecutionItem) bool {
	if len(tasks) == 0 {
		return false
	}
	for _, task := range tasks {
		if task.Status != entities.ExecutionCompleted {
			return false
		}
	}
	return true
}
