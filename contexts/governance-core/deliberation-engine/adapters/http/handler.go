package httpadapter

import (
	"context"
	"log/slog"

	application "quorum/contexts/governance-core/deliberation-engine/application"
	"quorum/contexts/governance-core/deliberation-engine/application/commands"
	"quorum/contexts/governance-core/deliberation-engine/application/queries"
	"quorum/contexts/governance-core/deliberation-engine/domain/entities"
	"quorum/contexts/governance-core/deliberation-engine/domain/services"
	httptransport "quorum/contexts/governance-core/deliberation-engine/transport/http"
)

type Handler struct {
	Deliberations commands.DeliberationUseCase
	Dashboard     queries.DashboardUseCase
	Logger        *slog.Logger
}

// SubmitDeliberationHandler godoc
// @Summary Submit a deliberation item
// @Description Builds the stage plan from policy inputs and routes the item to its first review stage.
// @Tags deliberation-engine
// @Accept json
// @Produce json
// @Param X-User-Id header string true "Acting user id"
// @Param X-User-Name header string false "Acting user display name"
// @Param Idempotency-Key header string true "Idempotency key"
// @Param request body httptransport.SubmitDeliberationRequest true "Deliberation payload"
// @Success 200 {object} httptransport.DeliberationResponse
// @Failure 400 {object} httptransport.ErrorResponse
// @Failure 404 {object} httptransport.ErrorResponse
// @Failure 409 {object} httptransport.ErrorResponse
// @Router /api/governance/v1/deliberations [post]
func (h Handler) SubmitDeliberationHandler(
	ctx context.Context,
	actor commands.Actor,
	idempotencyKey string,
	req httptransport.SubmitDeliberationRequest,
) (httptransport.DeliberationResponse, error) {
	logger := application.ResolveLogger(h.Logger)
	logger.Info("submit deliberation request received",
		"event", "http_submit_deliberation_received",
		"module", "governance-core/deliberation-engine",
		"layer", "transport",
		"owner_committee_id", req.OwnerCommitteeID,
	)

	result, err := h.Deliberations.SubmitDeliberation(ctx, commands.SubmitDeliberationCommand{
		Actor:                 actor,
		IdempotencyKey:        idempotencyKey,
		Title:                 req.Title,
		Description:           req.Description,
		RequestedDecision:     req.RequestedDecision,
		OwnerCommitteeID:      req.OwnerCommitteeID,
		DependentCommitteeIDs: req.DependentCommitteeIDs,
		BusinessArea:          req.BusinessArea,
		Priority:              req.Priority,
		RiskLevel:             entities.RiskLevel(req.RiskLevel),
		FinancialImpact:       req.FinancialImpact,
		StrategicFlag:         req.StrategicFlag,
		OutsideBudget:         req.OutsideBudget,
		TechnicalInvestment:   req.TechnicalInvestment,
		HighTicket:            req.HighTicket,
	})
	if err != nil {
		logger.Error("submit deliberation request failed",
			"event", "http_submit_deliberation_failed",
			"module", "governance-core/deliberation-engine",
			"layer", "transport",
			"error", err.Error(),
		)
		return httptransport.DeliberationResponse{}, err
	}

	resp := mapItem(result.Item)
	resp.Replayed = result.Replayed
	return resp, nil
}

// GetDeliberationHandler godoc
// @Summary Get deliberation detail
// @Description Returns one deliberation with stages, votes, minutes, execution items, and audit trail.
// @Tags deliberation-engine
// @Produce json
// @Param item_id path string true "Deliberation id"
// @Success 200 {object} httptransport.DeliberationResponse
// @Failure 404 {object} httptransport.ErrorResponse
// @Router /api/governance/v1/deliberations/{item_id} [get]
func (h Handler) GetDeliberationHandler(ctx context.Context, itemID string) (httptransport.DeliberationResponse, error) {
	item, err := h.Dashboard.GetItem(ctx, itemID)
	if err != nil {
		return httptransport.DeliberationResponse{}, err
	}
	return mapItem(item), nil
}

// ListDeliberationsHandler godoc
// @Summary List deliberations
// @Description Filtered deliberation list for the governance dashboard, newest first.
// @Tags deliberation-engine
// @Produce json
// @Param status query string false "Status filter"
// @Param committee_id query string false "Committee filter (owner or stage committee)"
// @Param search query string false "Free-text search over title and description"
// @Param kpi query string false "KPI bucket: overdue or resolved_recent"
// @Success 200 {object} httptransport.DeliberationListResponse
// @Router /api/governance/v1/deliberations [get]
func (h Handler) ListDeliberationsHandler(
	ctx context.Context,
	query queries.ListQuery,
) (httptransport.DeliberationListResponse, error) {
	items, err := h.Dashboard.ListDeliberations(ctx, query)
	if err != nil {
		return httptransport.DeliberationListResponse{}, err
	}
	mapped := make([]httptransport.DeliberationResponse, 0, len(items))
	for _, item := range items {
		mapped = append(mapped, mapItem(item))
	}
	return httptransport.DeliberationListResponse{
		Items: mapped,
		Total: len(mapped),
	}, nil
}

// QueueSummaryHandler godoc
// @Summary Deliberation queue summary
// @Description Per-status counts plus overdue and recently-resolved KPI buckets.
// @Tags deliberation-engine
// @Produce json
// @Success 200 {object} httptransport.QueueSummaryResponse
// @Router /api/governance/v1/deliberations/queue/summary [get]
func (h Handler) QueueSummaryHandler(ctx context.Context) (httptransport.QueueSummaryResponse, error) {
	summary, err := h.Dashboard.QueueSummary(ctx)
	if err != nil {
		return httptransport.QueueSummaryResponse{}, err
	}
	counts := make(map[string]int, len(summary.CountsByStatus))
	for status, count := range summary.CountsByStatus {
		counts[string(status)] = count
	}
	return httptransport.QueueSummaryResponse{
		CountsByStatus: counts,
		Overdue:        summary.Overdue,
		ResolvedRecent: summary.ResolvedRecent,
		Total:          summary.Total,
	}, nil
}

// StartVotingHandler godoc
// @Summary Open the voting window
// @Description Opens voting on the current stage and computes the quorum threshold from the committee roster.
// @Tags deliberation-engine
// @Produce json
// @Param X-User-Id header string true "Acting user id"
// @Param item_id path string true "Deliberation id"
// @Success 200 {object} httptransport.DeliberationResponse
// @Failure 404 {object} httptransport.ErrorResponse
// @Failure 422 {object} httptransport.ErrorResponse
// @Router /api/governance/v1/deliberations/{item_id}/voting/start [post]
func (h Handler) StartVotingHandler(ctx context.Context, itemID string, actor commands.Actor) (httptransport.DeliberationResponse, error) {
	item, err := h.Deliberations.StartVoting(ctx, commands.StartVotingCommand{
		ItemID: itemID,
		Actor:  actor,
	})
	if err != nil {
		return httptransport.DeliberationResponse{}, err
	}
	return mapItem(item), nil
}

// CastVoteHandler godoc
// @Summary Cast a vote
// @Description Records or replaces the acting voter's ballot on the open voting stage.
// @Tags deliberation-engine
// @Accept json
// @Produce json
// @Param X-User-Id header string true "Acting user id"
// @Param item_id path string true "Deliberation id"
// @Param request body httptransport.CastVoteRequest true "Ballot"
// @Success 200 {object} httptransport.DeliberationResponse
// @Failure 400 {object} httptransport.ErrorResponse
// @Failure 422 {object} httptransport.ErrorResponse
// @Router /api/governance/v1/deliberations/{item_id}/votes [post]
func (h Handler) CastVoteHandler(
	ctx context.Context,
	itemID string,
	actor commands.Actor,
	req httptransport.CastVoteRequest,
) (httptransport.DeliberationResponse, error) {
	item, err := h.Deliberations.CastVote(ctx, commands.CastVoteCommand{
		ItemID:                itemID,
		Actor:                 actor,
		Vote:                  entities.VoteChoice(req.Vote),
		Justification:         req.Justification,
		HasConflictOfInterest: req.HasConflictOfInterest,
	})
	if err != nil {
		return httptransport.DeliberationResponse{}, err
	}
	return mapItem(item), nil
}

// CloseVotingHandler godoc
// @Summary Close the voting window
// @Description Evaluates quorum and majority rules, then advances, resolves, or reverts the item.
// @Tags deliberation-engine
// @Produce json
// @Param X-User-Id header string true "Acting user id"
// @Param item_id path string true "Deliberation id"
// @Success 200 {object} httptransport.CloseVotingResponse
// @Failure 404 {object} httptransport.ErrorResponse
// @Failure 422 {object} httptransport.ErrorResponse
// @Router /api/governance/v1/deliberations/{item_id}/voting/close [post]
func (h Handler) CloseVotingHandler(ctx context.Context, itemID string, actor commands.Actor) (httptransport.CloseVotingResponse, error) {
	result, err := h.Deliberations.CloseVoting(ctx, commands.CloseVotingCommand{
		ItemID: itemID,
		Actor:  actor,
	})
	if err != nil {
		return httptransport.CloseVotingResponse{}, err
	}
	return httptransport.CloseVotingResponse{
		Item:    mapItem(result.Item),
		Outcome: mapOutcome(result.Outcome),
	}, nil
}

// GenerateMinutesHandler godoc
// @Summary Generate draft minutes
// @Description Builds the deterministic draft minutes record from the recorded tallies and evidence.
// @Tags deliberation-engine
// @Produce json
// @Param X-User-Id header string true "Acting user id"
// @Param item_id path string true "Deliberation id"
// @Success 200 {object} httptransport.DeliberationResponse
// @Failure 422 {object} httptransport.ErrorResponse
// @Router /api/governance/v1/deliberations/{item_id}/minutes [post]
func (h Handler) GenerateMinutesHandler(ctx context.Context, itemID string, actor commands.Actor) (httptransport.DeliberationResponse, error) {
	item, err := h.Deliberations.GenerateMinutes(ctx, commands.GenerateMinutesCommand{
		ItemID: itemID,
		Actor:  actor,
	})
	if err != nil {
		return httptransport.DeliberationResponse{}, err
	}
	return mapItem(item), nil
}

// PublishMinutesHandler godoc
// @Summary Publish minutes
// @Description Publishes the draft minutes and moves the deliberation into execution.
// @Tags deliberation-engine
// @Produce json
// @Param X-User-Id header string true "Acting user id"
// @Param item_id path string true "Deliberation id"
// @Success 200 {object} httptransport.DeliberationResponse
// @Failure 422 {object} httptransport.ErrorResponse
// @Router /api/governance/v1/deliberations/{item_id}/minutes/publish [post]
func (h Handler) PublishMinutesHandler(ctx context.Context, itemID string, actor commands.Actor) (httptransport.DeliberationResponse, error) {
	item, err := h.Deliberations.PublishMinutes(ctx, commands.PublishMinutesCommand{
		ItemID: itemID,
		Actor:  actor,
	})
	if err != nil {
		return httptransport.DeliberationResponse{}, err
	}
	return mapItem(item), nil
}

// CreateExecutionTaskHandler godoc
// @Summary Create an execution task
// @Description Attaches a follow-up task to a resolved or executing deliberation.
// @Tags deliberation-engine
// @Accept json
// @Produce json
// @Param X-User-Id header string true "Acting user id"
// @Param item_id path string true "Deliberation id"
// @Param request body httptransport.CreateExecutionTaskRequest true "Task payload"
// @Success 200 {object} httptransport.ExecutionTaskResponse
// @Failure 400 {object} httptransport.ErrorResponse
// @Failure 422 {object} httptransport.ErrorResponse
// @Router /api/governance/v1/deliberations/{item_id}/execution-tasks [post]
func (h Handler) CreateExecutionTaskHandler(
	ctx context.Context,
	itemID string,
	actor commands.Actor,
	req httptransport.CreateExecutionTaskRequest,
) (httptransport.ExecutionTaskResponse, error) {
	result, err := h.Deliberations.CreateExecutionTask(ctx, commands.CreateExecutionTaskCommand{
		ItemID:           itemID,
		Actor:            actor,
		Title:            req.Title,
		OwnerName:        req.OwnerName,
		DueDate:          req.DueDate,
		LinkedEntityType: entities.LinkedEntityType(req.LinkedEntityType),
		LinkedEntityID:   req.LinkedEntityID,
	})
	if err != nil {
		return httptransport.ExecutionTaskResponse{}, err
	}
	return httptransport.ExecutionTaskResponse{
		Item: mapItem(result.Item),
		Task: mapExecutionItem(result.Task),
	}, nil
}

// UpdateExecutionTaskHandler godoc
// @Summary Update an execution task status
// @Description Moves a task between pending, in_progress, and completed; closes the deliberation when all tasks complete.
// @Tags deliberation-engine
// @Accept json
// @Produce json
// @Param X-User-Id header string true "Acting user id"
// @Param item_id path string true "Deliberation id"
// @Param task_id path string true "Execution task id"
// @Param request body httptransport.UpdateExecutionTaskRequest true "Status change"
// @Success 200 {object} httptransport.DeliberationResponse
// @Failure 400 {object} httptransport.ErrorResponse
// @Failure 404 {object} httptransport.ErrorResponse
// @Router /api/governance/v1/deliberations/{item_id}/execution-tasks/{task_id} [patch]
func (h Handler) UpdateExecutionTaskHandler(
	ctx context.Context,
	itemID string,
	taskID string,
	actor commands.Actor,
	req httptransport.UpdateExecutionTaskRequest,
) (httptransport.DeliberationResponse, error) {
	item, err := h.Deliberations.UpdateExecutionTaskStatus(ctx, commands.UpdateExecutionTaskCommand{
		ItemID: itemID,
		TaskID: taskID,
		Actor:  actor,
		Status: entities.ExecutionStatus(req.Status),
	})
	if err != nil {
		return httptransport.DeliberationResponse{}, err
	}
	return mapItem(item), nil
}

// ReturnForRevisionHandler godoc
// @Summary Return a deliberation for revision
// @Tags deliberation-engine
// @Accept json
// @Produce json
// @Param X-User-Id header string true "Acting user id"
// @Param item_id path string true "Deliberation id"
// @Param request body httptransport.ReturnForRevisionRequest false "Return reason"
// @Success 200 {object} httptransport.DeliberationResponse
// @Failure 422 {object} httptransport.ErrorResponse
// @Router /api/governance/v1/deliberations/{item_id}/return [post]
func (h Handler) ReturnForRevisionHandler(
	ctx context.Context,
	itemID string,
	actor commands.Actor,
	req httptransport.ReturnForRevisionRequest,
) (httptransport.DeliberationResponse, error) {
	item, err := h.Deliberations.ReturnForRevision(ctx, commands.ReturnForRevisionCommand{
		ItemID: itemID,
		Actor:  actor,
		Reason: req.Reason,
	})
	if err != nil {
		return httptransport.DeliberationResponse{}, err
	}
	return mapItem(item), nil
}

// ResubmitHandler godoc
// @Summary Resubmit a returned deliberation
// @Tags deliberation-engine
// @Produce json
// @Param X-User-Id header string true "Acting user id"
// @Param item_id path string true "Deliberation id"
// @Success 200 {object} httptransport.DeliberationResponse
// @Failure 422 {object} httptransport.ErrorResponse
// @Router /api/governance/v1/deliberations/{item_id}/resubmit [post]
func (h Handler) ResubmitHandler(ctx context.Context, itemID string, actor commands.Actor) (httptransport.DeliberationResponse, error) {
	item, err := h.Deliberations.Resubmit(ctx, commands.ResubmitCommand{
		ItemID: itemID,
		Actor:  actor,
	})
	if err != nil {
		return httptransport.DeliberationResponse{}, err
	}
	return mapItem(item), nil
}

// WithdrawHandler godoc
// @Summary Withdraw a deliberation
// @Tags deliberation-engine
// @Accept json
// @Produce json
// @Param X-User-Id header string true "Acting user id"
// @Param item_id path string true "Deliberation id"
// @Param request body httptransport.WithdrawRequest false "Withdrawal reason"
// @Success 200 {object} httptransport.DeliberationResponse
// @Failure 422 {object} httptransport.ErrorResponse
// @Router /api/governance/v1/deliberations/{item_id}/withdraw [post]
func (h Handler) WithdrawHandler(
	ctx context.Context,
	itemID string,
	actor commands.Actor,
	req httptransport.WithdrawRequest,
) (httptransport.DeliberationResponse, error) {
	item, err := h.Deliberations.Withdraw(ctx, commands.WithdrawCommand{
		ItemID: itemID,
		Actor:  actor,
		Reason: req.Reason,
	})
	if err != nil {
		return httptransport.DeliberationResponse{}, err
	}
	return mapItem(item), nil
}

// AddEvidenceHandler godoc
// @Summary Attach evidence
// @Description Stores an evidence reference on the deliberation; file handling stays external.
// @Tags deliberation-engine
// @Accept json
// @Produce json
// @Param X-User-Id header string true "Acting user id"
// @Param item_id path string true "Deliberation id"
// @Param request body httptransport.AddEvidenceRequest true "Evidence reference"
// @Success 200 {object} httptransport.DeliberationResponse
// @Failure 400 {object} httptransport.ErrorResponse
// @Router /api/governance/v1/deliberations/{item_id}/evidence [post]
func (h Handler) AddEvidenceHandler(
	ctx context.Context,
	itemID string,
	actor commands.Actor,
	req httptransport.AddEvidenceRequest,
) (httptransport.DeliberationResponse, error) {
	item, err := h.Deliberations.AddEvidence(ctx, commands.AddEvidenceCommand{
		ItemID: itemID,
		Actor:  actor,
		Name:   req.Name,
		URL:    req.URL,
	})
	if err != nil {
		return httptransport.DeliberationResponse{}, err
	}
	return mapItem(item), nil
}

func mapItem(item entities.DeliberationItem) httptransport.DeliberationResponse {
	stages := make([]httptransport.StageResponse, 0, len(item.Stages))
	for _, stage := range item.Stages {
		stages = append(stages, httptransport.StageResponse{
			StageID:       stage.StageID,
			Sequence:      stage.Sequence,
			CommitteeID:   stage.CommitteeID,
			CommitteeName: stage.CommitteeName,
			StageType:     string(stage.StageType),
			Status:        string(stage.Status),
			VotingRule: httptransport.VotingRuleResponse{
				MajorityType:      string(stage.VotingRule.MajorityType),
				QuorumPercent:     stage.VotingRule.QuorumPercent,
				VotingWindowHours: stage.VotingRule.VotingWindowHours,
				TieBreakRule:      string(stage.VotingRule.TieBreakRule),
			},
			OpenedAt: stage.OpenedAt,
			ClosedAt: stage.ClosedAt,
		})
	}

	votes := make([]httptransport.VoteRecordResponse, 0, len(item.Votes))
	for _, record := range item.Votes {
		votes = append(votes, httptransport.VoteRecordResponse{
			VoteID:                record.VoteID,
			StageID:               record.StageID,
			VoterID:               record.VoterID,
			VoterName:             record.VoterName,
			Vote:                  string(record.Vote),
			Justification:         record.Justification,
			HasConflictOfInterest: record.HasConflictOfInterest,
			VotedAt:               record.VotedAt,
		})
	}

	trail := make([]httptransport.AuditEntryResponse, 0, len(item.AuditTrail))
	for _, entry := range item.AuditTrail {
		trail = append(trail, httptransport.AuditEntryResponse{
			EntryID:       entry.EntryID,
			Action:        string(entry.Action),
			Description:   entry.Description,
			UserID:        entry.UserID,
			UserName:      entry.UserName,
			PreviousValue: entry.PreviousValue,
			NewValue:      entry.NewValue,
			Timestamp:     entry.Timestamp,
		})
	}

	evidence := make([]httptransport.EvidenceResponse, 0, len(item.Evidence))
	for _, ref := range item.Evidence {
		evidence = append(evidence, httptransport.EvidenceResponse{
			EvidenceID: ref.EvidenceID,
			Name:       ref.Name,
			URL:        ref.URL,
			AddedByID:  ref.AddedByID,
			AddedAt:    ref.AddedAt,
		})
	}

	tasks := make([]httptransport.ExecutionItemResponse, 0, len(item.ExecutionItems))
	for _, task := range item.ExecutionItems {
		tasks = append(tasks, mapExecutionItem(task))
	}

	resp := httptransport.DeliberationResponse{
		ItemID:                  item.ItemID,
		Title:                   item.Title,
		Description:             item.Description,
		RequestedDecision:       item.RequestedDecision,
		OwnerCommitteeID:        item.OwnerCommitteeID,
		OwnerCommitteeName:      item.OwnerCommitteeName,
		DependentCommitteeIDs:   item.DependentCommitteeIDs,
		DependentCommitteeNames: item.DependentCommitteeNames,
		BusinessArea:            item.BusinessArea,
		Priority:                item.Priority,
		RiskLevel:               string(item.RiskLevel),
		FinancialImpact:         item.FinancialImpact,
		StrategicFlag:           item.StrategicFlag,
		Status:                  string(item.Status),
		CreatedAt:               item.CreatedAt,
		CreatedByID:             item.CreatedByID,
		CreatedByName:           item.CreatedByName,
		SubmittedAt:             item.SubmittedAt,
		ResolvedAt:              item.ResolvedAt,
		VotingStarted:           item.VotingStarted,
		VotingClosed:            item.VotingClosed,
		VotingDueDate:           item.VotingDueDate,
		CurrentStageID:          item.CurrentStageID,
		Stages:                  stages,
		Votes:                   votes,
		VoteResult:              string(item.VoteResult),
		QuorumRequired:          item.QuorumRequired,
		QuorumPresent:           item.QuorumPresent,
		Evidence:                evidence,
		MinutesSummary:          item.MinutesSummary,
		ExecutionItems:          tasks,
		AuditTrail:              trail,
	}
	if item.Minutes != nil {
		resp.Minutes = &httptransport.MinutesResponse{
			Status:        string(item.Minutes.Status),
			AgendaSummary: item.Minutes.AgendaSummary,
			EvidenceList:  item.Minutes.EvidenceList,
			VotingResult:  item.Minutes.VotingResult,
			DecisionText:  item.Minutes.DecisionText,
			ActionItems:   item.Minutes.ActionItems,
			GeneratedAt:   item.Minutes.GeneratedAt,
			PublishedAt:   item.Minutes.PublishedAt,
		}
	}
	return resp
}

func mapExecutionItem(task entities.ExecutionItem) httptransport.ExecutionItemResponse {
	return httptransport.ExecutionItemResponse{
		TaskID:           task.TaskID,
		Title:            task.Title,
		OwnerName:        task.OwnerName,
		DueDate:          task.DueDate,
		Status:           string(task.Status),
		LinkedEntityType: string(task.LinkedEntityType),
		LinkedEntityID:   task.LinkedEntityID,
		CreatedAt:        task.CreatedAt,
		UpdatedAt:        task.UpdatedAt,
	}
}

func mapOutcome(outcome services.VoteOutcome) httptransport.VoteOutcomeResponse {
	return httptransport.VoteOutcomeResponse{
		Approved: outcome.Approved,
		Result:   string(outcome.Result),
		Yes:      outcome.Yes,
		No:       outcome.No,
		Abstain:  outcome.Abstain,
	}
}
