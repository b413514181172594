package commands

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	application "quorum/contexts/governance-core/deliberation-engine/application"
	"quorum/contexts/governance-core/deliberation-engine/domain/entities"
	domainerrors "quorum/contexts/governance-core/deliberation-engine/domain/errors"
	"quorum/contexts/governance-core/deliberation-engine/domain/services"
	"quorum/contexts/governance-core/deliberation-engine/ports"
	eventsv1 "quorum/contracts/gen/events/v1"
)

// SubmitDeliberationCommand is the write-model input for creating a new
// deliberation. The stage plan is derived from the policy fields, never
// supplied by the caller.
type SubmitDeliberationCommand struct {
	Actor             Actor
	IdempotencyKey    string
	Title             string
	Description       string
	RequestedDecision string

	OwnerCommitteeID      string
	DependentCommitteeIDs []string

	BusinessArea        string
	Priority            string
	RiskLevel           entities.RiskLevel
	FinancialImpact     float64
	StrategicFlag       bool
	OutsideBudget       bool
	TechnicalInvestment bool
	HighTicket          bool
}

// SubmitDeliberationResult carries the created item plus a replay marker for
// idempotent retries.
type SubmitDeliberationResult struct {
	Item     entities.DeliberationItem
	Replayed bool
}

// SubmitDeliberation validates the request, resolves committees, builds the
// stage plan, activates the first stage, and persists the submitted item.
// Replay-safe via idempotency key + request hash validation.
func (uc DeliberationUseCase) SubmitDeliberation(
	ctx context.Context,
	cmd SubmitDeliberationCommand,
) (SubmitDeliberationResult, error) {
	logger := application.ResolveLogger(uc.Logger)
	logger.Info("deliberation submit processing started",
		"event", "deliberation_submit_started",
		"module", "governance-core/deliberation-engine",
		"layer", "application",
		"user_id", strings.TrimSpace(cmd.Actor.UserID),
		"owner_committee_id", strings.TrimSpace(cmd.OwnerCommitteeID),
	)
	if strings.TrimSpace(cmd.Title) == "" || strings.TrimSpace(cmd.OwnerCommitteeID) == "" {
		logger.Warn("deliberation submit validation failed",
			"event", "deliberation_submit_validation_failed",
			"module", "governance-core/deliberation-engine",
			"layer", "application",
			"user_id", strings.TrimSpace(cmd.Actor.UserID),
		)
		return SubmitDeliberationResult{}, domainerrors.ErrValidation
	}
	if strings.TrimSpace(cmd.IdempotencyKey) == "" {
		return SubmitDeliberationResult{}, domainerrors.ErrIdempotencyKeyRequired
	}

	now := uc.now()
	requestHash := hashSubmitCommand(cmd)
	if record, found, err := uc.Idempotency.Get(ctx, cmd.IdempotencyKey, now); err != nil {
		return SubmitDeliberationResult{}, err
	} else if found {
		if record.RequestHash != requestHash {
			return SubmitDeliberationResult{}, domainerrors.ErrIdempotencyConflict
		}
		item, err := uc.Items.GetItem(ctx, record.ItemID)
		if err != nil {
			return SubmitDeliberationResult{}, err
		}
		logger.Info("deliberation submit replayed",
			"event", "deliberation_submit_replayed",
			"module", "governance-core/deliberation-engine",
			"layer", "application",
			"item_id", item.ItemID,
		)
		return SubmitDeliberationResult{Item: item, Replayed: true}, nil
	}

	owner, err := uc.Committees.GetCommittee(ctx, strings.TrimSpace(cmd.OwnerCommitteeID))
	if err != nil {
		return SubmitDeliberationResult{}, err
	}

	dependentIDs := make([]string, 0, len(cmd.DependentCommitteeIDs))
	dependentNames := make([]string, 0, len(cmd.DependentCommitteeIDs))
	for _, committeeID := range cmd.DependentCommitteeIDs {
		committee, err := uc.Committees.GetCommittee(ctx, strings.TrimSpace(committeeID))
		if err != nil {
			return SubmitDeliberationResult{}, err
		}
		dependentIDs = append(dependentIDs, committee.CommitteeID)
		dependentNames = append(dependentNames, committee.Name)
	}

	stages := services.BuildStagePlan(services.PolicyInput{
		OwnerCommitteeID:        owner.CommitteeID,
		OwnerCommitteeName:      owner.Name,
		DependentCommitteeIDs:   dependentIDs,
		DependentCommitteeNames: dependentNames,
		FinancialImpact:         cmd.FinancialImpact,
		RiskLevel:               cmd.RiskLevel,
		StrategicFlag:           cmd.StrategicFlag,
		OutsideBudget:           cmd.OutsideBudget,
		TechnicalInvestment:     cmd.TechnicalInvestment,
		HighTicket:              cmd.HighTicket,
	})
	for index := range stages {
		stageID, err := uc.IDGen.NewID(ctx)
		if err != nil {
			return SubmitDeliberationResult{}, err
		}
		stages[index].StageID = stageID
	}
	openedAt := now
	stages[0].Status = entities.StageActive
	stages[0].OpenedAt = &openedAt

	itemID, err := uc.IDGen.NewID(ctx)
	if err != nil {
		return SubmitDeliberationResult{}, err
	}
	submittedAt := now
	item := entities.DeliberationItem{
		ItemID:                  itemID,
		Title:                   strings.TrimSpace(cmd.Title),
		Description:             strings.TrimSpace(cmd.Description),
		RequestedDecision:       strings.TrimSpace(cmd.RequestedDecision),
		OwnerCommitteeID:        owner.CommitteeID,
		OwnerCommitteeName:      owner.Name,
		DependentCommitteeIDs:   dependentIDs,
		DependentCommitteeNames: dependentNames,
		BusinessArea:            strings.TrimSpace(cmd.BusinessArea),
		Priority:                strings.TrimSpace(cmd.Priority),
		RiskLevel:               cmd.RiskLevel,
		FinancialImpact:         cmd.FinancialImpact,
		StrategicFlag:           cmd.StrategicFlag,
		Status:                  entities.StatusSubmitted,
		CreatedAt:               now,
		CreatedByID:             strings.TrimSpace(cmd.Actor.UserID),
		CreatedByName:           strings.TrimSpace(cmd.Actor.UserName),
		SubmittedAt:             &submittedAt,
		CurrentStageID:          stages[0].StageID,
		Stages:                  stages,
		Votes:                   []entities.VoteRecord{},
	}

	if err := uc.appendAudit(ctx, &item, cmd.Actor, entities.AuditStatusChanged,
		"deliberation submitted",
		string(entities.StatusDraft), string(entities.StatusSubmitted), now); err != nil {
		return SubmitDeliberationResult{}, err
	}
	if err := uc.appendAudit(ctx, &item, cmd.Actor, entities.AuditReviewRequested,
		fmt.Sprintf("review assigned to %s", owner.Name),
		"", owner.CommitteeID, now); err != nil {
		return SubmitDeliberationResult{}, err
	}

	if err := uc.Items.SaveItem(ctx, item); err != nil {
		return SubmitDeliberationResult{}, err
	}
	if err := uc.appendItemEvent(ctx, eventsv1.DeliberationSubmitted, item, now, map[string]any{
		"owner_committee_id": owner.CommitteeID,
		"stage_count":        len(item.Stages),
	}); err != nil {
		return SubmitDeliberationResult{}, err
	}
	if err := uc.Idempotency.Put(ctx, ports.IdempotencyRecord{
		Key:         strings.TrimSpace(cmd.IdempotencyKey),
		RequestHash: requestHash,
		ItemID:      item.ItemID,
		ExpiresAt:   now.Add(uc.resolveIdempotencyTTL()),
	}); err != nil {
		return SubmitDeliberationResult{}, err
	}

	logger.Info("deliberation submitted",
		"event", "deliberation_submitted",
		"module", "governance-core/deliberation-engine",
		"layer", "application",
		"item_id", item.ItemID,
		"owner_committee_id", owner.CommitteeID,
		"stage_count", len(item.Stages),
		"risk_level", string(cmd.RiskLevel),
	)
	return SubmitDeliberationResult{Item: item}, nil
}

func hashSubmitCommand(cmd SubmitDeliberationCommand) string {
	payload := map[string]string{
		"op":                 "submit_deliberation",
		"user_id":            strings.TrimSpace(cmd.Actor.UserID),
		"title":              strings.TrimSpace(cmd.Title),
		"owner_committee_id": strings.TrimSpace(cmd.OwnerCommitteeID),
		"dependents":         strings.Join(cmd.DependentCommitteeIDs, ","),
		"risk_level":         string(cmd.RiskLevel),
		"financial_impact":   strconv.FormatFloat(cmd.FinancialImpact, 'f', -1, 64),
		"strategic":          strconv.FormatBool(cmd.StrategicFlag),
	}
	raw, _ := json.Marshal(payload)
	sum := sha256.Sum256(raw)
	return hex.EncodeToString(sum[:])
}
