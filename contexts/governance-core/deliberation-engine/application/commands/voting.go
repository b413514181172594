package commands

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	application "quorum/contexts/governance-core/deliberation-engine/application"
	"quorum/contexts/governance-core/deliberation-engine/domain/entities"
	domainerrors "quorum/contexts/governance-core/deliberation-engine/domain/errors"
	"quorum/contexts/governance-core/deliberation-engine/domain/services"
	eventsv1 "quorum/contracts/gen/events/v1"
)

type StartVotingCommand struct {
	ItemID string
	Actor  Actor
}

type CastVoteCommand struct {
	ItemID                string
	Actor                 Actor
	Vote                  entities.VoteChoice
	Justification         string
	HasConflictOfInterest bool
}

type CloseVotingCommand struct {
	ItemID string
	Actor  Actor
}

// CloseVotingResult reports the evaluated outcome alongside the updated item.
type CloseVotingResult struct {
	Item    entities.DeliberationItem
	Outcome services.VoteOutcome
}

// StartVoting opens the voting window on the current stage. Quorum is
// computed as ceil(quorumPercent/100 * committee population); the due date is
// advisory display data and is never auto-enforced.
func (uc DeliberationUseCase) StartVoting(
	ctx context.Context,
	cmd StartVotingCommand,
) (entities.DeliberationItem, error) {
	logger := application.ResolveLogger(uc.Logger)
	item, err := uc.loadMutable(ctx, cmd.ItemID)
	if err != nil {
		return entities.DeliberationItem{}, err
	}
	if item.Status == entities.StatusInVoting {
		logger.Warn("start voting rejected; voting already open",
			"event", "deliberation_start_voting_invalid",
			"module", "governance-core/deliberation-engine",
			"layer", "application",
			"item_id", item.ItemID,
		)
		return entities.DeliberationItem{}, domainerrors.ErrInvalidTransition
	}
	stage, found := item.CurrentStage()
	if !found || stage.Status != entities.StageActive {
		return entities.DeliberationItem{}, domainerrors.ErrInvalidTransition
	}

	committee, err := uc.Committees.GetCommittee(ctx, stage.CommitteeID)
	if err != nil {
		return entities.DeliberationItem{}, err
	}

	now := uc.now()
	dueDate := now.Add(time.Duration(stage.VotingRule.VotingWindowHours) * time.Hour)
	startedAt := now

	item.QuorumRequired = quorumRequired(stage.VotingRule.QuorumPercent, committee.PopulationSize)
	item.QuorumPresent = len(item.Votes)
	item.VotingStarted = &startedAt
	item.VotingClosed = nil
	item.VotingDueDate = &dueDate
	item.Status = entities.StatusInVoting

	if err := uc.appendAudit(ctx, &item, cmd.Actor, entities.AuditVotingStarted,
		fmt.Sprintf("voting opened for stage %d (%s)", stage.Sequence, stage.CommitteeName),
		"", string(entities.StatusInVoting), now); err != nil {
		return entities.DeliberationItem{}, err
	}
	if err := uc.Items.SaveItem(ctx, item); err != nil {
		return entities.DeliberationItem{}, err
	}
	if err := uc.appendItemEvent(ctx, eventsv1.DeliberationVotingStarted, item, now, map[string]any{
		"stage_id":        stage.StageID,
		"quorum_required": item.QuorumRequired,
		"due_date":        dueDate.Format(time.RFC3339),
	}); err != nil {
		return entities.DeliberationItem{}, err
	}

	logger.Info("voting started",
		"event", "deliberation_voting_started",
		"module", "governance-core/deliberation-engine",
		"layer", "application",
		"item_id", item.ItemID,
		"stage_id", stage.StageID,
		"quorum_required", item.QuorumRequired,
		"voting_window_hours", stage.VotingRule.VotingWindowHours,
	)
	return item, nil
}

// CastVote records or replaces the actor's vote on the active stage. The
// command is idempotent per voter: a repeat vote replaces the prior record
// instead of duplicating it. Votes arriving after the advisory due date are
// still accepted; window expiry enforcement belongs to the caller.
func (uc DeliberationUseCase) CastVote(
	ctx context.Context,
	cmd CastVoteCommand,
) (entities.DeliberationItem, error) {
	logger := application.ResolveLogger(uc.Logger)
	if cmd.Vote != entities.VoteYes && cmd.Vote != entities.VoteNo && cmd.Vote != entities.VoteAbstain {
		return entities.DeliberationItem{}, domainerrors.ErrValidation
	}
	if strings.TrimSpace(cmd.Actor.UserID) == "" {
		return entities.DeliberationItem{}, domainerrors.ErrValidation
	}

	item, err := uc.loadMutable(ctx, cmd.ItemID)
	if err != nil {
		return entities.DeliberationItem{}, err
	}
	if item.Status != entities.StatusInVoting {
		logger.Warn("cast vote rejected; no open voting window",
			"event", "deliberation_cast_vote_invalid",
			"module", "governance-core/deliberation-engine",
			"layer", "application",
			"item_id", item.ItemID,
			"status", string(item.Status),
		)
		return entities.DeliberationItem{}, domainerrors.ErrInvalidTransition
	}

	now := uc.now()
	record := entities.VoteRecord{
		StageID:               item.CurrentStageID,
		VoterID:               strings.TrimSpace(cmd.Actor.UserID),
		VoterName:             strings.TrimSpace(cmd.Actor.UserName),
		Vote:                  cmd.Vote,
		Justification:         strings.TrimSpace(cmd.Justification),
		HasConflictOfInterest: cmd.HasConflictOfInterest,
		VotedAt:               now,
	}

	replaced := false
	votes := make([]entities.VoteRecord, len(item.Votes))
	copy(votes, item.Votes)
	for index, existing := range votes {
		if existing.VoterID == record.VoterID {
			record.VoteID = existing.VoteID
			votes[index] = record
			replaced = true
			break
		}
	}
	if !replaced {
		voteID, err := uc.IDGen.NewID(ctx)
		if err != nil {
			return entities.DeliberationItem{}, err
		}
		record.VoteID = voteID
		votes = append(votes, record)
	}
	item.Votes = votes
	item.QuorumPresent = len(votes)

	if err := uc.appendAudit(ctx, &item, cmd.Actor, entities.AuditVoteCast,
		fmt.Sprintf("vote cast by %s", record.VoterName),
		"", string(record.Vote), now); err != nil {
		return entities.DeliberationItem{}, err
	}
	if err := uc.Items.SaveItem(ctx, item); err != nil {
		return entities.DeliberationItem{}, err
	}
	if err := uc.appendItemEvent(ctx, eventsv1.VoteCast, item, now, map[string]any{
		"stage_id": record.StageID,
		"voter_id": record.VoterID,
		"replaced": replaced,
		"conflict": record.HasConflictOfInterest,
		"vote":     string(record.Vote),
	}); err != nil {
		return entities.DeliberationItem{}, err
	}

	logger.Info("vote cast",
		"event", "deliberation_vote_cast",
		"module", "governance-core/deliberation-engine",
		"layer", "application",
		"item_id", item.ItemID,
		"voter_id", record.VoterID,
		"replaced", replaced,
		"quorum_present", item.QuorumPresent,
	)
	return item, nil
}

// CloseVoting resolves the current stage through the outcome evaluator and
// advances, reverts, or terminates the workflow accordingly. Exactly one
// audit entry is appended per branch.
func (uc DeliberationUseCase) CloseVoting(
	ctx context.Context,
	cmd CloseVotingCommand,
) (CloseVotingResult, error) {
	logger := application.ResolveLogger(uc.Logger)
	item, err := uc.loadMutable(ctx, cmd.ItemID)
	if err != nil {
		return CloseVotingResult{}, err
	}
	if item.Status != entities.StatusInVoting {
		return CloseVotingResult{}, domainerrors.ErrInvalidTransition
	}
	stage, found := item.CurrentStage()
	if !found {
		return CloseVotingResult{}, domainerrors.ErrStageNotFound
	}

	now := uc.now()
	outcome := services.EvaluateVoteResult(item)
	closedAt := now
	item.VotingClosed = &closedAt
	item.VoteResult = outcome.Result

	eventData := map[string]any{
		"stage_id": stage.StageID,
		"result":   string(outcome.Result),
		"yes":      outcome.Yes,
		"no":       outcome.No,
		"abstain":  outcome.Abstain,
	}

	switch outcome.Result {
	case entities.VoteResultNoQuorum:
		// Insufficient participation is not a decision; the stage stays
		// active so the committee can re-convene.
		item.Status = entities.StatusInReview
		item.VotingStarted = nil
		if err := uc.appendAudit(ctx, &item, cmd.Actor, entities.AuditVotingClosed,
			fmt.Sprintf("voting closed without quorum (%d of %d present)", item.QuorumPresent, item.QuorumRequired),
			string(entities.StatusInVoting), string(entities.StatusInReview), now); err != nil {
			return CloseVotingResult{}, err
		}

	case entities.VoteResultRejected:
		rejected := stage
		rejected.Status = entities.StageRejected
		rejected.ClosedAt = &closedAt
		item.Stages = replaceStage(item.Stages, rejected)
		item.Status = entities.StatusResolved
		item.ResolvedAt = &closedAt
		if err := uc.appendAudit(ctx, &item, cmd.Actor, entities.AuditVotingClosed,
			fmt.Sprintf("stage %d rejected (%d yes / %d no)", stage.Sequence, outcome.Yes, outcome.No),
			string(entities.StatusInVoting), string(entities.StatusResolved), now); err != nil {
			return CloseVotingResult{}, err
		}

	default: // approved
		completed := stage
		completed.Status = entities.StageCompleted
		completed.ClosedAt = &closedAt
		item.Stages = replaceStage(item.Stages, completed)

		next, hasNext := item.NextPendingStage(stage.Sequence)
		if hasNext {
			activated := next
			activated.Status = entities.StageActive
			openedAt := now
			activated.OpenedAt = &openedAt
			item.Stages = replaceStage(item.Stages, activated)
			item.CurrentStageID = activated.StageID
			item.Votes = []entities.VoteRecord{}
			item.VotingStarted = nil
			item.VotingDueDate = nil
			item.QuorumPresent = 0
			item.QuorumRequired = 0
			item.Status = statusForStageType(activated.StageType)
			eventData["next_stage_id"] = activated.StageID
		} else {
			item.CurrentStageID = ""
			item.Status = entities.StatusAwaitingMinutes
		}
		if err := uc.appendAudit(ctx, &item, cmd.Actor, entities.AuditVotingClosed,
			fmt.Sprintf("stage %d approved (%d yes / %d no)", stage.Sequence, outcome.Yes, outcome.No),
			string(entities.StatusInVoting), string(item.Status), now); err != nil {
			return CloseVotingResult{}, err
		}
	}

	if err := uc.Items.SaveItem(ctx, item); err != nil {
		return CloseVotingResult{}, err
	}
	if err := uc.appendItemEvent(ctx, eventsv1.DeliberationVotingClosed, item, now, eventData); err != nil {
		return CloseVotingResult{}, err
	}
	if outcome.Result == entities.VoteResultRejected {
		if err := uc.appendItemEvent(ctx, eventsv1.DeliberationResolved, item, now, map[string]any{
			"result": string(entities.VoteResultRejected),
		}); err != nil {
			return CloseVotingResult{}, err
		}
	}

	logger.Info("voting closed",
		"event", "deliberation_voting_closed",
		"module", "governance-core/deliberation-engine",
		"layer", "application",
		"item_id", item.ItemID,
		"stage_id", stage.StageID,
		"result", string(outcome.Result),
		"yes", outcome.Yes,
		"no", outcome.No,
		"abstain", outcome.Abstain,
	)
	return CloseVotingResult{Item: item, Outcome: outcome}, nil
}

// quorumRequired applies the ceil(percent/100 * population) policy.
func quorumRequired(quorumPercent int, populationSize int) int {
	if quorumPercent <= 0 || populationSize <= 0 {
		return 0
	}
	return int(math.Ceil(float64(quorumPercent) / 100 * float64(populationSize)))
}
