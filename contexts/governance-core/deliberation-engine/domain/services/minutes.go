package services

import (
	"fmt"
	"strings"
	"time"

	"quorum/contexts/governance-core/deliberation-engine/domain/entities"
)

// GenerateMinutes renders a draft minutes record as a deterministic
// projection of the item's current state. No I/O, no clock reads; the
// generation timestamp is supplied by the caller.
func GenerateMinutes(item entities.DeliberationItem, generatedAt time.Time) entities.Minutes {
	yes, no, abstain := item.TallyVotes()

	evidence := make([]string, 0, len(item.Evidence))
	for _, ref := range item.Evidence {
		evidence = append(evidence, ref.Name)
	}

	actionItems := make([]string, 0, len(item.ExecutionItems))
	for _, task := range item.ExecutionItems {
		actionItems = append(actionItems, fmt.Sprintf("%s (%s)", task.Title, task.OwnerName))
	}

	return entities.Minutes{
		Status:        entities.MinutesDraft,
		AgendaSummary: item.Title,
		EvidenceList:  evidence,
		VotingResult:  fmt.Sprintf("Yes %d | No %d | Abstain %d", yes, no, abstain),
		DecisionText:  decisionText(item.VoteResult),
		ActionItems:   actionItems,
		GeneratedAt:   generatedAt.UTC(),
	}
}

// MinutesSummary flattens the minutes into the single-line summary shown on
// dashboard lists.
func MinutesSummary(minutes entities.Minutes) string {
	parts := []string{minutes.AgendaSummary, minutes.VotingResult, minutes.DecisionText}
	if len(minutes.ActionItems) > 0 {
		parts = append(parts, "Actions: "+strings.Join(minutes.ActionItems, "; "))
	}
	return strings.Join(parts, " - ")
}

func decisionText(result entities.VoteResult) string {
	switch result {
	case entities.VoteResultApproved:
		return "Resolved Approved"
	case entities.VoteResultRejected:
		return "Resolved Rejected"
	default:
		return "Pending Resolution"
	}
}
