package services

import (
	"quorum/contexts/governance-core/deliberation-engine/domain/entities"
)

// VoteOutcome is the resolved result of closing a stage's vote.
type VoteOutcome struct {
	Approved bool
	Result   entities.VoteResult
	Yes      int
	No       int
	Abstain  int
}

// EvaluateVoteResult computes approve/reject/no-quorum for the item's current
// stage. It is the single source of truth for outcome determination and never
// fails: when the current stage or its rule cannot be resolved the evaluation
// falls back to plain yes-majority so an undecidable vote still yields a safe,
// auditable outcome.
//
// Quorum takes precedence over all majority logic. Abstentions count toward
// quorum presence but are excluded from the yes/no ratio.
func EvaluateVoteResult(item entities.DeliberationItem) VoteOutcome {
	yes, no, abstain := item.TallyVotes()
	outcome := VoteOutcome{Yes: yes, No: no, Abstain: abstain}

	if item.QuorumPresent < item.QuorumRequired {
		outcome.Result = entities.VoteResultNoQuorum
		return outcome
	}

	stage, found := item.CurrentStage()
	if !found {
		outcome.Approved = yes > no
		outcome.Result = resultFromApproved(outcome.Approved)
		return outcome
	}

	switch stage.VotingRule.MajorityType {
	case entities.MajorityQualifiedTwoThirds:
		// Integer form of yes/(yes+no) >= 2/3; boundary inclusive.
		outcome.Approved = yes+no > 0 && 3*yes >= 2*(yes+no)
	case entities.MajorityUnanimity:
		outcome.Approved = no == 0 && yes > 0
	default:
		if yes == no {
			outcome.Approved = stage.VotingRule.TieBreakRule == entities.TieBreakChairYes
		} else {
			outcome.Approved = yes > no
		}
	}

	outcome.Result = resultFromApproved(outcome.Approved)
	return outcome
}

func resultFromApproved(approved bool) entities.VoteResult {
	if approved {
		return entities.VoteResultApproved
	}
	return entities.VoteResultRejected
}
