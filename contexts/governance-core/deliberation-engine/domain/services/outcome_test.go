package services

import (
	"testing"

	"quorum/contexts/governance-core/deliberation-engine/domain/entities"
)

func itemWithVotes(rule entities.VotingRule, quorumRequired int, yes int, no int, abstain int) entities.DeliberationItem {
	votes := make([]entities.VoteRecord, 0, yes+no+abstain)
	appendVotes := func(count int, choice entities.VoteChoice) {
		for index := 0; index < count; index++ {
			votes = append(votes, entities.VoteRecord{
				StageID: "stage-1",
				Vote:    choice,
			})
		}
	}
	appendVotes(yes, entities.VoteYes)
	appendVotes(no, entities.VoteNo)
	appendVotes(abstain, entities.VoteAbstain)

	return entities.DeliberationItem{
		ItemID:         "item-1",
		Status:         entities.StatusInVoting,
		CurrentStageID: "stage-1",
		Stages: []entities.Stage{{
			StageID:    "stage-1",
			Sequence:   1,
			StageType:  entities.StageOwnerReview,
			Status:     entities.StageActive,
			VotingRule: rule,
		}},
		Votes:          votes,
		QuorumRequired: quorumRequired,
		QuorumPresent:  len(votes),
	}
}

func TestEvaluateVoteResult(t *testing.T) {
	simple := entities.VotingRule{MajorityType: entities.MajoritySimple, TieBreakRule: entities.TieBreakChairNo}
	simpleChairYes := entities.VotingRule{MajorityType: entities.MajoritySimple, TieBreakRule: entities.TieBreakChairYes}
	twoThirds := entities.VotingRule{MajorityType: entities.MajorityQualifiedTwoThirds}
	unanimity := entities.VotingRule{MajorityType: entities.MajorityUnanimity}

	cases := []struct {
		name           string
		rule           entities.VotingRule
		quorumRequired int
		yes, no, abst  int
		wantResult     entities.VoteResult
	}{
		{"quorum beats a unanimous yes", simple, 5, 3, 0, 0, entities.VoteResultNoQuorum},
		{"abstentions count toward quorum", simple, 3, 2, 0, 1, entities.VoteResultApproved},
		{"simple majority approves", simple, 2, 3, 1, 0, entities.VoteResultApproved},
		{"simple majority rejects", simple, 2, 1, 3, 0, entities.VoteResultRejected},
		{"tie with chair_no rejects", simple, 2, 2, 2, 0, entities.VoteResultRejected},
		{"tie with chair_yes approves", simpleChairYes, 2, 2, 2, 0, entities.VoteResultApproved},
		{"two thirds boundary is inclusive", twoThirds, 2, 4, 2, 0, entities.VoteResultApproved},
		{"two thirds boundary at smallest ballot", twoThirds, 2, 2, 1, 0, entities.VoteResultApproved},
		{"two thirds short by one", twoThirds, 2, 3, 2, 0, entities.VoteResultRejected},
		{"two thirds with abstentions excluded from ratio", twoThirds, 2, 2, 1, 4, entities.VoteResultApproved},
		{"two thirds with no ballots cast rejects", twoThirds, 0, 0, 0, 0, entities.VoteResultRejected},
		{"unanimity approves without dissent", unanimity, 2, 3, 0, 0, entities.VoteResultApproved},
		{"unanimity tolerates abstentions", unanimity, 2, 2, 0, 1, entities.VoteResultApproved},
		{"unanimity fails on a single no", unanimity, 2, 4, 1, 0, entities.VoteResultRejected},
		{"unanimity requires at least one yes", unanimity, 2, 0, 0, 3, entities.VoteResultRejected},
	}

	for _, testCase := range cases {
		t.Run(testCase.name, func(t *testing.T) {
			item := itemWithVotes(testCase.rule, testCase.quorumRequired, testCase.yes, testCase.no, testCase.abst)
			outcome := EvaluateVoteResult(item)
			if outcome.Result != testCase.wantResult {
				t.Fatalf("expected %s, got %s (yes=%d no=%d abstain=%d)",
					testCase.wantResult, outcome.Result, outcome.Yes, outcome.No, outcome.Abstain)
			}
			if outcome.Approved != (testCase.wantResult == entities.VoteResultApproved) {
				t.Fatalf("approved flag inconsistent with result %s", outcome.Result)
			}
			if outcome.Yes != testCase.yes || outcome.No != testCase.no || outcome.Abstain != testCase.abst {
				t.Fatalf("tally mismatch: got yes=%d no=%d abstain=%d", outcome.Yes, outcome.No, outcome.Abstain)
			}
		})
	}
}

func TestEvaluateVoteResultWithoutResolvableStageFallsBackToYesMajority(t *testing.T) {
	item := itemWithVotes(entities.VotingRule{MajorityType: entities.MajorityUnanimity}, 1, 2, 1, 0)
	item.CurrentStageID = "stage-missing"

	outcome := EvaluateVoteResult(item)
	if outcome.Result != entities.VoteResultApproved {
		t.Fatalf("expected plain yes-majority fallback to approve, got %s", outcome.Result)
	}
}
