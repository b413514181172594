package services

import (
	"testing"

	"quorum/contexts/governance-core/deliberation-engine/domain/entities"
)

func baseInput() PolicyInput {
	return PolicyInput{
		OwnerCommitteeID:   "committee-owner",
		OwnerCommitteeName: "Owner Committee",
		RiskLevel:          entities.RiskLow,
	}
}

func stageTypes(stages []entities.Stage) []entities.StageType {
	types := make([]entities.StageType, 0, len(stages))
	for _, stage := range stages {
		types = append(types, stage.StageType)
	}
	return types
}

func assertStageTypes(t *testing.T, stages []entities.Stage, want []entities.StageType) {
	t.Helper()
	got := stageTypes(stages)
	if len(got) != len(want) {
		t.Fatalf("expected %d stages %v, got %d stages %v", len(want), want, len(got), got)
	}
	for index := range want {
		if got[index] != want[index] {
			t.Fatalf("stage %d: expected %s, got %s (full plan %v)", index, want[index], got[index], got)
		}
	}
}

func TestBuildStagePlanBaseline(t *testing.T) {
	stages := BuildStagePlan(baseInput())
	assertStageTypes(t, stages, []entities.StageType{
		entities.StageOwnerReview,
		entities.StagePublishMinutes,
		entities.StageExecution,
	})
	for index, stage := range stages {
		if stage.Sequence != index+1 {
			t.Fatalf("expected 1-based contiguous sequences, got %d at index %d", stage.Sequence, index)
		}
		if stage.Status != entities.StagePending {
			t.Fatalf("expected pending stages from the builder, got %s", stage.Status)
		}
		if stage.CommitteeID != "committee-owner" {
			t.Fatalf("expected owner committee on every baseline stage, got %s", stage.CommitteeID)
		}
	}
}

func TestBuildStagePlanDependentReviewsKeepInputOrder(t *testing.T) {
	input := baseInput()
	input.DependentCommitteeIDs = []string{"committee-legal", "committee-it"}
	input.DependentCommitteeNames = []string{"Legal", "IT"}

	stages := BuildStagePlan(input)
	assertStageTypes(t, stages, []entities.StageType{
		entities.StageOwnerReview,
		entities.StageDependentReview,
		entities.StageDependentReview,
		entities.StagePublishMinutes,
		entities.StageExecution,
	})
	if stages[1].CommitteeID != "committee-legal" || stages[2].CommitteeID != "committee-it" {
		t.Fatalf("expected dependent reviews in input order, got %s then %s",
			stages[1].CommitteeID, stages[2].CommitteeID)
	}
	if stages[1].CommitteeName != "Legal" {
		t.Fatalf("expected dependent committee name carried over, got %q", stages[1].CommitteeName)
	}
}

func TestBuildStagePlanFinalApprovalTriggers(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*PolicyInput)
	}{
		{"strategic flag", func(input *PolicyInput) { input.StrategicFlag = true }},
		{"outside budget", func(input *PolicyInput) { input.OutsideBudget = true }},
		{"technical investment", func(input *PolicyInput) { input.TechnicalInvestment = true }},
		{"critical risk", func(input *PolicyInput) { input.RiskLevel = entities.RiskCritical }},
		{"high ticket", func(input *PolicyInput) { input.HighTicket = true }},
		{"financial impact above cutoff", func(input *PolicyInput) { input.FinancialImpact = FinalApprovalCutoff + 1 }},
	}
	for _, testCase := range cases {
		t.Run(testCase.name, func(t *testing.T) {
			input := baseInput()
			testCase.mutate(&input)
			stages := BuildStagePlan(input)
			assertStageTypes(t, stages, []entities.StageType{
				entities.StageOwnerReview,
				entities.StageFinalApproval,
				entities.StagePublishMinutes,
				entities.StageExecution,
			})
		})
	}

	input := baseInput()
	input.FinancialImpact = FinalApprovalCutoff
	stages := BuildStagePlan(input)
	assertStageTypes(t, stages, []entities.StageType{
		entities.StageOwnerReview,
		entities.StagePublishMinutes,
		entities.StageExecution,
	})
}

func TestBuildStagePlanIsDeterministic(t *testing.T) {
	input := baseInput()
	input.DependentCommitteeIDs = []string{"committee-legal"}
	input.DependentCommitteeNames = []string{"Legal"}
	input.RiskLevel = entities.RiskHigh

	first := BuildStagePlan(input)
	second := BuildStagePlan(input)
	if len(first) != len(second) {
		t.Fatalf("expected identical plans, got %d and %d stages", len(first), len(second))
	}
	for index := range first {
		if first[index] != second[index] {
			t.Fatalf("stage %d differs between builds: %+v vs %+v", index, first[index], second[index])
		}
	}
}

func TestVotingRuleEscalation(t *testing.T) {
	highRisk := baseInput()
	highRisk.RiskLevel = entities.RiskHigh
	stages := BuildStagePlan(highRisk)

	review := stages[0].VotingRule
	if review.MajorityType != entities.MajorityQualifiedTwoThirds {
		t.Fatalf("expected two-thirds majority for high risk, got %s", review.MajorityType)
	}
	if review.QuorumPercent != 60 || review.VotingWindowHours != 72 {
		t.Fatalf("expected 60%%/72h for high risk, got %d%%/%dh", review.QuorumPercent, review.VotingWindowHours)
	}

	// Procedural stages keep the lightest rule regardless of risk.
	publish := stages[1].VotingRule
	if publish.MajorityType != entities.MajoritySimple || publish.QuorumPercent != 50 {
		t.Fatalf("expected baseline rule on publish stage, got %+v", publish)
	}

	critical := baseInput()
	critical.RiskLevel = entities.RiskCritical
	criticalStages := BuildStagePlan(critical)
	criticalReview := criticalStages[0].VotingRule
	if criticalReview.MajorityType != entities.MajorityUnanimity {
		t.Fatalf("expected unanimity for critical risk, got %s", criticalReview.MajorityType)
	}
	if criticalReview.QuorumPercent != 75 || criticalReview.VotingWindowHours != 96 {
		t.Fatalf("expected 75%%/96h for critical risk, got %d%%/%dh",
			criticalReview.QuorumPercent, criticalReview.VotingWindowHours)
	}

	expensive := baseInput()
	expensive.FinancialImpact = FinalApprovalCutoff + 500_000
	expensiveStages := BuildStagePlan(expensive)
	if expensiveStages[0].VotingRule.MajorityType != entities.MajorityQualifiedTwoThirds {
		t.Fatalf("expected financial escalation to two-thirds, got %s",
			expensiveStages[0].VotingRule.MajorityType)
	}

	finalStage := entities.Stage{}
	for _, stage := range expensiveStages {
		if stage.StageType == entities.StageFinalApproval {
			finalStage = stage
		}
	}
	if finalStage.StageType != entities.StageFinalApproval {
		t.Fatalf("expected a final approval stage for a high-ticket item")
	}
	if finalStage.VotingRule.TieBreakRule != entities.TieBreakChairYes {
		t.Fatalf("expected chair_yes tie-break on final approval, got %s", finalStage.VotingRule.TieBreakRule)
	}
	if finalStage.VotingRule.QuorumPercent < 60 || finalStage.VotingRule.VotingWindowHours < 72 {
		t.Fatalf("expected final approval floors applied, got %d%%/%dh",
			finalStage.VotingRule.QuorumPercent, finalStage.VotingRule.VotingWindowHours)
	}
}
