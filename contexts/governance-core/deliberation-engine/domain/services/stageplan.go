package services

import (
	"quorum/contexts/governance-core/deliberation-engine/domain/entities"
)

// PolicyInput carries the business-policy facts the stage plan is derived
// from. BuildStagePlan is a pure function of this struct.
type PolicyInput struct {
	OwnerCommitteeID        string
	OwnerCommitteeName      string
	DependentCommitteeIDs   []string
	DependentCommitteeNames []string
	FinancialImpact         float64
	RiskLevel               entities.RiskLevel
	StrategicFlag           bool
	OutsideBudget           bool
	TechnicalInvestment     bool
	HighTicket              bool
}

// FinalApprovalCutoff is the financial impact above which a final_approval
// stage is always inserted.
const FinalApprovalCutoff = 1_000_000

// planRule inserts zero or more review/approval stages when its predicate
// holds. Rules run in order; publish_minutes and execution stages are
// appended unconditionally after all rules.
type planRule struct {
	name    string
	applies func(PolicyInput) bool
	stages  func(PolicyInput) []stageSpec
}

type stageSpec struct {
	committeeID   string
	committeeName string
	stageType     entities.StageType
}

var planRules = []planRule{
	{
		name:    "owner_review",
		applies: func(PolicyInput) bool { return true },
		stages: func(input PolicyInput) []stageSpec {
			return []stageSpec{{
				committeeID:   input.OwnerCommitteeID,
				committeeName: input.OwnerCommitteeName,
				stageType:     entities.StageOwnerReview,
			}}
		},
	},
	{
		name:    "dependent_reviews",
		applies: func(input PolicyInput) bool { return len(input.DependentCommitteeIDs) > 0 },
		stages: func(input PolicyInput) []stageSpec {
			specs := make([]stageSpec, 0, len(input.DependentCommitteeIDs))
			for index, committeeID := range input.DependentCommitteeIDs {
				name := ""
				if index < len(input.DependentCommitteeNames) {
					name = input.DependentCommitteeNames[index]
				}
				specs = append(specs, stageSpec{
					committeeID:   committeeID,
					committeeName: name,
					stageType:     entities.StageDependentReview,
				})
			}
			return specs
		},
	},
	{
		name:    "final_approval",
		applies: requiresFinalApproval,
		stages: func(input PolicyInput) []stageSpec {
			return []stageSpec{{
				committeeID:   input.OwnerCommitteeID,
				committeeName: input.OwnerCommitteeName,
				stageType:     entities.StageFinalApproval,
			}}
		},
	},
}

func requiresFinalApproval(input PolicyInput) bool {
	if input.StrategicFlag || input.OutsideBudget || input.TechnicalInvestment {
		return true
	}
	if input.RiskLevel == entities.RiskCritical {
		return true
	}
	if input.HighTicket || input.FinancialImpact > FinalApprovalCutoff {
		return true
	}
	return false
}

// BuildStagePlan deterministically produces the ordered stage plan for a new
// deliberation: owner review, dependent reviews in input order, a conditional
// final approval, then publish_minutes and execution. Stage ids are assigned
// later by the caller; sequences are 1-based here.
func BuildStagePlan(input PolicyInput) []entities.Stage {
	specs := make([]stageSpec, 0, 4)
	for _, rule := range planRules {
		if !rule.applies(input) {
			continue
		}
		specs = append(specs, rule.stages(input)...)
	}
	specs = append(specs,
		stageSpec{
			committeeID:   input.OwnerCommitteeID,
			committeeName: input.OwnerCommitteeName,
			stageType:     entities.StagePublishMinutes,
		},
		stageSpec{
			committeeID:   input.OwnerCommitteeID,
			committeeName: input.OwnerCommitteeName,
			stageType:     entities.StageExecution,
		},
	)

	stages := make([]entities.Stage, 0, len(specs))
	for index, spec := range specs {
		stages = append(stages, entities.Stage{
			Sequence:      index + 1,
			CommitteeID:   spec.committeeID,
			CommitteeName: spec.committeeName,
			StageType:     spec.stageType,
			Status:        entities.StagePending,
			VotingRule:    ruleForStage(spec.stageType, input),
		})
	}
	return stages
}

// ruleForStage escalates majority type, quorum, and voting window with risk
// and financial impact. Publication and execution stages keep the lightest
// rule; their completion is procedural, not a contested vote.
func ruleForStage(stageType entities.StageType, input PolicyInput) entities.VotingRule {
	rule := entities.VotingRule{
		MajorityType:      entities.MajoritySimple,
		QuorumPercent:     50,
		VotingWindowHours: 48,
		TieBreakRule:      entities.TieBreakChairNo,
	}
	if stageType == entities.StagePublishMinutes || stageType == entities.StageExecution {
		return rule
	}

	switch input.RiskLevel {
	case entities.RiskHigh:
		rule.MajorityType = entities.MajorityQualifiedTwoThirds
		rule.QuorumPercent = 60
		rule.VotingWindowHours = 72
	case entities.RiskCritical:
		rule.MajorityType = entities.MajorityUnanimity
		rule.QuorumPercent = 75
		rule.VotingWindowHours = 96
	}

	if input.FinancialImpact > FinalApprovalCutoff && rule.MajorityType == entities.MajoritySimple {
		rule.MajorityType = entities.MajorityQualifiedTwoThirds
		rule.QuorumPercent = 60
		rule.VotingWindowHours = 72
	}

	if stageType == entities.StageFinalApproval {
		if rule.MajorityType == entities.MajoritySimple {
			rule.MajorityType = entities.MajorityQualifiedTwoThirds
		}
		if rule.QuorumPercent < 60 {
			rule.QuorumPercent = 60
		}
		if rule.VotingWindowHours < 72 {
			rule.VotingWindowHours = 72
		}
		rule.TieBreakRule = entities.TieBreakChairYes
	}
	return rule
}
