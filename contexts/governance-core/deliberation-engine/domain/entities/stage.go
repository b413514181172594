package entities

import "time"

type StageType string

const (
	StageOwnerReview     StageType = "owner_review"
	StageDependentReview StageType = "dependent_review"
	StageFinalApproval   StageType = "final_approval"
	StagePublishMinutes  StageType = "publish_minutes"
	StageExecution       StageType = "execution"
)

type StageStatus string

const (
	StagePending   StageStatus = "pending"
	StageActive    StageStatus = "active"
	StageCompleted StageStatus = "completed"
	StageRejected  StageStatus = "rejected"
)

type MajorityType string

const (
	MajoritySimple             MajorityType = "simple"
	MajorityQualifiedTwoThirds MajorityType = "qualified_two_thirds"
	MajorityUnanimity          MajorityType = "unanimity"
)

type TieBreakRule string

const (
	TieBreakChairYes TieBreakRule = "chair_yes"
	TieBreakChairNo  TieBreakRule = "chair_no"
)

// VotingRule carries the policy applied when the stage's vote is closed.
type VotingRule struct {
	MajorityType      MajorityType
	QuorumPercent     int
	VotingWindowHours int
	TieBreakRule      TieBreakRule
}

// Stage is one ordered unit of review/voting within the workflow. Stages are
// totally ordered by Sequence (1-based).
type Stage struct {
	StageID       string
	Sequence      int
	CommitteeID   string
	CommitteeName string
	StageType     StageType
	Status        StageStatus
	VotingRule    VotingRule
	OpenedAt      *time.Time
	ClosedAt      *time.Time
}

// VoteRecord is one voter's decision within the active stage's voting window.
// VoterID is unique within the current stage; a new vote from the same voter
// replaces the previous record.
type VoteRecord struct {
	VoteID                string
	StageID               string
	VoterID               string
	VoterName             string
	Vote                  VoteChoice
	Justification         string
	HasConflictOfInterest bool
	VotedAt               time.Time
}
