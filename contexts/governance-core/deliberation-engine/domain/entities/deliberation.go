package entities

import "time"

type DeliberationStatus string

const (
	StatusDraft               DeliberationStatus = "draft"
	StatusSubmitted           DeliberationStatus = "submitted"
	StatusInReview            DeliberationStatus = "in_review"
	StatusInVoting            DeliberationStatus = "in_voting"
	StatusAwaitingMinutes     DeliberationStatus = "awaiting_minutes"
	StatusResolved            DeliberationStatus = "resolved"
	StatusInExecution         DeliberationStatus = "in_execution"
	StatusClosed              DeliberationStatus = "closed"
	StatusReturnedForRevision DeliberationStatus = "returned_for_revision"
	StatusWithdrawn           DeliberationStatus = "withdrawn"
)

// Terminal reports whether the status admits no further transitions.
func (s DeliberationStatus) Terminal() bool {
	return s == StatusClosed || s == StatusWithdrawn
}

type RiskLevel string

const (
	RiskLow      RiskLevel = "low"
	RiskMedium   RiskLevel = "medium"
	RiskHigh     RiskLevel = "high"
	RiskCritical RiskLevel = "critical"
)

type VoteResult string

const (
	VoteResultApproved VoteResult = "approved"
	VoteResultRejected VoteResult = "rejected"
	VoteResultNoQuorum VoteResult = "no_quorum"
)

type VoteChoice string

const (
	VoteYes     VoteChoice = "yes"
	VoteNo      VoteChoice = "no"
	VoteAbstain VoteChoice = "abstain"
)

// DeliberationItem is the aggregate root of one decision request routed
// through committee review and voting stages.
//
// Invariants: at most one stage is active at a time and CurrentStageID
// references it; Votes holds at most one record per voter for the current
// stage; AuditTrail is append-only, newest first.
type DeliberationItem struct {
	ItemID            string
	Title             string
	Description       string
	RequestedDecision string

	OwnerCommitteeID        string
	OwnerCommitteeName      string
	DependentCommitteeIDs   []string
	DependentCommitteeNames []string

	BusinessArea    string
	Priority        string
	RiskLevel       RiskLevel
	FinancialImpact float64
	StrategicFlag   bool

	Status         DeliberationStatus
	CreatedAt      time.Time
	CreatedByID    string
	CreatedByName  string
	SubmittedAt    *time.Time
	ResolvedAt     *time.Time
	VotingStarted  *time.Time
	VotingClosed   *time.Time
	VotingDueDate  *time.Time
	CurrentStageID string

	Stages []Stage
	Votes  []VoteRecord

	VoteResult     VoteResult
	QuorumRequired int
	QuorumPresent  int

	Evidence       []EvidenceRef
	MinutesSummary string
	Minutes        *Minutes
	ExecutionItems []ExecutionItem
	AuditTrail     []AuditTrailEntry
}

// CurrentStage returns the stage referenced by CurrentStageID.
func (d DeliberationItem) CurrentStage() (Stage, bool) {
	for _, stage := range d.Stages {
		if stage.StageID == d.CurrentStageID {
			return stage, true
		}
	}
	return Stage{}, false
}

// NextPendingStage returns the lowest-sequence pending stage after the given
// sequence number.
func (d DeliberationItem) NextPendingStage(afterSequence int) (Stage, bool) {
	best := Stage{}
	found := false
	for _, stage := range d.Stages {
		if stage.Status != StagePending || stage.Sequence <= afterSequence {
			continue
		}
		if !found || stage.Sequence < best.Sequence {
			best = stage
			found = true
		}
	}
	return best, found
}

// TallyVotes counts yes/no/abstain among the current stage's vote records.
func (d DeliberationItem) TallyVotes() (yes int, no int, abstain int) {
	for _, record := range d.Votes {
		switch record.Vote {
		case VoteYes:
			yes++
		case VoteNo:
			no++
		case VoteAbstain:
			abstain++
		}
	}
	return yes, no, abstain
}

// EvidenceRef names an attached piece of supporting evidence. The engine
// stores references only; file handling is external.
type EvidenceRef struct {
	EvidenceID string
	Name       string
	URL        string
	AddedByID  string
	AddedAt    time.Time
}

type AuditAction string

const (
	AuditStatusChanged        AuditAction = "status_changed"
	AuditFieldEdited          AuditAction = "field_edited"
	AuditVoteCast             AuditAction = "vote_cast"
	AuditVotingStarted        AuditAction = "voting_started"
	AuditVotingClosed         AuditAction = "voting_closed"
	AuditEvidenceAdded        AuditAction = "evidence_added"
	AuditReviewRequested      AuditAction = "review_requested"
	AuditStageTransitioned    AuditAction = "stage_transitioned"
	AuditMinutesGenerated     AuditAction = "minutes_generated"
	AuditMinutesPublished     AuditAction = "minutes_published"
	AuditDecisionIssued       AuditAction = "decision_issued"
	AuditExecutionTaskCreated AuditAction = "execution_task_created"
)

// AuditTrailEntry is an immutable log line. Entries are never mutated or
// removed once appended.
type AuditTrailEntry struct {
	EntryID       string
	Action        AuditAction
	Description   string
	UserID        string
	UserName      string
	PreviousValue string
	NewValue      string
	Timestamp     time.Time
}
