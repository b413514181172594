package entities

import "time"

type MinutesStatus string

const (
	MinutesDraft     MinutesStatus = "draft"
	MinutesPublished MinutesStatus = "published"
)

// Minutes is the textual record of a resolved deliberation's outcome.
type Minutes struct {
	Status        MinutesStatus
	AgendaSummary string
	EvidenceList  []string
	VotingResult  string
	DecisionText  string
	ActionItems   []string
	GeneratedAt   time.Time
	PublishedAt   *time.Time
}

type ExecutionStatus string

const (
	ExecutionPending    ExecutionStatus = "pending"
	ExecutionInProgress ExecutionStatus = "in_progress"
	ExecutionCompleted  ExecutionStatus = "completed"
)

type LinkedEntityType string

const (
	LinkedProject  LinkedEntityType = "project"
	LinkedContract LinkedEntityType = "contract"
	LinkedRisk     LinkedEntityType = "risk"
)

// ExecutionItem is a post-decision follow-up task. The linked entity
// reference is stored as-is; existence validation belongs to the external
// project/contract/risk services.
type ExecutionItem struct {
	TaskID           string
	Title            string
	OwnerName        string
	DueDate          *time.Time
	Status           ExecutionStatus
	LinkedEntityType LinkedEntityType
	LinkedEntityID   string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
