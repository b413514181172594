package http

import "time"

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type SubmitDeliberationRequest struct {
	Title                 string   `json:"title"`
	Description           string   `json:"description"`
	RequestedDecision     string   `json:"requested_decision"`
	OwnerCommitteeID      string   `json:"owner_committee_id"`
	DependentCommitteeIDs []string `json:"dependent_committee_ids,omitempty"`
	BusinessArea          string   `json:"business_area,omitempty"`
	Priority              string   `json:"priority,omitempty"`
	RiskLevel             string   `json:"risk_level,omitempty"`
	FinancialImpact       float64  `json:"financial_impact,omitempty"`
	StrategicFlag         bool     `json:"strategic_flag,omitempty"`
	OutsideBudget         bool     `json:"outside_budget,omitempty"`
	TechnicalInvestment   bool     `json:"technical_investment,omitempty"`
	HighTicket            bool     `json:"high_ticket,omitempty"`
}

type CastVoteRequest struct {
	Vote                  string `json:"vote"`
	Justification         string `json:"justification,omitempty"`
	HasConflictOfInterest bool   `json:"has_conflict_of_interest,omitempty"`
}

type ReturnForRevisionRequest struct {
	Reason string `json:"reason,omitempty"`
}

type WithdrawRequest struct {
	Reason string `json:"reason,omitempty"`
}

type AddEvidenceRequest struct {
	Name string `json:"name"`
	URL  string `json:"url,omitempty"`
}

type CreateExecutionTaskRequest struct {
	Title            string     `json:"title"`
	OwnerName        string     `json:"owner_name,omitempty"`
	DueDate          *time.Time `json:"due_date,omitempty"`
	LinkedEntityType string     `json:"linked_entity_type,omitempty"`
	LinkedEntityID   string     `json:"linked_entity_id,omitempty"`
}

type UpdateExecutionTaskRequest struct {
	Status string `json:"status"`
}

type VotingRuleResponse struct {
	MajorityType      string `json:"majority_type"`
	QuorumPercent     int    `json:"quorum_percent"`
	VotingWindowHours int    `json:"voting_window_hours"`
	TieBreakRule      string `json:"tie_break_rule"`
}

type StageResponse struct {
	StageID       string             `json:"stage_id"`
	Sequence      int                `json:"sequence"`
	CommitteeID   string             `json:"committee_id"`
	CommitteeName string             `json:"committee_name"`
	StageType     string             `json:"stage_type"`
	Status        string             `json:"status"`
	VotingRule    VotingRuleResponse `json:"voting_rule"`
	OpenedAt      *time.Time         `json:"opened_at,omitempty"`
	ClosedAt      *time.Time         `json:"closed_at,omitempty"`
}

type VoteRecordResponse struct {
	VoteID                string    `json:"vote_id"`
	StageID               string    `json:"stage_id"`
	VoterID               string    `json:"voter_id"`
	VoterName             string    `json:"voter_name"`
	Vote                  string    `json:"vote"`
	Justification         string    `json:"justification,omitempty"`
	HasConflictOfInterest bool      `json:"has_conflict_of_interest"`
	VotedAt               time.Time `json:"voted_at"`
}

type AuditEntryResponse struct {
	EntryID       string    `json:"entry_id"`
	Action        string    `json:"action"`
	Description   string    `json:"description"`
	UserID        string    `json:"user_id"`
	UserName      string    `json:"user_name"`
	PreviousValue string    `json:"previous_value,omitempty"`
	NewValue      string    `json:"new_value,omitempty"`
	Timestamp     time.Time `json:"timestamp"`
}

type EvidenceResponse struct {
	EvidenceID string    `json:"evidence_id"`
	Name       string    `json:"name"`
	URL        string    `json:"url,omitempty"`
	AddedByID  string    `json:"added_by_id"`
	AddedAt    time.Time `json:"added_at"`
}

type MinutesResponse struct {
	Status        string     `json:"status"`
	AgendaSummary string     `json:"agenda_summary"`
	EvidenceList  []string   `json:"evidence_list,omitempty"`
	VotingResult  string     `json:"voting_result"`
	DecisionText  string     `json:"decision_text"`
	ActionItems   []string   `json:"action_items,omitempty"`
	GeneratedAt   time.Time  `json:"generated_at"`
	PublishedAt   *time.Time `json:"published_at,omitempty"`
}

type ExecutionItemResponse struct {
	TaskID           string     `json:"task_id"`
	Title            string     `json:"title"`
	OwnerName        string     `json:"owner_name,omitempty"`
	DueDate          *time.Time `json:"due_date,omitempty"`
	Status           string     `json:"status"`
	LinkedEntityType string     `json:"linked_entity_type,omitempty"`
	LinkedEntityID   string     `json:"linked_entity_id,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

type DeliberationResponse struct {
	ItemID            string `json:"item_id"`
	Title             string `json:"title"`
	Description       string `json:"description,omitempty"`
	RequestedDecision string `json:"requested_decision,omitempty"`

	OwnerCommitteeID        string   `json:"owner_committee_id"`
	OwnerCommitteeName      string   `json:"owner_committee_name,omitempty"`
	DependentCommitteeIDs   []string `json:"dependent_committee_ids,omitempty"`
	DependentCommitteeNames []string `json:"dependent_committee_names,omitempty"`

	BusinessArea    string  `json:"business_area,omitempty"`
	Priority        string  `json:"priority,omitempty"`
	RiskLevel       string  `json:"risk_level,omitempty"`
	FinancialImpact float64 `json:"financial_impact,omitempty"`
	StrategicFlag   bool    `json:"strategic_flag,omitempty"`

	Status         string     `json:"status"`
	CreatedAt      time.Time  `json:"created_at"`
	CreatedByID    string     `json:"created_by_id,omitempty"`
	CreatedByName  string     `json:"created_by_name,omitempty"`
	SubmittedAt    *time.Time `json:"submitted_at,omitempty"`
	ResolvedAt     *time.Time `json:"resolved_at,omitempty"`
	VotingStarted  *time.Time `json:"voting_started,omitempty"`
	VotingClosed   *time.Time `json:"voting_closed,omitempty"`
	VotingDueDate  *time.Time `json:"voting_due_date,omitempty"`
	CurrentStageID string     `json:"current_stage_id,omitempty"`

	Stages []StageResponse      `json:"stages"`
	Votes  []VoteRecordResponse `json:"votes,omitempty"`

	VoteResult     string `json:"vote_result,omitempty"`
	QuorumRequired int    `json:"quorum_required,omitempty"`
	QuorumPresent  int    `json:"quorum_present,omitempty"`

	Evidence       []EvidenceResponse      `json:"evidence,omitempty"`
	MinutesSummary string                  `json:"minutes_summary,omitempty"`
	Minutes        *MinutesResponse        `json:"minutes,omitempty"`
	ExecutionItems []ExecutionItemResponse `json:"execution_items,omitempty"`
	AuditTrail     []AuditEntryResponse    `json:"audit_trail,omitempty"`

	Replayed bool `json:"replayed,omitempty"`
}

type DeliberationListResponse struct {
	Items []DeliberationResponse `json:"items"`
	Total int                    `json:"total"`
}

type CloseVotingResponse struct {
	Item    DeliberationResponse `json:"item"`
	Outcome VoteOutcomeResponse  `json:"outcome"`
}

type VoteOutcomeResponse struct {
	Approved bool   `json:"approved"`
	Result   string `json:"result"`
	Yes      int    `json:"yes"`
	No       int    `json:"no"`
	Abstain  int    `json:"abstain"`
}

type QueueSummaryResponse struct {
	CountsByStatus map[string]int `json:"counts_by_status"`
	Overdue        int            `json:"overdue"`
	ResolvedRecent int            `json:"resolved_recent"`
	Total          int            `json:"total"`
}

type ExecutionTaskResponse struct {
	Item DeliberationResponse  `json:"item"`
	Task ExecutionItemResponse `json:"task"`
}
