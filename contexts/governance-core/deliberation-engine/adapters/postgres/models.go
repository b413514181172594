package postgresadapter

import (
	"encoding/json"
	"strings"
	"time"

	"quorum/contexts/governance-core/deliberation-engine/domain/entities"
)

type itemModel struct {
	ID                string     `gorm:"column:id;primaryKey"`
	Title             string     `gorm:"column:title"`
	Description       string     `gorm:"column:description"`
	RequestedDecision string     `gorm:"column:requested_decision"`
	OwnerCommitteeID  string     `gorm:"column:owner_committee_id"`
	OwnerCommittee    string     `gorm:"column:owner_committee_name"`
	DependentIDs      []byte     `gorm:"column:dependent_committee_ids"`
	DependentNames    []byte     `gorm:"column:dependent_committee_names"`
	BusinessArea      string     `gorm:"column:business_area"`
	Priority          string     `gorm:"column:priority"`
	RiskLevel         string     `gorm:"column:risk_level"`
	FinancialImpact   float64    `gorm:"column:financial_impact"`
	StrategicFlag     bool       `gorm:"column:strategic_flag"`
	Status            string     `gorm:"column:status"`
	CreatedAt         time.Time  `gorm:"column:created_at"`
	CreatedByID       string     `gorm:"column:created_by_id"`
	CreatedByName     string     `gorm:"column:created_by_name"`
	SubmittedAt       *time.Time `gorm:"column:submitted_at"`
	ResolvedAt        *time.Time `gorm:"column:resolved_at"`
	VotingStartedAt   *time.Time `gorm:"column:voting_started_at"`
	VotingClosedAt    *time.Time `gorm:"column:voting_closed_at"`
	VotingDueDate     *time.Time `gorm:"column:voting_due_date"`
	CurrentStageID    string     `gorm:"column:current_stage_id"`
	VoteResult        string     `gorm:"column:vote_result"`
	QuorumRequired    int        `gorm:"column:quorum_required"`
	QuorumPresent     int        `gorm:"column:quorum_present"`
	Evidence          []byte     `gorm:"column:evidence"`
	MinutesSummary    string     `gorm:"column:minutes_summary"`
	Minutes           []byte     `gorm:"column:minutes"`
}

func (itemModel) TableName() string {
	return "deliberation_items"
}

func itemModelFromEntity(item entities.DeliberationItem) (itemModel, error) {
	dependentIDs, err := json.Marshal(item.DependentCommitteeIDs)
	if err != nil {
		return itemModel{}, err
	}
	dependentNames, err := json.Marshal(item.DependentCommitteeNames)
	if err != nil {
		return itemModel{}, err
	}
	evidence, err := json.Marshal(item.Evidence)
	if err != nil {
		return itemModel{}, err
	}
	var minutes []byte
	if item.Minutes != nil {
		minutes, err = json.Marshal(item.Minutes)
		if err != nil {
			return itemModel{}, err
		}
	}
	row := itemModel{
		ID:                strings.TrimSpace(item.ItemID),
		Title:             item.Title,
		Description:       item.Description,
		RequestedDecision: item.RequestedDecision,
		OwnerCommitteeID:  strings.TrimSpace(item.OwnerCommitteeID),
		OwnerCommittee:    item.OwnerCommitteeName,
		DependentIDs:      dependentIDs,
		DependentNames:    dependentNames,
		BusinessArea:      item.BusinessArea,
		Priority:          item.Priority,
		RiskLevel:         string(item.RiskLevel),
		FinancialImpact:   item.FinancialImpact,
		StrategicFlag:     item.StrategicFlag,
		Status:            string(item.Status),
		CreatedAt:         item.CreatedAt.UTC(),
		CreatedByID:       item.CreatedByID,
		CreatedByName:     item.CreatedByName,
		SubmittedAt:       normalizeOptionalTime(item.SubmittedAt),
		ResolvedAt:        normalizeOptionalTime(item.ResolvedAt),
		VotingStartedAt:   normalizeOptionalTime(item.VotingStarted),
		VotingClosedAt:    normalizeOptionalTime(item.VotingClosed),
		VotingDueDate:     normalizeOptionalTime(item.VotingDueDate),
		CurrentStageID:    item.CurrentStageID,
		VoteResult:        string(item.VoteResult),
		QuorumRequired:    item.QuorumRequired,
		QuorumPresent:     item.QuorumPresent,
		Evidence:          evidence,
		MinutesSummary:    item.MinutesSummary,
		Minutes:           minutes,
	}
	if row.CreatedAt.IsZero() {
		row.CreatedAt = time.Now().UTC()
	}
	return row, nil
}

func (m itemModel) toEntity() (entities.DeliberationItem, error) {
	item := entities.DeliberationItem{
		ItemID:             m.ID,
		Title:              m.Title,
		Description:        m.Description,
		RequestedDecision:  m.RequestedDecision,
		OwnerCommitteeID:   m.OwnerCommitteeID,
		OwnerCommitteeName: m.OwnerCommittee,
		BusinessArea:       m.BusinessArea,
		Priority:           m.Priority,
		RiskLevel:          entities.RiskLevel(m.RiskLevel),
		FinancialImpact:    m.FinancialImpact,
		StrategicFlag:      m.StrategicFlag,
		Status:             entities.DeliberationStatus(m.Status),
		CreatedAt:          m.CreatedAt.UTC(),
		CreatedByID:        m.CreatedByID,
		CreatedByName:      m.CreatedByName,
		SubmittedAt:        normalizeOptionalTime(m.SubmittedAt),
		ResolvedAt:         normalizeOptionalTime(m.ResolvedAt),
		VotingStarted:      normalizeOptionalTime(m.VotingStartedAt),
		VotingClosed:       normalizeOptionalTime(m.VotingClosedAt),
		VotingDueDate:      normalizeOptionalTime(m.VotingDueDate),
		CurrentStageID:     m.CurrentStageID,
		VoteResult:         entities.VoteResult(m.VoteResult),
		QuorumRequired:     m.QuorumRequired,
		QuorumPresent:      m.QuorumPresent,
		MinutesSummary:     m.MinutesSummary,
	}
	if len(m.DependentIDs) > 0 {
		if err := json.Unmarshal(m.DependentIDs, &item.DependentCommitteeIDs); err != nil {
			return entities.DeliberationItem{}, err
		}
	}
	if len(m.DependentNames) > 0 {
		if err := json.Unmarshal(m.DependentNames, &item.DependentCommitteeNames); err != nil {
			return entities.DeliberationItem{}, err
		}
	}
	if len(m.Evidence) > 0 {
		if err := json.Unmarshal(m.Evidence, &item.Evidence); err != nil {
			return entities.DeliberationItem{}, err
		}
	}
	if len(m.Minutes) > 0 {
		var minutes entities.Minutes
		if err := json.Unmarshal(m.Minutes, &minutes); err != nil {
			return entities.DeliberationItem{}, err
		}
		item.Minutes = &minutes
	}
	return item, nil
}

type stageModel struct {
	ID                string     `gorm:"column:id;primaryKey"`
	ItemID            string     `gorm:"column:item_id"`
	Sequence          int        `gorm:"column:sequence"`
	CommitteeID       string     `gorm:"column:committee_id"`
	CommitteeName     string     `gorm:"column:committee_name"`
	StageType         string     `gorm:"column:stage_type"`
	Status            string     `gorm:"column:status"`
	MajorityType      string     `gorm:"column:majority_type"`
	QuorumPercent     int        `gorm:"column:quorum_percent"`
	VotingWindowHours int        `gorm:"column:voting_window_hours"`
	TieBreakRule      string     `gorm:"column:tie_break_rule"`
	OpenedAt          *time.Time `gorm:"column:opened_at"`
	ClosedAt          *time.Time `gorm:"column:closed_at"`
}

func (stageModel) TableName() string {
	return "deliberation_stages"
}

func stageModelsFromEntity(item entities.DeliberationItem) []stageModel {
	rows := make([]stageModel, 0, len(item.Stages))
	for _, stage := range item.Stages {
		rows = append(rows, stageModel{
			ID:                stage.StageID,
			ItemID:            strings.TrimSpace(item.ItemID),
			Sequence:          stage.Sequence,
			CommitteeID:       stage.CommitteeID,
			CommitteeName:     stage.CommitteeName,
			StageType:         string(stage.StageType),
			Status:            string(stage.Status),
			MajorityType:      string(stage.VotingRule.MajorityType),
			QuorumPercent:     stage.VotingRule.QuorumPercent,
			VotingWindowHours: stage.VotingRule.VotingWindowHours,
			TieBreakRule:      string(stage.VotingRule.TieBreakRule),
			OpenedAt:          normalizeOptionalTime(stage.OpenedAt),
			ClosedAt:          normalizeOptionalTime(stage.ClosedAt),
		})
	}
	return rows
}

func (m stageModel) toEntity() entities.Stage {
	return entities.Stage{
		StageID:       m.ID,
		Sequence:      m.Sequence,
		CommitteeID:   m.CommitteeID,
		CommitteeName: m.CommitteeName,
		StageType:     entities.StageType(m.StageType),
		Status:        entities.StageStatus(m.Status),
		VotingRule: entities.VotingRule{
			MajorityType:      entities.MajorityType(m.MajorityType),
			QuorumPercent:     m.QuorumPercent,
			VotingWindowHours: m.VotingWindowHours,
			TieBreakRule:      entities.TieBreakRule(m.TieBreakRule),
		},
		OpenedAt: normalizeOptionalTime(m.OpenedAt),
		ClosedAt: normalizeOptionalTime(m.ClosedAt),
	}
}

type voteModel struct {
	ID            string    `gorm:"column:id;primaryKey"`
	ItemID        string    `gorm:"column:item_id"`
	StageID       string    `gorm:"column:stage_id"`
	VoterID       string    `gorm:"column:voter_id"`
	VoterName     string    `gorm:"column:voter_name"`
	Vote          string    `gorm:"column:vote"`
	Justification string    `gorm:"column:justification"`
	HasConflict   bool      `gorm:"column:has_conflict_of_interest"`
	VotedAt       time.Time `gorm:"column:voted_at"`
}

func (voteModel) TableName() string {
	return "deliberation_votes"
}

func voteModelsFromEntity(item entities.DeliberationItem) []voteModel {
	rows := make([]voteModel, 0, len(item.Votes))
	for _, record := range item.Votes {
		rows = append(rows, voteModel{
			ID:            record.VoteID,
			ItemID:        strings.TrimSpace(item.ItemID),
			StageID:       record.StageID,
			VoterID:       record.VoterID,
			VoterName:     record.VoterName,
			Vote:          string(record.Vote),
			Justification: record.Justification,
			HasConflict:   record.HasConflictOfInterest,
			VotedAt:       record.VotedAt.UTC(),
		})
	}
	return rows
}

func (m voteModel) toEntity() entities.VoteRecord {
	return entities.VoteRecord{
		VoteID:                m.ID,
		StageID:               m.StageID,
		VoterID:               m.VoterID,
		VoterName:             m.VoterName,
		Vote:                  entities.VoteChoice(m.Vote),
		Justification:         m.Justification,
		HasConflictOfInterest: m.HasConflict,
		VotedAt:               m.VotedAt.UTC(),
	}
}

type auditModel struct {
	ID            string    `gorm:"column:id;primaryKey"`
	ItemID        string    `gorm:"column:item_id"`
	Ordinal       int       `gorm:"column:ordinal"`
	Action        string    `gorm:"column:action"`
	Description   string    `gorm:"column:description"`
	UserID        string    `gorm:"column:user_id"`
	UserName      string    `gorm:"column:user_name"`
	PreviousValue string    `gorm:"column:previous_value"`
	NewValue      string    `gorm:"column:new_value"`
	Timestamp     time.Time `gorm:"column:timestamp"`
}

func (auditModel) TableName() string {
	return "deliberation_audit_trail"
}

// auditModelsFromEntity assigns ordinals so the newest-first in-memory trail
// reloads in the same order; entry 0 is the newest and gets the highest
// ordinal.
func auditModelsFromEntity(item entities.DeliberationItem) []auditModel {
	total := len(item.AuditTrail)
	rows := make([]auditModel, 0, total)
	for index, entry := range item.AuditTrail {
		rows = append(rows, auditModel{
			ID:            entry.EntryID,
			ItemID:        strings.TrimSpace(item.ItemID),
			Ordinal:       total - index,
			Action:        string(entry.Action),
			Description:   entry.Description,
			UserID:        entry.UserID,
			UserName:      entry.UserName,
			PreviousValue: entry.PreviousValue,
			NewValue:      entry.NewValue,
			Timestamp:     entry.Timestamp.UTC(),
		})
	}
	return rows
}

func (m auditModel) toEntity() entities.AuditTrailEntry {
	return entities.AuditTrailEntry{
		EntryID:       m.ID,
		Action:        entities.AuditAction(m.Action),
		Description:   m.Description,
		UserID:        m.UserID,
		UserName:      m.UserName,
		PreviousValue: m.PreviousValue,
		NewValue:      m.NewValue,
		Timestamp:     m.Timestamp.UTC(),
	}
}

type taskModel struct {
	ID               string     `gorm:"column:id;primaryKey"`
	ItemID           string     `gorm:"column:item_id"`
	Title            string     `gorm:"column:title"`
	OwnerName        string     `gorm:"column:owner_name"`
	DueDate          *time.Time `gorm:"column:due_date"`
	Status           string     `gorm:"column:status"`
	LinkedEntityType string     `gorm:"column:linked_entity_type"`
	LinkedEntityID   string     `gorm:"column:linked_entity_id"`
	CreatedAt        time.Time  `gorm:"column:created_at"`
	UpdatedAt        time.Time  `gorm:"column:updated_at"`
}

func (taskModel) TableName() string {
	return "deliberation_execution_items"
}

func taskModelsFromEntity(item entities.DeliberationItem) []taskModel {
	rows := make([]taskModel, 0, len(item.ExecutionItems))
	for _, task := range item.ExecutionItems {
		rows = append(rows, taskModel{
			ID:               task.TaskID,
			ItemID:           strings.TrimSpace(item.ItemID),
			Title:            task.Title,
			OwnerName:        task.OwnerName,
			DueDate:          normalizeOptionalTime(task.DueDate),
			Status:           string(task.Status),
			LinkedEntityType: string(task.LinkedEntityType),
			LinkedEntityID:   task.LinkedEntityID,
			CreatedAt:        task.CreatedAt.UTC(),
			UpdatedAt:        task.UpdatedAt.UTC(),
		})
	}
	return rows
}

func (m taskModel) toEntity() entities.ExecutionItem {
	return entities.ExecutionItem{
		TaskID:           m.ID,
		Title:            m.Title,
		OwnerName:        m.OwnerName,
		DueDate:          normalizeOptionalTime(m.DueDate),
		Status:           entities.ExecutionStatus(m.Status),
		LinkedEntityType: entities.LinkedEntityType(m.LinkedEntityType),
		LinkedEntityID:   m.LinkedEntityID,
		CreatedAt:        m.CreatedAt.UTC(),
		UpdatedAt:        m.UpdatedAt.UTC(),
	}
}

type committeeModel struct {
	ID             string `gorm:"column:id;primaryKey"`
	Name           string `gorm:"column:name"`
	PopulationSize int    `gorm:"column:population_size"`
	Archived       bool   `gorm:"column:archived"`
}

func (committeeModel) TableName() string {
	return "committees"
}

type idempotencyModel struct {
	Key         string    `gorm:"column:key;primaryKey"`
	RequestHash string    `gorm:"column:request_hash"`
	ItemID      string    `gorm:"column:item_id"`
	ExpiresAt   time.Time `gorm:"column:expires_at"`
}

func (idempotencyModel) TableName() string {
	return "deliberation_idempotency"
}

type outboxModel struct {
	OutboxID     string     `gorm:"column:outbox_id;primaryKey"`
	EventType    string     `gorm:"column:event_type"`
	PartitionKey string     `gorm:"column:partition_key"`
	Payload      []byte     `gorm:"column:payload"`
	Status       string     `gorm:"column:status"`
	CreatedAt    time.Time  `gorm:"column:created_at"`
	PublishedAt  *time.Time `gorm:"column:published_at"`
}

func (outboxModel) TableName() string {
	return "deliberation_outbox"
}

type eventDedupModel struct {
	EventID     string    `gorm:"column:event_id;primaryKey"`
	PayloadHash string    `gorm:"column:payload_hash"`
	ExpiresAt   time.Time `gorm:"column:expires_at"`
	ProcessedAt time.Time `gorm:"column:processed_at"`
}

func (eventDedupModel) TableName() string {
	return "deliberation_event_dedup"
}

func normalizeOptionalTime(value *time.Time) *time.Time {
	if value == nil {
		return nil
	}
	timestamp := value.UTC()
	return &timestamp
}
