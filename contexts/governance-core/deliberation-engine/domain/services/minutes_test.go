package services

import (
	"testing"
	"time"

	"quorum/contexts/governance-core/deliberation-engine/domain/entities"
)

func TestGenerateMinutesProjectsItemState(t *testing.T) {
	generatedAt := time.Date(2026, 4, 2, 15, 30, 0, 0, time.UTC)
	item := entities.DeliberationItem{
		ItemID:     "item-1",
		Title:      "Approve the datacenter migration",
		VoteResult: entities.VoteResultApproved,
		Votes: []entities.VoteRecord{
			{VoterID: "member-1", Vote: entities.VoteYes},
			{VoterID: "member-2", Vote: entities.VoteYes},
			{VoterID: "member-3", Vote: entities.VoteNo},
			{VoterID: "member-4", Vote: entities.VoteAbstain},
		},
		Evidence: []entities.EvidenceRef{
			{EvidenceID: "evidence-1", Name: "Migration cost model"},
			{EvidenceID: "evidence-2", Name: "Vendor shortlist"},
		},
		ExecutionItems: []entities.ExecutionItem{
			{TaskID: "task-1", Title: "Sign the colocation contract", OwnerName: "Procurement"},
		},
	}

	minutes := GenerateMinutes(item, generatedAt)
	if minutes.Status != entities.MinutesDraft {
		t.Fatalf("expected draft status, got %s", minutes.Status)
	}
	if minutes.AgendaSummary != item.Title {
		t.Fatalf("expected agenda summary from the title, got %q", minutes.AgendaSummary)
	}
	if minutes.VotingResult != "Yes 2 | No 1 | Abstain 1" {
		t.Fatalf("unexpected voting result line: %q", minutes.VotingResult)
	}
	if minutes.DecisionText != "Resolved Approved" {
		t.Fatalf("unexpected decision text: %q", minutes.DecisionText)
	}
	if len(minutes.EvidenceList) != 2 || minutes.EvidenceList[0] != "Migration cost model" {
		t.Fatalf("unexpected evidence list: %v", minutes.EvidenceList)
	}
	if len(minutes.ActionItems) != 1 || minutes.ActionItems[0] != "Sign the colocation contract (Procurement)" {
		t.Fatalf("unexpected action items: %v", minutes.ActionItems)
	}
	if !minutes.GeneratedAt.Equal(generatedAt) {
		t.Fatalf("expected caller-supplied generation time, got %s", minutes.GeneratedAt)
	}

	repeat := GenerateMinutes(item, generatedAt)
	if repeat.VotingResult != minutes.VotingResult || repeat.DecisionText != minutes.DecisionText {
		t.Fatalf("expected deterministic generation, got %+v vs %+v", repeat, minutes)
	}
}

func TestGenerateMinutesPendingAndRejectedDecisions(t *testing.T) {
	generatedAt := time.Date(2026, 4, 2, 15, 30, 0, 0, time.UTC)

	pending := GenerateMinutes(entities.DeliberationItem{Title: "Open item"}, generatedAt)
	if pending.DecisionText != "Pending Resolution" {
		t.Fatalf("expected pending decision text, got %q", pending.DecisionText)
	}

	rejected := GenerateMinutes(entities.DeliberationItem{
		Title:      "Declined item",
		VoteResult: entities.VoteResultRejected,
	}, generatedAt)
	if rejected.DecisionText != "Resolved Rejected" {
		t.Fatalf("expected rejected decision text, got %q", rejected.DecisionText)
	}
}

func TestMinutesSummaryFlattensSections(t *testing.T) {
	minutes := entities.Minutes{
		AgendaSummary: "Approve the datacenter migration",
		VotingResult:  "Yes 2 | No 1 | Abstain 1",
		DecisionText:  "Resolved Approved",
		ActionItems:   []string{"Sign the colocation contract (Procurement)"},
	}
	summary := MinutesSummary(minutes)
	want := "Approve the datacenter migration - Yes 2 | No 1 | Abstain 1 - Resolved Approved - Actions: Sign the colocation contract (Procurement)"
	if summary != want {
		t.Fatalf("unexpected summary:\n got %q\nwant %q", summary, want)
	}

	minutes.ActionItems = nil
	summary = MinutesSummary(minutes)
	want = "Approve the datacenter migration - Yes 2 | No 1 | Abstain 1 - Resolved Approved"
	if summary != want {
		t.Fatalf("unexpected summary without actions: %q", summary)
	}
}
