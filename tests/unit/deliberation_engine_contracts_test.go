package unit

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"
)

func findRepoRoot() (string, error) {
	wd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	current := wd
	for {
		if _, err := os.Stat(filepath.Join(current, "go.mod")); err == nil {
			return current, nil
		}
		parent := filepath.Dir(current)
		if parent == current {
			return "", fmt.Errorf("go.mod not found from %s", wd)
		}
		current = parent
	}
}

func TestContractJSONArtifactsAreValid(t *testing.T) {
	root, err := findRepoRoot()
	if err != nil {
		t.Fatalf("resolve repo root: %v", err)
	}

	matches, err := filepath.Glob(filepath.Join(root, "contracts", "api", "v1", "*.json"))
	if err != nil {
		t.Fatalf("invalid glob pattern: %v", err)
	}
	if len(matches) == 0 {
		t.Fatalf("no contract json artifacts found")
	}
	for _, path := range matches {
		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("read %s: %v", path, err)
		}
		var payload any
		if err := json.Unmarshal(data, &payload); err != nil {
			t.Fatalf("invalid json contract file %s: %v", path, err)
		}
	}
}

func TestDeliberationEngineOpenAPIContractIncludesImplementedRoutes(t *testing.T) {
	root, err := findRepoRoot()
	if err != nil {
		t.Fatalf("resolve repo root: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(root, "contracts", "api", "v1", "deliberation-engine.openapi.json"))
	if err != nil {
		t.Fatalf("read deliberation-engine openapi: %v", err)
	}

	var doc struct {
		Paths map[string]map[string]any `json:"paths"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("decode deliberation-engine openapi: %v", err)
	}

	expected := []struct {
		path   string
		method string
	}{
		{"/api/governance/v1/deliberations", "post"},
		{"/api/governance/v1/deliberations", "get"},
		{"/api/governance/v1/deliberations/queue/summary", "get"},
		{"/api/governance/v1/deliberations/{item_id}", "get"},
		{"/api/governance/v1/deliberations/{item_id}/voting/start", "post"},
		{"/api/governance/v1/deliberations/{item_id}/votes", "post"},
		{"/api/governance/v1/deliberations/{item_id}/voting/close", "post"},
		{"/api/governance/v1/deliberations/{item_id}/minutes", "post"},
		{"/api/governance/v1/deliberations/{item_id}/minutes/publish", "post"},
		{"/api/governance/v1/deliberations/{item_id}/execution-tasks", "post"},
		{"/api/governance/v1/deliberations/{item_id}/execution-tasks/{task_id}", "patch"},
		{"/api/governance/v1/deliberations/{item_id}/return", "post"},
		{"/api/governance/v1/deliberations/{item_id}/resubmit", "post"},
		{"/api/governance/v1/deliberations/{item_id}/withdraw", "post"},
		{"/api/governance/v1/deliberations/{item_id}/evidence", "post"},
	}

	for _, route := range expected {
		ops, ok := doc.Paths[route.path]
		if !ok {
			t.Fatalf("missing path in openapi contract: %s", route.path)
		}
		if _, ok := ops[route.method]; !ok {
			t.Fatalf("missing method %s for path %s in openapi contract", route.method, route.path)
		}
	}
}
