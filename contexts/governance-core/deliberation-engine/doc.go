// Package deliberationengine implements the deliberation workflow engine
// inside the governance-core context.
//
// The module owns the deliberation lifecycle (submit, review, vote, minutes,
// execution), builds stage plans from policy inputs, evaluates vote outcomes
// under quorum and majority rules, and produces governance events through
// outbox-backed workers. Business rules live in the domain and application
// layers; infrastructure stays behind ports and adapters.
package deliberationengine
