// Package models defines the shared data types used across ATLAS.
package models

import "strings"

// AgentID identifies one of the specialized academic support agents.
type AgentID string

const (
	// AgentPlanner handles scheduling and time management. It is the
	// baseline agent: every dispatch plan includes it and every
	// fallback path resolves to it.
	AgentPlanner AgentID = "PLANNER"
	// AgentNoteWriter creates study materials and content summaries.
	AgentNoteWriter AgentID = "NOTEWRITER"
	// AgentAdvisor provides personalized academic guidance.
	AgentAdvisor AgentID = "ADVISOR"
)

// Valid returns true if the ID is a known agent.
func (id AgentID) Valid() bool {
	switch id {
	case AgentPlanner, AgentNoteWriter, AgentAdvisor:
		return true
	default:
		return false
	}
}

// Key returns the lowercased form used as the agent's namespace in the
// consolidated output map (e.g. "planner").
func (id AgentID) Key() string {
	return strings.ToLower(string(id))
}
