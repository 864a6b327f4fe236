// Package router maps a dispatch plan to the pipeline entry points
// that must be activated in the orchestration graph.
package router

import "github.com/ShayCichocki/atlas/pkg/models"

// EntryPoint names the first step of an agent's pipeline in the
// orchestration graph.
type EntryPoint string

const (
	// EntryCalendarAnalyzer starts the planner pipeline.
	EntryCalendarAnalyzer EntryPoint = "calendar_analyzer"
	// EntryNoteWriterAnalyze starts the notewriter pipeline.
	EntryNoteWriterAnalyze EntryPoint = "notewriter_analyze"
	// EntryAdvisorAnalyze starts the advisor pipeline.
	EntryAdvisorAnalyze EntryPoint = "advisor_analyze"
)

// Agent returns the agent whose pipeline this entry point starts.
func (e EntryPoint) Agent() models.AgentID {
	switch e {
	case EntryNoteWriterAnalyze:
		return models.AgentNoteWriter
	case EntryAdvisorAnalyze:
		return models.AgentAdvisor
	default:
		return models.AgentPlanner
	}
}

// Route is a pure function from a dispatch plan to the ordered set of
// entry points to activate, one per recognized required agent. If the
// plan yields no recognized entry points, the planner's entry point is
// returned as the guaranteed default.
func Route(plan models.Plan) []EntryPoint {
	var entries []EntryPoint

	if plan.Requires(models.AgentPlanner) {
		entries = append(entries, EntryCalendarAnalyzer)
	}
	if plan.Requires(models.AgentNoteWriter) {
		entries = append(entries, EntryNoteWriterAnalyze)
	}
	if plan.Requires(models.AgentAdvisor) {
		entries = append(entries, EntryAdvisorAnalyze)
	}

	if len(entries) == 0 {
		return []EntryPoint{EntryCalendarAnalyzer}
	}
	return entries
}
