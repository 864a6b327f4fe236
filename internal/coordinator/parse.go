package coordinator

import (
	"strings"

	"github.com/ShayCichocki/atlas/pkg/models"
)

// PlanFromRationale derives a dispatch plan from the coordinator's
// free-text rationale by scanning for discriminator tokens. The planner
// is always the baseline; token matches add the other agents.
//
// The heuristic is deliberately preserved from the original policy,
// including its known gap: the advisor is appended to the required set
// with a higher priority number but is never added to a concurrent
// group, so it is "required but not dispatched". Callers must not treat
// that as an error.
//
// This is a pure function so the substring heuristic can later be
// swapped for a structured-output contract without touching the
// executor.
func PlanFromRationale(response string) models.Plan {
	plan := models.Plan{
		RequiredAgents:   []models.AgentID{models.AgentPlanner},
		Priority:         map[models.AgentID]int{models.AgentPlanner: 1},
		ConcurrentGroups: [][]models.AgentID{{models.AgentPlanner}},
		Reasoning:        response,
	}

	// Advanced coordination only applies to responses that follow the
	// ReACT outline.
	if !strings.Contains(response, "Thought:") || !strings.Contains(response, "Decision:") {
		return plan
	}

	lower := strings.ToLower(response)

	if strings.Contains(response, "NOTEWRITER") || strings.Contains(lower, "note") {
		plan.RequiredAgents = append(plan.RequiredAgents, models.AgentNoteWriter)
		plan.Priority[models.AgentNoteWriter] = 2
		plan.ConcurrentGroups = [][]models.AgentID{{models.AgentPlanner, models.AgentNoteWriter}}
	}

	if strings.Contains(response, "ADVISOR") || strings.Contains(lower, "guidance") {
		plan.RequiredAgents = append(plan.RequiredAgents, models.AgentAdvisor)
		plan.Priority[models.AgentAdvisor] = 3
		// Not added to any concurrent group under the current policy.
	}

	return plan
}
