package models

// Plan is the coordinator's dispatch decision for a single request.
// It is created once per request, consumed by the router and the
// executor, and never mutated after creation.
type Plan struct {
	// RequiredAgents lists the agents that must run for this request,
	// in decision order. An agent listed here but absent from every
	// concurrent group is "required but not dispatched"; callers must
	// not treat that as an error.
	RequiredAgents []AgentID `json:"required_agents"`
	// Priority assigns a priority number per agent. Lower runs sooner
	// when ordering matters.
	Priority map[AgentID]int `json:"priority"`
	// ConcurrentGroups is an ordered sequence of agent sets. Agents in
	// the same group may execute simultaneously; groups run strictly
	// sequentially relative to each other.
	ConcurrentGroups [][]AgentID `json:"concurrent_groups"`
	// Reasoning is the coordinator's free-text rationale for the plan.
	Reasoning string `json:"reasoning"`
}

// FallbackPlan returns the hard-coded safe default: planner only,
// priority 1, a single group. Used whenever coordination fails.
func FallbackPlan(reasoning string) Plan {
	return Plan{
		RequiredAgents:   []AgentID{AgentPlanner},
		Priority:         map[AgentID]int{AgentPlanner: 1},
		ConcurrentGroups: [][]AgentID{{AgentPlanner}},
		Reasoning:        reasoning,
	}
}

// Requires returns true if the plan lists the agent as required.
func (p Plan) Requires(id AgentID) bool {
	for _, a := range p.RequiredAgents {
		if a == id {
			return true
		}
	}
	return false
}

// Grouped returns true if the agent appears in any concurrent group.
func (p Plan) Grouped(id AgentID) bool {
	for _, group := range p.ConcurrentGroups {
		for _, a := range group {
			if a == id {
				return true
			}
		}
	}
	return false
}

// Validate checks the plan invariant: every agent in every concurrent
// group must also appear in RequiredAgents.
func (p Plan) Validate() error {
	for _, group := range p.ConcurrentGroups {
		for _, a := range group {
			if !p.Requires(a) {
				return &PlanError{Agent: a}
			}
		}
	}
	return nil
}

// PlanError reports an agent that appears in a concurrent group without
// being listed as required.
type PlanError struct {
	Agent AgentID
}

func (e *PlanError) Error() string {
	return "agent " + string(e.Agent) + " grouped but not required"
}
