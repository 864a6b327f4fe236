// Package executor runs the concurrent groups of a dispatch plan,
// tolerating individual agent failures and falling back to the planner
// when nothing succeeds.
package executor

import (
	"context"
	"sync"

	"github.com/ShayCichocki/atlas/internal/agents"
	"github.com/ShayCichocki/atlas/internal/state"
	"github.com/ShayCichocki/atlas/pkg/models"
)

// emergencyPlan is the fixed payload returned when the orchestration
// procedure itself fails.
const emergencyPlan = "Emergency fallback plan: Please try again or contact support."

// Executor dispatches agents group by group. Within a group agents run
// concurrently; groups are separated by a join barrier, so group N+1
// never starts before group N has fully finished. There is no timeout
// or cancellation beyond the caller's context: a launched task runs to
// completion or failure.
type Executor struct {
	registry map[models.AgentID]agents.Agent

	// Logf receives debug lines; nil disables logging.
	Logf func(format string, args ...any)

	// groupsOf resolves the plan's concurrent groups. Injectable for
	// testing the orchestration-failure path.
	groupsOf func(models.Plan) [][]models.AgentID
}

// New creates an Executor over the given agent registry.
func New(registry map[models.AgentID]agents.Agent) *Executor {
	return &Executor{
		registry: registry,
		groupsOf: func(p models.Plan) [][]models.AgentID { return p.ConcurrentGroups },
	}
}

func (e *Executor) logf(format string, args ...any) {
	if e.Logf != nil {
		e.Logf(format, args...)
	}
}

// Execute runs the plan against the shared context and returns the
// results.agent_outputs namespace: one entry per successful agent,
// keyed by the lowercased agent ID.
//
// Failure handling, in order of severity:
//   - an agent that returns an error (or panics) is dropped silently;
//     its key is simply absent from the output and it is not retried
//   - if no agent succeeded at all, the planner runs once as a final
//     fallback and its output is the sole result
//   - a failure of the orchestration procedure itself is recovered once
//     at this level and replaced with a fixed emergency payload under
//     the planner key
//
// Execute never returns an error; the caller always gets an output map.
func (e *Executor) Execute(ctx context.Context, plan models.Plan, st *state.State) (result map[string]any) {
	defer func() {
		if r := recover(); r != nil {
			e.logf("[executor] orchestration failure: %v", r)
			result = map[string]any{
				"agent_outputs": map[string]any{
					models.AgentPlanner.Key(): map[string]any{
						"plan": emergencyPlan,
					},
				},
			}
		}
	}()

	outputs := map[string]any{}
	var mu sync.Mutex

	for i, group := range e.groupsOf(plan) {
		var wg sync.WaitGroup
		for _, id := range group {
			if !plan.Requires(id) {
				continue
			}
			agent, ok := e.registry[id]
			if !ok {
				e.logf("[executor] group %d: no implementation for %s, skipping", i, id)
				continue
			}

			wg.Add(1)
			go func(id models.AgentID, agent agents.Agent) {
				defer wg.Done()
				payload, err := e.runAgent(ctx, agent, st)
				if err != nil {
					e.logf("[executor] %s failed: %v", id, err)
					return
				}
				mu.Lock()
				outputs[id.Key()] = payload
				mu.Unlock()
			}(id, agent)
		}
		// Join barrier: the next group must not start early.
		wg.Wait()
	}

	if len(outputs) == 0 {
		if planner, ok := e.registry[models.AgentPlanner]; ok {
			e.logf("[executor] no agent succeeded, running planner fallback")
			payload, err := e.runAgent(ctx, planner, st)
			if err != nil {
				payload = map[string]any{"plan": "Error generating plan: " + err.Error()}
			}
			outputs[models.AgentPlanner.Key()] = payload
		}
	}

	e.logf("[executor] agent_outputs: %d entries", len(outputs))

	return map[string]any{"agent_outputs": outputs}
}

// runAgent invokes one agent, converting a panic into a task failure so
// a single bad agent never takes down the group.
func (e *Executor) runAgent(ctx context.Context, agent agents.Agent, st *state.State) (payload map[string]any, err error) {
	defer func() {
		if r := recover(); r != nil {
			payload = nil
			err = &taskPanicError{agent: agent.ID(), value: r}
		}
	}()
	return agent.Run(ctx, st)
}

// taskPanicError wraps a panic raised inside an agent task.
type taskPanicError struct {
	agent models.AgentID
	value any
}

func (e *taskPanicError) Error() string {
	return "agent " + string(e.agent) + " panicked"
}
