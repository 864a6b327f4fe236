// Package agents implements the specialized academic support agents.
// Each agent runs a short fixed linear pipeline of generation steps,
// every step writing one namespaced field into the shared results map.
package agents

import (
	"context"

	"github.com/ShayCichocki/atlas/internal/state"
	"github.com/ShayCichocki/atlas/pkg/models"
)

// Generator is the generation backend capability agents depend on.
// Implementations must be safe to call from concurrent goroutines.
type Generator interface {
	Generate(ctx context.Context, msgs []models.Message, temperature float64) (string, error)
}

// StepFunc is one pipeline step: it reads the shared context and
// returns a namespaced partial result for the caller to merge.
type StepFunc func(ctx context.Context, st *state.State) (map[string]any, error)

// Step is a named pipeline step. The orchestration graph runs an
// agent's steps in order as one branch of the fan-out.
type Step struct {
	// Name is the step's node name in the orchestration graph.
	Name string
	// Fn performs the step.
	Fn StepFunc
}

// Agent is a capability that produces one namespaced partial result
// from the shared context.
//
// Steps exposes the agent's internal pipeline for the graph-level
// fan-out; Run executes the whole pipeline and extracts the agent's
// payload. An error from Run is a failed task: the executor drops the
// agent's key from the output, it is not retried and not reported
// separately to the caller.
type Agent interface {
	// ID identifies the agent.
	ID() models.AgentID
	// Steps returns the agent's pipeline in execution order.
	Steps() []Step
	// Run executes the full pipeline against the shared context and
	// returns the agent's payload.
	Run(ctx context.Context, st *state.State) (map[string]any, error)
}

// runSteps executes a pipeline in order, merging each step's partial
// result into the shared context. The first step error aborts the
// pipeline and propagates.
func runSteps(ctx context.Context, st *state.State, steps []Step) error {
	for _, step := range steps {
		partial, err := step.Fn(ctx, st)
		if err != nil {
			return err
		}
		st.ApplyResults(partial)
	}
	return nil
}

// RegistryOption configures the agent set. Use With* functions to
// create RegistryOptions.
type RegistryOption func(*registryOptions)

type registryOptions struct {
	temps map[models.AgentID]float64
	llms  map[models.AgentID]Generator
}

// WithTemperature overrides the sampling temperature of an agent's
// synthesis step. Analysis steps always run at temperature 0.
func WithTemperature(id models.AgentID, t float64) RegistryOption {
	return func(o *registryOptions) { o.temps[id] = t }
}

// WithGenerator overrides the generation backend for one agent, for
// example to route it to a different model than its siblings.
func WithGenerator(id models.AgentID, llm Generator) RegistryOption {
	return func(o *registryOptions) { o.llms[id] = llm }
}

// Registry returns the full agent set keyed by ID.
func Registry(llm Generator, opts ...RegistryOption) map[models.AgentID]Agent {
	o := registryOptions{
		temps: map[models.AgentID]float64{},
		llms:  map[models.AgentID]Generator{},
	}
	for _, opt := range opts {
		opt(&o)
	}

	backend := func(id models.AgentID) Generator {
		if g, ok := o.llms[id]; ok {
			return g
		}
		return llm
	}

	planner := NewPlanner(backend(models.AgentPlanner))
	writer := NewNoteWriter(backend(models.AgentNoteWriter))
	advisor := NewAdvisor(backend(models.AgentAdvisor))

	if t, ok := o.temps[models.AgentPlanner]; ok {
		planner.temperature = t
	}
	if t, ok := o.temps[models.AgentNoteWriter]; ok {
		writer.temperature = t
	}
	if t, ok := o.temps[models.AgentAdvisor]; ok {
		advisor.temperature = t
	}

	return map[models.AgentID]Agent{
		models.AgentPlanner:    planner,
		models.AgentNoteWriter: writer,
		models.AgentAdvisor:    advisor,
	}
}
