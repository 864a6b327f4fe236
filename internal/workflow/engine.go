package workflow

import (
	"context"
	"sync"

	"github.com/ShayCichocki/atlas/internal/agents"
	"github.com/ShayCichocki/atlas/internal/coordinator"
	"github.com/ShayCichocki/atlas/internal/executor"
	"github.com/ShayCichocki/atlas/internal/router"
	"github.com/ShayCichocki/atlas/internal/state"
	"github.com/ShayCichocki/atlas/pkg/models"
)

// Generator produces model completions for the coordinator and agents.
type Generator interface {
	Generate(ctx context.Context, msgs []models.Message, temperature float64) (string, error)
}

// Engine processes one user request end to end: coordinator decision,
// routed agent pipelines, grouped execution, and response assembly.
// All intermediate results accumulate in the shared State.
type Engine struct {
	coord    *coordinator.Coordinator
	registry map[models.AgentID]agents.Agent
	exec     *executor.Executor
	logger   *DebugLogger
	emitter  *EventEmitter
}

// Option configures an Engine. Use With* functions to create Options.
type Option func(*engineOptions)

type engineOptions struct {
	logger    *DebugLogger
	emitter   *EventEmitter
	agentOpts []agents.RegistryOption

	// Injectable dependency for testing.
	registry map[models.AgentID]agents.Agent
}

// WithLogger sets the debug logger.
func WithLogger(l *DebugLogger) Option {
	return func(o *engineOptions) { o.logger = l }
}

// WithEmitter sets the event emitter used to publish progress events.
func WithEmitter(e *EventEmitter) Option {
	return func(o *engineOptions) { o.emitter = e }
}

// WithAgentOptions forwards options to the default agent registry.
func WithAgentOptions(opts ...agents.RegistryOption) Option {
	return func(o *engineOptions) { o.agentOpts = opts }
}

// WithRegistry overrides the default agent registry.
func WithRegistry(r map[models.AgentID]agents.Agent) Option {
	return func(o *engineOptions) { o.registry = r }
}

// NewEngine creates an Engine backed by the given generator.
func NewEngine(llm Generator, opts ...Option) *Engine {
	var o engineOptions
	for _, opt := range opts {
		opt(&o)
	}

	registry := o.registry
	if registry == nil {
		registry = agents.Registry(llm, o.agentOpts...)
	}

	exec := executor.New(registry)
	if o.logger != nil {
		exec.Logf = o.logger.Log
	}

	return &Engine{
		coord:    coordinator.New(llm),
		registry: registry,
		exec:     exec,
		logger:   o.logger,
		emitter:  o.emitter,
	}
}

func (e *Engine) log(format string, args ...any) {
	e.logger.Log(format, args...)
}

func (e *Engine) emit(ev Event) {
	if e.emitter != nil {
		e.emitter.Emit(ev)
	}
}

// Respond processes the latest user message in the shared context and
// returns the assembled response. Failures along the way degrade rather
// than abort: a failed profile analysis or pipeline branch is logged
// and skipped, and the execution pass has its own fallbacks, so a
// response is always produced.
func (e *Engine) Respond(ctx context.Context, st *state.State) models.Response {
	plan := e.coord.Decide(ctx, st)
	e.log("[workflow] plan: agents=%v groups=%v", plan.RequiredAgents, plan.ConcurrentGroups)
	e.emit(Event{Type: EventPlanDecided, Message: plan.Reasoning})

	st.ApplyResults(coordinator.PlanResults(plan))

	if results, err := e.coord.AnalyzeProfile(ctx, st); err != nil {
		e.log("[workflow] profile analysis failed: %v", err)
	} else {
		st.ApplyResults(results)
		e.emit(Event{Type: EventProfileAnalyzed})
	}

	e.runBranches(ctx, plan, st)

	e.emit(Event{Type: EventExecutionStarted})
	st.ApplyResults(e.exec.Execute(ctx, plan, st))
	e.emit(Event{Type: EventExecutionCompleted})

	resp := models.Response{
		Agents:  plan.RequiredAgents,
		Outputs: st.ResultMap("agent_outputs"),
	}
	e.emit(Event{Type: EventResponseReady})
	return resp
}

// runBranches fans the request out to every routed pipeline entry point
// and waits for all branches to finish. Branch failures are not fatal:
// the branch's partial results are simply absent from the context.
func (e *Engine) runBranches(ctx context.Context, plan models.Plan, st *state.State) {
	entries := router.Route(plan)

	var wg sync.WaitGroup
	for _, entry := range entries {
		agent, ok := e.registry[entry.Agent()]
		if !ok {
			e.log("[workflow] no agent for entry point %s, skipping", entry)
			continue
		}

		wg.Add(1)
		go func(entry router.EntryPoint, agent agents.Agent) {
			defer wg.Done()
			e.emit(Event{Type: EventBranchStarted, Agent: agent.ID(), Entry: entry})
			if _, err := agent.Run(ctx, st); err != nil {
				e.log("[workflow] branch %s failed: %v", entry, err)
				e.emit(Event{Type: EventBranchFailed, Agent: agent.ID(), Entry: entry, Error: err})
				return
			}
			e.emit(Event{Type: EventBranchCompleted, Agent: agent.ID(), Entry: entry})
		}(entry, agent)
	}
	wg.Wait()
}
