package agents

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/ShayCichocki/atlas/internal/state"
	"github.com/ShayCichocki/atlas/pkg/models"
)

// calendarWindow is how far ahead the calendar analyzer looks.
const calendarWindow = 7 * 24 * time.Hour

// planTemperature loosens sampling for the final plan synthesis.
const planTemperature = 0.5

// Planner handles scheduling and time management. Its pipeline analyzes
// the calendar, then the task list, then synthesizes a study plan from
// those analyses plus the profile analysis and recent conversation.
type Planner struct {
	llm         Generator
	temperature float64
}

// NewPlanner creates the planner agent.
func NewPlanner(llm Generator) *Planner {
	return &Planner{llm: llm, temperature: planTemperature}
}

// ID implements Agent.
func (p *Planner) ID() models.AgentID {
	return models.AgentPlanner
}

// Steps implements Agent.
func (p *Planner) Steps() []Step {
	return []Step{
		{Name: "calendar_analyzer", Fn: p.CalendarAnalyzer},
		{Name: "task_analyzer", Fn: p.TaskAnalyzer},
		{Name: "plan_generator", Fn: p.PlanGenerator},
	}
}

// CalendarAnalyzer analyzes the next week of calendar events for
// available time blocks and conflicts. Writes
// results.calendar_analysis.
func (p *Planner) CalendarAnalyzer(ctx context.Context, st *state.State) (map[string]any, error) {
	events := upcomingEvents(st, calendarWindow)
	eventsJSON, err := json.Marshal(events)
	if err != nil {
		return nil, fmt.Errorf("marshal events: %w", err)
	}

	response, err := p.llm.Generate(ctx, []models.Message{
		{Role: models.RoleSystem, Content: calendarAnalyzerPrompt},
		{Role: models.RoleUser, Content: string(eventsJSON)},
	}, 0)
	if err != nil {
		return nil, fmt.Errorf("calendar analyzer: %w", err)
	}

	return map[string]any{
		"calendar_analysis": map[string]any{
			"analysis": response,
		},
	}, nil
}

// TaskAnalyzer prioritizes the active task list. Writes
// results.task_analysis.
func (p *Planner) TaskAnalyzer(ctx context.Context, st *state.State) (map[string]any, error) {
	tasksJSON, err := json.Marshal(activeTasks(st))
	if err != nil {
		return nil, fmt.Errorf("marshal tasks: %w", err)
	}

	response, err := p.llm.Generate(ctx, []models.Message{
		{Role: models.RoleSystem, Content: taskAnalyzerPrompt},
		{Role: models.RoleUser, Content: string(tasksJSON)},
	}, 0)
	if err != nil {
		return nil, fmt.Errorf("task analyzer: %w", err)
	}

	return map[string]any{
		"task_analysis": map[string]any{
			"analysis": response,
		},
	}, nil
}

// PlanGenerator synthesizes the final study plan from the accumulated
// analyses and bounded conversation history. Writes results.final_plan.
func (p *Planner) PlanGenerator(ctx context.Context, st *state.State) (map[string]any, error) {
	examples, err := json.MarshalIndent(plannerFewShots, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal examples: %w", err)
	}

	prompt := fmt.Sprintf(planGeneratorPrompt,
		analysisText(st, "profile_analysis"),
		analysisText(st, "calendar_analysis"),
		analysisText(st, "task_analysis"),
		historyContext(st.Messages()),
		string(examples),
	)

	response, err := p.llm.Generate(ctx, []models.Message{
		{Role: models.RoleSystem, Content: prompt},
		{Role: models.RoleUser, Content: currentRequest(st)},
	}, p.temperature)
	if err != nil {
		return nil, fmt.Errorf("plan generator: %w", err)
	}

	return map[string]any{
		"final_plan": map[string]any{
			"plan": response,
		},
	}, nil
}

// Run executes the full planner pipeline and returns the plan payload.
func (p *Planner) Run(ctx context.Context, st *state.State) (map[string]any, error) {
	if err := runSteps(ctx, st, p.Steps()); err != nil {
		return nil, err
	}

	plan, _ := st.ResultMap("final_plan")["plan"].(string)
	if plan == "" {
		plan = "No plan generated."
	}
	return map[string]any{"plan": plan}, nil
}
