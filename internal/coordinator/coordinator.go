// Package coordinator implements the decision step that selects which
// agents run for a request and how they are grouped for concurrency.
package coordinator

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ShayCichocki/atlas/internal/state"
	"github.com/ShayCichocki/atlas/pkg/models"
)

// historyTurns is how many prior turns the coordinator summarizes.
const historyTurns = 6

// historyTruncate is the per-turn character cap in the history summary.
const historyTruncate = 300

// Generator is the generation backend capability the coordinator
// depends on. It must be safe to call from concurrent goroutines.
type Generator interface {
	Generate(ctx context.Context, msgs []models.Message, temperature float64) (string, error)
}

// Coordinator analyzes the request context and produces a dispatch
// plan. The generation backend is injected at construction; there is no
// process-wide binding.
type Coordinator struct {
	llm Generator
}

// New creates a Coordinator backed by the given generator.
func New(llm Generator) *Coordinator {
	return &Coordinator{llm: llm}
}

// Decide inspects the shared context and returns the dispatch plan for
// this request. Any failure (backend unavailable, malformed response,
// empty conversation) is recovered locally with the hard-coded fallback
// plan; Decide never surfaces an error to the caller.
func (c *Coordinator) Decide(ctx context.Context, st *state.State) models.Plan {
	last, ok := st.LastMessage()
	if !ok {
		return models.FallbackPlan("fallback")
	}

	summary := AnalyzeContext(st)
	contextJSON, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return models.FallbackPlan("fallback")
	}

	prompt := fmt.Sprintf(coordinatorPrompt, last.Content, string(contextJSON), historySummary(st.Messages()))

	response, err := c.llm.Generate(ctx, []models.Message{
		{Role: models.RoleSystem, Content: prompt},
	}, 0)
	if err != nil {
		return models.FallbackPlan("fallback")
	}

	return PlanFromRationale(response)
}

// AnalyzeProfile runs the profile analysis step, producing the
// results.profile_analysis namespace consumed by the planner.
func (c *Coordinator) AnalyzeProfile(ctx context.Context, st *state.State) (map[string]any, error) {
	profileJSON, err := json.Marshal(st.Profile())
	if err != nil {
		return nil, fmt.Errorf("marshal profile: %w", err)
	}

	response, err := c.llm.Generate(ctx, []models.Message{
		{Role: models.RoleSystem, Content: profileAnalyzerPrompt},
		{Role: models.RoleUser, Content: string(profileJSON)},
	}, 0)
	if err != nil {
		return nil, fmt.Errorf("analyze profile: %w", err)
	}

	return map[string]any{
		"profile_analysis": map[string]any{
			"analysis": response,
		},
	}, nil
}

// PlanResults converts a plan into the results.coordinator_analysis
// namespace written into shared state for downstream consumers.
func PlanResults(p models.Plan) map[string]any {
	required := make([]any, len(p.RequiredAgents))
	for i, a := range p.RequiredAgents {
		required[i] = string(a)
	}
	priority := make(map[string]any, len(p.Priority))
	for a, n := range p.Priority {
		priority[string(a)] = n
	}
	groups := make([]any, len(p.ConcurrentGroups))
	for i, group := range p.ConcurrentGroups {
		ids := make([]any, len(group))
		for j, a := range group {
			ids[j] = string(a)
		}
		groups[i] = ids
	}

	return map[string]any{
		"coordinator_analysis": map[string]any{
			"required_agents":   required,
			"priority":          priority,
			"concurrent_groups": groups,
			"reasoning":         p.Reasoning,
		},
	}
}

// historySummary renders the conversation before the current request as
// a bounded text block: the last few turns, each truncated.
func historySummary(msgs []models.Message) string {
	if len(msgs) <= 1 {
		return "No previous conversation"
	}

	prior := msgs[:len(msgs)-1]
	start := 0
	if len(prior) > historyTurns {
		start = len(prior) - historyTurns
	}

	summary := ""
	for _, m := range prior[start:] {
		label := "User"
		if m.Role == models.RoleAssistant {
			label = "Assistant"
		}
		if summary != "" {
			summary += "\n"
		}
		summary += label + ": " + m.Truncate(historyTruncate)
	}
	return summary
}
