package agents

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ShayCichocki/atlas/internal/state"
	"github.com/ShayCichocki/atlas/pkg/models"
)

// Advisor provides personalized academic guidance. Its pipeline
// analyzes the student's situation, then generates tailored advice.
type Advisor struct {
	llm         Generator
	temperature float64
}

// NewAdvisor creates the advisor agent.
func NewAdvisor(llm Generator) *Advisor {
	return &Advisor{llm: llm}
}

// ID implements Agent.
func (a *Advisor) ID() models.AgentID {
	return models.AgentAdvisor
}

// Steps implements Agent.
func (a *Advisor) Steps() []Step {
	return []Step{
		{Name: "advisor_analyze", Fn: a.AnalyzeSituation},
		{Name: "advisor_generate", Fn: a.GenerateGuidance},
	}
}

// AnalyzeSituation evaluates the student's current challenges and
// constraints. Writes results.situation_analysis.
func (a *Advisor) AnalyzeSituation(ctx context.Context, st *state.State) (map[string]any, error) {
	profileJSON, err := json.MarshalIndent(st.Profile(), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal profile: %w", err)
	}
	prefsJSON, err := json.MarshalIndent(nestedValue(st.Profile(), "learning_preferences"), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal learning preferences: %w", err)
	}

	prompt := fmt.Sprintf(advisorAnalyzePrompt, string(profileJSON), string(prefsJSON), currentRequest(st))

	response, err := a.llm.Generate(ctx, []models.Message{
		{Role: models.RoleSystem, Content: prompt},
	}, 0)
	if err != nil {
		return nil, fmt.Errorf("advisor analyze: %w", err)
	}

	return map[string]any{
		"situation_analysis": map[string]any{
			"analysis": response,
		},
	}, nil
}

// GenerateGuidance produces the final advice from the situation
// analysis and bounded conversation history. Writes results.guidance.
func (a *Advisor) GenerateGuidance(ctx context.Context, st *state.State) (map[string]any, error) {
	examples, err := json.MarshalIndent(advisorFewShots, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal examples: %w", err)
	}

	prompt := fmt.Sprintf(advisorGuidancePrompt,
		analysisText(st, "situation_analysis"),
		currentRequest(st),
		historyContext(st.Messages()),
		string(examples),
	)

	response, err := a.llm.Generate(ctx, []models.Message{
		{Role: models.RoleSystem, Content: prompt},
	}, a.temperature)
	if err != nil {
		return nil, fmt.Errorf("advisor generate: %w", err)
	}

	return map[string]any{
		"guidance": map[string]any{
			"advice": response,
		},
	}, nil
}

// Run executes the full advisor pipeline and returns the advice
// payload.
func (a *Advisor) Run(ctx context.Context, st *state.State) (map[string]any, error) {
	if err := runSteps(ctx, st, a.Steps()); err != nil {
		return nil, err
	}

	advice, _ := st.ResultMap("guidance")["advice"].(string)
	if advice == "" {
		advice = "No guidance generated."
	}
	return map[string]any{"advice": advice}, nil
}
