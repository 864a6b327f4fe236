package agents

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ShayCichocki/atlas/internal/state"
	"github.com/ShayCichocki/atlas/pkg/models"
)

// NoteWriter creates personalized study materials. Its pipeline
// analyzes the student's learning style against the request, then
// generates structured notes.
type NoteWriter struct {
	llm         Generator
	temperature float64
}

// NewNoteWriter creates the notewriter agent.
func NewNoteWriter(llm Generator) *NoteWriter {
	return &NoteWriter{llm: llm}
}

// ID implements Agent.
func (n *NoteWriter) ID() models.AgentID {
	return models.AgentNoteWriter
}

// Steps implements Agent.
func (n *NoteWriter) Steps() []Step {
	return []Step{
		{Name: "notewriter_analyze", Fn: n.AnalyzeLearningStyle},
		{Name: "notewriter_generate", Fn: n.GenerateNotes},
	}
}

// AnalyzeLearningStyle determines the optimal note structure for the
// student and request. Writes results.learning_analysis.
func (n *NoteWriter) AnalyzeLearningStyle(ctx context.Context, st *state.State) (map[string]any, error) {
	styleJSON, err := json.MarshalIndent(learningStyle(st), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal learning style: %w", err)
	}

	prompt := fmt.Sprintf(noteAnalyzePrompt, string(styleJSON), currentRequest(st))

	response, err := n.llm.Generate(ctx, []models.Message{
		{Role: models.RoleSystem, Content: prompt},
	}, 0)
	if err != nil {
		return nil, fmt.Errorf("notewriter analyze: %w", err)
	}

	return map[string]any{
		"learning_analysis": map[string]any{
			"analysis": response,
		},
	}, nil
}

// GenerateNotes creates the study materials from the learning analysis
// and bounded conversation history. Writes results.generated_notes.
func (n *NoteWriter) GenerateNotes(ctx context.Context, st *state.State) (map[string]any, error) {
	styleJSON, err := json.MarshalIndent(learningStyle(st), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal learning style: %w", err)
	}
	examples, err := json.MarshalIndent(noteWriterFewShots, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal examples: %w", err)
	}

	prompt := fmt.Sprintf(noteGeneratePrompt,
		analysisText(st, "learning_analysis"),
		string(styleJSON),
		currentRequest(st),
		historyContext(st.Messages()),
		string(examples),
	)

	response, err := n.llm.Generate(ctx, []models.Message{
		{Role: models.RoleSystem, Content: prompt},
	}, n.temperature)
	if err != nil {
		return nil, fmt.Errorf("notewriter generate: %w", err)
	}

	return map[string]any{
		"generated_notes": map[string]any{
			"notes": response,
		},
	}, nil
}

// Run executes the full notewriter pipeline and returns the notes
// payload.
func (n *NoteWriter) Run(ctx context.Context, st *state.State) (map[string]any, error) {
	if err := runSteps(ctx, st, n.Steps()); err != nil {
		return nil, err
	}

	notes, _ := st.ResultMap("generated_notes")["notes"].(string)
	if notes == "" {
		notes = "No notes generated."
	}
	return map[string]any{"notes": notes}, nil
}
