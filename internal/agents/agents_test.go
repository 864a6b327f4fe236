package agents

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/ShayCichocki/atlas/internal/state"
	"github.com/ShayCichocki/atlas/pkg/models"
)

// scriptedGenerator answers each call with the next scripted response
// and records the prompts it saw.
type scriptedGenerator struct {
	responses []string
	err       error
	calls     int
	prompts   []string
	temps     []float64
}

func (s *scriptedGenerator) Generate(_ context.Context, msgs []models.Message, temperature float64) (string, error) {
	var all strings.Builder
	for _, m := range msgs {
		all.WriteString(m.Content)
		all.WriteString("\n")
	}
	s.prompts = append(s.prompts, all.String())
	s.temps = append(s.temps, temperature)
	if s.err != nil {
		return "", s.err
	}
	if s.calls >= len(s.responses) {
		return "default response", nil
	}
	resp := s.responses[s.calls]
	s.calls++
	return resp, nil
}

func plannerState() *state.State {
	soon := time.Now().UTC().Add(48 * time.Hour).Format(time.RFC3339)
	return state.New(
		[]models.Message{{Role: models.RoleUser, Content: "Create a study schedule for this week"}},
		map[string]any{
			"learning_preferences": map[string]any{
				"learning_style": "visual",
			},
		},
		map[string]any{"events": []any{
			map[string]any{"summary": "Lab", "start": map[string]any{"dateTime": soon}},
		}},
		map[string]any{"tasks": []any{
			map[string]any{"title": "Essay", "status": "needsAction"},
		}},
	)
}

func TestPlannerRunWritesNamespacesAndPayload(t *testing.T) {
	gen := &scriptedGenerator{responses: []string{
		"calendar looks open",
		"essay first",
		"here is your plan",
	}}
	planner := NewPlanner(gen)
	st := plannerState()

	payload, err := planner.Run(context.Background(), st)
	if err != nil {
		t.Fatalf("planner run: %v", err)
	}

	if payload["plan"] != "here is your plan" {
		t.Errorf("unexpected payload: %v", payload)
	}
	if got := st.ResultMap("calendar_analysis")["analysis"]; got != "calendar looks open" {
		t.Errorf("calendar_analysis namespace = %v", got)
	}
	if got := st.ResultMap("task_analysis")["analysis"]; got != "essay first" {
		t.Errorf("task_analysis namespace = %v", got)
	}
	if got := st.ResultMap("final_plan")["plan"]; got != "here is your plan" {
		t.Errorf("final_plan namespace = %v", got)
	}

	// The final synthesis runs at raised temperature; the analyses use
	// the model default.
	if len(gen.temps) != 3 {
		t.Fatalf("expected 3 generation calls, got %d", len(gen.temps))
	}
	if gen.temps[0] != 0 || gen.temps[1] != 0 {
		t.Errorf("analysis steps should use default temperature, got %v", gen.temps)
	}
	if gen.temps[2] != planTemperature {
		t.Errorf("plan generator temperature = %v, want %v", gen.temps[2], planTemperature)
	}
}

func TestPlannerStepFailurePropagates(t *testing.T) {
	gen := &scriptedGenerator{err: errors.New("backend down")}
	planner := NewPlanner(gen)

	if _, err := planner.Run(context.Background(), plannerState()); err == nil {
		t.Fatal("expected pipeline failure to propagate from Run")
	}
}

func TestPlannerSteps(t *testing.T) {
	planner := NewPlanner(&scriptedGenerator{})
	steps := planner.Steps()

	wantNames := []string{"calendar_analyzer", "task_analyzer", "plan_generator"}
	if len(steps) != len(wantNames) {
		t.Fatalf("expected %d steps, got %d", len(wantNames), len(steps))
	}
	for i, name := range wantNames {
		if steps[i].Name != name {
			t.Errorf("step %d = %q, want %q", i, steps[i].Name, name)
		}
	}
}

func TestNoteWriterRun(t *testing.T) {
	gen := &scriptedGenerator{responses: []string{
		"visual learner, diagram heavy",
		"THREE-WEEK INTENSIVE STUDY PLANNER",
	}}
	writer := NewNoteWriter(gen)
	st := plannerState()

	payload, err := writer.Run(context.Background(), st)
	if err != nil {
		t.Fatalf("notewriter run: %v", err)
	}

	if payload["notes"] != "THREE-WEEK INTENSIVE STUDY PLANNER" {
		t.Errorf("unexpected payload: %v", payload)
	}
	if got := st.ResultMap("learning_analysis")["analysis"]; got != "visual learner, diagram heavy" {
		t.Errorf("learning_analysis namespace = %v", got)
	}
	// The generate step sees the analysis produced by the first step.
	if !strings.Contains(gen.prompts[1], "visual learner, diagram heavy") {
		t.Error("expected generate prompt to include the learning analysis")
	}
}

func TestAdvisorRun(t *testing.T) {
	gen := &scriptedGenerator{responses: []string{
		"student is stretched thin",
		"1. IMMEDIATE ACTION STEPS",
	}}
	advisor := NewAdvisor(gen)
	st := plannerState()

	payload, err := advisor.Run(context.Background(), st)
	if err != nil {
		t.Fatalf("advisor run: %v", err)
	}

	if payload["advice"] != "1. IMMEDIATE ACTION STEPS" {
		t.Errorf("unexpected payload: %v", payload)
	}
	if got := st.ResultMap("situation_analysis")["analysis"]; got != "student is stretched thin" {
		t.Errorf("situation_analysis namespace = %v", got)
	}
	if got := st.ResultMap("guidance")["advice"]; got != "1. IMMEDIATE ACTION STEPS" {
		t.Errorf("guidance namespace = %v", got)
	}
}

func TestRegistryCoversAllAgents(t *testing.T) {
	reg := Registry(&scriptedGenerator{})

	for _, id := range []models.AgentID{models.AgentPlanner, models.AgentNoteWriter, models.AgentAdvisor} {
		agent, ok := reg[id]
		if !ok {
			t.Errorf("registry missing %s", id)
			continue
		}
		if agent.ID() != id {
			t.Errorf("registry key %s maps to agent %s", id, agent.ID())
		}
	}
}

func TestRegistryWithGenerator(t *testing.T) {
	base := &scriptedGenerator{err: errors.New("base backend must not be used")}
	override := &scriptedGenerator{}

	reg := Registry(base, WithGenerator(models.AgentPlanner, override))

	if _, err := reg[models.AgentPlanner].Run(context.Background(), plannerState()); err != nil {
		t.Fatalf("planner with overridden backend: %v", err)
	}
	if len(override.prompts) == 0 {
		t.Error("planner never called its overridden backend")
	}
	if len(base.prompts) != 0 {
		t.Errorf("planner reached the shared backend %d times", len(base.prompts))
	}

	// Agents without an override keep the shared backend.
	if _, err := reg[models.AgentAdvisor].Run(context.Background(), plannerState()); err == nil {
		t.Error("advisor should still generate through the shared backend")
	}
}

func TestUpcomingEventsFiltersWindow(t *testing.T) {
	soon := time.Now().UTC().Add(24 * time.Hour).Format(time.RFC3339)
	far := time.Now().UTC().Add(30 * 24 * time.Hour).Format(time.RFC3339)
	past := time.Now().UTC().Add(-24 * time.Hour).Format(time.RFC3339)

	st := state.New(nil, nil, map[string]any{"events": []any{
		map[string]any{"summary": "soon", "start": map[string]any{"dateTime": soon}},
		map[string]any{"summary": "far", "start": map[string]any{"dateTime": far}},
		map[string]any{"summary": "past", "start": map[string]any{"dateTime": past}},
		map[string]any{"summary": "broken"},
	}}, nil)

	events := upcomingEvents(st, calendarWindow)
	if len(events) != 1 {
		t.Fatalf("expected 1 event in window, got %d", len(events))
	}
	if events[0].(map[string]any)["summary"] != "soon" {
		t.Errorf("wrong event selected: %v", events[0])
	}
}

func TestHistoryContextBounds(t *testing.T) {
	var msgs []models.Message
	for i := 0; i < 8; i++ {
		msgs = append(msgs, models.Message{Role: models.RoleUser, Content: fmt.Sprintf("turn %d", i)})
	}
	msgs = append(msgs, models.Message{Role: models.RoleUser, Content: "current"})

	got := historyContext(msgs)

	if strings.Contains(got, "current") {
		t.Error("history must exclude the current request")
	}
	if strings.Contains(got, "turn 3") {
		t.Error("expected only the last 4 prior turns")
	}
	if !strings.Contains(got, "turn 7") {
		t.Errorf("expected most recent prior turns, got %q", got)
	}
}

func TestHistoryContextStartOfConversation(t *testing.T) {
	msgs := []models.Message{{Role: models.RoleUser, Content: "first"}}
	if got := historyContext(msgs); got != "This is the start of the conversation." {
		t.Errorf("unexpected start-of-conversation marker: %q", got)
	}
}
