package coordinator

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/ShayCichocki/atlas/internal/state"
	"github.com/ShayCichocki/atlas/pkg/models"
)

// fakeGenerator returns a canned response or error and records prompts.
type fakeGenerator struct {
	response string
	err      error
	prompts  []string
}

func (f *fakeGenerator) Generate(_ context.Context, msgs []models.Message, _ float64) (string, error) {
	var all strings.Builder
	for _, m := range msgs {
		all.WriteString(m.Content)
		all.WriteString("\n")
	}
	f.prompts = append(f.prompts, all.String())
	return f.response, f.err
}

func testProfile() map[string]any {
	return map[string]any{
		"personal_info": map[string]any{
			"major":         "Computer Science",
			"academic_year": "Sophomore",
		},
		"learning_preferences": map[string]any{
			"learning_style": "visual",
			"study_patterns": map[string]any{"peak_hours": "morning"},
		},
		"academic_info": map[string]any{
			"current_courses": []any{
				map[string]any{"name": "Calculus III"},
				map[string]any{"name": "Operating Systems"},
			},
		},
	}
}

func testState(request string) *state.State {
	return state.New(
		[]models.Message{{Role: models.RoleUser, Content: request}},
		testProfile(),
		map[string]any{"events": []any{map[string]any{"summary": "Lab"}}},
		map[string]any{"tasks": []any{map[string]any{"title": "Problem set"}}},
	)
}

func TestDecideBaselinePlan(t *testing.T) {
	gen := &fakeGenerator{response: "Thought: scheduling only\nDecision: planner"}
	coord := New(gen)

	plan := coord.Decide(context.Background(), testState("Create a study schedule for this week"))

	if len(plan.RequiredAgents) != 1 || plan.RequiredAgents[0] != models.AgentPlanner {
		t.Errorf("expected baseline plan, got %v", plan.RequiredAgents)
	}
	if len(gen.prompts) != 1 {
		t.Fatalf("expected one generation call, got %d", len(gen.prompts))
	}
	if !strings.Contains(gen.prompts[0], "Create a study schedule for this week") {
		t.Error("expected the request to appear in the coordinator prompt")
	}
	if !strings.Contains(gen.prompts[0], "Computer Science") {
		t.Error("expected the context summary to appear in the coordinator prompt")
	}
}

func TestDecideBackendFailureFallsBack(t *testing.T) {
	gen := &fakeGenerator{err: errors.New("backend unavailable")}
	coord := New(gen)

	plan := coord.Decide(context.Background(), testState("help"))

	if plan.Reasoning != "fallback" {
		t.Errorf("expected fallback reasoning, got %q", plan.Reasoning)
	}
	if len(plan.RequiredAgents) != 1 || plan.RequiredAgents[0] != models.AgentPlanner {
		t.Errorf("expected fallback plan, got %v", plan.RequiredAgents)
	}
}

func TestDecideEmptyConversationFallsBack(t *testing.T) {
	gen := &fakeGenerator{response: "irrelevant"}
	coord := New(gen)

	plan := coord.Decide(context.Background(), state.New(nil, nil, nil, nil))

	if plan.Reasoning != "fallback" {
		t.Errorf("expected fallback plan on empty conversation, got %q", plan.Reasoning)
	}
	if len(gen.prompts) != 0 {
		t.Error("expected no generation call without a request")
	}
}

func TestAnalyzeProfile(t *testing.T) {
	gen := &fakeGenerator{response: "Thought: visual learner"}
	coord := New(gen)

	results, err := coord.AnalyzeProfile(context.Background(), testState("anything"))
	if err != nil {
		t.Fatalf("analyze profile: %v", err)
	}

	analysis, ok := results["profile_analysis"].(map[string]any)
	if !ok {
		t.Fatalf("expected profile_analysis namespace, got %v", results)
	}
	if analysis["analysis"] != "Thought: visual learner" {
		t.Errorf("unexpected analysis payload: %v", analysis)
	}
	if !strings.Contains(gen.prompts[0], "Computer Science") {
		t.Error("expected profile JSON in prompt")
	}
}

func TestAnalyzeProfileBackendError(t *testing.T) {
	gen := &fakeGenerator{err: errors.New("boom")}
	coord := New(gen)

	if _, err := coord.AnalyzeProfile(context.Background(), testState("x")); err == nil {
		t.Fatal("expected error from failed profile analysis")
	}
}

func TestAnalyzeContextCourseMatch(t *testing.T) {
	st := testState("I need help preparing for calculus iii next week")

	summary := AnalyzeContext(st)

	course, ok := summary["course"].(map[string]any)
	if !ok {
		t.Fatalf("expected matched course, got %v", summary["course"])
	}
	if course["name"] != "Calculus III" {
		t.Errorf("expected Calculus III match, got %v", course["name"])
	}
}

func TestAnalyzeContextCounts(t *testing.T) {
	st := testState("anything")

	summary := AnalyzeContext(st)

	if summary["upcoming_events"] != 1 {
		t.Errorf("expected 1 upcoming event, got %v", summary["upcoming_events"])
	}
	if summary["active_tasks"] != 1 {
		t.Errorf("expected 1 active task, got %v", summary["active_tasks"])
	}

	student, _ := summary["student"].(map[string]any)
	if student["major"] != "Computer Science" {
		t.Errorf("unexpected major: %v", student["major"])
	}
	if student["learning_style"] != "visual" {
		t.Errorf("unexpected learning style: %v", student["learning_style"])
	}
}

func TestAnalyzeContextEmptyState(t *testing.T) {
	st := state.New([]models.Message{{Role: models.RoleUser, Content: "hi"}}, nil, nil, nil)

	summary := AnalyzeContext(st)

	if summary["upcoming_events"] != 0 || summary["active_tasks"] != 0 {
		t.Errorf("expected zero counts for empty data, got %v", summary)
	}
	student, _ := summary["student"].(map[string]any)
	if student["major"] != "Unknown" {
		t.Errorf("expected Unknown major default, got %v", student["major"])
	}
	if summary["course"] != nil {
		t.Errorf("expected no course match, got %v", summary["course"])
	}
}

func TestHistorySummaryBounds(t *testing.T) {
	long := strings.Repeat("x", 400)
	msgs := []models.Message{
		{Role: models.RoleUser, Content: "turn 1"},
		{Role: models.RoleAssistant, Content: long},
		{Role: models.RoleUser, Content: "turn 3"},
		{Role: models.RoleUser, Content: "current request"},
	}

	summary := historySummary(msgs)

	if strings.Contains(summary, "current request") {
		t.Error("summary must exclude the current request")
	}
	if !strings.Contains(summary, "turn 1") || !strings.Contains(summary, "turn 3") {
		t.Errorf("summary missing turns: %q", summary)
	}
	if !strings.Contains(summary, "...") {
		t.Error("expected long turn to be truncated with ellipsis")
	}
	if strings.Contains(summary, long) {
		t.Error("expected 400-char turn to be cut to 300")
	}
}

func TestHistorySummaryEmpty(t *testing.T) {
	msgs := []models.Message{{Role: models.RoleUser, Content: "only request"}}
	if got := historySummary(msgs); got != "No previous conversation" {
		t.Errorf("unexpected empty-history summary: %q", got)
	}
}
