package api

import (
	"sync"
	"testing"

	"github.com/anthropics/anthropic-sdk-go"

	"github.com/ShayCichocki/atlas/pkg/models"
)

func TestTokenTracker(t *testing.T) {
	tracker := NewTokenTracker()

	tracker.Add(100, 50)
	tracker.Add(200, 100)

	input, output := tracker.Total()
	if input != 300 {
		t.Errorf("expected 300 input tokens, got %d", input)
	}
	if output != 150 {
		t.Errorf("expected 150 output tokens, got %d", output)
	}
	if tracker.Calls() != 2 {
		t.Errorf("expected 2 calls, got %d", tracker.Calls())
	}

	tracker.Reset()
	input, output = tracker.Total()
	if input != 0 || output != 0 || tracker.Calls() != 0 {
		t.Error("expected tracker to be cleared after Reset")
	}
}

func TestTokenTrackerConcurrent(t *testing.T) {
	tracker := NewTokenTracker()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			tracker.Add(10, 5)
		}()
	}
	wg.Wait()

	input, output := tracker.Total()
	if input != 500 || output != 250 {
		t.Errorf("expected 500/250 tokens, got %d/%d", input, output)
	}
	if tracker.Calls() != 50 {
		t.Errorf("expected 50 calls, got %d", tracker.Calls())
	}
}

func TestTokenTrackerCost(t *testing.T) {
	tracker := NewTokenTracker()
	tracker.Add(1_000_000, 1_000_000)

	cost := tracker.Cost()
	if cost < 17.9 || cost > 18.1 {
		t.Errorf("expected cost near $18, got $%.2f", cost)
	}
}

func TestSplitMessagesRoles(t *testing.T) {
	msgs := []models.Message{
		{Role: models.RoleSystem, Content: "be helpful"},
		{Role: models.RoleUser, Content: "hi"},
		{Role: models.RoleAssistant, Content: "hello"},
		{Role: models.RoleUser, Content: "plan my week"},
	}

	system, turns := splitMessages(msgs)

	if len(system) != 1 || system[0].Text != "be helpful" {
		t.Errorf("unexpected system blocks: %v", system)
	}
	if len(turns) != 3 {
		t.Fatalf("expected 3 conversation turns, got %d", len(turns))
	}
}

func TestSplitMessagesSystemOnly(t *testing.T) {
	msgs := []models.Message{
		{Role: models.RoleSystem, Content: "analyze this profile"},
	}

	system, turns := splitMessages(msgs)

	if len(system) != 0 {
		t.Errorf("expected system blocks folded into user turn, got %v", system)
	}
	if len(turns) != 1 {
		t.Fatalf("expected 1 synthetic user turn, got %d", len(turns))
	}
}

func TestForAgent(t *testing.T) {
	parent := &Client{
		model:     anthropic.ModelClaudeSonnet4_20250514,
		maxTokens: 8192,
		tracker:   NewTokenTracker(),
	}

	derived := parent.ForAgent(anthropic.ModelClaude3_5Haiku20241022, 2048)
	if derived.Model() != anthropic.ModelClaude3_5Haiku20241022 {
		t.Errorf("derived model = %s", derived.Model())
	}
	if derived.maxTokens != 2048 {
		t.Errorf("derived maxTokens = %d", derived.maxTokens)
	}
	if parent.Model() != anthropic.ModelClaudeSonnet4_20250514 || parent.maxTokens != 8192 {
		t.Error("deriving must not mutate the parent client")
	}

	// Usage from either client lands in the one shared tracker.
	if derived.Tracker() != parent.Tracker() {
		t.Error("derived client must share the parent's token tracker")
	}
}

func TestForAgentZeroValuesKeepParent(t *testing.T) {
	parent := &Client{
		model:     anthropic.ModelClaudeSonnet4_20250514,
		maxTokens: 8192,
		tracker:   NewTokenTracker(),
	}

	derived := parent.ForAgent("", 0)
	if derived.Model() != parent.Model() || derived.maxTokens != parent.maxTokens {
		t.Errorf("derived = %s/%d, want parent settings", derived.Model(), derived.maxTokens)
	}
}

func TestForAgentTranslatesForBedrock(t *testing.T) {
	parent := &Client{
		model:     translateModelForBedrock(anthropic.ModelClaudeSonnet4_20250514),
		maxTokens: 8192,
		tracker:   NewTokenTracker(),
	}

	derived := parent.ForAgent(anthropic.ModelClaude3_5Haiku20241022, 0)
	if derived.Model() != "us.anthropic.claude-3-5-haiku-20241022-v1:0" {
		t.Errorf("derived model = %s, want bedrock inference profile", derived.Model())
	}
}

func TestTranslateModelForBedrock(t *testing.T) {
	got := translateModelForBedrock(anthropic.ModelClaudeSonnet4_20250514)
	if got != "us.anthropic.claude-sonnet-4-20250514-v1:0" {
		t.Errorf("unexpected bedrock model: %s", got)
	}

	custom := anthropic.Model("us.anthropic.custom-v1:0")
	if translateModelForBedrock(custom) != custom {
		t.Error("unknown models should pass through unchanged")
	}
}
