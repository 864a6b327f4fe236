package agents

import (
	"time"

	"github.com/ShayCichocki/atlas/internal/data"
	"github.com/ShayCichocki/atlas/internal/state"
	"github.com/ShayCichocki/atlas/pkg/models"
)

// pipelineHistoryTurns bounds the conversation excerpt agents feed
// into their synthesis prompts.
const pipelineHistoryTurns = 4

// pipelineHistoryTruncate is the per-turn character cap in that
// excerpt.
const pipelineHistoryTruncate = 400

// upcomingEvents returns calendar events starting within the given
// window from now. Events with missing or unparsable start times are
// skipped.
func upcomingEvents(st *state.State, window time.Duration) []any {
	events := nestedSlice(st.Calendar(), "events")
	now := time.Now().UTC()
	horizon := now.Add(window)

	var upcoming []any
	for _, e := range events {
		event, ok := e.(map[string]any)
		if !ok {
			continue
		}
		startRaw, _ := nestedString(event, "start", "dateTime")
		start, err := data.ParseTime(startRaw)
		if err != nil {
			continue
		}
		if !start.Before(now) && !start.After(horizon) {
			upcoming = append(upcoming, event)
		}
	}
	return upcoming
}

// activeTasks returns the task list as supplied by the collaborator,
// which pre-filters to active items.
func activeTasks(st *state.State) []any {
	return nestedSlice(st.Tasks(), "tasks")
}

// learningStyle returns the student's learning style value, or nil.
func learningStyle(st *state.State) any {
	return nestedValue(st.Profile(), "learning_preferences", "learning_style")
}

// historyContext renders the conversation before the current request as
// a bounded excerpt for synthesis prompts.
func historyContext(msgs []models.Message) string {
	if len(msgs) <= 1 {
		return "This is the start of the conversation."
	}

	prior := msgs[:len(msgs)-1]
	start := 0
	if len(prior) > pipelineHistoryTurns {
		start = len(prior) - pipelineHistoryTurns
	}

	excerpt := ""
	for _, m := range prior[start:] {
		label := "User"
		if m.Role == models.RoleAssistant {
			label = "Assistant"
		}
		if excerpt != "" {
			excerpt += "\n"
		}
		excerpt += label + ": " + m.Truncate(pipelineHistoryTruncate)
	}
	return excerpt
}

// currentRequest returns the latest conversation turn's content.
func currentRequest(st *state.State) string {
	last, _ := st.LastMessage()
	return last.Content
}

// analysisText pulls the "analysis" field out of a results namespace.
func analysisText(st *state.State, namespace string) string {
	s, _ := st.ResultMap(namespace)["analysis"].(string)
	return s
}

// nestedValue walks a path of map keys, returning nil when a hop is
// missing or not a map.
func nestedValue(m map[string]any, path ...string) any {
	var current any = m
	for _, key := range path {
		asMap, ok := current.(map[string]any)
		if !ok {
			return nil
		}
		current = asMap[key]
	}
	return current
}

// nestedSlice walks a path and returns the slice at the end, or nil.
func nestedSlice(m map[string]any, path ...string) []any {
	v, _ := nestedValue(m, path...).([]any)
	return v
}

// nestedString walks a path and returns the string at the end.
func nestedString(m map[string]any, path ...string) (string, bool) {
	v, ok := nestedValue(m, path...).(string)
	return v, ok
}
