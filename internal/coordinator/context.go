package coordinator

import (
	"strings"

	"github.com/ShayCichocki/atlas/internal/state"
)

// AnalyzeContext builds a bounded structural summary of the student's
// situation for the coordinator prompt: who the student is, whether the
// request names one of their current courses, and how loaded their
// calendar and task list are.
//
// Missing fields resolve to safe defaults; empty events/tasks lists are
// zero signal, never an error.
func AnalyzeContext(st *state.State) map[string]any {
	profile := st.Profile()
	calendar := st.Calendar()
	tasks := st.Tasks()

	request := ""
	if last, ok := st.LastMessage(); ok {
		request = strings.ToLower(last.Content)
	}

	// Match the request against the student's current courses by
	// substring.
	var currentCourse any
	for _, c := range nestedSlice(profile, "academic_info", "current_courses") {
		course, ok := c.(map[string]any)
		if !ok {
			continue
		}
		name, _ := course["name"].(string)
		if name != "" && strings.Contains(request, strings.ToLower(name)) {
			currentCourse = course
			break
		}
	}

	major := nestedValue(profile, "personal_info", "major")
	if major == nil {
		major = "Unknown"
	}

	return map[string]any{
		"student": map[string]any{
			"major":          major,
			"year":           nestedValue(profile, "personal_info", "academic_year"),
			"learning_style": nestedOrEmpty(profile, "learning_preferences", "learning_style"),
		},
		"course":          currentCourse,
		"upcoming_events": len(nestedSlice(calendar, "events")),
		"active_tasks":    len(nestedSlice(tasks, "tasks")),
		"study_patterns":  nestedOrEmpty(profile, "learning_preferences", "study_patterns"),
	}
}

// nestedValue walks a path of map keys and returns the value at the
// end, or nil if any hop is missing or not a map.
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

// nestedOrEmpty is nestedValue with a non-nil default for prompt
// rendering.
func nestedOrEmpty(m map[string]any, path ...string) any {
	if v := nestedValue(m, path...); v != nil {
		return v
	}
	return map[string]any{}
}

// nestedSlice walks a path and returns the slice at the end, or nil.
func nestedSlice(m map[string]any, path ...string) []any {
	v, _ := nestedValue(m, path...).([]any)
	return v
}
