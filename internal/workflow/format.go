package workflow

import (
	"strings"

	"github.com/ShayCichocki/atlas/pkg/models"
)

// section maps an agent output entry to a rendered heading and the
// payload key holding its text.
type section struct {
	key     string
	heading string
	field   string
}

// sections are rendered in this fixed order regardless of which agents
// actually produced output.
var sections = []section{
	{key: "planner", heading: "Study Plan", field: "plan"},
	{key: "notewriter", heading: "Notes", field: "notes"},
	{key: "advisor", heading: "Guidance", field: "advice"},
}

// Summarize renders a response's agent outputs as display text, one
// headed section per agent that produced output.
func Summarize(resp models.Response) string {
	var b strings.Builder
	for _, s := range sections {
		payload, ok := resp.Outputs[s.key].(map[string]any)
		if !ok {
			continue
		}
		text, ok := payload[s.field].(string)
		if !ok || text == "" {
			continue
		}
		if b.Len() > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(s.heading)
		b.WriteString(":\n")
		b.WriteString(text)
	}
	if b.Len() == 0 {
		return "No response generated."
	}
	return b.String()
}
