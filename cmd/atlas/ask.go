package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/ShayCichocki/atlas/internal/config"
	"github.com/ShayCichocki/atlas/internal/workflow"
	"github.com/ShayCichocki/atlas/pkg/models"
)

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Ask a one-shot question",
	Long: `Ask Atlas a single question and print the answer.

The question is dispatched to whichever agents it needs: scheduling
questions reach the planner, note requests reach the notewriter, and
guidance questions reach the advisor.

Examples:
  atlas ask "plan my study week"
  atlas ask "make notes for my physics class"
  atlas ask --student student_456 "how do I prepare for finals?"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAsk,
}

func runAsk(cmd *cobra.Command, args []string) error {
	question := strings.Join(args, " ")

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	client, err := createClient(cfg)
	if err != nil {
		return fmt.Errorf("create API client: %w", err)
	}

	mgr := loadDataManager(cfg)
	st := newSessionState(mgr, resolveStudentID(cfg), []models.Message{
		{Role: models.RoleUser, Content: question},
	})

	engine := workflow.NewEngine(client, workflow.WithAgentOptions(agentOptions(client)...))
	resp := engine.Respond(context.Background(), st)

	printResponse(resp)
	return nil
}

// printResponse renders the agent outputs with colored section headings.
func printResponse(resp models.Response) {
	heading := color.New(color.FgCyan, color.Bold)

	printed := false
	sections := []struct {
		key   string
		title string
		field string
	}{
		{"planner", "Study Plan", "plan"},
		{"notewriter", "Notes", "notes"},
		{"advisor", "Guidance", "advice"},
	}

	for _, s := range sections {
		payload, ok := resp.Outputs[s.key].(map[string]any)
		if !ok {
			continue
		}
		text, ok := payload[s.field].(string)
		if !ok || text == "" {
			continue
		}
		if printed {
			fmt.Println()
		}
		heading.Println(s.title)
		fmt.Println(text)
		printed = true
	}

	if !printed {
		fmt.Println("No response generated.")
	}
}
