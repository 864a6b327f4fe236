package main

import (
	"os"

	"github.com/spf13/cobra"
)

var rootStudentID string

var rootCmd = &cobra.Command{
	Use:   "atlas",
	Short: "Academic Task and Learning Agent System",
	Long: `Atlas coordinates a team of specialized agents to support students:
a planner for schedules and study plans, a notewriter for personalized
study materials, and an advisor for academic guidance.

With no arguments, launches interactive chat mode with a persistent TUI.

Core capabilities:
- Analyzes each request and dispatches only the agents it needs
- Runs agent pipelines concurrently and merges their results
- Personalizes output from the student profile, calendar, and tasks
- Persists conversations across sessions`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runInteractive()
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&rootStudentID, "student", "", "Student ID (overrides config)")

	rootCmd.AddCommand(askCmd)
	rootCmd.AddCommand(sessionsCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)
}
