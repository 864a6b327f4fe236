package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/ShayCichocki/atlas/internal/config"
	"github.com/ShayCichocki/atlas/internal/state"
	"github.com/ShayCichocki/atlas/pkg/models"
)

var sessionsCmd = &cobra.Command{
	Use:   "sessions",
	Short: "Manage conversation sessions",
	Long: `List, inspect, and archive stored conversation sessions.

Sessions are stored in the global Atlas database.`,
	RunE: runSessionsList,
}

var sessionsShowCmd = &cobra.Command{
	Use:   "show <session-id>",
	Short: "Print a session transcript",
	Args:  cobra.ExactArgs(1),
	RunE:  runSessionsShow,
}

var sessionsArchiveCmd = &cobra.Command{
	Use:   "archive <session-id>",
	Short: "Archive a session",
	Args:  cobra.ExactArgs(1),
	RunE:  runSessionsArchive,
}

func init() {
	sessionsCmd.AddCommand(sessionsShowCmd)
	sessionsCmd.AddCommand(sessionsArchiveCmd)
}

func openSessionDB() (*state.DB, error) {
	db, err := state.OpenGlobal()
	if err != nil {
		return nil, fmt.Errorf("open session database: %w", err)
	}
	if err := db.Migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate database: %w", err)
	}
	return db, nil
}

func runSessionsList(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	db, err := openSessionDB()
	if err != nil {
		return err
	}
	defer db.Close()

	sessions, err := db.ListSessions(resolveStudentID(cfg))
	if err != nil {
		return err
	}

	if len(sessions) == 0 {
		fmt.Println("No sessions found.")
		return nil
	}

	for _, s := range sessions {
		status := string(s.Status)
		if s.Status == state.SessionArchived {
			status = color.New(color.Faint).Sprint(status)
		}
		fmt.Printf("%s  %s  %s\n", s.ID, s.StartedAt.Format("2006-01-02 15:04"), status)
	}
	return nil
}

func runSessionsShow(cmd *cobra.Command, args []string) error {
	db, err := openSessionDB()
	if err != nil {
		return err
	}
	defer db.Close()

	session, err := db.GetSession(args[0])
	if err != nil {
		return err
	}
	if session == nil {
		return fmt.Errorf("session %s not found", args[0])
	}

	messages, err := db.SessionMessages(session.ID)
	if err != nil {
		return err
	}

	userLabel := color.New(color.FgMagenta, color.Bold)
	atlasLabel := color.New(color.FgCyan, color.Bold)

	for i, m := range messages {
		if i > 0 {
			fmt.Println()
		}
		if m.Role == models.RoleUser {
			userLabel.Println("You")
		} else {
			atlasLabel.Println("Atlas")
		}
		fmt.Println(m.Content)
	}
	return nil
}

func runSessionsArchive(cmd *cobra.Command, args []string) error {
	db, err := openSessionDB()
	if err != nil {
		return err
	}
	defer db.Close()

	if err := db.ArchiveSession(args[0]); err != nil {
		return err
	}
	fmt.Printf("Archived session %s\n", args[0])
	return nil
}
