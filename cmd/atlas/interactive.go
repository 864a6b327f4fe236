package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"

	"github.com/ShayCichocki/atlas/internal/config"
	"github.com/ShayCichocki/atlas/internal/data"
	"github.com/ShayCichocki/atlas/internal/state"
	"github.com/ShayCichocki/atlas/internal/tui"
	"github.com/ShayCichocki/atlas/internal/workflow"
	"github.com/ShayCichocki/atlas/pkg/models"
)

func runInteractive() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	studentID := resolveStudentID(cfg)

	client, err := createClient(cfg)
	if err != nil {
		return fmt.Errorf("create API client: %w", err)
	}

	// Load student data and optionally watch the files for edits.
	mgr := loadDataManager(cfg)
	if cfg.Data.Watch {
		if watcher, err := data.NewWatcher(mgr); err == nil {
			defer watcher.Stop()
		} else {
			log.Printf("[atlas] data watcher disabled: %v", err)
		}
	}

	// Initialize session database
	stateDB, err := state.OpenGlobal()
	if err != nil {
		return fmt.Errorf("open session database: %w", err)
	}
	defer stateDB.Close()

	if err := stateDB.Migrate(); err != nil {
		return fmt.Errorf("migrate database: %w", err)
	}

	session := &state.Session{
		ID:        uuid.NewString(),
		StudentID: studentID,
		StartedAt: time.Now(),
		Status:    state.SessionActive,
	}
	if err := stateDB.CreateSession(session); err != nil {
		return fmt.Errorf("create session: %w", err)
	}

	cwd, err := os.Getwd()
	if err != nil {
		cwd = "."
	}
	logger := workflow.NewDebugLoggerForDir(cwd)
	defer logger.Close()

	emitter := workflow.NewEventEmitter(256)
	engine := workflow.NewEngine(client,
		workflow.WithLogger(logger),
		workflow.WithEmitter(emitter),
		workflow.WithAgentOptions(agentOptions(client)...),
	)

	st := newSessionState(mgr, studentID, nil)

	// Set up signal handling
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	// Suppress log output while TUI is active
	originalOutput := log.Writer()
	log.SetOutput(io.Discard)
	defer log.SetOutput(originalOutput)

	program, app := tui.NewChatProgram()

	// Process submissions async to avoid blocking the TUI.
	app.SetSubmitHandler(func(question string) {
		go func() {
			userMsg := models.Message{Role: models.RoleUser, Content: question}
			st.AppendMessage(userMsg)
			if err := stateDB.AppendMessage(session.ID, userMsg); err != nil {
				logger.Log("[atlas] persist user message: %v", err)
			}

			resp := engine.Respond(ctx, st)
			text := workflow.Summarize(resp)

			reply := models.Message{Role: models.RoleAssistant, Content: text}
			st.AppendMessage(reply)
			if err := stateDB.AppendMessage(session.ID, reply); err != nil {
				logger.Log("[atlas] persist reply: %v", err)
			}

			program.Send(tui.ResponseMsg{Text: text})
		}()
	})

	// Forward workflow events to the TUI.
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-emitter.Events():
				if !ok {
					return
				}
				program.Send(tui.WorkflowEventMsg{Event: ev})
			}
		}
	}()

	if _, err := program.Run(); err != nil {
		return fmt.Errorf("run TUI: %w", err)
	}

	return nil
}
