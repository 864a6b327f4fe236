package tui

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ShayCichocki/atlas/internal/workflow"
)

func sizedChatApp() *ChatApp {
	app := NewChatApp()
	app.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	return app
}

func TestChatApp_SubmitInvokesHandler(t *testing.T) {
	app := sizedChatApp()

	var submitted string
	app.SetSubmitHandler(func(q string) { submitted = q })

	app.Update(QuestionSubmittedMsg{Text: "plan my week"})

	if submitted != "plan my week" {
		t.Errorf("handler got %q", submitted)
	}
	if !app.busy {
		t.Error("app should be busy after submission")
	}
	if len(app.entries) != 1 || app.entries[0].role != "user" {
		t.Errorf("entries = %+v", app.entries)
	}
}

func TestChatApp_IgnoresTypingWhileBusy(t *testing.T) {
	app := sizedChatApp()
	app.Update(QuestionSubmittedMsg{Text: "plan my week"})

	app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")})

	if app.inputField.input.Value() != "" {
		t.Errorf("input accepted text while busy: %q", app.inputField.input.Value())
	}
}

func TestChatApp_ResponseEndsBusy(t *testing.T) {
	app := sizedChatApp()
	app.Update(QuestionSubmittedMsg{Text: "plan my week"})

	app.Update(ResponseMsg{Text: "Study Plan:\nMonday: chapter 3"})

	if app.busy {
		t.Error("app should be idle after response")
	}
	if len(app.entries) != 2 || app.entries[1].role != "atlas" {
		t.Errorf("entries = %+v", app.entries)
	}
}

func TestChatApp_ResponseErr(t *testing.T) {
	app := sizedChatApp()
	app.Update(QuestionSubmittedMsg{Text: "plan my week"})

	app.Update(ResponseErrMsg{Err: errors.New("backend down")})

	if app.busy {
		t.Error("app should be idle after error")
	}
	if app.entries[len(app.entries)-1].role != "error" {
		t.Errorf("entries = %+v", app.entries)
	}
}

func TestChatApp_WorkflowEventUpdatesStatus(t *testing.T) {
	app := sizedChatApp()
	app.Update(QuestionSubmittedMsg{Text: "plan my week"})

	app.Update(WorkflowEventMsg{Event: workflow.Event{Type: workflow.EventExecutionStarted}})

	if app.status != "assembling results" {
		t.Errorf("status = %q", app.status)
	}
}

func TestChatApp_QuitKeys(t *testing.T) {
	for _, key := range []tea.KeyType{tea.KeyCtrlC, tea.KeyEsc} {
		app := sizedChatApp()
		_, cmd := app.Update(tea.KeyMsg{Type: key})
		if cmd == nil {
			t.Fatalf("key %v should quit", key)
		}
		if msg := cmd(); msg != (tea.QuitMsg{}) {
			t.Errorf("key %v produced %T, want tea.QuitMsg", key, msg)
		}
	}
}

func TestChatApp_ViewContainsTranscript(t *testing.T) {
	app := sizedChatApp()
	app.Update(QuestionSubmittedMsg{Text: "plan my week"})
	app.Update(ResponseMsg{Text: "Monday: chapter 3"})

	view := app.View()
	if !strings.Contains(view, "plan my week") {
		t.Error("view missing user text")
	}
	if !strings.Contains(view, "Monday: chapter 3") {
		t.Error("view missing response text")
	}
}

func TestStatusText(t *testing.T) {
	ev := workflow.Event{Type: workflow.EventBranchStarted, Agent: "PLANNER"}
	if got := statusText(ev); got != "consulting planner" {
		t.Errorf("statusText = %q", got)
	}
	if got := statusText(workflow.Event{Type: "unknown"}); got != "thinking" {
		t.Errorf("statusText(unknown) = %q", got)
	}
}
