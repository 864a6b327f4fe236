package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ShayCichocki/atlas/internal/workflow"
)

// ResponseMsg delivers a finished response to the chat.
type ResponseMsg struct {
	Text string
}

// ResponseErrMsg delivers a failure to the chat.
type ResponseErrMsg struct {
	Err error
}

// WorkflowEventMsg forwards a workflow progress event to the chat.
type WorkflowEventMsg struct {
	Event workflow.Event
}

// entry is one rendered transcript line pair.
type entry struct {
	role string
	text string
}

var (
	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")).
			Bold(true).
			Padding(0, 1)

	userLabelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true)

	atlasLabelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")).
			Bold(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true)
)

// ChatApp is the main model for interactive mode. It renders the
// conversation transcript with an input field and a status line that
// tracks workflow progress while a request is being processed.
type ChatApp struct {
	transcript viewport.Model
	inputField *InputField
	spin       spinner.Model
	entries    []entry
	status     string
	busy       bool
	width      int
	height     int
	ready      bool
	quitting   bool

	// Callback for when a question is submitted.
	onSubmit func(question string)
}

// NewChatApp creates a new ChatApp.
func NewChatApp() *ChatApp {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))

	return &ChatApp{
		inputField: NewInputField(),
		spin:       sp,
	}
}

// SetSubmitHandler sets the callback for question submissions.
// The handler runs on the UI goroutine and must not block; long work
// belongs in a goroutine that reports back via Program.Send.
func (a *ChatApp) SetSubmitHandler(handler func(question string)) {
	a.onSubmit = handler
}

// Init implements tea.Model.
func (a *ChatApp) Init() tea.Cmd {
	return a.inputField.Focus()
}

// Update implements tea.Model.
func (a *ChatApp) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			a.quitting = true
			return a, tea.Quit
		default:
			if a.busy {
				// Ignore typing while a request is in flight.
				return a, nil
			}
			var cmd tea.Cmd
			a.inputField, cmd = a.inputField.Update(msg)
			return a, cmd
		}

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.updateSizes()
		return a, nil

	case QuestionSubmittedMsg:
		a.entries = append(a.entries, entry{role: "user", text: msg.Text})
		a.busy = true
		a.status = "thinking"
		a.refreshTranscript()
		if a.onSubmit != nil {
			a.onSubmit(msg.Text)
		}
		return a, a.spin.Tick

	case ResponseMsg:
		a.entries = append(a.entries, entry{role: "atlas", text: msg.Text})
		a.busy = false
		a.status = ""
		a.refreshTranscript()
		return a, nil

	case ResponseErrMsg:
		a.entries = append(a.entries, entry{role: "error", text: msg.Err.Error()})
		a.busy = false
		a.status = ""
		a.refreshTranscript()
		return a, nil

	case WorkflowEventMsg:
		a.status = statusText(msg.Event)
		return a, nil

	case spinner.TickMsg:
		if !a.busy {
			return a, nil
		}
		var cmd tea.Cmd
		a.spin, cmd = a.spin.Update(msg)
		return a, cmd
	}

	return a, nil
}

// updateSizes updates the sizes of child components based on terminal size.
func (a *ChatApp) updateSizes() {
	headerHeight := 1
	statusHeight := 1
	inputHeight := 3
	transcriptHeight := a.height - headerHeight - statusHeight - inputHeight
	if transcriptHeight < 1 {
		transcriptHeight = 1
	}

	if !a.ready {
		a.transcript = viewport.New(a.width, transcriptHeight)
		a.ready = true
	} else {
		a.transcript.Width = a.width
		a.transcript.Height = transcriptHeight
	}
	a.refreshTranscript()

	a.inputField.SetWidth(a.width)
}

// refreshTranscript re-renders the transcript and scrolls to the bottom.
func (a *ChatApp) refreshTranscript() {
	if !a.ready {
		return
	}
	a.transcript.SetContent(a.renderEntries())
	a.transcript.GotoBottom()
}

func (a *ChatApp) renderEntries() string {
	var b strings.Builder
	for i, e := range a.entries {
		if i > 0 {
			b.WriteString("\n\n")
		}
		switch e.role {
		case "user":
			b.WriteString(userLabelStyle.Render("You"))
		case "error":
			b.WriteString(errorStyle.Render("Error"))
		default:
			b.WriteString(atlasLabelStyle.Render("Atlas"))
		}
		b.WriteString("\n")
		b.WriteString(e.text)
	}
	return b.String()
}

// View implements tea.Model.
func (a *ChatApp) View() string {
	if a.quitting {
		return "Goodbye!\n"
	}
	if !a.ready {
		return "Loading..."
	}

	header := headerStyle.Render("Atlas | Academic Support")

	status := ""
	if a.busy {
		status = statusStyle.Render(a.spin.View() + " " + a.status)
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		a.transcript.View(),
		status,
		a.inputField.View(),
	)
}

// statusText maps a workflow event to a short status line.
func statusText(ev workflow.Event) string {
	switch ev.Type {
	case workflow.EventPlanDecided:
		return "routing your request"
	case workflow.EventProfileAnalyzed:
		return "reviewing your profile"
	case workflow.EventBranchStarted, workflow.EventBranchCompleted:
		return "consulting " + strings.ToLower(string(ev.Agent))
	case workflow.EventBranchFailed:
		return "recovering"
	case workflow.EventExecutionStarted:
		return "assembling results"
	case workflow.EventExecutionCompleted, workflow.EventResponseReady:
		return "finishing up"
	default:
		return "thinking"
	}
}

// NewChatProgram creates a new Bubble Tea program for interactive mode.
func NewChatProgram() (*tea.Program, *ChatApp) {
	app := NewChatApp()
	p := tea.NewProgram(app, tea.WithAltScreen())
	return p, app
}
