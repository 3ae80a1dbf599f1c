// Package tui provides a Bubble Tea terminal user interface for installer-tracker.
package tui

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
	"github.com/handiism/installer-tracker/internal/app"
	"github.com/handiism/installer-tracker/internal/config"
	"github.com/handiism/installer-tracker/internal/update"
)

// Styles for the TUI
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#4ECDC4")).
			MarginBottom(1)

	subtitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#4ECDC4"))

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#95E1A3"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFE66D"))

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#A8DADC"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6C757D"))

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#4ECDC4")).
			Padding(1, 2)

	softwareStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F8B500"))
)

// maxLogs is how many progress lines stay on screen.
const maxLogs = 10

// State represents the current UI state.
type State int

const (
	StateRunning State = iota
	StateComplete
	StateError
)

// LogEntry represents a log message in the UI.
type LogEntry struct {
	Message string
	Level   update.ProgressLevel
}

// Model is the Bubble Tea model for the TUI.
type Model struct {
	state    State
	spinner  spinner.Model
	progress progress.Model
	settings *config.Settings
	runID    string
	logs     []LogEntry
	current  string
	result   *app.Result
	err      error

	// Run context
	ctx    context.Context
	cancel context.CancelFunc
	msgs   chan tea.Msg

	// Manager reference, for progress polling
	manager *update.Manager

	// Run progress
	processed     int32
	total         int32
	receivedBytes int64

	verbose bool

	width  int
	height int
}

// NewModel creates a new TUI model that runs one pass with settings.
func NewModel(settings *config.Settings, verbose bool) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#4ECDC4"))

	prog := progress.New(progress.WithDefaultGradient())
	prog.Width = 50

	ctx, cancel := context.WithCancel(context.Background())

	return Model{
		state:    StateRunning,
		spinner:  sp,
		progress: prog,
		settings: settings,
		runID:    uuid.NewString(),
		logs:     make([]LogEntry, 0),
		ctx:      ctx,
		cancel:   cancel,
		msgs:     make(chan tea.Msg, 64),
		verbose:  verbose,
	}
}

// Init starts the run.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.startRun(), m.listen())
}

// Message types
type (
	// ProgressMsg is sent for every progress event of the run.
	ProgressMsg struct {
		Event update.ProgressEvent
	}

	// ManagerReadyMsg is sent once loading succeeded and processing begins.
	ManagerReadyMsg struct {
		Manager *update.Manager
	}

	// RunDoneMsg is sent when the pass finished or failed.
	RunDoneMsg struct {
		Result *app.Result
		Err    error
	}

	// TickMsg is for periodic progress updates.
	TickMsg struct{}
)

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.progress.Width = msg.Width - 20
		if m.progress.Width > 80 {
			m.progress.Width = 80
		}
		if m.progress.Width < 20 {
			m.progress.Width = 20
		}
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			m.cancel()
			return m, tea.Quit

		case "esc":
			if m.state == StateRunning {
				// The run stops after the current title and still saves state.
				m.cancel()
			}

		case "v":
			m.verbose = !m.verbose

		case "q":
			if m.state == StateComplete || m.state == StateError {
				return m, tea.Quit
			}
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)

	case ProgressMsg:
		cmds = append(cmds, m.listen())
		if msg.Event.Title != "" && strings.HasPrefix(msg.Event.Message, "Processing ") {
			m.current = msg.Event.Title
		}
		// Filter verbose messages if not in verbose mode
		if msg.Event.Level == update.LevelVerbose && !m.verbose {
			break
		}
		m.logs = append(m.logs, LogEntry{
			Message: msg.Event.Message,
			Level:   msg.Event.Level,
		})
		if len(m.logs) > maxLogs {
			m.logs = m.logs[len(m.logs)-maxLogs:]
		}

	case ManagerReadyMsg:
		m.manager = msg.Manager
		cmds = append(cmds, m.listen(), m.tickProgress())

	case RunDoneMsg:
		m.current = ""
		if msg.Err != nil {
			m.state = StateError
			m.err = msg.Err
		} else {
			m.state = StateComplete
			m.result = msg.Result
			m.processed = int32(msg.Result.Summary.Total - msg.Result.Summary.Skipped)
			m.total = int32(msg.Result.Summary.Total)
		}
		if m.manager != nil {
			_, _, m.receivedBytes = m.manager.GetProgress()
		}

	case TickMsg:
		// Update progress from manager
		if m.manager != nil && m.state == StateRunning {
			m.processed, m.total, m.receivedBytes = m.manager.GetProgress()

			var percent float64
			if m.total > 0 {
				percent = float64(m.processed) / float64(m.total)
			}
			cmds = append(cmds, m.progress.SetPercent(percent), m.tickProgress())
		}

	case progress.FrameMsg:
		progressModel, cmd := m.progress.Update(msg)
		m.progress = progressModel.(progress.Model)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

// tickProgress returns a command to tick progress updates.
func (m Model) tickProgress() tea.Cmd {
	return tea.Tick(200*time.Millisecond, func(_ time.Time) tea.Msg {
		return TickMsg{}
	})
}

// listen waits for the next message posted by the running pass.
func (m Model) listen() tea.Cmd {
	msgs := m.msgs
	return func() tea.Msg {
		return <-msgs
	}
}

// post delivers msg to the UI unless the UI has already gone away.
func (m Model) post(msg tea.Msg) {
	select {
	case m.msgs <- msg:
	case <-m.ctx.Done():
	}
}

// startRun runs the pass in the background.
func (m Model) startRun() tea.Cmd {
	return func() tea.Msg {
		result, err := app.Run(m.ctx, app.Options{
			Settings: m.settings,
			RunID:    m.runID,
			Progress: func(event update.ProgressEvent) {
				m.post(ProgressMsg{Event: event})
			},
			OnManager: func(manager *update.Manager) {
				m.post(ManagerReadyMsg{Manager: manager})
			},
		})
		return RunDoneMsg{Result: result, Err: err}
	}
}

// View renders the UI.
func (m Model) View() string {
	var b strings.Builder

	// Header
	b.WriteString(titleStyle.Render("Installer Tracker"))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Run " + m.runID))
	b.WriteString("\n\n")

	switch m.state {
	case StateRunning:
		b.WriteString(m.viewRunning())
	case StateComplete:
		b.WriteString(m.viewComplete())
	case StateError:
		b.WriteString(m.viewError())
	}

	// Footer
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(m.getHelpText()))

	return b.String()
}

func (m Model) viewRunning() string {
	var b strings.Builder

	b.WriteString(m.spinner.View())
	b.WriteString(" ")
	if m.ctx.Err() != nil {
		b.WriteString(warningStyle.Render("Stopping after the current title..."))
	} else if m.current != "" {
		b.WriteString(subtitleStyle.Render("Processing "))
		b.WriteString(softwareStyle.Render(m.current))
	} else {
		b.WriteString(subtitleStyle.Render("Loading software list..."))
	}
	b.WriteString("\n\n")

	var percent float64
	if m.total > 0 {
		percent = float64(m.processed) / float64(m.total)
	}
	b.WriteString(m.progress.ViewAs(percent))
	b.WriteString("\n")

	b.WriteString(infoStyle.Render(fmt.Sprintf(
		"Titles: %d/%d | Downloaded: %.2f MB",
		m.processed,
		m.total,
		float64(m.receivedBytes)/1024/1024,
	)))
	b.WriteString("\n\n")

	b.WriteString(m.renderLogs())

	return b.String()
}

func (m Model) viewComplete() string {
	var b strings.Builder

	sum := m.result.Summary
	box := boxStyle.Render(fmt.Sprintf(
		"Run Complete\n\n"+
			"Updated:   %d\n"+
			"Unchanged: %d\n"+
			"Failed:    %d\n"+
			"Skipped:   %d\n"+
			"Size:      %.2f MB",
		sum.Updated,
		sum.Unchanged,
		sum.Failed,
		sum.Skipped,
		float64(m.receivedBytes)/1024/1024,
	))
	b.WriteString(box)
	b.WriteString("\n\n")

	for _, title := range failedTitles(m.result) {
		entry := m.result.State[title]
		b.WriteString(errorStyle.Render(fmt.Sprintf("✗ %s: %s", title, *entry.ErrorFlag)))
		b.WriteString("\n")
	}

	return b.String()
}

func (m Model) viewError() string {
	var b strings.Builder

	b.WriteString(errorStyle.Render("Error occurred:"))
	b.WriteString("\n\n")
	if m.err != nil {
		b.WriteString(fmt.Sprintf("  %s", m.err.Error()))
	}

	return b.String()
}

func (m Model) renderLogs() string {
	var b strings.Builder

	for _, log := range m.logs {
		var style lipgloss.Style
		prefix := "•"
		switch log.Level {
		case update.LevelError:
			style = errorStyle
			prefix = "✗"
		case update.LevelWarning:
			style = warningStyle
			prefix = "!"
		case update.LevelSuccess:
			style = successStyle
			prefix = "✓"
		case update.LevelInfo:
			style = infoStyle
			prefix = "›"
		default:
			style = dimStyle
		}
		b.WriteString(style.Render(prefix + " " + log.Message))
		b.WriteString("\n")
	}

	return b.String()
}

func (m Model) getHelpText() string {
	switch m.state {
	case StateRunning:
		return "esc: stop • v: verbose • ctrl+c: quit"
	case StateComplete, StateError:
		return "q: quit"
	}
	return ""
}

// failedTitles returns the titles with an error flag, sorted by name.
func failedTitles(result *app.Result) []string {
	var titles []string
	for title, entry := range result.State {
		if entry.Failed() {
			titles = append(titles, title)
		}
	}
	sort.Strings(titles)
	return titles
}

// Run starts the TUI application.
func Run(settings *config.Settings, verbose bool) error {
	p := tea.NewProgram(NewModel(settings, verbose), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
