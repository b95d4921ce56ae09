// Package tui provides a Bubble Tea terminal user interface over a mirror run.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/handiism/mint-backgrounds/internal/config"
	"github.com/handiism/mint-backgrounds/internal/model"
	"github.com/handiism/mint-backgrounds/internal/pipeline"
)

// Styles for the TUI
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#87CF3E")).
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
			BorderForeground(lipgloss.Color("#87CF3E")).
			Padding(1, 2)

	phaseStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#F8B500"))
)

// maxLogs is how many progress lines stay on screen.
const maxLogs = 10

// errCancelled is shown when the user aborts a run.
var errCancelled = errors.New("cancelled by user")

// State represents the current UI state.
type State int

const (
	StateReady State = iota
	StateRunning
	StateComplete
	StateError
)

// LogEntry represents a log message in the UI.
type LogEntry struct {
	Message string
	Level   model.ProgressLevel
}

// Model is the Bubble Tea model for the TUI.
type Model struct {
	state    State
	spinner  spinner.Model
	progress progress.Model
	settings *config.Settings
	logs     []LogEntry
	summary  *pipeline.Summary
	err      error

	// Run context
	parent context.Context
	ctx    context.Context
	cancel context.CancelFunc

	driver   *pipeline.Driver
	events   chan model.ProgressEvent
	snapshot pipeline.Progress

	verbose bool

	width  int
	height int
}

// NewModel creates a new TUI model for the given settings. Cancelling ctx
// stops a running pipeline.
func NewModel(ctx context.Context, settings *config.Settings) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#87CF3E"))

	prog := progress.New(progress.WithDefaultGradient())
	prog.Width = 50

	runCtx, cancel := context.WithCancel(ctx)

	return Model{
		state:    StateReady,
		spinner:  sp,
		progress: prog,
		settings: settings,
		logs:     make([]LogEntry, 0),
		parent:   ctx,
		ctx:      runCtx,
		cancel:   cancel,
	}
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return m.spinner.Tick
}

// Message types
type (
	// ProgressMsg carries one pipeline progress event.
	ProgressMsg struct {
		Event model.ProgressEvent
	}

	// RunDoneMsg is sent when the pipeline finishes.
	RunDoneMsg struct {
		Summary *pipeline.Summary
		Err     error
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
			if m.state == StateReady {
				return m, tea.Quit
			}
			if m.state == StateRunning {
				m.cancel()
			}

		case "enter":
			if m.state == StateReady {
				return m.start()
			}

		case "v":
			if m.state == StateReady {
				m.verbose = !m.verbose
			}

		case "q":
			if m.state == StateComplete || m.state == StateError {
				return m, tea.Quit
			}

		case "r":
			if m.state == StateComplete || m.state == StateError {
				m.state = StateReady
				m.logs = nil
				m.summary = nil
				m.err = nil
				m.driver = nil
				m.events = nil
				m.snapshot = pipeline.Progress{}
				m.cancel()
				m.ctx, m.cancel = context.WithCancel(m.parent)
			}
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)

	case ProgressMsg:
		if m.events != nil {
			cmds = append(cmds, waitForEvent(m.events))
		}
		if msg.Event.Level == model.LevelVerbose && !m.verbose {
			break
		}
		m.logs = append(m.logs, LogEntry{
			Message: formatEvent(msg.Event),
			Level:   msg.Event.Level,
		})
		if len(m.logs) > maxLogs {
			m.logs = m.logs[len(m.logs)-maxLogs:]
		}

	case RunDoneMsg:
		switch {
		case m.ctx.Err() != nil:
			m.state = StateError
			m.err = errCancelled
		case msg.Err != nil:
			m.state = StateError
			m.err = msg.Err
		default:
			m.state = StateComplete
			m.summary = msg.Summary
		}

	case TickMsg:
		if m.driver != nil && m.state == StateRunning {
			m.snapshot = m.driver.Progress()

			var percent float64
			if m.snapshot.FilesTotal > 0 {
				percent = float64(m.snapshot.FilesDone) / float64(m.snapshot.FilesTotal)
			}
			cmds = append(cmds, m.progress.SetPercent(percent), tickProgress())
		}

	case progress.FrameMsg:
		progressModel, cmd := m.progress.Update(msg)
		m.progress = progressModel.(progress.Model)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

// start creates the driver and launches the run in the background.
func (m Model) start() (tea.Model, tea.Cmd) {
	events := make(chan model.ProgressEvent, 256)
	driver, err := pipeline.NewDriver(m.settings, func(e model.ProgressEvent) {
		select {
		case events <- e:
		default:
			// The screen only shows the latest lines; drop when behind.
		}
	})
	if err != nil {
		m.state = StateError
		m.err = err
		return m, nil
	}

	m.state = StateRunning
	m.driver = driver
	m.events = events
	m.logs = append(m.logs, LogEntry{Message: "Run " + driver.RunID(), Level: model.LevelVerbose})

	ctx := m.ctx
	run := func() tea.Msg {
		summary, err := driver.Run(ctx)
		close(events)
		return RunDoneMsg{Summary: summary, Err: err}
	}
	return m, tea.Batch(run, waitForEvent(events), tickProgress(), m.spinner.Tick)
}

// waitForEvent delivers the next progress event as a message. It yields
// nothing once the run has closed the channel.
func waitForEvent(events <-chan model.ProgressEvent) tea.Cmd {
	return func() tea.Msg {
		e, ok := <-events
		if !ok {
			return nil
		}
		return ProgressMsg{Event: e}
	}
}

// tickProgress returns a command to tick progress updates.
func tickProgress() tea.Cmd {
	return tea.Tick(200*time.Millisecond, func(_ time.Time) tea.Msg {
		return TickMsg{}
	})
}

// formatEvent renders an event with its attributes as key=value pairs.
func formatEvent(e model.ProgressEvent) string {
	if len(e.Attrs) == 0 {
		return e.Message
	}
	parts := make([]string, 0, len(e.Attrs)+1)
	parts = append(parts, e.Message)
	for _, a := range e.Attrs {
		parts = append(parts, a.Key+"="+a.Value.String())
	}
	return strings.Join(parts, " ")
}

// View renders the UI.
func (m Model) View() string {
	var b strings.Builder

	// Header
	b.WriteString(titleStyle.Render("Mint Backgrounds"))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Mirror Linux Mint wallpaper packages"))
	b.WriteString("\n\n")

	switch m.state {
	case StateReady:
		b.WriteString(m.viewReady())
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

func (m Model) viewReady() string {
	var b strings.Builder

	b.WriteString(subtitleStyle.Render("Ready to sync"))
	b.WriteString("\n\n")
	b.WriteString(infoStyle.Render(fmt.Sprintf("  Index:     %s", m.settings.BaseURL)))
	b.WriteString("\n")
	b.WriteString(infoStyle.Render(fmt.Sprintf("  Output:    %s", m.settings.OutputDir)))
	b.WriteString("\n")
	b.WriteString(infoStyle.Render(fmt.Sprintf("  Threshold: %.1f MiB", float64(m.settings.MinSizeBytes)/1024/1024)))
	b.WriteString("\n")
	b.WriteString(infoStyle.Render(fmt.Sprintf("  Workers:   %d download / %d extract", m.settings.DownloadWorkers, m.settings.ExtractWorkers)))
	b.WriteString("\n\n")

	verboseCheck := "[ ]"
	if m.verbose {
		verboseCheck = "[×]"
	}
	b.WriteString(fmt.Sprintf("  %s Verbose/debug output (v)\n", verboseCheck))

	return b.String()
}

func (m Model) viewRunning() string {
	var b strings.Builder

	b.WriteString(m.spinner.View())
	b.WriteString(" ")
	b.WriteString(phaseStyle.Render(strings.ToUpper(m.snapshot.Phase.String())))
	b.WriteString("\n\n")

	if m.snapshot.Phase == pipeline.PhaseDownloading || m.snapshot.Phase == pipeline.PhaseExtracting {
		var percent float64
		if m.snapshot.FilesTotal > 0 {
			percent = float64(m.snapshot.FilesDone) / float64(m.snapshot.FilesTotal)
		}
		b.WriteString(m.progress.ViewAs(percent))
		b.WriteString("\n")

		line := fmt.Sprintf("Archives: %d/%d", m.snapshot.FilesDone, m.snapshot.FilesTotal)
		if m.snapshot.Phase == pipeline.PhaseDownloading {
			line += fmt.Sprintf(" | Data: %.2f MB", float64(m.snapshot.BytesDone)/1024/1024)
		}
		b.WriteString(infoStyle.Render(line))
		b.WriteString("\n\n")
	}

	b.WriteString(m.renderLogs())

	return b.String()
}

func (m Model) viewComplete() string {
	var b strings.Builder

	s := m.summary
	if s == nil {
		s = &pipeline.Summary{}
	}
	release := "unknown"
	if s.LatestRelease != "" {
		release = fmt.Sprintf("%s (%g)", s.LatestRelease, s.LatestVersion)
	}

	box := boxStyle.Render(fmt.Sprintf(
		"Sync Complete!\n\n"+
			"Directories: %d\n"+
			"Archives:    %d/%d downloaded\n"+
			"Families:    %d\n"+
			"Images:      %d (%.1f MB)\n"+
			"Latest:      %s",
		s.Directories,
		s.Downloaded, s.Requested,
		len(s.Families),
		s.Images, float64(s.TotalImageBytes)/1024/1024,
		release,
	))
	b.WriteString(box)
	b.WriteString("\n")

	if s.DownloadFailures > 0 || s.ExtractFailures > 0 {
		b.WriteString(warningStyle.Render(fmt.Sprintf("%d download and %d extraction failures",
			s.DownloadFailures, s.ExtractFailures)))
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
	b.WriteString("\n\n")
	b.WriteString(m.renderLogs())

	return b.String()
}

func (m Model) renderLogs() string {
	var b strings.Builder

	for _, log := range m.logs {
		var style lipgloss.Style
		prefix := "•"
		switch log.Level {
		case model.LevelError:
			style = errorStyle
			prefix = "✗"
		case model.LevelWarning:
			style = warningStyle
			prefix = "!"
		case model.LevelSuccess:
			style = successStyle
			prefix = "✓"
		case model.LevelInfo:
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
	case StateReady:
		return "enter: start • v: verbose • esc: quit"
	case StateRunning:
		return "esc: cancel"
	case StateComplete, StateError:
		return "r: run again • q: quit"
	}
	return ""
}

// Run starts the TUI application.
func Run(ctx context.Context, settings *config.Settings) error {
	p := tea.NewProgram(NewModel(ctx, settings), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
