// Package tui provides a Bubble Tea terminal user interface for exercices-downloader.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/handiism/exercices-downloader/internal/config"
	"github.com/handiism/exercices-downloader/internal/download"
	"github.com/handiism/exercices-downloader/internal/model"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Styles for the TUI
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF6B6B")).
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

	subjectStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F8B500"))
)

// maxLogs is how many log lines stay on screen.
const maxLogs = 10

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
	Level   download.ProgressLevel
}

// Model is the Bubble Tea model for the TUI.
type Model struct {
	state     State
	textInput textinput.Model
	spinner   spinner.Model
	progress  progress.Model
	settings  *config.Settings
	catalog   *model.Catalog
	logs      []LogEntry
	err       error
	cancelled bool

	runner *runner

	// Run progress
	done    int
	total   int
	current string
	stats   download.Stats

	// Options
	dryRun  bool
	verbose bool

	width  int
	height int
}

// newModel creates a new TUI model.
func newModel(settings *config.Settings, catalog *model.Catalog, r *runner) Model {
	ti := textinput.New()
	ti.Placeholder = settings.OutputRoot
	ti.SetValue(settings.OutputRoot)
	ti.Focus()
	ti.CharLimit = 500
	ti.Width = 60

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B"))

	prog := progress.New(progress.WithDefaultGradient())
	prog.Width = 50

	return Model{
		state:     StateReady,
		textInput: ti,
		spinner:   sp,
		progress:  prog,
		settings:  settings,
		catalog:   catalog,
		logs:      make([]LogEntry, 0),
		runner:    r,
		total:     catalog.URLCount(),
		dryRun:    settings.DryRun,
	}
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.spinner.Tick)
}

// Message types
type (
	// ProgressMsg is sent for every event of the running download.
	ProgressMsg struct {
		Event download.ProgressEvent
	}

	// RunDoneMsg is sent when a run finishes.
	RunDoneMsg struct {
		Stats download.Stats
		Err   error
	}
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
			m.runner.stop()
			return m, tea.Quit

		case "esc":
			if m.state == StateReady {
				return m, tea.Quit
			}
			if m.state == StateRunning {
				m.cancelled = true
				m.runner.stop()
			}

		case "enter":
			if m.state == StateReady && strings.TrimSpace(m.textInput.Value()) != "" {
				cmd := m.startRun()
				return m, tea.Batch(cmd, m.spinner.Tick)
			}

		case "ctrl+d":
			if m.state == StateReady {
				m.dryRun = !m.dryRun
			}

		case "ctrl+e":
			if m.state == StateReady {
				m.verbose = !m.verbose
			}

		case "q":
			if m.state == StateComplete || m.state == StateError {
				return m, tea.Quit
			}

		case "r":
			if m.state == StateComplete || m.state == StateError {
				// Reset for another run
				m.state = StateReady
				m.logs = nil
				m.err = nil
				m.cancelled = false
				m.done = 0
				m.current = ""
				m.stats = download.Stats{}
				m.textInput.Focus()
				return m, textinput.Blink
			}
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)

	case ProgressMsg:
		event := msg.Event
		if event.Done > 0 {
			m.done = event.Done
			m.current = fmt.Sprintf("%s › %s › Quarter %d", event.Year, event.Subject, event.Quarter)
		}
		if event.Total > 0 {
			m.total = event.Total
		}
		cmds = append(cmds, m.progress.SetPercent(m.percent()))

		// Filter verbose messages if not in verbose mode
		if event.Level != download.LevelVerbose || m.verbose {
			m.logs = append(m.logs, LogEntry{Message: event.Message, Level: event.Level})
			if len(m.logs) > maxLogs {
				m.logs = m.logs[len(m.logs)-maxLogs:]
			}
		}

	case RunDoneMsg:
		m.stats = msg.Stats
		switch {
		case m.cancelled:
			m.state = StateError
			m.err = errCancelled
		case msg.Err != nil:
			m.state = StateError
			m.err = msg.Err
		default:
			m.state = StateComplete
		}

	case progress.FrameMsg:
		progressModel, cmd := m.progress.Update(msg)
		m.progress = progressModel.(progress.Model)
		cmds = append(cmds, cmd)
	}

	// Update text input
	if m.state == StateReady {
		var cmd tea.Cmd
		m.textInput, cmd = m.textInput.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

// startRun switches to the running state and hands a copy of the settings,
// with the options chosen on screen, to the runner.
func (m *Model) startRun() tea.Cmd {
	settings := *m.settings
	settings.OutputRoot = strings.TrimSpace(m.textInput.Value())
	settings.DryRun = m.dryRun

	m.state = StateRunning
	m.textInput.Blur()

	return m.runner.start(&settings)
}

func (m Model) percent() float64 {
	if m.total == 0 {
		return 0
	}
	return float64(m.done) / float64(m.total)
}

// View renders the UI.
func (m Model) View() string {
	var b strings.Builder

	// Header
	b.WriteString(titleStyle.Render("📚 Exercices Downloader"))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Download and sort exam papers by year, subject and difficulty"))
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

	b.WriteString(subtitleStyle.Render("Output directory:"))
	b.WriteString("\n\n")
	b.WriteString(m.textInput.View())
	b.WriteString("\n\n")

	b.WriteString(infoStyle.Render(fmt.Sprintf("Catalog: %d year(s), %d source URL(s)", len(m.catalog.Years), m.catalog.URLCount())))
	b.WriteString("\n")
	for _, year := range m.catalog.Years {
		names := make([]string, len(year.Subjects))
		for i, subject := range year.Subjects {
			names[i] = subject.Name
		}
		b.WriteString(subjectStyle.Render(fmt.Sprintf("  • %s: %s", year.Label, strings.Join(names, ", "))))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	// Options
	dryRunCheck := "[ ]"
	if m.dryRun {
		dryRunCheck = "[×]"
	}
	verboseCheck := "[ ]"
	if m.verbose {
		verboseCheck = "[×]"
	}

	b.WriteString(infoStyle.Render("Options:"))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("  %s Dry run, list files without downloading (ctrl+d)\n", dryRunCheck))
	b.WriteString(fmt.Sprintf("  %s Verbose/debug output (ctrl+e)\n", verboseCheck))

	return b.String()
}

func (m Model) viewRunning() string {
	var b strings.Builder

	b.WriteString(m.spinner.View())
	b.WriteString(" ")
	if m.current != "" {
		b.WriteString(subtitleStyle.Render(m.current))
	} else {
		b.WriteString(subtitleStyle.Render("Starting..."))
	}
	b.WriteString("\n\n")

	b.WriteString(m.progress.View())
	b.WriteString("\n")
	b.WriteString(infoStyle.Render(fmt.Sprintf("Sources: %d/%d", m.done, m.total)))
	b.WriteString("\n\n")

	// Logs
	b.WriteString(m.renderLogs())

	return b.String()
}

func (m Model) viewComplete() string {
	var b strings.Builder

	title := "✨ Download Complete!"
	if m.dryRun {
		title = "✨ Dry Run Complete!"
	}

	box := boxStyle.Render(fmt.Sprintf(
		"%s\n\n"+
			"Sources: %d (%d failed)\n"+
			"Files: %d/%d\n"+
			"Errors: %d download, %d save\n"+
			"Size: %s",
		title,
		m.stats.Listings, m.stats.ListingErrors,
		m.stats.Downloaded, m.stats.Attachments,
		m.stats.DownloadErrors, m.stats.SaveErrors,
		humanize.Bytes(uint64(m.stats.Bytes)),
	))
	b.WriteString(box)
	b.WriteString("\n\n")
	b.WriteString(m.renderLogs())

	return b.String()
}

func (m Model) viewError() string {
	var b strings.Builder

	b.WriteString(errorStyle.Render("❌ Error occurred:"))
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
		case download.LevelError:
			style = errorStyle
			prefix = "✗"
		case download.LevelWarning:
			style = warningStyle
			prefix = "!"
		case download.LevelSuccess:
			style = successStyle
			prefix = "✓"
		case download.LevelInfo:
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
		return "enter: start • ctrl+d: dry run • ctrl+e: verbose • esc: quit"
	case StateRunning:
		return "esc: cancel • ctrl+c: quit"
	case StateComplete, StateError:
		return "r: new run • q: quit"
	}
	return ""
}

// Run starts the TUI application.
//
// The Bubble Tea program and the download worker run side by side; Run
// returns when the program exits and the worker has stopped.
func Run(ctx context.Context, settings *config.Settings, catalog *model.Catalog, logger *zap.Logger) error {
	if logger == nil {
		logger = zap.NewNop()
	}

	r := newRunner(catalog, logger)
	p := tea.NewProgram(newModel(settings, catalog, r), tea.WithAltScreen(), tea.WithContext(ctx))
	r.send = p.Send

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		defer close(r.done)
		defer r.stop()
		_, err := p.Run()
		if errors.Is(err, tea.ErrProgramKilled) {
			return nil
		}
		return err
	})

	g.Go(func() error {
		return r.work(ctx)
	})

	return g.Wait()
}
