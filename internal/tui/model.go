package tui

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/pushchain/ghapk/internal/deploy"
	"github.com/pushchain/ghapk/internal/selection"
	"github.com/pushchain/ghapk/internal/ui"
)

// Runner executes one installation. *deploy.Pipeline implements it.
type Runner interface {
	Run(ctx context.Context, item selection.Item, report deploy.Reporter) (deploy.Result, error)
}

// Options configures the session.
type Options struct {
	Title   string // shown in the header, usually owner/repo
	Latest  string // tag marked as latest, empty for none
	Runner  Runner
	Context context.Context
}

type statusKind int

const (
	statusNone statusKind = iota
	statusInfo
	statusSuccess
	statusWarn
	statusError
)

type statusLine struct {
	kind statusKind
	text string
}

// runState tracks the in-flight installation for the progress panel.
type runState struct {
	index      int
	title      string
	stage      deploy.Stage
	downloaded int64
	total      int64
	events     <-chan deploy.Event
}

// runEventMsg carries one pipeline event to the UI thread.
type runEventMsg struct {
	events <-chan deploy.Event
	ev     deploy.Event
}

// runDoneMsg reports the end of a run.
type runDoneMsg struct {
	index  int
	result deploy.Result
	err    error
}

// Model is the Bubble Tea model for the release browser.
type Model struct {
	opts     Options
	list     *selection.List
	keys     keyMap
	help     help.Model
	spinner  spinner.Model
	progress progress.Model
	notes    pane

	width  int
	height int
	offset int // first visible list row

	run    *runState
	status statusLine
}

// New creates the session model over list.
func New(list *selection.List, opts Options) *Model {
	if opts.Context == nil {
		opts.Context = context.Background()
	}

	s := spinner.New()
	s.Spinner = spinner.Dot

	return &Model{
		opts:     opts,
		list:     list,
		keys:     newKeyMap(),
		help:     help.New(),
		spinner:  s,
		progress: progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage()),
	}
}

// Init initializes the model (Bubble Tea lifecycle)
func (m *Model) Init() tea.Cmd {
	// Set spinner style here (after alt screen is active) to avoid terminal queries
	m.spinner.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
	return nil
}

// Update handles messages (Bubble Tea lifecycle)
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.scrollToCursor()
		return m, nil

	case runEventMsg:
		// Late events from a finished run are dropped
		if m.run == nil || msg.events != m.run.events {
			return m, nil
		}
		m.run.stage = msg.ev.Stage
		if msg.ev.Stage == deploy.StageDownload {
			m.run.downloaded, m.run.total = msg.ev.Downloaded, msg.ev.Total
		}
		return m, waitForEvent(m.run.events)

	case runDoneMsg:
		if err := m.list.Complete(msg.index); err != nil {
			log.Printf("complete item %d: %v", msg.index, err)
		}
		title := m.list.Item(msg.index).Title
		m.run = nil
		m.status = outcomeStatus(title, msg.result, msg.err)
		m.scrollToCursor()
		return m, nil

	case spinner.TickMsg:
		if m.run == nil {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

// handleKey processes keyboard input
func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.ForceQuit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Quit):
		if m.list.Busy() {
			m.status = statusLine{statusWarn, "Install in progress; wait for it to finish (ctrl+c forces quit)"}
			return m, nil
		}
		return m, tea.Quit

	case key.Matches(msg, m.keys.Down):
		m.list.SelectNext()
		m.scrollToCursor()

	case key.Matches(msg, m.keys.Up):
		m.list.SelectPrevious()
		m.scrollToCursor()

	case key.Matches(msg, m.keys.Deselect):
		m.list.Deselect()

	case key.Matches(msg, m.keys.First):
		m.list.SelectFirst()
		m.scrollToCursor()

	case key.Matches(msg, m.keys.Last):
		m.list.SelectLast()
		m.scrollToCursor()

	case key.Matches(msg, m.keys.Activate):
		return m.activate()

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.scrollToCursor()
	}
	return m, nil
}

// activate starts a run for the selected item. The pipeline runs in a Cmd
// goroutine; list mutations stay on the UI thread.
func (m *Model) activate() (tea.Model, tea.Cmd) {
	idx, item, err := m.list.Activate()
	switch {
	case errors.Is(err, selection.ErrNoSelection):
		return m, nil
	case errors.Is(err, selection.ErrBusy):
		m.status = statusLine{statusWarn, "Another install is in progress"}
		return m, nil
	case err != nil:
		m.status = statusLine{statusError, err.Error()}
		return m, nil
	}

	events := make(chan deploy.Event, 64)
	m.run = &runState{index: idx, title: item.Title, stage: deploy.StageResolve, total: -1, events: events}
	m.status = statusLine{statusInfo, fmt.Sprintf("Installing %s", item.Title)}
	// The run panel takes a row from the list pane
	m.scrollToCursor()

	ctx, runner := m.opts.Context, m.opts.Runner
	run := func() tea.Msg {
		defer close(events)
		res, err := runner.Run(ctx, item, func(ev deploy.Event) {
			select {
			case events <- ev:
			default: // UI is behind; the next event supersedes this one
			}
		})
		return runDoneMsg{index: idx, result: res, err: err}
	}

	return m, tea.Batch(run, waitForEvent(events), m.spinner.Tick)
}

func waitForEvent(events <-chan deploy.Event) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-events
		if !ok {
			return nil
		}
		return runEventMsg{events: events, ev: ev}
	}
}

func outcomeStatus(title string, res deploy.Result, err error) statusLine {
	if err == nil {
		return statusLine{statusSuccess, fmt.Sprintf("Installed %s (%s)", title, ui.FormatBytes(res.Bytes))}
	}
	if errors.Is(err, deploy.ErrNoInstallableAsset) {
		return statusLine{statusWarn, fmt.Sprintf("%s has no .apk asset", title)}
	}

	var se *deploy.StageError
	if errors.As(err, &se) {
		var what string
		switch se.Stage {
		case deploy.StageDownload:
			what = "Download"
		case deploy.StageTransfer:
			what = "Transfer to device"
		case deploy.StageInstall:
			what = "Install"
		default:
			what = se.Stage.String()
		}
		return statusLine{statusError, fmt.Sprintf("%s failed for %s: %v", what, title, se.Err)}
	}
	return statusLine{statusError, fmt.Sprintf("%s: %v", title, err)}
}

// scrollToCursor keeps the cursor row inside the visible window. The
// offset is left alone when nothing is selected.
func (m *Model) scrollToCursor() {
	i, ok := m.list.Cursor()
	if !ok {
		return
	}
	rows := m.listRows()
	switch {
	case i < m.offset:
		m.offset = i
	case i >= m.offset+rows:
		m.offset = i - rows + 1
	}
}
