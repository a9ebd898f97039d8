package tui

import (
	"fmt"
	"os"

	"github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/1broseidon/workstrip/internal/config"
	"github.com/1broseidon/workstrip/internal/i3"
	"github.com/1broseidon/workstrip/internal/strip"
)

// Run starts the live inspector for one output. It drives the same engine
// as watch, so what it shows is exactly what eww would receive.
func Run(output string, cfg *config.Config) error {
	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("tui requires an interactive terminal (stdin/stdout must be TTYs)")
	}

	queries, err := i3.Connect(cfg.SocketPath)
	if err != nil {
		return fmt.Errorf("failed to connect to i3: %w", err)
	}
	defer queries.Close()

	events, err := i3.Connect(cfg.SocketPath)
	if err != nil {
		return fmt.Errorf("failed to connect to i3: %w", err)
	}
	defer events.Close()

	if err := events.Subscribe(i3.SubscribeWorkspace); err != nil {
		return fmt.Errorf("failed to subscribe to workspace events: %w", err)
	}

	// No logger: the alternate screen belongs to bubbletea.
	engine := strip.NewEngine(strip.EngineConfig{
		Output: output,
		Widget: cfg.Widget,
	}, queries.Workspaces)

	line, err := engine.Seed()
	if err != nil {
		return fmt.Errorf("failed to seed the workspace strip: %w", err)
	}

	m := newModel(output, cfg.Widget.ButtonClassPrefix, engine, events, line)
	final, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	if err != nil {
		return err
	}
	if fm, ok := final.(model); ok && fm.err != nil {
		return fm.err
	}
	return nil
}

const logLimit = 64

// model is the root bubbletea model for the inspector.
type model struct {
	output string
	prefix string

	engine *strip.Engine
	events *i3.Client

	line  string
	cells []cell
	log   []string

	err error

	width  int
	height int
}

func newModel(output, classPrefix string, engine *strip.Engine, events *i3.Client, line string) model {
	return model{
		output: output,
		prefix: classPrefix,
		engine: engine,
		events: events,
		line:   line,
		cells:  parseCells(line, classPrefix),
	}
}

// stripMsg carries one handled workspace event. The strip state travels in
// the message so Update never touches the engine while nextEvent runs.
type stripMsg struct {
	event  *i3.WorkspaceEvent
	line   string
	render bool
}

type streamErrMsg struct{ err error }

// nextEvent blocks on the event stream and folds the event into the
// engine. Exactly one instance runs at a time.
func (m model) nextEvent() tea.Msg {
	event, err := m.events.NextWorkspaceEvent()
	if err != nil {
		return streamErrMsg{err: err}
	}
	line, render, err := m.engine.Handle(event)
	if err != nil {
		return streamErrMsg{err: err}
	}
	return stripMsg{event: event, line: line, render: render}
}

// Init implements tea.Model.
func (m model) Init() tea.Cmd {
	return m.nextEvent
}

// Update implements tea.Model.
func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		case "c":
			m.log = nil
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case stripMsg:
		m.log = append(m.log, eventSummary(msg.event, msg.render))
		if len(m.log) > logLimit {
			m.log = m.log[len(m.log)-logLimit:]
		}
		if msg.render {
			m.line = msg.line
			m.cells = parseCells(msg.line, m.prefix)
		}
		return m, m.nextEvent

	case streamErrMsg:
		m.err = msg.err
		return m, tea.Quit
	}

	return m, nil
}
