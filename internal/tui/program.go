package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/eclipsecodm7-debug/exploding-kittens/internal/game"
)

// Model is the Bubble Tea model for the local game: a scrollable log pane
// over a command input, driving a started session.
type Model struct {
	session *game.Session
	logger  *log.Logger

	// UI components
	logViewport viewport.Model
	input       textinput.Model

	gameLog  []string
	quitting bool

	// Dimensions
	width  int
	height int
}

// NewModel creates the model for an already-started session. startEvents is
// the event log from Start, shown before the first prompt.
func NewModel(session *game.Session, startEvents []game.Event, logger *log.Logger) *Model {
	// Sized properly when the first WindowSizeMsg arrives
	vp := viewport.New(10, 5)
	vp.SetContent("")

	ti := textinput.New()
	ti.Placeholder = "draw | play <index> [target] | favor <card> | state | quit"
	ti.Focus()
	ti.CharLimit = 100
	ti.Width = 80
	ti.PromptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#04B575")).Bold(true)
	ti.TextStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FAFAFA"))
	ti.Prompt = "> "

	m := &Model{
		session:     session,
		logger:      logger.WithPrefix("tui"),
		logViewport: vp,
		input:       ti,
	}
	m.appendLog(RenderState(session.State()))
	m.appendLog(RenderEvents(startEvents))
	m.appendLog(RenderHand(session.State().Players[0].Hand))
	return m
}

// Init initializes the model
func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.logViewport.Width = msg.Width - 2
		m.logViewport.Height = msg.Height - 5
		if m.logViewport.Height < 1 {
			m.logViewport.Height = 1
		}
		m.refreshViewport()

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.quitting = true
			return m, tea.Sequence(tea.ClearScreen, tea.Quit)
		case "enter":
			if cmd := m.handleCommand(strings.TrimSpace(m.input.Value())); cmd != nil {
				return m, cmd
			}
			m.input.SetValue("")
		case "pgup":
			m.logViewport.HalfPageUp()
		case "pgdown":
			m.logViewport.HalfPageDown()
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	cmds = append(cmds, cmd)
	m.logViewport, cmd = m.logViewport.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// View renders the model
func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	logPane := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#626262")).
		Width(m.width - 2).
		Render(m.logViewport.View())

	return lipgloss.JoinVertical(lipgloss.Left,
		HeaderStyle.Render("Exploding Kittens"),
		m.statusLine(),
		logPane,
		m.input.View(),
	)
}

func (m *Model) statusLine() string {
	state := m.session.State()
	if state.Ended {
		return WinnerStyle.Render("Game over — esc to exit")
	}

	status := InfoStyle.Render(fmt.Sprintf("deck: %d  discarded: %d", state.DeckSize, state.Discarded))
	if state.OwedDraws > 1 {
		status += DangerStyle.Render(fmt.Sprintf("  owed draws: %d", state.OwedDraws))
	}
	if state.Pending != nil {
		status += WarningStyle.Render("  favor pending")
	}
	return status
}

// handleCommand parses and executes one input line against the session
func (m *Model) handleCommand(line string) tea.Cmd {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}
	m.logger.Debug("command", "input", line)

	switch fields[0] {
	case "quit", "exit":
		m.quitting = true
		return tea.Sequence(tea.ClearScreen, tea.Quit)
	case "state":
		m.appendLog(RenderState(m.session.State()))
		m.appendLog(RenderPending(m.session.State().Pending))
	case "draw":
		m.report(m.session.Draw())
	case "play":
		if len(fields) < 2 {
			m.appendLog(ErrorStyle.Render("usage: play <index> [target]"))
			return nil
		}
		idx, err := strconv.Atoi(fields[1])
		if err != nil {
			m.appendLog(ErrorStyle.Render("card index must be a number"))
			return nil
		}
		m.report(m.session.Play(idx, strings.Join(fields[2:], " ")))
	case "favor":
		if len(fields) < 2 {
			m.appendLog(ErrorStyle.Render("usage: favor <card name>"))
			return nil
		}
		m.report(m.session.ResolveFavor(strings.Join(fields[1:], " ")))
	default:
		m.appendLog(ErrorStyle.Render("unknown command: " + fields[0]))
	}

	if m.session.State().Ended {
		m.appendLog(RenderState(m.session.State()))
	}
	return nil
}

// report renders an action's outcome. A rejection can still carry events
// when the play mutated state before failing (a wasted Favor).
func (m *Model) report(res *game.ActionResult, err error) {
	if err != nil {
		if res != nil {
			m.appendLog(RenderEvents(res.Events))
		}
		m.appendLog(ErrorStyle.Render(err.Error()))
		return
	}
	m.appendLog(RenderEvents(res.Events))
	if res.Pending != nil {
		m.appendLog(RenderPending(res.Pending))
	}
	m.appendLog(RenderHand(res.HumanHand))
}

func (m *Model) appendLog(s string) {
	s = strings.TrimRight(s, "\n")
	if s == "" {
		return
	}
	m.gameLog = append(m.gameLog, s)
	m.refreshViewport()
}

func (m *Model) refreshViewport() {
	m.logViewport.SetContent(strings.Join(m.gameLog, "\n"))
	m.logViewport.GotoBottom()
}
