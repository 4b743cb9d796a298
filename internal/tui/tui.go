// Package tui renders a local match with Bubble Tea. The model owns the
// engine outright: every engine call happens inside Update, so the
// synchronous engine needs no locking, and pacing between pause points is
// done with tick commands rather than sleeps.
package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/pokersim/headsup/internal/brain"
	"github.com/pokersim/headsup/internal/engine"
)

type resumeMsg struct{}
type npcActMsg struct{}

// Model is the Bubble Tea model for a heads-up match against the NPC.
type Model struct {
	eng    *engine.Engine
	npc    *brain.Brain
	logger *log.Logger
	pace   time.Duration

	logView viewport.Model
	input   textinput.Model

	gameLog []string
	pending []string
	errLine string

	width    int
	height   int
	ready    bool
	quitting bool
}

// New builds the model and wires its event log into the engine. Register
// happens here so the caller cannot forget it.
func New(eng *engine.Engine, npc *brain.Brain, pace time.Duration, logger *log.Logger) *Model {
	vp := viewport.New(10, 5)

	ti := textinput.New()
	ti.Placeholder = "fold, check, call, raise <amount>, or enter to deal"
	ti.Prompt = "> "
	ti.PromptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#04B575")).Bold(true)
	ti.CharLimit = 40
	ti.Focus()

	m := &Model{
		eng:     eng,
		npc:     npc,
		logger:  logger.WithPrefix("tui"),
		pace:    pace,
		logView: vp,
		input:   ti,
	}
	eng.AddObserver(engine.ObserverFunc(m.onEvent))
	return m
}

// onEvent runs synchronously inside engine calls made from Update.
func (m *Model) onEvent(ev engine.Event) {
	if line := FormatEvent(ev); line != "" {
		m.pending = append(m.pending, strings.Split(line, "\n")...)
	}
}

func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.logView.Width = msg.Width - 2
		m.logView.Height = max(msg.Height-8, 3)
		m.ready = true
		m.refreshLog()
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.quitting = true
			return m, tea.Quit
		case "enter":
			cmd := m.handleCommand(strings.TrimSpace(m.input.Value()))
			m.input.SetValue("")
			return m, cmd
		}

	case resumeMsg:
		if m.eng.Paused() {
			if err := m.eng.Resume(); err != nil {
				m.errLine = err.Error()
			}
		}
		return m, m.advance()

	case npcActMsg:
		return m, m.npcAct()
	}

	var cmds []tea.Cmd
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	cmds = append(cmds, cmd)
	m.logView, cmd = m.logView.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

// handleCommand interprets a line of player input.
func (m *Model) handleCommand(line string) tea.Cmd {
	m.errLine = ""

	if line == "quit" {
		m.quitting = true
		return tea.Quit
	}

	if line == "" {
		if m.eng.Phase() == engine.GameOver {
			m.quitting = true
			return tea.Quit
		}
		if err := m.eng.StartNewHand(); err != nil {
			m.errLine = err.Error()
			return nil
		}
		return m.advance()
	}

	fields := strings.Fields(line)
	action, err := engine.ParseAction(fields[0])
	if err != nil {
		m.errLine = fmt.Sprintf("unknown command %q", line)
		return nil
	}

	amount := 0
	if action == engine.Raise {
		if len(fields) < 2 {
			m.errLine = "raise needs an amount, e.g. raise 60"
			return nil
		}
		if _, err := fmt.Sscanf(fields[1], "%d", &amount); err != nil {
			m.errLine = fmt.Sprintf("bad amount %q", fields[1])
			return nil
		}
	}

	if err := m.eng.SubmitAction(engine.PlayerSide, action, amount); err != nil {
		m.errLine = err.Error()
		return nil
	}
	return m.advance()
}

// advance flushes buffered event lines and schedules whatever keeps the
// match moving: a resume tick while paused, or an NPC tick when the engine
// waits on the opponent.
func (m *Model) advance() tea.Cmd {
	m.flushPending()

	switch {
	case m.eng.Paused():
		return m.tick(resumeMsg{})
	case m.eng.Phase() == engine.AwaitingInput:
		if valid, err := m.eng.ValidActions(); err == nil && valid.Side == engine.NPCSide {
			return m.tick(npcActMsg{})
		}
	}
	return nil
}

func (m *Model) npcAct() tea.Cmd {
	valid, err := m.eng.ValidActions()
	if err != nil || valid.Side != engine.NPCSide {
		return nil
	}

	decision := m.npc.Decide(m.eng.DecisionContext())
	if err := m.eng.SubmitAction(engine.NPCSide, decision.Action, decision.Amount); err != nil {
		m.logger.Warn("npc decision rejected, folding", "error", err)
		decision = engine.Decision{Action: engine.Fold}
		if err := m.eng.SubmitAction(engine.NPCSide, engine.Fold, 0); err != nil {
			m.errLine = err.Error()
			return nil
		}
	}
	m.pending = append(m.pending, FormatNPCAction(decision))
	return m.advance()
}

func (m *Model) tick(msg tea.Msg) tea.Cmd {
	if m.pace <= 0 {
		return func() tea.Msg { return msg }
	}
	return tea.Tick(m.pace, func(time.Time) tea.Msg { return msg })
}

func (m *Model) flushPending() {
	if len(m.pending) == 0 {
		return
	}
	m.gameLog = append(m.gameLog, m.pending...)
	m.pending = nil
	m.refreshLog()
}

func (m *Model) refreshLog() {
	m.logView.SetContent(strings.Join(m.gameLog, "\n"))
	m.logView.GotoBottom()
}

func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	if !m.ready {
		return "loading..."
	}

	var b strings.Builder

	b.WriteString(headerStyle.Render(fmt.Sprintf("HEADS-UP  you $%d  opponent $%d  pot $%d",
		m.eng.Stack(engine.PlayerSide), m.eng.Stack(engine.NPCSide), m.eng.Pot())))
	b.WriteString("\n\n")
	b.WriteString(m.logView.View())
	b.WriteString("\n")

	if board := m.eng.Board(); len(board) > 0 {
		b.WriteString("Board: " + FormatCards(board) + "\n")
	}
	if cards := m.eng.PlayerCards(); len(cards) > 0 {
		b.WriteString("Your hand: " + FormatCards(cards) + "\n")
	}

	b.WriteString(m.statusLine())
	b.WriteString("\n")
	b.WriteString(m.input.View())
	if m.errLine != "" {
		b.WriteString("\n" + errorStyle.Render(m.errLine))
	}
	return b.String()
}

func (m *Model) statusLine() string {
	switch {
	case m.eng.Phase() == engine.GameOver:
		return infoStyle.Render("match over, enter to exit")
	case m.eng.Phase() == engine.AwaitingInput:
		if valid, err := m.eng.ValidActions(); err == nil && valid.Side == engine.PlayerSide {
			return actionsStyle.Render(describeActions(valid))
		}
		return infoStyle.Render("opponent is thinking...")
	case m.eng.Paused():
		return infoStyle.Render("dealing...")
	default:
		return infoStyle.Render("enter to deal the next hand")
	}
}

func describeActions(valid engine.ValidActions) string {
	var parts []string
	if valid.CanCheck {
		parts = append(parts, "check")
	} else {
		parts = append(parts, fmt.Sprintf("call $%d", valid.CallAmount), "fold")
	}
	if valid.CanRaise {
		parts = append(parts, fmt.Sprintf("raise %d-%d", valid.RaiseMin, valid.RaiseMax))
	}
	return "your move: " + strings.Join(parts, " | ")
}
