// Package terminal plays the engine inside a terminal using Bubble Tea.
package terminal

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/plus3/blockfall/engine"
	"github.com/plus3/blockfall/frontend"
)

const (
	filledCell = "██"
	emptyCell  = "  "
)

var (
	borderStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, true, true, true).
			BorderForeground(lipgloss.Color(hexColor(frontend.BorderColor.R, frontend.BorderColor.G, frontend.BorderColor.B)))
	statusStyle = lipgloss.NewStyle().Faint(true)
)

// tickMsg drives one engine frame.
type tickMsg time.Time

func tickCmd(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Model is the Bubble Tea model wrapping an engine. Key presses are queued
// and handed to the engine on the next tick.
type Model struct {
	engine   *engine.Engine
	interval time.Duration
	last     time.Time
	pending  []engine.Event
	quitting bool
}

// NewModel creates a model that steps e frameRate times per second.
func NewModel(e *engine.Engine, frameRate int) Model {
	if frameRate <= 0 {
		frameRate = 60
	}
	return Model{
		engine:   e,
		interval: time.Second / time.Duration(frameRate),
	}
}

func (m Model) Init() tea.Cmd {
	return tickCmd(m.interval)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			m.engine.Step(0, append(m.pending, engine.EventQuit)...)
			m.pending = nil
			m.quitting = true
			return m, tea.Quit
		}
		if ev, ok := keyEvent(msg); ok {
			m.pending = append(m.pending, ev)
		}
		return m, nil

	case tickMsg:
		now := time.Time(msg)
		var dt time.Duration
		if !m.last.IsZero() {
			dt = now.Sub(m.last)
		}
		m.last = now

		events := m.pending
		m.pending = nil
		if m.engine.Step(dt, events...) {
			m.quitting = true
			return m, tea.Quit
		}
		return m, tickCmd(m.interval)
	}
	return m, nil
}

func keyEvent(msg tea.KeyMsg) (engine.Event, bool) {
	switch msg.Type {
	case tea.KeyEsc:
		return engine.EventQuit, true
	case tea.KeySpace:
		return engine.EventRotate, true
	case tea.KeyLeft:
		return engine.EventMoveLeft, true
	case tea.KeyRight:
		return engine.EventMoveRight, true
	case tea.KeyRunes:
		switch string(msg.Runes) {
		case "q":
			return engine.EventQuit, true
		case " ":
			return engine.EventRotate, true
		}
	}
	return engine.EventNone, false
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}
	return Render(frontend.Capture(m.engine))
}

// Render draws a snapshot as coloured double-width blocks inside an open-top
// frame, followed by a status line.
func Render(snap frontend.Snapshot) string {
	var b strings.Builder
	for row := range snap.Blocks {
		if row > 0 {
			b.WriteByte('\n')
		}
		for _, block := range snap.Blocks[row] {
			if !block.Filled {
				b.WriteString(emptyCell)
				continue
			}
			style := lipgloss.NewStyle().Foreground(lipgloss.Color(hexColor(block.Color.R, block.Color.G, block.Color.B)))
			b.WriteString(style.Render(filledCell))
		}
	}

	status := fmt.Sprintf("%s %s  ticks %d  locked %d", snap.Piece.Kind, snap.Phase, snap.Ticks, snap.Locked)
	return lipgloss.JoinVertical(lipgloss.Left, borderStyle.Render(b.String()), statusStyle.Render(status))
}

func hexColor(r, g, b uint8) string {
	return fmt.Sprintf("#%02x%02x%02x", r, g, b)
}

// Run blocks until the player quits or the terminal program exits.
func Run(e *engine.Engine, frameRate int, opts ...tea.ProgramOption) error {
	_, err := tea.NewProgram(NewModel(e, frameRate), opts...).Run()
	return err
}
