// Package typing implements the incremental character reveal of a completed
// bot answer. It is purely presentational: the full text is already known
// when the reveal starts.
package typing

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// DefaultInterval between revealed characters.
const DefaultInterval = 20 * time.Millisecond

// TickMsg advances the reveal of the presenter with a matching ID. Ticks for
// other (older) presenters are ignored, which is what stops the timer chain
// of an abandoned reveal.
type TickMsg struct {
	ID int
}

// Model reveals content one rune at a time on a fixed timer interval. A
// presenter is keyed to one message and cannot be restarted mid-reveal; a new
// message gets a new presenter with a fresh ID.
type Model struct {
	id       int
	content  []rune
	revealed int
	interval time.Duration
}

// New creates a presenter for a completed answer.
func New(id int, content string, interval time.Duration) Model {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return Model{id: id, content: []rune(content), interval: interval}
}

// Init schedules the first tick.
func (m Model) Init() tea.Cmd {
	if m.Done() {
		return nil
	}
	return m.tick()
}

// Update advances the reveal on a matching tick.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	tick, ok := msg.(TickMsg)
	if !ok || tick.ID != m.id || m.Done() {
		return m, nil
	}
	m.revealed++
	if m.Done() {
		return m, nil
	}
	return m, m.tick()
}

func (m Model) tick() tea.Cmd {
	id := m.id
	return tea.Tick(m.interval, func(time.Time) tea.Msg {
		return TickMsg{ID: id}
	})
}

// View returns the revealed prefix of the content.
func (m Model) View() string {
	return string(m.content[:m.revealed])
}

// Done reports whether all characters have been revealed.
func (m Model) Done() bool {
	return m.revealed >= len(m.content)
}

// ID returns the presenter's message key.
func (m Model) ID() int {
	return m.id
}

// Finish reveals everything immediately and stops the timer chain.
func (m Model) Finish() Model {
	m.revealed = len(m.content)
	return m
}
