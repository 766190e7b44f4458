package session

import (
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vinhuni-its/ragbot/internal/capture"
	"github.com/vinhuni-its/ragbot/internal/typing"
)

// Update handles messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	// The capture overlay swallows all input while active.
	if m.overlay != nil {
		switch msg := msg.(type) {
		case capture.CapturedMsg:
			m.overlay = nil
			m.attachBytes("capture", msg.Data)
			m.textarea.Focus()
			return m, tea.Batch(textarea.Blink, tea.DisableMouse)

		case capture.CancelledMsg:
			m.overlay = nil
			m.textarea.Focus()
			return m, tea.Batch(textarea.Blink, tea.DisableMouse)

		case capture.FailedMsg:
			m.overlay = nil
			m.attachmentErr = msg.Err
			m.textarea.Focus()
			return m, tea.Batch(textarea.Blink, tea.DisableMouse)

		case tea.WindowSizeMsg:
			m.width = msg.Width
			m.height = msg.Height
			m.overlay.SetSize(msg.Width, msg.Height)
			return m, nil

		default:
			var cmd tea.Cmd
			m.overlay, cmd = m.overlay.Update(msg)
			return m, cmd
		}
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Alt {
			switch msg.String() {
			case "alt+p":
				if entry, ok := m.input.Previous(m.textarea.Value()); ok {
					m.textarea.SetValue(entry)
					m.inputNavigating = true
					m.adjustTextareaHeight()
					return m, nil
				}
			case "alt+n":
				if entry, ok := m.input.Next(); ok {
					m.textarea.SetValue(entry)
					m.inputNavigating = true
					m.adjustTextareaHeight()
					return m, nil
				}
			}
		}

		switch msg.Type {
		case tea.KeyCtrlC:
			m.quitting = true
			return m, tea.Quit

		case tea.KeyCtrlJ:
			if cmd := m.handleInput(); cmd != nil {
				return m, cmd
			}
			return m, nil
		}

		if m.inputNavigating {
			switch msg.Type {
			case tea.KeyRunes, tea.KeyBackspace, tea.KeyDelete:
				m.input.Reset()
				m.inputNavigating = false
			}
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.recalculateLayout()

	case turnResolvedMsg:
		return m, m.resolveTurn(msg)

	case typing.TickMsg:
		var cmd tea.Cmd
		m.typing, cmd = m.typing.Update(msg)
		if m.typing.Done() {
			m.typingActive = false
		}
		m.viewport.SetContent(m.renderMessages())
		m.viewport.GotoBottom()
		return m, cmd

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)
		// The pending placeholder embeds the spinner frame.
		if m.inFlight && m.ready {
			m.viewport.SetContent(m.renderMessages())
		}
	}

	if !m.inFlight {
		var cmd tea.Cmd
		m.textarea, cmd = m.textarea.Update(msg)
		cmds = append(cmds, cmd)
		m.adjustTextareaHeight()
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// handleInput routes a Ctrl+J press: slash commands act on the attachment
// slot, anything else goes through the send guard.
func (m *Model) handleInput() tea.Cmd {
	text := strings.TrimSpace(m.textarea.Value())
	if !strings.HasPrefix(text, "/") {
		return m.submit()
	}

	command, argument, _ := strings.Cut(text, " ")
	switch command {
	case "/attach":
		if argument = strings.TrimSpace(argument); argument != "" {
			m.attachFile(argument)
			m.textarea.Reset()
		}
	case "/paste":
		m.attachClipboard()
		m.textarea.Reset()
	case "/capture":
		m.textarea.Reset()
		return m.startCapture()
	case "/remove":
		m.clearAttachment()
		m.textarea.Reset()
	default:
		return m.submit()
	}
	return nil
}

// startCapture opens the display source and enters overlay mode. A grab
// failure lands in the attachment error slot like any other bad candidate.
func (m *Model) startCapture() tea.Cmd {
	source, err := m.grabFrame()
	if err != nil {
		m.attachmentErr = err
		return nil
	}
	m.overlay = capture.NewOverlay(source, m.width, m.height)
	m.textarea.Blur()
	return tea.EnableMouseAllMotion
}
