package session

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vinhuni-its/ragbot/internal/api"
	"github.com/vinhuni-its/ragbot/internal/attachment"
	"github.com/vinhuni-its/ragbot/internal/history"
	"github.com/vinhuni-its/ragbot/internal/special"
	"github.com/vinhuni-its/ragbot/internal/typing"
)

// turnResolvedMsg carries the outcome of one dispatched turn back into the
// update loop. Its turn id is compared against the latest dispatched turn;
// stale resolutions are discarded.
type turnResolvedMsg struct {
	turn       int64
	answer     string
	sources    []api.Source
	isFallback bool
	err        error
}

// submit runs the send guard and, when it passes, appends the user message
// and its pending placeholder, clears the input optimistically, and returns
// the command resolving the turn. A nil return means the guard rejected the
// submission.
func (m *Model) submit() tea.Cmd {
	if m.inFlight {
		return nil
	}
	if m.attachmentErr != nil {
		return nil
	}
	query := strings.TrimSpace(m.textarea.Value())
	if query == "" && m.attachment == nil {
		return nil
	}
	if m.variant == VariantCourse && m.course == nil {
		return nil
	}

	// Encode the attachment before touching any state, so a payload failure
	// lands in the error slot and blocks the submission.
	var imagePayload, imageName string
	if m.attachment != nil {
		payload, err := m.attachment.Payload()
		if err != nil {
			m.attachmentErr = err
			return nil
		}
		imagePayload = payload
		imageName = m.attachment.Name
	}

	m.turn++
	turn := m.turn
	m.inFlight = true

	m.messages = append(m.messages, newUserMessage(turn, query, imageName))
	m.messages = append(m.messages, newPlaceholder(turn))

	m.input.Add(query)
	m.inputNavigating = false
	m.textarea.Reset()
	m.attachment = nil
	m.attachmentErr = nil

	m.recalculateLayout()
	m.viewport.GotoBottom()

	// Special queries resolve locally, before any network dispatch.
	if m.variant == VariantGeneral && imagePayload == "" {
		if result := special.CheckQuery(query); result.IsSpecial {
			m.window.Append(history.RoleUser, query)
			return func() tea.Msg {
				return turnResolvedMsg{turn: turn, answer: result.Response}
			}
		}
	}

	request := m.buildRequest(query, imagePayload)
	m.window.Append(history.RoleUser, query)
	return m.dispatch(turn, request)
}

// buildRequest assembles the backend query for the current variant. The
// history snapshot is taken before the current query is appended to the
// window, matching the portal's request shape.
func (m *Model) buildRequest(query, imagePayload string) *api.QueryRequest {
	request := &api.QueryRequest{
		Query:     query,
		ImageData: imagePayload,
		HasImage:  imagePayload != "",
	}

	entries := m.window.Entries()
	chatHistory := make([]api.HistoryEntry, len(entries))
	for i, entry := range entries {
		chatHistory[i] = api.HistoryEntry{Role: entry.Role, Content: entry.Content}
	}

	switch m.variant {
	case VariantCourse:
		cfg := m.config.Elearning
		request.TopK = cfg.TopK
		request.TopN = cfg.TopN
		request.Temperature = cfg.Temperature
		request.MaxTokens = cfg.MaxTokens
		request.Model = cfg.Model
		request.FallbackToLLM = true
		request.CollectionNames = []string{m.course.ID}
		request.Context = &api.QueryContext{
			CourseTitle:       m.course.Title,
			CourseCode:        m.course.Code,
			CourseDescription: m.course.Description,
			Chapters:          m.course.ChapterTitles(),
			ChatHistory:       chatHistory,
		}

	default:
		cfg := m.config.Chat
		request.TopK = cfg.TopK
		request.TopN = cfg.TopN
		request.Temperature = cfg.Temperature
		request.MaxTokens = cfg.MaxTokens
		request.Model = cfg.Model
		request.ChatHistory = chatHistory
		if len(m.collections) > 0 {
			request.CollectionNames = m.collections
		}
	}

	if imagePayload != "" {
		request.Model = m.config.Elearning.VisionModel
		request.Prompt = visionPrompt
	}
	return request
}

func (m *Model) dispatch(turn int64, request *api.QueryRequest) tea.Cmd {
	ctx := m.ctx
	client := m.client
	return func() tea.Msg {
		response, err := client.QueryRAG(ctx, request)
		if err != nil {
			log.Error("turn failed", "turn", turn, "error", err)
			return turnResolvedMsg{turn: turn, err: err}
		}
		return turnResolvedMsg{
			turn:       turn,
			answer:     response.Answer,
			sources:    response.Sources,
			isFallback: response.IsFallback,
		}
	}
}

// resolveTurn replaces the placeholder of the resolved turn in place and
// appends the bot side to the rolling history. Returns the typing presenter
// command for the revealed answer, or nil when the resolution is stale.
func (m *Model) resolveTurn(msg turnResolvedMsg) tea.Cmd {
	if msg.turn != m.turn {
		log.Warn("discarding stale turn resolution", "turn", msg.turn, "latest", m.turn)
		return nil
	}
	placeholder := m.placeholderFor(msg.turn)
	if placeholder == nil {
		return nil
	}
	m.inFlight = false

	content := msg.answer
	if msg.err != nil {
		content = generalApology
		placeholder.Failed = true
	}
	placeholder.Pending = false
	placeholder.Content = content
	placeholder.Sources = msg.sources
	placeholder.IsFallback = msg.isFallback
	m.window.Append(history.RoleAssistant, content)

	m.typing = typing.New(int(msg.turn), content, m.typingInterval())
	m.typingActive = true
	m.viewport.SetContent(m.renderMessages())
	m.viewport.GotoBottom()
	return m.typing.Init()
}

func (m *Model) placeholderFor(turn int64) *Message {
	for i := len(m.messages) - 1; i >= 0; i-- {
		if m.messages[i].Pending && m.messages[i].Turn == turn {
			return m.messages[i]
		}
	}
	return nil
}

// attachFile loads a file attachment into the single attachment slot. Any
// failure occupies the error slot and blocks submission until cleared.
func (m *Model) attachFile(path string) {
	candidate, err := attachment.FromFile(path)
	if err != nil {
		m.attachment = nil
		m.attachmentErr = err
		return
	}
	m.attachment = candidate
	m.attachmentErr = nil
}

func (m *Model) attachBytes(name string, data []byte) {
	candidate, err := attachment.FromBytes(name, data)
	if err != nil {
		m.attachment = nil
		m.attachmentErr = err
		return
	}
	m.attachment = candidate
	m.attachmentErr = nil
}

func (m *Model) attachClipboard() {
	candidate, err := attachment.FromClipboard()
	if err != nil {
		m.attachment = nil
		m.attachmentErr = err
		return
	}
	m.attachment = candidate
	m.attachmentErr = nil
}

// clearAttachment empties both the attachment and its error slot.
func (m *Model) clearAttachment() {
	m.attachment = nil
	m.attachmentErr = nil
}
