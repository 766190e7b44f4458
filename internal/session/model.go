// Package session implements the Bubble Tea chat session shared by the
// general assistant and the course assistant: transcript, rolling history,
// attachments, screen capture and the per-turn query state machine.
package session

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vinhuni-its/ragbot/internal/api"
	"github.com/vinhuni-its/ragbot/internal/attachment"
	"github.com/vinhuni-its/ragbot/internal/capture"
	"github.com/vinhuni-its/ragbot/internal/configuration"
	"github.com/vinhuni-its/ragbot/internal/course"
	"github.com/vinhuni-its/ragbot/internal/debug"
	"github.com/vinhuni-its/ragbot/internal/history"
	"github.com/vinhuni-its/ragbot/internal/markdown"
	"github.com/vinhuni-its/ragbot/internal/styles"
	"github.com/vinhuni-its/ragbot/internal/typing"
)

var log = debug.GetLogger()

// Variant selects which assistant the session drives.
type Variant int

const (
	// VariantGeneral is the university-wide Q&A assistant.
	VariantGeneral Variant = iota
	// VariantCourse is the course-scoped e-learning assistant.
	VariantCourse
)

// Canned transcript texts, carried from the portal.
const (
	generalGreeting = "Xin chào! Tôi là trợ lý AI của Trường Đại học Vinh. Tôi có thể giúp bạn trả lời các câu hỏi về trường. Hãy đặt câu hỏi của bạn, tôi sẽ tìm kiếm thông tin trong tài liệu của trường để trả lời bạn một cách chính xác nhất."

	generalApology = "Rất tiếc, đã xảy ra lỗi khi xử lý yêu cầu của bạn."

	visionPrompt = `You are an AI assistant for educational support. Analyze the provided image and explain its significance in the context of the course. Focus on the following aspects:

1. **Visual Elements**: Identify and describe key features of the image.
2. **Educational Context**: Relate the image to relevant course topics or concepts.
3. **Insightful Explanation**: Provide a detailed analysis and interpretation.
4. **Supporting Examples**: Reference similar concepts or examples from the course material.

Your goal is to enhance the student's understanding through clear and informative responses.`
)

// The course assistant sends the last turns of the transcript as context.
const courseHistoryWindow = 4

// Querier is the slice of the API client the session needs.
type Querier interface {
	QueryRAG(ctx context.Context, request *api.QueryRequest) (*api.QueryResponse, error)
	IsConnected() bool
}

// Options configures a session.
type Options struct {
	Config *configuration.Config
	Client Querier
	// Collections scopes general-variant queries. Empty means all.
	Collections []string
	// Course drives the course variant. Required for VariantCourse.
	Course *course.Course
	// GrabFrame opens the display source for screen capture.
	GrabFrame func() (capture.FrameSource, error)
}

// Model is the Bubble Tea model for a chat session.
type Model struct {
	ctx     context.Context
	config  *configuration.Config
	client  Querier
	variant Variant

	course      *course.Course
	collections []string

	messages []*Message
	window   *history.Window

	// turn is the id of the latest dispatched turn. A resolution applies
	// only when its id still matches, so stale responses are discarded.
	turn     int64
	inFlight bool

	attachment    *attachment.Candidate
	attachmentErr error

	// UI components
	textarea textarea.Model
	viewport viewport.Model
	spinner  spinner.Model
	renderer *markdown.Renderer

	typing       typing.Model
	typingActive bool

	overlay   *capture.Overlay
	grabFrame func() (capture.FrameSource, error)

	input           *history.Input
	inputNavigating bool

	width    int
	height   int
	ready    bool
	quitting bool
	err      error
}

// New creates a session model for the given variant.
func New(ctx context.Context, variant Variant, opts Options) (*Model, error) {
	ta := textarea.New()
	ta.Placeholder = "Nhập câu hỏi... (Ctrl+J gửi, /attach /paste /capture /remove, Ctrl+C thoát)"
	ta.Focus()
	ta.CharLimit = 0
	ta.SetWidth(styles.DefaultTextareaWidth)
	ta.SetHeight(styles.MinTextareaHeight)
	ta.ShowLineNumbers = false
	ta.KeyMap.InsertNewline.SetEnabled(true)
	ta.Prompt = ""

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.SpinnerStyle

	renderer, err := markdown.NewRenderer(styles.DefaultTextareaWidth)
	if err != nil {
		return nil, err
	}

	windowSize := opts.Config.Chat.HistoryWindow
	if variant == VariantCourse {
		windowSize = courseHistoryWindow
	}

	grabFrame := opts.GrabFrame
	if grabFrame == nil {
		grabFrame = func() (capture.FrameSource, error) {
			return capture.NewDisplayGrabber(0)
		}
	}

	m := &Model{
		ctx:         ctx,
		config:      opts.Config,
		client:      opts.Client,
		variant:     variant,
		course:      opts.Course,
		collections: opts.Collections,
		window:      history.NewWindow(windowSize),
		textarea:    ta,
		spinner:     sp,
		renderer:    renderer,
		grabFrame:   grabFrame,
		input:       history.NewInput(),
	}
	m.seedGreeting()
	return m, nil
}

// Init initializes the model.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(textarea.Blink, m.spinner.Tick)
}

// SetCourse switches the course context: full reset of transcript and rolling
// history, re-seeded with a course-specific greeting.
func (m *Model) SetCourse(c *course.Course) {
	m.course = c
	m.messages = nil
	m.window.Clear()
	m.attachment = nil
	m.attachmentErr = nil
	m.inFlight = false
	m.typingActive = false
	m.seedGreeting()
	if m.ready {
		m.viewport.SetContent(m.renderMessages())
		m.viewport.GotoBottom()
	}
}

func (m *Model) seedGreeting() {
	greeting := generalGreeting
	if m.variant == VariantCourse && m.course != nil {
		greeting = courseGreeting(m.course)
	}
	m.messages = append(m.messages, newGreeting(greeting))
	m.window.Append(history.RoleAssistant, greeting)
}

func courseGreeting(c *course.Course) string {
	return fmt.Sprintf(`Chào mừng bạn đến với trợ lý học tập cho môn %s! Tôi sẽ tập trung trả lời các câu hỏi liên quan đến:
- Nội dung bài giảng và tài liệu học tập
- Bài tập và dự án của môn học
- Thông báo và thời hạn quan trọng
- Các vấn đề liên quan đến môn học

Bạn có thể hỏi bất cứ điều gì về môn học này!`, c.Title)
}

func (m *Model) typingInterval() time.Duration {
	return time.Duration(m.config.Chat.TypingIntervalMs) * time.Millisecond
}

// Messages exposes the transcript. Used by views and tests.
func (m *Model) Messages() []*Message {
	return m.messages
}

// Window exposes the rolling history window.
func (m *Model) Window() *history.Window {
	return m.window
}

// AttachmentError returns the current attachment error slot.
func (m *Model) AttachmentError() error {
	return m.attachmentErr
}

// InFlight reports whether a turn is awaiting resolution.
func (m *Model) InFlight() bool {
	return m.inFlight
}
