package capture

import (
	"image"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// CapturedMsg is emitted when a region has been captured and encoded.
type CapturedMsg struct {
	Data []byte
}

// CancelledMsg is emitted when the user aborts the capture (Esc or a
// selection without area).
type CancelledMsg struct{}

// FailedMsg is emitted when frame grabbing or encoding fails.
type FailedMsg struct {
	Err error
}

var (
	overlayDimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#4B5563"))
	overlaySelectionStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#F9FAFB")).
				Background(lipgloss.Color("#7C3AED"))
	overlayHintStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#9CA3AF")).
				Italic(true)
)

// Overlay is a full-viewport selection sub-model. The user drags a rectangle
// with the mouse; releasing captures the region, Esc cancels. The overlay
// owns the frame source and closes it on every exit path.
type Overlay struct {
	source FrameSource
	width  int
	height int

	start     image.Point
	current   image.Point
	selecting bool
	finished  bool
}

// NewOverlay creates a selection overlay over the given frame source.
func NewOverlay(source FrameSource, width, height int) *Overlay {
	return &Overlay{source: source, width: width, height: height}
}

// SetSize updates the viewport dimensions.
func (o *Overlay) SetSize(width, height int) {
	o.width = width
	o.height = height
}

// Close releases the frame source. Safe to call more than once.
func (o *Overlay) Close() {
	if o.source != nil {
		o.source.Close()
	}
}

// Update handles key and mouse events while capturing.
func (o *Overlay) Update(msg tea.Msg) (*Overlay, tea.Cmd) {
	if o.finished {
		return o, nil
	}
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "esc" {
			return o, o.cancel()
		}

	case tea.MouseMsg:
		switch msg.Action {
		case tea.MouseActionPress:
			if msg.Button == tea.MouseButtonLeft {
				o.selecting = true
				o.start = image.Pt(msg.X, msg.Y)
				o.current = o.start
			}
		case tea.MouseActionMotion:
			if o.selecting {
				o.current = image.Pt(msg.X, msg.Y)
			}
		case tea.MouseActionRelease:
			if !o.selecting {
				return o, nil
			}
			o.current = image.Pt(msg.X, msg.Y)
			return o, o.capture()
		}
	}
	return o, nil
}

// cancel aborts the capture: selection state is cleared unconditionally and
// the source is released.
func (o *Overlay) cancel() tea.Cmd {
	o.reset()
	o.finished = true
	o.Close()
	return func() tea.Msg { return CancelledMsg{} }
}

func (o *Overlay) capture() tea.Cmd {
	selection := image.Rectangle{Min: o.start, Max: o.current}.Canon()
	viewport := image.Pt(o.width, o.height)
	o.reset()
	o.finished = true

	source := o.source
	return func() tea.Msg {
		defer source.Close()
		data, err := Region(source, selection, viewport)
		if err != nil {
			if err == ErrEmptySelection {
				return CancelledMsg{}
			}
			return FailedMsg{Err: err}
		}
		return CapturedMsg{Data: data}
	}
}

func (o *Overlay) reset() {
	o.selecting = false
	o.start = image.Point{}
	o.current = image.Point{}
}

// View renders the selection overlay.
func (o *Overlay) View() string {
	selection := image.Rectangle{Min: o.start, Max: o.current}.Canon()
	var b strings.Builder
	for y := 0; y < o.height-1; y++ {
		for x := 0; x < o.width; x++ {
			if o.selecting && image.Pt(x, y).In(selection) {
				b.WriteString(overlaySelectionStyle.Render("█"))
			} else {
				b.WriteString(overlayDimStyle.Render("·"))
			}
		}
		b.WriteString("\n")
	}
	b.WriteString(overlayHintStyle.Render("Kéo chuột để chọn vùng chụp, Esc để hủy"))
	return b.String()
}
