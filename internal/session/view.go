package session

import (
	"fmt"
	"strings"

	"github.com/vinhuni-its/ragbot/internal/history"
	"github.com/vinhuni-its/ragbot/internal/styles"
)

// View renders the model.
func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	if !m.ready {
		return "Đang khởi tạo..."
	}
	if m.overlay != nil {
		return m.overlay.View()
	}

	var b strings.Builder

	b.WriteString(m.renderTitle())
	b.WriteString("\n")

	b.WriteString(styles.ViewportStyle.Render(m.viewport.View()))
	b.WriteString("\n")

	if line := m.renderAttachmentLine(); line != "" {
		b.WriteString(line)
		b.WriteString("\n")
	}

	if m.inFlight {
		b.WriteString(fmt.Sprintf("%s Đang xử lý...\n", m.spinner.View()))
	} else {
		b.WriteString(styles.TextAreaStyle.Render(m.textarea.View()))
		b.WriteString("\n")
	}

	if m.err != nil {
		b.WriteString(styles.ErrorStyle.Render(fmt.Sprintf("Lỗi: %v", m.err)))
		b.WriteString("\n")
	}

	return b.String()
}

func (m *Model) renderTitle() string {
	var label string
	switch m.variant {
	case VariantCourse:
		label = " 📚 Trợ lý học tập"
		if m.course != nil {
			label = fmt.Sprintf(" 📚 %s │ %s", m.course.Code, m.course.Title)
		}
	default:
		label = " 🎓 Trợ lý AI Trường Đại học Vinh"
	}

	status := styles.StatusDisconnectedStyle.Render(" ● offline ")
	if m.client.IsConnected() {
		status = styles.StatusConnectedStyle.Render(" ● online ")
	}
	return styles.TitleStyle.Width(m.width).Render(label + " │" + status)
}

func (m *Model) renderAttachmentLine() string {
	if m.attachmentErr != nil {
		return styles.AttachmentErrorStyle.Render(fmt.Sprintf("⚠ %v (/remove để xóa)", m.attachmentErr))
	}
	if m.attachment != nil {
		return styles.AttachmentStyle.Render(fmt.Sprintf("📎 %s (%d KB)", m.attachment.Name, m.attachment.Size()/1024))
	}
	return ""
}

func (m *Model) renderMessages() string {
	var b strings.Builder

	for i, msg := range m.messages {
		if i > 0 {
			b.WriteString("\n\n")
		}
		switch msg.Role {
		case history.RoleUser:
			content := msg.Content
			if msg.ImageName != "" {
				content = fmt.Sprintf("%s\n📎 %s", content, msg.ImageName)
			}
			b.WriteString(styles.UserMessageStyle.Render(content))

		case history.RoleAssistant:
			b.WriteString(m.renderBotMessage(msg))
		}
	}

	return b.String()
}

func (m *Model) renderBotMessage(msg *Message) string {
	if msg.Pending {
		return styles.BotMessageStyle.Render(m.spinner.View() + " ...")
	}

	// While the typing presenter owns this message, show the revealed prefix
	// as plain text. Markdown rendering happens once the reveal completes.
	if m.typingActive && msg.Turn == int64(m.typing.ID()) && !m.typing.Done() {
		return styles.BotMessageStyle.Render(m.typing.View() + "▋")
	}

	if msg.Failed {
		return styles.MessageErrorStyle.Render(msg.Content)
	}

	var b strings.Builder
	b.WriteString(styles.BotMessageStyle.Render(m.renderer.RenderCached(msg.ID, msg.Content)))

	if msg.IsFallback {
		b.WriteString("\n")
		b.WriteString(styles.FallbackStyle.Render("Câu trả lời dựa trên kiến thức chung của AI"))
	}
	if len(msg.Sources) > 0 {
		b.WriteString("\n")
		b.WriteString(styles.SourceLabelStyle.Render(fmt.Sprintf("Nguồn tham khảo (%d)", len(msg.Sources))))
		for _, source := range msg.Sources {
			b.WriteString("\n")
			line := source.Metadata.OriginalFilename
			if line == "" {
				line = styles.Truncate(source.Text, styles.TruncateLength)
			}
			b.WriteString(styles.SourceStyle.Render("• " + line))
		}
	}
	return b.String()
}
