package session

import (
	"github.com/google/uuid"

	"github.com/vinhuni-its/ragbot/internal/api"
	"github.com/vinhuni-its/ragbot/internal/history"
)

// Message is one transcript entry. Bot messages created by a submission start
// out pending and are resolved in place by the turn that owns them.
type Message struct {
	// ID keys the message in render caches. Unique across session resets,
	// unlike turn numbers, which greetings do not have.
	ID string
	// Turn that produced this message. Zero for seeded greetings.
	Turn int64
	Role string

	Content    string
	Pending    bool
	Sources    []api.Source
	IsFallback bool
	// ImageName labels the attachment that rode along with a user message.
	ImageName string
	// Failed marks a bot message that carries an apology instead of an answer.
	Failed bool
}

func messageID() string {
	return uuid.New().String()[:8]
}

func newUserMessage(turn int64, content, imageName string) *Message {
	return &Message{ID: messageID(), Turn: turn, Role: history.RoleUser, Content: content, ImageName: imageName}
}

func newPlaceholder(turn int64) *Message {
	return &Message{ID: messageID(), Turn: turn, Role: history.RoleAssistant, Pending: true}
}

func newGreeting(content string) *Message {
	return &Message{ID: messageID(), Role: history.RoleAssistant, Content: content}
}
