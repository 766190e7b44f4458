package history

import "sync"

// Role of a window entry, as understood by the backend.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Entry is one prior turn sent to the backend as conversational context.
type Entry struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Window is a fixed-size sliding window over prior turns. Oldest entries are
// dropped first; truncation is applied on every append.
type Window struct {
	mu      sync.Mutex
	max     int
	entries []Entry
}

// NewWindow creates a window retaining at most max entries.
func NewWindow(max int) *Window {
	if max < 1 {
		max = 1
	}
	return &Window{max: max}
}

// Append adds an entry, dropping the oldest beyond the window size.
func (w *Window) Append(role, content string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.entries = append(w.entries, Entry{Role: role, Content: content})
	if len(w.entries) > w.max {
		w.entries = w.entries[len(w.entries)-w.max:]
	}
}

// Entries returns a snapshot of the retained entries, oldest first.
func (w *Window) Entries() []Entry {
	w.mu.Lock()
	defer w.mu.Unlock()
	snapshot := make([]Entry, len(w.entries))
	copy(snapshot, w.entries)
	return snapshot
}

// Len returns the number of retained entries.
func (w *Window) Len() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.entries)
}

// Clear drops all entries. Used on course/context switches, which are full
// session resets.
func (w *Window) Clear() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.entries = nil
}
