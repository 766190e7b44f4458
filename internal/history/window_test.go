package history

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWindowBoundedLength(t *testing.T) {
	w := NewWindow(3)
	for k := 1; k <= 10; k++ {
		w.Append(RoleUser, fmt.Sprintf("message %d", k))
		expected := k
		if expected > 3 {
			expected = 3
		}
		assert.Equal(t, expected, w.Len(), "after append %d", k)
	}
}

func TestWindowKeepsMostRecentInOrder(t *testing.T) {
	w := NewWindow(3)
	for k := 1; k <= 5; k++ {
		w.Append(RoleUser, fmt.Sprintf("message %d", k))
	}
	entries := w.Entries()
	require.Len(t, entries, 3)
	assert.Equal(t, "message 3", entries[0].Content)
	assert.Equal(t, "message 4", entries[1].Content)
	assert.Equal(t, "message 5", entries[2].Content)
}

func TestWindowRolePreserved(t *testing.T) {
	w := NewWindow(3)
	w.Append(RoleUser, "question")
	w.Append(RoleAssistant, "answer")
	entries := w.Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, RoleUser, entries[0].Role)
	assert.Equal(t, RoleAssistant, entries[1].Role)
}

func TestWindowEntriesIsSnapshot(t *testing.T) {
	w := NewWindow(3)
	w.Append(RoleUser, "one")
	entries := w.Entries()
	w.Append(RoleUser, "two")
	assert.Len(t, entries, 1)
}

func TestWindowClear(t *testing.T) {
	w := NewWindow(3)
	w.Append(RoleUser, "one")
	w.Append(RoleAssistant, "two")
	w.Clear()
	assert.Zero(t, w.Len())
	assert.Empty(t, w.Entries())
}

func TestWindowMinimumSize(t *testing.T) {
	w := NewWindow(0)
	w.Append(RoleUser, "one")
	w.Append(RoleUser, "two")
	entries := w.Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, "two", entries[0].Content)
}
