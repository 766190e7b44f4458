package typing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRevealsOneRunePerTick(t *testing.T) {
	m := New(1, "chào", time.Millisecond)
	require.False(t, m.Done())
	assert.Empty(t, m.View())

	m, cmd := m.Update(TickMsg{ID: 1})
	assert.Equal(t, "c", m.View())
	assert.NotNil(t, cmd)

	m, _ = m.Update(TickMsg{ID: 1})
	m, _ = m.Update(TickMsg{ID: 1})
	assert.Equal(t, "chà", m.View())
}

func TestCompletesAndStopsTicking(t *testing.T) {
	m := New(1, "ab", time.Millisecond)
	m, _ = m.Update(TickMsg{ID: 1})
	m, cmd := m.Update(TickMsg{ID: 1})
	assert.True(t, m.Done())
	assert.Equal(t, "ab", m.View())
	// No further tick is scheduled once complete.
	assert.Nil(t, cmd)

	m, cmd = m.Update(TickMsg{ID: 1})
	assert.Nil(t, cmd)
	assert.Equal(t, "ab", m.View())
}

func TestIgnoresForeignTicks(t *testing.T) {
	m := New(2, "xin chào", time.Millisecond)
	m, cmd := m.Update(TickMsg{ID: 1})
	assert.Empty(t, m.View())
	assert.Nil(t, cmd)
}

func TestRevealsRunesNotBytes(t *testing.T) {
	// Vietnamese text is multi-byte; the reveal must never split a rune.
	m := New(1, "Trường", time.Millisecond)
	m, _ = m.Update(TickMsg{ID: 1})
	m, _ = m.Update(TickMsg{ID: 1})
	m, _ = m.Update(TickMsg{ID: 1})
	assert.Equal(t, "Trư", m.View())
}

func TestFinish(t *testing.T) {
	m := New(1, "hello", time.Millisecond)
	m = m.Finish()
	assert.True(t, m.Done())
	assert.Equal(t, "hello", m.View())
	assert.Nil(t, m.Init())
}

func TestEmptyContentIsImmediatelyDone(t *testing.T) {
	m := New(1, "", time.Millisecond)
	assert.True(t, m.Done())
	assert.Nil(t, m.Init())
}
