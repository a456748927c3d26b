package notify

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func messages(b *Board) []string {
	var out []string
	for _, n := range b.Notices() {
		out = append(out, n.Message)
	}
	return out
}

func TestShowAddsNoticeImmediately(t *testing.T) {
	b := NewBoard(time.Hour)
	defer b.Close()

	id := b.Show("saved", Success)

	notices := b.Notices()
	require.Len(t, notices, 1)
	assert.Equal(t, id, notices[0].ID)
	assert.Equal(t, "saved", notices[0].Message)
	assert.Equal(t, Success, notices[0].Kind)
}

func TestNoticesRemoveThemselves(t *testing.T) {
	b := NewBoard(30 * time.Millisecond)
	defer b.Close()

	for i := 0; i < 5; i++ {
		b.Show("boom", Error)
	}
	assert.Len(t, b.Notices(), 5)

	assert.Eventually(t, func() bool {
		return len(b.Notices()) == 0
	}, time.Second, 5*time.Millisecond)
}

func TestNoticesExpireIndependently(t *testing.T) {
	b := NewBoard(200 * time.Millisecond)
	defer b.Close()

	b.Show("first", Success)
	time.Sleep(100 * time.Millisecond)
	b.Show("second", Error)

	assert.Eventually(t, func() bool {
		m := messages(b)
		return len(m) == 1 && m[0] == "second"
	}, time.Second, 5*time.Millisecond)

	assert.Eventually(t, func() bool {
		return len(b.Notices()) == 0
	}, time.Second, 5*time.Millisecond)
}

func TestFlashDismissesAllAtOnce(t *testing.T) {
	b := NewBoard(time.Hour)
	defer b.Close()

	b.Flash(30*time.Millisecond, "config loaded", "server reachable")
	b.Show("sticky", Success)

	notices := b.Notices()
	require.Len(t, notices, 3)
	assert.Equal(t, Info, notices[0].Kind)

	assert.Eventually(t, func() bool {
		m := messages(b)
		return len(m) == 1 && m[0] == "sticky"
	}, time.Second, 5*time.Millisecond)
}

func TestFlashWithoutMessagesIsNoop(t *testing.T) {
	b := NewBoard(time.Hour)
	var calls atomic.Int32
	b.OnChange(func() { calls.Add(1) })

	b.Flash(time.Millisecond)

	assert.Empty(t, b.Notices())
	assert.Equal(t, int32(0), calls.Load())
}

func TestOnChangeFiresOnAddAndRemove(t *testing.T) {
	b := NewBoard(20 * time.Millisecond)
	defer b.Close()
	var calls atomic.Int32
	b.OnChange(func() { calls.Add(1) })

	b.Show("hi", Success)
	assert.Equal(t, int32(1), calls.Load())

	assert.Eventually(t, func() bool {
		return calls.Load() == 2
	}, time.Second, 5*time.Millisecond)
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "success", Success.String())
	assert.Equal(t, "error", Error.String())
	assert.Equal(t, "info", Info.String())
	assert.Equal(t, "unknown", Kind(42).String())
}
