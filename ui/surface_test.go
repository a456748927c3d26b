package ui

import (
	"io"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"node.town/voxnote/notify"
	"node.town/voxnote/txt"
)

func TestSurfaceDropsMessagesBeforeAttach(t *testing.T) {
	s := NewSurface()
	assert.NotPanics(t, func() {
		s.ShowRecording()
		s.SetTimer("0:01", 0.1)
		s.RevealResult("x")
		s.Refresh()
	})
}

func TestStartupFlashWithProgram(t *testing.T) {
	board := notify.NewBoard(time.Minute)
	defer board.Close()
	surface := NewSurface()

	started := make(chan struct{})
	model := NewModel(nil, board.Notices).OnStart(func() {
		surface.Started()
		board.Flash(time.Minute, "config loaded")
		close(started)
	})
	p := tea.NewProgram(model, tea.WithInput(nil), tea.WithOutput(io.Discard))
	surface.Attach(p)
	board.OnChange(surface.Refresh)

	// Attached but not running yet: a change must not wait for a reader.
	shown := make(chan struct{})
	go func() {
		board.Show("before run", notify.Info)
		close(shown)
	}()
	select {
	case <-shown:
	case <-time.After(time.Second):
		t.Fatal("notice before Run blocked on the program")
	}

	type runResult struct {
		model tea.Model
		err   error
	}
	done := make(chan runResult, 1)
	go func() {
		final, err := p.Run()
		done <- runResult{final, err}
	}()

	select {
	case <-started:
	case <-time.After(2 * time.Second):
		t.Fatal("start hook never ran")
	}

	surface.ShowRecording()
	p.Quit()

	select {
	case res := <-done:
		require.NoError(t, res.err)
		view := res.model.(Model).View()
		assert.Contains(t, view, "config loaded")
		assert.Contains(t, view, txt.StopLabel)
	case <-time.After(2 * time.Second):
		t.Fatal("program did not exit")
	}
}
