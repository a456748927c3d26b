package ui

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"
)

// Surface forwards controller calls into a program as messages. Calls are
// dropped until both Attach and Started have run; Started is meant to be
// called from the model's start hook, once the event loop is reading. After
// that each call blocks until the program takes the message or exits.
type Surface struct {
	mu   sync.Mutex
	p    *tea.Program
	live bool
}

func NewSurface() *Surface {
	return &Surface{}
}

func (s *Surface) Attach(p *tea.Program) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.p = p
}

// Started marks the attached program's event loop as running.
func (s *Surface) Started() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.live = true
}

func (s *Surface) send(msg tea.Msg) {
	s.mu.Lock()
	p := s.p
	if !s.live {
		p = nil
	}
	s.mu.Unlock()
	if p != nil {
		p.Send(msg)
	}
}

func (s *Surface) ShowRecording() { s.send(recordingMsg{}) }
func (s *Surface) ShowIdle()      { s.send(idleMsg{}) }
func (s *Surface) ShowLoading()   { s.send(loadingMsg{on: true}) }
func (s *Surface) HideLoading()   { s.send(loadingMsg{on: false}) }
func (s *Surface) HideResult()    { s.send(resultMsg{}) }

func (s *Surface) SetTimer(text string, progress float64) {
	s.send(timerMsg{text: text, progress: progress})
}

func (s *Surface) RevealResult(text string) {
	s.send(resultMsg{text: text, visible: true})
}

func (s *Surface) Disable(label string) {
	s.send(disabledMsg{label: label})
}

// Refresh asks the program to redraw the notice column.
func (s *Surface) Refresh() { s.send(noticesMsg{}) }
