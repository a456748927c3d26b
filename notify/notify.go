// Package notify keeps the transient notices shown next to the recorder.
// Every notice removes itself after a fixed delay; there is no queueing.
package notify

import (
	"sync"
	"time"

	"node.town/voxnote/etc"
)

type Kind int

const (
	Success Kind = iota
	Error
	Info
)

func (k Kind) String() string {
	switch k {
	case Success:
		return "success"
	case Error:
		return "error"
	case Info:
		return "info"
	default:
		return "unknown"
	}
}

type Notice struct {
	ID        string
	Message   string
	Kind      Kind
	CreatedAt time.Time
}

// Board is the set of currently visible notices.
type Board struct {
	mu        sync.Mutex
	ttl       time.Duration
	notices   []Notice
	timers    map[string]*time.Timer
	listeners []func()
}

func NewBoard(ttl time.Duration) *Board {
	return &Board{
		ttl:    ttl,
		timers: make(map[string]*time.Timer),
	}
}

// OnChange registers f to be called after every add or removal.
func (b *Board) OnChange(f func()) {
	b.mu.Lock()
	b.listeners = append(b.listeners, f)
	b.mu.Unlock()
}

// Show adds a notice that disappears after the board's ttl.
func (b *Board) Show(message string, kind Kind) string {
	id := b.add(message, kind)
	b.expire(b.ttl, id)
	b.changed()
	return id
}

// Flash shows one-shot messages that are all dismissed together after ttl.
func (b *Board) Flash(ttl time.Duration, messages ...string) {
	if len(messages) == 0 {
		return
	}
	ids := make([]string, 0, len(messages))
	for _, m := range messages {
		ids = append(ids, b.add(m, Info))
	}
	b.expire(ttl, ids...)
	b.changed()
}

// Notices returns a copy of the visible notices, oldest first.
func (b *Board) Notices() []Notice {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]Notice, len(b.notices))
	copy(out, b.notices)
	return out
}

// Close cancels pending removals.
func (b *Board) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	for id, t := range b.timers {
		t.Stop()
		delete(b.timers, id)
	}
}

func (b *Board) add(message string, kind Kind) string {
	n := Notice{
		ID:        etc.NewFreshID(),
		Message:   message,
		Kind:      kind,
		CreatedAt: time.Now(),
	}
	b.mu.Lock()
	b.notices = append(b.notices, n)
	b.mu.Unlock()
	return n.ID
}

func (b *Board) expire(after time.Duration, ids ...string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	t := time.AfterFunc(after, func() { b.remove(ids...) })
	for _, id := range ids {
		b.timers[id] = t
	}
}

func (b *Board) remove(ids ...string) {
	drop := make(map[string]bool, len(ids))
	for _, id := range ids {
		drop[id] = true
	}

	b.mu.Lock()
	kept := b.notices[:0]
	for _, n := range b.notices {
		if !drop[n.ID] {
			kept = append(kept, n)
		}
	}
	b.notices = kept
	for _, id := range ids {
		delete(b.timers, id)
	}
	b.mu.Unlock()

	b.changed()
}

func (b *Board) changed() {
	b.mu.Lock()
	listeners := make([]func(), len(b.listeners))
	copy(listeners, b.listeners)
	b.mu.Unlock()

	for _, f := range listeners {
		f()
	}
}
