package capture

import (
	"bytes"
	"io"
	"sync"
)

// FragmentWriter collects encoder output and hands it out as fragments, one
// per Flush. It is the io.WriteCloser the WebM muxer writes into.
type FragmentWriter struct {
	mu     sync.Mutex
	buf    bytes.Buffer
	out    chan []byte
	closed bool
	done   chan struct{}
	once   sync.Once
}

func NewFragmentWriter(depth int) *FragmentWriter {
	return &FragmentWriter{
		out:  make(chan []byte, depth),
		done: make(chan struct{}),
	}
}

func (w *FragmentWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return 0, io.ErrClosedPipe
	}
	return w.buf.Write(p)
}

// Flush emits everything written since the previous flush as one fragment.
// Empty flushes emit nothing.
func (w *FragmentWriter) Flush() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return
	}
	w.flushLocked()
}

func (w *FragmentWriter) flushLocked() {
	if w.buf.Len() == 0 {
		return
	}
	fragment := make([]byte, w.buf.Len())
	copy(fragment, w.buf.Bytes())
	w.buf.Reset()
	w.out <- fragment
}

// Close flushes the remainder and closes the fragment channel. Safe to call
// more than once.
func (w *FragmentWriter) Close() error {
	w.once.Do(func() {
		w.mu.Lock()
		w.flushLocked()
		w.closed = true
		close(w.out)
		w.mu.Unlock()
		close(w.done)
	})
	return nil
}

func (w *FragmentWriter) Fragments() <-chan []byte {
	return w.out
}

// Done is closed once Close has run.
func (w *FragmentWriter) Done() <-chan struct{} {
	return w.done
}
