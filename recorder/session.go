package recorder

import (
	"time"

	"node.town/voxnote/capture"
)

// Session is one capture attempt. Its fragments are appended in arrival
// order by a single collector goroutine and drained exactly once.
type Session struct {
	ID        string
	StartedAt time.Time

	stream    capture.Stream
	chunks    [][]byte
	collected chan struct{}
}

func newSession(id string, startedAt time.Time, stream capture.Stream) *Session {
	s := &Session{
		ID:        id,
		StartedAt: startedAt,
		stream:    stream,
		collected: make(chan struct{}),
	}
	go s.collect()
	return s
}

func (s *Session) collect() {
	defer close(s.collected)
	for fragment := range s.stream.Fragments() {
		s.chunks = append(s.chunks, fragment)
	}
}

// drain waits for the stream's last fragment and returns the joined blob
// along with the fragment count. The session's chunk list is dropped.
func (s *Session) drain() (capture.Blob, int) {
	<-s.collected
	n := len(s.chunks)
	blob := capture.Join(s.chunks)
	s.chunks = nil
	return blob, n
}
