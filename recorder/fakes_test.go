package recorder

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"node.town/voxnote/capture"
	"node.town/voxnote/notify"
	"node.town/voxnote/transcribe"
)

type MockStream struct {
	mu        sync.Mutex
	fragments chan []byte
	stops     int
	releases  int
}

func newMockStream() *MockStream {
	return &MockStream{fragments: make(chan []byte, 64)}
}

func (m *MockStream) Emit(data string) {
	m.fragments <- []byte(data)
}

func (m *MockStream) Fragments() <-chan []byte {
	return m.fragments
}

func (m *MockStream) Stop() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stops++
	if m.stops == 1 {
		close(m.fragments)
	}
	return nil
}

func (m *MockStream) Release() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.releases++
	return nil
}

func (m *MockStream) Counts() (stops, releases int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.stops, m.releases
}

type MockDevice struct {
	mu      sync.Mutex
	opens   int
	err     error
	gate    chan struct{}
	entered chan struct{}
	streams []*MockStream
}

func (m *MockDevice) Open(ctx context.Context) (capture.Stream, error) {
	m.mu.Lock()
	m.opens++
	gate, entered, err := m.gate, m.entered, m.err
	m.mu.Unlock()

	if entered != nil {
		entered <- struct{}{}
	}
	if gate != nil {
		<-gate
	}
	if err != nil {
		return nil, err
	}

	s := newMockStream()
	m.mu.Lock()
	m.streams = append(m.streams, s)
	m.mu.Unlock()
	return s, nil
}

func (m *MockDevice) Opens() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.opens
}

func (m *MockDevice) Last() *MockStream {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.streams[len(m.streams)-1]
}

type MockSurface struct {
	mu    sync.Mutex
	calls []string
	timer []string
	// result is the last revealed text.
	result string
}

func (m *MockSurface) record(call string) {
	m.mu.Lock()
	m.calls = append(m.calls, call)
	m.mu.Unlock()
}

func (m *MockSurface) ShowRecording() { m.record("ShowRecording") }
func (m *MockSurface) ShowIdle()      { m.record("ShowIdle") }
func (m *MockSurface) ShowLoading()   { m.record("ShowLoading") }
func (m *MockSurface) HideLoading()   { m.record("HideLoading") }
func (m *MockSurface) HideResult()    { m.record("HideResult") }
func (m *MockSurface) Disable(label string) {
	m.record("Disable")
}

func (m *MockSurface) SetTimer(text string, progress float64) {
	m.mu.Lock()
	m.timer = append(m.timer, text)
	m.mu.Unlock()
}

func (m *MockSurface) RevealResult(text string) {
	m.mu.Lock()
	m.result = text
	m.mu.Unlock()
	m.record("RevealResult")
}

func (m *MockSurface) Count(call string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, c := range m.calls {
		if c == call {
			n++
		}
	}
	return n
}

func (m *MockSurface) Calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.calls...)
}

type shown struct {
	message string
	kind    notify.Kind
}

type MockNotifier struct {
	mu    sync.Mutex
	shown []shown
}

func (m *MockNotifier) Show(message string, kind notify.Kind) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.shown = append(m.shown, shown{message: message, kind: kind})
	return ""
}

func (m *MockNotifier) Shown() []shown {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]shown(nil), m.shown...)
}

type MockTranscriber struct {
	mu    sync.Mutex
	blobs []capture.Blob
	gate  chan struct{}
	res   *transcribe.Result
	err   error
}

func (m *MockTranscriber) Send(ctx context.Context, blob capture.Blob) (*transcribe.Result, error) {
	m.mu.Lock()
	m.blobs = append(m.blobs, blob)
	gate := m.gate
	m.mu.Unlock()
	if gate != nil {
		<-gate
	}
	return m.res, m.err
}

func (m *MockTranscriber) Blobs() []capture.Blob {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]capture.Blob(nil), m.blobs...)
}

type MockTicker struct {
	mu      sync.Mutex
	stops   int
	started int
	onTick  func(Tick)
}

func (m *MockTicker) Start(startedAt time.Time, onTick func(Tick)) Ticker {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.started++
	m.onTick = onTick
	return m
}

func (m *MockTicker) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stops++
}

func (m *MockTicker) Fire(t Tick) {
	m.mu.Lock()
	f := m.onTick
	m.mu.Unlock()
	f(t)
}

func (m *MockTicker) Counts() (started, stops int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.started, m.stops
}

type MockTimeProvider struct {
	currentTime time.Time
}

func (m *MockTimeProvider) Now() time.Time {
	return m.currentTime
}

type fixture struct {
	device      *MockDevice
	surface     *MockSurface
	notifier    *MockNotifier
	transcriber *MockTranscriber
	ticker      *MockTicker
	ctrl        *Controller
}

func newFixture(t interface{ Fatalf(string, ...any) }) *fixture {
	f := &fixture{
		device:   &MockDevice{},
		surface:  &MockSurface{},
		notifier: &MockNotifier{},
		transcriber: &MockTranscriber{
			res: &transcribe.Result{Success: true, Transcription: "hello"},
		},
		ticker: &MockTicker{},
	}
	ctrl, err := New(Options{
		Device:      f.device,
		Transcriber: f.transcriber,
		Surface:     f.surface,
		Notifier:    f.notifier,
		Ticker:      f.ticker.Start,
		Clock:       &MockTimeProvider{currentTime: time.Unix(1700000000, 0)},
		Logger:      log.New(io.Discard),
	})
	if err != nil {
		t.Fatalf("Failed to create controller: %v", err)
	}
	f.ctrl = ctrl
	return f
}
