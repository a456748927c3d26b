package recorder

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"node.town/voxnote/capture"
	"node.town/voxnote/etc"
	"node.town/voxnote/notify"
	"node.town/voxnote/transcribe"
	"node.town/voxnote/txt"
)

// DefaultMaxDuration is the progress bar ceiling.
const DefaultMaxDuration = 60 * time.Second

var (
	ErrNoSurface     = errors.New("recorder: no ui surface")
	ErrNoDevice      = errors.New("recorder: no capture device")
	ErrNoTranscriber = errors.New("recorder: no transcriber")
)

// Surface is the part of the host UI the controller drives.
type Surface interface {
	ShowRecording()
	ShowIdle()
	SetTimer(text string, progress float64)
	ShowLoading()
	HideLoading()
	RevealResult(text string)
	HideResult()
	Disable(label string)
}

// Notifier shows one transient notice per call.
type Notifier interface {
	Show(message string, kind notify.Kind) string
}

// Transcriber uploads a finished recording and returns the parsed reply.
type Transcriber interface {
	Send(ctx context.Context, blob capture.Blob) (*transcribe.Result, error)
}

// Options configures New. Device, Transcriber, Surface and Notifier are
// required.
type Options struct {
	Device      capture.Device
	Transcriber Transcriber
	Surface     Surface
	Notifier    Notifier
	// Ticker defaults to a one second ElapsedTicker.
	Ticker      StartTicker
	Clock       TimeProvider
	MaxDuration time.Duration
	Logger      *log.Logger
}

type Controller struct {
	device      capture.Device
	transcriber Transcriber
	surface     Surface
	notifier    Notifier
	startTicker StartTicker
	clock       TimeProvider
	maxDuration time.Duration
	logger      *log.Logger

	ctx     context.Context
	cancel  context.CancelFunc
	uploads sync.WaitGroup

	mu       sync.Mutex
	state    State
	starting bool
	disabled bool
	closed   bool
	session  *Session
	ticker   Ticker
}

func New(opts Options) (*Controller, error) {
	if opts.Surface == nil {
		return nil, ErrNoSurface
	}
	if opts.Device == nil {
		return nil, ErrNoDevice
	}
	if opts.Transcriber == nil {
		return nil, ErrNoTranscriber
	}
	if opts.Notifier == nil {
		return nil, fmt.Errorf("recorder: no notifier")
	}
	if opts.Clock == nil {
		opts.Clock = &RealTimeProvider{}
	}
	if opts.Ticker == nil {
		opts.Ticker = ElapsedTicker(opts.Clock, time.Second)
	}
	if opts.MaxDuration <= 0 {
		opts.MaxDuration = DefaultMaxDuration
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &Controller{
		device:      opts.Device,
		transcriber: opts.Transcriber,
		surface:     opts.Surface,
		notifier:    opts.Notifier,
		startTicker: opts.Ticker,
		clock:       opts.Clock,
		maxDuration: opts.MaxDuration,
		logger:      opts.Logger,
		ctx:         ctx,
		cancel:      cancel,
	}, nil
}

func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Toggle starts a recording when idle and stops it when recording. It is a
// no-op while a start is pending, while uploading, and once the control has
// been disabled. Starting may block on the microphone permission request;
// stopping returns as soon as the audio is drained and the upload runs in the
// background.
func (c *Controller) Toggle(ctx context.Context) {
	c.mu.Lock()
	switch {
	case c.closed || c.disabled || c.starting:
		c.mu.Unlock()
		return
	case c.state == Uploading:
		c.mu.Unlock()
		c.logger.Debug("toggle ignored while uploading")
		return
	case c.state == Recording:
		id := c.session.ID
		blob := c.stopLocked()
		c.state = Uploading
		c.uploads.Add(1)
		c.mu.Unlock()
		go c.upload(id, blob)
		return
	}
	c.starting = true
	c.mu.Unlock()

	c.start(ctx)
}

func (c *Controller) start(ctx context.Context) {
	c.logger.Info("requesting microphone")
	stream, err := c.device.Open(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.starting = false

	if err != nil {
		c.logger.Error("open microphone", "error", err)
		if errors.Is(err, capture.ErrUnsupported) {
			c.disabled = true
			c.surface.Disable(txt.UnsupportedLabel)
		}
		c.notifier.Show(txt.MicrophoneError(err), notify.Error)
		return
	}

	if c.closed {
		stream.Stop()
		stream.Release()
		return
	}

	now := c.clock.Now()
	c.session = newSession(etc.NewFreshID(), now, stream)
	c.state = Recording

	c.surface.HideResult()
	c.surface.ShowRecording()
	c.ticker = c.startTicker(now, c.onTick)

	c.logger.Info("recording started", "session", c.session.ID)
}

func (c *Controller) onTick(t Tick) {
	c.surface.SetTimer(t.String(), t.Progress(c.maxDuration))
}

// stopLocked ends the active session: timer first, then capture, then the
// hardware, then the drain. Each step runs exactly once.
func (c *Controller) stopLocked() capture.Blob {
	s := c.session
	c.session = nil

	c.ticker.Stop()
	c.ticker = nil

	if err := s.stream.Stop(); err != nil {
		c.logger.Warn("stop capture", "session", s.ID, "error", err)
	}
	if err := s.stream.Release(); err != nil {
		c.logger.Warn("release microphone", "session", s.ID, "error", err)
	}

	blob, fragments := s.drain()
	c.surface.ShowIdle()

	c.logger.Info(
		"recording stopped",
		"session", s.ID,
		"fragments", fragments,
		"bytes", blob.Len(),
		"duration", c.clock.Now().Sub(s.StartedAt).Round(time.Millisecond),
	)
	return blob
}

func (c *Controller) upload(id string, blob capture.Blob) {
	defer c.uploads.Done()
	defer c.finish()

	res, err := c.send(blob)
	if err != nil {
		c.logger.Error("transcription failed", "session", id, "error", err)
		c.notifier.Show(failureMessage(err), notify.Error)
		return
	}

	c.logger.Info("transcription received", "session", id, "chars", len(res.Transcription))
	c.surface.RevealResult(res.Transcription)
	message := res.Message
	if message == "" {
		message = txt.TranscriptionReady
	}
	c.notifier.Show(message, notify.Success)
}

// send brackets the network step with the loading indicator, which is hidden
// on every exit path.
func (c *Controller) send(blob capture.Blob) (res *transcribe.Result, err error) {
	c.surface.ShowLoading()
	defer c.surface.HideLoading()
	defer func() {
		if r := recover(); r != nil {
			res, err = nil, fmt.Errorf("%w: %v", transcribe.ErrTransport, r)
		}
	}()

	res, err = c.transcriber.Send(c.ctx, blob)
	if err == nil && (res == nil || !res.Success) {
		err = fmt.Errorf("%w: empty result", transcribe.ErrMalformedResponse)
	}
	return res, err
}

func (c *Controller) finish() {
	c.mu.Lock()
	c.state = Idle
	c.mu.Unlock()
}

func failureMessage(err error) string {
	var rejection *transcribe.RejectionError
	if errors.As(err, &rejection) {
		return rejection.Message
	}
	return txt.Failure(err)
}

// Wait blocks until in-flight uploads have finished.
func (c *Controller) Wait() {
	c.uploads.Wait()
}

// Close discards an active recording, aborts any in-flight upload and waits
// for it to unwind. The controller ignores toggles afterwards.
func (c *Controller) Close() error {
	c.mu.Lock()
	c.closed = true
	if c.state == Recording {
		id := c.session.ID
		c.stopLocked()
		c.state = Idle
		c.logger.Info("recording discarded", "session", id)
	}
	c.mu.Unlock()

	c.cancel()
	c.uploads.Wait()
	return nil
}
