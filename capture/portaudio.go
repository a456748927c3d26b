package capture

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gordonklaus/portaudio"
)

const (
	fragmentDepth = 64
	muxerTimeout  = 2 * time.Second
)

// PortAudioDevice captures from the default input device.
type PortAudioDevice struct {
	SampleRate int
	Channels   int
	// Timeslice is how much audio goes into each emitted fragment.
	Timeslice time.Duration
	logger    *log.Logger
}

func NewPortAudioDevice(
	sampleRate int,
	timeslice time.Duration,
	logger *log.Logger,
) *PortAudioDevice {
	return &PortAudioDevice{
		SampleRate: sampleRate,
		Channels:   1,
		Timeslice:  timeslice,
		logger:     logger,
	}
}

func (d *PortAudioDevice) Open(ctx context.Context) (Stream, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if err := portaudio.Initialize(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnsupported, err)
	}

	if _, err := portaudio.DefaultInputDevice(); err != nil {
		portaudio.Terminate()
		return nil, fmt.Errorf("%w: %v", ErrAccess, err)
	}

	frames := FrameSamples(d.SampleRate)
	in := make([]int16, frames*d.Channels)
	pa, err := portaudio.OpenDefaultStream(
		d.Channels,
		0,
		float64(d.SampleRate),
		frames,
		in,
	)
	if err != nil {
		portaudio.Terminate()
		return nil, fmt.Errorf("%w: open input stream: %v", ErrAccess, err)
	}

	fw := NewFragmentWriter(fragmentDepth)
	encoder, err := NewOpusWebMEncoder(fw, d.SampleRate, d.Channels)
	if err != nil {
		pa.Close()
		portaudio.Terminate()
		return nil, err
	}

	if err := pa.Start(); err != nil {
		pa.Close()
		portaudio.Terminate()
		return nil, fmt.Errorf("%w: start input stream: %v", ErrAccess, err)
	}

	perSlice := int(d.Timeslice / FrameDuration)
	if perSlice < 1 {
		perSlice = 1
	}

	s := &portAudioStream{
		pa:       pa,
		in:       in,
		encoder:  encoder,
		fw:       fw,
		perSlice: perSlice,
		stop:     make(chan struct{}),
		loopDone: make(chan struct{}),
		logger:   d.logger,
	}
	go s.run()

	d.logger.Info(
		"microphone opened",
		"sampleRate", d.SampleRate,
		"channels", d.Channels,
		"timeslice", d.Timeslice,
	)
	return s, nil
}

type portAudioStream struct {
	pa       *portaudio.Stream
	in       []int16
	encoder  *OpusWebMEncoder
	fw       *FragmentWriter
	perSlice int
	stop     chan struct{}
	loopDone chan struct{}
	logger   *log.Logger

	stopOnce    sync.Once
	stopErr     error
	releaseOnce sync.Once
	releaseErr  error
}

func (s *portAudioStream) run() {
	defer close(s.loopDone)

	frames := 0
	for {
		select {
		case <-s.stop:
			return
		default:
		}

		if err := s.pa.Read(); err != nil {
			if errors.Is(err, portaudio.InputOverflowed) {
				s.logger.Debug("input overflowed")
				continue
			}
			s.logger.Error("read microphone", "error", err)
			return
		}

		if err := s.encoder.WriteFrame(s.in); err != nil {
			s.logger.Error("encode frame", "error", err)
			return
		}

		frames++
		if frames%s.perSlice == 0 {
			s.fw.Flush()
		}
	}
}

func (s *portAudioStream) Fragments() <-chan []byte {
	return s.fw.Fragments()
}

func (s *portAudioStream) Stop() error {
	s.stopOnce.Do(func() {
		close(s.stop)
		<-s.loopDone

		var errs []error
		if err := s.pa.Stop(); err != nil {
			errs = append(errs, fmt.Errorf("stop input stream: %w", err))
		}
		if err := s.encoder.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close encoder: %w", err))
		}

		select {
		case <-s.fw.Done():
		case <-time.After(muxerTimeout):
			s.logger.Warn("webm muxer did not close its writer")
		}
		s.fw.Close()

		s.stopErr = errors.Join(errs...)
	})
	return s.stopErr
}

func (s *portAudioStream) Release() error {
	s.releaseOnce.Do(func() {
		s.releaseErr = errors.Join(s.pa.Close(), portaudio.Terminate())
	})
	return s.releaseErr
}
