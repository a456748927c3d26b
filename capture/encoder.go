package capture

import (
	"fmt"
	"io"
	"time"

	"github.com/at-wat/ebml-go/webm"
	"gopkg.in/hraban/opus.v2"
)

const (
	FrameDuration = 20 * time.Millisecond
	maxPacketSize = 1500
	audioTrackUID = 0x766f78
)

// FrameSamples is the number of samples per channel in one Opus frame.
func FrameSamples(sampleRate int) int {
	return sampleRate * int(FrameDuration/time.Millisecond) / 1000
}

// OpusWebMEncoder encodes PCM frames to Opus and muxes them into a single
// WebM audio track.
type OpusWebMEncoder struct {
	encoder   *opus.Encoder
	track     webm.BlockWriteCloser
	packet    []byte
	timestamp time.Duration
}

func NewOpusWebMEncoder(
	w io.WriteCloser,
	sampleRate, channels int,
) (*OpusWebMEncoder, error) {
	encoder, err := opus.NewEncoder(sampleRate, channels, opus.AppVoIP)
	if err != nil {
		return nil, fmt.Errorf("create opus encoder: %w", err)
	}

	tracks, err := webm.NewSimpleBlockWriter(w, []webm.TrackEntry{
		{
			Name:            "Audio",
			TrackNumber:     1,
			TrackUID:        audioTrackUID,
			CodecID:         "A_OPUS",
			TrackType:       2,
			DefaultDuration: uint64(FrameDuration.Nanoseconds()),
			Audio: &webm.Audio{
				SamplingFrequency: float64(sampleRate),
				Channels:          uint64(channels),
			},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("create webm writer: %w", err)
	}

	return &OpusWebMEncoder{
		encoder: encoder,
		track:   tracks[0],
		packet:  make([]byte, maxPacketSize),
	}, nil
}

// WriteFrame encodes one interleaved frame of FrameSamples*channels samples.
func (e *OpusWebMEncoder) WriteFrame(pcm []int16) error {
	n, err := e.encoder.Encode(pcm, e.packet)
	if err != nil {
		return fmt.Errorf("encode opus frame: %w", err)
	}
	if _, err := e.track.Write(true, e.timestamp.Milliseconds(), e.packet[:n]); err != nil {
		return fmt.Errorf("write webm block: %w", err)
	}
	e.timestamp += FrameDuration
	return nil
}

// Close finalizes the track. The muxer closes the underlying writer.
func (e *OpusWebMEncoder) Close() error {
	return e.track.Close()
}
