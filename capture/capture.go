// Package capture wraps a hardware audio input and turns it into a stream of
// encoded WebM/Opus fragments.
package capture

import (
	"bytes"
	"context"
	"errors"
)

// MediaType is the only container a Stream produces.
const MediaType = "audio/webm"

var (
	// ErrUnsupported means the host has no audio capture capability at all.
	ErrUnsupported = errors.New("audio capture is not supported")
	// ErrAccess means capture exists but the input could not be opened,
	// e.g. permission was denied or the hardware failed.
	ErrAccess = errors.New("microphone access failed")
)

// Device negotiates access to an audio-only input.
type Device interface {
	// Open may block while the host asks for permission.
	Open(ctx context.Context) (Stream, error)
}

// Stream is an open capture. It is owned by exactly one recording session.
type Stream interface {
	// Fragments yields encoded fragments in emission order. The channel is
	// closed once Stop has returned, after the last fragment.
	Fragments() <-chan []byte
	// Stop ends capture and flushes the encoder.
	Stop() error
	// Release frees the hardware. It must be called exactly once.
	Release() error
}

// Blob is a finished recording.
type Blob struct {
	Data      []byte
	MediaType string
}

// Join concatenates fragments into a single blob tagged with MediaType. The
// result does not alias any fragment.
func Join(fragments [][]byte) Blob {
	return Blob{
		Data:      bytes.Join(fragments, nil),
		MediaType: MediaType,
	}
}

func (b Blob) Len() int {
	return len(b.Data)
}
