package ai

import (
	"context"
	"fmt"
	"io"
)

// Transcriber turns one finished recording into text.
type Transcriber interface {
	Transcribe(
		ctx context.Context,
		audio io.Reader,
		filename string,
		mediaType string,
	) (string, error)
}

// Echo acknowledges the upload without recognising anything. It is the
// default development backend.
type Echo struct{}

func (Echo) Transcribe(
	ctx context.Context,
	audio io.Reader,
	filename string,
	mediaType string,
) (string, error) {
	n, err := io.Copy(io.Discard, audio)
	if err != nil {
		return "", fmt.Errorf("failed to read audio: %w", err)
	}
	return fmt.Sprintf("%s (%s, %d bytes)", filename, mediaType, n), nil
}
