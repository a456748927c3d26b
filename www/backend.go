package www

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"node.town/voxnote/ai"
	"node.town/voxnote/config"
	"node.town/voxnote/gemini"
)

// Backend is a transcriber the server owns and closes on shutdown.
type Backend interface {
	ai.Transcriber
	io.Closer
}

type nopCloser struct{ ai.Transcriber }

func (nopCloser) Close() error { return nil }

func NewBackend(ctx context.Context, cfg *config.Config, logger *log.Logger) (Backend, error) {
	switch cfg.Backend {
	case "", "echo":
		return nopCloser{ai.Echo{}}, nil
	case "openai":
		return nopCloser{ai.NewWhisperTranscriber(cfg.OpenAIAPIKey, "uz")}, nil
	case "gemini":
		return gemini.New(ctx, cfg.GeminiAPIKey, cfg.GeminiModel, logger.WithPrefix("gemini"))
	default:
		return nil, fmt.Errorf("unknown backend %q", cfg.Backend)
	}
}
