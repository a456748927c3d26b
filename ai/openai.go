package ai

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/sashabaranov/go-openai"
)

type WhisperTranscriber struct {
	client   *openai.Client
	language string
}

func NewWhisperTranscriber(apiKey string, language string) *WhisperTranscriber {
	return NewWhisperTranscriberWithConfig(openai.DefaultConfig(apiKey), language)
}

func NewWhisperTranscriberWithConfig(
	cfg openai.ClientConfig,
	language string,
) *WhisperTranscriber {
	return &WhisperTranscriber{
		client:   openai.NewClientWithConfig(cfg),
		language: language,
	}
}

func (w *WhisperTranscriber) Transcribe(
	ctx context.Context,
	audio io.Reader,
	filename string,
	mediaType string,
) (string, error) {
	resp, err := w.client.CreateTranscription(ctx, openai.AudioRequest{
		Model:    openai.Whisper1,
		FilePath: filename,
		Reader:   audio,
		Language: w.language,
		Format:   openai.AudioResponseFormatJSON,
	})
	if err != nil {
		return "", fmt.Errorf("OpenAI API error: %w", err)
	}
	return strings.TrimSpace(resp.Text), nil
}
