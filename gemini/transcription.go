package gemini

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"
)

const systemPrompt = `Transcribe this voice note as accurately as possible, with good grammar and punctuation.

Keep the language of the speaker. Reply with the transcript only.`

// Transcriber uploads each recording to the Gemini file store and asks the
// model for a transcript of it.
type Transcriber struct {
	client *genai.Client
	model  *genai.GenerativeModel
	logger *log.Logger
	poll   time.Duration
}

func New(
	ctx context.Context,
	apiKey string,
	modelName string,
	logger *log.Logger,
) (*Transcriber, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	return &Transcriber{
		client: client,
		model:  setupGenerativeModel(client, modelName),
		logger: logger,
		poll:   500 * time.Millisecond,
	}, nil
}

func setupGenerativeModel(client *genai.Client, name string) *genai.GenerativeModel {
	model := client.GenerativeModel(name)
	model.GenerationConfig.SetMaxOutputTokens(8192)
	model.GenerationConfig.SetTemperature(0.1)
	model.GenerationConfig.SetTopP(1.0)
	model.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(systemPrompt)},
	}
	model.SafetySettings = []*genai.SafetySetting{
		{
			Category:  genai.HarmCategoryHarassment,
			Threshold: genai.HarmBlockOnlyHigh,
		},
		{
			Category:  genai.HarmCategoryHateSpeech,
			Threshold: genai.HarmBlockOnlyHigh,
		},
		{
			Category:  genai.HarmCategoryDangerousContent,
			Threshold: genai.HarmBlockOnlyHigh,
		},
	}
	return model
}

func (t *Transcriber) Transcribe(
	ctx context.Context,
	audio io.Reader,
	filename string,
	mediaType string,
) (string, error) {
	file, err := t.client.UploadFile(ctx, "", audio, &genai.UploadFileOptions{
		DisplayName: filename,
		MIMEType:    mediaType,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload audio: %w", err)
	}
	defer func() {
		if err := t.client.DeleteFile(context.Background(), file.Name); err != nil {
			t.logger.Warn("delete uploaded audio", "file", file.Name, "error", err)
		}
	}()

	file, err = t.waitActive(ctx, file)
	if err != nil {
		return "", err
	}
	t.logger.Debug("audio uploaded", "file", file.Name, "uri", file.URI)

	stream := t.model.GenerateContentStream(ctx, audioSegment(file.URI, mediaType)...)

	var builder strings.Builder
	for {
		resp, err := stream.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return "", fmt.Errorf("error streaming: %w", err)
		}
		builder.WriteString(getResponseText(resp))
	}

	return strings.TrimSpace(builder.String()), nil
}

func (t *Transcriber) waitActive(ctx context.Context, file *genai.File) (*genai.File, error) {
	for file.State == genai.FileStateProcessing {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(t.poll):
		}
		next, err := t.client.GetFile(ctx, file.Name)
		if err != nil {
			return nil, fmt.Errorf("failed to poll uploaded audio: %w", err)
		}
		file = next
	}
	if file.State == genai.FileStateFailed {
		return nil, fmt.Errorf("gemini rejected uploaded audio %s", file.Name)
	}
	return file, nil
}

func (t *Transcriber) Close() error {
	return t.client.Close()
}

func audioSegment(uri string, mediaType string) []genai.Part {
	return []genai.Part{
		genai.Text("<current-audio>\n"),
		genai.FileData{URI: uri, MIMEType: mediaType},
		genai.Text("</current-audio>\n"),
	}
}

func getResponseText(resp *genai.GenerateContentResponse) string {
	var text strings.Builder
	for _, candidate := range resp.Candidates {
		if candidate.Content != nil {
			for _, part := range candidate.Content.Parts {
				if t, ok := part.(genai.Text); ok {
					text.WriteString(string(t))
				}
			}
		}
	}
	return text.String()
}
