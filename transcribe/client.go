// Package transcribe uploads a finished recording to the transcription
// endpoint and interprets its JSON reply.
package transcribe

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/go-resty/resty/v2"
	"node.town/voxnote/capture"
	"node.town/voxnote/txt"
)

const (
	Endpoint  = "/transcribe-audio/"
	FieldName = "audio"
	FileName  = "recording.webm"
)

var (
	// ErrTransport means no response was received.
	ErrTransport = errors.New("transcription request failed")
	// ErrMalformedResponse means a response arrived but was not the
	// expected JSON object.
	ErrMalformedResponse = errors.New("malformed transcription response")
)

// RejectionError is a well-formed reply with success=false.
type RejectionError struct {
	Status  int
	Message string
}

func (e *RejectionError) Error() string {
	return fmt.Sprintf("transcription rejected (status %d): %s", e.Status, e.Message)
}

// Result is a successful transcription.
type Result struct {
	Success       bool   `json:"success"`
	Transcription string `json:"transcription,omitempty"`
	Message       string `json:"message,omitempty"`
}

type response struct {
	Success       *bool  `json:"success"`
	Transcription string `json:"transcription"`
	Message       string `json:"message"`
}

type Client struct {
	http   *resty.Client
	logger *log.Logger
}

func NewClient(serverURL string, logger *log.Logger) (*Client, error) {
	if serverURL == "" {
		return nil, fmt.Errorf("server url cannot be empty")
	}
	u, err := url.Parse(serverURL)
	if err != nil {
		return nil, fmt.Errorf("parse server url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("server url must be absolute: %q", serverURL)
	}

	return &Client{
		http:   resty.New().SetBaseURL(strings.TrimRight(serverURL, "/")),
		logger: logger,
	}, nil
}

// Send performs exactly one POST with the recording. On success the result
// is returned; every failure is reported as ErrTransport,
// ErrMalformedResponse or *RejectionError.
func (c *Client) Send(ctx context.Context, blob capture.Blob) (*Result, error) {
	mediaType := blob.MediaType
	if mediaType == "" {
		mediaType = capture.MediaType
	}

	c.logger.Info("uploading recording", "bytes", blob.Len(), "type", mediaType)

	resp, err := c.http.R().
		SetContext(ctx).
		SetMultipartField(FieldName, FileName, mediaType, bytes.NewReader(blob.Data)).
		Post(Endpoint)
	if err != nil {
		c.logger.Error("upload failed", "error", err)
		return nil, fmt.Errorf("%w: %w", ErrTransport, err)
	}

	c.logger.Info(
		"transcription response",
		"status", resp.StatusCode(),
		"bytes", len(resp.Body()),
		"duration", resp.Time(),
	)

	return decode(resp.StatusCode(), resp.Body())
}

func decode(status int, body []byte) (*Result, error) {
	var r response
	if err := json.Unmarshal(body, &r); err != nil {
		return nil, fmt.Errorf("%w: status %d: %w", ErrMalformedResponse, status, err)
	}
	if r.Success == nil {
		return nil, fmt.Errorf("%w: status %d: missing success field", ErrMalformedResponse, status)
	}

	if !*r.Success {
		message := r.Message
		if message == "" {
			message = txt.TranscriptionFailed
		}
		return nil, &RejectionError{Status: status, Message: message}
	}

	return &Result{
		Success:       true,
		Transcription: r.Transcription,
		Message:       r.Message,
	}, nil
}
