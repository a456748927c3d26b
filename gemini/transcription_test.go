package gemini

import (
	"testing"

	"github.com/google/generative-ai-go/genai"
)

func TestGetResponseText(t *testing.T) {
	resp := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{
			{Content: &genai.Content{Parts: []genai.Part{genai.Text("sa"), genai.Text("lom")}}},
			{Content: nil},
			{Content: &genai.Content{Parts: []genai.Part{genai.Blob{MIMEType: "audio/webm"}, genai.Text("!")}}},
		},
	}
	if got := getResponseText(resp); got != "salom!" {
		t.Errorf("getResponseText() = %q, want %q", got, "salom!")
	}
}

func TestAudioSegmentCarriesMediaType(t *testing.T) {
	parts := audioSegment("files/abc", "audio/webm")
	if len(parts) != 3 {
		t.Fatalf("expected 3 parts, got %d", len(parts))
	}
	data, ok := parts[1].(genai.FileData)
	if !ok {
		t.Fatalf("expected FileData, got %T", parts[1])
	}
	if data.URI != "files/abc" || data.MIMEType != "audio/webm" {
		t.Errorf("unexpected file data %+v", data)
	}
}
