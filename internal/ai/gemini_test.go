package ai

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

func TestFirstText(t *testing.T) {
	resp := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{
			{Content: nil},
			{Content: &genai.Content{Parts: []genai.Part{&genai.Blob{MIMEType: "image/png"}}}},
			{Content: &genai.Content{Parts: []genai.Part{genai.Text("Nice "), genai.Text("week.")}}},
		},
	}
	if got := firstText(resp); got != "Nice week." {
		t.Errorf("firstText = %q", got)
	}
	if got := firstText(nil); got != "" {
		t.Errorf("firstText(nil) = %q", got)
	}
	if got := firstText(&genai.GenerateContentResponse{}); got != "" {
		t.Errorf("firstText(empty) = %q", got)
	}
}

func TestGeminiGenerateUpstreamError(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":{"code":400,"message":"API key not valid","status":"INVALID_ARGUMENT"}}`))
	}))
	defer srv.Close()

	g, err := NewGemini(context.Background(), "bad-key", "gemini-1.5-flash", option.WithEndpoint(srv.URL))
	if err != nil {
		t.Fatalf("NewGemini: %v", err)
	}
	defer g.Close()

	txt, err := g.Generate(context.Background(), "analyze my week")
	if err == nil {
		t.Fatalf("expected error, got %q", txt)
	}
	if !strings.Contains(err.Error(), "gemini generate") {
		t.Errorf("err = %v", err)
	}
	if hits.Load() == 0 {
		t.Error("upstream was not called")
	}
}
