package ai

import (
	"strings"
	"testing"
)

func TestBuildInsightPrompt(t *testing.T) {
	goals := []any{"Run a 10k", "Read scripture daily"}
	logs := []any{map[string]any{"action": "run", "done": true}, "skipped reading"}
	journal := map[string]any{"2024-05-01": "Felt tired", "mood": 3.0}

	p, err := BuildInsightPrompt("Sogo", goals, logs, journal)
	if err != nil {
		t.Fatalf("BuildInsightPrompt: %v", err)
	}

	wants := []string{
		`- The user has these goals: ["Run a 10k","Read scripture daily"]`,
		`- Recent activity logs: [{"action":"run","done":true},"skipped reading"]`,
		`- Journal entries: {"2024-05-01":"Felt tired","mood":3}`,
		`Speak directly to "Sogo".`,
		"Keep it under 100 words.",
	}
	for _, w := range wants {
		if !strings.Contains(p, w) {
			t.Errorf("prompt missing %q\n%s", w, p)
		}
	}
}

func TestBuildInsightPromptEmpty(t *testing.T) {
	p, err := BuildInsightPrompt("Ada", []any{}, []any{}, map[string]any{})
	if err != nil {
		t.Fatalf("BuildInsightPrompt: %v", err)
	}
	for _, w := range []string{"goals: []", "logs: []", "entries: {}", `"Ada"`} {
		if !strings.Contains(p, w) {
			t.Errorf("prompt missing %q", w)
		}
	}
}

func TestBuildInsightPromptNoHTMLEscape(t *testing.T) {
	p, err := BuildInsightPrompt("Sogo", []any{"Run & <pray>"}, []any{}, map[string]any{})
	if err != nil {
		t.Fatalf("BuildInsightPrompt: %v", err)
	}
	if !strings.Contains(p, `goals: ["Run & <pray>"]`+"\n") {
		t.Errorf("goals not verbatim:\n%s", p)
	}
}

func TestBuildInsightPromptUnencodable(t *testing.T) {
	if _, err := BuildInsightPrompt("x", []any{make(chan int)}, nil, nil); err == nil {
		t.Fatal("expected encode error")
	}
}
