package ai

import (
	"bytes"
	"encoding/json"
	"fmt"
)

const insightPromptTemplate = `
You are a wise, encouraging, and strict accountability partner.
Analyze this user's week and give a 3-sentence summary.

CONTEXT:
- The user has these goals: %s
- Recent activity logs: %s
- Journal entries: %s

TASK:
1. Acknowledge one win.
2. Point out one missing habit or area to improve (be gentle but firm).
3. End with a short motivating quote or scripture (since they have Faith goals).

Keep it under 100 words. Speak directly to "%s".
`

// BuildInsightPrompt fills the weekly review template. Each value is JSON-encoded
// as is, so callers should pass empty containers rather than nil.
func BuildInsightPrompt(userName string, goals, logs, journal any) (string, error) {
	g, err := encodeVerbatim(goals)
	if err != nil {
		return "", fmt.Errorf("encode goals: %w", err)
	}
	l, err := encodeVerbatim(logs)
	if err != nil {
		return "", fmt.Errorf("encode logs: %w", err)
	}
	j, err := encodeVerbatim(journal)
	if err != nil {
		return "", fmt.Errorf("encode journal: %w", err)
	}
	return fmt.Sprintf(insightPromptTemplate, g, l, j, userName), nil
}

// encodeVerbatim is json.Marshal without HTML escaping of <, > and &.
func encodeVerbatim(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}
