package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrEmptyResponse means the provider answered without any text.
	ErrEmptyResponse = errors.New("ai: empty response")
	// ErrMissingAPIKey is wrapped with the name of the env var that was empty.
	ErrMissingAPIKey = errors.New("ai: api key is empty")
)

// Generator turns a single prompt into plain text.
type Generator interface {
	Name() string
	Generate(ctx context.Context, prompt string) (string, error)
}

type Engines struct {
	Gemini Generator
	OpenAI Generator
}

// Get resolves a provider name from config. Empty means gemini.
func (e *Engines) Get(name string) (Generator, error) {
	var g Generator
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "gemini", "google":
		g = e.Gemini
	case "openai", "gpt":
		g = e.OpenAI
	default:
		return nil, fmt.Errorf("unknown ai provider %q; use 'gemini' or 'openai'", name)
	}
	if g == nil {
		return nil, fmt.Errorf("ai provider %q is not configured", name)
	}
	return g, nil
}
