package ai

import (
	"context"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"
)

type OpenAI struct {
	Model  string
	client *openai.Client
}

// NewOpenAI builds a chat-completions client. baseURL is optional and mostly
// useful for compatible gateways.
func NewOpenAI(apiKey, model, baseURL string) *OpenAI {
	o := &OpenAI{Model: strings.TrimSpace(model)}
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return o
	}
	cfg := openai.DefaultConfig(apiKey)
	if baseURL = strings.TrimSpace(baseURL); baseURL != "" {
		cfg.BaseURL = strings.TrimRight(baseURL, "/")
	}
	o.client = openai.NewClientWithConfig(cfg)
	return o
}

func (o *OpenAI) Name() string { return "openai" }

func (o *OpenAI) Generate(ctx context.Context, prompt string) (string, error) {
	if o.client == nil {
		return "", fmt.Errorf("OPENAI_API_KEY: %w", ErrMissingAPIKey)
	}
	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: o.Model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		return "", fmt.Errorf("openai chat completion: %w", err)
	}
	if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Message.Content) == "" {
		return "", fmt.Errorf("openai: %w", ErrEmptyResponse)
	}
	return resp.Choices[0].Message.Content, nil
}
