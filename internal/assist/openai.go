package assist

import (
	"context"
	"fmt"
	"os"

	openai "github.com/sashabaranov/go-openai"
)

// DefaultModel is used when OpenAIOptions.Model is empty.
const DefaultModel = openai.GPT4oMini

// OpenAIOptions configures the OpenAI compatible backend.
type OpenAIOptions struct {
	APIKey      string
	BaseURL     string
	Model       string
	Temperature float32
	TopP        float32
}

// OpenAIGenerator completes prompts through a chat completions endpoint.
type OpenAIGenerator struct {
	client *openai.Client
	opts   OpenAIOptions
}

// NewOpenAIGenerator builds a backend. It returns nil when no API key is
// given, which leaves the Assistant unconfigured.
func NewOpenAIGenerator(opts OpenAIOptions) *OpenAIGenerator {
	if opts.APIKey == "" {
		return nil
	}
	cfg := openai.DefaultConfig(opts.APIKey)
	if opts.BaseURL != "" {
		cfg.BaseURL = opts.BaseURL
	}
	if opts.Model == "" {
		opts.Model = DefaultModel
	}
	if opts.Temperature == 0 {
		opts.Temperature = 0.7
	}
	if opts.TopP == 0 {
		opts.TopP = 0.9
	}
	return &OpenAIGenerator{client: openai.NewClientWithConfig(cfg), opts: opts}
}

// FromEnv reads the API key from the named environment variable.
func FromEnv(keyVar string, opts OpenAIOptions) Backend {
	opts.APIKey = os.Getenv(keyVar)
	if g := NewOpenAIGenerator(opts); g != nil {
		return g
	}
	return nil
}

// Complete implements Backend.
func (g *OpenAIGenerator) Complete(ctx context.Context, system, prompt string) (string, error) {
	resp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: g.opts.Model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: fmt.Sprintf("Prompt: %q", prompt)},
		},
		Temperature: g.opts.Temperature,
		TopP:        g.opts.TopP,
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", ErrEmptyCompletion
	}
	return resp.Choices[0].Message.Content, nil
}
