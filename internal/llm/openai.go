package llm

import (
	"context"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	appLog "github.com/Arch-4ng3l/TimetableGenerator/internal/log"
)

const providerOpenAI = "openai"

type OpenAI struct {
	client *openai.Client
	model  string
}

// NewOpenAI returns a chat-completions client. An empty baseURL uses the
// public API.
func NewOpenAI(apiKey, model, baseURL string) *OpenAI {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	return &OpenAI{client: openai.NewClientWithConfig(cfg), model: model}
}

func (o *OpenAI) Generate(ctx context.Context, prompt string) (string, error) {
	appLog.Debug("openai request", "model", o.model, "prompt_len", len(prompt))

	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: o.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleUser,
				Content: prompt,
			},
		},
	})
	if err != nil {
		return "", &Error{Provider: providerOpenAI, Err: err}
	}
	if len(resp.Choices) == 0 {
		return "", &Error{Provider: providerOpenAI, Err: ErrEmptyResponse}
	}

	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

func (o *OpenAI) Close() error {
	return nil
}
