package llm

import (
	"context"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	appLog "github.com/Arch-4ng3l/TimetableGenerator/internal/log"
)

const providerGemini = "gemini"

type Gemini struct {
	client *genai.Client
	model  string
}

func NewGemini(ctx context.Context, apiKey, model string) (*Gemini, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, &Error{Provider: providerGemini, Err: err}
	}
	return &Gemini{client: client, model: model}, nil
}

// Generate calls the model with provider defaults; no temperature or token
// limit is set.
func (g *Gemini) Generate(ctx context.Context, prompt string) (string, error) {
	appLog.Debug("gemini request", "model", g.model, "prompt_len", len(prompt))

	resp, err := g.client.GenerativeModel(g.model).GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", &Error{Provider: providerGemini, Err: err}
	}

	text, err := responseText(resp)
	if err != nil {
		return "", &Error{Provider: providerGemini, Err: err}
	}
	return text, nil
}

func (g *Gemini) Close() error {
	return g.client.Close()
}

// responseText joins the text parts of the first candidate.
func responseText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", ErrEmptyResponse
	}

	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			b.WriteString(string(text))
		}
	}

	// A blank reply is still a reply; extraction reports it as invalid JSON.
	return strings.TrimSpace(b.String()), nil
}
