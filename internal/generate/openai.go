package generate

import (
	"context"
	"errors"
	"strings"

	openai "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// OpenAIClient implements Client using the official openai-go SDK
// (chat completions). Any OpenAI-compatible endpoint works through the
// base URL override, which is how the original provider is reached.
type OpenAIClient struct {
	model       string
	temperature float64
	opts        []option.RequestOption
}

type OpenAISettings struct {
	Model   string
	APIKey  string
	BaseURL string

	// Temperature of 0 selects the default (0.4).
	Temperature float64
}

func NewOpenAIClient(cfg OpenAISettings) (*OpenAIClient, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("generation api key missing")
	}
	if cfg.Model == "" {
		return nil, errors.New("generation model is required")
	}

	if cfg.Temperature == 0 {
		cfg.Temperature = 0.4
	}

	opts := []option.RequestOption{option.WithAPIKey(cfg.APIKey)}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	return &OpenAIClient{model: cfg.Model, temperature: cfg.Temperature, opts: opts}, nil
}

func (c *OpenAIClient) Generate(ctx context.Context, title string) (string, error) {
	client := openai.NewClient(c.opts...)

	resp, err := client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(c.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			openai.UserMessage(buildUserPrompt(title)),
		},
		Temperature: openai.Float(c.temperature),
	})
	if err != nil {
		return "", &Error{Title: title, Err: err}
	}
	if len(resp.Choices) == 0 {
		return "", &Error{Title: title, Err: errors.New("no choices returned")}
	}

	content := strings.TrimSpace(resp.Choices[0].Message.Content)
	if content == "" {
		return "", &Error{Title: title, Err: errors.New("empty completion")}
	}
	return content, nil
}
