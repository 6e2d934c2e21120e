package feedback

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/verte-zerg/tuimole/internal/model"
)

// Defaults for the OpenAI provider.
const (
	DefaultModel       = "gpt-4o-mini"
	DefaultTemperature = 0.7
)

// OpenAIConfig configures the chat completions provider.
type OpenAIConfig struct {
	APIKey      string
	BaseURL     string
	Model       string
	// Temperature is sent as given, zero included; nil uses DefaultTemperature.
	Temperature *float64
	HTTPClient  *http.Client
}

// OpenAI asks a chat completions endpoint for a verdict.
type OpenAI struct {
	client      openai.Client
	model       string
	temperature float64
}

// NewOpenAI builds an OpenAI provider. Retries are disabled; the advisor
// deadline bounds each call.
func NewOpenAI(cfg OpenAIConfig) (*OpenAI, error) {
	key := strings.TrimSpace(cfg.APIKey)
	if key == "" {
		return nil, ErrNoCredential
	}
	opts := []option.RequestOption{
		option.WithAPIKey(key),
		option.WithMaxRetries(0),
	}
	if base := strings.TrimSpace(cfg.BaseURL); base != "" {
		opts = append(opts, option.WithBaseURL(base))
	}
	if cfg.HTTPClient != nil {
		opts = append(opts, option.WithHTTPClient(cfg.HTTPClient))
	}
	name := strings.TrimSpace(cfg.Model)
	if name == "" {
		name = DefaultModel
	}
	temp := DefaultTemperature
	if cfg.Temperature != nil {
		temp = *cfg.Temperature
	}
	return &OpenAI{
		client:      openai.NewClient(opts...),
		model:       name,
		temperature: temp,
	}, nil
}

// Feedback implements game.Provider.
func (o *OpenAI) Feedback(ctx context.Context, perf model.Performance) (model.Verdict, error) {
	resp, err := o.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(o.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(Prompt(perf)),
		},
		Temperature: openai.Float(o.temperature),
	})
	if err != nil {
		return model.Verdict{}, fmt.Errorf("chat completion failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return model.Verdict{}, fmt.Errorf("%w: no choices", ErrMalformed)
	}
	return ParseVerdict(resp.Choices[0].Message.Content)
}
