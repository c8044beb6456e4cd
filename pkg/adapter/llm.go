package adapter

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/kioku/pkg/interfaces"
	"github.com/m-mizutani/kioku/pkg/model"
)

const (
	defaultModel       = "gpt-4.1-mini"
	defaultTemperature = 0.4

	completionTimeout = 60 * time.Second
)

// LLMClient talks to an OpenAI-compatible chat-completions endpoint.
type LLMClient struct {
	http        *resty.Client
	model       string
	temperature float64
}

var _ interfaces.Completer = (*LLMClient)(nil)

type LLMOption func(*LLMClient)

// WithModel overrides the model identifier.
func WithModel(m string) LLMOption {
	return func(c *LLMClient) {
		if m != "" {
			c.model = m
		}
	}
}

// WithTemperature overrides the sampling temperature.
func WithTemperature(t float64) LLMOption {
	return func(c *LLMClient) {
		c.temperature = t
	}
}

// WithAPIKey sets a bearer token on every request.
func WithAPIKey(key string) LLMOption {
	return func(c *LLMClient) {
		if key != "" {
			c.http.SetAuthToken(key)
		}
	}
}

// NewLLM creates a completion client for the given base URL
// (e.g. https://api.openai.com/v1 or a local compatible server).
func NewLLM(baseURL string, opts ...LLMOption) *LLMClient {
	c := &LLMClient{
		http: resty.New().
			SetBaseURL(strings.TrimRight(baseURL, "/")).
			SetTimeout(completionTimeout),
		model:       defaultModel,
		temperature: defaultTemperature,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

type chatCompletionRequest struct {
	Model       string          `json:"model"`
	Messages    []model.Message `json:"messages"`
	Temperature float64         `json:"temperature"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

func (c *LLMClient) Complete(ctx context.Context, messages []model.Message) (*model.Completion, error) {
	req := chatCompletionRequest{
		Model:       c.model,
		Messages:    messages,
		Temperature: c.temperature,
	}

	resp, err := c.http.R().SetContext(ctx).SetBody(req).Post("/chat/completions")
	if err != nil {
		return nil, goerr.Wrap(err, "failed to call completion API", goerr.V("model", c.model))
	}
	if !resp.IsSuccess() {
		return nil, goerr.New("completion API returned non-2xx status",
			goerr.V("status", resp.StatusCode()),
			goerr.V("body", string(resp.Body())))
	}

	var out chatCompletionResponse
	if err := json.Unmarshal(resp.Body(), &out); err != nil {
		return nil, goerr.Wrap(err, "failed to decode completion response")
	}
	if len(out.Choices) == 0 {
		return nil, goerr.New("no choices in completion response")
	}

	completion := &model.Completion{
		Choices: make([]model.Choice, 0, len(out.Choices)),
	}
	for _, choice := range out.Choices {
		completion.Choices = append(completion.Choices, model.Choice{
			Message: model.Message{
				Role:    model.Role(choice.Message.Role),
				Content: choice.Message.Content,
			},
		})
	}

	return completion, nil
}
