package fallback

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"go.uber.org/zap"
)

// DefaultModel is used when no model is configured
const DefaultModel = "gpt-4o-mini"

const defaultMaxTokens = 512

// OpenAI answers general questions with a chat completion
type OpenAI struct {
	client      openai.Client
	model       string
	maxTokens   int64
	temperature float64
	logger      *zap.Logger
}

// OpenAIOption is a functional option for configuring OpenAI
type OpenAIOption func(*openAIConfig)

type openAIConfig struct {
	model       string
	maxTokens   int64
	temperature float64
	logger      *zap.Logger
	requestOpts []option.RequestOption
}

// WithModel sets the chat model
func WithModel(model string) OpenAIOption {
	return func(c *openAIConfig) {
		if model != "" {
			c.model = model
		}
	}
}

// WithMaxTokens limits the answer length
func WithMaxTokens(n int64) OpenAIOption {
	return func(c *openAIConfig) {
		if n > 0 {
			c.maxTokens = n
		}
	}
}

// WithTemperature sets the sampling temperature
func WithTemperature(t float64) OpenAIOption {
	return func(c *openAIConfig) {
		c.temperature = t
	}
}

// WithBaseURL points the client at a compatible endpoint or proxy
func WithBaseURL(url string) OpenAIOption {
	return func(c *openAIConfig) {
		if url != "" {
			c.requestOpts = append(c.requestOpts, option.WithBaseURL(url))
		}
	}
}

// WithHTTPClient sets a custom HTTP client
func WithHTTPClient(client *http.Client) OpenAIOption {
	return func(c *openAIConfig) {
		if client != nil {
			c.requestOpts = append(c.requestOpts, option.WithHTTPClient(client))
		}
	}
}

// WithMaxRetries sets how many times the SDK retries a failed request
func WithMaxRetries(n int) OpenAIOption {
	return func(c *openAIConfig) {
		if n >= 0 {
			c.requestOpts = append(c.requestOpts, option.WithMaxRetries(n))
		}
	}
}

// WithLogger sets the logger
func WithLogger(logger *zap.Logger) OpenAIOption {
	return func(c *openAIConfig) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewOpenAI creates a new OpenAI responder
func NewOpenAI(apiKey string, opts ...OpenAIOption) (*OpenAI, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, ErrInvalidAPIKey
	}

	cfg := &openAIConfig{
		model:       DefaultModel,
		maxTokens:   defaultMaxTokens,
		temperature: 0.3,
		logger:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(cfg)
	}

	requestOpts := append([]option.RequestOption{option.WithAPIKey(apiKey)}, cfg.requestOpts...)

	return &OpenAI{
		client:      openai.NewClient(requestOpts...),
		model:       cfg.model,
		maxTokens:   cfg.maxTokens,
		temperature: cfg.temperature,
		logger:      cfg.logger,
	}, nil
}

// Answer sends the system prompt and the user's question and returns the
// first choice
func (o *OpenAI) Answer(ctx context.Context, req Request) (string, error) {
	params := openai.ChatCompletionNewParams{
		Model: openai.ChatModel(o.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(SystemPrompt(req)),
			openai.UserMessage(req.Message),
		},
		MaxCompletionTokens: openai.Int(o.maxTokens),
		Temperature:         openai.Float(o.temperature),
	}

	resp, err := o.client.Chat.Completions.New(ctx, params)
	if err != nil {
		var apiErr *openai.Error
		if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusUnauthorized {
			return "", fmt.Errorf("%w: %v", ErrInvalidAPIKey, err)
		}
		return "", fmt.Errorf("failed to create chat completion: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", ErrEmptyAnswer
	}
	answer := strings.TrimSpace(resp.Choices[0].Message.Content)
	if answer == "" {
		return "", ErrEmptyAnswer
	}

	o.logger.Debug("Fallback answer received",
		zap.String("model", resp.Model),
		zap.Int64("prompt_tokens", resp.Usage.PromptTokens),
		zap.Int64("completion_tokens", resp.Usage.CompletionTokens))

	return answer, nil
}
