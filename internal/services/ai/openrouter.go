package ai

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/openai/openai-go/v3/shared"
	"go.uber.org/zap"
)

const (
	// DefaultModel is the default completion model
	DefaultModel = "openai/gpt-4o-mini"
	// DefaultBaseURL is the OpenRouter OpenAI-compatible endpoint
	DefaultBaseURL = "https://openrouter.ai/api/v1"
	// DefaultTimeout bounds a single provider call so a slow upstream
	// cannot block a handler indefinitely
	DefaultTimeout = 30 * time.Second

	// MaxCompletionTokens is the token budget for one tutoring reply
	MaxCompletionTokens = 600
	// CompletionTemperature is the fixed sampling temperature
	CompletionTemperature = 0.7

	// ErrNoChoicesInResponse is returned when the API response has no choices
	ErrNoChoicesInResponse = "no choices in response"
)

// OpenRouterProvider implements CompletionProvider against any
// OpenAI-compatible chat completions endpoint.
type OpenRouterProvider struct {
	client    openai.Client
	model     string
	logger    *zap.Logger
	debugMode bool
}

// NewOpenRouterProvider creates a provider with default logging disabled
func NewOpenRouterProvider(apiKey, baseURL, model string) *OpenRouterProvider {
	return NewOpenRouterProviderWithLogger(apiKey, baseURL, model, nil, false)
}

// NewOpenRouterProviderWithLogger creates a provider with request/response
// debug logging support
func NewOpenRouterProviderWithLogger(apiKey, baseURL, model string, logger *zap.Logger, debugMode bool) *OpenRouterProvider {
	if model == "" {
		model = DefaultModel
	}
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	httpClient := &http.Client{
		Timeout: DefaultTimeout,
	}

	client := openai.NewClient(
		option.WithAPIKey(apiKey),
		option.WithBaseURL(baseURL),
		option.WithHTTPClient(httpClient),
	)

	return &OpenRouterProvider{
		client:    client,
		model:     model,
		logger:    logger,
		debugMode: debugMode,
	}
}

// Complete sends one completion request. A single attempt is made: callers
// handle failure by falling back, so there is no retry loop here.
func (p *OpenRouterProvider) Complete(ctx context.Context, req CompletionRequest) (string, error) {
	messages := []openai.ChatCompletionMessageParamUnion{
		openai.SystemMessage(req.System),
		openai.UserMessage(req.User),
	}

	if p.logger != nil && p.debugMode {
		p.logger.Debug("llm_api_request",
			zap.String("model", p.model),
			zap.Int("system_length", len(req.System)),
			zap.Int("user_length", len(req.User)),
		)
	}

	params := openai.ChatCompletionNewParams{
		Model:       shared.ChatModel(p.model),
		Messages:    messages,
		MaxTokens:   openai.Int(MaxCompletionTokens),
		Temperature: openai.Float(CompletionTemperature),
	}

	start := time.Now()
	resp, err := p.client.Chat.Completions.New(ctx, params)
	latency := time.Since(start)

	if err != nil {
		if p.logger != nil && p.debugMode {
			p.logger.Debug("llm_api_error",
				zap.String("model", p.model),
				zap.Error(err),
				zap.Int64("latency_ms", latency.Milliseconds()),
			)
		}
		return "", fmt.Errorf("completion request failed: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", errors.New(ErrNoChoicesInResponse)
	}

	content := resp.Choices[0].Message.Content
	if content == "" {
		return "", errors.New("empty completion content")
	}

	if p.logger != nil && p.debugMode {
		p.logger.Debug("llm_api_response",
			zap.String("model", p.model),
			zap.Int("response_length", len(content)),
			zap.Int64("latency_ms", latency.Milliseconds()),
		)
	}

	return content, nil
}

var _ CompletionProvider = (*OpenRouterProvider)(nil)
