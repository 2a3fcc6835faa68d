// Package gemini implements the completion client against the
// OpenAI-compatible endpoint of the Gemini API.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/claro-labs/claro/internal/domain"
	"github.com/claro-labs/claro/internal/metrics"
)

// Defaults applied when the caller passes zero values.
const (
	defaultMaxTokens   = 800
	defaultTemperature = 0.5
)

// Client sends prompts to the generative backend and returns plain text.
type Client struct {
	client  *openai.Client
	model   string
	timeout time.Duration
	logger  *zap.Logger
	// hasKey gates every call: with no credential the client fails fast
	// with ErrUpstreamUnavailable instead of attempting the request.
	hasKey bool
}

// Config holds the completion backend settings.
type Config struct {
	APIKey  string
	BaseURL string
	Model   string
	Timeout time.Duration
	Logger  *zap.Logger
}

// NewClient creates a completion client for an OpenAI-compatible endpoint.
func NewClient(cfg *Config) *Client {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 120 * time.Second
	}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Client{
		client:  openai.NewClientWithConfig(clientCfg),
		model:   cfg.Model,
		timeout: timeout,
		logger:  logger,
		hasKey:  cfg.APIKey != "",
	}
}

// Complete sends a single prompt and returns the generated text.
// A syntactically successful response with no extractable text returns
// ("", nil): upstream may legitimately produce an empty completion, and
// callers substitute their own fallback literal.
func (c *Client) Complete(ctx context.Context, prompt string, maxTokens int, temperature float32) (string, error) {
	if !c.hasKey {
		return "", fmt.Errorf("completion api key is not configured: %w", domain.ErrUpstreamUnavailable)
	}

	if maxTokens <= 0 {
		maxTokens = defaultMaxTokens
	}
	if temperature <= 0 {
		temperature = defaultTemperature
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req := openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		MaxTokens:   maxTokens,
		Temperature: temperature,
	}

	start := time.Now()
	resp, err := c.client.CreateChatCompletion(ctx, req)
	duration := time.Since(start)

	if err != nil {
		metrics.CompletionRequestsTotal.WithLabelValues(c.model, "error").Inc()
		return "", c.classifyError(err)
	}

	metrics.CompletionRequestsTotal.WithLabelValues(c.model, "success").Inc()
	metrics.CompletionRequestDuration.WithLabelValues(c.model).Observe(duration.Seconds())
	if resp.Usage.TotalTokens > 0 {
		metrics.CompletionTokensTotal.WithLabelValues(c.model, "prompt").Add(float64(resp.Usage.PromptTokens))
		metrics.CompletionTokensTotal.WithLabelValues(c.model, "completion").Add(float64(resp.Usage.CompletionTokens))
		metrics.CompletionTokensTotal.WithLabelValues(c.model, "total").Add(float64(resp.Usage.TotalTokens))
	}

	if len(resp.Choices) == 0 {
		c.logger.Warn("completion returned no choices", zap.String("model", c.model))
		return "", nil
	}
	return resp.Choices[0].Message.Content, nil
}

// HealthCheck verifies API availability via ListModels (free endpoint).
func (c *Client) HealthCheck(ctx context.Context) error {
	if !c.hasKey {
		return domain.ErrUpstreamUnavailable
	}
	if _, err := c.client.ListModels(ctx); err != nil {
		return fmt.Errorf("list models: %w", err)
	}
	return nil
}

// classifyError maps transport failures to domain sentinels, keeping the
// upstream detail in the wrap chain.
func (c *Client) classifyError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		metrics.CompletionErrorsTotal.WithLabelValues(c.model, "timeout").Inc()
		return fmt.Errorf("completion exceeded %s: %w", c.timeout, domain.ErrTimeout)
	}

	metrics.CompletionErrorsTotal.WithLabelValues(c.model, "api_error").Inc()

	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return fmt.Errorf("completion API error %d: %s: %w",
			reqErr.HTTPStatusCode, string(reqErr.Body), domain.ErrUpstream)
	}

	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return fmt.Errorf("completion API error %d: %s: %w",
			apiErr.HTTPStatusCode, apiErr.Message, domain.ErrUpstream)
	}

	return fmt.Errorf("completion request failed: %v: %w", err, domain.ErrUpstream)
}
