package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/bnema/smartplace-reply-cli/internal/domain"
	"github.com/bnema/smartplace-reply-cli/internal/ports"
)

const (
	DefaultBaseURL = "https://api.openai.com/v1"

	completionsPath  = "/chat/completions"
	maxResponseBytes = 1 << 20
	defaultTimeout   = 30 * time.Second
)

// Client implements ports.TextGenerator over the Chat Completions API.
type Client struct {
	APIKey         string
	BaseURL        string
	DefaultModel   string
	HTTPClient     *http.Client
	RequestTimeout time.Duration
}

var _ ports.TextGenerator = (*Client)(nil)

func NewClient(apiKey string, model string) (*Client, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, errors.New("openai api key is required")
	}
	if strings.TrimSpace(model) == "" {
		model = domain.DefaultReplyModel
	}

	return &Client{APIKey: apiKey, DefaultModel: model}, nil
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
	Temperature *float64      `json:"temperature,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Error *apiError `json:"error,omitempty"`
}

type apiError struct {
	Message string `json:"message"`
	Type    string `json:"type"`
	Code    any    `json:"code"`
}

type errorEnvelope struct {
	Error *apiError `json:"error"`
}

// Complete sends the prompt as a single user message. Rate limits, server
// errors and network failures come back as transient generation errors.
func (c *Client) Complete(ctx context.Context, req domain.CompletionRequest) (string, error) {
	model := req.Model
	if model == "" {
		model = c.DefaultModel
	}
	temperature := req.Temperature
	body := chatRequest{
		Model:       model,
		Messages:    []chatMessage{{Role: "user", Content: req.Prompt}},
		MaxTokens:   req.MaxTokens,
		Temperature: &temperature,
	}
	payload, err := json.Marshal(body)
	if err != nil {
		return "", domain.FatalGenerationError(fmt.Errorf("encode completion request: %w", err))
	}

	requestCtx, cancel := c.requestContext(ctx)
	defer cancel()
	httpReq, err := http.NewRequestWithContext(requestCtx, http.MethodPost, c.endpoint(), bytes.NewReader(payload))
	if err != nil {
		return "", domain.FatalGenerationError(fmt.Errorf("create completion request: %w", err))
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.APIKey)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient().Do(httpReq)
	if err != nil {
		return "", classifyTransportError(ctx, err)
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return "", domain.TransientGenerationError(fmt.Errorf("read completion response: %w", err))
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return "", classifyStatus(resp.StatusCode, raw)
	}

	var parsed chatResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return "", domain.FatalGenerationError(domain.NewParseError(raw, err))
	}
	if parsed.Error != nil {
		return "", domain.FatalGenerationError(fmt.Errorf("openai error: %s", parsed.Error.describe()))
	}
	if len(parsed.Choices) == 0 {
		return "", domain.FatalGenerationError(errors.New("openai response missing choices"))
	}

	return strings.TrimSpace(parsed.Choices[0].Message.Content), nil
}

func (e *apiError) describe() string {
	if e.Type == "" {
		return e.Message
	}
	return fmt.Sprintf("%s (%s)", e.Message, e.Type)
}

func classifyStatus(status int, body []byte) error {
	detail := fmt.Sprintf("status %d", status)
	var envelope errorEnvelope
	if err := json.Unmarshal(body, &envelope); err == nil && envelope.Error != nil && envelope.Error.Message != "" {
		detail = fmt.Sprintf("status %d: %s", status, envelope.Error.describe())
	}

	err := fmt.Errorf("openai completion: %s", detail)
	if status == http.StatusTooManyRequests || status == http.StatusRequestTimeout || status >= http.StatusInternalServerError {
		return domain.TransientGenerationError(err)
	}
	return domain.FatalGenerationError(err)
}

// classifyTransportError treats per-call timeouts and network errors as
// transient, but a cancelled caller context as fatal so retries stop.
func classifyTransportError(ctx context.Context, err error) error {
	wrapped := fmt.Errorf("openai completion: %w", err)
	if ctx.Err() != nil {
		return domain.FatalGenerationError(wrapped)
	}
	return domain.TransientGenerationError(wrapped)
}

func (c *Client) endpoint() string {
	base := c.BaseURL
	if base == "" {
		base = DefaultBaseURL
	}
	return strings.TrimRight(base, "/") + completionsPath
}

func (c *Client) httpClient() *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}
	return http.DefaultClient
}

func (c *Client) requestContext(ctx context.Context) (context.Context, context.CancelFunc) {
	timeout := c.RequestTimeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	return context.WithTimeout(ctx, timeout)
}
