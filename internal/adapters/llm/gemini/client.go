package gemini

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/bnema/smartplace-reply-cli/internal/domain"
	"github.com/bnema/smartplace-reply-cli/internal/ports"
	"google.golang.org/genai"
)

const (
	DefaultModel   = "gemini-2.5-flash"
	defaultTimeout = 30 * time.Second
)

type Options struct {
	// BaseURL overrides the Gemini API endpoint.
	BaseURL        string
	HTTPClient     *http.Client
	RequestTimeout time.Duration
}

// Client implements ports.TextGenerator with the Gemini API.
type Client struct {
	client  *genai.Client
	model   string
	timeout time.Duration
}

var _ ports.TextGenerator = (*Client)(nil)

func NewClient(ctx context.Context, apiKey string, model string, opts Options) (*Client, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, errors.New("gemini api key is required")
	}
	if strings.TrimSpace(model) == "" {
		model = DefaultModel
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:      apiKey,
		Backend:     genai.BackendGeminiAPI,
		HTTPClient:  opts.HTTPClient,
		HTTPOptions: genai.HTTPOptions{BaseURL: opts.BaseURL},
	})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}

	timeout := opts.RequestTimeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	return &Client{client: client, model: model, timeout: timeout}, nil
}

func (c *Client) Complete(ctx context.Context, req domain.CompletionRequest) (string, error) {
	model := req.Model
	if model == "" || strings.HasPrefix(model, "gpt-") {
		model = c.model
	}

	config := &genai.GenerateContentConfig{
		Temperature: genai.Ptr(float32(req.Temperature)),
	}
	if req.MaxTokens > 0 {
		config.MaxOutputTokens = int32(req.MaxTokens)
	}

	callCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := c.client.Models.GenerateContent(callCtx, model, genai.Text(req.Prompt), config)
	if err != nil {
		return "", classify(ctx, err)
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", domain.FatalGenerationError(errors.New("gemini response has no text"))
	}

	return text, nil
}

func classify(ctx context.Context, err error) error {
	wrapped := fmt.Errorf("gemini completion: %w", err)
	if ctx.Err() != nil {
		return domain.FatalGenerationError(wrapped)
	}

	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		if apiErr.Code == http.StatusTooManyRequests || apiErr.Code == http.StatusRequestTimeout || apiErr.Code >= http.StatusInternalServerError {
			return domain.TransientGenerationError(wrapped)
		}
		return domain.FatalGenerationError(wrapped)
	}

	return domain.TransientGenerationError(wrapped)
}
