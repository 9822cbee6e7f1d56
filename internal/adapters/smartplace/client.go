package smartplace

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/bnema/smartplace-reply-cli/internal/domain"
	"github.com/bnema/smartplace-reply-cli/internal/ports"
)

const (
	DefaultBaseURL = "https://new.smartplace.naver.com"

	enumerationPath = "/api/refined-businesses"
	graphQLPath     = "/graphql"

	maxResponseBytes = 1 << 20

	enumerationTimeout = 15 * time.Second
	graphQLTimeout     = 30 * time.Second
)

// Client talks to the SmartPlace web API with a session-bound HTTP client.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
	Clock      ports.Clock
}

var _ ports.PlaceAPI = (*Client)(nil)

// HasCSRFToken reports whether the jar will send a csrf_token cookie to
// the SmartPlace host.
func (c *Client) HasCSRFToken() bool {
	client := c.httpClient()
	if client.Jar == nil {
		return false
	}
	base, err := url.Parse(c.baseURL())
	if err != nil {
		return false
	}
	for _, cookie := range client.Jar.Cookies(base) {
		if cookie.Name == domain.CSRFCookieName && strings.TrimSpace(cookie.Value) != "" {
			return true
		}
	}

	return false
}

func (c *Client) ReviewURL(store domain.StoreIdentifierMap) string {
	return store.ReviewURL(c.baseURL())
}

func (c *Client) Close() {
	c.httpClient().CloseIdleConnections()
}

func (c *Client) baseURL() string {
	if c.BaseURL == "" {
		return DefaultBaseURL
	}
	return strings.TrimRight(c.BaseURL, "/")
}

func (c *Client) httpClient() *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}
	return http.DefaultClient
}

func (c *Client) now() time.Time {
	if c.Clock != nil {
		return c.Clock.Now()
	}
	return time.Now()
}

func requestContext(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if _, hasDeadline := ctx.Deadline(); hasDeadline {
		return ctx, func() {}
	}

	return context.WithTimeout(ctx, timeout)
}

func buildAPIURL(baseURL string, path string, query url.Values) (string, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return "", fmt.Errorf("parse api base url: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return "", errors.New("api base url must use http or https")
	}
	if parsed.Host == "" {
		return "", errors.New("api base url host is required")
	}

	endpoint, err := parsed.Parse(path)
	if err != nil {
		return "", fmt.Errorf("parse api path: %w", err)
	}
	if len(query) > 0 {
		endpoint.RawQuery = query.Encode()
	}
	return endpoint.String(), nil
}

type graphQLRequest struct {
	OperationName string         `json:"operationName"`
	Variables     map[string]any `json:"variables"`
	Query         string         `json:"query"`
}

type graphQLError struct {
	Message string `json:"message"`
}

type graphQLErrors []graphQLError

func (e graphQLErrors) Error() string {
	messages := make([]string, 0, len(e))
	for _, item := range e {
		if item.Message != "" {
			messages = append(messages, item.Message)
		}
	}
	if len(messages) == 0 {
		return "graphql error"
	}
	return strings.Join(messages, "; ")
}

// envelopeError treats any non-null errors field as a failure, including an
// empty list or a shape other than a list of messages.
func envelopeError(raw json.RawMessage) error {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil
	}

	var list graphQLErrors
	if err := json.Unmarshal(trimmed, &list); err == nil {
		return list
	}

	return fmt.Errorf("graphql error: %s", trimmed)
}

// response is a fully read body; the connection is released before parsing.
type response struct {
	status int
	body   []byte
}

func (r response) ok() bool {
	return r.status >= http.StatusOK && r.status < http.StatusMultipleChoices
}

func (r response) unauthorized() bool {
	return r.status == http.StatusUnauthorized || r.status == http.StatusForbidden
}

func (r response) statusError() error {
	snippet := strings.TrimSpace(string(r.body))
	if len(snippet) > 200 {
		snippet = snippet[:200]
	}
	if snippet == "" {
		return fmt.Errorf("status %d", r.status)
	}
	return fmt.Errorf("status %d: %s", r.status, snippet)
}

func (c *Client) do(ctx context.Context, method string, endpoint string, body any, headers map[string]string, timeout time.Duration) (response, error) {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return response{}, fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	requestCtx, cancel := requestContext(ctx, timeout)
	defer cancel()
	req, err := http.NewRequestWithContext(requestCtx, method, endpoint, reader)
	if err != nil {
		return response{}, fmt.Errorf("create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for key, value := range headers {
		req.Header.Set(key, value)
	}

	resp, err := c.httpClient().Do(req)
	if err != nil {
		return response{}, err
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return response{}, fmt.Errorf("read response body: %w", err)
	}

	return response{status: resp.StatusCode, body: raw}, nil
}

func (c *Client) graphQLEndpoint(operation string) (string, error) {
	return buildAPIURL(c.baseURL(), graphQLPath, url.Values{"opName": []string{operation}})
}

func (c *Client) graphQLHeaders(referer string) map[string]string {
	return map[string]string{
		"Accept":      "*/*",
		"from-system": "smartplace",
		"Origin":      c.baseURL(),
		"Referer":     referer,
	}
}
