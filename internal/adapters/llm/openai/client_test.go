package openai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/bnema/smartplace-reply-cli/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewClient("sk-test", "")
	require.NoError(t, err)
	client.BaseURL = server.URL
	client.HTTPClient = server.Client()
	return client
}

func TestNewClientRequiresAPIKey(t *testing.T) {
	t.Parallel()

	_, err := NewClient("  ", "gpt-4o-mini")
	require.Error(t, err)
}

func TestCompleteSendsChatRequest(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))

		var req chatRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, domain.DefaultReplyModel, req.Model)
		assert.Equal(t, 300, req.MaxTokens)
		require.NotNil(t, req.Temperature)
		assert.InDelta(t, 0.7, *req.Temperature, 1e-9)
		require.Len(t, req.Messages, 1)
		assert.Equal(t, "user", req.Messages[0].Role)
		assert.Equal(t, "리뷰 프롬프트", req.Messages[0].Content)

		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"  감사합니다!  "}}]}`))
	})

	got, err := client.Complete(t.Context(), domain.CompletionRequest{Prompt: "리뷰 프롬프트", MaxTokens: 300, Temperature: 0.7})
	require.NoError(t, err)
	assert.Equal(t, "감사합니다!", got)
}

func TestCompleteClassifiesFailures(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		status int
		body   string
		want   error
	}{
		{name: "rate limited", status: http.StatusTooManyRequests, body: `{"error":{"message":"slow down","type":"rate_limit"}}`, want: domain.ErrTransientUpstream},
		{name: "server error", status: http.StatusServiceUnavailable, body: `unavailable`, want: domain.ErrTransientUpstream},
		{name: "bad key", status: http.StatusUnauthorized, body: `{"error":{"message":"invalid key"}}`, want: domain.ErrFatalUpstream},
		{name: "bad request", status: http.StatusBadRequest, body: `{}`, want: domain.ErrFatalUpstream},
		{name: "no choices", status: http.StatusOK, body: `{"choices":[]}`, want: domain.ErrFatalUpstream},
		{name: "not json", status: http.StatusOK, body: `<html>`, want: domain.ErrFatalUpstream},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})

			_, err := client.Complete(t.Context(), domain.CompletionRequest{Prompt: "p"})
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestCompletePerCallTimeoutIsTransient(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	})
	t.Cleanup(func() { close(release) })
	client.RequestTimeout = 20 * time.Millisecond

	_, err := client.Complete(t.Context(), domain.CompletionRequest{Prompt: "p"})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrTransientUpstream)
}

func TestCompleteCancelledCallerIsFatal(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	_, err := client.Complete(ctx, domain.CompletionRequest{Prompt: "p"})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrFatalUpstream)
}
