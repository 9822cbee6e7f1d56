package gemini

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/bnema/smartplace-reply-cli/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewClient(t.Context(), "gemini-key", "", Options{BaseURL: server.URL + "/", HTTPClient: server.Client()})
	require.NoError(t, err)
	return client
}

func TestNewClientRequiresAPIKey(t *testing.T) {
	t.Parallel()

	_, err := NewClient(t.Context(), "", "", Options{})
	require.Error(t, err)
}

func TestCompleteReturnsCandidateText(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, strings.HasSuffix(r.URL.Path, "/models/"+DefaultModel+":generateContent"), r.URL.Path)

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		config, ok := body["generationConfig"].(map[string]any)
		require.True(t, ok)
		assert.EqualValues(t, 300, config["maxOutputTokens"])

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"candidates":[{"content":{"role":"model","parts":[{"text":" 방문해 주셔서 감사합니다. "}]}}]}`))
	})

	got, err := client.Complete(t.Context(), domain.CompletionRequest{Prompt: "p", Model: "gpt-4o-mini", MaxTokens: 300, Temperature: 0.7})
	require.NoError(t, err)
	assert.Equal(t, "방문해 주셔서 감사합니다.", got)
}

func TestCompleteClassifiesAPIErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		status int
		want   error
	}{
		{name: "rate limited", status: http.StatusTooManyRequests, want: domain.ErrTransientUpstream},
		{name: "unavailable", status: http.StatusServiceUnavailable, want: domain.ErrTransientUpstream},
		{name: "bad request", status: http.StatusBadRequest, want: domain.ErrFatalUpstream},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(fmt.Sprintf(`{"error":{"code":%d,"message":"upstream says no","status":"ERR"}}`, tt.status)))
			})

			_, err := client.Complete(t.Context(), domain.CompletionRequest{Prompt: "p"})
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestCompleteEmptyCandidatesIsFatal(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"candidates":[]}`))
	})

	_, err := client.Complete(t.Context(), domain.CompletionRequest{Prompt: "p"})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrFatalUpstream)
}
