package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/smartplace-reply-cli/internal/domain"
	"github.com/bnema/smartplace-reply-cli/internal/ports/mocks"
)

func TestParseProvider(t *testing.T) {
	t.Parallel()

	provider, err := ParseProvider(" Gemini ")
	require.NoError(t, err)
	assert.Equal(t, ProviderGemini, provider)
	assert.Equal(t, "gemini/api_key", provider.SecretKey())
	assert.Equal(t, "GEMINI_API_KEY", provider.EnvVar())

	provider, err = ParseProvider("")
	require.NoError(t, err)
	assert.Equal(t, ProviderOpenAI, provider)

	_, err = ParseProvider("claude")
	require.ErrorIs(t, err, ErrUnsupportedProvider)
}

func TestServiceSetAPIKey(t *testing.T) {
	store := mocks.NewMockSecretStore(t)
	service := NewService(store, mocks.NewMockSessionStore(t), mocks.NewMockSessionAuthenticator(t), mocks.NewMockClock(t))

	store.EXPECT().Put(mockAnyContext(), "openai/api_key", "sk-test").Return(nil)

	err := service.SetAPIKey(context.Background(), SetAPIKeyCommand{Provider: ProviderOpenAI, APIKey: " sk-test\n"})
	require.NoError(t, err)
}

func TestServiceSetAPIKeyRejectsEmptyKey(t *testing.T) {
	store := mocks.NewMockSecretStore(t)
	service := NewService(store, mocks.NewMockSessionStore(t), mocks.NewMockSessionAuthenticator(t), nil)

	err := service.SetAPIKey(context.Background(), SetAPIKeyCommand{Provider: ProviderOpenAI, APIKey: "  "})
	require.Error(t, err)
}

func TestServiceClearAPIKeyIgnoresMissingSecret(t *testing.T) {
	store := mocks.NewMockSecretStore(t)
	service := NewService(store, mocks.NewMockSessionStore(t), mocks.NewMockSessionAuthenticator(t), nil)

	store.EXPECT().Delete(mockAnyContext(), "gemini/api_key").Return(domain.ErrSecretNotFound)

	require.NoError(t, service.ClearAPIKey(context.Background(), ClearAPIKeyCommand{Provider: ProviderGemini}))
}

func TestServiceResolveAPIKey(t *testing.T) {
	env := func(values map[string]string) func(string) (string, bool) {
		return func(key string) (string, bool) {
			value, ok := values[key]
			return value, ok
		}
	}

	t.Run("secret store wins", func(t *testing.T) {
		store := mocks.NewMockSecretStore(t)
		service := NewService(store, nil, nil, nil)
		store.EXPECT().Get(mockAnyContext(), "openai/api_key").Return("sk-store", nil)

		apiKey, err := service.ResolveAPIKey(context.Background(), ProviderOpenAI, env(map[string]string{"OPENAI_API_KEY": "sk-env"}))
		require.NoError(t, err)
		assert.Equal(t, "sk-store", apiKey)
	})

	t.Run("falls back to environment", func(t *testing.T) {
		store := mocks.NewMockSecretStore(t)
		service := NewService(store, nil, nil, nil)
		store.EXPECT().Get(mockAnyContext(), "openai/api_key").Return("", domain.ErrSecretNotFound)

		apiKey, err := service.ResolveAPIKey(context.Background(), ProviderOpenAI, env(map[string]string{"OPENAI_API_KEY": "sk-env"}))
		require.NoError(t, err)
		assert.Equal(t, "sk-env", apiKey)
	})

	t.Run("none configured", func(t *testing.T) {
		store := mocks.NewMockSecretStore(t)
		service := NewService(store, nil, nil, nil)
		store.EXPECT().Get(mockAnyContext(), "gemini/api_key").Return("", domain.ErrSecretNotFound)

		apiKey, err := service.ResolveAPIKey(context.Background(), ProviderGemini, env(nil))
		require.NoError(t, err)
		assert.Empty(t, apiKey)
	})

	t.Run("backend failure surfaces", func(t *testing.T) {
		store := mocks.NewMockSecretStore(t)
		service := NewService(store, nil, nil, nil)
		backendErr := errors.New("pass: gpg agent unavailable")
		store.EXPECT().Get(mockAnyContext(), "openai/api_key").Return("", backendErr)

		_, err := service.ResolveAPIKey(context.Background(), ProviderOpenAI, env(nil))
		require.ErrorIs(t, err, backendErr)
	})
}

func TestServiceLoginPrefersCachedSessionUnlessFresh(t *testing.T) {
	auth := mocks.NewMockSessionAuthenticator(t)
	clock := mocks.NewMockClock(t)
	service := NewService(mocks.NewMockSecretStore(t), mocks.NewMockSessionStore(t), auth, clock)

	now := time.Date(2026, 3, 15, 9, 0, 0, 0, time.UTC)
	creds := domain.Credentials{UserID: "owner", Password: "pw"}
	artifact := domain.SessionArtifact{
		Cookies: []domain.Cookie{{Name: "NID_AUT", Value: "a"}},
		SavedAt: now.Add(-time.Minute),
	}.WithCSRFToken("csrf-token-value")

	auth.EXPECT().AcquireSession(mockAnyContext(), creds, true).Return(artifact, nil).Once()
	auth.EXPECT().AcquireSession(mockAnyContext(), creds, false).Return(artifact, nil).Once()
	clock.EXPECT().Now().Return(now)

	status, err := service.Login(context.Background(), LoginCommand{Credentials: creds})
	require.NoError(t, err)
	assert.Equal(t, SessionStatus{Present: true, CookieCount: 2, HasCSRFToken: true, SavedAt: artifact.SavedAt, Age: time.Minute}, status)

	_, err = service.Login(context.Background(), LoginCommand{Credentials: creds, Fresh: true})
	require.NoError(t, err)
}

func TestServiceLoginWrapsAuthErrors(t *testing.T) {
	auth := mocks.NewMockSessionAuthenticator(t)
	service := NewService(nil, nil, auth, nil)

	loginErr := &domain.AuthError{Kind: domain.AuthLoginFailed, Detail: "timeout"}
	auth.EXPECT().AcquireSession(mockAnyContext(), domain.Credentials{}, true).Return(domain.SessionArtifact{}, loginErr)

	_, err := service.Login(context.Background(), LoginCommand{})
	require.ErrorIs(t, err, domain.ErrLoginFailed)
}

func TestServiceSessionStatus(t *testing.T) {
	t.Run("missing session is not an error", func(t *testing.T) {
		sessions := mocks.NewMockSessionStore(t)
		service := NewService(nil, sessions, nil, nil)
		sessions.EXPECT().Load(mockAnyContext()).Return(domain.SessionArtifact{}, domain.ErrSessionNotFound)

		status, err := service.SessionStatus(context.Background())
		require.NoError(t, err)
		assert.False(t, status.Present)
	})

	t.Run("malformed session is an error", func(t *testing.T) {
		sessions := mocks.NewMockSessionStore(t)
		service := NewService(nil, sessions, nil, nil)
		sessions.EXPECT().Load(mockAnyContext()).Return(domain.SessionArtifact{}, domain.ErrSessionMalformed)

		_, err := service.SessionStatus(context.Background())
		require.ErrorIs(t, err, domain.ErrSessionMalformed)
	})
}

func TestServiceClearSession(t *testing.T) {
	sessions := mocks.NewMockSessionStore(t)
	service := NewService(nil, sessions, nil, nil)
	sessions.EXPECT().Clear(mockAnyContext()).Return(nil)

	require.NoError(t, service.ClearSession(context.Background()))
}
