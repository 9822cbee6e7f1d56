package application

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/bnema/smartplace-reply-cli/internal/domain"
	"github.com/bnema/smartplace-reply-cli/internal/ports"
)

var ErrUnsupportedProvider = errors.New("unsupported generation provider")

// Service owns the account-level state around a run: the stored browser
// session and the generation API keys.
type Service struct {
	store    ports.SecretStore
	sessions ports.SessionStore
	auth     ports.SessionAuthenticator
	clock    ports.Clock
}

func NewService(store ports.SecretStore, sessions ports.SessionStore, auth ports.SessionAuthenticator, clock ports.Clock) *Service {
	if clock == nil {
		clock = ports.SystemClock{}
	}

	return &Service{
		store:    store,
		sessions: sessions,
		auth:     auth,
		clock:    clock,
	}
}

func (s *Service) SetAPIKey(ctx context.Context, cmd SetAPIKeyCommand) error {
	apiKey := strings.TrimSpace(cmd.APIKey)
	if apiKey == "" {
		return errors.New("api key is empty")
	}

	if err := s.store.Put(ctx, cmd.Provider.SecretKey(), apiKey); err != nil {
		return fmt.Errorf("store %s api key: %w", cmd.Provider, err)
	}

	return nil
}

func (s *Service) ClearAPIKey(ctx context.Context, cmd ClearAPIKeyCommand) error {
	if err := s.store.Delete(ctx, cmd.Provider.SecretKey()); err != nil && !errors.Is(err, domain.ErrSecretNotFound) {
		return fmt.Errorf("delete %s api key: %w", cmd.Provider, err)
	}

	return nil
}

// ResolveAPIKey prefers the secret store and falls back to the provider's
// environment variable. An empty key with a nil error means none is configured.
func (s *Service) ResolveAPIKey(ctx context.Context, provider Provider, lookupEnv func(string) (string, bool)) (string, error) {
	apiKey, err := s.store.Get(ctx, provider.SecretKey())
	switch {
	case err == nil:
		if trimmed := strings.TrimSpace(apiKey); trimmed != "" {
			return trimmed, nil
		}
	case errors.Is(err, domain.ErrSecretNotFound):
	default:
		return "", fmt.Errorf("get %s api key: %w", provider, err)
	}

	if lookupEnv == nil {
		return "", nil
	}
	if value, ok := lookupEnv(provider.EnvVar()); ok {
		return strings.TrimSpace(value), nil
	}

	return "", nil
}

func (s *Service) Login(ctx context.Context, cmd LoginCommand) (SessionStatus, error) {
	artifact, err := s.auth.AcquireSession(ctx, cmd.Credentials, !cmd.Fresh)
	if err != nil {
		return SessionStatus{}, fmt.Errorf("acquire session: %w", err)
	}

	return s.statusOf(artifact), nil
}

// SessionStatus reports Present=false without error when nothing is stored.
// A malformed stored session is returned as an error.
func (s *Service) SessionStatus(ctx context.Context) (SessionStatus, error) {
	artifact, err := s.sessions.Load(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrSessionNotFound) {
			return SessionStatus{}, nil
		}
		return SessionStatus{}, fmt.Errorf("load session: %w", err)
	}

	return s.statusOf(artifact), nil
}

func (s *Service) ClearSession(ctx context.Context) error {
	if err := s.sessions.Clear(ctx); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}

	return nil
}

func (s *Service) statusOf(artifact domain.SessionArtifact) SessionStatus {
	status := SessionStatus{
		Present:      !artifact.IsEmpty(),
		CookieCount:  len(artifact.Cookies),
		HasCSRFToken: artifact.CSRFToken != "" || artifact.HasCSRFCookie(),
		SavedAt:      artifact.SavedAt,
	}
	if !artifact.SavedAt.IsZero() {
		status.Age = s.clock.Now().Sub(artifact.SavedAt)
	}

	return status
}
