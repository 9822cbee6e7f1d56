package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/bnema/smartplace-reply-cli/internal/domain"
	"github.com/bnema/smartplace-reply-cli/internal/ports"
)

const (
	DefaultKey         = "naver/session"
	currentBlobVersion = 1
)

type Store struct {
	secrets ports.SecretStore
	key     string
	clock   ports.Clock
}

var _ ports.SessionStore = (*Store)(nil)

func NewStore(secrets ports.SecretStore, key string, clock ports.Clock) *Store {
	if strings.TrimSpace(key) == "" {
		key = DefaultKey
	}
	if clock == nil {
		clock = ports.SystemClock{}
	}

	return &Store{secrets: secrets, key: key, clock: clock}
}

type blob struct {
	Version   int          `json:"version,omitempty"`
	Cookies   []blobCookie `json:"cookies"`
	CSRFToken string       `json:"csrf_token,omitempty"`
	SavedAt   string       `json:"saved_at,omitempty"`
}

type blobCookie struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Domain string `json:"domain"`
	Path   string `json:"path,omitempty"`
}

func (s *Store) Load(ctx context.Context) (domain.SessionArtifact, error) {
	raw, err := s.secrets.Get(ctx, s.key)
	if err != nil {
		if errors.Is(err, domain.ErrSecretNotFound) {
			return domain.SessionArtifact{}, fmt.Errorf("load session %q: %w", s.key, domain.ErrSessionNotFound)
		}
		return domain.SessionArtifact{}, fmt.Errorf("load session %q: %w", s.key, err)
	}

	artifact, err := decodeBlob([]byte(raw))
	if err != nil {
		return domain.SessionArtifact{}, fmt.Errorf("load session %q: %w", s.key, err)
	}

	return artifact, nil
}

func (s *Store) Save(ctx context.Context, artifact domain.SessionArtifact) error {
	if artifact.IsEmpty() {
		return errors.New("save session: artifact has no cookies")
	}
	if artifact.SavedAt.IsZero() {
		artifact.SavedAt = s.clock.Now()
	}

	data, err := encodeBlob(artifact)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}

	if err := s.secrets.Put(ctx, s.key, string(data)); err != nil {
		return fmt.Errorf("save session %q: %w", s.key, err)
	}

	return nil
}

func (s *Store) Clear(ctx context.Context) error {
	if err := s.secrets.Delete(ctx, s.key); err != nil {
		return fmt.Errorf("clear session %q: %w", s.key, err)
	}

	return nil
}

func encodeBlob(artifact domain.SessionArtifact) ([]byte, error) {
	payload := blob{
		Version:   currentBlobVersion,
		Cookies:   make([]blobCookie, 0, len(artifact.Cookies)),
		CSRFToken: artifact.CSRFToken,
	}
	if !artifact.SavedAt.IsZero() {
		payload.SavedAt = artifact.SavedAt.UTC().Format(time.RFC3339)
	}
	for _, cookie := range artifact.Cookies {
		payload.Cookies = append(payload.Cookies, blobCookie{
			Name:   cookie.Name,
			Value:  cookie.Value,
			Domain: cookie.Domain,
			Path:   cookie.Path,
		})
	}

	return json.Marshal(payload)
}

// decodeBlob also accepts the bare {"cookies": [...]} layout written by
// older tooling, which carries no version and no token field.
func decodeBlob(data []byte) (domain.SessionArtifact, error) {
	var payload blob
	if err := json.Unmarshal(data, &payload); err != nil {
		return domain.SessionArtifact{}, fmt.Errorf("%w: %v", domain.ErrSessionMalformed, err)
	}
	if payload.Version > currentBlobVersion {
		return domain.SessionArtifact{}, fmt.Errorf("%w: unsupported version %d (current %d)", domain.ErrSessionMalformed, payload.Version, currentBlobVersion)
	}
	if len(payload.Cookies) == 0 {
		return domain.SessionArtifact{}, fmt.Errorf("%w: no cookies", domain.ErrSessionMalformed)
	}

	artifact := domain.SessionArtifact{
		Cookies:   make([]domain.Cookie, 0, len(payload.Cookies)),
		CSRFToken: payload.CSRFToken,
	}
	for _, cookie := range payload.Cookies {
		if cookie.Name == "" {
			return domain.SessionArtifact{}, fmt.Errorf("%w: cookie without name", domain.ErrSessionMalformed)
		}
		artifact.Cookies = append(artifact.Cookies, domain.Cookie{
			Name:   cookie.Name,
			Value:  cookie.Value,
			Domain: cookie.Domain,
			Path:   cookie.Path,
		})
	}
	if payload.SavedAt != "" {
		if savedAt, err := time.Parse(time.RFC3339, payload.SavedAt); err == nil {
			artifact.SavedAt = savedAt
		}
	}
	if artifact.CSRFToken == "" {
		if cookie, ok := artifact.Cookie(domain.CSRFCookieName); ok {
			artifact.CSRFToken = cookie.Value
		}
	}

	return artifact, nil
}
