package ports

import (
	"context"

	"github.com/bnema/smartplace-reply-cli/internal/domain"
)

// SessionStore persists the session artifact as an opaque blob. Load returns
// domain.ErrSessionNotFound when nothing is stored and domain.ErrSessionMalformed
// when the blob cannot be decoded.
type SessionStore interface {
	Load(ctx context.Context) (domain.SessionArtifact, error)
	Save(ctx context.Context, artifact domain.SessionArtifact) error
	Clear(ctx context.Context) error
}

type SessionAuthenticator interface {
	AcquireSession(ctx context.Context, creds domain.Credentials, preferCached bool) (domain.SessionArtifact, error)
}
