package smartplace

import (
	"context"
	"errors"
	"fmt"

	"github.com/bnema/smartplace-reply-cli/internal/adapters/session"
	"github.com/bnema/smartplace-reply-cli/internal/domain"
	"github.com/bnema/smartplace-reply-cli/internal/ports"
)

// Connector opens a fresh Client per run from the persisted session.
type Connector struct {
	Sessions      ports.SessionStore
	BaseURL       string
	ClientOptions session.ClientOptions
	Clock         ports.Clock
}

var _ ports.PlaceAPIProvider = (*Connector)(nil)

func (c *Connector) OpenPlaceAPI(ctx context.Context) (ports.PlaceAPI, error) {
	artifact, err := c.Sessions.Load(ctx)
	if errors.Is(err, domain.ErrSessionNotFound) {
		return nil, &domain.AuthError{Kind: domain.AuthNoSession, Detail: "no saved session; run `spr login` first", Err: err}
	}
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}

	httpClient, err := session.NewHTTPClient(artifact, c.ClientOptions)
	if err != nil {
		return nil, err
	}

	return &Client{
		BaseURL:    c.BaseURL,
		HTTPClient: httpClient,
		Clock:      c.Clock,
	}, nil
}
