package ports

import "context"

// SecretStore holds opaque string blobs by slash-separated key, such as the
// serialized browser session or a provider API key. Get returns
// domain.ErrSecretNotFound for a missing key.
type SecretStore interface {
	Get(ctx context.Context, key string) (string, error)
	Put(ctx context.Context, key string, value string) error
	Delete(ctx context.Context, key string) error
}
