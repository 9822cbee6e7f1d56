package application

import (
	"fmt"
	"strings"

	"github.com/bnema/smartplace-reply-cli/internal/domain"
)

type Provider string

const (
	ProviderOpenAI Provider = "openai"
	ProviderGemini Provider = "gemini"
)

func ParseProvider(raw string) (Provider, error) {
	switch provider := Provider(strings.ToLower(strings.TrimSpace(raw))); provider {
	case ProviderOpenAI, ProviderGemini:
		return provider, nil
	case "":
		return ProviderOpenAI, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedProvider, raw)
	}
}

// SecretKey is where the provider's API key lives in the secret store.
func (p Provider) SecretKey() string {
	return string(p) + "/api_key"
}

func (p Provider) EnvVar() string {
	return strings.ToUpper(string(p)) + "_API_KEY"
}

type SetAPIKeyCommand struct {
	Provider Provider
	APIKey   string
}

type ClearAPIKeyCommand struct {
	Provider Provider
}

type LoginCommand struct {
	Credentials domain.Credentials
	// Fresh skips the stored session and always logs in with credentials.
	Fresh bool
}
