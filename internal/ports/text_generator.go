package ports

import (
	"context"

	"github.com/bnema/smartplace-reply-cli/internal/domain"
)

// TextGenerator returns *domain.GenerationError values so callers can tell
// transient upstream failures from fatal ones.
type TextGenerator interface {
	Complete(ctx context.Context, req domain.CompletionRequest) (string, error)
}
