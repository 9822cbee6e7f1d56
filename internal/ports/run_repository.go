package ports

import (
	"context"

	"github.com/bnema/smartplace-reply-cli/internal/domain"
)

type RunRepository interface {
	Save(ctx context.Context, summary domain.RunSummary) error
	GetByID(ctx context.Context, id string) (domain.RunSummary, error)
	List(ctx context.Context) ([]domain.RunSummary, error)
}
