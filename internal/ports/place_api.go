package ports

import (
	"context"

	"github.com/bnema/smartplace-reply-cli/internal/domain"
)

// PlaceAPI is a session-bound client for the business platform. One value
// belongs to exactly one run.
type PlaceAPI interface {
	ResolveStore(ctx context.Context, bookingBusinessID string, userID string) (domain.StoreIdentifierMap, error)
	FetchReviews(ctx context.Context, store domain.StoreIdentifierMap) ([]domain.ReviewRecord, error)
	SubmitReply(ctx context.Context, store domain.StoreIdentifierMap, reviewID string, text string) error
	HasCSRFToken() bool
	ReviewURL(store domain.StoreIdentifierMap) string
	Close()
}

type PlaceAPIProvider interface {
	OpenPlaceAPI(ctx context.Context) (PlaceAPI, error)
}
