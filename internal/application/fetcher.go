package application

import (
	"context"
	"errors"
	"fmt"

	"github.com/bnema/smartplace-reply-cli/internal/domain"
	"github.com/bnema/smartplace-reply-cli/internal/ports"
)

type ReviewFetcher struct {
	observer ports.RunObserver
}

func NewReviewFetcher(observer ports.RunObserver) *ReviewFetcher {
	if observer == nil {
		observer = ports.NopObserver{}
	}

	return &ReviewFetcher{observer: observer}
}

// FetchAll fetches each store in order and records per-store failures on the
// store's result. It stops early when cancel is set, and returns an error
// wrapping domain.ErrAuthExpired as soon as the session is rejected.
func (f *ReviewFetcher) FetchAll(ctx context.Context, api ports.PlaceAPI, stores []domain.StoreIdentifierMap, cancel *CancellationSignal) ([]domain.StoreRunResult, error) {
	total := len(stores)
	f.observer.OnLog(domain.LogLevelInfo, fmt.Sprintf("%d개 플레이스 리뷰 API 수집을 시작합니다.", total))

	results := make([]domain.StoreRunResult, 0, total)
	reviewTotal := 0
	for i, store := range stores {
		if cancel.IsSet() {
			f.observer.OnLog(domain.LogLevelInfo, "크롤링이 중단되었습니다.")
			break
		}

		f.observer.OnLog(domain.LogLevelInfo, fmt.Sprintf("[%d/%d] 플레이스 %s (placeId: %s) 리뷰 API 호출", i+1, total, store.BookingBusinessID, store.PlaceID))

		reviews, err := api.FetchReviews(ctx, store)
		if err != nil {
			f.observer.OnLog(domain.LogLevelError, fmt.Sprintf("플레이스 %s 리뷰 수집 실패: %v", store.BookingBusinessID, err))
			failed := domain.NewFailedStoreResult(store, err)
			failed.ReviewURL = api.ReviewURL(store)
			results = append(results, failed)
			if errors.Is(err, domain.ErrAuthExpired) {
				return results, fmt.Errorf("fetch reviews for %s: %w", store.BookingBusinessID, err)
			}
			continue
		}

		reviewTotal += len(reviews)
		results = append(results, domain.StoreRunResult{
			Store:     store,
			ReviewURL: api.ReviewURL(store),
			Reviews:   reviews,
		})
		f.observer.OnLog(domain.LogLevelInfo, fmt.Sprintf("플레이스 %s 답글 없는 리뷰 %d건 수집 완료", store.BookingBusinessID, len(reviews)))
	}

	f.observer.OnLog(domain.LogLevelInfo, fmt.Sprintf("총 %d개 플레이스에서 %d건 리뷰 수집 완료", total, reviewTotal))

	return results, nil
}
