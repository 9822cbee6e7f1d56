package domain

import "time"

type StoreStatus string

const (
	StoreStatusSucceeded StoreStatus = "succeeded"
	StoreStatusFailed    StoreStatus = "failed"
)

// RunSummary is the persisted per-run result set.
type RunSummary struct {
	ID         string
	State      RunState
	StartedAt  time.Time
	FinishedAt time.Time
	Error      string
	Stores     []StoreSummary
}

type StoreSummary struct {
	BookingBusinessID string
	PlaceID           string
	PlaceSeq          string
	ReviewURL         string
	Status            StoreStatus
	ReviewCount       int
	DraftCount        int
	DraftFailedCount  int
	SubmittedCount    int
	SubmitFailedCount int
	Error             string
}

func SummarizeRun(result RunResult) RunSummary {
	summary := RunSummary{
		ID:         result.ID,
		State:      result.State,
		StartedAt:  result.StartedAt,
		FinishedAt: result.FinishedAt,
		Stores:     make([]StoreSummary, 0, len(result.Stores)),
	}
	if result.Err != nil {
		summary.Error = result.Err.Error()
	}

	for _, store := range result.Stores {
		summary.Stores = append(summary.Stores, summarizeStore(store))
	}

	return summary
}

func summarizeStore(store StoreRunResult) StoreSummary {
	entry := StoreSummary{
		BookingBusinessID: store.Store.BookingBusinessID,
		PlaceID:           store.Store.PlaceID,
		PlaceSeq:          store.Store.PlaceSeq,
		ReviewURL:         store.ReviewURL,
		Status:            StoreStatusSucceeded,
		ReviewCount:       len(store.Reviews),
	}

	if store.FatalError != nil {
		entry.Status = StoreStatusFailed
		entry.Error = store.FatalError.Error()
		return entry
	}

	for _, draft := range store.Drafts {
		if draft.Eligible() {
			entry.DraftCount++
			continue
		}
		entry.DraftFailedCount++
	}
	entry.SubmittedCount, entry.SubmitFailedCount = store.SubmissionCounts()

	return entry
}
