package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/bnema/smartplace-reply-cli/internal/adapters/observer"
	"github.com/bnema/smartplace-reply-cli/internal/application"
	"github.com/bnema/smartplace-reply-cli/internal/domain"
	"github.com/spf13/cobra"
)

const reviewPreviewRunes = 60

func newReviewsCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reviews",
		Short: "Read customer reviews",
	}

	cmd.AddCommand(newReviewsFetchCmd(app))

	return cmd
}

type fetchedStore struct {
	BookingBusinessID string          `json:"booking_business_id"`
	PlaceID           string          `json:"place_id,omitempty"`
	ReviewURL         string          `json:"review_url,omitempty"`
	Error             string          `json:"error,omitempty"`
	Reviews           []fetchedReview `json:"reviews"`
}

type fetchedReview struct {
	ID        string    `json:"id"`
	Author    string    `json:"author"`
	Rating    *int      `json:"rating,omitempty"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at,omitzero"`
}

func newReviewsFetchCmd(app *app) *cobra.Command {
	var (
		userID string
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "fetch <business-id>...",
		Short: "Fetch unanswered reviews without drafting replies",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ids := domain.NormalizeBusinessIDs(args)
			if len(ids) == 0 {
				return errors.New("no business ids given")
			}

			api, err := app.places.OpenPlaceAPI(cmd.Context())
			if err != nil {
				return err
			}
			defer api.Close()

			stores := make([]domain.StoreIdentifierMap, 0, len(ids))
			for _, id := range ids {
				store, err := api.ResolveStore(cmd.Context(), id, userID)
				if err != nil {
					app.logger.Sugar().Warnw("skip unresolved store", "booking_id", id, "error", err)
					continue
				}
				stores = append(stores, store)
			}
			if len(stores) == 0 {
				return domain.ErrNoValidStores
			}

			results, err := application.NewReviewFetcher(observer.NewLogger(app.logger)).FetchAll(cmd.Context(), api, stores, nil)
			if err != nil {
				return err
			}

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(fetchedStores(results))
			}
			writeFetchedStores(cmd.OutOrStdout(), results)
			return nil
		},
	}

	cmd.Flags().StringVar(&userID, "user-id", app.cfg.UserID, "Naver user id sent as x-naver-id")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Render JSON output")

	return cmd
}

func fetchedStores(results []domain.StoreRunResult) []fetchedStore {
	out := make([]fetchedStore, 0, len(results))
	for _, result := range results {
		entry := fetchedStore{
			BookingBusinessID: result.Store.BookingBusinessID,
			PlaceID:           result.Store.PlaceID,
			ReviewURL:         result.ReviewURL,
			Reviews:           make([]fetchedReview, 0, len(result.Reviews)),
		}
		if result.FatalError != nil {
			entry.Error = result.FatalError.Error()
		}
		for _, review := range result.Reviews {
			entry.Reviews = append(entry.Reviews, fetchedReview{
				ID:        review.ID,
				Author:    review.AuthorDisplayName,
				Rating:    review.Rating,
				Text:      review.BodyText,
				CreatedAt: review.CreatedAt,
			})
		}
		out = append(out, entry)
	}

	return out
}

func writeFetchedStores(w io.Writer, results []domain.StoreRunResult) {
	for _, result := range results {
		if result.FatalError != nil {
			_, _ = fmt.Fprintf(w, "%s: error: %v\n", result.Store.BookingBusinessID, result.FatalError)
			continue
		}

		_, _ = fmt.Fprintf(w, "%s: %d unanswered review(s)\n", result.Store.BookingBusinessID, len(result.Reviews))
		for _, review := range result.Reviews {
			_, _ = fmt.Fprintf(w, "  %s\t%s\t%s\t%s\n", review.ID, authorOf(review), ratingOf(review), preview(review.BodyText))
		}
		if result.ReviewURL != "" {
			_, _ = fmt.Fprintf(w, "  %s\n", result.ReviewURL)
		}
	}
}

func authorOf(review domain.ReviewRecord) string {
	if review.AuthorDisplayName == "" {
		return "-"
	}
	return review.AuthorDisplayName
}

func ratingOf(review domain.ReviewRecord) string {
	if review.Rating == nil {
		return "-"
	}
	return strconv.Itoa(*review.Rating) + "★"
}

func preview(text string) string {
	text = strings.Join(strings.Fields(text), " ")
	if utf8.RuneCountInString(text) <= reviewPreviewRunes {
		return text
	}

	runes := []rune(text)
	return string(runes[:reviewPreviewRunes]) + "…"
}
