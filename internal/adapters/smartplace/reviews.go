package smartplace

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/bnema/smartplace-reply-cli/internal/domain"
)

const (
	reviewPageSize   = 10
	reviewWindowDays = 730
	dateLayout       = "2006-01-02"
)

var reviewTimeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.000Z0700",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	dateLayout,
}

type reviewsEnvelope struct {
	Data *struct {
		Reviews *struct {
			TotalCount int          `json:"totalCount"`
			Items      []reviewItem `json:"items"`
		} `json:"reviews"`
	} `json:"data"`
	Errors json.RawMessage `json:"errors"`
}

type reviewItem struct {
	ID     string `json:"id"`
	Author *struct {
		DisplayName string `json:"displayName"`
	} `json:"author"`
	Content *struct {
		Text   *string `json:"text"`
		Rating any     `json:"rating"`
	} `json:"content"`
	Rating          any    `json:"rating"`
	CreatedDateTime string `json:"createdDateTime"`
	HasReply        bool   `json:"hasReply"`
}

func (item reviewItem) record() domain.ReviewRecord {
	record := domain.ReviewRecord{
		ID:        strings.TrimSpace(item.ID),
		HasReply:  item.HasReply,
		CreatedAt: parseReviewTime(item.CreatedDateTime),
	}
	if item.Author != nil {
		record.AuthorDisplayName = strings.TrimSpace(item.Author.DisplayName)
	}

	record.Rating = ratingValue(item.Rating)
	if item.Content != nil {
		if item.Content.Text != nil {
			record.BodyText = strings.TrimSpace(*item.Content.Text)
		}
		if rating := ratingValue(item.Content.Rating); rating != nil {
			record.Rating = rating
		}
	}

	return record
}

// ratingValue accepts the rating as a JSON number or numeric string.
func ratingValue(raw any) *int {
	var f float64
	switch v := raw.(type) {
	case float64:
		f = v
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return nil
		}
		f = parsed
	default:
		return nil
	}

	value := int(math.Round(f))
	return &value
}

func parseReviewTime(value string) time.Time {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}
	}
	for _, layout := range reviewTimeLayouts {
		if parsed, err := time.Parse(layout, value); err == nil {
			return parsed
		}
	}
	return time.Time{}
}

// FetchReviews requests one page of unreplied, non-suspended reviews from
// the last two years for the store.
func (c *Client) FetchReviews(ctx context.Context, store domain.StoreIdentifierMap) ([]domain.ReviewRecord, error) {
	endpoint, err := c.graphQLEndpoint("getReviews")
	if err != nil {
		return nil, err
	}

	today := c.now()
	payload := graphQLRequest{
		OperationName: "getReviews",
		Variables: map[string]any{
			"input": map[string]any{
				"size":        reviewPageSize,
				"startDate":   today.AddDate(0, 0, -reviewWindowDays).Format(dateLayout),
				"endDate":     today.Format(dateLayout),
				"isSuspended": false,
				"placeId":     store.PlaceID,
				"hasReply":    false,
			},
		},
		Query: getReviewsQuery,
	}
	referer := fmt.Sprintf("%s/bizes/place/%s?bookingBusinessId=%s",
		c.baseURL(), url.PathEscape(store.PlaceSeq), url.QueryEscape(store.BookingBusinessID))

	resp, err := c.do(ctx, http.MethodPost, endpoint, payload, c.graphQLHeaders(referer), graphQLTimeout)
	if err != nil {
		return nil, fmt.Errorf("fetch reviews: %w", err)
	}
	if resp.unauthorized() {
		return nil, fmt.Errorf("fetch reviews: status %d: %w", resp.status, domain.ErrAuthExpired)
	}
	if !resp.ok() {
		return nil, fmt.Errorf("fetch reviews: %w", resp.statusError())
	}

	var envelope reviewsEnvelope
	if err := json.Unmarshal(resp.body, &envelope); err != nil {
		return nil, domain.NewParseError(resp.body, err)
	}
	if err := envelopeError(envelope.Errors); err != nil {
		return nil, fmt.Errorf("fetch reviews: graphql: %w", err)
	}
	if envelope.Data == nil || envelope.Data.Reviews == nil {
		return []domain.ReviewRecord{}, nil
	}

	records := make([]domain.ReviewRecord, 0, len(envelope.Data.Reviews.Items))
	for _, item := range envelope.Data.Reviews.Items {
		records = append(records, item.record())
	}

	return records, nil
}
