package smartplace

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/bnema/smartplace-reply-cli/internal/domain"
)

type createReplyEnvelope struct {
	Data *struct {
		CreateReviewReply json.RawMessage `json:"createReviewReply"`
	} `json:"data"`
	Errors json.RawMessage `json:"errors"`
}

// SubmitReply posts one reply. Every failure is a *domain.SubmissionError
// carrying the upstream message when there is one.
func (c *Client) SubmitReply(ctx context.Context, store domain.StoreIdentifierMap, reviewID string, text string) error {
	reviewID = strings.TrimSpace(reviewID)
	if reviewID == "" || strings.TrimSpace(text) == "" {
		return domain.ErrEmptyPayload
	}
	businessID, err := strconv.ParseInt(strings.TrimSpace(store.BookingBusinessID), 10, 64)
	if err != nil {
		return &domain.SubmissionError{
			Kind:    domain.SubmissionEmptyPayload,
			Message: fmt.Sprintf("booking business id %q is not numeric", store.BookingBusinessID),
			Err:     err,
		}
	}

	endpoint, err := c.graphQLEndpoint("createReply")
	if err != nil {
		return &domain.SubmissionError{Kind: domain.SubmissionUpstreamRejected, Message: err.Error(), Err: err}
	}

	payload := graphQLRequest{
		OperationName: "createReply",
		Variables: map[string]any{
			"input": map[string]any{
				"text":              text,
				"reviewId":          reviewID,
				"bookingBusinessId": businessID,
			},
		},
		Query: createReplyMutation,
	}
	referer := fmt.Sprintf("%s/bizes/place/%s/reviews?bookingBusinessId=%s&menu=visitor",
		c.baseURL(), url.PathEscape(store.PlaceSeq), url.QueryEscape(store.BookingBusinessID))

	resp, err := c.do(ctx, http.MethodPost, endpoint, payload, c.graphQLHeaders(referer), graphQLTimeout)
	if err != nil {
		return rejected(fmt.Errorf("API call failed: %w", err))
	}
	if !resp.ok() {
		return rejected(fmt.Errorf("API call failed: %w", resp.statusError()))
	}

	var envelope createReplyEnvelope
	if err := json.Unmarshal(resp.body, &envelope); err != nil {
		return &domain.SubmissionError{
			Kind:    domain.SubmissionUnexpectedResponseShape,
			Message: domain.ErrUnexpectedResponseShape.Message,
			Err:     domain.NewParseError(resp.body, err),
		}
	}
	if err := envelopeError(envelope.Errors); err != nil {
		return rejected(fmt.Errorf("GraphQL API Error: %w", err))
	}
	if envelope.Data == nil || emptyJSON(envelope.Data.CreateReviewReply) {
		return domain.ErrUnexpectedResponseShape
	}

	return nil
}

func rejected(err error) error {
	return &domain.SubmissionError{Kind: domain.SubmissionUpstreamRejected, Message: err.Error(), Err: err}
}

func emptyJSON(raw json.RawMessage) bool {
	trimmed := strings.TrimSpace(string(raw))
	return trimmed == "" || trimmed == "null" || trimmed == "{}" || trimmed == "false"
}
