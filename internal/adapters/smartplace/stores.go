package smartplace

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/bnema/smartplace-reply-cli/internal/domain"
)

type businessGroup struct {
	BookingBusinesses []businessEntry `json:"bookingBusinesses"`
}

type businessEntry struct {
	BookingBusinessID flexibleID `json:"bookingBusinessId"`
	PlaceSeq          flexibleID `json:"placeSeq"`
	PlaceID           flexibleID `json:"placeId"`
}

// flexibleID decodes ids the API sends as either JSON numbers or strings.
type flexibleID string

func (f *flexibleID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*f = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = flexibleID(strings.TrimSpace(s))
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("id is neither string nor number: %s", data)
	}
	if i, err := n.Int64(); err == nil {
		*f = flexibleID(strconv.FormatInt(i, 10))
		return nil
	}
	*f = flexibleID(n.String())
	return nil
}

// ResolveStore finds the place identifiers for one booking business id in
// the account's business list.
func (c *Client) ResolveStore(ctx context.Context, bookingBusinessID string, userID string) (domain.StoreIdentifierMap, error) {
	bookingBusinessID = strings.TrimSpace(bookingBusinessID)
	fail := func(kind domain.ResolutionErrorKind, err error) (domain.StoreIdentifierMap, error) {
		return domain.StoreIdentifierMap{}, &domain.ResolutionError{Kind: kind, BookingBusinessID: bookingBusinessID, Err: err}
	}

	endpoint, err := buildAPIURL(c.baseURL(), enumerationPath, nil)
	if err != nil {
		return fail(domain.ResolutionTransportFailure, err)
	}

	resp, err := c.do(ctx, http.MethodGet, endpoint, nil, map[string]string{
		"Accept":     "application/json",
		"Referer":    c.baseURL() + "/",
		"x-naver-id": userID,
	}, enumerationTimeout)
	if err != nil {
		return fail(domain.ResolutionTransportFailure, fmt.Errorf("list businesses: %w", err))
	}
	if !resp.ok() {
		return fail(domain.ResolutionTransportFailure, fmt.Errorf("list businesses: %w", resp.statusError()))
	}

	var raw any
	if err := json.Unmarshal(resp.body, &raw); err != nil {
		return fail(domain.ResolutionMalformedResponse, domain.NewParseError(resp.body, err))
	}
	if _, ok := raw.([]any); !ok {
		return fail(domain.ResolutionMalformedResponse, domain.NewParseError(resp.body, errors.New("business list is not an array")))
	}

	var groups []businessGroup
	if err := json.Unmarshal(resp.body, &groups); err != nil {
		return fail(domain.ResolutionMalformedResponse, domain.NewParseError(resp.body, err))
	}

	for _, group := range groups {
		for _, entry := range group.BookingBusinesses {
			if string(entry.BookingBusinessID) != bookingBusinessID {
				continue
			}

			store := domain.StoreIdentifierMap{
				BookingBusinessID: bookingBusinessID,
				PlaceID:           string(entry.PlaceID),
				PlaceSeq:          string(entry.PlaceSeq),
			}
			if !store.Resolved() {
				return fail(domain.ResolutionIncompleteRecord, errors.New("business entry is missing placeId or placeSeq"))
			}
			return store, nil
		}
	}

	return fail(domain.ResolutionNotFound, errors.New("no business linked to this account has that id"))
}
