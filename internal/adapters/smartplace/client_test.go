package smartplace

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"
	"time"

	"github.com/bnema/smartplace-reply-cli/internal/adapters/session"
	"github.com/bnema/smartplace-reply-cli/internal/domain"
	"github.com/bnema/smartplace-reply-cli/internal/ports/mocks"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

func (c fixedClock) Sleep(ctx context.Context, _ time.Duration) error { return ctx.Err() }

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return &Client{
		BaseURL:    server.URL,
		HTTPClient: server.Client(),
		Clock:      fixedClock{now: time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)},
	}
}

type rewriteTransport struct {
	target *url.URL
}

func (t rewriteTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	cloned := req.Clone(req.Context())
	cloned.URL.Scheme = t.target.Scheme
	cloned.URL.Host = t.target.Host
	cloned.Host = t.target.Host

	return http.DefaultTransport.RoundTrip(cloned)
}

// rewriteToServer keeps request URLs on the SmartPlace host, so the jar
// matches naver.com cookies, while delivering them to serverURL.
func rewriteToServer(t *testing.T, serverURL string) http.RoundTripper {
	t.Helper()

	target, err := url.Parse(serverURL)
	require.NoError(t, err)
	return rewriteTransport{target: target}
}

func writeJSON(t *testing.T, w http.ResponseWriter, status int, body string) {
	t.Helper()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = io.WriteString(w, body)
}

func TestResolveStoreFindsMatchingBusiness(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/refined-businesses", r.URL.Path)
		assert.Equal(t, "owner-id", r.Header.Get("x-naver-id"))
		assert.Contains(t, r.Header.Get("Referer"), "/")
		writeJSON(t, w, http.StatusOK, `[
			{"bookingBusinesses": [{"bookingBusinessId": 99, "placeId": "P0", "placeSeq": "S0"}]},
			{"bookingBusinesses": [{"bookingBusinessId": "1051707", "placeId": "P1", "placeSeq": "S1"}]}
		]`)
	})

	got, err := client.ResolveStore(t.Context(), "1051707", "owner-id")
	require.NoError(t, err)
	assert.Equal(t, domain.StoreIdentifierMap{BookingBusinessID: "1051707", PlaceID: "P1", PlaceSeq: "S1"}, got)
}

func TestResolveStoreAcceptsNumericIdentifiers(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(t, w, http.StatusOK, `[{"bookingBusinesses":[{"bookingBusinessId":1051707,"placeId":1234567,"placeSeq":7654321}]}]`)
	})

	got, err := client.ResolveStore(t.Context(), " 1051707 ", "owner-id")
	require.NoError(t, err)
	assert.Equal(t, "1234567", got.PlaceID)
	assert.Equal(t, "7654321", got.PlaceSeq)
}

func TestResolveStoreErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		status int
		body   string
		want   error
	}{
		{
			name:   "incomplete record",
			status: http.StatusOK,
			body:   `[{"bookingBusinesses":[{"bookingBusinessId":"1051707","placeId":"P1"}]}]`,
			want:   domain.ErrIncompleteRecord,
		},
		{
			name:   "not found",
			status: http.StatusOK,
			body:   `[{"bookingBusinesses":[{"bookingBusinessId":"42","placeId":"P1","placeSeq":"S1"}]}]`,
			want:   domain.ErrStoreNotFound,
		},
		{
			name:   "forbidden",
			status: http.StatusForbidden,
			body:   `{"message":"forbidden"}`,
			want:   domain.ErrTransportFailure,
		},
		{
			name:   "object instead of list",
			status: http.StatusOK,
			body:   `{"businesses":[]}`,
			want:   domain.ErrMalformedResponse,
		},
		{
			name:   "not json",
			status: http.StatusOK,
			body:   `<html>maintenance</html>`,
			want:   domain.ErrMalformedResponse,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
				writeJSON(t, w, tt.status, tt.body)
			})

			_, err := client.ResolveStore(t.Context(), "1051707", "owner-id")
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.want)

			var resErr *domain.ResolutionError
			require.ErrorAs(t, err, &resErr)
			assert.Equal(t, "1051707", resErr.BookingBusinessID)
		})
	}
}

func TestResolveStoreTransportFailure(t *testing.T) {
	t.Parallel()

	client := &Client{BaseURL: "http://127.0.0.1:1", HTTPClient: &http.Client{Timeout: time.Second}}

	_, err := client.ResolveStore(t.Context(), "1051707", "owner-id")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrTransportFailure)
}

func TestFetchReviewsSendsQueryAndDecodesItems(t *testing.T) {
	t.Parallel()

	var captured graphQLRequest
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/graphql", r.URL.Path)
		assert.Equal(t, "getReviews", r.URL.Query().Get("opName"))
		assert.Equal(t, "smartplace", r.Header.Get("from-system"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Contains(t, r.Header.Get("Referer"), "/bizes/place/S1?bookingBusinessId=1051707")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))

		writeJSON(t, w, http.StatusOK, `{"data":{"reviews":{"totalCount":2,"items":[
			{"id":"r1","content":{"text":" good ","rating":5},"author":{"displayName":"Kim"},"createdDateTime":"2026-03-01T12:30:00+09:00","hasReply":false},
			{"id":"r2","rating":"4","author":null,"content":null}
		]}}}`)
	})

	store := domain.StoreIdentifierMap{BookingBusinessID: "1051707", PlaceID: "P1", PlaceSeq: "S1"}
	got, err := client.FetchReviews(t.Context(), store)
	require.NoError(t, err)

	assert.Equal(t, "getReviews", captured.OperationName)
	assert.Equal(t, getReviewsQuery, captured.Query)
	wantInput := map[string]any{
		"size":        float64(10),
		"startDate":   "2024-03-15",
		"endDate":     "2026-03-15",
		"isSuspended": false,
		"placeId":     "P1",
		"hasReply":    false,
	}
	if diff := cmp.Diff(wantInput, captured.Variables["input"]); diff != "" {
		t.Fatalf("variables mismatch (-want +got):\n%s", diff)
	}

	five, four := 5, 4
	want := []domain.ReviewRecord{
		{
			ID:                "r1",
			AuthorDisplayName: "Kim",
			Rating:            &five,
			BodyText:          "good",
			CreatedAt:         time.Date(2026, 3, 1, 3, 30, 0, 0, time.UTC),
		},
		{ID: "r2", Rating: &four},
	}
	if diff := cmp.Diff(want, got, cmp.Comparer(func(a, b time.Time) bool { return a.Equal(b) })); diff != "" {
		t.Fatalf("reviews mismatch (-want +got):\n%s", diff)
	}
}

func TestFetchReviewsErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		status    int
		body      string
		wantIs    error
		wantParse bool
		contains  string
	}{
		{name: "unauthorized", status: http.StatusUnauthorized, body: `{}`, wantIs: domain.ErrAuthExpired},
		{name: "forbidden", status: http.StatusForbidden, body: `{}`, wantIs: domain.ErrAuthExpired},
		{name: "server error", status: http.StatusBadGateway, body: `bad gateway`, contains: "status 502"},
		{name: "error envelope on 200", status: http.StatusOK, body: `{"errors":[{"message":"invalid placeId"}]}`, contains: "invalid placeId"},
		{name: "empty error list", status: http.StatusOK, body: `{"errors":[],"data":{"reviews":{"items":[]}}}`, contains: "graphql error"},
		{name: "error object", status: http.StatusOK, body: `{"errors":{"code":"DENIED"}}`, contains: "DENIED"},
		{name: "not json", status: http.StatusOK, body: `<html>login</html>`, wantParse: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
				writeJSON(t, w, tt.status, tt.body)
			})

			_, err := client.FetchReviews(t.Context(), domain.StoreIdentifierMap{BookingBusinessID: "1", PlaceID: "P1", PlaceSeq: "S1"})
			require.Error(t, err)
			if tt.wantIs != nil {
				assert.ErrorIs(t, err, tt.wantIs)
			} else {
				assert.NotErrorIs(t, err, domain.ErrAuthExpired)
			}
			if tt.wantParse {
				var parseErr *domain.ParseError
				require.ErrorAs(t, err, &parseErr)
				assert.Equal(t, "<html>login</html>", parseErr.Snippet)
			}
			if tt.contains != "" {
				assert.Contains(t, err.Error(), tt.contains)
			}
		})
	}
}

func TestFetchReviewsWithoutDataIsEmpty(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(t, w, http.StatusOK, `{"data":{"reviews":null}}`)
	})

	got, err := client.FetchReviews(t.Context(), domain.StoreIdentifierMap{BookingBusinessID: "1", PlaceID: "P1", PlaceSeq: "S1"})
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestSubmitReplySendsMutation(t *testing.T) {
	t.Parallel()

	var captured graphQLRequest
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "createReply", r.URL.Query().Get("opName"))
		assert.Contains(t, r.Header.Get("Referer"), "/bizes/place/S1/reviews?bookingBusinessId=1051707&menu=visitor")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		writeJSON(t, w, http.StatusOK, `{"data":{"createReviewReply":{"reply":{"text":"감사합니다"}}}}`)
	})

	store := domain.StoreIdentifierMap{BookingBusinessID: "1051707", PlaceID: "P1", PlaceSeq: "S1"}
	require.NoError(t, client.SubmitReply(t.Context(), store, "r1", "감사합니다"))

	assert.Equal(t, "createReply", captured.OperationName)
	assert.Equal(t, createReplyMutation, captured.Query)
	assert.Equal(t, map[string]any{
		"text":              "감사합니다",
		"reviewId":          "r1",
		"bookingBusinessId": float64(1051707),
	}, captured.Variables["input"])
}

func TestSubmitReplyErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		status   int
		body     string
		want     error
		contains string
	}{
		{name: "error envelope", status: http.StatusOK, body: `{"errors":[{"message":"rate limited"}]}`, want: domain.ErrUpstreamRejected, contains: "rate limited"},
		{name: "empty error list", status: http.StatusOK, body: `{"errors":[],"data":{"createReviewReply":{"reply":{"text":"reply"}}}}`, want: domain.ErrUpstreamRejected, contains: "graphql error"},
		{name: "http failure", status: http.StatusInternalServerError, body: `oops`, want: domain.ErrUpstreamRejected, contains: "status 500"},
		{name: "empty success", status: http.StatusOK, body: `{"data":{"createReviewReply":null}}`, want: domain.ErrUnexpectedResponseShape, contains: "Unexpected GraphQL response format."},
		{name: "no data", status: http.StatusOK, body: `{}`, want: domain.ErrUnexpectedResponseShape},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
				writeJSON(t, w, tt.status, tt.body)
			})

			err := client.SubmitReply(t.Context(), domain.StoreIdentifierMap{BookingBusinessID: "1051707", PlaceSeq: "S1"}, "r1", "reply")
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.want)
			if tt.contains != "" {
				assert.Contains(t, err.Error(), tt.contains)
			}
		})
	}
}

func TestSubmitReplyRejectsEmptyPayloadWithoutRequest(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		writeJSON(t, w, http.StatusOK, `{}`)
	})
	store := domain.StoreIdentifierMap{BookingBusinessID: "1051707", PlaceSeq: "S1"}

	assert.ErrorIs(t, client.SubmitReply(t.Context(), store, "", "reply"), domain.ErrEmptyPayload)
	assert.ErrorIs(t, client.SubmitReply(t.Context(), store, "r1", "   "), domain.ErrEmptyPayload)
	assert.ErrorIs(t, client.SubmitReply(t.Context(), domain.StoreIdentifierMap{BookingBusinessID: "abc"}, "r1", "reply"), domain.ErrEmptyPayload)
	assert.Zero(t, calls.Load())
}

func TestHasCSRFToken(t *testing.T) {
	t.Parallel()

	assert.False(t, (&Client{HTTPClient: &http.Client{}}).HasCSRFToken())

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	base, err := url.Parse("https://new.smartplace.naver.com")
	require.NoError(t, err)
	jar.SetCookies(base, []*http.Cookie{{Name: domain.CSRFCookieName, Value: "from-jar", Path: "/"}})

	assert.True(t, (&Client{HTTPClient: &http.Client{Jar: jar}}).HasCSRFToken())
}

func TestReviewURL(t *testing.T) {
	t.Parallel()

	client := &Client{}
	assert.Equal(t, "https://new.smartplace.naver.com/bizes/place/S1/reviews",
		client.ReviewURL(domain.StoreIdentifierMap{PlaceSeq: "S1"}))
}

func TestConnectorOpenPlaceAPI(t *testing.T) {
	t.Parallel()

	t.Run("no session", func(t *testing.T) {
		t.Parallel()

		store := mocks.NewMockSessionStore(t)
		store.EXPECT().Load(mock.Anything).Return(domain.SessionArtifact{}, domain.ErrSessionNotFound).Once()

		_, err := (&Connector{Sessions: store}).OpenPlaceAPI(t.Context())
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrNoSession)
	})

	t.Run("session with token", func(t *testing.T) {
		t.Parallel()

		artifact := domain.SessionArtifact{Cookies: []domain.Cookie{{Name: "NID_SES", Value: "ses", Domain: ".naver.com", Path: "/"}}}.WithCSRFToken("csrf-value")
		store := mocks.NewMockSessionStore(t)
		store.EXPECT().Load(mock.Anything).Return(artifact, nil).Once()

		api, err := (&Connector{Sessions: store}).OpenPlaceAPI(t.Context())
		require.NoError(t, err)
		defer api.Close()
		assert.True(t, api.HasCSRFToken())
	})

	t.Run("token saved only in field reaches the server", func(t *testing.T) {
		t.Parallel()

		var sent atomic.Value
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			names := []string{}
			for _, cookie := range r.Cookies() {
				names = append(names, cookie.Name+"="+cookie.Value)
			}
			sent.Store(names)
			writeJSON(t, w, http.StatusOK, `{"data":{"createReviewReply":{"reply":{"text":"ok"}}}}`)
		}))
		t.Cleanup(server.Close)

		artifact := domain.SessionArtifact{
			Cookies:   []domain.Cookie{{Name: "NID_SES", Value: "ses", Domain: ".naver.com", Path: "/"}},
			CSRFToken: "tok-from-field",
		}
		store := mocks.NewMockSessionStore(t)
		store.EXPECT().Load(mock.Anything).Return(artifact, nil).Once()

		connector := &Connector{Sessions: store, ClientOptions: session.ClientOptions{Transport: rewriteToServer(t, server.URL)}}
		api, err := connector.OpenPlaceAPI(t.Context())
		require.NoError(t, err)
		defer api.Close()
		assert.True(t, api.HasCSRFToken())

		require.NoError(t, api.SubmitReply(t.Context(), domain.StoreIdentifierMap{BookingBusinessID: "1051707", PlaceSeq: "S1"}, "r1", "ok"))
		assert.Contains(t, sent.Load(), "csrf_token=tok-from-field")
	})

	t.Run("session without any token", func(t *testing.T) {
		t.Parallel()

		artifact := domain.SessionArtifact{Cookies: []domain.Cookie{{Name: "NID_SES", Value: "ses", Domain: ".naver.com", Path: "/"}}}
		store := mocks.NewMockSessionStore(t)
		store.EXPECT().Load(mock.Anything).Return(artifact, nil).Once()

		api, err := (&Connector{Sessions: store}).OpenPlaceAPI(t.Context())
		require.NoError(t, err)
		defer api.Close()
		assert.False(t, api.HasCSRFToken())
	})
}
