package domain

import (
	"errors"
	"fmt"
)

var (
	ErrSecretNotFound   = errors.New("secret not found")
	ErrSessionNotFound  = errors.New("session not found")
	ErrSessionMalformed = errors.New("session malformed")
	ErrAuthExpired      = errors.New("authentication expired")
	ErrNoValidStores    = errors.New("리뷰를 수집할 유효한 사업장이 없습니다.")
	ErrRunNotFound      = errors.New("run not found")
	ErrCancelled        = errors.New("cancelled")
)

type AuthErrorKind string

const (
	AuthLoginFailed AuthErrorKind = "login_failed"
	AuthNoSession   AuthErrorKind = "no_session"
)

var (
	ErrLoginFailed = &AuthError{Kind: AuthLoginFailed}
	ErrNoSession   = &AuthError{Kind: AuthNoSession}
)

type AuthError struct {
	Kind   AuthErrorKind
	Detail string
	Err    error
}

func (e *AuthError) Error() string {
	return formatKindError("auth error", string(e.Kind), e.Detail, e.Err)
}

func (e *AuthError) Unwrap() error { return e.Err }

func (e *AuthError) Is(target error) bool {
	t, ok := target.(*AuthError)
	return ok && t.Kind == e.Kind
}

type ResolutionErrorKind string

const (
	ResolutionIncompleteRecord  ResolutionErrorKind = "incomplete_record"
	ResolutionNotFound          ResolutionErrorKind = "not_found"
	ResolutionTransportFailure  ResolutionErrorKind = "transport_failure"
	ResolutionMalformedResponse ResolutionErrorKind = "malformed_response"
)

var (
	ErrIncompleteRecord  = &ResolutionError{Kind: ResolutionIncompleteRecord}
	ErrStoreNotFound     = &ResolutionError{Kind: ResolutionNotFound}
	ErrTransportFailure  = &ResolutionError{Kind: ResolutionTransportFailure}
	ErrMalformedResponse = &ResolutionError{Kind: ResolutionMalformedResponse}
)

type ResolutionError struct {
	Kind              ResolutionErrorKind
	BookingBusinessID string
	Err               error
}

func (e *ResolutionError) Error() string {
	return formatKindError("resolve store "+e.BookingBusinessID, string(e.Kind), "", e.Err)
}

func (e *ResolutionError) Unwrap() error { return e.Err }

func (e *ResolutionError) Is(target error) bool {
	t, ok := target.(*ResolutionError)
	return ok && t.Kind == e.Kind
}

// ParseError keeps the head of an undecodable response body.
type ParseError struct {
	Snippet string
	Err     error
}

const parseErrorSnippetLimit = 500

func NewParseError(body []byte, err error) *ParseError {
	snippet := []rune(string(body))
	if len(snippet) > parseErrorSnippetLimit {
		snippet = snippet[:parseErrorSnippetLimit]
	}

	return &ParseError{Snippet: string(snippet), Err: err}
}

func (e *ParseError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("parse response: %s", e.Snippet)
	}

	return fmt.Sprintf("parse response: %v (body: %s)", e.Err, e.Snippet)
}

func (e *ParseError) Unwrap() error { return e.Err }

func (e *ParseError) Is(target error) bool {
	_, ok := target.(*ParseError)
	return ok
}

type GenerationErrorKind string

const (
	GenerationTransientUpstream GenerationErrorKind = "transient_upstream"
	GenerationFatalUpstream     GenerationErrorKind = "fatal_upstream"
)

var (
	ErrTransientUpstream = &GenerationError{Kind: GenerationTransientUpstream}
	ErrFatalUpstream     = &GenerationError{Kind: GenerationFatalUpstream}
)

type GenerationError struct {
	Kind GenerationErrorKind
	Err  error
}

func (e *GenerationError) Error() string {
	return formatKindError("generation error", string(e.Kind), "", e.Err)
}

func (e *GenerationError) Unwrap() error { return e.Err }

func (e *GenerationError) Is(target error) bool {
	t, ok := target.(*GenerationError)
	return ok && t.Kind == e.Kind
}

func TransientGenerationError(err error) error {
	return &GenerationError{Kind: GenerationTransientUpstream, Err: err}
}

func FatalGenerationError(err error) error {
	return &GenerationError{Kind: GenerationFatalUpstream, Err: err}
}

type SubmissionErrorKind string

const (
	SubmissionMissingCSRFToken        SubmissionErrorKind = "missing_csrf_token"
	SubmissionEmptyPayload            SubmissionErrorKind = "empty_payload"
	SubmissionUpstreamRejected        SubmissionErrorKind = "upstream_rejected"
	SubmissionUnexpectedResponseShape SubmissionErrorKind = "unexpected_response_shape"
	SubmissionCancelled               SubmissionErrorKind = "cancelled"
)

var (
	ErrMissingCSRFToken        = &SubmissionError{Kind: SubmissionMissingCSRFToken, Message: "CSRF token not found in cookies."}
	ErrEmptyPayload            = &SubmissionError{Kind: SubmissionEmptyPayload, Message: "Review ID or reply text is empty."}
	ErrUpstreamRejected        = &SubmissionError{Kind: SubmissionUpstreamRejected}
	ErrUnexpectedResponseShape = &SubmissionError{Kind: SubmissionUnexpectedResponseShape, Message: "Unexpected GraphQL response format."}
	ErrSubmissionCancelled     = &SubmissionError{Kind: SubmissionCancelled, Message: "cancelled"}
)

// SubmissionError keeps the upstream message verbatim in Message.
type SubmissionError struct {
	Kind    SubmissionErrorKind
	Message string
	Err     error
}

func (e *SubmissionError) Error() string {
	if e.Message != "" {
		return e.Message
	}

	return formatKindError("submission error", string(e.Kind), "", e.Err)
}

func (e *SubmissionError) Unwrap() error { return e.Err }

func (e *SubmissionError) Is(target error) bool {
	t, ok := target.(*SubmissionError)
	return ok && t.Kind == e.Kind
}

func formatKindError(prefix, kind, detail string, err error) string {
	message := prefix + ": " + kind
	if detail != "" {
		message += ": " + detail
	}
	if err != nil {
		message += ": " + err.Error()
	}

	return message
}
