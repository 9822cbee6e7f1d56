package session

import (
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"github.com/bnema/smartplace-reply-cli/internal/domain"
	"golang.org/x/net/publicsuffix"
)

const (
	DefaultUserAgent      = "Mozilla/5.0 (Macintosh; Intel Mac OS X 13_5) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
	DefaultAcceptLanguage = "ko-KR,ko;q=0.9"
	defaultCookieHost     = "naver.com"
)

type ClientOptions struct {
	UserAgent string
	Timeout   time.Duration
	Transport http.RoundTripper
}

// NewHTTPClient builds a client whose jar holds every cookie of the artifact
// and whose requests carry a fixed browser user agent. A token saved only in
// the artifact's CSRFToken field is added to the jar as a csrf_token cookie.
func NewHTTPClient(artifact domain.SessionArtifact, opts ClientOptions) (*http.Client, error) {
	if artifact.IsEmpty() {
		return nil, &domain.AuthError{Kind: domain.AuthNoSession, Detail: "session has no cookies"}
	}

	jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	if err != nil {
		return nil, fmt.Errorf("create cookie jar: %w", err)
	}

	if !artifact.HasCSRFCookie() {
		artifact = artifact.WithCSRFToken(artifact.CSRFToken)
	}
	for _, cookie := range artifact.Cookies {
		target, httpCookie := jarEntry(cookie)
		jar.SetCookies(target, []*http.Cookie{httpCookie})
	}

	userAgent := opts.UserAgent
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	base := opts.Transport
	if base == nil {
		base = http.DefaultTransport
	}

	return &http.Client{
		Jar:       jar,
		Timeout:   opts.Timeout,
		Transport: &userAgentTransport{base: base, userAgent: userAgent},
	}, nil
}

func jarEntry(cookie domain.Cookie) (*url.URL, *http.Cookie) {
	host := strings.TrimPrefix(strings.TrimSpace(cookie.Domain), ".")
	if host == "" {
		host = defaultCookieHost
	}
	path := cookie.Path
	if path == "" {
		path = "/"
	}

	return &url.URL{Scheme: "https", Host: host, Path: "/"}, &http.Cookie{
		Name:   cookie.Name,
		Value:  cookie.Value,
		Domain: host,
		Path:   path,
	}
}

type userAgentTransport struct {
	base      http.RoundTripper
	userAgent string
}

func (t *userAgentTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	cloned := req.Clone(req.Context())
	if cloned.Header.Get("User-Agent") == "" {
		cloned.Header.Set("User-Agent", t.userAgent)
	}
	if cloned.Header.Get("Accept-Language") == "" {
		cloned.Header.Set("Accept-Language", DefaultAcceptLanguage)
	}

	return t.base.RoundTrip(cloned)
}

func (t *userAgentTransport) CloseIdleConnections() {
	if closer, ok := t.base.(interface{ CloseIdleConnections() }); ok {
		closer.CloseIdleConnections()
	}
}
