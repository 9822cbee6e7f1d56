package browser

import (
	"context"
	"time"

	"github.com/bnema/smartplace-reply-cli/internal/domain"
)

// Page is the part of a browser tab the session manager drives. Eval runs a
// JS function that must return a string and yields that string.
type Page interface {
	Navigate(ctx context.Context, url string) error
	URL() (string, error)
	Eval(ctx context.Context, js string, args ...any) (string, error)
	Click(ctx context.Context, selector string) error
	Cookies() ([]domain.Cookie, error)
	SetCookies(cookies []domain.Cookie) error
	ClearCookies() error
}

type Browser interface {
	NewPage(ctx context.Context) (Page, error)
	Close() error
}

type Launcher func(ctx context.Context, opts LaunchOptions) (Browser, error)

type LaunchOptions struct {
	Visible        bool
	Bin            string
	SlowMotion     time.Duration
	UserAgent      string
	AcceptLanguage string
	// CookieURLs scopes the cookies read back from the browser.
	CookieURLs []string
	// PageTimeout bounds each navigation and element lookup.
	PageTimeout time.Duration
}
