package browser

import (
	"context"
	"fmt"
	"time"

	"github.com/bnema/smartplace-reply-cli/internal/domain"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

var _ Launcher = LaunchRod

// LaunchRod starts a local Chromium through the rod launcher. The returned
// Browser owns the process; Close kills it and removes its profile directory.
func LaunchRod(ctx context.Context, opts LaunchOptions) (Browser, error) {
	l := launcher.New().Context(ctx).Headless(!opts.Visible)
	if opts.Bin != "" {
		l = l.Bin(opts.Bin)
	}

	controlURL, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("launch chromium: %w", err)
	}

	b := rod.New().ControlURL(controlURL).Context(ctx)
	if opts.SlowMotion > 0 {
		b = b.SlowMotion(opts.SlowMotion)
	}
	if err := b.Connect(); err != nil {
		l.Kill()
		l.Cleanup()
		return nil, fmt.Errorf("connect to chromium: %w", err)
	}

	return &rodBrowser{browser: b, launcher: l, opts: opts}, nil
}

type rodBrowser struct {
	browser  *rod.Browser
	launcher *launcher.Launcher
	opts     LaunchOptions
}

func (b *rodBrowser) NewPage(ctx context.Context) (Page, error) {
	page, err := b.browser.Page(proto.TargetCreateTarget{URL: "about:blank"})
	if err != nil {
		return nil, fmt.Errorf("open page: %w", err)
	}

	if b.opts.UserAgent != "" {
		if err := page.SetUserAgent(&proto.NetworkSetUserAgentOverride{
			UserAgent:      b.opts.UserAgent,
			AcceptLanguage: b.opts.AcceptLanguage,
		}); err != nil {
			_ = page.Close()
			return nil, fmt.Errorf("set user agent: %w", err)
		}
	}

	return &rodPage{page: page.Context(ctx), cookieURLs: b.opts.CookieURLs, timeout: b.opts.PageTimeout}, nil
}

func (b *rodBrowser) Close() error {
	err := b.browser.Close()
	b.launcher.Kill()
	b.launcher.Cleanup()
	if err != nil {
		return fmt.Errorf("close chromium: %w", err)
	}

	return nil
}

type rodPage struct {
	page       *rod.Page
	cookieURLs []string
	timeout    time.Duration
}

// bounded scopes the page to ctx and, when configured, to the page timeout.
// The returned func releases the timeout.
func (p *rodPage) bounded(ctx context.Context) (*rod.Page, func()) {
	page := p.page.Context(ctx)
	if p.timeout <= 0 {
		return page, func() {}
	}

	page = page.Timeout(p.timeout)
	return page, func() { page.CancelTimeout() }
}

func (p *rodPage) Navigate(ctx context.Context, url string) error {
	page, release := p.bounded(ctx)
	defer release()

	if err := page.Navigate(url); err != nil {
		return fmt.Errorf("navigate to %s: %w", url, err)
	}
	if err := page.WaitLoad(); err != nil {
		return fmt.Errorf("wait for load of %s: %w", url, err)
	}

	return nil
}

func (p *rodPage) URL() (string, error) {
	info, err := p.page.Info()
	if err != nil {
		return "", fmt.Errorf("read page info: %w", err)
	}

	return info.URL, nil
}

func (p *rodPage) Eval(ctx context.Context, js string, args ...any) (string, error) {
	res, err := p.page.Context(ctx).Evaluate(rod.Eval(js, args...).ByPromise())
	if err != nil {
		return "", fmt.Errorf("evaluate script: %w", err)
	}
	if res == nil || res.Value.Nil() {
		return "", nil
	}

	return res.Value.Str(), nil
}

func (p *rodPage) Click(ctx context.Context, selector string) error {
	page, release := p.bounded(ctx)
	defer release()

	el, err := page.Element(selector)
	if err != nil {
		return fmt.Errorf("find %s: %w", selector, err)
	}
	if err := el.Click(proto.InputMouseButtonLeft, 1); err != nil {
		return fmt.Errorf("click %s: %w", selector, err)
	}

	return nil
}

func (p *rodPage) Cookies() ([]domain.Cookie, error) {
	raw, err := p.page.Cookies(p.cookieURLs)
	if err != nil {
		return nil, fmt.Errorf("read cookies: %w", err)
	}

	cookies := make([]domain.Cookie, 0, len(raw))
	for _, c := range raw {
		cookies = append(cookies, domain.Cookie{
			Name:   c.Name,
			Value:  c.Value,
			Domain: c.Domain,
			Path:   c.Path,
		})
	}

	return cookies, nil
}

func (p *rodPage) SetCookies(cookies []domain.Cookie) error {
	params := make([]*proto.NetworkCookieParam, 0, len(cookies))
	for _, c := range cookies {
		path := c.Path
		if path == "" {
			path = "/"
		}
		params = append(params, &proto.NetworkCookieParam{
			Name:   c.Name,
			Value:  c.Value,
			Domain: c.Domain,
			Path:   path,
		})
	}
	if len(params) == 0 {
		return nil
	}

	if err := p.page.SetCookies(params); err != nil {
		return fmt.Errorf("set cookies: %w", err)
	}

	return nil
}

func (p *rodPage) ClearCookies() error {
	if err := (proto.NetworkClearBrowserCookies{}).Call(p.page); err != nil {
		return fmt.Errorf("clear cookies: %w", err)
	}

	return nil
}
