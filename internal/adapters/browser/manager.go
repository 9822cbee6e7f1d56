package browser

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/bnema/smartplace-reply-cli/internal/adapters/session"
	"github.com/bnema/smartplace-reply-cli/internal/domain"
	"github.com/bnema/smartplace-reply-cli/internal/ports"
	"go.uber.org/zap"
)

const (
	LoginURL      = "https://nid.naver.com/nidlogin.login?mode=form&url=https://www.naver.com/"
	ProfileURL    = "https://nid.naver.com/user2/help/myInfoV2?lang=ko_KR"
	SmartPlaceURL = "https://new.smartplace.naver.com/"
	WarmupURL     = "https://new.smartplace.naver.com/graphql?opName=WarmupCSRF"

	loginFormMarker = "nidlogin.login"
	loginSubmit     = `#log\.login`

	defaultLoginTimeout = 10 * time.Second
	defaultSettleDelay  = 2 * time.Second
	loginPollInterval   = 250 * time.Millisecond
	warmupSettleDelay   = time.Second
	defaultSlowMotion   = 100 * time.Millisecond
)

// cookieURLs scope what is read back out of the browser into the artifact.
var cookieURLs = []string{
	"https://nid.naver.com/",
	"https://www.naver.com/",
	"https://new.smartplace.naver.com/",
}

// fillCredentialsJS sets the form values directly instead of typing, which
// keeps the login form from flagging automated keystrokes.
const fillCredentialsJS = `(id, pw) => {
  const idInput = document.querySelector("input[id='id']");
  const pwInput = document.querySelector("input[id='pw']");
  if (!idInput || !pwInput) return "missing";
  idInput.value = id;
  pwInput.value = pw;
  return "ok";
}`

type Config struct {
	Visible      bool
	Bin          string
	LoginTimeout time.Duration
	SettleDelay  time.Duration
	SlowMotion   time.Duration
}

func (c Config) withDefaults() Config {
	if c.LoginTimeout <= 0 {
		c.LoginTimeout = defaultLoginTimeout
	}
	if c.SettleDelay < 0 {
		c.SettleDelay = 0
	}
	if c.SlowMotion == 0 {
		c.SlowMotion = defaultSlowMotion
	}

	return c
}

// Manager drives a browser through the Naver login and turns the result into
// a persisted session artifact.
type Manager struct {
	cfg        Config
	launch     Launcher
	store      ports.SessionStore
	clock      ports.Clock
	logger     *zap.Logger
	strategies []Strategy
}

var _ ports.SessionAuthenticator = (*Manager)(nil)

type Option func(*Manager)

func WithLauncher(l Launcher) Option {
	return func(m *Manager) { m.launch = l }
}

func WithClock(c ports.Clock) Option {
	return func(m *Manager) { m.clock = c }
}

func WithLogger(l *zap.Logger) Option {
	return func(m *Manager) { m.logger = l }
}

func WithStrategies(s []Strategy) Option {
	return func(m *Manager) { m.strategies = s }
}

func NewManager(cfg Config, store ports.SessionStore, opts ...Option) *Manager {
	m := &Manager{
		cfg:        cfg.withDefaults(),
		launch:     LaunchRod,
		store:      store,
		clock:      ports.SystemClock{},
		logger:     zap.NewNop(),
		strategies: DefaultStrategies(),
	}
	for _, opt := range opts {
		opt(m)
	}

	return m
}

// AcquireSession returns a usable session artifact. With preferCached it
// first tries the stored cookies and only falls back to the login form when
// they are missing or no longer accepted.
func (m *Manager) AcquireSession(ctx context.Context, creds domain.Credentials, preferCached bool) (domain.SessionArtifact, error) {
	browser, page, err := m.open(ctx)
	if err != nil {
		return domain.SessionArtifact{}, err
	}
	defer m.close(browser)

	if preferCached {
		ok, err := m.restoreCached(ctx, page)
		if err != nil {
			return domain.SessionArtifact{}, err
		}
		if ok {
			m.logger.Info("reused stored session")
			return m.finish(ctx, page)
		}
	}

	if err := m.login(ctx, page, creds); err != nil {
		return domain.SessionArtifact{}, err
	}
	m.logger.Info("logged in with credentials", zap.String("user_id", creds.UserID))

	return m.finish(ctx, page)
}

// CheckSession reports whether the stored session still reaches the
// profile page without being redirected to the login form. The stored
// session is left untouched.
func (m *Manager) CheckSession(ctx context.Context) (bool, error) {
	browser, page, err := m.open(ctx)
	if err != nil {
		return false, err
	}
	defer m.close(browser)

	return m.restoreCached(ctx, page)
}

func (m *Manager) open(ctx context.Context) (Browser, Page, error) {
	browser, err := m.launch(ctx, LaunchOptions{
		Visible:        m.cfg.Visible,
		Bin:            m.cfg.Bin,
		SlowMotion:     m.cfg.SlowMotion,
		UserAgent:      session.DefaultUserAgent,
		AcceptLanguage: session.DefaultAcceptLanguage,
		CookieURLs:     cookieURLs,
		PageTimeout:    m.cfg.LoginTimeout,
	})
	if err != nil {
		return nil, nil, err
	}

	page, err := browser.NewPage(ctx)
	if err != nil {
		m.close(browser)
		return nil, nil, err
	}

	return browser, page, nil
}

func (m *Manager) close(browser Browser) {
	if err := browser.Close(); err != nil {
		m.logger.Warn("close browser", zap.Error(err))
	}
}

func (m *Manager) restoreCached(ctx context.Context, page Page) (bool, error) {
	artifact, err := m.store.Load(ctx)
	if errors.Is(err, domain.ErrSessionNotFound) {
		m.logger.Debug("no stored session")
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("load stored session: %w", err)
	}

	if err := page.SetCookies(artifact.Cookies); err != nil {
		return false, err
	}
	if err := page.Navigate(ctx, ProfileURL); err != nil {
		return false, err
	}
	if err := m.clock.Sleep(ctx, m.cfg.SettleDelay); err != nil {
		return false, err
	}

	current, err := page.URL()
	if err != nil {
		return false, err
	}
	if strings.Contains(current, "login") {
		m.logger.Info("stored session rejected", zap.String("url", current))
		return false, nil
	}

	return true, nil
}

func (m *Manager) login(ctx context.Context, page Page, creds domain.Credentials) error {
	if err := creds.Validate(); err != nil {
		return &domain.AuthError{Kind: domain.AuthLoginFailed, Detail: err.Error()}
	}

	if err := page.ClearCookies(); err != nil {
		return err
	}
	if err := page.Navigate(ctx, LoginURL); err != nil {
		return err
	}

	filled, err := page.Eval(ctx, fillCredentialsJS, creds.UserID, creds.Password)
	if err != nil {
		return err
	}
	if filled != "ok" {
		return &domain.AuthError{Kind: domain.AuthLoginFailed, Detail: "login form not found"}
	}
	if err := page.Click(ctx, loginSubmit); err != nil {
		return err
	}

	return m.waitForLogin(ctx, page)
}

// waitForLogin polls until the page is back on naver.com outside the login
// form. Naver keeps the form URL on failure and for captcha or 2FA challenges.
func (m *Manager) waitForLogin(ctx context.Context, page Page) error {
	deadline := m.clock.Now().Add(m.cfg.LoginTimeout)
	var current string
	for {
		var err error
		current, err = page.URL()
		if err != nil {
			return err
		}
		if loggedInURL(current) {
			return nil
		}
		if !m.clock.Now().Before(deadline) {
			break
		}
		if err := m.clock.Sleep(ctx, loginPollInterval); err != nil {
			return err
		}
	}

	return &domain.AuthError{
		Kind:   domain.AuthLoginFailed,
		Detail: fmt.Sprintf("still on login page after %s: %s", m.cfg.LoginTimeout, current),
	}
}

func loggedInURL(u string) bool {
	return strings.Contains(u, "naver.com") && !strings.Contains(u, loginFormMarker)
}

func (m *Manager) finish(ctx context.Context, page Page) (domain.SessionArtifact, error) {
	token, err := m.ensureCSRFToken(ctx, page)
	if err != nil {
		return domain.SessionArtifact{}, err
	}

	cookies, err := page.Cookies()
	if err != nil {
		return domain.SessionArtifact{}, err
	}
	artifact := domain.SessionArtifact{Cookies: cookies}
	if token != "" {
		artifact = artifact.WithCSRFToken(token)
		if cookie, ok := artifact.Cookie(domain.CSRFCookieName); ok {
			if err := page.SetCookies([]domain.Cookie{cookie}); err != nil {
				m.logger.Warn("inject csrf cookie", zap.Error(err))
			}
		}
	} else {
		m.logger.Warn("csrf token not found; replies cannot be submitted with this session")
	}

	if err := m.store.Save(ctx, artifact); err != nil {
		return domain.SessionArtifact{}, fmt.Errorf("save session: %w", err)
	}

	return artifact, nil
}

func (m *Manager) ensureCSRFToken(ctx context.Context, page Page) (string, error) {
	if err := page.Navigate(ctx, SmartPlaceURL); err != nil {
		return "", err
	}
	if err := m.clock.Sleep(ctx, m.cfg.SettleDelay); err != nil {
		return "", err
	}

	snapshot, err := captureSnapshot(ctx, page)
	switch {
	case err != nil && ctx.Err() != nil:
		return "", ctx.Err()
	case err != nil:
		m.logger.Warn("page snapshot unreadable, trying csrf warm-up", zap.Error(err))
	default:
		if token, strategy, ok := DiscoverCSRFToken(snapshot, m.strategies); ok {
			m.logger.Debug("csrf token found", zap.String("strategy", strategy))
			return token, nil
		}
	}

	return m.warmUp(ctx, page)
}

// warmUp is best effort: failures are logged and an empty token is returned.
func (m *Manager) warmUp(ctx context.Context, page Page) (string, error) {
	raw, err := page.Eval(ctx, warmupJS, WarmupURL, warmupTimeout.Milliseconds())
	if err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		m.logger.Warn("csrf warm-up request", zap.Error(err))
	} else {
		var res warmupResult
		if jerr := json.Unmarshal([]byte(raw), &res); jerr == nil {
			if token, ok := tokenFromWarmupBody(res.Text); ok {
				m.logger.Debug("csrf token from warm-up response")
				return token, nil
			}
			if res.Error != "" {
				m.logger.Warn("csrf warm-up request", zap.String("error", res.Error))
			}
		}
	}

	if err := m.clock.Sleep(ctx, warmupSettleDelay); err != nil {
		return "", err
	}

	snapshot, err := captureSnapshot(ctx, page)
	if err != nil {
		m.logger.Warn("capture snapshot after warm-up", zap.Error(err))
		return "", nil
	}
	if token, strategy, ok := DiscoverCSRFToken(snapshot, CookieStrategies()); ok {
		m.logger.Debug("csrf token found after warm-up", zap.String("strategy", strategy))
		return token, nil
	}

	return "", nil
}
