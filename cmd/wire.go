package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/bnema/smartplace-reply-cli/internal/adapters/browser"
	"github.com/bnema/smartplace-reply-cli/internal/adapters/llm/gemini"
	"github.com/bnema/smartplace-reply-cli/internal/adapters/llm/openai"
	"github.com/bnema/smartplace-reply-cli/internal/adapters/observer"
	"github.com/bnema/smartplace-reply-cli/internal/adapters/render/report"
	tomlrepo "github.com/bnema/smartplace-reply-cli/internal/adapters/repo/toml"
	chainstore "github.com/bnema/smartplace-reply-cli/internal/adapters/secrets/chain"
	filestore "github.com/bnema/smartplace-reply-cli/internal/adapters/secrets/file"
	passstore "github.com/bnema/smartplace-reply-cli/internal/adapters/secrets/pass"
	"github.com/bnema/smartplace-reply-cli/internal/adapters/session"
	"github.com/bnema/smartplace-reply-cli/internal/adapters/smartplace"
	"github.com/bnema/smartplace-reply-cli/internal/application"
	"github.com/bnema/smartplace-reply-cli/internal/config"
	"github.com/bnema/smartplace-reply-cli/internal/domain"
	"github.com/bnema/smartplace-reply-cli/internal/ports"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var errNoAPIKey = errors.New("no generation api key configured")

type app struct {
	cfg          config.Config
	logger       *zap.Logger
	clock        ports.Clock
	secrets      ports.SecretStore
	sessions     *session.Store
	browser      *browser.Manager
	places       *smartplace.Connector
	service      *application.Service
	runs         *tomlrepo.Repository
	runRenderer  func(domain.RunSummary, report.RenderOptions) (string, error)
	runsRenderer func([]domain.RunSummary, report.RenderOptions) (string, error)
	lookupEnv    func(string) (string, bool)
	now          func() time.Time
}

func wireApp(level zap.AtomicLevel) (*app, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("resolve home directory: %w", err)
	}

	v := config.New(homeDir)
	cfg, err := config.Load(v)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	logger, err := newLogger(level)
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}

	secretStore, err := newSecretStore(cfg.Session)
	if err != nil {
		return nil, fmt.Errorf("wire secret store: %w", err)
	}

	repo, err := tomlrepo.NewRepository(v)
	if err != nil {
		return nil, fmt.Errorf("wire run repository: %w", err)
	}

	clock := ports.SystemClock{}
	sessions := session.NewStore(secretStore, cfg.Session.Key, clock)

	a := &app{
		cfg:      cfg,
		logger:   logger,
		clock:    clock,
		secrets:  secretStore,
		sessions: sessions,
		places: &smartplace.Connector{
			Sessions:      sessions,
			BaseURL:       cfg.APIBaseURL,
			ClientOptions: session.ClientOptions{UserAgent: session.DefaultUserAgent},
			Clock:         clock,
		},
		runs:         repo,
		runRenderer:  report.RenderRun,
		runsRenderer: report.RenderRuns,
		lookupEnv:    os.LookupEnv,
		now:          time.Now,
	}
	a.browser = a.newBrowserManager(cfg.Browser.Visible)
	a.service = application.NewService(secretStore, sessions, a.browser, clock)

	return a, nil
}

func newLogger(level zap.AtomicLevel) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Level = level
	cfg.Encoding = "console"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	cfg.DisableStacktrace = true

	return cfg.Build()
}

func newSecretStore(cfg config.SessionConfig) (ports.SecretStore, error) {
	switch cfg.Backend {
	case config.SessionBackendFile:
		return filestore.NewStore(cfg.Dir), nil
	case config.SessionBackendPass:
		return passstore.NewStore(), nil
	default:
		store, err := chainstore.NewPassFirstWithFileFallback(cfg.Dir)
		if err != nil {
			return nil, err
		}
		return store, nil
	}
}

func (a *app) newBrowserManager(visible bool) *browser.Manager {
	return browser.NewManager(browser.Config{
		Visible:      visible,
		Bin:          a.cfg.Browser.Bin,
		LoginTimeout: a.cfg.Browser.LoginTimeout,
		SettleDelay:  a.cfg.Browser.SettleDelay,
	}, a.sessions, browser.WithClock(a.clock), browser.WithLogger(a.logger.Named("browser")))
}

func (a *app) browserFor(visible bool) *browser.Manager {
	if visible == a.cfg.Browser.Visible {
		return a.browser
	}

	return a.newBrowserManager(visible)
}

// serviceFor returns the shared service unless the command asks for a
// browser visibility that differs from the configured one.
func (a *app) serviceFor(visible bool) *application.Service {
	if visible == a.cfg.Browser.Visible {
		return a.service
	}

	return application.NewService(a.secrets, a.sessions, a.browserFor(visible), a.clock)
}

func (a *app) provider() (application.Provider, error) {
	return application.ParseProvider(a.cfg.Reply.Provider)
}

// textGenerator returns nil without error when no API key is available.
func (a *app) textGenerator(ctx context.Context) (ports.TextGenerator, error) {
	provider, err := a.provider()
	if err != nil {
		return nil, err
	}

	apiKey, err := a.service.ResolveAPIKey(ctx, provider, a.lookupEnv)
	if err != nil {
		return nil, err
	}
	if apiKey == "" {
		return nil, nil
	}

	model := a.replyConfig(provider).Model
	switch provider {
	case application.ProviderGemini:
		client, err := gemini.NewClient(ctx, apiKey, model, gemini.Options{})
		if err != nil {
			return nil, err
		}
		return client, nil
	default:
		client, err := openai.NewClient(apiKey, model)
		if err != nil {
			return nil, err
		}
		return client, nil
	}
}

func (a *app) replyConfig(provider application.Provider) domain.ReplyConfig {
	cfg := a.cfg.Reply.Prompt.WithDefaults()
	if provider == application.ProviderGemini && cfg.Model == domain.DefaultReplyModel {
		cfg.Model = gemini.DefaultModel
	}

	return cfg
}

func (a *app) runObserver(runID string) *observer.Logger {
	return observer.NewLogger(a.logger).With(runID)
}
