package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/bnema/smartplace-reply-cli/internal/domain"
)

const (
	configName = "config"
	configType = "toml"
	configDir  = ".smartplace"
	envPrefix  = "SPR"

	KeyUserID           = "naver.user_id"
	KeyBusinessIDs      = "business_ids"
	KeyBrowserVisible   = "browser.visible"
	KeyBrowserBin       = "browser.bin"
	KeyLoginTimeout     = "browser.login_timeout"
	KeySettleDelay      = "browser.settle_delay"
	KeySessionBackend   = "session.backend"
	KeySessionKey       = "session.key"
	KeySessionDir       = "session.dir"
	KeyReplyEnabled     = "reply.enabled"
	KeyReplyAutoSubmit  = "reply.auto_submit"
	KeyReplyProvider    = "reply.provider"
	KeyReplyModel       = "reply.model"
	KeyReplyTone        = "reply.tone"
	KeyReplyBusiness    = "reply.business_type"
	KeyReplyCustom      = "reply.custom_prompt"
	KeyReplyMaxTokens   = "reply.max_tokens"
	KeyReplyTemperature = "reply.temperature"
	KeyReplyStoreName   = "reply.store_name"
	KeyAPIBaseURL       = "api.base_url"
	KeyRunsPath         = "runs.path"
)

type SessionBackend string

const (
	SessionBackendFile  SessionBackend = "file"
	SessionBackendPass  SessionBackend = "pass"
	SessionBackendChain SessionBackend = "chain"
)

type Config struct {
	UserID      string
	BusinessIDs []string
	Browser     BrowserConfig
	Session     SessionConfig
	Reply       ReplyConfig
	APIBaseURL  string
	RunsPath    string
}

type BrowserConfig struct {
	Visible      bool
	Bin          string
	LoginTimeout time.Duration
	SettleDelay  time.Duration
}

type SessionConfig struct {
	Backend SessionBackend
	Key     string
	Dir     string
}

type ReplyConfig struct {
	Enabled    bool
	AutoSubmit bool
	Provider   string
	Prompt     domain.ReplyConfig
}

// New returns a viper instance bound to ~/.smartplace/config.toml and SPR_*
// environment variables, with every key defaulted.
func New(homeDir string) *viper.Viper {
	v := viper.New()
	v.SetConfigName(configName)
	v.SetConfigType(configType)
	v.AddConfigPath(filepath.Join(homeDir, configDir))
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	defaults := domain.DefaultReplyConfig()
	v.SetDefault(KeyUserID, "")
	v.SetDefault(KeyBusinessIDs, []string{})
	v.SetDefault(KeyBrowserVisible, false)
	v.SetDefault(KeyBrowserBin, "")
	v.SetDefault(KeyLoginTimeout, 10*time.Second)
	v.SetDefault(KeySettleDelay, 2*time.Second)
	v.SetDefault(KeySessionBackend, string(SessionBackendChain))
	v.SetDefault(KeySessionKey, "naver/session")
	v.SetDefault(KeySessionDir, filepath.Join(homeDir, configDir, "secrets"))
	v.SetDefault(KeyReplyEnabled, true)
	v.SetDefault(KeyReplyAutoSubmit, false)
	v.SetDefault(KeyReplyProvider, "openai")
	v.SetDefault(KeyReplyModel, defaults.Model)
	v.SetDefault(KeyReplyTone, defaults.Tone)
	v.SetDefault(KeyReplyBusiness, defaults.BusinessType)
	v.SetDefault(KeyReplyCustom, "")
	v.SetDefault(KeyReplyMaxTokens, defaults.MaxTokens)
	v.SetDefault(KeyReplyTemperature, defaults.Temperature)
	v.SetDefault(KeyReplyStoreName, "")
	v.SetDefault(KeyAPIBaseURL, "https://new.smartplace.naver.com")
	v.SetDefault(KeyRunsPath, filepath.Join(homeDir, configDir, "runs.toml"))

	return v
}

// Load reads the config file if present. A missing file is not an error.
func Load(v *viper.Viper) (Config, error) {
	if err := v.ReadInConfig(); err != nil {
		var configNotFound viper.ConfigFileNotFoundError
		if !errors.As(err, &configNotFound) {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
	}

	cfg := Config{
		UserID:      strings.TrimSpace(v.GetString(KeyUserID)),
		BusinessIDs: domain.NormalizeBusinessIDs(v.GetStringSlice(KeyBusinessIDs)),
		Browser: BrowserConfig{
			Visible:      v.GetBool(KeyBrowserVisible),
			Bin:          v.GetString(KeyBrowserBin),
			LoginTimeout: v.GetDuration(KeyLoginTimeout),
			SettleDelay:  v.GetDuration(KeySettleDelay),
		},
		Session: SessionConfig{
			Backend: SessionBackend(strings.ToLower(v.GetString(KeySessionBackend))),
			Key:     v.GetString(KeySessionKey),
			Dir:     expandHome(v.GetString(KeySessionDir)),
		},
		Reply: ReplyConfig{
			Enabled:    v.GetBool(KeyReplyEnabled),
			AutoSubmit: v.GetBool(KeyReplyAutoSubmit),
			Provider:   v.GetString(KeyReplyProvider),
			Prompt: domain.ReplyConfig{
				Tone:         v.GetString(KeyReplyTone),
				BusinessType: v.GetString(KeyReplyBusiness),
				StoreName:    v.GetString(KeyReplyStoreName),
				CustomPrompt: v.GetString(KeyReplyCustom),
				Model:        v.GetString(KeyReplyModel),
				MaxTokens:    v.GetInt(KeyReplyMaxTokens),
				Temperature:  v.GetFloat64(KeyReplyTemperature),
			},
		},
		APIBaseURL: strings.TrimRight(v.GetString(KeyAPIBaseURL), "/"),
		RunsPath:   expandHome(v.GetString(KeyRunsPath)),
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func (c Config) Validate() error {
	switch c.Session.Backend {
	case SessionBackendFile, SessionBackendPass, SessionBackendChain:
	default:
		return fmt.Errorf("unsupported session backend %q", c.Session.Backend)
	}
	if strings.TrimSpace(c.Session.Key) == "" {
		return errors.New("session key is empty")
	}
	if c.Browser.LoginTimeout <= 0 {
		return fmt.Errorf("browser login timeout must be positive, got %s", c.Browser.LoginTimeout)
	}
	if err := c.Reply.Prompt.Validate(); err != nil {
		return fmt.Errorf("invalid reply config: %w", err)
	}

	return nil
}

func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return path
	}

	return filepath.Join(homeDir, strings.TrimPrefix(path, "~"))
}
