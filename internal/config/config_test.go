package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, home string, content string) {
	t.Helper()

	dir := filepath.Join(home, ".smartplace")
	require.NoError(t, os.MkdirAll(dir, 0o700))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte(content), 0o600))
}

func TestLoadDefaultsWithoutConfigFile(t *testing.T) {
	home := t.TempDir()

	cfg, err := Load(New(home))
	require.NoError(t, err)

	assert.Empty(t, cfg.UserID)
	assert.Empty(t, cfg.BusinessIDs)
	assert.Equal(t, 10*time.Second, cfg.Browser.LoginTimeout)
	assert.Equal(t, 2*time.Second, cfg.Browser.SettleDelay)
	assert.Equal(t, SessionBackendChain, cfg.Session.Backend)
	assert.Equal(t, "naver/session", cfg.Session.Key)
	assert.Equal(t, filepath.Join(home, ".smartplace", "secrets"), cfg.Session.Dir)
	assert.True(t, cfg.Reply.Enabled)
	assert.False(t, cfg.Reply.AutoSubmit)
	assert.Equal(t, "openai", cfg.Reply.Provider)
	assert.Equal(t, "gpt-4o-mini", cfg.Reply.Prompt.Model)
	assert.Equal(t, "친절하고 정중한", cfg.Reply.Prompt.Tone)
	assert.Equal(t, "일반", cfg.Reply.Prompt.BusinessType)
	assert.Equal(t, 300, cfg.Reply.Prompt.MaxTokens)
	assert.InDelta(t, 0.7, cfg.Reply.Prompt.Temperature, 1e-9)
	assert.Equal(t, "https://new.smartplace.naver.com", cfg.APIBaseURL)
	assert.Equal(t, filepath.Join(home, ".smartplace", "runs.toml"), cfg.RunsPath)
}

func TestLoadReadsConfigFile(t *testing.T) {
	home := t.TempDir()
	writeConfig(t, home, `
business_ids = ["1051707", " 2002 ", "1051707"]

[naver]
user_id = "owner"

[browser]
visible = true
login_timeout = "30s"

[session]
backend = "file"

[reply]
auto_submit = true
provider = "gemini"
tone = "캐주얼한"
business_type = "카페"
store_name = "행복카페"
max_tokens = 200
temperature = 0.3

[api]
base_url = "https://example.test/"
`)

	cfg, err := Load(New(home))
	require.NoError(t, err)

	assert.Equal(t, "owner", cfg.UserID)
	assert.Equal(t, []string{"1051707", "2002"}, cfg.BusinessIDs)
	assert.True(t, cfg.Browser.Visible)
	assert.Equal(t, 30*time.Second, cfg.Browser.LoginTimeout)
	assert.Equal(t, SessionBackendFile, cfg.Session.Backend)
	assert.True(t, cfg.Reply.AutoSubmit)
	assert.Equal(t, "gemini", cfg.Reply.Provider)
	assert.Equal(t, "캐주얼한", cfg.Reply.Prompt.Tone)
	assert.Equal(t, "카페", cfg.Reply.Prompt.BusinessType)
	assert.Equal(t, "행복카페", cfg.Reply.Prompt.StoreName)
	assert.Equal(t, 200, cfg.Reply.Prompt.MaxTokens)
	assert.InDelta(t, 0.3, cfg.Reply.Prompt.Temperature, 1e-9)
	assert.Equal(t, "https://example.test", cfg.APIBaseURL)
}

func TestLoadEnvironmentOverridesFile(t *testing.T) {
	home := t.TempDir()
	writeConfig(t, home, "[naver]\nuser_id = \"from-file\"\n")
	t.Setenv("SPR_NAVER_USER_ID", "from-env")
	t.Setenv("SPR_REPLY_AUTO_SUBMIT", "true")

	cfg, err := Load(New(home))
	require.NoError(t, err)

	assert.Equal(t, "from-env", cfg.UserID)
	assert.True(t, cfg.Reply.AutoSubmit)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{name: "backend", content: "[session]\nbackend = \"keychain\"\n", want: "unsupported session backend"},
		{name: "temperature", content: "[reply]\ntemperature = 3.5\n", want: "out of range"},
		{name: "malformed", content: "business_ids = [", want: "read config file"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			home := t.TempDir()
			writeConfig(t, home, tt.content)

			_, err := Load(New(home))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}
