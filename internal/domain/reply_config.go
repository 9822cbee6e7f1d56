package domain

import (
	"errors"
	"fmt"
	"strings"
)

const (
	DefaultTone         = "친절하고 정중한"
	DefaultBusinessType = "일반"
	DefaultMaxTokens    = 300
	DefaultTemperature  = 0.7
	DefaultReplyModel   = "gpt-4o-mini"

	// AuthorPlaceholder is replaced by the reviewer's display name in custom prompts.
	AuthorPlaceholder = "{작성자}"

	MaxReplyLength = 250
)

type ReplyConfig struct {
	Tone         string
	BusinessType string
	StoreName    string
	CustomPrompt string
	Model        string
	MaxTokens    int
	Temperature  float64
}

func DefaultReplyConfig() ReplyConfig {
	return ReplyConfig{
		Tone:         DefaultTone,
		BusinessType: DefaultBusinessType,
		Model:        DefaultReplyModel,
		MaxTokens:    DefaultMaxTokens,
		Temperature:  DefaultTemperature,
	}
}

func (c ReplyConfig) WithDefaults() ReplyConfig {
	defaults := DefaultReplyConfig()
	if strings.TrimSpace(c.Tone) == "" {
		c.Tone = defaults.Tone
	}
	if strings.TrimSpace(c.BusinessType) == "" {
		c.BusinessType = defaults.BusinessType
	}
	if strings.TrimSpace(c.Model) == "" {
		c.Model = defaults.Model
	}
	if c.MaxTokens == 0 {
		c.MaxTokens = defaults.MaxTokens
	}

	return c
}

func (c ReplyConfig) Validate() error {
	if c.MaxTokens <= 0 {
		return errors.New("reply max tokens must be positive")
	}
	if c.Temperature < 0 || c.Temperature > 2 {
		return fmt.Errorf("reply temperature %.2f out of range [0, 2]", c.Temperature)
	}

	return nil
}

type CompletionRequest struct {
	Prompt      string
	Model       string
	MaxTokens   int
	Temperature float64
}
