// Package llm talks to the hosted chat-completion providers used for
// chart interpretation and story generation.
package llm

import (
	"strings"
	"time"
)

// Provider names.
const (
	ProviderOpenAI   = "openai"
	ProviderClaude   = "claude"
	ProviderDeepSeek = "deepseek"
	ProviderQianfan  = "qianfan"
	ProviderCustom   = "custom"
)

// Defaults for unset request fields.
const (
	DefaultMaxTokens   = 2000
	DefaultTemperature = 0.7
	DefaultTimeout     = 60 * time.Second

	anthropicVersion = "2023-06-01"
)

type providerDefaults struct {
	label  string
	model  string
	url    string
	stream bool
}

var providers = map[string]providerDefaults{
	ProviderOpenAI:   {label: "OpenAI", model: "gpt-3.5-turbo", url: "https://api.openai.com/v1/chat/completions", stream: true},
	ProviderClaude:   {label: "Claude", model: "claude-3-sonnet-20240229", url: "https://api.anthropic.com/v1/messages"},
	ProviderDeepSeek: {label: "DeepSeek", model: "deepseek-chat", url: "https://api.deepseek.com/v1/chat/completions", stream: true},
	ProviderCustom:   {label: "自定义", model: "gpt-3.5-turbo", stream: true},
}

// Config selects a provider and its request parameters. It doubles as the
// ai_config object of the HTTP API.
type Config struct {
	Provider      string            `json:"provider"`
	APIKey        string            `json:"api_key"`
	APIURL        string            `json:"api_url,omitempty"`
	Model         string            `json:"model,omitempty"`
	MaxTokens     int               `json:"max_tokens,omitempty"`
	Temperature   *float64          `json:"temperature,omitempty"`
	CustomHeaders map[string]string `json:"custom_headers,omitempty"`
	CustomParams  map[string]any    `json:"custom_params,omitempty"`
	Timeout       time.Duration     `json:"-"`
}

// Validate checks that the provider is usable.
func (c Config) Validate() error {
	p := strings.ToLower(c.Provider)
	switch p {
	case ProviderQianfan:
		return ErrNotImplemented
	case ProviderCustom:
		if c.APIURL == "" {
			return &MissingFieldError{Field: "api_url"}
		}
		if c.APIKey == "" {
			return &MissingFieldError{Field: "api_key"}
		}
		return nil
	}
	if _, ok := providers[p]; !ok {
		return ErrUnsupportedProvider
	}
	return nil
}

// withDefaults fills unset fields from the provider table.
func (c Config) withDefaults() Config {
	c.Provider = strings.ToLower(c.Provider)
	def := providers[c.Provider]
	if c.Model == "" {
		c.Model = def.model
	}
	if c.APIURL == "" {
		c.APIURL = def.url
	}
	if c.MaxTokens <= 0 {
		c.MaxTokens = DefaultMaxTokens
	}
	if c.Temperature == nil {
		t := DefaultTemperature
		c.Temperature = &t
	}
	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}
	return c
}

// CanStream reports whether the provider supports streamed completions.
func (c Config) CanStream() bool {
	return providers[strings.ToLower(c.Provider)].stream
}
