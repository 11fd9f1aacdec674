// Package config provides configuration helpers and TOML parsing.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/verte-zerg/mingpan/internal/ganzhi"
)

// APIKeyEnv overrides ai.api_key when set.
const APIKeyEnv = "MINGPAN_AI_API_KEY"

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	Server   ServerConfig   `toml:"server"`
	Log      LogConfig      `toml:"log"`
	Legacy   LegacyConfig   `toml:"legacy"`
	AI       AIConfig       `toml:"ai"`
	Strength StrengthConfig `toml:"strength"`
	Advice   AdviceConfig   `toml:"advice"`
}

// ServerConfig maps HTTP server settings.
type ServerConfig struct {
	Addr *string `toml:"addr"`
}

// LogConfig maps logger settings.
type LogConfig struct {
	Level  *string `toml:"level"`
	Format *string `toml:"format"`
}

// LegacyConfig maps the analysis script settings.
type LegacyConfig struct {
	Python   *string   `toml:"python"`
	Script   *string   `toml:"script"`
	Dir      *string   `toml:"dir"`
	Timeout  *Duration `toml:"timeout"`
	Encoding *string   `toml:"encoding"`
}

// AIConfig maps the default provider used by the CLI.
type AIConfig struct {
	Provider    *string   `toml:"provider"`
	APIKey      *string   `toml:"api_key"`
	APIURL      *string   `toml:"api_url"`
	Model       *string   `toml:"model"`
	MaxTokens   *int      `toml:"max_tokens"`
	Temperature *float64  `toml:"temperature"`
	Timeout     *Duration `toml:"timeout"`
}

// StrengthConfig maps the day master strength thresholds.
type StrengthConfig struct {
	Strong *float64 `toml:"strong"`
	Weak   *float64 `toml:"weak"`
}

// AdviceConfig points at an advice overlay file.
type AdviceConfig struct {
	Path *string `toml:"path"`
}

// Duration is a time.Duration written as "60s" or "1m30s".
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", text, err)
	}
	d.Duration = v
	return nil
}

// LoadConfig reads a TOML config from the given path. Missing file is not an error.
// The API key environment variable wins over the file.
func LoadConfig(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	var cfg FileConfig
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
		}
	} else if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	if key := os.Getenv(APIKeyEnv); key != "" {
		cfg.AI.APIKey = &key
	}
	return cfg, nil
}

// LoadAdvice returns the built-in advice tables with the overlay at path
// applied. An empty path returns the built-in tables.
func LoadAdvice(path string) (*ganzhi.Advice, error) {
	base := ganzhi.DefaultAdvice()
	if path == "" {
		return base, nil
	}
	var overlay ganzhi.AdviceOverlay
	if _, err := toml.DecodeFile(path, &overlay); err != nil {
		return nil, fmt.Errorf("failed to decode advice file: %w", err)
	}
	return base.WithOverlay(overlay), nil
}

// AdvicePath returns the configured overlay path, or the default path when
// that file exists, or "".
func (c FileConfig) AdvicePath() string {
	if c.Advice.Path != nil {
		return *c.Advice.Path
	}
	if _, err := os.Stat(DefaultAdvicePath()); err == nil {
		return DefaultAdvicePath()
	}
	return ""
}
