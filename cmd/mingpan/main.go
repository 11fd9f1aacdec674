// Package main provides the CLI entrypoint for mingpan.
package main

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/verte-zerg/mingpan/internal/bazi"
	"github.com/verte-zerg/mingpan/internal/birth"
	"github.com/verte-zerg/mingpan/internal/calendar"
	"github.com/verte-zerg/mingpan/internal/config"
	"github.com/verte-zerg/mingpan/internal/legacy"
	"github.com/verte-zerg/mingpan/internal/llm"
	"github.com/verte-zerg/mingpan/internal/logging"
	"github.com/verte-zerg/mingpan/internal/model"
)

const (
	defaultLogLevel  = "info"
	defaultLogFormat = logging.FormatConsole
	defaultAddr      = ":5000"
	defaultProvider  = llm.ProviderOpenAI
)

var (
	logLevel  string
	logFormat string

	birthDate     string
	birthHour     string
	birthGender   string
	birthCalendar string

	legacyPython   string
	legacyScript   string
	legacyDir      string
	legacyEncoding string
	legacyTimeout  time.Duration

	strengthStrong float64
	strengthWeak   float64
	advicePath     string
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "mingpan",
		Short:         "Four Pillars charts, zodiac compatibility and AI readings",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&logLevel, "log-level", defaultLogLevel, "log level: debug, info, warn, error")
	pf.StringVar(&logFormat, "log-format", defaultLogFormat, "log format: console or json")

	rootCmd.AddCommand(newChartCmd())
	rootCmd.AddCommand(newShengxiaoCmd())
	rootCmd.AddCommand(newInterpretCmd())
	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newConfigCmd())

	return rootCmd
}

func addBirthFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&birthDate, "date", "", "birth date YYYY-MM-DD (required)")
	cmd.Flags().StringVar(&birthHour, "hour", birth.DefaultHour, "birth hour 0-23")
	cmd.Flags().StringVar(&birthGender, "gender", birth.DefaultGender, "gender: 男/女 or male/female")
	cmd.Flags().StringVar(&birthCalendar, "calendar", birth.DefaultCalendar, "calendar: 农历/公历 or lunar/solar")
	_ = cmd.MarkFlagRequired("date")
}

func addLegacyFlags(cmd *cobra.Command) {
	def := legacy.DefaultConfig()
	cmd.Flags().StringVar(&legacyPython, "python", def.Python, "python interpreter for the analysis script")
	cmd.Flags().StringVar(&legacyScript, "script", def.Script, "path of the analysis script")
	cmd.Flags().StringVar(&legacyDir, "script-dir", "", "working directory of the analysis script")
	cmd.Flags().StringVar(&legacyEncoding, "script-encoding", "", "script output encoding: utf-8 or gbk")
	cmd.Flags().DurationVar(&legacyTimeout, "script-timeout", def.Timeout, "analysis script timeout")
}

func addBuilderFlags(cmd *cobra.Command) {
	def := bazi.DefaultStrengthPolicy()
	cmd.Flags().Float64Var(&strengthStrong, "strong", def.StrongRatio, "support ratio at or above which the day master is strong")
	cmd.Flags().Float64Var(&strengthWeak, "weak", def.WeakRatio, "support ratio at or below which the day master is weak")
	cmd.Flags().StringVar(&advicePath, "advice", "", "advice overlay TOML file")
}

// loadConfig reads the config file and applies the settings shared by all
// commands. Flags set on the command line win.
func loadConfig(cmd *cobra.Command) (config.FileConfig, error) {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return config.FileConfig{}, fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "log-level", &logLevel, fileCfg.Log.Level)
	applyStringConfig(cmd, "log-format", &logFormat, fileCfg.Log.Format)
	return fileCfg, nil
}

func newLogger() *zap.Logger {
	logger, err := logging.New(logLevel, logFormat)
	if err != nil {
		logErrf("failed to build logger, logging disabled: %v\n", err)
		return zap.NewNop()
	}
	return logger
}

func parseBirthFlags() (model.BirthInput, error) {
	return birth.Parse(birth.Raw{
		Date:     birthDate,
		Hour:     birthHour,
		Gender:   birthGender,
		Calendar: birthCalendar,
	})
}

func newLegacyRunner(cmd *cobra.Command, fileCfg config.FileConfig, logger *zap.Logger) *legacy.Runner {
	applyStringConfig(cmd, "python", &legacyPython, fileCfg.Legacy.Python)
	applyStringConfig(cmd, "script", &legacyScript, fileCfg.Legacy.Script)
	applyStringConfig(cmd, "script-dir", &legacyDir, fileCfg.Legacy.Dir)
	applyStringConfig(cmd, "script-encoding", &legacyEncoding, fileCfg.Legacy.Encoding)
	applyDurationConfig(cmd, "script-timeout", &legacyTimeout, fileCfg.Legacy.Timeout)
	return legacy.NewRunner(legacy.Config{
		Python:   legacyPython,
		Script:   legacyScript,
		Dir:      legacyDir,
		Timeout:  legacyTimeout,
		Encoding: legacyEncoding,
	}, logger)
}

func newBuilder(cmd *cobra.Command, fileCfg config.FileConfig, logger *zap.Logger) (*bazi.Builder, error) {
	applyFloatConfig(cmd, "strong", &strengthStrong, fileCfg.Strength.Strong)
	applyFloatConfig(cmd, "weak", &strengthWeak, fileCfg.Strength.Weak)
	if !cmd.Flags().Changed("advice") {
		advicePath = fileCfg.AdvicePath()
	}
	if strengthWeak <= 0 || strengthStrong >= 1 || strengthWeak >= strengthStrong {
		return nil, fmt.Errorf("--weak must be > 0, --strong < 1, and --weak < --strong")
	}

	advice, err := config.LoadAdvice(advicePath)
	if err != nil {
		return nil, err
	}
	return bazi.NewBuilder(calendar.NewLunar(),
		bazi.WithAdvice(advice),
		bazi.WithStrengthPolicy(bazi.StrengthPolicy{StrongRatio: strengthStrong, WeakRatio: strengthWeak}),
		bazi.WithLogger(logger),
	), nil
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o600); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyFloatConfig(cmd *cobra.Command, name string, target, value *float64) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyDurationConfig(cmd *cobra.Command, name string, target *time.Duration, value *config.Duration) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = value.Duration
}

func defaultConfigTemplate() string {
	def := legacy.DefaultConfig()
	policy := bazi.DefaultStrengthPolicy()
	return fmt.Sprintf(`# mingpan configuration
# Uncomment a value to enable it. CLI flags override config values.
# %s overrides ai.api_key.

[server]
# addr = %q

[log]
# level = %q             # debug, info, warn, error
# format = %q        # console or json

[legacy]
# python = %q
# script = %q
# dir = ""
# timeout = %q
# encoding = "utf-8"        # utf-8 or gbk

[ai]
# provider = %q          # openai, claude, deepseek, custom
# api_key = ""
# api_url = ""              # required for custom
# model = ""
# max_tokens = %d
# temperature = %.1f
# timeout = %q

[strength]
# strong = %.2f
# weak = %.2f

[advice]
# path = %q
`,
		config.APIKeyEnv,
		defaultAddr,
		defaultLogLevel,
		defaultLogFormat,
		def.Python,
		def.Script,
		def.Timeout.String(),
		defaultProvider,
		llm.DefaultMaxTokens,
		llm.DefaultTemperature,
		llm.DefaultTimeout.String(),
		policy.StrongRatio,
		policy.WeakRatio,
		config.DefaultAdvicePath(),
	)
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}

func logErrln(args ...any) {
	if _, err := fmt.Fprintln(os.Stderr, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
