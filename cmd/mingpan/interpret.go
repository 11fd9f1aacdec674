package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/verte-zerg/mingpan/internal/config"
	"github.com/verte-zerg/mingpan/internal/legacy"
	"github.com/verte-zerg/mingpan/internal/llm"
	"github.com/verte-zerg/mingpan/internal/model"
	"github.com/verte-zerg/mingpan/internal/tui"
	"github.com/verte-zerg/mingpan/internal/zodiac"
)

var (
	interpretStream bool
	interpretTUI    bool

	aiProvider    string
	aiAPIKey      string
	aiAPIURL      string
	aiModel       string
	aiMaxTokens   int
	aiTemperature float64
	aiTimeout     time.Duration
)

func newInterpretCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "interpret",
		Short: "Ask an AI provider to read the chart",
		Args:  cobra.NoArgs,
		RunE:  runInterpretCmd,
	}
	addBirthFlags(cmd)
	addBuilderFlags(cmd)
	addLegacyFlags(cmd)
	cmd.Flags().BoolVar(&interpretStream, "stream", false, "print the reply as it arrives")
	cmd.Flags().BoolVar(&interpretTUI, "tui", false, "show the streamed reply in a full-screen viewer")
	cmd.Flags().StringVar(&aiProvider, "provider", defaultProvider, "provider: openai, claude, deepseek, custom")
	cmd.Flags().StringVar(&aiAPIKey, "api-key", "", "provider API key (or "+config.APIKeyEnv+")")
	cmd.Flags().StringVar(&aiAPIURL, "api-url", "", "provider endpoint; required for custom")
	cmd.Flags().StringVar(&aiModel, "model", "", "model name; empty uses the provider default")
	cmd.Flags().IntVar(&aiMaxTokens, "max-tokens", llm.DefaultMaxTokens, "maximum reply tokens")
	cmd.Flags().Float64Var(&aiTemperature, "temperature", llm.DefaultTemperature, "sampling temperature")
	cmd.Flags().DurationVar(&aiTimeout, "timeout", llm.DefaultTimeout, "provider request timeout")
	return cmd
}

func runInterpretCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logger := newLogger()
	defer func() { _ = logger.Sync() }()

	in, err := parseBirthFlags()
	if err != nil {
		return err
	}
	aiCfg := resolveAIConfig(cmd, fileCfg)
	if aiCfg.APIKey == "" {
		return fmt.Errorf("missing API key: use --api-key, [ai] api_key or %s", config.APIKeyEnv)
	}
	if (interpretStream || interpretTUI) && !aiCfg.CanStream() {
		return llm.ErrStreamUnsupported
	}
	client, err := llm.New(aiCfg, logger)
	if err != nil {
		return err
	}
	builder, err := newBuilder(cmd, fileCfg, logger)
	if err != nil {
		return err
	}
	runner := newLegacyRunner(cmd, fileCfg, logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	prompt, err := buildPrompt(ctx, in, runner, builder.Build, logger)
	if err != nil {
		return err
	}

	switch {
	case interpretTUI:
		content, errs := client.Stream(ctx, prompt)
		_, err := tui.Run(ctx, "AI解读 · "+in.Date(), content, errs)
		return err
	case interpretStream:
		content, errs := client.Stream(ctx, prompt)
		for delta := range content {
			fmt.Print(delta)
		}
		fmt.Println()
		return <-errs
	default:
		text, err := client.Complete(ctx, prompt)
		if err != nil {
			return err
		}
		fmt.Println(text)
		return nil
	}
}

func resolveAIConfig(cmd *cobra.Command, fileCfg config.FileConfig) llm.Config {
	ai := fileCfg.AI
	applyStringConfig(cmd, "provider", &aiProvider, ai.Provider)
	applyStringConfig(cmd, "api-key", &aiAPIKey, ai.APIKey)
	applyStringConfig(cmd, "api-url", &aiAPIURL, ai.APIURL)
	applyStringConfig(cmd, "model", &aiModel, ai.Model)
	applyIntConfig(cmd, "max-tokens", &aiMaxTokens, ai.MaxTokens)
	applyFloatConfig(cmd, "temperature", &aiTemperature, ai.Temperature)
	applyDurationConfig(cmd, "timeout", &aiTimeout, ai.Timeout)

	temperature := aiTemperature
	return llm.Config{
		Provider:    strings.ToLower(aiProvider),
		APIKey:      aiAPIKey,
		APIURL:      aiAPIURL,
		Model:       aiModel,
		MaxTokens:   aiMaxTokens,
		Temperature: &temperature,
		Timeout:     aiTimeout,
	}
}

type scriptRunner interface {
	Run(ctx context.Context, in model.BirthInput) legacy.Result
}

// buildPrompt gathers the zodiac report, the script analysis and the chart
// for in. The script and the chart are produced concurrently; a failed script
// run is logged and leaves the analysis empty.
func buildPrompt(ctx context.Context, in model.BirthInput, runner scriptRunner, build func(model.BirthInput) *model.Chart, logger *zap.Logger) (string, error) {
	animal := zodiac.ForYear(in.Year)
	report, err := zodiac.Lookup(animal)
	if err != nil {
		return "", err
	}

	var (
		res   legacy.Result
		chart *model.Chart
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		res = runner.Run(gctx, in)
		return nil
	})
	g.Go(func() error {
		chart = build(in)
		return nil
	})
	_ = g.Wait()

	analysis := legacy.EmptyOutput
	if res.Success {
		analysis = legacy.Clean(res.Output)
	} else {
		logger.Warn("legacy analysis unavailable",
			zap.String("command", res.Command),
			zap.Int("return_code", res.ReturnCode),
			zap.String("error", res.Error),
		)
	}

	return llm.InterpretationPrompt(llm.PromptInput{
		Birth: llm.BirthInfo{
			Date:         in.Date(),
			Time:         fmt.Sprintf("%d", in.Hour),
			Gender:       in.Gender.Label(),
			CalendarType: in.Calendar.Label(),
			Shengxiao:    animal,
		},
		Zodiac:   report,
		Analysis: analysis,
		Chart:    chart,
	})
}
