package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/verte-zerg/mingpan/internal/model"
	"github.com/verte-zerg/mingpan/internal/render"
	"github.com/verte-zerg/mingpan/internal/zodiac"
)

var (
	chartJSON  bool
	chartColor bool

	shengxiaoYear int
)

func newChartCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chart",
		Short: "Print the structured Four Pillars chart",
		Long: `Print the structured Four Pillars chart for a birth moment.

The seasonal, quick reference and pattern advice in the chart can be
overridden by a TOML overlay file. The overlay is read from --advice, then
from [advice] path in the config file, then from
$XDG_CONFIG_HOME/mingpan/advice.toml when that file exists. Keys missing
from the overlay keep their built-in text. Seasonal and quick reference
keys are the day stem followed by the month branch; pattern tables are keyed
by day master element, then month branch.

  [seasonal]
  "甲寅" = "..."

  [quick_reference]
  "甲寅" = "..."

  [pattern."木"]
  "寅" = "..."`,
		Args: cobra.NoArgs,
		RunE:  runChartCmd,
	}
	addBirthFlags(cmd)
	addBuilderFlags(cmd)
	cmd.Flags().BoolVar(&chartJSON, "json", false, "print the chart as JSON")
	cmd.Flags().BoolVar(&chartColor, "color", false, "force coloured output")
	return cmd
}

func runChartCmd(cmd *cobra.Command, _ []string) error {
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
	builder, err := newBuilder(cmd, fileCfg, logger)
	if err != nil {
		return err
	}

	return writeChart(os.Stdout, builder.Build(in), chartJSON, chartColor)
}

var errChartFailed = errors.New("结构化八字生成失败")

func writeChart(w io.Writer, chart *model.Chart, asJSON, color bool) error {
	if chart == nil {
		return errChartFailed
	}
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetEscapeHTML(false)
		enc.SetIndent("", "  ")
		return enc.Encode(chart)
	}
	return render.NewPrinter(w, color).Chart(chart)
}

func newShengxiaoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "shengxiao [animal]",
		Short: "Show zodiac animal compatibility",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runShengxiaoCmd,
	}
	cmd.Flags().IntVar(&shengxiaoYear, "year", 0, "look up the animal of a birth year instead")
	return cmd
}

func runShengxiaoCmd(cmd *cobra.Command, args []string) error {
	var animal string
	switch {
	case len(args) == 1:
		animal = args[0]
	case cmd.Flags().Changed("year"):
		animal = zodiac.ForYear(shengxiaoYear)
	default:
		animal = zodiac.ForYear(time.Now().Year())
	}

	info, err := zodiac.Lookup(animal)
	var invalid *zodiac.InvalidAnimalError
	if errors.As(err, &invalid) {
		logErrln(zodiac.FormatError(invalid))
		return fmt.Errorf("invalid zodiac animal %q", animal)
	}
	if err != nil {
		return err
	}
	fmt.Println(zodiac.Format(info))
	return nil
}
