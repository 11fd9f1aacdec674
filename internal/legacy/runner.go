// Package legacy runs the text-mode bazi.py analysis script.
package legacy

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"runtime"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/text/encoding/simplifiedchinese"

	"github.com/verte-zerg/mingpan/internal/model"
)

// Config locates the script and its interpreter.
type Config struct {
	Python  string
	Script  string
	Dir     string
	Timeout time.Duration
	// Encoding of the script's output: "utf-8" or "gbk". Empty picks gbk on
	// Windows and utf-8 elsewhere.
	Encoding string
}

// DefaultConfig returns the settings for the current platform.
func DefaultConfig() Config {
	py := "python3"
	if runtime.GOOS == "windows" {
		py = "python"
	}
	return Config{Python: py, Script: "bazi.py", Timeout: 60 * time.Second}
}

// Result is the outcome of one run.
type Result struct {
	Success    bool   `json:"success"`
	Output     string `json:"output"`
	Error      string `json:"error,omitempty"`
	ReturnCode int    `json:"return_code"`
	Command    string `json:"command"`
}

// Runner executes the script.
type Runner struct {
	cfg    Config
	logger *zap.Logger
}

// NewRunner returns a Runner. Zero fields in cfg fall back to DefaultConfig.
func NewRunner(cfg Config, logger *zap.Logger) *Runner {
	def := DefaultConfig()
	if cfg.Python == "" {
		cfg.Python = def.Python
	}
	if cfg.Script == "" {
		cfg.Script = def.Script
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = def.Timeout
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{cfg: cfg, logger: logger}
}

// Args builds the script arguments: year month day hour, then -g for the
// solar calendar and -n for a female chart.
func Args(in model.BirthInput) []string {
	args := []string{
		strconv.Itoa(in.Year),
		strconv.Itoa(in.Month),
		strconv.Itoa(in.Day),
		strconv.Itoa(in.Hour),
	}
	if in.Calendar == model.CalendarSolar {
		args = append(args, "-g")
	}
	if in.Gender == model.GenderFemale {
		args = append(args, "-n")
	}
	return args
}

// Run executes the script for in. Failures are reported in the Result;
// the process exit code is preserved and -1 means the script never ran.
func (r *Runner) Run(ctx context.Context, in model.BirthInput) Result {
	ctx, cancel := context.WithTimeout(ctx, r.cfg.Timeout)
	defer cancel()

	args := append([]string{r.cfg.Script}, Args(in)...)
	cmd := exec.CommandContext(ctx, r.cfg.Python, args...)
	cmd.Dir = r.cfg.Dir
	cmd.WaitDelay = time.Second

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	res := Result{Command: r.cfg.Python + " " + strings.Join(args, " ")}
	start := time.Now()
	err := cmd.Run()

	res.Output = r.decode(stdout.Bytes())
	res.Error = r.decode(stderr.Bytes())

	switch {
	case err == nil:
		res.Success = true
	case ctx.Err() == context.DeadlineExceeded:
		res.ReturnCode = -1
		res.Error = fmt.Sprintf("timeout after %s", r.cfg.Timeout)
	default:
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			res.ReturnCode = exitErr.ExitCode()
		} else {
			res.ReturnCode = -1
			res.Error = err.Error()
		}
	}

	r.logger.Debug("legacy script finished",
		zap.String("command", res.Command),
		zap.Int("return_code", res.ReturnCode),
		zap.Int("stdout_bytes", stdout.Len()),
		zap.Duration("elapsed", time.Since(start)),
	)
	return res
}

func (r *Runner) decode(b []byte) string {
	enc := strings.ToLower(r.cfg.Encoding)
	if enc == "" && runtime.GOOS == "windows" {
		enc = "gbk"
	}
	if enc != "gbk" {
		return string(b)
	}
	s, err := simplifiedchinese.GBK.NewDecoder().Bytes(b)
	if err != nil {
		return string(b)
	}
	return string(s)
}
