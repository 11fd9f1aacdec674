package legacy

import (
	"context"
	"os"
	"path/filepath"
	"reflect"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/verte-zerg/mingpan/internal/model"
)

func TestArgs(t *testing.T) {
	in := model.BirthInput{Year: 1990, Month: 1, Day: 2, Hour: 8, Calendar: model.CalendarSolar, Gender: model.GenderFemale}
	want := []string{"1990", "1", "2", "8", "-g", "-n"}
	if got := Args(in); !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	in.Calendar, in.Gender = model.CalendarLunar, model.GenderMale
	if got := Args(in); len(got) != 4 {
		t.Fatalf("expected no flags, got %v", got)
	}
}

func TestClean(t *testing.T) {
	out := "\x1b[1;31m日主\x1b[0m 甲\n详见 http://example.com\n建议参见 某书\n技术支持 pythontesting\n短链 t.cn/abc\n结论"
	if got := Clean(out); got != "日主 甲\n结论" {
		t.Fatalf("unexpected clean output: %q", got)
	}
	if Clean("") != EmptyOutput {
		t.Fatalf("expected placeholder for empty output")
	}
}

func writeScript(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "bazi.sh")
	if err := os.WriteFile(path, []byte(body), 0o755); err != nil {
		t.Fatalf("write script: %v", err)
	}
	return path
}

func TestRunCapturesOutput(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("needs sh")
	}
	script := writeScript(t, "echo args: \"$@\"\n")
	r := NewRunner(Config{Python: "sh", Script: script, Encoding: "utf-8"}, nil)
	res := r.Run(context.Background(), model.BirthInput{Year: 1990, Month: 1, Day: 1, Hour: 8, Gender: model.GenderFemale})
	if !res.Success || res.ReturnCode != 0 {
		t.Fatalf("expected success, got %+v", res)
	}
	if strings.TrimSpace(res.Output) != "args: 1990 1 1 8 -n" {
		t.Fatalf("unexpected output %q", res.Output)
	}
}

func TestRunReportsExitCode(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("needs sh")
	}
	script := writeScript(t, "echo broken >&2\nexit 3\n")
	r := NewRunner(Config{Python: "sh", Script: script}, nil)
	res := r.Run(context.Background(), model.BirthInput{Year: 1990, Month: 1, Day: 1})
	if res.Success || res.ReturnCode != 3 {
		t.Fatalf("expected exit 3, got %+v", res)
	}
	if strings.TrimSpace(res.Error) != "broken" {
		t.Fatalf("unexpected stderr %q", res.Error)
	}
}

func TestRunTimeout(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("needs sh")
	}
	script := writeScript(t, "exec sleep 5\n")
	r := NewRunner(Config{Python: "sh", Script: script, Timeout: 50 * time.Millisecond}, nil)
	res := r.Run(context.Background(), model.BirthInput{Year: 1990, Month: 1, Day: 1})
	if res.Success || res.ReturnCode != -1 {
		t.Fatalf("expected timeout failure, got %+v", res)
	}
}

func TestRunMissingInterpreter(t *testing.T) {
	r := NewRunner(Config{Python: "definitely-not-a-python-binary"}, nil)
	res := r.Run(context.Background(), model.BirthInput{Year: 1990, Month: 1, Day: 1})
	if res.Success || res.ReturnCode != -1 || res.Error == "" {
		t.Fatalf("expected start failure, got %+v", res)
	}
}

func TestDecodeGBK(t *testing.T) {
	r := NewRunner(Config{Encoding: "gbk"}, nil)
	// "八字" in GBK.
	if got := r.decode([]byte{0xb0, 0xcb, 0xd7, 0xd6}); got != "八字" {
		t.Fatalf("unexpected decode %q", got)
	}
}
