package llm

import (
	"embed"
	"strings"
	"text/template"

	"github.com/verte-zerg/mingpan/internal/model"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

var interpretationTmpl = template.Must(
	template.New("interpretation.tmpl").
		Funcs(template.FuncMap{"join": joinOrNone}).
		ParseFS(templateFS, "templates/interpretation.tmpl"),
)

// BirthInfo is the birth summary echoed into prompts.
type BirthInfo struct {
	Date         string `json:"date"`
	Time         string `json:"time"`
	Gender       string `json:"gender"`
	CalendarType string `json:"calendar_type"`
	Shengxiao    string `json:"shengxiao"`
}

// PromptInput is everything the interpretation prompt mentions. Chart is
// optional.
type PromptInput struct {
	Birth    BirthInfo
	Zodiac   model.ZodiacInfo
	Analysis string
	Chart    *model.Chart
}

// InterpretationPrompt renders the expert-reading prompt.
func InterpretationPrompt(in PromptInput) (string, error) {
	var b strings.Builder
	if err := interpretationTmpl.Execute(&b, in); err != nil {
		return "", err
	}
	return strings.TrimRight(b.String(), "\n"), nil
}

func joinOrNone(items []string) string {
	if len(items) == 0 {
		return "无"
	}
	return strings.Join(items, ", ")
}
