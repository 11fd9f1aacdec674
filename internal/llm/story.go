package llm

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

var fencedJSON = regexp.MustCompile("(?s)```json\\s*(\\{.*?\\})\\s*```")

// Story is one generated episode of the destiny game. Fields beyond the
// required three are kept as-is.
type Story map[string]any

// StoryError reports a reply that is not a usable story.
type StoryError struct {
	Reason string
}

func (e *StoryError) Error() string {
	return e.Reason
}

// ParseStory pulls the story object out of a model reply. A ```json fenced
// block wins; otherwise the whole reply must be the object.
func ParseStory(content string) (Story, error) {
	raw := strings.TrimSpace(content)
	if m := fencedJSON.FindStringSubmatch(content); m != nil {
		raw = m[1]
	}

	var s Story
	if err := json.Unmarshal([]byte(raw), &s); err != nil {
		return nil, &StoryError{Reason: err.Error()}
	}
	for _, field := range []string{"title", "story", "choices"} {
		if _, ok := s[field]; !ok {
			return nil, &StoryError{Reason: fmt.Sprintf("故事数据缺少字段: %s", field)}
		}
	}
	choices, ok := s["choices"].([]any)
	if !ok || len(choices) < 2 {
		return nil, &StoryError{Reason: "choices必须是包含至少2个元素的数组"}
	}
	return s, nil
}
