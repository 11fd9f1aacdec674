package legacy

import (
	"regexp"
	"strings"
)

// EmptyOutput replaces an empty analysis.
const EmptyOutput = "八字分析暂无结果"

var (
	ansiPattern   = regexp.MustCompile(`\x1b\[[0-9;]*m`)
	promoKeywords = []string{"t.cn", "http", "建议参见", "pythontesting"}
)

// StripANSI removes terminal colour codes.
func StripANSI(s string) string {
	return ansiPattern.ReplaceAllString(s, "")
}

// Clean drops promotional lines and colour codes from script output.
func Clean(output string) string {
	if output == "" {
		return EmptyOutput
	}
	lines := strings.Split(StripANSI(output), "\n")
	kept := lines[:0]
	for _, line := range lines {
		if !containsAny(line, promoKeywords) {
			kept = append(kept, line)
		}
	}
	return strings.Join(kept, "\n")
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
