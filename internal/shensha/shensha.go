// Package shensha tags chart positions with the traditional spirit markers.
package shensha

import "strings"

// Tag names.
const (
	Nobleman   = "天乙贵人"
	PeachBloom = "桃花"
	PostHorse  = "驿马"
	Void       = "空亡"
	YangBlade  = "羊刃"
	Literary   = "文昌"
)

// Input is everything the rules look at. Branches are ordered year, month,
// day, hour.
type Input struct {
	DayStem  string
	Branches [4]string
	// VoidBranches is the day pillar's xun-kong pair, e.g. "戌亥".
	VoidBranches string
}

const (
	yearPos = 0
	dayPos  = 2
)

var nobleman = map[string]string{
	"甲": "丑未", "戊": "丑未", "庚": "丑未",
	"乙": "子申", "己": "子申",
	"丙": "亥酉", "丁": "亥酉",
	"壬": "卯巳", "癸": "卯巳",
	"辛": "午寅",
}

// Keyed by the trine group of the year or day branch.
var peachBloom = trine("酉", "卯", "午", "子")
var postHorse = trine("寅", "申", "亥", "巳")

var yangBlade = map[string]string{
	"甲": "卯", "乙": "辰", "丙": "午", "戊": "午", "庚": "酉", "壬": "子",
}

var literary = map[string]string{
	"甲": "巳", "乙": "午", "丙": "申", "戊": "申", "丁": "酉",
	"己": "酉", "庚": "亥", "辛": "子", "壬": "寅", "癸": "卯",
}

func trine(shenziChen, yinwuXu, siyouChou, haimaoWei string) map[string]string {
	m := map[string]string{}
	for _, g := range []struct{ group, target string }{
		{"申子辰", shenziChen},
		{"寅午戌", yinwuXu},
		{"巳酉丑", siyouChou},
		{"亥卯未", haimaoWei},
	} {
		for _, b := range g.group {
			m[string(b)] = g.target
		}
	}
	return m
}

// Evaluate returns the tags for each of the four positions in rule order.
// Every slice is non-nil.
func Evaluate(in Input) [4][]string {
	var out [4][]string
	noble := nobleman[in.DayStem]
	blade := yangBlade[in.DayStem]
	lit := literary[in.DayStem]
	yearBranch, dayBranch := in.Branches[yearPos], in.Branches[dayPos]

	for i, b := range in.Branches {
		tags := []string{}
		if b == "" {
			out[i] = tags
			continue
		}
		if strings.Contains(noble, b) {
			tags = append(tags, Nobleman)
		}
		if byTrine(peachBloom, yearBranch, dayBranch, b) {
			tags = append(tags, PeachBloom)
		}
		if byTrine(postHorse, yearBranch, dayBranch, b) {
			tags = append(tags, PostHorse)
		}
		if strings.Contains(in.VoidBranches, b) {
			tags = append(tags, Void)
		}
		if blade == b {
			tags = append(tags, YangBlade)
		}
		if lit == b {
			tags = append(tags, Literary)
		}
		out[i] = tags
	}
	return out
}

func byTrine(table map[string]string, yearBranch, dayBranch, b string) bool {
	if t, ok := table[yearBranch]; ok && t == b {
		return true
	}
	t, ok := table[dayBranch]
	return ok && t == b
}
