package bazi

import "github.com/verte-zerg/mingpan/internal/ganzhi"

// UnknownTaiYuan is reported when the month pillar is not a valid pair.
const UnknownTaiYuan = "未知"

// TaiYuan returns the conception pillar: month stem plus one, month branch
// plus three.
func TaiYuan(monthStem, monthBranch string) string {
	s, ok := ganzhi.ShiftStem(monthStem, 1)
	if !ok {
		return UnknownTaiYuan
	}
	b, ok := ganzhi.ShiftBranch(monthBranch, 3)
	if !ok {
		return UnknownTaiYuan
	}
	return s + b
}
