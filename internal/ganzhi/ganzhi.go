// Package ganzhi holds the stem/branch cycle and the fixed correspondence
// tables used to structure a Four Pillars chart.
package ganzhi

// Stems are the ten heavenly stems in cycle order.
var Stems = [10]string{"甲", "乙", "丙", "丁", "戊", "己", "庚", "辛", "壬", "癸"}

// Branches are the twelve earthly branches in cycle order.
var Branches = [12]string{"子", "丑", "寅", "卯", "辰", "巳", "午", "未", "申", "酉", "戌", "亥"}

// Element names.
const (
	Wood  = "木"
	Fire  = "火"
	Earth = "土"
	Metal = "金"
	Water = "水"
)

// Elements lists the five elements in generation order: each one generates
// the next and the last generates the first.
var Elements = [5]string{Wood, Fire, Earth, Metal, Water}

// StemIndex returns the cycle position of stem or -1.
func StemIndex(stem string) int {
	for i, s := range Stems {
		if s == stem {
			return i
		}
	}
	return -1
}

// BranchIndex returns the cycle position of branch or -1.
func BranchIndex(branch string) int {
	for i, b := range Branches {
		if b == branch {
			return i
		}
	}
	return -1
}

// ShiftStem moves stem n places along the cycle.
func ShiftStem(stem string, n int) (string, bool) {
	i := StemIndex(stem)
	if i < 0 {
		return "", false
	}
	return Stems[mod(i+n, len(Stems))], true
}

// ShiftBranch moves branch n places along the cycle.
func ShiftBranch(branch string, n int) (string, bool) {
	i := BranchIndex(branch)
	if i < 0 {
		return "", false
	}
	return Branches[mod(i+n, len(Branches))], true
}

// IsYang reports whether the stem has yang polarity.
func IsYang(stem string) bool {
	return StemIndex(stem)%2 == 0
}

// ElementAt returns the element n steps after el in generation order.
// n=1 is what el generates, n=-1 is what generates el.
func ElementAt(el string, n int) (string, bool) {
	for i, e := range Elements {
		if e == el {
			return Elements[mod(i+n, len(Elements))], true
		}
	}
	return "", false
}

// Split separates a two-character gan-zhi into stem and branch.
func Split(ganZhi string) (string, string, bool) {
	r := []rune(ganZhi)
	if len(r) != 2 {
		return "", "", false
	}
	return string(r[0]), string(r[1]), true
}

func mod(a, n int) int {
	return ((a % n) + n) % n
}
