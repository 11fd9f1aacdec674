// Package zodiac maps years and animals to branches and reports the
// compatibility relations between the twelve animals.
package zodiac

import (
	"fmt"
	"strings"

	"github.com/verte-zerg/mingpan/internal/ganzhi"
	"github.com/verte-zerg/mingpan/internal/model"
)

// Animals in branch order, 子 first.
var Animals = [12]string{"鼠", "牛", "虎", "兔", "龙", "蛇", "马", "羊", "猴", "鸡", "狗", "猪"}

const baseYear = 1900

// InvalidAnimalError reports an unknown animal name.
type InvalidAnimalError struct {
	Input string
	Valid []string
}

func (e *InvalidAnimalError) Error() string {
	return "请输入正确的生肖"
}

// ValidAnimals returns a fresh copy of the canonical animal list.
func ValidAnimals() []string {
	return append([]string(nil), Animals[:]...)
}

// ForYear returns the animal of a year.
func ForYear(year int) string {
	i := ((year-baseYear)%12 + 12) % 12
	return Animals[i]
}

// Branch returns the earthly branch of an animal.
func Branch(animal string) (string, bool) {
	for i, a := range Animals {
		if a == animal {
			return ganzhi.Branches[i], true
		}
	}
	return "", false
}

// AnimalOf returns the animal of a branch.
func AnimalOf(branch string) (string, bool) {
	i := ganzhi.BranchIndex(branch)
	if i < 0 {
		return "", false
	}
	return Animals[i], true
}

// Lookup builds the compatibility report of an animal.
func Lookup(animal string) (model.ZodiacInfo, error) {
	branch, ok := Branch(animal)
	if !ok {
		return model.ZodiacInfo{}, &InvalidAnimalError{Input: animal, Valid: ValidAnimals()}
	}
	rel, _ := ganzhi.RelationsOf(branch)
	return model.ZodiacInfo{
		Shengxiao: animal,
		YearZhi:   branch,
		Compatible: model.Compatible{
			Sanhe:  animals(rel.Sanhe[:]...),
			Liuhe:  animals(rel.Liuhe),
			Sanhui: animals(rel.Sanhui[:]...),
		},
		Incompatible: model.Incompatible{
			Chong:   animals(rel.Chong),
			Xing:    animals(rel.Xing),
			Beixing: animals(rel.Beixing),
			Hai:     animals(rel.Hai),
			Po:      animals(rel.Po),
		},
	}, nil
}

func animals(branches ...string) []string {
	out := make([]string, 0, len(branches))
	for _, b := range branches {
		if a, ok := AnimalOf(b); ok {
			out = append(out, a)
		}
	}
	return out
}

var rule = strings.Repeat("=", 80)

// Format renders a report as the plain-text summary.
func Format(info model.ZodiacInfo) string {
	var b strings.Builder
	line := func(format string, args ...any) {
		fmt.Fprintf(&b, format, args...)
		b.WriteByte('\n')
	}
	list := func(label string, items []string) {
		if len(items) > 0 {
			line("%s：%s", label, strings.Join(items, ""))
		}
	}

	line("你的生肖是：%s", info.Shengxiao)
	line("你的年支是：%s", info.YearZhi)
	line("%s", rule)
	line("合生肖是合八字的一小部分，有一定参考意义，但是不是全部。")
	line("合婚请以八字为准。")
	line("以下为相合的生肖：")
	line("%s", rule)
	list("与你三合的生肖", info.Compatible.Sanhe)
	list("与你六合的生肖", info.Compatible.Liuhe)
	list("与你三会的生肖", info.Compatible.Sanhui)
	line("")
	line("%s", rule)
	line("以下为不合的生肖：")
	line("%s", rule)
	list("与你相冲的生肖", info.Incompatible.Chong)
	list("你刑的生肖", info.Incompatible.Xing)
	list("被你刑的生肖", info.Incompatible.Beixing)
	list("与你相害的生肖", info.Incompatible.Hai)
	list("与你相破的生肖", info.Incompatible.Po)
	line("")
	line("%s", rule)
	line("如果生肖同时在你的合与不合中，则做加减即可。")
	b.WriteString("比如猪对于虎，有一个相破，有一六合，抵消就为平性。")
	return b.String()
}

// FormatError renders an invalid-animal error.
func FormatError(err *InvalidAnimalError) string {
	return fmt.Sprintf("错误：%s\n有效的生肖：%s", err.Error(), strings.Join(err.Valid, ", "))
}
