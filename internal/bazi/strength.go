package bazi

import (
	"github.com/verte-zerg/mingpan/internal/ganzhi"
	"github.com/verte-zerg/mingpan/internal/model"
)

// StrengthPolicy holds the share of the tally the supporting camp must
// reach (or stay under) for a clear strong (or weak) reading.
type StrengthPolicy struct {
	StrongRatio float64
	WeakRatio   float64
}

// DefaultStrengthPolicy is the 55/45 split.
func DefaultStrengthPolicy() StrengthPolicy {
	return StrengthPolicy{StrongRatio: 0.55, WeakRatio: 0.45}
}

// Strength is the classification with the derived element sets.
type Strength struct {
	Label       string
	Favorable   []string
	Unfavorable []string
}

// Classify splits the tally into the day master's camp (its own element
// and the one generating it) and the opposing camp (output, wealth, power).
// Inside the balanced band a tie leans weak.
func (p StrengthPolicy) Classify(dmElement string, tally model.ElementTally) (Strength, bool) {
	resource, ok := ganzhi.ElementAt(dmElement, -1)
	if !ok {
		return Strength{}, false
	}
	output, _ := ganzhi.ElementAt(dmElement, 1)
	wealth, _ := ganzhi.ElementAt(dmElement, 2)
	power, _ := ganzhi.ElementAt(dmElement, 3)

	same := tally[dmElement] + tally[resource]
	diff := tally[output] + tally[wealth] + tally[power]
	total := float64(same + diff)

	support := []string{dmElement, resource}
	drain := []string{output, wealth, power}

	switch {
	case float64(same) >= total*p.StrongRatio:
		return Strength{Label: model.StrengthStrong, Favorable: drain, Unfavorable: support}, true
	case float64(same) <= total*p.WeakRatio:
		return Strength{Label: model.StrengthWeak, Favorable: support, Unfavorable: drain}, true
	case same > diff:
		return Strength{Label: model.StrengthLeaningStrong, Favorable: drain, Unfavorable: support}, true
	default:
		return Strength{Label: model.StrengthLeaningWeak, Favorable: support, Unfavorable: drain}, true
	}
}
