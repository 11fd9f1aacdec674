package ganzhi

// HiddenStem is a stem stored inside a branch with its tally weight.
type HiddenStem struct {
	Stem   string
	Weight int
}

// Relations lists the branches linked to one branch.
type Relations struct {
	Chong   string
	Xing    string
	Beixing string
	Sanhe   [2]string
	Sanhui  [2]string
	Hai     string
	Po      string
	Liuhe   string
}

// StemElement returns the element of a stem.
func StemElement(stem string) (string, bool) {
	el, ok := stemElements[stem]
	return el, ok
}

// HiddenStems returns the hidden stems of branch, main qi first.
func HiddenStems(branch string) []HiddenStem {
	hs := hiddenStems[branch]
	out := make([]HiddenStem, len(hs))
	copy(out, hs)
	return out
}

// MainQi returns the first hidden stem of branch.
func MainQi(branch string) (string, bool) {
	hs := hiddenStems[branch]
	if len(hs) == 0 {
		return "", false
	}
	return hs[0].Stem, true
}

// NaYin returns the sound element of a sexagenary pair, or "".
func NaYin(ganZhi string) string {
	return naYin[ganZhi]
}

// RelationsOf returns the relations of branch.
func RelationsOf(branch string) (Relations, bool) {
	r, ok := relations[branch]
	return r, ok
}

// TenGod returns the one-character ten-god label of stem seen from the
// day master dm.
func TenGod(dm, stem string) (string, bool) {
	dmEl, ok := stemElements[dm]
	if !ok {
		return "", false
	}
	el, ok := stemElements[stem]
	if !ok {
		return "", false
	}
	rel := elementDistance(dmEl, el)
	if rel == 4 {
		rel = -1
	}
	labels := tenGodLabels[rel]
	if IsYang(dm) == IsYang(stem) {
		return labels[0], true
	}
	return labels[1], true
}

// LifeStage returns the twelve-stage position of stem at branch.
func LifeStage(stem, branch string) (string, bool) {
	start, ok := lifeStageStart[stem]
	if !ok {
		return "", false
	}
	b := BranchIndex(branch)
	if b < 0 {
		return "", false
	}
	s := BranchIndex(start)
	step := b - s
	if !IsYang(stem) {
		step = s - b
	}
	return lifeStageNames[mod(step, len(lifeStageNames))], true
}

// PatternName maps a ten-god label to the month-order pattern name.
func PatternName(tenGod string) string {
	return patternNames[tenGod]
}

func elementDistance(from, to string) int {
	fi, ti := -1, -1
	for i, e := range Elements {
		if e == from {
			fi = i
		}
		if e == to {
			ti = i
		}
	}
	return mod(ti-fi, len(Elements))
}
