package ganzhi

// Advice holds the seasonal reference tables keyed by day stem and month
// branch. Quick-reference and pattern text ship empty and are filled from
// an overlay file.
type Advice struct {
	seasonal map[string]string
	quickRef map[string]string
	patterns map[string]map[string]string
}

// AdviceOverlay is the on-disk shape of extra advice text.
type AdviceOverlay struct {
	Seasonal       map[string]string            `toml:"seasonal"`
	QuickReference map[string]string            `toml:"quick_reference"`
	Pattern        map[string]map[string]string `toml:"pattern"`
}

// DefaultAdvice returns the built-in tables.
func DefaultAdvice() *Advice {
	a := &Advice{
		seasonal: make(map[string]string, len(seasonal)),
		quickRef: map[string]string{},
		patterns: map[string]map[string]string{},
	}
	for k, v := range seasonal {
		a.seasonal[k] = v
	}
	return a
}

// WithOverlay returns a copy of a with the overlay entries added on top.
func (a *Advice) WithOverlay(o AdviceOverlay) *Advice {
	out := &Advice{
		seasonal: copyStrings(a.seasonal),
		quickRef: copyStrings(a.quickRef),
		patterns: make(map[string]map[string]string, len(a.patterns)),
	}
	for el, m := range a.patterns {
		out.patterns[el] = copyStrings(m)
	}
	for k, v := range o.Seasonal {
		out.seasonal[k] = v
	}
	for k, v := range o.QuickReference {
		out.quickRef[k] = v
	}
	for el, m := range o.Pattern {
		if out.patterns[el] == nil {
			out.patterns[el] = map[string]string{}
		}
		for k, v := range m {
			out.patterns[el][k] = v
		}
	}
	return out
}

// Seasonal looks up the tiaohou entry for day stem and month branch.
func (a *Advice) Seasonal(dm, monthBranch string) (string, bool) {
	v, ok := a.seasonal[dm+monthBranch]
	return v, ok
}

// QuickReference looks up the jinbuhuan entry for day stem and month branch.
func (a *Advice) QuickReference(dm, monthBranch string) (string, bool) {
	v, ok := a.quickRef[dm+monthBranch]
	return v, ok
}

// Pattern looks up the pattern text for the day master element and month branch.
func (a *Advice) Pattern(element, monthBranch string) (string, bool) {
	m, ok := a.patterns[element]
	if !ok {
		return "", false
	}
	v, ok := m[monthBranch]
	return v, ok
}

func copyStrings(m map[string]string) map[string]string {
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
