// Package bazi assembles the structured Four Pillars chart.
package bazi

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/verte-zerg/mingpan/internal/calendar"
	"github.com/verte-zerg/mingpan/internal/ganzhi"
	"github.com/verte-zerg/mingpan/internal/model"
	"github.com/verte-zerg/mingpan/internal/shensha"
)

const (
	stemWeight = 5
	maxDaYun   = 10
)

var pillarLabels = [4]string{"年柱", "月柱", "日柱", "时柱"}

// Builder turns a birth input into a chart. It holds only read-only state
// and is safe for concurrent use.
type Builder struct {
	cal    calendar.Adapter
	advice *ganzhi.Advice
	policy StrengthPolicy
	logger *zap.Logger
}

// Option customises a Builder.
type Option func(*Builder)

// WithAdvice replaces the built-in advice tables.
func WithAdvice(a *ganzhi.Advice) Option {
	return func(b *Builder) { b.advice = a }
}

// WithStrengthPolicy replaces the default thresholds.
func WithStrengthPolicy(p StrengthPolicy) Option {
	return func(b *Builder) { b.policy = p }
}

// WithLogger sets the logger used for structuring failures.
func WithLogger(l *zap.Logger) Option {
	return func(b *Builder) { b.logger = l }
}

// NewBuilder returns a Builder backed by cal.
func NewBuilder(cal calendar.Adapter, opts ...Option) *Builder {
	b := &Builder{
		cal:    cal,
		advice: ganzhi.DefaultAdvice(),
		policy: DefaultStrengthPolicy(),
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Build returns the chart or nil when the input cannot be structured.
// Failures are logged, never returned.
func (b *Builder) Build(in model.BirthInput) *model.Chart {
	chart, err := b.build(in)
	if err != nil {
		b.logger.Warn("结构化八字生成失败",
			zap.String("date", in.Date()),
			zap.Int("hour", in.Hour),
			zap.String("calendar", string(in.Calendar)),
			zap.String("gender", string(in.Gender)),
			zap.Error(err),
		)
		return nil
	}
	return chart
}

func (b *Builder) build(in model.BirthInput) (chart *model.Chart, err error) {
	defer func() {
		if r := recover(); r != nil {
			chart, err = nil, fmt.Errorf("panic: %v", r)
		}
	}()

	m, err := b.cal.Resolve(in)
	if err != nil {
		return nil, err
	}
	stems, branches := m.Stems(), m.Branches()
	for i := range stems {
		if ganzhi.StemIndex(stems[i]) < 0 || ganzhi.BranchIndex(branches[i]) < 0 {
			return nil, fmt.Errorf("calendar returned %q%q for %s", stems[i], branches[i], pillarLabels[i])
		}
	}

	dm := stems[2]
	dmElement, _ := ganzhi.StemElement(dm)
	voids := m.DayXunKong()
	tags := shensha.Evaluate(shensha.Input{DayStem: dm, Branches: branches, VoidBranches: voids})

	chart = &model.Chart{
		DayMaster:        dm,
		DayMasterElement: dmElement,
		FiveElements:     tally(stems, branches),
	}
	for i := range stems {
		chart.Pillars = append(chart.Pillars, pillar(pillarLabels[i], dm, stems[i], branches[i], tags[i]))
	}

	chart.Advice = b.lookupAdvice(dm, dmElement, branches[1])

	yun, err := m.Yun(in.Gender)
	if err != nil {
		return nil, err
	}
	chart.DaYun = daYun(dm, yun.DaYun)
	chart.StartYunDesc = fmt.Sprintf("%d年%d月起运", yun.StartYear, yun.StartMonth)

	taiYuan := TaiYuan(stems[1], branches[1])
	strength, _ := b.policy.Classify(dmElement, chart.FiveElements)
	chart.Extras = model.Extras{
		KongWang:     voids,
		MingGong:     m.MingGong(),
		TaiYuan:      taiYuan,
		TaiYuanNaYin: ganzhi.NaYin(taiYuan),
		Strength:     strength.Label,
		YongShen:     nonNil(strength.Favorable),
		JiShen:       nonNil(strength.Unfavorable),
	}
	return chart, nil
}

func pillar(label, dm, stem, branch string, tags []string) model.Pillar {
	p := model.Pillar{
		Label:          label,
		Gan:            stem,
		Zhi:            branch,
		NaYin:          ganzhi.NaYin(stem + branch),
		ShenSha:        tags,
		HiddenStems:    []string{},
		HiddenTenGods:  []string{},
		HiddenElements: []string{},
	}
	p.GanElement, _ = ganzhi.StemElement(stem)
	p.GanTenGod, _ = ganzhi.TenGod(dm, stem)
	p.LifeStage, _ = ganzhi.LifeStage(dm, branch)

	for _, h := range ganzhi.HiddenStems(branch) {
		el, _ := ganzhi.StemElement(h.Stem)
		tg, _ := ganzhi.TenGod(dm, h.Stem)
		p.HiddenStems = append(p.HiddenStems, h.Stem)
		p.HiddenElements = append(p.HiddenElements, el)
		p.HiddenTenGods = append(p.HiddenTenGods, tg)
	}
	// The first hidden stem stands for the branch in the summary fields.
	if len(p.HiddenStems) > 0 {
		p.ZhiElement = p.HiddenElements[0]
		p.ZhiTenGod = p.HiddenTenGods[0]
	}
	return p
}

func tally(stems, branches [4]string) model.ElementTally {
	t := model.ElementTally{}
	for _, el := range ganzhi.Elements {
		t[el] = 0
	}
	for _, s := range stems {
		if el, ok := ganzhi.StemElement(s); ok {
			t[el] += stemWeight
		}
	}
	for _, br := range branches {
		for _, h := range ganzhi.HiddenStems(br) {
			if el, ok := ganzhi.StemElement(h.Stem); ok {
				t[el] += h.Weight
			}
		}
	}
	return t
}

func (b *Builder) lookupAdvice(dm, dmElement, monthBranch string) model.Advice {
	var a model.Advice
	if v, ok := b.advice.Seasonal(dm, monthBranch); ok {
		a.TiaoHou = &v
	}
	if v, ok := b.advice.QuickReference(dm, monthBranch); ok {
		a.JinBuHuan = &v
	}
	if v, ok := b.advice.Pattern(dmElement, monthBranch); ok {
		a.GeJu = &v
	}
	if main, ok := ganzhi.MainQi(monthBranch); ok {
		tg, _ := ganzhi.TenGod(dm, main)
		a.MonthPattern = ganzhi.PatternName(tg)
	}
	return a
}

func daYun(dm string, list []calendar.DaYun) []model.DecadePeriod {
	out := []model.DecadePeriod{}
	for i, d := range list {
		if i >= maxDaYun {
			break
		}
		p := model.DecadePeriod{
			Index:     i,
			GanZhi:    d.GanZhi,
			StartYear: d.StartYear,
			StartAge:  d.StartAge,
			EndAge:    d.EndAge,
			NaYin:     ganzhi.NaYin(d.GanZhi),
		}
		if g, z, ok := ganzhi.Split(d.GanZhi); ok {
			p.Gan, p.Zhi = g, z
			p.TenGod, _ = ganzhi.TenGod(dm, g)
		}
		out = append(out, p)
	}
	return out
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
