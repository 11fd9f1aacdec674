package render

import (
	"bytes"
	"strings"
	"testing"

	"github.com/verte-zerg/mingpan/internal/model"
)

func TestFormatTableAlignsWideRunes(t *testing.T) {
	headers := []string{"名", "值"}
	rows := [][]string{
		{"甲木", "5"},
		{"a", "12"},
	}
	lines := formatTable(headers, rows, map[int]bool{1: true})
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	want := []string{"名    值", "甲木   5", "a     12"}
	for i := range want {
		if lines[i] != want[i] {
			t.Fatalf("line %d = %q, want %q", i, lines[i], want[i])
		}
	}
}

func TestFormatTableEmpty(t *testing.T) {
	if lines := formatTable(nil, nil, nil); lines != nil {
		t.Fatalf("expected nil, got %v", lines)
	}
}

func sampleChart() *model.Chart {
	tiaohou := "丙癸"
	return &model.Chart{
		Pillars: []model.Pillar{
			{Label: "年柱", Gan: "庚", Zhi: "午", GanElement: "金", ZhiElement: "火", GanTenGod: "杀", NaYin: "路旁土", HiddenStems: []string{"丁", "己"}, ShenSha: []string{}},
			{Label: "月柱", Gan: "戊", Zhi: "寅", GanElement: "土", ZhiElement: "木", GanTenGod: "才", NaYin: "城头土", HiddenStems: []string{"甲", "丙", "戊"}, ShenSha: []string{"驿马"}},
			{Label: "日柱", Gan: "甲", Zhi: "子", GanElement: "木", ZhiElement: "水", GanTenGod: "比", NaYin: "海中金", HiddenStems: []string{"癸"}, ShenSha: []string{"桃花"}},
			{Label: "时柱", Gan: "丙", Zhi: "寅", GanElement: "火", ZhiElement: "木", GanTenGod: "食", NaYin: "炉中火", HiddenStems: []string{"甲", "丙", "戊"}, ShenSha: []string{}},
		},
		DayMaster:        "甲",
		DayMasterElement: "木",
		FiveElements:     model.ElementTally{"木": 15, "火": 14, "土": 10, "金": 5, "水": 8},
		Advice:           model.Advice{TiaoHou: &tiaohou, MonthPattern: "建禄格"},
		DaYun: []model.DecadePeriod{
			{Index: 0, GanZhi: "丁卯", TenGod: "伤", NaYin: "炉中火", StartYear: 1993, StartAge: 4, EndAge: 13},
		},
		StartYunDesc: "3年4月起运",
		Extras: model.Extras{
			KongWang: "戌亥",
			MingGong: "丁亥",
			TaiYuan:  "己巳",
			Strength: model.StrengthWeak,
			YongShen: []string{"水", "木"},
			JiShen:   []string{"金", "土"},
		},
	}
}

func TestPrinterChartPlain(t *testing.T) {
	t.Setenv("NO_COLOR", "")
	var buf bytes.Buffer
	if err := NewPrinter(&buf, false).Chart(sampleChart()); err != nil {
		t.Fatalf("Chart: %v", err)
	}
	out := buf.String()
	for _, want := range []string{
		"木15 火14 土10 金5 水8",
		"日主: 甲（木） 身弱",
		"喜用: 水、木  忌: 金、土",
		"胎元: 己巳（-）",
		"月令: 建禄格",
		"调候: 丙癸",
		"3年4月起运",
		"丁卯",
		"驿马",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "金不换") {
		t.Fatalf("nil advice entries should be omitted:\n%s", out)
	}
	if strings.Contains(out, "\x1b[") {
		t.Fatalf("plain output contains escape codes")
	}
}

func TestPrinterColor(t *testing.T) {
	t.Setenv("NO_COLOR", "")
	var buf bytes.Buffer
	if err := NewPrinter(&buf, true).Chart(sampleChart()); err != nil {
		t.Fatalf("Chart: %v", err)
	}
	if !strings.Contains(buf.String(), "\x1b[") {
		t.Fatalf("forced colour output has no escape codes")
	}

	t.Setenv("NO_COLOR", "1")
	buf.Reset()
	if err := NewPrinter(&buf, true).Chart(sampleChart()); err != nil {
		t.Fatalf("Chart: %v", err)
	}
	if strings.Contains(buf.String(), "\x1b[") {
		t.Fatalf("NO_COLOR output contains escape codes")
	}
}

func TestPrinterNilChart(t *testing.T) {
	var buf bytes.Buffer
	if err := NewPrinter(&buf, false).Chart(nil); err != nil {
		t.Fatalf("Chart: %v", err)
	}
	if got := strings.TrimSpace(buf.String()); got != "结构化八字生成失败" {
		t.Fatalf("unexpected output %q", got)
	}
}
