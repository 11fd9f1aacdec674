package ganzhi

import "testing"

func TestShiftWrapsBothWays(t *testing.T) {
	if got, _ := ShiftStem("癸", 1); got != "甲" {
		t.Fatalf("expected 甲 after 癸, got %q", got)
	}
	if got, _ := ShiftBranch("子", -1); got != "亥" {
		t.Fatalf("expected 亥 before 子, got %q", got)
	}
	if got, _ := ShiftBranch("戌", 3); got != "丑" {
		t.Fatalf("expected 丑, got %q", got)
	}
	if _, ok := ShiftStem("X", 1); ok {
		t.Fatalf("expected unknown stem to fail")
	}
}

func TestTenGodAgainstJia(t *testing.T) {
	want := []string{"比", "劫", "食", "伤", "才", "财", "杀", "官", "枭", "印"}
	for i, stem := range Stems {
		got, ok := TenGod("甲", stem)
		if !ok || got != want[i] {
			t.Fatalf("TenGod(甲, %s): expected %q, got %q", stem, want[i], got)
		}
	}
}

func TestTenGodYinDayMaster(t *testing.T) {
	cases := map[string]string{"乙": "比", "甲": "劫", "丁": "食", "丙": "伤", "壬": "印", "癸": "枭"}
	for stem, want := range cases {
		if got, _ := TenGod("乙", stem); got != want {
			t.Fatalf("TenGod(乙, %s): expected %q, got %q", stem, want, got)
		}
	}
}

func TestLifeStageDirection(t *testing.T) {
	cases := []struct {
		stem, branch, want string
	}{
		{"甲", "亥", "长"},
		{"甲", "卯", "帝"},
		{"甲", "未", "墓"},
		{"乙", "午", "长"},
		{"乙", "寅", "帝"},
		{"庚", "酉", "帝"},
		{"癸", "子", "建"},
		{"癸", "亥", "帝"},
	}
	for _, tc := range cases {
		got, ok := LifeStage(tc.stem, tc.branch)
		if !ok || got != tc.want {
			t.Fatalf("LifeStage(%s, %s): expected %q, got %q", tc.stem, tc.branch, tc.want, got)
		}
	}
}

func TestHiddenStemWeights(t *testing.T) {
	for _, b := range Branches {
		hs := HiddenStems(b)
		if len(hs) == 0 {
			t.Fatalf("branch %s has no hidden stems", b)
		}
		sum := 0
		for _, h := range hs {
			sum += h.Weight
		}
		if sum != 8 {
			t.Fatalf("branch %s weights sum to %d", b, sum)
		}
	}
}

func TestNaYinCoversCycle(t *testing.T) {
	for i := 0; i < 60; i++ {
		gz := Stems[i%10] + Branches[i%12]
		if NaYin(gz) == "" {
			t.Fatalf("missing na yin for %s", gz)
		}
	}
	if NaYin("甲子") != "海中金" || NaYin("癸亥") != "大海水" {
		t.Fatalf("unexpected na yin endpoints")
	}
	if NaYin("甲丑") != "" {
		t.Fatalf("expected no entry for invalid pair")
	}
}

func TestRelationsSymmetric(t *testing.T) {
	for _, b := range Branches {
		r, ok := RelationsOf(b)
		if !ok {
			t.Fatalf("missing relations for %s", b)
		}
		other, _ := RelationsOf(r.Chong)
		if other.Chong != b {
			t.Fatalf("chong not symmetric for %s", b)
		}
		other, _ = RelationsOf(r.Liuhe)
		if other.Liuhe != b {
			t.Fatalf("liuhe not symmetric for %s", b)
		}
	}
}

func TestAdviceOverlayDoesNotMutateBase(t *testing.T) {
	base := DefaultAdvice()
	if v, ok := base.Seasonal("甲", "寅"); !ok || v != "丙癸" {
		t.Fatalf("unexpected seasonal entry %q", v)
	}
	if _, ok := base.QuickReference("甲", "寅"); ok {
		t.Fatalf("expected empty quick reference")
	}

	merged := base.WithOverlay(AdviceOverlay{
		QuickReference: map[string]string{"甲寅": "text"},
		Pattern:        map[string]map[string]string{"木": {"寅": "pattern"}},
	})
	if v, _ := merged.QuickReference("甲", "寅"); v != "text" {
		t.Fatalf("overlay quick reference missing")
	}
	if v, _ := merged.Pattern("木", "寅"); v != "pattern" {
		t.Fatalf("overlay pattern missing")
	}
	if _, ok := base.QuickReference("甲", "寅"); ok {
		t.Fatalf("overlay leaked into base")
	}
}

func TestPatternName(t *testing.T) {
	if PatternName("官") != "正官格" || PatternName("比") != "建禄格" {
		t.Fatalf("unexpected pattern names")
	}
}
