package zodiac

import (
	"errors"
	"reflect"
	"strings"
	"testing"
)

func TestForYear(t *testing.T) {
	cases := map[int]string{1900: "鼠", 1901: "牛", 1990: "马", 2024: "龙", 1899: "猪", 1888: "鼠"}
	for year, want := range cases {
		if got := ForYear(year); got != want {
			t.Fatalf("ForYear(%d): expected %s, got %s", year, want, got)
		}
	}
	for y := 1850; y < 2150; y++ {
		if ForYear(y) != ForYear(y+12) {
			t.Fatalf("period broken at %d", y)
		}
	}
}

func TestLookupRat(t *testing.T) {
	info, err := Lookup("鼠")
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if info.YearZhi != "子" {
		t.Fatalf("expected 子, got %s", info.YearZhi)
	}
	if !reflect.DeepEqual(info.Compatible.Sanhe, []string{"猴", "龙"}) {
		t.Fatalf("unexpected sanhe: %v", info.Compatible.Sanhe)
	}
	if !reflect.DeepEqual(info.Compatible.Liuhe, []string{"牛"}) {
		t.Fatalf("unexpected liuhe: %v", info.Compatible.Liuhe)
	}
	if !reflect.DeepEqual(info.Incompatible.Chong, []string{"马"}) {
		t.Fatalf("unexpected chong: %v", info.Incompatible.Chong)
	}
	if !reflect.DeepEqual(info.Incompatible.Po, []string{"鸡"}) {
		t.Fatalf("unexpected po: %v", info.Incompatible.Po)
	}
}

func TestClashAndSixHarmonySymmetric(t *testing.T) {
	for _, a := range Animals {
		info, _ := Lookup(a)
		other, _ := Lookup(info.Incompatible.Chong[0])
		if other.Incompatible.Chong[0] != a {
			t.Fatalf("clash not symmetric for %s", a)
		}
		other, _ = Lookup(info.Compatible.Liuhe[0])
		if other.Compatible.Liuhe[0] != a {
			t.Fatalf("six harmony not symmetric for %s", a)
		}
	}
}

func TestLookupInvalid(t *testing.T) {
	_, err := Lookup("恐龙")
	var invalid *InvalidAnimalError
	if !errors.As(err, &invalid) {
		t.Fatalf("expected InvalidAnimalError, got %v", err)
	}
	if !reflect.DeepEqual(invalid.Valid, Animals[:]) {
		t.Fatalf("unexpected valid list: %v", invalid.Valid)
	}
	text := FormatError(invalid)
	if !strings.HasPrefix(text, "错误：请输入正确的生肖") {
		t.Fatalf("unexpected error text: %q", text)
	}
}

func TestFormatListsRelations(t *testing.T) {
	info, _ := Lookup("虎")
	text := Format(info)
	for _, want := range []string{"你的生肖是：虎", "你的年支是：寅", "与你三合的生肖：马狗", "与你相冲的生肖：猴", "与你相破的生肖：猪"} {
		if !strings.Contains(text, want) {
			t.Fatalf("missing %q in:\n%s", want, text)
		}
	}
}
