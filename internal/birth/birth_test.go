package birth

import (
	"errors"
	"testing"

	"github.com/verte-zerg/mingpan/internal/model"
)

func TestParseDefaults(t *testing.T) {
	in, err := Parse(Raw{Date: "1990-01-01"})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	want := model.BirthInput{Year: 1990, Month: 1, Day: 1, Hour: 8, Calendar: model.CalendarLunar, Gender: model.GenderMale}
	if in != want {
		t.Fatalf("expected %+v, got %+v", want, in)
	}
}

func TestParseExplicit(t *testing.T) {
	in, err := Parse(Raw{Date: "2000-2-29", Hour: "23", Gender: "女", Calendar: "公历"})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if in.Hour != 23 || in.Gender != model.GenderFemale || in.Calendar != model.CalendarSolar || in.Month != 2 {
		t.Fatalf("unexpected input %+v", in)
	}
}

func TestParseErrors(t *testing.T) {
	cases := []struct {
		raw  Raw
		msg  string
		name string
	}{
		{Raw{Date: "1990/01/01"}, MsgDate, "slashes"},
		{Raw{Date: "1899-12-31"}, MsgDate, "too early"},
		{Raw{Date: "2101-01-01"}, MsgDate, "too late"},
		{Raw{Date: "1990-13-01"}, MsgDate, "month"},
		{Raw{Date: "1990-01-32"}, MsgDate, "day"},
		{Raw{Date: "1990-01-01", Hour: "24"}, MsgHour, "hour high"},
		{Raw{Date: "1990-01-01", Hour: "8.5"}, MsgHour, "hour fraction"},
		{Raw{Date: "1990-01-01", Gender: "x"}, MsgGender, "gender"},
		{Raw{Date: "1990-01-01", Calendar: "阴历"}, MsgCalendar, "calendar"},
		{Raw{Date: "bad", Hour: "99"}, MsgDate, "date checked first"},
	}
	for _, tc := range cases {
		_, err := Parse(tc.raw)
		var verr *ValidationError
		if !errors.As(err, &verr) {
			t.Fatalf("%s: expected ValidationError, got %v", tc.name, err)
		}
		if verr.Message != tc.msg {
			t.Fatalf("%s: expected %q, got %q", tc.name, tc.msg, verr.Message)
		}
	}
}
