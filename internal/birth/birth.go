// Package birth validates raw birth parameters from the HTTP API and CLI.
package birth

import (
	"strconv"
	"strings"

	"github.com/verte-zerg/mingpan/internal/model"
)

// Defaults applied to empty fields.
const (
	DefaultHour     = "8"
	DefaultGender   = "男"
	DefaultCalendar = "农历"
)

// Validation messages.
const (
	MsgDate     = "日期格式不正确，请使用 YYYY-MM-DD 格式"
	MsgHour     = "时辰格式不正确，请使用 0-23 的整数"
	MsgGender   = "性别必须是 '男' 或 '女'"
	MsgCalendar = "历法类型必须是 '公历' 或 '农历'"
)

// ValidationError is an invalid-input error. Message is user facing.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Raw holds the birth fields as received.
type Raw struct {
	Date     string
	Hour     string
	Gender   string
	Calendar string
}

// Parse validates raw and returns the normalized input. Checks run in the
// order date, hour, gender, calendar and stop at the first failure.
func Parse(raw Raw) (model.BirthInput, error) {
	var in model.BirthInput

	y, m, d, ok := parseDate(raw.Date)
	if !ok {
		return in, &ValidationError{Field: "birth_date", Message: MsgDate}
	}
	in.Year, in.Month, in.Day = y, m, d

	hour := strings.TrimSpace(raw.Hour)
	if hour == "" {
		hour = DefaultHour
	}
	h, err := strconv.Atoi(hour)
	if err != nil || h < 0 || h > 23 {
		return in, &ValidationError{Field: "birth_time", Message: MsgHour}
	}
	in.Hour = h

	g, ok := ParseGender(raw.Gender)
	if !ok {
		return in, &ValidationError{Field: "gender", Message: MsgGender}
	}
	in.Gender = g

	c, ok := ParseCalendar(raw.Calendar)
	if !ok {
		return in, &ValidationError{Field: "calendar_type", Message: MsgCalendar}
	}
	in.Calendar = c
	return in, nil
}

// ParseGender accepts 男/女 or male/female. Empty means male.
func ParseGender(s string) (model.Gender, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "男", "male", "m":
		return model.GenderMale, true
	case "女", "female", "f":
		return model.GenderFemale, true
	}
	return "", false
}

// ParseCalendar accepts 公历/农历 or solar/lunar. Empty means lunar.
func ParseCalendar(s string) (model.Calendar, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "农历", "lunar":
		return model.CalendarLunar, true
	case "公历", "solar":
		return model.CalendarSolar, true
	}
	return "", false
}

func parseDate(s string) (int, int, int, bool) {
	parts := strings.Split(strings.TrimSpace(s), "-")
	if len(parts) != 3 {
		return 0, 0, 0, false
	}
	var vals [3]int
	for i, p := range parts {
		v, err := strconv.Atoi(p)
		if err != nil {
			return 0, 0, 0, false
		}
		vals[i] = v
	}
	y, m, d := vals[0], vals[1], vals[2]
	if y < 1900 || y > 2100 || m < 1 || m > 12 || d < 1 || d > 31 {
		return 0, 0, 0, false
	}
	return y, m, d, true
}
