// Package calendar converts a birth moment into its eight characters.
//
// Date arithmetic (solar terms, lunar months, decade start) is delegated to
// lunar-go; this package only reshapes its results.
package calendar

import (
	"errors"
	"fmt"
	"time"

	lunar "github.com/6tail/lunar-go/calendar"

	"github.com/verte-zerg/mingpan/internal/model"
)

// ErrInvalidDate is returned for dates the calendar cannot place.
var ErrInvalidDate = errors.New("invalid date")

// Adapter resolves a birth input into a Moment.
type Adapter interface {
	Resolve(in model.BirthInput) (Moment, error)
}

// Moment exposes the eight characters of one birth moment.
// Arrays are ordered year, month, day, hour.
type Moment interface {
	Stems() [4]string
	Branches() [4]string
	DayXunKong() string
	MingGong() string
	Yun(g model.Gender) (Yun, error)
}

// Yun is the decade-luck schedule.
type Yun struct {
	StartYear  int
	StartMonth int
	StartDay   int
	DaYun      []DaYun
}

// DaYun is one entry as reported by the calendar. GanZhi is empty for the
// pre-luck childhood span.
type DaYun struct {
	Index     int
	GanZhi    string
	StartYear int
	EndYear   int
	StartAge  int
	EndAge    int
}

// Lunar is the Adapter backed by lunar-go.
type Lunar struct{}

// NewLunar returns the default adapter.
func NewLunar() Lunar {
	return Lunar{}
}

// Resolve implements Adapter.
func (Lunar) Resolve(in model.BirthInput) (m Moment, err error) {
	if in.Hour < 0 || in.Hour > 23 {
		return nil, fmt.Errorf("%w: hour %d", ErrInvalidDate, in.Hour)
	}
	defer func() {
		if r := recover(); r != nil {
			m, err = nil, fmt.Errorf("%w: %v", ErrInvalidDate, r)
		}
	}()

	var l *lunar.Lunar
	switch in.Calendar {
	case model.CalendarSolar:
		if !solarDateExists(in.Year, in.Month, in.Day) {
			return nil, fmt.Errorf("%w: %s", ErrInvalidDate, in.Date())
		}
		l = lunar.NewSolar(in.Year, in.Month, in.Day, in.Hour, 0, 0).GetLunar()
	default:
		if in.Month < 1 || in.Month > 12 || in.Day < 1 || in.Day > 30 {
			return nil, fmt.Errorf("%w: %s", ErrInvalidDate, in.Date())
		}
		l = lunar.NewLunar(in.Year, in.Month, in.Day, in.Hour, 0, 0)
	}
	if l == nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidDate, in.Date())
	}
	return &moment{ec: l.GetEightChar()}, nil
}

func solarDateExists(y, m, d int) bool {
	t := time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
	return t.Year() == y && int(t.Month()) == m && t.Day() == d
}

type moment struct {
	ec *lunar.EightChar
}

func (m *moment) Stems() [4]string {
	return [4]string{m.ec.GetYearGan(), m.ec.GetMonthGan(), m.ec.GetDayGan(), m.ec.GetTimeGan()}
}

func (m *moment) Branches() [4]string {
	return [4]string{m.ec.GetYearZhi(), m.ec.GetMonthZhi(), m.ec.GetDayZhi(), m.ec.GetTimeZhi()}
}

func (m *moment) DayXunKong() string {
	return m.ec.GetDayXunKong()
}

func (m *moment) MingGong() string {
	return m.ec.GetMingGong()
}

func (m *moment) Yun(g model.Gender) (y Yun, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("decade luck: %v", r)
		}
	}()
	code := 1
	if g == model.GenderFemale {
		code = 0
	}
	yun := m.ec.GetYun(code)
	y = Yun{
		StartYear:  yun.GetStartYear(),
		StartMonth: yun.GetStartMonth(),
		StartDay:   yun.GetStartDay(),
	}
	for _, d := range yun.GetDaYun() {
		y.DaYun = append(y.DaYun, DaYun{
			Index:     d.GetIndex(),
			GanZhi:    d.GetGanZhi(),
			StartYear: d.GetStartYear(),
			EndYear:   d.GetEndYear(),
			StartAge:  d.GetStartAge(),
			EndAge:    d.GetEndAge(),
		})
	}
	return y, nil
}
