// Package model defines shared data structures.
package model

import "fmt"

// Calendar selects how birth date components are interpreted.
type Calendar string

const (
	CalendarSolar Calendar = "solar"
	CalendarLunar Calendar = "lunar"
)

// Label returns the Chinese name used by the HTTP API and the legacy script.
func (c Calendar) Label() string {
	if c == CalendarSolar {
		return "公历"
	}
	return "农历"
}

// Gender selects the da-yun traversal direction.
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

// Label returns the Chinese name used by the HTTP API and the legacy script.
func (g Gender) Label() string {
	if g == GenderFemale {
		return "女"
	}
	return "男"
}

// BirthInput is a validated birth moment.
type BirthInput struct {
	Year     int
	Month    int
	Day      int
	Hour     int
	Calendar Calendar
	Gender   Gender
}

// Date formats the date components as YYYY-MM-DD.
func (b BirthInput) Date() string {
	return fmt.Sprintf("%04d-%02d-%02d", b.Year, b.Month, b.Day)
}

// Strength labels for the day master.
const (
	StrengthStrong        = "身强"
	StrengthWeak          = "身弱"
	StrengthLeaningStrong = "中和偏强"
	StrengthLeaningWeak   = "中和偏弱"
)

// Pillar is one stem-branch pair of the chart with its derived attributes.
// ZhiElement and ZhiTenGod describe the first hidden stem only; the full
// composition is in the Hidden* slices.
type Pillar struct {
	Label          string   `json:"label"`
	Gan            string   `json:"gan"`
	Zhi            string   `json:"zhi"`
	NaYin          string   `json:"na_yin"`
	ShenSha        []string `json:"shen_sha"`
	GanElement     string   `json:"gan_element"`
	ZhiElement     string   `json:"zhi_element,omitempty"`
	GanTenGod      string   `json:"gan_ten_god"`
	ZhiTenGod      string   `json:"zhi_ten_god"`
	HiddenStems    []string `json:"hidden_stems"`
	HiddenTenGods  []string `json:"hidden_ten_gods"`
	HiddenElements []string `json:"hidden_elements"`
	LifeStage      string   `json:"life_stage,omitempty"`
}

// ElementTally maps each of the five elements to its score.
type ElementTally map[string]int

// Total sums all element scores.
func (t ElementTally) Total() int {
	total := 0
	for _, v := range t {
		total += v
	}
	return total
}

// Advice holds the seasonal lookups. Nil fields mean no table entry.
type Advice struct {
	TiaoHou      *string `json:"tiao_hou"`
	JinBuHuan    *string `json:"jin_bu_huan"`
	GeJu         *string `json:"ge_ju"`
	MonthPattern string  `json:"month_pattern,omitempty"`
}

// DecadePeriod is one da-yun entry.
type DecadePeriod struct {
	Index     int    `json:"index"`
	GanZhi    string `json:"gan_zhi"`
	Gan       string `json:"gan"`
	Zhi       string `json:"zhi"`
	StartYear int    `json:"start_year"`
	StartAge  int    `json:"start_age"`
	EndAge    int    `json:"end_age"`
	TenGod    string `json:"ten_god"`
	NaYin     string `json:"na_yin"`
}

// Extras carries the secondary chart attributes.
type Extras struct {
	KongWang     string   `json:"kong_wang"`
	MingGong     string   `json:"ming_gong"`
	TaiYuan      string   `json:"tai_yuan"`
	TaiYuanNaYin string   `json:"tai_yuan_nayin"`
	Strength     string   `json:"strength"`
	YongShen     []string `json:"yong_shen"`
	JiShen       []string `json:"ji_shen"`
}

// Chart is the structured Four Pillars record.
type Chart struct {
	Pillars          []Pillar       `json:"pillars"`
	DayMaster        string         `json:"day_master"`
	DayMasterElement string         `json:"day_master_element"`
	FiveElements     ElementTally   `json:"five_elements"`
	Advice           Advice         `json:"advice"`
	DaYun            []DecadePeriod `json:"da_yun"`
	StartYunDesc     string         `json:"start_yun_desc"`
	Extras           Extras         `json:"extras"`
}

// Compatible lists the animals in harmony relations.
type Compatible struct {
	Sanhe  []string `json:"sanhe"`
	Liuhe  []string `json:"liuhe"`
	Sanhui []string `json:"sanhui"`
}

// Incompatible lists the animals in conflict relations.
type Incompatible struct {
	Chong   []string `json:"chong"`
	Xing    []string `json:"xing"`
	Beixing []string `json:"beixing"`
	Hai     []string `json:"hai"`
	Po      []string `json:"po"`
}

// ZodiacInfo is the compatibility report for one zodiac animal.
type ZodiacInfo struct {
	Shengxiao    string       `json:"shengxiao"`
	YearZhi      string       `json:"year_zhi"`
	Compatible   Compatible   `json:"compatible"`
	Incompatible Incompatible `json:"incompatible"`
}
