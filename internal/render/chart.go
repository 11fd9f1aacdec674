package render

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"golang.org/x/term"

	"github.com/verte-zerg/mingpan/internal/ganzhi"
	"github.com/verte-zerg/mingpan/internal/model"
)

const placeholder = "-"

var elementColors = map[string]lipgloss.Color{
	ganzhi.Wood:  lipgloss.Color("#52C41A"),
	ganzhi.Fire:  lipgloss.Color("#FF4D4F"),
	ganzhi.Earth: lipgloss.Color("#C89A3A"),
	ganzhi.Metal: lipgloss.Color("#F0F0F0"),
	ganzhi.Water: lipgloss.Color("#1890FF"),
}

// Printer writes charts, coloured when the destination allows it.
type Printer struct {
	w        io.Writer
	renderer *lipgloss.Renderer
	color    bool
}

// NewPrinter colours output when w is a terminal, or always when force is
// set. NO_COLOR disables colour in both cases.
func NewPrinter(w io.Writer, force bool) *Printer {
	p := &Printer{w: w, color: shouldUseColor(w, force)}
	p.renderer = lipgloss.NewRenderer(w)
	if p.color {
		p.renderer.SetColorProfile(termenv.ANSI256)
	} else {
		p.renderer.SetColorProfile(termenv.Ascii)
	}
	return p
}

func (p *Printer) styled(color lipgloss.Color, bold bool, s string) string {
	if !p.color {
		return s
	}
	return p.renderer.NewStyle().Foreground(color).Bold(bold).Render(s)
}

func (p *Printer) element(el, s string) string {
	c, ok := elementColors[el]
	if !ok {
		return s
	}
	return p.styled(c, false, s)
}

func (p *Printer) heading(s string) string {
	return p.styled(lipgloss.Color("#C89A3A"), true, s)
}

// Chart prints the four pillars, the element tally, the derived extras and
// the decade list.
func (p *Printer) Chart(c *model.Chart) error {
	if c == nil {
		_, err := fmt.Fprintln(p.w, "结构化八字生成失败")
		return err
	}
	var b strings.Builder

	b.WriteString(p.heading("四柱") + "\n")
	for _, line := range formatTable(pillarTable(c)) {
		b.WriteString(line + "\n")
	}

	b.WriteString("\n" + p.heading("五行") + "\n")
	parts := make([]string, 0, len(ganzhi.Elements))
	for _, el := range ganzhi.Elements {
		parts = append(parts, p.element(el, el+strconv.Itoa(c.FiveElements[el])))
	}
	b.WriteString(strings.Join(parts, " ") + "\n")

	b.WriteString("\n" + p.heading("命局") + "\n")
	x := c.Extras
	fmt.Fprintf(&b, "日主: %s（%s） %s\n", p.element(c.DayMasterElement, c.DayMaster), c.DayMasterElement, x.Strength)
	fmt.Fprintf(&b, "喜用: %s  忌: %s\n", p.elements(x.YongShen), p.elements(x.JiShen))
	fmt.Fprintf(&b, "空亡: %s  命宫: %s  胎元: %s（%s）\n", orDash(x.KongWang), orDash(x.MingGong), x.TaiYuan, orDash(x.TaiYuanNaYin))
	if c.Advice.MonthPattern != "" {
		fmt.Fprintf(&b, "月令: %s\n", c.Advice.MonthPattern)
	}
	for _, a := range []struct {
		label string
		text  *string
	}{
		{"调候", c.Advice.TiaoHou},
		{"金不换", c.Advice.JinBuHuan},
		{"格局", c.Advice.GeJu},
	} {
		if a.text != nil {
			fmt.Fprintf(&b, "%s: %s\n", a.label, *a.text)
		}
	}

	if len(c.DaYun) > 0 {
		b.WriteString("\n" + p.heading("大运") + "  " + c.StartYunDesc + "\n")
		for _, line := range formatTable(daYunTable(c.DaYun)) {
			b.WriteString(line + "\n")
		}
	}

	_, err := io.WriteString(p.w, b.String())
	return err
}

func (p *Printer) elements(els []string) string {
	if len(els) == 0 {
		return placeholder
	}
	out := make([]string, len(els))
	for i, el := range els {
		out[i] = p.element(el, el)
	}
	return strings.Join(out, "、")
}

func pillarTable(c *model.Chart) ([]string, [][]string, map[int]bool) {
	headers := []string{""}
	rows := [][]string{{"天干"}, {"地支"}, {"十神"}, {"藏干"}, {"藏干十神"}, {"纳音"}, {"长生"}, {"神煞"}}
	for _, pl := range c.Pillars {
		headers = append(headers, pl.Label)
		cells := []string{
			pl.Gan + pl.GanElement,
			pl.Zhi + pl.ZhiElement,
			pl.GanTenGod,
			strings.Join(pl.HiddenStems, " "),
			strings.Join(pl.HiddenTenGods, " "),
			pl.NaYin,
			pl.LifeStage,
			strings.Join(pl.ShenSha, " "),
		}
		for i, cell := range cells {
			rows[i] = append(rows[i], orDash(cell))
		}
	}
	return headers, rows, nil
}

func daYunTable(periods []model.DecadePeriod) ([]string, [][]string, map[int]bool) {
	headers := []string{"步", "干支", "十神", "纳音", "起始年", "年龄"}
	rows := make([][]string, 0, len(periods))
	for _, d := range periods {
		rows = append(rows, []string{
			strconv.Itoa(d.Index),
			orDash(d.GanZhi),
			orDash(d.TenGod),
			orDash(d.NaYin),
			strconv.Itoa(d.StartYear),
			fmt.Sprintf("%d-%d", d.StartAge, d.EndAge),
		})
	}
	return headers, rows, map[int]bool{0: true, 4: true, 5: true}
}

func orDash(s string) string {
	if s == "" {
		return placeholder
	}
	return s
}

func shouldUseColor(w io.Writer, force bool) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	if force {
		return true
	}
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(file.Fd()))
}
