package tui

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

type cell struct {
	s     string
	width int
	space bool
	wide  bool
}

func cellsOf(line string) []cell {
	out := make([]cell, 0, len(line))
	for _, r := range line {
		w := runewidth.RuneWidth(r)
		out = append(out, cell{
			s:     string(r),
			width: w,
			space: r == ' ',
			wide:  w > 1,
		})
	}
	return out
}

// wrapText wraps each line of text to width cells. Latin words break at
// spaces; wide runes may break anywhere.
func wrapText(text string, width int) string {
	if width <= 0 {
		return text
	}
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = wrapCells(cellsOf(line), width)
	}
	return strings.Join(lines, "\n")
}

func wrapCells(cells []cell, width int) string {
	var out strings.Builder
	line := make([]cell, 0, len(cells))
	lineWidth := 0

	for i := 0; i < len(cells); {
		item := cells[i]
		if lineWidth+item.width > width && len(line) > 0 {
			if item.space || item.wide {
				out.WriteString(renderCells(line))
				out.WriteRune('\n')
				line = line[:0]
				lineWidth = 0
				if item.space {
					i++
				}
				continue
			}
			if cut, resume := lastBreak(line); cut > 0 {
				out.WriteString(renderCells(line[:cut]))
				out.WriteRune('\n')
				line = append([]cell{}, line[resume:]...)
			} else {
				out.WriteString(renderCells(line))
				out.WriteRune('\n')
				line = line[:0]
			}
			lineWidth = lineWidthOf(line)
			continue
		}
		line = append(line, item)
		lineWidth += item.width
		i++
	}
	out.WriteString(renderCells(line))
	return out.String()
}

// lastBreak finds where line can be split: before its last wide rune, or at
// its last space, which is dropped. cut is 0 when there is no break.
func lastBreak(line []cell) (cut, resume int) {
	for i := len(line) - 1; i > 0; i-- {
		switch {
		case line[i].space:
			return i, i + 1
		case line[i].wide:
			return i, i
		}
	}
	return 0, 0
}

func renderCells(line []cell) string {
	var b strings.Builder
	for _, c := range line {
		b.WriteString(c.s)
	}
	return b.String()
}

func lineWidthOf(line []cell) int {
	total := 0
	for _, c := range line {
		total += c.width
	}
	return total
}
