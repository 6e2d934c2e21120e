package tui

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

const (
	cellWidth  = 9
	moleGlyph  = "(•ᴥ•)"
	holeGlyph  = "___"
	hitGlyph   = "*bonk*"
	missGlyph  = "x"
	frozenMark = "(-ᴥ-)"
)

// boardColumns returns how many cells go on each row.
func boardColumns(holes int) int {
	if holes <= 0 {
		return 1
	}
	return int(math.Ceil(math.Sqrt(float64(holes))))
}

func (m *Model) renderBoard() string {
	cols := boardColumns(m.holes)
	var rows []string
	for start := 0; start < m.holes; start += cols {
		end := min(start+cols, m.holes)
		cells := make([]string, 0, end-start)
		for i := start; i < end; i++ {
			cells = append(cells, m.renderCell(i))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	return lipgloss.JoinVertical(lipgloss.Center, rows...)
}

func (m *Model) renderCell(i int) string {
	style := cellStyle
	glyph := holeGlyph
	switch {
	case i == m.active:
		style = activeStyle
		glyph = moleStyle.Render(center(moleGlyph, cellWidth))
	case i == m.frozen:
		style = frozenStyle
		glyph = center(frozenMark, cellWidth)
	case m.last != nil && m.last.target == i && m.last.hit:
		style = hitStyle
		glyph = center(hitGlyph, cellWidth)
	case m.last != nil && m.last.target == i:
		style = missStyle
		glyph = center(missGlyph, cellWidth)
	default:
		glyph = dimStyle.Render(center(glyph, cellWidth))
	}
	label := ""
	if i < len(m.keys.Holes) {
		label = m.keys.Holes[i].Help().Key
	}
	body := lipgloss.JoinVertical(lipgloss.Center, glyph, dimStyle.Render(center(label, cellWidth)))
	return style.Render(body)
}

// center pads s with spaces to width display columns.
func center(s string, width int) string {
	w := runewidth.StringWidth(s)
	if w >= width {
		return s
	}
	left := (width - w) / 2
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", width-w-left)
}
