// Package stats contains statistics calculations and reporting.
package stats

import (
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/samber/lo"

	"github.com/verte-zerg/tuimole/internal/model"
)

// RenderRounds prints one row per round, most recent last.
func RenderRounds(w io.Writer, rounds []model.RoundAggregate) error {
	if len(rounds) == 0 {
		_, err := fmt.Fprintln(w, "No rounds found.")
		return err
	}
	if _, err := fmt.Fprintln(w, "Rounds"); err != nil {
		return err
	}
	headers := []string{"Ended", "Score", "Hits", "Misses", "Accuracy", "Final spawn (ms)"}
	rows := lo.Map(rounds, func(r model.RoundAggregate, _ int) []string {
		return []string{
			r.EndedAt.Local().Format("2006-01-02 15:04"),
			fmt.Sprintf("%d", r.Score),
			fmt.Sprintf("%d", r.Hits),
			fmt.Sprintf("%d", r.Misses),
			AccuracyLabel(r.Accuracy),
			fmt.Sprintf("%d", r.FinalSpawnMs),
		}
	})
	return writeTable(w, headers, rows, map[int]bool{1: true, 2: true, 3: true, 4: true, 5: true})
}

// RenderDifficultyMix prints how often each verdict was applied.
func RenderDifficultyMix(w io.Writer, counts map[model.Difficulty]int, fallbacks int) error {
	total := lo.Sum(lo.Values(counts))
	if total == 0 {
		_, err := fmt.Fprintln(w, "No advisor verdicts found.")
		return err
	}
	if _, err := fmt.Fprintln(w, "Advisor verdicts"); err != nil {
		return err
	}
	headers := []string{"Difficulty", "Count", "Share"}
	order := []model.Difficulty{model.DifficultyEasy, model.DifficultyMedium, model.DifficultyHard}
	for d := range counts {
		if !lo.Contains(order, d) {
			order = append(order, d)
		}
	}
	rows := make([][]string, 0, len(order)+1)
	for _, d := range order {
		n := counts[d]
		rows = append(rows, []string{string(d), fmt.Sprintf("%d", n), fmt.Sprintf("%.1f%%", float64(n)/float64(total)*100)})
	}
	rows = append(rows, []string{"(fallback)", fmt.Sprintf("%d", fallbacks), fmt.Sprintf("%.1f%%", float64(fallbacks)/float64(total)*100)})
	return writeTable(w, headers, rows, map[int]bool{1: true, 2: true})
}

func writeTable(w io.Writer, headers []string, rows [][]string, rightAlign map[int]bool) error {
	for _, line := range formatTable(headers, rows, rightAlign) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, "")
	return err
}

func formatTable(headers []string, rows [][]string, rightAlignCols map[int]bool) []string {
	colCount := len(headers)
	for _, row := range rows {
		colCount = max(colCount, len(row))
	}
	if colCount == 0 {
		return nil
	}

	widths := make([]int, colCount)
	for i, header := range headers {
		widths[i] = displayWidth(header)
	}
	for _, row := range rows {
		for i, cell := range row {
			widths[i] = max(widths[i], displayWidth(cell))
		}
	}

	lines := make([]string, 0, len(rows)+1)
	if len(headers) > 0 {
		lines = append(lines, formatRow(headers, widths, rightAlignCols))
	}
	for _, row := range rows {
		lines = append(lines, formatRow(row, widths, rightAlignCols))
	}
	return lines
}

func formatRow(row []string, widths []int, rightAlignCols map[int]bool) string {
	var b strings.Builder
	for i := 0; i < len(widths); i++ {
		cell := ""
		if i < len(row) {
			cell = row[i]
		}
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(padCell(cell, widths[i], rightAlignCols[i]))
	}
	return strings.TrimRight(b.String(), " ")
}

func padCell(value string, width int, rightAlign bool) string {
	valueWidth := displayWidth(value)
	if valueWidth >= width {
		return value
	}
	padding := width - valueWidth
	if rightAlign {
		return strings.Repeat(" ", padding) + value
	}
	return value + strings.Repeat(" ", padding)
}

func displayWidth(value string) int {
	return runewidth.StringWidth(value)
}
