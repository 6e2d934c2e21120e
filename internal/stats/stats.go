// Package stats contains statistics calculations and reporting.
package stats

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/samber/lo"

	"github.com/verte-zerg/tuimole/internal/model"
)

const sparkChars = " .:-=+*#%@"

// Accuracy returns hits as a rounded percentage of all attempts, or 0 when
// nothing has been attempted.
func Accuracy(hits, misses int) int {
	total := hits + misses
	if total <= 0 || hits <= 0 {
		return 0
	}
	acc := int(math.Round(float64(hits) / float64(total) * 100))
	return min(max(acc, 0), 100)
}

// AccuracyLabel formats an accuracy percentage for display.
func AccuracyLabel(acc int) string {
	return fmt.Sprintf("%d%%", acc)
}

// MovingAverage computes a rolling mean over the provided window size.
func MovingAverage(values []float64, window int) []float64 {
	if window <= 1 || len(values) == 0 {
		out := make([]float64, len(values))
		copy(out, values)
		return out
	}
	out := make([]float64, len(values))
	var sum float64
	for i := 0; i < len(values); i++ {
		sum += values[i]
		if i >= window {
			sum -= values[i-window]
		}
		den := float64(i + 1)
		if i >= window {
			den = float64(window)
		}
		out[i] = sum / den
	}
	return out
}

// Sparkline renders a single-line ASCII sparkline for the values.
func Sparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}
	minVal := lo.Min(values)
	maxVal := lo.Max(values)
	if math.Abs(maxVal-minVal) < 1e-9 {
		return strings.Repeat(string(sparkChars[len(sparkChars)/2]), len(values))
	}
	var b strings.Builder
	for _, v := range values {
		pos := (v - minVal) / (maxVal - minVal)
		idx := int(math.Round(pos * float64(len(sparkChars)-1)))
		idx = min(max(idx, 0), len(sparkChars)-1)
		b.WriteByte(sparkChars[idx])
	}
	return b.String()
}

// Summary holds headline numbers across rounds.
type Summary struct {
	Rounds      int
	Best        int
	AvgScore    float64
	AvgAccuracy float64
	TotalHits   int
	TotalMisses int
	AvgSpawnMs  float64
}

// Summarize computes headline numbers. best is the stored best score, which
// may be higher than any listed round when the history has been filtered.
func Summarize(rounds []model.RoundAggregate, best int) Summary {
	s := Summary{Rounds: len(rounds), Best: best}
	if len(rounds) == 0 {
		return s
	}
	count := float64(len(rounds))
	s.AvgScore = float64(lo.SumBy(rounds, func(r model.RoundAggregate) int { return r.Score })) / count
	s.AvgAccuracy = float64(lo.SumBy(rounds, func(r model.RoundAggregate) int { return r.Accuracy })) / count
	s.AvgSpawnMs = float64(lo.SumBy(rounds, func(r model.RoundAggregate) int { return r.FinalSpawnMs })) / count
	s.TotalHits = lo.SumBy(rounds, func(r model.RoundAggregate) int { return r.Hits })
	s.TotalMisses = lo.SumBy(rounds, func(r model.RoundAggregate) int { return r.Misses })
	top := lo.MaxBy(rounds, func(a, b model.RoundAggregate) bool { return a.Score > b.Score })
	s.Best = max(s.Best, top.Score)
	return s
}

// RenderSummary prints a summary for rounds.
func RenderSummary(w io.Writer, rounds []model.RoundAggregate, best int) error {
	if len(rounds) == 0 {
		_, err := fmt.Fprintf(w, "No rounds found. Best score: %d\n", best)
		return err
	}
	s := Summarize(rounds, best)
	lines := []string{
		"Summary",
		fmt.Sprintf("Rounds: %d", s.Rounds),
		fmt.Sprintf("Best score: %d", s.Best),
		fmt.Sprintf("Avg score: %.2f", s.AvgScore),
		fmt.Sprintf("Avg accuracy: %.2f%%", s.AvgAccuracy),
		fmt.Sprintf("Hits/Misses: %d/%d (%s)", s.TotalHits, s.TotalMisses, AccuracyLabel(Accuracy(s.TotalHits, s.TotalMisses))),
		fmt.Sprintf("Avg final spawn: %.0f ms", s.AvgSpawnMs),
		"",
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// RenderTrend prints score and accuracy sparklines smoothed over window,
// keeping the most recent rounds that fit in width.
func RenderTrend(w io.Writer, rounds []model.RoundAggregate, window, width int) error {
	if len(rounds) == 0 {
		return nil
	}
	scores := lo.Map(rounds, func(r model.RoundAggregate, _ int) float64 { return float64(r.Score) })
	accs := lo.Map(rounds, func(r model.RoundAggregate, _ int) float64 { return float64(r.Accuracy) })
	scores = MovingAverage(scores, window)
	accs = MovingAverage(accs, window)

	const label = "Accuracy "
	room := width - len(label) - 2
	if room < minTrendWidth {
		room = minTrendWidth
	}
	if len(scores) > room {
		scores = scores[len(scores)-room:]
		accs = accs[len(accs)-room:]
	}
	lines := []string{
		fmt.Sprintf("Trend (window %d)", window),
		fmt.Sprintf("%-9s|%s|", "Score", Sparkline(scores)),
		fmt.Sprintf("%-9s|%s|", "Accuracy", Sparkline(accs)),
		"",
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}
