package stats

import (
	"bytes"
	"strings"
	"testing"

	"github.com/verte-zerg/tuimole/internal/model"
)

func TestAccuracy(t *testing.T) {
	cases := []struct {
		hits, misses, want int
	}{
		{0, 0, 0},
		{0, 5, 0},
		{1, 0, 100},
		{2, 1, 67},
		{1, 2, 33},
		{1, 7, 13},
	}
	for _, tc := range cases {
		if got := Accuracy(tc.hits, tc.misses); got != tc.want {
			t.Fatalf("Accuracy(%d, %d): expected %d, got %d", tc.hits, tc.misses, tc.want, got)
		}
	}
}

func TestMovingAverage(t *testing.T) {
	got := MovingAverage([]float64{2, 4, 6, 8}, 2)
	want := []float64{2, 3, 5, 7}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
}

func TestSparkline(t *testing.T) {
	if got := Sparkline(nil); got != "" {
		t.Fatalf("expected empty sparkline, got %q", got)
	}
	if got := Sparkline([]float64{3, 3, 3}); got != "+++" {
		t.Fatalf("expected flat sparkline, got %q", got)
	}
	got := Sparkline([]float64{0, 50, 100})
	if len(got) != 3 || got[0] != ' ' || got[2] != '@' {
		t.Fatalf("unexpected sparkline %q", got)
	}
}

func TestSummarize(t *testing.T) {
	rounds := []model.RoundAggregate{
		{Score: 10, Hits: 10, Misses: 2, Accuracy: 83, FinalSpawnMs: 900},
		{Score: 20, Hits: 20, Misses: 0, Accuracy: 100, FinalSpawnMs: 700},
	}
	s := Summarize(rounds, 15)
	if s.Rounds != 2 || s.Best != 20 {
		t.Fatalf("unexpected summary %+v", s)
	}
	if s.AvgScore != 15 || s.AvgSpawnMs != 800 {
		t.Fatalf("unexpected averages %+v", s)
	}
	if s.TotalHits != 30 || s.TotalMisses != 2 {
		t.Fatalf("unexpected totals %+v", s)
	}
	if got := Summarize(nil, 7).Best; got != 7 {
		t.Fatalf("expected stored best for empty history, got %d", got)
	}
}

func TestRenderTrendTrimsToWidth(t *testing.T) {
	rounds := make([]model.RoundAggregate, 50)
	for i := range rounds {
		rounds[i] = model.RoundAggregate{Score: i, Accuracy: i % 100}
	}
	var buf bytes.Buffer
	if err := RenderTrend(&buf, rounds, 1, 30); err != nil {
		t.Fatalf("render: %v", err)
	}
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if len(line) > 30 {
			t.Fatalf("expected line within 30 columns, got %d: %q", len(line), line)
		}
	}
}
