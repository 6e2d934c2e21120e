package stats

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/verte-zerg/tuimole/internal/model"
	"github.com/verte-zerg/tuimole/internal/store"
)

func TestBuildReport(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "tuimole.db")
	st, err := store.Open(dbPath)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		_ = st.Close()
	})

	ctx := context.Background()
	var ids []int64
	for i := 0; i < 3; i++ {
		start := time.Unix(0, 0).Add(time.Duration(i) * time.Minute)
		end := start.Add(30 * time.Second)
		round := model.RoundStats{
			RoundID:         "round-" + string(rune('a'+i)),
			StartedAt:       start,
			EndedAt:         end,
			Holes:           9,
			Duration:        30,
			Score:           10 + i,
			Hits:            10 + i,
			Misses:          2,
			Accuracy:        80,
			FinalSpawnMs:    900,
			AdvisorProvider: "heuristic",
		}
		verdicts := []model.VerdictRecord{
			{Seq: 1, At: start.Add(5 * time.Second), Difficulty: model.DifficultyHard, Message: "go", SpawnBefore: 1100, SpawnAfter: 1000},
			{Seq: 2, At: start.Add(10 * time.Second), Difficulty: model.DifficultyMedium, Message: "AI resting", Fallback: true, SpawnBefore: 1000, SpawnAfter: 1000},
		}
		id, err := st.InsertRound(ctx, round, verdicts)
		if err != nil {
			t.Fatalf("insert round: %v", err)
		}
		ids = append(ids, id)
	}
	if err := st.SetBestScore(ctx, 40); err != nil {
		t.Fatalf("set best: %v", err)
	}

	report, err := BuildReport(ctx, st, model.StatsConfig{Last: 2})
	if err != nil {
		t.Fatalf("build report: %v", err)
	}
	if len(report.Rounds) != 2 {
		t.Fatalf("expected 2 rounds, got %d", len(report.Rounds))
	}
	if report.Rounds[0].ID != ids[1] || report.Rounds[1].ID != ids[2] {
		t.Fatalf("unexpected round ids: %+v", report.Rounds)
	}
	if len(report.Verdicts) != 4 {
		t.Fatalf("expected 4 verdicts, got %d", len(report.Verdicts))
	}
	if report.Mix[model.DifficultyHard] != 2 || report.Mix[model.DifficultyMedium] != 2 {
		t.Fatalf("unexpected difficulty mix: %v", report.Mix)
	}
	if report.Fallbacks != 2 {
		t.Fatalf("expected 2 fallbacks, got %d", report.Fallbacks)
	}
	if report.Best != 40 {
		t.Fatalf("expected best 40, got %d", report.Best)
	}

	var buf bytes.Buffer
	if err := report.Render(&buf, 80); err != nil {
		t.Fatalf("render: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"Rounds: 2", "Best score: 40", "Trend (window 5)", "Advisor verdicts", "(fallback)"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected output to contain %q, got:\n%s", want, out)
		}
	}
}

func TestRenderEmptyReport(t *testing.T) {
	var buf bytes.Buffer
	if err := (Report{Best: 3}).Render(&buf, 80); err != nil {
		t.Fatalf("render: %v", err)
	}
	if got := buf.String(); got != "No rounds found. Best score: 3\n" {
		t.Fatalf("unexpected output %q", got)
	}
}
