package stats

import (
	"context"
	"io"

	"github.com/samber/lo"

	"github.com/verte-zerg/tuimole/internal/model"
)

// Source is the subset of the store a report reads from.
type Source interface {
	BestScore(ctx context.Context) (int, error)
	ListRounds(ctx context.Context, cfg model.StatsConfig) ([]model.RoundAggregate, error)
	ListVerdicts(ctx context.Context, roundIDs []int64) ([]model.VerdictRecord, error)
	DifficultyCounts(ctx context.Context, roundIDs []int64) (map[model.Difficulty]int, int, error)
}

// Report contains precomputed data for stats rendering.
type Report struct {
	Best        int
	Rounds      []model.RoundAggregate
	Verdicts    []model.VerdictRecord
	Mix         map[model.Difficulty]int
	Fallbacks   int
	TrendWindow int
}

// BuildReport loads and prepares data for stats rendering.
func BuildReport(ctx context.Context, src Source, cfg model.StatsConfig) (Report, error) {
	best, err := src.BestScore(ctx)
	if err != nil {
		return Report{}, err
	}
	rounds, err := src.ListRounds(ctx, cfg)
	if err != nil {
		return Report{}, err
	}
	ids := lo.Map(rounds, func(r model.RoundAggregate, _ int) int64 { return r.ID })
	verdicts, err := src.ListVerdicts(ctx, ids)
	if err != nil {
		return Report{}, err
	}
	mix, fallbacks, err := src.DifficultyCounts(ctx, ids)
	if err != nil {
		return Report{}, err
	}
	window := cfg.TrendWindow
	if window <= 0 {
		window = 5
	}
	return Report{
		Best:        best,
		Rounds:      rounds,
		Verdicts:    verdicts,
		Mix:         mix,
		Fallbacks:   fallbacks,
		TrendWindow: window,
	}, nil
}

// Render prints the whole report as plain text.
func (r Report) Render(w io.Writer, width int) error {
	if err := RenderSummary(w, r.Rounds, r.Best); err != nil {
		return err
	}
	if len(r.Rounds) == 0 {
		return nil
	}
	if err := RenderTrend(w, r.Rounds, r.TrendWindow, width); err != nil {
		return err
	}
	if err := RenderRounds(w, r.Rounds); err != nil {
		return err
	}
	return RenderDifficultyMix(w, r.Mix, r.Fallbacks)
}
