package feedback

import (
	"context"

	"github.com/verte-zerg/tuimole/internal/model"
)

// Heuristic is an offline provider that judges accuracy directly.
type Heuristic struct{}

// Feedback implements game.Provider.
func (Heuristic) Feedback(ctx context.Context, perf model.Performance) (model.Verdict, error) {
	if err := ctx.Err(); err != nil {
		return model.Verdict{}, err
	}
	attempts := perf.Hits + perf.Misses
	switch {
	case attempts >= 5 && perf.Accuracy >= 80:
		return model.Verdict{Message: "Too easy for you. Speeding up!", Difficulty: model.DifficultyHard}, nil
	case attempts >= 3 && perf.Accuracy < 50:
		return model.Verdict{Message: "Take a breath. Slowing down.", Difficulty: model.DifficultyEasy}, nil
	default:
		return model.Verdict{Message: "Steady paws. Keep going.", Difficulty: model.DifficultyMedium}, nil
	}
}
