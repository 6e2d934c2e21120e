package feedback

import (
	"context"
	"time"

	"golang.org/x/time/rate"

	"github.com/verte-zerg/tuimole/internal/game"
	"github.com/verte-zerg/tuimole/internal/model"
)

// Limited caps how often the wrapped provider is called. Calls over budget
// fail fast with ErrRateLimited instead of waiting.
type Limited struct {
	next game.Provider
	lim  *rate.Limiter
}

// NewLimited wraps next so it is called at most once per interval. A
// non-positive interval disables the limit and returns next unchanged.
func NewLimited(next game.Provider, interval time.Duration) game.Provider {
	if interval <= 0 {
		return next
	}
	return &Limited{next: next, lim: rate.NewLimiter(rate.Every(interval), 1)}
}

// Feedback implements game.Provider.
func (l *Limited) Feedback(ctx context.Context, perf model.Performance) (model.Verdict, error) {
	if !l.lim.Allow() {
		return model.Verdict{}, ErrRateLimited
	}
	return l.next.Feedback(ctx, perf)
}
