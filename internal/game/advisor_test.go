package game

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/verte-zerg/tuimole/internal/model"
)

type slowProvider struct {
	delay time.Duration
}

// Feedback sleeps without watching ctx.
func (p slowProvider) Feedback(context.Context, model.Performance) (model.Verdict, error) {
	time.Sleep(p.delay)
	return model.Verdict{Difficulty: model.DifficultyHard}, nil
}

type panicProvider struct{}

func (panicProvider) Feedback(context.Context, model.Performance) (model.Verdict, error) {
	panic("boom")
}

func TestAdvisorPassesVerdictThrough(t *testing.T) {
	p := &stubProvider{verdict: model.Verdict{Message: "nice", Difficulty: model.DifficultyEasy}}
	adv := NewAdvisor(p, time.Second).Consult(context.Background(), model.Performance{Score: 2})
	if adv.Fallback() || adv.Verdict != p.verdict {
		t.Fatalf("unexpected advice %+v", adv)
	}
}

func TestAdvisorFallbacks(t *testing.T) {
	cases := []struct {
		name    string
		advisor *Advisor
		check   func(error) bool
	}{
		{"nil advisor", nil, func(err error) bool { return errors.Is(err, ErrNoProvider) }},
		{"provider error", NewAdvisor(&stubProvider{err: errors.New("500")}, time.Second), nil},
		{"empty difficulty", NewAdvisor(&stubProvider{verdict: model.Verdict{Message: "hi"}}, time.Second), nil},
		{"panic", NewAdvisor(panicProvider{}, time.Second), nil},
		{"timeout", NewAdvisor(slowProvider{delay: 500 * time.Millisecond}, 20*time.Millisecond), func(err error) bool {
			return errors.Is(err, context.DeadlineExceeded)
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			adv := tc.advisor.Consult(context.Background(), model.Performance{})
			if !adv.Fallback() {
				t.Fatalf("expected fallback")
			}
			if adv.Verdict != FallbackVerdict() {
				t.Fatalf("expected fallback verdict, got %+v", adv.Verdict)
			}
			var perr *ProviderError
			if !errors.As(adv.Err, &perr) {
				t.Fatalf("expected ProviderError, got %T", adv.Err)
			}
			if tc.check != nil && !tc.check(adv.Err) {
				t.Fatalf("unexpected error %v", adv.Err)
			}
		})
	}
}

func TestAdvisorTimeoutReturnsPromptly(t *testing.T) {
	adv := NewAdvisor(slowProvider{delay: 2 * time.Second}, 30*time.Millisecond)
	start := time.Now()
	adv.Consult(context.Background(), model.Performance{})
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Fatalf("expected consult to give up near its deadline, took %v", elapsed)
	}
}

func TestAdvisorCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	adv := NewAdvisor(slowProvider{delay: time.Second}, time.Second).Consult(ctx, model.Performance{})
	if !adv.Fallback() || !errors.Is(adv.Err, context.Canceled) {
		t.Fatalf("expected cancellation fallback, got %+v", adv)
	}
}
