package game

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/verte-zerg/tuimole/internal/model"
)

// ErrNoProvider is reported when the advisor has nothing to consult.
var ErrNoProvider = errors.New("no feedback provider configured")

// Provider returns difficulty feedback for a performance bundle.
type Provider interface {
	Feedback(ctx context.Context, perf model.Performance) (model.Verdict, error)
}

// ProviderError wraps a failed consultation.
type ProviderError struct {
	Op  string
	Err error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("feedback %s: %v", e.Op, e.Err)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// Advice is the outcome of one consultation. When Err is set, Verdict holds
// the fallback verdict.
type Advice struct {
	Verdict model.Verdict
	Err     error
}

// Fallback reports whether the verdict was substituted.
func (a Advice) Fallback() bool {
	return a.Err != nil
}

// FallbackVerdict is used whenever the provider fails.
func FallbackVerdict() model.Verdict {
	return model.Verdict{Message: FallbackMessage, Difficulty: model.DifficultyMedium}
}

func fallbackAdvice(op string, err error) Advice {
	return Advice{Verdict: FallbackVerdict(), Err: &ProviderError{Op: op, Err: err}}
}

// Advisor consults a Provider with an enforced deadline.
type Advisor struct {
	provider Provider
	timeout  time.Duration
}

// NewAdvisor constructs an Advisor. A non-positive timeout uses DefaultAdvisorWait.
func NewAdvisor(provider Provider, timeout time.Duration) *Advisor {
	if timeout <= 0 {
		timeout = DefaultAdvisorWait
	}
	return &Advisor{provider: provider, timeout: timeout}
}

// Consult asks the provider for a verdict. It never returns without a usable
// verdict: failures, panics, empty difficulties and timeouts all yield the
// fallback. The deadline holds even if the provider ignores ctx.
func (a *Advisor) Consult(ctx context.Context, perf model.Performance) Advice {
	if a == nil || a.provider == nil {
		return fallbackAdvice("lookup", ErrNoProvider)
	}
	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	ch := make(chan Advice, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				ch <- fallbackAdvice("call", fmt.Errorf("provider panic: %v", r))
			}
		}()
		v, err := a.provider.Feedback(ctx, perf)
		if err != nil {
			ch <- fallbackAdvice("call", err)
			return
		}
		if v.Difficulty == "" {
			ch <- fallbackAdvice("decode", errors.New("verdict missing difficulty"))
			return
		}
		ch <- Advice{Verdict: v}
	}()

	select {
	case adv := <-ch:
		return adv
	case <-ctx.Done():
		return fallbackAdvice("call", ctx.Err())
	}
}
