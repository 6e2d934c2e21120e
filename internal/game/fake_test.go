package game

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/verte-zerg/tuimole/internal/model"
)

// virtualScheduler runs everything on the test goroutine against a manual
// clock. Timers firing at the same instant run in creation order.
type virtualScheduler struct {
	now    time.Duration
	seq    int
	timers []*virtualTimer

	// holdWork queues Go work until RunWork is called.
	holdWork bool
	work     []func() func()
}

type virtualTimer struct {
	at      time.Duration
	every   time.Duration
	seq     int
	fn      func()
	stopped bool
}

func (t *virtualTimer) Stop() { t.stopped = true }

func (s *virtualScheduler) Post(fn func()) { fn() }

func (s *virtualScheduler) AfterFunc(d time.Duration, fn func()) Timer {
	return s.add(d, 0, fn)
}

func (s *virtualScheduler) Every(d time.Duration, fn func()) Timer {
	return s.add(d, d, fn)
}

func (s *virtualScheduler) Go(work func() func()) {
	if s.holdWork {
		s.work = append(s.work, work)
		return
	}
	if cont := work(); cont != nil {
		cont()
	}
}

func (s *virtualScheduler) add(d, every time.Duration, fn func()) *virtualTimer {
	s.seq++
	t := &virtualTimer{at: s.now + d, every: every, seq: s.seq, fn: fn}
	s.timers = append(s.timers, t)
	return t
}

// Advance moves the clock forward by d, firing due timers in order.
func (s *virtualScheduler) Advance(d time.Duration) {
	target := s.now + d
	for {
		t := s.next(target)
		if t == nil {
			break
		}
		s.now = t.at
		if t.every > 0 {
			t.at += t.every
		} else {
			t.stopped = true
		}
		t.fn()
	}
	s.now = target
}

func (s *virtualScheduler) next(limit time.Duration) *virtualTimer {
	live := s.timers[:0]
	for _, t := range s.timers {
		if !t.stopped {
			live = append(live, t)
		}
	}
	s.timers = live
	sort.SliceStable(s.timers, func(i, j int) bool {
		if s.timers[i].at != s.timers[j].at {
			return s.timers[i].at < s.timers[j].at
		}
		return s.timers[i].seq < s.timers[j].seq
	})
	if len(s.timers) == 0 || s.timers[0].at > limit {
		return nil
	}
	return s.timers[0]
}

// RunWork runs queued Go work and its continuations.
func (s *virtualScheduler) RunWork() {
	work := s.work
	s.work = nil
	for _, w := range work {
		if cont := w(); cont != nil {
			cont()
		}
	}
}

// seqPicker returns targets from a fixed cycle.
type seqPicker struct {
	seq []int
	i   int
}

func (p *seqPicker) Pick(int) int {
	v := p.seq[p.i%len(p.seq)]
	p.i++
	return v
}

// recorder collects events.
type recorder struct {
	mu     sync.Mutex
	events []Event
}

func (r *recorder) Observe(ev Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
}

func (r *recorder) all() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Event(nil), r.events...)
}

func eventsOf[T Event](r *recorder) []T {
	var out []T
	for _, ev := range r.all() {
		if v, ok := ev.(T); ok {
			out = append(out, v)
		}
	}
	return out
}

// stubProvider returns a fixed verdict or error.
type stubProvider struct {
	verdict model.Verdict
	err     error
	calls   int
	seen    []model.Performance
}

func (p *stubProvider) Feedback(_ context.Context, perf model.Performance) (model.Verdict, error) {
	p.calls++
	p.seen = append(p.seen, perf)
	return p.verdict, p.err
}

type memRecords struct {
	best    int
	saves   []int
	loadErr error
}

func (m *memRecords) BestScore(context.Context) (int, error) {
	return m.best, m.loadErr
}

func (m *memRecords) SetBestScore(_ context.Context, score int) error {
	m.best = score
	m.saves = append(m.saves, score)
	return nil
}
