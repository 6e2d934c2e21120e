package game

import (
	"context"
	"sync"
	"sync/atomic"
	"time"
)

const loopQueueSize = 64

// Loop is a Scheduler backed by one goroutine draining a queue. Timers and
// background work hand their continuations to the queue, so callbacks never
// run concurrently with each other.
type Loop struct {
	queue chan func()
	done  chan struct{}
	once  sync.Once
}

// NewLoop constructs a Loop. Call Run to start processing.
func NewLoop() *Loop {
	return &Loop{
		queue: make(chan func(), loopQueueSize),
		done:  make(chan struct{}),
	}
}

// Run processes callbacks until ctx is cancelled.
func (l *Loop) Run(ctx context.Context) error {
	defer l.close()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case fn := <-l.queue:
			fn()
		}
	}
}

func (l *Loop) close() {
	l.once.Do(func() { close(l.done) })
}

// Post implements Scheduler. It blocks while the queue is full and drops fn
// once the loop has stopped. It must not be called from the loop goroutine.
func (l *Loop) Post(fn func()) {
	select {
	case l.queue <- fn:
	case <-l.done:
	}
}

// AfterFunc implements Scheduler.
func (l *Loop) AfterFunc(d time.Duration, fn func()) Timer {
	t := &loopTimer{stop: make(chan struct{})}
	t.timer = time.AfterFunc(d, func() {
		l.Post(t.guard(fn))
	})
	return t
}

// Every implements Scheduler.
func (l *Loop) Every(d time.Duration, fn func()) Timer {
	t := &loopTimer{stop: make(chan struct{})}
	ticker := time.NewTicker(d)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				l.Post(t.guard(fn))
			case <-t.stop:
				return
			case <-l.done:
				return
			}
		}
	}()
	return t
}

// Go implements Scheduler.
func (l *Loop) Go(work func() func()) {
	go func() {
		if cont := work(); cont != nil {
			l.Post(cont)
		}
	}()
}

type loopTimer struct {
	timer   *time.Timer
	stop    chan struct{}
	stopped atomic.Bool
	once    sync.Once
}

func (t *loopTimer) Stop() {
	t.stopped.Store(true)
	if t.timer != nil {
		t.timer.Stop()
	}
	t.once.Do(func() { close(t.stop) })
}

// guard drops callbacks that were queued before Stop was called.
func (t *loopTimer) guard(fn func()) func() {
	return func() {
		if t.stopped.Load() {
			return
		}
		fn()
	}
}
