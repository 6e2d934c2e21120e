package game

import "time"

// Timer is a handle to a scheduled callback.
type Timer interface {
	// Stop cancels the timer. A callback that has not started yet will not run.
	Stop()
}

// Scheduler runs callbacks one at a time on a single logical thread.
// All functions passed to it, including continuations returned by Go work,
// run on that thread and may touch engine state without locking.
type Scheduler interface {
	// Post runs fn on the scheduler thread.
	Post(fn func())
	// AfterFunc runs fn once after d.
	AfterFunc(d time.Duration, fn func()) Timer
	// Every runs fn every d until stopped.
	Every(d time.Duration, fn func()) Timer
	// Go runs work off the scheduler thread and then runs the continuation it
	// returns on the scheduler thread. A nil continuation is skipped.
	Go(work func() func())
}

type stopAll []Timer

func (s stopAll) Stop() {
	for _, t := range s {
		if t != nil {
			t.Stop()
		}
	}
}
