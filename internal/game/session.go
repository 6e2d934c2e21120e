// Package game implements the whack-a-mole round: the session state machine,
// the timers that drive it, and the advisor that tunes spawn speed.
package game

import (
	"github.com/verte-zerg/tuimole/internal/model"
	"github.com/verte-zerg/tuimole/internal/stats"
)

// Activation describes a target that just popped up.
type Activation struct {
	Target    int
	Token     uint64
	VisibleMs int
}

// Session holds the mutable state of one round. It is not safe for
// concurrent use; the Engine confines it to the scheduler goroutine.
//
// token is a generation counter: it grows on every activation and on every
// hit, and an expiry only applies when it still carries the current value.
// It is never reset, so expiries captured before a reset stay stale.
type Session struct {
	holes    int
	duration int
	picker   Picker
	obs      Observer

	score    int
	hits     int
	misses   int
	timeLeft int
	spawnMs  int
	active   int
	token    uint64
	running  bool
}

// NewSession constructs an idle session.
func NewSession(holes, duration int, picker Picker, obs Observer) *Session {
	if holes <= 0 {
		holes = DefaultHoles
	}
	if duration <= 0 {
		duration = DefaultDuration
	}
	if picker == nil {
		picker = NewRandomPicker()
	}
	if obs == nil {
		obs = nopObserver{}
	}
	s := &Session{
		holes:    holes,
		duration: duration,
		picker:   picker,
		obs:      obs,
	}
	s.Reset()
	return s
}

// Reset returns the session to its initial idle state.
func (s *Session) Reset() {
	s.score = 0
	s.hits = 0
	s.misses = 0
	s.timeLeft = s.duration
	s.spawnMs = InitialSpeedMs
	s.active = NoTarget
	s.running = false
}

// Start resets counters and marks the session running.
func (s *Session) Start() {
	s.Reset()
	s.running = true
}

// Activate pops up a new target. The previously active target, if any, is
// hidden without counting a miss.
func (s *Session) Activate() (Activation, bool) {
	if !s.running {
		return Activation{}, false
	}
	if s.active != NoTarget {
		prev := s.active
		s.active = NoTarget
		s.obs.Observe(Deactivated{Target: prev})
	}

	target := s.picker.Pick(s.holes)
	if target < 0 || target >= s.holes {
		target = 0
	}
	s.active = target
	s.token++
	act := Activation{
		Target:    target,
		Token:     s.token,
		VisibleMs: VisibleTime(s.spawnMs, s.hits),
	}
	s.obs.Observe(Activated(act))
	return act, true
}

// Expire resolves an activation whose visible time ran out. It is a no-op
// when the round is over, the token is stale, or the target was already hit.
func (s *Session) Expire(token uint64, target int) bool {
	if !s.running {
		return false
	}
	if token != s.token {
		return false
	}
	if s.active != target {
		return false
	}
	s.active = NoTarget
	s.misses++
	s.obs.Observe(Expired{Target: target, Snapshot: s.Snapshot()})
	return true
}

// RegisterAttempt scores a strike on target.
func (s *Session) RegisterAttempt(target int) model.Snapshot {
	if !s.running {
		return s.Snapshot()
	}
	if s.active != NoTarget && target == s.active {
		s.score++
		s.hits++
		s.token++
		s.active = NoTarget
		snap := s.Snapshot()
		s.obs.Observe(Hit{Target: target, Snapshot: snap})
		return snap
	}
	// Wrong slot: the active target's expiry stays pending.
	s.misses++
	snap := s.Snapshot()
	s.obs.Observe(Miss{Target: target, Snapshot: snap})
	return snap
}

// Tick advances the countdown by one step and reports whether it ran out.
func (s *Session) Tick() bool {
	if !s.running {
		return false
	}
	if s.timeLeft > 0 {
		s.timeLeft--
	}
	s.obs.Observe(Ticked{TimeLeft: s.timeLeft})
	return s.timeLeft <= 0
}

// End stops the round and returns the final snapshot along with the target
// that was up when it ended, if any.
func (s *Session) End() (model.Snapshot, int) {
	last := s.active
	s.running = false
	s.active = NoTarget
	return s.Snapshot(), last
}

// ApplyDifficulty moves the spawn interval one step toward the verdict,
// clamped to [MinSpeedMs, MaxSpeedMs].
func (s *Session) ApplyDifficulty(d model.Difficulty) (before, after int) {
	before = s.spawnMs
	switch d {
	case model.DifficultyEasy:
		s.spawnMs = min(s.spawnMs+SpeedStepMs, MaxSpeedMs)
	case model.DifficultyHard:
		s.spawnMs = max(s.spawnMs-SpeedStepMs, MinSpeedMs)
	}
	return before, s.spawnMs
}

// Snapshot returns the current counters.
func (s *Session) Snapshot() model.Snapshot {
	return model.Snapshot{
		Score:           s.score,
		Hits:            s.hits,
		Misses:          s.misses,
		Accuracy:        stats.Accuracy(s.hits, s.misses),
		TimeLeft:        s.timeLeft,
		SpawnIntervalMs: s.spawnMs,
		Running:         s.running,
	}
}

// Running reports whether a round is in progress.
func (s *Session) Running() bool { return s.running }

// Token returns the current generation counter.
func (s *Session) Token() uint64 { return s.token }

// Active returns the active target or NoTarget.
func (s *Session) Active() int { return s.active }

// SpawnInterval returns the spawn interval in milliseconds.
func (s *Session) SpawnInterval() int { return s.spawnMs }

// Holes returns the number of target slots.
func (s *Session) Holes() int { return s.holes }

// VisibleTime returns how long a target stays up for the given spawn
// interval. Past hitsBeforeSpeedup hits the window shrinks further.
func VisibleTime(spawnMs, hits int) int {
	cut := 300
	if hits > hitsBeforeSpeedup {
		cut = 350
	}
	return max(spawnMs-cut, MinVisibleMs)
}
