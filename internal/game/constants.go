package game

import "time"

// Spawn interval bounds and defaults, in milliseconds.
const (
	MinSpeedMs     = 700
	MaxSpeedMs     = 1300
	InitialSpeedMs = 1100
	SpeedStepMs    = 100
	MinVisibleMs   = 550
)

// Round defaults.
const (
	DefaultDuration      = 30
	DefaultHoles         = 9
	DefaultAdvisorPeriod = 5 * time.Second
	DefaultAdvisorWait   = 3 * time.Second
	CountdownPeriod      = time.Second
)

// MinAdvisorPeriod is the shortest advisor period the Engine accepts. Every
// cycle re-creates the spawner, so a cycle must leave room for a spawn at the
// slowest interval even when advice lands late.
const MinAdvisorPeriod = 2 * MaxSpeedMs * time.Millisecond

// hitsBeforeSpeedup is the hit count after which targets stay up for less time.
const hitsBeforeSpeedup = 10

// NoTarget marks the absence of an active target.
const NoTarget = -1

// Status lines shown alongside the board.
const (
	ReadyMessage    = "Ready when you are…"
	FallbackMessage = "AI resting… continuing with default strategy"
	ClosingMessage  = "The night watched closely. You're improving"
)
