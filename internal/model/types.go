// Package model defines shared data structures.
package model

import (
	"strings"
	"time"
)

// Config defines play settings.
type Config struct {
	Holes         int
	Duration      int
	AdvisorPeriod time.Duration
	Advisor       AdvisorConfig
}

// AdvisorConfig defines how the difficulty advisor reaches its provider.
type AdvisorConfig struct {
	Provider    string
	Model       string
	BaseURL     string
	Timeout     time.Duration
	Temperature float64
	MinInterval time.Duration
}

// StatsConfig defines filters and options for stats output.
type StatsConfig struct {
	Since       *time.Time
	Last        int
	TrendWindow int
}

// Difficulty is the advisor's verdict on how hard the game should be.
type Difficulty string

// Known difficulties.
const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// ParseDifficulty normalizes a provider-supplied difficulty. Unknown values
// are returned as-is with ok=false.
func ParseDifficulty(s string) (Difficulty, bool) {
	d := Difficulty(strings.ToLower(strings.TrimSpace(s)))
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return d, true
	default:
		return d, false
	}
}

// Performance is the statistics bundle sent to a feedback provider.
type Performance struct {
	Score    int
	Hits     int
	Misses   int
	Accuracy int
}

// Verdict is a feedback provider's response.
type Verdict struct {
	Message    string
	Difficulty Difficulty
}

// Snapshot is the live view of a game session.
type Snapshot struct {
	Score           int
	Hits            int
	Misses          int
	Accuracy        int
	TimeLeft        int
	SpawnIntervalMs int
	Running         bool
}

// Performance extracts the provider input from a snapshot.
func (s Snapshot) Performance() Performance {
	return Performance{
		Score:    s.Score,
		Hits:     s.Hits,
		Misses:   s.Misses,
		Accuracy: s.Accuracy,
	}
}

// RoundStats captures a finished round.
type RoundStats struct {
	RoundID         string
	StartedAt       time.Time
	EndedAt         time.Time
	Holes           int
	Duration        int
	Score           int
	Hits            int
	Misses          int
	Accuracy        int
	FinalSpawnMs    int
	AdvisorProvider string
}

// VerdictRecord stores one advisor cycle outcome.
type VerdictRecord struct {
	RoundID     int64
	Seq         int
	At          time.Time
	Difficulty  Difficulty
	Message     string
	Fallback    bool
	SpawnBefore int
	SpawnAfter  int
}

// RoundAggregate summarizes a round for reporting.
type RoundAggregate struct {
	ID           int64
	RoundID      string
	EndedAt      time.Time
	Score        int
	Hits         int
	Misses       int
	Accuracy     int
	FinalSpawnMs int
}
