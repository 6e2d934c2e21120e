package game

import (
	"time"

	"github.com/google/uuid"

	"github.com/verte-zerg/tuimole/internal/model"
)

// Journal turns the event stream of one round into a storable record.
type Journal struct {
	now      func() time.Time
	provider string

	roundID   string
	startedAt time.Time
	holes     int
	duration  int
	verdicts  []model.VerdictRecord
	open      bool
}

// NewJournal constructs a Journal. provider names the advisor backend and is
// stored alongside each round.
func NewJournal(provider string, now func() time.Time) *Journal {
	if now == nil {
		now = time.Now
	}
	return &Journal{now: now, provider: provider}
}

// Record folds ev into the journal. When ev finishes a round it returns the
// completed record and true.
func (j *Journal) Record(ev Event) (model.RoundStats, []model.VerdictRecord, bool) {
	switch ev := ev.(type) {
	case Started:
		j.roundID = uuid.NewString()
		j.startedAt = j.now()
		j.holes = ev.Holes
		j.duration = ev.Snapshot.TimeLeft
		j.verdicts = nil
		j.open = true
	case Adjusted:
		if !j.open {
			return model.RoundStats{}, nil, false
		}
		j.verdicts = append(j.verdicts, model.VerdictRecord{
			Seq:         len(j.verdicts) + 1,
			At:          j.now(),
			Difficulty:  ev.Verdict.Difficulty,
			Message:     ev.Verdict.Message,
			Fallback:    ev.Fallback,
			SpawnBefore: ev.SpawnBefore,
			SpawnAfter:  ev.SpawnAfter,
		})
	case Reset:
		j.open = false
		j.verdicts = nil
	case Ended:
		if !j.open {
			return model.RoundStats{}, nil, false
		}
		j.open = false
		round := model.RoundStats{
			RoundID:         j.roundID,
			StartedAt:       j.startedAt,
			EndedAt:         j.now(),
			Holes:           j.holes,
			Duration:        j.duration,
			Score:           ev.Snapshot.Score,
			Hits:            ev.Snapshot.Hits,
			Misses:          ev.Snapshot.Misses,
			Accuracy:        ev.Snapshot.Accuracy,
			FinalSpawnMs:    ev.Snapshot.SpawnIntervalMs,
			AdvisorProvider: j.provider,
		}
		verdicts := j.verdicts
		j.verdicts = nil
		return round, verdicts, true
	}
	return model.RoundStats{}, nil, false
}
