// Package store handles SQLite persistence.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/samber/lo"

	"github.com/verte-zerg/tuimole/internal/model"

	_ "modernc.org/sqlite" // SQLite driver.
)

const (
	bestScoreKey = "best_score"
	// Fixed-width UTC timestamps keep text ordering chronological.
	timeLayout = "2006-01-02T15:04:05.000000000Z07:00"
)

// Store wraps SQLite access for round data.
type Store struct {
	db *sql.DB
}

// Open opens or creates the SQLite database and applies migrations.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		if cerr := db.Close(); cerr != nil {
			// Best-effort close on migration failure.
			_ = cerr
		}
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS settings (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS rounds (
			id INTEGER PRIMARY KEY,
			round_uuid TEXT NOT NULL UNIQUE,
			started_at TEXT NOT NULL,
			ended_at TEXT NOT NULL,
			holes INTEGER NOT NULL,
			duration_s INTEGER NOT NULL,
			score INTEGER NOT NULL,
			hits INTEGER NOT NULL,
			misses INTEGER NOT NULL,
			accuracy INTEGER NOT NULL,
			final_spawn_ms INTEGER NOT NULL,
			advisor TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS round_verdicts (
			round_id INTEGER NOT NULL,
			seq INTEGER NOT NULL,
			at TEXT NOT NULL,
			difficulty TEXT NOT NULL,
			message TEXT NOT NULL,
			fallback INTEGER NOT NULL,
			spawn_before INTEGER NOT NULL,
			spawn_after INTEGER NOT NULL,
			PRIMARY KEY (round_id, seq)
		);`,
		`CREATE INDEX IF NOT EXISTS idx_rounds_ended_at ON rounds(ended_at);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// BestScore returns the stored best score, or 0 when none was recorded.
func (s *Store) BestScore(ctx context.Context) (int, error) {
	var raw string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM settings WHERE key = ?`, bestScoreKey).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	best, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid stored best score %q: %w", raw, err)
	}
	return best, nil
}

// SetBestScore stores score as the best score.
func (s *Store) SetBestScore(ctx context.Context, score int) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO settings (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		bestScoreKey, strconv.Itoa(score))
	return err
}

// ResetBestScore clears the best score.
func (s *Store) ResetBestScore(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM settings WHERE key = ?`, bestScoreKey)
	return err
}

// InsertRound stores a finished round and its advisor verdicts.
func (s *Store) InsertRound(ctx context.Context, round model.RoundStats, verdicts []model.VerdictRecord) (id int64, err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() {
		if err != nil {
			if rerr := tx.Rollback(); rerr != nil {
				// Best-effort rollback.
				_ = rerr
			}
		}
	}()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO rounds (round_uuid, started_at, ended_at, holes, duration_s, score, hits, misses, accuracy, final_spawn_ms, advisor)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		round.RoundID,
		round.StartedAt.UTC().Format(timeLayout),
		round.EndedAt.UTC().Format(timeLayout),
		round.Holes,
		round.Duration,
		round.Score,
		round.Hits,
		round.Misses,
		round.Accuracy,
		round.FinalSpawnMs,
		round.AdvisorProvider,
	)
	if err != nil {
		return 0, err
	}
	id, err = res.LastInsertId()
	if err != nil {
		return 0, err
	}
	if err = insertVerdicts(ctx, tx, id, verdicts); err != nil {
		return 0, err
	}
	if err = tx.Commit(); err != nil {
		return 0, err
	}
	return id, nil
}

func insertVerdicts(ctx context.Context, tx *sql.Tx, roundID int64, verdicts []model.VerdictRecord) error {
	if len(verdicts) == 0 {
		return nil
	}
	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO round_verdicts (round_id, seq, at, difficulty, message, fallback, spawn_before, spawn_after)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := stmt.Close(); cerr != nil {
			// Best-effort statement close.
			_ = cerr
		}
	}()
	for _, v := range verdicts {
		if _, err := stmt.ExecContext(ctx, roundID, v.Seq, v.At.UTC().Format(timeLayout), string(v.Difficulty), v.Message, v.Fallback, v.SpawnBefore, v.SpawnAfter); err != nil {
			return err
		}
	}
	return nil
}

// ListRounds returns round aggregates filtered by stats config, oldest first.
func (s *Store) ListRounds(ctx context.Context, cfg model.StatsConfig) ([]model.RoundAggregate, error) {
	clauses := []string{"1=1"}
	args := []any{}
	if cfg.Since != nil {
		clauses = append(clauses, "ended_at >= ?")
		args = append(args, cfg.Since.UTC().Format(timeLayout))
	}
	query := fmt.Sprintf(`SELECT id, round_uuid, ended_at, score, hits, misses, accuracy, final_spawn_ms
		FROM rounds
		WHERE %s
		ORDER BY ended_at ASC`, strings.Join(clauses, " AND "))
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var rounds []model.RoundAggregate
	for rows.Next() {
		var agg model.RoundAggregate
		var endedAt string
		if err := rows.Scan(&agg.ID, &agg.RoundID, &endedAt, &agg.Score, &agg.Hits, &agg.Misses, &agg.Accuracy, &agg.FinalSpawnMs); err != nil {
			return nil, err
		}
		parsed, err := time.Parse(timeLayout, endedAt)
		if err != nil {
			return nil, err
		}
		agg.EndedAt = parsed
		rounds = append(rounds, agg)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if cfg.Last > 0 && len(rounds) > cfg.Last {
		rounds = rounds[len(rounds)-cfg.Last:]
	}
	return rounds, nil
}

// ListVerdicts returns advisor verdicts for the given rounds in order.
func (s *Store) ListVerdicts(ctx context.Context, roundIDs []int64) ([]model.VerdictRecord, error) {
	if len(roundIDs) == 0 {
		return nil, nil
	}
	placeholders := lo.Map(roundIDs, func(int64, int) string { return "?" })
	args := lo.Map(roundIDs, func(id int64, _ int) any { return id })
	query := fmt.Sprintf(`SELECT round_id, seq, at, difficulty, message, fallback, spawn_before, spawn_after
		FROM round_verdicts
		WHERE round_id IN (%s)
		ORDER BY round_id ASC, seq ASC`, strings.Join(placeholders, ","))
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var result []model.VerdictRecord
	for rows.Next() {
		var rec model.VerdictRecord
		var at, difficulty string
		if err := rows.Scan(&rec.RoundID, &rec.Seq, &at, &difficulty, &rec.Message, &rec.Fallback, &rec.SpawnBefore, &rec.SpawnAfter); err != nil {
			return nil, err
		}
		parsed, err := time.Parse(timeLayout, at)
		if err != nil {
			return nil, err
		}
		rec.At = parsed
		rec.Difficulty = model.Difficulty(difficulty)
		result = append(result, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// DifficultyCounts counts applied verdicts per difficulty for the given
// rounds, plus how many of them were fallbacks.
func (s *Store) DifficultyCounts(ctx context.Context, roundIDs []int64) (map[model.Difficulty]int, int, error) {
	counts := map[model.Difficulty]int{}
	if len(roundIDs) == 0 {
		return counts, 0, nil
	}
	placeholders := lo.Map(roundIDs, func(int64, int) string { return "?" })
	args := lo.Map(roundIDs, func(id int64, _ int) any { return id })
	query := fmt.Sprintf(`SELECT difficulty, COUNT(*), SUM(fallback)
		FROM round_verdicts
		WHERE round_id IN (%s)
		GROUP BY difficulty`, strings.Join(placeholders, ","))
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	fallbacks := 0
	for rows.Next() {
		var difficulty string
		var n, fb int
		if err := rows.Scan(&difficulty, &n, &fb); err != nil {
			return nil, 0, err
		}
		counts[model.Difficulty(difficulty)] = n
		fallbacks += fb
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return counts, fallbacks, nil
}
