package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/sundayfc/matchday/internal/domain/model"
	"github.com/sundayfc/matchday/pkg/metrics"
)

const schema = `
CREATE TABLE IF NOT EXISTS players (
	name           TEXT PRIMARY KEY COLLATE NOCASE,
	rating         REAL NOT NULL,
	tags           TEXT NOT NULL DEFAULT '',
	matches_played INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS matches (
	id         TEXT PRIMARY KEY,
	match_date TEXT NOT NULL,
	team_a     TEXT NOT NULL,
	team_b     TEXT NOT NULL,
	score_a    INTEGER NOT NULL,
	score_b    INTEGER NOT NULL,
	snapshot_a TEXT NOT NULL,
	snapshot_b TEXT NOT NULL,
	created_at TEXT NOT NULL DEFAULT (datetime('now'))
);
`

// SQLiteStore implements Store on a single sqlite database file.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (creating if needed) the database at path and
// ensures the schema exists.
func NewSQLiteStore(ctx context.Context, path string) (*SQLiteStore, error) {
	dsn := fmt.Sprintf("%s?_journal_mode=WAL&_foreign_keys=ON&_busy_timeout=5000&_synchronous=NORMAL", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	// sqlite allows a single writer; serialising through one
	// connection avoids SQLITE_BUSY under concurrent submissions.
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) ListPlayers(ctx context.Context) ([]model.Player, error) {
	start := time.Now()
	rows, err := s.db.QueryContext(ctx, `SELECT name, rating, tags, matches_played FROM players ORDER BY rowid`)
	if err != nil {
		metrics.RecordStoreError()
		return nil, fmt.Errorf("list players: %w", err)
	}
	defer rows.Close()

	var out []model.Player
	for rows.Next() {
		var p model.Player
		var tags string
		if err := rows.Scan(&p.Name, &p.Rating, &tags, &p.MatchesPlayed); err != nil {
			return nil, fmt.Errorf("scan player: %w", err)
		}
		p.Tags = model.ParseTags(tags)
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list players: %w", err)
	}
	metrics.RecordStoreQueryLatency(float64(time.Since(start).Milliseconds()))
	return out, nil
}

func (s *SQLiteStore) GetPlayer(ctx context.Context, name string) (model.Player, error) {
	var p model.Player
	var tags string
	err := s.db.QueryRowContext(ctx,
		`SELECT name, rating, tags, matches_played FROM players WHERE name = ?`, name).
		Scan(&p.Name, &p.Rating, &tags, &p.MatchesPlayed)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Player{}, ErrNotFound
	}
	if err != nil {
		metrics.RecordStoreError()
		return model.Player{}, fmt.Errorf("get player: %w", err)
	}
	p.Tags = model.ParseTags(tags)
	return p, nil
}

func (s *SQLiteStore) SavePlayer(ctx context.Context, p model.Player) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO players (name, rating, tags, matches_played) VALUES (?, ?, ?, ?)`,
		p.Name, p.Rating, model.FormatTags(p.Tags), p.MatchesPlayed)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrExists
		}
		metrics.RecordStoreError()
		return fmt.Errorf("save player: %w", err)
	}
	return nil
}

func (s *SQLiteStore) UpdatePlayer(ctx context.Context, name string, rating float64, tags []model.Tag, matchesPlayed int) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE players SET rating = ?, tags = ?, matches_played = ? WHERE name = ?`,
		rating, model.FormatTags(tags), matchesPlayed, name)
	if err != nil {
		metrics.RecordStoreError()
		return fmt.Errorf("update player: %w", err)
	}
	return affectedOrNotFound(res)
}

func (s *SQLiteStore) UpdateRating(ctx context.Context, name string, rating float64, matchesPlayed int) error {
	start := time.Now()
	res, err := s.db.ExecContext(ctx,
		`UPDATE players SET rating = ?, matches_played = ? WHERE name = ?`,
		rating, matchesPlayed, name)
	if err != nil {
		metrics.RecordStoreError()
		return fmt.Errorf("update rating: %w", err)
	}
	if err := affectedOrNotFound(res); err != nil {
		return err
	}
	metrics.RecordStoreWriteLatency(float64(time.Since(start).Milliseconds()))
	return nil
}

func (s *SQLiteStore) DeletePlayer(ctx context.Context, name string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM players WHERE name = ?`, name)
	if err != nil {
		metrics.RecordStoreError()
		return fmt.Errorf("delete player: %w", err)
	}
	return affectedOrNotFound(res)
}

func (s *SQLiteStore) ListMatches(ctx context.Context) ([]model.Match, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, match_date, team_a, team_b, score_a, score_b, snapshot_a, snapshot_b FROM matches ORDER BY rowid`)
	if err != nil {
		metrics.RecordStoreError()
		return nil, fmt.Errorf("list matches: %w", err)
	}
	defer rows.Close()

	var out []model.Match
	for rows.Next() {
		var m model.Match
		var teamA, teamB, snapA, snapB string
		if err := rows.Scan(&m.ID, &m.Date, &teamA, &teamB, &m.ScoreA, &m.ScoreB, &snapA, &snapB); err != nil {
			return nil, fmt.Errorf("scan match: %w", err)
		}
		m.TeamA = splitNames(teamA)
		m.TeamB = splitNames(teamB)
		if err := json.Unmarshal([]byte(snapA), &m.SnapshotA); err != nil {
			return nil, fmt.Errorf("decode snapshot: %w", err)
		}
		if err := json.Unmarshal([]byte(snapB), &m.SnapshotB); err != nil {
			return nil, fmt.Errorf("decode snapshot: %w", err)
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list matches: %w", err)
	}
	return out, nil
}

func (s *SQLiteStore) SaveMatch(ctx context.Context, m model.Match) error {
	snapA, err := json.Marshal(m.SnapshotA)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	snapB, err := json.Marshal(m.SnapshotB)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO matches (id, match_date, team_a, team_b, score_a, score_b, snapshot_a, snapshot_b)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		m.ID, m.Date, joinNames(m.TeamA), joinNames(m.TeamB), m.ScoreA, m.ScoreB, string(snapA), string(snapB))
	if err != nil {
		metrics.RecordStoreError()
		return fmt.Errorf("save match: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Count(ctx context.Context) int {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM players`).Scan(&n); err != nil {
		return 0
	}
	return n
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func affectedOrNotFound(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func isUniqueViolation(err error) bool {
	// modernc.org/sqlite surfaces constraint failures in the error
	// text; there is no typed error for them.
	return err != nil && containsAny(err.Error(), "UNIQUE constraint failed", "constraint failed")
}

var _ Store = (*SQLiteStore)(nil)
