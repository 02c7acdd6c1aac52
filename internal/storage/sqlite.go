package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// SQLiteStore keeps the leaderboard in a local SQLite file.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
type SQLiteStore struct {
	db   *sql.DB
	size int
	now  func() time.Time
}

var _ Leaderboard = (*SQLiteStore)(nil)

// OpenSQLite creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func OpenSQLite(dbPath string, size int) (*SQLiteStore, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	if dbPath != ":memory:" {
		dir := filepath.Dir(dbPath)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}
	// One connection serializes writers and keeps :memory: databases shared.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &SQLiteStore{db: db, size: boardSize(size), now: time.Now}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

func (s *SQLiteStore) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS leaderboard (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			score INTEGER NOT NULL,
			timestamp TEXT NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_leaderboard_rank ON leaderboard(score DESC, id ASC);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Record inserts the score and prunes the table to the board size in one
// transaction. A score equal to the last kept entry loses to it, since
// older rows win ties.
func (s *SQLiteStore) Record(ctx context.Context, score int) (Placement, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return Placement{}, fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // No-op after Commit

	res, err := tx.ExecContext(ctx,
		"INSERT INTO leaderboard (score, timestamp) VALUES (?, ?)",
		score, formatTimestamp(s.now()),
	)
	if err != nil {
		return Placement{}, fmt.Errorf("storage: cannot save score: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return Placement{}, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM leaderboard WHERE id NOT IN (
			SELECT id FROM leaderboard ORDER BY score DESC, id ASC LIMIT ?
		)`,
		s.size,
	); err != nil {
		return Placement{}, fmt.Errorf("storage: cannot trim leaderboard: %w", err)
	}

	var kept int
	if err := tx.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM leaderboard WHERE id = ?", id,
	).Scan(&kept); err != nil {
		return Placement{}, fmt.Errorf("storage: cannot query placement: %w", err)
	}

	var placement Placement
	if kept > 0 {
		var ahead int
		if err := tx.QueryRowContext(ctx,
			"SELECT COUNT(*) FROM leaderboard WHERE score > ? OR (score = ? AND id < ?)",
			score, score, id,
		).Scan(&ahead); err != nil {
			return Placement{}, fmt.Errorf("storage: cannot query rank: %w", err)
		}
		placement = Placement{Rank: ahead + 1, Qualified: true}
	}

	if err := tx.Commit(); err != nil {
		return Placement{}, fmt.Errorf("storage: cannot commit score: %w", err)
	}
	return placement, nil
}

// Top retrieves the best n entries, ordered by score descending.
func (s *SQLiteStore) Top(ctx context.Context, n int) ([]Entry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT score, timestamp
		 FROM leaderboard
		 ORDER BY score DESC, id ASC
		 LIMIT ?`,
		clampLimit(n, s.size),
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query scores: %w", err)
	}
	defer rows.Close()

	entries := []Entry{}
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.Score, &e.Timestamp); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// HighScore returns the highest score, or 0 if no scores exist.
func (s *SQLiteStore) HighScore(ctx context.Context) (int, error) {
	var score sql.NullInt64
	err := s.db.QueryRowContext(ctx, "SELECT MAX(score) FROM leaderboard").Scan(&score)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot query high score: %w", err)
	}
	if !score.Valid {
		return 0, nil
	}
	return int(score.Int64), nil
}

// Clear deletes all entries.
func (s *SQLiteStore) Clear(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM leaderboard"); err != nil {
		return fmt.Errorf("storage: cannot clear scores: %w", err)
	}
	return nil
}
