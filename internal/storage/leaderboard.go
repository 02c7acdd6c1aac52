// Package storage persists the Snake leaderboard: the top scores with the
// time they were set. SQLite is the default backend; Redis lets several
// `snake serve` instances share one board.
package storage

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// DefaultSize is the number of entries a leaderboard keeps.
const DefaultSize = 10

// Backend names accepted by Open.
const (
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
)

// ErrUnknownBackend is returned by Open for an unsupported backend name.
var ErrUnknownBackend = errors.New("storage: unknown backend")

// timestampLayout is ISO-8601 in UTC with millisecond precision.
const timestampLayout = "2006-01-02T15:04:05.000Z"

// Entry is one leaderboard record.
type Entry struct {
	Score     int    `json:"score"`
	Timestamp string `json:"timestamp"`
}

// Time parses the entry timestamp. It returns the zero time if the stored
// value is malformed.
func (e Entry) Time() time.Time {
	t, err := time.Parse(timestampLayout, e.Timestamp)
	if err != nil {
		return time.Time{}
	}
	return t
}

// Placement is the outcome of recording a score.
type Placement struct {
	Rank      int  // 1-based position on the board, 0 when not qualified
	Qualified bool // The entry survived the trim to the board size
}

// Leaderboard stores the top scores ordered by score descending, ties in
// insertion order. Implementations are safe for concurrent use.
type Leaderboard interface {
	// Record inserts a score, trims the board and reports where it landed.
	Record(ctx context.Context, score int) (Placement, error)
	// Top returns up to n entries, best first. n <= 0 means the whole board.
	Top(ctx context.Context, n int) ([]Entry, error)
	// HighScore returns the best score, or 0 for an empty board.
	HighScore(ctx context.Context) (int, error)
	// Clear removes every entry.
	Clear(ctx context.Context) error
	Close() error
}

// Options selects and configures a backend.
type Options struct {
	Backend   string
	Path      string // SQLite database file
	RedisAddr string
	RedisKey  string
	Size      int
}

// Open creates the leaderboard for opts.Backend.
func Open(ctx context.Context, opts Options) (Leaderboard, error) {
	// Explicit nil returns keep a failed open from yielding a typed nil.
	switch opts.Backend {
	case BackendSQLite, "":
		store, err := OpenSQLite(opts.Path, opts.Size)
		if err != nil {
			return nil, err
		}
		return store, nil
	case BackendRedis:
		store, err := OpenRedis(ctx, opts.RedisAddr, opts.RedisKey, opts.Size)
		if err != nil {
			return nil, err
		}
		return store, nil
	}
	return nil, fmt.Errorf("%w %q", ErrUnknownBackend, opts.Backend)
}

func boardSize(size int) int {
	if size <= 0 {
		return DefaultSize
	}
	return size
}

func clampLimit(n, size int) int {
	if n <= 0 || n > size {
		return size
	}
	return n
}

func formatTimestamp(t time.Time) string {
	return t.UTC().Format(timestampLayout)
}
