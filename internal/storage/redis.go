package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// DefaultRedisKey is the sorted set holding the board.
const DefaultRedisKey = "snake:leaderboard"

// RedisStore keeps the leaderboard in a Redis sorted set so several server
// instances can share it.
//
// Members are "<seq>|<timestamp>" with a zero-padded sequence from INCR and
// the set score is the negated game score. Ascending ZRANGE order is then
// best score first, ties by insertion order.
type RedisStore struct {
	client *redis.Client
	key    string
	size   int
	now    func() time.Time
}

var _ Leaderboard = (*RedisStore)(nil)

// OpenRedis connects to addr and verifies the connection.
func OpenRedis(ctx context.Context, addr, key string, size int) (*RedisStore, error) {
	conn := redis.NewClient(&redis.Options{
		Addr: addr,
	})

	if _, err := conn.Ping(ctx).Result(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("storage: failed to connect to Redis: %w", err)
	}

	return NewRedisStore(conn, key, size), nil
}

// NewRedisStore wraps an existing client. The store owns the client and
// closes it on Close.
func NewRedisStore(client *redis.Client, key string, size int) *RedisStore {
	if key == "" {
		key = DefaultRedisKey
	}
	return &RedisStore{client: client, key: key, size: boardSize(size), now: time.Now}
}

func (s *RedisStore) seqKey() string {
	return s.key + ":seq"
}

// Record adds the score, trims the set and reads back the rank atomically.
func (s *RedisStore) Record(ctx context.Context, score int) (Placement, error) {
	seq, err := s.client.Incr(ctx, s.seqKey()).Result()
	if err != nil {
		return Placement{}, fmt.Errorf("storage: cannot allocate sequence: %w", err)
	}
	member := fmt.Sprintf("%020d|%s", seq, formatTimestamp(s.now()))

	var rank *redis.IntCmd
	_, err = s.client.TxPipelined(ctx, func(p redis.Pipeliner) error {
		p.ZAdd(ctx, s.key, redis.Z{Score: -float64(score), Member: member})
		p.ZRemRangeByRank(ctx, s.key, int64(s.size), -1)
		rank = p.ZRank(ctx, s.key, member)
		return nil
	})
	if err != nil && !errors.Is(err, redis.Nil) {
		return Placement{}, fmt.Errorf("storage: cannot save score: %w", err)
	}

	r, err := rank.Result()
	if errors.Is(err, redis.Nil) {
		return Placement{}, nil
	}
	if err != nil {
		return Placement{}, fmt.Errorf("storage: cannot query rank: %w", err)
	}
	return Placement{Rank: int(r) + 1, Qualified: true}, nil
}

// Top returns the best n entries.
func (s *RedisStore) Top(ctx context.Context, n int) ([]Entry, error) {
	zs, err := s.client.ZRangeWithScores(ctx, s.key, 0, int64(clampLimit(n, s.size))-1).Result()
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query scores: %w", err)
	}

	entries := make([]Entry, 0, len(zs))
	for _, z := range zs {
		entries = append(entries, entryFromZ(z))
	}
	return entries, nil
}

// HighScore returns the best score, or 0 for an empty board.
func (s *RedisStore) HighScore(ctx context.Context) (int, error) {
	zs, err := s.client.ZRangeWithScores(ctx, s.key, 0, 0).Result()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot query high score: %w", err)
	}
	if len(zs) == 0 {
		return 0, nil
	}
	return entryFromZ(zs[0]).Score, nil
}

// Clear removes the board and its sequence counter.
func (s *RedisStore) Clear(ctx context.Context) error {
	if err := s.client.Del(ctx, s.key, s.seqKey()).Err(); err != nil {
		return fmt.Errorf("storage: cannot clear scores: %w", err)
	}
	return nil
}

// Close closes the Redis client.
func (s *RedisStore) Close() error {
	return s.client.Close()
}

func entryFromZ(z redis.Z) Entry {
	e := Entry{Score: int(-z.Score)}
	if member, ok := z.Member.(string); ok {
		if _, ts, found := strings.Cut(member, "|"); found {
			e.Timestamp = ts
		}
	}
	return e
}
