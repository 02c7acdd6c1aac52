package storage

import (
	"fmt"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-snake/internal/storage/storagetest"
)

func TestRedisLeaderboard(t *testing.T) {
	ctx, st := storagetest.NewRedis(t)

	n := 0
	runLeaderboardTests(t, ctx, func(t *testing.T, size int) Leaderboard {
		n++
		// Each subtest gets its own key on the shared server.
		return &RedisStore{
			client: st.Redis,
			key:    fmt.Sprintf("test:%s:%d", t.Name(), n),
			size:   size,
			now:    time.Now,
		}
	})
}

func TestRedisMemberLayout(t *testing.T) {
	ctx, st := storagetest.NewRedis(t)
	store := &RedisStore{client: st.Redis, key: "test:layout", size: 10, now: time.Now}

	_, err := store.Record(ctx, 120)
	require.NoError(t, err)

	zs, err := st.Redis.ZRangeWithScores(ctx, "test:layout", 0, -1).Result()
	require.NoError(t, err)
	require.Len(t, zs, 1)

	assert.Equal(t, float64(-120), zs[0].Score)
	assert.Regexp(t, `^0{19}1\|\d{4}-\d\d-\d\dT`, zs[0].Member)
}

func TestEntryFromZ(t *testing.T) {
	e := entryFromZ(redis.Z{Score: -250, Member: "00000000000000000007|2024-01-02T03:04:05.000Z"})
	assert.Equal(t, Entry{Score: 250, Timestamp: "2024-01-02T03:04:05.000Z"}, e)
}
