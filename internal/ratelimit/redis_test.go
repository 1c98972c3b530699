package ratelimit

import (
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRedis scripts counter behavior and records expiry calls.
type fakeRedis struct {
	count     int64
	hasTTL    bool
	expireNXs int
}

func (f *fakeRedis) Incr(ctx context.Context, key string) *redis.IntCmd {
	f.count++
	cmd := redis.NewIntCmd(ctx)
	cmd.SetVal(f.count)
	return cmd
}

func (f *fakeRedis) ExpireNX(ctx context.Context, key string, _ time.Duration) *redis.BoolCmd {
	f.expireNXs++
	cmd := redis.NewBoolCmd(ctx)
	cmd.SetVal(!f.hasTTL)
	f.hasTTL = true
	return cmd
}

func (f *fakeRedis) Get(ctx context.Context, key string) *redis.StringCmd {
	cmd := redis.NewStringCmd(ctx)
	if f.count == 0 {
		cmd.SetErr(redis.Nil)
		return cmd
	}
	cmd.SetVal(strconv.FormatInt(f.count, 10))
	return cmd
}

func TestRedisCounter_ExpiryAttachedOnEveryIncrement(t *testing.T) {
	fake := &fakeRedis{}
	counter := &RedisCounter{client: fake}
	ctx := context.Background()

	for i := 1; i <= 3; i++ {
		count, err := counter.Incr(ctx, Key, time.Hour)
		require.NoError(t, err)
		assert.EqualValues(t, i, count)
	}

	// a TTL-less key left by a crash is repaired by the next increment
	assert.Equal(t, 3, fake.expireNXs)
}

func TestRedisCounter_CurrentMissingKeyIsZero(t *testing.T) {
	counter := &RedisCounter{client: &fakeRedis{}}

	count, err := counter.Current(context.Background(), Key)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestRedisCounter_CurrentReadsCount(t *testing.T) {
	fake := &fakeRedis{}
	counter := &RedisCounter{client: fake}
	ctx := context.Background()

	_, err := counter.Incr(ctx, Key, time.Hour)
	require.NoError(t, err)
	_, err = counter.Incr(ctx, Key, time.Hour)
	require.NoError(t, err)

	count, err := counter.Current(ctx, Key)
	require.NoError(t, err)
	assert.EqualValues(t, 2, count)
}
