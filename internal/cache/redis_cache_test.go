package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stats struct {
	CountByMonth  []int64          `json:"countByMonth"`
	CountByStatus map[string]int64 `json:"countByStatus"`
}

func setupTestCache(t *testing.T, ttl time.Duration) (*RedisCache, *miniredis.Miniredis) {
	s := miniredis.RunT(t)
	c, err := NewRedisCache("redis://"+s.Addr(), ttl)
	require.NoError(t, err)
	t.Cleanup(func() { c.Close() })
	return c, s
}

func TestNewRedisCacheBadURL(t *testing.T) {
	_, err := NewRedisCache("not a url", time.Minute)
	assert.Error(t, err)
}

func TestSetAndGet(t *testing.T) {
	c, _ := setupTestCache(t, time.Minute)
	ctx := context.Background()

	in := stats{
		CountByMonth:  []int64{1, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 2},
		CountByStatus: map[string]int64{"Pending": 2, "Approved": 1, "Rejected": 0},
	}
	require.NoError(t, c.Set(ctx, "ideas", in))

	var out stats
	hit, err := c.Get(ctx, "ideas", &out)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, in, out)
}

func TestGetMiss(t *testing.T) {
	c, _ := setupTestCache(t, time.Minute)

	var out stats
	hit, err := c.Get(context.Background(), "missing", &out)
	require.NoError(t, err)
	assert.False(t, hit)
}

func TestEntryExpires(t *testing.T) {
	c, s := setupTestCache(t, time.Second)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "ideas", stats{}))
	s.FastForward(2 * time.Second)

	var out stats
	hit, err := c.Get(ctx, "ideas", &out)
	require.NoError(t, err)
	assert.False(t, hit)
}

func TestInvalidate(t *testing.T) {
	c, s := setupTestCache(t, time.Minute)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "a", 1))
	require.NoError(t, c.Set(ctx, "b", 2))
	assert.True(t, s.Exists("ideaboard:stats:a"))

	require.NoError(t, c.Invalidate(ctx, "a", "never-set"))
	assert.False(t, s.Exists("ideaboard:stats:a"))
	assert.True(t, s.Exists("ideaboard:stats:b"))

	require.NoError(t, c.Invalidate(ctx))
}

func TestGetCorruptEntry(t *testing.T) {
	c, s := setupTestCache(t, time.Minute)
	require.NoError(t, s.Set("ideaboard:stats:ideas", "{not json"))

	var out stats
	hit, err := c.Get(context.Background(), "ideas", &out)
	assert.Error(t, err)
	assert.False(t, hit)
}

func TestDefaultTTL(t *testing.T) {
	c, s := setupTestCache(t, 0)
	require.NoError(t, c.Set(context.Background(), "ideas", 1))
	assert.Equal(t, defaultTTL, s.TTL("ideaboard:stats:ideas"))
}
