package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/maderas/backend/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) Now() time.Time { return c.t }

func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func TestMemoryBucketBurstThenRefill(t *testing.T) {
	clock := &fakeClock{t: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	b := NewMemoryBucket()
	b.now = clock.Now
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		res, err := b.Allow(ctx, "k", 1, 3)
		require.NoError(t, err)
		assert.True(t, res.Allowed, "attempt %d", i)
	}

	res, err := b.Allow(ctx, "k", 1, 3)
	require.NoError(t, err)
	assert.False(t, res.Allowed)
	assert.Equal(t, 3, res.Limit)
	assert.Equal(t, time.Second, res.RetryAfter)

	clock.Advance(time.Second)
	res, err = b.Allow(ctx, "k", 1, 3)
	require.NoError(t, err)
	assert.True(t, res.Allowed)
}

func TestMemoryBucketKeysAreIndependent(t *testing.T) {
	b := NewMemoryBucket()
	ctx := context.Background()

	res, err := b.Allow(ctx, "a", 0.5, 1)
	require.NoError(t, err)
	assert.True(t, res.Allowed)

	res, err = b.Allow(ctx, "a", 0.5, 1)
	require.NoError(t, err)
	assert.False(t, res.Allowed)

	res, err = b.Allow(ctx, "b", 0.5, 1)
	require.NoError(t, err)
	assert.True(t, res.Allowed)
}

func TestMemoryBucketRejectsBadInput(t *testing.T) {
	b := NewMemoryBucket()
	ctx := context.Background()

	_, err := b.Allow(ctx, "", 1, 1)
	assert.ErrorIs(t, err, ErrEmptyKey)
	_, err = b.Allow(ctx, "k", 0, 1)
	assert.ErrorIs(t, err, ErrInvalidRate)
	_, err = b.Allow(ctx, "k", 1, 0)
	assert.ErrorIs(t, err, ErrInvalidRate)
}

func TestMemoryBucketPrunesIdleKeys(t *testing.T) {
	clock := &fakeClock{t: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	b := NewMemoryBucket()
	b.now = clock.Now
	ctx := context.Background()

	_, err := b.Allow(ctx, "old", 1, 2)
	require.NoError(t, err)

	clock.Advance(time.Minute)
	_, err = b.Allow(ctx, "new", 1, 2)
	require.NoError(t, err)

	assert.NotContains(t, b.buckets, "old")
	assert.Contains(t, b.buckets, "new")
}

func TestLoginLimiterWithoutRedisUsesLocalBucket(t *testing.T) {
	l := NewLoginLimiter(Params{
		Config: config.Config{LoginRateLimit: 0.1, LoginBurst: 2},
		Log:    zap.NewNop(),
	})
	ctx := context.Background()

	_, err := l.Allow(ctx, "10.0.0.1")
	require.NoError(t, err)
	_, err = l.Allow(ctx, "10.0.0.1")
	require.NoError(t, err)

	res, err := l.Allow(ctx, "10.0.0.1")
	assert.ErrorIs(t, err, ErrTooManyRequests)
	assert.Positive(t, res.RetryAfter)

	_, err = l.Allow(ctx, "10.0.0.2")
	assert.NoError(t, err)
}

func TestLoginLimiterDisabled(t *testing.T) {
	l := NewLoginLimiter(Params{Config: config.Config{}, Log: zap.NewNop()})
	assert.False(t, l.Enabled())

	for i := 0; i < 10; i++ {
		res, err := l.Allow(context.Background(), "x")
		require.NoError(t, err)
		assert.True(t, res.Allowed)
	}
}
