package guard

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func exerciseGuard(t *testing.T, g *Guard, expire func(time.Duration)) {
	t.Helper()
	ctx := context.Background()

	ok, err := g.Acquire(ctx, "s1", "create_student", 10*time.Second)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = g.Acquire(ctx, "s1", "create_student", 10*time.Second)
	require.NoError(t, err)
	assert.False(t, ok, "second submission must be refused")

	ok, err = g.Acquire(ctx, "s2", "create_student", 10*time.Second)
	require.NoError(t, err)
	assert.True(t, ok, "other sessions are independent")

	ttl, err := g.TTL(ctx, "s1", "create_student")
	require.NoError(t, err)
	assert.True(t, ttl > 0)

	require.NoError(t, g.Release(ctx, "s1", "create_student"))
	ok, err = g.Acquire(ctx, "s1", "create_student", 10*time.Second)
	require.NoError(t, err)
	assert.True(t, ok)

	expire(11 * time.Second)
	ok, err = g.Acquire(ctx, "s1", "create_student", 10*time.Second)
	require.NoError(t, err)
	assert.True(t, ok, "lock must lapse after its ttl")
}

func TestGuard_Memory(t *testing.T) {
	g := New(nil)
	offset := time.Duration(0)
	g.now = func() time.Time { return time.Now().Add(offset) }

	exerciseGuard(t, g, func(d time.Duration) { offset += d })
}

func TestGuard_Redis(t *testing.T) {
	mr := miniredis.RunT(t)
	g := New(redis.NewClient(&redis.Options{Addr: mr.Addr()}))

	exerciseGuard(t, g, mr.FastForward)
}
