package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T) (*Client, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	c := NewFromAddr(mr.Addr())
	t.Cleanup(func() { c.Close() })
	return c, mr
}

func TestClient_SetGet(t *testing.T) {
	c, mr := newTestClient(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "k", map[string]string{"a": "b"}, time.Minute))

	var got map[string]string
	require.NoError(t, c.Get(ctx, "k", &got))
	assert.Equal(t, "b", got["a"])

	mr.FastForward(time.Minute + time.Second)
	assert.ErrorIs(t, c.Get(ctx, "k", &got), ErrNotFound)
}

func TestClient_IncrWindow(t *testing.T) {
	c, mr := newTestClient(t)
	ctx := context.Background()

	for i := int64(1); i <= 3; i++ {
		n, ttl, err := c.IncrWindow(ctx, "rl:ip", time.Hour)
		require.NoError(t, err)
		assert.Equal(t, i, n)
		assert.Greater(t, ttl, time.Duration(0))
	}

	mr.FastForward(time.Hour + time.Second)

	n, _, err := c.IncrWindow(ctx, "rl:ip", time.Hour)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestClient_PushCapped(t *testing.T) {
	c, _ := newTestClient(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		require.NoError(t, c.PushCapped(ctx, "recent", i, 3))
	}

	got, err := c.Range(ctx, "recent", 0, -1)
	require.NoError(t, err)
	assert.Equal(t, []string{"4", "3", "2"}, got)
}
