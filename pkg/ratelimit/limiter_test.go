package ratelimit

import (
	"context"
	"errors"
	"testing"
	"time"

	"car-rental/pkg/redis"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLimiter_Allow(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewFromAddr(mr.Addr())
	defer client.Close()

	l := New(client, "requests", 2, time.Hour)
	ctx := context.Background()

	tests := []struct {
		name          string
		key           string
		wantAllowed   bool
		wantRemaining int64
	}{
		{name: "first hit", key: "10.0.0.1", wantAllowed: true, wantRemaining: 1},
		{name: "second hit", key: "10.0.0.1", wantAllowed: true, wantRemaining: 0},
		{name: "over limit", key: "10.0.0.1", wantAllowed: false, wantRemaining: 0},
		{name: "other client", key: "10.0.0.2", wantAllowed: true, wantRemaining: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := l.Allow(ctx, tt.key)
			require.NoError(t, err)
			assert.Equal(t, tt.wantAllowed, res.Allowed)
			assert.Equal(t, tt.wantRemaining, res.Remaining)
			if !tt.wantAllowed {
				assert.Greater(t, res.RetryAfter, time.Duration(0))
				assert.LessOrEqual(t, res.RetryAfter, time.Hour)
			}
		})
	}
}

func TestLimiter_WindowResets(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewFromAddr(mr.Addr())
	defer client.Close()

	l := New(client, "requests", 1, time.Minute)
	ctx := context.Background()

	res, err := l.Allow(ctx, "ip")
	require.NoError(t, err)
	assert.True(t, res.Allowed)

	res, err = l.Allow(ctx, "ip")
	require.NoError(t, err)
	assert.False(t, res.Allowed)

	mr.FastForward(time.Minute + time.Second)

	res, err = l.Allow(ctx, "ip")
	require.NoError(t, err)
	assert.True(t, res.Allowed)
}

func TestLimiter_SharedAcrossInstances(t *testing.T) {
	mr := miniredis.RunT(t)
	a := redis.NewFromAddr(mr.Addr())
	b := redis.NewFromAddr(mr.Addr())
	defer a.Close()
	defer b.Close()

	ctx := context.Background()
	_, err := New(a, "requests", 1, time.Hour).Allow(ctx, "ip")
	require.NoError(t, err)

	res, err := New(b, "requests", 1, time.Hour).Allow(ctx, "ip")
	require.NoError(t, err)
	assert.False(t, res.Allowed)
}

type failingCounter struct{}

func (failingCounter) IncrWindow(context.Context, string, time.Duration) (int64, time.Duration, error) {
	return 0, 0, errors.New("connection refused")
}

func TestLimiter_StoreError(t *testing.T) {
	_, err := New(failingCounter{}, "requests", 1, time.Hour).Allow(context.Background(), "ip")
	assert.Error(t, err)
}
