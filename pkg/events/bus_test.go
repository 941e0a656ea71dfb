package events

import (
	"context"
	"testing"
	"time"

	"car-rental/pkg/model"
	"car-rental/pkg/redis"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestBus(t *testing.T) *Bus {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewFromAddr(mr.Addr())
	t.Cleanup(func() { client.Close() })
	return NewBus(client)
}

func TestBus_PublishSubscribe(t *testing.T) {
	bus := newTestBus(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch, err := bus.Subscribe(ctx)
	require.NoError(t, err)

	event := model.NewEvent("folder-1", model.EventMileageOut, "mileage out recorded", map[string]string{"mileage": "42000"})
	require.NoError(t, bus.Publish(ctx, event))

	select {
	case got := <-ch:
		assert.Equal(t, event.ID, got.ID)
		assert.Equal(t, model.EventMileageOut, got.Type)
		assert.Equal(t, "42000", got.Detail["mileage"])
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for event")
	}

	cancel()
	assert.Eventually(t, func() bool {
		_, open := <-ch
		return !open
	}, 2*time.Second, 10*time.Millisecond)
}

func TestBus_Recent(t *testing.T) {
	bus := newTestBus(t)
	ctx := context.Background()

	for i := 0; i < RecentLimit+5; i++ {
		require.NoError(t, bus.Publish(ctx, model.NewEvent("f", model.EventRentalCreated, "created", nil)))
	}
	last := model.NewEvent("f", model.EventSignedContract, "signed", nil)
	require.NoError(t, bus.Publish(ctx, last))

	got, err := bus.Recent(ctx, 3)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, last.ID, got[2].ID)

	all, err := bus.Recent(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, all, RecentLimit)
}
