package events

import (
	"context"
	"encoding/json"
	"fmt"

	"car-rental/pkg/logger"
	"car-rental/pkg/model"
	"car-rental/pkg/redis"
)

const (
	// Channel carries every workflow event across instances
	Channel = "rental:events"

	recentKey = "rental:events:recent"
	// RecentLimit bounds the backlog replayed to a new admin feed
	RecentLimit = 50
)

// Publisher announces workflow events
type Publisher interface {
	Publish(ctx context.Context, event model.Event) error
}

// Subscriber streams workflow events
type Subscriber interface {
	Subscribe(ctx context.Context) (<-chan model.Event, error)
	Recent(ctx context.Context, n int) ([]model.Event, error)
}

// Bus is the Redis backed implementation of Publisher and Subscriber
type Bus struct {
	redis *redis.Client
}

// NewBus creates a bus over client
func NewBus(client *redis.Client) *Bus {
	return &Bus{redis: client}
}

// Publish keeps event in the recent backlog and fans it out
func (b *Bus) Publish(ctx context.Context, event model.Event) error {
	if err := b.redis.PushCapped(ctx, recentKey, event, RecentLimit); err != nil {
		return err
	}
	if err := b.redis.Publish(ctx, Channel, event); err != nil {
		return err
	}
	return nil
}

// Recent returns up to n events, oldest first
func (b *Bus) Recent(ctx context.Context, n int) ([]model.Event, error) {
	if n <= 0 || n > RecentLimit {
		n = RecentLimit
	}

	raw, err := b.redis.Range(ctx, recentKey, 0, int64(n-1))
	if err != nil {
		return nil, err
	}

	events := make([]model.Event, 0, len(raw))
	for i := len(raw) - 1; i >= 0; i-- {
		var e model.Event
		if err := json.Unmarshal([]byte(raw[i]), &e); err != nil {
			logger.Errorf(err, "skipping malformed backlog event")
			continue
		}
		events = append(events, e)
	}
	return events, nil
}

// Subscribe streams events until ctx is done. The returned channel is closed
// when the subscription ends.
func (b *Bus) Subscribe(ctx context.Context) (<-chan model.Event, error) {
	pubsub := b.redis.Subscribe(ctx, Channel)

	// wait for the subscription to be confirmed so no event is missed
	if _, err := pubsub.Receive(ctx); err != nil {
		pubsub.Close()
		return nil, fmt.Errorf("failed to subscribe to %s: %w", Channel, err)
	}

	out := make(chan model.Event, 16)
	go func() {
		defer close(out)
		defer pubsub.Close()

		ch := pubsub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}

				var event model.Event
				if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
					logger.Errorf(err, "failed to unmarshal event from Redis")
					continue
				}

				select {
				case out <- event:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return out, nil
}
