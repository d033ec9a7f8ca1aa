package messaging

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestInMemoryBus_PublishDeliversInSubscriptionOrder(t *testing.T) {
	bus := NewInMemoryBus(zap.NewNop())
	seen := []string{}

	bus.Subscribe("greeting", func(payload any) {
		seen = append(seen, "first:"+payload.(string))
	})
	bus.Subscribe("greeting", func(payload any) {
		seen = append(seen, "second:"+payload.(string))
	})

	bus.Publish(context.Background(), "greeting", "hi")

	assert.Equal(t, []string{"first:hi", "second:hi"}, seen)
}

func TestInMemoryBus_PublishWithoutSubscribersIsSafe(t *testing.T) {
	bus := NewInMemoryBus(zap.NewNop())

	assert.NotPanics(t, func() {
		bus.Publish(context.Background(), "nobody-listens", 42)
	})
}

func TestInMemoryBus_NamesAreIsolated(t *testing.T) {
	bus := NewInMemoryBus(zap.NewNop())
	var got any

	bus.Subscribe("a", func(payload any) { got = payload })

	bus.Publish(context.Background(), "b", "for b")
	assert.Nil(t, got)

	bus.Publish(context.Background(), "a", "for a")
	assert.Equal(t, "for a", got)
}

func TestInMemoryBus_Unsubscribe(t *testing.T) {
	bus := NewInMemoryBus(zap.NewNop())
	calls := 0

	unsubscribe := bus.Subscribe("tick", func(any) { calls++ })
	bus.Subscribe("tick", func(any) { calls++ })

	bus.Publish(context.Background(), "tick", nil)
	assert.Equal(t, 2, calls)

	unsubscribe()
	assert.Equal(t, 1, bus.SubscriberCount("tick"))

	bus.Publish(context.Background(), "tick", nil)
	assert.Equal(t, 3, calls)

	// Unsubscribing twice is harmless
	assert.NotPanics(t, unsubscribe)
}

func TestInMemoryBus_PublishIsSynchronous(t *testing.T) {
	bus := NewInMemoryBus(zap.NewNop())
	done := false

	bus.Subscribe("work", func(any) { done = true })
	bus.Publish(context.Background(), "work", nil)

	// The handler ran within the publishing call, not on another goroutine
	assert.True(t, done)
}
