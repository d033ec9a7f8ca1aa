package messaging

import (
	"context"
	"sync"

	"flowcanvas/application/ports"
	"go.uber.org/zap"
)

// subscriber is one registered handler with a stable id for removal
type subscriber struct {
	id      int
	handler ports.EventHandler
}

// InMemoryBus is the in-process implementation of ports.EventBus: a
// name-keyed fire-and-forget channel to many listeners. Handlers run
// synchronously in subscription order within the publishing turn, which is
// what keeps order-sync broadcasts strictly ordered behind the mutations
// that triggered them.
type InMemoryBus struct {
	mu          sync.RWMutex
	subscribers map[string][]subscriber
	nextID      int
	logger      *zap.Logger
}

// NewInMemoryBus creates an empty bus
func NewInMemoryBus(logger *zap.Logger) *InMemoryBus {
	return &InMemoryBus{
		subscribers: make(map[string][]subscriber),
		logger:      logger,
	}
}

var _ ports.EventBus = (*InMemoryBus)(nil)

// Publish delivers the payload to every subscriber of the named event
func (b *InMemoryBus) Publish(ctx context.Context, name string, payload any) {
	b.mu.RLock()
	subs := make([]subscriber, len(b.subscribers[name]))
	copy(subs, b.subscribers[name])
	b.mu.RUnlock()

	if len(subs) == 0 {
		b.logger.Debug("No subscribers for event", zap.String("event", name))
		return
	}

	for _, sub := range subs {
		sub.handler(payload)
	}

	b.logger.Debug("Event published",
		zap.String("event", name),
		zap.Int("subscribers", len(subs)))
}

// Subscribe registers a handler for the named event and returns a function
// that removes the subscription
func (b *InMemoryBus) Subscribe(name string, handler ports.EventHandler) func() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	id := b.nextID
	b.subscribers[name] = append(b.subscribers[name], subscriber{id: id, handler: handler})

	b.logger.Debug("Subscribed to event", zap.String("event", name), zap.Int("id", id))

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()

		kept := b.subscribers[name][:0]
		for _, sub := range b.subscribers[name] {
			if sub.id != id {
				kept = append(kept, sub)
			}
		}
		if len(kept) > 0 {
			b.subscribers[name] = kept
		} else {
			delete(b.subscribers, name)
		}
	}
}

// SubscriberCount reports how many handlers are registered for an event
func (b *InMemoryBus) SubscriberCount(name string) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subscribers[name])
}
