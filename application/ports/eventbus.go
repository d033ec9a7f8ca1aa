package ports

import "context"

// EventHandler receives one published payload
type EventHandler func(payload any)

// EventBus is the injectable message channel connecting the core to the
// preview and editor surfaces. Publication is fire-and-forget to many
// listeners and strictly ordered: handlers run synchronously within the
// publishing turn, so an order-sync always reaches listeners before the
// next mutation starts.
type EventBus interface {
	// Publish delivers the payload to every subscriber of the named event
	Publish(ctx context.Context, name string, payload any)

	// Subscribe registers a handler for the named event and returns a
	// function that removes the subscription
	Subscribe(name string, handler EventHandler) (unsubscribe func())
}
