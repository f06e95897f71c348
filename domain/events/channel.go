package events

import (
	"context"
	"reflect"
	"sync"

	"go.uber.org/zap"
)

// Handler is a callback invoked for a published event
type Handler func(ctx context.Context, event DomainEvent) error

// Channel is an in-process publish/subscribe notifier. Subscriptions are
// keyed by the concrete event type, so each handler only ever receives
// the kind it registered for. The channel carries no business logic: a
// failing handler is logged and never aborts the publishing operation.
type Channel struct {
	handlers map[reflect.Type][]Handler
	logger   *zap.Logger
	mu       sync.RWMutex
}

// NewChannel creates a new event channel
func NewChannel(logger *zap.Logger) *Channel {
	return &Channel{
		handlers: make(map[reflect.Type][]Handler),
		logger:   logger,
	}
}

// Subscribe registers a handler for the concrete type of the prototype
// event, e.g. Subscribe(events.NodesAdded{}, fn)
func (c *Channel) Subscribe(prototype DomainEvent, handler Handler) {
	c.mu.Lock()
	defer c.mu.Unlock()

	t := reflect.TypeOf(prototype)
	c.handlers[t] = append(c.handlers[t], handler)
}

// Publish delivers the event synchronously to every handler registered
// for its concrete type, in registration order
func (c *Channel) Publish(ctx context.Context, event DomainEvent) {
	c.mu.RLock()
	handlers := c.handlers[reflect.TypeOf(event)]
	c.mu.RUnlock()

	for _, handler := range handlers {
		if err := handler(ctx, event); err != nil {
			c.logger.Warn("event handler failed",
				zap.String("event_type", event.GetEventType()),
				zap.String("event_id", event.GetEventID()),
				zap.Error(err),
			)
		}
	}
}
