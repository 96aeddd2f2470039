package eventbus

import (
	"context"
	"sync"

	"github.com/quillhq/newsdesk/internal/platform/logger"
)

// Bus manages subscriptions and event dispatching.
type Bus struct {
	subscriptions map[Topic][]Handler
	mu            sync.RWMutex // Protects the subscriptions map
	logger        logger.Logger
}

// NewBus creates a new event bus.
func NewBus(logger logger.Logger) *Bus {
	return &Bus{
		subscriptions: make(map[Topic][]Handler),
		logger:        logger,
	}
}

// Subscribe adds a handler for a specific topic.
func (b *Bus) Subscribe(topic Topic, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.subscriptions[topic] = append(b.subscriptions[topic], handler)
}

// Publish sends an event to all subscribers of a topic (fire-and-forget).
// Handlers run on a detached context: the publisher is typically a request
// handler whose context dies with the response, and subscribers must be able
// to finish after it.
func (b *Bus) Publish(ctx context.Context, event Event) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	handlerCtx := context.WithoutCancel(ctx)

	if handlers, found := b.subscriptions[event.Topic]; found {
		for _, handler := range handlers {
			go func(h Handler) {
				if err := h(handlerCtx, event); err != nil {
					b.logger.Error(handlerCtx, "event handler failed", "topic", event.Topic, "error", err)
				}
			}(handler)
		}
	}
}
