// README: In-process event bus with synchronous dispatch.
package eventbus

import (
	"context"
	"sync"

	"haulbid/internal/domain"
)

// MemoryBus dispatches events to subscribers in the publisher's
// goroutine. Suited to tests and single-process deployments.
type MemoryBus struct {
	mu       sync.RWMutex
	handlers map[string][]func(domain.Event)
}

func NewMemoryBus() *MemoryBus {
	return &MemoryBus{handlers: make(map[string][]func(domain.Event))}
}

func (b *MemoryBus) Publish(_ context.Context, event domain.Event) error {
	b.mu.RLock()
	handlers := b.handlers[event.Name()]
	b.mu.RUnlock()
	for _, handle := range handlers {
		handle(event)
	}
	return nil
}

func (b *MemoryBus) Subscribe(name string, handler func(domain.Event)) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[name] = append(b.handlers[name], handler)
}
