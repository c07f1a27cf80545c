package events

import (
	"fmt"
	"log/slog"
	"runtime/debug"
	"sync"
)

// Bus is a simple event bus for UI services. Handlers run synchronously on
// the publishing goroutine, which is always the UI loop, so a service sees
// the effects of an event before Publish returns.
type Bus struct {
	mu        sync.RWMutex
	listeners map[string][]func(any)
}

// NewBus creates a new event bus
func NewBus() *Bus {
	return &Bus{
		listeners: make(map[string][]func(any)),
	}
}

// Subscribe registers a listener for an event type
func (b *Bus) Subscribe(eventType string, handler func(any)) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.listeners[eventType] = append(b.listeners[eventType], handler)
}

// Publish sends an event to all listeners, in subscription order
func (b *Bus) Publish(event any) {
	eventType := TypeOf(event)

	b.mu.RLock()
	handlers := make([]func(any), len(b.listeners[eventType]))
	copy(handlers, b.listeners[eventType])
	b.mu.RUnlock()

	for _, handler := range handlers {
		b.deliver(eventType, handler, event)
	}
}

func (b *Bus) deliver(eventType string, handler func(any), event any) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("ui bus: handler panic", "type", eventType, "panic", r, "stack", string(debug.Stack()))
		}
	}()
	handler(event)
}

// TypeOf returns the subscription key of an event, e.g. "sorting.SortModeChangedEvent"
func TypeOf(event any) string {
	return fmt.Sprintf("%T", event)
}
