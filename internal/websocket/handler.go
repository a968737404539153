// internal/websocket/handler.go
package websocket

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"

	wstypes "crm-client/internal/domain/websocket"
)

// MessageHandler serves a group of client events.
type MessageHandler interface {
	HandleMessage(ctx context.Context, client *Client, msg *wstypes.WSMessage) error
	SupportedEvents() []wstypes.EventType
}

// HandlerRegistry routes client events to handlers. Built-in events (ping,
// subscribe, unsubscribe) are not routed through it.
type HandlerRegistry struct {
	mu       sync.RWMutex
	handlers map[wstypes.EventType]MessageHandler
}

func NewHandlerRegistry() *HandlerRegistry {
	return &HandlerRegistry{
		handlers: make(map[wstypes.EventType]MessageHandler),
	}
}

// Register claims every event the handler supports. An event already owned
// by another handler is an error and nothing is registered.
func (r *HandlerRegistry) Register(handler MessageHandler) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	events := handler.SupportedEvents()
	for _, eventType := range events {
		if owner, taken := r.handlers[eventType]; taken && owner != handler {
			return fmt.Errorf("event %q already has a handler", eventType)
		}
	}
	for _, eventType := range events {
		r.handlers[eventType] = handler
	}
	return nil
}

func (r *HandlerRegistry) GetHandler(eventType wstypes.EventType) (MessageHandler, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	handler, exists := r.handlers[eventType]
	return handler, exists
}

// Events lists the routed event types in sorted order.
func (r *HandlerRegistry) Events() []wstypes.EventType {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]wstypes.EventType, 0, len(r.handlers))
	for eventType := range r.handlers {
		out = append(out, eventType)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// DecodeData converts a message payload into target through a JSON round trip.
func DecodeData(data interface{}, target interface{}) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, target)
}
