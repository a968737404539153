package websocket

import (
	"context"
	"sync"

	"crm-client/internal/domain/notification"
	wstypes "crm-client/internal/domain/websocket"

	"go.uber.org/zap"
)

// Hub fans console events out to every connected browser tab.
type Hub struct {
	clients map[*Client]bool
	mu      sync.RWMutex

	// Registration/unregistration
	Register   chan *Client
	unregister chan *Client

	// Broadcasting
	broadcast chan *BroadcastMessage

	// Handler registry for modular message handling
	handlerRegistry *HandlerRegistry

	// OnConnect, when set, runs for every newly registered client.
	OnConnect func(*Client)

	done     chan struct{}
	doneOnce sync.Once
	logger   *zap.Logger
}

type BroadcastMessage struct {
	Channel wstypes.ChannelType
	Message *wstypes.WSMessage
}

func NewHub(logger *zap.Logger) *Hub {
	return &Hub{
		clients:         make(map[*Client]bool),
		Register:        make(chan *Client),
		unregister:      make(chan *Client),
		broadcast:       make(chan *BroadcastMessage, 256),
		handlerRegistry: NewHandlerRegistry(),
		done:            make(chan struct{}),
		logger:          logger,
	}
}

// RegisterHandler routes the handler's events to it.
func (h *Hub) RegisterHandler(handler MessageHandler) error {
	if err := h.handlerRegistry.Register(handler); err != nil {
		return err
	}
	h.logger.Debug("websocket handler registered", zap.Int("events", len(handler.SupportedEvents())))
	return nil
}

// Events lists the client events served by registered handlers.
func (h *Hub) Events() []wstypes.EventType {
	return h.handlerRegistry.Events()
}

// HandleClientMessage processes a message from a client using registered handlers
func (h *Hub) HandleClientMessage(ctx context.Context, client *Client, msg *wstypes.WSMessage) (bool, error) {
	handler, exists := h.handlerRegistry.GetHandler(msg.Type)
	if !exists {
		return false, nil
	}
	return true, handler.HandleMessage(ctx, client, msg)
}

func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			h.shutdown()
			return

		case client := <-h.Register:
			h.registerClient(client)

		case client := <-h.unregister:
			h.unregisterClient(client)

		case msg := <-h.broadcast:
			h.BroadcastMessage(msg)
		}
	}
}

// Unregister detaches a client; it is a no-op once the hub has stopped.
func (h *Hub) Unregister(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

func (h *Hub) registerClient(client *Client) {
	h.mu.Lock()
	h.clients[client] = true
	total := len(h.clients)
	h.mu.Unlock()

	// Every console listens to notifications without asking.
	client.Subscribe(wstypes.ChannelNotifications)

	h.logger.Info("websocket client connected",
		zap.String("client_id", client.id),
		zap.Int("total", total),
	)

	client.SendMessage(wstypes.NewMessage(wstypes.EventTypeConnected, map[string]interface{}{
		"client_id": client.id,
		"channels":  client.Channels(),
	}))

	if h.OnConnect != nil {
		h.OnConnect(client)
	}
}

func (h *Hub) unregisterClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, exists := h.clients[client]; exists {
		delete(h.clients, client)
		client.Close()

		h.logger.Info("websocket client disconnected",
			zap.String("client_id", client.id),
			zap.Int("total", len(h.clients)),
		)
	}
}

func (h *Hub) BroadcastMessage(msg *BroadcastMessage) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for client := range h.clients {
		if client.IsSubscribed(msg.Channel) {
			client.SendMessage(msg.Message)
		}
	}
}

func (h *Hub) TotalClients() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// enqueue hands msg to the run loop without ever blocking the caller.
func (h *Hub) enqueue(msg *BroadcastMessage) {
	select {
	case h.broadcast <- msg:
	case <-h.done:
	default:
		h.logger.Warn("websocket broadcast dropped, queue full",
			zap.String("type", string(msg.Message.Type)),
		)
	}
}

// Public methods for broadcasting

func (h *Hub) BroadcastNotification(n *notification.Notification) {
	h.enqueue(&BroadcastMessage{
		Channel: wstypes.ChannelNotifications,
		Message: wstypes.NewMessage(wstypes.EventTypeNotification, n),
	})
}

func (h *Hub) BroadcastNotificationHidden(id string) {
	h.enqueue(&BroadcastMessage{
		Channel: wstypes.ChannelNotifications,
		Message: wstypes.NewMessage(wstypes.EventTypeNotificationHidden, map[string]interface{}{
			"id": id,
		}),
	})
}

func (h *Hub) BroadcastConnectionChanged(connected bool) {
	h.enqueue(&BroadcastMessage{
		Channel: wstypes.ChannelSystem,
		Message: wstypes.NewMessage(wstypes.EventTypeConnectionChanged, map[string]interface{}{
			"connected": connected,
		}),
	})
}

func (h *Hub) shutdown() {
	h.doneOnce.Do(func() { close(h.done) })

	h.mu.Lock()
	defer h.mu.Unlock()

	for client := range h.clients {
		client.Close()
		delete(h.clients, client)
	}
}
