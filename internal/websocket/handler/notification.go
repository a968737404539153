// internal/websocket/handler/notification.go
package handler

import (
	"context"
	"fmt"

	"crm-client/internal/domain/notification"
	wstypes "crm-client/internal/domain/websocket"
	ws "crm-client/internal/websocket"
)

// Notifier is the slice of the notification service the socket needs.
type Notifier interface {
	Current() (notification.Notification, bool)
	Dismiss(id string) bool
}

type NotificationHandler struct {
	notifier Notifier
}

func NewNotificationHandler(notifier Notifier) *NotificationHandler {
	return &NotificationHandler{notifier: notifier}
}

// SupportedEvents returns events this handler supports
func (h *NotificationHandler) SupportedEvents() []wstypes.EventType {
	return []wstypes.EventType{
		wstypes.EventTypeNotificationCurrent,
		wstypes.EventTypeNotificationDismiss,
	}
}

// HandleMessage processes notification-related messages
func (h *NotificationHandler) HandleMessage(ctx context.Context, client *ws.Client, msg *wstypes.WSMessage) error {
	switch msg.Type {
	case wstypes.EventTypeNotificationCurrent:
		return h.handleCurrent(client)

	case wstypes.EventTypeNotificationDismiss:
		return h.handleDismiss(client, msg)

	default:
		return fmt.Errorf("unsupported event type: %s", msg.Type)
	}
}

// SendCurrent replays the notification on screen, if any, to one client.
func (h *NotificationHandler) SendCurrent(client *ws.Client) {
	if n, ok := h.notifier.Current(); ok {
		client.SendMessage(wstypes.NewMessage(wstypes.EventTypeNotification, n))
	}
}

func (h *NotificationHandler) handleCurrent(client *ws.Client) error {
	var current *notification.Notification
	if n, ok := h.notifier.Current(); ok {
		current = &n
	}

	client.SendMessage(wstypes.NewMessage(wstypes.EventTypeNotificationCurrent, map[string]interface{}{
		"notification": current,
	}))
	return nil
}

func (h *NotificationHandler) handleDismiss(client *ws.Client, msg *wstypes.WSMessage) error {
	var req struct {
		ID string `json:"id"`
	}
	if msg.Data != nil {
		if err := ws.DecodeData(msg.Data, &req); err != nil {
			client.SendError("invalid_request", "Invalid dismiss request", err.Error())
			return nil
		}
	}

	// The hidden broadcast reaches every console, including this one.
	h.notifier.Dismiss(req.ID)
	return nil
}
