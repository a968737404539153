// internal/handlers/notification/notification.go
package notification

import (
	"net/http"

	"crm-client/internal/pkg/response"
	service "crm-client/internal/service/notification"

	"github.com/gin-gonic/gin"
)

type NotificationHandler struct {
	notifier *service.NotificationService
}

func NewNotificationHandler(notifier *service.NotificationService) *NotificationHandler {
	return &NotificationHandler{notifier: notifier}
}

// GetCurrent returns the notification on screen, or null
func (h *NotificationHandler) GetCurrent(c *gin.Context) {
	n, ok := h.notifier.Current()
	if !ok {
		response.Success(c, http.StatusOK, "no notification", nil)
		return
	}
	response.Success(c, http.StatusOK, "current notification", n)
}

// DismissCurrent hides the current notification. With ?id= only that one.
func (h *NotificationHandler) DismissCurrent(c *gin.Context) {
	hidden := h.notifier.Dismiss(c.Query("id"))
	response.Success(c, http.StatusOK, "notification dismissed", gin.H{"dismissed": hidden})
}
