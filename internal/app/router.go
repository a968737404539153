// internal/app/router.go
package app

import (
	configHandler "crm-client/internal/handlers/config"
	customerHandler "crm-client/internal/handlers/customer"
	dashboardHandler "crm-client/internal/handlers/dashboard"
	emailHandler "crm-client/internal/handlers/email"
	notifyHandler "crm-client/internal/handlers/notification"
	taskHandler "crm-client/internal/handlers/task"
	wsHandler "crm-client/internal/handlers/websocket"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handlers struct {
	CustomerHandler  *customerHandler.CustomerHandler
	TaskHandler      *taskHandler.TaskHandler
	EmailHandler     *emailHandler.EmailHandler
	ConfigHandler    *configHandler.ConfigHandler
	DashboardHandler *dashboardHandler.DashboardHandler
	NotifHandler     *notifyHandler.NotificationHandler
	WSHandler        *wsHandler.WebSocketHandler
}

func SetupRouter(r *gin.Engine, logger *zap.Logger, h *Handlers) {
	api := r.Group("/api/v1")

	// ==================== Health Check ====================
	api.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok", "version": "1.0.0"})
	})

	// ==================== WebSocket ====================
	r.GET("/ws", h.WSHandler.HandleConnection)
	api.GET("/ws", h.WSHandler.HandleConnection)
	api.GET("/ws/stats", h.WSHandler.GetStats)

	// ==================== Backend Connectivity ====================
	api.GET("/connection", h.ConfigHandler.GetConnection)
	api.PUT("/connection", h.ConfigHandler.SetConnection)

	// ==================== Customers ====================
	customers := api.Group("/customers")
	{
		customers.GET("", h.CustomerHandler.ListCustomers)
		customers.GET("/stats", h.CustomerHandler.GetStats)
		customers.POST("", h.CustomerHandler.CreateCustomer)
		customers.POST("/load", h.CustomerHandler.LoadCustomers)
		customers.GET("/:id", h.CustomerHandler.GetCustomer)
		customers.PUT("/:id", h.CustomerHandler.UpdateCustomer)
		customers.DELETE("/:id", h.CustomerHandler.DeleteCustomer)
	}

	// ==================== Tasks ====================
	tasks := api.Group("/tasks")
	{
		tasks.GET("", h.TaskHandler.ListTasks)
		tasks.GET("/stats", h.TaskHandler.GetStats)
		tasks.POST("", h.TaskHandler.CreateTask)
		tasks.POST("/load", h.TaskHandler.LoadTasks)
		tasks.PUT("/bulk", h.TaskHandler.BulkUpdate)
		tasks.GET("/:id", h.TaskHandler.GetTask)
		tasks.PUT("/:id", h.TaskHandler.UpdateTask)
		tasks.DELETE("/:id", h.TaskHandler.DeleteTask)
		tasks.PUT("/:id/status", h.TaskHandler.UpdateStatus)
		tasks.PUT("/:id/assign", h.TaskHandler.AssignTask)
	}

	// ==================== Emails ====================
	emails := api.Group("/emails")
	{
		emails.GET("", h.EmailHandler.ListEmails)
		emails.POST("", h.EmailHandler.CreateEmail)
		emails.GET("/stats", h.EmailHandler.GetStats)
		emails.POST("/send", h.EmailHandler.SendEmail)

		emails.GET("/queue", h.EmailHandler.ListQueue)
		emails.POST("/queue", h.EmailHandler.QueueEmail)
		emails.DELETE("/queue", h.EmailHandler.ClearQueue)
		emails.POST("/queue/process", h.EmailHandler.ProcessQueue)

		emails.GET("/templates", h.EmailHandler.ListTemplates)
		emails.POST("/templates/:id/apply", h.EmailHandler.ApplyTemplate)

		emails.GET("/:id", h.EmailHandler.GetEmail)
		emails.PUT("/:id", h.EmailHandler.UpdateEmail)
		emails.DELETE("/:id", h.EmailHandler.DeleteEmail)
		emails.PUT("/:id/read", h.EmailHandler.MarkRead)
		emails.PUT("/:id/star", h.EmailHandler.ToggleStar)
		emails.GET("/:id/reply", h.EmailHandler.ComposeReply)
	}

	// ==================== Email Setup ====================
	emailSetup := api.Group("/email")
	{
		emailSetup.GET("/config", h.ConfigHandler.GetEmailConfig)
		emailSetup.POST("/config", h.ConfigHandler.SaveEmailConfig)
		emailSetup.POST("/test", h.ConfigHandler.TestEmailConnection)
	}

	// ==================== Search & Dashboard ====================
	api.GET("/search", h.DashboardHandler.Search)
	api.GET("/dashboard", h.DashboardHandler.GetDashboard)

	// ==================== Notifications ====================
	notifications := api.Group("/notifications")
	{
		notifications.GET("/current", h.NotifHandler.GetCurrent)
		notifications.DELETE("/current", h.NotifHandler.DismissCurrent)
	}

	logger.Info("routes registered", zap.Int("count", len(r.Routes())))
}
