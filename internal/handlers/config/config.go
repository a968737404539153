// internal/handlers/config/config.go
package config

import (
	"fmt"
	"net/http"
	"strings"

	"crm-client/internal/domain/config"
	"crm-client/internal/pkg/response"
	service "crm-client/internal/service/config"
	notifService "crm-client/internal/service/notification"
	"crm-client/internal/validation"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type ConfigHandler struct {
	emailConfig *service.EmailConfigService
	connection  *service.ConnectionService
	notifier    *notifService.NotificationService
	logger      *zap.Logger
}

func NewConfigHandler(
	emailConfig *service.EmailConfigService,
	connection *service.ConnectionService,
	notifier *notifService.NotificationService,
	logger *zap.Logger,
) *ConfigHandler {
	return &ConfigHandler{
		emailConfig: emailConfig,
		connection:  connection,
		notifier:    notifier,
		logger:      logger,
	}
}

// ========== Email setup ==========

func (h *ConfigHandler) GetEmailConfig(c *gin.Context) {
	response.Success(c, http.StatusOK, "email configuration", h.emailConfig.GetConfig(c.Request.Context()))
}

// SaveEmailConfig stores the settings of one provider
func (h *ConfigHandler) SaveEmailConfig(c *gin.Context) {
	var req config.ProviderConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}
	if err := validation.Struct(req); err != nil {
		response.ValidationError(c, "invalid configuration", err)
		return
	}

	label := strings.ToUpper(string(req.Provider))
	res := h.emailConfig.SaveConfig(c.Request.Context(), req)
	if res.Success {
		h.notifier.Success(fmt.Sprintf("%s configuration saved successfully!", label))
	} else {
		h.notifier.Error(fmt.Sprintf("Failed to save %s configuration: %s", label, res.Error))
	}
	response.Outcome(c, res.Success, http.StatusOK, res)
}

// TestEmailConnection asks the backend to try the provider settings
func (h *ConfigHandler) TestEmailConnection(c *gin.Context) {
	var req config.ProviderConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}
	if !req.Provider.Valid() {
		response.ValidationError(c, "invalid configuration", validation.Errors{"provider": "Unknown provider"})
		return
	}

	label := strings.ToUpper(string(req.Provider))
	verdict := h.emailConfig.TestConnection(c.Request.Context(), req)
	if verdict.Success {
		h.notifier.Success(fmt.Sprintf("%s connection test successful!", label))
	} else {
		h.notifier.Error(fmt.Sprintf("%s connection test failed: %s", label, verdict.Message))
	}
	response.Outcome(c, verdict.Success, http.StatusOK, verdict)
}

// ========== Backend connectivity ==========

type connectionRequest struct {
	Connected *bool `json:"connected" validate:"required"`
}

func (h *ConfigHandler) GetConnection(c *gin.Context) {
	response.Success(c, http.StatusOK, "connection state", config.ConnectionState{Connected: h.connection.Connected()})
}

// SetConnection toggles whether mutations are mirrored to the backend
func (h *ConfigHandler) SetConnection(c *gin.Context) {
	var req connectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}
	if err := validation.Struct(req); err != nil {
		response.ValidationError(c, "invalid connection state", err)
		return
	}

	if h.connection.Set(*req.Connected) {
		if *req.Connected {
			h.notifier.Success("Connected to backend")
		} else {
			h.notifier.Warning("Working offline: changes stay local")
		}
	}
	response.Success(c, http.StatusOK, "connection state", config.ConnectionState{Connected: h.connection.Connected()})
}
