// internal/handlers/customer/customer.go
package customer

import (
	"fmt"
	"net/http"
	"strconv"

	"crm-client/internal/domain/customer"
	"crm-client/internal/pkg/response"
	configService "crm-client/internal/service/config"
	service "crm-client/internal/service/customer"
	notifService "crm-client/internal/service/notification"
	"crm-client/internal/validation"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type CustomerHandler struct {
	customerService *service.CustomerService
	notifier        *notifService.NotificationService
	connection      *configService.ConnectionService
	logger          *zap.Logger
}

func NewCustomerHandler(
	customerService *service.CustomerService,
	notifier *notifService.NotificationService,
	connection *configService.ConnectionService,
	logger *zap.Logger,
) *CustomerHandler {
	return &CustomerHandler{
		customerService: customerService,
		notifier:        notifier,
		connection:      connection,
		logger:          logger,
	}
}

// CreateCustomer creates a new customer
func (h *CustomerHandler) CreateCustomer(c *gin.Context) {
	var req customer.CreateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}
	if err := validation.Customer(req); err != nil {
		response.ValidationError(c, "invalid customer", err)
		return
	}

	res := h.customerService.Add(c.Request.Context(), req, h.connection.Connected())
	if res.Success {
		h.notifier.Success(fmt.Sprintf("Customer \"%s\" added successfully!", res.Value.Name))
	} else {
		h.notifier.Error("Failed to add customer: " + res.Error)
	}
	response.Outcome(c, res.Success, http.StatusCreated, res)
}

// GetCustomer retrieves a customer by ID
func (h *CustomerHandler) GetCustomer(c *gin.Context) {
	id, ok := customerID(c)
	if !ok {
		return
	}
	cust, found := h.customerService.Find(id)
	if !found {
		response.NotFound(c, "customer not found")
		return
	}
	response.Success(c, http.StatusOK, "customer retrieved", cust)
}

// ListCustomers retrieves customers with filters
func (h *CustomerHandler) ListCustomers(c *gin.Context) {
	var filters customer.CustomerListFilters
	if err := c.ShouldBindQuery(&filters); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid query parameters", err)
		return
	}
	response.Success(c, http.StatusOK, "customers retrieved", h.customerService.Filter(filters))
}

func (h *CustomerHandler) GetStats(c *gin.Context) {
	response.Success(c, http.StatusOK, "customer stats", h.customerService.Stats())
}

// UpdateCustomer updates a customer
func (h *CustomerHandler) UpdateCustomer(c *gin.Context) {
	id, ok := customerID(c)
	if !ok {
		return
	}
	var req customer.UpdateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}
	if err := validation.CustomerUpdate(req); err != nil {
		response.ValidationError(c, "invalid customer", err)
		return
	}

	res := h.customerService.Update(c.Request.Context(), id, req, h.connection.Connected())
	if res.Success {
		h.notifier.Success(fmt.Sprintf("Customer \"%s\" updated successfully!", res.Value.Name))
	} else {
		h.notifier.Error("Failed to update customer: " + res.Error)
	}
	response.Outcome(c, res.Success, http.StatusOK, res)
}

// DeleteCustomer removes a customer together with its tasks and emails
func (h *CustomerHandler) DeleteCustomer(c *gin.Context) {
	id, ok := customerID(c)
	if !ok {
		return
	}

	res := h.customerService.Delete(c.Request.Context(), id, h.connection.Connected())
	if res.Success {
		h.notifier.Success(fmt.Sprintf("Customer \"%s\" deleted successfully!", res.Value.Name))
	} else {
		h.notifier.Error("Failed to delete customer: " + res.Error)
	}
	response.Outcome(c, res.Success, http.StatusOK, res)
}

// LoadCustomers replaces the local customers with the backend's
func (h *CustomerHandler) LoadCustomers(c *gin.Context) {
	res := h.customerService.LoadFromBackend(c.Request.Context())
	if !res.Success {
		h.logger.Warn("customer load failed", zap.String("error", res.Error))
		h.notifier.Error("Failed to load customers: " + res.Error)
	}
	response.Outcome(c, res.Success, http.StatusOK, res)
}

func customerID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "invalid customer ID", err)
		return 0, false
	}
	return id, true
}
