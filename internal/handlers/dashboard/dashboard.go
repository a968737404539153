// internal/handlers/dashboard/dashboard.go
package dashboard

import (
	"net/http"

	"crm-client/internal/pkg/response"
	"crm-client/internal/query"
	customerService "crm-client/internal/service/customer"
	emailService "crm-client/internal/service/email"
	taskService "crm-client/internal/service/task"

	"github.com/gin-gonic/gin"
)

// DashboardHandler serves the read-only views that span every collection.
type DashboardHandler struct {
	customers *customerService.CustomerService
	tasks     *taskService.TaskService
	emails    *emailService.EmailService
}

func NewDashboardHandler(
	customers *customerService.CustomerService,
	tasks *taskService.TaskService,
	emails *emailService.EmailService,
) *DashboardHandler {
	return &DashboardHandler{customers: customers, tasks: tasks, emails: emails}
}

func (h *DashboardHandler) GetDashboard(c *gin.Context) {
	d := query.BuildDashboard(
		h.customers.List(),
		h.tasks.List(),
		h.emails.List(),
		h.customers.Names(),
		h.tasks.Today(),
	)
	response.Success(c, http.StatusOK, "dashboard", d)
}

// Search runs q over customers, tasks and emails at once
func (h *DashboardHandler) Search(c *gin.Context) {
	res := query.Search(
		c.Query("q"),
		h.customers.List(),
		h.tasks.List(),
		h.emails.List(),
		h.customers.Names(),
		h.tasks.Today(),
	)
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"results": res,
		"total":   res.Total(),
	})
}
