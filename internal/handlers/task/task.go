// internal/handlers/task/task.go
package task

import (
	"fmt"
	"net/http"
	"strconv"

	"crm-client/internal/domain/task"
	"crm-client/internal/pkg/response"
	"crm-client/internal/query"
	configService "crm-client/internal/service/config"
	notifService "crm-client/internal/service/notification"
	service "crm-client/internal/service/task"
	"crm-client/internal/validation"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type TaskHandler struct {
	taskService *service.TaskService
	notifier    *notifService.NotificationService
	connection  *configService.ConnectionService
	logger      *zap.Logger
}

func NewTaskHandler(
	taskService *service.TaskService,
	notifier *notifService.NotificationService,
	connection *configService.ConnectionService,
	logger *zap.Logger,
) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
		notifier:    notifier,
		connection:  connection,
		logger:      logger,
	}
}

// CreateTask creates a new task
func (h *TaskHandler) CreateTask(c *gin.Context) {
	var req task.CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}
	if err := validation.Task(req, h.taskService.Today()); err != nil {
		response.ValidationError(c, "invalid task", err)
		return
	}

	res := h.taskService.Add(c.Request.Context(), req, h.connection.Connected())
	if res.Success {
		h.notifier.Success(fmt.Sprintf("Task \"%s\" created successfully!", res.Value.Title))
	} else {
		h.notifier.Error("Failed to create task: " + res.Error)
	}
	response.Outcome(c, res.Success, http.StatusCreated, res)
}

// GetTask returns one task with its customer name and urgency
func (h *TaskHandler) GetTask(c *gin.Context) {
	id, ok := taskID(c)
	if !ok {
		return
	}
	view, found := h.taskService.View(id)
	if !found {
		response.NotFound(c, "task not found")
		return
	}
	response.Success(c, http.StatusOK, "task retrieved", view)
}

// ListTasks returns the filtered board, most urgent first
func (h *TaskHandler) ListTasks(c *gin.Context) {
	var filters task.TaskListFilters
	if err := c.ShouldBindQuery(&filters); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid query parameters", err)
		return
	}
	views := h.taskService.Filter(query.TaskFilter{
		Status:   filters.Status,
		Priority: filters.Priority,
		Assignee: filters.Assignee,
		Search:   filters.Search,
	})
	response.Success(c, http.StatusOK, "tasks retrieved", views)
}

func (h *TaskHandler) GetStats(c *gin.Context) {
	response.Success(c, http.StatusOK, "task stats", h.taskService.Stats())
}

// UpdateTask updates a task
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	id, ok := taskID(c)
	if !ok {
		return
	}
	var req task.UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}
	if err := validation.TaskUpdate(req); err != nil {
		response.ValidationError(c, "invalid task", err)
		return
	}

	res := h.taskService.Update(c.Request.Context(), id, req, h.connection.Connected())
	if res.Success {
		h.notifier.Success(fmt.Sprintf("Task \"%s\" updated successfully!", res.Value.Title))
	} else {
		h.notifier.Error("Failed to update task: " + res.Error)
	}
	response.Outcome(c, res.Success, http.StatusOK, res)
}

func (h *TaskHandler) DeleteTask(c *gin.Context) {
	id, ok := taskID(c)
	if !ok {
		return
	}

	res := h.taskService.Delete(c.Request.Context(), id, h.connection.Connected())
	if res.Success {
		h.notifier.Success(fmt.Sprintf("Task \"%s\" deleted successfully!", res.Value.Title))
	} else {
		h.notifier.Error("Failed to delete task: " + res.Error)
	}
	response.Outcome(c, res.Success, http.StatusOK, res)
}

func (h *TaskHandler) UpdateStatus(c *gin.Context) {
	id, ok := taskID(c)
	if !ok {
		return
	}
	var req task.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}
	if err := validation.Struct(req); err != nil {
		response.ValidationError(c, "invalid status", err)
		return
	}

	res := h.taskService.UpdateStatus(c.Request.Context(), id, req.Status, h.connection.Connected())
	if res.Success {
		h.notifier.Success(fmt.Sprintf("Task status updated to \"%s\"!", req.Status))
	} else {
		h.notifier.Error("Failed to update task status: " + res.Error)
	}
	response.Outcome(c, res.Success, http.StatusOK, res)
}

func (h *TaskHandler) AssignTask(c *gin.Context) {
	id, ok := taskID(c)
	if !ok {
		return
	}
	var req task.AssignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}
	if err := validation.Struct(req); err != nil {
		response.ValidationError(c, "invalid assignment", err)
		return
	}

	res := h.taskService.Assign(c.Request.Context(), id, req, h.connection.Connected())
	if res.Success {
		h.notifier.Success(fmt.Sprintf("Task assigned to %s!", req.AssignedTo))
	} else {
		h.notifier.Error("Failed to assign task: " + res.Error)
	}
	response.Outcome(c, res.Success, http.StatusOK, res)
}

func (h *TaskHandler) BulkUpdate(c *gin.Context) {
	var req task.BulkUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}
	if err := validation.Struct(req); err != nil {
		response.ValidationError(c, "invalid bulk update", err)
		return
	}

	res := h.taskService.BulkUpdate(c.Request.Context(), req, h.connection.Connected())
	if res.Success {
		h.notifier.Success(fmt.Sprintf("%d tasks updated successfully!", len(req.TaskIDs)))
	} else {
		h.notifier.Error("Failed to update tasks: " + res.Error)
	}
	response.Outcome(c, res.Success, http.StatusOK, res)
}

// LoadTasks replaces the local tasks with the backend's
func (h *TaskHandler) LoadTasks(c *gin.Context) {
	res := h.taskService.LoadFromBackend(c.Request.Context())
	if !res.Success {
		h.logger.Warn("task load failed", zap.String("error", res.Error))
		h.notifier.Error("Failed to load tasks: " + res.Error)
	}
	response.Outcome(c, res.Success, http.StatusOK, res)
}

func taskID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "invalid task ID", err)
		return 0, false
	}
	return id, true
}
