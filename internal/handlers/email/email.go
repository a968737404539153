// internal/handlers/email/email.go
package email

import (
	"fmt"
	"net/http"
	"strconv"

	"crm-client/internal/domain/email"
	xerrors "crm-client/internal/pkg/errors"
	"crm-client/internal/pkg/response"
	"crm-client/internal/query"
	service "crm-client/internal/service/email"
	notifService "crm-client/internal/service/notification"
	"crm-client/internal/validation"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type EmailHandler struct {
	emailService *service.EmailService
	notifier     *notifService.NotificationService
	logger       *zap.Logger
}

func NewEmailHandler(emailService *service.EmailService, notifier *notifService.NotificationService, logger *zap.Logger) *EmailHandler {
	return &EmailHandler{
		emailService: emailService,
		notifier:     notifier,
		logger:       logger,
	}
}

// ========== Mailbox ==========

// ListEmails returns the mailbox view, newest first
func (h *EmailHandler) ListEmails(c *gin.Context) {
	var filters email.EmailListFilters
	if err := c.ShouldBindQuery(&filters); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid query parameters", err)
		return
	}
	views := h.emailService.Filter(query.EmailFilter{View: filters.View, Search: filters.Search})
	response.Success(c, http.StatusOK, "emails retrieved", views)
}

func (h *EmailHandler) GetStats(c *gin.Context) {
	response.Success(c, http.StatusOK, "email stats", h.emailService.Stats())
}

func (h *EmailHandler) GetEmail(c *gin.Context) {
	id, ok := emailID(c)
	if !ok {
		return
	}
	view, found := h.emailService.View(id)
	if !found {
		response.NotFound(c, "email not found")
		return
	}
	response.Success(c, http.StatusOK, "email retrieved", view)
}

// CreateEmail files a message in the mailbox without sending it
func (h *EmailHandler) CreateEmail(c *gin.Context) {
	var req email.CreateEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}
	if err := validation.Struct(req); err != nil {
		response.ValidationError(c, "invalid email", err)
		return
	}
	res := h.emailService.Add(req)
	response.Outcome(c, res.Success, http.StatusCreated, res)
}

func (h *EmailHandler) UpdateEmail(c *gin.Context) {
	id, ok := emailID(c)
	if !ok {
		return
	}
	var req email.UpdateEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}
	if err := validation.Struct(req); err != nil {
		response.ValidationError(c, "invalid email", err)
		return
	}
	res := h.emailService.Update(id, req)
	response.Outcome(c, res.Success, http.StatusOK, res)
}

// MarkRead sets the read flag; an empty body marks the email read
func (h *EmailHandler) MarkRead(c *gin.Context) {
	id, ok := emailID(c)
	if !ok {
		return
	}
	var req email.MarkReadRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			response.Error(c, http.StatusBadRequest, "invalid request", err)
			return
		}
	}
	isRead := true
	if req.IsRead != nil {
		isRead = *req.IsRead
	}
	res := h.emailService.MarkRead(id, isRead)
	response.Outcome(c, res.Success, http.StatusOK, res)
}

func (h *EmailHandler) ToggleStar(c *gin.Context) {
	id, ok := emailID(c)
	if !ok {
		return
	}
	res := h.emailService.ToggleStar(id)
	response.Outcome(c, res.Success, http.StatusOK, res)
}

func (h *EmailHandler) DeleteEmail(c *gin.Context) {
	id, ok := emailID(c)
	if !ok {
		return
	}
	res := h.emailService.Delete(id)
	if res.Success {
		h.notifier.Success("Email deleted successfully!")
	} else {
		h.notifier.Error("Failed to delete email: " + res.Error)
	}
	response.Outcome(c, res.Success, http.StatusOK, res)
}

// ========== Compose ==========

func (h *EmailHandler) SendEmail(c *gin.Context) {
	draft, ok := bindDraft(c)
	if !ok {
		return
	}
	res := h.emailService.Send(c.Request.Context(), draft)
	if res.Success {
		h.notifier.Success("Email sent successfully!")
	} else {
		h.notifier.Error("Failed to send email: " + res.Error)
	}
	response.Outcome(c, res.Success, http.StatusCreated, res)
}

// ComposeReply returns a draft answering the email
func (h *EmailHandler) ComposeReply(c *gin.Context) {
	id, ok := emailID(c)
	if !ok {
		return
	}
	res := h.emailService.ComposeReply(id)
	response.Outcome(c, res.Success, http.StatusOK, res)
}

func (h *EmailHandler) ListTemplates(c *gin.Context) {
	response.Success(c, http.StatusOK, "templates retrieved", h.emailService.Templates())
}

func (h *EmailHandler) ApplyTemplate(c *gin.Context) {
	id, ok := emailID(c)
	if !ok {
		return
	}
	var req email.ApplyTemplateRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			response.Error(c, http.StatusBadRequest, "invalid request", err)
			return
		}
	}
	res := h.emailService.ApplyTemplate(id, req)
	response.Outcome(c, res.Success, http.StatusOK, res)
}

// ========== Queue ==========

func (h *EmailHandler) QueueEmail(c *gin.Context) {
	draft, ok := bindDraft(c)
	if !ok {
		return
	}
	res := h.emailService.Queue(draft)
	if res.Success {
		h.notifier.Info("Email added to queue!")
	}
	response.Outcome(c, res.Success, http.StatusCreated, res)
}

func (h *EmailHandler) ListQueue(c *gin.Context) {
	response.Success(c, http.StatusOK, "queue retrieved", h.emailService.ListQueue())
}

func (h *EmailHandler) ClearQueue(c *gin.Context) {
	h.emailService.ClearQueue()
	response.Success(c, http.StatusOK, "queue cleared", nil)
}

// ProcessQueue sends every queued draft in one bulk request
func (h *EmailHandler) ProcessQueue(c *gin.Context) {
	res := h.emailService.ProcessQueue(c.Request.Context())
	switch {
	case res.Success && res.Value.Failed > 0:
		h.notifier.Warning(fmt.Sprintf("%d emails sent successfully, %d failed", res.Value.Successful, res.Value.Failed))
	case res.Success:
		h.notifier.Success(fmt.Sprintf("%d emails sent successfully, %d failed", res.Value.Successful, res.Value.Failed))
	case res.Error == xerrors.ErrEmptyQueue.Error():
		h.notifier.Info("No emails in queue")
	default:
		h.notifier.Error("Failed to process email queue: " + res.Error)
	}
	response.Outcome(c, res.Success, http.StatusOK, res)
}

func bindDraft(c *gin.Context) (email.Draft, bool) {
	var draft email.Draft
	if err := c.ShouldBindJSON(&draft); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return draft, false
	}
	if err := validation.Compose(draft); err != nil {
		response.ValidationError(c, "invalid email", err)
		return draft, false
	}
	return draft, true
}

func emailID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "invalid email ID", err)
		return 0, false
	}
	return id, true
}
