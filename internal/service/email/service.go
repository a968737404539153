// internal/service/email/service.go
package email

import (
	"context"
	"fmt"
	"strings"
	"time"

	"crm-client/internal/domain/customer"
	"crm-client/internal/domain/email"
	xerrors "crm-client/internal/pkg/errors"
	"crm-client/internal/pkg/result"
	"crm-client/internal/query"
	"crm-client/internal/remotesync"
	"crm-client/internal/repository/memory"

	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"
)

const resultKey = "email"

const replyPrefix = "Re:"

// CustomerDirectory looks customers up for templates and replies.
type CustomerDirectory interface {
	Find(id int64) (customer.Customer, bool)
}

// EmailService owns the mailbox and the outbox queue. Mail has no backend
// table: mailbox changes stay local and only sending reaches the backend.
type EmailService struct {
	mailbox    *memory.Collection[email.Email]
	queue      *memory.Collection[email.QueuedEmail]
	mail       *remotesync.MailClient
	customers  CustomerDirectory
	names      query.NameLookup
	senderName string
	now        func() time.Time
	logger     *zap.Logger
}

func NewEmailService(
	initial []email.Email,
	mail *remotesync.MailClient,
	customers CustomerDirectory,
	names query.NameLookup,
	senderName string,
	now func() time.Time,
	logger *zap.Logger,
) *EmailService {
	if now == nil {
		now = time.Now
	}
	return &EmailService{
		mailbox:    memory.NewCollection("email", initial),
		queue:      memory.NewCollection[email.QueuedEmail]("queued email", nil),
		mail:       mail,
		customers:  customers,
		names:      names,
		senderName: senderName,
		now:        now,
		logger:     logger,
	}
}

func newThreadID() string {
	return "thread_" + ulid.Make().String()
}

func attachments(a []email.Attachment) []email.Attachment {
	if a == nil {
		return []email.Attachment{}
	}
	return a
}

// Add files a message in the mailbox, newest first.
func (s *EmailService) Add(req email.CreateEmailRequest) result.Result[email.Email] {
	e, err := s.mailbox.Prepend(func(id int64) (email.Email, error) {
		e := email.Email{
			ID:          id,
			CustomerID:  req.CustomerID,
			Subject:     req.Subject,
			From:        req.From,
			To:          req.To,
			CC:          req.CC,
			BCC:         req.BCC,
			Body:        req.Body,
			Timestamp:   s.now(),
			Thread:      req.Thread,
			Type:        req.Type,
			Status:      req.Status,
			Attachments: attachments(req.Attachments),
		}
		if req.Timestamp != nil {
			e.Timestamp = *req.Timestamp
		}
		if e.Type == "" {
			e.Type = email.DirectionIncoming
		}
		if e.Status == "" {
			e.Status = email.StatusDelivered
			if e.Type == email.DirectionOutgoing {
				e.Status = email.StatusPending
			}
		}
		if e.Thread == "" {
			e.Thread = newThreadID()
		}
		return e, nil
	})
	if err != nil {
		return result.Fail[email.Email](resultKey, err)
	}

	s.logger.Info("email filed", zap.Int64("email_id", e.ID), zap.String("type", string(e.Type)))
	return result.OK(resultKey, e)
}

func (s *EmailService) Update(id int64, req email.UpdateEmailRequest) result.Result[email.Email] {
	e, err := s.mailbox.Update(id, func(e *email.Email) error {
		if req.IsRead != nil {
			e.IsRead = *req.IsRead
		}
		if req.IsStarred != nil {
			e.IsStarred = *req.IsStarred
		}
		if req.Status != nil {
			e.Status = *req.Status
		}
		if req.Subject != nil {
			e.Subject = *req.Subject
		}
		if req.Body != nil {
			e.Body = *req.Body
		}
		return nil
	})
	if err != nil {
		s.logger.Warn("failed to update email", zap.Int64("email_id", id), zap.Error(err))
		return result.Fail[email.Email](resultKey, err)
	}
	return result.OK(resultKey, e)
}

func (s *EmailService) Delete(id int64) result.Result[email.Email] {
	e, err := s.mailbox.Delete(id)
	if err != nil {
		s.logger.Warn("failed to delete email", zap.Int64("email_id", id), zap.Error(err))
		return result.Fail[email.Email](resultKey, err)
	}
	s.logger.Info("email deleted", zap.Int64("email_id", id))
	return result.OK(resultKey, e)
}

func (s *EmailService) MarkRead(id int64, isRead bool) result.Result[email.Email] {
	return s.Update(id, email.UpdateEmailRequest{IsRead: &isRead})
}

func (s *EmailService) ToggleStar(id int64) result.Result[email.Email] {
	e, err := s.mailbox.Update(id, func(e *email.Email) error {
		e.IsStarred = !e.IsStarred
		return nil
	})
	if err != nil {
		return result.Fail[email.Email](resultKey, err)
	}
	return result.OK(resultKey, e)
}

// RemoveByCustomer drops the mail of a deleted customer.
func (s *EmailService) RemoveByCustomer(customerID int64) int {
	removed := s.mailbox.DeleteWhere(func(e email.Email) bool { return e.BelongsTo(customerID) })
	if len(removed) > 0 {
		s.logger.Info("emails removed with customer",
			zap.Int64("customer_id", customerID),
			zap.Int("count", len(removed)),
		)
	}
	return len(removed)
}

// sentEmail is the mailbox record of a draft the backend accepted.
func (s *EmailService) sentEmail(id int64, d email.Draft, messageID string) email.Email {
	return email.Email{
		ID:            id,
		CustomerID:    d.CustomerID,
		Subject:       d.Subject,
		From:          d.From,
		To:            d.To,
		CC:            d.CC,
		BCC:           d.BCC,
		Body:          d.Body,
		Timestamp:     s.now(),
		IsRead:        true,
		IsStarred:     false,
		Thread:        newThreadID(),
		Type:          email.DirectionOutgoing,
		Status:        email.StatusSent,
		Priority:      d.Priority,
		Attachments:   attachments(d.Attachments),
		SMTPMessageID: messageID,
	}
}

// Send hands the draft to the backend and files it as sent on success.
// Nothing is stored when the backend refuses.
func (s *EmailService) Send(ctx context.Context, d email.Draft) result.Result[email.Email] {
	if s.mail == nil {
		return result.Fail[email.Email](resultKey, xerrors.ErrBackendUnavailable)
	}
	res, err := s.mail.Send(ctx, remotesync.NewOutgoingEmail(d))
	if err != nil {
		s.logger.Error("failed to send email", zap.String("to", d.To), zap.Error(err))
		return result.Fail[email.Email](resultKey, err)
	}

	e, _ := s.mailbox.Prepend(func(id int64) (email.Email, error) {
		return s.sentEmail(id, d, res.MessageID), nil
	})

	s.logger.Info("email sent",
		zap.Int64("email_id", e.ID),
		zap.String("message_id", res.MessageID),
	)
	return result.OK(resultKey, e)
}

// Queue parks a draft in the outbox.
func (s *EmailService) Queue(d email.Draft) result.Result[email.QueuedEmail] {
	q, err := s.queue.Insert(func(id int64) (email.QueuedEmail, error) {
		return email.QueuedEmail{Draft: d, ID: id, QueuedAt: s.now()}, nil
	})
	if err != nil {
		return result.Fail[email.QueuedEmail]("queued", err)
	}
	s.logger.Info("email queued", zap.Int64("queue_id", q.ID), zap.Int("queue_length", s.queue.Len()))
	return result.OK("queued", q)
}

func (s *EmailService) ListQueue() []email.QueuedEmail {
	return s.queue.All()
}

// ClearQueue empties the outbox. Queue ids are never reused, so a bulk send
// still in flight cannot remove a draft queued after the clear.
func (s *EmailService) ClearQueue() {
	s.queue.Clear()
}

// ProcessQueue sends the whole outbox in one bulk request. Sent drafts move
// to the mailbox; failed ones stay queued for a later retry.
func (s *EmailService) ProcessQueue(ctx context.Context) result.Result[email.BulkSummary] {
	const key = "summary"

	pending := s.queue.All()
	if len(pending) == 0 {
		return result.Fail[email.BulkSummary](key, xerrors.ErrEmptyQueue)
	}
	if s.mail == nil {
		return result.Fail[email.BulkSummary](key, xerrors.ErrBackendUnavailable)
	}

	outgoing := make([]remotesync.OutgoingEmail, len(pending))
	for i, q := range pending {
		outgoing[i] = remotesync.NewOutgoingEmail(q.Draft)
	}

	res, err := s.mail.SendBulk(ctx, outgoing)
	if err != nil {
		s.logger.Error("failed to process email queue", zap.Int("queued", len(pending)), zap.Error(err))
		return result.Fail[email.BulkSummary](key, err)
	}

	summary := email.BulkSummary{Sent: []email.Email{}}
	delivered := make(map[int64]bool)
	for i, q := range pending {
		if i >= len(res.Results) || !res.Results[i].Success {
			continue
		}
		messageID := res.Results[i].MessageID
		e, _ := s.mailbox.Prepend(func(id int64) (email.Email, error) {
			return s.sentEmail(id, q.Draft, messageID), nil
		})
		summary.Sent = append(summary.Sent, e)
		delivered[q.ID] = true
	}
	s.queue.DeleteWhere(func(q email.QueuedEmail) bool { return delivered[q.ID] })

	summary.Successful = len(delivered)
	summary.Failed = len(pending) - len(delivered)
	summary.Remaining = s.queue.All()

	s.logger.Info("email queue processed",
		zap.Int("successful", summary.Successful),
		zap.Int("failed", summary.Failed),
	)
	return result.OK(key, summary)
}

// ComposeReply prepares a reply draft quoting the original message.
func (s *EmailService) ComposeReply(id int64) result.Result[email.Draft] {
	const key = "draft"

	orig, ok := s.mailbox.Find(id)
	if !ok {
		return result.Fail[email.Draft](key, xerrors.NotFound("email", id))
	}

	subject := orig.Subject
	if !strings.HasPrefix(subject, replyPrefix) {
		subject = replyPrefix + " " + subject
	}
	body := fmt.Sprintf("\n\n--- Original Message ---\nFrom: %s\nSent: %s\nSubject: %s\n\n%s",
		orig.From,
		orig.Timestamp.Format(time.RFC3339),
		orig.Subject,
		orig.Body,
	)

	return result.OK(key, email.Draft{
		CustomerID: orig.CustomerID,
		To:         orig.From,
		Subject:    subject,
		Body:       body,
	})
}

func (s *EmailService) Templates() []email.Template {
	out := make([]email.Template, len(defaultTemplates))
	copy(out, defaultTemplates)
	return out
}

// ApplyTemplate fills a template for a customer. Extra values cover
// template-specific placeholders such as {{topic}}.
func (s *EmailService) ApplyTemplate(templateID int64, req email.ApplyTemplateRequest) result.Result[email.Draft] {
	const key = "draft"

	var tpl *email.Template
	for i := range defaultTemplates {
		if defaultTemplates[i].ID == templateID {
			tpl = &defaultTemplates[i]
			break
		}
	}
	if tpl == nil {
		return result.Fail[email.Draft](key, xerrors.NotFound("template", templateID))
	}

	values := map[string]string{}
	for k, v := range req.Values {
		values[k] = v
	}
	values["sender_name"] = s.senderName

	draft := email.Draft{CustomerID: req.CustomerID}
	if req.CustomerID != nil && s.customers != nil {
		if c, ok := s.customers.Find(*req.CustomerID); ok {
			values["customer_name"] = c.Name
			values["company_name"] = c.Company
			draft.To = c.Email
		}
	}

	draft.Subject = fill(tpl.Subject, values)
	draft.Body = fill(tpl.Body, values)
	return result.OK(key, draft)
}

func (s *EmailService) Find(id int64) (email.Email, bool) {
	return s.mailbox.Find(id)
}

func (s *EmailService) View(id int64) (email.View, bool) {
	e, ok := s.mailbox.Find(id)
	if !ok {
		return email.View{}, false
	}
	return email.View{Email: e, CustomerName: s.names.Resolve(e.CustomerID)}, true
}

func (s *EmailService) List() []email.Email {
	return s.mailbox.All()
}

// Filter returns the mailbox view, newest first.
func (s *EmailService) Filter(f query.EmailFilter) []email.View {
	return query.FilterEmails(s.mailbox.All(), f, s.names)
}

func (s *EmailService) Stats() email.EmailStats {
	return query.EmailStats(s.mailbox.All())
}
