package email

import "time"

// CreateEmailRequest records a message in the mailbox without sending it,
// e.g. an incoming mail fetched elsewhere.
type CreateEmailRequest struct {
	CustomerID  *int64         `json:"customerId"`
	Subject     string         `json:"subject" validate:"required"`
	From        string         `json:"from" validate:"required"`
	To          string         `json:"to" validate:"required"`
	CC          string         `json:"cc"`
	BCC         string         `json:"bcc"`
	Body        string         `json:"body"`
	Timestamp   *time.Time     `json:"timestamp"`
	Type        Direction      `json:"type" validate:"omitempty,oneof=incoming outgoing"`
	Status      DeliveryStatus `json:"status" validate:"omitempty,oneof=sent delivered failed pending"`
	Thread      string         `json:"thread"`
	Attachments []Attachment   `json:"attachments"`
}

// UpdateEmailRequest is a partial update of mailbox flags and labels.
type UpdateEmailRequest struct {
	IsRead    *bool           `json:"isRead"`
	IsStarred *bool           `json:"isStarred"`
	Status    *DeliveryStatus `json:"status" validate:"omitempty,oneof=sent delivered failed pending"`
	Subject   *string         `json:"subject"`
	Body      *string         `json:"body"`
}

type MarkReadRequest struct {
	IsRead *bool `json:"isRead"`
}

type ApplyTemplateRequest struct {
	CustomerID *int64            `json:"customerId"`
	Values     map[string]string `json:"values"`
}

type EmailListFilters struct {
	View   string `form:"view"`
	Search string `form:"search"`
}
