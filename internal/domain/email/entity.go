package email

import "time"

type Direction string

const (
	DirectionIncoming Direction = "incoming"
	DirectionOutgoing Direction = "outgoing"
)

type DeliveryStatus string

const (
	StatusSent      DeliveryStatus = "sent"
	StatusDelivered DeliveryStatus = "delivered"
	StatusFailed    DeliveryStatus = "failed"
	StatusPending   DeliveryStatus = "pending"
)

type Attachment struct {
	Filename string `json:"filename"`
	Size     int64  `json:"size"`
	Type     string `json:"type"`
}

type Email struct {
	ID            int64          `json:"id"`
	CustomerID    *int64         `json:"customerId"`
	Subject       string         `json:"subject"`
	From          string         `json:"from"`
	To            string         `json:"to"`
	CC            string         `json:"cc,omitempty"`
	BCC           string         `json:"bcc,omitempty"`
	Body          string         `json:"body"`
	Timestamp     time.Time      `json:"timestamp"`
	IsRead        bool           `json:"isRead"`
	IsStarred     bool           `json:"isStarred"`
	Thread        string         `json:"thread"`
	Type          Direction      `json:"type"`
	Status        DeliveryStatus `json:"status"`
	Priority      string         `json:"priority,omitempty"`
	Attachments   []Attachment   `json:"attachments"`
	SMTPMessageID string         `json:"smtpMessageId,omitempty"`
}

func (e Email) GetID() int64 { return e.ID }

func (e Email) BelongsTo(customerID int64) bool {
	return e.CustomerID != nil && *e.CustomerID == customerID
}

// Draft is a composed message that has not been sent.
type Draft struct {
	CustomerID  *int64       `json:"customerId"`
	From        string       `json:"from,omitempty"`
	To          string       `json:"to" validate:"required"`
	CC          string       `json:"cc"`
	BCC         string       `json:"bcc"`
	Subject     string       `json:"subject" validate:"required"`
	Body        string       `json:"body"`
	Priority    string       `json:"priority,omitempty" validate:"omitempty,oneof=low normal high"`
	Attachments []Attachment `json:"attachments"`
}

// QueuedEmail is a draft waiting in the outbox. Queue ids are local to the
// queue.
type QueuedEmail struct {
	Draft
	ID       int64     `json:"id"`
	QueuedAt time.Time `json:"queuedAt"`
}

func (q QueuedEmail) GetID() int64 { return q.ID }

// View is an email as listed, with the customer name resolved at read time.
type View struct {
	Email
	CustomerName string `json:"customerName"`
}

type EmailStats struct {
	Total    int `json:"total"`
	Unread   int `json:"unread"`
	Starred  int `json:"starred"`
	Sent     int `json:"sent"`
	Received int `json:"received"`
}

// Template is a canned message with {{placeholder}} fields.
type Template struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// BulkSummary reports a processed queue.
type BulkSummary struct {
	Successful int           `json:"successful"`
	Failed     int           `json:"failed"`
	Sent       []Email       `json:"sent"`
	Remaining  []QueuedEmail `json:"remaining"`
}
