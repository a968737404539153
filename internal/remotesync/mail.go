package remotesync

import (
	"context"
	"encoding/json"
	"net/http"

	"crm-client/internal/domain/email"
)

// OutgoingEmail is the body of a send request.
type OutgoingEmail struct {
	CustomerID  *int64             `json:"customerId,omitempty"`
	To          string             `json:"to"`
	CC          string             `json:"cc,omitempty"`
	BCC         string             `json:"bcc,omitempty"`
	Subject     string             `json:"subject"`
	Body        string             `json:"body"`
	Priority    string             `json:"priority,omitempty"`
	Attachments []email.Attachment `json:"attachments,omitempty"`
}

func NewOutgoingEmail(d email.Draft) OutgoingEmail {
	return OutgoingEmail{
		CustomerID:  d.CustomerID,
		To:          d.To,
		CC:          d.CC,
		BCC:         d.BCC,
		Subject:     d.Subject,
		Body:        d.Body,
		Priority:    d.Priority,
		Attachments: d.Attachments,
	}
}

type SendResult struct {
	Success   bool   `json:"success"`
	MessageID string `json:"messageId"`
	Message   string `json:"message,omitempty"`
}

type BulkSummary struct {
	Successful int `json:"successful"`
	Failed     int `json:"failed"`
}

type BulkResult struct {
	Success bool         `json:"success"`
	Results []SendResult `json:"results"`
	Summary BulkSummary  `json:"summary"`
	Message string       `json:"message,omitempty"`
}

// MailClient wraps the mail endpoints of the backend.
type MailClient struct {
	client *HTTPClient
}

func NewMailClient(client *HTTPClient) *MailClient {
	return &MailClient{client: client}
}

func (m *MailClient) Send(ctx context.Context, msg OutgoingEmail) (SendResult, error) {
	var out SendResult
	err := m.client.Do(ctx, http.MethodPost, PathSendEmail, nil, msg, &out)
	return out, err
}

func (m *MailClient) SendBulk(ctx context.Context, msgs []OutgoingEmail) (BulkResult, error) {
	var out BulkResult
	body := struct {
		Emails []OutgoingEmail `json:"emails"`
	}{Emails: msgs}
	err := m.client.Do(ctx, http.MethodPost, PathBulkEmail, nil, body, &out)
	return out, err
}

// Config returns the raw provider configuration reported by the backend.
func (m *MailClient) Config(ctx context.Context) (json.RawMessage, error) {
	var out struct {
		Config json.RawMessage `json:"config"`
	}
	if err := m.client.Do(ctx, http.MethodGet, PathEmailConfig, nil, nil, &out); err != nil {
		return nil, err
	}
	return out.Config, nil
}

type providerBody struct {
	Provider string          `json:"provider"`
	Config   json.RawMessage `json:"config"`
}

func (m *MailClient) SaveConfig(ctx context.Context, provider string, cfg json.RawMessage) error {
	return m.client.Do(ctx, http.MethodPost, PathEmailConfig, nil, providerBody{Provider: provider, Config: cfg}, nil)
}

// TestConnection returns the backend's verdict. A verdict of success:false
// comes back as a *RejectedError.
func (m *MailClient) TestConnection(ctx context.Context, provider string, cfg json.RawMessage) (string, error) {
	var out struct {
		Message string `json:"message"`
	}
	err := m.client.Do(ctx, http.MethodPost, PathEmailConnection, nil, providerBody{Provider: provider, Config: cfg}, &out)
	return out.Message, err
}
