package email

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"crm-client/internal/domain/customer"
	"crm-client/internal/domain/email"
	"crm-client/internal/domain/notification"
	"crm-client/internal/query"
	"crm-client/internal/remotesync"
	service "crm-client/internal/service/email"
	notifService "crm-client/internal/service/notification"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type directory map[int64]customer.Customer

func (d directory) Find(id int64) (customer.Customer, bool) {
	c, ok := d[id]
	return c, ok
}

type fixture struct {
	router   *gin.Engine
	notifier *notifService.NotificationService
	service  *service.EmailService
}

func newFixture(t *testing.T, backend http.HandlerFunc, initial []email.Email) fixture {
	t.Helper()
	gin.SetMode(gin.TestMode)
	logger := zap.NewNop()
	now := func() time.Time { return time.Date(2024, time.August, 15, 9, 0, 0, 0, time.UTC) }

	srv := httptest.NewServer(backend)
	t.Cleanup(srv.Close)
	mail := remotesync.NewMailClient(remotesync.NewHTTPClient(srv.URL, time.Second, logger))

	svc := service.NewEmailService(initial, mail, directory{}, query.NamesFrom(nil), "Sam", now, logger)
	notifier := notifService.NewNotificationService(time.Minute, nil, logger)
	h := NewEmailHandler(svc, notifier, logger)

	r := gin.New()
	r.GET("/emails", h.ListEmails)
	r.POST("/emails", h.CreateEmail)
	r.POST("/emails/send", h.SendEmail)
	r.GET("/emails/queue", h.ListQueue)
	r.POST("/emails/queue", h.QueueEmail)
	r.DELETE("/emails/queue", h.ClearQueue)
	r.POST("/emails/queue/process", h.ProcessQueue)
	r.GET("/emails/templates", h.ListTemplates)
	r.POST("/emails/templates/:id/apply", h.ApplyTemplate)
	r.GET("/emails/:id", h.GetEmail)
	r.PUT("/emails/:id/read", h.MarkRead)
	r.PUT("/emails/:id/star", h.ToggleStar)
	r.GET("/emails/:id/reply", h.ComposeReply)
	r.DELETE("/emails/:id", h.DeleteEmail)
	return fixture{router: r, notifier: notifier, service: svc}
}

func (f fixture) do(method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func (f fixture) current() notification.Notification {
	n, _ := f.notifier.Current()
	return n
}

func reply(body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}
}

func TestSendEmail(t *testing.T) {
	f := newFixture(t, reply(`{"success":true,"messageId":"m1"}`), nil)

	w := f.do(http.MethodPost, "/emails/send", `{"to":"john@acme.com","subject":"Hello","body":"Hi"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d body = %s", w.Code, w.Body.String())
	}
	if n := f.current(); n.Message != "Email sent successfully!" || n.Type != notification.SeveritySuccess {
		t.Fatalf("notification = %+v", n)
	}
	if len(f.service.List()) != 1 {
		t.Fatalf("sent email not filed")
	}
}

func TestSendEmailValidation(t *testing.T) {
	f := newFixture(t, reply(`{"success":true}`), nil)

	w := f.do(http.MethodPost, "/emails/send", `{"to":"john@acme.com, nope","subject":""}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", w.Code)
	}
	var body struct {
		Errors map[string]string `json:"errors"`
	}
	_ = json.Unmarshal(w.Body.Bytes(), &body)
	if body.Errors["subject"] != "Please fill in recipient and subject fields" || body.Errors["to"] != "Invalid email addresses: nope" {
		t.Fatalf("errors = %v", body.Errors)
	}
}

func TestSendEmailFailure(t *testing.T) {
	f := newFixture(t, reply(`{"success":false,"message":"smtp offline"}`), nil)

	w := f.do(http.MethodPost, "/emails/send", `{"to":"john@acme.com","subject":"Hello"}`)
	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d", w.Code)
	}
	if n := f.current(); n.Message != "Failed to send email: smtp offline" || n.Type != notification.SeverityError {
		t.Fatalf("notification = %+v", n)
	}
}

func TestQueueLifecycle(t *testing.T) {
	f := newFixture(t, reply(`{"success":true,"results":[{"success":true,"messageId":"a"},{"success":false}]}`), nil)

	f.do(http.MethodPost, "/emails/queue/process", "")
	if n := f.current(); n.Message != "No emails in queue" || n.Type != notification.SeverityInfo {
		t.Fatalf("notification = %+v", n)
	}

	for _, to := range []string{"a@x.com", "b@x.com"} {
		if w := f.do(http.MethodPost, "/emails/queue", `{"to":"`+to+`","subject":"Hi"}`); w.Code != http.StatusCreated {
			t.Fatalf("queue status = %d", w.Code)
		}
	}
	if f.current().Message != "Email added to queue!" {
		t.Fatalf("notification = %+v", f.current())
	}

	w := f.do(http.MethodPost, "/emails/queue/process", "")
	if w.Code != http.StatusOK {
		t.Fatalf("process status = %d", w.Code)
	}
	if n := f.current(); n.Message != "1 emails sent successfully, 1 failed" || n.Type != notification.SeverityWarning {
		t.Fatalf("notification = %+v", n)
	}
	if len(f.service.ListQueue()) != 1 {
		t.Fatalf("queue = %+v", f.service.ListQueue())
	}

	f.do(http.MethodDelete, "/emails/queue", "")
	if len(f.service.ListQueue()) != 0 {
		t.Fatalf("queue not cleared")
	}
}

func TestMailboxEndpoints(t *testing.T) {
	ts := time.Date(2024, time.August, 14, 10, 0, 0, 0, time.UTC)
	f := newFixture(t, reply(`{"success":true}`), []email.Email{
		{ID: 1, From: "john@acme.com", To: "me@x.com", Subject: "Pricing", Timestamp: ts, Type: email.DirectionIncoming},
	})

	if w := f.do(http.MethodPut, "/emails/1/read", ""); w.Code != http.StatusOK {
		t.Fatalf("read status = %d", w.Code)
	}
	if e, _ := f.service.Find(1); !e.IsRead {
		t.Fatalf("email not marked read")
	}
	if w := f.do(http.MethodPut, "/emails/1/read", `{"isRead":false}`); w.Code != http.StatusOK {
		t.Fatalf("unread status = %d", w.Code)
	}
	if e, _ := f.service.Find(1); e.IsRead {
		t.Fatalf("email still read")
	}
	if w := f.do(http.MethodPut, "/emails/1/star", ""); w.Code != http.StatusOK {
		t.Fatalf("star status = %d", w.Code)
	}

	w := f.do(http.MethodGet, "/emails/1/reply", "")
	var draft struct {
		Draft email.Draft `json:"draft"`
	}
	_ = json.Unmarshal(w.Body.Bytes(), &draft)
	if draft.Draft.Subject != "Re: Pricing" || draft.Draft.To != "john@acme.com" {
		t.Fatalf("draft = %+v", draft.Draft)
	}

	w = f.do(http.MethodGet, "/emails?view=starred", "")
	var list struct {
		Data []email.View `json:"data"`
	}
	_ = json.Unmarshal(w.Body.Bytes(), &list)
	if len(list.Data) != 1 || list.Data[0].CustomerName != "Unknown" {
		t.Fatalf("list = %+v", list.Data)
	}

	if w := f.do(http.MethodPost, "/emails/templates/2/apply", `{"values":{"topic":"pricing"}}`); w.Code != http.StatusOK {
		t.Fatalf("apply status = %d", w.Code)
	}
	if w := f.do(http.MethodPost, "/emails/templates/9/apply", ""); w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("unknown template status = %d", w.Code)
	}

	if w := f.do(http.MethodDelete, "/emails/1", ""); w.Code != http.StatusOK {
		t.Fatalf("delete status = %d", w.Code)
	}
	if w := f.do(http.MethodGet, "/emails/1", ""); w.Code != http.StatusNotFound {
		t.Fatalf("deleted email served: %d", w.Code)
	}
}
