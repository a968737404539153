package config

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"crm-client/internal/domain/notification"
	"crm-client/internal/remotesync"
	service "crm-client/internal/service/config"
	notifService "crm-client/internal/service/notification"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type fixture struct {
	router     *gin.Engine
	notifier   *notifService.NotificationService
	connection *service.ConnectionService
}

func newFixture(t *testing.T, backend http.HandlerFunc) fixture {
	t.Helper()
	gin.SetMode(gin.TestMode)
	logger := zap.NewNop()

	srv := httptest.NewServer(backend)
	t.Cleanup(srv.Close)
	mail := remotesync.NewMailClient(remotesync.NewHTTPClient(srv.URL, time.Second, logger))

	notifier := notifService.NewNotificationService(time.Minute, nil, logger)
	connection := service.NewConnectionService(false, nil, logger)
	h := NewConfigHandler(service.NewEmailConfigService(mail, logger), connection, notifier, logger)

	r := gin.New()
	r.GET("/email/config", h.GetEmailConfig)
	r.POST("/email/config", h.SaveEmailConfig)
	r.POST("/email/test", h.TestEmailConnection)
	r.GET("/connection", h.GetConnection)
	r.PUT("/connection", h.SetConnection)
	return fixture{router: r, notifier: notifier, connection: connection}
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
		_, _ = w.Write([]byte(body))
	}
}

func TestSaveEmailConfig(t *testing.T) {
	f := newFixture(t, reply(`{"success":true}`))

	w := f.do(http.MethodPost, "/email/config", `{"provider":"smtp","config":{"host":"smtp.gmail.com","port":587}}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d body = %s", w.Code, w.Body.String())
	}
	if got := f.current().Message; got != "SMTP configuration saved successfully!" {
		t.Fatalf("notification = %q", got)
	}

	if w := f.do(http.MethodPost, "/email/config", `{"provider":"pop3","config":{}}`); w.Code != http.StatusBadRequest {
		t.Fatalf("unknown provider = %d", w.Code)
	}
}

func TestSaveEmailConfigRejected(t *testing.T) {
	f := newFixture(t, reply(`{"success":false,"message":"invalid api key"}`))

	w := f.do(http.MethodPost, "/email/config", `{"provider":"sendgrid","config":{"apiKey":"x"}}`)
	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d", w.Code)
	}
	if got := f.current().Message; got != "Failed to save SENDGRID configuration: invalid api key" {
		t.Fatalf("notification = %q", got)
	}
}

func TestEmailConnectionTest(t *testing.T) {
	f := newFixture(t, reply(`{"success":false,"message":"auth failed"}`))

	w := f.do(http.MethodPost, "/email/test", `{"provider":"imap"}`)
	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d", w.Code)
	}
	n := f.current()
	if n.Message != "IMAP connection test failed: auth failed" || n.Type != notification.SeverityError {
		t.Fatalf("notification = %+v", n)
	}
}

func TestConnectionToggle(t *testing.T) {
	f := newFixture(t, reply(`{"success":true}`))

	w := f.do(http.MethodPut, "/connection", `{"connected":true}`)
	var body struct {
		Data struct {
			Connected bool `json:"connected"`
		} `json:"data"`
	}
	_ = json.Unmarshal(w.Body.Bytes(), &body)
	if w.Code != http.StatusOK || !body.Data.Connected || !f.connection.Connected() {
		t.Fatalf("toggle = %d %+v", w.Code, body)
	}
	if f.current().Message != "Connected to backend" {
		t.Fatalf("notification = %+v", f.current())
	}

	if w := f.do(http.MethodPut, "/connection", `{}`); w.Code != http.StatusBadRequest {
		t.Fatalf("missing flag = %d", w.Code)
	}
}
