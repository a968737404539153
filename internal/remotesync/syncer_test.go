package remotesync

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"crm-client/internal/domain/customer"
	xerrors "crm-client/internal/pkg/errors"

	"go.uber.org/zap"
)

type capturedRequest struct {
	Method        string
	Path          string
	Query         string
	CorrelationID string
	Body          map[string]any
}

type recorder struct {
	mu       sync.Mutex
	requests []capturedRequest
	calls    atomic.Int32
}

func (r *recorder) handler(status int, reply string) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		r.calls.Add(1)
		data, _ := io.ReadAll(req.Body)
		var body map[string]any
		_ = json.Unmarshal(data, &body)
		r.mu.Lock()
		r.requests = append(r.requests, capturedRequest{
			Method:        req.Method,
			Path:          req.URL.Path,
			Query:         req.URL.RawQuery,
			CorrelationID: req.Header.Get("X-Correlation-Id"),
			Body:          body,
		})
		r.mu.Unlock()
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(reply))
	}
}

func (r *recorder) last(t *testing.T) capturedRequest {
	t.Helper()
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.requests) == 0 {
		t.Fatalf("no request recorded")
	}
	return r.requests[len(r.requests)-1]
}

func newTestSyncer(t *testing.T, status int, reply string) (*Syncer, *recorder) {
	t.Helper()
	rec := &recorder{}
	server := httptest.NewServer(rec.handler(status, reply))
	t.Cleanup(server.Close)
	client := NewHTTPClient(server.URL, 5*time.Second, zap.NewNop())
	return NewSyncer(client, zap.NewNop(), 5*time.Second), rec
}

func TestPushSkippedWhenDisconnected(t *testing.T) {
	syncer, rec := newTestSyncer(t, http.StatusOK, `{"success":true}`)

	syncer.Push(context.Background(), Mutation{Resource: "customer", Op: OpCreate, Path: PathCustomers}, false)
	syncer.Wait()

	if got := rec.calls.Load(); got != 0 {
		t.Fatalf("expected no backend calls, got %d", got)
	}
}

func TestPushMapsOpToMethodAndSnakeCaseBody(t *testing.T) {
	syncer, rec := newTestSyncer(t, http.StatusOK, `{"success":true}`)

	c := customer.Customer{ID: 4, Name: "Ada", Email: "ada@x.com", OrderValue: 120.5, Source: "Manual"}
	syncer.Push(context.Background(), Mutation{
		Resource: "customer",
		Op:       OpCreate,
		Path:     PathCustomers,
		Body:     NewCustomerPayload(c, false),
	}, true)
	syncer.Wait()

	req := rec.last(t)
	if req.Method != http.MethodPost || req.Path != PathCustomers {
		t.Fatalf("request = %s %s", req.Method, req.Path)
	}
	if req.Body["order_value"] != 120.5 {
		t.Fatalf("order_value = %v", req.Body["order_value"])
	}
	if _, ok := req.Body["orderValue"]; ok {
		t.Fatalf("camel-case field leaked onto the wire")
	}
	if _, ok := req.Body["id"]; ok {
		t.Fatalf("create body should not carry an id")
	}
	if req.CorrelationID == "" {
		t.Fatalf("missing X-Correlation-Id")
	}
}

func TestPushDeleteUsesQueryParameter(t *testing.T) {
	syncer, rec := newTestSyncer(t, http.StatusOK, ``)

	syncer.Push(context.Background(), DeleteByID("customer", PathCustomers, "customerId", 9), true)
	syncer.Wait()

	req := rec.last(t)
	if req.Method != http.MethodDelete || req.Query != "customerId=9" {
		t.Fatalf("request = %s ?%s", req.Method, req.Query)
	}
}

func TestPushFailureIsSwallowed(t *testing.T) {
	syncer, rec := newTestSyncer(t, http.StatusInternalServerError, `{"message":"db down"}`)

	ctx, cancel := context.WithCancel(context.Background())
	syncer.Push(ctx, Mutation{Resource: "task", Op: OpUpdate, Path: PathTasks}, true)
	cancel()
	syncer.Wait()

	if got := rec.calls.Load(); got != 1 {
		t.Fatalf("expected exactly one attempt, got %d", got)
	}
}

func TestPushToUnreachableBackend(t *testing.T) {
	client := NewHTTPClient("http://127.0.0.1:1", time.Second, zap.NewNop())
	syncer := NewSyncer(client, zap.NewNop(), time.Second)

	syncer.Push(context.Background(), Mutation{Resource: "task", Op: OpCreate, Path: PathTasks}, true)
	syncer.Wait()
}

func TestDoChecksTransportStatus(t *testing.T) {
	syncer, _ := newTestSyncer(t, http.StatusBadGateway, `{"message":"upstream"}`)

	err := syncer.Client().Do(context.Background(), http.MethodGet, PathCustomers, nil, nil, nil)
	var httpErr *HTTPError
	if !errors.As(err, &httpErr) {
		t.Fatalf("expected HTTPError, got %v", err)
	}
	if httpErr.StatusCode != http.StatusBadGateway || httpErr.Message != "upstream" {
		t.Fatalf("HTTPError = %+v", httpErr)
	}
	if !xerrors.Is(err, xerrors.ErrBackendUnavailable) {
		t.Fatalf("HTTPError should unwrap to ErrBackendUnavailable")
	}
}

func TestDoChecksPayloadSuccessFlag(t *testing.T) {
	syncer, _ := newTestSyncer(t, http.StatusOK, `{"success":false,"message":"smtp not configured"}`)

	var out SendResult
	err := syncer.Client().Do(context.Background(), http.MethodPost, PathSendEmail, nil, map[string]string{}, &out)
	var rejected *RejectedError
	if !errors.As(err, &rejected) || rejected.Message != "smtp not configured" {
		t.Fatalf("expected RejectedError, got %v", err)
	}
}

func TestLoadCustomers(t *testing.T) {
	syncer, _ := newTestSyncer(t, http.StatusOK,
		`{"success":true,"data":[{"id":3,"name":"Ada","email":"ada@x.com","status":"Active","order_value":10,"tags":null,"created":"2024-01-02"}]}`)

	rows, err := syncer.LoadCustomers(context.Background())
	if err != nil {
		t.Fatalf("LoadCustomers: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("rows = %d", len(rows))
	}
	c := rows[0].ToCustomer()
	if c.ID != 3 || c.OrderValue != 10 || c.Tags == nil || c.Created.String() != "2024-01-02" {
		t.Fatalf("customer = %+v", c)
	}
}

func TestOpMethod(t *testing.T) {
	cases := map[Op]string{
		OpCreate: http.MethodPost,
		OpUpdate: http.MethodPut,
		OpDelete: http.MethodDelete,
	}
	for op, want := range cases {
		if got := op.Method(); got != want {
			t.Errorf("%s.Method() = %s, want %s", op, got, want)
		}
	}
}
