// Package remotesync talks to the CRM REST backend: the database mirror and
// the mail endpoints.
package remotesync

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	xerrors "crm-client/internal/pkg/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// HTTPError is a non-2xx answer from the backend.
type HTTPError struct {
	StatusCode int
	Message    string
}

func (e *HTTPError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("backend http %d", e.StatusCode)
	}
	return fmt.Sprintf("backend http %d: %s", e.StatusCode, e.Message)
}

func (e *HTTPError) Unwrap() error { return xerrors.ErrBackendUnavailable }

// RejectedError is a 2xx answer whose payload says success:false.
type RejectedError struct {
	Message string
}

func (e *RejectedError) Error() string {
	if e.Message == "" {
		return "backend reported failure"
	}
	return e.Message
}

func (e *RejectedError) Unwrap() error { return xerrors.ErrBackendRejected }

// envelope is the part every backend answer may share.
type envelope struct {
	Success *bool  `json:"success"`
	Message string `json:"message"`
	Error   string `json:"error"`
}

func (e envelope) text() string {
	if e.Message != "" {
		return e.Message
	}
	return e.Error
}

type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

func NewHTTPClient(baseURL string, timeout time.Duration, logger *zap.Logger) *HTTPClient {
	return &HTTPClient{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

// Do sends one JSON request and decodes the answer into out. Both the
// transport status and a payload-level success flag are checked.
func (c *HTTPClient) Do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode %s %s: %w", method, path, err)
		}
		bodyReader = bytes.NewReader(data)
	}

	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, method, target, bodyReader)
	if err != nil {
		return err
	}
	correlationID := uuid.NewString()
	req.Header.Set("X-Correlation-Id", correlationID)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w: %v", method, path, xerrors.ErrBackendUnavailable, err)
	}
	payload, readErr := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	if readErr != nil {
		return fmt.Errorf("failed to read %s %s response: %w", method, path, readErr)
	}

	c.logger.Debug("backend call",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.String("correlation_id", correlationID),
	)

	var env envelope
	if len(payload) > 0 {
		_ = json.Unmarshal(payload, &env)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &HTTPError{StatusCode: resp.StatusCode, Message: env.text()}
	}
	if env.Success != nil && !*env.Success {
		return &RejectedError{Message: env.text()}
	}
	if out == nil || len(payload) == 0 {
		return nil
	}
	if err := json.Unmarshal(payload, out); err != nil {
		return fmt.Errorf("failed to decode %s %s response: %w", method, path, err)
	}
	return nil
}
