package remotesync

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"time"

	"go.uber.org/zap"
)

type Op string

const (
	OpCreate Op = "create"
	OpUpdate Op = "update"
	OpDelete Op = "delete"
)

// Method maps create to POST, update to PUT and delete to DELETE.
func (o Op) Method() string {
	switch o {
	case OpCreate:
		return http.MethodPost
	case OpDelete:
		return http.MethodDelete
	default:
		return http.MethodPut
	}
}

// Mutation is one local change to mirror on the backend.
type Mutation struct {
	Resource string
	Op       Op
	Path     string
	Query    url.Values
	Body     any
}

// DeleteByID builds a delete mutation addressed by query parameter, the way
// the backend expects it (?customerId=3).
func DeleteByID(resource, path, param string, id int64) Mutation {
	return Mutation{
		Resource: resource,
		Op:       OpDelete,
		Path:     path,
		Query:    url.Values{param: []string{strconv.FormatInt(id, 10)}},
	}
}

// Syncer mirrors local mutations to the backend. Pushes are detached: the
// caller never waits for them and never sees their outcome.
type Syncer struct {
	client  *HTTPClient
	logger  *zap.Logger
	timeout time.Duration
	wg      sync.WaitGroup
}

func NewSyncer(client *HTTPClient, logger *zap.Logger, timeout time.Duration) *Syncer {
	return &Syncer{
		client:  client,
		logger:  logger,
		timeout: timeout,
	}
}

// Push issues m in the background when connected is true and does nothing
// otherwise. Failures are logged and dropped.
func (s *Syncer) Push(ctx context.Context, m Mutation, connected bool) {
	if !connected {
		return
	}
	ctx = context.WithoutCancel(ctx)

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		if s.timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, s.timeout)
			defer cancel()
		}

		if err := s.client.Do(ctx, m.Op.Method(), m.Path, m.Query, m.Body, nil); err != nil {
			s.logger.Warn("remote sync failed",
				zap.String("resource", m.Resource),
				zap.String("op", string(m.Op)),
				zap.String("path", m.Path),
				zap.Error(err),
			)
			return
		}
		s.logger.Debug("remote sync ok",
			zap.String("resource", m.Resource),
			zap.String("op", string(m.Op)),
		)
	}()
}

// Wait blocks until every push started so far has finished.
func (s *Syncer) Wait() {
	s.wg.Wait()
}

// Client exposes the underlying HTTP client for synchronous calls such as
// loads.
func (s *Syncer) Client() *HTTPClient {
	return s.client
}

// LoadCustomers fetches the backend's customer table.
func (s *Syncer) LoadCustomers(ctx context.Context) ([]CustomerPayload, error) {
	var out CustomerList
	if err := s.client.Do(ctx, http.MethodGet, PathCustomers, nil, nil, &out); err != nil {
		return nil, err
	}
	return out.Data, nil
}

// LoadTasks fetches the backend's task table.
func (s *Syncer) LoadTasks(ctx context.Context) ([]TaskPayload, error) {
	var out TaskList
	if err := s.client.Do(ctx, http.MethodGet, PathTasks, nil, nil, &out); err != nil {
		return nil, err
	}
	return out.Data, nil
}
