// internal/service/customer/customer.go
package customer

import (
	"context"
	"strings"
	"time"

	"crm-client/internal/domain/customer"
	"crm-client/internal/pkg/calendar"
	xerrors "crm-client/internal/pkg/errors"
	"crm-client/internal/pkg/result"
	"crm-client/internal/query"
	"crm-client/internal/remotesync"
	"crm-client/internal/repository/memory"
	"crm-client/internal/validation"

	"go.uber.org/zap"
)

const resultKey = "customer"

// Dependent holds weak references to customers and drops its own records
// when a customer is deleted.
type Dependent interface {
	RemoveByCustomer(customerID int64) int
}

type CustomerService struct {
	store      *memory.Collection[customer.Customer]
	syncer     *remotesync.Syncer
	dependents []Dependent
	now        func() time.Time
	logger     *zap.Logger
}

// NewCustomerService seeds the collection with initial. now may be nil.
func NewCustomerService(initial []customer.Customer, syncer *remotesync.Syncer, now func() time.Time, logger *zap.Logger) *CustomerService {
	if now == nil {
		now = time.Now
	}
	return &CustomerService{
		store:  memory.NewCollection("customer", initial),
		syncer: syncer,
		now:    now,
		logger: logger,
	}
}

// RegisterDependent adds a collection to the delete cascade.
func (s *CustomerService) RegisterDependent(d Dependent) {
	s.dependents = append(s.dependents, d)
}

// Add creates a customer. The form is expected to be validated already.
func (s *CustomerService) Add(ctx context.Context, req customer.CreateCustomerRequest, connected bool) result.Result[customer.Customer] {
	c, err := s.store.Insert(func(id int64) (customer.Customer, error) {
		status := req.Status
		if status == "" {
			status = customer.StatusLead
		}
		source := strings.TrimSpace(req.Source)
		if source == "" {
			source = customer.SourceManual
		}
		return customer.Customer{
			ID:         id,
			Name:       strings.TrimSpace(req.Name),
			Email:      strings.TrimSpace(req.Email),
			Phone:      req.Phone,
			Company:    req.Company,
			Address:    req.Address,
			Status:     status,
			Source:     source,
			OrderValue: validation.ParseAmount(string(req.OrderValue)),
			Tags:       validation.ParseTags(req.Tags),
			Created:    calendar.Of(s.now()),
		}, nil
	})
	if err != nil {
		s.logger.Error("failed to add customer", zap.Error(err))
		return result.Fail[customer.Customer](resultKey, err)
	}

	s.logger.Info("customer added",
		zap.Int64("customer_id", c.ID),
		zap.String("name", c.Name),
	)

	s.push(ctx, remotesync.Mutation{
		Resource: resultKey,
		Op:       remotesync.OpCreate,
		Path:     remotesync.PathCustomers,
		Body:     remotesync.NewCustomerPayload(c, false),
	}, connected)

	return result.OK(resultKey, c)
}

// Update merges the non-nil fields of req into the customer.
func (s *CustomerService) Update(ctx context.Context, id int64, req customer.UpdateCustomerRequest, connected bool) result.Result[customer.Customer] {
	c, err := s.store.Update(id, func(c *customer.Customer) error {
		return applyUpdate(c, req)
	})
	if err != nil {
		s.logger.Warn("failed to update customer", zap.Int64("customer_id", id), zap.Error(err))
		return result.Fail[customer.Customer](resultKey, err)
	}

	s.logger.Info("customer updated", zap.Int64("customer_id", id))

	s.push(ctx, remotesync.Mutation{
		Resource: resultKey,
		Op:       remotesync.OpUpdate,
		Path:     remotesync.PathCustomers,
		Body:     remotesync.NewCustomerPayload(c, true),
	}, connected)

	return result.OK(resultKey, c)
}

func applyUpdate(c *customer.Customer, req customer.UpdateCustomerRequest) error {
	if req.Name != nil {
		c.Name = strings.TrimSpace(*req.Name)
	}
	if req.Email != nil {
		c.Email = strings.TrimSpace(*req.Email)
	}
	if req.Phone != nil {
		c.Phone = *req.Phone
	}
	if req.Company != nil {
		c.Company = *req.Company
	}
	if req.Address != nil {
		c.Address = *req.Address
	}
	if req.Status != nil {
		c.Status = *req.Status
	}
	if req.Source != nil {
		c.Source = *req.Source
	}
	if req.OrderValue != nil {
		c.OrderValue = validation.ParseAmount(string(*req.OrderValue))
	}
	if req.Tags != nil {
		c.Tags = validation.ParseTags(*req.Tags)
	}
	if req.LastContact != nil {
		d, err := calendar.Parse(*req.LastContact)
		if err != nil {
			return xerrors.Wrap(xerrors.ErrInvalidInput, "lastContact")
		}
		c.LastContact = d
	}
	return nil
}

// Delete removes the customer, then the tasks and emails that point at it.
// Only the customer delete is mirrored to the backend.
func (s *CustomerService) Delete(ctx context.Context, id int64, connected bool) result.Result[customer.Customer] {
	c, err := s.store.Delete(id)
	if err != nil {
		s.logger.Warn("failed to delete customer", zap.Int64("customer_id", id), zap.Error(err))
		return result.Fail[customer.Customer](resultKey, err)
	}

	cascaded := 0
	for _, d := range s.dependents {
		cascaded += d.RemoveByCustomer(id)
	}

	s.logger.Info("customer deleted",
		zap.Int64("customer_id", id),
		zap.Int("cascaded", cascaded),
	)

	s.push(ctx, remotesync.DeleteByID(resultKey, remotesync.PathCustomers, "customerId", id), connected)

	return result.OK(resultKey, c)
}

func (s *CustomerService) Find(id int64) (customer.Customer, bool) {
	return s.store.Find(id)
}

// FindByEmail matches case-insensitively.
func (s *CustomerService) FindByEmail(address string) (customer.Customer, bool) {
	address = strings.TrimSpace(address)
	return s.store.FindFirst(func(c customer.Customer) bool {
		return strings.EqualFold(c.Email, address)
	})
}

func (s *CustomerService) List() []customer.Customer {
	return s.store.All()
}

func (s *CustomerService) Filter(filters customer.CustomerListFilters) []customer.Customer {
	return query.FilterCustomers(s.store.All(), filters)
}

func (s *CustomerService) Stats() customer.CustomerStats {
	return query.CustomerStats(s.store.All())
}

// Names resolves customer ids against the live collection.
func (s *CustomerService) Names() query.NameLookup {
	return func(id int64) (string, bool) {
		c, ok := s.store.Find(id)
		return c.Name, ok
	}
}

// CustomerName returns the name behind a weak reference, or "Unknown".
func (s *CustomerService) CustomerName(id *int64) string {
	return s.Names().Resolve(id)
}

// LoadFromBackend replaces the local customers with the backend's.
func (s *CustomerService) LoadFromBackend(ctx context.Context) result.Result[[]customer.Customer] {
	if s.syncer == nil {
		return result.Fail[[]customer.Customer]("customers", xerrors.ErrBackendUnavailable)
	}
	rows, err := s.syncer.LoadCustomers(ctx)
	if err != nil {
		s.logger.Error("failed to load customers", zap.Error(err))
		return result.Fail[[]customer.Customer]("customers", err)
	}

	loaded := make([]customer.Customer, 0, len(rows))
	for _, row := range rows {
		loaded = append(loaded, row.ToCustomer())
	}
	s.store.Replace(loaded)

	s.logger.Info("customers loaded", zap.Int("count", len(loaded)))
	return result.OK("customers", loaded)
}

func (s *CustomerService) push(ctx context.Context, m remotesync.Mutation, connected bool) {
	if s.syncer == nil {
		return
	}
	s.syncer.Push(ctx, m, connected)
}
