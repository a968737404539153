package remotesync

import (
	"crm-client/internal/domain/customer"
	"crm-client/internal/domain/task"
	"crm-client/internal/pkg/calendar"
)

// Backend endpoints.
const (
	PathCustomers       = "/api/database/customers"
	PathTasks           = "/api/database/tasks"
	PathTaskStatus      = "/api/database/tasks/status"
	PathTaskAssign      = "/api/database/tasks/assign"
	PathTaskBulkUpdate  = "/api/database/tasks/bulk-update"
	PathSendEmail       = "/api/send-email"
	PathBulkEmail       = "/api/bulk-email"
	PathEmailConfig     = "/api/email/config"
	PathEmailConnection = "/api/email/test"
)

// CustomerPayload is a customer in the backend's snake_case shape.
type CustomerPayload struct {
	ID          int64    `json:"id,omitempty"`
	Name        string   `json:"name"`
	Email       string   `json:"email"`
	Phone       string   `json:"phone"`
	Company     string   `json:"company"`
	Address     string   `json:"address"`
	Status      string   `json:"status"`
	Source      string   `json:"source,omitempty"`
	OrderValue  float64  `json:"order_value"`
	Tags        []string `json:"tags"`
	Created     string   `json:"created,omitempty"`
	LastContact string   `json:"last_contact,omitempty"`
}

// NewCustomerPayload maps a customer for create (withID false) or update.
func NewCustomerPayload(c customer.Customer, withID bool) CustomerPayload {
	p := CustomerPayload{
		Name:       c.Name,
		Email:      c.Email,
		Phone:      c.Phone,
		Company:    c.Company,
		Address:    c.Address,
		Status:     string(c.Status),
		Source:     c.Source,
		OrderValue: c.OrderValue,
		Tags:       nonNil(c.Tags),
	}
	if withID {
		p.ID = c.ID
		p.Source = ""
	}
	return p
}

// ToCustomer maps a loaded row back. Unparseable dates become empty.
func (p CustomerPayload) ToCustomer() customer.Customer {
	created, _ := calendar.Parse(p.Created)
	lastContact, _ := calendar.Parse(p.LastContact)
	return customer.Customer{
		ID:          p.ID,
		Name:        p.Name,
		Email:       p.Email,
		Phone:       p.Phone,
		Company:     p.Company,
		Address:     p.Address,
		Status:      customer.Status(p.Status),
		Source:      p.Source,
		OrderValue:  p.OrderValue,
		Tags:        nonNil(p.Tags),
		Created:     created,
		LastContact: lastContact,
	}
}

// TaskPayload is a task in the backend's snake_case shape.
type TaskPayload struct {
	ID              int64    `json:"id,omitempty"`
	Title           string   `json:"title"`
	Description     string   `json:"description"`
	CustomerID      *int64   `json:"customer_id"`
	CustomerName    string   `json:"customer_name"`
	AssignedTo      string   `json:"assigned_to"`
	AssignedToEmail string   `json:"assigned_to_email"`
	Priority        string   `json:"priority"`
	Status          string   `json:"status"`
	DueDate         string   `json:"due_date"`
	Created         string   `json:"created,omitempty"`
	Tags            []string `json:"tags"`
}

// NewTaskPayload maps a task. customerName is the resolved name of its
// customer, which the backend stores alongside.
func NewTaskPayload(t task.Task, customerName string, withID bool) TaskPayload {
	p := TaskPayload{
		Title:           t.Title,
		Description:     t.Description,
		CustomerID:      t.CustomerID,
		CustomerName:    customerName,
		AssignedTo:      t.AssignedTo,
		AssignedToEmail: t.AssignedToEmail,
		Priority:        string(t.Priority),
		Status:          string(t.Status),
		DueDate:         t.DueDate.String(),
		Tags:            nonNil(t.Tags),
	}
	if withID {
		p.ID = t.ID
	}
	return p
}

func (p TaskPayload) ToTask() task.Task {
	due, _ := calendar.Parse(p.DueDate)
	created, _ := calendar.Parse(p.Created)
	return task.Task{
		ID:              p.ID,
		Title:           p.Title,
		Description:     p.Description,
		CustomerID:      p.CustomerID,
		AssignedTo:      p.AssignedTo,
		AssignedToEmail: p.AssignedToEmail,
		Priority:        task.Priority(p.Priority),
		Status:          task.Status(p.Status),
		DueDate:         due,
		Created:         created,
		Tags:            nonNil(p.Tags),
	}
}

type TaskStatusPayload struct {
	ID     int64  `json:"id"`
	Status string `json:"status"`
}

type TaskAssignPayload struct {
	ID         int64  `json:"id"`
	AssignedTo string `json:"assigned_to"`
}

type TaskBulkPayload struct {
	TaskIDs []int64    `json:"taskIds"`
	Updates task.Patch `json:"updates"`
}

type CustomerList struct {
	Data []CustomerPayload `json:"data"`
}

type TaskList struct {
	Data []TaskPayload `json:"data"`
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
