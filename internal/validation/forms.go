package validation

import (
	"strings"

	"crm-client/internal/domain/customer"
	"crm-client/internal/domain/email"
	"crm-client/internal/domain/task"
	"crm-client/internal/pkg/calendar"
)

var customerMessages = map[string]string{
	"name.required":  "Name is required",
	"email.required": "Email is required",
	"name.min":       "Name is required",
}

var taskMessages = map[string]string{
	"title.required":      "Task title is required",
	"dueDate.required":    "Due date is required",
	"assignedTo.required": "Task must be assigned to someone",
}

func checkOrderValue(errs Errors, raw *customer.Amount) {
	if raw == nil || strings.TrimSpace(string(*raw)) == "" {
		return
	}
	if v, ok := parseFinite(string(*raw)); ok && v < 0 {
		errs.add("orderValue", "Order value cannot be negative")
	}
}

func Customer(req customer.CreateCustomerRequest) error {
	errs := Errors{}
	if strings.TrimSpace(req.Name) == "" {
		errs.add("name", customerMessages["name.required"])
	}
	if strings.TrimSpace(req.Email) == "" {
		errs.add("email", customerMessages["email.required"])
	}
	structInto(errs, req, customerMessages)
	checkOrderValue(errs, &req.OrderValue)
	return errs.orNil()
}

func CustomerUpdate(req customer.UpdateCustomerRequest) error {
	errs := Errors{}
	if req.Name != nil && strings.TrimSpace(*req.Name) == "" {
		errs.add("name", customerMessages["name.required"])
	}
	if req.Email != nil && strings.TrimSpace(*req.Email) == "" {
		errs.add("email", customerMessages["email.required"])
	}
	structInto(errs, req, customerMessages)
	checkOrderValue(errs, req.OrderValue)
	return errs.orNil()
}

// Task validates a new task. The due date may not be before today.
func Task(req task.CreateTaskRequest, today calendar.Date) error {
	errs := Errors{}
	if strings.TrimSpace(req.Title) == "" {
		errs.add("title", taskMessages["title.required"])
	}
	if strings.TrimSpace(req.AssignedTo) == "" {
		errs.add("assignedTo", taskMessages["assignedTo.required"])
	}
	structInto(errs, req, taskMessages)
	if _, bad := errs["dueDate"]; !bad {
		if due, err := calendar.Parse(req.DueDate); err == nil && due.Before(today) {
			errs.add("dueDate", "Due date cannot be in the past")
		}
	}
	return errs.orNil()
}

// TaskUpdate validates an edit. Past due dates are allowed when editing.
func TaskUpdate(req task.UpdateTaskRequest) error {
	errs := Errors{}
	if req.Title != nil && strings.TrimSpace(*req.Title) == "" {
		errs.add("title", taskMessages["title.required"])
	}
	if req.AssignedTo != nil && strings.TrimSpace(*req.AssignedTo) == "" {
		errs.add("assignedTo", taskMessages["assignedTo.required"])
	}
	if req.DueDate != nil && strings.TrimSpace(*req.DueDate) == "" {
		errs.add("dueDate", taskMessages["dueDate.required"])
	}
	structInto(errs, req, taskMessages)
	return errs.orNil()
}

// Compose validates a draft: recipient and subject are required and every
// entry of to, cc and bcc must be a valid address.
func Compose(d email.Draft) error {
	errs := Errors{}
	if strings.TrimSpace(d.To) == "" || strings.TrimSpace(d.Subject) == "" {
		msg := "Please fill in recipient and subject fields"
		if strings.TrimSpace(d.To) == "" {
			errs.add("to", msg)
		}
		if strings.TrimSpace(d.Subject) == "" {
			errs.add("subject", msg)
		}
	}
	for field, list := range map[string]string{"to": d.To, "cc": d.CC, "bcc": d.BCC} {
		if bad := InvalidAddresses(list); len(bad) > 0 {
			errs.add(field, "Invalid email addresses: "+strings.Join(bad, ", "))
		}
	}
	structInto(errs, d, nil)
	return errs.orNil()
}
