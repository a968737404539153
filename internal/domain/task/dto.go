package task

// CreateTaskRequest is the task form. DueDate is YYYY-MM-DD, Tags is a comma
// separated list.
type CreateTaskRequest struct {
	Title           string   `json:"title" validate:"required"`
	Description     string   `json:"description"`
	CustomerID      *int64   `json:"customerId"`
	AssignedTo      string   `json:"assignedTo" validate:"required"`
	AssignedToEmail string   `json:"assignedToEmail" validate:"omitempty,mailbox"`
	Priority        Priority `json:"priority" validate:"omitempty,oneof=Low Medium High"`
	Status          Status   `json:"status" validate:"omitempty,oneof=Pending 'In Progress' Completed"`
	DueDate         string   `json:"dueDate" validate:"required,datetime=2006-01-02"`
	Tags            string   `json:"tags"`
}

// UpdateTaskRequest is a partial update; nil fields are left alone.
// ClearCustomer detaches the task from its customer.
type UpdateTaskRequest struct {
	Title           *string   `json:"title"`
	Description     *string   `json:"description"`
	CustomerID      *int64    `json:"customerId"`
	ClearCustomer   bool      `json:"clearCustomer"`
	AssignedTo      *string   `json:"assignedTo"`
	AssignedToEmail *string   `json:"assignedToEmail" validate:"omitempty,mailbox"`
	Priority        *Priority `json:"priority" validate:"omitempty,oneof=Low Medium High"`
	Status          *Status   `json:"status" validate:"omitempty,oneof=Pending 'In Progress' Completed"`
	DueDate         *string   `json:"dueDate" validate:"omitempty,datetime=2006-01-02"`
	Tags            *string   `json:"tags"`
}

type UpdateStatusRequest struct {
	Status Status `json:"status" validate:"required,oneof=Pending 'In Progress' Completed"`
}

type AssignRequest struct {
	AssignedTo      string `json:"assignedTo" validate:"required"`
	AssignedToEmail string `json:"assignedToEmail" validate:"omitempty,mailbox"`
}

// Patch is the subset of fields a bulk update may touch.
type Patch struct {
	Status     *Status   `json:"status,omitempty" validate:"omitempty,oneof=Pending 'In Progress' Completed"`
	Priority   *Priority `json:"priority,omitempty" validate:"omitempty,oneof=Low Medium High"`
	AssignedTo *string   `json:"assignedTo,omitempty"`
}

type BulkUpdateRequest struct {
	TaskIDs []int64 `json:"taskIds" validate:"required,min=1"`
	Updates Patch   `json:"updates"`
}

type TaskListFilters struct {
	Status   string `form:"status"`
	Priority string `form:"priority"`
	Assignee string `form:"assignee"`
	Search   string `form:"search"`
}
