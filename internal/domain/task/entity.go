package task

import "crm-client/internal/pkg/calendar"

type Priority string

const (
	PriorityLow    Priority = "Low"
	PriorityMedium Priority = "Medium"
	PriorityHigh   Priority = "High"
)

// Weight orders priorities for sorting: High=3, Medium=2, Low=1.
func (p Priority) Weight() int {
	switch p {
	case PriorityHigh:
		return 3
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 1
	}
	return 0
}

type Status string

const (
	StatusPending    Status = "Pending"
	StatusInProgress Status = "In Progress"
	StatusCompleted  Status = "Completed"
)

// Task is a unit of follow-up work. CustomerID is a weak reference and may
// point at a customer that no longer exists.
type Task struct {
	ID              int64         `json:"id"`
	Title           string        `json:"title"`
	Description     string        `json:"description"`
	CustomerID      *int64        `json:"customerId"`
	AssignedTo      string        `json:"assignedTo"`
	AssignedToEmail string        `json:"assignedToEmail"`
	Priority        Priority      `json:"priority"`
	Status          Status        `json:"status"`
	DueDate         calendar.Date `json:"dueDate"`
	Created         calendar.Date `json:"created"`
	Tags            []string      `json:"tags"`
}

func (t Task) GetID() int64 { return t.ID }

func (t Task) BelongsTo(customerID int64) bool {
	return t.CustomerID != nil && *t.CustomerID == customerID
}

// IsOverdue: due strictly before today and not completed.
func (t Task) IsOverdue(today calendar.Date) bool {
	return !t.DueDate.IsZero() && t.DueDate.Before(today) && t.Status != StatusCompleted
}

func (t Task) IsDueOn(day calendar.Date) bool {
	return !t.DueDate.IsZero() && t.DueDate.Equal(day)
}

type Urgency string

const (
	UrgencyCompleted   Urgency = "completed"
	UrgencyOverdue     Urgency = "overdue"
	UrgencyDueToday    Urgency = "due-today"
	UrgencyDueTomorrow Urgency = "due-tomorrow"
	UrgencyDueSoon     Urgency = "due-soon"
	UrgencyNormal      Urgency = "normal"
)

// dueSoonDays is the horizon of the due-soon bucket.
const dueSoonDays = 3

// Classify derives the urgency class of t relative to today. It is never
// stored.
func Classify(t Task, today calendar.Date) Urgency {
	if t.Status == StatusCompleted {
		return UrgencyCompleted
	}
	if t.DueDate.IsZero() {
		return UrgencyNormal
	}
	days := today.DaysUntil(t.DueDate)
	switch {
	case days < 0:
		return UrgencyOverdue
	case days == 0:
		return UrgencyDueToday
	case days == 1:
		return UrgencyDueTomorrow
	case days <= dueSoonDays:
		return UrgencyDueSoon
	default:
		return UrgencyNormal
	}
}

type UrgencyInfo struct {
	Class   Urgency `json:"class"`
	Label   string  `json:"label"`
	DaysDue int     `json:"daysDue"`
}

// View is a task as shown in lists: the record plus read-time derived fields.
type View struct {
	Task
	CustomerName string      `json:"customerName"`
	Urgency      UrgencyInfo `json:"urgency"`
}

type TaskStats struct {
	Total      int            `json:"total"`
	Pending    int            `json:"pending"`
	InProgress int            `json:"inProgress"`
	Completed  int            `json:"completed"`
	Overdue    int            `json:"overdue"`
	DueToday   int            `json:"dueToday"`
	High       int            `json:"high"`
	Medium     int            `json:"medium"`
	Low        int            `json:"low"`
	ByAssignee map[string]int `json:"byAssignee"`
}
