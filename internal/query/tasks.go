package query

import (
	"fmt"
	"sort"
	"strings"

	"crm-client/internal/domain/notification"
	"crm-client/internal/domain/task"
	"crm-client/internal/pkg/calendar"
)

// Task status filter values as the task board sends them.
const (
	TaskFilterAll        = "all"
	TaskFilterPending    = "pending"
	TaskFilterInProgress = "in-progress"
	TaskFilterCompleted  = "completed"
	TaskFilterOverdue    = "overdue"
	TaskFilterDueToday   = "due-today"
)

// TaskFilter composes with AND. Empty fields and "all" match everything.
type TaskFilter struct {
	Status   string
	Priority string
	Assignee string
	Search   string
}

func matchStatus(t task.Task, status string, today calendar.Date) bool {
	switch strings.ToLower(status) {
	case "", TaskFilterAll:
		return true
	case TaskFilterPending:
		return t.Status == task.StatusPending
	case TaskFilterInProgress, "in progress":
		return t.Status == task.StatusInProgress
	case TaskFilterCompleted:
		return t.Status == task.StatusCompleted
	case TaskFilterOverdue:
		return t.IsOverdue(today)
	case TaskFilterDueToday:
		return t.IsDueOn(today)
	}
	return false
}

func isAll(v string) bool {
	return v == "" || strings.EqualFold(v, "all")
}

func taskMatches(t task.Task, customerName, needle string) bool {
	return contains(t.Title, needle) ||
		contains(t.Description, needle) ||
		contains(customerName, needle) ||
		contains(t.AssignedTo, needle) ||
		anyContains(t.Tags, needle)
}

// FilterTasks returns the matching tasks as views, sorted with SortTasks.
func FilterTasks(tasks []task.Task, f TaskFilter, names NameLookup, today calendar.Date) []task.View {
	needle, searching := normalize(f.Search)
	matched := make([]task.Task, 0, len(tasks))
	for _, t := range tasks {
		if !matchStatus(t, f.Status, today) {
			continue
		}
		if !isAll(f.Priority) && !strings.EqualFold(string(t.Priority), f.Priority) {
			continue
		}
		if !isAll(f.Assignee) && t.AssignedTo != f.Assignee {
			continue
		}
		if searching && !taskMatches(t, names.Resolve(t.CustomerID), needle) {
			continue
		}
		matched = append(matched, t)
	}
	SortTasks(matched, today)
	return ViewTasks(matched, names, today)
}

// SortTasks orders overdue tasks first, then by priority (High first), then
// by due date ascending. Undated tasks go after dated ones. Ties keep their
// original order.
func SortTasks(tasks []task.Task, today calendar.Date) {
	sort.SliceStable(tasks, func(i, j int) bool {
		a, b := tasks[i], tasks[j]
		if ao, bo := a.IsOverdue(today), b.IsOverdue(today); ao != bo {
			return ao
		}
		if aw, bw := a.Priority.Weight(), b.Priority.Weight(); aw != bw {
			return aw > bw
		}
		switch {
		case a.DueDate.IsZero() || b.DueDate.IsZero():
			return !a.DueDate.IsZero() && b.DueDate.IsZero()
		default:
			return a.DueDate.Before(b.DueDate)
		}
	})
}

// Urgency labels a task the way the task card does.
func Urgency(t task.Task, today calendar.Date) task.UrgencyInfo {
	class := task.Classify(t, today)
	info := task.UrgencyInfo{Class: class}
	if !t.DueDate.IsZero() {
		info.DaysDue = today.DaysUntil(t.DueDate)
	}
	days := info.DaysDue
	switch class {
	case task.UrgencyCompleted:
		info.Label = "Completed"
	case task.UrgencyOverdue:
		info.Label = fmt.Sprintf("%d %s overdue", -days, plural(-days, "day"))
	case task.UrgencyDueToday:
		info.Label = "Due today"
	case task.UrgencyDueTomorrow:
		info.Label = "Due tomorrow"
	default:
		if t.DueDate.IsZero() {
			info.Label = "No due date"
		} else {
			info.Label = fmt.Sprintf("Due in %d days", days)
		}
	}
	return info
}

func plural(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}

func ViewTask(t task.Task, names NameLookup, today calendar.Date) task.View {
	return task.View{
		Task:         t,
		CustomerName: names.Resolve(t.CustomerID),
		Urgency:      Urgency(t, today),
	}
}

func ViewTasks(tasks []task.Task, names NameLookup, today calendar.Date) []task.View {
	out := make([]task.View, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, ViewTask(t, names, today))
	}
	return out
}

// TaskStats counts by status, overdue and due-today (open tasks only), open
// tasks per priority, and all tasks per assignee.
func TaskStats(tasks []task.Task, today calendar.Date) task.TaskStats {
	s := task.TaskStats{Total: len(tasks), ByAssignee: map[string]int{}}
	for _, t := range tasks {
		switch t.Status {
		case task.StatusPending:
			s.Pending++
		case task.StatusInProgress:
			s.InProgress++
		case task.StatusCompleted:
			s.Completed++
		}
		s.ByAssignee[t.AssignedTo]++

		if t.Status == task.StatusCompleted {
			continue
		}
		if t.IsOverdue(today) {
			s.Overdue++
		}
		if t.IsDueOn(today) {
			s.DueToday++
		}
		switch t.Priority {
		case task.PriorityHigh:
			s.High++
		case task.PriorityMedium:
			s.Medium++
		case task.PriorityLow:
			s.Low++
		}
	}
	return s
}

// TaskHeadline is the most pressing task banner, if any.
func TaskHeadline(s task.TaskStats) (notification.Headline, bool) {
	switch {
	case s.Overdue > 0:
		return notification.Headline{
			Type:    notification.SeverityError,
			Message: fmt.Sprintf("You have %d overdue %s that need immediate attention.", s.Overdue, plural(s.Overdue, "task")),
		}, true
	case s.DueToday > 0:
		return notification.Headline{
			Type:    notification.SeverityWarning,
			Message: fmt.Sprintf("You have %d %s due today.", s.DueToday, plural(s.DueToday, "task")),
		}, true
	case s.High > 0:
		return notification.Headline{
			Type:    notification.SeverityInfo,
			Message: fmt.Sprintf("You have %d high priority %s pending.", s.High, plural(s.High, "task")),
		}, true
	}
	return notification.Headline{}, false
}
