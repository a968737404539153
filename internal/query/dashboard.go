package query

import (
	"crm-client/internal/domain/customer"
	"crm-client/internal/domain/email"
	"crm-client/internal/domain/notification"
	"crm-client/internal/domain/task"
	"crm-client/internal/pkg/calendar"
)

const recentLimit = 5

type Dashboard struct {
	Customers    customer.CustomerStats `json:"customers"`
	Tasks        task.TaskStats         `json:"tasks"`
	Emails       email.EmailStats       `json:"emails"`
	Headline     *notification.Headline `json:"headline,omitempty"`
	UrgentTasks  []task.View            `json:"urgentTasks"`
	RecentEmails []email.View           `json:"recentEmails"`
}

// BuildDashboard assembles the overview from the current collections.
func BuildDashboard(customers []customer.Customer, tasks []task.Task, emails []email.Email, names NameLookup, today calendar.Date) Dashboard {
	d := Dashboard{
		Customers: CustomerStats(customers),
		Tasks:     TaskStats(tasks, today),
		Emails:    EmailStats(emails),
	}
	if h, ok := TaskHeadline(d.Tasks); ok {
		d.Headline = &h
	}

	open := FilterTasks(tasks, TaskFilter{}, names, today)
	d.UrgentTasks = make([]task.View, 0, recentLimit)
	for _, v := range open {
		if v.Status == task.StatusCompleted {
			continue
		}
		d.UrgentTasks = append(d.UrgentTasks, v)
		if len(d.UrgentTasks) == recentLimit {
			break
		}
	}

	recent := FilterEmails(emails, EmailFilter{}, names)
	if len(recent) > recentLimit {
		recent = recent[:recentLimit]
	}
	d.RecentEmails = recent
	return d
}
