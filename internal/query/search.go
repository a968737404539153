package query

import (
	"crm-client/internal/domain/customer"
	"crm-client/internal/domain/email"
	"crm-client/internal/domain/task"
	"crm-client/internal/pkg/calendar"
)

type SearchResults struct {
	Customers []customer.Customer `json:"customers"`
	Tasks     []task.View         `json:"tasks"`
	Emails    []email.View        `json:"emails"`
}

func (r SearchResults) Total() int {
	return len(r.Customers) + len(r.Tasks) + len(r.Emails)
}

// Search matches q case-insensitively against each entity's searchable
// fields. A blank query matches nothing.
func Search(q string, customers []customer.Customer, tasks []task.Task, emails []email.Email, names NameLookup, today calendar.Date) SearchResults {
	res := SearchResults{
		Customers: []customer.Customer{},
		Tasks:     []task.View{},
		Emails:    []email.View{},
	}
	needle, ok := normalize(q)
	if !ok {
		return res
	}

	for _, c := range customers {
		if customerMatches(c, needle) {
			res.Customers = append(res.Customers, c)
		}
	}
	for _, t := range tasks {
		if taskMatches(t, names.Resolve(t.CustomerID), needle) {
			res.Tasks = append(res.Tasks, ViewTask(t, names, today))
		}
	}
	for _, e := range emails {
		name := names.Resolve(e.CustomerID)
		if emailMatches(e, name, needle) {
			res.Emails = append(res.Emails, email.View{Email: e, CustomerName: name})
		}
	}
	return res
}
