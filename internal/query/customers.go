package query

import "crm-client/internal/domain/customer"

func customerMatches(c customer.Customer, needle string) bool {
	return contains(c.Name, needle) ||
		contains(c.Email, needle) ||
		contains(c.Company, needle) ||
		anyContains(c.Tags, needle)
}

// FilterCustomers keeps customers with the given status (empty or "all" means
// any) whose searchable fields contain search.
func FilterCustomers(customers []customer.Customer, f customer.CustomerListFilters) []customer.Customer {
	needle, searching := normalize(f.Search)
	out := make([]customer.Customer, 0, len(customers))
	for _, c := range customers {
		if f.Status != "" && f.Status != "all" && c.Status != f.Status {
			continue
		}
		if searching && !customerMatches(c, needle) {
			continue
		}
		out = append(out, c)
	}
	return out
}

func CustomerStats(customers []customer.Customer) customer.CustomerStats {
	var s customer.CustomerStats
	s.Total = len(customers)
	for _, c := range customers {
		switch c.Status {
		case customer.StatusActive:
			s.Active++
		case customer.StatusLead:
			s.Leads++
		case customer.StatusInactive:
			s.Inactive++
		}
		s.TotalRevenue += c.OrderValue
	}
	if s.Total > 0 {
		s.AverageRevenue = s.TotalRevenue / float64(s.Total)
	}
	return s
}
