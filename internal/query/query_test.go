package query

import (
	"testing"
	"time"

	"crm-client/internal/domain/customer"
	"crm-client/internal/domain/email"
	"crm-client/internal/domain/notification"
	"crm-client/internal/domain/task"
	"crm-client/internal/pkg/calendar"
)

var today = calendar.New(2024, time.June, 10)

func id(v int64) *int64 { return &v }

func sampleCustomers() []customer.Customer {
	return []customer.Customer{
		{ID: 1, Name: "Ada Lovelace", Email: "ada@engines.io", Company: "Analytical", Status: customer.StatusActive, OrderValue: 100, Tags: []string{"VIP"}},
		{ID: 2, Name: "Bob Stone", Email: "bob@quarry.com", Company: "Quarry", Status: customer.StatusLead, OrderValue: 50},
		{ID: 3, Name: "Cy Twombly", Email: "cy@art.org", Company: "Studio", Status: customer.StatusInactive},
	}
}

func names() NameLookup {
	return NamesFrom(map[int64]string{1: "Ada Lovelace", 2: "Bob Stone", 3: "Cy Twombly"})
}

func TestSearchBlankQueryReturnsEmptyLists(t *testing.T) {
	tasks := []task.Task{{ID: 1, Title: "Call"}}
	emails := []email.Email{{ID: 1, Subject: "Hi"}}
	for _, q := range []string{"", "   ", "\t\n"} {
		res := Search(q, sampleCustomers(), tasks, emails, names(), today)
		if res.Customers == nil || res.Tasks == nil || res.Emails == nil {
			t.Fatalf("Search(%q) returned nil lists", q)
		}
		if res.Total() != 0 {
			t.Fatalf("Search(%q) matched %d records", q, res.Total())
		}
	}
}

func TestSearchMatchesFieldsPerEntity(t *testing.T) {
	tasks := []task.Task{
		{ID: 1, Title: "Prepare proposal", CustomerID: id(1), AssignedTo: "Sam"},
		{ID: 2, Title: "Invoice", Tags: []string{"billing"}, CustomerID: id(2), AssignedTo: "Kim"},
		{ID: 3, Title: "Orphan", CustomerID: id(99), AssignedTo: "Kim"},
	}
	emails := []email.Email{
		{ID: 1, Subject: "Quote", Body: "see attached", From: "me@crm.io", To: "bob@quarry.com", CustomerID: id(2)},
		{ID: 2, Subject: "Hello", Body: "nothing", From: "x@y.z", To: "q@r.s"},
	}

	res := Search("ADA", sampleCustomers(), tasks, emails, names(), today)
	if len(res.Customers) != 1 || res.Customers[0].ID != 1 {
		t.Fatalf("customers = %+v", res.Customers)
	}
	if len(res.Tasks) != 1 || res.Tasks[0].ID != 1 || res.Tasks[0].CustomerName != "Ada Lovelace" {
		t.Fatalf("tasks = %+v", res.Tasks)
	}
	if len(res.Emails) != 0 {
		t.Fatalf("emails = %+v", res.Emails)
	}

	res = Search("quarry", sampleCustomers(), tasks, emails, names(), today)
	if len(res.Customers) != 1 || len(res.Emails) != 1 {
		t.Fatalf("quarry: customers=%d emails=%d", len(res.Customers), len(res.Emails))
	}

	res = Search("unknown", sampleCustomers(), tasks, emails, names(), today)
	if len(res.Tasks) != 1 || res.Tasks[0].ID != 3 {
		t.Fatalf("dangling reference should resolve to Unknown, tasks = %+v", res.Tasks)
	}

	res = Search("vip", sampleCustomers(), tasks, emails, names(), today)
	if len(res.Customers) != 1 {
		t.Fatalf("tag search failed: %+v", res.Customers)
	}

	res = Search("vip ", sampleCustomers(), tasks, emails, names(), today)
	if res.Total() != 0 {
		t.Fatalf("trailing space should stay in the needle, matched %d", res.Total())
	}
	res = Search("ada ", sampleCustomers(), tasks, emails, names(), today)
	if len(res.Customers) != 1 || len(res.Tasks) != 1 {
		t.Fatalf("inner space match: customers=%d tasks=%d", len(res.Customers), len(res.Tasks))
	}
}

func TestClassify(t *testing.T) {
	cases := []struct {
		name   string
		due    calendar.Date
		status task.Status
		want   task.Urgency
	}{
		{"overdue", today.AddDays(-1), task.StatusPending, task.UrgencyOverdue},
		{"completed beats overdue", today.AddDays(-1), task.StatusCompleted, task.UrgencyCompleted},
		{"today", today, task.StatusInProgress, task.UrgencyDueToday},
		{"tomorrow", today.AddDays(1), task.StatusPending, task.UrgencyDueTomorrow},
		{"soon", today.AddDays(3), task.StatusPending, task.UrgencyDueSoon},
		{"normal", today.AddDays(4), task.StatusPending, task.UrgencyNormal},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := task.Classify(task.Task{DueDate: tc.due, Status: tc.status}, today)
			if got != tc.want {
				t.Fatalf("Classify = %s, want %s", got, tc.want)
			}
		})
	}
}

func TestUrgencyLabels(t *testing.T) {
	info := Urgency(task.Task{DueDate: today.AddDays(-2), Status: task.StatusPending}, today)
	if info.Label != "2 days overdue" || info.DaysDue != -2 {
		t.Fatalf("info = %+v", info)
	}
	info = Urgency(task.Task{DueDate: today.AddDays(-1), Status: task.StatusPending}, today)
	if info.Label != "1 day overdue" {
		t.Fatalf("label = %q", info.Label)
	}
}

func TestSortOverdueBeforePriority(t *testing.T) {
	tasks := []task.Task{
		{ID: 1, Title: "B", Priority: task.PriorityHigh, Status: task.StatusPending, DueDate: today.AddDays(5)},
		{ID: 2, Title: "A", Priority: task.PriorityLow, Status: task.StatusPending, DueDate: today.AddDays(-1)},
	}
	SortTasks(tasks, today)
	if tasks[0].ID != 2 {
		t.Fatalf("overdue low-priority task should sort first, got %+v", tasks)
	}
}

func TestSortPriorityThenDueDateThenInsertion(t *testing.T) {
	tasks := []task.Task{
		{ID: 1, Priority: task.PriorityMedium, DueDate: today.AddDays(4)},
		{ID: 2, Priority: task.PriorityHigh, DueDate: today.AddDays(9)},
		{ID: 3, Priority: task.PriorityMedium, DueDate: today.AddDays(2)},
		{ID: 4, Priority: task.PriorityMedium},
		{ID: 5, Priority: task.PriorityMedium, DueDate: today.AddDays(2)},
	}
	SortTasks(tasks, today)
	want := []int64{2, 3, 5, 1, 4}
	for i, w := range want {
		if tasks[i].ID != w {
			t.Fatalf("position %d = %d, want %d (order %v)", i, tasks[i].ID, w, ids(tasks))
		}
	}
}

func ids(tasks []task.Task) []int64 {
	out := make([]int64, len(tasks))
	for i, t := range tasks {
		out[i] = t.ID
	}
	return out
}

func TestFilterTasksComposesFilters(t *testing.T) {
	tasks := []task.Task{
		{ID: 1, Title: "Call", Priority: task.PriorityHigh, Status: task.StatusPending, AssignedTo: "Sam", DueDate: today.AddDays(-3)},
		{ID: 2, Title: "Mail", Priority: task.PriorityHigh, Status: task.StatusCompleted, AssignedTo: "Sam", DueDate: today.AddDays(-3)},
		{ID: 3, Title: "Meet", Priority: task.PriorityLow, Status: task.StatusPending, AssignedTo: "Kim", DueDate: today},
		{ID: 4, Title: "Demo", Priority: task.PriorityHigh, Status: task.StatusCompleted, AssignedTo: "Kim", DueDate: today},
	}

	got := FilterTasks(tasks, TaskFilter{Status: TaskFilterOverdue}, names(), today)
	if len(got) != 1 || got[0].ID != 1 {
		t.Fatalf("overdue = %+v", got)
	}

	got = FilterTasks(tasks, TaskFilter{Status: TaskFilterDueToday}, names(), today)
	if len(got) != 2 {
		t.Fatalf("due-today should include completed tasks, got %d", len(got))
	}

	got = FilterTasks(tasks, TaskFilter{Status: TaskFilterDueToday, Priority: "High", Assignee: "Kim"}, names(), today)
	if len(got) != 1 || got[0].ID != 4 {
		t.Fatalf("composed = %+v", got)
	}

	got = FilterTasks(tasks, TaskFilter{Status: TaskFilterInProgress}, names(), today)
	if len(got) != 0 {
		t.Fatalf("in-progress = %+v", got)
	}

	got = FilterTasks(tasks, TaskFilter{Status: "all", Search: "me"}, names(), today)
	if len(got) != 1 || got[0].ID != 3 {
		t.Fatalf("search = %+v", got)
	}
}

func TestTaskStatsAndHeadline(t *testing.T) {
	tasks := []task.Task{
		{Priority: task.PriorityHigh, Status: task.StatusPending, AssignedTo: "Sam", DueDate: today.AddDays(-1)},
		{Priority: task.PriorityHigh, Status: task.StatusCompleted, AssignedTo: "Sam", DueDate: today},
		{Priority: task.PriorityLow, Status: task.StatusInProgress, AssignedTo: "Kim", DueDate: today},
	}
	s := TaskStats(tasks, today)
	if s.Total != 3 || s.Pending != 1 || s.InProgress != 1 || s.Completed != 1 {
		t.Fatalf("status counts = %+v", s)
	}
	if s.Overdue != 1 || s.DueToday != 1 || s.High != 1 || s.Low != 1 {
		t.Fatalf("open counts = %+v", s)
	}
	if s.ByAssignee["Sam"] != 2 || s.ByAssignee["Kim"] != 1 {
		t.Fatalf("byAssignee = %+v", s.ByAssignee)
	}

	h, ok := TaskHeadline(s)
	if !ok || h.Type != notification.SeverityError {
		t.Fatalf("headline = %+v", h)
	}
	h, _ = TaskHeadline(task.TaskStats{DueToday: 2})
	if h.Type != notification.SeverityWarning || h.Message != "You have 2 tasks due today." {
		t.Fatalf("headline = %+v", h)
	}
	if _, ok := TaskHeadline(task.TaskStats{}); ok {
		t.Fatalf("no headline expected for empty stats")
	}
}

func TestFilterEmailsSortsNewestFirst(t *testing.T) {
	base := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	emails := []email.Email{
		{ID: 1, Subject: "old", Timestamp: base, Type: email.DirectionIncoming},
		{ID: 2, Subject: "new", Timestamp: base.Add(2 * time.Hour), Type: email.DirectionOutgoing, IsRead: true},
		{ID: 3, Subject: "mid", Timestamp: base.Add(time.Hour), Type: email.DirectionIncoming, IsStarred: true, IsRead: true},
	}

	all := FilterEmails(emails, EmailFilter{}, names())
	if all[0].ID != 2 || all[1].ID != 3 || all[2].ID != 1 {
		t.Fatalf("order = %d %d %d", all[0].ID, all[1].ID, all[2].ID)
	}
	if all[0].CustomerName != UnknownCustomer {
		t.Fatalf("customer name = %q", all[0].CustomerName)
	}

	views := map[string]int{
		EmailViewUnread:   1,
		EmailViewStarred:  1,
		EmailViewSent:     1,
		EmailViewReceived: 2,
		"outgoing":        1,
	}
	for view, want := range views {
		if got := len(FilterEmails(emails, EmailFilter{View: view}, names())); got != want {
			t.Errorf("view %s: got %d, want %d", view, got, want)
		}
	}

	s := EmailStats(emails)
	if s.Total != 3 || s.Unread != 1 || s.Starred != 1 || s.Sent != 1 || s.Received != 2 {
		t.Fatalf("stats = %+v", s)
	}
}

func TestCustomerFilterAndStats(t *testing.T) {
	got := FilterCustomers(sampleCustomers(), customer.CustomerListFilters{Status: customer.StatusLead})
	if len(got) != 1 || got[0].ID != 2 {
		t.Fatalf("lead filter = %+v", got)
	}
	got = FilterCustomers(sampleCustomers(), customer.CustomerListFilters{Search: "studio"})
	if len(got) != 1 || got[0].ID != 3 {
		t.Fatalf("search = %+v", got)
	}

	s := CustomerStats(sampleCustomers())
	if s.Total != 3 || s.Active != 1 || s.Leads != 1 || s.Inactive != 1 {
		t.Fatalf("stats = %+v", s)
	}
	if s.TotalRevenue != 150 || s.AverageRevenue != 50 {
		t.Fatalf("revenue = %v / %v", s.TotalRevenue, s.AverageRevenue)
	}
	if empty := CustomerStats(nil); empty.AverageRevenue != 0 {
		t.Fatalf("average of nothing = %v", empty.AverageRevenue)
	}
}

func TestDashboardCapsLists(t *testing.T) {
	var tasks []task.Task
	for i := 0; i < 8; i++ {
		tasks = append(tasks, task.Task{ID: int64(i + 1), Status: task.StatusPending, Priority: task.PriorityLow, DueDate: today.AddDays(i)})
	}
	tasks = append(tasks, task.Task{ID: 20, Status: task.StatusCompleted, Priority: task.PriorityHigh})

	d := BuildDashboard(sampleCustomers(), tasks, nil, names(), today)
	if len(d.UrgentTasks) != recentLimit {
		t.Fatalf("urgent tasks = %d", len(d.UrgentTasks))
	}
	for _, v := range d.UrgentTasks {
		if v.Status == task.StatusCompleted {
			t.Fatalf("completed task listed as urgent")
		}
	}
	if d.RecentEmails == nil || len(d.RecentEmails) != 0 {
		t.Fatalf("recent emails = %+v", d.RecentEmails)
	}
	if d.Headline == nil || d.Headline.Type != notification.SeverityWarning {
		t.Fatalf("headline = %+v", d.Headline)
	}
}
