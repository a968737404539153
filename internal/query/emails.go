package query

import (
	"sort"
	"strings"

	"crm-client/internal/domain/email"
)

// Mailbox views.
const (
	EmailViewAll      = "all"
	EmailViewUnread   = "unread"
	EmailViewRead     = "read"
	EmailViewStarred  = "starred"
	EmailViewSent     = "sent"
	EmailViewReceived = "received"
)

type EmailFilter struct {
	View   string
	Search string
}

func matchView(e email.Email, view string) bool {
	switch strings.ToLower(view) {
	case "", EmailViewAll:
		return true
	case EmailViewUnread:
		return !e.IsRead
	case EmailViewRead:
		return e.IsRead
	case EmailViewStarred:
		return e.IsStarred
	case EmailViewSent, string(email.DirectionOutgoing):
		return e.Type == email.DirectionOutgoing
	case EmailViewReceived, string(email.DirectionIncoming):
		return e.Type == email.DirectionIncoming
	}
	return false
}

func emailMatches(e email.Email, customerName, needle string) bool {
	return contains(e.Subject, needle) ||
		contains(e.Body, needle) ||
		contains(customerName, needle) ||
		contains(e.From, needle) ||
		contains(e.To, needle)
}

// FilterEmails returns the matching emails newest first.
func FilterEmails(emails []email.Email, f EmailFilter, names NameLookup) []email.View {
	needle, searching := normalize(f.Search)
	out := make([]email.View, 0, len(emails))
	for _, e := range emails {
		if !matchView(e, f.View) {
			continue
		}
		name := names.Resolve(e.CustomerID)
		if searching && !emailMatches(e, name, needle) {
			continue
		}
		out = append(out, email.View{Email: e, CustomerName: name})
	}
	SortEmails(out)
	return out
}

// SortEmails orders by timestamp, newest first.
func SortEmails(views []email.View) {
	sort.SliceStable(views, func(i, j int) bool {
		return views[i].Timestamp.After(views[j].Timestamp)
	})
}

func EmailStats(emails []email.Email) email.EmailStats {
	s := email.EmailStats{Total: len(emails)}
	for _, e := range emails {
		if !e.IsRead {
			s.Unread++
		}
		if e.IsStarred {
			s.Starred++
		}
		switch e.Type {
		case email.DirectionOutgoing:
			s.Sent++
		case email.DirectionIncoming:
			s.Received++
		}
	}
	return s
}
