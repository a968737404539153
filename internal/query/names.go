// Package query computes read-only views over the collections: search,
// filtered and sorted lists, and statistics. Nothing here mutates state and
// nothing is cached.
package query

import "strings"

// UnknownCustomer is shown for missing or dangling customer references.
const UnknownCustomer = "Unknown"

// NameLookup resolves a customer id to a display name.
type NameLookup func(id int64) (string, bool)

// Resolve applies lookup to a weak reference, falling back to "Unknown".
func (lookup NameLookup) Resolve(id *int64) string {
	if id == nil || lookup == nil {
		return UnknownCustomer
	}
	if name, ok := lookup(*id); ok {
		return name
	}
	return UnknownCustomer
}

// NamesFrom builds a lookup over a fixed snapshot.
func NamesFrom(names map[int64]string) NameLookup {
	return func(id int64) (string, bool) {
		name, ok := names[id]
		return name, ok
	}
}

func contains(field, needle string) bool {
	return strings.Contains(strings.ToLower(field), needle)
}

func anyContains(fields []string, needle string) bool {
	for _, f := range fields {
		if contains(f, needle) {
			return true
		}
	}
	return false
}

// normalize lower-cases a query; ok is false for empty or blank input.
// Surrounding spaces are part of the needle.
func normalize(q string) (string, bool) {
	if strings.TrimSpace(q) == "" {
		return "", false
	}
	return strings.ToLower(q), true
}
