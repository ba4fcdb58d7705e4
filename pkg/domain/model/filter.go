package model

import "strings"

// FilterAll is the "no constraint" sentinel for enum predicates. An empty
// string is treated the same way so that unset query parameters need no
// special handling.
const FilterAll = "all"

// IncidentFilter is a conjunctive filter specification over incidents. Every
// predicate defaults to "no constraint" and active predicates compose by
// logical AND.
type IncidentFilter struct {
	Tab      string // status shortcut used by the dashboard tabs
	Status   string
	Severity string
	Type     string
	Query    string // case-insensitive substring over title and description
}

func noConstraint(v string) bool {
	return v == "" || v == FilterAll
}

// Match reports whether the incident satisfies every active predicate.
func (f IncidentFilter) Match(inc *Incident) bool {
	if !noConstraint(f.Status) && inc.Status.String() != f.Status {
		return false
	}
	if !noConstraint(f.Severity) && inc.Severity.String() != f.Severity {
		return false
	}
	if !noConstraint(f.Type) && inc.Type.String() != f.Type {
		return false
	}
	if f.Query != "" {
		q := strings.ToLower(f.Query)
		if !strings.Contains(strings.ToLower(inc.Title), q) &&
			!strings.Contains(strings.ToLower(inc.Description), q) {
			return false
		}
	}
	if !noConstraint(f.Tab) && inc.Status.String() != f.Tab {
		return false
	}
	return true
}

// FilterIncidents returns the incidents matching the filter, preserving input
// order. It is a pure function: no index is maintained and every call
// recomputes the full O(n) scan, which is fine for the expected collection
// sizes of low hundreds.
func FilterIncidents(incidents []*Incident, f IncidentFilter) []*Incident {
	filtered := make([]*Incident, 0, len(incidents))
	for _, inc := range incidents {
		if f.Match(inc) {
			filtered = append(filtered, inc)
		}
	}
	return filtered
}

// LeakFilter is the filter specification over credential leaks.
type LeakFilter struct {
	Query string // substring over email, username, source and partial password
}

// Match reports whether the leak satisfies the filter.
func (f LeakFilter) Match(leak *CredentialLeak) bool {
	if f.Query == "" {
		return true
	}
	q := strings.ToLower(f.Query)
	return strings.Contains(strings.ToLower(leak.Email), q) ||
		strings.Contains(strings.ToLower(leak.Username), q) ||
		strings.Contains(strings.ToLower(leak.NotificationSource), q) ||
		strings.Contains(strings.ToLower(leak.PartialPassword), q)
}

// FilterLeaks returns the leaks matching the filter, preserving input order.
func FilterLeaks(leaks []*CredentialLeak, f LeakFilter) []*CredentialLeak {
	filtered := make([]*CredentialLeak, 0, len(leaks))
	for _, leak := range leaks {
		if f.Match(leak) {
			filtered = append(filtered, leak)
		}
	}
	return filtered
}
