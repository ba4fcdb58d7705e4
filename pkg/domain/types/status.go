package types

import "fmt"

// Status represents the lifecycle status of an incident
type Status string

const (
	StatusOpen          Status = "open"
	StatusInvestigating Status = "investigating"
	StatusResolved      Status = "resolved"
	StatusClosed        Status = "closed"
)

// AllStatuses returns all valid statuses
func AllStatuses() []Status {
	return []Status{
		StatusOpen,
		StatusInvestigating,
		StatusResolved,
		StatusClosed,
	}
}

// IsValid checks if the status is valid
func (s Status) IsValid() bool {
	switch s {
	case StatusOpen,
		StatusInvestigating,
		StatusResolved,
		StatusClosed:
		return true
	default:
		return false
	}
}

// String returns the string representation of the status
func (s Status) String() string {
	return string(s)
}

// ParseStatus parses a string into a Status
func ParseStatus(s string) (Status, error) {
	status := Status(s)
	if !status.IsValid() {
		return "", fmt.Errorf("invalid status: %s", s)
	}
	return status, nil
}
