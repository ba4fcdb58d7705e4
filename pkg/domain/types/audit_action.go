package types

import "fmt"

// AuditAction represents the kind of mutation recorded in an audit entry
type AuditAction string

const (
	AuditActionCreate AuditAction = "CREATE"
	AuditActionUpdate AuditAction = "UPDATE"
	AuditActionDelete AuditAction = "DELETE"
)

// IsValid checks if the audit action is valid
func (a AuditAction) IsValid() bool {
	switch a {
	case AuditActionCreate,
		AuditActionUpdate,
		AuditActionDelete:
		return true
	default:
		return false
	}
}

// String returns the string representation of the audit action
func (a AuditAction) String() string {
	return string(a)
}

// ParseAuditAction parses a string into an AuditAction
func ParseAuditAction(s string) (AuditAction, error) {
	action := AuditAction(s)
	if !action.IsValid() {
		return "", fmt.Errorf("invalid audit action: %s", s)
	}
	return action, nil
}
