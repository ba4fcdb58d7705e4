package types

import "github.com/google/uuid"

// IncidentID identifies a row in the incidents table
type IncidentID string

// LeakID identifies a row in the credential_leaks table
type LeakID string

// AuditID identifies a row in the credential_leak_logs table
type AuditID string

// TypeID identifies a row in the custom_incident_types table
type TypeID string

func NewIncidentID() IncidentID {
	return IncidentID(uuid.NewString())
}

func NewLeakID() LeakID {
	return LeakID(uuid.NewString())
}

func NewAuditID() AuditID {
	return AuditID(uuid.NewString())
}

func NewTypeID() TypeID {
	return TypeID(uuid.NewString())
}

func (x IncidentID) String() string { return string(x) }
func (x LeakID) String() string     { return string(x) }
func (x AuditID) String() string    { return string(x) }
func (x TypeID) String() string     { return string(x) }
