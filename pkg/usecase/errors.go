package usecase

import "errors"

// Sentinel errors for the use case layer
var (
	ErrIncidentNotFound = errors.New("incident not found")
	ErrLeakNotFound     = errors.New("credential leak not found")
	ErrDuplicateType    = errors.New("incident type already exists")
)

// Context keys for error values
const (
	IncidentIDKey = "incident_id"
	LeakIDKey     = "leak_id"
)
