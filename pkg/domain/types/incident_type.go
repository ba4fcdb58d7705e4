package types

// IncidentType classifies an incident. The builtin set below is not
// exhaustive: user-defined types from the custom_incident_types table are
// equally valid, so IncidentType is an open string and has no IsValid.
type IncidentType string

const (
	TypeMalware            IncidentType = "malware"
	TypePhishing           IncidentType = "phishing"
	TypeUnauthorizedAccess IncidentType = "unauthorized-access"
	TypeDataBreach         IncidentType = "data-breach"
	TypeDDoS               IncidentType = "ddos"
	TypeOther              IncidentType = "other"
)

// BuiltinIncidentTypes returns the builtin incident types
func BuiltinIncidentTypes() []IncidentType {
	return []IncidentType{
		TypeMalware,
		TypePhishing,
		TypeUnauthorizedAccess,
		TypeDataBreach,
		TypeDDoS,
		TypeOther,
	}
}

// String returns the string representation of the incident type
func (t IncidentType) String() string {
	return string(t)
}
