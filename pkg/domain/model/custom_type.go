package model

import (
	"time"

	"github.com/secops-lab/incidentdesk/pkg/domain/types"
)

// CustomIncidentType is a user-defined extension of the builtin incident
// type set. It is a flat enumeration entry with no children.
type CustomIncidentType struct {
	ID        types.TypeID
	Name      string
	CreatedAt time.Time
}
