package model

import (
	"time"

	"github.com/secops-lab/incidentdesk/pkg/domain/types"
)

// Incident is the aggregate root reconstructed from the incidents table plus
// its three child tables. Children have no lifecycle of their own: they are
// always read and written scoped to the parent ID.
type Incident struct {
	ID                types.IncidentID
	Title             string
	Description       string
	Severity          types.Severity
	Status            types.Status
	Type              types.IncidentType
	AdditionalDetails string
	Assignee          *Assignee // business rule: at most one
	AffectedSystems   []string
	Timeline          []TimelineEvent // ordered by time, append-oriented
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// Assignee is the user currently assigned to an incident
type Assignee struct {
	Name     string
	Initials string
}

// TimelineEvent is a single entry in an incident's timeline
type TimelineEvent struct {
	Time  time.Time
	Event string
}

// Clone returns a deep copy of the incident
func (x *Incident) Clone() *Incident {
	if x == nil {
		return nil
	}

	copied := *x
	if x.Assignee != nil {
		assignee := *x.Assignee
		copied.Assignee = &assignee
	}
	if x.AffectedSystems != nil {
		copied.AffectedSystems = make([]string, len(x.AffectedSystems))
		copy(copied.AffectedSystems, x.AffectedSystems)
	}
	if x.Timeline != nil {
		copied.Timeline = make([]TimelineEvent, len(x.Timeline))
		copy(copied.Timeline, x.Timeline)
	}
	return &copied
}
