package interfaces

import (
	"context"

	"github.com/secops-lab/incidentdesk/pkg/domain/model"
	"github.com/secops-lab/incidentdesk/pkg/domain/types"
)

// IncidentRepository provides row access to the incidents table. Only the
// scalar columns are stored here; child collections live in their own tables
// and are never touched by this repository.
type IncidentRepository interface {
	// Insert creates a new parent row with generated ID and timestamps
	Insert(ctx context.Context, inc *model.Incident) (*model.Incident, error)

	// Get retrieves a parent row by ID. Returns nil, nil when no row matches.
	Get(ctx context.Context, id types.IncidentID) (*model.Incident, error)

	// List retrieves all parent rows, newest first
	List(ctx context.Context) ([]*model.Incident, error)

	// Update overwrites the scalar columns of an existing row by ID
	Update(ctx context.Context, inc *model.Incident) error

	// Delete removes the parent row by ID
	Delete(ctx context.Context, id types.IncidentID) error
}

// AssignedUserRepository provides row access to the assigned_users table.
// Storage allows multiple rows per incident; the business rule of at most
// one assignee is kept by the layer above via replace-all writes.
type AssignedUserRepository interface {
	// Insert adds an assignee row scoped to the incident
	Insert(ctx context.Context, incidentID types.IncidentID, assignee *model.Assignee) error

	// GetByIncident retrieves the assignee of an incident.
	// Returns nil, nil when the incident has no assignee row.
	GetByIncident(ctx context.Context, incidentID types.IncidentID) (*model.Assignee, error)

	// DeleteByIncident removes every assignee row scoped to the incident
	DeleteByIncident(ctx context.Context, incidentID types.IncidentID) error
}

// AffectedSystemRepository provides row access to the affected_systems table
type AffectedSystemRepository interface {
	// Insert bulk-adds system rows scoped to the incident
	Insert(ctx context.Context, incidentID types.IncidentID, systems []string) error

	// ListByIncident retrieves the system names of an incident
	ListByIncident(ctx context.Context, incidentID types.IncidentID) ([]string, error)

	// DeleteByIncident removes every system row scoped to the incident
	DeleteByIncident(ctx context.Context, incidentID types.IncidentID) error
}

// TimelineEventRepository provides row access to the timeline_events table
type TimelineEventRepository interface {
	// Insert bulk-adds event rows scoped to the incident
	Insert(ctx context.Context, incidentID types.IncidentID, events []model.TimelineEvent) error

	// ListByIncident retrieves the events of an incident ordered by time,
	// oldest first
	ListByIncident(ctx context.Context, incidentID types.IncidentID) ([]model.TimelineEvent, error)

	// DeleteByIncident removes every event row scoped to the incident
	DeleteByIncident(ctx context.Context, incidentID types.IncidentID) error
}
