package interfaces

import (
	"context"

	"github.com/secops-lab/incidentdesk/pkg/domain/model"
	"github.com/secops-lab/incidentdesk/pkg/domain/types"
)

// CustomTypeRepository provides row access to the custom_incident_types table
type CustomTypeRepository interface {
	// Insert creates a new custom type row with generated ID and timestamp
	Insert(ctx context.Context, name string) (*model.CustomIncidentType, error)

	// GetByName retrieves a custom type row by its name.
	// Returns nil, nil when no row matches.
	GetByName(ctx context.Context, name string) (*model.CustomIncidentType, error)

	// List retrieves all custom type rows, newest first
	List(ctx context.Context) ([]*model.CustomIncidentType, error)

	// Delete removes a custom type row by ID
	Delete(ctx context.Context, id types.TypeID) error
}
