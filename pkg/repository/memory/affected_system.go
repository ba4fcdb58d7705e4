package memory

import (
	"context"
	"sync"

	"github.com/secops-lab/incidentdesk/pkg/domain/types"
)

type affectedSystemRepository struct {
	mu   sync.RWMutex
	rows map[types.IncidentID][]string
}

func newAffectedSystemRepository() *affectedSystemRepository {
	return &affectedSystemRepository{
		rows: make(map[types.IncidentID][]string),
	}
}

func (r *affectedSystemRepository) Insert(ctx context.Context, incidentID types.IncidentID, systems []string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.rows[incidentID] = append(r.rows[incidentID], systems...)
	return nil
}

func (r *affectedSystemRepository) ListByIncident(ctx context.Context, incidentID types.IncidentID) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rows := r.rows[incidentID]
	systems := make([]string, len(rows))
	copy(systems, rows)
	return systems, nil
}

func (r *affectedSystemRepository) DeleteByIncident(ctx context.Context, incidentID types.IncidentID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.rows, incidentID)
	return nil
}
