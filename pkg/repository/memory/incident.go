package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secops-lab/incidentdesk/pkg/domain/model"
	"github.com/secops-lab/incidentdesk/pkg/domain/types"
)

type incidentRepository struct {
	mu        sync.RWMutex
	incidents map[types.IncidentID]*model.Incident
}

func newIncidentRepository() *incidentRepository {
	return &incidentRepository{
		incidents: make(map[types.IncidentID]*model.Incident),
	}
}

// scalarOnly strips the child collections: the incidents table holds only
// the scalar columns.
func scalarOnly(inc *model.Incident) *model.Incident {
	copied := inc.Clone()
	copied.Assignee = nil
	copied.AffectedSystems = nil
	copied.Timeline = nil
	return copied
}

func (r *incidentRepository) Insert(ctx context.Context, inc *model.Incident) (*model.Incident, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	created := scalarOnly(inc)
	created.ID = types.NewIncidentID()
	created.CreatedAt = now
	created.UpdatedAt = now

	r.incidents[created.ID] = created
	return created.Clone(), nil
}

func (r *incidentRepository) Get(ctx context.Context, id types.IncidentID) (*model.Incident, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	inc, exists := r.incidents[id]
	if !exists {
		return nil, nil
	}
	return inc.Clone(), nil
}

func (r *incidentRepository) List(ctx context.Context) ([]*model.Incident, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	incidents := make([]*model.Incident, 0, len(r.incidents))
	for _, inc := range r.incidents {
		incidents = append(incidents, inc.Clone())
	}

	sort.Slice(incidents, func(i, j int) bool {
		return incidents[i].CreatedAt.After(incidents[j].CreatedAt)
	})

	return incidents, nil
}

func (r *incidentRepository) Update(ctx context.Context, inc *model.Incident) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, exists := r.incidents[inc.ID]
	if !exists {
		return goerr.Wrap(ErrNotFound, "incident not found", goerr.V("id", inc.ID))
	}

	updated := scalarOnly(inc)
	updated.CreatedAt = existing.CreatedAt
	updated.UpdatedAt = time.Now().UTC()

	r.incidents[updated.ID] = updated
	return nil
}

func (r *incidentRepository) Delete(ctx context.Context, id types.IncidentID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.incidents[id]; !exists {
		return goerr.Wrap(ErrNotFound, "incident not found", goerr.V("id", id))
	}

	delete(r.incidents, id)
	return nil
}
