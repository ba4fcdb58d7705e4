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

type customTypeRepository struct {
	mu    sync.RWMutex
	rows  map[types.TypeID]*model.CustomIncidentType
	order []types.TypeID
}

func newCustomTypeRepository() *customTypeRepository {
	return &customTypeRepository{
		rows: make(map[types.TypeID]*model.CustomIncidentType),
	}
}

func (r *customTypeRepository) Insert(ctx context.Context, name string) (*model.CustomIncidentType, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	created := &model.CustomIncidentType{
		ID:        types.NewTypeID(),
		Name:      name,
		CreatedAt: time.Now().UTC(),
	}

	r.rows[created.ID] = created
	r.order = append(r.order, created.ID)

	copied := *created
	return &copied, nil
}

func (r *customTypeRepository) GetByName(ctx context.Context, name string) (*model.CustomIncidentType, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, ct := range r.rows {
		if ct.Name == name {
			copied := *ct
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *customTypeRepository) List(ctx context.Context) ([]*model.CustomIncidentType, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	customTypes := make([]*model.CustomIncidentType, 0, len(r.rows))
	for _, id := range r.order {
		if ct, exists := r.rows[id]; exists {
			copied := *ct
			customTypes = append(customTypes, &copied)
		}
	}

	// Newest first; insertion order breaks ties since CreatedAt has
	// wall-clock resolution.
	sort.SliceStable(customTypes, func(i, j int) bool {
		return customTypes[i].CreatedAt.After(customTypes[j].CreatedAt)
	})

	return customTypes, nil
}

func (r *customTypeRepository) Delete(ctx context.Context, id types.TypeID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.rows[id]; !exists {
		return goerr.Wrap(ErrNotFound, "custom incident type not found", goerr.V("id", id))
	}

	delete(r.rows, id)
	return nil
}
