package memory

import (
	"context"
	"sync"

	"github.com/secops-lab/incidentdesk/pkg/domain/model"
	"github.com/secops-lab/incidentdesk/pkg/domain/types"
)

type assignedUserRepository struct {
	mu sync.RWMutex
	// storage allows multiple rows per incident, like the remote table
	rows map[types.IncidentID][]*model.Assignee
}

func newAssignedUserRepository() *assignedUserRepository {
	return &assignedUserRepository{
		rows: make(map[types.IncidentID][]*model.Assignee),
	}
}

func (r *assignedUserRepository) Insert(ctx context.Context, incidentID types.IncidentID, assignee *model.Assignee) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	copied := *assignee
	r.rows[incidentID] = append(r.rows[incidentID], &copied)
	return nil
}

func (r *assignedUserRepository) GetByIncident(ctx context.Context, incidentID types.IncidentID) (*model.Assignee, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rows := r.rows[incidentID]
	if len(rows) == 0 {
		return nil, nil
	}

	copied := *rows[0]
	return &copied, nil
}

func (r *assignedUserRepository) DeleteByIncident(ctx context.Context, incidentID types.IncidentID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.rows, incidentID)
	return nil
}
