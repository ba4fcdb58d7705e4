package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/secops-lab/incidentdesk/pkg/domain/model"
	"github.com/secops-lab/incidentdesk/pkg/domain/types"
)

type timelineEventRepository struct {
	mu   sync.RWMutex
	rows map[types.IncidentID][]model.TimelineEvent
}

func newTimelineEventRepository() *timelineEventRepository {
	return &timelineEventRepository{
		rows: make(map[types.IncidentID][]model.TimelineEvent),
	}
}

func (r *timelineEventRepository) Insert(ctx context.Context, incidentID types.IncidentID, events []model.TimelineEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.rows[incidentID] = append(r.rows[incidentID], events...)
	return nil
}

func (r *timelineEventRepository) ListByIncident(ctx context.Context, incidentID types.IncidentID) ([]model.TimelineEvent, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rows := r.rows[incidentID]
	events := make([]model.TimelineEvent, len(rows))
	copy(events, rows)

	sort.Slice(events, func(i, j int) bool {
		return events[i].Time.Before(events[j].Time)
	})

	return events, nil
}

func (r *timelineEventRepository) DeleteByIncident(ctx context.Context, incidentID types.IncidentID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.rows, incidentID)
	return nil
}
