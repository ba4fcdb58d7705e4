package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/secops-lab/incidentdesk/pkg/domain/interfaces"
	"github.com/secops-lab/incidentdesk/pkg/domain/model"
	"github.com/secops-lab/incidentdesk/pkg/domain/types"
	"github.com/secops-lab/incidentdesk/pkg/repository/memory"
)

func runTimelineEventRepositoryTest(t *testing.T, newRepo func(t *testing.T) interfaces.Repository) {
	t.Helper()

	t.Run("ListByIncident orders events by time ascending", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		incidentID := types.NewIncidentID()
		gt.NoError(t, repo.TimelineEvent().Insert(ctx, incidentID, []model.TimelineEvent{
			{Time: time.Date(2025, 5, 1, 10, 0, 0, 0, time.UTC), Event: "mitigation started"},
			{Time: time.Date(2025, 5, 1, 8, 0, 0, 0, time.UTC), Event: "traffic anomaly"},
			{Time: time.Date(2025, 5, 1, 9, 0, 0, 0, time.UTC), Event: "detected"},
		})).Required()

		events, err := repo.TimelineEvent().ListByIncident(ctx, incidentID)
		gt.NoError(t, err).Required()
		gt.Array(t, events).Length(3).Required()
		gt.Value(t, events[0].Event).Equal("traffic anomaly")
		gt.Value(t, events[1].Event).Equal("detected")
		gt.Value(t, events[2].Event).Equal("mitigation started")
	})

	t.Run("Insert appends to existing events", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		incidentID := types.NewIncidentID()
		gt.NoError(t, repo.TimelineEvent().Insert(ctx, incidentID, []model.TimelineEvent{
			{Time: time.Date(2025, 5, 1, 9, 0, 0, 0, time.UTC), Event: "detected"},
		})).Required()
		gt.NoError(t, repo.TimelineEvent().Insert(ctx, incidentID, []model.TimelineEvent{
			{Time: time.Date(2025, 5, 1, 8, 0, 0, 0, time.UTC), Event: "traffic anomaly"},
		})).Required()

		events, err := repo.TimelineEvent().ListByIncident(ctx, incidentID)
		gt.NoError(t, err).Required()
		gt.Array(t, events).Length(2).Required()
		gt.Value(t, events[0].Event).Equal("traffic anomaly")
	})

	t.Run("ListByIncident returns empty for unknown incident", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		events, err := repo.TimelineEvent().ListByIncident(ctx, types.NewIncidentID())
		gt.NoError(t, err).Required()
		gt.Array(t, events).Length(0)
	})

	t.Run("DeleteByIncident removes only the incident's events", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		first := types.NewIncidentID()
		second := types.NewIncidentID()
		gt.NoError(t, repo.TimelineEvent().Insert(ctx, first, []model.TimelineEvent{
			{Time: time.Date(2025, 5, 1, 9, 0, 0, 0, time.UTC), Event: "detected"},
		})).Required()
		gt.NoError(t, repo.TimelineEvent().Insert(ctx, second, []model.TimelineEvent{
			{Time: time.Date(2025, 5, 2, 9, 0, 0, 0, time.UTC), Event: "other incident"},
		})).Required()

		gt.NoError(t, repo.TimelineEvent().DeleteByIncident(ctx, first)).Required()

		events, err := repo.TimelineEvent().ListByIncident(ctx, first)
		gt.NoError(t, err).Required()
		gt.Array(t, events).Length(0)

		remaining, err := repo.TimelineEvent().ListByIncident(ctx, second)
		gt.NoError(t, err).Required()
		gt.Array(t, remaining).Length(1)
	})
}

func TestTimelineEventRepository_Memory(t *testing.T) {
	runTimelineEventRepositoryTest(t, func(t *testing.T) interfaces.Repository {
		return memory.New()
	})
}

func TestTimelineEventRepository_Firestore(t *testing.T) {
	runTimelineEventRepositoryTest(t, func(t *testing.T) interfaces.Repository {
		return newFirestoreRepo(t)
	})
}
