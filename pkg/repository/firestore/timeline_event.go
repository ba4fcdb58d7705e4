package firestore

import (
	"context"
	"sort"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secops-lab/incidentdesk/pkg/domain/model"
	"github.com/secops-lab/incidentdesk/pkg/domain/types"
	"google.golang.org/api/iterator"
)

type timelineEventRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newTimelineEventRepository(client *firestore.Client) *timelineEventRepository {
	return &timelineEventRepository{client: client}
}

func (r *timelineEventRepository) collection() string {
	if r.collectionPrefix != "" {
		return r.collectionPrefix + "_timeline_events"
	}
	return "timeline_events"
}

type timelineEventRow struct {
	ID         string `firestore:"id"`
	IncidentID string `firestore:"incident_id"`
	Event      string `firestore:"event"`
	Time       string `firestore:"time"`
}

func (r *timelineEventRepository) Insert(ctx context.Context, incidentID types.IncidentID, events []model.TimelineEvent) error {
	for _, event := range events {
		row := &timelineEventRow{
			ID:         uuid.NewString(),
			IncidentID: incidentID.String(),
			Event:      event.Event,
			Time:       formatTime(event.Time),
		}
		if _, err := r.client.Collection(r.collection()).Doc(row.ID).Set(ctx, row); err != nil {
			return goerr.Wrap(err, "failed to insert timeline event", goerr.V("incident_id", incidentID))
		}
	}
	return nil
}

func (r *timelineEventRepository) ListByIncident(ctx context.Context, incidentID types.IncidentID) ([]model.TimelineEvent, error) {
	iter := r.client.Collection(r.collection()).
		Where("incident_id", "==", incidentID.String()).
		Documents(ctx)
	defer iter.Stop()

	var events []model.TimelineEvent
	for {
		docSnap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate timeline events", goerr.V("incident_id", incidentID))
		}

		var row timelineEventRow
		if err := docSnap.DataTo(&row); err != nil {
			return nil, goerr.Wrap(err, "failed to decode timeline event", goerr.V("doc_id", docSnap.Ref.ID))
		}

		eventTime, err := parseTime(row.Time, "time")
		if err != nil {
			return nil, err
		}
		events = append(events, model.TimelineEvent{Time: eventTime, Event: row.Event})
	}

	// Sorted here instead of OrderBy to keep the equality query on a single
	// automatic index.
	sort.Slice(events, func(i, j int) bool {
		return events[i].Time.Before(events[j].Time)
	})

	return events, nil
}

func (r *timelineEventRepository) DeleteByIncident(ctx context.Context, incidentID types.IncidentID) error {
	return deleteByIncidentID(ctx, r.client.Collection(r.collection()), incidentID)
}
