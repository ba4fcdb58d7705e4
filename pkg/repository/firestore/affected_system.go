package firestore

import (
	"context"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secops-lab/incidentdesk/pkg/domain/types"
	"google.golang.org/api/iterator"
)

type affectedSystemRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newAffectedSystemRepository(client *firestore.Client) *affectedSystemRepository {
	return &affectedSystemRepository{client: client}
}

func (r *affectedSystemRepository) collection() string {
	if r.collectionPrefix != "" {
		return r.collectionPrefix + "_affected_systems"
	}
	return "affected_systems"
}

type affectedSystemRow struct {
	ID         string `firestore:"id"`
	IncidentID string `firestore:"incident_id"`
	SystemName string `firestore:"system_name"`
}

func (r *affectedSystemRepository) Insert(ctx context.Context, incidentID types.IncidentID, systems []string) error {
	for _, system := range systems {
		row := &affectedSystemRow{
			ID:         uuid.NewString(),
			IncidentID: incidentID.String(),
			SystemName: system,
		}
		if _, err := r.client.Collection(r.collection()).Doc(row.ID).Set(ctx, row); err != nil {
			return goerr.Wrap(err, "failed to insert affected system",
				goerr.V("incident_id", incidentID),
				goerr.V("system", system))
		}
	}
	return nil
}

func (r *affectedSystemRepository) ListByIncident(ctx context.Context, incidentID types.IncidentID) ([]string, error) {
	iter := r.client.Collection(r.collection()).
		Where("incident_id", "==", incidentID.String()).
		Documents(ctx)
	defer iter.Stop()

	var systems []string
	for {
		docSnap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate affected systems", goerr.V("incident_id", incidentID))
		}

		var row affectedSystemRow
		if err := docSnap.DataTo(&row); err != nil {
			return nil, goerr.Wrap(err, "failed to decode affected system", goerr.V("doc_id", docSnap.Ref.ID))
		}
		systems = append(systems, row.SystemName)
	}

	return systems, nil
}

func (r *affectedSystemRepository) DeleteByIncident(ctx context.Context, incidentID types.IncidentID) error {
	return deleteByIncidentID(ctx, r.client.Collection(r.collection()), incidentID)
}
