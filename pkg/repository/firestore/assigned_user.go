package firestore

import (
	"context"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secops-lab/incidentdesk/pkg/domain/model"
	"github.com/secops-lab/incidentdesk/pkg/domain/types"
	"google.golang.org/api/iterator"
)

type assignedUserRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newAssignedUserRepository(client *firestore.Client) *assignedUserRepository {
	return &assignedUserRepository{client: client}
}

func (r *assignedUserRepository) collection() string {
	if r.collectionPrefix != "" {
		return r.collectionPrefix + "_assigned_users"
	}
	return "assigned_users"
}

type assignedUserRow struct {
	ID         string `firestore:"id"`
	IncidentID string `firestore:"incident_id"`
	Name       string `firestore:"name"`
	Initials   string `firestore:"initials"`
}

func (r *assignedUserRepository) Insert(ctx context.Context, incidentID types.IncidentID, assignee *model.Assignee) error {
	row := &assignedUserRow{
		ID:         uuid.NewString(),
		IncidentID: incidentID.String(),
		Name:       assignee.Name,
		Initials:   assignee.Initials,
	}

	if _, err := r.client.Collection(r.collection()).Doc(row.ID).Set(ctx, row); err != nil {
		return goerr.Wrap(err, "failed to insert assigned user", goerr.V("incident_id", incidentID))
	}
	return nil
}

func (r *assignedUserRepository) GetByIncident(ctx context.Context, incidentID types.IncidentID) (*model.Assignee, error) {
	iter := r.client.Collection(r.collection()).
		Where("incident_id", "==", incidentID.String()).
		Limit(1).
		Documents(ctx)
	defer iter.Stop()

	docSnap, err := iter.Next()
	if err == iterator.Done {
		return nil, nil
	}
	if err != nil {
		return nil, goerr.Wrap(err, "failed to query assigned user", goerr.V("incident_id", incidentID))
	}

	var row assignedUserRow
	if err := docSnap.DataTo(&row); err != nil {
		return nil, goerr.Wrap(err, "failed to decode assigned user", goerr.V("incident_id", incidentID))
	}

	return &model.Assignee{Name: row.Name, Initials: row.Initials}, nil
}

func (r *assignedUserRepository) DeleteByIncident(ctx context.Context, incidentID types.IncidentID) error {
	return deleteByIncidentID(ctx, r.client.Collection(r.collection()), incidentID)
}

// deleteByIncidentID removes every row of a child collection scoped to the
// incident. The store has no multi-row delete, so rows are removed one by
// one; the first failure aborts.
func deleteByIncidentID(ctx context.Context, coll *firestore.CollectionRef, incidentID types.IncidentID) error {
	iter := coll.Where("incident_id", "==", incidentID.String()).Documents(ctx)
	defer iter.Stop()

	for {
		docSnap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return goerr.Wrap(err, "failed to iterate child rows", goerr.V("incident_id", incidentID))
		}

		if _, err := docSnap.Ref.Delete(ctx); err != nil {
			return goerr.Wrap(err, "failed to delete child row",
				goerr.V("incident_id", incidentID),
				goerr.V("doc_id", docSnap.Ref.ID))
		}
	}

	return nil
}
