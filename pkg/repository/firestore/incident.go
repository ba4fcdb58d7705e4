package firestore

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secops-lab/incidentdesk/pkg/domain/model"
	"github.com/secops-lab/incidentdesk/pkg/domain/types"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type incidentRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newIncidentRepository(client *firestore.Client) *incidentRepository {
	return &incidentRepository{client: client}
}

func (r *incidentRepository) collection() string {
	if r.collectionPrefix != "" {
		return r.collectionPrefix + "_incidents"
	}
	return "incidents"
}

// incidentRow mirrors the incidents table schema. Timestamps are stored as
// strings and parsed into time.Time on every read.
type incidentRow struct {
	ID                string `firestore:"id"`
	Title             string `firestore:"title"`
	Description       string `firestore:"description"`
	Severity          string `firestore:"severity"`
	Status            string `firestore:"status"`
	Type              string `firestore:"type"`
	AdditionalDetails string `firestore:"additional_details"`
	CreatedAt         string `firestore:"created_at"`
	UpdatedAt         string `firestore:"updated_at"`
}

func incidentToRow(inc *model.Incident) *incidentRow {
	return &incidentRow{
		ID:                inc.ID.String(),
		Title:             inc.Title,
		Description:       inc.Description,
		Severity:          inc.Severity.String(),
		Status:            inc.Status.String(),
		Type:              inc.Type.String(),
		AdditionalDetails: inc.AdditionalDetails,
		CreatedAt:         formatTime(inc.CreatedAt),
		UpdatedAt:         formatTime(inc.UpdatedAt),
	}
}

func incidentFromRow(row *incidentRow) (*model.Incident, error) {
	createdAt, err := parseTime(row.CreatedAt, "created_at")
	if err != nil {
		return nil, err
	}
	updatedAt, err := parseTime(row.UpdatedAt, "updated_at")
	if err != nil {
		return nil, err
	}

	return &model.Incident{
		ID:                types.IncidentID(row.ID),
		Title:             row.Title,
		Description:       row.Description,
		Severity:          types.Severity(row.Severity),
		Status:            types.Status(row.Status),
		Type:              types.IncidentType(row.Type),
		AdditionalDetails: row.AdditionalDetails,
		CreatedAt:         createdAt,
		UpdatedAt:         updatedAt,
	}, nil
}

func (r *incidentRepository) Insert(ctx context.Context, inc *model.Incident) (*model.Incident, error) {
	now := time.Now().UTC()
	created := inc.Clone()
	created.ID = types.NewIncidentID()
	created.CreatedAt = now
	created.UpdatedAt = now

	row := incidentToRow(created)
	if _, err := r.client.Collection(r.collection()).Doc(row.ID).Set(ctx, row); err != nil {
		return nil, goerr.Wrap(err, "failed to insert incident", goerr.V("id", row.ID))
	}

	return created, nil
}

func (r *incidentRepository) Get(ctx context.Context, id types.IncidentID) (*model.Incident, error) {
	docSnap, err := r.client.Collection(r.collection()).Doc(id.String()).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, nil
		}
		return nil, goerr.Wrap(err, "failed to get incident", goerr.V("id", id))
	}

	var row incidentRow
	if err := docSnap.DataTo(&row); err != nil {
		return nil, goerr.Wrap(err, "failed to decode incident", goerr.V("id", id))
	}

	return incidentFromRow(&row)
}

func (r *incidentRepository) List(ctx context.Context) ([]*model.Incident, error) {
	iter := r.client.Collection(r.collection()).
		OrderBy("created_at", firestore.Desc).
		Documents(ctx)
	defer iter.Stop()

	var incidents []*model.Incident
	for {
		docSnap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate incidents")
		}

		var row incidentRow
		if err := docSnap.DataTo(&row); err != nil {
			return nil, goerr.Wrap(err, "failed to decode incident", goerr.V("doc_id", docSnap.Ref.ID))
		}

		inc, err := incidentFromRow(&row)
		if err != nil {
			return nil, err
		}
		incidents = append(incidents, inc)
	}

	return incidents, nil
}

func (r *incidentRepository) Update(ctx context.Context, inc *model.Incident) error {
	docRef := r.client.Collection(r.collection()).Doc(inc.ID.String())

	docSnap, err := docRef.Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return goerr.Wrap(ErrNotFound, "incident not found", goerr.V("id", inc.ID))
		}
		return goerr.Wrap(err, "failed to check incident existence", goerr.V("id", inc.ID))
	}

	var existing incidentRow
	if err := docSnap.DataTo(&existing); err != nil {
		return goerr.Wrap(err, "failed to decode incident", goerr.V("id", inc.ID))
	}

	updated := inc.Clone()
	updated.UpdatedAt = time.Now().UTC()
	row := incidentToRow(updated)
	row.CreatedAt = existing.CreatedAt

	if _, err := docRef.Set(ctx, row); err != nil {
		return goerr.Wrap(err, "failed to update incident", goerr.V("id", inc.ID))
	}

	return nil
}

func (r *incidentRepository) Delete(ctx context.Context, id types.IncidentID) error {
	docRef := r.client.Collection(r.collection()).Doc(id.String())

	if _, err := docRef.Get(ctx); err != nil {
		if status.Code(err) == codes.NotFound {
			return goerr.Wrap(ErrNotFound, "incident not found", goerr.V("id", id))
		}
		return goerr.Wrap(err, "failed to check incident existence", goerr.V("id", id))
	}

	if _, err := docRef.Delete(ctx); err != nil {
		return goerr.Wrap(err, "failed to delete incident", goerr.V("id", id))
	}

	return nil
}
