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

type customTypeRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newCustomTypeRepository(client *firestore.Client) *customTypeRepository {
	return &customTypeRepository{client: client}
}

func (r *customTypeRepository) collection() string {
	if r.collectionPrefix != "" {
		return r.collectionPrefix + "_custom_incident_types"
	}
	return "custom_incident_types"
}

type customTypeRow struct {
	ID        string `firestore:"id"`
	Name      string `firestore:"name"`
	CreatedAt string `firestore:"created_at"`
}

func customTypeFromRow(row *customTypeRow) (*model.CustomIncidentType, error) {
	createdAt, err := parseTime(row.CreatedAt, "created_at")
	if err != nil {
		return nil, err
	}
	return &model.CustomIncidentType{
		ID:        types.TypeID(row.ID),
		Name:      row.Name,
		CreatedAt: createdAt,
	}, nil
}

func (r *customTypeRepository) Insert(ctx context.Context, name string) (*model.CustomIncidentType, error) {
	created := &model.CustomIncidentType{
		ID:        types.NewTypeID(),
		Name:      name,
		CreatedAt: time.Now().UTC(),
	}

	row := &customTypeRow{
		ID:        created.ID.String(),
		Name:      created.Name,
		CreatedAt: formatTime(created.CreatedAt),
	}
	if _, err := r.client.Collection(r.collection()).Doc(row.ID).Set(ctx, row); err != nil {
		return nil, goerr.Wrap(err, "failed to insert custom incident type", goerr.V("name", name))
	}

	return created, nil
}

func (r *customTypeRepository) GetByName(ctx context.Context, name string) (*model.CustomIncidentType, error) {
	iter := r.client.Collection(r.collection()).
		Where("name", "==", name).
		Limit(1).
		Documents(ctx)
	defer iter.Stop()

	docSnap, err := iter.Next()
	if err == iterator.Done {
		return nil, nil
	}
	if err != nil {
		return nil, goerr.Wrap(err, "failed to query custom incident type", goerr.V("name", name))
	}

	var row customTypeRow
	if err := docSnap.DataTo(&row); err != nil {
		return nil, goerr.Wrap(err, "failed to decode custom incident type", goerr.V("name", name))
	}

	return customTypeFromRow(&row)
}

func (r *customTypeRepository) List(ctx context.Context) ([]*model.CustomIncidentType, error) {
	iter := r.client.Collection(r.collection()).
		OrderBy("created_at", firestore.Desc).
		Documents(ctx)
	defer iter.Stop()

	var customTypes []*model.CustomIncidentType
	for {
		docSnap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate custom incident types")
		}

		var row customTypeRow
		if err := docSnap.DataTo(&row); err != nil {
			return nil, goerr.Wrap(err, "failed to decode custom incident type", goerr.V("doc_id", docSnap.Ref.ID))
		}

		ct, err := customTypeFromRow(&row)
		if err != nil {
			return nil, err
		}
		customTypes = append(customTypes, ct)
	}

	return customTypes, nil
}

func (r *customTypeRepository) Delete(ctx context.Context, id types.TypeID) error {
	docRef := r.client.Collection(r.collection()).Doc(id.String())

	if _, err := docRef.Get(ctx); err != nil {
		if status.Code(err) == codes.NotFound {
			return goerr.Wrap(ErrNotFound, "custom incident type not found", goerr.V("id", id))
		}
		return goerr.Wrap(err, "failed to check custom incident type existence", goerr.V("id", id))
	}

	if _, err := docRef.Delete(ctx); err != nil {
		return goerr.Wrap(err, "failed to delete custom incident type", goerr.V("id", id))
	}

	return nil
}
