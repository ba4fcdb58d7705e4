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

type credentialLeakRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newCredentialLeakRepository(client *firestore.Client) *credentialLeakRepository {
	return &credentialLeakRepository{client: client}
}

func (r *credentialLeakRepository) collection() string {
	if r.collectionPrefix != "" {
		return r.collectionPrefix + "_credential_leaks"
	}
	return "credential_leaks"
}

type credentialLeakRow struct {
	ID                 string `firestore:"id"`
	Email              string `firestore:"email"`
	Username           string `firestore:"username"`
	NotificationDate   string `firestore:"notification_date"`
	NotificationSource string `firestore:"notification_source"`
	ActionTaken        string `firestore:"action_taken"`
	PartialPassword    string `firestore:"partial_password"`
	CreatedAt          string `firestore:"created_at"`
	UpdatedAt          string `firestore:"updated_at"`
}

func leakToRow(leak *model.CredentialLeak) *credentialLeakRow {
	return &credentialLeakRow{
		ID:                 leak.ID.String(),
		Email:              leak.Email,
		Username:           leak.Username,
		NotificationDate:   formatTime(leak.NotificationDate),
		NotificationSource: leak.NotificationSource,
		ActionTaken:        leak.ActionTaken,
		PartialPassword:    leak.PartialPassword,
		CreatedAt:          formatTime(leak.CreatedAt),
		UpdatedAt:          formatTime(leak.UpdatedAt),
	}
}

func leakFromRow(row *credentialLeakRow) (*model.CredentialLeak, error) {
	notificationDate, err := parseTime(row.NotificationDate, "notification_date")
	if err != nil {
		return nil, err
	}
	createdAt, err := parseTime(row.CreatedAt, "created_at")
	if err != nil {
		return nil, err
	}
	updatedAt, err := parseTime(row.UpdatedAt, "updated_at")
	if err != nil {
		return nil, err
	}

	return &model.CredentialLeak{
		ID:                 types.LeakID(row.ID),
		Email:              row.Email,
		Username:           row.Username,
		NotificationDate:   notificationDate,
		NotificationSource: row.NotificationSource,
		ActionTaken:        row.ActionTaken,
		PartialPassword:    row.PartialPassword,
		CreatedAt:          createdAt,
		UpdatedAt:          updatedAt,
	}, nil
}

func (r *credentialLeakRepository) Insert(ctx context.Context, leak *model.CredentialLeak) (*model.CredentialLeak, error) {
	now := time.Now().UTC()
	created := leak.Clone()
	created.ID = types.NewLeakID()
	created.CreatedAt = now
	created.UpdatedAt = now

	row := leakToRow(created)
	if _, err := r.client.Collection(r.collection()).Doc(row.ID).Set(ctx, row); err != nil {
		return nil, goerr.Wrap(err, "failed to insert credential leak", goerr.V("id", row.ID))
	}

	return created, nil
}

func (r *credentialLeakRepository) Get(ctx context.Context, id types.LeakID) (*model.CredentialLeak, error) {
	docSnap, err := r.client.Collection(r.collection()).Doc(id.String()).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, nil
		}
		return nil, goerr.Wrap(err, "failed to get credential leak", goerr.V("id", id))
	}

	var row credentialLeakRow
	if err := docSnap.DataTo(&row); err != nil {
		return nil, goerr.Wrap(err, "failed to decode credential leak", goerr.V("id", id))
	}

	return leakFromRow(&row)
}

func (r *credentialLeakRepository) List(ctx context.Context) ([]*model.CredentialLeak, error) {
	iter := r.client.Collection(r.collection()).
		OrderBy("notification_date", firestore.Desc).
		Documents(ctx)
	defer iter.Stop()

	var leaks []*model.CredentialLeak
	for {
		docSnap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate credential leaks")
		}

		var row credentialLeakRow
		if err := docSnap.DataTo(&row); err != nil {
			return nil, goerr.Wrap(err, "failed to decode credential leak", goerr.V("doc_id", docSnap.Ref.ID))
		}

		leak, err := leakFromRow(&row)
		if err != nil {
			return nil, err
		}
		leaks = append(leaks, leak)
	}

	return leaks, nil
}

func (r *credentialLeakRepository) Update(ctx context.Context, leak *model.CredentialLeak) (*model.CredentialLeak, error) {
	docRef := r.client.Collection(r.collection()).Doc(leak.ID.String())

	docSnap, err := docRef.Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "credential leak not found", goerr.V("id", leak.ID))
		}
		return nil, goerr.Wrap(err, "failed to check credential leak existence", goerr.V("id", leak.ID))
	}

	var existing credentialLeakRow
	if err := docSnap.DataTo(&existing); err != nil {
		return nil, goerr.Wrap(err, "failed to decode credential leak", goerr.V("id", leak.ID))
	}

	updated := leak.Clone()
	updated.UpdatedAt = time.Now().UTC()
	row := leakToRow(updated)
	row.CreatedAt = existing.CreatedAt

	if _, err := docRef.Set(ctx, row); err != nil {
		return nil, goerr.Wrap(err, "failed to update credential leak", goerr.V("id", leak.ID))
	}

	return leakFromRow(row)
}

func (r *credentialLeakRepository) Delete(ctx context.Context, id types.LeakID) error {
	docRef := r.client.Collection(r.collection()).Doc(id.String())

	if _, err := docRef.Get(ctx); err != nil {
		if status.Code(err) == codes.NotFound {
			return goerr.Wrap(ErrNotFound, "credential leak not found", goerr.V("id", id))
		}
		return goerr.Wrap(err, "failed to check credential leak existence", goerr.V("id", id))
	}

	if _, err := docRef.Delete(ctx); err != nil {
		return goerr.Wrap(err, "failed to delete credential leak", goerr.V("id", id))
	}

	return nil
}
