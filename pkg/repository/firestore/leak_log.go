package firestore

import (
	"context"
	"sort"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secops-lab/incidentdesk/pkg/domain/model"
	"github.com/secops-lab/incidentdesk/pkg/domain/types"
	"google.golang.org/api/iterator"
)

type leakLogRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newLeakLogRepository(client *firestore.Client) *leakLogRepository {
	return &leakLogRepository{client: client}
}

func (r *leakLogRepository) collection() string {
	if r.collectionPrefix != "" {
		return r.collectionPrefix + "_credential_leak_logs"
	}
	return "credential_leak_logs"
}

// leakLogRow mirrors the credential_leak_logs table. credential_leak_id is a
// plain lookup column: the collection enforces nothing against
// credential_leaks, so a DELETE entry can point at a row that no longer
// exists.
type leakLogRow struct {
	ID        string          `firestore:"id"`
	LeakID    string          `firestore:"credential_leak_id"`
	Action    string          `firestore:"action"`
	Details   auditDetailsRow `firestore:"details"`
	CreatedAt string          `firestore:"created_at"`
	UserID    string          `firestore:"user_id"`
}

type auditDetailsRow struct {
	Old           *credentialLeakRow `firestore:"old,omitempty"`
	New           *credentialLeakRow `firestore:"new,omitempty"`
	ChangedFields map[string]string  `firestore:"changed_fields,omitempty"`
}

func detailsToRow(details model.AuditDetails) auditDetailsRow {
	row := auditDetailsRow{ChangedFields: details.ChangedFields}
	if details.Old != nil {
		row.Old = leakToRow(details.Old)
	}
	if details.New != nil {
		row.New = leakToRow(details.New)
	}
	return row
}

func detailsFromRow(row auditDetailsRow) (model.AuditDetails, error) {
	details := model.AuditDetails{ChangedFields: row.ChangedFields}
	if row.Old != nil {
		old, err := leakFromRow(row.Old)
		if err != nil {
			return details, err
		}
		details.Old = old
	}
	if row.New != nil {
		newLeak, err := leakFromRow(row.New)
		if err != nil {
			return details, err
		}
		details.New = newLeak
	}
	return details, nil
}

func (r *leakLogRepository) Insert(ctx context.Context, entry *model.CredentialLeakLog) (*model.CredentialLeakLog, error) {
	created := *entry
	created.ID = types.NewAuditID()
	created.CreatedAt = time.Now().UTC()

	row := &leakLogRow{
		ID:        created.ID.String(),
		LeakID:    created.LeakID.String(),
		Action:    created.Action.String(),
		Details:   detailsToRow(created.Details),
		CreatedAt: formatTime(created.CreatedAt),
		UserID:    created.UserID,
	}

	if _, err := r.client.Collection(r.collection()).Doc(row.ID).Set(ctx, row); err != nil {
		return nil, goerr.Wrap(err, "failed to append leak log",
			goerr.V("leak_id", created.LeakID),
			goerr.V("action", created.Action))
	}

	return &created, nil
}

func (r *leakLogRepository) ListByLeak(ctx context.Context, leakID types.LeakID) ([]*model.CredentialLeakLog, error) {
	iter := r.client.Collection(r.collection()).
		Where("credential_leak_id", "==", leakID.String()).
		Documents(ctx)
	defer iter.Stop()

	var entries []*model.CredentialLeakLog
	for {
		docSnap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate leak logs", goerr.V("leak_id", leakID))
		}

		var row leakLogRow
		if err := docSnap.DataTo(&row); err != nil {
			return nil, goerr.Wrap(err, "failed to decode leak log", goerr.V("doc_id", docSnap.Ref.ID))
		}

		createdAt, err := parseTime(row.CreatedAt, "created_at")
		if err != nil {
			return nil, err
		}
		details, err := detailsFromRow(row.Details)
		if err != nil {
			return nil, err
		}

		entries = append(entries, &model.CredentialLeakLog{
			ID:        types.AuditID(row.ID),
			LeakID:    types.LeakID(row.LeakID),
			Action:    types.AuditAction(row.Action),
			Details:   details,
			CreatedAt: createdAt,
			UserID:    row.UserID,
		})
	}

	// Newest first. Sorted here instead of OrderBy to keep the equality
	// query on a single automatic index.
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].CreatedAt.After(entries[j].CreatedAt)
	})

	return entries, nil
}
