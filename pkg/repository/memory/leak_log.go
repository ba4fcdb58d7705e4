package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/secops-lab/incidentdesk/pkg/domain/model"
	"github.com/secops-lab/incidentdesk/pkg/domain/types"
)

// leakLogRepository is append-only. Entries are keyed by the subject leak ID
// but nothing checks that the subject exists: the audit trail must outlive
// the rows it describes.
type leakLogRepository struct {
	mu      sync.RWMutex
	entries map[types.LeakID][]*model.CredentialLeakLog
}

func newLeakLogRepository() *leakLogRepository {
	return &leakLogRepository{
		entries: make(map[types.LeakID][]*model.CredentialLeakLog),
	}
}

func copyLogEntry(entry *model.CredentialLeakLog) *model.CredentialLeakLog {
	copied := *entry
	copied.Details = model.AuditDetails{
		Old: entry.Details.Old.Clone(),
		New: entry.Details.New.Clone(),
	}
	if entry.Details.ChangedFields != nil {
		copied.Details.ChangedFields = make(map[string]string, len(entry.Details.ChangedFields))
		for k, v := range entry.Details.ChangedFields {
			copied.Details.ChangedFields[k] = v
		}
	}
	return &copied
}

func (r *leakLogRepository) Insert(ctx context.Context, entry *model.CredentialLeakLog) (*model.CredentialLeakLog, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	created := copyLogEntry(entry)
	created.ID = types.NewAuditID()
	created.CreatedAt = time.Now().UTC()

	r.entries[created.LeakID] = append(r.entries[created.LeakID], created)
	return copyLogEntry(created), nil
}

func (r *leakLogRepository) ListByLeak(ctx context.Context, leakID types.LeakID) ([]*model.CredentialLeakLog, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rows := r.entries[leakID]
	entries := make([]*model.CredentialLeakLog, 0, len(rows))
	// Reverse insertion order so that timestamp ties still come out newest
	// first after the stable sort.
	for i := len(rows) - 1; i >= 0; i-- {
		entries = append(entries, copyLogEntry(rows[i]))
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].CreatedAt.After(entries[j].CreatedAt)
	})

	return entries, nil
}
