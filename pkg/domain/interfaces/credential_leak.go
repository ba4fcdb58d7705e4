package interfaces

import (
	"context"

	"github.com/secops-lab/incidentdesk/pkg/domain/model"
	"github.com/secops-lab/incidentdesk/pkg/domain/types"
)

// CredentialLeakRepository provides row access to the credential_leaks table
type CredentialLeakRepository interface {
	// Insert creates a new leak row with generated ID and timestamps
	Insert(ctx context.Context, leak *model.CredentialLeak) (*model.CredentialLeak, error)

	// Get retrieves a leak row by ID. Returns nil, nil when no row matches.
	Get(ctx context.Context, id types.LeakID) (*model.CredentialLeak, error)

	// List retrieves all leak rows ordered by notification date, newest first
	List(ctx context.Context) ([]*model.CredentialLeak, error)

	// Update overwrites an existing leak row by ID and returns the stored row
	Update(ctx context.Context, leak *model.CredentialLeak) (*model.CredentialLeak, error)

	// Delete removes the leak row by ID
	Delete(ctx context.Context, id types.LeakID) error
}

// LeakLogRepository provides access to the append-only credential_leak_logs
// table. Entries are never updated or deleted, and the table enforces no
// reference against credential_leaks: the subject row may already be gone
// when an entry is written or read.
type LeakLogRepository interface {
	// Insert appends an audit entry with generated ID and timestamp
	Insert(ctx context.Context, entry *model.CredentialLeakLog) (*model.CredentialLeakLog, error)

	// ListByLeak retrieves every entry for the subject ID, newest first. It
	// succeeds identically whether or not the subject currently exists.
	ListByLeak(ctx context.Context, leakID types.LeakID) ([]*model.CredentialLeakLog, error)
}
