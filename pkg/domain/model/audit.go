package model

import (
	"time"

	"github.com/secops-lab/incidentdesk/pkg/domain/types"
)

// CredentialLeakLog is one append-only audit entry for a credential leak.
// LeakID is a lookup key only, never an enforced reference: the subject row
// is expected to sometimes be gone (a DELETE entry always outlives it).
type CredentialLeakLog struct {
	ID        types.AuditID
	LeakID    types.LeakID
	Action    types.AuditAction
	Details   AuditDetails
	CreatedAt time.Time
	UserID    string
}

// AuditDetails is the snapshot payload of an audit entry. Which parts are set
// depends on the action: CREATE carries New, DELETE carries Old, UPDATE
// carries both plus the per-field diff.
type AuditDetails struct {
	Old           *CredentialLeak
	New           *CredentialLeak
	ChangedFields map[string]string
}

// ChangedLeakFields returns a map of column name to new value for every field
// of the leak record that differs between old and new. Timestamps managed by
// the store (created_at, updated_at) are not part of the diff.
func ChangedLeakFields(old, new *CredentialLeak) map[string]string {
	changed := map[string]string{}
	if old == nil || new == nil {
		return changed
	}

	if old.Email != new.Email {
		changed["email"] = new.Email
	}
	if old.Username != new.Username {
		changed["username"] = new.Username
	}
	if !old.NotificationDate.Equal(new.NotificationDate) {
		changed["notification_date"] = new.NotificationDate.UTC().Format(time.RFC3339Nano)
	}
	if old.NotificationSource != new.NotificationSource {
		changed["notification_source"] = new.NotificationSource
	}
	if old.ActionTaken != new.ActionTaken {
		changed["action_taken"] = new.ActionTaken
	}
	if old.PartialPassword != new.PartialPassword {
		changed["partial_password"] = new.PartialPassword
	}

	return changed
}
