package model

import (
	"time"

	"github.com/secops-lab/incidentdesk/pkg/domain/types"
)

// CredentialLeak is a notification that credentials for an account were found
// in a leak. It is created, updated and deleted independently of incidents.
type CredentialLeak struct {
	ID                 types.LeakID
	Email              string
	Username           string
	NotificationDate   time.Time
	NotificationSource string
	ActionTaken        string
	PartialPassword    string `masq:"secret"`
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// Clone returns a copy of the leak record
func (x *CredentialLeak) Clone() *CredentialLeak {
	if x == nil {
		return nil
	}
	copied := *x
	return &copied
}
