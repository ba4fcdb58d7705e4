package memory

import (
	"github.com/secops-lab/incidentdesk/pkg/domain/interfaces"
)

// Client is an in-memory implementation of the repository, used for tests
// and local development. It mimics the remote store's behavior: plain keyed
// rows, no joins, no transactions.
type Client struct {
	incident       *incidentRepository
	assignedUser   *assignedUserRepository
	affectedSystem *affectedSystemRepository
	timelineEvent  *timelineEventRepository
	credentialLeak *credentialLeakRepository
	leakLog        *leakLogRepository
	customType     *customTypeRepository
}

var _ interfaces.Repository = &Client{}

func New() *Client {
	return &Client{
		incident:       newIncidentRepository(),
		assignedUser:   newAssignedUserRepository(),
		affectedSystem: newAffectedSystemRepository(),
		timelineEvent:  newTimelineEventRepository(),
		credentialLeak: newCredentialLeakRepository(),
		leakLog:        newLeakLogRepository(),
		customType:     newCustomTypeRepository(),
	}
}

func (c *Client) Incident() interfaces.IncidentRepository {
	return c.incident
}

func (c *Client) AssignedUser() interfaces.AssignedUserRepository {
	return c.assignedUser
}

func (c *Client) AffectedSystem() interfaces.AffectedSystemRepository {
	return c.affectedSystem
}

func (c *Client) TimelineEvent() interfaces.TimelineEventRepository {
	return c.timelineEvent
}

func (c *Client) CredentialLeak() interfaces.CredentialLeakRepository {
	return c.credentialLeak
}

func (c *Client) LeakLog() interfaces.LeakLogRepository {
	return c.leakLog
}

func (c *Client) CustomType() interfaces.CustomTypeRepository {
	return c.customType
}

func (c *Client) Close() error {
	return nil
}
