package firestore

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secops-lab/incidentdesk/pkg/domain/interfaces"
)

// timeFormat is the fixed-width RFC3339 layout used for every timestamp
// column. Fixed width keeps lexicographic order equal to chronological
// order, which OrderBy on string columns relies on.
const timeFormat = "2006-01-02T15:04:05.000000Z07:00"

func formatTime(t time.Time) string {
	return t.UTC().Format(timeFormat)
}

func parseTime(s, column string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, goerr.Wrap(err, "failed to parse timestamp column", goerr.V("column", column), goerr.V("value", s))
	}
	return t, nil
}

type Client struct {
	client         *firestore.Client
	incident       *incidentRepository
	assignedUser   *assignedUserRepository
	affectedSystem *affectedSystemRepository
	timelineEvent  *timelineEventRepository
	credentialLeak *credentialLeakRepository
	leakLog        *leakLogRepository
	customType     *customTypeRepository
}

var _ interfaces.Repository = &Client{}

type Option func(*Client)

// WithCollectionPrefix prefixes every collection name, used to isolate test
// runs sharing one Firestore project.
func WithCollectionPrefix(prefix string) Option {
	return func(c *Client) {
		c.incident.collectionPrefix = prefix
		c.assignedUser.collectionPrefix = prefix
		c.affectedSystem.collectionPrefix = prefix
		c.timelineEvent.collectionPrefix = prefix
		c.credentialLeak.collectionPrefix = prefix
		c.leakLog.collectionPrefix = prefix
		c.customType.collectionPrefix = prefix
	}
}

func New(ctx context.Context, projectID, databaseID string, opts ...Option) (*Client, error) {
	var client *firestore.Client
	var err error
	if databaseID != "" {
		client, err = firestore.NewClientWithDatabase(ctx, projectID, databaseID)
	} else {
		client, err = firestore.NewClient(ctx, projectID)
	}
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create firestore client", goerr.V("projectID", projectID))
	}

	c := &Client{
		client:         client,
		incident:       newIncidentRepository(client),
		assignedUser:   newAssignedUserRepository(client),
		affectedSystem: newAffectedSystemRepository(client),
		timelineEvent:  newTimelineEventRepository(client),
		credentialLeak: newCredentialLeakRepository(client),
		leakLog:        newLeakLogRepository(client),
		customType:     newCustomTypeRepository(client),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c, nil
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
	if c.client != nil {
		return c.client.Close()
	}
	return nil
}
