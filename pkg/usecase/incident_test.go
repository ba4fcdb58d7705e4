package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"
	"github.com/secops-lab/incidentdesk/pkg/domain/interfaces"
	"github.com/secops-lab/incidentdesk/pkg/domain/model"
	"github.com/secops-lab/incidentdesk/pkg/domain/types"
	"github.com/secops-lab/incidentdesk/pkg/repository/memory"
	"github.com/secops-lab/incidentdesk/pkg/usecase"
)

// faultRepo lets a test swap out individual table repositories to inject
// failures while the rest of the store keeps working.
type faultRepo struct {
	interfaces.Repository
	assignedUser  interfaces.AssignedUserRepository
	timelineEvent interfaces.TimelineEventRepository
}

func (r *faultRepo) AssignedUser() interfaces.AssignedUserRepository {
	if r.assignedUser != nil {
		return r.assignedUser
	}
	return r.Repository.AssignedUser()
}

func (r *faultRepo) TimelineEvent() interfaces.TimelineEventRepository {
	if r.timelineEvent != nil {
		return r.timelineEvent
	}
	return r.Repository.TimelineEvent()
}

type failingAssignedUsers struct {
	interfaces.AssignedUserRepository
}

func (r *failingAssignedUsers) Insert(ctx context.Context, incidentID types.IncidentID, assignee *model.Assignee) error {
	return goerr.New("store rejected write")
}

type failingTimelineDelete struct {
	interfaces.TimelineEventRepository
}

func (r *failingTimelineDelete) DeleteByIncident(ctx context.Context, incidentID types.IncidentID) error {
	return goerr.New("store rejected delete")
}

func newIncident() *model.Incident {
	return &model.Incident{
		Title:       "DDoS on public API",
		Description: "Traffic spike from botnet",
		Severity:    types.SeverityCritical,
		Status:      types.StatusOpen,
		Type:        types.TypeDDoS,
	}
}

func TestIncidentCreate(t *testing.T) {
	t.Run("create without children yields empty collections", func(t *testing.T) {
		uc := usecase.NewIncidentUseCase(memory.New())
		ctx := context.Background()

		created, err := uc.Create(ctx, newIncident())
		gt.NoError(t, err).Required()

		gt.Value(t, created.Title).Equal("DDoS on public API")
		gt.Value(t, created.Severity).Equal(types.SeverityCritical)
		gt.Value(t, created.Status).Equal(types.StatusOpen)
		gt.Value(t, created.Type).Equal(types.TypeDDoS)
		gt.Value(t, created.Assignee).Nil()
		gt.Array(t, created.AffectedSystems).Length(0)
		gt.Array(t, created.Timeline).Length(0)
		gt.Bool(t, created.CreatedAt.IsZero()).False()
	})

	t.Run("round-trip: fetch returns the created scalars", func(t *testing.T) {
		uc := usecase.NewIncidentUseCase(memory.New())
		ctx := context.Background()

		input := newIncident()
		input.AdditionalDetails = "mitigation via rate limiting"
		created, err := uc.Create(ctx, input)
		gt.NoError(t, err).Required()

		fetched, err := uc.Get(ctx, created.ID)
		gt.NoError(t, err).Required()
		gt.Value(t, fetched).NotNil().Required()

		gt.Value(t, fetched.Title).Equal(input.Title)
		gt.Value(t, fetched.Description).Equal(input.Description)
		gt.Value(t, fetched.Severity).Equal(input.Severity)
		gt.Value(t, fetched.Status).Equal(input.Status)
		gt.Value(t, fetched.Type).Equal(input.Type)
		gt.Value(t, fetched.AdditionalDetails).Equal(input.AdditionalDetails)
	})

	t.Run("create with children attaches all of them", func(t *testing.T) {
		uc := usecase.NewIncidentUseCase(memory.New())
		ctx := context.Background()

		input := newIncident()
		input.Assignee = &model.Assignee{Name: "Ana", Initials: "A"}
		input.AffectedSystems = []string{"api-gateway", "edge-lb"}
		input.Timeline = []model.TimelineEvent{
			{Time: time.Date(2025, 5, 1, 9, 0, 0, 0, time.UTC), Event: "detected"},
			{Time: time.Date(2025, 5, 1, 8, 0, 0, 0, time.UTC), Event: "traffic anomaly"},
		}

		created, err := uc.Create(ctx, input)
		gt.NoError(t, err).Required()

		gt.Value(t, created.Assignee).NotNil().Required()
		gt.Value(t, created.Assignee.Name).Equal("Ana")
		gt.Array(t, created.AffectedSystems).Length(2)

		// timeline comes back ordered by time, oldest first
		gt.Array(t, created.Timeline).Length(2).Required()
		gt.Value(t, created.Timeline[0].Event).Equal("traffic anomaly")
		gt.Value(t, created.Timeline[1].Event).Equal("detected")
	})

	t.Run("failed child write is tolerated and visible in result", func(t *testing.T) {
		repo := &faultRepo{Repository: memory.New()}
		repo.assignedUser = &failingAssignedUsers{AssignedUserRepository: repo.Repository.AssignedUser()}
		uc := usecase.NewIncidentUseCase(repo)
		ctx := context.Background()

		input := newIncident()
		input.Assignee = &model.Assignee{Name: "Ana", Initials: "A"}
		input.AffectedSystems = []string{"api-gateway"}

		created, err := uc.Create(ctx, input)
		gt.NoError(t, err).Required()

		// parent and the healthy child survived, the failed one is absent
		gt.Value(t, created.Assignee).Nil()
		gt.Array(t, created.AffectedSystems).Length(1)
	})

	t.Run("invalid input is rejected before any write", func(t *testing.T) {
		uc := usecase.NewIncidentUseCase(memory.New())
		ctx := context.Background()

		input := newIncident()
		input.Title = ""
		_, err := uc.Create(ctx, input)
		gt.Error(t, err)

		input = newIncident()
		input.Severity = "catastrophic"
		_, err = uc.Create(ctx, input)
		gt.Error(t, err)

		list, err := uc.List(ctx)
		gt.NoError(t, err).Required()
		gt.Array(t, list).Length(0)
	})
}

func TestIncidentUpdate(t *testing.T) {
	t.Run("assignee replace-all keeps exactly the new assignee", func(t *testing.T) {
		uc := usecase.NewIncidentUseCase(memory.New())
		ctx := context.Background()

		created, err := uc.Create(ctx, newIncident())
		gt.NoError(t, err).Required()
		gt.Value(t, created.Assignee).Nil()

		created.Assignee = &model.Assignee{Name: "Ana", Initials: "A"}
		updated, err := uc.Update(ctx, created)
		gt.NoError(t, err).Required()
		gt.Value(t, updated.Assignee).NotNil().Required()
		gt.Value(t, updated.Assignee.Name).Equal("Ana")

		updated.Assignee = &model.Assignee{Name: "Bruno", Initials: "B"}
		updated, err = uc.Update(ctx, updated)
		gt.NoError(t, err).Required()
		gt.Value(t, updated.Assignee).NotNil().Required()
		gt.Value(t, updated.Assignee.Name).Equal("Bruno")

		// the store holds a single assignee row, not both
		fetched, err := uc.Get(ctx, created.ID)
		gt.NoError(t, err).Required()
		gt.Value(t, fetched.Assignee.Name).Equal("Bruno")
	})

	t.Run("affected systems replace-all substitutes the full set", func(t *testing.T) {
		uc := usecase.NewIncidentUseCase(memory.New())
		ctx := context.Background()

		input := newIncident()
		input.AffectedSystems = []string{"api-gateway", "edge-lb"}
		created, err := uc.Create(ctx, input)
		gt.NoError(t, err).Required()

		created.AffectedSystems = []string{"billing-db"}
		updated, err := uc.Update(ctx, created)
		gt.NoError(t, err).Required()
		gt.Array(t, updated.AffectedSystems).Length(1).Required()
		gt.Value(t, updated.AffectedSystems[0]).Equal("billing-db")

		// replacing with an empty set clears the relation
		updated.AffectedSystems = []string{}
		updated, err = uc.Update(ctx, updated)
		gt.NoError(t, err).Required()
		gt.Array(t, updated.AffectedSystems).Length(0)
	})

	t.Run("update does not touch the timeline", func(t *testing.T) {
		uc := usecase.NewIncidentUseCase(memory.New())
		ctx := context.Background()

		input := newIncident()
		input.Timeline = []model.TimelineEvent{
			{Time: time.Date(2025, 5, 1, 9, 0, 0, 0, time.UTC), Event: "detected"},
		}
		created, err := uc.Create(ctx, input)
		gt.NoError(t, err).Required()

		// even handing a different timeline to Update leaves the stored one
		created.Timeline = []model.TimelineEvent{}
		created.Status = types.StatusInvestigating
		updated, err := uc.Update(ctx, created)
		gt.NoError(t, err).Required()

		gt.Value(t, updated.Status).Equal(types.StatusInvestigating)
		gt.Array(t, updated.Timeline).Length(1).Required()
		gt.Value(t, updated.Timeline[0].Event).Equal("detected")
	})

	t.Run("update of missing incident fails", func(t *testing.T) {
		uc := usecase.NewIncidentUseCase(memory.New())
		ctx := context.Background()

		missing := newIncident()
		missing.ID = types.NewIncidentID()
		_, err := uc.Update(ctx, missing)
		gt.Error(t, err)
	})
}

func TestIncidentAppendEvent(t *testing.T) {
	t.Run("events accumulate in time order", func(t *testing.T) {
		uc := usecase.NewIncidentUseCase(memory.New())
		ctx := context.Background()

		created, err := uc.Create(ctx, newIncident())
		gt.NoError(t, err).Required()

		_, err = uc.AppendEvent(ctx, created.ID, model.TimelineEvent{
			Time:  time.Date(2025, 5, 1, 10, 0, 0, 0, time.UTC),
			Event: "mitigation started",
		})
		gt.NoError(t, err).Required()

		updated, err := uc.AppendEvent(ctx, created.ID, model.TimelineEvent{
			Time:  time.Date(2025, 5, 1, 9, 30, 0, 0, time.UTC),
			Event: "escalated",
		})
		gt.NoError(t, err).Required()

		gt.Array(t, updated.Timeline).Length(2).Required()
		gt.Value(t, updated.Timeline[0].Event).Equal("escalated")
		gt.Value(t, updated.Timeline[1].Event).Equal("mitigation started")
	})

	t.Run("append to missing incident fails", func(t *testing.T) {
		uc := usecase.NewIncidentUseCase(memory.New())
		ctx := context.Background()

		_, err := uc.AppendEvent(ctx, types.NewIncidentID(), model.TimelineEvent{
			Time:  time.Now(),
			Event: "orphan",
		})
		gt.Error(t, err)
	})
}

func TestIncidentDelete(t *testing.T) {
	t.Run("tombstone: fetch after delete returns absent", func(t *testing.T) {
		uc := usecase.NewIncidentUseCase(memory.New())
		ctx := context.Background()

		input := newIncident()
		input.Assignee = &model.Assignee{Name: "Ana", Initials: "A"}
		input.AffectedSystems = []string{"api-gateway"}
		created, err := uc.Create(ctx, input)
		gt.NoError(t, err).Required()

		gt.NoError(t, uc.Delete(ctx, created.ID)).Required()

		fetched, err := uc.Get(ctx, created.ID)
		gt.NoError(t, err)
		gt.Value(t, fetched).Nil()
	})

	t.Run("failed child delete aborts and keeps the parent", func(t *testing.T) {
		repo := &faultRepo{Repository: memory.New()}
		uc := usecase.NewIncidentUseCase(repo)
		ctx := context.Background()

		created, err := uc.Create(ctx, newIncident())
		gt.NoError(t, err).Required()

		repo.timelineEvent = &failingTimelineDelete{TimelineEventRepository: repo.Repository.TimelineEvent()}
		gt.Error(t, uc.Delete(ctx, created.ID))

		fetched, err := uc.Get(ctx, created.ID)
		gt.NoError(t, err).Required()
		gt.Value(t, fetched).NotNil()
	})
}

func TestIncidentList(t *testing.T) {
	t.Run("newest first with children attached", func(t *testing.T) {
		uc := usecase.NewIncidentUseCase(memory.New())
		ctx := context.Background()

		first, err := uc.Create(ctx, newIncident())
		gt.NoError(t, err).Required()

		time.Sleep(2 * time.Millisecond)

		second := newIncident()
		second.Title = "Phishing campaign"
		second.Assignee = &model.Assignee{Name: "Bruno", Initials: "B"}
		secondCreated, err := uc.Create(ctx, second)
		gt.NoError(t, err).Required()

		list, err := uc.List(ctx)
		gt.NoError(t, err).Required()
		gt.Array(t, list).Length(2).Required()

		gt.Value(t, list[0].ID).Equal(secondCreated.ID)
		gt.Value(t, list[1].ID).Equal(first.ID)
		gt.Value(t, list[0].Assignee).NotNil().Required()
		gt.Value(t, list[0].Assignee.Name).Equal("Bruno")
		gt.Value(t, list[1].Assignee).Nil()
	})
}
