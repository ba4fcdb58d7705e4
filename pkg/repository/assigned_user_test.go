package repository_test

import (
	"context"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secops-lab/incidentdesk/pkg/domain/interfaces"
	"github.com/secops-lab/incidentdesk/pkg/domain/model"
	"github.com/secops-lab/incidentdesk/pkg/domain/types"
	"github.com/secops-lab/incidentdesk/pkg/repository/memory"
)

func runAssignedUserRepositoryTest(t *testing.T, newRepo func(t *testing.T) interfaces.Repository) {
	t.Helper()

	t.Run("Insert and GetByIncident round-trip", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		incidentID := types.NewIncidentID()
		gt.NoError(t, repo.AssignedUser().Insert(ctx, incidentID, &model.Assignee{
			Name:     "Ana",
			Initials: "A",
		})).Required()

		assignee, err := repo.AssignedUser().GetByIncident(ctx, incidentID)
		gt.NoError(t, err).Required()
		gt.Value(t, assignee).NotNil().Required()
		gt.Value(t, assignee.Name).Equal("Ana")
		gt.Value(t, assignee.Initials).Equal("A")
	})

	t.Run("GetByIncident returns nil when no row exists", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		assignee, err := repo.AssignedUser().GetByIncident(ctx, types.NewIncidentID())
		gt.NoError(t, err)
		gt.Value(t, assignee).Nil()
	})

	t.Run("rows are scoped to their incident", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		first := types.NewIncidentID()
		second := types.NewIncidentID()
		gt.NoError(t, repo.AssignedUser().Insert(ctx, first, &model.Assignee{Name: "Ana", Initials: "A"})).Required()
		gt.NoError(t, repo.AssignedUser().Insert(ctx, second, &model.Assignee{Name: "Bruno", Initials: "B"})).Required()

		assignee, err := repo.AssignedUser().GetByIncident(ctx, second)
		gt.NoError(t, err).Required()
		gt.Value(t, assignee).NotNil().Required()
		gt.Value(t, assignee.Name).Equal("Bruno")
	})

	t.Run("DeleteByIncident removes every row of the incident", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		incidentID := types.NewIncidentID()
		// storage permits multiple rows; the layer above keeps the
		// single-assignee rule via replace-all writes
		gt.NoError(t, repo.AssignedUser().Insert(ctx, incidentID, &model.Assignee{Name: "Ana", Initials: "A"})).Required()
		gt.NoError(t, repo.AssignedUser().Insert(ctx, incidentID, &model.Assignee{Name: "Bruno", Initials: "B"})).Required()

		gt.NoError(t, repo.AssignedUser().DeleteByIncident(ctx, incidentID)).Required()

		assignee, err := repo.AssignedUser().GetByIncident(ctx, incidentID)
		gt.NoError(t, err)
		gt.Value(t, assignee).Nil()
	})

	t.Run("DeleteByIncident succeeds when no rows exist", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		gt.NoError(t, repo.AssignedUser().DeleteByIncident(ctx, types.NewIncidentID()))
	})
}

func TestAssignedUserRepository_Memory(t *testing.T) {
	runAssignedUserRepositoryTest(t, func(t *testing.T) interfaces.Repository {
		return memory.New()
	})
}

func TestAssignedUserRepository_Firestore(t *testing.T) {
	runAssignedUserRepositoryTest(t, func(t *testing.T) interfaces.Repository {
		return newFirestoreRepo(t)
	})
}
