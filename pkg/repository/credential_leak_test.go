package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/secops-lab/incidentdesk/pkg/domain/interfaces"
	"github.com/secops-lab/incidentdesk/pkg/domain/model"
	"github.com/secops-lab/incidentdesk/pkg/domain/types"
	"github.com/secops-lab/incidentdesk/pkg/repository/memory"
)

func runCredentialLeakRepositoryTest(t *testing.T, newRepo func(t *testing.T) interfaces.Repository) {
	t.Helper()

	t.Run("Insert assigns ID and timestamps", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		created, err := repo.CredentialLeak().Insert(ctx, &model.CredentialLeak{
			Email:              "victim@example.com",
			Username:           "victim",
			NotificationDate:   time.Date(2025, 4, 10, 0, 0, 0, 0, time.UTC),
			NotificationSource: "haveibeenpwned",
			PartialPassword:    "hun***",
		})
		gt.NoError(t, err).Required()

		gt.Value(t, created.ID).NotEqual(types.LeakID(""))
		gt.Bool(t, created.CreatedAt.IsZero()).False()
		gt.Bool(t, created.UpdatedAt.IsZero()).False()
	})

	t.Run("Get round-trips every column", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		created, err := repo.CredentialLeak().Insert(ctx, &model.CredentialLeak{
			Email:              "victim@example.com",
			Username:           "victim",
			NotificationDate:   time.Date(2025, 4, 10, 0, 0, 0, 0, time.UTC),
			NotificationSource: "vendor report",
			ActionTaken:        "password reset forced",
			PartialPassword:    "hun***",
		})
		gt.NoError(t, err).Required()

		retrieved, err := repo.CredentialLeak().Get(ctx, created.ID)
		gt.NoError(t, err).Required()
		gt.Value(t, retrieved).NotNil().Required()

		gt.Value(t, retrieved.Email).Equal("victim@example.com")
		gt.Value(t, retrieved.Username).Equal("victim")
		gt.Bool(t, retrieved.NotificationDate.Equal(created.NotificationDate)).True()
		gt.Value(t, retrieved.NotificationSource).Equal("vendor report")
		gt.Value(t, retrieved.ActionTaken).Equal("password reset forced")
		gt.Value(t, retrieved.PartialPassword).Equal("hun***")
	})

	t.Run("Get returns nil for non-existent ID", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		retrieved, err := repo.CredentialLeak().Get(ctx, types.NewLeakID())
		gt.NoError(t, err)
		gt.Value(t, retrieved).Nil()
	})

	t.Run("List orders by notification date, newest first", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		dates := []time.Time{
			time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
			time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
			time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		}
		for _, d := range dates {
			_, err := repo.CredentialLeak().Insert(ctx, &model.CredentialLeak{
				Email:              "victim@example.com",
				Username:           "victim",
				NotificationDate:   d,
				NotificationSource: "source",
				PartialPassword:    "p***",
			})
			gt.NoError(t, err).Required()
		}

		leaks, err := repo.CredentialLeak().List(ctx)
		gt.NoError(t, err).Required()
		gt.Array(t, leaks).Length(3).Required()
		gt.Bool(t, leaks[0].NotificationDate.Equal(dates[1])).True()
		gt.Bool(t, leaks[1].NotificationDate.Equal(dates[0])).True()
		gt.Bool(t, leaks[2].NotificationDate.Equal(dates[2])).True()
	})

	t.Run("Update overwrites and keeps CreatedAt", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		created, err := repo.CredentialLeak().Insert(ctx, &model.CredentialLeak{
			Email:              "victim@example.com",
			Username:           "victim",
			NotificationDate:   time.Date(2025, 4, 10, 0, 0, 0, 0, time.UTC),
			NotificationSource: "haveibeenpwned",
		})
		gt.NoError(t, err).Required()

		created.ActionTaken = "account locked"
		updated, err := repo.CredentialLeak().Update(ctx, created)
		gt.NoError(t, err).Required()
		gt.Value(t, updated.ActionTaken).Equal("account locked")
		gt.Bool(t, updated.CreatedAt.Equal(created.CreatedAt)).True()
		gt.Bool(t, updated.UpdatedAt.Before(created.UpdatedAt)).False()
	})

	t.Run("Update fails for non-existent ID", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		_, err := repo.CredentialLeak().Update(ctx, &model.CredentialLeak{
			ID:                 types.NewLeakID(),
			Email:              "ghost@example.com",
			Username:           "ghost",
			NotificationDate:   time.Now(),
			NotificationSource: "nowhere",
		})
		gt.Error(t, err)
	})

	t.Run("Delete removes the row", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		created, err := repo.CredentialLeak().Insert(ctx, &model.CredentialLeak{
			Email:              "victim@example.com",
			Username:           "victim",
			NotificationDate:   time.Date(2025, 4, 10, 0, 0, 0, 0, time.UTC),
			NotificationSource: "haveibeenpwned",
		})
		gt.NoError(t, err).Required()

		gt.NoError(t, repo.CredentialLeak().Delete(ctx, created.ID)).Required()

		retrieved, err := repo.CredentialLeak().Get(ctx, created.ID)
		gt.NoError(t, err)
		gt.Value(t, retrieved).Nil()
	})

	t.Run("Delete fails for non-existent ID", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		gt.Error(t, repo.CredentialLeak().Delete(ctx, types.NewLeakID()))
	})
}

func TestCredentialLeakRepository_Memory(t *testing.T) {
	runCredentialLeakRepositoryTest(t, func(t *testing.T) interfaces.Repository {
		return memory.New()
	})
}

func TestCredentialLeakRepository_Firestore(t *testing.T) {
	runCredentialLeakRepositoryTest(t, func(t *testing.T) interfaces.Repository {
		return newFirestoreRepo(t)
	})
}
