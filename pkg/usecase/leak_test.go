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

type auditFaultRepo struct {
	interfaces.Repository
	leakLog interfaces.LeakLogRepository
}

func (r *auditFaultRepo) LeakLog() interfaces.LeakLogRepository {
	if r.leakLog != nil {
		return r.leakLog
	}
	return r.Repository.LeakLog()
}

type failingLeakLog struct {
	interfaces.LeakLogRepository
}

func (r *failingLeakLog) Insert(ctx context.Context, entry *model.CredentialLeakLog) (*model.CredentialLeakLog, error) {
	return nil, goerr.New("audit store unavailable")
}

func newLeak() *model.CredentialLeak {
	return &model.CredentialLeak{
		Email:              "victim@example.com",
		Username:           "victim",
		NotificationDate:   time.Date(2025, 4, 10, 0, 0, 0, 0, time.UTC),
		NotificationSource: "haveibeenpwned",
		PartialPassword:    "hun***",
	}
}

func TestLeakCreate(t *testing.T) {
	t.Run("create records a CREATE audit entry", func(t *testing.T) {
		uc := usecase.NewCredentialLeakUseCase(memory.New())
		ctx := usecase.WithActor(context.Background(), "analyst-1")

		created, err := uc.Create(ctx, newLeak())
		gt.NoError(t, err).Required()
		gt.Value(t, created.Email).Equal("victim@example.com")

		logs, err := uc.Logs(ctx, created.ID)
		gt.NoError(t, err).Required()
		gt.Array(t, logs).Length(1).Required()

		gt.Value(t, logs[0].Action).Equal(types.AuditActionCreate)
		gt.Value(t, logs[0].LeakID).Equal(created.ID)
		gt.Value(t, logs[0].UserID).Equal("analyst-1")
		gt.Value(t, logs[0].Details.New).NotNil().Required()
		gt.Value(t, logs[0].Details.New.Email).Equal("victim@example.com")
		gt.Value(t, logs[0].Details.Old).Nil()
	})

	t.Run("invalid input is rejected and leaves no trace", func(t *testing.T) {
		uc := usecase.NewCredentialLeakUseCase(memory.New())
		ctx := context.Background()

		input := newLeak()
		input.Email = ""
		_, err := uc.Create(ctx, input)
		gt.Error(t, err)

		leaks, err := uc.List(ctx)
		gt.NoError(t, err).Required()
		gt.Array(t, leaks).Length(0)
	})

	t.Run("audit append failure does not fail the create", func(t *testing.T) {
		repo := &auditFaultRepo{Repository: memory.New()}
		repo.leakLog = &failingLeakLog{LeakLogRepository: repo.Repository.LeakLog()}
		uc := usecase.NewCredentialLeakUseCase(repo)
		ctx := context.Background()

		created, err := uc.Create(ctx, newLeak())
		gt.NoError(t, err).Required()
		gt.Value(t, created).NotNil().Required()

		fetched, err := uc.Get(ctx, created.ID)
		gt.NoError(t, err).Required()
		gt.Value(t, fetched).NotNil()
	})
}

func TestLeakUpdate(t *testing.T) {
	t.Run("update records old, new and the field diff", func(t *testing.T) {
		uc := usecase.NewCredentialLeakUseCase(memory.New())
		ctx := context.Background()

		created, err := uc.Create(ctx, newLeak())
		gt.NoError(t, err).Required()

		created.ActionTaken = "password reset forced"
		created.NotificationSource = "vendor report"
		updated, err := uc.Update(ctx, created)
		gt.NoError(t, err).Required()
		gt.Value(t, updated.ActionTaken).Equal("password reset forced")

		logs, err := uc.Logs(ctx, created.ID)
		gt.NoError(t, err).Required()
		gt.Array(t, logs).Length(2).Required()

		// newest first: UPDATE then CREATE
		gt.Value(t, logs[0].Action).Equal(types.AuditActionUpdate)
		gt.Value(t, logs[1].Action).Equal(types.AuditActionCreate)

		details := logs[0].Details
		gt.Value(t, details.Old).NotNil().Required()
		gt.Value(t, details.New).NotNil().Required()
		gt.Value(t, details.Old.ActionTaken).Equal("")
		gt.Value(t, details.New.ActionTaken).Equal("password reset forced")

		gt.Map(t, details.ChangedFields).
			HasKeyValue("action_taken", "password reset forced").
			HasKeyValue("notification_source", "vendor report")
		gt.Number(t, len(details.ChangedFields)).Equal(2)
	})

	t.Run("update of missing leak fails without an audit entry", func(t *testing.T) {
		uc := usecase.NewCredentialLeakUseCase(memory.New())
		ctx := context.Background()

		missing := newLeak()
		missing.ID = types.NewLeakID()
		_, err := uc.Update(ctx, missing)
		gt.Error(t, err)

		logs, err := uc.Logs(ctx, missing.ID)
		gt.NoError(t, err).Required()
		gt.Array(t, logs).Length(0)
	})
}

func TestLeakDelete(t *testing.T) {
	t.Run("audit trail survives subject deletion", func(t *testing.T) {
		uc := usecase.NewCredentialLeakUseCase(memory.New())
		ctx := context.Background()

		created, err := uc.Create(ctx, newLeak())
		gt.NoError(t, err).Required()

		gt.NoError(t, uc.Delete(ctx, created.ID)).Required()

		fetched, err := uc.Get(ctx, created.ID)
		gt.NoError(t, err)
		gt.Value(t, fetched).Nil()

		logs, err := uc.Logs(ctx, created.ID)
		gt.NoError(t, err).Required()
		gt.Array(t, logs).Length(2).Required()

		gt.Value(t, logs[0].Action).Equal(types.AuditActionDelete)
		gt.Value(t, logs[0].Details.Old).NotNil().Required()
		gt.Value(t, logs[0].Details.Old.Email).Equal("victim@example.com")
		gt.Value(t, logs[0].Details.New).Nil()
		gt.Value(t, logs[1].Action).Equal(types.AuditActionCreate)
	})

	t.Run("delete of missing leak fails", func(t *testing.T) {
		uc := usecase.NewCredentialLeakUseCase(memory.New())
		ctx := context.Background()

		gt.Error(t, uc.Delete(ctx, types.NewLeakID()))
	})

	t.Run("audit append failure does not fail the delete", func(t *testing.T) {
		repo := &auditFaultRepo{Repository: memory.New()}
		uc := usecase.NewCredentialLeakUseCase(repo)
		ctx := context.Background()

		created, err := uc.Create(ctx, newLeak())
		gt.NoError(t, err).Required()

		repo.leakLog = &failingLeakLog{LeakLogRepository: repo.Repository.LeakLog()}
		gt.NoError(t, uc.Delete(ctx, created.ID)).Required()

		fetched, err := uc.Get(ctx, created.ID)
		gt.NoError(t, err)
		gt.Value(t, fetched).Nil()
	})
}

func TestLeakList(t *testing.T) {
	t.Run("ordered by notification date, newest first", func(t *testing.T) {
		uc := usecase.NewCredentialLeakUseCase(memory.New())
		ctx := context.Background()

		older := newLeak()
		older.NotificationDate = time.Date(2025, 1, 5, 0, 0, 0, 0, time.UTC)
		_, err := uc.Create(ctx, older)
		gt.NoError(t, err).Required()

		newer := newLeak()
		newer.Email = "other@example.com"
		newer.NotificationDate = time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
		_, err = uc.Create(ctx, newer)
		gt.NoError(t, err).Required()

		leaks, err := uc.List(ctx)
		gt.NoError(t, err).Required()
		gt.Array(t, leaks).Length(2).Required()
		gt.Value(t, leaks[0].Email).Equal("other@example.com")
		gt.Value(t, leaks[1].Email).Equal("victim@example.com")
	})
}
