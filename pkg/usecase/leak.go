package usecase

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secops-lab/incidentdesk/pkg/domain/interfaces"
	"github.com/secops-lab/incidentdesk/pkg/domain/model"
	"github.com/secops-lab/incidentdesk/pkg/domain/types"
	"github.com/secops-lab/incidentdesk/pkg/utils/errutil"
)

// CredentialLeakUseCase mutates credential leak records and appends one
// audit entry per successful mutation. The audit trail is advisory: its
// entries reference the subject by ID only, are never updated or deleted,
// and remain queryable after the subject is gone.
type CredentialLeakUseCase struct {
	repo interfaces.Repository
}

func NewCredentialLeakUseCase(repo interfaces.Repository) *CredentialLeakUseCase {
	return &CredentialLeakUseCase{repo: repo}
}

func (uc *CredentialLeakUseCase) validate(leak *model.CredentialLeak) error {
	if leak.Email == "" {
		return goerr.New("leak email is required")
	}
	if leak.Username == "" {
		return goerr.New("leak username is required")
	}
	if leak.NotificationDate.IsZero() {
		return goerr.New("leak notification date is required")
	}
	if leak.NotificationSource == "" {
		return goerr.New("leak notification source is required")
	}
	return nil
}

// appendLog records one audit entry. Audit failures never fail the mutation
// they describe: the entry is secondary and its loss is logged only.
func (uc *CredentialLeakUseCase) appendLog(ctx context.Context, leakID types.LeakID, action types.AuditAction, details model.AuditDetails) {
	entry := &model.CredentialLeakLog{
		LeakID:  leakID,
		Action:  action,
		Details: details,
		UserID:  actorFrom(ctx),
	}
	if _, err := uc.repo.LeakLog().Insert(ctx, entry); err != nil {
		errutil.Handle(ctx, err, "failed to append credential leak audit entry")
	}
}

func (uc *CredentialLeakUseCase) List(ctx context.Context) ([]*model.CredentialLeak, error) {
	leaks, err := uc.repo.CredentialLeak().List(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list credential leaks")
	}
	return leaks, nil
}

// Get returns nil, nil when no leak has the given ID.
func (uc *CredentialLeakUseCase) Get(ctx context.Context, id types.LeakID) (*model.CredentialLeak, error) {
	leak, err := uc.repo.CredentialLeak().Get(ctx, id)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get credential leak", goerr.V(LeakIDKey, id))
	}
	return leak, nil
}

func (uc *CredentialLeakUseCase) Create(ctx context.Context, input *model.CredentialLeak) (*model.CredentialLeak, error) {
	if err := uc.validate(input); err != nil {
		return nil, err
	}

	created, err := uc.repo.CredentialLeak().Insert(ctx, input)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create credential leak")
	}

	uc.appendLog(ctx, created.ID, types.AuditActionCreate, model.AuditDetails{
		New: created,
	})

	return created, nil
}

func (uc *CredentialLeakUseCase) Update(ctx context.Context, leak *model.CredentialLeak) (*model.CredentialLeak, error) {
	if leak.ID == "" {
		return nil, goerr.New("leak ID is required")
	}
	if err := uc.validate(leak); err != nil {
		return nil, err
	}

	pre, err := uc.repo.CredentialLeak().Get(ctx, leak.ID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get credential leak", goerr.V(LeakIDKey, leak.ID))
	}
	if pre == nil {
		return nil, goerr.Wrap(ErrLeakNotFound, "cannot update credential leak", goerr.V(LeakIDKey, leak.ID))
	}

	updated, err := uc.repo.CredentialLeak().Update(ctx, leak)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to update credential leak", goerr.V(LeakIDKey, leak.ID))
	}

	uc.appendLog(ctx, updated.ID, types.AuditActionUpdate, model.AuditDetails{
		Old:           pre,
		New:           updated,
		ChangedFields: model.ChangedLeakFields(pre, updated),
	})

	return updated, nil
}

// Delete removes the subject row first and appends the DELETE audit entry
// only after that succeeds. Writing the entry before the delete could leave
// a false DELETE record behind a deletion that subsequently failed. The
// entry's subject ID therefore points at a row that no longer exists, which
// the audit table allows by design.
func (uc *CredentialLeakUseCase) Delete(ctx context.Context, id types.LeakID) error {
	pre, err := uc.repo.CredentialLeak().Get(ctx, id)
	if err != nil {
		return goerr.Wrap(err, "failed to get credential leak", goerr.V(LeakIDKey, id))
	}
	if pre == nil {
		return goerr.Wrap(ErrLeakNotFound, "cannot delete credential leak", goerr.V(LeakIDKey, id))
	}

	if err := uc.repo.CredentialLeak().Delete(ctx, id); err != nil {
		return goerr.Wrap(err, "failed to delete credential leak", goerr.V(LeakIDKey, id))
	}

	uc.appendLog(ctx, id, types.AuditActionDelete, model.AuditDetails{
		Old: pre,
	})

	return nil
}

// Logs returns the audit trail of a leak, newest first. It succeeds
// identically whether or not the subject currently exists.
func (uc *CredentialLeakUseCase) Logs(ctx context.Context, id types.LeakID) ([]*model.CredentialLeakLog, error) {
	entries, err := uc.repo.LeakLog().ListByLeak(ctx, id)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list credential leak logs", goerr.V(LeakIDKey, id))
	}
	return entries, nil
}
