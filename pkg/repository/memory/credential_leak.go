package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secops-lab/incidentdesk/pkg/domain/model"
	"github.com/secops-lab/incidentdesk/pkg/domain/types"
)

type credentialLeakRepository struct {
	mu    sync.RWMutex
	leaks map[types.LeakID]*model.CredentialLeak
}

func newCredentialLeakRepository() *credentialLeakRepository {
	return &credentialLeakRepository{
		leaks: make(map[types.LeakID]*model.CredentialLeak),
	}
}

func (r *credentialLeakRepository) Insert(ctx context.Context, leak *model.CredentialLeak) (*model.CredentialLeak, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	created := leak.Clone()
	created.ID = types.NewLeakID()
	created.CreatedAt = now
	created.UpdatedAt = now

	r.leaks[created.ID] = created
	return created.Clone(), nil
}

func (r *credentialLeakRepository) Get(ctx context.Context, id types.LeakID) (*model.CredentialLeak, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	leak, exists := r.leaks[id]
	if !exists {
		return nil, nil
	}
	return leak.Clone(), nil
}

func (r *credentialLeakRepository) List(ctx context.Context) ([]*model.CredentialLeak, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	leaks := make([]*model.CredentialLeak, 0, len(r.leaks))
	for _, leak := range r.leaks {
		leaks = append(leaks, leak.Clone())
	}

	sort.Slice(leaks, func(i, j int) bool {
		return leaks[i].NotificationDate.After(leaks[j].NotificationDate)
	})

	return leaks, nil
}

func (r *credentialLeakRepository) Update(ctx context.Context, leak *model.CredentialLeak) (*model.CredentialLeak, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, exists := r.leaks[leak.ID]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "credential leak not found", goerr.V("id", leak.ID))
	}

	updated := leak.Clone()
	updated.CreatedAt = existing.CreatedAt
	updated.UpdatedAt = time.Now().UTC()

	r.leaks[updated.ID] = updated
	return updated.Clone(), nil
}

func (r *credentialLeakRepository) Delete(ctx context.Context, id types.LeakID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.leaks[id]; !exists {
		return goerr.Wrap(ErrNotFound, "credential leak not found", goerr.V("id", id))
	}

	delete(r.leaks, id)
	return nil
}
