package usecase

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secops-lab/incidentdesk/pkg/domain/interfaces"
	"github.com/secops-lab/incidentdesk/pkg/domain/model"
	"github.com/secops-lab/incidentdesk/pkg/domain/types"
	"github.com/secops-lab/incidentdesk/pkg/utils/errutil"
	"golang.org/x/sync/errgroup"
)

// IncidentUseCase orchestrates the incident aggregate across its four tables.
// The store offers no transactions, so every operation is an explicit
// sequence of independent calls with an operation-specific failure policy:
// tolerant for create/update child steps, strict for delete.
type IncidentUseCase struct {
	repo interfaces.Repository
}

func NewIncidentUseCase(repo interfaces.Repository) *IncidentUseCase {
	return &IncidentUseCase{repo: repo}
}

func (uc *IncidentUseCase) validate(inc *model.Incident) error {
	if inc.Title == "" {
		return goerr.New("incident title is required")
	}
	if !inc.Severity.IsValid() {
		return goerr.New("invalid incident severity", goerr.V("severity", inc.Severity))
	}
	if !inc.Status.IsValid() {
		return goerr.New("invalid incident status", goerr.V("status", inc.Status))
	}
	return nil
}

// loadChildren fills the three child collections of a parent row. The
// lookups are independent reads, so they are issued concurrently and
// awaited together.
func (uc *IncidentUseCase) loadChildren(ctx context.Context, inc *model.Incident) error {
	eg, ctx := errgroup.WithContext(ctx)

	eg.Go(func() error {
		assignee, err := uc.repo.AssignedUser().GetByIncident(ctx, inc.ID)
		if err != nil {
			return goerr.Wrap(err, "failed to fetch assigned user", goerr.V(IncidentIDKey, inc.ID))
		}
		inc.Assignee = assignee
		return nil
	})

	eg.Go(func() error {
		systems, err := uc.repo.AffectedSystem().ListByIncident(ctx, inc.ID)
		if err != nil {
			return goerr.Wrap(err, "failed to fetch affected systems", goerr.V(IncidentIDKey, inc.ID))
		}
		if systems == nil {
			systems = []string{}
		}
		inc.AffectedSystems = systems
		return nil
	})

	eg.Go(func() error {
		timeline, err := uc.repo.TimelineEvent().ListByIncident(ctx, inc.ID)
		if err != nil {
			return goerr.Wrap(err, "failed to fetch timeline events", goerr.V(IncidentIDKey, inc.ID))
		}
		if timeline == nil {
			timeline = []model.TimelineEvent{}
		}
		inc.Timeline = timeline
		return nil
	})

	return eg.Wait()
}

// List reconstructs every incident aggregate. This issues 1+3n store calls
// for n incidents; a known hotspot, acceptable at the expected collection
// sizes.
func (uc *IncidentUseCase) List(ctx context.Context) ([]*model.Incident, error) {
	incidents, err := uc.repo.Incident().List(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list incidents")
	}

	for _, inc := range incidents {
		if err := uc.loadChildren(ctx, inc); err != nil {
			return nil, err
		}
	}

	return incidents, nil
}

// Get reconstructs one incident aggregate. Returns nil, nil when no incident
// has the given ID; any other failure is returned as an error.
func (uc *IncidentUseCase) Get(ctx context.Context, id types.IncidentID) (*model.Incident, error) {
	inc, err := uc.repo.Incident().Get(ctx, id)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get incident", goerr.V(IncidentIDKey, id))
	}
	if inc == nil {
		return nil, nil
	}

	if err := uc.loadChildren(ctx, inc); err != nil {
		return nil, err
	}

	return inc, nil
}

// Create inserts the parent row and then attaches each child collection.
// Only the parent insert can fail the operation: child steps are
// best-effort, their failures are logged and swallowed, and the parent is
// kept. A record with missing children is more useful than no record.
// The returned aggregate is re-fetched from the store, so any dropped child
// is visible to the caller.
func (uc *IncidentUseCase) Create(ctx context.Context, input *model.Incident) (*model.Incident, error) {
	if err := uc.validate(input); err != nil {
		return nil, err
	}

	created, err := uc.repo.Incident().Insert(ctx, input)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create incident")
	}

	if input.Assignee != nil {
		if err := uc.repo.AssignedUser().Insert(ctx, created.ID, input.Assignee); err != nil {
			errutil.Handle(ctx, err, "failed to attach assigned user, keeping partial aggregate")
		}
	}

	if len(input.AffectedSystems) > 0 {
		if err := uc.repo.AffectedSystem().Insert(ctx, created.ID, input.AffectedSystems); err != nil {
			errutil.Handle(ctx, err, "failed to attach affected systems, keeping partial aggregate")
		}
	}

	if len(input.Timeline) > 0 {
		if err := uc.repo.TimelineEvent().Insert(ctx, created.ID, input.Timeline); err != nil {
			errutil.Handle(ctx, err, "failed to attach timeline events, keeping partial aggregate")
		}
	}

	return uc.Get(ctx, created.ID)
}

// Update overwrites the parent scalar columns and synchronizes the assignee
// and affected systems with replace-all semantics: delete the full existing
// set scoped to the parent, then insert the desired set. Timeline events are
// never replaced here; they only grow through Create and AppendEvent.
// Child step failures are logged and swallowed exactly as in Create.
func (uc *IncidentUseCase) Update(ctx context.Context, inc *model.Incident) (*model.Incident, error) {
	if inc.ID == "" {
		return nil, goerr.New("incident ID is required")
	}
	if err := uc.validate(inc); err != nil {
		return nil, err
	}

	if err := uc.repo.Incident().Update(ctx, inc); err != nil {
		return nil, goerr.Wrap(err, "failed to update incident", goerr.V(IncidentIDKey, inc.ID))
	}

	if inc.Assignee != nil {
		if err := uc.repo.AssignedUser().DeleteByIncident(ctx, inc.ID); err != nil {
			errutil.Handle(ctx, err, "failed to clear assigned user before replace")
		}
		if err := uc.repo.AssignedUser().Insert(ctx, inc.ID, inc.Assignee); err != nil {
			errutil.Handle(ctx, err, "failed to replace assigned user")
		}
	}

	if inc.AffectedSystems != nil {
		if err := uc.repo.AffectedSystem().DeleteByIncident(ctx, inc.ID); err != nil {
			errutil.Handle(ctx, err, "failed to clear affected systems before replace")
		}
		if len(inc.AffectedSystems) > 0 {
			if err := uc.repo.AffectedSystem().Insert(ctx, inc.ID, inc.AffectedSystems); err != nil {
				errutil.Handle(ctx, err, "failed to replace affected systems")
			}
		}
	}

	return uc.Get(ctx, inc.ID)
}

// AppendEvent adds timeline events to an existing incident. This is the only
// way an incident's timeline changes after creation.
func (uc *IncidentUseCase) AppendEvent(ctx context.Context, id types.IncidentID, events ...model.TimelineEvent) (*model.Incident, error) {
	if len(events) == 0 {
		return nil, goerr.New("at least one timeline event is required")
	}

	inc, err := uc.repo.Incident().Get(ctx, id)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get incident", goerr.V(IncidentIDKey, id))
	}
	if inc == nil {
		return nil, goerr.Wrap(ErrIncidentNotFound, "cannot append timeline event", goerr.V(IncidentIDKey, id))
	}

	if err := uc.repo.TimelineEvent().Insert(ctx, id, events); err != nil {
		return nil, goerr.Wrap(err, "failed to append timeline events", goerr.V(IncidentIDKey, id))
	}

	return uc.Get(ctx, id)
}

// Delete removes the aggregate children-first, because child rows hold a
// store-enforced reference to the parent. Unlike Create/Update, every step
// is strict: the first failure aborts and propagates. The four steps are
// still not atomic, so a failure mid-sequence can leave orphans; that gap
// is documented rather than patched.
func (uc *IncidentUseCase) Delete(ctx context.Context, id types.IncidentID) error {
	if err := uc.repo.AssignedUser().DeleteByIncident(ctx, id); err != nil {
		return goerr.Wrap(err, "failed to delete assigned users", goerr.V(IncidentIDKey, id))
	}
	if err := uc.repo.AffectedSystem().DeleteByIncident(ctx, id); err != nil {
		return goerr.Wrap(err, "failed to delete affected systems", goerr.V(IncidentIDKey, id))
	}
	if err := uc.repo.TimelineEvent().DeleteByIncident(ctx, id); err != nil {
		return goerr.Wrap(err, "failed to delete timeline events", goerr.V(IncidentIDKey, id))
	}
	if err := uc.repo.Incident().Delete(ctx, id); err != nil {
		return goerr.Wrap(err, "failed to delete incident", goerr.V(IncidentIDKey, id))
	}
	return nil
}
