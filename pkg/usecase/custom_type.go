package usecase

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secops-lab/incidentdesk/pkg/domain/interfaces"
	"github.com/secops-lab/incidentdesk/pkg/domain/model"
	"github.com/secops-lab/incidentdesk/pkg/domain/types"
)

// CustomTypeUseCase manages user-defined incident types.
type CustomTypeUseCase struct {
	repo interfaces.Repository
}

func NewCustomTypeUseCase(repo interfaces.Repository) *CustomTypeUseCase {
	return &CustomTypeUseCase{repo: repo}
}

func (uc *CustomTypeUseCase) List(ctx context.Context) ([]*model.CustomIncidentType, error) {
	customTypes, err := uc.repo.CustomType().List(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list custom incident types")
	}
	return customTypes, nil
}

func (uc *CustomTypeUseCase) Create(ctx context.Context, name string) (*model.CustomIncidentType, error) {
	if name == "" {
		return nil, goerr.New("incident type name is required")
	}

	existing, err := uc.repo.CustomType().GetByName(ctx, name)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to check custom incident type", goerr.V("name", name))
	}
	if existing != nil {
		return nil, goerr.Wrap(ErrDuplicateType, "custom incident type already exists", goerr.V("name", name))
	}

	created, err := uc.repo.CustomType().Insert(ctx, name)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create custom incident type", goerr.V("name", name))
	}

	return created, nil
}

func (uc *CustomTypeUseCase) Delete(ctx context.Context, id types.TypeID) error {
	if err := uc.repo.CustomType().Delete(ctx, id); err != nil {
		return goerr.Wrap(err, "failed to delete custom incident type", goerr.V("id", id))
	}
	return nil
}
