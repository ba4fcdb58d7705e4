package usecase

import (
	"github.com/secops-lab/incidentdesk/pkg/domain/interfaces"
)

type UseCases struct {
	repo interfaces.Repository

	Incident   *IncidentUseCase
	Leak       *CredentialLeakUseCase
	CustomType *CustomTypeUseCase
}

func New(repo interfaces.Repository) *UseCases {
	return &UseCases{
		repo:       repo,
		Incident:   NewIncidentUseCase(repo),
		Leak:       NewCredentialLeakUseCase(repo),
		CustomType: NewCustomTypeUseCase(repo),
	}
}
