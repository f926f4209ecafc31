package symptom

import (
	"context"

	"github.com/johnquangdev/telehealth-assistant/internal/domain/entities"
	"github.com/johnquangdev/telehealth-assistant/internal/domain/repositories"
	usecaseErrors "github.com/johnquangdev/telehealth-assistant/internal/usecase/errors"
)

const (
	defaultLimit = 20
	maxLimit     = 100
)

// Service exposes a patient's symptom history
type Service struct {
	repo repositories.SymptomRepository
}

func NewService(repo repositories.SymptomRepository) *Service {
	return &Service{repo: repo}
}

// ListForPatient returns reports newest first. Patients read their own
// history; doctors may read any patient's. An empty patientID means the actor.
func (s *Service) ListForPatient(ctx context.Context, actor entities.Actor, patientID string, limit int) ([]*entities.SymptomReport, error) {
	if patientID == "" {
		patientID = actor.ID
	}
	if patientID != actor.ID && !actor.IsDoctor() {
		return nil, usecaseErrors.ErrForbidden
	}

	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	return s.repo.ListByPatient(ctx, patientID, limit)
}
