package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/johnquangdev/telehealth-assistant/internal/domain/entities"
	"github.com/johnquangdev/telehealth-assistant/internal/domain/repositories"
)

type symptomRepository struct {
	db *gorm.DB
}

// NewSymptomRepository creates a new symptom report repository
func NewSymptomRepository(db *gorm.DB) repositories.SymptomRepository {
	return &symptomRepository{db: db}
}

func (r *symptomRepository) Create(ctx context.Context, report *entities.SymptomReport) error {
	return r.db.WithContext(ctx).Create(report).Error
}

func (r *symptomRepository) ListByPatient(ctx context.Context, patientID string, limit int) ([]*entities.SymptomReport, error) {
	var reports []*entities.SymptomReport
	query := r.db.WithContext(ctx).
		Where("patient_id = ?", patientID).
		Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&reports).Error; err != nil {
		return nil, err
	}
	return reports, nil
}
