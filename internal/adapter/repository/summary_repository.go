package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/johnquangdev/telehealth-assistant/internal/domain/entities"
	"github.com/johnquangdev/telehealth-assistant/internal/domain/repositories"
)

type summaryRepository struct {
	db *gorm.DB
}

// NewSummaryRepository creates a new call summary repository
func NewSummaryRepository(db *gorm.DB) repositories.SummaryRepository {
	return &summaryRepository{db: db}
}

// Save upserts on appointment_id so a regenerated summary replaces the old one
func (r *summaryRepository) Save(ctx context.Context, summary *entities.CallSummary) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "appointment_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"key_points", "symptoms_discussed", "action_items",
				"overall_summary", "transcript_object", "model_used",
			}),
		}).
		Create(summary).Error
}

func (r *summaryRepository) FindByAppointmentID(ctx context.Context, appointmentID string) (*entities.CallSummary, error) {
	if !isUUID(appointmentID) {
		return nil, repositories.ErrRecordNotFound
	}
	var summary entities.CallSummary
	err := r.db.WithContext(ctx).
		Where("appointment_id = ?", appointmentID).
		First(&summary).Error
	if err != nil {
		return nil, translate(err)
	}
	return &summary, nil
}
