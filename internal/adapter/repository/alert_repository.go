package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/johnquangdev/telehealth-assistant/internal/domain/entities"
	"github.com/johnquangdev/telehealth-assistant/internal/domain/repositories"
)

// alertRepository implements the AlertRepository interface
type alertRepository struct {
	db *gorm.DB
}

// NewAlertRepository creates a new emergency alert repository
func NewAlertRepository(db *gorm.DB) repositories.AlertRepository {
	return &alertRepository{db: db}
}

// Create creates a new alert
func (r *alertRepository) Create(ctx context.Context, alert *entities.EmergencyAlert) error {
	return r.db.WithContext(ctx).Create(alert).Error
}

// FindByID retrieves an alert by its ID
func (r *alertRepository) FindByID(ctx context.Context, id string) (*entities.EmergencyAlert, error) {
	if !isUUID(id) {
		return nil, repositories.ErrRecordNotFound
	}
	var alert entities.EmergencyAlert
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&alert).Error; err != nil {
		return nil, translate(err)
	}
	return &alert, nil
}

// ListByStatus lists alerts with the given status, newest first
func (r *alertRepository) ListByStatus(ctx context.Context, status entities.AlertStatus, limit int) ([]*entities.EmergencyAlert, error) {
	var alerts []*entities.EmergencyAlert
	query := r.db.WithContext(ctx).
		Where("status = ?", status).
		Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&alerts).Error; err != nil {
		return nil, err
	}
	return alerts, nil
}

// Resolve persists status and resolution fields; only active alerts change
func (r *alertRepository) Resolve(ctx context.Context, alert *entities.EmergencyAlert) error {
	result := r.db.WithContext(ctx).
		Model(&entities.EmergencyAlert{}).
		Where("id = ? AND status = ?", alert.ID, entities.AlertStatusActive).
		Updates(map[string]interface{}{
			"status":      alert.Status,
			"resolved_by": alert.ResolvedBy,
			"resolved_at": alert.ResolvedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return repositories.ErrRecordNotFound
	}
	return nil
}
