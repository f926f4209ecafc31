package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/johnquangdev/telehealth-assistant/internal/domain/entities"
	"github.com/johnquangdev/telehealth-assistant/internal/domain/repositories"
)

// appointmentRepository implements the AppointmentRepository interface
type appointmentRepository struct {
	db *gorm.DB
}

// NewAppointmentRepository creates a new appointment repository
func NewAppointmentRepository(db *gorm.DB) repositories.AppointmentRepository {
	return &appointmentRepository{db: db}
}

// Create creates a new appointment
func (r *appointmentRepository) Create(ctx context.Context, appointment *entities.Appointment) error {
	return r.db.WithContext(ctx).Create(appointment).Error
}

// FindByID retrieves an appointment by its ID
func (r *appointmentRepository) FindByID(ctx context.Context, id string) (*entities.Appointment, error) {
	if !isUUID(id) {
		return nil, repositories.ErrRecordNotFound
	}
	var appointment entities.Appointment
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&appointment).Error
	if err != nil {
		return nil, translate(err)
	}
	return &appointment, nil
}

// FindByChannelID retrieves an appointment by its RTC channel
func (r *appointmentRepository) FindByChannelID(ctx context.Context, channelID string) (*entities.Appointment, error) {
	var appointment entities.Appointment
	err := r.db.WithContext(ctx).
		Where("channel_id = ?", channelID).
		First(&appointment).Error
	if err != nil {
		return nil, translate(err)
	}
	return &appointment, nil
}

// List retrieves appointments with filters, soonest first
func (r *appointmentRepository) List(ctx context.Context, filters repositories.AppointmentFilters) ([]*entities.Appointment, error) {
	var appointments []*entities.Appointment

	query := r.db.WithContext(ctx).Model(&entities.Appointment{})
	if filters.PatientID != "" {
		query = query.Where("patient_id = ?", filters.PatientID)
	}
	if filters.DoctorID != "" {
		query = query.Where("doctor_id = ?", filters.DoctorID)
	}
	if len(filters.Statuses) > 0 {
		query = query.Where("status IN ?", filters.Statuses)
	}
	if filters.Limit > 0 {
		query = query.Limit(filters.Limit)
	}

	if err := query.Order("appointment_time ASC").Find(&appointments).Error; err != nil {
		return nil, err
	}
	return appointments, nil
}

// UpdateStatus updates the appointment status
func (r *appointmentRepository) UpdateStatus(ctx context.Context, id string, status entities.AppointmentStatus) error {
	result := r.db.WithContext(ctx).
		Model(&entities.Appointment{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":     status,
			"updated_at": gorm.Expr("NOW()"),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return repositories.ErrRecordNotFound
	}
	return nil
}

// SetRoomSID stores the LiveKit room SID of the appointment
func (r *appointmentRepository) SetRoomSID(ctx context.Context, id string, sid *string) error {
	result := r.db.WithContext(ctx).
		Model(&entities.Appointment{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"rtc_room_sid": sid,
			"updated_at":   gorm.Expr("NOW()"),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return repositories.ErrRecordNotFound
	}
	return nil
}

// isUUID guards uuid columns; postgres rejects malformed ids with a syntax error
func isUUID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

// translate maps gorm errors onto the repository sentinels
func translate(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return repositories.ErrRecordNotFound
	}
	return err
}
