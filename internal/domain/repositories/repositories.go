package repositories

import (
	"context"
	"errors"

	"github.com/johnquangdev/telehealth-assistant/internal/domain/entities"
)

// ErrRecordNotFound is returned by every backend when a lookup matches nothing
var ErrRecordNotFound = errors.New("record not found")

// AppointmentRepository defines the interface for appointment data access
type AppointmentRepository interface {
	// Create inserts the appointment; the store assigns ID and CreatedAt
	Create(ctx context.Context, appointment *entities.Appointment) error

	// FindByID retrieves an appointment by its ID
	FindByID(ctx context.Context, id string) (*entities.Appointment, error)

	// FindByChannelID retrieves an appointment by its RTC channel
	FindByChannelID(ctx context.Context, channelID string) (*entities.Appointment, error)

	// List retrieves appointments ordered by appointment time ascending
	List(ctx context.Context, filters AppointmentFilters) ([]*entities.Appointment, error)

	// UpdateStatus sets the appointment status
	UpdateStatus(ctx context.Context, id string, status entities.AppointmentStatus) error

	// SetRoomSID stores the RTC room SID, nil clears it
	SetRoomSID(ctx context.Context, id string, sid *string) error
}

// AppointmentFilters represents filter options for listing appointments
type AppointmentFilters struct {
	PatientID string
	DoctorID  string
	Statuses  []entities.AppointmentStatus
	Limit     int
}

// SymptomRepository defines the interface for symptom report data access
type SymptomRepository interface {
	Create(ctx context.Context, report *entities.SymptomReport) error

	// ListByPatient returns newest first
	ListByPatient(ctx context.Context, patientID string, limit int) ([]*entities.SymptomReport, error)
}

// AlertRepository defines the interface for emergency alert data access
type AlertRepository interface {
	Create(ctx context.Context, alert *entities.EmergencyAlert) error
	FindByID(ctx context.Context, id string) (*entities.EmergencyAlert, error)

	// ListByStatus returns newest first
	ListByStatus(ctx context.Context, status entities.AlertStatus, limit int) ([]*entities.EmergencyAlert, error)

	// Resolve persists the resolution fields of alert
	Resolve(ctx context.Context, alert *entities.EmergencyAlert) error
}

// SummaryRepository defines the interface for call summary data access
type SummaryRepository interface {
	// Save inserts or replaces the summary of an appointment
	Save(ctx context.Context, summary *entities.CallSummary) error
	FindByAppointmentID(ctx context.Context, appointmentID string) (*entities.CallSummary, error)
}
