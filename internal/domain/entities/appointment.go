package entities

import (
	"time"
)

// AppointmentStatus represents the lifecycle state of an appointment
type AppointmentStatus string

const (
	AppointmentStatusScheduled AppointmentStatus = "scheduled"
	AppointmentStatusUpcoming  AppointmentStatus = "upcoming"
	AppointmentStatusCompleted AppointmentStatus = "completed"
	AppointmentStatusCancelled AppointmentStatus = "cancelled"
)

// IsValid checks if the status is known
func (s AppointmentStatus) IsValid() bool {
	switch s {
	case AppointmentStatusScheduled, AppointmentStatusUpcoming, AppointmentStatusCompleted, AppointmentStatusCancelled:
		return true
	}
	return false
}

// IsTerminal reports whether no further transition is allowed
func (s AppointmentStatus) IsTerminal() bool {
	return s == AppointmentStatusCompleted || s == AppointmentStatusCancelled
}

// AppointmentType represents how the visit happens
type AppointmentType string

const (
	AppointmentTypeVirtual  AppointmentType = "Virtual"
	AppointmentTypeInPerson AppointmentType = "In-Person"
)

// Appointment is a scheduled visit between a patient and a doctor
type Appointment struct {
	ID              string            `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	PatientID       string            `gorm:"type:varchar(128);not null;index" json:"patient_id"`
	DoctorID        string            `gorm:"type:varchar(128);not null;index" json:"doctor_id"`
	AppointmentTime time.Time         `gorm:"not null;index" json:"appointment_time"`
	Reason          string            `gorm:"type:text" json:"reason,omitempty"`
	Status          AppointmentStatus `gorm:"type:varchar(20);not null;default:'upcoming';index" json:"status"`
	Type            AppointmentType   `gorm:"type:varchar(20);not null;default:'Virtual'" json:"type"`
	ChannelID       string            `gorm:"type:varchar(255);unique;not null" json:"channel_id"`
	RTCRoomSID      *string           `gorm:"column:rtc_room_sid;type:varchar(255)" json:"rtc_room_sid,omitempty"`
	CreatedAt       time.Time         `gorm:"default:now()" json:"created_at"`
	UpdatedAt       time.Time         `gorm:"default:now()" json:"updated_at"`
}

// TableName specifies the table name for Appointment
func (Appointment) TableName() string {
	return "appointments"
}

// HasMember reports whether userID is the patient or the doctor
func (a *Appointment) HasMember(userID string) bool {
	return userID != "" && (a.PatientID == userID || a.DoctorID == userID)
}

// CanTransitionTo checks the status state machine:
// scheduled/upcoming -> completed|cancelled, and scheduled <-> upcoming.
func (a *Appointment) CanTransitionTo(next AppointmentStatus) bool {
	if !next.IsValid() || a.Status.IsTerminal() || a.Status == next {
		return false
	}
	return true
}
