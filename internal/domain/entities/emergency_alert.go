package entities

import "time"

// AlertStatus represents the state of an emergency alert
type AlertStatus string

const (
	AlertStatusActive   AlertStatus = "active"
	AlertStatusResolved AlertStatus = "resolved"
)

// AlertSource records which flow raised the alert
type AlertSource string

const (
	AlertSourceVoice             AlertSource = "voice"
	AlertSourceSymptomEscalation AlertSource = "symptom_escalation"
	AlertSourceSymptomAnalysis   AlertSource = "symptom_analysis"
	AlertSourceManual            AlertSource = "manual"
)

// EmergencyAlert is raised for doctors to act on
type EmergencyAlert struct {
	ID         string      `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	PatientID  string      `gorm:"type:varchar(128);not null;index" json:"patient_id"`
	Reason     string      `gorm:"type:text;not null" json:"reason"`
	Status     AlertStatus `gorm:"type:varchar(20);not null;default:'active';index" json:"status"`
	Source     AlertSource `gorm:"type:varchar(32);not null" json:"source"`
	Location   *string     `gorm:"type:varchar(255)" json:"location,omitempty"`
	ResolvedBy *string     `gorm:"type:varchar(128)" json:"resolved_by,omitempty"`
	ResolvedAt *time.Time  `json:"resolved_at,omitempty"`
	CreatedAt  time.Time   `gorm:"default:now();index" json:"created_at"`
}

// TableName specifies the table name for EmergencyAlert
func (EmergencyAlert) TableName() string {
	return "emergency_alerts"
}

// IsActive checks if the alert still needs attention
func (a *EmergencyAlert) IsActive() bool {
	return a.Status == AlertStatusActive
}

// Resolve marks the alert as handled by doctorID
func (a *EmergencyAlert) Resolve(doctorID string, at time.Time) {
	a.Status = AlertStatusResolved
	a.ResolvedBy = &doctorID
	a.ResolvedAt = &at
}
