package entities

import "time"

// SymptomReport is a symptom logged by a patient through the voice assistant
type SymptomReport struct {
	ID         string    `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	PatientID  string    `gorm:"type:varchar(128);not null;index" json:"patient_id"`
	Symptom    string    `gorm:"type:text;not null" json:"symptom"`
	Severity   Severity  `gorm:"type:varchar(10);not null;default:'low'" json:"severity"`
	Transcript string    `gorm:"type:text" json:"transcript,omitempty"`
	CreatedAt  time.Time `gorm:"default:now();index" json:"created_at"`
}

// TableName specifies the table name for SymptomReport
func (SymptomReport) TableName() string {
	return "symptom_reports"
}
