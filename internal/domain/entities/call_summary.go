package entities

import (
	"time"

	"gorm.io/datatypes"
)

// CallSummary is the AI generated summary of a finished consultation
type CallSummary struct {
	ID                string                      `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	AppointmentID     string                      `gorm:"type:uuid;not null;uniqueIndex" json:"appointment_id"`
	KeyPoints         datatypes.JSONSlice[string] `gorm:"type:jsonb;default:'[]'" json:"key_points"`
	SymptomsDiscussed datatypes.JSONSlice[string] `gorm:"type:jsonb;default:'[]'" json:"symptoms_discussed"`
	ActionItems       datatypes.JSONSlice[string] `gorm:"type:jsonb;default:'[]'" json:"action_items"`
	OverallSummary    string                      `gorm:"type:text;not null" json:"overall_summary"`
	TranscriptObject  string                      `gorm:"type:varchar(512)" json:"transcript_object,omitempty"`
	ModelUsed         string                      `gorm:"type:varchar(100)" json:"model_used,omitempty"`
	CreatedAt         time.Time                   `gorm:"default:now()" json:"created_at"`
}

// TableName specifies the table name for CallSummary
func (CallSummary) TableName() string {
	return "call_summaries"
}

// SymptomAnalysis is the AI assessment of a free-form symptom description.
// Not persisted; a high urgency raises an EmergencyAlert.
type SymptomAnalysis struct {
	DiagnosisSuggestions []string `json:"diagnosisSuggestions"`
	UrgencyLevel         Severity `json:"urgencyLevel"`
	Recommendations      []string `json:"recommendations"`
}
