package symptom

import "time"

// SymptomResponse represents a logged symptom
type SymptomResponse struct {
	ID         string    `json:"id"`
	PatientID  string    `json:"patient_id"`
	Symptom    string    `json:"symptom"`
	Severity   string    `json:"severity"`
	Transcript string    `json:"transcript,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// SymptomListResponse wraps a symptom history
type SymptomListResponse struct {
	Symptoms []*SymptomResponse `json:"symptoms"`
	Count    int                `json:"count"`
}
