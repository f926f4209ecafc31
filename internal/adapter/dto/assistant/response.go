package assistant

import (
	"github.com/johnquangdev/telehealth-assistant/internal/adapter/dto/alert"
	"github.com/johnquangdev/telehealth-assistant/internal/adapter/dto/appointment"
	"github.com/johnquangdev/telehealth-assistant/internal/adapter/dto/symptom"
)

// IntentResponse is a classified intent with its extracted slots
type IntentResponse struct {
	Intent     string   `json:"intent"`
	DateTime   string   `json:"dateTime,omitempty"`
	Reason     string   `json:"reason,omitempty"`
	Symptom    string   `json:"symptom,omitempty"`
	Severity   string   `json:"severity,omitempty"`
	Confidence *float64 `json:"confidence,omitempty"`
}

// CommandResponse describes what a dispatched command did
type CommandResponse struct {
	Intent       *IntentResponse                  `json:"intent,omitempty"`
	Confirmation string                           `json:"confirmation"`
	Transcript   string                           `json:"transcript,omitempty"`
	Appointment  *appointment.AppointmentResponse `json:"appointment,omitempty"`
	Symptom      *symptom.SymptomResponse         `json:"symptom,omitempty"`
	Alert        *alert.AlertResponse             `json:"alert,omitempty"`
	// Warning is set when a secondary write failed after the primary one
	Warning string `json:"warning,omitempty"`
}

// SymptomAnalysisResponse is the AI triage of a symptom description
type SymptomAnalysisResponse struct {
	DiagnosisSuggestions []string             `json:"diagnosisSuggestions"`
	UrgencyLevel         string               `json:"urgencyLevel"`
	Recommendations      []string             `json:"recommendations"`
	Alert                *alert.AlertResponse `json:"alert,omitempty"`
}

// MedicationReminderResponse is the assistant's confirmation of a reminder
type MedicationReminderResponse struct {
	MedicationName string `json:"medicationName"`
	Success        bool   `json:"success"`
	Message        string `json:"message"`
}
