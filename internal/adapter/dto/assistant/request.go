package assistant

import "time"

// CommandRequest is a typed or browser-transcribed voice command
type CommandRequest struct {
	Transcript string `json:"transcript" validate:"required,max=2000"`
	// Anchor overrides the instant relative phrases resolve against
	Anchor *time.Time `json:"anchor,omitempty"`
}

// AudioCommandRequest points at a recorded voice command
type AudioCommandRequest struct {
	AudioURL string     `json:"audio_url" validate:"required,url"`
	Anchor   *time.Time `json:"anchor,omitempty"`
}

// ClassifyRequest asks for the intent of a transcript without acting on it
type ClassifyRequest struct {
	Transcript string     `json:"transcript" validate:"required,max=2000"`
	Anchor     *time.Time `json:"anchor,omitempty"`
}

// AnalyzeSymptomsRequest is a free-form description of how the patient feels
type AnalyzeSymptomsRequest struct {
	Description string `json:"description" validate:"required,max=4000"`
}

// MedicationReminderRequest asks the assistant to remind the caller of a dose
type MedicationReminderRequest struct {
	MedicationName string `json:"medicationName" validate:"required,max=200"`
	Dosage         string `json:"dosage" validate:"required,max=100"`
	Frequency      string `json:"frequency" validate:"required,max=100"`
	Time           string `json:"time" validate:"required,max=50"`
}

// VoiceWebhookRequest is posted by the external voice agent
type VoiceWebhookRequest struct {
	CallerID   string     `json:"caller_id" validate:"required,max=128"`
	Transcript string     `json:"transcript" validate:"required,max=2000"`
	Anchor     *time.Time `json:"anchor,omitempty"`
}
