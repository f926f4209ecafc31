package entities

import "strings"

// Intent is the closed set of actions a voice command can map to
type Intent string

const (
	IntentBookAppointment Intent = "bookAppointment"
	IntentReportSymptom   Intent = "reportSymptom"
	IntentEmergency       Intent = "emergency"
	IntentShowSchedule    Intent = "showSchedule"
	IntentUnknown         Intent = "unknown"
)

// Severity of a reported symptom
type Severity string

const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

// ParseSeverity normalizes a raw classifier value. Anything that is not a
// known level is reported as low.
func ParseSeverity(raw string) Severity {
	switch s := Severity(strings.ToLower(strings.TrimSpace(raw))); s {
	case SeverityLow, SeverityMedium, SeverityHigh:
		return s
	}
	return SeverityLow
}

// IsHigh reports whether the severity triggers an emergency escalation
func (s Severity) IsHigh() bool {
	return s == SeverityHigh
}

// IntentProfile selects the intent vocabulary and slot set the classifier uses
type IntentProfile string

const (
	// ProfileFull: five intents with reason/symptom/severity slots
	ProfileFull IntentProfile = "full"
	// ProfileCompact: three intents with symptoms slot and numeric confidence
	ProfileCompact IntentProfile = "compact"
)

// Intents lists the vocabulary of the profile
func (p IntentProfile) Intents() []Intent {
	if p == ProfileCompact {
		return []Intent{IntentBookAppointment, IntentEmergency, IntentUnknown}
	}
	return []Intent{IntentBookAppointment, IntentReportSymptom, IntentEmergency, IntentShowSchedule, IntentUnknown}
}

// Allows reports whether intent belongs to the profile vocabulary
func (p IntentProfile) Allows(intent Intent) bool {
	for _, i := range p.Intents() {
		if i == intent {
			return true
		}
	}
	return false
}

// IsValid checks the profile name
func (p IntentProfile) IsValid() bool {
	return p == ProfileFull || p == ProfileCompact
}

// ClassifiedIntent is the structured result of classifying one transcript.
// Empty string slots mean the classifier did not extract them.
type ClassifiedIntent struct {
	Intent     Intent   `json:"intent"`
	DateTime   string   `json:"dateTime,omitempty"`
	Reason     string   `json:"reason,omitempty"`
	Symptom    string   `json:"symptom,omitempty"`
	Severity   string   `json:"severity,omitempty"`
	Confidence *float64 `json:"confidence,omitempty"`
}
