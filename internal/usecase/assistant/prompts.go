package assistant

import (
	"fmt"
	"strings"
	"time"

	"github.com/johnquangdev/telehealth-assistant/internal/domain/entities"
	"github.com/johnquangdev/telehealth-assistant/pkg/ai"
)

const fullProfilePrompt = `You are a healthcare assistant that parses patient voice commands.
The current time is %s (%s).

Classify the command into exactly one intent:
1. "bookAppointment": the patient wants to schedule an appointment.
   Extract "dateTime" as an ISO 8601 timestamp with offset, resolving relative
   phrases such as "tomorrow at 3 PM" against the current time, and "reason".
2. "reportSymptom": the patient describes a symptom.
   Extract "symptom" and "severity" as one of "low", "medium", "high".
3. "emergency": the patient is in distress or asks for urgent help.
   Extract "reason" when one is stated.
4. "showSchedule": the patient asks about their appointments or schedule.
5. "unknown": none of the above.

Respond with a single JSON object and nothing else:
{"intent": "...", "dateTime": "...", "reason": "...", "symptom": "...", "severity": "..."}
Omit fields you cannot extract.`

const compactProfilePrompt = `You are an assistant that parses voice commands in a healthcare context.
The current time is %s (%s).

Determine the intent:
- "bookAppointment": the user wants to book an appointment. Extract "dateTime"
  as an ISO 8601 timestamp with offset, resolved against the current time.
- "emergency": the user mentions severe symptoms or emergency words (chest pain,
  can't breathe, severe, help, emergency). Extract "symptoms".
- "unknown": anything else.

Respond with a single JSON object and nothing else:
{"intent": "...", "dateTime": "...", "symptoms": "...", "confidence": 0.0}
"confidence" is required and must be between 0 and 1.`

// buildMessages renders the classification prompt for profile. The anchor is
// embedded so relative phrases resolve against the request time.
func buildMessages(profile entities.IntentProfile, transcript string, anchor time.Time) []ai.Message {
	tmpl := fullProfilePrompt
	if profile == entities.ProfileCompact {
		tmpl = compactProfilePrompt
	}
	system := fmt.Sprintf(tmpl, FormatInstant(anchor), anchor.Weekday())

	return []ai.Message{
		{Role: "system", Content: system},
		{Role: "user", Content: fmt.Sprintf("Transcript: %q", strings.TrimSpace(transcript))},
	}
}
