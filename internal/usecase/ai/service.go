package ai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/johnquangdev/telehealth-assistant/internal/domain/entities"
	"github.com/johnquangdev/telehealth-assistant/internal/domain/repositories"
	usecaseErrors "github.com/johnquangdev/telehealth-assistant/internal/usecase/errors"
	pkgai "github.com/johnquangdev/telehealth-assistant/pkg/ai"
)

const (
	transcriptURLExpiry = time.Hour
	maxAlertReason      = 500
)

const callSummaryPrompt = `You summarize telehealth consultations for the patient's medical record.
Read the call transcript and respond with a single JSON object:
{"keyPoints": ["..."], "symptomsDiscussed": ["..."], "actionItems": ["..."], "overallSummary": "..."}
Keep each list item short. Do not invent facts that are not in the transcript.`

const symptomAnalysisPrompt = `You are a medical triage assistant. A patient describes their symptoms.
Respond with a single JSON object:
{"diagnosisSuggestions": ["..."], "urgencyLevel": "low|medium|high", "recommendations": ["..."]}
Use "high" only when the patient should get urgent care now. This is not a diagnosis.`

const medicationReminderPrompt = `You are a voice assistant that helps patients set medication reminders.
The user message is a JSON object {"medicationName","dosage","frequency","time"}.
Confirm the reminder back to the patient using exactly those values and respond with a single JSON object:
{"success": true, "message": "..."}
Set "success" to false only when the values cannot describe a reminder, and say why in "message".`

// LLM is the chat completion endpoint used for summaries and triage
type LLM interface {
	Complete(ctx context.Context, messages []pkgai.Message, opts pkgai.CompletionOptions) (string, error)
	Model() string
}

// TranscriptArchive stores raw call transcripts
type TranscriptArchive interface {
	UploadText(ctx context.Context, objectName, content string) error
	GetFileURL(ctx context.Context, objectName string, expiry time.Duration) (string, error)
}

// AlertCreator raises emergency alerts
type AlertCreator interface {
	Create(ctx context.Context, alert *entities.EmergencyAlert) error
}

// SummaryView is a stored summary with a short-lived link to its transcript
type SummaryView struct {
	Summary       *entities.CallSummary
	TranscriptURL string
}

// SymptomAnalysisResult is the triage outcome and the alert it raised, if any
type SymptomAnalysisResult struct {
	Analysis *entities.SymptomAnalysis
	Alert    *entities.EmergencyAlert
}

// Service runs the LLM backed flows outside the voice command pipeline
type Service struct {
	llm          LLM
	summaries    repositories.SummaryRepository
	appointments repositories.AppointmentRepository
	archive      TranscriptArchive
	alerts       AlertCreator
	parser       *Parser
	opts         pkgai.CompletionOptions
	logger       *zap.Logger
}

// NewService constructs the AI service. archive may be nil, in which case
// transcripts are not kept.
func NewService(
	llm LLM,
	summaries repositories.SummaryRepository,
	appointments repositories.AppointmentRepository,
	archive TranscriptArchive,
	alerts AlertCreator,
	maxTokens int,
	logger *zap.Logger,
) *Service {
	if maxTokens <= 0 {
		maxTokens = 1024
	}
	return &Service{
		llm:          llm,
		summaries:    summaries,
		appointments: appointments,
		archive:      archive,
		alerts:       alerts,
		parser:       NewParser(),
		opts:         pkgai.CompletionOptions{Temperature: 0.2, MaxTokens: maxTokens, JSON: true},
		logger:       logger,
	}
}

// SummarizeCall summarizes a finished consultation and stores the result,
// replacing any earlier summary of the same appointment.
func (s *Service) SummarizeCall(ctx context.Context, appointmentID string, actor entities.Actor, transcript string) (*entities.CallSummary, error) {
	transcript = strings.TrimSpace(transcript)
	if transcript == "" {
		return nil, usecaseErrors.ErrEmptyCallTranscript
	}
	if _, err := s.memberAppointment(ctx, appointmentID, actor); err != nil {
		return nil, err
	}

	objectName := s.archiveTranscript(ctx, appointmentID, transcript)

	raw, err := s.llm.Complete(ctx, []pkgai.Message{
		{Role: "system", Content: callSummaryPrompt},
		{Role: "user", Content: transcript},
	}, s.opts)
	if err != nil {
		return nil, fmt.Errorf("summary completion failed: %w", err)
	}

	parsed, err := s.parser.ParseCallSummary(raw)
	if err != nil {
		return nil, err
	}

	summary := &entities.CallSummary{
		AppointmentID:     appointmentID,
		KeyPoints:         parsed.KeyPoints,
		SymptomsDiscussed: parsed.SymptomsDiscussed,
		ActionItems:       parsed.ActionItems,
		OverallSummary:    parsed.OverallSummary,
		TranscriptObject:  objectName,
		ModelUsed:         s.llm.Model(),
	}
	if err := s.summaries.Save(ctx, summary); err != nil {
		return nil, fmt.Errorf("failed to save summary: %w", err)
	}

	if s.logger != nil {
		s.logger.Info("call summary saved",
			zap.String("appointment_id", appointmentID),
			zap.Int("key_points", len(summary.KeyPoints)),
			zap.String("model", summary.ModelUsed))
	}
	return summary, nil
}

// GetSummary returns the stored summary of an appointment
func (s *Service) GetSummary(ctx context.Context, appointmentID string, actor entities.Actor) (*SummaryView, error) {
	if _, err := s.memberAppointment(ctx, appointmentID, actor); err != nil {
		return nil, err
	}

	summary, err := s.summaries.FindByAppointmentID(ctx, appointmentID)
	if err != nil {
		if errors.Is(err, repositories.ErrRecordNotFound) {
			return nil, usecaseErrors.ErrSummaryNotFound
		}
		return nil, fmt.Errorf("failed to load summary: %w", err)
	}

	view := &SummaryView{Summary: summary}
	if s.archive != nil && summary.TranscriptObject != "" {
		url, err := s.archive.GetFileURL(ctx, summary.TranscriptObject, transcriptURLExpiry)
		if err != nil {
			if s.logger != nil {
				s.logger.Warn("failed to presign transcript",
					zap.String("appointment_id", appointmentID),
					zap.Error(err))
			}
		} else {
			view.TranscriptURL = url
		}
	}
	return view, nil
}

// AnalyzeSymptoms triages a free-form description. A high urgency raises an
// emergency alert for the patient.
func (s *Service) AnalyzeSymptoms(ctx context.Context, patientID, description string) (*SymptomAnalysisResult, error) {
	description = strings.TrimSpace(description)
	if patientID == "" || description == "" {
		return nil, usecaseErrors.ErrInvalidInput
	}

	raw, err := s.llm.Complete(ctx, []pkgai.Message{
		{Role: "system", Content: symptomAnalysisPrompt},
		{Role: "user", Content: description},
	}, s.opts)
	if err != nil {
		return nil, fmt.Errorf("symptom analysis completion failed: %w", err)
	}

	analysis, err := s.parser.ParseSymptomAnalysis(raw)
	if err != nil {
		return nil, err
	}

	result := &SymptomAnalysisResult{Analysis: analysis}
	if !analysis.UrgencyLevel.IsHigh() {
		return result, nil
	}

	alert := &entities.EmergencyAlert{
		PatientID: patientID,
		Reason:    truncate(description, maxAlertReason),
		Status:    entities.AlertStatusActive,
		Source:    entities.AlertSourceSymptomAnalysis,
	}
	if err := s.alerts.Create(context.WithoutCancel(ctx), alert); err != nil {
		return nil, fmt.Errorf("failed to raise alert for high urgency: %w", err)
	}
	result.Alert = alert
	return result, nil
}

// SetMedicationReminder asks the assistant to confirm a medication reminder.
// A confirmation with Success false is returned as is, not as an error.
func (s *Service) SetMedicationReminder(ctx context.Context, reminder entities.MedicationReminder) (*entities.ReminderConfirmation, error) {
	reminder.MedicationName = strings.TrimSpace(reminder.MedicationName)
	reminder.Dosage = strings.TrimSpace(reminder.Dosage)
	reminder.Frequency = strings.TrimSpace(reminder.Frequency)
	reminder.Time = strings.TrimSpace(reminder.Time)
	if reminder.PatientID == "" || reminder.MedicationName == "" || reminder.Dosage == "" ||
		reminder.Frequency == "" || reminder.Time == "" {
		return nil, usecaseErrors.ErrInvalidInput
	}

	payload, err := json.Marshal(struct {
		MedicationName string `json:"medicationName"`
		Dosage         string `json:"dosage"`
		Frequency      string `json:"frequency"`
		Time           string `json:"time"`
	}{reminder.MedicationName, reminder.Dosage, reminder.Frequency, reminder.Time})
	if err != nil {
		return nil, fmt.Errorf("failed to encode reminder: %w", err)
	}

	raw, err := s.llm.Complete(ctx, []pkgai.Message{
		{Role: "system", Content: medicationReminderPrompt},
		{Role: "user", Content: string(payload)},
	}, s.opts)
	if err != nil {
		return nil, fmt.Errorf("medication reminder completion failed: %w", err)
	}

	confirmation, err := s.parser.ParseReminderConfirmation(raw)
	if err != nil {
		return nil, err
	}

	if s.logger != nil {
		s.logger.Info("medication reminder confirmed",
			zap.String("patient_id", reminder.PatientID),
			zap.String("medication", reminder.MedicationName),
			zap.Bool("success", confirmation.Success))
	}
	return confirmation, nil
}

func (s *Service) memberAppointment(ctx context.Context, appointmentID string, actor entities.Actor) (*entities.Appointment, error) {
	appointment, err := s.appointments.FindByID(ctx, appointmentID)
	if err != nil {
		if errors.Is(err, repositories.ErrRecordNotFound) {
			return nil, usecaseErrors.ErrAppointmentNotFound
		}
		return nil, fmt.Errorf("failed to load appointment: %w", err)
	}
	if !appointment.HasMember(actor.ID) {
		return nil, usecaseErrors.ErrNotAppointmentMember
	}
	return appointment, nil
}

// archiveTranscript uploads the transcript and returns its object name, or ""
// when there is no archive or the upload failed.
func (s *Service) archiveTranscript(ctx context.Context, appointmentID, transcript string) string {
	if s.archive == nil {
		return ""
	}
	objectName := fmt.Sprintf("transcripts/%s/%s.txt", appointmentID, time.Now().UTC().Format("20060102T150405Z"))
	if err := s.archive.UploadText(ctx, objectName, transcript); err != nil {
		if s.logger != nil {
			s.logger.Warn("failed to archive transcript",
				zap.String("appointment_id", appointmentID),
				zap.Error(err))
		}
		return ""
	}
	return objectName
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
