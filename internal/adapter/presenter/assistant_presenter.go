package presenter

import (
	"github.com/samber/lo"

	"github.com/johnquangdev/telehealth-assistant/internal/adapter/dto/assistant"
	"github.com/johnquangdev/telehealth-assistant/internal/domain/entities"
	aiUsecase "github.com/johnquangdev/telehealth-assistant/internal/usecase/ai"
	assistantUsecase "github.com/johnquangdev/telehealth-assistant/internal/usecase/assistant"
)

// ToIntentResponse converts a classified intent to its DTO
func ToIntentResponse(i *entities.ClassifiedIntent) *assistant.IntentResponse {
	if i == nil {
		return nil
	}
	return &assistant.IntentResponse{
		Intent:     string(i.Intent),
		DateTime:   i.DateTime,
		Reason:     i.Reason,
		Symptom:    i.Symptom,
		Severity:   i.Severity,
		Confidence: i.Confidence,
	}
}

// ToCommandResponse converts a dispatch result. transcript is echoed back
// for audio commands only.
func ToCommandResponse(res *assistantUsecase.Result, transcript string) *assistant.CommandResponse {
	if res == nil {
		return &assistant.CommandResponse{Transcript: transcript}
	}
	return &assistant.CommandResponse{
		Intent:       ToIntentResponse(res.Intent),
		Confirmation: res.Confirmation,
		Transcript:   transcript,
		Appointment:  ToAppointmentResponse(res.Appointment),
		Symptom:      ToSymptomResponse(res.Symptom),
		Alert:        ToAlertResponse(res.Alert),
	}
}

// ToSymptomAnalysisResponse converts an analysis and the alert it raised
func ToSymptomAnalysisResponse(res *aiUsecase.SymptomAnalysisResult) *assistant.SymptomAnalysisResponse {
	if res == nil || res.Analysis == nil {
		return nil
	}
	return &assistant.SymptomAnalysisResponse{
		DiagnosisSuggestions: lo.Compact(nonNil(res.Analysis.DiagnosisSuggestions)),
		UrgencyLevel:         string(res.Analysis.UrgencyLevel),
		Recommendations:      lo.Compact(nonNil(res.Analysis.Recommendations)),
		Alert:                ToAlertResponse(res.Alert),
	}
}

// ToMedicationReminderResponse converts a reminder confirmation
func ToMedicationReminderResponse(medicationName string, res *entities.ReminderConfirmation) *assistant.MedicationReminderResponse {
	if res == nil {
		return nil
	}
	return &assistant.MedicationReminderResponse{
		MedicationName: medicationName,
		Success:        res.Success,
		Message:        res.Message,
	}
}
