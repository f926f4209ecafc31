package presenter

import (
	"github.com/samber/lo"

	"github.com/johnquangdev/telehealth-assistant/internal/adapter/dto/symptom"
	"github.com/johnquangdev/telehealth-assistant/internal/domain/entities"
)

func ToSymptomResponse(s *entities.SymptomReport) *symptom.SymptomResponse {
	if s == nil {
		return nil
	}
	return &symptom.SymptomResponse{
		ID:         s.ID,
		PatientID:  s.PatientID,
		Symptom:    s.Symptom,
		Severity:   string(s.Severity),
		Transcript: s.Transcript,
		CreatedAt:  s.CreatedAt,
	}
}

func ToSymptomListResponse(items []*entities.SymptomReport) *symptom.SymptomListResponse {
	out := lo.Map(items, func(s *entities.SymptomReport, _ int) *symptom.SymptomResponse {
		return ToSymptomResponse(s)
	})
	return &symptom.SymptomListResponse{Symptoms: out, Count: len(out)}
}
