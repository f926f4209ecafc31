package presenter

import (
	"github.com/samber/lo"

	"github.com/johnquangdev/telehealth-assistant/internal/adapter/dto/appointment"
	"github.com/johnquangdev/telehealth-assistant/internal/domain/entities"
	aiUsecase "github.com/johnquangdev/telehealth-assistant/internal/usecase/ai"
)

// ToAppointmentResponse converts an Appointment entity to its DTO
func ToAppointmentResponse(a *entities.Appointment) *appointment.AppointmentResponse {
	if a == nil {
		return nil
	}
	return &appointment.AppointmentResponse{
		ID:              a.ID,
		PatientID:       a.PatientID,
		DoctorID:        a.DoctorID,
		AppointmentTime: a.AppointmentTime,
		Reason:          a.Reason,
		Status:          string(a.Status),
		Type:            string(a.Type),
		ChannelID:       a.ChannelID,
		RTCRoomSID:      a.RTCRoomSID,
		CreatedAt:       a.CreatedAt,
		UpdatedAt:       a.UpdatedAt,
	}
}

// ToAppointmentListResponse converts a slice of appointments
func ToAppointmentListResponse(items []*entities.Appointment) *appointment.AppointmentListResponse {
	out := lo.Map(items, func(a *entities.Appointment, _ int) *appointment.AppointmentResponse {
		return ToAppointmentResponse(a)
	})
	return &appointment.AppointmentListResponse{Appointments: out, Count: len(out)}
}

// ToCallSummaryResponse converts a stored summary and its transcript link
func ToCallSummaryResponse(view *aiUsecase.SummaryView) *appointment.CallSummaryResponse {
	if view == nil || view.Summary == nil {
		return nil
	}
	s := view.Summary
	return &appointment.CallSummaryResponse{
		ID:                s.ID,
		AppointmentID:     s.AppointmentID,
		KeyPoints:         nonNil(s.KeyPoints),
		SymptomsDiscussed: nonNil(s.SymptomsDiscussed),
		ActionItems:       nonNil(s.ActionItems),
		OverallSummary:    s.OverallSummary,
		TranscriptURL:     view.TranscriptURL,
		ModelUsed:         s.ModelUsed,
		CreatedAt:         s.CreatedAt,
	}
}

func nonNil(items []string) []string {
	if items == nil {
		return []string{}
	}
	return items
}
