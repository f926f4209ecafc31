package presenter

import (
	"github.com/samber/lo"

	"github.com/johnquangdev/telehealth-assistant/internal/adapter/dto/alert"
	"github.com/johnquangdev/telehealth-assistant/internal/domain/entities"
)

// ToAlertResponse converts an EmergencyAlert entity to its DTO
func ToAlertResponse(a *entities.EmergencyAlert) *alert.AlertResponse {
	if a == nil {
		return nil
	}
	return &alert.AlertResponse{
		ID:         a.ID,
		PatientID:  a.PatientID,
		Reason:     a.Reason,
		Status:     string(a.Status),
		Source:     string(a.Source),
		Location:   a.Location,
		ResolvedBy: a.ResolvedBy,
		ResolvedAt: a.ResolvedAt,
		CreatedAt:  a.CreatedAt,
	}
}

// ToAlertListResponse converts a slice of alerts
func ToAlertListResponse(items []*entities.EmergencyAlert) *alert.AlertListResponse {
	out := lo.Map(items, func(a *entities.EmergencyAlert, _ int) *alert.AlertResponse {
		return ToAlertResponse(a)
	})
	return &alert.AlertListResponse{Alerts: out, Count: len(out)}
}
