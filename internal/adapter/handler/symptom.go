package handler

import (
	"context"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	symptomDTO "github.com/johnquangdev/telehealth-assistant/internal/adapter/dto/symptom"
	"github.com/johnquangdev/telehealth-assistant/internal/adapter/presenter"
	"github.com/johnquangdev/telehealth-assistant/internal/domain/entities"
)

// SymptomHistory reads logged symptoms
type SymptomHistory interface {
	ListForPatient(ctx context.Context, actor entities.Actor, patientID string, limit int) ([]*entities.SymptomReport, error)
}

// Symptom handles symptom history requests
type Symptom struct {
	symptoms SymptomHistory
	logger   *zap.Logger
}

func NewSymptomHandler(symptoms SymptomHistory, logger *zap.Logger) *Symptom {
	return &Symptom{symptoms: symptoms, logger: logger}
}

// List handles GET /symptoms
// @Summary      Symptom history
// @Description  Newest first. Doctors may pass patient_id to read a patient's history.
// @Tags         Symptoms
// @Produce      json
// @Security     BearerAuth
// @Param        patient_id  query     string  false  "Patient ID (doctors only)"
// @Param        limit       query     int     false  "Max results (1-100)"
// @Success      200         {object}  common.SuccessResponse{data=symptom.SymptomListResponse}
// @Failure      403         {object}  common.ErrorResponse
// @Router       /symptoms [get]
func (h *Symptom) List(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	var req symptomDTO.ListSymptomsRequest
	if err := bindAndValidate(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}

	items, err := h.symptoms.ListForPatient(c.Request().Context(), actor, req.PatientID, req.Limit)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, presenter.ToSymptomListResponse(items))
}
