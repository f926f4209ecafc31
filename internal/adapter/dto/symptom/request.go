package symptom

import "github.com/johnquangdev/telehealth-assistant/internal/adapter/dto/common"

// ListSymptomsRequest represents query parameters for symptom history.
// PatientID is only honoured for doctors.
type ListSymptomsRequest struct {
	PatientID string `query:"patient_id" validate:"omitempty,max=128"`
	common.LimitRequest
}
