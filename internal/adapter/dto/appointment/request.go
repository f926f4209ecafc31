package appointment

import "github.com/johnquangdev/telehealth-assistant/internal/adapter/dto/common"

// ListAppointmentsRequest represents query parameters for listing appointments
type ListAppointmentsRequest struct {
	common.LimitRequest
}

// UpdateStatusRequest changes the status of an appointment
type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=scheduled upcoming completed cancelled"`
}

// SummarizeCallRequest carries the consultation transcript to summarize
type SummarizeCallRequest struct {
	Transcript string `json:"transcript" validate:"required,max=200000"`
}
