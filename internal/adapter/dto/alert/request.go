package alert

import "github.com/johnquangdev/telehealth-assistant/internal/adapter/dto/common"

// ListAlertsRequest represents query parameters for the active alert queue
type ListAlertsRequest struct {
	common.LimitRequest
}

// RaiseAlertRequest is sent by the emergency button
type RaiseAlertRequest struct {
	Reason   string  `json:"reason" validate:"max=500"`
	Location *string `json:"location,omitempty" validate:"omitempty,max=255"`
}
