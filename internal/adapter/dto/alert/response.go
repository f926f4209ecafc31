package alert

import "time"

// AlertResponse represents an emergency alert in responses and stream events
type AlertResponse struct {
	ID         string     `json:"id"`
	PatientID  string     `json:"patient_id"`
	Reason     string     `json:"reason"`
	Status     string     `json:"status"`
	Source     string     `json:"source"`
	Location   *string    `json:"location,omitempty"`
	ResolvedBy *string    `json:"resolved_by,omitempty"`
	ResolvedAt *time.Time `json:"resolved_at,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
}

// AlertListResponse wraps a list of alerts
type AlertListResponse struct {
	Alerts []*AlertResponse `json:"alerts"`
	Count  int              `json:"count"`
}
