package appointment

import "time"

// AppointmentResponse represents an appointment in responses
type AppointmentResponse struct {
	ID              string    `json:"id"`
	PatientID       string    `json:"patient_id"`
	DoctorID        string    `json:"doctor_id"`
	AppointmentTime time.Time `json:"appointment_time"`
	Reason          string    `json:"reason,omitempty"`
	Status          string    `json:"status"`
	Type            string    `json:"type"`
	ChannelID       string    `json:"channel_id"`
	RTCRoomSID      *string   `json:"rtc_room_sid,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// AppointmentListResponse wraps a list of appointments
type AppointmentListResponse struct {
	Appointments []*AppointmentResponse `json:"appointments"`
	Count        int                    `json:"count"`
}

// CallSummaryResponse represents the AI summary of a consultation
type CallSummaryResponse struct {
	ID                string    `json:"id"`
	AppointmentID     string    `json:"appointment_id"`
	KeyPoints         []string  `json:"key_points"`
	SymptomsDiscussed []string  `json:"symptoms_discussed"`
	ActionItems       []string  `json:"action_items"`
	OverallSummary    string    `json:"overall_summary"`
	TranscriptURL     string    `json:"transcript_url,omitempty"`
	ModelUsed         string    `json:"model_used,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
}
