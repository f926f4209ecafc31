package entities

// MedicationReminder is a patient's request to be reminded of a dose
type MedicationReminder struct {
	PatientID      string `json:"patientId"`
	MedicationName string `json:"medicationName"`
	Dosage         string `json:"dosage"`
	Frequency      string `json:"frequency"`
	Time           string `json:"time"`
}

// ReminderConfirmation is the assistant's answer to a reminder request
type ReminderConfirmation struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
