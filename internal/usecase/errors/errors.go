package errors

import "errors"

// Common errors
var (
	ErrInvalidInput = errors.New("invalid input")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden access")
	ErrNotFound     = errors.New("resource not found")
)

// Appointment errors
var (
	ErrAppointmentNotFound  = errors.New("appointment not found")
	ErrInvalidStatus        = errors.New("invalid appointment status")
	ErrInvalidTransition    = errors.New("appointment status transition not allowed")
	ErrAppointmentClosed    = errors.New("appointment is completed or cancelled")
	ErrNotAppointmentMember = errors.New("user is neither patient nor doctor of this appointment")
	ErrNoChannelForRoom     = errors.New("no appointment uses this room")
)

// Alert errors
var (
	ErrAlertNotFound        = errors.New("emergency alert not found")
	ErrAlertAlreadyResolved = errors.New("emergency alert already resolved")
)

// Call summary errors
var (
	ErrSummaryNotFound     = errors.New("call summary not found")
	ErrEmptyCallTranscript = errors.New("call transcript is empty")
)

// LiveKit errors
var (
	ErrLivekitRoom = errors.New("LiveKit room error")
)
