package errors

import (
	"fmt"
	"net/http"
	"time"
)

// AppError is the error shape returned to HTTP clients
type AppError struct {
	Raw       error
	HTTPCode  int
	Code      ErrorCode
	Message   string
	Details   map[string]string
	Timestamp time.Time
}

// Error implements error interface
func (e AppError) Error() string {
	if e.Raw != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code.String(), e.Message, e.Raw)
	}
	return fmt.Sprintf("[%s] %s", e.Code.String(), e.Message)
}

// Unwrap exposes the underlying error to errors.Is / errors.As
func (e AppError) Unwrap() error {
	return e.Raw
}

// WithDetail adds a detail to the error
func (e AppError) WithDetail(key, value string) AppError {
	if e.Details == nil {
		e.Details = make(map[string]string)
	}
	e.Details[key] = value
	return e
}

// General Errors
func ErrInternal(err error) AppError {
	return AppError{
		Raw:      err,
		HTTPCode: http.StatusInternalServerError,
		Code:     ErrorCode_INTERNAL,
		Message:  "Internal server error",
	}
}

func ErrInvalidArgument(message string) AppError {
	return AppError{
		HTTPCode: http.StatusBadRequest,
		Code:     ErrorCode_INVALID_ARGUMENT,
		Message:  message,
	}
}

func ErrNotFound(resource string) AppError {
	return AppError{
		HTTPCode: http.StatusNotFound,
		Code:     ErrorCode_NOT_FOUND,
		Message:  fmt.Sprintf("%s not found", resource),
	}
}

func ErrUnauthenticated() AppError {
	return AppError{
		HTTPCode: http.StatusUnauthorized,
		Code:     ErrorCode_UNAUTHENTICATED,
		Message:  "Authentication required",
	}
}

func ErrForbidden(message string) AppError {
	return AppError{
		HTTPCode: http.StatusForbidden,
		Code:     ErrorCode_FORBIDDEN,
		Message:  message,
	}
}

func ErrInvalidPayload() AppError {
	return AppError{
		HTTPCode: http.StatusBadRequest,
		Code:     ErrorCode_INVALID_PAYLOAD,
		Message:  "Invalid payload",
	}
}

func ErrInvalidSignature(source string) AppError {
	return AppError{
		HTTPCode: http.StatusUnauthorized,
		Code:     ErrorCode_AUTH_INVALID_SIGNATURE,
		Message:  "Invalid webhook signature",
	}.WithDetail("source", source)
}

// Assistant pipeline errors
func ErrEmptyTranscript() AppError {
	return AppError{
		HTTPCode: http.StatusBadRequest,
		Code:     ErrorCode_ASSISTANT_EMPTY_TRANSCRIPT,
		Message:  "Transcript is required",
	}
}

func ErrClassificationFailed(err error) AppError {
	return AppError{
		Raw:      err,
		HTTPCode: http.StatusBadGateway,
		Code:     ErrorCode_ASSISTANT_CLASSIFICATION,
		Message:  "Could not classify the command",
	}
}

func ErrClassifierTimeout(err error) AppError {
	return AppError{
		Raw:      err,
		HTTPCode: http.StatusGatewayTimeout,
		Code:     ErrorCode_ASSISTANT_CLASSIFIER_TIMEOUT,
		Message:  "Intent classification timed out",
	}
}

// ErrIncompleteSlot carries the user-facing message in Message
func ErrIncompleteSlot(userMessage, slot string) AppError {
	return AppError{
		HTTPCode: http.StatusUnprocessableEntity,
		Code:     ErrorCode_ASSISTANT_INCOMPLETE_SLOT,
		Message:  userMessage,
	}.WithDetail("slot", slot)
}

func ErrPersistenceFailed(record string, err error) AppError {
	return AppError{
		Raw:      err,
		HTTPCode: http.StatusInternalServerError,
		Code:     ErrorCode_ASSISTANT_PERSISTENCE,
		Message:  "Failed to save the request",
	}.WithDetail("record", record)
}

func ErrTranscriptionFailed(err error) AppError {
	return AppError{
		Raw:      err,
		HTTPCode: http.StatusBadGateway,
		Code:     ErrorCode_ASSISTANT_TRANSCRIPTION,
		Message:  "Audio transcription failed",
	}
}

// Appointment errors
func ErrAppointmentNotFound(appointmentID string) AppError {
	return AppError{
		HTTPCode: http.StatusNotFound,
		Code:     ErrorCode_APPOINTMENT_NOT_FOUND,
		Message:  "Appointment not found",
	}.WithDetail("appointment_id", appointmentID)
}

func ErrAppointmentInvalidTransition(appointmentID string, err error) AppError {
	return AppError{
		Raw:      err,
		HTTPCode: http.StatusConflict,
		Code:     ErrorCode_APPOINTMENT_INVALID_TRANSITION,
		Message:  "Appointment status cannot change",
	}.WithDetail("appointment_id", appointmentID)
}

func ErrAppointmentAccessDenied(appointmentID string) AppError {
	return AppError{
		HTTPCode: http.StatusForbidden,
		Code:     ErrorCode_APPOINTMENT_ACCESS_DENIED,
		Message:  "Access to appointment denied",
	}.WithDetail("appointment_id", appointmentID)
}

// Alert errors
func ErrAlertNotFound(alertID string) AppError {
	return AppError{
		HTTPCode: http.StatusNotFound,
		Code:     ErrorCode_ALERT_NOT_FOUND,
		Message:  "Emergency alert not found",
	}.WithDetail("alert_id", alertID)
}

func ErrAlertAlreadyResolved(alertID string) AppError {
	return AppError{
		HTTPCode: http.StatusConflict,
		Code:     ErrorCode_ALERT_ALREADY_RESOLVED,
		Message:  "Emergency alert already resolved",
	}.WithDetail("alert_id", alertID)
}

// AI Analysis Errors
func ErrAIAnalysisFailed(err error) AppError {
	return AppError{
		Raw:      err,
		HTTPCode: http.StatusInternalServerError,
		Code:     ErrorCode_AI_ANALYSIS_FAILED,
		Message:  "AI analysis failed",
	}
}

func ErrAISummaryFailed(err error) AppError {
	return AppError{
		Raw:      err,
		HTTPCode: http.StatusInternalServerError,
		Code:     ErrorCode_AI_SUMMARY_FAILED,
		Message:  "Failed to generate summary",
	}
}

func ErrAIReminderFailed(err error) AppError {
	return AppError{
		Raw:      err,
		HTTPCode: http.StatusInternalServerError,
		Code:     ErrorCode_AI_REMINDER_FAILED,
		Message:  "Failed to set medication reminder",
	}
}

func ErrAISummaryNotFound(appointmentID string) AppError {
	return AppError{
		HTTPCode: http.StatusNotFound,
		Code:     ErrorCode_AI_SUMMARY_NOT_FOUND,
		Message:  "Call summary not found",
	}.WithDetail("appointment_id", appointmentID)
}

func ErrAIServiceUnavailable(service string) AppError {
	return AppError{
		HTTPCode: http.StatusServiceUnavailable,
		Code:     ErrorCode_AI_SERVICE_UNAVAILABLE,
		Message:  "AI service temporarily unavailable",
	}.WithDetail("service", service)
}

// Integration Errors
func ErrLiveKitFailed(operation string, err error) AppError {
	return AppError{
		Raw:      err,
		HTTPCode: http.StatusInternalServerError,
		Code:     ErrorCode_INTEGRATION_LIVEKIT_FAILED,
		Message:  fmt.Sprintf("LiveKit operation failed: %s", operation),
	}
}
