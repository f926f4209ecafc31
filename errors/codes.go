package errors

import "strconv"

// ErrorCode is the machine-readable code carried by AppError
type ErrorCode int32

const (
	ErrorCode_HTTP_OK ErrorCode = 0

	// General
	ErrorCode_INTERNAL         ErrorCode = 1000
	ErrorCode_INVALID_ARGUMENT ErrorCode = 1001
	ErrorCode_NOT_FOUND        ErrorCode = 1002
	ErrorCode_UNAUTHENTICATED  ErrorCode = 1005
	ErrorCode_FORBIDDEN        ErrorCode = 1006
	ErrorCode_INVALID_PAYLOAD  ErrorCode = 1007

	// Auth
	ErrorCode_AUTH_INVALID_SIGNATURE ErrorCode = 2002

	// Assistant pipeline
	ErrorCode_ASSISTANT_EMPTY_TRANSCRIPT   ErrorCode = 3000
	ErrorCode_ASSISTANT_CLASSIFICATION     ErrorCode = 3001
	ErrorCode_ASSISTANT_INCOMPLETE_SLOT    ErrorCode = 3002
	ErrorCode_ASSISTANT_PERSISTENCE        ErrorCode = 3003
	ErrorCode_ASSISTANT_TRANSCRIPTION      ErrorCode = 3004
	ErrorCode_ASSISTANT_CLASSIFIER_TIMEOUT ErrorCode = 3005

	// Appointments
	ErrorCode_APPOINTMENT_NOT_FOUND          ErrorCode = 4000
	ErrorCode_APPOINTMENT_INVALID_TRANSITION ErrorCode = 4001
	ErrorCode_APPOINTMENT_ACCESS_DENIED      ErrorCode = 4002

	// Alerts
	ErrorCode_ALERT_NOT_FOUND        ErrorCode = 5000
	ErrorCode_ALERT_ALREADY_RESOLVED ErrorCode = 5001

	// AI
	ErrorCode_AI_ANALYSIS_FAILED     ErrorCode = 6000
	ErrorCode_AI_SUMMARY_FAILED      ErrorCode = 6001
	ErrorCode_AI_SERVICE_UNAVAILABLE ErrorCode = 6002
	ErrorCode_AI_SUMMARY_NOT_FOUND   ErrorCode = 6003
	ErrorCode_AI_REMINDER_FAILED     ErrorCode = 6004

	// Integrations
	ErrorCode_INTEGRATION_LIVEKIT_FAILED ErrorCode = 7000
)

var errorCodeNames = map[ErrorCode]string{
	ErrorCode_HTTP_OK:                        "HTTP_OK",
	ErrorCode_INTERNAL:                       "INTERNAL",
	ErrorCode_INVALID_ARGUMENT:               "INVALID_ARGUMENT",
	ErrorCode_NOT_FOUND:                      "NOT_FOUND",
	ErrorCode_UNAUTHENTICATED:                "UNAUTHENTICATED",
	ErrorCode_FORBIDDEN:                      "FORBIDDEN",
	ErrorCode_INVALID_PAYLOAD:                "INVALID_PAYLOAD",
	ErrorCode_AUTH_INVALID_SIGNATURE:         "AUTH_INVALID_SIGNATURE",
	ErrorCode_ASSISTANT_EMPTY_TRANSCRIPT:     "ASSISTANT_EMPTY_TRANSCRIPT",
	ErrorCode_ASSISTANT_CLASSIFICATION:       "ASSISTANT_CLASSIFICATION",
	ErrorCode_ASSISTANT_INCOMPLETE_SLOT:      "ASSISTANT_INCOMPLETE_SLOT",
	ErrorCode_ASSISTANT_PERSISTENCE:          "ASSISTANT_PERSISTENCE",
	ErrorCode_ASSISTANT_TRANSCRIPTION:        "ASSISTANT_TRANSCRIPTION",
	ErrorCode_ASSISTANT_CLASSIFIER_TIMEOUT:   "ASSISTANT_CLASSIFIER_TIMEOUT",
	ErrorCode_APPOINTMENT_NOT_FOUND:          "APPOINTMENT_NOT_FOUND",
	ErrorCode_APPOINTMENT_INVALID_TRANSITION: "APPOINTMENT_INVALID_TRANSITION",
	ErrorCode_APPOINTMENT_ACCESS_DENIED:      "APPOINTMENT_ACCESS_DENIED",
	ErrorCode_ALERT_NOT_FOUND:                "ALERT_NOT_FOUND",
	ErrorCode_ALERT_ALREADY_RESOLVED:         "ALERT_ALREADY_RESOLVED",
	ErrorCode_AI_ANALYSIS_FAILED:             "AI_ANALYSIS_FAILED",
	ErrorCode_AI_SUMMARY_FAILED:              "AI_SUMMARY_FAILED",
	ErrorCode_AI_SERVICE_UNAVAILABLE:         "AI_SERVICE_UNAVAILABLE",
	ErrorCode_AI_SUMMARY_NOT_FOUND:           "AI_SUMMARY_NOT_FOUND",
	ErrorCode_AI_REMINDER_FAILED:             "AI_REMINDER_FAILED",
	ErrorCode_INTEGRATION_LIVEKIT_FAILED:     "INTEGRATION_LIVEKIT_FAILED",
}

func (c ErrorCode) String() string {
	if name, ok := errorCodeNames[c]; ok {
		return name
	}
	return "ErrorCode(" + strconv.Itoa(int(c)) + ")"
}
