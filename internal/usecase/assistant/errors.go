package assistant

import (
	"errors"
	"fmt"

	"github.com/johnquangdev/telehealth-assistant/internal/domain/entities"
)

// User facing messages for commands that cannot be carried out
const (
	MsgAppointmentIncomplete = "Could not understand the appointment details"
	MsgSymptomIncomplete     = "Could not understand the symptom details"
)

var (
	// ErrEmptyTranscript is returned before any classifier call
	ErrEmptyTranscript = errors.New("transcript is empty")
	// ErrMissingCaller is returned when a command has no caller identity
	ErrMissingCaller = errors.New("caller id is required")
)

// FailureKind tells apart why a classification failed
type FailureKind string

const (
	FailureTransport FailureKind = "transport"
	FailureTimeout   FailureKind = "timeout"
	FailureMalformed FailureKind = "malformed"
)

// ClassificationError means no intent could be obtained from the LLM.
// No record is written when it is returned.
type ClassificationError struct {
	Kind FailureKind
	Err  error
}

func (e *ClassificationError) Error() string {
	return fmt.Sprintf("intent classification failed (%s): %v", e.Kind, e.Err)
}

func (e *ClassificationError) Unwrap() error {
	return e.Err
}

// IncompleteSlotError means the intent was recognized but a required slot
// was missing or unusable. No record is written.
type IncompleteSlotError struct {
	Intent      entities.Intent
	Slot        string
	UserMessage string
}

func (e *IncompleteSlotError) Error() string {
	return fmt.Sprintf("%s: missing or invalid %s", e.Intent, e.Slot)
}

// PersistenceError means a record write failed. Earlier writes of the same
// dispatch are not rolled back.
type PersistenceError struct {
	Record string
	Err    error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("failed to save %s: %v", e.Record, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}
