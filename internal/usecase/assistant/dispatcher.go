package assistant

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/johnquangdev/telehealth-assistant/internal/domain/entities"
)

// Spoken confirmations
const (
	MsgAppointmentConfirmed = "Your appointment is confirmed for "
	MsgSymptomLogged        = "Your symptom has been logged"
	MsgEmergencySent        = "Emergency alert sent"
	MsgShowSchedule         = "Check your upcoming appointments"
	MsgNotUnderstood        = "Command not understood"

	confirmationLayout = "Jan 2, 2006, 3:04 PM"
	speakTimeout       = 5 * time.Second
)

// IntentClassifier turns a transcript into a structured intent
type IntentClassifier interface {
	Classify(ctx context.Context, transcript string, anchor time.Time) (*entities.ClassifiedIntent, error)
}

// AppointmentWriter persists booked appointments
type AppointmentWriter interface {
	Create(ctx context.Context, appointment *entities.Appointment) error
}

// SymptomWriter persists symptom reports
type SymptomWriter interface {
	Create(ctx context.Context, report *entities.SymptomReport) error
}

// AlertWriter persists emergency alerts
type AlertWriter interface {
	Create(ctx context.Context, alert *entities.EmergencyAlert) error
}

// Speaker delivers a confirmation to the caller's speech output
type Speaker interface {
	Speak(ctx context.Context, callerID, text string) error
}

// Command is one voice command to dispatch
type Command struct {
	Transcript string
	CallerID   string
	// Anchor is the instant relative phrases resolve against; zero means now
	Anchor time.Time
}

// Result describes what a dispatch did. Record fields are nil when nothing
// of that kind was written.
type Result struct {
	Intent       *entities.ClassifiedIntent
	Confirmation string
	Appointment  *entities.Appointment
	Symptom      *entities.SymptomReport
	Alert        *entities.EmergencyAlert
}

// Dispatcher classifies a command and performs the matching action
type Dispatcher struct {
	classifier   IntentClassifier
	appointments AppointmentWriter
	symptoms     SymptomWriter
	alerts       AlertWriter
	policy       WritePolicy
	speaker      Speaker
	doctorID     string
	logger       *zap.Logger
	now          func() time.Time
}

func NewDispatcher(
	classifier IntentClassifier,
	appointments AppointmentWriter,
	symptoms SymptomWriter,
	alerts AlertWriter,
	policy WritePolicy,
	speaker Speaker,
	doctorID string,
	logger *zap.Logger,
) *Dispatcher {
	if policy == nil {
		policy = AtMostOnceNoRetry{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Dispatcher{
		classifier:   classifier,
		appointments: appointments,
		symptoms:     symptoms,
		alerts:       alerts,
		policy:       policy,
		speaker:      speaker,
		doctorID:     doctorID,
		logger:       logger,
		now:          time.Now,
	}
}

// Dispatch runs one command end to end. Each call that reaches a write creates
// new records; repeated commands are not deduplicated.
//
// On *IncompleteSlotError and on a *PersistenceError raised by the escalation
// alert, the returned Result is non-nil and describes what was done.
// Writes are not cancelled when ctx is.
func (d *Dispatcher) Dispatch(ctx context.Context, cmd Command) (*Result, error) {
	if strings.TrimSpace(cmd.Transcript) == "" {
		return nil, ErrEmptyTranscript
	}
	if cmd.CallerID == "" {
		return nil, ErrMissingCaller
	}
	anchor := cmd.Anchor
	if anchor.IsZero() {
		anchor = d.now()
	}

	intent, err := d.classifier.Classify(ctx, cmd.Transcript, anchor)
	if err != nil {
		return nil, err
	}

	writeCtx := context.WithoutCancel(ctx)
	res := &Result{Intent: intent}
	log := d.logger.With(
		zap.String("caller_id", cmd.CallerID),
		zap.String("intent", string(intent.Intent)))

	switch intent.Intent {
	case entities.IntentBookAppointment:
		err = d.bookAppointment(writeCtx, cmd.CallerID, intent, anchor, res)
	case entities.IntentReportSymptom:
		err = d.reportSymptom(writeCtx, cmd.CallerID, cmd.Transcript, intent, res)
	case entities.IntentEmergency:
		err = d.raiseEmergency(writeCtx, cmd.CallerID, cmd.Transcript, intent, res)
	case entities.IntentShowSchedule:
		res.Confirmation = MsgShowSchedule
	default:
		res.Confirmation = MsgNotUnderstood
	}

	if err != nil {
		log.Warn("voice command not completed", zap.Error(err))
	} else {
		log.Info("voice command dispatched", zap.String("confirmation", res.Confirmation))
	}

	if res.Confirmation != "" {
		d.speak(ctx, cmd.CallerID, res.Confirmation)
	}
	if err != nil {
		if res.Confirmation == "" {
			return nil, err
		}
		return res, err
	}
	return res, nil
}

func (d *Dispatcher) bookAppointment(ctx context.Context, callerID string, intent *entities.ClassifiedIntent, anchor time.Time, res *Result) error {
	when, ok := ParseDateTime(intent.DateTime, anchor)
	if !ok || when.Before(anchor) {
		res.Confirmation = MsgAppointmentIncomplete
		return &IncompleteSlotError{
			Intent:      intent.Intent,
			Slot:        "dateTime",
			UserMessage: MsgAppointmentIncomplete,
		}
	}

	appointment := &entities.Appointment{
		PatientID:       callerID,
		DoctorID:        d.doctorID,
		AppointmentTime: when,
		Reason:          intent.Reason,
		Status:          entities.AppointmentStatusUpcoming,
		Type:            entities.AppointmentTypeVirtual,
		ChannelID:       "appt-" + uuid.NewString(),
	}
	if err := d.policy.Execute(ctx, func(ctx context.Context) error {
		return d.appointments.Create(ctx, appointment)
	}); err != nil {
		return &PersistenceError{Record: "appointment", Err: err}
	}

	res.Appointment = appointment
	res.Confirmation = MsgAppointmentConfirmed + when.Format(confirmationLayout)
	return nil
}

func (d *Dispatcher) reportSymptom(ctx context.Context, callerID, transcript string, intent *entities.ClassifiedIntent, res *Result) error {
	if intent.Symptom == "" {
		res.Confirmation = MsgSymptomIncomplete
		return &IncompleteSlotError{
			Intent:      intent.Intent,
			Slot:        "symptom",
			UserMessage: MsgSymptomIncomplete,
		}
	}

	severity := entities.ParseSeverity(intent.Severity)
	report := &entities.SymptomReport{
		PatientID:  callerID,
		Symptom:    intent.Symptom,
		Severity:   severity,
		Transcript: transcript,
	}
	if err := d.policy.Execute(ctx, func(ctx context.Context) error {
		return d.symptoms.Create(ctx, report)
	}); err != nil {
		return &PersistenceError{Record: "symptom report", Err: err}
	}
	res.Symptom = report
	res.Confirmation = MsgSymptomLogged

	if !severity.IsHigh() {
		return nil
	}

	alert := &entities.EmergencyAlert{
		PatientID: callerID,
		Reason:    intent.Symptom,
		Status:    entities.AlertStatusActive,
		Source:    entities.AlertSourceSymptomEscalation,
	}
	if err := d.policy.Execute(ctx, func(ctx context.Context) error {
		return d.alerts.Create(ctx, alert)
	}); err != nil {
		return &PersistenceError{Record: "escalation alert", Err: err}
	}
	res.Alert = alert
	return nil
}

func (d *Dispatcher) raiseEmergency(ctx context.Context, callerID, transcript string, intent *entities.ClassifiedIntent, res *Result) error {
	reason := intent.Reason
	if reason == "" {
		reason = intent.Symptom
	}
	if reason == "" {
		reason = strings.TrimSpace(transcript)
	}

	alert := &entities.EmergencyAlert{
		PatientID: callerID,
		Reason:    reason,
		Status:    entities.AlertStatusActive,
		Source:    entities.AlertSourceVoice,
	}
	if err := d.policy.Execute(ctx, func(ctx context.Context) error {
		return d.alerts.Create(ctx, alert)
	}); err != nil {
		return &PersistenceError{Record: "emergency alert", Err: err}
	}

	res.Alert = alert
	res.Confirmation = MsgEmergencySent
	return nil
}

// speak hands the confirmation off without waiting; failures are only logged
func (d *Dispatcher) speak(ctx context.Context, callerID, text string) {
	if d.speaker == nil {
		return
	}
	go func() {
		speakCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), speakTimeout)
		defer cancel()
		if err := d.speaker.Speak(speakCtx, callerID, text); err != nil {
			d.logger.Warn("failed to speak confirmation",
				zap.String("caller_id", callerID),
				zap.Error(err))
		}
	}()
}
