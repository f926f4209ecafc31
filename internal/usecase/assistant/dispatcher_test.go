package assistant

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/johnquangdev/telehealth-assistant/internal/domain/entities"
	"github.com/johnquangdev/telehealth-assistant/pkg/ai"
)

const patientID = "patient-1"

func newTestDispatcher(classifier IntentClassifier, store *memoryStore, policy WritePolicy, speaker Speaker) *Dispatcher {
	return NewDispatcher(
		classifier,
		appointmentStore{store},
		symptomStore{store},
		alertStore{store},
		policy,
		speaker,
		"dr-demo-id",
		nil,
	)
}

func expectSpoken(t *testing.T, s *chanSpeaker) spoken {
	t.Helper()
	select {
	case got := <-s.out:
		return got
	case <-time.After(time.Second):
		t.Fatal("confirmation was not spoken")
		return spoken{}
	}
}

func TestDispatch_BookAppointmentEndToEnd(t *testing.T) {
	anchor := mustTime(t, "2024-03-10T09:00:00Z")
	transcript := "Book an appointment for tomorrow at 4 PM for my cough"

	replies := map[string]string{
		"absolute":  `{"intent":"bookAppointment","dateTime":"2024-03-11T16:00:00Z","reason":"cough"}`,
		"relative":  `{"intent":"bookAppointment","dateTime":"tomorrow at 4 PM","reason":"cough"}`,
		"no offset": `{"intent":"bookAppointment","dateTime":"2024-03-11T16:00:00","reason":"cough"}`,
	}

	for name, reply := range replies {
		t.Run(name, func(t *testing.T) {
			store := &memoryStore{}
			speaker := newChanSpeaker()
			classifier := NewClassifier(&fakeLLM{reply: reply}, entities.ProfileFull, ai.CompletionOptions{}, nil)
			d := newTestDispatcher(classifier, store, nil, speaker)

			res, err := d.Dispatch(context.Background(), Command{
				Transcript: transcript,
				CallerID:   patientID,
				Anchor:     anchor,
			})

			require.NoError(t, err)
			assert.Equal(t, "Your appointment is confirmed for Mar 11, 2024, 4:00 PM", res.Confirmation)

			require.Len(t, store.appointments, 1)
			appt := store.appointments[0]
			assert.Same(t, appt, res.Appointment)
			assert.Equal(t, patientID, appt.PatientID)
			assert.Equal(t, "dr-demo-id", appt.DoctorID)
			assert.Equal(t, "cough", appt.Reason)
			assert.Equal(t, entities.AppointmentStatusUpcoming, appt.Status)
			assert.Equal(t, entities.AppointmentTypeVirtual, appt.Type)
			assert.True(t, appt.AppointmentTime.Equal(mustTime(t, "2024-03-11T16:00:00Z")))
			assert.Regexp(t, `^appt-[0-9a-f-]{36}$`, appt.ChannelID)
			assert.Empty(t, store.symptoms)
			assert.Empty(t, store.alerts)

			got := expectSpoken(t, speaker)
			assert.Equal(t, patientID, got.callerID)
			assert.Equal(t, res.Confirmation, got.text)
		})
	}
}

func TestDispatch_ConfirmationUsesParsedLocation(t *testing.T) {
	anchor := mustTime(t, "2024-03-10T09:00:00Z")
	store := &memoryStore{}
	classifier := &fakeClassifier{intent: &entities.ClassifiedIntent{
		Intent:   entities.IntentBookAppointment,
		DateTime: "2024-03-11T16:00:00-05:00",
	}}
	d := newTestDispatcher(classifier, store, nil, nil)

	res, err := d.Dispatch(context.Background(), Command{Transcript: "book", CallerID: patientID, Anchor: anchor})

	require.NoError(t, err)
	assert.Equal(t, "Your appointment is confirmed for Mar 11, 2024, 4:00 PM", res.Confirmation)
}

func TestDispatch_BookingIncomplete(t *testing.T) {
	anchor := mustTime(t, "2024-03-10T09:00:00Z")

	tests := []struct {
		name     string
		dateTime string
	}{
		{"missing", ""},
		{"unparseable", "whenever the doctor is free"},
		{"in the past", "2024-03-09T16:00:00Z"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &memoryStore{}
			speaker := newChanSpeaker()
			classifier := &fakeClassifier{intent: &entities.ClassifiedIntent{
				Intent:   entities.IntentBookAppointment,
				DateTime: tt.dateTime,
			}}
			d := newTestDispatcher(classifier, store, nil, speaker)

			res, err := d.Dispatch(context.Background(), Command{Transcript: "book please", CallerID: patientID, Anchor: anchor})

			var slotErr *IncompleteSlotError
			require.ErrorAs(t, err, &slotErr)
			assert.Equal(t, "dateTime", slotErr.Slot)
			assert.Equal(t, MsgAppointmentIncomplete, slotErr.UserMessage)
			require.NotNil(t, res)
			assert.Equal(t, MsgAppointmentIncomplete, res.Confirmation)
			assert.Nil(t, res.Appointment)
			assert.Zero(t, store.writes())
			assert.Equal(t, MsgAppointmentIncomplete, expectSpoken(t, speaker).text)
		})
	}
}

func TestDispatch_Emergency(t *testing.T) {
	store := &memoryStore{}
	speaker := newChanSpeaker()
	llm := &fakeLLM{reply: `{"intent":"emergency","reason":"fell and cannot get up"}`}
	classifier := NewClassifier(llm, entities.ProfileFull, ai.CompletionOptions{}, nil)
	d := newTestDispatcher(classifier, store, nil, speaker)

	res, err := d.Dispatch(context.Background(), Command{
		Transcript: "Help, I've fallen and I can't get up",
		CallerID:   patientID,
	})

	require.NoError(t, err)
	require.Len(t, store.alerts, 1)
	alert := store.alerts[0]
	assert.Equal(t, entities.AlertStatusActive, alert.Status)
	assert.Equal(t, entities.AlertSourceVoice, alert.Source)
	assert.Equal(t, "fell and cannot get up", alert.Reason)
	assert.Equal(t, patientID, alert.PatientID)
	assert.Contains(t, res.Confirmation, "Emergency")
	assert.Empty(t, store.appointments)
	assert.Empty(t, store.symptoms)
	expectSpoken(t, speaker)
}

func TestDispatch_EmergencyReasonFallsBackToTranscript(t *testing.T) {
	store := &memoryStore{}
	classifier := &fakeClassifier{intent: &entities.ClassifiedIntent{Intent: entities.IntentEmergency}}
	d := newTestDispatcher(classifier, store, nil, nil)

	_, err := d.Dispatch(context.Background(), Command{Transcript: " Help me now ", CallerID: patientID})

	require.NoError(t, err)
	require.Len(t, store.alerts, 1)
	assert.Equal(t, "Help me now", store.alerts[0].Reason)
}

func TestDispatch_IsNotIdempotent(t *testing.T) {
	anchor := mustTime(t, "2024-03-10T09:00:00Z")
	store := &memoryStore{}
	classifier := &fakeClassifier{intent: &entities.ClassifiedIntent{
		Intent:   entities.IntentBookAppointment,
		DateTime: "2024-03-11T16:00:00Z",
	}}
	d := newTestDispatcher(classifier, store, nil, nil)
	cmd := Command{Transcript: "book tomorrow at 4 pm", CallerID: patientID, Anchor: anchor}

	first, err := d.Dispatch(context.Background(), cmd)
	require.NoError(t, err)
	second, err := d.Dispatch(context.Background(), cmd)
	require.NoError(t, err)

	require.Len(t, store.appointments, 2)
	assert.NotEqual(t, first.Appointment.ID, second.Appointment.ID)
	assert.NotEqual(t, first.Appointment.ChannelID, second.Appointment.ChannelID)
}

func TestDispatch_ReportSymptom(t *testing.T) {
	tests := []struct {
		name         string
		severity     string
		wantSeverity entities.Severity
		wantAlert    bool
	}{
		{"high escalates", "high", entities.SeverityHigh, true},
		{"upper case high escalates", "HIGH", entities.SeverityHigh, true},
		{"mixed case high escalates", "High", entities.SeverityHigh, true},
		{"low", "low", entities.SeverityLow, false},
		{"medium", "medium", entities.SeverityMedium, false},
		{"unrecognized is low", "extreme", entities.SeverityLow, false},
		{"missing is low", "", entities.SeverityLow, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &memoryStore{}
			classifier := &fakeClassifier{intent: &entities.ClassifiedIntent{
				Intent:   entities.IntentReportSymptom,
				Symptom:  "chest pain",
				Severity: tt.severity,
			}}
			d := newTestDispatcher(classifier, store, nil, nil)

			res, err := d.Dispatch(context.Background(), Command{Transcript: "my chest hurts", CallerID: patientID})

			require.NoError(t, err)
			assert.Equal(t, MsgSymptomLogged, res.Confirmation)
			require.Len(t, store.symptoms, 1)
			assert.Equal(t, tt.wantSeverity, store.symptoms[0].Severity)
			assert.Equal(t, "my chest hurts", store.symptoms[0].Transcript)

			if tt.wantAlert {
				require.Len(t, store.alerts, 1)
				assert.Equal(t, entities.AlertSourceSymptomEscalation, store.alerts[0].Source)
				assert.Equal(t, "chest pain", store.alerts[0].Reason)
				assert.Same(t, store.alerts[0], res.Alert)
			} else {
				assert.Empty(t, store.alerts)
				assert.Nil(t, res.Alert)
			}
		})
	}
}

func TestDispatch_SymptomMissing(t *testing.T) {
	store := &memoryStore{}
	classifier := &fakeClassifier{intent: &entities.ClassifiedIntent{Intent: entities.IntentReportSymptom, Severity: "high"}}
	d := newTestDispatcher(classifier, store, nil, nil)

	res, err := d.Dispatch(context.Background(), Command{Transcript: "I feel", CallerID: patientID})

	var slotErr *IncompleteSlotError
	require.ErrorAs(t, err, &slotErr)
	assert.Equal(t, MsgSymptomIncomplete, res.Confirmation)
	assert.Zero(t, store.writes())
}

func TestDispatch_EscalationFailureKeepsSymptom(t *testing.T) {
	store := &memoryStore{failAlerts: 1}
	speaker := newChanSpeaker()
	classifier := &fakeClassifier{intent: &entities.ClassifiedIntent{
		Intent:   entities.IntentReportSymptom,
		Symptom:  "chest pain",
		Severity: "high",
	}}
	d := newTestDispatcher(classifier, store, nil, speaker)

	res, err := d.Dispatch(context.Background(), Command{Transcript: "severe chest pain", CallerID: patientID})

	var persistErr *PersistenceError
	require.ErrorAs(t, err, &persistErr)
	assert.ErrorIs(t, err, errStoreDown)
	require.NotNil(t, res)
	require.NotNil(t, res.Symptom)
	assert.Nil(t, res.Alert)
	assert.Len(t, store.symptoms, 1)
	assert.Empty(t, store.alerts)
	assert.Equal(t, MsgSymptomLogged, expectSpoken(t, speaker).text)
}

func TestDispatch_WriteFailureAtMostOnce(t *testing.T) {
	store := &memoryStore{failAppointments: 1}
	classifier := &fakeClassifier{intent: &entities.ClassifiedIntent{
		Intent:   entities.IntentBookAppointment,
		DateTime: "2030-01-01T10:00:00Z",
	}}
	d := newTestDispatcher(classifier, store, AtMostOnceNoRetry{}, nil)

	res, err := d.Dispatch(context.Background(), Command{Transcript: "book", CallerID: patientID})

	assert.Nil(t, res)
	var persistErr *PersistenceError
	require.ErrorAs(t, err, &persistErr)
	assert.Equal(t, 1, store.attempts)
	assert.Empty(t, store.appointments)
}

func TestDispatch_WriteFailureWithRetry(t *testing.T) {
	store := &memoryStore{failAppointments: 2}
	classifier := &fakeClassifier{intent: &entities.ClassifiedIntent{
		Intent:   entities.IntentBookAppointment,
		DateTime: "2030-01-01T10:00:00Z",
	}}
	policy := NewRetryWithBackoff(time.Millisecond, time.Second, nil)
	d := newTestDispatcher(classifier, store, policy, nil)

	res, err := d.Dispatch(context.Background(), Command{Transcript: "book", CallerID: patientID})

	require.NoError(t, err)
	assert.Equal(t, 3, store.attempts)
	require.Len(t, store.appointments, 1)
	assert.NotNil(t, res.Appointment)
}

func TestDispatch_ClassificationErrorWritesNothing(t *testing.T) {
	store := &memoryStore{}
	speaker := newChanSpeaker()
	llm := &fakeLLM{reply: "not json at all"}
	classifier := NewClassifier(llm, entities.ProfileFull, ai.CompletionOptions{}, nil)
	d := newTestDispatcher(classifier, store, nil, speaker)

	res, err := d.Dispatch(context.Background(), Command{Transcript: "help me", CallerID: patientID})

	assert.Nil(t, res)
	var ce *ClassificationError
	require.ErrorAs(t, err, &ce)
	assert.Zero(t, store.writes())
	assert.Empty(t, speaker.out)
}

func TestDispatch_EmptyTranscript(t *testing.T) {
	store := &memoryStore{}
	classifier := &fakeClassifier{intent: &entities.ClassifiedIntent{Intent: entities.IntentEmergency}}
	d := newTestDispatcher(classifier, store, nil, nil)

	_, err := d.Dispatch(context.Background(), Command{Transcript: "  ", CallerID: patientID})

	assert.ErrorIs(t, err, ErrEmptyTranscript)
	assert.Zero(t, classifier.calls.Load())
	assert.Zero(t, store.writes())
}

func TestDispatch_MissingCaller(t *testing.T) {
	classifier := &fakeClassifier{intent: &entities.ClassifiedIntent{Intent: entities.IntentEmergency}}
	d := newTestDispatcher(classifier, &memoryStore{}, nil, nil)

	_, err := d.Dispatch(context.Background(), Command{Transcript: "help"})

	assert.ErrorIs(t, err, ErrMissingCaller)
	assert.Zero(t, classifier.calls.Load())
}

func TestDispatch_NonActionIntents(t *testing.T) {
	tests := []struct {
		intent entities.Intent
		want   string
	}{
		{entities.IntentShowSchedule, MsgShowSchedule},
		{entities.IntentUnknown, MsgNotUnderstood},
	}

	for _, tt := range tests {
		t.Run(string(tt.intent), func(t *testing.T) {
			store := &memoryStore{}
			classifier := &fakeClassifier{intent: &entities.ClassifiedIntent{Intent: tt.intent}}
			d := newTestDispatcher(classifier, store, nil, nil)

			res, err := d.Dispatch(context.Background(), Command{Transcript: "what's up", CallerID: patientID})

			require.NoError(t, err)
			assert.Equal(t, tt.want, res.Confirmation)
			assert.Zero(t, store.writes())
		})
	}
}

func TestDispatch_WritesSurviveCallerCancellation(t *testing.T) {
	store := &memoryStore{}
	classifier := &fakeClassifier{intent: &entities.ClassifiedIntent{Intent: entities.IntentEmergency, Reason: "chest pain"}}
	d := newTestDispatcher(classifier, store, nil, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := d.Dispatch(ctx, Command{Transcript: "help", CallerID: patientID})

	require.NoError(t, err)
	assert.Len(t, store.alerts, 1)
}

func TestDispatch_SpeakerFailureIsIgnored(t *testing.T) {
	store := &memoryStore{}
	speaker := newChanSpeaker()
	speaker.err = errors.New("tts offline")
	classifier := &fakeClassifier{intent: &entities.ClassifiedIntent{Intent: entities.IntentShowSchedule}}
	d := newTestDispatcher(classifier, store, nil, speaker)

	res, err := d.Dispatch(context.Background(), Command{Transcript: "my schedule", CallerID: patientID})

	require.NoError(t, err)
	assert.Equal(t, MsgShowSchedule, res.Confirmation)
	expectSpoken(t, speaker)
}

func TestDispatch_DefaultAnchorIsNow(t *testing.T) {
	store := &memoryStore{}
	classifier := &fakeClassifier{intent: &entities.ClassifiedIntent{
		Intent:   entities.IntentBookAppointment,
		DateTime: "tomorrow",
	}}
	d := newTestDispatcher(classifier, store, nil, nil)
	d.now = func() time.Time { return time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC) }

	res, err := d.Dispatch(context.Background(), Command{Transcript: "book tomorrow", CallerID: patientID})

	require.NoError(t, err)
	assert.Equal(t, "2024-01-02T10:00:00Z", FormatInstant(res.Appointment.AppointmentTime))
}
