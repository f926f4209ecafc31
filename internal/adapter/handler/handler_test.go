package handler

import (
	"context"
	"encoding/json"
	stdErrors "errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/johnquangdev/telehealth-assistant/errors"
	"github.com/johnquangdev/telehealth-assistant/internal/domain/entities"
	httpmw "github.com/johnquangdev/telehealth-assistant/internal/infrastructure/http/middleware"
	"github.com/johnquangdev/telehealth-assistant/internal/usecase/assistant"
	usecaseErrors "github.com/johnquangdev/telehealth-assistant/internal/usecase/errors"
	pkgai "github.com/johnquangdev/telehealth-assistant/pkg/ai"
	"github.com/johnquangdev/telehealth-assistant/pkg/validator"
)

var (
	patient = entities.Actor{ID: "patient-1", Role: entities.RolePatient}
	doctor  = entities.Actor{ID: "doctor-1", Role: entities.RoleDoctor}
)

type fakeDispatcher struct {
	fn   func(ctx context.Context, cmd assistant.Command) (*assistant.Result, error)
	last assistant.Command
}

func (f *fakeDispatcher) Dispatch(ctx context.Context, cmd assistant.Command) (*assistant.Result, error) {
	f.last = cmd
	return f.fn(ctx, cmd)
}

type fakeAdvisor struct {
	HealthAdvisor
	reminder func(r entities.MedicationReminder) (*entities.ReminderConfirmation, error)
}

func (f *fakeAdvisor) SetMedicationReminder(_ context.Context, r entities.MedicationReminder) (*entities.ReminderConfirmation, error) {
	return f.reminder(r)
}

type fakeAppointments struct {
	AppointmentService
	get    func(id string, actor entities.Actor) (*entities.Appointment, error)
	update func(id string, status entities.AppointmentStatus) (*entities.Appointment, error)
}

func (f *fakeAppointments) Get(_ context.Context, id string, actor entities.Actor) (*entities.Appointment, error) {
	return f.get(id, actor)
}

func (f *fakeAppointments) UpdateStatus(_ context.Context, id string, _ entities.Actor, status entities.AppointmentStatus) (*entities.Appointment, error) {
	return f.update(id, status)
}

type fakeAlerts struct {
	AlertService
	resolve func(id, doctorID string) (*entities.EmergencyAlert, error)
}

func (f *fakeAlerts) Resolve(_ context.Context, id, doctorID string) (*entities.EmergencyAlert, error) {
	return f.resolve(id, doctorID)
}

type envelope struct {
	Code    interface{}       `json:"code"`
	Message string            `json:"message"`
	Info    string            `json:"info"`
	Details map[string]string `json:"details"`
	Data    json.RawMessage   `json:"data"`
}

func newContext(t *testing.T, method, target, body string, actor *entities.Actor) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = validator.New()

	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if actor != nil {
		c.Set(httpmw.ContextActor, *actor)
	}
	return c, rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return env
}

func TestAssistantCommand_Booking(t *testing.T) {
	when := time.Date(2024, 3, 11, 16, 0, 0, 0, time.UTC)
	d := &fakeDispatcher{fn: func(ctx context.Context, cmd assistant.Command) (*assistant.Result, error) {
		return &assistant.Result{
			Intent:       &entities.ClassifiedIntent{Intent: entities.IntentBookAppointment, DateTime: "2024-03-11T16:00:00Z"},
			Confirmation: assistant.MsgAppointmentConfirmed + "Mar 11, 2024, 4:00 PM",
			Appointment: &entities.Appointment{
				ID: "a1", PatientID: cmd.CallerID, AppointmentTime: when,
				Status: entities.AppointmentStatusUpcoming, Type: entities.AppointmentTypeVirtual,
			},
		}, nil
	}}
	h := NewAssistantHandler(d, nil, nil, nil, time.Second, nil)
	c, rec := newContext(t, http.MethodPost, "/v1/assistant/commands",
		`{"transcript":"book me tomorrow at 4 pm","anchor":"2024-03-10T09:00:00Z"}`, &patient)

	require.NoError(t, h.Command(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "patient-1", d.last.CallerID)
	assert.Equal(t, "2024-03-10T09:00:00Z", d.last.Anchor.UTC().Format(time.RFC3339))

	var data struct {
		Confirmation string `json:"confirmation"`
		Intent       struct {
			Intent string `json:"intent"`
		} `json:"intent"`
		Appointment struct {
			ID     string `json:"id"`
			Status string `json:"status"`
		} `json:"appointment"`
	}
	require.NoError(t, json.Unmarshal(decode(t, rec).Data, &data))
	assert.Equal(t, "Your appointment is confirmed for Mar 11, 2024, 4:00 PM", data.Confirmation)
	assert.Equal(t, "bookAppointment", data.Intent.Intent)
	assert.Equal(t, "a1", data.Appointment.ID)
	assert.Equal(t, "upcoming", data.Appointment.Status)
}

func TestAssistantCommand_Errors(t *testing.T) {
	tests := []struct {
		name   string
		res    *assistant.Result
		err    error
		status int
		code   errors.ErrorCode
	}{
		{
			name: "incomplete slot",
			res:  &assistant.Result{Confirmation: assistant.MsgAppointmentIncomplete},
			err: &assistant.IncompleteSlotError{
				Intent: entities.IntentBookAppointment, Slot: "dateTime", UserMessage: assistant.MsgAppointmentIncomplete,
			},
			status: http.StatusUnprocessableEntity,
			code:   errors.ErrorCode_ASSISTANT_INCOMPLETE_SLOT,
		},
		{
			name:   "classification",
			err:    &assistant.ClassificationError{Kind: assistant.FailureMalformed, Err: stdErrors.New("not json")},
			status: http.StatusBadGateway,
			code:   errors.ErrorCode_ASSISTANT_CLASSIFICATION,
		},
		{
			name:   "classifier timeout",
			err:    &assistant.ClassificationError{Kind: assistant.FailureTimeout, Err: context.DeadlineExceeded},
			status: http.StatusGatewayTimeout,
			code:   errors.ErrorCode_ASSISTANT_CLASSIFIER_TIMEOUT,
		},
		{
			name:   "persistence",
			err:    &assistant.PersistenceError{Record: "emergency_alert", Err: stdErrors.New("db down")},
			status: http.StatusInternalServerError,
			code:   errors.ErrorCode_ASSISTANT_PERSISTENCE,
		},
		{
			name:   "blank transcript",
			err:    assistant.ErrEmptyTranscript,
			status: http.StatusBadRequest,
			code:   errors.ErrorCode_ASSISTANT_EMPTY_TRANSCRIPT,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := &fakeDispatcher{fn: func(context.Context, assistant.Command) (*assistant.Result, error) {
				return tt.res, tt.err
			}}
			h := NewAssistantHandler(d, nil, nil, nil, 0, nil)
			c, rec := newContext(t, http.MethodPost, "/v1/assistant/commands", `{"transcript":"  hmm  "}`, &patient)

			require.NoError(t, h.Command(c))

			assert.Equal(t, tt.status, rec.Code)
			env := decode(t, rec)
			assert.EqualValues(t, tt.code, env.Code)
			if tt.code == errors.ErrorCode_ASSISTANT_INCOMPLETE_SLOT {
				assert.Equal(t, assistant.MsgAppointmentIncomplete, env.Message)
				assert.Equal(t, "dateTime", env.Details["slot"])
			}
			if tt.status >= http.StatusInternalServerError {
				assert.Empty(t, env.Info)
			}
		})
	}
}

func TestAssistantCommand_EscalationFailureStillSucceeds(t *testing.T) {
	d := &fakeDispatcher{fn: func(context.Context, assistant.Command) (*assistant.Result, error) {
		return &assistant.Result{
			Intent:       &entities.ClassifiedIntent{Intent: entities.IntentReportSymptom, Symptom: "chest pain", Severity: "high"},
			Confirmation: assistant.MsgSymptomLogged,
			Symptom:      &entities.SymptomReport{ID: "s1", Symptom: "chest pain", Severity: entities.SeverityHigh},
		}, &assistant.PersistenceError{Record: "emergency_alert", Err: stdErrors.New("db down")}
	}}
	h := NewAssistantHandler(d, nil, nil, nil, 0, nil)
	c, rec := newContext(t, http.MethodPost, "/v1/assistant/commands", `{"transcript":"severe chest pain"}`, &patient)

	require.NoError(t, h.Command(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	var data struct {
		Confirmation string `json:"confirmation"`
		Warning      string `json:"warning"`
		Symptom      struct {
			ID string `json:"id"`
		} `json:"symptom"`
	}
	require.NoError(t, json.Unmarshal(decode(t, rec).Data, &data))
	assert.Equal(t, assistant.MsgSymptomLogged, data.Confirmation)
	assert.Equal(t, "s1", data.Symptom.ID)
	assert.NotEmpty(t, data.Warning)
}

func TestAssistantCommand_RequiresActorAndTranscript(t *testing.T) {
	d := &fakeDispatcher{fn: func(context.Context, assistant.Command) (*assistant.Result, error) {
		t.Fatal("dispatcher must not be called")
		return nil, nil
	}}
	h := NewAssistantHandler(d, nil, nil, nil, 0, nil)

	c, rec := newContext(t, http.MethodPost, "/v1/assistant/commands", `{"transcript":"hi"}`, nil)
	require.NoError(t, h.Command(c))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	c, rec = newContext(t, http.MethodPost, "/v1/assistant/commands", `{"transcript":""}`, &patient)
	require.NoError(t, h.Command(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAssistantSetMedicationReminder(t *testing.T) {
	body := `{"medicationName":"Metformin","dosage":"500mg","frequency":"twice daily","time":"8:00 AM"}`

	t.Run("confirmed for the caller", func(t *testing.T) {
		var got entities.MedicationReminder
		advisor := &fakeAdvisor{reminder: func(r entities.MedicationReminder) (*entities.ReminderConfirmation, error) {
			got = r
			return &entities.ReminderConfirmation{Success: true, Message: "Reminder set for Metformin."}, nil
		}}
		h := NewAssistantHandler(nil, nil, nil, advisor, time.Second, nil)
		c, rec := newContext(t, http.MethodPost, "/v1/assistant/medications/reminders", body, &patient)

		require.NoError(t, h.SetMedicationReminder(c))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "patient-1", got.PatientID)
		assert.Equal(t, "twice daily", got.Frequency)

		var data struct {
			MedicationName string `json:"medicationName"`
			Success        bool   `json:"success"`
			Message        string `json:"message"`
		}
		require.NoError(t, json.Unmarshal(decode(t, rec).Data, &data))
		assert.True(t, data.Success)
		assert.Equal(t, "Metformin", data.MedicationName)
		assert.Equal(t, "Reminder set for Metformin.", data.Message)
	})

	t.Run("missing dosage", func(t *testing.T) {
		advisor := &fakeAdvisor{reminder: func(entities.MedicationReminder) (*entities.ReminderConfirmation, error) {
			t.Fatal("advisor must not be called")
			return nil, nil
		}}
		h := NewAssistantHandler(nil, nil, nil, advisor, time.Second, nil)
		c, rec := newContext(t, http.MethodPost, "/v1/assistant/medications/reminders",
			`{"medicationName":"Metformin","frequency":"daily","time":"8:00 AM"}`, &patient)

		require.NoError(t, h.SetMedicationReminder(c))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("llm failure", func(t *testing.T) {
		advisor := &fakeAdvisor{reminder: func(entities.MedicationReminder) (*entities.ReminderConfirmation, error) {
			return nil, stdErrors.New("groq unavailable")
		}}
		h := NewAssistantHandler(nil, nil, nil, advisor, time.Second, nil)
		c, rec := newContext(t, http.MethodPost, "/v1/assistant/medications/reminders", body, &patient)

		require.NoError(t, h.SetMedicationReminder(c))

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		env := decode(t, rec)
		assert.EqualValues(t, errors.ErrorCode_AI_REMINDER_FAILED, env.Code)
		assert.Empty(t, env.Info)
	})
}

func TestVoiceWebhook(t *testing.T) {
	const secret = "voice-secret"
	body := `{"caller_id":"patient-9","transcript":"I need help, I fell"}`

	newHandler := func(d CommandDispatcher) *WebhookHandler {
		return NewWebhookHandler(nil, d, "key", "livekit-secret", secret, 50*time.Millisecond, nil)
	}

	t.Run("bad signature", func(t *testing.T) {
		d := &fakeDispatcher{fn: func(context.Context, assistant.Command) (*assistant.Result, error) {
			t.Fatal("dispatcher must not be called")
			return nil, nil
		}}
		c, rec := newContext(t, http.MethodPost, "/v1/webhooks/voice", body, nil)
		c.Request().Header.Set(pkgai.SignatureHeader, "sha256=deadbeef")

		require.NoError(t, newHandler(d).HandleVoiceWebhook(c))

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.EqualValues(t, errors.ErrorCode_AUTH_INVALID_SIGNATURE, decode(t, rec).Code)
	})

	t.Run("signed", func(t *testing.T) {
		d := &fakeDispatcher{fn: func(_ context.Context, cmd assistant.Command) (*assistant.Result, error) {
			return &assistant.Result{
				Intent:       &entities.ClassifiedIntent{Intent: entities.IntentEmergency},
				Confirmation: assistant.MsgEmergencySent,
				Alert:        &entities.EmergencyAlert{ID: "al1", PatientID: cmd.CallerID, Status: entities.AlertStatusActive},
			}, nil
		}}
		c, rec := newContext(t, http.MethodPost, "/v1/webhooks/voice", body, nil)
		c.Request().Header.Set(pkgai.SignatureHeader, pkgai.SignHMAC(secret, []byte(body)))

		require.NoError(t, newHandler(d).HandleVoiceWebhook(c))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "patient-9", d.last.CallerID)
		assert.Equal(t, "I need help, I fell", d.last.Transcript)
		assert.Contains(t, rec.Body.String(), assistant.MsgEmergencySent)
	})
}

func TestVoiceWebhook_BoundsClassification(t *testing.T) {
	const secret = "voice-secret"
	body := `{"caller_id":"patient-9","transcript":"book me tomorrow"}`

	d := &fakeDispatcher{fn: func(ctx context.Context, _ assistant.Command) (*assistant.Result, error) {
		_, hasDeadline := ctx.Deadline()
		require.True(t, hasDeadline)
		<-ctx.Done()
		return nil, &assistant.ClassificationError{Kind: assistant.FailureTimeout, Err: ctx.Err()}
	}}
	h := NewWebhookHandler(nil, d, "key", "livekit-secret", secret, 20*time.Millisecond, nil)
	c, rec := newContext(t, http.MethodPost, "/v1/webhooks/voice", body, nil)
	c.Request().Header.Set(pkgai.SignatureHeader, pkgai.SignHMAC(secret, []byte(body)))

	require.NoError(t, h.HandleVoiceWebhook(c))

	assert.Equal(t, http.StatusGatewayTimeout, rec.Code)
	assert.EqualValues(t, errors.ErrorCode_ASSISTANT_CLASSIFIER_TIMEOUT, decode(t, rec).Code)
}

func TestAppointmentHandler_ErrorMapping(t *testing.T) {
	svc := &fakeAppointments{
		get: func(id string, actor entities.Actor) (*entities.Appointment, error) {
			return nil, usecaseErrors.ErrNotAppointmentMember
		},
		update: func(id string, status entities.AppointmentStatus) (*entities.Appointment, error) {
			return nil, usecaseErrors.ErrInvalidTransition
		},
	}
	h := NewAppointmentHandler(svc, nil, nil)

	c, rec := newContext(t, http.MethodGet, "/v1/appointments/a1", "", &patient)
	c.SetParamNames("id")
	c.SetParamValues("a1")
	require.NoError(t, h.Get(c))
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "a1", decode(t, rec).Details["appointment_id"])

	c, rec = newContext(t, http.MethodPatch, "/v1/appointments/a1/status", `{"status":"upcoming"}`, &doctor)
	c.SetParamNames("id")
	c.SetParamValues("a1")
	require.NoError(t, h.UpdateStatus(c))
	assert.Equal(t, http.StatusConflict, rec.Code)

	c, rec = newContext(t, http.MethodPatch, "/v1/appointments/a1/status", `{"status":"archived"}`, &doctor)
	c.SetParamNames("id")
	c.SetParamValues("a1")
	require.NoError(t, h.UpdateStatus(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAlertHandler_Resolve(t *testing.T) {
	resolvedAt := time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)
	svc := &fakeAlerts{resolve: func(id, doctorID string) (*entities.EmergencyAlert, error) {
		if id == "done" {
			return nil, usecaseErrors.ErrAlertAlreadyResolved
		}
		return &entities.EmergencyAlert{
			ID: id, Status: entities.AlertStatusResolved, ResolvedBy: &doctorID, ResolvedAt: &resolvedAt,
		}, nil
	}}
	h := NewAlertHandler(svc, nil, nil)

	c, rec := newContext(t, http.MethodPost, "/v1/alerts/al1/resolve", "", &doctor)
	c.SetParamNames("id")
	c.SetParamValues("al1")
	require.NoError(t, h.Resolve(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"resolved_by":"doctor-1"`)

	c, rec = newContext(t, http.MethodPost, "/v1/alerts/done/resolve", "", &doctor)
	c.SetParamNames("id")
	c.SetParamValues("done")
	require.NoError(t, h.Resolve(c))
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.EqualValues(t, errors.ErrorCode_ALERT_ALREADY_RESOLVED, decode(t, rec).Code)
}

func TestHealthCheck(t *testing.T) {
	h := NewHealthHandler("test", map[string]Pinger{
		"redis": PingFunc(func(context.Context) error { return nil }),
		"minio": PingFunc(func(context.Context) error { return stdErrors.New("connection refused") }),
	}, nil)

	c, rec := newContext(t, http.MethodGet, "/health", "", nil)
	require.NoError(t, h.Check(c))

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	var body struct {
		Status string            `json:"status"`
		Checks map[string]string `json:"checks"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "degraded", body.Status)
	assert.Equal(t, "ok", body.Checks["redis"])
	assert.Equal(t, "connection refused", body.Checks["minio"])
}
