package ai

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/johnquangdev/telehealth-assistant/internal/domain/entities"
	"github.com/johnquangdev/telehealth-assistant/internal/domain/repositories"
	usecaseErrors "github.com/johnquangdev/telehealth-assistant/internal/usecase/errors"
	pkgai "github.com/johnquangdev/telehealth-assistant/pkg/ai"
)

type mockLLM struct {
	reply string
	err   error
	calls int
	last  []pkgai.Message
}

func (m *mockLLM) Complete(ctx context.Context, messages []pkgai.Message, opts pkgai.CompletionOptions) (string, error) {
	m.calls++
	m.last = messages
	return m.reply, m.err
}

func (m *mockLLM) Model() string { return "test-model" }

var _ LLM = (*mockLLM)(nil)

type mockSummaryRepo struct {
	saved *entities.CallSummary
}

func (m *mockSummaryRepo) Save(ctx context.Context, summary *entities.CallSummary) error {
	summary.ID = "summary-1"
	m.saved = summary
	return nil
}

func (m *mockSummaryRepo) FindByAppointmentID(ctx context.Context, appointmentID string) (*entities.CallSummary, error) {
	if m.saved == nil || m.saved.AppointmentID != appointmentID {
		return nil, repositories.ErrRecordNotFound
	}
	return m.saved, nil
}

var _ repositories.SummaryRepository = (*mockSummaryRepo)(nil)

type mockAppointmentRepo struct {
	repositories.AppointmentRepository
	appointment *entities.Appointment
}

func (m *mockAppointmentRepo) FindByID(ctx context.Context, id string) (*entities.Appointment, error) {
	if m.appointment == nil || m.appointment.ID != id {
		return nil, repositories.ErrRecordNotFound
	}
	return m.appointment, nil
}

type mockArchive struct {
	objects   map[string]string
	uploadErr error
}

func (m *mockArchive) UploadText(ctx context.Context, objectName, content string) error {
	if m.uploadErr != nil {
		return m.uploadErr
	}
	if m.objects == nil {
		m.objects = make(map[string]string)
	}
	m.objects[objectName] = content
	return nil
}

func (m *mockArchive) GetFileURL(ctx context.Context, objectName string, expiry time.Duration) (string, error) {
	return "https://storage.example/" + objectName, nil
}

var _ TranscriptArchive = (*mockArchive)(nil)

type mockAlerts struct {
	created []*entities.EmergencyAlert
	err     error
}

func (m *mockAlerts) Create(ctx context.Context, alert *entities.EmergencyAlert) error {
	if m.err != nil {
		return m.err
	}
	m.created = append(m.created, alert)
	return nil
}

var doctor = entities.Actor{ID: "doctor-1", Role: entities.RoleDoctor}

func consultation() *mockAppointmentRepo {
	return &mockAppointmentRepo{appointment: &entities.Appointment{
		ID:        "appt-1",
		PatientID: "patient-1",
		DoctorID:  doctor.ID,
	}}
}

func TestSummarizeCall(t *testing.T) {
	llm := &mockLLM{reply: "```json\n" + `{
		"keyPoints": ["persistent cough", " "],
		"symptomsDiscussed": ["cough", "mild fever"],
		"actionItems": ["follow up in a week"],
		"overallSummary": "Patient has a cough for five days."
	}` + "\n```"}
	summaries := &mockSummaryRepo{}
	archive := &mockArchive{}
	svc := NewService(llm, summaries, consultation(), archive, &mockAlerts{}, 0, nil)

	summary, err := svc.SummarizeCall(context.Background(), "appt-1", doctor, "Doctor: how are you? Patient: coughing.")

	require.NoError(t, err)
	assert.Equal(t, "summary-1", summary.ID)
	assert.Equal(t, []string{"persistent cough"}, []string(summary.KeyPoints))
	assert.Equal(t, []string{"cough", "mild fever"}, []string(summary.SymptomsDiscussed))
	assert.Equal(t, "test-model", summary.ModelUsed)
	assert.True(t, strings.HasPrefix(summary.TranscriptObject, "transcripts/appt-1/"))
	assert.Equal(t, "Doctor: how are you? Patient: coughing.", archive.objects[summary.TranscriptObject])

	view, err := svc.GetSummary(context.Background(), "appt-1", doctor)
	require.NoError(t, err)
	assert.Same(t, summary, view.Summary)
	assert.Equal(t, "https://storage.example/"+summary.TranscriptObject, view.TranscriptURL)
}

func TestSummarizeCall_ArchiveFailureIsNotFatal(t *testing.T) {
	llm := &mockLLM{reply: `{"overallSummary":"ok"}`}
	svc := NewService(llm, &mockSummaryRepo{}, consultation(), &mockArchive{uploadErr: errors.New("minio down")}, &mockAlerts{}, 0, nil)

	summary, err := svc.SummarizeCall(context.Background(), "appt-1", doctor, "hello")

	require.NoError(t, err)
	assert.Empty(t, summary.TranscriptObject)
	assert.NotNil(t, summary.KeyPoints)
}

func TestSummarizeCall_Rejections(t *testing.T) {
	llm := &mockLLM{reply: `{"overallSummary":"ok"}`}
	svc := NewService(llm, &mockSummaryRepo{}, consultation(), nil, &mockAlerts{}, 0, nil)

	_, err := svc.SummarizeCall(context.Background(), "appt-1", doctor, "  ")
	assert.ErrorIs(t, err, usecaseErrors.ErrEmptyCallTranscript)

	_, err = svc.SummarizeCall(context.Background(), "appt-1", entities.Actor{ID: "other-doctor", Role: entities.RoleDoctor}, "text")
	assert.ErrorIs(t, err, usecaseErrors.ErrNotAppointmentMember)

	_, err = svc.SummarizeCall(context.Background(), "missing", doctor, "text")
	assert.ErrorIs(t, err, usecaseErrors.ErrAppointmentNotFound)

	assert.Zero(t, llm.calls)
}

func TestSummarizeCall_MalformedReply(t *testing.T) {
	summaries := &mockSummaryRepo{}
	svc := NewService(&mockLLM{reply: `{"keyPoints":[]}`}, summaries, consultation(), nil, &mockAlerts{}, 0, nil)

	_, err := svc.SummarizeCall(context.Background(), "appt-1", doctor, "text")

	assert.Error(t, err)
	assert.Nil(t, summaries.saved)
}

func TestGetSummary_NotFound(t *testing.T) {
	svc := NewService(&mockLLM{}, &mockSummaryRepo{}, consultation(), nil, &mockAlerts{}, 0, nil)

	_, err := svc.GetSummary(context.Background(), "appt-1", doctor)

	assert.ErrorIs(t, err, usecaseErrors.ErrSummaryNotFound)
}

func TestAnalyzeSymptoms(t *testing.T) {
	t.Run("high urgency raises alert", func(t *testing.T) {
		alerts := &mockAlerts{}
		llm := &mockLLM{reply: `{"diagnosisSuggestions":["angina"],"urgencyLevel":"HIGH","recommendations":["call emergency services"]}`}
		svc := NewService(llm, &mockSummaryRepo{}, consultation(), nil, alerts, 0, nil)

		res, err := svc.AnalyzeSymptoms(context.Background(), "patient-1", "crushing chest pain")

		require.NoError(t, err)
		assert.Equal(t, entities.SeverityHigh, res.Analysis.UrgencyLevel)
		require.Len(t, alerts.created, 1)
		assert.Same(t, alerts.created[0], res.Alert)
		assert.Equal(t, entities.AlertSourceSymptomAnalysis, res.Alert.Source)
		assert.Equal(t, "crushing chest pain", res.Alert.Reason)
		assert.Equal(t, "user", llm.last[1].Role)
	})

	t.Run("low urgency", func(t *testing.T) {
		alerts := &mockAlerts{}
		llm := &mockLLM{reply: `{"diagnosisSuggestions":["cold"],"urgencyLevel":"low","recommendations":["rest"]}`}
		svc := NewService(llm, &mockSummaryRepo{}, consultation(), nil, alerts, 0, nil)

		res, err := svc.AnalyzeSymptoms(context.Background(), "patient-1", "runny nose")

		require.NoError(t, err)
		assert.Nil(t, res.Alert)
		assert.Empty(t, alerts.created)
	})

	t.Run("alert failure surfaces", func(t *testing.T) {
		llm := &mockLLM{reply: `{"urgencyLevel":"high"}`}
		svc := NewService(llm, &mockSummaryRepo{}, consultation(), nil, &mockAlerts{err: errors.New("db down")}, 0, nil)

		_, err := svc.AnalyzeSymptoms(context.Background(), "patient-1", "cannot breathe")

		assert.Error(t, err)
	})

	t.Run("empty description", func(t *testing.T) {
		llm := &mockLLM{}
		svc := NewService(llm, &mockSummaryRepo{}, consultation(), nil, &mockAlerts{}, 0, nil)

		_, err := svc.AnalyzeSymptoms(context.Background(), "patient-1", "")

		assert.ErrorIs(t, err, usecaseErrors.ErrInvalidInput)
		assert.Zero(t, llm.calls)
	})
}

func TestSetMedicationReminder(t *testing.T) {
	reminder := entities.MedicationReminder{
		PatientID:      "patient-1",
		MedicationName: " Lisinopril ",
		Dosage:         "10mg",
		Frequency:      "daily",
		Time:           "8:00 AM",
	}

	t.Run("confirmed", func(t *testing.T) {
		llm := &mockLLM{reply: "```json\n" + `{"success":true,"message":"Reminder set: Lisinopril 10mg daily at 8:00 AM."}` + "\n```"}
		svc := NewService(llm, &mockSummaryRepo{}, consultation(), nil, &mockAlerts{}, 0, nil)

		res, err := svc.SetMedicationReminder(context.Background(), reminder)

		require.NoError(t, err)
		assert.True(t, res.Success)
		assert.Equal(t, "Reminder set: Lisinopril 10mg daily at 8:00 AM.", res.Message)
		require.Len(t, llm.last, 2)
		assert.Contains(t, llm.last[1].Content, `"medicationName":"Lisinopril"`)
		assert.Contains(t, llm.last[1].Content, `"time":"8:00 AM"`)
	})

	t.Run("declined is not an error", func(t *testing.T) {
		llm := &mockLLM{reply: `{"success":false,"message":"I could not understand the dosage."}`}
		svc := NewService(llm, &mockSummaryRepo{}, consultation(), nil, &mockAlerts{}, 0, nil)

		res, err := svc.SetMedicationReminder(context.Background(), reminder)

		require.NoError(t, err)
		assert.False(t, res.Success)
		assert.Equal(t, "I could not understand the dosage.", res.Message)
	})

	t.Run("missing field", func(t *testing.T) {
		llm := &mockLLM{}
		svc := NewService(llm, &mockSummaryRepo{}, consultation(), nil, &mockAlerts{}, 0, nil)
		incomplete := reminder
		incomplete.Dosage = "  "

		_, err := svc.SetMedicationReminder(context.Background(), incomplete)

		assert.ErrorIs(t, err, usecaseErrors.ErrInvalidInput)
		assert.Zero(t, llm.calls)
	})

	t.Run("reply without message", func(t *testing.T) {
		llm := &mockLLM{reply: `{"success":true}`}
		svc := NewService(llm, &mockSummaryRepo{}, consultation(), nil, &mockAlerts{}, 0, nil)

		_, err := svc.SetMedicationReminder(context.Background(), reminder)

		assert.Error(t, err)
	})

	t.Run("llm failure", func(t *testing.T) {
		llm := &mockLLM{err: errors.New("groq unavailable")}
		svc := NewService(llm, &mockSummaryRepo{}, consultation(), nil, &mockAlerts{}, 0, nil)

		_, err := svc.SetMedicationReminder(context.Background(), reminder)

		assert.ErrorContains(t, err, "groq unavailable")
	})
}

func TestParser_UnknownUrgencyIsLow(t *testing.T) {
	analysis, err := NewParser().ParseSymptomAnalysis(`{"urgencyLevel":"critical"}`)

	require.NoError(t, err)
	assert.Equal(t, entities.SeverityLow, analysis.UrgencyLevel)
	assert.NotNil(t, analysis.DiagnosisSuggestions)
}
