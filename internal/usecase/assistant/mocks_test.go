package assistant

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/johnquangdev/telehealth-assistant/internal/domain/entities"
	"github.com/johnquangdev/telehealth-assistant/pkg/ai"
)

var errStoreDown = errors.New("store unavailable")

type fakeLLM struct {
	reply string
	err   error
	calls atomic.Int32
	last  []ai.Message
	opts  ai.CompletionOptions
}

func (f *fakeLLM) Complete(ctx context.Context, messages []ai.Message, opts ai.CompletionOptions) (string, error) {
	f.calls.Add(1)
	f.last = messages
	f.opts = opts
	if f.err != nil {
		return "", f.err
	}
	return f.reply, nil
}

var _ ChatCompleter = (*fakeLLM)(nil)

type fakeClassifier struct {
	intent *entities.ClassifiedIntent
	err    error
	calls  atomic.Int32
}

func (f *fakeClassifier) Classify(ctx context.Context, transcript string, anchor time.Time) (*entities.ClassifiedIntent, error) {
	f.calls.Add(1)
	if f.err != nil {
		return nil, f.err
	}
	out := *f.intent
	return &out, nil
}

var _ IntentClassifier = (*fakeClassifier)(nil)

// memoryStore records writes; failures fail the first n calls of each kind
type memoryStore struct {
	mu           sync.Mutex
	appointments []*entities.Appointment
	symptoms     []*entities.SymptomReport
	alerts       []*entities.EmergencyAlert

	failAppointments int
	failSymptoms     int
	failAlerts       int
	attempts         int
}

func (m *memoryStore) writes() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.appointments) + len(m.symptoms) + len(m.alerts)
}

type appointmentStore struct{ *memoryStore }

func (s appointmentStore) Create(ctx context.Context, a *entities.Appointment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.attempts++
	if err := ctx.Err(); err != nil {
		return err
	}
	if s.failAppointments > 0 {
		s.failAppointments--
		return errStoreDown
	}
	a.ID = uuid.NewString()
	a.CreatedAt = time.Now()
	s.appointments = append(s.appointments, a)
	return nil
}

type symptomStore struct{ *memoryStore }

func (s symptomStore) Create(ctx context.Context, r *entities.SymptomReport) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.attempts++
	if err := ctx.Err(); err != nil {
		return err
	}
	if s.failSymptoms > 0 {
		s.failSymptoms--
		return errStoreDown
	}
	r.ID = uuid.NewString()
	s.symptoms = append(s.symptoms, r)
	return nil
}

type alertStore struct{ *memoryStore }

func (s alertStore) Create(ctx context.Context, a *entities.EmergencyAlert) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.attempts++
	if err := ctx.Err(); err != nil {
		return err
	}
	if s.failAlerts > 0 {
		s.failAlerts--
		return errStoreDown
	}
	a.ID = uuid.NewString()
	s.alerts = append(s.alerts, a)
	return nil
}

var (
	_ AppointmentWriter = appointmentStore{}
	_ SymptomWriter     = symptomStore{}
	_ AlertWriter       = alertStore{}
)

type spoken struct {
	callerID string
	text     string
}

type chanSpeaker struct {
	out chan spoken
	err error
}

func newChanSpeaker() *chanSpeaker {
	return &chanSpeaker{out: make(chan spoken, 8)}
}

func (s *chanSpeaker) Speak(ctx context.Context, callerID, text string) error {
	s.out <- spoken{callerID: callerID, text: text}
	return s.err
}

var _ Speaker = (*chanSpeaker)(nil)
