package alert

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/johnquangdev/telehealth-assistant/internal/domain/entities"
	"github.com/johnquangdev/telehealth-assistant/internal/domain/repositories"
	usecaseErrors "github.com/johnquangdev/telehealth-assistant/internal/usecase/errors"
)

type mockAlertRepo struct {
	CreateFunc       func(ctx context.Context, alert *entities.EmergencyAlert) error
	FindByIDFunc     func(ctx context.Context, id string) (*entities.EmergencyAlert, error)
	ListByStatusFunc func(ctx context.Context, status entities.AlertStatus, limit int) ([]*entities.EmergencyAlert, error)
	ResolveFunc      func(ctx context.Context, alert *entities.EmergencyAlert) error
}

func (m *mockAlertRepo) Create(ctx context.Context, alert *entities.EmergencyAlert) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, alert)
	}
	alert.ID = "alert-1"
	return nil
}

func (m *mockAlertRepo) FindByID(ctx context.Context, id string) (*entities.EmergencyAlert, error) {
	return m.FindByIDFunc(ctx, id)
}

func (m *mockAlertRepo) ListByStatus(ctx context.Context, status entities.AlertStatus, limit int) ([]*entities.EmergencyAlert, error) {
	return m.ListByStatusFunc(ctx, status, limit)
}

func (m *mockAlertRepo) Resolve(ctx context.Context, alert *entities.EmergencyAlert) error {
	if m.ResolveFunc != nil {
		return m.ResolveFunc(ctx, alert)
	}
	return nil
}

var _ repositories.AlertRepository = (*mockAlertRepo)(nil)

type mockPublisher struct {
	published []*entities.EmergencyAlert
	err       error
}

func (m *mockPublisher) PublishAlert(ctx context.Context, alert *entities.EmergencyAlert) error {
	m.published = append(m.published, alert)
	return m.err
}

var _ Publisher = (*mockPublisher)(nil)

func TestRaise(t *testing.T) {
	pub := &mockPublisher{}
	svc := NewService(&mockAlertRepo{}, pub, nil, nil)
	location := "40.7,-74.0"

	alert, err := svc.Raise(context.Background(), "patient-1", "  ", &location)

	require.NoError(t, err)
	assert.Equal(t, "alert-1", alert.ID)
	assert.Equal(t, manualReason, alert.Reason)
	assert.Equal(t, entities.AlertSourceManual, alert.Source)
	assert.Equal(t, entities.AlertStatusActive, alert.Status)
	assert.Equal(t, &location, alert.Location)
	require.Len(t, pub.published, 1)
	assert.Same(t, alert, pub.published[0])
}

func TestRaise_RequiresPatient(t *testing.T) {
	svc := NewService(&mockAlertRepo{}, nil, nil, nil)

	_, err := svc.Raise(context.Background(), "", "help", nil)

	assert.ErrorIs(t, err, usecaseErrors.ErrInvalidInput)
}

func TestCreate_PublishFailureIsNotFatal(t *testing.T) {
	pub := &mockPublisher{err: errors.New("redis down")}
	svc := NewService(&mockAlertRepo{}, pub, nil, nil)

	err := svc.Create(context.Background(), &entities.EmergencyAlert{PatientID: "p", Reason: "pain", Source: entities.AlertSourceVoice})

	assert.NoError(t, err)
	assert.Len(t, pub.published, 1)
}

func TestCreate_StoreFailure(t *testing.T) {
	pub := &mockPublisher{}
	repo := &mockAlertRepo{CreateFunc: func(ctx context.Context, alert *entities.EmergencyAlert) error {
		return errors.New("db down")
	}}
	svc := NewService(repo, pub, nil, nil)

	err := svc.Create(context.Background(), &entities.EmergencyAlert{PatientID: "p", Reason: "pain"})

	assert.Error(t, err)
	assert.Empty(t, pub.published)
}

func TestListActive_Limits(t *testing.T) {
	var gotLimit int
	repo := &mockAlertRepo{ListByStatusFunc: func(ctx context.Context, status entities.AlertStatus, limit int) ([]*entities.EmergencyAlert, error) {
		assert.Equal(t, entities.AlertStatusActive, status)
		gotLimit = limit
		return nil, nil
	}}
	svc := NewService(repo, nil, nil, nil)

	_, err := svc.ListActive(context.Background(), 0)
	require.NoError(t, err)
	assert.Equal(t, 5, gotLimit)

	_, err = svc.ListActive(context.Background(), 1000)
	require.NoError(t, err)
	assert.Equal(t, 100, gotLimit)
}

func TestResolve(t *testing.T) {
	fixed := time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)

	t.Run("active alert", func(t *testing.T) {
		pub := &mockPublisher{}
		repo := &mockAlertRepo{FindByIDFunc: func(ctx context.Context, id string) (*entities.EmergencyAlert, error) {
			return &entities.EmergencyAlert{ID: id, Status: entities.AlertStatusActive}, nil
		}}
		svc := NewService(repo, pub, nil, nil)
		svc.now = func() time.Time { return fixed }

		alert, err := svc.Resolve(context.Background(), "a1", "doctor-1")

		require.NoError(t, err)
		assert.Equal(t, entities.AlertStatusResolved, alert.Status)
		require.NotNil(t, alert.ResolvedBy)
		assert.Equal(t, "doctor-1", *alert.ResolvedBy)
		require.NotNil(t, alert.ResolvedAt)
		assert.True(t, alert.ResolvedAt.Equal(fixed))
		assert.Len(t, pub.published, 1)
	})

	t.Run("already resolved", func(t *testing.T) {
		repo := &mockAlertRepo{FindByIDFunc: func(ctx context.Context, id string) (*entities.EmergencyAlert, error) {
			return &entities.EmergencyAlert{ID: id, Status: entities.AlertStatusResolved}, nil
		}}
		svc := NewService(repo, nil, nil, nil)

		_, err := svc.Resolve(context.Background(), "a1", "doctor-1")

		assert.ErrorIs(t, err, usecaseErrors.ErrAlertAlreadyResolved)
	})

	t.Run("lost race", func(t *testing.T) {
		repo := &mockAlertRepo{
			FindByIDFunc: func(ctx context.Context, id string) (*entities.EmergencyAlert, error) {
				return &entities.EmergencyAlert{ID: id, Status: entities.AlertStatusActive}, nil
			},
			ResolveFunc: func(ctx context.Context, alert *entities.EmergencyAlert) error {
				return repositories.ErrRecordNotFound
			},
		}
		svc := NewService(repo, nil, nil, nil)

		_, err := svc.Resolve(context.Background(), "a1", "doctor-1")

		assert.ErrorIs(t, err, usecaseErrors.ErrAlertAlreadyResolved)
	})

	t.Run("not found", func(t *testing.T) {
		repo := &mockAlertRepo{FindByIDFunc: func(ctx context.Context, id string) (*entities.EmergencyAlert, error) {
			return nil, repositories.ErrRecordNotFound
		}}
		svc := NewService(repo, nil, nil, nil)

		_, err := svc.Resolve(context.Background(), "missing", "doctor-1")

		assert.ErrorIs(t, err, usecaseErrors.ErrAlertNotFound)
	})
}

func TestSubscribe_NotConfigured(t *testing.T) {
	svc := NewService(&mockAlertRepo{}, nil, nil, nil)

	_, err := svc.Subscribe(context.Background())

	assert.Error(t, err)
}
