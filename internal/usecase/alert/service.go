package alert

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/johnquangdev/telehealth-assistant/internal/domain/entities"
	"github.com/johnquangdev/telehealth-assistant/internal/domain/repositories"
	usecaseErrors "github.com/johnquangdev/telehealth-assistant/internal/usecase/errors"
)

const (
	defaultActiveLimit = 5
	maxActiveLimit     = 100
	manualReason       = "Emergency button pressed"
)

// Publisher fans alert changes out to live consumers
type Publisher interface {
	PublishAlert(ctx context.Context, alert *entities.EmergencyAlert) error
}

// Subscriber streams alert changes until ctx is done
type Subscriber interface {
	SubscribeAlerts(ctx context.Context) (<-chan *entities.EmergencyAlert, error)
}

// Service manages emergency alerts for the doctor dashboard
type Service struct {
	repo       repositories.AlertRepository
	publisher  Publisher
	subscriber Subscriber
	logger     *zap.Logger
	now        func() time.Time
}

// NewService creates an alert service. publisher and subscriber may be nil
// when no broker is configured.
func NewService(repo repositories.AlertRepository, publisher Publisher, subscriber Subscriber, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		repo:       repo,
		publisher:  publisher,
		subscriber: subscriber,
		logger:     logger,
		now:        time.Now,
	}
}

// Create persists alert and publishes it. Publish failures are logged only;
// the stored alert is the source of truth.
func (s *Service) Create(ctx context.Context, alert *entities.EmergencyAlert) error {
	if alert.Status == "" {
		alert.Status = entities.AlertStatusActive
	}
	if err := s.repo.Create(ctx, alert); err != nil {
		return fmt.Errorf("failed to create alert: %w", err)
	}

	s.logger.Info("emergency alert raised",
		zap.String("alert_id", alert.ID),
		zap.String("patient_id", alert.PatientID),
		zap.String("source", string(alert.Source)))
	s.publish(ctx, alert)
	return nil
}

// Raise creates an alert from the manual emergency button
func (s *Service) Raise(ctx context.Context, patientID, reason string, location *string) (*entities.EmergencyAlert, error) {
	if patientID == "" {
		return nil, usecaseErrors.ErrInvalidInput
	}
	reason = strings.TrimSpace(reason)
	if reason == "" {
		reason = manualReason
	}

	alert := &entities.EmergencyAlert{
		PatientID: patientID,
		Reason:    reason,
		Status:    entities.AlertStatusActive,
		Source:    entities.AlertSourceManual,
		Location:  location,
	}
	if err := s.Create(ctx, alert); err != nil {
		return nil, err
	}
	return alert, nil
}

// ListActive returns active alerts newest first
func (s *Service) ListActive(ctx context.Context, limit int) ([]*entities.EmergencyAlert, error) {
	if limit <= 0 {
		limit = defaultActiveLimit
	}
	if limit > maxActiveLimit {
		limit = maxActiveLimit
	}
	return s.repo.ListByStatus(ctx, entities.AlertStatusActive, limit)
}

// Resolve marks an active alert as handled by doctorID
func (s *Service) Resolve(ctx context.Context, id, doctorID string) (*entities.EmergencyAlert, error) {
	alert, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrRecordNotFound) {
			return nil, usecaseErrors.ErrAlertNotFound
		}
		return nil, fmt.Errorf("failed to load alert: %w", err)
	}
	if !alert.IsActive() {
		return nil, usecaseErrors.ErrAlertAlreadyResolved
	}

	alert.Resolve(doctorID, s.now())
	if err := s.repo.Resolve(ctx, alert); err != nil {
		// another doctor got there first
		if errors.Is(err, repositories.ErrRecordNotFound) {
			return nil, usecaseErrors.ErrAlertAlreadyResolved
		}
		return nil, fmt.Errorf("failed to resolve alert: %w", err)
	}

	s.logger.Info("emergency alert resolved",
		zap.String("alert_id", alert.ID),
		zap.String("doctor_id", doctorID))
	s.publish(ctx, alert)
	return alert, nil
}

// Subscribe streams alert changes until ctx is done
func (s *Service) Subscribe(ctx context.Context) (<-chan *entities.EmergencyAlert, error) {
	if s.subscriber == nil {
		return nil, fmt.Errorf("alert stream is not configured")
	}
	return s.subscriber.SubscribeAlerts(ctx)
}

func (s *Service) publish(ctx context.Context, alert *entities.EmergencyAlert) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishAlert(context.WithoutCancel(ctx), alert); err != nil {
		s.logger.Warn("failed to publish alert",
			zap.String("alert_id", alert.ID),
			zap.Error(err))
	}
}
