package appointment

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/johnquangdev/telehealth-assistant/internal/domain/entities"
	"github.com/johnquangdev/telehealth-assistant/internal/domain/repositories"
	"github.com/johnquangdev/telehealth-assistant/internal/infrastructure/external/livekit"
	usecaseErrors "github.com/johnquangdev/telehealth-assistant/internal/usecase/errors"
)

const defaultListLimit = 50

// Service manages appointments and their video call rooms
type Service struct {
	repo   repositories.AppointmentRepository
	rooms  livekit.Client
	logger *zap.Logger
}

// NewService creates a new appointment service
func NewService(repo repositories.AppointmentRepository, rooms livekit.Client, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		repo:   repo,
		rooms:  rooms,
		logger: logger,
	}
}

// ListUpcoming returns the actor's open appointments soonest first. Patients
// see their own bookings, doctors see their queue.
func (s *Service) ListUpcoming(ctx context.Context, actor entities.Actor, limit int) ([]*entities.Appointment, error) {
	if limit <= 0 || limit > defaultListLimit {
		limit = defaultListLimit
	}
	filters := repositories.AppointmentFilters{
		Statuses: []entities.AppointmentStatus{
			entities.AppointmentStatusUpcoming,
			entities.AppointmentStatusScheduled,
		},
		Limit: limit,
	}
	if actor.IsDoctor() {
		filters.DoctorID = actor.ID
	} else {
		filters.PatientID = actor.ID
	}
	return s.repo.List(ctx, filters)
}

// Get returns an appointment the actor takes part in
func (s *Service) Get(ctx context.Context, id string, actor entities.Actor) (*entities.Appointment, error) {
	appointment, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrRecordNotFound) {
			return nil, usecaseErrors.ErrAppointmentNotFound
		}
		return nil, fmt.Errorf("failed to load appointment: %w", err)
	}
	if !appointment.HasMember(actor.ID) {
		return nil, usecaseErrors.ErrNotAppointmentMember
	}
	return appointment, nil
}

// UpdateStatus moves the appointment to status
func (s *Service) UpdateStatus(ctx context.Context, id string, actor entities.Actor, status entities.AppointmentStatus) (*entities.Appointment, error) {
	if !status.IsValid() {
		return nil, usecaseErrors.ErrInvalidStatus
	}
	appointment, err := s.Get(ctx, id, actor)
	if err != nil {
		return nil, err
	}
	if !appointment.CanTransitionTo(status) {
		return nil, usecaseErrors.ErrInvalidTransition
	}

	if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		return nil, fmt.Errorf("failed to update appointment status: %w", err)
	}
	s.logger.Info("appointment status changed",
		zap.String("appointment_id", id),
		zap.String("from", string(appointment.Status)),
		zap.String("to", string(status)),
		zap.String("actor_id", actor.ID))

	appointment.Status = status
	return appointment, nil
}

// StartCall provisions the video room named after the appointment channel.
// Calling it again while the room exists returns the same room.
func (s *Service) StartCall(ctx context.Context, id string, actor entities.Actor) (*entities.Appointment, error) {
	appointment, err := s.Get(ctx, id, actor)
	if err != nil {
		return nil, err
	}
	if appointment.Status.IsTerminal() {
		return nil, usecaseErrors.ErrAppointmentClosed
	}
	if appointment.RTCRoomSID != nil {
		return appointment, nil
	}

	room, err := s.rooms.CreateRoom(ctx, appointment.ChannelID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", usecaseErrors.ErrLivekitRoom, err)
	}
	if err := s.repo.SetRoomSID(ctx, id, &room.SID); err != nil {
		return nil, fmt.Errorf("failed to store room sid: %w", err)
	}

	s.logger.Info("call room created",
		zap.String("appointment_id", id),
		zap.String("room", room.Name),
		zap.String("room_sid", room.SID))

	appointment.RTCRoomSID = &room.SID
	return appointment, nil
}

// EndCall tears down the room and completes the appointment
func (s *Service) EndCall(ctx context.Context, id string, actor entities.Actor) (*entities.Appointment, error) {
	appointment, err := s.Get(ctx, id, actor)
	if err != nil {
		return nil, err
	}

	if appointment.RTCRoomSID != nil {
		if err := s.rooms.DeleteRoom(ctx, appointment.ChannelID); err != nil {
			// the room may already be gone after the empty timeout
			s.logger.Warn("failed to delete call room",
				zap.String("appointment_id", id),
				zap.Error(err))
		}
	}

	if err := s.complete(ctx, appointment); err != nil {
		return nil, err
	}
	return appointment, nil
}

// HandleRoomFinished completes the appointment whose channel is roomName
func (s *Service) HandleRoomFinished(ctx context.Context, roomName string) error {
	appointment, err := s.repo.FindByChannelID(ctx, roomName)
	if err != nil {
		if errors.Is(err, repositories.ErrRecordNotFound) {
			return usecaseErrors.ErrNoChannelForRoom
		}
		return fmt.Errorf("failed to load appointment: %w", err)
	}
	return s.complete(ctx, appointment)
}

func (s *Service) complete(ctx context.Context, appointment *entities.Appointment) error {
	if appointment.RTCRoomSID != nil {
		if err := s.repo.SetRoomSID(ctx, appointment.ID, nil); err != nil {
			return fmt.Errorf("failed to clear room sid: %w", err)
		}
		appointment.RTCRoomSID = nil
	}
	if appointment.Status.IsTerminal() {
		return nil
	}

	if err := s.repo.UpdateStatus(ctx, appointment.ID, entities.AppointmentStatusCompleted); err != nil {
		return fmt.Errorf("failed to complete appointment: %w", err)
	}
	appointment.Status = entities.AppointmentStatusCompleted
	s.logger.Info("appointment completed", zap.String("appointment_id", appointment.ID))
	return nil
}
