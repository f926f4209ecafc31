package handler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/johnquangdev/telehealth-assistant/errors"
	appointmentDTO "github.com/johnquangdev/telehealth-assistant/internal/adapter/dto/appointment"
	"github.com/johnquangdev/telehealth-assistant/internal/adapter/presenter"
	"github.com/johnquangdev/telehealth-assistant/internal/domain/entities"
	aiUsecase "github.com/johnquangdev/telehealth-assistant/internal/usecase/ai"
)

// AppointmentService is the appointment use case consumed by the handler
type AppointmentService interface {
	ListUpcoming(ctx context.Context, actor entities.Actor, limit int) ([]*entities.Appointment, error)
	Get(ctx context.Context, id string, actor entities.Actor) (*entities.Appointment, error)
	UpdateStatus(ctx context.Context, id string, actor entities.Actor, status entities.AppointmentStatus) (*entities.Appointment, error)
	StartCall(ctx context.Context, id string, actor entities.Actor) (*entities.Appointment, error)
	EndCall(ctx context.Context, id string, actor entities.Actor) (*entities.Appointment, error)
}

// CallSummarizer produces and reads consultation summaries
type CallSummarizer interface {
	SummarizeCall(ctx context.Context, appointmentID string, actor entities.Actor, transcript string) (*entities.CallSummary, error)
	GetSummary(ctx context.Context, appointmentID string, actor entities.Actor) (*aiUsecase.SummaryView, error)
}

// Appointment handles appointment-related HTTP requests
type Appointment struct {
	appointments AppointmentService
	summaries    CallSummarizer
	logger       *zap.Logger
}

// NewAppointmentHandler creates a new appointment handler
func NewAppointmentHandler(appointments AppointmentService, summaries CallSummarizer, logger *zap.Logger) *Appointment {
	return &Appointment{
		appointments: appointments,
		summaries:    summaries,
		logger:       logger,
	}
}

// List handles GET /appointments
// @Summary      List upcoming appointments
// @Description  Patients see their own appointments, doctors their queue
// @Tags         Appointments
// @Produce      json
// @Security     BearerAuth
// @Param        limit  query     int  false  "Max results (1-100)"
// @Success      200    {object}  common.SuccessResponse{data=appointment.AppointmentListResponse}
// @Failure      401    {object}  common.ErrorResponse
// @Router       /appointments [get]
func (h *Appointment) List(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	var req appointmentDTO.ListAppointmentsRequest
	if err := bindAndValidate(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}

	items, err := h.appointments.ListUpcoming(c.Request().Context(), actor, req.Limit)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, presenter.ToAppointmentListResponse(items))
}

// Get handles GET /appointments/:id
// @Summary      Get appointment
// @Tags         Appointments
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Appointment ID"
// @Success      200  {object}  common.SuccessResponse{data=appointment.AppointmentResponse}
// @Failure      403  {object}  common.ErrorResponse
// @Failure      404  {object}  common.ErrorResponse
// @Router       /appointments/{id} [get]
func (h *Appointment) Get(c echo.Context) error {
	return h.withAppointment(c, h.appointments.Get)
}

// UpdateStatus handles PATCH /appointments/:id/status
// @Summary      Change appointment status
// @Description  Completed and cancelled are final
// @Tags         Appointments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string                            true  "Appointment ID"
// @Param        request  body      appointment.UpdateStatusRequest  true  "New status"
// @Success      200      {object}  common.SuccessResponse{data=appointment.AppointmentResponse}
// @Failure      400      {object}  common.ErrorResponse
// @Failure      409      {object}  common.ErrorResponse
// @Router       /appointments/{id}/status [patch]
func (h *Appointment) UpdateStatus(c echo.Context) error {
	var req appointmentDTO.UpdateStatusRequest
	if err := bindAndValidate(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}
	return h.withAppointment(c, func(ctx context.Context, id string, actor entities.Actor) (*entities.Appointment, error) {
		return h.appointments.UpdateStatus(ctx, id, actor, entities.AppointmentStatus(req.Status))
	})
}

// StartCall handles POST /appointments/:id/call/start
// @Summary      Start the video call
// @Description  Provisions the LiveKit room of the appointment channel
// @Tags         Appointments
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Appointment ID"
// @Success      200  {object}  common.SuccessResponse{data=appointment.AppointmentResponse}
// @Failure      409  {object}  common.ErrorResponse
// @Failure      500  {object}  common.ErrorResponse
// @Router       /appointments/{id}/call/start [post]
func (h *Appointment) StartCall(c echo.Context) error {
	return h.withAppointment(c, h.appointments.StartCall)
}

// EndCall handles POST /appointments/:id/call/end
// @Summary      End the video call
// @Description  Deletes the LiveKit room and completes the appointment
// @Tags         Appointments
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Appointment ID"
// @Success      200  {object}  common.SuccessResponse{data=appointment.AppointmentResponse}
// @Router       /appointments/{id}/call/end [post]
func (h *Appointment) EndCall(c echo.Context) error {
	return h.withAppointment(c, h.appointments.EndCall)
}

// Summarize handles POST /appointments/:id/summary
// @Summary      Summarize a consultation
// @Description  Generates the AI summary of the call transcript and archives the transcript
// @Tags         Appointments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string                             true  "Appointment ID"
// @Param        request  body      appointment.SummarizeCallRequest  true  "Call transcript"
// @Success      201      {object}  common.SuccessResponse{data=appointment.CallSummaryResponse}
// @Failure      400      {object}  common.ErrorResponse
// @Failure      500      {object}  common.ErrorResponse
// @Router       /appointments/{id}/summary [post]
func (h *Appointment) Summarize(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	var req appointmentDTO.SummarizeCallRequest
	if err := bindAndValidate(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}

	summary, err := h.summaries.SummarizeCall(c.Request().Context(), c.Param("id"), actor, req.Transcript)
	if err != nil {
		if appErr := toAppError(c, err); appErr.Code == errors.ErrorCode_INTERNAL {
			return HandleError(h.logger, c, errors.ErrAISummaryFailed(err))
		}
		return HandleError(h.logger, c, err)
	}
	return HandleSuccessStatus(h.logger, c, http.StatusCreated,
		presenter.ToCallSummaryResponse(&aiUsecase.SummaryView{Summary: summary}))
}

// GetSummary handles GET /appointments/:id/summary
// @Summary      Get consultation summary
// @Tags         Appointments
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Appointment ID"
// @Success      200  {object}  common.SuccessResponse{data=appointment.CallSummaryResponse}
// @Failure      404  {object}  common.ErrorResponse
// @Router       /appointments/{id}/summary [get]
func (h *Appointment) GetSummary(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	view, err := h.summaries.GetSummary(c.Request().Context(), c.Param("id"), actor)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, presenter.ToCallSummaryResponse(view))
}

type appointmentAction func(ctx context.Context, id string, actor entities.Actor) (*entities.Appointment, error)

func (h *Appointment) withAppointment(c echo.Context, action appointmentAction) error {
	actor, err := actorFrom(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	appointment, err := action(c.Request().Context(), c.Param("id"), actor)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, presenter.ToAppointmentResponse(appointment))
}
