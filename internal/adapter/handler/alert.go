package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	alertDTO "github.com/johnquangdev/telehealth-assistant/internal/adapter/dto/alert"
	"github.com/johnquangdev/telehealth-assistant/internal/adapter/presenter"
	"github.com/johnquangdev/telehealth-assistant/internal/domain/entities"
)

const (
	streamWriteWait  = 10 * time.Second
	streamPongWait   = 60 * time.Second
	streamPingPeriod = (streamPongWait * 9) / 10
)

// AlertService is the emergency alert use case consumed by the handler
type AlertService interface {
	ListActive(ctx context.Context, limit int) ([]*entities.EmergencyAlert, error)
	Raise(ctx context.Context, patientID, reason string, location *string) (*entities.EmergencyAlert, error)
	Resolve(ctx context.Context, id, doctorID string) (*entities.EmergencyAlert, error)
	Subscribe(ctx context.Context) (<-chan *entities.EmergencyAlert, error)
}

// Alert handles emergency alert requests and the doctor dashboard stream
type Alert struct {
	alerts   AlertService
	upgrader websocket.Upgrader
	logger   *zap.Logger
}

// NewAlertHandler creates the alert handler. Websocket upgrades are accepted
// from allowedOrigins only; an empty list accepts same-origin requests.
func NewAlertHandler(alerts AlertService, allowedOrigins []string, logger *zap.Logger) *Alert {
	origins := make(map[string]struct{}, len(allowedOrigins))
	for _, o := range allowedOrigins {
		origins[o] = struct{}{}
	}

	h := &Alert{alerts: alerts, logger: logger}
	h.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
	}
	if len(origins) > 0 {
		h.upgrader.CheckOrigin = func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			if origin == "" {
				return true
			}
			_, ok := origins[origin]
			return ok
		}
	}
	return h
}

// List handles GET /alerts
// @Summary      Active emergency alerts
// @Description  Newest first, for the doctor dashboard
// @Tags         Alerts
// @Produce      json
// @Security     BearerAuth
// @Param        limit  query     int  false  "Max results (1-100, default 5)"
// @Success      200    {object}  common.SuccessResponse{data=alert.AlertListResponse}
// @Failure      403    {object}  common.ErrorResponse
// @Router       /alerts [get]
func (h *Alert) List(c echo.Context) error {
	var req alertDTO.ListAlertsRequest
	if err := bindAndValidate(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}

	items, err := h.alerts.ListActive(c.Request().Context(), req.Limit)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, presenter.ToAlertListResponse(items))
}

// Raise handles POST /alerts
// @Summary      Raise an emergency alert
// @Description  The emergency button; the caller is the patient
// @Tags         Alerts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body      alert.RaiseAlertRequest  false  "Reason and location"
// @Success      201      {object}  common.SuccessResponse{data=alert.AlertResponse}
// @Failure      400      {object}  common.ErrorResponse
// @Router       /alerts [post]
func (h *Alert) Raise(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	var req alertDTO.RaiseAlertRequest
	if err := bindAndValidate(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}

	a, err := h.alerts.Raise(context.WithoutCancel(c.Request().Context()), actor.ID, req.Reason, req.Location)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccessStatus(h.logger, c, http.StatusCreated, presenter.ToAlertResponse(a))
}

// Resolve handles POST /alerts/:id/resolve
// @Summary      Resolve an emergency alert
// @Tags         Alerts
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Alert ID"
// @Success      200  {object}  common.SuccessResponse{data=alert.AlertResponse}
// @Failure      404  {object}  common.ErrorResponse
// @Failure      409  {object}  common.ErrorResponse  "Already resolved"
// @Router       /alerts/{id}/resolve [post]
func (h *Alert) Resolve(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	a, err := h.alerts.Resolve(c.Request().Context(), c.Param("id"), actor.ID)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, presenter.ToAlertResponse(a))
}

// Stream handles GET /alerts/stream
// @Summary      Alert stream
// @Description  Websocket pushing every created or resolved alert as JSON. The token may be passed as access_token query parameter.
// @Tags         Alerts
// @Security     BearerAuth
// @Success      101
// @Router       /alerts/stream [get]
func (h *Alert) Stream(c echo.Context) error {
	ctx, cancel := context.WithCancel(c.Request().Context())
	defer cancel()

	events, err := h.alerts.Subscribe(ctx)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	conn, err := h.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		// the upgrader has already written the HTTP error
		if h.logger != nil {
			h.logger.Warn("alert stream upgrade failed", zap.Error(err))
		}
		return nil
	}
	defer conn.Close()

	// Reader: only control frames are expected; a read error means the
	// dashboard went away.
	conn.SetReadLimit(512)
	_ = conn.SetReadDeadline(time.Now().Add(streamPongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(streamPongWait))
	})
	go func() {
		defer cancel()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(streamPingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			_ = conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
				time.Now().Add(streamWriteWait))
			return nil
		case a, ok := <-events:
			if !ok {
				return nil
			}
			_ = conn.SetWriteDeadline(time.Now().Add(streamWriteWait))
			if err := conn.WriteJSON(presenter.ToAlertResponse(a)); err != nil {
				if h.logger != nil {
					h.logger.Debug("alert stream write failed", zap.Error(err))
				}
				return nil
			}
		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(streamWriteWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return nil
			}
		}
	}
}
