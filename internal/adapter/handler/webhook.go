package handler

import (
	"context"
	stdErrors "errors"
	"io"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/livekit/protocol/auth"
	"github.com/livekit/protocol/livekit"
	"github.com/livekit/protocol/webhook"
	"go.uber.org/zap"
	"google.golang.org/protobuf/encoding/protojson"

	"github.com/johnquangdev/telehealth-assistant/errors"
	assistantDTO "github.com/johnquangdev/telehealth-assistant/internal/adapter/dto/assistant"
	"github.com/johnquangdev/telehealth-assistant/internal/adapter/presenter"
	"github.com/johnquangdev/telehealth-assistant/internal/usecase/assistant"
	usecaseErrors "github.com/johnquangdev/telehealth-assistant/internal/usecase/errors"
	pkgai "github.com/johnquangdev/telehealth-assistant/pkg/ai"
)

const (
	eventRoomFinished = "room_finished"
	maxWebhookBody    = 1 << 20
)

// RoomFinisher completes the appointment bound to a finished room
type RoomFinisher interface {
	HandleRoomFinished(ctx context.Context, roomName string) error
}

// WebhookHandler handles LiveKit and voice agent webhooks
type WebhookHandler struct {
	rooms           RoomFinisher
	dispatcher      CommandDispatcher
	keyProvider     auth.KeyProvider
	voiceSecret     string
	classifyTimeout time.Duration
	logger          *zap.Logger
}

// NewWebhookHandler creates a new webhook handler. LiveKit events are
// verified with the API key pair, voice agent payloads with voiceSecret.
// classifyTimeout applies to voice agent dispatches as it does to
// /assistant/commands.
func NewWebhookHandler(
	rooms RoomFinisher,
	dispatcher CommandDispatcher,
	livekitAPIKey, livekitSecret, voiceSecret string,
	classifyTimeout time.Duration,
	logger *zap.Logger,
) *WebhookHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &WebhookHandler{
		rooms:           rooms,
		dispatcher:      dispatcher,
		keyProvider:     auth.NewSimpleKeyProvider(livekitAPIKey, livekitSecret),
		voiceSecret:     voiceSecret,
		classifyTimeout: classifyTimeout,
		logger:          logger,
	}
}

// HandleLiveKitWebhook processes LiveKit webhook events
// @Summary      LiveKit Webhook
// @Description  Receives signed webhook events from LiveKit; room_finished completes the appointment
// @Tags         Webhooks
// @Accept       json
// @Produce      json
// @Success      200  {object}  common.SuccessResponse
// @Failure      401  {object}  common.ErrorResponse
// @Router       /webhooks/livekit [post]
func (h *WebhookHandler) HandleLiveKitWebhook(c echo.Context) error {
	event, err := webhook.ReceiveWebhookEvent(c.Request(), h.keyProvider)
	if err != nil {
		h.logger.Warn("livekit webhook rejected", zap.Error(err))
		return HandleError(h.logger, c, errors.ErrInvalidSignature("livekit"))
	}

	h.logger.Info("livekit webhook received",
		zap.String("event", event.GetEvent()),
		zap.String("room", event.GetRoom().GetName()),
		zap.String("payload", protojson.Format(event)))

	if event.GetEvent() == eventRoomFinished {
		h.roomFinished(c.Request().Context(), event.GetRoom())
	}

	// LiveKit retries non-2xx answers; unknown rooms are acknowledged too
	return HandleSuccess(h.logger, c, map[string]string{"status": "ok"})
}

func (h *WebhookHandler) roomFinished(ctx context.Context, room *livekit.Room) {
	name := room.GetName()
	if name == "" {
		return
	}
	err := h.rooms.HandleRoomFinished(context.WithoutCancel(ctx), name)
	switch {
	case err == nil:
	case stdErrors.Is(err, usecaseErrors.ErrNoChannelForRoom):
		h.logger.Debug("finished room has no appointment", zap.String("room", name))
	default:
		h.logger.Error("failed to complete appointment for room",
			zap.String("room", name), zap.Error(err))
	}
}

// HandleVoiceWebhook dispatches a transcript from the external voice agent
// @Summary      Voice agent webhook
// @Description  HMAC-SHA256 signed transcript (X-Voice-Signature) dispatched on behalf of caller_id
// @Tags         Webhooks
// @Accept       json
// @Produce      json
// @Param        X-Voice-Signature  header    string                             true  "hex HMAC-SHA256 of the body"
// @Param        request            body      assistant.VoiceWebhookRequest  true  "Transcript"
// @Success      200                {object}  common.SuccessResponse{data=assistant.CommandResponse}
// @Failure      401                {object}  common.ErrorResponse
// @Router       /webhooks/voice [post]
func (h *WebhookHandler) HandleVoiceWebhook(c echo.Context) error {
	body, err := io.ReadAll(io.LimitReader(c.Request().Body, maxWebhookBody))
	if err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidPayload())
	}
	if !pkgai.VerifyHMAC(h.voiceSecret, body, c.Request().Header.Get(pkgai.SignatureHeader)) {
		return HandleError(h.logger, c, errors.ErrInvalidSignature("voice"))
	}

	var req assistantDTO.VoiceWebhookRequest
	if err := decodeJSON(body, &req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidPayload())
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument(err.Error()))
	}

	ctx, cancel := withTimeout(c.Request().Context(), h.classifyTimeout)
	defer cancel()

	res, err := h.dispatcher.Dispatch(ctx, assistant.Command{
		Transcript: req.Transcript,
		CallerID:   req.CallerID,
		Anchor:     anchorOrNow(req.Anchor),
	})
	if err != nil && res == nil {
		return HandleError(h.logger, c, err)
	}
	if err != nil {
		// the agent only needs the confirmation it should read out
		h.logger.Warn("voice webhook command incomplete",
			zap.String("caller_id", req.CallerID), zap.Error(err))
	}
	return HandleSuccess(h.logger, c, presenter.ToCommandResponse(res, ""))
}
