package handler

import (
	"bytes"
	"encoding/json"
	stdErrors "errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/johnquangdev/telehealth-assistant/errors"
	"github.com/johnquangdev/telehealth-assistant/internal/adapter/dto/common"
	"github.com/johnquangdev/telehealth-assistant/internal/domain/entities"
	httpmw "github.com/johnquangdev/telehealth-assistant/internal/infrastructure/http/middleware"
	"github.com/johnquangdev/telehealth-assistant/internal/usecase/assistant"
	usecaseErrors "github.com/johnquangdev/telehealth-assistant/internal/usecase/errors"
)

// getRequestID tries to read X-Request-ID from the request
func getRequestID(c echo.Context) string {
	if c == nil || c.Request() == nil {
		return ""
	}
	if id := c.Request().Header.Get(echo.HeaderXRequestID); id != "" {
		return id
	}
	return c.Response().Header().Get(echo.HeaderXRequestID)
}

// HandleSuccess writes a standardized success response using provided logger
func HandleSuccess(logger *zap.Logger, c echo.Context, data interface{}) error {
	return HandleSuccessStatus(logger, c, http.StatusOK, data)
}

// HandleSuccessStatus is HandleSuccess with an explicit status code
func HandleSuccessStatus(logger *zap.Logger, c echo.Context, status int, data interface{}) error {
	resp := common.SuccessResponse{
		Code:    int(errors.ErrorCode_HTTP_OK),
		Message: "success",
		Data:    data,
	}

	if logger != nil {
		logger.Info("http.response.success",
			zap.String("request_id", getRequestID(c)),
			zap.String("path", c.Path()),
		)
	}

	return c.JSON(status, resp)
}

// HandleError centralizes error handling and logging using provided logger.
// Use-case and pipeline errors are translated to AppError first.
func HandleError(logger *zap.Logger, c echo.Context, err error) error {
	reqID := getRequestID(c)
	appErr := toAppError(c, err)

	if logger != nil {
		fields := []zap.Field{
			zap.String("request_id", reqID),
			zap.String("path", c.Path()),
			zap.Stringer("app_code", appErr.Code),
			zap.Error(err),
		}
		if appErr.HTTPCode >= http.StatusInternalServerError {
			logger.Error("http.response.error", fields...)
		} else {
			logger.Warn("http.response.error", fields...)
		}
	}

	body := common.ErrorResponse{
		Code:    appErr.Code,
		Message: appErr.Message,
		Details: appErr.Details,
	}
	// Raw causes of server errors stay in the logs
	if appErr.Raw != nil && appErr.HTTPCode < http.StatusInternalServerError {
		body.Info = appErr.Raw.Error()
	}

	return c.JSON(appErr.HTTPCode, body)
}

// toAppError maps the errors returned by use cases onto the HTTP error
// vocabulary. The :id path parameter, when present, is attached as detail.
func toAppError(c echo.Context, err error) errors.AppError {
	var appErr errors.AppError
	if stdErrors.As(err, &appErr) {
		return appErr
	}

	id := c.Param("id")

	var classErr *assistant.ClassificationError
	var slotErr *assistant.IncompleteSlotError
	var persistErr *assistant.PersistenceError

	switch {
	case stdErrors.Is(err, assistant.ErrEmptyTranscript):
		return errors.ErrEmptyTranscript()
	case stdErrors.Is(err, assistant.ErrMissingCaller):
		return errors.ErrInvalidArgument("caller_id is required")
	case stdErrors.As(err, &classErr):
		if classErr.Kind == assistant.FailureTimeout {
			return errors.ErrClassifierTimeout(err)
		}
		return errors.ErrClassificationFailed(err)
	case stdErrors.As(err, &slotErr):
		return errors.ErrIncompleteSlot(slotErr.UserMessage, slotErr.Slot)
	case stdErrors.As(err, &persistErr):
		return errors.ErrPersistenceFailed(persistErr.Record, err)

	case stdErrors.Is(err, usecaseErrors.ErrInvalidInput),
		stdErrors.Is(err, usecaseErrors.ErrInvalidStatus),
		stdErrors.Is(err, usecaseErrors.ErrEmptyCallTranscript):
		return errors.ErrInvalidArgument(err.Error())
	case stdErrors.Is(err, usecaseErrors.ErrUnauthorized):
		return errors.ErrUnauthenticated()
	case stdErrors.Is(err, usecaseErrors.ErrForbidden):
		return errors.ErrForbidden(err.Error())

	case stdErrors.Is(err, usecaseErrors.ErrAppointmentNotFound):
		return errors.ErrAppointmentNotFound(id)
	case stdErrors.Is(err, usecaseErrors.ErrNotAppointmentMember):
		return errors.ErrAppointmentAccessDenied(id)
	case stdErrors.Is(err, usecaseErrors.ErrInvalidTransition),
		stdErrors.Is(err, usecaseErrors.ErrAppointmentClosed):
		return errors.ErrAppointmentInvalidTransition(id, err)
	case stdErrors.Is(err, usecaseErrors.ErrNoChannelForRoom):
		return errors.ErrNotFound("Appointment for room")
	case stdErrors.Is(err, usecaseErrors.ErrLivekitRoom):
		return errors.ErrLiveKitFailed("room", err)

	case stdErrors.Is(err, usecaseErrors.ErrAlertNotFound):
		return errors.ErrAlertNotFound(id)
	case stdErrors.Is(err, usecaseErrors.ErrAlertAlreadyResolved):
		return errors.ErrAlertAlreadyResolved(id)

	case stdErrors.Is(err, usecaseErrors.ErrSummaryNotFound):
		return errors.ErrAISummaryNotFound(id)
	case stdErrors.Is(err, usecaseErrors.ErrNotFound):
		return errors.ErrNotFound("Resource")
	}

	return errors.ErrInternal(err)
}

// bindAndValidate binds the request into req and runs the echo validator
func bindAndValidate(c echo.Context, req interface{}) error {
	if err := c.Bind(req); err != nil {
		return errors.ErrInvalidPayload()
	}
	if err := c.Validate(req); err != nil {
		return errors.ErrInvalidArgument(err.Error())
	}
	return nil
}

// actorFrom returns the authenticated caller set by the auth middleware
func actorFrom(c echo.Context) (entities.Actor, error) {
	actor, ok := httpmw.ActorFromContext(c)
	if !ok {
		return entities.Actor{}, errors.ErrUnauthenticated()
	}
	return actor, nil
}

func decodeJSON(body []byte, v interface{}) error {
	return json.NewDecoder(bytes.NewReader(body)).Decode(v)
}
