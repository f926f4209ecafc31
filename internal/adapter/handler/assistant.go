package handler

import (
	"context"
	stdErrors "errors"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/johnquangdev/telehealth-assistant/errors"
	assistantDTO "github.com/johnquangdev/telehealth-assistant/internal/adapter/dto/assistant"
	"github.com/johnquangdev/telehealth-assistant/internal/adapter/presenter"
	"github.com/johnquangdev/telehealth-assistant/internal/domain/entities"
	aiUsecase "github.com/johnquangdev/telehealth-assistant/internal/usecase/ai"
	"github.com/johnquangdev/telehealth-assistant/internal/usecase/assistant"
)

// CommandDispatcher runs a voice command through the pipeline
type CommandDispatcher interface {
	Dispatch(ctx context.Context, cmd assistant.Command) (*assistant.Result, error)
}

// IntentClassifier classifies without acting
type IntentClassifier interface {
	Classify(ctx context.Context, transcript string, anchor time.Time) (*entities.ClassifiedIntent, error)
}

// Transcriber turns a recorded command into text
type Transcriber interface {
	TranscribeURL(ctx context.Context, audioURL string) (string, error)
}

// HealthAdvisor runs the assistant's LLM flows for symptom triage and
// medication reminders
type HealthAdvisor interface {
	AnalyzeSymptoms(ctx context.Context, patientID, description string) (*aiUsecase.SymptomAnalysisResult, error)
	SetMedicationReminder(ctx context.Context, reminder entities.MedicationReminder) (*entities.ReminderConfirmation, error)
}

// Assistant handles the voice command endpoints
type Assistant struct {
	dispatcher      CommandDispatcher
	classifier      IntentClassifier
	transcriber     Transcriber
	advisor         HealthAdvisor
	classifyTimeout time.Duration
	logger          *zap.Logger
}

// NewAssistantHandler creates the assistant handler. classifyTimeout bounds
// the classification step of each request; zero disables it.
func NewAssistantHandler(
	dispatcher CommandDispatcher,
	classifier IntentClassifier,
	transcriber Transcriber,
	advisor HealthAdvisor,
	classifyTimeout time.Duration,
	logger *zap.Logger,
) *Assistant {
	return &Assistant{
		dispatcher:      dispatcher,
		classifier:      classifier,
		transcriber:     transcriber,
		advisor:         advisor,
		classifyTimeout: classifyTimeout,
		logger:          logger,
	}
}

// Command handles POST /assistant/commands
// @Summary      Dispatch a voice command
// @Description  Classifies the transcript and performs the matching action for the caller
// @Tags         Assistant
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body      assistant.CommandRequest  true  "Voice command"
// @Success      200      {object}  common.SuccessResponse{data=assistant.CommandResponse}
// @Failure      400      {object}  common.ErrorResponse
// @Failure      422      {object}  common.ErrorResponse  "Command understood but a slot is missing"
// @Failure      502      {object}  common.ErrorResponse  "Classification failed"
// @Router       /assistant/commands [post]
func (h *Assistant) Command(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	var req assistantDTO.CommandRequest
	if err := bindAndValidate(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}

	return h.dispatch(c, actor.ID, req.Transcript, req.Anchor, "")
}

// AudioCommand handles POST /assistant/commands/audio
// @Summary      Dispatch a recorded voice command
// @Description  Transcribes the audio with AssemblyAI, then dispatches the transcript
// @Tags         Assistant
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body      assistant.AudioCommandRequest  true  "Audio location"
// @Success      200      {object}  common.SuccessResponse{data=assistant.CommandResponse}
// @Failure      400      {object}  common.ErrorResponse
// @Failure      502      {object}  common.ErrorResponse  "Transcription or classification failed"
// @Router       /assistant/commands/audio [post]
func (h *Assistant) AudioCommand(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	var req assistantDTO.AudioCommandRequest
	if err := bindAndValidate(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}
	if h.transcriber == nil {
		return HandleError(h.logger, c, errors.ErrAIServiceUnavailable("transcription"))
	}

	transcript, err := h.transcriber.TranscribeURL(c.Request().Context(), req.AudioURL)
	if err != nil {
		return HandleError(h.logger, c, errors.ErrTranscriptionFailed(err))
	}
	if strings.TrimSpace(transcript) == "" {
		return HandleError(h.logger, c, errors.ErrEmptyTranscript())
	}

	return h.dispatch(c, actor.ID, transcript, req.Anchor, transcript)
}

// Classify handles POST /assistant/classify
// @Summary      Classify a transcript
// @Description  Returns the intent and slots of a transcript without performing any action
// @Tags         Assistant
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body      assistant.ClassifyRequest  true  "Transcript"
// @Success      200      {object}  common.SuccessResponse{data=assistant.IntentResponse}
// @Failure      400      {object}  common.ErrorResponse
// @Failure      502      {object}  common.ErrorResponse
// @Router       /assistant/classify [post]
func (h *Assistant) Classify(c echo.Context) error {
	var req assistantDTO.ClassifyRequest
	if err := bindAndValidate(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}

	ctx, cancel := h.withClassifyTimeout(c.Request().Context())
	defer cancel()

	intent, err := h.classifier.Classify(ctx, req.Transcript, anchorOrNow(req.Anchor))
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, presenter.ToIntentResponse(intent))
}

// AnalyzeSymptoms handles POST /assistant/symptoms/analyze
// @Summary      Analyze symptoms
// @Description  AI triage of a symptom description; high urgency raises an emergency alert
// @Tags         Assistant
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body      assistant.AnalyzeSymptomsRequest  true  "Symptom description"
// @Success      200      {object}  common.SuccessResponse{data=assistant.SymptomAnalysisResponse}
// @Failure      400      {object}  common.ErrorResponse
// @Failure      500      {object}  common.ErrorResponse
// @Router       /assistant/symptoms/analyze [post]
func (h *Assistant) AnalyzeSymptoms(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	var req assistantDTO.AnalyzeSymptomsRequest
	if err := bindAndValidate(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}

	res, err := h.advisor.AnalyzeSymptoms(c.Request().Context(), actor.ID, req.Description)
	if err != nil {
		if appErr := toAppError(c, err); appErr.Code == errors.ErrorCode_INTERNAL {
			return HandleError(h.logger, c, errors.ErrAIAnalysisFailed(err))
		}
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, presenter.ToSymptomAnalysisResponse(res))
}

// SetMedicationReminder handles POST /assistant/medications/reminders
// @Summary      Set a medication reminder
// @Description  The assistant confirms a reminder for the caller; success is false when it declined
// @Tags         Assistant
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body      assistant.MedicationReminderRequest  true  "Reminder"
// @Success      200      {object}  common.SuccessResponse{data=assistant.MedicationReminderResponse}
// @Failure      400      {object}  common.ErrorResponse
// @Failure      500      {object}  common.ErrorResponse
// @Router       /assistant/medications/reminders [post]
func (h *Assistant) SetMedicationReminder(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	var req assistantDTO.MedicationReminderRequest
	if err := bindAndValidate(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}

	res, err := h.advisor.SetMedicationReminder(c.Request().Context(), entities.MedicationReminder{
		PatientID:      actor.ID,
		MedicationName: req.MedicationName,
		Dosage:         req.Dosage,
		Frequency:      req.Frequency,
		Time:           req.Time,
	})
	if err != nil {
		if appErr := toAppError(c, err); appErr.Code == errors.ErrorCode_INTERNAL {
			return HandleError(h.logger, c, errors.ErrAIReminderFailed(err))
		}
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, presenter.ToMedicationReminderResponse(req.MedicationName, res))
}

// dispatch runs a command for callerID and writes the response. A failed
// escalation alert still answers 200 since the symptom itself was logged.
func (h *Assistant) dispatch(c echo.Context, callerID, transcript string, anchor *time.Time, echoTranscript string) error {
	ctx, cancel := h.withClassifyTimeout(c.Request().Context())
	defer cancel()

	res, err := h.dispatcher.Dispatch(ctx, assistant.Command{
		Transcript: transcript,
		CallerID:   callerID,
		Anchor:     anchorOrNow(anchor),
	})

	var persistErr *assistant.PersistenceError
	if err != nil && res != nil && res.Symptom != nil && stdErrors.As(err, &persistErr) {
		body := presenter.ToCommandResponse(res, echoTranscript)
		body.Warning = "Emergency escalation could not be recorded"
		if h.logger != nil {
			h.logger.Error("symptom escalation failed",
				zap.String("caller_id", callerID),
				zap.String("symptom_id", res.Symptom.ID),
				zap.Error(err))
		}
		return HandleSuccess(h.logger, c, body)
	}
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, presenter.ToCommandResponse(res, echoTranscript))
}

func (h *Assistant) withClassifyTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return withTimeout(ctx, h.classifyTimeout)
}

// withTimeout bounds ctx by d; zero or negative d only adds cancellation
func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, d)
}

func anchorOrNow(anchor *time.Time) time.Time {
	if anchor == nil || anchor.IsZero() {
		return time.Now()
	}
	return *anchor
}
