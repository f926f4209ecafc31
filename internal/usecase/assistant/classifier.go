package assistant

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/johnquangdev/telehealth-assistant/internal/domain/entities"
	"github.com/johnquangdev/telehealth-assistant/pkg/ai"
)

// ChatCompleter is the LLM endpoint used for classification
type ChatCompleter interface {
	Complete(ctx context.Context, messages []ai.Message, opts ai.CompletionOptions) (string, error)
}

// Classifier maps a transcript to a ClassifiedIntent using an LLM
type Classifier struct {
	llm     ChatCompleter
	profile entities.IntentProfile
	opts    ai.CompletionOptions
	logger  *zap.Logger
}

// NewClassifier creates a classifier for the given intent profile. JSON output
// is always requested from the model.
func NewClassifier(llm ChatCompleter, profile entities.IntentProfile, opts ai.CompletionOptions, logger *zap.Logger) *Classifier {
	if !profile.IsValid() {
		profile = entities.ProfileFull
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	opts.JSON = true
	return &Classifier{
		llm:     llm,
		profile: profile,
		opts:    opts,
		logger:  logger,
	}
}

// Profile returns the intent vocabulary this classifier accepts
func (c *Classifier) Profile() entities.IntentProfile {
	return c.profile
}

// Classify sends transcript to the LLM and validates the reply. An empty
// transcript returns ErrEmptyTranscript without calling the LLM. Every other
// failure is a *ClassificationError; unknown is never substituted for an error.
func (c *Classifier) Classify(ctx context.Context, transcript string, anchor time.Time) (*entities.ClassifiedIntent, error) {
	if strings.TrimSpace(transcript) == "" {
		return nil, ErrEmptyTranscript
	}

	start := time.Now()
	raw, err := c.llm.Complete(ctx, buildMessages(c.profile, transcript, anchor), c.opts)
	if err != nil {
		kind := FailureTransport
		if isTimeout(err) {
			kind = FailureTimeout
		}
		c.logger.Warn("intent classification call failed",
			zap.String("kind", string(kind)),
			zap.Duration("elapsed", time.Since(start)),
			zap.Error(err))
		return nil, &ClassificationError{Kind: kind, Err: err}
	}

	intent, err := parseClassification(raw, c.profile)
	if err != nil {
		c.logger.Warn("malformed classifier output",
			zap.String("profile", string(c.profile)),
			zap.Error(err))
		return nil, &ClassificationError{Kind: FailureMalformed, Err: err}
	}

	c.logger.Debug("transcript classified",
		zap.String("intent", string(intent.Intent)),
		zap.Duration("elapsed", time.Since(start)))
	return intent, nil
}

// classifierOutput is the union of fields both profiles may return
type classifierOutput struct {
	Intent     string   `json:"intent"`
	DateTime   *string  `json:"dateTime"`
	Reason     *string  `json:"reason"`
	Symptom    *string  `json:"symptom"`
	Symptoms   *string  `json:"symptoms"`
	Severity   *string  `json:"severity"`
	Confidence *float64 `json:"confidence"`
}

func parseClassification(raw string, profile entities.IntentProfile) (*entities.ClassifiedIntent, error) {
	body := extractJSON(raw)
	if body == "" {
		return nil, fmt.Errorf("no JSON object in response")
	}

	var out classifierOutput
	if err := json.Unmarshal([]byte(body), &out); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}

	intent := entities.Intent(strings.TrimSpace(out.Intent))
	if !profile.Allows(intent) {
		return nil, fmt.Errorf("intent %q is not in the %s vocabulary", out.Intent, profile)
	}

	result := &entities.ClassifiedIntent{
		Intent:   intent,
		DateTime: deref(out.DateTime),
		Reason:   deref(out.Reason),
		Symptom:  deref(out.Symptom),
		Severity: deref(out.Severity),
	}

	if profile == entities.ProfileCompact {
		if out.Confidence == nil {
			return nil, fmt.Errorf("confidence is required")
		}
		if symptoms := deref(out.Symptoms); symptoms != "" {
			result.Reason = symptoms
			result.Symptom = symptoms
		}
	}

	if out.Confidence != nil {
		if *out.Confidence < 0 || *out.Confidence > 1 {
			return nil, fmt.Errorf("confidence %v out of range [0,1]", *out.Confidence)
		}
		conf := *out.Confidence
		result.Confidence = &conf
	}

	return result, nil
}

// extractJSON strips markdown fences and surrounding prose from an LLM reply
func extractJSON(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimPrefix(s, "```")
		s = strings.TrimSuffix(strings.TrimSpace(s), "```")
		s = strings.TrimSpace(s)
	}

	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start < 0 || end < start {
		return ""
	}
	return s[start : end+1]
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return strings.TrimSpace(*s)
}
