package assistant

import (
	"context"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"
)

// Policy names accepted by NewWritePolicy
const (
	PolicyAtMostOnce = "at_most_once"
	PolicyRetry      = "retry"
)

// WritePolicy decides how a single record write is attempted
type WritePolicy interface {
	Name() string
	Execute(ctx context.Context, op func(ctx context.Context) error) error
}

// AtMostOnceNoRetry runs a write once and surfaces its failure
type AtMostOnceNoRetry struct{}

func (AtMostOnceNoRetry) Name() string { return PolicyAtMostOnce }

func (AtMostOnceNoRetry) Execute(ctx context.Context, op func(ctx context.Context) error) error {
	return op(ctx)
}

// RetryWithBackoff retries a failed write with exponential backoff. A write
// that succeeded server side but reported failure may be repeated.
type RetryWithBackoff struct {
	InitialInterval time.Duration
	MaxElapsedTime  time.Duration
	logger          *zap.Logger
}

// Retry budget used when none is configured. backoff treats a zero
// MaxElapsedTime as unbounded, and dispatch writes are never cancelled.
const (
	DefaultRetryInitialInterval = 500 * time.Millisecond
	DefaultRetryMaxElapsed      = 10 * time.Second
)

func NewRetryWithBackoff(initial, maxElapsed time.Duration, logger *zap.Logger) *RetryWithBackoff {
	if logger == nil {
		logger = zap.NewNop()
	}
	if initial <= 0 {
		initial = DefaultRetryInitialInterval
	}
	if maxElapsed <= 0 {
		maxElapsed = DefaultRetryMaxElapsed
	}
	return &RetryWithBackoff{
		InitialInterval: initial,
		MaxElapsedTime:  maxElapsed,
		logger:          logger,
	}
}

func (p *RetryWithBackoff) Name() string { return PolicyRetry }

func (p *RetryWithBackoff) Execute(ctx context.Context, op func(ctx context.Context) error) error {
	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = p.InitialInterval
	bo.MaxElapsedTime = p.MaxElapsedTime
	if bo.InitialInterval <= 0 {
		bo.InitialInterval = DefaultRetryInitialInterval
	}
	if bo.MaxElapsedTime <= 0 {
		bo.MaxElapsedTime = DefaultRetryMaxElapsed
	}

	attempt := 0
	return backoff.Retry(func() error {
		attempt++
		err := op(ctx)
		if err == nil {
			return nil
		}
		if ctx.Err() != nil {
			return backoff.Permanent(err)
		}
		p.logger.Warn("write failed, retrying",
			zap.Int("attempt", attempt),
			zap.Error(err))
		return err
	}, backoff.WithContext(bo, ctx))
}

// NewWritePolicy builds the policy named by configuration
func NewWritePolicy(name string, initial, maxElapsed time.Duration, logger *zap.Logger) (WritePolicy, error) {
	switch name {
	case "", PolicyAtMostOnce:
		return AtMostOnceNoRetry{}, nil
	case PolicyRetry:
		return NewRetryWithBackoff(initial, maxElapsed, logger), nil
	default:
		return nil, fmt.Errorf("unknown write policy %q", name)
	}
}
