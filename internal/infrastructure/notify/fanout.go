package notify

import (
	"context"
	"errors"

	"github.com/johnquangdev/telehealth-assistant/internal/domain/entities"
)

// AlertPublisher is anything that can publish alert changes
type AlertPublisher interface {
	PublishAlert(ctx context.Context, alert *entities.EmergencyAlert) error
}

// Fanout publishes to every sink and joins their errors
type Fanout []AlertPublisher

// NewFanout skips nil sinks
func NewFanout(sinks ...AlertPublisher) Fanout {
	var f Fanout
	for _, s := range sinks {
		if s == nil || isNilSink(s) {
			continue
		}
		f = append(f, s)
	}
	return f
}

func (f Fanout) PublishAlert(ctx context.Context, alert *entities.EmergencyAlert) error {
	var errs []error
	for _, sink := range f {
		if err := sink.PublishAlert(ctx, alert); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func isNilSink(s AlertPublisher) bool {
	switch v := s.(type) {
	case *KafkaPublisher:
		return v == nil
	case *RedisBroker:
		return v == nil
	}
	return false
}
