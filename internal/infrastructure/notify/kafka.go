package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/johnquangdev/telehealth-assistant/internal/domain/entities"
	"github.com/johnquangdev/telehealth-assistant/pkg/config"
)

// KafkaPublisher appends alert changes to a Kafka topic for downstream
// escalation services.
type KafkaPublisher struct {
	writer *kafka.Writer
}

// NewKafkaPublisher returns nil when no brokers are configured
func NewKafkaPublisher(cfg *config.KafkaConfig) *KafkaPublisher {
	if len(cfg.Brokers) == 0 {
		return nil
	}
	return &KafkaPublisher{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(cfg.Brokers...),
			Topic:        cfg.AlertTopic,
			Balancer:     &kafka.LeastBytes{},
			RequiredAcks: kafka.RequireOne,
			BatchTimeout: 50 * time.Millisecond,
		},
	}
}

// PublishAlert writes alert keyed by patient so one patient's events stay ordered
func (p *KafkaPublisher) PublishAlert(ctx context.Context, alert *entities.EmergencyAlert) error {
	value, err := json.Marshal(alert)
	if err != nil {
		return fmt.Errorf("failed to encode alert: %w", err)
	}
	msg := kafka.Message{
		Key:   []byte(alert.PatientID),
		Value: value,
		Headers: []kafka.Header{
			{Key: "status", Value: []byte(alert.Status)},
			{Key: "source", Value: []byte(alert.Source)},
		},
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("failed to write alert to kafka: %w", err)
	}
	return nil
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}
