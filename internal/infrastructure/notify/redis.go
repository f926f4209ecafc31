package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/johnquangdev/telehealth-assistant/internal/domain/entities"
)

// Redis channels
const (
	AlertChannel           = "alerts.active"
	UtteranceChannelPrefix = "assistant.utterances."
	subscriberBuffer       = 16
)

// Utterance is a confirmation to be spoken to a caller
type Utterance struct {
	CallerID string    `json:"caller_id"`
	Text     string    `json:"text"`
	At       time.Time `json:"at"`
}

// RedisBroker publishes alert changes and spoken confirmations over Redis
// pub/sub, and streams alert changes back to websocket clients.
type RedisBroker struct {
	client *redis.Client
	logger *zap.Logger
}

func NewRedisBroker(client *redis.Client, logger *zap.Logger) *RedisBroker {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RedisBroker{client: client, logger: logger}
}

// PublishAlert publishes alert on AlertChannel
func (b *RedisBroker) PublishAlert(ctx context.Context, alert *entities.EmergencyAlert) error {
	payload, err := json.Marshal(alert)
	if err != nil {
		return fmt.Errorf("failed to encode alert: %w", err)
	}
	if err := b.client.Publish(ctx, AlertChannel, payload).Err(); err != nil {
		return fmt.Errorf("failed to publish alert: %w", err)
	}
	return nil
}

// SubscribeAlerts streams alerts published on AlertChannel. The returned
// channel is closed when ctx is done.
func (b *RedisBroker) SubscribeAlerts(ctx context.Context) (<-chan *entities.EmergencyAlert, error) {
	sub := b.client.Subscribe(ctx, AlertChannel)
	if _, err := sub.Receive(ctx); err != nil {
		_ = sub.Close()
		return nil, fmt.Errorf("failed to subscribe to alerts: %w", err)
	}

	out := make(chan *entities.EmergencyAlert, subscriberBuffer)
	go func() {
		defer close(out)
		defer sub.Close()

		messages := sub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-messages:
				if !ok {
					return
				}
				var alert entities.EmergencyAlert
				if err := json.Unmarshal([]byte(msg.Payload), &alert); err != nil {
					b.logger.Warn("dropping malformed alert event", zap.Error(err))
					continue
				}
				select {
				case out <- &alert:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return out, nil
}

// Speak publishes a confirmation on the caller's utterance channel, where the
// voice client picks it up for text-to-speech.
func (b *RedisBroker) Speak(ctx context.Context, callerID, text string) error {
	payload, err := json.Marshal(Utterance{CallerID: callerID, Text: text, At: time.Now().UTC()})
	if err != nil {
		return err
	}
	return b.client.Publish(ctx, UtteranceChannelPrefix+callerID, payload).Err()
}
