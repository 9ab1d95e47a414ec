package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/IBM/sarama"
	"github.com/google/uuid"

	"github.com/RahulSaini3125/jwt-auth-rest-api/internal/core/domain"
	"github.com/RahulSaini3125/jwt-auth-rest-api/internal/core/port"
	"github.com/RahulSaini3125/jwt-auth-rest-api/internal/infra/config"
)

const schemaVersion = "1.0"

const (
	eventAccountRegistered = "account.registered"
	eventAccountActivated  = "account.activated"
	eventAccountLogin      = "account.login"
)

// Publisher implements port.EventPublisher on top of Kafka.
type Publisher struct {
	producer *Producer
	appCfg   config.AppSettings
}

// NewPublisher constructs a Kafka-backed event publisher.
func NewPublisher(producer *Producer, appCfg config.AppSettings) *Publisher {
	return &Publisher{producer: producer, appCfg: appCfg}
}

type eventEnvelope struct {
	EventID   string            `json:"event_id"`
	EventType string            `json:"event_type"`
	AccountID string            `json:"account_id,omitempty"`
	Timestamp time.Time         `json:"timestamp"`
	Version   string            `json:"version"`
	Payload   any               `json:"payload"`
	Metadata  map[string]string `json:"metadata,omitempty"`
}

func (p *Publisher) publish(ctx context.Context, eventType, accountID string, ts time.Time, payload any) error {
	if ts.IsZero() {
		ts = time.Now().UTC()
	}

	envelope := eventEnvelope{
		EventID:   uuid.NewString(),
		EventType: eventType,
		AccountID: accountID,
		Timestamp: ts.UTC(),
		Version:   schemaVersion,
		Payload:   payload,
		Metadata: map[string]string{
			"service":     p.appCfg.Name,
			"environment": p.appCfg.Env,
		},
	}

	bytes, err := json.Marshal(envelope)
	if err != nil {
		return fmt.Errorf("marshal event envelope: %w", err)
	}

	message := &sarama.ProducerMessage{
		Topic: p.producer.TopicName(eventType),
		Value: sarama.ByteEncoder(bytes),
	}

	select {
	case p.producer.Producer().Input() <- message:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// PublishAccountRegistered publishes account.registered events.
func (p *Publisher) PublishAccountRegistered(ctx context.Context, event domain.AccountRegisteredEvent) error {
	return p.publish(ctx, eventAccountRegistered, event.AccountID, event.RegisteredAt, event)
}

// PublishAccountActivated publishes account.activated events.
func (p *Publisher) PublishAccountActivated(ctx context.Context, event domain.AccountActivatedEvent) error {
	return p.publish(ctx, eventAccountActivated, event.AccountID, event.ActivatedAt, event)
}

// PublishAccountLogin publishes account.login events.
func (p *Publisher) PublishAccountLogin(ctx context.Context, event domain.AccountLoginEvent) error {
	return p.publish(ctx, eventAccountLogin, event.AccountID, event.LoginAt, event)
}

var _ port.EventPublisher = (*Publisher)(nil)
