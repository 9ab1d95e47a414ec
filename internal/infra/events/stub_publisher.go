package events

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/RahulSaini3125/jwt-auth-rest-api/internal/core/domain"
	"github.com/RahulSaini3125/jwt-auth-rest-api/internal/core/port"
)

// StubPublisher logs events instead of sending them to Kafka. Useful for
// development environments without a broker.
type StubPublisher struct {
	logger *zap.Logger
}

// NewStubPublisher constructs a development-friendly event publisher.
func NewStubPublisher(logger *zap.Logger) *StubPublisher {
	return &StubPublisher{logger: logger}
}

func (p *StubPublisher) logEvent(eventType, accountID string, at time.Time, payload any) {
	if at.IsZero() {
		at = time.Now().UTC()
	}

	p.logger.Info("Stub event published",
		zap.String("event_type", eventType),
		zap.String("account_id", accountID),
		zap.Time("timestamp", at.UTC()),
		zap.Any("payload", payload),
	)
}

// PublishAccountRegistered logs account.registered events.
func (p *StubPublisher) PublishAccountRegistered(_ context.Context, event domain.AccountRegisteredEvent) error {
	p.logEvent(eventAccountRegistered, event.AccountID, event.RegisteredAt, event)
	return nil
}

// PublishAccountActivated logs account.activated events.
func (p *StubPublisher) PublishAccountActivated(_ context.Context, event domain.AccountActivatedEvent) error {
	p.logEvent(eventAccountActivated, event.AccountID, event.ActivatedAt, event)
	return nil
}

// PublishAccountLogin logs account.login events.
func (p *StubPublisher) PublishAccountLogin(_ context.Context, event domain.AccountLoginEvent) error {
	p.logEvent(eventAccountLogin, event.AccountID, event.LoginAt, event)
	return nil
}

var _ port.EventPublisher = (*StubPublisher)(nil)
