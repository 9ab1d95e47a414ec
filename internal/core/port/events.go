package port

import (
	"context"

	"github.com/RahulSaini3125/jwt-auth-rest-api/internal/core/domain"
)

// EventPublisher publishes domain events to the message bus.
type EventPublisher interface {
	PublishAccountRegistered(ctx context.Context, event domain.AccountRegisteredEvent) error
	PublishAccountActivated(ctx context.Context, event domain.AccountActivatedEvent) error
	PublishAccountLogin(ctx context.Context, event domain.AccountLoginEvent) error
}
