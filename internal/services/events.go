package services

import "recipebook/internal/logger"

// Routing keys for domain events.
const (
	EventUserSignedUp  = "user.signed_up"
	EventRecipeCreated = "recipe.created"
)

// EventPublisher sends domain events to a broker. pkg/rabbitmq.Client
// satisfies it.
type EventPublisher interface {
	PublishEvent(routingKey string, payload interface{}) error
}

// publish sends an event if a publisher is configured. Failures are logged,
// never returned: the write has already committed.
func publish(p EventPublisher, log *logger.Logger, routingKey string, payload interface{}) {
	if p == nil {
		return
	}
	if err := p.PublishEvent(routingKey, payload); err != nil {
		log.Warn().Err(err).Str("event", routingKey).Msg("failed to publish event")
	}
}
