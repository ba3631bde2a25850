package messaging

import (
	"context"

	"github.com/openregistry/ownership/internal/domain"
)

// Publisher defines the interface for publishing notification events to the
// message broker
//
//go:generate mockgen -source=publisher.go -destination=../mocks/publisher.go -package=mocks -mock_names=Publisher=MockPublisher
type Publisher interface {
	// PublishEvent publishes a notification event; the broker dedupes on the
	// event's ULID so redelivery after a crash is harmless
	PublishEvent(ctx context.Context, event *domain.NotificationEvent) error
	// Close closes the connection
	Close()
}
