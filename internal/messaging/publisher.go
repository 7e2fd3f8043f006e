package messaging

import (
	"context"

	"github.com/namehaus/registrar/internal/domain"
)

// Publisher defines the interface for publishing registrar events to a
// message broker
//
//go:generate mockgen -source=publisher.go -destination=../mocks/publisher.go -package=mocks -mock_names=Publisher=MockPublisher
type Publisher interface {
	// PublishEvent publishes a registrar event to the message broker
	PublishEvent(ctx context.Context, event domain.Event) error
	// Close closes the connection
	Close()
}
