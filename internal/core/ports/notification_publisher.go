package ports

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
)

// Notification is an outbound alert produced from a domain event after the
// surrounding transaction commits.
type Notification struct {
	// OrderID identifies the order the notification is about.
	OrderID kernel.UUID

	// RecipientID is the concrete user to alert. Nil means a role broadcast,
	// for example the whole admin pool.
	RecipientID *kernel.UUID

	// Event is the domain event name, for example "order.status_changed".
	Event string

	// Message is the human-readable notification text.
	Message string

	// OccurredAt is when the originating domain event happened.
	OccurredAt time.Time
}

// NotificationPublisher delivers notifications to an external channel
// (message broker, push gateway). Implementations must be safe for
// concurrent use.
type NotificationPublisher interface {
	Publish(ctx context.Context, notification Notification) error
}
