package events

import (
	"context"
	"fmt"
	"log/slog"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/core/ports"
)

// LogHandler writes every domain event to the structured log. It is the
// always-on notification channel and doubles as an audit of dispatch itself.
type LogHandler struct {
	logger *slog.Logger
}

// NewLogHandler creates a LogHandler.
func NewLogHandler(logger *slog.Logger) *LogHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogHandler{logger: logger}
}

// Handle logs the event with its routing outcome.
func (h *LogHandler) Handle(ctx context.Context, ord *order.Order, event order.DomainEvent) error {
	h.logger.InfoContext(ctx, "domain event",
		"event", event.EventName(),
		"order_id", ord.ID().String(),
		"notify_party", event.NotifyParty().String(),
	)
	return nil
}

// PublisherHandler turns domain events into outbound notifications.
// The router resolves the named party to a concrete recipient; a nil
// recipient means a role broadcast and is published without one.
type PublisherHandler struct {
	router    *services.NotificationRouter
	publisher ports.NotificationPublisher
}

// NewPublisherHandler creates a PublisherHandler.
func NewPublisherHandler(router *services.NotificationRouter, publisher ports.NotificationPublisher) *PublisherHandler {
	return &PublisherHandler{
		router:    router,
		publisher: publisher,
	}
}

// Handle publishes one notification for the event. Events addressed to
// nobody (PartyNone) are skipped.
func (h *PublisherHandler) Handle(ctx context.Context, ord *order.Order, event order.DomainEvent) error {
	if event.NotifyParty() == order.PartyNone {
		return nil
	}

	notification := ports.Notification{
		OrderID:     ord.ID(),
		RecipientID: h.router.Recipient(ord, event.NotifyParty()),
		Event:       event.EventName(),
		Message:     messageFor(ord, event),
	}

	switch e := event.(type) {
	case order.StatusChangedEvent:
		notification.OccurredAt = e.OccurredAt
	case order.PaymentRecordedEvent:
		notification.OccurredAt = e.OccurredAt
	}

	return h.publisher.Publish(ctx, notification)
}

// messageFor renders the human-readable notification text per event kind.
func messageFor(ord *order.Order, event order.DomainEvent) string {
	switch e := event.(type) {
	case order.StatusChangedEvent:
		return fmt.Sprintf("order %s moved from '%s' to '%s'",
			ord.ID(), e.From.Label(), e.To.Label())
	case order.PaymentRecordedEvent:
		return fmt.Sprintf("order %s received a %s payment of %s",
			ord.ID(), e.PaymentType, e.Amount)
	default:
		return fmt.Sprintf("order %s raised %s", ord.ID(), event.EventName())
	}
}
