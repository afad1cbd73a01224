// Package events delivers domain events raised by aggregates to registered
// application handlers. Dispatch is synchronous and happens after the
// surrounding transaction commits, so handlers only ever observe state that
// was durably persisted.
package events

import (
	"context"
	"log/slog"

	"fulfillment/internal/core/domain/model/order"
)

// Handler reacts to a single domain event raised by an order aggregate.
// The aggregate is passed alongside the event so handlers can resolve
// recipients and enrich messages without an extra load.
type Handler interface {
	Handle(ctx context.Context, ord *order.Order, event order.DomainEvent) error
}

// HandlerFunc adapts a plain function to the Handler interface.
type HandlerFunc func(ctx context.Context, ord *order.Order, event order.DomainEvent) error

func (f HandlerFunc) Handle(ctx context.Context, ord *order.Order, event order.DomainEvent) error {
	return f(ctx, ord, event)
}

type registration struct {
	name    string
	handler Handler
}

// Dispatcher fans each domain event out to every registered handler in
// registration order. A handler failure is logged and does not stop the
// remaining handlers: the state change already committed, so notification
// delivery is best effort.
//
// Example:
//
//	dispatcher := events.NewDispatcher(logger)
//	dispatcher.Register("log", logHandler)
//	dispatcher.Register("kafka", kafkaHandler)
//
//	// after uow.Commit succeeds:
//	dispatcher.Dispatch(ctx, ord)
type Dispatcher struct {
	registrations []registration
	logger        *slog.Logger
}

// NewDispatcher creates a Dispatcher with no handlers registered.
func NewDispatcher(logger *slog.Logger) *Dispatcher {
	if logger == nil {
		logger = slog.Default()
	}

	return &Dispatcher{logger: logger}
}

// Register adds a named handler. Registration is not safe for concurrent use
// and is expected to happen once during process start-up.
func (d *Dispatcher) Register(name string, handler Handler) {
	if handler == nil {
		return
	}

	d.registrations = append(d.registrations, registration{name: name, handler: handler})
}

// Dispatch delivers every pending event of the aggregate to every registered
// handler, then clears the aggregate's event list.
func (d *Dispatcher) Dispatch(ctx context.Context, ord *order.Order) {
	if d == nil || ord == nil {
		return
	}

	for _, event := range ord.DomainEvents() {
		for _, reg := range d.registrations {
			if err := reg.handler.Handle(ctx, ord, event); err != nil {
				d.logger.ErrorContext(ctx, "domain event handler failed",
					"handler", reg.name,
					"event", event.EventName(),
					"order_id", ord.ID().String(),
					"error", err,
				)
			}
		}
	}

	ord.ClearDomainEvents()
}
