package order

import (
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/payment"
)

// DomainEvent is raised by the Order aggregate after a successful state
// change and collected until the surrounding transaction commits. Handlers
// are registered explicitly at process start; there is no implicit dispatch
// tied to entity lifecycle hooks.
type DomainEvent interface {
	// EventName returns a stable machine key for the event kind.
	EventName() string

	// NotifyParty returns the party that should be alerted.
	NotifyParty() Party
}

// StatusChangedEvent is raised once per accepted transition.
type StatusChangedEvent struct {
	OrderID    kernel.UUID
	From       Status
	To         Status
	Action     Action
	ActorID    kernel.UUID
	Notify     Party
	OccurredAt time.Time
}

// EventName implements DomainEvent.
func (e StatusChangedEvent) EventName() string {
	return "order.status_changed"
}

// NotifyParty implements DomainEvent.
func (e StatusChangedEvent) NotifyParty() Party {
	return e.Notify
}

// PaymentRecordedEvent is raised once per accepted ledger write.
type PaymentRecordedEvent struct {
	OrderID     kernel.UUID
	PayerID     kernel.UUID
	PaymentType payment.Type
	Amount      kernel.Money
	Notify      Party
	OccurredAt  time.Time
}

// EventName implements DomainEvent.
func (e PaymentRecordedEvent) EventName() string {
	return "order.payment_recorded"
}

// NotifyParty implements DomainEvent.
func (e PaymentRecordedEvent) NotifyParty() Party {
	return e.Notify
}
