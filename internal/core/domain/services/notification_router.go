package services

import (
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
)

// NotificationRouter resolves which concrete user a domain event should
// alert. The transition table names a party relative to the order (buyer,
// seller, admin pool, assigned delivery person); the router maps that party
// to the order's actual assignments.
//
// Example:
//
//	router := services.NewNotificationRouter()
//	recipient := router.Recipient(ord, event.NotifyParty())
//	if recipient == nil {
//	    // role broadcast (admin pool) or no assignee yet
//	}
type NotificationRouter struct{}

// NewNotificationRouter creates a NotificationRouter.
func NewNotificationRouter() *NotificationRouter {
	return &NotificationRouter{}
}

// Recipient returns the user to notify for the given party, or nil when the
// notification is a role broadcast (admin pool) or the party has no
// assignment yet (delivery before pickup assignment).
func (r *NotificationRouter) Recipient(ord *order.Order, party order.Party) *kernel.UUID {
	if ord == nil {
		return nil
	}

	switch party {
	case order.PartyBuyer:
		id := ord.BuyerID()
		return &id
	case order.PartySeller:
		id := ord.SellerID()
		return &id
	case order.PartyDelivery:
		return ord.DeliveryPersonID()
	case order.PartyAdmin, order.PartyNone:
		return nil
	default:
		return nil
	}
}
