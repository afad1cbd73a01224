package services_test

import (
	"testing"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestOrder(t *testing.T) *order.Order {
	t.Helper()

	total, err := kernel.MoneyFromString("100")
	require.NoError(t, err)

	ord, err := order.NewOrder(
		kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
		total, false, time.Now().UTC())
	require.NoError(t, err)
	return ord
}

func TestNotificationRouter_Recipient(t *testing.T) {
	router := services.NewNotificationRouter()

	t.Run("should resolve the buyer party to the order's buyer", func(t *testing.T) {
		ord := newTestOrder(t)

		recipient := router.Recipient(ord, order.PartyBuyer)

		require.NotNil(t, recipient)
		assert.True(t, recipient.IsEqual(ord.BuyerID()))
	})

	t.Run("should resolve the seller party to the order's seller", func(t *testing.T) {
		ord := newTestOrder(t)

		recipient := router.Recipient(ord, order.PartySeller)

		require.NotNil(t, recipient)
		assert.True(t, recipient.IsEqual(ord.SellerID()))
	})

	t.Run("should return nil for the admin pool", func(t *testing.T) {
		ord := newTestOrder(t)

		assert.Nil(t, router.Recipient(ord, order.PartyAdmin))
	})

	t.Run("should return nil for delivery before a pickup assignment", func(t *testing.T) {
		ord := newTestOrder(t)

		assert.Nil(t, router.Recipient(ord, order.PartyDelivery))
	})

	t.Run("should resolve delivery to the assigned person once set", func(t *testing.T) {
		ord := newTestOrder(t)
		admin := order.Actor{ID: kernel.NewUUID(), Role: order.RoleAdmin}
		seller := order.Actor{ID: ord.SellerID(), Role: order.RoleSeller}
		deliveryID := kernel.NewUUID()

		steps := []order.TransitionRequest{
			{Action: order.ActionAdminApproval, Actor: admin},
			{Action: order.ActionSellerApproval, Actor: seller},
			{Action: order.ActionCompleteWork, Actor: seller},
			{Action: order.ActionMarkReady, Actor: seller},
			{Action: order.ActionAssignPickup, Actor: admin, DeliveryPersonID: &deliveryID},
		}
		for _, step := range steps {
			_, err := ord.Apply(step, time.Now().UTC())
			require.NoError(t, err)
		}

		recipient := router.Recipient(ord, order.PartyDelivery)

		require.NotNil(t, recipient)
		assert.True(t, recipient.IsEqual(deliveryID))
	})

	t.Run("should return nil for no party and nil order", func(t *testing.T) {
		assert.Nil(t, router.Recipient(newTestOrder(t), order.PartyNone))
		assert.Nil(t, router.Recipient(nil, order.PartyBuyer))
	})
}
