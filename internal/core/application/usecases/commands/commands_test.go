package commands_test

import (
	"testing"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCreateOrderCommand(t *testing.T) {
	t.Run("should create a validated command", func(t *testing.T) {
		orderID := kernel.NewUUID()

		cmd, err := commands.NewCreateOrderCommand(
			orderID, kernel.NewUUID(), kernel.NewUUID(), mustMoney(t, "1000"), true)

		require.NoError(t, err)
		assert.True(t, cmd.OrderID().IsEqual(orderID))
		assert.True(t, cmd.RequiresDeposit())
		assert.NoError(t, cmd.Validate())
	})

	t.Run("should return error for a zero-value identifier", func(t *testing.T) {
		_, err := commands.NewCreateOrderCommand(
			kernel.UUID{}, kernel.NewUUID(), kernel.NewUUID(), mustMoney(t, "1000"), false)

		assert.Error(t, err)
	})

	t.Run("should reject the zero value via Validate", func(t *testing.T) {
		var cmd commands.CreateOrderCommand

		assert.ErrorIs(t, cmd.Validate(), commands.ErrCreateOrderCommandIsNotConstructed)
	})
}

func TestNewApplyTransitionCommand(t *testing.T) {
	actor := order.Actor{ID: kernel.NewUUID(), Role: order.RoleAdmin}

	t.Run("should create a validated command", func(t *testing.T) {
		orderID := kernel.NewUUID()

		cmd, err := commands.NewApplyTransitionCommand(
			orderID, order.ActionAdminApproval, actor, "checked", nil)

		require.NoError(t, err)
		assert.True(t, cmd.OrderID().IsEqual(orderID))
		assert.Equal(t, order.ActionAdminApproval, cmd.Action())
		assert.Equal(t, "checked", cmd.Note())
		assert.Nil(t, cmd.DeliveryPersonID())
		assert.NoError(t, cmd.Validate())
	})

	t.Run("should carry the delivery person for pickup assignment", func(t *testing.T) {
		deliveryID := kernel.NewUUID()

		cmd, err := commands.NewApplyTransitionCommand(
			kernel.NewUUID(), order.ActionAssignPickup, actor, "", &deliveryID)

		require.NoError(t, err)
		require.NotNil(t, cmd.DeliveryPersonID())
		assert.True(t, cmd.DeliveryPersonID().IsEqual(deliveryID))
	})

	t.Run("should return error for an unknown action", func(t *testing.T) {
		_, err := commands.NewApplyTransitionCommand(
			kernel.NewUUID(), order.ActionUnknown, actor, "", nil)

		assert.Error(t, err)
	})

	t.Run("should return error for an invalid actor", func(t *testing.T) {
		_, err := commands.NewApplyTransitionCommand(
			kernel.NewUUID(), order.ActionAdminApproval,
			order.Actor{ID: kernel.NewUUID(), Role: order.RoleUnknown}, "", nil)

		assert.Error(t, err)
	})
}

func TestNewRecordDepositCommand(t *testing.T) {
	t.Run("should create a validated command", func(t *testing.T) {
		conversationID := kernel.NewUUID()

		cmd, err := commands.NewRecordDepositCommand(
			kernel.NewUUID(), kernel.NewUUID(), mustMoney(t, "800"),
			"credit_card", &conversationID, nil, "first half")

		require.NoError(t, err)
		assert.Equal(t, "credit_card", cmd.RawMethod())
		assert.Equal(t, "first half", cmd.Note())
		require.NotNil(t, cmd.ConversationID())
		assert.True(t, cmd.ConversationID().IsEqual(conversationID))
		assert.NoError(t, cmd.Validate())
	})

	t.Run("should carry the product reference when given", func(t *testing.T) {
		productID := kernel.NewUUID()

		cmd, err := commands.NewRecordDepositCommand(
			kernel.NewUUID(), kernel.NewUUID(), mustMoney(t, "800"),
			"cash", nil, &productID, "")

		require.NoError(t, err)
		require.NotNil(t, cmd.ProductID())
		assert.True(t, cmd.ProductID().IsEqual(productID))
	})

	t.Run("should return error for a zero-value payer", func(t *testing.T) {
		_, err := commands.NewRecordDepositCommand(
			kernel.NewUUID(), kernel.UUID{}, mustMoney(t, "800"), "cash", nil, nil, "")

		assert.Error(t, err)
	})
}

func TestNewRecordRemainingPaymentCommand(t *testing.T) {
	t.Run("should create a validated command without an amount", func(t *testing.T) {
		orderID := kernel.NewUUID()

		cmd, err := commands.NewRecordRemainingPaymentCommand(
			orderID, kernel.NewUUID(), "bank_transfer", "closing")

		require.NoError(t, err)
		assert.True(t, cmd.OrderID().IsEqual(orderID))
		assert.Equal(t, "bank_transfer", cmd.RawMethod())
		assert.NoError(t, cmd.Validate())
	})

	t.Run("should reject the zero value via Validate", func(t *testing.T) {
		var cmd commands.RecordRemainingPaymentCommand

		assert.ErrorIs(t, cmd.Validate(), commands.ErrRecordRemainingPaymentCommandIsNotConstructed)
	})
}
