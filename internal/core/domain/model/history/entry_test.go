package history_test

import (
	"testing"
	"time"

	"fulfillment/internal/core/domain/model/history"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEntry(t *testing.T) {
	t.Run("should create an entry with the status-change phrase", func(t *testing.T) {
		id := kernel.NewUUID()
		orderID := kernel.NewUUID()
		actorID := kernel.NewUUID()
		now := time.Now().UTC()

		entry, err := history.NewEntry(
			id, orderID,
			order.StatusPending, order.StatusAdminApproved,
			actorID, order.ActionAdminApproval,
			"", now)

		require.NoError(t, err)
		assert.True(t, entry.ID().IsEqual(id))
		assert.True(t, entry.OrderID().IsEqual(orderID))
		assert.Equal(t, order.StatusPending, entry.FromStatus())
		assert.Equal(t, order.StatusAdminApproved, entry.ToStatus())
		assert.True(t, entry.ActorID().IsEqual(actorID))
		assert.Equal(t, order.ActionAdminApproval, entry.Action())
		assert.Equal(t, "status changed from 'Pending' to 'Admin Approved'", entry.Note())
		assert.Equal(t, now, entry.CreatedAt())
		assert.NoError(t, entry.Validate())
	})

	t.Run("should append the remark after the phrase", func(t *testing.T) {
		entry, err := history.NewEntry(
			kernel.NewUUID(), kernel.NewUUID(),
			order.StatusWorkStarted, order.StatusWorkCompleted,
			kernel.NewUUID(), order.ActionCompleteWork,
			"all items packed", time.Now().UTC())

		require.NoError(t, err)
		assert.Equal(t, "status changed from 'Work Started' to 'Work Completed'; all items packed", entry.Note())
	})

	t.Run("should return error for invalid statuses", func(t *testing.T) {
		entry, err := history.NewEntry(
			kernel.NewUUID(), kernel.NewUUID(),
			order.StatusUnknown, order.StatusAdminApproved,
			kernel.NewUUID(), order.ActionAdminApproval,
			"", time.Now().UTC())

		require.Error(t, err)
		assert.Nil(t, entry)
	})

	t.Run("should return error for an unknown action", func(t *testing.T) {
		entry, err := history.NewEntry(
			kernel.NewUUID(), kernel.NewUUID(),
			order.StatusPending, order.StatusAdminApproved,
			kernel.NewUUID(), order.ActionUnknown,
			"", time.Now().UTC())

		require.Error(t, err)
		assert.Nil(t, entry)
	})
}

func TestEntry_Validate(t *testing.T) {
	t.Run("should return error for entry not created via constructor", func(t *testing.T) {
		var entry history.Entry

		err := entry.Validate()

		assert.ErrorIs(t, err, history.ErrEntryIsNotConstructed)
	})
}

func TestRestoreEntry(t *testing.T) {
	t.Run("should restore an entry with its stored note", func(t *testing.T) {
		entry, err := history.RestoreEntry(
			kernel.NewUUID(), kernel.NewUUID(),
			order.StatusDelivered, order.StatusCompleted,
			kernel.NewUUID(), order.ActionComplete,
			"status changed from 'Delivered' to 'Completed'", time.Now().UTC())

		require.NoError(t, err)
		assert.Equal(t, "status changed from 'Delivered' to 'Completed'", entry.Note())
		assert.NoError(t, entry.Validate())
	})
}

func TestStatusChangeNote(t *testing.T) {
	t.Run("should render status labels", func(t *testing.T) {
		note := history.StatusChangeNote(order.StatusReadyForDelivery, order.StatusAssignedToPickup)

		assert.Equal(t, "status changed from 'Ready for Delivery' to 'Assigned to Pickup'", note)
	})
}

func TestPriorStatusFromNote(t *testing.T) {
	t.Run("should extract the prior status from the phrase", func(t *testing.T) {
		status, err := history.PriorStatusFromNote("status changed from 'Work Started' to 'Work Completed'")

		require.NoError(t, err)
		assert.Equal(t, order.StatusWorkStarted, status)
	})

	t.Run("should extract the prior status when a remark follows", func(t *testing.T) {
		status, err := history.PriorStatusFromNote("status changed from 'Pending' to 'Admin Approved'; verified seller")

		require.NoError(t, err)
		assert.Equal(t, order.StatusPending, status)
	})

	t.Run("should return error when the phrase is missing", func(t *testing.T) {
		status, err := history.PriorStatusFromNote("order approved by admin")

		require.Error(t, err)
		assert.Equal(t, order.StatusUnknown, status)
	})

	t.Run("should return error for an unrecognized label", func(t *testing.T) {
		status, err := history.PriorStatusFromNote("status changed from 'In Transit' to 'Delivered'")

		require.Error(t, err)
		assert.Equal(t, order.StatusUnknown, status)
	})
}
