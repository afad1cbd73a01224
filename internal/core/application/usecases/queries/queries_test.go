package queries_test

import (
	"testing"

	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetOrderPaymentsQuery_NotConstructedViaConstructor(t *testing.T) {
	var query queries.GetOrderPaymentsQuery

	err := query.Validate()

	assert.ErrorIs(t, err, queries.ErrGetOrderPaymentsQueryIsNotConstructed)
}

func TestNewGetOrderPaymentsQuery(t *testing.T) {
	orderID := kernel.NewUUID()

	query, err := queries.NewGetOrderPaymentsQuery(orderID)

	require.NoError(t, err)
	assert.True(t, query.OrderID().IsEqual(orderID))
	assert.NoError(t, query.Validate())

	_, err = queries.NewGetOrderPaymentsQuery(kernel.UUID{})
	assert.Error(t, err)
}

func TestGetOrderHistoryQuery_NotConstructedViaConstructor(t *testing.T) {
	var query queries.GetOrderHistoryQuery

	err := query.Validate()

	assert.ErrorIs(t, err, queries.ErrGetOrderHistoryQueryIsNotConstructed)
}

func TestNewGetOrderHistoryQuery(t *testing.T) {
	orderID := kernel.NewUUID()

	query, err := queries.NewGetOrderHistoryQuery(orderID)

	require.NoError(t, err)
	assert.True(t, query.OrderID().IsEqual(orderID))
	assert.NoError(t, query.Validate())

	_, err = queries.NewGetOrderHistoryQuery(kernel.UUID{})
	assert.Error(t, err)
}
