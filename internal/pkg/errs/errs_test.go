package errs_test

import (
	"errors"
	"testing"

	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObjectNotFoundError(t *testing.T) {
	t.Run("without cause", func(t *testing.T) {
		err := errs.NewObjectNotFoundError("orderId", "123")

		assert.Equal(t, "orderId", err.ParamName)
		assert.Equal(t, "123", err.ID)
		require.NoError(t, err.Cause)
		assert.Equal(t, "object not found: 123", err.Error())
		assert.Equal(t, errs.ErrObjectNotFound, err.Unwrap())
	})

	t.Run("with cause", func(t *testing.T) {
		cause := errors.New("database connection failed")
		err := errs.NewObjectNotFoundErrorWithCause("orderId", "123", cause)

		assert.Equal(t, cause, err.Cause)
		assert.Equal(t,
			"object not found: param is: orderId, ID is: 123 (cause: database connection failed)",
			err.Error())
	})
}

func TestValueIsInvalidError(t *testing.T) {
	t.Run("without cause", func(t *testing.T) {
		err := errs.NewValueIsInvalidError("paymentMethod")

		assert.Equal(t, "paymentMethod", err.ParamName)
		require.NoError(t, err.Cause)
		assert.Equal(t, "value is invalid: paymentMethod", err.Error())
		assert.Equal(t, errs.ErrValueIsInvalid, err.Unwrap())
	})

	t.Run("with cause", func(t *testing.T) {
		cause := errors.New("unknown method")
		err := errs.NewValueIsInvalidErrorWithCause("paymentMethod", cause)

		assert.Equal(t, cause, err.Cause)
		assert.Equal(t, "value is invalid: paymentMethod (cause: unknown method)", err.Error())
	})
}

func TestValueIsOutOfRangeError(t *testing.T) {
	t.Run("without cause", func(t *testing.T) {
		err := errs.NewValueIsOutOfRangeError("depositAmount", 450, 0, 400)

		assert.Equal(t, "depositAmount", err.ParamName)
		assert.Equal(t, 450, err.Value)
		assert.Equal(t, 0, err.Min)
		assert.Equal(t, 400, err.Max)
		assert.Equal(t, "value is invalid: 450 is depositAmount, min value is 0, max value is 400", err.Error())
		assert.Equal(t, errs.ErrValueIsOutOfRange, err.Unwrap())
	})

	t.Run("with cause", func(t *testing.T) {
		cause := errors.New("cap exceeded")
		err := errs.NewValueIsOutOfRangeErrorWithCause("depositAmount", 450, 0, 400, cause)

		assert.Equal(t, cause, err.Cause)
		assert.Equal(t,
			"value is invalid: 450 is depositAmount, min value is 0, max value is 400 (cause: cap exceeded)",
			err.Error())
	})

	t.Run("sanitizes newlines in the message", func(t *testing.T) {
		err := errs.NewValueIsOutOfRangeError("note", "hello\nworld", 0, 10)
		assert.Contains(t, err.Error(), "hello world")
		assert.NotContains(t, err.Error(), "\n")
	})
}

func TestValueIsRequiredError(t *testing.T) {
	err := errs.NewValueIsRequiredError("buyerId")

	assert.Equal(t, "buyerId", err.ParamName)
	assert.Equal(t, "value is required: buyerId", err.Error())
	assert.Equal(t, errs.ErrValueIsRequired, err.Unwrap())

	cause := errors.New("missing required field")
	withCause := errs.NewValueIsRequiredErrorWithCause("buyerId", cause)
	assert.Equal(t, "value is required: buyerId (cause: missing required field)", withCause.Error())
}

func TestLockNotAvailableError(t *testing.T) {
	t.Run("without cause", func(t *testing.T) {
		err := errs.NewLockNotAvailableError("order")

		assert.Equal(t, "order", err.ParamName)
		assert.Equal(t, "lock not available: order", err.Error())
		assert.Equal(t, errs.ErrLockNotAvailable, err.Unwrap())
	})

	t.Run("with cause", func(t *testing.T) {
		cause := errors.New("could not obtain lock on row")
		err := errs.NewLockNotAvailableErrorWithCause("order", cause)

		assert.Equal(t, cause, err.Cause)
		assert.Equal(t, "lock not available: order (cause: could not obtain lock on row)", err.Error())
	})
}

func TestErrorsCanBeUnwrapped(t *testing.T) {
	require.ErrorIs(t, errs.NewObjectNotFoundError("orderId", "123"), errs.ErrObjectNotFound)
	require.ErrorIs(t, errs.NewValueIsInvalidError("status"), errs.ErrValueIsInvalid)
	require.ErrorIs(t, errs.NewValueIsOutOfRangeError("amount", 5, 0, 4), errs.ErrValueIsOutOfRange)
	require.ErrorIs(t, errs.NewValueIsRequiredError("sellerId"), errs.ErrValueIsRequired)
	require.ErrorIs(t, errs.NewVersionIsInvalidError("version", errors.New("test")), errs.ErrVersionIsInvalid)
	require.ErrorIs(t, errs.NewLockNotAvailableError("order"), errs.ErrLockNotAvailable)
}
