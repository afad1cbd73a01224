package commands_test

import (
	"testing"
	"time"

	"fulfillment/internal/core/application/events"
	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/payment"
	"fulfillment/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var capRatio = decimal.NewFromFloat(0.8)

func depositOrder(t *testing.T, totalPrice string) *order.Order {
	t.Helper()

	ord, err := order.NewOrder(
		kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
		mustMoney(t, totalPrice), true, time.Now().UTC())
	require.NoError(t, err)
	return ord
}

func TestRecordDepositCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	ord := depositOrder(t, "1000")
	cmd, err := commands.NewRecordDepositCommand(
		ord.ID(), ord.BuyerID(), mustMoney(t, "800"), "credit_card", nil, nil, "first half")
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	paymentRepo := new(MockPaymentRepository)
	uow := new(MockLedgerUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("GetForUpdate", mock.Anything, ord.ID()).Return(ord, nil).Once(),
		orderRepo.On("Update", mock.Anything, ord).Return(nil).Once(),
		uow.On("PaymentRepository").Return(paymentRepo).Once(),
		paymentRepo.On("Add", mock.Anything, mock.AnythingOfType("*payment.Payment")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockLedgerUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewRecordDepositCommandHandler(factory, events.NewDispatcher(nil), capRatio, nil)
	result, err := h.Handle(ctx, cmd)
	require.NoError(t, err)

	require.NotNil(t, result.Order)
	require.Equal(t, order.DepositPaid, result.Order.DepositStatus())
	require.Equal(t, order.PaymentPartiallyPaid, result.Order.PaymentStatus())
	require.NotNil(t, result.Payment)
	require.Equal(t, payment.TypeDeposit, result.Payment.PaymentType())
	require.True(t, result.Payment.Amount().IsEqual(mustMoney(t, "800")))
	require.Equal(t, "first half", result.Payment.Note())
	require.Empty(t, result.Order.DomainEvents())

	orderRepo.AssertExpectations(t)
	paymentRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
	factory.AssertExpectations(t)
}

func TestRecordDepositCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := t.Context()
	cmd := commands.RecordDepositCommand{} // not constructed properly
	factory := new(MockLedgerUoWFactory)
	h := commands.NewRecordDepositCommandHandler(factory, events.NewDispatcher(nil), capRatio, nil)
	_, err := h.Handle(ctx, cmd)
	require.Error(t, err)
	require.ErrorIs(t, err, commands.ErrRecordDepositCommandIsNotConstructed)
}

func TestRecordDepositCommandHandler_Handle_MethodNotAllowed(t *testing.T) {
	ctx := t.Context()
	ord := depositOrder(t, "1000")
	cmd, err := commands.NewRecordDepositCommand(
		ord.ID(), ord.BuyerID(), mustMoney(t, "100"), "crypto", nil, nil, "")
	require.NoError(t, err)

	// The method is rejected before any transaction is opened.
	factory := new(MockLedgerUoWFactory)
	h := commands.NewRecordDepositCommandHandler(factory, events.NewDispatcher(nil), capRatio, nil)
	_, err = h.Handle(ctx, cmd)
	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	factory.AssertNotCalled(t, "Create")
}

func TestRecordDepositCommandHandler_Handle_ExceedsCap(t *testing.T) {
	ctx := t.Context()
	ord := depositOrder(t, "500")
	cmd, err := commands.NewRecordDepositCommand(
		ord.ID(), ord.BuyerID(), mustMoney(t, "450"), "credit_card", nil, nil, "")
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	uow := new(MockLedgerUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("GetForUpdate", mock.Anything, ord.ID()).Return(ord, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockLedgerUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewRecordDepositCommandHandler(factory, events.NewDispatcher(nil), capRatio, nil)
	_, err = h.Handle(ctx, cmd)
	require.ErrorIs(t, err, order.ErrDepositExceedsCap)
	require.Equal(t, order.DepositUnpaid, ord.DepositStatus())
	orderRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	uow.AssertExpectations(t)
}

func TestRecordDepositCommandHandler_Handle_SecondDeposit(t *testing.T) {
	ctx := t.Context()
	ord := depositOrder(t, "1000")
	require.NoError(t, ord.RecordDeposit(
		mustMoney(t, "300"), payment.Method("credit_card"), capRatio, time.Now().UTC()))
	ord.ClearDomainEvents()

	cmd, err := commands.NewRecordDepositCommand(
		ord.ID(), ord.BuyerID(), mustMoney(t, "100"), "credit_card", nil, nil, "")
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	uow := new(MockLedgerUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("GetForUpdate", mock.Anything, ord.ID()).Return(ord, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockLedgerUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewRecordDepositCommandHandler(factory, events.NewDispatcher(nil), capRatio, nil)
	_, err = h.Handle(ctx, cmd)
	require.ErrorIs(t, err, order.ErrAlreadyPaid)
	uow.AssertExpectations(t)
}

func TestRecordDepositCommandHandler_Handle_PayerNotBuyer(t *testing.T) {
	ctx := t.Context()
	ord := depositOrder(t, "1000")
	cmd, err := commands.NewRecordDepositCommand(
		ord.ID(), kernel.NewUUID(), mustMoney(t, "800"), "credit_card", nil, nil, "")
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	uow := new(MockLedgerUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("GetForUpdate", mock.Anything, ord.ID()).Return(ord, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockLedgerUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewRecordDepositCommandHandler(factory, events.NewDispatcher(nil), capRatio, nil)
	_, err = h.Handle(ctx, cmd)

	// A stranger paying someone else's order looks like an unknown order.
	require.ErrorIs(t, err, errs.ErrObjectNotFound)
	require.Equal(t, order.DepositUnpaid, ord.DepositStatus())
	orderRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	uow.AssertExpectations(t)
}
