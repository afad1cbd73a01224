package commands_test

import (
	"bytes"
	"log/slog"
	"testing"
	"time"

	"fulfillment/internal/core/application/events"
	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/payment"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestRecordRemainingPaymentCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	ord := depositOrder(t, "1000")
	require.NoError(t, ord.RecordDeposit(
		mustMoney(t, "800"), payment.Method("credit_card"), capRatio, time.Now().UTC()))
	ord.ClearDomainEvents()

	cmd, err := commands.NewRecordRemainingPaymentCommand(
		ord.ID(), ord.BuyerID(), "bank_transfer", "closing balance")
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

	h := commands.NewRecordRemainingPaymentCommandHandler(factory, events.NewDispatcher(nil), nil, nil)
	result, err := h.Handle(ctx, cmd)
	require.NoError(t, err)

	require.Equal(t, order.PaymentPaid, result.Order.PaymentStatus())
	require.NotNil(t, result.Payment)
	require.Equal(t, payment.TypeRemaining, result.Payment.PaymentType())
	// The collected amount is computed, never taken from the request.
	require.True(t, result.Payment.Amount().IsEqual(mustMoney(t, "200")))

	orderRepo.AssertExpectations(t)
	paymentRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
	factory.AssertExpectations(t)
}

func TestRecordRemainingPaymentCommandHandler_Handle_FullPriceWithoutDeposit(t *testing.T) {
	ctx := t.Context()
	ord, err := order.NewOrder(
		kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
		mustMoney(t, "750"), false, time.Now().UTC())
	require.NoError(t, err)

	cmd, err := commands.NewRecordRemainingPaymentCommand(
		ord.ID(), ord.BuyerID(), "cash", "")
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

	h := commands.NewRecordRemainingPaymentCommandHandler(factory, events.NewDispatcher(nil), nil, nil)
	result, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	require.True(t, result.Payment.Amount().IsEqual(mustMoney(t, "750")))
}

func TestRecordRemainingPaymentCommandHandler_Handle_DepositRequired(t *testing.T) {
	ctx := t.Context()
	ord := depositOrder(t, "1000") // requires a deposit, none paid

	cmd, err := commands.NewRecordRemainingPaymentCommand(
		ord.ID(), ord.BuyerID(), "credit_card", "")
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

	h := commands.NewRecordRemainingPaymentCommandHandler(factory, events.NewDispatcher(nil), nil, nil)
	_, err = h.Handle(ctx, cmd)
	require.ErrorIs(t, err, order.ErrDepositRequired)
	require.Equal(t, order.PaymentUnpaid, ord.PaymentStatus())
	orderRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	uow.AssertExpectations(t)
}

func TestRecordRemainingPaymentCommandHandler_Handle_AlreadyPaid(t *testing.T) {
	ctx := t.Context()
	ord := depositOrder(t, "1000")
	require.NoError(t, ord.RecordDeposit(
		mustMoney(t, "800"), payment.Method("credit_card"), capRatio, time.Now().UTC()))
	_, err := ord.RecordRemainingPayment(payment.Method("credit_card"), time.Now().UTC())
	require.NoError(t, err)
	ord.ClearDomainEvents()

	cmd, err := commands.NewRecordRemainingPaymentCommand(
		ord.ID(), ord.BuyerID(), "credit_card", "")
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

	h := commands.NewRecordRemainingPaymentCommandHandler(factory, events.NewDispatcher(nil), nil, nil)
	_, err = h.Handle(ctx, cmd)
	require.ErrorIs(t, err, order.ErrAlreadyPaid)
	uow.AssertExpectations(t)
}

func TestRecordRemainingPaymentCommandHandler_Handle_PayerNotBuyer(t *testing.T) {
	ctx := t.Context()
	ord := depositOrder(t, "1000")
	require.NoError(t, ord.RecordDeposit(
		mustMoney(t, "800"), payment.Method("credit_card"), capRatio, time.Now().UTC()))
	ord.ClearDomainEvents()

	cmd, err := commands.NewRecordRemainingPaymentCommand(
		ord.ID(), kernel.NewUUID(), "bank_transfer", "")
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

	h := commands.NewRecordRemainingPaymentCommandHandler(factory, events.NewDispatcher(nil), nil, nil)
	_, err = h.Handle(ctx, cmd)

	// A stranger paying someone else's order looks like an unknown order.
	require.ErrorIs(t, err, errs.ErrObjectNotFound)
	require.Equal(t, order.PaymentPartiallyPaid, ord.PaymentStatus())
	orderRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	uow.AssertExpectations(t)
}

func TestRecordRemainingPaymentCommandHandler_Handle_LedgerIntegrityFault(t *testing.T) {
	ctx := t.Context()
	ord, err := order.RestoreOrder(
		kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), nil, nil,
		mustMoney(t, "1000"), true,
		mustMoney(t, "1200"),
		order.DepositPaid, order.PaymentPartiallyPaid, payment.Method("credit_card"),
		order.StatusAdminApproved, order.Timestamps{}, order.Notes{}, time.Now().UTC())
	require.NoError(t, err)

	cmd, err := commands.NewRecordRemainingPaymentCommand(
		ord.ID(), ord.BuyerID(), "bank_transfer", "")
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

	var logBuf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logBuf, nil))

	h := commands.NewRecordRemainingPaymentCommandHandler(factory, events.NewDispatcher(nil), nil, logger)
	_, err = h.Handle(ctx, cmd)

	require.ErrorIs(t, err, order.ErrLedgerIntegrity)
	require.NotErrorIs(t, err, order.ErrAlreadyPaid)

	// The violation is logged with enough context to find the broken row.
	require.Contains(t, logBuf.String(), "ledger integrity violation")
	require.Contains(t, logBuf.String(), ord.ID().String())
	require.Contains(t, logBuf.String(), "1200")

	orderRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	uow.AssertExpectations(t)
}
