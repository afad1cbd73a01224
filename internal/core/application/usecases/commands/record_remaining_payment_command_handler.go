package commands

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"fulfillment/internal/core/application/events"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/payment"
	"fulfillment/internal/pkg/errs"
)

// RecordRemainingPaymentCommandHandler settles an order's outstanding balance.
// The collected amount is always the order's computed remaining balance.
type RecordRemainingPaymentCommandHandler struct {
	uowFactory     LedgerUoWFactory
	dispatcher     *events.Dispatcher
	allowedMethods []payment.Method
	logger         *slog.Logger
}

// NewRecordRemainingPaymentCommandHandler creates a handler for remaining
// balance payments. An empty allowedMethods falls back to
// payment.DefaultMethods; a nil logger falls back to slog.Default().
func NewRecordRemainingPaymentCommandHandler(
	uowFactory LedgerUoWFactory,
	dispatcher *events.Dispatcher,
	allowedMethods []payment.Method,
	logger *slog.Logger,
) RecordRemainingPaymentCommandHandler {
	if len(allowedMethods) == 0 {
		allowedMethods = payment.DefaultMethods
	}
	if logger == nil {
		logger = slog.Default()
	}

	return RecordRemainingPaymentCommandHandler{
		uowFactory:     uowFactory,
		dispatcher:     dispatcher,
		allowedMethods: allowedMethods,
		logger:         logger,
	}
}

// Handle processes one remaining balance payment.
//
// In a single transaction the order's ledger moves to fully paid and one
// immutable payment row is appended with the computed balance. Paying before
// a required deposit fails with order.ErrDepositRequired; paying an already
// settled order fails with order.ErrAlreadyPaid. A payer other than the
// order's buyer is answered with not-found, the same as an unknown order.
//
// A stored deposit above the total price is a ledger integrity fault: it is
// logged with full context and the payment is refused, never misreported as
// a guard rejection.
func (h *RecordRemainingPaymentCommandHandler) Handle(ctx context.Context, cmd RecordRemainingPaymentCommand) (RecordPaymentResult, error) {
	if err := cmd.Validate(); err != nil {
		return RecordPaymentResult{}, err
	}

	method, err := payment.NewMethod(cmd.RawMethod(), h.allowedMethods)
	if err != nil {
		return RecordPaymentResult{}, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return RecordPaymentResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	ord, err := orderRepo.GetForUpdate(ctx, cmd.OrderID())
	if err != nil {
		return RecordPaymentResult{}, err
	}

	if !cmd.PayerID().IsEqual(ord.BuyerID()) {
		return RecordPaymentResult{}, errs.NewObjectNotFoundError("order", cmd.OrderID())
	}

	now := time.Now().UTC()
	collected, err := ord.RecordRemainingPayment(method, now)
	if err != nil {
		if errors.Is(err, order.ErrLedgerIntegrity) {
			h.logger.Error("ledger integrity violation on remaining payment",
				"order_id", ord.ID().String(),
				"total_price", ord.TotalPrice().String(),
				"deposit_amount", ord.DepositAmount().String(),
				"error", err)
		}
		return RecordPaymentResult{}, err
	}

	if err = orderRepo.Update(ctx, ord); err != nil {
		return RecordPaymentResult{}, err
	}

	record, err := payment.NewPayment(
		kernel.NewUUID(),
		ord.ID(),
		cmd.PayerID(),
		payment.TypeRemaining,
		method,
		collected,
		nil,
		nil,
		cmd.Note(),
		now,
	)
	if err != nil {
		return RecordPaymentResult{}, err
	}

	if err = uow.PaymentRepository().Add(ctx, record); err != nil {
		return RecordPaymentResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return RecordPaymentResult{}, err
	}

	h.dispatcher.Dispatch(ctx, ord)

	return RecordPaymentResult{Order: ord, Payment: record}, nil
}
