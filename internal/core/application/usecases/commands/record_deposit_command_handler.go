package commands

import (
	"context"
	"time"

	"fulfillment/internal/core/application/events"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/payment"
	"fulfillment/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// RecordPaymentResult reports an accepted payment back to the caller: the
// updated aggregate and the ledger row written for it.
type RecordPaymentResult struct {
	Order   *order.Order
	Payment *payment.Payment
}

// RecordDepositCommandHandler records deposit payments.
//
// The deposit cap ratio and the allowed payment methods are business
// parameters injected from configuration at construction time.
type RecordDepositCommandHandler struct {
	uowFactory     LedgerUoWFactory
	dispatcher     *events.Dispatcher
	capRatio       decimal.Decimal
	allowedMethods []payment.Method
}

// NewRecordDepositCommandHandler creates a handler for deposit payments.
// capRatio bounds the deposit relative to the order total (0.8 means 80%).
// An empty allowedMethods falls back to payment.DefaultMethods.
func NewRecordDepositCommandHandler(
	uowFactory LedgerUoWFactory,
	dispatcher *events.Dispatcher,
	capRatio decimal.Decimal,
	allowedMethods []payment.Method,
) RecordDepositCommandHandler {
	if len(allowedMethods) == 0 {
		allowedMethods = payment.DefaultMethods
	}

	return RecordDepositCommandHandler{
		uowFactory:     uowFactory,
		dispatcher:     dispatcher,
		capRatio:       capRatio,
		allowedMethods: allowedMethods,
	}
}

// Handle processes one deposit payment.
//
// In a single transaction the order's ledger fields move to deposit-paid and
// one immutable payment row is appended. A second deposit attempt fails with
// order.ErrAlreadyPaid; an amount above capRatio x total fails with
// order.ErrDepositExceedsCap. Both leave the transaction rolled back. A payer
// other than the order's buyer is answered with not-found, the same as an
// unknown order.
func (h *RecordDepositCommandHandler) Handle(ctx context.Context, cmd RecordDepositCommand) (RecordPaymentResult, error) {
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
	if err = ord.RecordDeposit(cmd.Amount(), method, h.capRatio, now); err != nil {
		return RecordPaymentResult{}, err
	}

	if err = orderRepo.Update(ctx, ord); err != nil {
		return RecordPaymentResult{}, err
	}

	record, err := payment.NewPayment(
		kernel.NewUUID(),
		ord.ID(),
		cmd.PayerID(),
		payment.TypeDeposit,
		method,
		cmd.Amount(),
		cmd.ConversationID(),
		cmd.ProductID(),
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
