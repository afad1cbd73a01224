package queries

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GetOrderPaymentsQueryHandler builds the payment summary of one order from
// the database: ledger columns, recorded payment rows, and the computed
// remaining balance.
//
// Example:
//
//	handler := NewGetOrderPaymentsQueryHandler(db)
//	query, _ := NewGetOrderPaymentsQuery(orderID)
//
//	summary, err := handler.Handle(ctx, query)
//	if err != nil {
//	    log.Printf("failed to get payment summary: %v", err)
//	    return err
//	}
type GetOrderPaymentsQueryHandler struct {
	db     *gorm.DB
	logger *slog.Logger
}

// NewGetOrderPaymentsQueryHandler creates a handler for payment summary queries.
// Requires a GORM database connection for query execution; a nil logger falls
// back to slog.Default().
func NewGetOrderPaymentsQueryHandler(db *gorm.DB, logger *slog.Logger) GetOrderPaymentsQueryHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return GetOrderPaymentsQueryHandler{db: db, logger: logger}
}

// Handle executes the payment summary query.
// Returns errs.ObjectNotFoundError when the order does not exist.
func (h GetOrderPaymentsQueryHandler) Handle(
	ctx context.Context,
	query GetOrderPaymentsQuery,
) (GetOrderPaymentsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderPaymentsQueryResponse{}, err
	}

	var (
		id            uuid.UUID
		totalPrice    decimal.Decimal
		depositAmount decimal.Decimal
		depositStatus string
		paymentStatus string
		paymentMethod string
	)

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			total_price,
			deposit_amount,
			deposit_status,
			payment_status,
			payment_method
		FROM orders
		WHERE id = ?
	`, query.OrderID().String()).Row()

	err := row.Scan(&id, &totalPrice, &depositAmount, &depositStatus, &paymentStatus, &paymentMethod)
	if errors.Is(err, sql.ErrNoRows) {
		return GetOrderPaymentsQueryResponse{}, errs.NewObjectNotFoundError("order", query.OrderID())
	}
	if err != nil {
		return GetOrderPaymentsQueryResponse{}, err
	}

	orderID, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return GetOrderPaymentsQueryResponse{}, err
	}

	remaining, ok := remainingAmount(totalPrice, depositAmount, depositStatus, paymentStatus)
	if !ok {
		h.logger.Error("ledger integrity violation in payment summary",
			"order_id", orderID.String(),
			"total_price", totalPrice.String(),
			"deposit_amount", depositAmount.String())
	}

	resp := GetOrderPaymentsQueryResponse{
		OrderID:         orderID,
		TotalPrice:      totalPrice,
		DepositAmount:   depositAmount,
		DepositStatus:   depositStatus,
		PaymentStatus:   paymentStatus,
		PaymentMethod:   paymentMethod,
		RemainingAmount: remaining,
		Payments:        make([]PaymentResponse, 0),
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			payer_id,
			payment_type,
			method,
			amount,
			status,
			transaction_ref,
			note,
			created_at
		FROM payments
		WHERE order_id = ?
		ORDER BY created_at
	`, query.OrderID().String()).Rows()
	if err != nil {
		return GetOrderPaymentsQueryResponse{}, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			paymentID      uuid.UUID
			payerID        uuid.UUID
			paymentType    string
			method         string
			amount         decimal.Decimal
			status         string
			transactionRef uuid.UUID
			note           string
			createdAt      time.Time
		)

		err = rows.Scan(&paymentID, &payerID, &paymentType, &method,
			&amount, &status, &transactionRef, &note, &createdAt)
		if err != nil {
			return GetOrderPaymentsQueryResponse{}, err
		}

		paymentUUID, idErr := kernel.UUIDFromBytes(paymentID[:])
		if idErr != nil {
			return GetOrderPaymentsQueryResponse{}, idErr
		}
		payerUUID, idErr := kernel.UUIDFromBytes(payerID[:])
		if idErr != nil {
			return GetOrderPaymentsQueryResponse{}, idErr
		}
		refUUID, idErr := kernel.UUIDFromBytes(transactionRef[:])
		if idErr != nil {
			return GetOrderPaymentsQueryResponse{}, idErr
		}

		resp.Payments = append(resp.Payments, PaymentResponse{
			ID:             paymentUUID,
			PayerID:        payerUUID,
			PaymentType:    paymentType,
			Method:         method,
			Amount:         amount,
			Status:         status,
			TransactionRef: refUUID,
			Note:           note,
			CreatedAt:      createdAt,
		})
	}

	if err = rows.Err(); err != nil {
		return GetOrderPaymentsQueryResponse{}, err
	}

	return resp, nil
}

// remainingAmount mirrors the ledger rule of the order aggregate on raw
// column values: zero once fully paid, full total before any deposit, total
// minus deposit in between. A negative balance means the stored values
// contradict each other; it is clamped to zero and flagged through the
// second return value so the caller can log the violation.
func remainingAmount(total, deposit decimal.Decimal, depositStatus, paymentStatus string) (decimal.Decimal, bool) {
	if paymentStatus == order.PaymentPaid.String() {
		return decimal.Zero, true
	}

	if depositStatus != order.DepositPaid.String() {
		return total, true
	}

	remaining := total.Sub(deposit)
	if remaining.IsNegative() {
		return decimal.Zero, false
	}
	return remaining, true
}
