package http

import (
	"time"

	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/history"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/payment"
)

// ErrorResponse is the uniform error body of every failed request.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// CreateOrderRequest is the body of POST /api/v1/orders.
type CreateOrderRequest struct {
	BuyerID         string `json:"buyer_id"`
	SellerID        string `json:"seller_id"`
	TotalPrice      string `json:"total_price"`
	RequiresDeposit bool   `json:"requires_deposit"`
}

// CreateOrderResponse returns the identifier of the created order.
type CreateOrderResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

// TransitionRequest is the body of every lifecycle transition endpoint.
// DeliveryPersonID is required only for pickup assignment.
type TransitionRequest struct {
	ActorID          string  `json:"actor_id"`
	ActorRole        string  `json:"actor_role"`
	Note             string  `json:"note,omitempty"`
	DeliveryPersonID *string `json:"delivery_person_id,omitempty"`
}

// DepositRequest is the body of POST /api/v1/orders/:id/deposit.
type DepositRequest struct {
	PayerID        string  `json:"payer_id"`
	Amount         string  `json:"amount"`
	PaymentMethod  string  `json:"payment_method"`
	ConversationID *string `json:"conversation_id,omitempty"`
	ProductID      *string `json:"product_id,omitempty"`
	Note           string  `json:"note,omitempty"`
}

// RemainingPaymentRequest is the body of POST /api/v1/orders/:id/remaining-payment.
type RemainingPaymentRequest struct {
	PayerID       string `json:"payer_id"`
	PaymentMethod string `json:"payment_method"`
	Note          string `json:"note,omitempty"`
}

// OrderResponse is the wire representation of an order aggregate.
type OrderResponse struct {
	ID               string  `json:"id"`
	BuyerID          string  `json:"buyer_id"`
	SellerID         string  `json:"seller_id"`
	DeliveryPersonID *string `json:"delivery_person_id,omitempty"`
	AdminApproverID  *string `json:"admin_approver_id,omitempty"`

	TotalPrice      string `json:"total_price"`
	RequiresDeposit bool   `json:"requires_deposit"`
	DepositAmount   string `json:"deposit_amount"`
	DepositStatus   string `json:"deposit_status"`
	PaymentStatus   string `json:"payment_status"`
	PaymentMethod   string `json:"payment_method,omitempty"`

	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`

	AdminApprovedAt     *time.Time `json:"admin_approved_at,omitempty"`
	SellerApprovedAt    *time.Time `json:"seller_approved_at,omitempty"`
	WorkStartedAt       *time.Time `json:"work_started_at,omitempty"`
	WorkCompletedAt     *time.Time `json:"work_completed_at,omitempty"`
	DeliveryScheduledAt *time.Time `json:"delivery_scheduled_at,omitempty"`
	DeliveryPickedUpAt  *time.Time `json:"delivery_picked_up_at,omitempty"`
	DeliveredAt         *time.Time `json:"delivered_at,omitempty"`
	CompletedAt         *time.Time `json:"completed_at,omitempty"`
}

// HistoryEntryResponse is the wire representation of one audit trail row.
type HistoryEntryResponse struct {
	ID         string    `json:"id"`
	FromStatus string    `json:"from_status"`
	ToStatus   string    `json:"to_status"`
	Action     string    `json:"action"`
	ActorID    string    `json:"actor_id"`
	Note       string    `json:"note"`
	CreatedAt  time.Time `json:"created_at"`
}

// PaymentResponse is the wire representation of one ledger row.
type PaymentResponse struct {
	ID             string    `json:"id"`
	PayerID        string    `json:"payer_id"`
	PaymentType    string    `json:"payment_type"`
	Method         string    `json:"method"`
	Amount         string    `json:"amount"`
	Status         string    `json:"status"`
	TransactionRef string    `json:"transaction_ref"`
	Note           string    `json:"note,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

// TransitionResponse is the body of a successful transition.
type TransitionResponse struct {
	Order        OrderResponse        `json:"order"`
	HistoryEntry HistoryEntryResponse `json:"history_entry"`
}

// PaymentResultResponse is the body of a successful payment.
type PaymentResultResponse struct {
	Order   OrderResponse   `json:"order"`
	Payment PaymentResponse `json:"payment"`
}

// PaymentSummaryResponse is the body of GET /api/v1/orders/:id/payments.
type PaymentSummaryResponse struct {
	OrderID         string            `json:"order_id"`
	TotalPrice      string            `json:"total_price"`
	DepositAmount   string            `json:"deposit_amount"`
	DepositStatus   string            `json:"deposit_status"`
	PaymentStatus   string            `json:"payment_status"`
	PaymentMethod   string            `json:"payment_method,omitempty"`
	RemainingAmount string            `json:"remaining_amount"`
	Payments        []PaymentResponse `json:"payments"`
}

// orderToResponse maps an order aggregate to its wire representation.
func orderToResponse(ord *order.Order) OrderResponse {
	resp := OrderResponse{
		ID:              ord.ID().String(),
		BuyerID:         ord.BuyerID().String(),
		SellerID:        ord.SellerID().String(),
		TotalPrice:      ord.TotalPrice().String(),
		RequiresDeposit: ord.RequiresDeposit(),
		DepositAmount:   ord.DepositAmount().String(),
		DepositStatus:   ord.DepositStatus().String(),
		PaymentStatus:   ord.PaymentStatus().String(),
		PaymentMethod:   ord.PaymentMethod().String(),
		Status:          ord.Status().String(),
		CreatedAt:       ord.CreatedAt(),
	}

	if id := ord.DeliveryPersonID(); id != nil {
		s := id.String()
		resp.DeliveryPersonID = &s
	}
	if id := ord.AdminApproverID(); id != nil {
		s := id.String()
		resp.AdminApproverID = &s
	}

	timestamps := ord.Timestamps()
	resp.AdminApprovedAt = timestamps.AdminApprovedAt
	resp.SellerApprovedAt = timestamps.SellerApprovedAt
	resp.WorkStartedAt = timestamps.WorkStartedAt
	resp.WorkCompletedAt = timestamps.WorkCompletedAt
	resp.DeliveryScheduledAt = timestamps.DeliveryScheduledAt
	resp.DeliveryPickedUpAt = timestamps.DeliveryPickedUpAt
	resp.DeliveredAt = timestamps.DeliveredAt
	resp.CompletedAt = timestamps.CompletedAt

	return resp
}

// entryToResponse maps an audit entry to its wire representation.
func entryToResponse(entry *history.Entry) HistoryEntryResponse {
	return HistoryEntryResponse{
		ID:         entry.ID().String(),
		FromStatus: entry.FromStatus().String(),
		ToStatus:   entry.ToStatus().String(),
		Action:     entry.Action().String(),
		ActorID:    entry.ActorID().String(),
		Note:       entry.Note(),
		CreatedAt:  entry.CreatedAt(),
	}
}

// paymentToResponse maps a ledger row to its wire representation.
func paymentToResponse(record *payment.Payment) PaymentResponse {
	return PaymentResponse{
		ID:             record.ID().String(),
		PayerID:        record.PayerID().String(),
		PaymentType:    record.PaymentType().String(),
		Method:         record.Method().String(),
		Amount:         record.Amount().String(),
		Status:         record.Status().String(),
		TransactionRef: record.TransactionRef().String(),
		Note:           record.Note(),
		CreatedAt:      record.CreatedAt(),
	}
}

// queryPaymentToResponse maps a query-side payment row to the wire format.
func queryPaymentToResponse(row queries.PaymentResponse) PaymentResponse {
	return PaymentResponse{
		ID:             row.ID.String(),
		PayerID:        row.PayerID.String(),
		PaymentType:    row.PaymentType,
		Method:         row.Method,
		Amount:         row.Amount.String(),
		Status:         row.Status,
		TransactionRef: row.TransactionRef.String(),
		Note:           row.Note,
		CreatedAt:      row.CreatedAt,
	}
}
