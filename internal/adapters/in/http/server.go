// Package http exposes the fulfillment engine over a REST API built on echo.
// Handlers translate wire requests into commands and queries, and map domain
// rejections onto HTTP status codes.
package http

import (
	"errors"
	"net/http"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	createOrderHandler            commands.CreateOrderCommandHandler
	applyTransitionHandler        commands.ApplyTransitionCommandHandler
	recordDepositHandler          commands.RecordDepositCommandHandler
	recordRemainingPaymentHandler commands.RecordRemainingPaymentCommandHandler

	// Query handlers
	getOrderPaymentsHandler queries.GetOrderPaymentsQueryHandler
	getOrderHistoryHandler  queries.GetOrderHistoryQueryHandler
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	createOrderHandler commands.CreateOrderCommandHandler,
	applyTransitionHandler commands.ApplyTransitionCommandHandler,
	recordDepositHandler commands.RecordDepositCommandHandler,
	recordRemainingPaymentHandler commands.RecordRemainingPaymentCommandHandler,
	getOrderPaymentsHandler queries.GetOrderPaymentsQueryHandler,
	getOrderHistoryHandler queries.GetOrderHistoryQueryHandler,
) *Server {
	return &Server{
		createOrderHandler:            createOrderHandler,
		applyTransitionHandler:        applyTransitionHandler,
		recordDepositHandler:          recordDepositHandler,
		recordRemainingPaymentHandler: recordRemainingPaymentHandler,
		getOrderPaymentsHandler:       getOrderPaymentsHandler,
		getOrderHistoryHandler:        getOrderHistoryHandler,
	}
}

// RegisterRoutes mounts every API route on the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1")

	api.POST("/orders", s.CreateOrder)
	api.POST("/orders/:id/deposit", s.RecordDeposit)
	api.POST("/orders/:id/remaining-payment", s.RecordRemainingPayment)
	api.GET("/orders/:id/payments", s.GetOrderPayments)
	api.GET("/orders/:id/history", s.GetOrderHistory)

	// One endpoint per lifecycle action; the order's own state decides
	// whether the transition is legal.
	transitions := map[string]order.Action{
		"admin-approve":  order.ActionAdminApproval,
		"seller-approve": order.ActionSellerApproval,
		"start-work":     order.ActionStartWork,
		"complete-work":  order.ActionCompleteWork,
		"mark-ready":     order.ActionMarkReady,
		"assign-pickup":  order.ActionAssignPickup,
		"pick-up":        order.ActionPickUp,
		"mark-delivered": order.ActionMarkDelivered,
		"complete":       order.ActionComplete,
		"cancel":         order.ActionCancel,
		"suspend":        order.ActionSuspend,
		"refund":         order.ActionRefund,
	}
	for path, action := range transitions {
		api.POST("/orders/:id/"+path, s.transitionHandler(action))
	}
}

// CreateOrder handles POST /api/v1/orders - registers a new order.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var req CreateOrderRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	buyerID, err := kernel.UUIDFromString(req.BuyerID)
	if err != nil {
		return badRequest(ctx, "Invalid buyer_id: "+err.Error())
	}

	sellerID, err := kernel.UUIDFromString(req.SellerID)
	if err != nil {
		return badRequest(ctx, "Invalid seller_id: "+err.Error())
	}

	totalPrice, err := kernel.MoneyFromString(req.TotalPrice)
	if err != nil {
		return badRequest(ctx, "Invalid total_price: "+err.Error())
	}

	orderID := kernel.NewUUID()
	cmd, err := commands.NewCreateOrderCommand(orderID, buyerID, sellerID, totalPrice, req.RequiresDeposit)
	if err != nil {
		return badRequest(ctx, "Invalid order data: "+err.Error())
	}

	if err = s.createOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, CreateOrderResponse{
		ID:     orderID.String(),
		Status: order.StatusPending.String(),
	})
}

// RecordDeposit handles POST /api/v1/orders/:id/deposit.
func (s *Server) RecordDeposit(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid order id: "+err.Error())
	}

	var req DepositRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	payerID, err := kernel.UUIDFromString(req.PayerID)
	if err != nil {
		return badRequest(ctx, "Invalid payer_id: "+err.Error())
	}

	amount, err := kernel.MoneyFromString(req.Amount)
	if err != nil {
		return badRequest(ctx, "Invalid amount: "+err.Error())
	}

	var conversationID *kernel.UUID
	if req.ConversationID != nil {
		cID, cErr := kernel.UUIDFromString(*req.ConversationID)
		if cErr != nil {
			return badRequest(ctx, "Invalid conversation_id: "+cErr.Error())
		}
		conversationID = &cID
	}

	var productID *kernel.UUID
	if req.ProductID != nil {
		pID, pErr := kernel.UUIDFromString(*req.ProductID)
		if pErr != nil {
			return badRequest(ctx, "Invalid product_id: "+pErr.Error())
		}
		productID = &pID
	}

	cmd, err := commands.NewRecordDepositCommand(
		orderID, payerID, amount, req.PaymentMethod, conversationID, productID, req.Note)
	if err != nil {
		return badRequest(ctx, "Invalid deposit data: "+err.Error())
	}

	result, err := s.recordDepositHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, PaymentResultResponse{
		Order:   orderToResponse(result.Order),
		Payment: paymentToResponse(result.Payment),
	})
}

// RecordRemainingPayment handles POST /api/v1/orders/:id/remaining-payment.
func (s *Server) RecordRemainingPayment(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid order id: "+err.Error())
	}

	var req RemainingPaymentRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	payerID, err := kernel.UUIDFromString(req.PayerID)
	if err != nil {
		return badRequest(ctx, "Invalid payer_id: "+err.Error())
	}

	cmd, err := commands.NewRecordRemainingPaymentCommand(orderID, payerID, req.PaymentMethod, req.Note)
	if err != nil {
		return badRequest(ctx, "Invalid payment data: "+err.Error())
	}

	result, err := s.recordRemainingPaymentHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, PaymentResultResponse{
		Order:   orderToResponse(result.Order),
		Payment: paymentToResponse(result.Payment),
	})
}

// GetOrderPayments handles GET /api/v1/orders/:id/payments.
func (s *Server) GetOrderPayments(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid order id: "+err.Error())
	}

	query, err := queries.NewGetOrderPaymentsQuery(orderID)
	if err != nil {
		return badRequest(ctx, "Invalid query: "+err.Error())
	}

	summary, err := s.getOrderPaymentsHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	resp := PaymentSummaryResponse{
		OrderID:         summary.OrderID.String(),
		TotalPrice:      summary.TotalPrice.String(),
		DepositAmount:   summary.DepositAmount.String(),
		DepositStatus:   summary.DepositStatus,
		PaymentStatus:   summary.PaymentStatus,
		PaymentMethod:   summary.PaymentMethod,
		RemainingAmount: summary.RemainingAmount.String(),
		Payments:        make([]PaymentResponse, 0, len(summary.Payments)),
	}
	for _, row := range summary.Payments {
		resp.Payments = append(resp.Payments, queryPaymentToResponse(row))
	}

	return ctx.JSON(http.StatusOK, resp)
}

// GetOrderHistory handles GET /api/v1/orders/:id/history.
func (s *Server) GetOrderHistory(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid order id: "+err.Error())
	}

	query, err := queries.NewGetOrderHistoryQuery(orderID)
	if err != nil {
		return badRequest(ctx, "Invalid query: "+err.Error())
	}

	trail, err := s.getOrderHistoryHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	resp := make([]HistoryEntryResponse, 0, len(trail))
	for _, row := range trail {
		resp = append(resp, HistoryEntryResponse{
			ID:         row.ID.String(),
			FromStatus: row.FromStatus,
			ToStatus:   row.ToStatus,
			Action:     row.Action,
			ActorID:    row.ActorID.String(),
			Note:       row.Note,
			CreatedAt:  row.CreatedAt,
		})
	}

	return ctx.JSON(http.StatusOK, resp)
}

// transitionHandler builds the echo handler for one lifecycle action.
func (s *Server) transitionHandler(action order.Action) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		orderID, err := kernel.UUIDFromString(ctx.Param("id"))
		if err != nil {
			return badRequest(ctx, "Invalid order id: "+err.Error())
		}

		var req TransitionRequest
		if err = ctx.Bind(&req); err != nil {
			return badRequest(ctx, "Invalid request body")
		}

		actorID, err := kernel.UUIDFromString(req.ActorID)
		if err != nil {
			return badRequest(ctx, "Invalid actor_id: "+err.Error())
		}

		role, err := order.RoleFromString(req.ActorRole)
		if err != nil {
			return badRequest(ctx, "Invalid actor_role: "+err.Error())
		}

		actor, err := order.NewActor(actorID, role)
		if err != nil {
			return badRequest(ctx, "Invalid actor: "+err.Error())
		}

		var deliveryPersonID *kernel.UUID
		if req.DeliveryPersonID != nil {
			dID, dErr := kernel.UUIDFromString(*req.DeliveryPersonID)
			if dErr != nil {
				return badRequest(ctx, "Invalid delivery_person_id: "+dErr.Error())
			}
			deliveryPersonID = &dID
		}

		cmd, err := commands.NewApplyTransitionCommand(orderID, action, actor, req.Note, deliveryPersonID)
		if err != nil {
			return badRequest(ctx, "Invalid transition data: "+err.Error())
		}

		result, err := s.applyTransitionHandler.Handle(ctx.Request().Context(), cmd)
		if err != nil {
			return writeError(ctx, err)
		}

		return ctx.JSON(http.StatusOK, TransitionResponse{
			Order:        orderToResponse(result.Order),
			HistoryEntry: entryToResponse(result.Entry),
		})
	}
}

// badRequest writes a 400 response with the given message.
func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, ErrorResponse{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}

// writeError maps domain rejections onto HTTP status codes.
//
// Unknown order: 404. Actor not allowed: 403. Lock contention: 409 so the
// client retries. Everything the caller could fix (wrong predecessor status,
// unmet payment guard, double payment, cap violation, missing deposit, bad
// input): 400. Anything else is a 500.
func writeError(ctx echo.Context, err error) error {
	var code int
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		code = http.StatusNotFound
	case errors.Is(err, order.ErrUnauthorized):
		code = http.StatusForbidden
	case errors.Is(err, errs.ErrLockNotAvailable):
		code = http.StatusConflict
	case errors.Is(err, order.ErrInvalidTransition),
		errors.Is(err, order.ErrPaymentPrecondition),
		errors.Is(err, order.ErrAlreadyPaid),
		errors.Is(err, order.ErrDepositExceedsCap),
		errors.Is(err, order.ErrDepositRequired),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		code = http.StatusBadRequest
	default:
		code = http.StatusInternalServerError
	}

	return ctx.JSON(code, ErrorResponse{
		Code:    code,
		Message: err.Error(),
	})
}
