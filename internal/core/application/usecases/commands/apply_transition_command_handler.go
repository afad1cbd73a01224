package commands

import (
	"context"
	"time"

	"fulfillment/internal/core/application/events"
	"fulfillment/internal/core/domain/model/history"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
)

// ApplyTransitionResult reports an accepted transition back to the caller:
// the updated aggregate and the audit entry written for it.
type ApplyTransitionResult struct {
	Order *order.Order
	Entry *history.Entry
}

// ApplyTransitionCommandHandler handles lifecycle transitions.
//
// Each accepted transition atomically updates the order row and appends one
// audit entry; after the transaction commits the raised domain events are
// dispatched to the registered notification handlers. A rejected transition
// writes nothing.
type ApplyTransitionCommandHandler struct {
	uowFactory TransitionUoWFactory
	dispatcher *events.Dispatcher
}

// NewApplyTransitionCommandHandler creates a handler for lifecycle transitions.
// Requires a TransitionUoWFactory for transactional persistence and the event
// dispatcher for post-commit notifications.
func NewApplyTransitionCommandHandler(
	uowFactory TransitionUoWFactory,
	dispatcher *events.Dispatcher,
) ApplyTransitionCommandHandler {
	return ApplyTransitionCommandHandler{
		uowFactory: uowFactory,
		dispatcher: dispatcher,
	}
}

// Handle processes one transition command.
//
// The order is loaded under an exclusive row lock so concurrent actions
// against the same order serialize; when the lock is held elsewhere the load
// fails fast with errs.ErrLockNotAvailable. Guard rejections from the
// aggregate (unauthorized actor, wrong predecessor status, unmet payment
// precondition) roll the transaction back untouched.
func (h *ApplyTransitionCommandHandler) Handle(ctx context.Context, cmd ApplyTransitionCommand) (ApplyTransitionResult, error) {
	if err := cmd.Validate(); err != nil {
		return ApplyTransitionResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return ApplyTransitionResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	ord, err := orderRepo.GetForUpdate(ctx, cmd.OrderID())
	if err != nil {
		return ApplyTransitionResult{}, err
	}

	transition, err := ord.Apply(order.TransitionRequest{
		Action:           cmd.Action(),
		Actor:            cmd.Actor(),
		Note:             cmd.Note(),
		DeliveryPersonID: cmd.DeliveryPersonID(),
	}, time.Now().UTC())
	if err != nil {
		return ApplyTransitionResult{}, err
	}

	if err = orderRepo.Update(ctx, ord); err != nil {
		return ApplyTransitionResult{}, err
	}

	entry, err := history.NewEntry(
		kernel.NewUUID(),
		ord.ID(),
		transition.From,
		transition.To,
		transition.ActorID,
		transition.Action,
		cmd.Note(),
		transition.OccurredAt,
	)
	if err != nil {
		return ApplyTransitionResult{}, err
	}

	if err = uow.HistoryRepository().Append(ctx, entry); err != nil {
		return ApplyTransitionResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return ApplyTransitionResult{}, err
	}

	h.dispatcher.Dispatch(ctx, ord)

	return ApplyTransitionResult{Order: ord, Entry: entry}, nil
}
