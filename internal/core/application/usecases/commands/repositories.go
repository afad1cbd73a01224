// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management, and persistence.
package commands

import (
	"context"

	"fulfillment/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// These abstractions ensure data consistency across aggregate boundaries.
type (
	// TxManager handles database transaction lifecycle.
	// Ensures atomic operations across multiple repository calls.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// OrderRepoFactory provides access to order repository within a transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// PaymentRepoFactory provides access to payment repository within a transaction.
	PaymentRepoFactory interface {
		PaymentRepository() ports.PaymentRepository
	}

	// HistoryRepoFactory provides access to history repository within a transaction.
	HistoryRepoFactory interface {
		HistoryRepository() ports.HistoryRepository
	}

	// OrderUoW manages transactions for order-only operations.
	// Used when commands only modify order aggregates.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
	}

	// OrderUoWFactory creates new order unit of work instances.
	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// TransitionUoW manages transactions for lifecycle transitions.
	// Every accepted transition writes the order and one audit entry atomically.
	TransitionUoW interface {
		TxManager
		OrderRepoFactory
		HistoryRepoFactory
	}

	// TransitionUoWFactory creates new transition unit of work instances.
	TransitionUoWFactory interface {
		Create() TransitionUoW
	}

	// LedgerUoW manages transactions that touch the money ledger.
	// Payments update the order's payment state and append a ledger row
	// in the same transaction.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   orderRepo := uow.OrderRepository()
	//   paymentRepo := uow.PaymentRepository()
	//   // ... perform operations
	//
	//   err = uow.Commit(ctx)
	LedgerUoW interface {
		TxManager
		OrderRepoFactory
		PaymentRepoFactory
	}

	// LedgerUoWFactory creates new ledger unit of work instances.
	LedgerUoWFactory interface {
		Create() LedgerUoW
	}
)
