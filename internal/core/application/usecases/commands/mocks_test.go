package commands_test

import (
	"context"
	"errors"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/history"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/payment"
	"fulfillment/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(_ context.Context, _ kernel.UUID) (*order.Order, error) {
	return nil, errors.New("not implemented in mock")
}

func (m *MockOrderRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetAllInStatus(_ context.Context, _ order.Status) ([]*order.Order, error) {
	return nil, errors.New("not implemented in mock")
}

type MockPaymentRepository struct{ mock.Mock }

func (m *MockPaymentRepository) Add(ctx context.Context, record *payment.Payment) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockPaymentRepository) GetAllForOrder(_ context.Context, _ kernel.UUID) ([]*payment.Payment, error) {
	return nil, errors.New("not implemented in mock")
}

type MockHistoryRepository struct{ mock.Mock }

func (m *MockHistoryRepository) Append(ctx context.Context, entry *history.Entry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockHistoryRepository) GetAllForOrder(_ context.Context, _ kernel.UUID) ([]*history.Entry, error) {
	return nil, errors.New("not implemented in mock")
}

// mockTx provides the shared transaction expectations of the UoW mocks.
type mockTx struct{ mock.Mock }

func (m *mockTx) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *mockTx) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *mockTx) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

type MockOrderUoW struct{ mockTx }

func (m *MockOrderUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type MockTransitionUoW struct{ mockTx }

func (m *MockTransitionUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockTransitionUoW) HistoryRepository() ports.HistoryRepository {
	args := m.Called()
	return args.Get(0).(ports.HistoryRepository)
}

type MockTransitionUoWFactory struct{ mock.Mock }

func (m *MockTransitionUoWFactory) Create() commands.TransitionUoW {
	args := m.Called()
	return args.Get(0).(commands.TransitionUoW)
}

type MockLedgerUoW struct{ mockTx }

func (m *MockLedgerUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockLedgerUoW) PaymentRepository() ports.PaymentRepository {
	args := m.Called()
	return args.Get(0).(ports.PaymentRepository)
}

type MockLedgerUoWFactory struct{ mock.Mock }

func (m *MockLedgerUoWFactory) Create() commands.LedgerUoW {
	args := m.Called()
	return args.Get(0).(commands.LedgerUoW)
}
