package commands_test

import (
	"context"
	"testing"

	"orderservice/internal/core/application/usecases/commands"
	"orderservice/internal/core/domain/model/kernel"
	"orderservice/internal/core/domain/model/order"
	"orderservice/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
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

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

type MockOrderUoW struct{ mock.Mock }

func (m *MockOrderUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type MockOrderEventPublisher struct{ mock.Mock }

func (m *MockOrderEventPublisher) Publish(ctx context.Context, event ports.OrderEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

// storedOrder builds an order as the repository would return it:
// items [(A, qty 2, price 5), (B, qty 1, price 10)], version 3.
func storedOrder(t *testing.T, state order.State, orderMinimum int64) *order.Order {
	t.Helper()
	a, err := order.NewOrderLineItem("A", "Margherita", kernel.NewMoneyFromInt(5), 2)
	require.NoError(t, err)
	b, err := order.NewOrderLineItem("B", "Tiramisu", kernel.NewMoneyFromInt(10), 1)
	require.NoError(t, err)

	o, err := order.RestoreOrder(order.RestoreParams{
		ID:           kernel.NewUUID(),
		Version:      3,
		State:        state,
		ConsumerID:   kernel.NewUUID(),
		RestaurantID: kernel.NewUUID(),
		LineItems:    []order.OrderLineItem{a, b},
		OrderMinimum: kernel.NewMoneyFromInt(orderMinimum),
	})
	require.NoError(t, err)
	return o
}

// expectTransaction wires a factory returning a unit of work whose repository
// serves o. Commit and Rollback are optional so each test can assert on them.
func expectTransaction(o *order.Order) (*MockOrderUoWFactory, *MockOrderUoW, *MockOrderRepository) {
	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	factory := new(MockOrderUoWFactory)

	factory.On("Create").Return(uow).Once()
	uow.On("Begin", mock.Anything).Return(nil).Once()
	uow.On("OrderRepository").Return(repo)
	uow.On("Rollback", mock.Anything).Return(nil).Maybe()
	if o != nil {
		repo.On("Get", mock.Anything, o.ID()).Return(o, nil).Once()
	}

	return factory, uow, repo
}
