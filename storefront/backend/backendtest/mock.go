// Package backendtest provides a testify mock of backend.Backend.
package backendtest

import (
	"context"

	"github.com/stretchr/testify/mock"

	"moms-kitchen/storefront/backend"
	"moms-kitchen/storefront/types"
)

// Backend is a mock backend.Backend.
type Backend struct {
	mock.Mock
}

var _ backend.Backend = (*Backend)(nil)

func (m *Backend) GetMenu(ctx context.Context) ([]types.MenuItem, error) {
	args := m.Called(ctx)
	menu, _ := args.Get(0).([]types.MenuItem)
	return menu, args.Error(1)
}

func (m *Backend) PlaceOrder(ctx context.Context, items []types.OrderItem) (types.Order, error) {
	args := m.Called(ctx, items)
	order, _ := args.Get(0).(types.Order)
	return order, args.Error(1)
}

func (m *Backend) GetOrderStatus(ctx context.Context, orderID uint64) (types.OrderStatus, error) {
	args := m.Called(ctx, orderID)
	status, _ := args.Get(0).(types.OrderStatus)
	return status, args.Error(1)
}

func (m *Backend) GetOrderHistory(ctx context.Context) ([]types.Order, error) {
	args := m.Called(ctx)
	orders, _ := args.Get(0).([]types.Order)
	return orders, args.Error(1)
}

func (m *Backend) CreateMenuItem(ctx context.Context, item types.NewMenuItem) (types.MenuItem, error) {
	args := m.Called(ctx, item)
	created, _ := args.Get(0).(types.MenuItem)
	return created, args.Error(1)
}

func (m *Backend) SetMenuItemAvailability(ctx context.Context, menuItemID uint64, available bool) error {
	args := m.Called(ctx, menuItemID, available)
	return args.Error(0)
}
