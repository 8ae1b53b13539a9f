// Package backend is the storefront's view of the remote kitchen backend.
package backend

import (
	"context"

	"moms-kitchen/storefront/types"
)

// Backend is the fixed contract offered by the remote service. Every call
// may fail when the backend cannot be reached; such failures wrap
// types.ErrBackendUnavailable.
type Backend interface {
	GetMenu(ctx context.Context) ([]types.MenuItem, error)
	PlaceOrder(ctx context.Context, items []types.OrderItem) (types.Order, error)
	GetOrderStatus(ctx context.Context, orderID uint64) (types.OrderStatus, error)
	GetOrderHistory(ctx context.Context) ([]types.Order, error)
	CreateMenuItem(ctx context.Context, item types.NewMenuItem) (types.MenuItem, error)
	SetMenuItemAvailability(ctx context.Context, menuItemID uint64, available bool) error
}
