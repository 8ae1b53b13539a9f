package workflows

import (
	"fmt"
	"math/bits"
	"time"

	"go.temporal.io/sdk/log"
	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"

	"moms-kitchen/storefront/types"
)

// Query, update and signal names served by KitchenWorkflow
const (
	QueryMenu         = "get-menu"
	QueryOrderStatus  = "get-order-status"
	QueryOrderHistory = "get-order-history"

	UpdatePlaceOrder      = "place-order"
	UpdateCreateMenuItem  = "create-menu-item"
	UpdateSetAvailability = "set-menu-item-availability"

	SignalAdvanceOrder = "advance-order"
	SignalCloseKitchen = "close-kitchen"
)

// KitchenInput is the input to KitchenWorkflow
type KitchenInput struct {
	SeedMenu []types.NewMenuItem
}

// KitchenState is the backend state held by KitchenWorkflow
type KitchenState struct {
	Menu        []types.MenuItem
	Orders      []types.Order
	NextItemID  uint64
	NextOrderID uint64
	Closed      bool
}

var notifyOptions = workflow.ActivityOptions{
	StartToCloseTimeout: 30 * time.Second,
	RetryPolicy: &temporal.RetryPolicy{
		InitialInterval:        1 * time.Second,
		BackoffCoefficient:     2.0,
		MaximumInterval:        30 * time.Second,
		MaximumAttempts:        5,
		NonRetryableErrorTypes: []string{"ValidationError"},
	},
}

func (s *KitchenState) menuIndex(id uint64) int {
	for i, item := range s.Menu {
		if item.ID == id {
			return i
		}
	}
	return -1
}

func (s *KitchenState) orderIndex(id uint64) int {
	for i, order := range s.Orders {
		if order.ID == id {
			return i
		}
	}
	return -1
}

func (s *KitchenState) addMenuItem(req types.NewMenuItem) types.MenuItem {
	imageURL := req.ImageURL
	if imageURL == "" {
		imageURL = types.DefaultImageURL
	}
	item := types.MenuItem{
		ID:          s.NextItemID,
		Name:        req.Name,
		Description: req.Description,
		Available:   true,
		ImageURL:    imageURL,
		Price:       req.Price,
	}
	s.NextItemID++
	s.Menu = append(s.Menu, item)
	return item
}

func validateNewMenuItem(req types.NewMenuItem) error {
	if req.Name == "" || req.Description == "" {
		return temporal.NewApplicationError("name and description are required", "ValidationError")
	}
	if req.Price == 0 {
		return temporal.NewApplicationError("price must be positive", "ValidationError")
	}
	return nil
}

func (s *KitchenState) validateOrder(items []types.OrderItem) error {
	if len(items) == 0 {
		return temporal.NewApplicationError("order has no items", "ValidationError")
	}
	for _, oi := range items {
		if oi.Quantity == 0 {
			return temporal.NewApplicationError(fmt.Sprintf("item %d has no quantity", oi.MenuItemID), "ValidationError")
		}
		i := s.menuIndex(oi.MenuItemID)
		if i < 0 {
			return temporal.NewApplicationError(fmt.Sprintf("menu item %d not found", oi.MenuItemID), "ValidationError")
		}
		if !s.Menu[i].Available {
			return temporal.NewApplicationError(fmt.Sprintf("%s is not available", s.Menu[i].Name), "ValidationError")
		}
	}
	if _, ok := s.orderTotal(items); !ok {
		return temporal.NewApplicationError("order total is too large", "ValidationError")
	}
	return nil
}

// orderTotal sums price times quantity. ok is false if the total does not
// fit in a uint64.
func (s *KitchenState) orderTotal(items []types.OrderItem) (total uint64, ok bool) {
	for _, oi := range items {
		hi, line := bits.Mul64(s.Menu[s.menuIndex(oi.MenuItemID)].Price, oi.Quantity)
		if hi != 0 {
			return 0, false
		}
		var carry uint64
		total, carry = bits.Add64(total, line, 0)
		if carry != 0 {
			return 0, false
		}
	}
	return total, true
}

// KitchenWorkflow is the development backend for the storefront. It serves
// the menu and orders through queries, accepts mutations as updates and runs
// until it receives the close-kitchen signal.
func KitchenWorkflow(ctx workflow.Context, input KitchenInput) (*KitchenState, error) {
	logger := workflow.GetLogger(ctx)

	state := &KitchenState{NextItemID: 1, NextOrderID: 1}
	for _, req := range input.SeedMenu {
		state.addMenuItem(req)
	}

	// notifications still running, waited for on close
	var pending int

	// Query handlers
	err := workflow.SetQueryHandler(ctx, QueryMenu, func() ([]types.MenuItem, error) {
		return state.Menu, nil
	})
	if err != nil {
		return nil, err
	}

	err = workflow.SetQueryHandler(ctx, QueryOrderHistory, func() ([]types.Order, error) {
		return state.Orders, nil
	})
	if err != nil {
		return nil, err
	}

	err = workflow.SetQueryHandler(ctx, QueryOrderStatus, func(orderID uint64) (types.OrderStatus, error) {
		i := state.orderIndex(orderID)
		if i < 0 {
			return "", fmt.Errorf("order %d not found", orderID)
		}
		return state.Orders[i].Status, nil
	})
	if err != nil {
		return nil, err
	}

	// Update handlers
	err = workflow.SetUpdateHandlerWithOptions(ctx, UpdateCreateMenuItem,
		func(ctx workflow.Context, req types.NewMenuItem) (types.MenuItem, error) {
			item := state.addMenuItem(req)
			logger.Info("Menu item created", "menuItemID", item.ID, "name", item.Name)
			return item, nil
		},
		workflow.UpdateHandlerOptions{Validator: validateNewMenuItem},
	)
	if err != nil {
		return nil, err
	}

	err = workflow.SetUpdateHandlerWithOptions(ctx, UpdateSetAvailability,
		func(ctx workflow.Context, change types.AvailabilityChange) error {
			i := state.menuIndex(change.MenuItemID)
			state.Menu[i].Available = change.Available
			logger.Info("Availability changed", "menuItemID", change.MenuItemID, "available", change.Available)
			return nil
		},
		workflow.UpdateHandlerOptions{Validator: func(change types.AvailabilityChange) error {
			if state.menuIndex(change.MenuItemID) < 0 {
				return temporal.NewApplicationError(fmt.Sprintf("menu item %d not found", change.MenuItemID), "ValidationError")
			}
			return nil
		}},
	)
	if err != nil {
		return nil, err
	}

	err = workflow.SetUpdateHandlerWithOptions(ctx, UpdatePlaceOrder,
		func(ctx workflow.Context, items []types.OrderItem) (types.Order, error) {
			total, _ := state.orderTotal(items)
			order := types.Order{
				ID:         state.NextOrderID,
				Status:     types.StatusPending,
				Timestamp:  workflow.Now(ctx),
				Items:      items,
				TotalPrice: total,
			}
			state.NextOrderID++
			state.Orders = append(state.Orders, order)
			logger.Info("Order placed", "orderID", order.ID, "total", order.TotalPrice)

			// Kitchen notifications are best effort
			pending++
			workflow.Go(workflow.WithActivityOptions(ctx, notifyOptions), func(ctx workflow.Context) {
				defer func() { pending-- }()
				err := workflow.ExecuteActivity(ctx, "NotifyKitchen", order).Get(ctx, nil)
				if err != nil {
					// Non-critical failure - log but continue
					logger.Warn("Kitchen notification failed", "orderID", order.ID, "error", err)
				}
			})
			return order, nil
		},
		workflow.UpdateHandlerOptions{Validator: state.validateOrder},
	)
	if err != nil {
		return nil, err
	}

	// Setup signal channels
	sigAdvance := workflow.GetSignalChannel(ctx, SignalAdvanceOrder)
	sigClose := workflow.GetSignalChannel(ctx, SignalCloseKitchen)

	logger.Info("Kitchen open", "menuItems", len(state.Menu))

	// TODO: continue-as-new once the order history makes the event history large
	for !state.Closed {
		selector := workflow.NewSelector(ctx)

		selector.AddReceive(sigAdvance, func(ch workflow.ReceiveChannel, more bool) {
			var change types.OrderStatusChange
			ch.Receive(ctx, &change)
			state.advance(change, logger)
		})

		selector.AddReceive(sigClose, func(ch workflow.ReceiveChannel, more bool) {
			var reason string
			ch.Receive(ctx, &reason)
			state.Closed = true
			logger.Info("Close received", "reason", reason)
		})

		selector.Select(ctx)
	}

	err = workflow.Await(ctx, func() bool {
		return pending == 0 && workflow.AllHandlersFinished(ctx)
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Kitchen closed", "orders", len(state.Orders))
	return state, nil
}

func (s *KitchenState) advance(change types.OrderStatusChange, logger log.Logger) {
	i := s.orderIndex(change.OrderID)
	switch {
	case i < 0:
		logger.Warn("Ignoring status change for unknown order", "orderID", change.OrderID)
	case !change.Status.Valid():
		logger.Warn("Ignoring invalid status", "orderID", change.OrderID, "status", change.Status)
	case s.Orders[i].Status.Terminal():
		logger.Warn("Order already finished", "orderID", change.OrderID, "status", s.Orders[i].Status)
	default:
		s.Orders[i].Status = change.Status
		logger.Info("Order status changed", "orderID", change.OrderID, "status", change.Status)
	}
}
