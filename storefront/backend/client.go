package backend

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.temporal.io/sdk/client"
	"go.temporal.io/sdk/converter"
	"go.uber.org/zap"

	"moms-kitchen/storefront/config"
	"moms-kitchen/storefront/logging"
	"moms-kitchen/storefront/types"
	"moms-kitchen/storefront/workflows"
)

// WorkflowClient is the subset of client.Client used to talk to the backend.
type WorkflowClient interface {
	QueryWorkflow(ctx context.Context, workflowID string, runID string, queryType string, args ...interface{}) (converter.EncodedValue, error)
	UpdateWorkflow(ctx context.Context, options client.UpdateWorkflowOptions) (client.WorkflowUpdateHandle, error)
	SignalWorkflow(ctx context.Context, workflowID string, runID string, signalName string, arg interface{}) error
	CheckHealth(ctx context.Context, request *client.CheckHealthRequest) (*client.CheckHealthResponse, error)
}

// Client implements Backend against the kitchen workflow over Temporal.
type Client struct {
	wc         WorkflowClient
	workflowID string
	timeout    time.Duration
	logger     *zap.Logger
}

var _ Backend = (*Client)(nil)

// NewClient returns a Client for the backend workflow workflowID. Each call
// is bounded by timeout.
func NewClient(wc WorkflowClient, workflowID string, timeout time.Duration, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{wc: wc, workflowID: workflowID, timeout: timeout, logger: logger.Named("backend")}
}

// Dial creates a lazy Temporal client: no connection is made until the
// first call, so the storefront can start while the backend is down.
func Dial(cfg config.TemporalConfig, logger *zap.Logger) (client.Client, error) {
	c, err := client.NewLazyClient(client.Options{
		HostPort:  cfg.HostPort,
		Namespace: cfg.Namespace,
		Logger:    logging.NewTemporalLogger(logger),
	})
	if err != nil {
		return nil, fmt.Errorf("unable to create Temporal client: %w", err)
	}
	return c, nil
}

func (c *Client) query(ctx context.Context, queryType string, out interface{}, args ...interface{}) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	value, err := c.wc.QueryWorkflow(ctx, c.workflowID, "", queryType, args...)
	if err != nil {
		return err
	}
	if err := value.Get(out); err != nil {
		return fmt.Errorf("decode %s result: %w", queryType, err)
	}
	return nil
}

func (c *Client) update(ctx context.Context, updateName string, out interface{}, args ...interface{}) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	handle, err := c.wc.UpdateWorkflow(ctx, client.UpdateWorkflowOptions{
		UpdateID:     uuid.NewString(),
		WorkflowID:   c.workflowID,
		UpdateName:   updateName,
		Args:         args,
		WaitForStage: client.WorkflowUpdateStageCompleted,
	})
	if err != nil {
		return err
	}
	return handle.Get(ctx, out)
}

// GetMenu returns the full menu, including unavailable items.
func (c *Client) GetMenu(ctx context.Context) ([]types.MenuItem, error) {
	var menu []types.MenuItem
	if err := c.query(ctx, workflows.QueryMenu, &menu); err != nil {
		return nil, classify("get menu", err)
	}
	return menu, nil
}

// PlaceOrder submits items and returns the order recorded by the backend.
func (c *Client) PlaceOrder(ctx context.Context, items []types.OrderItem) (types.Order, error) {
	var order types.Order
	if err := c.update(ctx, workflows.UpdatePlaceOrder, &order, items); err != nil {
		return types.Order{}, classify("place order", err)
	}
	c.logger.Info("order placed", zap.Uint64("order_id", order.ID), zap.Int("lines", len(items)))
	return order, nil
}

// GetOrderStatus returns the status of orderID.
func (c *Client) GetOrderStatus(ctx context.Context, orderID uint64) (types.OrderStatus, error) {
	var status types.OrderStatus
	if err := c.query(ctx, workflows.QueryOrderStatus, &status, orderID); err != nil {
		if isQueryFailure(err) {
			return "", &types.NotFoundError{Kind: "order", ID: orderID}
		}
		return "", classify("get order status", err)
	}
	return types.NormalizeOrderStatus(string(status)), nil
}

// GetOrderHistory returns every order known to the backend.
func (c *Client) GetOrderHistory(ctx context.Context) ([]types.Order, error) {
	var orders []types.Order
	if err := c.query(ctx, workflows.QueryOrderHistory, &orders); err != nil {
		return nil, classify("get order history", err)
	}
	return orders, nil
}

// CreateMenuItem adds a dish to the menu.
func (c *Client) CreateMenuItem(ctx context.Context, item types.NewMenuItem) (types.MenuItem, error) {
	var created types.MenuItem
	if err := c.update(ctx, workflows.UpdateCreateMenuItem, &created, item); err != nil {
		return types.MenuItem{}, classify("create menu item", err)
	}
	c.logger.Info("menu item created", zap.Uint64("menu_item_id", created.ID), zap.String("name", created.Name))
	return created, nil
}

// SetMenuItemAvailability marks a dish as orderable or not.
func (c *Client) SetMenuItemAvailability(ctx context.Context, menuItemID uint64, available bool) error {
	change := types.AvailabilityChange{MenuItemID: menuItemID, Available: available}
	if err := c.update(ctx, workflows.UpdateSetAvailability, nil, change); err != nil {
		return classify("set menu item availability", err)
	}
	return nil
}

// AdvanceOrder asks the development backend to move an order to status.
func (c *Client) AdvanceOrder(ctx context.Context, orderID uint64, status types.OrderStatus) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	change := types.OrderStatusChange{OrderID: orderID, Status: status}
	if err := c.wc.SignalWorkflow(ctx, c.workflowID, "", workflows.SignalAdvanceOrder, change); err != nil {
		return classify("advance order", err)
	}
	return nil
}

// CheckHealth reports whether the Temporal frontend answers.
func (c *Client) CheckHealth(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	if _, err := c.wc.CheckHealth(ctx, &client.CheckHealthRequest{}); err != nil {
		return classify("check health", err)
	}
	return nil
}
