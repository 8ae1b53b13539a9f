package activities

import (
	"context"
	"fmt"
	"io"
	"strings"

	"go.temporal.io/sdk/activity"

	"moms-kitchen/storefront/types"
)

// KitchenActivities contains activities that reach the kitchen staff
type KitchenActivities struct {
	// Tickets receives printed kitchen tickets; nil discards them
	Tickets io.Writer
}

// NotifyKitchen prints a ticket for a newly placed order
func (a *KitchenActivities) NotifyKitchen(ctx context.Context, order types.Order) error {
	logger := activity.GetLogger(ctx)
	logger.Info("Notifying kitchen", "orderID", order.ID, "items", len(order.Items))

	if len(order.Items) == 0 {
		return &types.ValidationError{Msg: fmt.Sprintf("order %d has no items", order.ID)}
	}

	if a.Tickets != nil {
		if _, err := io.WriteString(a.Tickets, Ticket(order)); err != nil {
			return fmt.Errorf("print ticket: %w", err)
		}
	}

	logger.Info("Kitchen notified", "orderID", order.ID)
	return nil
}

// Ticket renders the kitchen ticket for order
func Ticket(order types.Order) string {
	var b strings.Builder
	fmt.Fprintf(&b, "ORDER #%d  %s\n", order.ID, order.Timestamp.Format("15:04"))
	for _, item := range order.Items {
		fmt.Fprintf(&b, "  %3d x item %d\n", item.Quantity, item.MenuItemID)
	}
	return b.String()
}
