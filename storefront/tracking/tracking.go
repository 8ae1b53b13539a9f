// Package tracking looks up the state of a placed order.
package tracking

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"moms-kitchen/storefront/backend"
	"moms-kitchen/storefront/types"
)

// ParseOrderID parses a user-entered order number.
func ParseOrderID(s string) (uint64, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if s == "" {
		return 0, &types.ValidationError{Msg: "Please enter an order ID"}
	}
	id, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, &types.ValidationError{Msg: fmt.Sprintf("%q is not a valid order ID", s)}
	}
	return id, nil
}

// Result is what the storefront knows about one order.
type Result struct {
	ID     uint64
	Status types.OrderStatus
	// Order is nil when the order is missing from the history.
	Order *types.Order
}

// Service answers order lookups.
type Service struct {
	backend backend.Backend
	logger  *zap.Logger
}

// NewService returns a tracking Service.
func NewService(b backend.Backend, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{backend: b, logger: logger.Named("tracking")}
}

// Lookup fetches the status and details of order id.
func (s *Service) Lookup(ctx context.Context, id uint64) (Result, error) {
	var (
		status  types.OrderStatus
		history []types.Order
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		status, err = s.backend.GetOrderStatus(gctx, id)
		return err
	})
	g.Go(func() error {
		var err error
		history, err = s.backend.GetOrderHistory(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		s.logger.Debug("order lookup failed", zap.Uint64("order_id", id), zap.Error(err))
		return Result{}, err
	}

	result := Result{ID: id, Status: status}
	for i := range history {
		if history[i].ID == id {
			order := history[i]
			result.Order = &order
			break
		}
	}
	return result, nil
}
