// Package checkout turns the cart into a placed order.
package checkout

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"go.uber.org/zap"

	"moms-kitchen/storefront/backend"
	"moms-kitchen/storefront/cart"
	"moms-kitchen/storefront/types"
)

// ErrEmptyCart is returned when checking out with nothing in the cart.
var ErrEmptyCart = errors.New("cart is empty")

var phonePattern = regexp.MustCompile(`^\+?[\d\s\-()]+$`)

// Form is the delivery information collected at checkout.
type Form struct {
	Name    string
	Phone   string
	Address string
	Notes   string
}

// FieldErrors maps a form field to its validation message.
type FieldErrors map[string]string

func (e FieldErrors) Error() string {
	fields := make([]string, 0, len(e))
	for field := range e {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	msgs := make([]string, 0, len(fields))
	for _, field := range fields {
		msgs = append(msgs, e[field])
	}
	return strings.Join(msgs, "; ")
}

// Validate returns nil when the form can be submitted.
func (f Form) Validate() FieldErrors {
	errs := FieldErrors{}
	if strings.TrimSpace(f.Name) == "" {
		errs["name"] = "Name is required"
	}

	phone := strings.TrimSpace(f.Phone)
	switch {
	case phone == "":
		errs["phone"] = "Phone number is required"
	case !phonePattern.MatchString(phone):
		errs["phone"] = "Please enter a valid phone number"
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

// Service places orders for the contents of a cart store.
type Service struct {
	store   *cart.Store
	backend backend.Backend
	logger  *zap.Logger
}

// NewService returns a checkout Service.
func NewService(store *cart.Store, b backend.Backend, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{store: store, backend: b, logger: logger.Named("checkout")}
}

// Items converts the cart lines into order items, in cart order.
func Items(state cart.State) []types.OrderItem {
	lines := state.Lines()
	items := make([]types.OrderItem, 0, len(lines))
	for _, line := range lines {
		items = append(items, types.OrderItem{MenuItemID: line.Item.ID, Quantity: uint64(line.Quantity)})
	}
	return items
}

// Submit validates form and places an order for the current cart. The cart
// is cleared only after the backend confirms the order.
func (s *Service) Submit(ctx context.Context, form Form) (types.Order, error) {
	if errs := form.Validate(); errs != nil {
		return types.Order{}, errs
	}

	state := s.store.State()
	if state.Empty() {
		return types.Order{}, ErrEmptyCart
	}

	order, err := s.backend.PlaceOrder(ctx, Items(state))
	if err != nil {
		s.logger.Warn("failed to place order", zap.Error(err), zap.Int("lines", state.Len()))
		return types.Order{}, fmt.Errorf("place order: %w", err)
	}

	s.store.ClearCart()
	s.logger.Info("order placed",
		zap.Uint64("order_id", order.ID),
		zap.String("customer", strings.TrimSpace(form.Name)),
		zap.Uint64("total", order.TotalPrice),
	)
	return order, nil
}
