// Package menuadmin manages the menu on behalf of restaurant staff.
package menuadmin

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"moms-kitchen/storefront/backend"
	"moms-kitchen/storefront/money"
	"moms-kitchen/storefront/types"
)

const (
	msgRequiredFields = "Please fill in all required fields."
	msgInvalidPrice   = "Please enter a valid price."
)

// Form is a new dish as typed by staff; Price is a dollar amount.
type Form struct {
	Name        string
	Description string
	Price       string
	ImageURL    string
}

// Parse validates the form and converts it to a NewMenuItem.
func (f Form) Parse() (types.NewMenuItem, error) {
	name := strings.TrimSpace(f.Name)
	description := strings.TrimSpace(f.Description)
	price := strings.TrimSpace(f.Price)
	if name == "" || description == "" || price == "" {
		return types.NewMenuItem{}, &types.ValidationError{Msg: msgRequiredFields}
	}

	cents, err := money.ParseCents(price)
	if err != nil || cents == 0 {
		return types.NewMenuItem{}, &types.ValidationError{Msg: msgInvalidPrice}
	}

	image := strings.TrimSpace(f.ImageURL)
	if image == "" {
		image = types.DefaultImageURL
	}

	return types.NewMenuItem{
		Name:        name,
		Description: description,
		Price:       cents,
		ImageURL:    image,
	}, nil
}

// Service wraps the menu management calls of the backend.
type Service struct {
	backend backend.Backend
	logger  *zap.Logger
}

// NewService returns a menu management Service.
func NewService(b backend.Backend, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{backend: b, logger: logger.Named("menuadmin")}
}

// Create validates form and adds the dish to the menu.
func (s *Service) Create(ctx context.Context, form Form) (types.MenuItem, error) {
	item, err := form.Parse()
	if err != nil {
		return types.MenuItem{}, err
	}
	created, err := s.backend.CreateMenuItem(ctx, item)
	if err != nil {
		return types.MenuItem{}, err
	}
	s.logger.Info("menu item created", zap.Uint64("menu_item_id", created.ID), zap.Uint64("price", created.Price))
	return created, nil
}

// ToggleAvailability flips whether item can be ordered and returns the new value.
func (s *Service) ToggleAvailability(ctx context.Context, item types.MenuItem) (bool, error) {
	available := !item.Available
	if err := s.backend.SetMenuItemAvailability(ctx, item.ID, available); err != nil {
		return item.Available, err
	}
	s.logger.Info("menu item availability changed", zap.Uint64("menu_item_id", item.ID), zap.Bool("available", available))
	return available, nil
}
