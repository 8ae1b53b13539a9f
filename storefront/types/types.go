package types

import "time"

// DefaultImageURL is used when a new menu item is created without an image
const DefaultImageURL = "https://example.com/images/default.jpg"

// MenuItem represents a dish on the menu. Price is in cents.
type MenuItem struct {
	ID          uint64 `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Available   bool   `json:"available"`
	ImageURL    string `json:"imageUrl"`
	Price       uint64 `json:"price"`
}

// NewMenuItem is the input for creating a menu item
type NewMenuItem struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       uint64 `json:"price"`
	ImageURL    string `json:"imageUrl"`
}

// OrderItem represents one menu item and its quantity in a placed order
type OrderItem struct {
	MenuItemID uint64 `json:"menuItemId"`
	Quantity   uint64 `json:"quantity"`
}

// Order represents an order as recorded by the backend
type Order struct {
	ID         uint64      `json:"id"`
	Status     OrderStatus `json:"status"`
	Timestamp  time.Time   `json:"timestamp"`
	Items      []OrderItem `json:"items"`
	TotalPrice uint64      `json:"totalPrice"`
}

// OrderStatusChange is the signal payload for moving an order to a new status
type OrderStatusChange struct {
	OrderID uint64      `json:"orderId"`
	Status  OrderStatus `json:"status"`
}

// AvailabilityChange is the update payload for toggling a menu item
type AvailabilityChange struct {
	MenuItemID uint64 `json:"menuItemId"`
	Available  bool   `json:"available"`
}
