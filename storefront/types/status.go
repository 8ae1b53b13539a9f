package types

// OrderStatus is the lifecycle stage of an order as reported by the backend
type OrderStatus string

const (
	StatusPending        OrderStatus = "pending"
	StatusInPreparation  OrderStatus = "inPreparation"
	StatusOutForDelivery OrderStatus = "outForDelivery"
	StatusDelivered      OrderStatus = "delivered"
	StatusCancelled      OrderStatus = "cancelled"
	StatusUnknown        OrderStatus = "unknown"
)

var statusLabels = map[OrderStatus]string{
	StatusPending:        "Pending",
	StatusInPreparation:  "In Preparation",
	StatusOutForDelivery: "Out for Delivery",
	StatusDelivered:      "Delivered",
	StatusCancelled:      "Cancelled",
}

var statusMessages = map[OrderStatus]string{
	StatusPending:        "Your order has been received and is waiting to be prepared.",
	StatusInPreparation:  "Your delicious meal is being prepared with love!",
	StatusOutForDelivery: "Your order is on its way to you!",
	StatusDelivered:      "Your order has been delivered. Enjoy your meal!",
	StatusCancelled:      "This order has been cancelled.",
}

// NormalizeOrderStatus maps any value outside the known set to StatusUnknown
func NormalizeOrderStatus(s string) OrderStatus {
	status := OrderStatus(s)
	if status.Valid() {
		return status
	}
	return StatusUnknown
}

// Valid reports whether s is one of the statuses the backend can return
func (s OrderStatus) Valid() bool {
	_, ok := statusLabels[s]
	return ok
}

// Terminal reports whether no further transitions are expected
func (s OrderStatus) Terminal() bool {
	return s == StatusDelivered || s == StatusCancelled
}

// Label returns the human-readable name of the status
func (s OrderStatus) Label() string {
	if label, ok := statusLabels[s]; ok {
		return label
	}
	return "Unknown Status"
}

// Message returns the customer-facing explanation of the status
func (s OrderStatus) Message() string {
	if msg, ok := statusMessages[s]; ok {
		return msg
	}
	return "Order status is currently unavailable."
}
