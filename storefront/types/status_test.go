package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeOrderStatus(t *testing.T) {
	assert.Equal(t, StatusInPreparation, NormalizeOrderStatus("inPreparation"))
	assert.Equal(t, StatusUnknown, NormalizeOrderStatus("refunded"))
	assert.Equal(t, StatusUnknown, NormalizeOrderStatus(""))
}

func TestOrderStatusPresentation(t *testing.T) {
	tests := []struct {
		status  OrderStatus
		label   string
		message string
	}{
		{StatusPending, "Pending", "Your order has been received and is waiting to be prepared."},
		{StatusOutForDelivery, "Out for Delivery", "Your order is on its way to you!"},
		{StatusCancelled, "Cancelled", "This order has been cancelled."},
		{StatusUnknown, "Unknown Status", "Order status is currently unavailable."},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			assert.Equal(t, tt.label, tt.status.Label())
			assert.Equal(t, tt.message, tt.status.Message())
		})
	}
}

func TestOrderStatusTerminal(t *testing.T) {
	assert.True(t, StatusDelivered.Terminal())
	assert.True(t, StatusCancelled.Terminal())
	assert.False(t, StatusPending.Terminal())
	assert.False(t, StatusUnknown.Valid())
}
