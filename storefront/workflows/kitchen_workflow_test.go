package workflows

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.temporal.io/sdk/testsuite"

	"moms-kitchen/storefront/activities"
	"moms-kitchen/storefront/types"
)

type KitchenWorkflowSuite struct {
	suite.Suite
	testsuite.WorkflowTestSuite

	env     *testsuite.TestWorkflowEnvironment
	updates int
}

func TestKitchenWorkflow(t *testing.T) {
	suite.Run(t, new(KitchenWorkflowSuite))
}

func (s *KitchenWorkflowSuite) SetupTest() {
	s.env = s.NewTestWorkflowEnvironment()
	s.env.RegisterActivity(&activities.KitchenActivities{})
}

func (s *KitchenWorkflowSuite) AfterTest(suiteName, testName string) {
	s.env.AssertExpectations(s.T())
}

var seed = KitchenInput{SeedMenu: []types.NewMenuItem{
	{Name: "Lasagna", Description: "Layers of love", Price: 1200},
	{Name: "Tiramisu", Description: "Coffee dessert", Price: 650, ImageURL: "https://example.com/tiramisu.jpg"},
}}

// updateOutcome receives the result of a test update.
type updateOutcome struct {
	rejected  *error
	completed *error
}

func (u updateOutcome) Accept() {}

func (u updateOutcome) Reject(err error) {
	if u.rejected != nil {
		*u.rejected = err
	}
}

func (u updateOutcome) Complete(_ interface{}, err error) {
	if u.completed != nil {
		*u.completed = err
	}
}

// update sends an update and records its outcome.
func (s *KitchenWorkflowSuite) update(name string, rejected *error, completed *error, args ...interface{}) {
	s.updates++
	s.env.UpdateWorkflow(name, fmt.Sprintf("update-%d", s.updates), updateOutcome{rejected: rejected, completed: completed}, args...)
}

func (s *KitchenWorkflowSuite) closeAfter(d time.Duration) {
	s.env.RegisterDelayedCallback(func() {
		s.env.SignalWorkflow(SignalCloseKitchen, "end of day")
	}, d)
}

func (s *KitchenWorkflowSuite) result() *KitchenState {
	s.True(s.env.IsWorkflowCompleted())
	s.NoError(s.env.GetWorkflowError())
	var state KitchenState
	s.NoError(s.env.GetWorkflowResult(&state))
	return &state
}

func (s *KitchenWorkflowSuite) Test_SeedsMenu() {
	s.env.RegisterDelayedCallback(func() {
		encoded, err := s.env.QueryWorkflow(QueryMenu)
		s.NoError(err)
		var menu []types.MenuItem
		s.NoError(encoded.Get(&menu))
		s.Require().Len(menu, 2)
		s.Equal(uint64(1), menu[0].ID)
		s.Equal(types.DefaultImageURL, menu[0].ImageURL)
		s.True(menu[0].Available)
		s.Equal("https://example.com/tiramisu.jpg", menu[1].ImageURL)
	}, time.Second)
	s.closeAfter(time.Minute)

	s.env.ExecuteWorkflow(KitchenWorkflow, seed)

	state := s.result()
	s.Len(state.Menu, 2)
	s.Equal(uint64(3), state.NextItemID)
}

func (s *KitchenWorkflowSuite) Test_PlaceOrder() {
	s.env.OnActivity("NotifyKitchen", mock.Anything, mock.Anything).Return(nil).Once()

	var completed error
	s.env.RegisterDelayedCallback(func() {
		s.update(UpdatePlaceOrder, nil, &completed, []types.OrderItem{
			{MenuItemID: 1, Quantity: 2},
			{MenuItemID: 2, Quantity: 1},
		})
	}, time.Second)
	s.env.RegisterDelayedCallback(func() {
		encoded, err := s.env.QueryWorkflow(QueryOrderStatus, uint64(1))
		s.NoError(err)
		var status types.OrderStatus
		s.NoError(encoded.Get(&status))
		s.Equal(types.StatusPending, status)
	}, 2*time.Second)
	s.closeAfter(time.Minute)

	s.env.ExecuteWorkflow(KitchenWorkflow, seed)

	s.NoError(completed)
	state := s.result()
	s.Require().Len(state.Orders, 1)
	order := state.Orders[0]
	s.Equal(uint64(1), order.ID)
	s.Equal(uint64(2*1200+650), order.TotalPrice)
	s.Equal(types.StatusPending, order.Status)
	s.Len(order.Items, 2)
}

func (s *KitchenWorkflowSuite) Test_PlaceOrderRejected() {
	var emptyErr, unknownErr, unavailableErr error
	s.env.RegisterDelayedCallback(func() {
		s.update(UpdatePlaceOrder, &emptyErr, nil, []types.OrderItem{})
		s.update(UpdatePlaceOrder, &unknownErr, nil, []types.OrderItem{{MenuItemID: 42, Quantity: 1}})
		s.update(UpdateSetAvailability, nil, nil, types.AvailabilityChange{MenuItemID: 2, Available: false})
	}, time.Second)
	s.env.RegisterDelayedCallback(func() {
		s.update(UpdatePlaceOrder, &unavailableErr, nil, []types.OrderItem{{MenuItemID: 2, Quantity: 1}})
	}, 2*time.Second)
	s.closeAfter(time.Minute)

	s.env.ExecuteWorkflow(KitchenWorkflow, seed)

	s.ErrorContains(emptyErr, "order has no items")
	s.ErrorContains(unknownErr, "menu item 42 not found")
	s.ErrorContains(unavailableErr, "Tiramisu is not available")
	state := s.result()
	s.Empty(state.Orders)
	s.False(state.Menu[1].Available)
}

func (s *KitchenWorkflowSuite) Test_PlaceOrderTotalTooLarge() {
	var rejected error
	s.env.RegisterDelayedCallback(func() {
		s.update(UpdateCreateMenuItem, nil, nil, types.NewMenuItem{Name: "Gold", Description: "Leaf", Price: 1 << 63})
	}, time.Second)
	s.env.RegisterDelayedCallback(func() {
		s.update(UpdatePlaceOrder, &rejected, nil, []types.OrderItem{{MenuItemID: 3, Quantity: 2}})
	}, 2*time.Second)
	s.closeAfter(time.Minute)

	s.env.ExecuteWorkflow(KitchenWorkflow, seed)

	s.ErrorContains(rejected, "order total is too large")
	s.Empty(s.result().Orders)
}

func (s *KitchenWorkflowSuite) Test_CloseWaitsForNotification() {
	s.env.OnActivity("NotifyKitchen", mock.Anything, mock.Anything).After(10 * time.Second).Return(nil).Once()

	s.env.RegisterDelayedCallback(func() {
		s.update(UpdatePlaceOrder, nil, nil, []types.OrderItem{{MenuItemID: 1, Quantity: 1}})
	}, time.Second)
	s.closeAfter(2 * time.Second)

	start := s.env.Now()
	s.env.ExecuteWorkflow(KitchenWorkflow, seed)

	s.Len(s.result().Orders, 1)
	s.GreaterOrEqual(s.env.Now().Sub(start), 10*time.Second)
}

func (s *KitchenWorkflowSuite) Test_CreateMenuItem() {
	var invalid error
	s.env.RegisterDelayedCallback(func() {
		s.update(UpdateCreateMenuItem, nil, nil, types.NewMenuItem{Name: "Soup", Description: "Warm", Price: 400})
		s.update(UpdateCreateMenuItem, &invalid, nil, types.NewMenuItem{Name: "Air", Description: "Free"})
	}, time.Second)
	s.closeAfter(time.Minute)

	s.env.ExecuteWorkflow(KitchenWorkflow, seed)

	s.ErrorContains(invalid, "price must be positive")
	state := s.result()
	s.Require().Len(state.Menu, 3)
	s.Equal("Soup", state.Menu[2].Name)
	s.Equal(uint64(3), state.Menu[2].ID)
}

func (s *KitchenWorkflowSuite) Test_AdvanceOrder() {
	s.env.OnActivity("NotifyKitchen", mock.Anything, mock.Anything).Return(nil).Once()

	s.env.RegisterDelayedCallback(func() {
		s.update(UpdatePlaceOrder, nil, nil, []types.OrderItem{{MenuItemID: 1, Quantity: 1}})
	}, time.Second)
	s.env.RegisterDelayedCallback(func() {
		s.env.SignalWorkflow(SignalAdvanceOrder, types.OrderStatusChange{OrderID: 1, Status: types.StatusInPreparation})
	}, 2*time.Second)
	s.env.RegisterDelayedCallback(func() {
		s.env.SignalWorkflow(SignalAdvanceOrder, types.OrderStatusChange{OrderID: 1, Status: types.StatusCancelled})
	}, 3*time.Second)
	s.env.RegisterDelayedCallback(func() {
		// cancelled orders stay cancelled
		s.env.SignalWorkflow(SignalAdvanceOrder, types.OrderStatusChange{OrderID: 1, Status: types.StatusDelivered})
		s.env.SignalWorkflow(SignalAdvanceOrder, types.OrderStatusChange{OrderID: 99, Status: types.StatusDelivered})
	}, 4*time.Second)
	s.closeAfter(time.Minute)

	s.env.ExecuteWorkflow(KitchenWorkflow, seed)

	state := s.result()
	s.Equal(types.StatusCancelled, state.Orders[0].Status)
}

func (s *KitchenWorkflowSuite) Test_UnknownOrderStatusQuery() {
	s.env.RegisterDelayedCallback(func() {
		_, err := s.env.QueryWorkflow(QueryOrderStatus, uint64(5))
		s.ErrorContains(err, "order 5 not found")
	}, time.Second)
	s.closeAfter(time.Minute)

	s.env.ExecuteWorkflow(KitchenWorkflow, seed)
	s.result()
}

func TestKitchenStateAdvanceIgnoresInvalidStatus(t *testing.T) {
	state := &KitchenState{Orders: []types.Order{{ID: 1, Status: types.StatusPending}}}

	state.advance(types.OrderStatusChange{OrderID: 1, Status: "teleported"}, nopLogger{})
	assert.Equal(t, types.StatusPending, state.Orders[0].Status)

	state.advance(types.OrderStatusChange{OrderID: 1, Status: types.StatusOutForDelivery}, nopLogger{})
	require.Equal(t, types.StatusOutForDelivery, state.Orders[0].Status)
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...interface{}) {}
func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}
