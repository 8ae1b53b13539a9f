package backend

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.temporal.io/api/serviceerror"
	"go.temporal.io/sdk/client"
	"go.temporal.io/sdk/converter"
	"go.temporal.io/sdk/temporal"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"moms-kitchen/storefront/types"
	"moms-kitchen/storefront/workflows"
)

// jsonValue stands in for payloads returned by the Temporal client.
type jsonValue struct {
	v interface{}
}

func (j jsonValue) HasValue() bool { return j.v != nil }

func (j jsonValue) Get(ptr interface{}) error {
	if ptr == nil {
		return nil
	}
	data, err := json.Marshal(j.v)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, ptr)
}

type fakeHandle struct {
	options client.UpdateWorkflowOptions
	result  interface{}
	err     error
}

func (h *fakeHandle) WorkflowID() string { return h.options.WorkflowID }
func (h *fakeHandle) RunID() string      { return "" }
func (h *fakeHandle) UpdateID() string   { return h.options.UpdateID }

func (h *fakeHandle) Get(_ context.Context, ptr interface{}) error {
	if h.err != nil {
		return h.err
	}
	return jsonValue{h.result}.Get(ptr)
}

type fakeWorkflowClient struct {
	queries map[string]interface{}
	updates map[string]interface{}
	err     error
	// updateErr is returned from the handle, as a rejected update would be
	updateErr error

	lastQueryArgs []interface{}
	lastUpdate    client.UpdateWorkflowOptions
	signals       []interface{}
}

func (f *fakeWorkflowClient) QueryWorkflow(_ context.Context, workflowID, _ string, queryType string, args ...interface{}) (converter.EncodedValue, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.lastQueryArgs = args
	return jsonValue{f.queries[queryType]}, nil
}

func (f *fakeWorkflowClient) UpdateWorkflow(_ context.Context, options client.UpdateWorkflowOptions) (client.WorkflowUpdateHandle, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.lastUpdate = options
	return &fakeHandle{options: options, result: f.updates[options.UpdateName], err: f.updateErr}, nil
}

func (f *fakeWorkflowClient) SignalWorkflow(_ context.Context, _, _ string, _ string, arg interface{}) error {
	if f.err != nil {
		return f.err
	}
	f.signals = append(f.signals, arg)
	return nil
}

func (f *fakeWorkflowClient) CheckHealth(context.Context, *client.CheckHealthRequest) (*client.CheckHealthResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &client.CheckHealthResponse{}, nil
}

func newTestClient(wc *fakeWorkflowClient) *Client {
	return NewClient(wc, "moms-kitchen-backend", time.Second, nil)
}

func TestGetMenu(t *testing.T) {
	wc := &fakeWorkflowClient{queries: map[string]interface{}{
		workflows.QueryMenu: []types.MenuItem{
			{ID: 1, Name: "Lasagna", Price: 1200, Available: true},
			{ID: 9007199254740993, Name: "Soup", Price: 400},
		},
	}}

	menu, err := newTestClient(wc).GetMenu(context.Background())
	require.NoError(t, err)
	require.Len(t, menu, 2)
	assert.Equal(t, "Lasagna", menu[0].Name)
	assert.Equal(t, uint64(9007199254740993), menu[1].ID)
	assert.False(t, menu[1].Available)
}

func TestPlaceOrder(t *testing.T) {
	wc := &fakeWorkflowClient{updates: map[string]interface{}{
		workflows.UpdatePlaceOrder: types.Order{ID: 7, Status: types.StatusPending, TotalPrice: 2400},
	}}
	items := []types.OrderItem{{MenuItemID: 1, Quantity: 2}}

	order, err := newTestClient(wc).PlaceOrder(context.Background(), items)
	require.NoError(t, err)
	assert.Equal(t, uint64(7), order.ID)
	assert.Equal(t, uint64(2400), order.TotalPrice)

	assert.Equal(t, "moms-kitchen-backend", wc.lastUpdate.WorkflowID)
	assert.Equal(t, workflows.UpdatePlaceOrder, wc.lastUpdate.UpdateName)
	assert.NotEmpty(t, wc.lastUpdate.UpdateID)
	assert.Equal(t, client.WorkflowUpdateStageCompleted, wc.lastUpdate.WaitForStage)
	assert.Equal(t, []interface{}{items}, wc.lastUpdate.Args)
}

func TestUpdateIDsAreUnique(t *testing.T) {
	wc := &fakeWorkflowClient{}
	c := newTestClient(wc)

	require.NoError(t, c.SetMenuItemAvailability(context.Background(), 1, false))
	first := wc.lastUpdate.UpdateID
	require.NoError(t, c.SetMenuItemAvailability(context.Background(), 1, true))
	assert.NotEqual(t, first, wc.lastUpdate.UpdateID)
	assert.Equal(t, []interface{}{types.AvailabilityChange{MenuItemID: 1, Available: true}}, wc.lastUpdate.Args)
}

func TestPlaceOrderRejected(t *testing.T) {
	wc := &fakeWorkflowClient{updateErr: temporal.NewApplicationError("Tiramisu is not available", "ValidationError")}

	_, err := newTestClient(wc).PlaceOrder(context.Background(), []types.OrderItem{{MenuItemID: 2, Quantity: 1}})
	var validation *types.ValidationError
	require.ErrorAs(t, err, &validation)
	assert.Contains(t, validation.Msg, "Tiramisu is not available")
	assert.NotErrorIs(t, err, types.ErrBackendUnavailable)
}

func TestGetOrderStatus(t *testing.T) {
	wc := &fakeWorkflowClient{queries: map[string]interface{}{
		workflows.QueryOrderStatus: "outForDelivery",
	}}

	got, err := newTestClient(wc).GetOrderStatus(context.Background(), 12)
	require.NoError(t, err)
	assert.Equal(t, types.StatusOutForDelivery, got)
	assert.Equal(t, []interface{}{uint64(12)}, wc.lastQueryArgs)
}

func TestGetOrderStatusNormalizesUnknownValues(t *testing.T) {
	wc := &fakeWorkflowClient{queries: map[string]interface{}{
		workflows.QueryOrderStatus: "baking",
	}}

	got, err := newTestClient(wc).GetOrderStatus(context.Background(), 12)
	require.NoError(t, err)
	assert.Equal(t, types.StatusUnknown, got)
}

func TestGetOrderStatusNotFound(t *testing.T) {
	wc := &fakeWorkflowClient{err: serviceerror.NewQueryFailed("order 5 not found")}

	_, err := newTestClient(wc).GetOrderStatus(context.Background(), 5)
	var notFound *types.NotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, uint64(5), notFound.ID)
}

func TestUnavailableErrors(t *testing.T) {
	cases := map[string]error{
		"service unavailable": serviceerror.NewUnavailable("connection refused"),
		"workflow not running": serviceerror.NewNotFound("workflow not found"),
		"grpc unavailable":    status.Error(codes.Unavailable, "dial tcp"),
		"grpc deadline":       status.Error(codes.DeadlineExceeded, "slow"),
		"context deadline":    context.DeadlineExceeded,
	}
	for name, cause := range cases {
		t.Run(name, func(t *testing.T) {
			c := newTestClient(&fakeWorkflowClient{err: cause})

			_, err := c.GetMenu(context.Background())
			assert.ErrorIs(t, err, types.ErrBackendUnavailable)

			_, err = c.GetOrderHistory(context.Background())
			assert.ErrorIs(t, err, types.ErrBackendUnavailable)

			assert.ErrorIs(t, c.CheckHealth(context.Background()), types.ErrBackendUnavailable)
		})
	}
}

func TestOtherErrorsPassThrough(t *testing.T) {
	cause := errors.New("boom")
	_, err := newTestClient(&fakeWorkflowClient{err: cause}).GetOrderHistory(context.Background())
	assert.ErrorIs(t, err, cause)
	assert.NotErrorIs(t, err, types.ErrBackendUnavailable)
}

func TestCreateMenuItem(t *testing.T) {
	wc := &fakeWorkflowClient{updates: map[string]interface{}{
		workflows.UpdateCreateMenuItem: types.MenuItem{ID: 3, Name: "Soup", Price: 400, Available: true},
	}}

	created, err := newTestClient(wc).CreateMenuItem(context.Background(), types.NewMenuItem{Name: "Soup", Price: 400})
	require.NoError(t, err)
	assert.Equal(t, uint64(3), created.ID)
	assert.Equal(t, workflows.UpdateCreateMenuItem, wc.lastUpdate.UpdateName)
}

func TestAdvanceOrder(t *testing.T) {
	wc := &fakeWorkflowClient{}

	require.NoError(t, newTestClient(wc).AdvanceOrder(context.Background(), 4, types.StatusDelivered))
	assert.Equal(t, []interface{}{types.OrderStatusChange{OrderID: 4, Status: types.StatusDelivered}}, wc.signals)
}
