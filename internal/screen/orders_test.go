package screen

import (
	"context"
	"sync"
	"testing"

	"glam-admin/internal/apiclient"
	"glam-admin/internal/domain/order"
	xerrors "glam-admin/internal/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type statusCall struct {
	ID     string
	Status order.Status
}

type fakeOrders struct {
	mu        sync.Mutex
	items     []order.Order
	calls     []statusCall
	removed   []string
	updateErr error
	lastQuery apiclient.OrderFilter
}

func (f *fakeOrders) List(_ context.Context, q apiclient.OrderFilter) (apiclient.Page[order.Order], error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastQuery = q
	out := []order.Order{}
	for _, o := range f.items {
		if q.Status == "" || o.Status == q.Status {
			out = append(out, o)
		}
	}
	return apiclient.Page[order.Order]{Items: out, Total: len(out)}, nil
}

func (f *fakeOrders) UpdateStatus(_ context.Context, id string, s order.Status) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, statusCall{id, s})
	if f.updateErr != nil {
		return f.updateErr
	}
	for i := range f.items {
		if f.items[i].ID == id {
			f.items[i].Status = s
		}
	}
	return nil
}

func (f *fakeOrders) Remove(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.removed = append(f.removed, id)
	return nil
}

func newOrderScreen(t *testing.T) (*OrderScreen, *fakeOrders, *recorder) {
	t.Helper()
	api := &fakeOrders{items: []order.Order{
		{ID: "o1", Status: order.StatusPending, Customer: order.Customer{Name: "Amina"}, Lines: []order.Line{{Title: "Serum", Price: 12.5, Qty: 2}}},
		{ID: "o2", Status: order.StatusInShipping, Customer: order.Customer{Name: "Wanjiru"}},
	}}
	rec := &recorder{}
	s := NewOrderScreen(api, 20, rec, nil)
	require.NoError(t, s.Refresh(context.Background()))
	return s, api, rec
}

func TestOrderScreen_InitialFilter(t *testing.T) {
	s, api, _ := newOrderScreen(t)
	assert.Equal(t, apiclient.OrderFilter{Page: 1, Limit: 20}, api.lastQuery)

	require.NoError(t, s.SetFilter(context.Background(), apiclient.OrderFilter{Page: 1, Limit: 20, Status: order.StatusInShipping}))
	v := s.Snapshot()
	require.Len(t, v.Items, 1)
	assert.Equal(t, "o2", v.Items[0].ID)
}

func TestOrderScreen_NotEditable(t *testing.T) {
	s, _, _ := newOrderScreen(t)
	assert.ErrorIs(t, s.OpenCreate(), xerrors.ErrNotEditable)
	assert.ErrorIs(t, s.OpenEdit("o1"), xerrors.ErrNotEditable)
}

func TestRequestStatus_SameStatusIsRefused(t *testing.T) {
	s, api, _ := newOrderScreen(t)
	require.NoError(t, s.OpenDetail("o1"))

	applied, err := s.RequestStatus(context.Background(), order.StatusPending)
	assert.ErrorIs(t, err, xerrors.ErrNoopStatus)
	assert.False(t, applied)
	assert.Empty(t, api.calls)

	opts := s.Snapshot().Detail.Options
	require.Len(t, opts, 5)
	assert.True(t, opts[0].Disabled)
	assert.False(t, opts[1].Disabled)
}

func TestRequestStatus_ImmediateTransition(t *testing.T) {
	s, api, rec := newOrderScreen(t)
	require.NoError(t, s.OpenDetail("o1"))

	applied, err := s.RequestStatus(context.Background(), order.StatusInProgress)
	require.NoError(t, err)
	assert.True(t, applied)
	assert.Equal(t, []statusCall{{"o1", order.StatusInProgress}}, api.calls)

	v := s.Snapshot()
	assert.Equal(t, order.StatusInProgress, v.Detail.Order.Status)
	assert.Equal(t, []string{"success: Order marked as In Progress"}, rec.messages())
}

func TestRequestStatus_TerminalNeedsConfirmation(t *testing.T) {
	for _, target := range []order.Status{order.StatusDelivered, order.StatusCancelled} {
		t.Run(string(target), func(t *testing.T) {
			s, api, _ := newOrderScreen(t)
			require.NoError(t, s.OpenDetail("o1"))

			applied, err := s.RequestStatus(context.Background(), target)
			require.NoError(t, err)
			assert.False(t, applied)
			assert.Empty(t, api.calls)
			assert.Equal(t, target, s.Snapshot().Detail.PendingStatus)

			s.CancelStatus()
			assert.ErrorIs(t, s.ConfirmStatus(context.Background()), xerrors.ErrNoPending)
			assert.Empty(t, api.calls)

			_, err = s.RequestStatus(context.Background(), target)
			require.NoError(t, err)
			require.NoError(t, s.ConfirmStatus(context.Background()))
			assert.Equal(t, []statusCall{{"o1", target}}, api.calls)

			d := s.Snapshot().Detail
			assert.Equal(t, target, d.Order.Status)
			assert.Empty(t, d.PendingStatus)
		})
	}
}

func TestRequestStatus_FailureLeavesDetail(t *testing.T) {
	s, api, rec := newOrderScreen(t)
	api.updateErr = xerrors.APIError(500, "", "Order locked")
	require.NoError(t, s.OpenDetail("o1"))

	_, err := s.RequestStatus(context.Background(), order.StatusInShipping)
	require.Error(t, err)
	assert.Equal(t, order.StatusPending, s.Snapshot().Detail.Order.Status)
	assert.Equal(t, []string{"error: Order locked"}, rec.messages())
}

func TestDetail_IsProjection(t *testing.T) {
	s, _, _ := newOrderScreen(t)
	require.NoError(t, s.OpenDetail("o1"))

	_, err := s.RequestStatus(context.Background(), order.StatusInProgress)
	require.NoError(t, err)
	s.CloseDetail()
	assert.Nil(t, s.Snapshot().Detail)

	_, err = s.RequestStatus(context.Background(), order.StatusInShipping)
	assert.ErrorIs(t, err, xerrors.ErrNotFound)
	assert.ErrorIs(t, s.OpenDetail("nope"), xerrors.ErrNotFound)
}

func TestOrderDelete_ClosesDetail(t *testing.T) {
	s, api, _ := newOrderScreen(t)
	require.NoError(t, s.OpenDetail("o2"))
	require.NoError(t, s.RequestDelete("o2"))
	assert.Empty(t, api.removed)

	require.NoError(t, s.ConfirmDelete(context.Background()))
	assert.Equal(t, []string{"o2"}, api.removed)
	assert.Nil(t, s.Snapshot().Detail)
}

func TestTotalPages(t *testing.T) {
	assert.Equal(t, 1, totalPages(0, 24))
	assert.Equal(t, 1, totalPages(24, 24))
	assert.Equal(t, 2, totalPages(25, 24))
	assert.Equal(t, 1, totalPages(10, 0))
}

func TestOrderReset_ClosesDetail(t *testing.T) {
	s, _, _ := newOrderScreen(t)
	require.NoError(t, s.OpenDetail("o1"))
	applied, err := s.RequestStatus(context.Background(), order.StatusCancelled)
	require.NoError(t, err)
	require.False(t, applied)

	s.Reset()
	v := s.Snapshot()
	assert.Nil(t, v.Detail)
	assert.Empty(t, v.Items)
	assert.Equal(t, apiclient.OrderFilter{Page: 1, Limit: 20}, v.Filter)
	assert.ErrorIs(t, s.ConfirmStatus(context.Background()), xerrors.ErrNoPending)
}
