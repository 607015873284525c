package screen

import (
	"context"
	"slices"
	"sync"

	"glam-admin/internal/apiclient"
	"glam-admin/internal/domain/order"
	"glam-admin/internal/domain/toast"
	xerrors "glam-admin/internal/pkg/errors"

	"go.uber.org/zap"
)

type OrderAPI interface {
	List(ctx context.Context, f apiclient.OrderFilter) (apiclient.Page[order.Order], error)
	UpdateStatus(ctx context.Context, id string, status order.Status) error
	Remove(ctx context.Context, id string) error
}

type orderResource struct {
	api OrderAPI
}

func (r orderResource) List(ctx context.Context, f apiclient.OrderFilter) ([]order.Order, int, error) {
	page, err := r.api.List(ctx, f)
	if err != nil {
		return nil, 0, err
	}
	return page.Items, page.Total, nil
}

func (r orderResource) Remove(ctx context.Context, id string) error { return r.api.Remove(ctx, id) }
func (orderResource) ID(o order.Order) string { return o.ID }
func (orderResource) Match(o order.Order, q string) bool { return order.Matches(o, q) }

func (orderResource) Labels() Labels {
	return Labels{Noun: "order", EmptyMsg: "No orders yet"}
}

// DetailView is the open order panel.
type DetailView struct {
	Order         order.Order    `json:"order"`
	Options       []order.Option `json:"options"`
	PendingStatus order.Status   `json:"pendingStatus,omitempty"`
	Updating      bool           `json:"updating"`
}

type OrderView struct {
	View[order.Order, apiclient.OrderFilter, NoDraft]
	TotalPages int         `json:"totalPages"`
	Detail     *DetailView `json:"detail"`
}

// OrderScreen is the order list plus a detail panel. The panel holds its own
// copy of the order; a status change patches that copy and leaves the list to
// the cache invalidation. The copy is dropped when the panel closes.
type OrderScreen struct {
	*Screen[order.Order, apiclient.OrderFilter, NoDraft]

	api    OrderAPI
	notify Notifier
	logger *zap.Logger

	mu            sync.Mutex
	detail        *order.Order
	pendingStatus order.Status
	updating      bool
}

func NewOrderScreen(api OrderAPI, pageSize int, notify Notifier, logger *zap.Logger) *OrderScreen {
	if notify == nil {
		notify = nopNotifier{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	base := New[order.Order, apiclient.OrderFilter, NoDraft](
		orderResource{api: api}, nil, apiclient.OrderFilter{Page: 1, Limit: pageSize}, notify, logger,
	)
	return &OrderScreen{
		Screen: base,
		api:    api,
		notify: notify,
		logger: logger.With(zap.String("screen", "order")),
	}
}

func (s *OrderScreen) OpenDetail(id string) error {
	s.Screen.mu.Lock()
	o, ok := s.Screen.find(id)
	s.Screen.mu.Unlock()
	if !ok {
		return xerrors.ErrNotFound
	}
	o.Lines = slices.Clone(o.Lines)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.detail = &o
	s.pendingStatus = ""
	return nil
}

func (s *OrderScreen) CloseDetail() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.detail = nil
	s.pendingStatus = ""
}

// RequestStatus asks to move the open order to status. Moves into a
// confirmation-requiring status only set it pending and report false; other
// moves are applied immediately. A move to the current status is refused
// without an API call.
func (s *OrderScreen) RequestStatus(ctx context.Context, to order.Status) (bool, error) {
	s.mu.Lock()
	if s.detail == nil {
		s.mu.Unlock()
		return false, xerrors.ErrNotFound
	}
	decision, err := order.Decide(s.detail.Status, to)
	if err != nil {
		s.mu.Unlock()
		return false, err
	}
	if decision == order.NeedsConfirmation {
		s.pendingStatus = to
		s.mu.Unlock()
		return false, nil
	}
	s.mu.Unlock()
	return true, s.apply(ctx, to)
}

func (s *OrderScreen) ConfirmStatus(ctx context.Context) error {
	s.mu.Lock()
	to := s.pendingStatus
	s.mu.Unlock()
	if to == "" {
		return xerrors.ErrNoPending
	}
	return s.apply(ctx, to)
}

func (s *OrderScreen) CancelStatus() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pendingStatus = ""
}

func (s *OrderScreen) apply(ctx context.Context, to order.Status) error {
	s.mu.Lock()
	if s.detail == nil {
		s.mu.Unlock()
		return xerrors.ErrNotFound
	}
	if s.updating {
		s.mu.Unlock()
		return xerrors.ErrBusy
	}
	id := s.detail.ID
	s.updating = true
	s.mu.Unlock()

	err := s.api.UpdateStatus(ctx, id, to)

	s.mu.Lock()
	s.updating = false
	s.pendingStatus = ""
	if err == nil && s.detail != nil && s.detail.ID == id {
		s.detail.Status = to
	}
	s.mu.Unlock()

	if err != nil {
		s.logger.Warn("status update failed",
			zap.String("order_id", id),
			zap.String("status", string(to)),
			zap.Error(err),
		)
		if !xerrors.IsAuth(err) {
			s.notify.Notify(toast.Error("order", xerrors.UserMessage(err, "Failed to update order status")))
		}
		return err
	}

	s.logger.Info("order status updated", zap.String("order_id", id), zap.String("status", string(to)))
	s.notify.Notify(toast.Success("order", "Order marked as "+to.Label()))
	s.refreshAfterWrite(ctx)
	return nil
}

// ConfirmDelete also closes the detail panel of the deleted order.
func (s *OrderScreen) ConfirmDelete(ctx context.Context) error {
	id := s.Screen.Snapshot().PendingDeleteID
	if err := s.Screen.ConfirmDelete(ctx); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.detail != nil && s.detail.ID == id {
		s.detail = nil
		s.pendingStatus = ""
	}
	return nil
}

// Reset also closes the detail panel.
func (s *OrderScreen) Reset() {
	s.Screen.Reset()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.detail = nil
	s.pendingStatus = ""
}

func (s *OrderScreen) Snapshot() OrderView {
	v := OrderView{View: s.Screen.Snapshot()}
	v.TotalPages = totalPages(v.Total, v.Filter.Limit)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.detail != nil {
		o := *s.detail
		v.Detail = &DetailView{
			Order:         o,
			Options:       order.Options(o.Status),
			PendingStatus: s.pendingStatus,
			Updating:      s.updating,
		}
	}
	return v
}

// totalPages is never below one so the pager always has a page to show.
func totalPages(total, limit int) int {
	if limit <= 0 || total <= 0 {
		return 1
	}
	return (total + limit - 1) / limit
}
