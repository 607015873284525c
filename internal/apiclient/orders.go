package apiclient

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"glam-admin/internal/domain/order"
)

type OrderFilter struct {
	Page   int
	Limit  int
	Status order.Status
}

func (f OrderFilter) query() url.Values {
	q := url.Values{}
	if f.Page > 0 {
		q.Set("page", strconv.Itoa(f.Page))
	}
	if f.Limit > 0 {
		q.Set("limit", strconv.Itoa(f.Limit))
	}
	if f.Status != "" {
		q.Set("status", string(f.Status))
	}
	return q
}

type OrdersAPI struct {
	c     *Client
	cache *ListCache
}

func NewOrdersAPI(c *Client, cache *ListCache) *OrdersAPI {
	return &OrdersAPI{c: c, cache: cache}
}

func (a *OrdersAPI) List(ctx context.Context, f OrderFilter) (Page[order.Order], error) {
	q := f.query()
	return cached(a.cache, TagOrders, q.Encode(), func() (Page[order.Order], error) {
		env, err := a.c.do(ctx, request{method: http.MethodGet, path: "/orders", query: q})
		if err != nil {
			return Page[order.Order]{}, err
		}
		body, err := decodeList[wireOrder](env)
		if err != nil {
			return Page[order.Order]{}, err
		}
		page := toPage(body, wireOrder.normalize)
		if page.Page == 0 {
			page.Page = max(f.Page, 1)
		}
		if page.Limit == 0 {
			page.Limit = f.Limit
		}
		return page, nil
	})
}

// UpdateStatus is the only order update the admin API accepts.
func (a *OrdersAPI) UpdateStatus(ctx context.Context, id string, status order.Status) error {
	_, err := a.c.do(ctx, request{
		method: http.MethodPatch,
		path:   pathID("/admin/orders", id),
		body:   order.UpdateStatusRequest{Status: status},
	})
	if err != nil {
		return err
	}
	a.cache.Invalidate(TagOrders)
	return nil
}

func (a *OrdersAPI) Remove(ctx context.Context, id string) error {
	if _, err := a.c.do(ctx, request{method: http.MethodDelete, path: pathID("/admin/orders", id)}); err != nil {
		return err
	}
	a.cache.Invalidate(TagOrders)
	return nil
}
