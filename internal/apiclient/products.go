package apiclient

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"glam-admin/internal/domain/product"
)

// ProductFilter maps onto GET /products query parameters. Zero values are omitted.
type ProductFilter struct {
	Q        string
	Category string
	Page     int
}

func (f ProductFilter) query() url.Values {
	q := url.Values{}
	if f.Page > 0 {
		q.Set("page", strconv.Itoa(f.Page))
	}
	if s := strings.TrimSpace(f.Q); s != "" {
		q.Set("q", s)
	}
	if s := strings.TrimSpace(f.Category); s != "" {
		q.Set("category", s)
	}
	return q
}

type ProductsAPI struct {
	c     *Client
	cache *ListCache
}

func NewProductsAPI(c *Client, cache *ListCache) *ProductsAPI {
	return &ProductsAPI{c: c, cache: cache}
}

func (a *ProductsAPI) List(ctx context.Context, f ProductFilter) (Page[product.Product], error) {
	q := f.query()
	return cached(a.cache, TagProducts, q.Encode(), func() (Page[product.Product], error) {
		env, err := a.c.do(ctx, request{method: http.MethodGet, path: "/products", query: q})
		if err != nil {
			return Page[product.Product]{}, err
		}
		body, err := decodeList[wireProduct](env)
		if err != nil {
			return Page[product.Product]{}, err
		}
		page := toPage(body, wireProduct.normalize)
		if page.Page == 0 {
			page.Page = max(f.Page, 1)
		}
		return page, nil
	})
}

func (a *ProductsAPI) Create(ctx context.Context, req product.ProductRequest) (product.Product, error) {
	return a.write(ctx, http.MethodPost, "/admin/products", req)
}

func (a *ProductsAPI) Update(ctx context.Context, id string, req product.ProductRequest) (product.Product, error) {
	return a.write(ctx, http.MethodPatch, pathID("/admin/products", id), req)
}

func (a *ProductsAPI) Remove(ctx context.Context, id string) error {
	if _, err := a.c.do(ctx, request{method: http.MethodDelete, path: pathID("/admin/products", id)}); err != nil {
		return err
	}
	a.cache.Invalidate(TagProducts)
	return nil
}

func (a *ProductsAPI) write(ctx context.Context, method, path string, req product.ProductRequest) (product.Product, error) {
	env, err := a.c.do(ctx, request{method: method, path: path, body: req})
	if err != nil {
		return product.Product{}, err
	}
	a.cache.Invalidate(TagProducts)

	w := wireProduct{
		Title:          req.Title,
		Slug:           req.Slug,
		Price:          req.Price,
		Stock:          req.Stock,
		Images:         req.Images,
		CompareAtPrice: req.CompareAtPrice,
		IsDiscounted:   req.IsDiscounted,
		Featured:       req.Featured,
		Status:         string(req.Status),
		CategorySlug:   req.CategorySlug,
		TagSlugs:       req.TagSlugs,
		Brand:          req.Brand,
		Description:    req.Description,
	}
	if err := decodeData(env, &w); err != nil {
		return product.Product{}, err
	}
	return w.normalize(), nil
}
