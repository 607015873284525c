package apiclient

import (
	"context"
	"net/http"

	"glam-admin/internal/domain/category"
)

type CategoriesAPI struct {
	c     *Client
	cache *ListCache
}

func NewCategoriesAPI(c *Client, cache *ListCache) *CategoriesAPI {
	return &CategoriesAPI{c: c, cache: cache}
}

// List returns every category, hidden ones included.
func (a *CategoriesAPI) List(ctx context.Context) ([]category.Category, error) {
	return cached(a.cache, TagCategories, "all", func() ([]category.Category, error) {
		env, err := a.c.do(ctx, request{method: http.MethodGet, path: "/categories"})
		if err != nil {
			return nil, err
		}
		body, err := decodeList[wireCategory](env)
		if err != nil {
			return nil, err
		}
		return toPage(body, wireCategory.normalize).Items, nil
	})
}

func (a *CategoriesAPI) Create(ctx context.Context, req category.CreateCategoryRequest) (category.Category, error) {
	return a.write(ctx, http.MethodPost, "/admin/categories", req)
}

func (a *CategoriesAPI) Update(ctx context.Context, id string, req category.CreateCategoryRequest) (category.Category, error) {
	return a.write(ctx, http.MethodPatch, pathID("/admin/categories", id), req)
}

func (a *CategoriesAPI) Remove(ctx context.Context, id string) error {
	if _, err := a.c.do(ctx, request{method: http.MethodDelete, path: pathID("/admin/categories", id)}); err != nil {
		return err
	}
	a.cache.Invalidate(TagCategories)
	return nil
}

func (a *CategoriesAPI) write(ctx context.Context, method, path string, req category.CreateCategoryRequest) (category.Category, error) {
	env, err := a.c.do(ctx, request{method: method, path: path, body: req})
	if err != nil {
		return category.Category{}, err
	}
	a.cache.Invalidate(TagCategories)

	// The server may answer with only {id, slug}; fill the rest from what was sent.
	w := wireCategory{Name: req.Name, Slug: req.Slug, Image: req.Image, Description: req.Description, Status: string(req.Status)}
	if err := decodeData(env, &w); err != nil {
		return category.Category{}, err
	}
	return w.normalize(), nil
}
