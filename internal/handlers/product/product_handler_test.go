package product

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"glam-admin/internal/apiclient"
	domain "glam-admin/internal/domain/product"
	"glam-admin/internal/screen"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeProducts struct {
	items   []domain.Product
	filters []apiclient.ProductFilter
	created []domain.ProductRequest
}

func (f *fakeProducts) List(_ context.Context, q apiclient.ProductFilter) (apiclient.Page[domain.Product], error) {
	f.filters = append(f.filters, q)
	return apiclient.Page[domain.Product]{Items: f.items, Total: len(f.items), Page: q.Page}, nil
}

func (f *fakeProducts) Create(_ context.Context, req domain.ProductRequest) (domain.Product, error) {
	f.created = append(f.created, req)
	p := domain.Product{ID: "p-new", Title: req.Title, Slug: req.Slug, Price: req.Price, Images: req.Images}
	f.items = append(f.items, p)
	return p, nil
}

func (f *fakeProducts) Update(_ context.Context, id string, req domain.ProductRequest) (domain.Product, error) {
	return domain.Product{ID: id, Title: req.Title}, nil
}

func (f *fakeProducts) Remove(context.Context, string) error { return nil }

type fakeAssets struct{ removed []string }

func (f *fakeAssets) DeleteAsset(_ context.Context, id string) { f.removed = append(f.removed, id) }

type nopSessions struct{}

func (nopSessions) ClearToken(context.Context) error { return nil }

func setup(api *fakeProducts, assets *fakeAssets) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewProductHandler(screen.NewProductScreen(api, nil, nil), assets, 8, nopSessions{}, zap.NewNop())

	r := gin.New()
	r.GET("/products", h.List)
	r.POST("/products/draft", h.OpenDraft)
	r.PATCH("/products/draft", h.EditDraft)
	r.POST("/products/draft/images", h.AttachImages)
	r.DELETE("/products/draft/images", h.DetachImage)
	r.POST("/products/submit", h.Submit)
	return r
}

func request(t *testing.T, r http.Handler, method, path, body string) (int, json.RawMessage) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var env struct {
		Data json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return w.Code, env.Data
}

func TestProductHandler_ListPassesFilters(t *testing.T) {
	api := &fakeProducts{items: []domain.Product{
		{ID: "p1", Title: "Rose Oil", Slug: "rose-oil"},
		{ID: "p2", Title: "Clay Mask", Slug: "clay-mask"},
	}}
	r := setup(api, &fakeAssets{})

	code, data := request(t, r, http.MethodGet, "/products?q=rose&category=skin&page=2", "")
	require.Equal(t, http.StatusOK, code)

	require.NotEmpty(t, api.filters)
	assert.Equal(t, apiclient.ProductFilter{Q: "rose", Category: "skin", Page: 2}, api.filters[len(api.filters)-1])

	var view struct {
		Items []domain.Product `json:"items"`
	}
	require.NoError(t, json.Unmarshal(data, &view))
	assert.Len(t, view.Items, 2)

	request(t, r, http.MethodGet, "/products?page=zero", "")
	assert.Equal(t, 1, api.filters[len(api.filters)-1].Page)
}

func TestProductHandler_ListKeepsServerMatches(t *testing.T) {
	api := &fakeProducts{items: []domain.Product{
		{ID: "p1", Title: "Night Cream", Slug: "night-cream", Description: "a serum-infused cream"},
	}}
	r := setup(api, &fakeAssets{})

	code, data := request(t, r, http.MethodGet, "/products?q=serum", "")
	require.Equal(t, http.StatusOK, code)

	var view struct {
		Items []domain.Product `json:"items"`
		Total int              `json:"total"`
		Empty bool             `json:"empty"`
	}
	require.NoError(t, json.Unmarshal(data, &view))
	require.Len(t, view.Items, 1)
	assert.Equal(t, "p1", view.Items[0].ID)
	assert.Equal(t, 1, view.Total)
	assert.False(t, view.Empty)
}

func TestProductHandler_AttachImagesCapped(t *testing.T) {
	api := &fakeProducts{}
	r := setup(api, &fakeAssets{})
	code, _ := request(t, r, http.MethodPost, "/products/draft", "")
	require.Equal(t, http.StatusOK, code)

	batch := func(from, n int) string {
		list := make([]gin.H, 0, n)
		for i := from; i < from+n; i++ {
			list = append(list, gin.H{"url": fmt.Sprintf("https://media.test/%d.jpg", i), "assetId": fmt.Sprintf("glam/%d", i)})
		}
		b, err := json.Marshal(gin.H{"assets": list})
		require.NoError(t, err)
		return string(b)
	}

	code, _ = request(t, r, http.MethodPost, "/products/draft/images", batch(0, 20))
	assert.Equal(t, http.StatusUnprocessableEntity, code)

	code, data := request(t, r, http.MethodPost, "/products/draft/images", batch(0, 6))
	require.Equal(t, http.StatusOK, code)
	var view struct {
		Draft struct {
			Images []domain.Image `json:"images"`
		} `json:"draft"`
	}
	require.NoError(t, json.Unmarshal(data, &view))
	assert.Len(t, view.Draft.Images, 6)

	code, _ = request(t, r, http.MethodPost, "/products/draft/images", batch(6, 3))
	assert.Equal(t, http.StatusUnprocessableEntity, code)

	code, data = request(t, r, http.MethodPost, "/products/draft/images", batch(6, 2))
	require.Equal(t, http.StatusOK, code)
	require.NoError(t, json.Unmarshal(data, &view))
	assert.Len(t, view.Draft.Images, 8)
}

func TestProductHandler_ImagesAndSubmit(t *testing.T) {
	api := &fakeProducts{}
	assets := &fakeAssets{}
	r := setup(api, assets)
	request(t, r, http.MethodGet, "/products", "")

	code, _ := request(t, r, http.MethodPost, "/products/draft", "")
	require.Equal(t, http.StatusOK, code)

	code, _ = request(t, r, http.MethodPatch, "/products/draft", `{"title":"Rose Oil","price":"100","discountPrice":"80","stock":4}`)
	require.Equal(t, http.StatusOK, code)

	var buf bytes.Buffer
	require.NoError(t, json.NewEncoder(&buf).Encode(gin.H{"assets": []gin.H{
		{"url": "https://media.test/a.jpg", "assetId": "glam/a"},
		{"url": "https://media.test/b.jpg", "assetId": "glam/b"},
		{"url": "https://media.test/a.jpg", "assetId": "glam/a"},
	}}))
	code, data := request(t, r, http.MethodPost, "/products/draft/images", buf.String())
	require.Equal(t, http.StatusOK, code)
	var view struct {
		Draft struct {
			Slug   string         `json:"slug"`
			Images []domain.Image `json:"images"`
		} `json:"draft"`
	}
	require.NoError(t, json.Unmarshal(data, &view))
	assert.Equal(t, "rose-oil", view.Draft.Slug)
	assert.Len(t, view.Draft.Images, 2)

	code, _ = request(t, r, http.MethodDelete, "/products/draft/images", `{"url":"https://media.test/b.jpg"}`)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, []string{"glam/b"}, assets.removed)

	code, _ = request(t, r, http.MethodDelete, "/products/draft/images", `{"url":"https://media.test/zzz.jpg"}`)
	assert.Equal(t, http.StatusNotFound, code)

	code, _ = request(t, r, http.MethodPost, "/products/submit", "")
	require.Equal(t, http.StatusOK, code)
	require.Len(t, api.created, 1)
	got := api.created[0]
	assert.Equal(t, 80.0, got.Price)
	require.NotNil(t, got.CompareAtPrice)
	assert.Equal(t, 100.0, *got.CompareAtPrice)
	assert.True(t, got.IsDiscounted)
	assert.Equal(t, []string{"https://media.test/a.jpg"}, got.Images)
}
