package apiclient

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"glam-admin/internal/domain/category"
	"glam-admin/internal/domain/order"
	"glam-admin/internal/domain/product"
	xerrors "glam-admin/internal/pkg/errors"
)

// Page is one page of a list call.
type Page[T any] struct {
	Items []T `json:"items"`
	Total int `json:"total"`
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

type listBody[W any] struct {
	Items []W  `json:"items"`
	Total *int `json:"total"`
	Page  int  `json:"page"`
	Limit int  `json:"limit"`
}

// decodeList accepts the list shapes the API has shipped over time:
// {data:{items}}, {data:[...]}, {items:[...]} and a bare array.
func decodeList[W any](env *Envelope) (listBody[W], error) {
	for _, raw := range []json.RawMessage{env.Data, env.raw} {
		raw = bytes.TrimSpace(raw)
		if len(raw) == 0 || string(raw) == "null" {
			continue
		}
		switch raw[0] {
		case '[':
			var items []W
			if err := json.Unmarshal(raw, &items); err != nil {
				return listBody[W]{}, badPayload(err)
			}
			return listBody[W]{Items: items}, nil
		case '{':
			var shape map[string]json.RawMessage
			if err := json.Unmarshal(raw, &shape); err != nil {
				return listBody[W]{}, badPayload(err)
			}
			if _, ok := shape["items"]; !ok {
				continue
			}
			var body listBody[W]
			if err := json.Unmarshal(raw, &body); err != nil {
				return listBody[W]{}, badPayload(err)
			}
			return body, nil
		}
	}
	return listBody[W]{}, nil
}

func badPayload(err error) error {
	return xerrors.APIError(0, "BAD_PAYLOAD", fmt.Sprintf("unexpected response payload: %v", err))
}

func toPage[W, T any](body listBody[W], conv func(W) T) Page[T] {
	items := make([]T, 0, len(body.Items))
	for _, w := range body.Items {
		items = append(items, conv(w))
	}
	total := len(items)
	if body.Total != nil {
		total = *body.Total
	}
	return Page[T]{Items: items, Total: total, Page: body.Page, Limit: body.Limit}
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

type wireCategory struct {
	ID          string     `json:"id"`
	MongoID     string     `json:"_id"`
	Name        string     `json:"name"`
	Title       string     `json:"title"`
	Slug        string     `json:"slug"`
	Image       string     `json:"image"`
	Description string     `json:"description"`
	Status      string     `json:"status"`
	CreatedAt   *time.Time `json:"createdAt"`
	UpdatedAt   *time.Time `json:"updatedAt"`
}

func (w wireCategory) normalize() category.Category {
	status := category.Status(w.Status)
	if status == "" {
		status = category.StatusActive
	}
	return category.Category{
		ID:          firstNonEmpty(w.ID, w.MongoID),
		Name:        firstNonEmpty(w.Name, w.Title),
		Slug:        w.Slug,
		Image:       w.Image,
		Description: w.Description,
		Status:      status,
		CreatedAt:   w.CreatedAt,
		UpdatedAt:   w.UpdatedAt,
	}
}

type wireProduct struct {
	ID             string   `json:"id"`
	MongoID        string   `json:"_id"`
	Title          string   `json:"title"`
	Name           string   `json:"name"`
	Slug           string   `json:"slug"`
	Price          float64  `json:"price"`
	Stock          int      `json:"stock"`
	Image          string   `json:"image"`
	Images         []string `json:"images"`
	CompareAtPrice *float64 `json:"compareAtPrice"`
	IsDiscounted   bool     `json:"isDiscounted"`
	Featured       bool     `json:"featured"`
	Status         string   `json:"status"`
	CategorySlug   string   `json:"categorySlug"`
	TagSlugs       []string `json:"tagSlugs"`
	Brand          string   `json:"brand"`
	Description    string   `json:"description"`
}

func (w wireProduct) normalize() product.Product {
	status := product.Status(w.Status)
	if status == "" {
		status = product.StatusActive
	}
	images := w.Images
	if images == nil {
		images = []string{}
	}
	tags := w.TagSlugs
	if tags == nil {
		tags = []string{}
	}
	return product.Product{
		ID:             firstNonEmpty(w.ID, w.MongoID),
		Title:          firstNonEmpty(w.Title, w.Name),
		Slug:           w.Slug,
		Price:          w.Price,
		Stock:          w.Stock,
		Image:          w.Image,
		Images:         images,
		CompareAtPrice: w.CompareAtPrice,
		IsDiscounted:   w.IsDiscounted,
		Featured:       w.Featured,
		Status:         status,
		CategorySlug:   w.CategorySlug,
		TagSlugs:       tags,
		Brand:          w.Brand,
		Description:    w.Description,
	}
}

type wireOrder struct {
	ID        string         `json:"id"`
	MongoID   string         `json:"_id"`
	Customer  order.Customer `json:"customer"`
	Lines     []order.Line   `json:"lines"`
	Items     []order.Line   `json:"items"`
	Totals    order.Totals   `json:"totals"`
	Status    string         `json:"status"`
	CreatedAt time.Time      `json:"createdAt"`
}

func (w wireOrder) normalize() order.Order {
	lines := w.Lines
	if lines == nil {
		lines = w.Items
	}
	if lines == nil {
		lines = []order.Line{}
	}
	status := order.Status(w.Status)
	if status == "" {
		status = order.StatusPending
	}
	return order.Order{
		ID:        firstNonEmpty(w.ID, w.MongoID),
		Customer:  w.Customer,
		Lines:     lines,
		Totals:    w.Totals,
		Status:    status,
		CreatedAt: w.CreatedAt,
	}
}
