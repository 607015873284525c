// internal/domain/product/dto.go
package product

import (
	"strings"

	"glam-admin/internal/pkg/slug"
	"glam-admin/internal/pkg/validation"

	"github.com/shopspring/decimal"
)

// ProductRequest is the wire body for POST and PATCH /admin/products.
type ProductRequest struct {
	Title          string   `json:"title"`
	Slug           string   `json:"slug"`
	Price          float64  `json:"price"`
	CompareAtPrice *float64 `json:"compareAtPrice,omitempty"`
	IsDiscounted   bool     `json:"isDiscounted"`
	Stock          int      `json:"stock"`
	Images         []string `json:"images"`
	Featured       bool     `json:"featured"`
	Status         Status   `json:"status"`
	CategorySlug   string   `json:"categorySlug,omitempty"`
	Brand          string   `json:"brand,omitempty"`
	Description    string   `json:"description,omitempty"`
	TagSlugs       []string `json:"tagSlugs"`
}

type Image struct {
	URL     string `json:"url"`
	AssetID string `json:"assetId,omitempty"`
}

// Draft is the modal form state. Price is the base price; DiscountPrice is
// the optional sale price the operator types next to it.
type Draft struct {
	Title         string          `json:"title" validate:"notblank"`
	Slug          string          `json:"slug" validate:"notblank"`
	SlugEdited    bool            `json:"slugEdited"`
	Price         decimal.Decimal `json:"price"`
	DiscountPrice decimal.Decimal `json:"discountPrice"`
	Stock         int             `json:"stock" validate:"gte=0"`
	CategorySlug  string          `json:"categorySlug"`
	Brand         string          `json:"brand"`
	Description   string          `json:"description"`
	Status        Status          `json:"status" validate:"oneof=ACTIVE DRAFT HIDDEN"`
	Tags          string          `json:"tags"` // comma separated tag slugs
	Images        []Image         `json:"images"`
	Featured      bool            `json:"featured"`
}

type DraftPatch struct {
	Title         *string          `json:"title"`
	Slug          *string          `json:"slug"`
	Price         *decimal.Decimal `json:"price"`
	DiscountPrice *decimal.Decimal `json:"discountPrice"`
	Stock         *int             `json:"stock"`
	CategorySlug  *string          `json:"categorySlug"`
	Brand         *string          `json:"brand"`
	Description   *string          `json:"description"`
	Status        *Status          `json:"status"`
	Tags          *string          `json:"tags"`
	Images        *[]Image         `json:"images"`
	Featured      *bool            `json:"featured"`
}

func EmptyDraft() Draft {
	return Draft{Status: StatusActive, Images: []Image{}}
}

// DraftOf reverses the price normalization: a stored compareAtPrice above
// price becomes the form's base price and price becomes the discount.
func DraftOf(p Product) Draft {
	price := decimal.NewFromFloat(p.Price)
	d := Draft{
		Title:        p.Title,
		Slug:         p.Slug,
		Price:        price,
		Stock:        p.Stock,
		CategorySlug: p.CategorySlug,
		Brand:        p.Brand,
		Description:  p.Description,
		Status:       p.Status,
		Tags:         strings.Join(p.TagSlugs, ","),
		Featured:     p.Featured,
		Images:       make([]Image, 0, len(p.Images)),
	}
	if p.CompareAtPrice != nil {
		compare := decimal.NewFromFloat(*p.CompareAtPrice)
		if compare.GreaterThan(price) {
			d.Price = compare
			d.DiscountPrice = price
		}
	}
	if d.Status == "" {
		d.Status = StatusActive
	}
	for _, u := range p.Images {
		d.Images = append(d.Images, Image{URL: u})
	}
	return d
}

func (d *Draft) Apply(p DraftPatch) {
	if p.Slug != nil {
		d.Slug = *p.Slug
		d.SlugEdited = *p.Slug != ""
	}
	if p.Title != nil {
		d.Title = *p.Title
		if !d.SlugEdited {
			d.Slug = slug.Derive(d.Title)
		}
	}
	if p.Price != nil {
		d.Price = *p.Price
	}
	if p.DiscountPrice != nil {
		d.DiscountPrice = *p.DiscountPrice
	}
	if p.Stock != nil {
		d.Stock = *p.Stock
	}
	if p.CategorySlug != nil {
		d.CategorySlug = *p.CategorySlug
	}
	if p.Brand != nil {
		d.Brand = *p.Brand
	}
	if p.Description != nil {
		d.Description = *p.Description
	}
	if p.Status != nil {
		d.Status = *p.Status
	}
	if p.Tags != nil {
		d.Tags = *p.Tags
	}
	if p.Images != nil {
		d.Images = append([]Image{}, (*p.Images)...)
	}
	if p.Featured != nil {
		d.Featured = *p.Featured
	}
}

func (d Draft) Validate() error {
	errs := validation.Check(d)
	if d.Price.IsNegative() {
		errs.Add("price", "Must be at least 0.")
	}
	if d.DiscountPrice.IsNegative() {
		errs.Add("discountPrice", "Must be at least 0.")
	}
	return errs.Err()
}

// NormalizePrice folds a base price and an optional discount price into the
// wire pair. A discount only counts when it is positive and below the base.
func NormalizePrice(price, discount decimal.Decimal) (float64, *float64, bool) {
	if discount.IsPositive() && discount.LessThan(price) {
		compareAt := price.InexactFloat64()
		return discount.InexactFloat64(), &compareAt, true
	}
	return price.InexactFloat64(), nil, false
}

func (d Draft) Request() ProductRequest {
	price, compareAt, discounted := NormalizePrice(d.Price, d.DiscountPrice)

	images := make([]string, 0, len(d.Images))
	for _, img := range d.Images {
		if img.URL != "" {
			images = append(images, img.URL)
		}
	}

	return ProductRequest{
		Title:          strings.TrimSpace(d.Title),
		Slug:           strings.TrimSpace(d.Slug),
		Price:          price,
		CompareAtPrice: compareAt,
		IsDiscounted:   discounted,
		Stock:          d.Stock,
		Images:         images,
		Featured:       d.Featured,
		Status:         d.Status,
		CategorySlug:   strings.TrimSpace(d.CategorySlug),
		Brand:          strings.TrimSpace(d.Brand),
		Description:    strings.TrimSpace(d.Description),
		TagSlugs:       splitTags(d.Tags),
	}
}

func splitTags(csv string) []string {
	out := []string{}
	for _, t := range strings.Split(csv, ",") {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}
