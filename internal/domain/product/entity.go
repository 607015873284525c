// internal/domain/product/entity.go
package product

import (
	"math"
	"net/url"
	"strings"
)

type Status string

const (
	StatusActive Status = "ACTIVE"
	StatusDraft  Status = "DRAFT"
	StatusHidden Status = "HIDDEN"
)

type Product struct {
	ID             string   `json:"id"`
	Title          string   `json:"title"`
	Slug           string   `json:"slug"`
	Price          float64  `json:"price"`
	Stock          int      `json:"stock"`
	Image          string   `json:"image,omitempty"`
	Images         []string `json:"images"`
	CompareAtPrice *float64 `json:"compareAtPrice,omitempty"`
	IsDiscounted   bool     `json:"isDiscounted"`
	Featured       bool     `json:"featured,omitempty"`
	Status         Status   `json:"status"`
	CategorySlug   string   `json:"categorySlug,omitempty"`
	TagSlugs       []string `json:"tagSlugs"`
	Brand          string   `json:"brand,omitempty"`
	Description    string   `json:"description,omitempty"`
}

// Cover is the first displayable image.
func (p Product) Cover() string {
	for _, u := range append([]string{p.Image}, p.Images...) {
		if ValidImageURL(u) {
			return u
		}
	}
	return ""
}

// DiscountPercent is the rounded saving shown on the product card.
func DiscountPercent(price float64, compareAt *float64) int {
	if compareAt == nil || *compareAt <= price || *compareAt <= 0 {
		return 0
	}
	return int(math.Round((*compareAt - price) / *compareAt * 100))
}

// ValidImageURL accepts absolute http(s) URLs and site-relative paths.
func ValidImageURL(raw string) bool {
	if raw == "" {
		return false
	}
	if strings.HasPrefix(raw, "/") {
		return true
	}
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// Matches is the client-side search over title, slug and brand.
func Matches(p Product, q string) bool {
	q = strings.ToLower(strings.TrimSpace(q))
	if q == "" {
		return true
	}
	return strings.Contains(strings.ToLower(p.Title), q) ||
		strings.Contains(strings.ToLower(p.Slug), q) ||
		strings.Contains(strings.ToLower(p.Brand), q)
}
