// internal/domain/category/entity.go
package category

import (
	"strings"
	"time"
)

type Status string

const (
	StatusActive Status = "ACTIVE"
	StatusHidden Status = "HIDDEN"
)

// Category is the canonical in-memory shape. Upstream aliases (title, _id)
// are folded into it at the API client boundary.
type Category struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Slug        string     `json:"slug"`
	Image       string     `json:"image,omitempty"`
	Description string     `json:"description,omitempty"`
	Status      Status     `json:"status"`
	CreatedAt   *time.Time `json:"createdAt,omitempty"`
	UpdatedAt   *time.Time `json:"updatedAt,omitempty"`
}

func (c Category) IsActive() bool { return c.Status == StatusActive }

// Matches is the client-side search over name, slug and description.
func Matches(c Category, q string) bool {
	q = strings.ToLower(strings.TrimSpace(q))
	if q == "" {
		return true
	}
	return strings.Contains(strings.ToLower(c.Name), q) ||
		strings.Contains(strings.ToLower(c.Slug), q) ||
		strings.Contains(strings.ToLower(c.Description), q)
}
