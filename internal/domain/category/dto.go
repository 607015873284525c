// internal/domain/category/dto.go
package category

import (
	"strings"

	"glam-admin/internal/pkg/slug"
	"glam-admin/internal/pkg/validation"
)

// CreateCategoryRequest is the wire body for POST and PATCH /admin/categories.
type CreateCategoryRequest struct {
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Image       string `json:"image,omitempty"`
	Description string `json:"description,omitempty"`
	Status      Status `json:"status,omitempty"`
}

// Draft is the modal form state.
type Draft struct {
	Name         string `json:"name" validate:"notblank"`
	Slug         string `json:"slug" validate:"notblank"`
	SlugEdited   bool   `json:"slugEdited"`
	Image        string `json:"image"`
	ImageAssetID string `json:"imageAssetId,omitempty"`
	Description  string `json:"description"`
	Active       bool   `json:"active"`
}

// DraftPatch carries the fields an edit touched; nil means untouched.
type DraftPatch struct {
	Name         *string `json:"name"`
	Slug         *string `json:"slug"`
	Image        *string `json:"image"`
	ImageAssetID *string `json:"imageAssetId"`
	Description  *string `json:"description"`
	Active       *bool   `json:"active"`
}

func EmptyDraft() Draft {
	return Draft{Active: true}
}

// DraftOf copies a stored category into an editable draft.
func DraftOf(c Category) Draft {
	name := strings.TrimSpace(c.Name)
	s := strings.TrimSpace(c.Slug)
	if s == "" {
		s = slug.Derive(name)
	}
	return Draft{
		Name:        name,
		Slug:        s,
		Image:       c.Image,
		Description: strings.TrimSpace(c.Description),
		Active:      c.IsActive(),
	}
}

// Apply merges a patch. A name change regenerates the slug unless the
// operator has typed a slug of their own; clearing the slug re-enables that.
func (d *Draft) Apply(p DraftPatch) {
	if p.Slug != nil {
		d.Slug = *p.Slug
		d.SlugEdited = *p.Slug != ""
	}
	if p.Name != nil {
		d.Name = *p.Name
		if !d.SlugEdited {
			d.Slug = slug.Derive(d.Name)
		}
	}
	if p.Image != nil {
		d.Image = *p.Image
	}
	if p.ImageAssetID != nil {
		d.ImageAssetID = *p.ImageAssetID
	}
	if p.Description != nil {
		d.Description = *p.Description
	}
	if p.Active != nil {
		d.Active = *p.Active
	}
}

func (d Draft) Validate() error {
	return validation.Check(d).Err()
}

func (d Draft) Request() CreateCategoryRequest {
	status := StatusHidden
	if d.Active {
		status = StatusActive
	}
	return CreateCategoryRequest{
		Name:        strings.TrimSpace(d.Name),
		Slug:        strings.TrimSpace(d.Slug),
		Image:       d.Image,
		Description: strings.TrimSpace(d.Description),
		Status:      status,
	}
}
