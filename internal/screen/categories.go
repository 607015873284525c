package screen

import (
	"context"
	"strings"

	"glam-admin/internal/domain/category"
	"glam-admin/internal/domain/upload"

	"go.uber.org/zap"
)

type CategoryAPI interface {
	List(ctx context.Context) ([]category.Category, error)
	Create(ctx context.Context, req category.CreateCategoryRequest) (category.Category, error)
	Update(ctx context.Context, id string, req category.CreateCategoryRequest) (category.Category, error)
	Remove(ctx context.Context, id string) error
}

// AssetRemover drops an uploaded asset. It never fails from the caller's view.
type AssetRemover interface {
	DeleteAsset(ctx context.Context, assetID string)
}

// CategoryFilter narrows the category list. The API returns every category,
// so the status filter is applied here.
type CategoryFilter struct {
	Status category.Status `json:"status,omitempty"`
}

type CategoryScreen = Screen[category.Category, CategoryFilter, category.Draft]

type categoryResource struct {
	api CategoryAPI
}

func NewCategoryScreen(api CategoryAPI, notify Notifier, logger *zap.Logger) *CategoryScreen {
	r := categoryResource{api: api}
	return New[category.Category, CategoryFilter, category.Draft](r, r, CategoryFilter{}, notify, logger)
}

func (r categoryResource) List(ctx context.Context, f CategoryFilter) ([]category.Category, int, error) {
	all, err := r.api.List(ctx)
	if err != nil {
		return nil, 0, err
	}
	out := make([]category.Category, 0, len(all))
	for _, c := range all {
		if f.Status == "" || c.Status == f.Status {
			out = append(out, c)
		}
	}
	return out, len(out), nil
}

func (r categoryResource) Remove(ctx context.Context, id string) error { return r.api.Remove(ctx, id) }
func (categoryResource) ID(c category.Category) string { return c.ID }
func (categoryResource) Match(c category.Category, q string) bool { return category.Matches(c, q) }

func (categoryResource) Labels() Labels {
	return Labels{Noun: "category", EmptyMsg: "No categories found", EmptyCTA: "Add Category"}
}

func (categoryResource) Empty() category.Draft { return category.EmptyDraft() }
func (categoryResource) DraftOf(c category.Category) category.Draft { return category.DraftOf(c) }
func (categoryResource) Validate(d category.Draft) error { return d.Validate() }

func (r categoryResource) Create(ctx context.Context, d category.Draft) (category.Category, error) {
	return r.api.Create(ctx, d.Request())
}

func (r categoryResource) Update(ctx context.Context, id string, d category.Draft) (category.Category, error) {
	return r.api.Update(ctx, id, d.Request())
}

// SetCategoryImage puts an uploaded image on the open draft. An image that
// was uploaded into this draft and is now replaced gets cleaned up.
func SetCategoryImage(ctx context.Context, s *CategoryScreen, a upload.Asset, assets AssetRemover) error {
	var previous string
	err := s.EditDraft(func(d *category.Draft) {
		previous = d.ImageAssetID
		d.Image = a.URL
		d.ImageAssetID = a.AssetID
	})
	if err != nil {
		return err
	}
	if previous != "" && previous != a.AssetID && assets != nil {
		assets.DeleteAsset(ctx, previous)
	}
	return nil
}

// ClearCategoryImage removes the draft image. The local edit always succeeds.
func ClearCategoryImage(ctx context.Context, s *CategoryScreen, assets AssetRemover) error {
	var previous string
	err := s.EditDraft(func(d *category.Draft) {
		previous = d.ImageAssetID
		d.Image = ""
		d.ImageAssetID = ""
	})
	if err != nil {
		return err
	}
	if strings.TrimSpace(previous) != "" && assets != nil {
		assets.DeleteAsset(ctx, previous)
	}
	return nil
}
