package screen

import (
	"context"
	"fmt"
	"slices"

	"glam-admin/internal/apiclient"
	"glam-admin/internal/domain/product"
	"glam-admin/internal/domain/upload"
	xerrors "glam-admin/internal/pkg/errors"

	"go.uber.org/zap"
)

type ProductAPI interface {
	List(ctx context.Context, f apiclient.ProductFilter) (apiclient.Page[product.Product], error)
	Create(ctx context.Context, req product.ProductRequest) (product.Product, error)
	Update(ctx context.Context, id string, req product.ProductRequest) (product.Product, error)
	Remove(ctx context.Context, id string) error
}

type ProductScreen = Screen[product.Product, apiclient.ProductFilter, product.Draft]

type productResource struct {
	api ProductAPI
}

func NewProductScreen(api ProductAPI, notify Notifier, logger *zap.Logger) *ProductScreen {
	r := productResource{api: api}
	return New[product.Product, apiclient.ProductFilter, product.Draft](r, r, apiclient.ProductFilter{Page: 1}, notify, logger)
}

func (r productResource) List(ctx context.Context, f apiclient.ProductFilter) ([]product.Product, int, error) {
	page, err := r.api.List(ctx, f)
	if err != nil {
		return nil, 0, err
	}
	return page.Items, page.Total, nil
}

func (r productResource) Remove(ctx context.Context, id string) error { return r.api.Remove(ctx, id) }
func (productResource) ID(p product.Product) string { return p.ID }
func (productResource) Match(p product.Product, q string) bool { return product.Matches(p, q) }

func (productResource) Labels() Labels {
	return Labels{Noun: "product", EmptyMsg: "No products found", EmptyCTA: "Add Product"}
}

func (productResource) Empty() product.Draft { return product.EmptyDraft() }
func (productResource) DraftOf(p product.Product) product.Draft { return product.DraftOf(p) }
func (productResource) Validate(d product.Draft) error { return d.Validate() }

func (r productResource) Create(ctx context.Context, d product.Draft) (product.Product, error) {
	return r.api.Create(ctx, d.Request())
}

func (r productResource) Update(ctx context.Context, id string, d product.Draft) (product.Product, error) {
	return r.api.Update(ctx, id, d.Request())
}

// AttachProductImages appends uploaded assets to the open draft, skipping
// URLs the draft already has. A batch that would take the draft past limit
// images is refused whole and the draft is left as it was.
func AttachProductImages(s *ProductScreen, assets []upload.Asset, limit int) error {
	return s.UpdateDraft(func(d *product.Draft) error {
		seen := make(map[string]bool, len(d.Images))
		for _, img := range d.Images {
			seen[img.URL] = true
		}
		images := slices.Clone(d.Images)
		for _, a := range assets {
			if a.URL == "" || seen[a.URL] {
				continue
			}
			seen[a.URL] = true
			images = append(images, product.Image{URL: a.URL, AssetID: a.AssetID})
		}
		if limit > 0 && len(images) > limit {
			return xerrors.ValidationError(map[string]string{
				"images": fmt.Sprintf("You can add at most %d images", limit),
			})
		}
		d.Images = images
		return nil
	})
}

// DetachProductImage drops one image from the draft and cleans up its asset
// best-effort.
func DetachProductImage(ctx context.Context, s *ProductScreen, url string, assets AssetRemover) error {
	var (
		removed product.Image
		found   bool
	)
	err := s.EditDraft(func(d *product.Draft) {
		kept := make([]product.Image, 0, len(d.Images))
		for _, img := range d.Images {
			if !found && img.URL == url {
				removed, found = img, true
				continue
			}
			kept = append(kept, img)
		}
		d.Images = kept
	})
	if err != nil {
		return err
	}
	if !found {
		return xerrors.ErrNotFound
	}
	if removed.AssetID != "" && assets != nil {
		assets.DeleteAsset(ctx, removed.AssetID)
	}
	return nil
}
