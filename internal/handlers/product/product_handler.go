// internal/handlers/product/product_handler.go
package product

import (
	"net/http"
	"strconv"
	"strings"

	"glam-admin/internal/apiclient"
	domain "glam-admin/internal/domain/product"
	"glam-admin/internal/domain/upload"
	"glam-admin/internal/handlers"
	"glam-admin/internal/pkg/response"
	"glam-admin/internal/screen"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type ProductHandler struct {
	screen    *screen.ProductScreen
	assets    screen.AssetRemover
	maxImages int
	sessions  handlers.SessionClearer
	logger    *zap.Logger
}

func NewProductHandler(s *screen.ProductScreen, assets screen.AssetRemover, maxImages int, sessions handlers.SessionClearer, logger *zap.Logger) *ProductHandler {
	return &ProductHandler{
		screen:    s,
		assets:    assets,
		maxImages: maxImages,
		sessions:  sessions,
		logger:    logger,
	}
}

type attachImagesRequest struct {
	Assets []upload.Asset `json:"assets" binding:"required"`
}

type detachImageRequest struct {
	URL string `json:"url" binding:"required"`
}

// List sends q and category to the API and shows its results as returned.
func (h *ProductHandler) List(c *gin.Context) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	q := strings.TrimSpace(c.Query("q"))
	f := apiclient.ProductFilter{Q: q, Category: c.Query("category"), Page: page}

	if err := h.screen.SetFilter(c.Request.Context(), f); err != nil {
		if handlers.IsSessionError(err) {
			handlers.Fail(c, h.sessions, h.logger, err, "")
			return
		}
		h.logger.Warn("product list failed", zap.Error(err))
	}
	response.Success(c, http.StatusOK, "", h.screen.Snapshot())
}

func (h *ProductHandler) OpenDraft(c *gin.Context) {
	var req struct {
		ID string `json:"id"`
	}
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			response.BadRequest(c, "invalid request")
			return
		}
	}

	var err error
	if req.ID == "" {
		err = h.screen.OpenCreate()
	} else {
		err = h.screen.OpenEdit(req.ID)
	}
	if err != nil {
		handlers.Fail(c, h.sessions, h.logger, err, "Product not found")
		return
	}
	response.Success(c, http.StatusOK, "", h.screen.Snapshot())
}

func (h *ProductHandler) EditDraft(c *gin.Context) {
	var patch domain.DraftPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		response.BadRequest(c, "invalid request")
		return
	}
	if err := h.screen.EditDraft(func(d *domain.Draft) { d.Apply(patch) }); err != nil {
		handlers.Fail(c, h.sessions, h.logger, err, "")
		return
	}
	response.Success(c, http.StatusOK, "", h.screen.Snapshot())
}

func (h *ProductHandler) CloseDraft(c *gin.Context) {
	h.screen.CloseDraft()
	response.Success(c, http.StatusOK, "", h.screen.Snapshot())
}

func (h *ProductHandler) AttachImages(c *gin.Context) {
	var req attachImagesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "assets are required")
		return
	}
	if err := screen.AttachProductImages(h.screen, req.Assets, h.maxImages); err != nil {
		handlers.Fail(c, h.sessions, h.logger, err, "")
		return
	}
	response.Success(c, http.StatusOK, "", h.screen.Snapshot())
}

// DetachImage removes an image from the draft. Asset cleanup is best-effort
// and never fails the request.
func (h *ProductHandler) DetachImage(c *gin.Context) {
	var req detachImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "url is required")
		return
	}
	if err := screen.DetachProductImage(c.Request.Context(), h.screen, req.URL, h.assets); err != nil {
		handlers.Fail(c, h.sessions, h.logger, err, "Image not found")
		return
	}
	response.Success(c, http.StatusOK, "", h.screen.Snapshot())
}

func (h *ProductHandler) Submit(c *gin.Context) {
	saved, err := h.screen.Submit(c.Request.Context())
	if err != nil {
		handlers.Fail(c, h.sessions, h.logger, err, "Failed to save product")
		return
	}
	response.Success(c, http.StatusOK, "product saved", gin.H{
		"product": saved,
		"screen":  h.screen.Snapshot(),
	})
}

func (h *ProductHandler) DeleteIntent(c *gin.Context) {
	if err := h.screen.RequestDelete(c.Param("id")); err != nil {
		handlers.Fail(c, h.sessions, h.logger, err, "")
		return
	}
	response.Success(c, http.StatusOK, "", h.screen.Snapshot())
}

func (h *ProductHandler) ConfirmDelete(c *gin.Context) {
	if err := h.screen.ConfirmDelete(c.Request.Context()); err != nil {
		handlers.Fail(c, h.sessions, h.logger, err, "Failed to delete product")
		return
	}
	response.Success(c, http.StatusOK, "product deleted", h.screen.Snapshot())
}

func (h *ProductHandler) CancelDelete(c *gin.Context) {
	h.screen.CancelDelete()
	response.Success(c, http.StatusOK, "", h.screen.Snapshot())
}
