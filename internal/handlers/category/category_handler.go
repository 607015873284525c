// internal/handlers/category/category_handler.go
package category

import (
	"net/http"
	"strings"

	domain "glam-admin/internal/domain/category"
	"glam-admin/internal/domain/upload"
	"glam-admin/internal/handlers"
	"glam-admin/internal/pkg/response"
	"glam-admin/internal/screen"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type CategoryHandler struct {
	screen   *screen.CategoryScreen
	assets   screen.AssetRemover
	sessions handlers.SessionClearer
	logger   *zap.Logger
}

func NewCategoryHandler(s *screen.CategoryScreen, assets screen.AssetRemover, sessions handlers.SessionClearer, logger *zap.Logger) *CategoryHandler {
	return &CategoryHandler{
		screen:   s,
		assets:   assets,
		sessions: sessions,
		logger:   logger,
	}
}

type openDraftRequest struct {
	ID string `json:"id"`
}

// List re-fetches with the query's filter and returns the screen. A failed
// fetch still renders the screen with its error set.
func (h *CategoryHandler) List(c *gin.Context) {
	f := screen.CategoryFilter{Status: domain.Status(strings.ToUpper(c.Query("status")))}
	h.screen.SetSearch(c.Query("q"))

	if err := h.screen.SetFilter(c.Request.Context(), f); err != nil {
		if handlers.IsSessionError(err) {
			handlers.Fail(c, h.sessions, h.logger, err, "")
			return
		}
		h.logger.Warn("category list failed", zap.Error(err))
	}
	response.Success(c, http.StatusOK, "", h.screen.Snapshot())
}

// OpenDraft opens the create form, or the edit form when an id is given.
func (h *CategoryHandler) OpenDraft(c *gin.Context) {
	var req openDraftRequest
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
		handlers.Fail(c, h.sessions, h.logger, err, "Category not found")
		return
	}
	response.Success(c, http.StatusOK, "", h.screen.Snapshot())
}

func (h *CategoryHandler) EditDraft(c *gin.Context) {
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

func (h *CategoryHandler) CloseDraft(c *gin.Context) {
	h.screen.CloseDraft()
	response.Success(c, http.StatusOK, "", h.screen.Snapshot())
}

func (h *CategoryHandler) SetImage(c *gin.Context) {
	var a upload.Asset
	if err := c.ShouldBindJSON(&a); err != nil || a.URL == "" {
		response.BadRequest(c, "image url is required")
		return
	}
	if err := screen.SetCategoryImage(c.Request.Context(), h.screen, a, h.assets); err != nil {
		handlers.Fail(c, h.sessions, h.logger, err, "")
		return
	}
	response.Success(c, http.StatusOK, "", h.screen.Snapshot())
}

func (h *CategoryHandler) ClearImage(c *gin.Context) {
	if err := screen.ClearCategoryImage(c.Request.Context(), h.screen, h.assets); err != nil {
		handlers.Fail(c, h.sessions, h.logger, err, "")
		return
	}
	response.Success(c, http.StatusOK, "", h.screen.Snapshot())
}

func (h *CategoryHandler) Submit(c *gin.Context) {
	saved, err := h.screen.Submit(c.Request.Context())
	if err != nil {
		handlers.Fail(c, h.sessions, h.logger, err, "Failed to save category")
		return
	}
	response.Success(c, http.StatusOK, "category saved", gin.H{
		"category": saved,
		"screen":   h.screen.Snapshot(),
	})
}

func (h *CategoryHandler) DeleteIntent(c *gin.Context) {
	if err := h.screen.RequestDelete(c.Param("id")); err != nil {
		handlers.Fail(c, h.sessions, h.logger, err, "")
		return
	}
	response.Success(c, http.StatusOK, "", h.screen.Snapshot())
}

func (h *CategoryHandler) ConfirmDelete(c *gin.Context) {
	if err := h.screen.ConfirmDelete(c.Request.Context()); err != nil {
		handlers.Fail(c, h.sessions, h.logger, err, "Failed to delete category")
		return
	}
	response.Success(c, http.StatusOK, "category deleted", h.screen.Snapshot())
}

func (h *CategoryHandler) CancelDelete(c *gin.Context) {
	h.screen.CancelDelete()
	response.Success(c, http.StatusOK, "", h.screen.Snapshot())
}
