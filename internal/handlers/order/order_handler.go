// internal/handlers/order/order_handler.go
package order

import (
	"net/http"
	"strconv"
	"strings"

	"glam-admin/internal/apiclient"
	domain "glam-admin/internal/domain/order"
	"glam-admin/internal/handlers"
	"glam-admin/internal/pkg/response"
	"glam-admin/internal/screen"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type OrderHandler struct {
	screen   *screen.OrderScreen
	pageSize int
	sessions handlers.SessionClearer
	logger   *zap.Logger
}

func NewOrderHandler(s *screen.OrderScreen, pageSize int, sessions handlers.SessionClearer, logger *zap.Logger) *OrderHandler {
	return &OrderHandler{
		screen:   s,
		pageSize: pageSize,
		sessions: sessions,
		logger:   logger,
	}
}

type statusRequest struct {
	Status domain.Status `json:"status" binding:"required"`
}

func (h *OrderHandler) List(c *gin.Context) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	f := apiclient.OrderFilter{
		Page:   page,
		Limit:  h.pageSize,
		Status: domain.Status(strings.ToUpper(c.Query("status"))),
	}
	if f.Status != "" && !f.Status.Valid() {
		response.Error(c, http.StatusUnprocessableEntity, "INVALID_STATUS", "Unknown order status")
		return
	}
	// A new status filter starts over at the first page.
	if f.Status != h.screen.Filter().Status {
		f.Page = 1
	}
	h.screen.SetSearch(c.Query("q"))

	if err := h.screen.SetFilter(c.Request.Context(), f); err != nil {
		if handlers.IsSessionError(err) {
			handlers.Fail(c, h.sessions, h.logger, err, "")
			return
		}
		h.logger.Warn("order list failed", zap.Error(err))
	}
	response.Success(c, http.StatusOK, "", h.screen.Snapshot())
}

func (h *OrderHandler) OpenDetail(c *gin.Context) {
	if err := h.screen.OpenDetail(c.Param("id")); err != nil {
		handlers.Fail(c, h.sessions, h.logger, err, "Order not found")
		return
	}
	response.Success(c, http.StatusOK, "", h.screen.Snapshot())
}

func (h *OrderHandler) CloseDetail(c *gin.Context) {
	h.screen.CloseDetail()
	response.Success(c, http.StatusOK, "", h.screen.Snapshot())
}

// RequestStatus applies the change now or parks it for confirmation.
func (h *OrderHandler) RequestStatus(c *gin.Context) {
	var req statusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "status is required")
		return
	}

	applied, err := h.screen.RequestStatus(c.Request.Context(), domain.Status(strings.ToUpper(string(req.Status))))
	if err != nil {
		handlers.Fail(c, h.sessions, h.logger, err, "Failed to update order status")
		return
	}

	msg := "confirmation required"
	if applied {
		msg = "order status updated"
	}
	response.Success(c, http.StatusOK, msg, gin.H{
		"applied":           applied,
		"needsConfirmation": !applied,
		"screen":            h.screen.Snapshot(),
	})
}

func (h *OrderHandler) ConfirmStatus(c *gin.Context) {
	if err := h.screen.ConfirmStatus(c.Request.Context()); err != nil {
		handlers.Fail(c, h.sessions, h.logger, err, "Failed to update order status")
		return
	}
	response.Success(c, http.StatusOK, "order status updated", h.screen.Snapshot())
}

func (h *OrderHandler) CancelStatus(c *gin.Context) {
	h.screen.CancelStatus()
	response.Success(c, http.StatusOK, "", h.screen.Snapshot())
}

func (h *OrderHandler) DeleteIntent(c *gin.Context) {
	if err := h.screen.RequestDelete(c.Param("id")); err != nil {
		handlers.Fail(c, h.sessions, h.logger, err, "")
		return
	}
	response.Success(c, http.StatusOK, "", h.screen.Snapshot())
}

func (h *OrderHandler) ConfirmDelete(c *gin.Context) {
	if err := h.screen.ConfirmDelete(c.Request.Context()); err != nil {
		handlers.Fail(c, h.sessions, h.logger, err, "Failed to delete order")
		return
	}
	response.Success(c, http.StatusOK, "order deleted", h.screen.Snapshot())
}

func (h *OrderHandler) CancelDelete(c *gin.Context) {
	h.screen.CancelDelete()
	response.Success(c, http.StatusOK, "", h.screen.Snapshot())
}
