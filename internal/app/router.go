// internal/app/router.go
package app

import (
	authHandler "glam-admin/internal/handlers/auth"
	categoryHandler "glam-admin/internal/handlers/category"
	orderHandler "glam-admin/internal/handlers/order"
	productHandler "glam-admin/internal/handlers/product"
	uploadHandler "glam-admin/internal/handlers/upload"
	wsHandler "glam-admin/internal/handlers/websocket"
	"glam-admin/internal/middleware"

	"github.com/gin-gonic/gin"
)

type Handlers struct {
	AuthHandler     *authHandler.AuthHandler
	CategoryHandler *categoryHandler.CategoryHandler
	ProductHandler  *productHandler.ProductHandler
	OrderHandler    *orderHandler.OrderHandler
	UploadHandler   *uploadHandler.UploadHandler
	WSHandler       *wsHandler.WebSocketHandler
	AuthMiddleware  *middleware.AuthMiddleware
}

func SetupRouter(r *gin.Engine, h *Handlers) {
	// ==================== Health Check ====================
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// ==================== Public Auth Routes ====================
	r.GET(middleware.LoginPath, h.AuthHandler.LoginView)
	r.POST(middleware.LoginPath, h.AuthHandler.Login)
	r.POST("/logout", h.AuthHandler.Logout)

	// ==================== WebSocket ====================
	r.GET("/ws", h.AuthMiddleware.Guard(), h.WSHandler.HandleConnection)

	console := r.Group("/console")
	console.Use(h.AuthMiddleware.Guard())
	{
		console.GET("/me", h.AuthHandler.Me)
		console.GET("/ws/stats", h.WSHandler.GetStats)
	}

	// ==================== Categories ====================
	categories := console.Group("/categories")
	{
		categories.GET("", h.CategoryHandler.List)
		categories.POST("/draft", h.CategoryHandler.OpenDraft)
		categories.PATCH("/draft", h.CategoryHandler.EditDraft)
		categories.DELETE("/draft", h.CategoryHandler.CloseDraft)
		categories.PUT("/draft/image", h.CategoryHandler.SetImage)
		categories.DELETE("/draft/image", h.CategoryHandler.ClearImage)
		categories.POST("/submit", h.CategoryHandler.Submit)
		categories.POST("/:id/delete-intent", h.CategoryHandler.DeleteIntent)
		categories.POST("/delete/confirm", h.CategoryHandler.ConfirmDelete)
		categories.POST("/delete/cancel", h.CategoryHandler.CancelDelete)
	}

	// ==================== Products ====================
	products := console.Group("/products")
	{
		products.GET("", h.ProductHandler.List)
		products.POST("/draft", h.ProductHandler.OpenDraft)
		products.PATCH("/draft", h.ProductHandler.EditDraft)
		products.DELETE("/draft", h.ProductHandler.CloseDraft)
		products.POST("/draft/images", h.ProductHandler.AttachImages)
		products.DELETE("/draft/images", h.ProductHandler.DetachImage)
		products.POST("/submit", h.ProductHandler.Submit)
		products.POST("/:id/delete-intent", h.ProductHandler.DeleteIntent)
		products.POST("/delete/confirm", h.ProductHandler.ConfirmDelete)
		products.POST("/delete/cancel", h.ProductHandler.CancelDelete)
	}

	// ==================== Orders ====================
	orders := console.Group("/orders")
	{
		orders.GET("", h.OrderHandler.List)
		orders.POST("/:id/open", h.OrderHandler.OpenDetail)
		orders.POST("/detail/close", h.OrderHandler.CloseDetail)
		orders.POST("/detail/status", h.OrderHandler.RequestStatus)
		orders.POST("/detail/status/confirm", h.OrderHandler.ConfirmStatus)
		orders.POST("/detail/status/cancel", h.OrderHandler.CancelStatus)
		orders.POST("/:id/delete-intent", h.OrderHandler.DeleteIntent)
		orders.POST("/delete/confirm", h.OrderHandler.ConfirmDelete)
		orders.POST("/delete/cancel", h.OrderHandler.CancelDelete)
	}

	// ==================== Uploads ====================
	uploads := console.Group("/uploads")
	{
		uploads.POST("", h.UploadHandler.Upload)
		uploads.POST("/delete", h.UploadHandler.Delete)
	}
}
