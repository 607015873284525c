// internal/app/server.go
package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"glam-admin/internal/apiclient"
	"glam-admin/internal/config"
	"glam-admin/internal/db"
	authHandler "glam-admin/internal/handlers/auth"
	categoryHandler "glam-admin/internal/handlers/category"
	orderHandler "glam-admin/internal/handlers/order"
	productHandler "glam-admin/internal/handlers/product"
	uploadHandler "glam-admin/internal/handlers/upload"
	wsHandler "glam-admin/internal/handlers/websocket"
	"glam-admin/internal/middleware"
	"glam-admin/internal/pkg/session"
	"glam-admin/internal/screen"
	"glam-admin/internal/upload"
	"glam-admin/internal/websocket"
	wsHandlers "glam-admin/internal/websocket/handler"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Server struct {
	cfg    config.AppConfig
	engine *gin.Engine
	logger *zap.Logger
	http   *http.Server
	hub    *websocket.Hub

	sessions *session.Manager
	closers  []func()
}

// NewServer wires the console: session, API client, screens, hub and routes.
// Nothing is fetched until a request arrives.
func NewServer(cfg config.AppConfig, logger *zap.Logger) (*Server, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.Env != "development" {
		gin.SetMode(gin.ReleaseMode)
	}
	s := &Server{cfg: cfg, engine: gin.New(), logger: logger}

	// ----- Session -----
	store, err := s.sessionStore()
	if err != nil {
		return nil, err
	}
	s.sessions = session.NewManager(store, logger)

	// ----- API client -----
	cache := apiclient.NewListCache()
	client := apiclient.NewClient(cfg.APIBaseURL, cfg.APITimeout, s.sessions, logger)
	authAPI := apiclient.NewAuthAPI(client)
	categoriesAPI := apiclient.NewCategoriesAPI(client, cache)
	productsAPI := apiclient.NewProductsAPI(client, cache)
	ordersAPI := apiclient.NewOrdersAPI(client, cache)
	uploadsAPI := apiclient.NewUploadsAPI(client)

	uploader := upload.NewUploader(uploadsAPI, upload.Config{
		MediaHost:   cfg.MediaHostURL,
		MaxFiles:    cfg.UploadMaxFiles,
		Concurrency: cfg.UploadConcurrency,
	}, logger)

	// ----- WebSocket Hub -----
	s.hub = websocket.NewHub(logger)
	s.closers = append(s.closers, s.hub.WatchCache(cache, apiclient.TagCategories, apiclient.TagProducts, apiclient.TagOrders))
	s.sessions.OnChange(s.hub.OnSessionChange)

	// ----- Screens -----
	categories := screen.NewCategoryScreen(categoriesAPI, s.hub, logger)
	products := screen.NewProductScreen(productsAPI, s.hub, logger)
	orders := screen.NewOrderScreen(ordersAPI, cfg.PageSize, s.hub, logger)

	refresh := wsHandlers.NewRefreshHandler(map[string]wsHandlers.Refresher{
		string(apiclient.TagCategories): categories,
		string(apiclient.TagProducts):   products,
		string(apiclient.TagOrders):     orders,
	})
	if err := s.hub.RegisterHandler(refresh); err != nil {
		return nil, err
	}

	// Nothing loaded under one session is shown to the next.
	s.sessions.OnChange(func(state session.State) {
		if state != session.StateAnonymous {
			return
		}
		cache.InvalidateAll()
		categories.Reset()
		products.Reset()
		orders.Reset()
	})

	// ----- Middlewares -----
	s.engine.Use(
		middleware.RequestID(),
		middleware.RecoveryMiddleware(logger),
		middleware.LoggingMiddleware(logger),
	)

	// ----- Router -----
	SetupRouter(s.engine, &Handlers{
		AuthHandler:     authHandler.NewAuthHandler(authAPI, s.sessions, logger),
		CategoryHandler: categoryHandler.NewCategoryHandler(categories, uploader, s.sessions, logger),
		ProductHandler:  productHandler.NewProductHandler(products, uploader, uploader.MaxFiles(), s.sessions, logger),
		OrderHandler:    orderHandler.NewOrderHandler(orders, cfg.PageSize, s.sessions, logger),
		UploadHandler:   uploadHandler.NewUploadHandler(uploader, s.sessions, logger),
		WSHandler:       wsHandler.NewWebSocketHandler(s.hub, logger),
		AuthMiddleware:  middleware.NewAuthMiddleware(s.sessions),
	})

	s.http = &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s, nil
}

func (s *Server) sessionStore() (session.Store, error) {
	switch s.cfg.SessionBackend {
	case "memory":
		return session.NewMemoryStore(), nil

	case "redis":
		client, err := db.NewRedisClient(db.RedisConfig{
			Address:  s.cfg.RedisAddr,
			Password: s.cfg.RedisPass,
			DB:       s.cfg.RedisDB,
		})
		if err != nil {
			return nil, err
		}
		s.closers = append(s.closers, func() { _ = client.Close() })
		s.logger.Info("session store: redis", zap.String("addr", s.cfg.RedisAddr))
		return session.NewRedisStore(client, s.cfg.SessionKey), nil

	case "file", "":
		fs := session.NewFileStore(s.cfg.SessionFile, s.cfg.SessionKey)
		if s.cfg.SessionSecret == "" {
			s.logger.Warn("SESSION_SECRET not set, session file is stored unsealed")
			return fs, nil
		}
		sealed, err := fs.WithSecret(s.cfg.SessionSecret)
		if err != nil {
			return nil, fmt.Errorf("invalid SESSION_SECRET: %w", err)
		}
		return sealed, nil

	default:
		return nil, fmt.Errorf("unknown session backend %q", s.cfg.SessionBackend)
	}
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Start runs the hub and serves until Shutdown.
func (s *Server) Start(ctx context.Context) error {
	go s.hub.Run(ctx)

	s.logger.Info("console running",
		zap.String("addr", s.cfg.HTTPAddr),
		zap.String("api", s.cfg.APIBaseURL),
	)
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	err := s.http.Shutdown(ctx)
	for _, c := range s.closers {
		c()
	}
	return err
}
