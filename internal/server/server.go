package server

import (
	"context"
	"net/http"
	"time"

	"github.com/VuMinhQuang-34/G6-SWP391-sub001/config"
	"github.com/VuMinhQuang-34/G6-SWP391-sub001/internal/auth"
	authhandler "github.com/VuMinhQuang-34/G6-SWP391-sub001/internal/auth/handler"
	bookhandler "github.com/VuMinhQuang-34/G6-SWP391-sub001/internal/book/handler"
	categoryhandler "github.com/VuMinhQuang-34/G6-SWP391-sub001/internal/category/handler"
	exporthandler "github.com/VuMinhQuang-34/G6-SWP391-sub001/internal/exportorder/handler"
	inventoryhandler "github.com/VuMinhQuang-34/G6-SWP391-sub001/internal/inventory/handler"
	"github.com/VuMinhQuang-34/G6-SWP391-sub001/pkg/logger"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handlers struct {
	Auth        *authhandler.AuthHandler
	Book        *bookhandler.BookHandler
	Category    *categoryhandler.CategoryHandler
	ExportOrder *exporthandler.ExportOrderHandler
	Inventory   *inventoryhandler.InventoryHandler
}

type Server struct {
	cfg        *config.Config
	logger     logger.ZapLogger
	middleware *auth.Middleware
	handlers   Handlers
	httpServer *http.Server
}

func NewServer(cfg *config.Config, log logger.ZapLogger, mw *auth.Middleware, handlers Handlers) *Server {
	return &Server{
		cfg:        cfg,
		logger:     log,
		middleware: mw,
		handlers:   handlers,
	}
}

func (s *Server) Run() error {
	if s.cfg.Server.AppEnv == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		AllowCredentials: true,
	}))

	s.registerRoutes(router)

	s.httpServer = &http.Server{
		Addr:         s.cfg.Server.HTTPPort,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	s.logger.Info("http server listening", zap.String("addr", s.cfg.Server.HTTPPort))
	err := s.httpServer.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer == nil {
		return nil
	}
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) registerRoutes(router *gin.Engine) {
	router.GET("/health", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	authGroup := router.Group("/auth")
	{
		authGroup.POST("/register", s.handlers.Auth.Register)
		authGroup.POST("/login", s.handlers.Auth.Login)
		authGroup.POST("/refresh", s.handlers.Auth.Refresh)
		authGroup.POST("/logout", s.middleware.RequireAuth(), s.handlers.Auth.Logout)
		authGroup.POST("/otp/request", s.handlers.Auth.RequestOTP)
		authGroup.POST("/otp/verify", s.handlers.Auth.VerifyOTP)
	}

	api := router.Group("/api")
	api.Use(s.middleware.RequireAuth())
	{
		orders := api.Group("/export-orders")
		{
			orders.POST("", s.handlers.ExportOrder.CreateExportOrder)
			orders.GET("", s.handlers.ExportOrder.ListExportOrders)
			orders.GET("/:id", s.handlers.ExportOrder.GetExportOrder)
			orders.PUT("/:id", s.handlers.ExportOrder.UpdateExportOrder)
			orders.DELETE("/:id", s.handlers.ExportOrder.DeleteExportOrder)
			orders.PATCH("/:id/status", s.middleware.RequireManager(), s.handlers.ExportOrder.ChangeExportOrderStatus)
			orders.GET("/:id/status-logs", s.handlers.ExportOrder.GetExportOrderStatusLogs)
		}

		books := api.Group("/books")
		{
			books.POST("", s.handlers.Book.CreateBook)
			books.GET("", s.handlers.Book.ListBooks)
			books.GET("/:id", s.handlers.Book.GetBook)
			books.PUT("/:id", s.handlers.Book.UpdateBook)
			books.DELETE("/:id", s.handlers.Book.DeleteBook)
		}

		categories := api.Group("/categories")
		{
			categories.POST("", s.handlers.Category.CreateCategory)
			categories.GET("", s.handlers.Category.ListCategories)
			categories.GET("/:id", s.handlers.Category.GetCategory)
			categories.PUT("/:id", s.handlers.Category.UpdateCategory)
			categories.DELETE("/:id", s.handlers.Category.DeleteCategory)
		}

		api.GET("/bins", s.handlers.Inventory.ListBins)
		api.GET("/bins/:binId/stocks", s.handlers.Inventory.GetBinStocks)
		api.GET("/stocks", s.handlers.Inventory.ListStocks)
		api.GET("/stocks/:bookId", s.handlers.Inventory.GetStock)
	}
}
