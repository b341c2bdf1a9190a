package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/VuMinhQuang-34/G6-SWP391-sub001/config"
	"github.com/VuMinhQuang-34/G6-SWP391-sub001/internal/auth"
	authH "github.com/VuMinhQuang-34/G6-SWP391-sub001/internal/auth/handler"
	authRepoPkg "github.com/VuMinhQuang-34/G6-SWP391-sub001/internal/auth/repository"
	authUCPkg "github.com/VuMinhQuang-34/G6-SWP391-sub001/internal/auth/usecase"
	bookH "github.com/VuMinhQuang-34/G6-SWP391-sub001/internal/book/handler"
	bookRepoPkg "github.com/VuMinhQuang-34/G6-SWP391-sub001/internal/book/repository"
	bookUCPkg "github.com/VuMinhQuang-34/G6-SWP391-sub001/internal/book/usecase"
	catH "github.com/VuMinhQuang-34/G6-SWP391-sub001/internal/category/handler"
	catRepoPkg "github.com/VuMinhQuang-34/G6-SWP391-sub001/internal/category/repository"
	catUCPkg "github.com/VuMinhQuang-34/G6-SWP391-sub001/internal/category/usecase"
	orderH "github.com/VuMinhQuang-34/G6-SWP391-sub001/internal/exportorder/handler"
	orderRepoPkg "github.com/VuMinhQuang-34/G6-SWP391-sub001/internal/exportorder/repository"
	orderUCPkg "github.com/VuMinhQuang-34/G6-SWP391-sub001/internal/exportorder/usecase"
	invH "github.com/VuMinhQuang-34/G6-SWP391-sub001/internal/inventory/handler"
	invRepoPkg "github.com/VuMinhQuang-34/G6-SWP391-sub001/internal/inventory/repository"
	invUCPkg "github.com/VuMinhQuang-34/G6-SWP391-sub001/internal/inventory/usecase"
	"github.com/VuMinhQuang-34/G6-SWP391-sub001/internal/server"
	"github.com/VuMinhQuang-34/G6-SWP391-sub001/pkg/broker"
	"github.com/VuMinhQuang-34/G6-SWP391-sub001/pkg/cache"
	"github.com/VuMinhQuang-34/G6-SWP391-sub001/pkg/database/postgres"
	"github.com/VuMinhQuang-34/G6-SWP391-sub001/pkg/logger"
	"github.com/VuMinhQuang-34/G6-SWP391-sub001/pkg/search"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	// 1. Load Configuration
	_ = godotenv.Load()
	cfg := config.LoadEnv()

	// 2. Initialize Logger
	logConfig := &logger.ZapLoggerConfig{
		IsDevelopment:     false,
		Encoding:          "json",
		Level:             cfg.Logger.Level,
		DisableCaller:     cfg.Logger.DisableCaller,
		DisableStacktrace: cfg.Logger.DisableStacktrace,
	}

	if cfg.Server.AppEnv == "development" {
		logConfig.IsDevelopment = true
		logConfig.Encoding = "console"
		logConfig.Level = "debug"
	}

	appLogger := logger.NewZapLogger(logConfig)
	defer appLogger.Sync()

	// 3. Connect to Database
	db, err := postgres.NewPostgres(&postgres.Config{
		Host:            cfg.Postgres.Host,
		Port:            cfg.Postgres.Port,
		User:            cfg.Postgres.User,
		Password:        cfg.Postgres.Password,
		DBName:          cfg.Postgres.DBName,
		SSLMode:         cfg.Postgres.SSLMode,
		MaxOpenConns:    cfg.Postgres.MaxOpenConns,
		MaxIdleConns:    cfg.Postgres.MaxIdleConns,
		ConnMaxLifetime: time.Duration(cfg.Postgres.ConnMaxLifetime) * time.Second,
		ConnMaxIdleTime: time.Duration(cfg.Postgres.ConnMaxIdleTime) * time.Second,
	})
	if err != nil {
		appLogger.Fatal("Could not connect to database", zap.Error(err))
	}
	defer db.Close()
	appLogger.Info("Connected to PostgreSQL database", zap.String("db_name", cfg.Postgres.DBName))

	// 4. Initialize Redis
	redisClient, err := cache.NewRedisClient(&cache.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		appLogger.Fatal("Could not connect to Redis", zap.Error(err))
	}
	defer redisClient.Close()
	appLogger.Info("Connected to Redis", zap.String("addr", cfg.Redis.Addr))

	// 5. Initialize Kafka Producer
	producer := broker.NewProducer(&broker.Config{
		Brokers: cfg.Kafka.Brokers,
		Topic:   cfg.Kafka.Topic,
	})
	defer producer.Close()
	appLogger.Info("Connected to Kafka", zap.Strings("brokers", cfg.Kafka.Brokers), zap.String("topic", cfg.Kafka.Topic))

	// 6. Initialize Elasticsearch
	var esClient *search.Client
	if cfg.Elastic.Enabled {
		esClient, err = search.NewClient(&search.Config{
			Addresses: cfg.Elastic.Addresses,
			Username:  cfg.Elastic.Username,
			Password:  cfg.Elastic.Password,
		})
		if err != nil {
			appLogger.Warn("Could not connect to Elasticsearch (search features limited)", zap.Error(err))
			esClient = nil
		} else {
			appLogger.Info("Connected to Elasticsearch", zap.Strings("addresses", cfg.Elastic.Addresses))
		}
	}

	// 7. Initialize Repositories
	userRepo := authRepoPkg.NewPGRepository(db)
	bookRepo := bookRepoPkg.NewPGRepository(db)
	catRepo := catRepoPkg.NewPGRepository(db)
	invRepo := invRepoPkg.NewPGRepository(db)
	orderRepo := orderRepoPkg.NewPGRepository(db)

	// 8. Initialize Auth
	jwtService := auth.NewJWTService(
		cfg.JWT.SecretKey,
		time.Duration(cfg.JWT.AccessTokenMinutes)*time.Minute,
		time.Duration(cfg.JWT.RefreshTokenHours)*time.Hour,
	)
	authMiddleware := auth.NewMiddleware(jwtService)

	// 9. Initialize UseCases
	authUC := authUCPkg.NewAuthUseCase(userRepo, jwtService, redisClient, appLogger)
	bookUC := bookUCPkg.NewBookUseCase(bookRepo, redisClient, esClient, appLogger)
	catUC := catUCPkg.NewCategoryUseCase(catRepo, appLogger)
	invUC := invUCPkg.NewInventoryUseCase(invRepo, appLogger)
	orderUC := orderUCPkg.NewExportOrderUseCase(orderRepo, invUC, producer, appLogger)

	// 10. Initialize Handlers
	handlers := server.Handlers{
		Auth:        authH.NewAuthHandler(authUC, appLogger),
		Book:        bookH.NewBookHandler(bookUC, appLogger),
		Category:    catH.NewCategoryHandler(catUC, appLogger),
		ExportOrder: orderH.NewExportOrderHandler(orderUC, appLogger),
		Inventory:   invH.NewInventoryHandler(invUC, appLogger),
	}

	// 11. Start HTTP Server
	srv := server.NewServer(cfg, appLogger, authMiddleware, handlers)

	go func() {
		if err := srv.Run(); err != nil {
			appLogger.Fatal("failed to serve", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("shutdown error", zap.Error(err))
	}
	appLogger.Info("Server stopped")
}
