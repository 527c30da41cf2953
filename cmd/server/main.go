package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/northeast-trails/service-trip/internal/application"
	"github.com/northeast-trails/service-trip/internal/config"
	"github.com/northeast-trails/service-trip/internal/database"
	"github.com/northeast-trails/service-trip/internal/domain/catalog"
	tripEvents "github.com/northeast-trails/service-trip/internal/events"
	"github.com/northeast-trails/service-trip/internal/handler"
	"github.com/northeast-trails/service-trip/internal/kafka"
	"github.com/northeast-trails/service-trip/internal/logger"
	"github.com/northeast-trails/service-trip/internal/middleware"
	"github.com/northeast-trails/service-trip/internal/repository"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log, err := logger.NewNamed(cfg.AppEnv, "service-trip")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	log.Info("starting service-trip",
		zap.String("port", cfg.Port),
	)

	// Connect to database
	db, err := database.Connect(cfg.DBConfig, log)
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}

	// Run database migrations
	if err := db.AutoMigrate(
		&repository.PlaceModel{},
		&repository.HubModel{},
		&repository.CartStateModel{},
	); err != nil {
		log.Fatal("failed to run auto-migration", zap.Error(err))
	}
	log.Info("database migration completed")

	// Initialize Kafka producer
	kafkaProducer := kafka.NewProducer(cfg.KafkaConfig.Brokers, log)
	defer func() { _ = kafkaProducer.Close() }()

	// Initialize repositories
	placeRepo := repository.NewGormPlaceRepository(db)
	hubRepo := repository.NewGormHubRepository(db)
	cartStateRepo := repository.NewGormCartStateRepository(db)

	// Seed the hub directory
	if err := hubRepo.Seed(context.Background(), catalog.DefaultDirectory()); err != nil {
		log.Fatal("failed to seed hub directory", zap.Error(err))
	}

	// Initialize application services
	catalogService := application.NewCatalogService(placeRepo, hubRepo, log)
	cartService := application.NewCartService(placeRepo, cartStateRepo, kafkaProducer, log)
	mapService := application.NewMapService(cartService, placeRepo, hubRepo, log)

	// Initialize and start catalog event consumer in a goroutine
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	groupID := cfg.KafkaConfig.GroupPrefix + "trip-service"
	catalogConsumer := tripEvents.NewCatalogEventConsumer(
		cfg.KafkaConfig.Brokers,
		groupID,
		catalogService,
		log,
	)
	defer func() { _ = catalogConsumer.Close() }()

	go func() {
		log.Info("starting catalog event consumer")
		if err := catalogConsumer.Start(ctx); err != nil && err != context.Canceled {
			log.Error("catalog event consumer error", zap.Error(err))
		}
	}()

	// Initialize HTTP handlers
	catalogHandler := handler.NewCatalogHandler(catalogService)
	cartHandler := handler.NewCartHandler(cartService)
	mapHandler := handler.NewMapHandler(mapService)

	// Setup Gin router
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()

	// Apply global middleware
	router.Use(middleware.RecoveryMiddleware(log))
	router.Use(middleware.LoggerMiddleware(log))
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.SecurityHeadersMiddleware())
	router.Use(middleware.SessionMiddleware())

	// Register health check routes
	healthHandler := handler.NewHealthHandler(db, "service-trip")
	healthHandler.RegisterRoutes(router)

	// Register routes
	catalogHandler.RegisterRoutes(&router.RouterGroup)
	cartHandler.RegisterRoutes(&router.RouterGroup)
	mapHandler.RegisterRoutes(&router.RouterGroup)

	// Register admin handler routes
	adminCatalogHandler := handler.NewAdminCatalogHandler(catalogService)
	adminCatalogHandler.RegisterRoutes(&router.RouterGroup)

	// Create HTTP server
	srv := &http.Server{
		Addr:         cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Info("HTTP server starting", zap.String("addr", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down service-trip...")

	// Cancel the consumer context
	cancel()

	// Shutdown HTTP server with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server forced shutdown", zap.Error(err))
	}

	log.Info("service-trip stopped")
}
