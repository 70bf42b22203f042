package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"localdeals/internal/config"
	"localdeals/internal/handlers"
	"localdeals/internal/middleware"
	"localdeals/internal/repositories/mongodb"
	"localdeals/internal/services"
	"localdeals/pkg/cache"
	"localdeals/pkg/database"
	"localdeals/pkg/geocode"
	"localdeals/pkg/logger"
	"localdeals/routes"

	"github.com/gin-gonic/gin"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	logFormat := "text"
	if config.IsProduction() {
		logFormat = "json"
	}
	log, err := logger.NewLogger(&logger.Config{
		Level:      logger.LogLevel(cfg.App.LogLevel),
		Format:     logFormat,
		Output:     "stdout",
		TimeFormat: time.RFC3339,
		Colors:     !config.IsProduction(),
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}

	db, err := database.NewMongoDB(&database.DatabaseConfig{
		URI:            cfg.Database.URI,
		Database:       cfg.Database.Database,
		MaxPoolSize:    cfg.Database.MaxPoolSize,
		MinPoolSize:    cfg.Database.MinPoolSize,
		ConnectTimeout: cfg.Database.ConnectTimeout,
		SocketTimeout:  cfg.Database.SocketTimeout,
	})
	if err != nil {
		log.WithError(err).Fatal("Failed to connect to MongoDB")
	}
	defer db.Close()

	indexCtx, cancelIndexes := context.WithTimeout(context.Background(), 30*time.Second)
	if err := db.EnsureIndexes(indexCtx); err != nil {
		cancelIndexes()
		log.WithError(err).Fatal("Failed to create indexes")
	}
	cancelIndexes()

	redisCache, err := cache.NewRedisCache(&cache.RedisConfig{
		Host:         cfg.Redis.Host,
		Port:         cfg.Redis.Port,
		Password:     cfg.Redis.Password,
		DB:           cfg.Redis.DB,
		PoolSize:     cfg.Redis.PoolSize,
		MinIdleConns: cfg.Redis.MinIdleConns,
		DialTimeout:  cfg.Redis.DialTimeout,
		ReadTimeout:  cfg.Redis.ReadTimeout,
		WriteTimeout: cfg.Redis.WriteTimeout,
	})
	if err != nil {
		log.WithError(err).Fatal("Failed to connect to Redis")
	}
	defer redisCache.Close()

	var geocoder geocode.Geocoder
	if cfg.Maps.GoogleAPIKey != "" {
		geocoder, err = geocode.NewGoogleGeocoder(cfg.Maps.GoogleAPIKey)
		if err != nil {
			log.WithError(err).Fatal("Failed to create geocoder")
		}
	} else {
		log.Warn("GOOGLE_MAPS_API_KEY not set, address geocoding disabled")
	}

	// Repositories
	promotionRepo := mongodb.NewPromotionRepository(db.Database, redisCache)
	businessRepo := mongodb.NewBusinessRepository(db.Database, redisCache)
	campaignRepo := mongodb.NewCampaignRepository(db.Database)
	notificationRepo := mongodb.NewNotificationRepository(db.Database)
	reviewRepo := mongodb.NewReviewRepository(db.Database)

	// Services
	promotionService := services.NewPromotionService(promotionRepo, campaignRepo, redisCache, log)
	redemptionService := services.NewRedemptionService(promotionRepo, log)
	campaignService := services.NewCampaignService(campaignRepo, promotionRepo, log)
	discoveryService := services.NewDiscoveryService(promotionRepo, businessRepo, log)
	businessService := services.NewBusinessService(businessRepo, promotionRepo, reviewRepo, geocoder, log)
	notificationService := services.NewNotificationService(notificationRepo, log)

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.CORSMiddleware(cfg.Security.CORSAllowedOrigins))
	router.Use(middleware.LoggingMiddleware(log))

	routes.Setup(router, &routes.Handlers{
		Feed:         handlers.NewFeedHandler(discoveryService),
		Scan:         handlers.NewScanHandler(redemptionService),
		Promotion:    handlers.NewPromotionHandler(promotionService),
		Campaign:     handlers.NewCampaignHandler(campaignService),
		Business:     handlers.NewBusinessHandler(businessService),
		Notification: handlers.NewNotificationHandler(notificationService),
	}, cfg.Security.JWTSecret)

	server := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.App.Host, cfg.App.Port),
		Handler: router,
	}

	go func() {
		log.WithField("addr", server.Addr).Info("Server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Fatal("Server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("Forced shutdown")
	}
	log.Info("Server stopped")
}
