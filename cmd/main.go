package main

import (
	"context"
	"log"

	"golang-storefront-backend/configs"
	"golang-storefront-backend/internal/handlers"
	"golang-storefront-backend/internal/middleware"
	"golang-storefront-backend/internal/models"
	"golang-storefront-backend/internal/repositories"
	"golang-storefront-backend/internal/services"
	"golang-storefront-backend/internal/upstream"
	"golang-storefront-backend/internal/worker"
	"golang-storefront-backend/pkg/cache"
	"golang-storefront-backend/pkg/database"
	"golang-storefront-backend/pkg/logger"
	"golang-storefront-backend/pkg/messaging"
	"golang-storefront-backend/pkg/session"

	"github.com/gin-gonic/gin"
)

func main() {
	// Load configuration
	config := configs.LoadConfig()

	// Set Gin mode
	gin.SetMode(config.Server.Mode)

	zlog := logger.New(config.Server.Mode)
	defer zlog.Sync()

	// Initialize database connections
	db, err := database.NewDatabase(config.Database.PostgresURL, config.Database.MongoURL, config.Database.MongoDBName)
	if err != nil {
		log.Fatal("Failed to connect to databases:", err)
	}
	defer db.Close()

	// Auto-migrate PostgreSQL tables
	if err := db.Postgres.AutoMigrate(&models.OrderRecord{}); err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	// Initialize Redis cache
	redisCache, err := cache.NewRedisCache(config.Redis.URL, config.Redis.Password, config.Redis.DB)
	if err != nil {
		log.Fatal("Failed to connect to Redis:", err)
	}
	defer redisCache.Close()

	// Initialize Kafka
	kafkaProducer := messaging.NewKafkaProducer(config.Kafka.Brokers)
	defer kafkaProducer.Close()

	// Guest session tokens
	sessionManager := session.NewManager(config.Session.SecretKey, config.Session.ExpiryDays)

	// Ordering platform client
	orderingClient := upstream.NewClient(config.Upstream.BaseURL, config.Upstream.Timeout)

	// Initialize repositories
	cartStorage := repositories.NewRedisCartStorage(redisCache)
	catalogRepo := repositories.NewCatalogRepository(db.MongoDB)
	orderRepo := repositories.NewOrderRecordRepository(db.Postgres)
	submissionLock := repositories.NewRedisSubmissionLock(redisCache)

	// Initialize services
	cartService := services.NewCartService(cartStorage, config.Storefront.DeliveryFee, zlog)
	catalogService := services.NewCatalogService(catalogRepo, redisCache)
	checkoutService := services.NewCheckoutService(
		cartService,
		orderingClient,
		orderRepo,
		kafkaProducer,
		submissionLock,
		config.Kafka.OrderTopic,
		zlog,
	)

	trackingRetry := messaging.RetryPolicy{
		MaxAttempts: config.Storefront.TrackingMaxRetries,
		BaseDelay:   config.Storefront.TrackingBaseDelay,
		MaxDelay:    config.Storefront.TrackingMaxDelay,
	}
	trackingService := services.NewTrackingService(
		orderingClient,
		orderRepo,
		func() services.MessageReader {
			return messaging.NewTrackingReader(config.Kafka.Brokers, config.Kafka.TrackingTopic, config.Kafka.GroupID)
		},
		trackingRetry,
		zlog,
	)

	// Menu sync worker keeps the catalog snapshot current
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	menuSync := worker.NewMenuSyncWorker(orderingClient, catalogRepo, config.Upstream.SyncInterval, zlog)
	go menuSync.Run(ctx)

	// Initialize middleware
	sessionMiddleware := middleware.NewSessionMiddleware(sessionManager)

	// Initialize handlers
	catalogHandler := handlers.NewCatalogHandler(catalogService)
	cartHandler := handlers.NewCartHandler(cartService, catalogService, orderingClient)
	checkoutHandler := handlers.NewCheckoutHandler(checkoutService)
	orderHandler := handlers.NewOrderHandler(trackingService)

	// Initialize Gin router
	router := gin.New()

	// Global middleware
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggerMiddleware(zlog))
	router.Use(middleware.RecoveryMiddleware(zlog))
	router.Use(middleware.CORSMiddleware())

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"service": "golang-storefront-backend",
		})
	})

	// API routes, all under a guest session
	api := router.Group("/api/v1")
	api.Use(sessionMiddleware.GuestSession())

	// Register routes
	catalogHandler.RegisterRoutes(api)
	cartHandler.RegisterRoutes(api)
	checkoutHandler.RegisterRoutes(api)
	orderHandler.RegisterRoutes(api)

	zlog.Infow("server starting", "port", config.Server.Port)
	log.Fatal(router.Run(":" + config.Server.Port))
}
