package main

import (
	"github.com/vicriadty/cafe-app-ai/internal/ai"
	"github.com/vicriadty/cafe-app-ai/internal/cache"
	"github.com/vicriadty/cafe-app-ai/internal/events"
	"github.com/vicriadty/cafe-app-ai/internal/handler"
	mid "github.com/vicriadty/cafe-app-ai/internal/middleware"
	"github.com/vicriadty/cafe-app-ai/internal/repository"
	"github.com/vicriadty/cafe-app-ai/internal/service"
	"github.com/vicriadty/cafe-app-ai/pkg/config"
	"github.com/vicriadty/cafe-app-ai/pkg/database"
	"github.com/vicriadty/cafe-app-ai/pkg/jwtutil"
	"github.com/vicriadty/cafe-app-ai/pkg/logger"
	"github.com/vicriadty/cafe-app-ai/prometheus"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	// Load .env file; missing files are fine, env vars may be set directly
	_ = godotenv.Load()

	// Load configuration
	appConfig, err := config.Load()
	if err != nil {
		// Can't use structured logger yet since it's not initialized
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	logger.InitLogger(appConfig)
	log := logger.GetLogger()
	defer log.Sync()

	log.Info("Starting cafe-app-ai",
		zap.String("environment", appConfig.Server.Env),
		zap.String("port", appConfig.Server.Port))

	// Initialize JWT utility
	jwtutil.Initialize(&appConfig.JWT)
	log.Info("JWT utility initialized")

	// Initialize Prometheus metrics
	prometheus.InitMetrics(appConfig)
	log.Info("Prometheus metrics initialized",
		zap.String("metrics_prefix", appConfig.Metrics.Prefix))

	// Initialize database
	if err := database.InitDB(appConfig); err != nil {
		log.Fatal("Failed to initialize database", zap.Error(err))
	}
	log.Info("Database connection established")
	db := database.GetDB()

	// Repositories
	restaurantRepo := repository.NewRestaurantRepository(db)
	menuRepo := repository.NewMenuRepository(db)
	orderRepo := repository.NewOrderRepository(db)

	// Optional public-directory cache
	var directoryCache service.DirectoryCache
	if appConfig.Redis.Enabled {
		redisClient := redis.NewClient(&redis.Options{Addr: appConfig.Redis.Addr})
		directoryCache = cache.NewDirectoryCache(redisClient, appConfig.Redis.TTL)
		log.Info("Directory cache enabled", zap.String("addr", appConfig.Redis.Addr))
	}

	// Optional order event stream
	var publisher service.EventPublisher = events.NopPublisher{}
	if appConfig.Kafka.Enabled {
		kafkaPublisher := events.NewKafkaPublisher(appConfig.Kafka.Brokers, appConfig.Kafka.Topic)
		defer kafkaPublisher.Close()
		publisher = kafkaPublisher
		log.Info("Order event stream enabled",
			zap.Strings("brokers", appConfig.Kafka.Brokers),
			zap.String("topic", appConfig.Kafka.Topic))
	}

	// Optional assistant generator
	var generator service.Generator
	if appConfig.AI.Enabled {
		llm, err := ai.NewOpenAIGenerator(appConfig.AI.Model)
		if err != nil {
			log.Warn("Assistant generator unavailable, falling back to canned replies", zap.Error(err))
		} else {
			generator = llm
			log.Info("Assistant generator enabled", zap.String("model", appConfig.AI.Model))
		}
	}

	// Services
	restaurantService := service.NewRestaurantService(restaurantRepo, directoryCache)
	menuService := service.NewMenuService(menuRepo, restaurantRepo, directoryCache)
	orderService := service.NewOrderService(orderRepo, menuRepo, restaurantRepo, publisher)
	assistantService := service.NewAssistantService(restaurantRepo, generator)

	// Handlers
	restaurantHandler := handler.NewRestaurantHandler(restaurantService)
	menuHandler := handler.NewMenuHandler(menuService)
	orderHandler := handler.NewOrderHandler(orderService)
	assistantHandler := handler.NewAssistantHandler(assistantService)

	// Initialize Echo instance
	e := echo.New()

	// Middleware
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	e.Use(mid.RequestIDMiddleware)
	e.Use(mid.MetricsMiddleware)

	// Metrics endpoint
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// Health check endpoint
	e.GET("/health", handler.Health)

	// Public restaurant directory
	e.GET("/api/restaurants", restaurantHandler.ListPublic)
	e.GET("/api/restaurants/slug/:slug", restaurantHandler.GetBySlug)

	// Protected restaurant routes
	restaurantAPI := e.Group("/api/restaurants", mid.AuthMiddleware)
	restaurantAPI.GET("/mine", restaurantHandler.ListMine, mid.RequireOwner)
	restaurantAPI.GET("/:id", restaurantHandler.GetByID)
	restaurantAPI.POST("", restaurantHandler.Create, mid.RequireOwner)
	restaurantAPI.PUT("/:id", restaurantHandler.Update, mid.RequireOwner)
	restaurantAPI.DELETE("/:id", restaurantHandler.Delete, mid.RequireOwner)
	restaurantAPI.GET("/:id/menu", menuHandler.GetByRestaurant)
	restaurantAPI.GET("/:id/orders", orderHandler.GetOrdersForRestaurant, mid.RequireOwner)

	// Menu management routes
	categoryAPI := e.Group("/api/categories", mid.AuthMiddleware, mid.RequireOwner)
	categoryAPI.POST("", menuHandler.CreateCategory)
	categoryAPI.PUT("/:id", menuHandler.UpdateCategory)
	categoryAPI.DELETE("/:id", menuHandler.DeleteCategory)

	itemAPI := e.Group("/api/items", mid.AuthMiddleware, mid.RequireOwner)
	itemAPI.POST("", menuHandler.CreateItem)
	itemAPI.PUT("/:id", menuHandler.UpdateItem)
	itemAPI.DELETE("/:id", menuHandler.DeleteItem)
	itemAPI.PATCH("/:id/availability", menuHandler.ToggleItemAvailability)

	// Order routes
	orderAPI := e.Group("/api/orders", mid.AuthMiddleware)
	orderAPI.POST("", orderHandler.PlaceOrder)
	orderAPI.GET("/mine", orderHandler.GetMyOrders)
	orderAPI.GET("/:id", orderHandler.GetByID)
	orderAPI.GET("/:id/qr", orderHandler.GetQRCode)
	orderAPI.PATCH("/:id/status", orderHandler.UpdateStatus, mid.RequireOwner)
	orderAPI.POST("/:id/cancel", orderHandler.CancelOrder)

	// Assistant routes
	aiAPI := e.Group("/api/ai", mid.AuthMiddleware)
	aiAPI.POST("/chat", assistantHandler.Chat)

	// Start server
	port := appConfig.Server.Port
	log.Info("Starting server", zap.String("port", port))
	if err := e.Start(":" + port); err != nil {
		log.Fatal("Server error", zap.Error(err))
	}
}
