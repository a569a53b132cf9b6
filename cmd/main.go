package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ltk-caption-platform/internal/ai"
	"ltk-caption-platform/internal/captions"
	"ltk-caption-platform/internal/config"
	"ltk-caption-platform/internal/logger"
	"ltk-caption-platform/internal/scraper"
	"ltk-caption-platform/internal/telemetry"
	"ltk-caption-platform/middleware"
	"ltk-caption-platform/routes"
	"ltk-caption-platform/services"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	logger.InitLogger(cfg)

	// Connect to MongoDB
	mongoClient, err := config.ConnectMongoDB(cfg)
	if err != nil {
		log.Fatal("Failed to connect to MongoDB:", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		mongoClient.Disconnect(ctx)
	}()
	db := mongoClient.Database(cfg.DBName)

	// Tracing and metrics
	var metrics *telemetry.Metrics
	if cfg.TracingEnabled {
		shutdown, err := telemetry.InitTracer("ltk-caption-platform", cfg.OTLPEndpoint)
		if err != nil {
			log.Fatal("Failed to init tracer:", err)
		}
		defer shutdown()

		metrics, err = telemetry.InitMetrics()
		if err != nil {
			log.Fatal("Failed to init metrics:", err)
		}
	}

	// Headless browser for synchronous scrapes
	browser := scraper.New(cfg.ScraperHeadless)
	defer browser.Close()

	// Gemini client and caption generator
	geminiClient, err := ai.NewGeminiClient(context.Background(), cfg.GeminiAPIKey, cfg.GeminiModel)
	if err != nil {
		log.Fatal("Failed to initialize Gemini client:", err)
	}
	defer geminiClient.Close()
	generator := captions.NewGenerator(geminiClient)

	// Services
	postService := services.NewPostService(db)
	exportService := services.NewExportService(postService)

	// Queue client for async scrapes. Redis is optional: without it the
	// API still serves synchronous scrapes.
	var queueClient *asynq.Client
	if redisClient, err := config.NewRedisClient(cfg); err != nil {
		log.Printf("Redis unavailable, async scraping disabled: %v", err)
	} else {
		redisClient.Close()
		redisOpt, err := config.AsynqRedisOpt(cfg)
		if err != nil {
			log.Fatal("Failed to parse Redis settings:", err)
		}
		queueClient = asynq.NewClient(redisOpt)
		defer queueClient.Close()
	}

	// Initialize Gin router
	if cfg.GinMode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	if cfg.TracingEnabled {
		router.Use(middleware.TracingMiddleware())
		router.Use(middleware.EnrichTrace())
		router.Use(middleware.MetricsMiddleware(metrics))
	}

	// CORS configuration
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = cfg.CORSOrigins
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With"}
	corsConfig.AllowCredentials = true
	router.Use(cors.New(corsConfig))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy", "timestamp": time.Now()})
	})

	// Setup routes
	routes.SetupScrapeRoutes(router, cfg, browser, postService, queueClient, metrics)
	routes.SetupCaptionRoutes(router, generator, postService, metrics)
	routes.SetupPostRoutes(router, postService, exportService)

	// Create HTTP server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	// Start server in a goroutine
	go func() {
		log.Printf("Server starting on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exited")
}
