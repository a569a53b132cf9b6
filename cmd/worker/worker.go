package main

import (
	"context"
	"log"
	"time"

	"ltk-caption-platform/internal/config"
	"ltk-caption-platform/internal/logger"
	"ltk-caption-platform/internal/queue"
	"ltk-caption-platform/internal/scraper"
	"ltk-caption-platform/services"

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

	// Headless browser shared by all scrape tasks
	browser := scraper.New(cfg.ScraperHeadless)
	defer browser.Close()

	postService := services.NewPostService(db)

	// Redis options for Asynq
	redisOpt, err := config.AsynqRedisOpt(cfg)
	if err != nil {
		log.Fatal("Failed to parse Redis settings:", err)
	}

	// Create Asynq server
	server := asynq.NewServer(
		redisOpt,
		asynq.Config{
			Concurrency: cfg.WorkerConcurrency,
			Queues: map[string]int{
				"default": 1,
			},
			ErrorHandler: asynq.ErrorHandlerFunc(func(ctx context.Context, task *asynq.Task, err error) {
				log.Printf("Task failed: %s, error: %v", task.Type(), err)
			}),
		},
	)

	// Create task processor
	processor := queue.NewTaskProcessor(browser, postService)

	// Create mux and register handlers
	mux := asynq.NewServeMux()
	mux.HandleFunc(queue.TaskScrapePage, processor.ProcessScrape)

	// Periodic creator refresh re-enqueues recently scraped creator pages
	if cfg.RefreshEnabled {
		client := asynq.NewClient(redisOpt)
		defer client.Close()

		scheduler := queue.NewScheduler()
		interval := time.Duration(cfg.RefreshInterval) * time.Hour
		if err := scheduler.ScheduleCreatorRefresh(interval, client, postService, cfg.RefreshCreators, cfg.DefaultMaxPosts); err != nil {
			log.Fatal("Failed to schedule creator refresh:", err)
		}
		scheduler.Start()
		defer scheduler.Stop()

		log.Printf("Creator refresh scheduled every %s", interval)
	}

	log.Println("Starting Asynq worker...")
	log.Printf("   Concurrency: %d", cfg.WorkerConcurrency)
	log.Printf("   Redis: %s", cfg.RedisURL)

	// Start the server
	if err := server.Run(mux); err != nil {
		log.Fatal("Failed to start worker:", err)
	}
}
