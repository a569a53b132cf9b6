package routes

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/hibiken/asynq"

	"ltk-caption-platform/internal/config"
	"ltk-caption-platform/internal/queue"
	"ltk-caption-platform/internal/scraper"
	"ltk-caption-platform/internal/telemetry"
	"ltk-caption-platform/models"
	"ltk-caption-platform/services"
)

// SetupScrapeRoutes registers the scrape endpoints. queueClient may be nil,
// in which case async mode is rejected and every scrape runs inline.
func SetupScrapeRoutes(
	router *gin.Engine,
	cfg *config.Config,
	s *scraper.Scraper,
	posts *services.PostService,
	queueClient *asynq.Client,
	metrics *telemetry.Metrics,
) {
	api := router.Group("/api")

	api.POST("/scrape", func(c *gin.Context) {
		var req models.ScrapeRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error_code": "invalid_input",
				"message":    "Invalid request data",
				"details":    gin.H{"error": err.Error()},
			})
			return
		}

		maxPosts := req.MaxPosts
		if maxPosts <= 0 {
			maxPosts = cfg.DefaultMaxPosts
		}
		if maxPosts > cfg.MaxPostsPerScrape {
			maxPosts = cfg.MaxPostsPerScrape
		}

		if req.Async {
			if queueClient == nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{
					"error_code": "queue_unavailable",
					"message":    "Async scraping is not enabled",
				})
				return
			}

			jobID := uuid.New().String()
			job := models.ScrapeJob{
				JobID:    jobID,
				UserID:   req.UserID,
				URL:      req.URL,
				Category: req.Category,
				MaxPosts: maxPosts,
			}
			if err := posts.CreateJob(c.Request.Context(), job); err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{
					"error_code": "job_create_failed",
					"message":    "Failed to record scrape job",
				})
				return
			}

			task, err := queue.NewScrapeTask(jobID, req.UserID, req.URL, req.Category, maxPosts)
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{
					"error_code": "task_build_failed",
					"message":    "Failed to build scrape task",
				})
				return
			}
			if _, err := queueClient.Enqueue(task); err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{
					"error_code": "enqueue_failed",
					"message":    "Failed to enqueue scrape task",
				})
				return
			}

			c.JSON(http.StatusAccepted, models.ScrapeResponse{
				Success: true,
				Message: "Scrape job queued",
				JobID:   jobID,
			})
			return
		}

		start := time.Now()
		scraped := s.ScrapeURL(req.URL, req.Category, maxPosts)
		if metrics != nil {
			metrics.RecordScrape(time.Since(start).Seconds(), int64(len(scraped)), req.Category)
		}

		saved := make([]models.Post, 0, len(scraped))
		for _, post := range scraped {
			stored, err := posts.SavePost(c.Request.Context(), req.UserID, post)
			if err != nil {
				continue
			}
			saved = append(saved, *stored)
		}

		c.JSON(http.StatusOK, models.ScrapeResponse{
			Success:      true,
			Message:      fmt.Sprintf("Scraped %d posts", len(saved)),
			PostsScraped: len(saved),
			Posts:        saved,
		})
	})

	api.GET("/jobs/:id", func(c *gin.Context) {
		job, err := posts.GetJob(c.Request.Context(), c.Param("id"))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"error_code": "job_lookup_failed",
				"message":    "Failed to look up scrape job",
			})
			return
		}
		if job == nil {
			c.JSON(http.StatusNotFound, gin.H{
				"error_code": "job_not_found",
				"message":    "Scrape job not found",
			})
			return
		}

		c.JSON(http.StatusOK, job)
	})
}
