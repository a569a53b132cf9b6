package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"

	"ltk-caption-platform/internal/logger"
	"ltk-caption-platform/internal/scraper"
	"ltk-caption-platform/models"
	"ltk-caption-platform/services"
)

const (
	TaskScrapePage = "scrape:page"
)

type ScrapePagePayload struct {
	JobID    string `json:"job_id"`
	UserID   string `json:"user_id"`
	URL      string `json:"url"`
	Category string `json:"category"`
	MaxPosts int    `json:"max_posts"`
}

// NewScrapeTask builds an asynq task for a page scrape. Scrapes are not
// retried: a page that failed to render once is reported back to the
// caller rather than hammered again.
func NewScrapeTask(jobID, userID, url, category string, maxPosts int) (*asynq.Task, error) {
	payload, err := json.Marshal(ScrapePagePayload{
		JobID:    jobID,
		UserID:   userID,
		URL:      url,
		Category: category,
		MaxPosts: maxPosts,
	})
	if err != nil {
		return nil, err
	}

	return asynq.NewTask(
		TaskScrapePage,
		payload,
		asynq.MaxRetry(0),
		asynq.Timeout(5*time.Minute),
		asynq.Queue("default"),
	), nil
}

// pageScraper is the scrape boundary the processor drives.
type pageScraper interface {
	ScrapeURL(url, category string, maxPosts int) []models.Post
}

// postStore is the persistence the processor needs: saving posts and job
// status bookkeeping.
type postStore interface {
	SavePost(ctx context.Context, userID string, post models.Post) (*models.Post, error)
	UpdateJobStatus(ctx context.Context, jobID, status string, postsScraped int, jobErr string) error
}

// TaskProcessor executes queued scrape jobs against the headless browser.
type TaskProcessor struct {
	scraper pageScraper
	posts   postStore
}

func NewTaskProcessor(s *scraper.Scraper, posts *services.PostService) *TaskProcessor {
	return &TaskProcessor{
		scraper: s,
		posts:   posts,
	}
}

// ProcessScrape runs one queued scrape. A page that degraded to an empty
// extraction completes with zero posts; the job only fails when scraped
// posts exist and none could be persisted.
func (p *TaskProcessor) ProcessScrape(ctx context.Context, t *asynq.Task) error {
	var payload ScrapePagePayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("unmarshal failed: %w", asynq.SkipRetry)
	}

	logger.Info("Processing scrape job",
		"job_id", payload.JobID,
		"url", payload.URL,
		"category", payload.Category)

	if err := p.posts.UpdateJobStatus(ctx, payload.JobID, models.ScrapeJobRunning, 0, ""); err != nil {
		logger.Warn("Failed to mark job running", "job_id", payload.JobID, "error", err)
	}

	posts := p.scraper.ScrapeURL(payload.URL, payload.Category, payload.MaxPosts)

	saved := 0
	var lastSaveErr error
	for _, post := range posts {
		if _, err := p.posts.SavePost(ctx, payload.UserID, post); err != nil {
			logger.Warn("Failed to save scraped post",
				"job_id", payload.JobID,
				"post_url", post.PostURL,
				"error", err)
			lastSaveErr = err
			continue
		}
		saved++
	}

	if len(posts) > 0 && saved == 0 {
		failErr := fmt.Errorf("no posts persisted: %w", lastSaveErr)
		if err := p.posts.UpdateJobStatus(ctx, payload.JobID, models.ScrapeJobFailed, 0, failErr.Error()); err != nil {
			logger.Warn("Failed to mark job failed", "job_id", payload.JobID, "error", err)
		}
		return failErr
	}

	if err := p.posts.UpdateJobStatus(ctx, payload.JobID, models.ScrapeJobCompleted, saved, ""); err != nil {
		return fmt.Errorf("failed to mark job completed: %w", err)
	}

	logger.Info("Scrape job completed", "job_id", payload.JobID, "posts_saved", saved)
	return nil
}
