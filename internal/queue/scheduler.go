package queue

import (
	"context"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/google/uuid"
	"github.com/hibiken/asynq"

	"ltk-caption-platform/internal/logger"
	"ltk-caption-platform/models"
	"ltk-caption-platform/services"
)

// Scheduler manages periodic background jobs for the worker
type Scheduler struct {
	scheduler *gocron.Scheduler
	cancel    context.CancelFunc
	ctx       context.Context
}

// NewScheduler creates a new job scheduler
func NewScheduler() *Scheduler {
	ctx, cancel := context.WithCancel(context.Background())
	s := gocron.NewScheduler(time.UTC)
	s.TagsUnique()

	return &Scheduler{
		scheduler: s,
		ctx:       ctx,
		cancel:    cancel,
	}
}

// Start starts the scheduler
func (s *Scheduler) Start() {
	s.scheduler.StartAsync()
}

// Stop stops the scheduler
func (s *Scheduler) Stop() {
	s.scheduler.Stop()
	if s.cancel != nil {
		s.cancel()
	}
}

// ScheduleInterval schedules a job to run at regular intervals
func (s *Scheduler) ScheduleInterval(
	tag string,
	duration time.Duration,
	job func() error,
) error {
	_, err := s.scheduler.Every(duration).Tag(tag).Do(job)
	return err
}

// RemoveJob removes a scheduled job by tag
func (s *Scheduler) RemoveJob(tag string) error {
	return s.scheduler.RemoveByTag(tag)
}

// ScheduleCreatorRefresh re-scrapes recently seen creator pages on a fixed
// interval so saved posts stay current. Each refresh enqueues one scrape
// task per distinct creator profile URL.
func (s *Scheduler) ScheduleCreatorRefresh(
	interval time.Duration,
	client *asynq.Client,
	posts *services.PostService,
	maxPages, maxPosts int,
) error {
	return s.ScheduleInterval("creator-refresh", interval, func() error {
		ctx, cancel := context.WithTimeout(s.ctx, time.Minute)
		defer cancel()

		pages, err := posts.RecentCreatorPages(ctx, maxPages)
		if err != nil {
			logger.Error("creator refresh: failed to list creator pages", "error", err)
			return err
		}

		enqueued := 0
		for _, page := range pages {
			jobID := uuid.New().String()
			job := models.ScrapeJob{
				JobID:    jobID,
				UserID:   page.UserID,
				URL:      page.URL,
				MaxPosts: maxPosts,
			}
			if err := posts.CreateJob(ctx, job); err != nil {
				logger.Warn("creator refresh: failed to record job", "url", page.URL, "error", err)
				continue
			}

			task, err := NewScrapeTask(jobID, page.UserID, page.URL, "", maxPosts)
			if err != nil {
				logger.Warn("creator refresh: failed to build task", "url", page.URL, "error", err)
				continue
			}
			if _, err := client.Enqueue(task); err != nil {
				logger.Warn("creator refresh: failed to enqueue", "url", page.URL, "error", err)
				continue
			}
			enqueued++
		}

		logger.Info("creator refresh cycle finished", "pages", len(pages), "enqueued", enqueued)
		return nil
	})
}
