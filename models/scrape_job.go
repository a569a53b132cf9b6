package models

import "time"

// Scrape job lifecycle states.
const (
	ScrapeJobPending   = "pending"
	ScrapeJobRunning   = "running"
	ScrapeJobCompleted = "completed"
	ScrapeJobFailed    = "failed"
)

// ScrapeJob tracks one queued background scrape.
type ScrapeJob struct {
	JobID        string     `bson:"job_id" json:"job_id"`
	UserID       string     `bson:"user_id" json:"user_id"`
	URL          string     `bson:"url" json:"url"`
	Category     string     `bson:"category,omitempty" json:"category,omitempty"`
	MaxPosts     int        `bson:"max_posts" json:"max_posts"`
	Status       string     `bson:"status" json:"status"`
	PostsScraped int        `bson:"posts_scraped" json:"posts_scraped"`
	Error        string     `bson:"error,omitempty" json:"error,omitempty"`
	CreatedAt    time.Time  `bson:"created_at" json:"created_at"`
	CompletedAt  *time.Time `bson:"completed_at,omitempty" json:"completed_at,omitempty"`
}
