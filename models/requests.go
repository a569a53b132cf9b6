package models

// ScrapeRequest is the payload for POST /api/scrape.
type ScrapeRequest struct {
	URL      string `json:"url" binding:"required"`
	MaxPosts int    `json:"max_posts" binding:"omitempty,min=1,max=50"`
	Category string `json:"category,omitempty"`
	UserID   string `json:"user_id" binding:"required"`
	Async    bool   `json:"async,omitempty"`
}

// ScrapeResponse reports a completed synchronous scrape, or the queued job in
// async mode.
type ScrapeResponse struct {
	Success      bool   `json:"success"`
	Message      string `json:"message"`
	PostsScraped int    `json:"posts_scraped"`
	Posts        []Post `json:"posts,omitempty"`
	JobID        string `json:"job_id,omitempty"`
	Error        string `json:"error,omitempty"`
}

// CaptionRequest is the payload for POST /api/generate-caption.
type CaptionRequest struct {
	PostID     string `json:"post_id" binding:"required"`
	UserID     string `json:"user_id" binding:"required"`
	PromptType string `json:"prompt_type,omitempty"`
	Tone       string `json:"tone,omitempty"`
	MaxLength  int    `json:"max_length,omitempty" binding:"omitempty,min=50,max=2200"`
}

// CaptionResponse wraps one generated caption.
type CaptionResponse struct {
	Success bool              `json:"success"`
	Message string            `json:"message"`
	Caption *GeneratedCaption `json:"caption,omitempty"`
	Error   string            `json:"error,omitempty"`
}

// VariantsRequest is the payload for POST /api/generate-variants.
type VariantsRequest struct {
	PostID     string `json:"post_id" binding:"required"`
	UserID     string `json:"user_id" binding:"required"`
	PromptType string `json:"prompt_type,omitempty"`
	Tone       string `json:"tone,omitempty"`
	Count      int    `json:"count,omitempty" binding:"omitempty,min=1,max=10"`
}

// HashtagsRequest is the payload for POST /api/generate-hashtags.
type HashtagsRequest struct {
	PostID      string `json:"post_id" binding:"required"`
	UserID      string `json:"user_id" binding:"required"`
	Category    string `json:"category,omitempty"`
	MaxHashtags int    `json:"max_hashtags,omitempty" binding:"omitempty,min=1,max=30"`
}

// UserStats summarizes a user's scraping and generation activity.
type UserStats struct {
	TotalPosts     int64 `json:"total_posts"`
	TotalCaptions  int64 `json:"total_captions"`
	UniqueCreators int   `json:"unique_creators"`
}
