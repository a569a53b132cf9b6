package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Caption type tiers. Variant generation walks them in this order.
const (
	CaptionTypeShort   = "short"
	CaptionTypeLong    = "long"
	CaptionTypeAltText = "alt_text"
)

// GeneratedCaption is the output of a single generation call after
// post-processing. Hashtags keep first-seen order and are not deduplicated.
type GeneratedCaption struct {
	Caption     string   `json:"caption"`
	CaptionType string   `json:"caption_type"`
	Hashtags    []string `json:"hashtags"`
	WordCount   int      `json:"word_count"`
	CharCount   int      `json:"char_count"`
}

// CaptionRecord is a GeneratedCaption as stored in Mongo, keyed back to the
// post it was generated for and annotated with the generation settings.
type CaptionRecord struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	UserID      string             `bson:"user_id" json:"user_id"`
	PostID      primitive.ObjectID `bson:"post_id" json:"post_id"`
	Caption     string             `bson:"caption" json:"caption"`
	CaptionType string             `bson:"caption_type" json:"caption_type"`
	PromptType  string             `bson:"prompt_type" json:"prompt_type"`
	Tone        string             `bson:"tone" json:"tone"`
	Hashtags    []string           `bson:"hashtags" json:"hashtags"`
	WordCount   int                `bson:"word_count" json:"word_count"`
	CharCount   int                `bson:"char_count" json:"char_count"`
	CreatedAt   time.Time          `bson:"created_at" json:"created_at"`
}
