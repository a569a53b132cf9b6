package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Post represents one scraped LTK post: a caption plus zero or more linked
// products. Posts are immutable once built by the extraction pipeline; the
// persistence fields (ID, UserID) are filled in when a post is saved.
type Post struct {
	ID                primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	UserID            string             `bson:"user_id,omitempty" json:"user_id,omitempty"`
	CreatorHandle     string             `bson:"creator_handle" json:"creator_handle"`
	CreatorProfileURL string             `bson:"creator_profile_url" json:"creator_profile_url"`
	PostURL           string             `bson:"post_url" json:"post_url"`
	OriginalCaption   string             `bson:"original_caption" json:"original_caption"`
	Products          []Product          `bson:"products" json:"products"`
	Category          string             `bson:"category,omitempty" json:"category,omitempty"`
	ScrapedAt         time.Time          `bson:"scraped_at" json:"scraped_at"`
}

// Product is a purchasable item referenced within a post.
type Product struct {
	Title      string `bson:"title" json:"title"`
	Merchant   string `bson:"merchant" json:"merchant"`
	ProductURL string `bson:"product_url" json:"product_url"`
	ImageURL   string `bson:"image_url,omitempty" json:"image_url,omitempty"`
}
