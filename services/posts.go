package services

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"ltk-caption-platform/models"
)

// PostService persists scraped posts and their generated captions.
type PostService struct {
	posts    *mongo.Collection
	captions *mongo.Collection
	jobs     *mongo.Collection
}

func NewPostService(db *mongo.Database) *PostService {
	return &PostService{
		posts:    db.Collection("ltk_posts"),
		captions: db.Collection("generated_captions"),
		jobs:     db.Collection("scrape_jobs"),
	}
}

// SavePost inserts one scraped post for a user, products embedded.
func (ps *PostService) SavePost(ctx context.Context, userID string, post models.Post) (*models.Post, error) {
	post.ID = primitive.NilObjectID
	post.UserID = userID

	res, err := ps.posts.InsertOne(ctx, post)
	if err != nil {
		return nil, fmt.Errorf("save post: %w", err)
	}
	post.ID = res.InsertedID.(primitive.ObjectID)
	return &post, nil
}

// ListPosts returns a user's posts newest first.
func (ps *PostService) ListPosts(ctx context.Context, userID string, limit, offset int64) ([]models.Post, error) {
	if limit <= 0 {
		limit = 50
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "scraped_at", Value: -1}}).
		SetLimit(limit).
		SetSkip(offset)

	cursor, err := ps.posts.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var posts []models.Post
	if err := cursor.All(ctx, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// GetPost fetches one post by id, products included. A malformed id reads as
// not found.
func (ps *PostService) GetPost(ctx context.Context, postID string) (*models.Post, error) {
	oid, err := primitive.ObjectIDFromHex(postID)
	if err != nil {
		return nil, nil
	}

	var post models.Post
	if err := ps.posts.FindOne(ctx, bson.M{"_id": oid}).Decode(&post); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &post, nil
}

// SaveCaption stores one generated caption keyed back to its post.
func (ps *PostService) SaveCaption(ctx context.Context, userID string, postID primitive.ObjectID, caption models.GeneratedCaption, promptType, tone string) (*models.CaptionRecord, error) {
	record := models.CaptionRecord{
		UserID:      userID,
		PostID:      postID,
		Caption:     caption.Caption,
		CaptionType: caption.CaptionType,
		PromptType:  promptType,
		Tone:        tone,
		Hashtags:    caption.Hashtags,
		WordCount:   caption.WordCount,
		CharCount:   caption.CharCount,
		CreatedAt:   time.Now().UTC(),
	}

	res, err := ps.captions.InsertOne(ctx, record)
	if err != nil {
		return nil, fmt.Errorf("save caption: %w", err)
	}
	record.ID = res.InsertedID.(primitive.ObjectID)
	return &record, nil
}

// GetPostCaptions lists a post's captions newest first.
func (ps *PostService) GetPostCaptions(ctx context.Context, postID string) ([]models.CaptionRecord, error) {
	oid, err := primitive.ObjectIDFromHex(postID)
	if err != nil {
		return []models.CaptionRecord{}, nil
	}

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := ps.captions.Find(ctx, bson.M{"post_id": oid}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var records []models.CaptionRecord
	if err := cursor.All(ctx, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// Stats aggregates a user's activity: post and caption totals plus distinct
// creator handles.
func (ps *PostService) Stats(ctx context.Context, userID string) (*models.UserStats, error) {
	totalPosts, err := ps.posts.CountDocuments(ctx, bson.M{"user_id": userID})
	if err != nil {
		return nil, err
	}

	totalCaptions, err := ps.captions.CountDocuments(ctx, bson.M{"user_id": userID})
	if err != nil {
		return nil, err
	}

	creators, err := ps.posts.Distinct(ctx, "creator_handle", bson.M{"user_id": userID})
	if err != nil {
		return nil, err
	}

	return &models.UserStats{
		TotalPosts:     totalPosts,
		TotalCaptions:  totalCaptions,
		UniqueCreators: len(creators),
	}, nil
}

// DeletePost removes a post scoped to its owner, along with its captions.
// Returns false when nothing matched.
func (ps *PostService) DeletePost(ctx context.Context, postID, userID string) (bool, error) {
	oid, err := primitive.ObjectIDFromHex(postID)
	if err != nil {
		return false, nil
	}

	res, err := ps.posts.DeleteOne(ctx, bson.M{"_id": oid, "user_id": userID})
	if err != nil {
		return false, err
	}
	if res.DeletedCount == 0 {
		return false, nil
	}

	if _, err := ps.captions.DeleteMany(ctx, bson.M{"post_id": oid, "user_id": userID}); err != nil {
		return true, fmt.Errorf("post deleted but captions cleanup failed: %w", err)
	}
	return true, nil
}

// SearchPosts matches a user's posts whose creator handle or caption contains
// the query, case-insensitively.
func (ps *PostService) SearchPosts(ctx context.Context, userID, query string, limit int64) ([]models.Post, error) {
	if limit <= 0 {
		limit = 20
	}

	filter := SearchFilter(userID, query)
	opts := options.Find().SetLimit(limit)

	cursor, err := ps.posts.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var posts []models.Post
	if err := cursor.All(ctx, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// SearchFilter builds the substring filter over creator_handle and
// original_caption. The query is quoted so regex metacharacters in user
// input match literally.
func SearchFilter(userID, query string) bson.M {
	pattern := primitive.Regex{Pattern: regexp.QuoteMeta(query), Options: "i"}
	return bson.M{
		"user_id": userID,
		"$or": []bson.M{
			{"creator_handle": pattern},
			{"original_caption": pattern},
		},
	}
}

// RecentCreatorPages returns the distinct creator profile URLs behind a
// user-agnostic slice of the most recently scraped posts. The worker refresh
// schedule re-enqueues these.
func (ps *PostService) RecentCreatorPages(ctx context.Context, limit int) ([]models.ScrapeJob, error) {
	if limit <= 0 {
		limit = 20
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "scraped_at", Value: -1}}).
		SetLimit(int64(limit * 5)).
		SetProjection(bson.M{"creator_profile_url": 1, "user_id": 1, "category": 1})

	cursor, err := ps.posts.Find(ctx, bson.M{"category": bson.M{"$in": bson.A{nil, ""}}}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var posts []models.Post
	if err := cursor.All(ctx, &posts); err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	var pages []models.ScrapeJob
	for _, p := range posts {
		if p.CreatorProfileURL == "" || seen[p.CreatorProfileURL] {
			continue
		}
		seen[p.CreatorProfileURL] = true
		pages = append(pages, models.ScrapeJob{URL: p.CreatorProfileURL, UserID: p.UserID})
		if len(pages) == limit {
			break
		}
	}
	return pages, nil
}

// Scrape job bookkeeping for async scrapes.

func (ps *PostService) CreateJob(ctx context.Context, job models.ScrapeJob) error {
	job.Status = models.ScrapeJobPending
	job.CreatedAt = time.Now().UTC()
	_, err := ps.jobs.InsertOne(ctx, job)
	return err
}

func (ps *PostService) UpdateJobStatus(ctx context.Context, jobID, status string, postsScraped int, jobErr string) error {
	set := bson.M{"status": status, "posts_scraped": postsScraped}
	if jobErr != "" {
		set["error"] = jobErr
	}
	if status == models.ScrapeJobCompleted || status == models.ScrapeJobFailed {
		now := time.Now().UTC()
		set["completed_at"] = now
	}
	_, err := ps.jobs.UpdateOne(ctx, bson.M{"job_id": jobID}, bson.M{"$set": set})
	return err
}

func (ps *PostService) GetJob(ctx context.Context, jobID string) (*models.ScrapeJob, error) {
	var job models.ScrapeJob
	if err := ps.jobs.FindOne(ctx, bson.M{"job_id": jobID}).Decode(&job); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &job, nil
}
