package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ltk-caption-platform/internal/captions"
	"ltk-caption-platform/internal/telemetry"
	"ltk-caption-platform/models"
	"ltk-caption-platform/services"
)

// SetupCaptionRoutes registers the caption generation endpoints.
func SetupCaptionRoutes(
	router *gin.Engine,
	gen *captions.Generator,
	posts *services.PostService,
	metrics *telemetry.Metrics,
) {
	api := router.Group("/api")

	api.POST("/generate-caption", func(c *gin.Context) {
		var req models.CaptionRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error_code": "invalid_input",
				"message":    "Invalid request data",
				"details":    gin.H{"error": err.Error()},
			})
			return
		}

		post := loadUserPost(c, posts, req.PostID, req.UserID)
		if post == nil {
			return
		}

		promptType := captions.ParsePromptType(req.PromptType)
		tone := req.Tone
		if tone == "" {
			tone = captions.DefaultTone
		}
		maxLength := req.MaxLength
		if maxLength <= 0 {
			maxLength = captions.DefaultMaxLength
		}

		caption, err := gen.GenerateCaption(c.Request.Context(), *post, promptType, tone, maxLength, models.CaptionTypeShort)
		if err != nil {
			c.JSON(http.StatusBadGateway, models.CaptionResponse{
				Success: false,
				Message: "Caption generation failed",
				Error:   err.Error(),
			})
			return
		}

		if _, err := posts.SaveCaption(c.Request.Context(), req.UserID, post.ID, *caption, string(promptType), tone); err != nil {
			c.JSON(http.StatusInternalServerError, models.CaptionResponse{
				Success: false,
				Message: "Failed to save caption",
				Error:   err.Error(),
			})
			return
		}
		if metrics != nil {
			metrics.RecordCaptionGenerated(string(promptType), caption.CaptionType)
		}

		c.JSON(http.StatusOK, models.CaptionResponse{
			Success: true,
			Message: "Caption generated",
			Caption: caption,
		})
	})

	api.POST("/generate-variants", func(c *gin.Context) {
		var req models.VariantsRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error_code": "invalid_input",
				"message":    "Invalid request data",
				"details":    gin.H{"error": err.Error()},
			})
			return
		}

		post := loadUserPost(c, posts, req.PostID, req.UserID)
		if post == nil {
			return
		}

		promptType := captions.ParsePromptType(req.PromptType)
		tone := req.Tone
		if tone == "" {
			tone = captions.DefaultTone
		}
		count := req.Count
		if count <= 0 {
			count = 3
		}

		variants := gen.GenerateVariants(c.Request.Context(), *post, promptType, tone, count)
		for _, v := range variants {
			if _, err := posts.SaveCaption(c.Request.Context(), req.UserID, post.ID, v, string(promptType), tone); err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{
					"error_code": "save_failed",
					"message":    "Failed to save caption variant",
				})
				return
			}
			if metrics != nil {
				metrics.RecordCaptionGenerated(string(promptType), v.CaptionType)
			}
		}

		c.JSON(http.StatusOK, gin.H{
			"success":  true,
			"message":  "Variants generated",
			"variants": variants,
			"count":    len(variants),
		})
	})

	api.POST("/generate-hashtags", func(c *gin.Context) {
		var req models.HashtagsRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error_code": "invalid_input",
				"message":    "Invalid request data",
				"details":    gin.H{"error": err.Error()},
			})
			return
		}

		post := loadUserPost(c, posts, req.PostID, req.UserID)
		if post == nil {
			return
		}

		maxHashtags := req.MaxHashtags
		if maxHashtags <= 0 {
			maxHashtags = 10
		}

		hashtags, err := gen.GenerateHashtags(c.Request.Context(), *post, req.Category, maxHashtags)
		if err != nil {
			c.JSON(http.StatusBadGateway, gin.H{
				"error_code": "generation_failed",
				"message":    "Hashtag generation failed",
				"details":    gin.H{"error": err.Error()},
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success":  true,
			"hashtags": hashtags,
			"count":    len(hashtags),
		})
	})
}

// loadUserPost fetches a post and enforces ownership. Writes the error
// response and returns nil if the post cannot be served.
func loadUserPost(c *gin.Context, posts *services.PostService, postID, userID string) *models.Post {
	post, err := posts.GetPost(c.Request.Context(), postID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error_code": "post_lookup_failed",
			"message":    "Failed to look up post",
		})
		return nil
	}
	if post == nil || post.UserID != userID {
		c.JSON(http.StatusNotFound, gin.H{
			"error_code": "post_not_found",
			"message":    "Post not found",
		})
		return nil
	}
	return post
}
