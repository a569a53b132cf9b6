package routes

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"ltk-caption-platform/models"
	"ltk-caption-platform/services"
)

// SetupPostRoutes registers the saved-posts endpoints.
func SetupPostRoutes(
	router *gin.Engine,
	posts *services.PostService,
	export *services.ExportService,
) {
	api := router.Group("/api")

	api.GET("/posts", func(c *gin.Context) {
		userID := c.Query("user_id")
		if userID == "" {
			c.JSON(http.StatusBadRequest, gin.H{
				"error_code": "missing_user_id",
				"message":    "user_id query parameter required",
			})
			return
		}

		limit, _ := strconv.ParseInt(c.DefaultQuery("limit", "50"), 10, 64)
		offset, _ := strconv.ParseInt(c.DefaultQuery("offset", "0"), 10, 64)

		var (
			result []models.Post
			err    error
		)
		if query := c.Query("q"); query != "" {
			result, err = posts.SearchPosts(c.Request.Context(), userID, query, limit)
		} else {
			result, err = posts.ListPosts(c.Request.Context(), userID, limit, offset)
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"error_code": "list_failed",
				"message":    "Failed to list posts",
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"posts":   result,
			"count":   len(result),
		})
	})

	api.GET("/posts/:id", func(c *gin.Context) {
		post := loadUserPost(c, posts, c.Param("id"), c.Query("user_id"))
		if post == nil {
			return
		}

		c.JSON(http.StatusOK, post)
	})

	api.GET("/posts/:id/captions", func(c *gin.Context) {
		post := loadUserPost(c, posts, c.Param("id"), c.Query("user_id"))
		if post == nil {
			return
		}

		records, err := posts.GetPostCaptions(c.Request.Context(), c.Param("id"))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"error_code": "captions_lookup_failed",
				"message":    "Failed to list captions",
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success":  true,
			"captions": records,
			"count":    len(records),
		})
	})

	api.DELETE("/posts/:id", func(c *gin.Context) {
		userID := c.Query("user_id")
		if userID == "" {
			c.JSON(http.StatusBadRequest, gin.H{
				"error_code": "missing_user_id",
				"message":    "user_id query parameter required",
			})
			return
		}

		deleted, err := posts.DeletePost(c.Request.Context(), c.Param("id"), userID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"error_code": "delete_failed",
				"message":    "Failed to delete post",
			})
			return
		}
		if !deleted {
			c.JSON(http.StatusNotFound, gin.H{
				"error_code": "post_not_found",
				"message":    "Post not found",
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Post deleted"})
	})

	api.GET("/stats", func(c *gin.Context) {
		userID := c.Query("user_id")
		if userID == "" {
			c.JSON(http.StatusBadRequest, gin.H{
				"error_code": "missing_user_id",
				"message":    "user_id query parameter required",
			})
			return
		}

		stats, err := posts.Stats(c.Request.Context(), userID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"error_code": "stats_failed",
				"message":    "Failed to compute stats",
			})
			return
		}

		c.JSON(http.StatusOK, stats)
	})

	api.GET("/export", func(c *gin.Context) {
		userID := c.Query("user_id")
		if userID == "" {
			c.JSON(http.StatusBadRequest, gin.H{
				"error_code": "missing_user_id",
				"message":    "user_id query parameter required",
			})
			return
		}

		if err := export.StreamExport(c, userID); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"error_code": "export_failed",
				"message":    "Failed to export posts",
			})
		}
	})
}
