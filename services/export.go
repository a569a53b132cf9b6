package services

import (
	"context"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"

	"ltk-caption-platform/internal/logger"
)

// ExportService renders a user's scraped posts as an Excel workbook: one
// sheet of posts, one sheet of their products.
type ExportService struct {
	posts *PostService
}

func NewExportService(posts *PostService) *ExportService {
	return &ExportService{posts: posts}
}

// maxExportPosts bounds a single export.
const maxExportPosts = 1000

// BuildWorkbook fetches the user's posts and lays them out into a workbook.
func (es *ExportService) BuildWorkbook(ctx context.Context, userID string) (*excelize.File, int, error) {
	posts, err := es.posts.ListPosts(ctx, userID, maxExportPosts, 0)
	if err != nil {
		return nil, 0, fmt.Errorf("export: load posts: %w", err)
	}

	f := excelize.NewFile()

	postsSheet := "Posts"
	index, err := f.NewSheet(postsSheet)
	if err != nil {
		return nil, 0, fmt.Errorf("export: create sheet: %w", err)
	}
	f.SetActiveSheet(index)

	postHeaders := []string{"ID", "Creator", "Profile URL", "Post URL", "Caption", "Category", "Products", "Scraped At"}
	for i, header := range postHeaders {
		cell := fmt.Sprintf("%c1", 'A'+i)
		f.SetCellValue(postsSheet, cell, header)
	}

	productsSheet := "Products"
	if _, err := f.NewSheet(productsSheet); err != nil {
		return nil, 0, fmt.Errorf("export: create sheet: %w", err)
	}
	productHeaders := []string{"Post ID", "Title", "Merchant", "Product URL", "Image URL"}
	for i, header := range productHeaders {
		cell := fmt.Sprintf("%c1", 'A'+i)
		f.SetCellValue(productsSheet, cell, header)
	}

	productRow := 2
	for rowIdx, post := range posts {
		row := rowIdx + 2 // Start from row 2 (after headers)

		f.SetCellValue(postsSheet, fmt.Sprintf("A%d", row), post.ID.Hex())
		f.SetCellValue(postsSheet, fmt.Sprintf("B%d", row), post.CreatorHandle)
		f.SetCellValue(postsSheet, fmt.Sprintf("C%d", row), post.CreatorProfileURL)
		f.SetCellValue(postsSheet, fmt.Sprintf("D%d", row), post.PostURL)
		f.SetCellValue(postsSheet, fmt.Sprintf("E%d", row), post.OriginalCaption)
		f.SetCellValue(postsSheet, fmt.Sprintf("F%d", row), post.Category)
		f.SetCellValue(postsSheet, fmt.Sprintf("G%d", row), len(post.Products))
		f.SetCellValue(postsSheet, fmt.Sprintf("H%d", row), post.ScrapedAt.Format("2006-01-02 15:04:05"))

		for _, product := range post.Products {
			f.SetCellValue(productsSheet, fmt.Sprintf("A%d", productRow), post.ID.Hex())
			f.SetCellValue(productsSheet, fmt.Sprintf("B%d", productRow), product.Title)
			f.SetCellValue(productsSheet, fmt.Sprintf("C%d", productRow), product.Merchant)
			f.SetCellValue(productsSheet, fmt.Sprintf("D%d", productRow), product.ProductURL)
			f.SetCellValue(productsSheet, fmt.Sprintf("E%d", productRow), product.ImageURL)
			productRow++
		}
	}

	for i := range postHeaders {
		col := fmt.Sprintf("%c:%c", 'A'+i, 'A'+i)
		f.SetColWidth(postsSheet, col, col, 20)
	}

	// Drop the default sheet excelize creates.
	f.DeleteSheet("Sheet1")

	return f, len(posts), nil
}

// StreamExport writes the workbook straight into the HTTP response.
func (es *ExportService) StreamExport(c *gin.Context, userID string) error {
	f, count, err := es.BuildWorkbook(c.Request.Context(), userID)
	if err != nil {
		return err
	}
	defer func() {
		if err := f.Close(); err != nil {
			logger.Warn("closing export workbook", "error", err)
		}
	}()

	filename := fmt.Sprintf("ltk_posts_%s.xlsx", time.Now().Format("20060102_150405"))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Header("X-Record-Count", fmt.Sprintf("%d", count))

	return f.Write(c.Writer)
}
