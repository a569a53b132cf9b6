package scraper

import (
	"context"

	"github.com/PuerkitoBio/goquery"
	"github.com/chromedp/chromedp"

	"ltk-caption-platform/internal/logger"
	"ltk-caption-platform/models"
)

const browserUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/131.0.0.0 Safari/537.36"

// DefaultMaxPosts caps a scrape when the caller passes no limit.
const DefaultMaxPosts = 10

// Scraper owns one headless browser for its lifetime. Every scrape call runs
// in its own tab, processed strictly sequentially; the browser is released by
// Close on every exit path.
type Scraper struct {
	allocCtx    context.Context
	allocCancel context.CancelFunc
	nav         *Navigator
}

// New launches the browser allocator. Call Close when done.
func New(headless bool) *Scraper {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", headless),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.UserAgent(browserUserAgent),
	)
	allocCtx, cancel := chromedp.NewExecAllocator(context.Background(), opts...)

	return &Scraper{
		allocCtx:    allocCtx,
		allocCancel: cancel,
		nav:         NewNavigator(),
	}
}

// Close releases the browser.
func (s *Scraper) Close() {
	s.allocCancel()
}

// ScrapeCreatorPage scrapes up to maxPosts posts from a creator profile page.
// Best-effort: page-level failures (including navigation timeouts) are logged
// and degrade to an empty slice rather than an error.
func (s *Scraper) ScrapeCreatorPage(url string, maxPosts int) []models.Post {
	if maxPosts <= 0 {
		maxPosts = DefaultMaxPosts
	}

	page, release, err := s.openPage(url)
	if err != nil {
		logger.Warn("creator page scrape failed", "url", url, "error", err)
		return []models.Post{}
	}
	defer release()

	creator := extractCreatorInfo(page)

	return extractPosts(page, maxPosts, func(container *goquery.Selection) (*models.Post, error) {
		return extractPost(page, container, creator)
	})
}

// ScrapeCategoryPage scrapes a category listing page. The category tag is
// supplied by the caller and stamped onto every extracted post.
func (s *Scraper) ScrapeCategoryPage(url, category string, maxPosts int) []models.Post {
	if maxPosts <= 0 {
		maxPosts = DefaultMaxPosts
	}

	page, release, err := s.openPage(url)
	if err != nil {
		logger.Warn("category page scrape failed", "url", url, "category", category, "error", err)
		return []models.Post{}
	}
	defer release()

	return extractPosts(page, maxPosts, func(container *goquery.Selection) (*models.Post, error) {
		return extractCategoryPost(page, container, category)
	})
}

// ScrapeURL dispatches on whether a category tag is present, mirroring the
// API surface: creator pages have no category, listing pages do.
func (s *Scraper) ScrapeURL(url, category string, maxPosts int) []models.Post {
	if category != "" {
		return s.ScrapeCategoryPage(url, category, maxPosts)
	}
	return s.ScrapeCreatorPage(url, maxPosts)
}

// openPage acquires a tab, prepares the target page and hands back a release
// func the caller must defer.
func (s *Scraper) openPage(url string) (*ReadyPage, func(), error) {
	tabCtx, cancel := chromedp.NewContext(s.allocCtx)
	page, err := s.nav.Prepare(tabCtx, url)
	if err != nil {
		cancel()
		return nil, nil, err
	}
	return page, cancel, nil
}
