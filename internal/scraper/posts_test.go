package scraper

import (
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"

	"ltk-caption-platform/models"
)

func pageFromHTML(t *testing.T, url, html string) *ReadyPage {
	t.Helper()
	return &ReadyPage{URL: url, Doc: docFromHTML(t, html)}
}

const creatorPageHTML = `
<html><body>
  <h1 class="profile-username">@stylequeen</h1>
  <div data-testid="post-card">
    <a href="/post/111">open</a>
    <p data-testid="caption">Fall favorites are here</p>
    <div data-testid="product-card">
      <span data-testid="product-title">Knit Sweater</span>
      <span data-testid="merchant">Nordstrom</span>
      <a href="/product/9">shop</a>
      <img src="https://cdn.example.com/sweater.jpg">
    </div>
  </div>
  <div data-testid="post-card">
    <a href="/post/222">open</a>
  </div>
  <div data-testid="post-card">
    <a href="https://www.shopltk.com/post/333">open</a>
    <p class="caption">Caption only, no products</p>
  </div>
</body></html>`

func TestExtractCreatorInfoFromCascade(t *testing.T) {
	page := pageFromHTML(t, "https://www.shopltk.com/stylequeen", creatorPageHTML)

	info := extractCreatorInfo(page)
	require.Equal(t, "stylequeen", info.handle)
	require.Equal(t, page.URL, info.profileURL)
}

func TestExtractCreatorInfoURLFallback(t *testing.T) {
	page := pageFromHTML(t, "https://www.shopltk.com/trendsetter",
		`<html><body><div data-testid="post-card"></div></body></html>`)

	info := extractCreatorInfo(page)
	require.Equal(t, "trendsetter", info.handle)
}

func TestExtractCreatorInfoUnknownFallback(t *testing.T) {
	page := pageFromHTML(t, "https://example.com/feed",
		`<html><body><div data-testid="post-card"></div></body></html>`)

	info := extractCreatorInfo(page)
	require.Equal(t, "unknown", info.handle)
	require.Equal(t, "https://example.com/feed", info.profileURL)
}

func TestExtractPostsCreatorPage(t *testing.T) {
	page := pageFromHTML(t, "https://www.shopltk.com/stylequeen", creatorPageHTML)
	creator := extractCreatorInfo(page)

	posts := extractPosts(page, 10, func(container *goquery.Selection) (*models.Post, error) {
		return extractPost(page, container, creator)
	})

	// The middle card has no caption and no products and is discarded.
	require.Len(t, posts, 2)

	first := posts[0]
	require.Equal(t, "stylequeen", first.CreatorHandle)
	require.Equal(t, platformOrigin+"/post/111", first.PostURL)
	require.Equal(t, "Fall favorites are here", first.OriginalCaption)
	require.Len(t, first.Products, 1)
	require.Equal(t, "Knit Sweater", first.Products[0].Title)
	require.Equal(t, "Nordstrom", first.Products[0].Merchant)
	require.False(t, first.ScrapedAt.IsZero())

	second := posts[1]
	require.Equal(t, "https://www.shopltk.com/post/333", second.PostURL)
	require.Equal(t, "Caption only, no products", second.OriginalCaption)
	require.Empty(t, second.Products)
}

func TestExtractPostsHonorsLimit(t *testing.T) {
	page := pageFromHTML(t, "https://www.shopltk.com/stylequeen", creatorPageHTML)
	creator := extractCreatorInfo(page)

	posts := extractPosts(page, 1, func(container *goquery.Selection) (*models.Post, error) {
		return extractPost(page, container, creator)
	})
	require.Len(t, posts, 1)
}

func TestExtractPostsLimitBoundsContainersExamined(t *testing.T) {
	// The first container is discarded (no caption, no products); the limit
	// still applies to containers, so the valid second card is never reached.
	page := pageFromHTML(t, "https://www.shopltk.com/stylequeen", `
<html><body>
  <div data-testid="post-card">
    <a href="/post/1">open</a>
  </div>
  <div data-testid="post-card">
    <a href="/post/2">open</a>
    <p data-testid="caption">second container caption</p>
  </div>
</body></html>`)
	creator := extractCreatorInfo(page)

	posts := extractPosts(page, 1, func(container *goquery.Selection) (*models.Post, error) {
		return extractPost(page, container, creator)
	})
	require.Len(t, posts, 0)

	// Without the limit both containers are examined and one survives.
	posts = extractPosts(page, 0, func(container *goquery.Selection) (*models.Post, error) {
		return extractPost(page, container, creator)
	})
	require.Len(t, posts, 1)
	require.Equal(t, "second container caption", posts[0].OriginalCaption)
}

func TestExtractPostURLFallsBackToPageURL(t *testing.T) {
	page := pageFromHTML(t, "https://www.shopltk.com/stylequeen", `
<html><body>
  <div data-testid="post-card">
    <p data-testid="caption">No anchor on this card</p>
  </div>
</body></html>`)
	creator := extractCreatorInfo(page)

	posts := extractPosts(page, 0, func(container *goquery.Selection) (*models.Post, error) {
		return extractPost(page, container, creator)
	})
	require.Len(t, posts, 1)
	require.Equal(t, page.URL, posts[0].PostURL)
}

func TestExtractCategoryPost(t *testing.T) {
	page := pageFromHTML(t, "https://www.shopltk.com/explore/home-decor", `
<html><body>
  <article>
    <span class="creator-name">@cozyhomes</span>
    <a href="/post/777">open</a>
    <p class="caption">Autumn refresh picks</p>
  </article>
  <article>
    <a href="/post/888">open</a>
    <p class="caption">No creator on this card</p>
  </article>
</body></html>`)

	posts := extractPosts(page, 10, func(container *goquery.Selection) (*models.Post, error) {
		return extractCategoryPost(page, container, "home-decor")
	})
	require.Len(t, posts, 2)

	first := posts[0]
	require.Equal(t, "cozyhomes", first.CreatorHandle)
	require.Equal(t, platformOrigin+"/cozyhomes", first.CreatorProfileURL)
	require.Equal(t, "home-decor", first.Category)
	require.Equal(t, platformOrigin+"/post/777", first.PostURL)

	second := posts[1]
	require.Equal(t, "unknown", second.CreatorHandle)
	require.Equal(t, platformOrigin+"/unknown", second.CreatorProfileURL)
	require.Equal(t, "home-decor", second.Category)
}

func TestExtractPostDiscardsEmptyCandidate(t *testing.T) {
	page := pageFromHTML(t, "https://www.shopltk.com/stylequeen", `
<html><body>
  <div data-testid="post-card"><a href="/post/1">open</a></div>
</body></html>`)
	creator := extractCreatorInfo(page)

	container := page.Doc.Find(`[data-testid="post-card"]`).First()
	post, err := extractPost(page, container, creator)
	require.NoError(t, err)
	require.Nil(t, post)
}
