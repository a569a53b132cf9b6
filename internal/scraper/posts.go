package scraper

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"ltk-caption-platform/internal/logger"
	"ltk-caption-platform/models"
)

// creatorURLPattern pulls a creator handle out of the profile URL when the
// page markup gives us nothing.
var creatorURLPattern = regexp.MustCompile(`ltk\.com/([^/]+)`)

type creatorInfo struct {
	handle     string
	profileURL string
}

// extractCreatorInfo resolves the creator of a profile page: the handle
// cascade first, then a path segment of the page URL, then "unknown".
func extractCreatorInfo(page *ReadyPage) creatorInfo {
	info := creatorInfo{handle: "unknown", profileURL: page.URL}

	if handle, ok := creatorHandleCascade.Resolve(page.Doc.Selection); ok {
		info.handle = strings.TrimPrefix(handle, "@")
		return info
	}
	if m := creatorURLPattern.FindStringSubmatch(page.URL); m != nil {
		info.handle = m[1]
	}
	return info
}

// extractPosts walks the first limit post containers, building one candidate
// post per container via extract. The bound is on containers examined, not
// posts produced, so discards and failures shrink the result rather than
// pulling in later containers. Failed containers are logged and skipped;
// discarded candidates (extract returns nil, nil) are silent.
func extractPosts(page *ReadyPage, limit int, extract func(*goquery.Selection) (*models.Post, error)) []models.Post {
	posts := []models.Post{}

	page.Doc.Find(postContainerSelector).EachWithBreak(func(i int, container *goquery.Selection) bool {
		if limit > 0 && i >= limit {
			return false
		}
		post, err := extract(container)
		if err != nil {
			logger.Warn("skipping post container", "index", i, "url", page.URL, "error", err)
			return true
		}
		if post != nil {
			posts = append(posts, *post)
		}
		return true
	})

	return posts
}

// extractPost builds a candidate post from one container on a creator page.
// Returns (nil, nil) when the discard invariant rejects it: no caption and no
// products.
func extractPost(page *ReadyPage, container *goquery.Selection, creator creatorInfo) (*models.Post, error) {
	postURL, err := extractPostURL(container)
	if err != nil {
		return nil, err
	}
	if postURL == "" {
		postURL = page.URL
	}

	caption, _ := captionCascade.Resolve(container)

	products := extractProducts(container)
	if caption == "" && len(products) == 0 {
		return nil, nil
	}

	return &models.Post{
		CreatorHandle:     creator.handle,
		CreatorProfileURL: creator.profileURL,
		PostURL:           postURL,
		OriginalCaption:   caption,
		Products:          products,
		ScrapedAt:         time.Now().UTC(),
	}, nil
}

// extractCategoryPost is the category-page variant: the category tag comes
// from the caller and the creator is read per card. Cards without a
// resolvable creator still fall back to "unknown" and an origin-joined
// profile URL.
func extractCategoryPost(page *ReadyPage, container *goquery.Selection, category string) (*models.Post, error) {
	handle := "unknown"
	if h, ok := categoryCreatorCascade.Resolve(container); ok {
		handle = strings.TrimPrefix(h, "@")
	}

	postURL, err := extractPostURL(container)
	if err != nil {
		return nil, err
	}
	if postURL == "" {
		postURL = page.URL
	}

	caption, _ := captionCascade.Resolve(container)

	products := extractProducts(container)
	if caption == "" && len(products) == 0 {
		return nil, nil
	}

	return &models.Post{
		CreatorHandle:     handle,
		CreatorProfileURL: platformOrigin + "/" + handle,
		PostURL:           postURL,
		OriginalCaption:   caption,
		Products:          products,
		Category:          category,
		ScrapedAt:         time.Now().UTC(),
	}, nil
}

func extractPostURL(container *goquery.Selection) (string, error) {
	href, ok := postLinkCascade.Resolve(container)
	if !ok {
		return "", nil
	}
	resolved := resolveHref(href)
	if resolved == "" {
		return "", fmt.Errorf("%w: unresolvable post href %q", ErrElementExtraction, href)
	}
	return resolved, nil
}
