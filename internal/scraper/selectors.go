package scraper

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Locator is one candidate CSS query. When Attr is empty the element's text
// content is extracted, otherwise the named attribute.
type Locator struct {
	Query string
	Attr  string
}

// Cascade is an ordered list of locators tried against a scope until one
// yields a non-empty value. Site redesigns are absorbed by editing the
// cascade lists below, never the extraction logic.
type Cascade []Locator

// Resolve returns the first non-empty trimmed value produced by the cascade,
// trying locators strictly in order. The second return is false when no
// locator matched.
func (c Cascade) Resolve(scope *goquery.Selection) (string, bool) {
	for _, loc := range c {
		sel := scope.Find(loc.Query).First()
		if sel.Length() == 0 {
			continue
		}
		var val string
		if loc.Attr == "" {
			val = sel.Text()
		} else {
			val, _ = sel.Attr(loc.Attr)
		}
		val = strings.TrimSpace(val)
		if val != "" {
			return val, true
		}
	}
	return "", false
}

// platformOrigin is the canonical origin relative hrefs resolve against.
const platformOrigin = "https://www.shopltk.com"

// postContainerSelector locates post cards; it doubles as the readiness
// selector the navigator waits on.
const postContainerSelector = `[data-testid="post-card"], .post-card, article`

// productCardSelector locates product cards inside one post container.
const productCardSelector = `[data-testid="product-card"], .product-card, .product-item`

var (
	creatorHandleCascade = Cascade{
		{Query: `[data-testid="creator-handle"]`},
		{Query: ".creator-handle"},
		{Query: ".profile-username"},
		{Query: "h1"},
		{Query: ".creator-name"},
	}

	// Category pages render the creator inside each card, with a different
	// set of class names than profile headers.
	categoryCreatorCascade = Cascade{
		{Query: `[data-testid="creator-name"]`},
		{Query: ".creator-name"},
		{Query: ".username"},
	}

	postLinkCascade = Cascade{
		{Query: `a[href*="/post/"]`, Attr: "href"},
		{Query: `a[href*="/p/"]`, Attr: "href"},
	}

	captionCascade = Cascade{
		{Query: `[data-testid="caption"]`},
		{Query: ".caption"},
		{Query: ".post-caption"},
	}

	productTitleCascade = Cascade{
		{Query: `[data-testid="product-title"]`},
		{Query: ".product-title"},
		{Query: ".product-name"},
	}

	merchantCascade = Cascade{
		{Query: `[data-testid="merchant"]`},
		{Query: ".merchant"},
		{Query: ".brand"},
	}

	productLinkCascade = Cascade{
		{Query: "a[href]", Attr: "href"},
	}
)

// resolveHref joins a relative href with the platform origin; absolute URLs
// pass through untouched.
func resolveHref(href string) string {
	if href == "" {
		return ""
	}
	if strings.HasPrefix(href, "http") {
		return href
	}
	if !strings.HasPrefix(href, "/") {
		return platformOrigin + "/" + href
	}
	return platformOrigin + href
}
