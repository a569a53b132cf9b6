package scraper

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"ltk-caption-platform/models"
)

// extractProducts reads every product card inside a post container. Cards
// missing a title or a resolvable URL are discarded; merchant defaults to
// "Unknown" when the markup leaves it blank.
func extractProducts(container *goquery.Selection) []models.Product {
	products := []models.Product{}

	container.Find(productCardSelector).Each(func(_ int, card *goquery.Selection) {
		title, _ := productTitleCascade.Resolve(card)

		merchant, _ := merchantCascade.Resolve(card)
		if merchant == "" {
			merchant = "Unknown"
		}

		var productURL string
		if href, ok := productLinkCascade.Resolve(card); ok {
			productURL = resolveHref(href)
		}

		// Single direct locator for the image; no cascade.
		imageURL, _ := card.Find("img").First().Attr("src")
		imageURL = strings.TrimSpace(imageURL)

		if title == "" || productURL == "" {
			return
		}

		products = append(products, models.Product{
			Title:      title,
			Merchant:   merchant,
			ProductURL: productURL,
			ImageURL:   imageURL,
		})
	})

	return products
}
