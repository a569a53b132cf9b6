package scraper

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestExtractProducts(t *testing.T) {
	doc := docFromHTML(t, `
<div class="post">
  <div data-testid="product-card">
    <span class="product-title">Ceramic Vase</span>
    <span class="brand">West Elm</span>
    <a href="/product/1">shop</a>
    <img src="/img/vase.jpg">
  </div>
  <div class="product-card">
    <span class="product-name">Throw Blanket</span>
    <a href="https://merchant.example.com/blanket">shop</a>
  </div>
</div>`)

	products := extractProducts(doc.Find(".post"))
	require.Len(t, products, 2)

	require.Equal(t, "Ceramic Vase", products[0].Title)
	require.Equal(t, "West Elm", products[0].Merchant)
	require.Equal(t, platformOrigin+"/product/1", products[0].ProductURL)
	require.Equal(t, "/img/vase.jpg", products[0].ImageURL)

	require.Equal(t, "Throw Blanket", products[1].Title)
	require.Equal(t, "Unknown", products[1].Merchant)
	require.Equal(t, "https://merchant.example.com/blanket", products[1].ProductURL)
	require.Empty(t, products[1].ImageURL)
}

func TestExtractProductsDiscardsIncompleteCards(t *testing.T) {
	doc := docFromHTML(t, `
<div class="post">
  <div data-testid="product-card">
    <span class="product-title">Title but no link</span>
  </div>
  <div data-testid="product-card">
    <a href="/product/2">link but no title</a>
  </div>
  <div data-testid="product-card">
    <span class="product-title">Complete</span>
    <a href="/product/3">shop</a>
  </div>
</div>`)

	products := extractProducts(doc.Find(".post"))
	require.Len(t, products, 1)
	require.Equal(t, "Complete", products[0].Title)
}

func TestExtractProductsEmptyContainer(t *testing.T) {
	doc := docFromHTML(t, `<div class="post"><p>no products here</p></div>`)

	products := extractProducts(doc.Find(".post"))
	require.NotNil(t, products)
	require.Empty(t, products)
}
