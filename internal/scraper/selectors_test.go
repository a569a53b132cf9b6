package scraper

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"
)

func docFromHTML(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)
	return doc
}

func TestCascadeResolveOrder(t *testing.T) {
	cascade := Cascade{
		{Query: ".primary"},
		{Query: ".secondary"},
	}

	doc := docFromHTML(t, `<div><span class="secondary">second</span><span class="primary">first</span></div>`)
	val, ok := cascade.Resolve(doc.Selection)
	require.True(t, ok)
	require.Equal(t, "first", val)
}

func TestCascadeResolveSkipsEmptyValues(t *testing.T) {
	cascade := Cascade{
		{Query: ".primary"},
		{Query: ".secondary"},
	}

	// The higher-priority locator matches an element, but its text is blank
	// after trimming, so the cascade keeps going.
	doc := docFromHTML(t, `<div><span class="primary">   </span><span class="secondary">fallback</span></div>`)
	val, ok := cascade.Resolve(doc.Selection)
	require.True(t, ok)
	require.Equal(t, "fallback", val)
}

func TestCascadeResolveAttr(t *testing.T) {
	cascade := Cascade{
		{Query: "a.post", Attr: "href"},
	}

	doc := docFromHTML(t, `<div><a class="post" href="/post/abc">caption text</a></div>`)
	val, ok := cascade.Resolve(doc.Selection)
	require.True(t, ok)
	require.Equal(t, "/post/abc", val)
}

func TestCascadeResolveNoMatch(t *testing.T) {
	cascade := Cascade{
		{Query: ".missing"},
	}

	doc := docFromHTML(t, `<div><span class="other">x</span></div>`)
	val, ok := cascade.Resolve(doc.Selection)
	require.False(t, ok)
	require.Empty(t, val)
}

func TestResolveHref(t *testing.T) {
	tests := []struct {
		name string
		href string
		want string
	}{
		{"absolute passes through", "https://example.com/p/1", "https://example.com/p/1"},
		{"rooted relative joins origin", "/post/abc", platformOrigin + "/post/abc"},
		{"bare relative joins origin", "post/abc", platformOrigin + "/post/abc"},
		{"empty stays empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, resolveHref(tt.href))
		})
	}
}
