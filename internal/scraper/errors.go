package scraper

import "errors"

var (
	// ErrNavigationTimeout means the post containers never became visible
	// within the readiness window. The scrape call catches it at the top
	// level and degrades to an empty result.
	ErrNavigationTimeout = errors.New("scraper: timed out waiting for page content")

	// ErrElementExtraction wraps a per-element query or parse failure. The
	// failing post or product is skipped; its siblings keep processing.
	ErrElementExtraction = errors.New("scraper: element extraction failed")
)
