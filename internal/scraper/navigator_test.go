package scraper

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/chromedp/chromedp"
	"github.com/stretchr/testify/require"
)

// stubRun replaces the chromedp dispatch so Prepare can be exercised without
// a browser. Each invocation is recorded with its action count.
type stubRun struct {
	calls   int
	batches []int
	fail    func(call int) error
}

func (s *stubRun) run(ctx context.Context, actions ...chromedp.Action) error {
	s.calls++
	s.batches = append(s.batches, len(actions))
	if s.fail != nil {
		if err := s.fail(s.calls); err != nil {
			return err
		}
	}
	return nil
}

func TestPrepareIssuesFixedScrollCycles(t *testing.T) {
	stub := &stubRun{}
	nav := &Navigator{
		readySelector: postContainerSelector,
		scrolls:       scrollCycles,
		settle:        time.Millisecond,
		run:           stub.run,
	}

	page, err := nav.Prepare(context.Background(), "https://www.shopltk.com/stylequeen")
	require.NoError(t, err)
	require.NotNil(t, page)

	// navigate + idle wait + readiness wait + scroll cycles + final snapshot
	require.Equal(t, 3+scrollCycles+1, stub.calls)

	// Every scroll batch pairs the evaluate with its settle sleep.
	scrollBatches := stub.batches[3 : 3+scrollCycles]
	for _, n := range scrollBatches {
		require.Equal(t, 2, n)
	}

	// The stub never populates the location action, so the requested URL is
	// carried through.
	require.Equal(t, "https://www.shopltk.com/stylequeen", page.URL)
}

func TestPrepareReadinessTimeout(t *testing.T) {
	stub := &stubRun{}
	stub.fail = func(call int) error {
		// Third dispatch is the readiness wait.
		if call == 3 {
			return context.DeadlineExceeded
		}
		return nil
	}
	nav := &Navigator{
		readySelector: postContainerSelector,
		scrolls:       scrollCycles,
		settle:        time.Millisecond,
		run:           stub.run,
	}

	page, err := nav.Prepare(context.Background(), "https://www.shopltk.com/stylequeen")
	require.ErrorIs(t, err, ErrNavigationTimeout)
	require.Nil(t, page)
}

func TestPrepareNavigateErrorPassesThrough(t *testing.T) {
	navErr := context.Canceled
	stub := &stubRun{}
	stub.fail = func(call int) error {
		if call == 1 {
			return navErr
		}
		return nil
	}
	nav := &Navigator{
		readySelector: postContainerSelector,
		scrolls:       scrollCycles,
		settle:        time.Millisecond,
		run:           stub.run,
	}

	_, err := nav.Prepare(context.Background(), "https://www.shopltk.com/stylequeen")
	require.ErrorIs(t, err, navErr)
	require.NotErrorIs(t, err, ErrNavigationTimeout)
}

// Network/GUI dependent; validate that the headless path can run end to end.
func TestScrapeCreatorPage_Shallow(t *testing.T) {
	if os.Getenv("SCRAPER_LIVE_TEST") == "" {
		t.Skip("SCRAPER_LIVE_TEST not set")
	}

	s := New(true)
	defer s.Close()

	posts := s.ScrapeCreatorPage("https://www.shopltk.com/explore", 2)
	// In CI/containers without Chrome this degrades to an empty slice; only
	// assert the call does not panic and returns a usable value.
	if posts == nil {
		t.Fatalf("expected non-nil post slice")
	}
}
