package scraper

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/chromedp/chromedp"
)

const (
	contentReadyTimeout = 10 * time.Second
	scrollCycles        = 5
	scrollSettleDelay   = 1 * time.Second
	networkIdleWindow   = 1200 * time.Millisecond
)

// ReadyPage is a fully loaded page snapshot: the final URL plus the rendered
// DOM, ready for selector-based extraction.
type ReadyPage struct {
	URL string
	Doc *goquery.Document
}

// Navigator drives a headless browser tab to a URL and prepares it for
// extraction: navigate, wait for post containers, then trigger lazy-loaded
// content with a fixed number of scroll cycles. The scroll count is
// unconditional; it never checks whether new content actually appeared.
type Navigator struct {
	readySelector string
	scrolls       int
	settle        time.Duration

	// run is swapped out in tests to observe the issued browser actions.
	run func(ctx context.Context, actions ...chromedp.Action) error
}

func NewNavigator() *Navigator {
	return &Navigator{
		readySelector: postContainerSelector,
		scrolls:       scrollCycles,
		settle:        scrollSettleDelay,
		run:           chromedp.Run,
	}
}

// Prepare navigates the tab behind ctx and returns the rendered page. ctx
// must be a chromedp context. A readiness timeout surfaces as
// ErrNavigationTimeout; it is not retried here.
func (n *Navigator) Prepare(ctx context.Context, url string) (*ReadyPage, error) {
	if err := n.run(ctx, chromedp.Navigate(url)); err != nil {
		return nil, err
	}

	// Soft network-idle wait, the same heuristic the page itself can observe.
	idleCtx, cancelIdle := context.WithTimeout(ctx, networkIdleWindow+5*time.Second)
	_ = n.run(idleCtx, waitForNetworkIdle(networkIdleWindow))
	cancelIdle()

	waitCtx, cancelWait := context.WithTimeout(ctx, contentReadyTimeout)
	err := n.run(waitCtx, chromedp.WaitVisible(n.readySelector, chromedp.ByQuery))
	cancelWait()
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, ErrNavigationTimeout
		}
		return nil, err
	}

	for i := 0; i < n.scrolls; i++ {
		if err := n.run(ctx,
			chromedp.Evaluate(`window.scrollTo(0, document.body.scrollHeight)`, nil),
			chromedp.Sleep(n.settle),
		); err != nil {
			return nil, err
		}
	}

	var html, finalURL string
	if err := n.run(ctx,
		chromedp.Location(&finalURL),
		chromedp.OuterHTML("html", &html, chromedp.ByQuery),
	); err != nil {
		return nil, err
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, err
	}
	if finalURL == "" {
		finalURL = url
	}
	return &ReadyPage{URL: finalURL, Doc: doc}, nil
}

// waitForNetworkIdle resolves once no resource loads have been observed for
// the given window, tracked in-page via PerformanceObserver.
func waitForNetworkIdle(d time.Duration) chromedp.ActionFunc {
	js := `(function(waitMs){
      return new Promise((resolve)=>{
        if (!('PerformanceObserver' in window)) {
          setTimeout(resolve, waitMs);
          return;
        }
        let last = Date.now();
        const obs = new PerformanceObserver(()=>{ last = Date.now(); });
        try { obs.observe({entryTypes:['resource','navigation']}); } catch(e) {}
        const tick = () => {
          if (Date.now()-last >= waitMs) { try { obs.disconnect(); } catch(e){} resolve(); return; }
          setTimeout(tick, 100);
        };
        tick();
      });
    })(%d);`
	return func(ctx context.Context) error {
		return chromedp.Run(ctx, chromedp.Evaluate(fmt.Sprintf(js, int(d.Milliseconds())), nil))
	}
}
