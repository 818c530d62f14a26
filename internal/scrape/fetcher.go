package scrape

import (
	"context"
	"fmt"
	"time"

	"github.com/chromedp/chromedp"
)

// Fetch defaults. The timeout mirrors the 30-second page-load bound the
// import flow has always used: marketplace pages either render their meta
// tags quickly or serve an interstitial that never settles.
const (
	// DefaultFetchTimeout is the hard upper bound on a single page load.
	DefaultFetchTimeout = 30 * time.Second

	// DefaultUserAgent is sent with every navigation. Marketplace pages
	// serve a stripped document to clients without a browser user agent.
	DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120 Safari/537.36"
)

// BrowserFetcher fetches rendered HTML using a headless Chrome instance.
//
// Each Fetch call launches its own browser process and tears it down before
// returning. There is no pooling and no shared singleton: concurrent
// requests must not share mutable automation state, and a leaked process is
// worse than the launch cost of a user-triggered one-shot action.
type BrowserFetcher struct {
	// timeout bounds the whole navigate-and-read operation.
	timeout time.Duration

	// userAgent is the User-Agent header for the browser session.
	userAgent string

	// headless controls whether Chrome runs without a visible window.
	// Disabled only when debugging extraction locally.
	headless bool
}

// FetcherOption configures a BrowserFetcher.
type FetcherOption func(*BrowserFetcher)

// WithFetchTimeout sets the hard upper bound on page-load wait.
func WithFetchTimeout(d time.Duration) FetcherOption {
	return func(f *BrowserFetcher) {
		f.timeout = d
	}
}

// WithUserAgent sets a custom User-Agent for the browser session.
func WithUserAgent(ua string) FetcherOption {
	return func(f *BrowserFetcher) {
		f.userAgent = ua
	}
}

// WithHeadless controls headless mode. Defaults to true.
func WithHeadless(headless bool) FetcherOption {
	return func(f *BrowserFetcher) {
		f.headless = headless
	}
}

// NewBrowserFetcher creates a fetcher with the given options.
func NewBrowserFetcher(opts ...FetcherOption) *BrowserFetcher {
	f := &BrowserFetcher{
		timeout:   DefaultFetchTimeout,
		userAgent: DefaultUserAgent,
		headless:  true,
	}

	for _, opt := range opts {
		opt(f)
	}

	return f
}

// launchOpts returns the Chrome launch options for one session.
// The sandbox flags match what the containerized deployments require.
func (f *BrowserFetcher) launchOpts() []chromedp.ExecAllocatorOption {
	opts := []chromedp.ExecAllocatorOption{
		chromedp.NoFirstRun,
		chromedp.NoDefaultBrowserCheck,
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-setuid-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.UserAgent(f.userAgent),
	}

	if f.headless {
		opts = append(opts, chromedp.Flag("headless", "new"))
	}

	return opts
}

// Fetch navigates to pageURL and returns the rendered HTML document once the
// DOM is available or the timeout elapses.
//
// The URL must be well-formed; no further validation happens at this layer.
// Callers enforce the marketplace-path precondition before invoking Fetch.
//
// All three contexts are cancelled via defer so the browser process is
// released on every exit path, including timeout and launch failure.
func (f *BrowserFetcher) Fetch(ctx context.Context, pageURL string) (string, error) {
	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, f.launchOpts()...)
	defer allocCancel()

	tabCtx, tabCancel := chromedp.NewContext(allocCtx)
	defer tabCancel()

	runCtx, cancel := context.WithTimeout(tabCtx, f.timeout)
	defer cancel()

	var html string
	err := chromedp.Run(runCtx,
		chromedp.Navigate(pageURL),
		chromedp.OuterHTML("html", &html, chromedp.ByQuery),
	)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrFetchFailed, err)
	}

	return html, nil
}
