package fetch

import (
	"context"
	"time"

	"github.com/chromedp/chromedp"

	"github.com/jonathan/skillscout/internal/logger"
)

// BrowserSettleDelay gives client-side scripts time to populate the page.
const BrowserSettleDelay = 2 * time.Second

// PageFunc retrieves the HTML of a page.
type PageFunc func(ctx context.Context, url string) (string, error)

// HTTPPage returns a PageFunc backed by URL.
func HTTPPage(opts *Options) PageFunc {
	return func(ctx context.Context, url string) (string, error) {
		res, err := URL(ctx, url, opts)
		if err != nil {
			return "", err
		}
		return string(res.Body), nil
	}
}

// BrowserPage returns a PageFunc that renders pages in headless Chrome.
func BrowserPage(opts *Options, log logger.Logger) PageFunc {
	if opts == nil {
		opts = DefaultOptions()
	}
	return func(ctx context.Context, url string) (string, error) {
		return WithBrowser(ctx, url, opts, log)
	}
}

// WithBrowser renders a page in a headless browser and returns the rendered HTML.
// Requires Chrome/Chromium to be installed on the system.
func WithBrowser(ctx context.Context, url string, opts *Options, log logger.Logger) (string, error) {
	if opts == nil {
		opts = DefaultOptions()
	}
	log = logger.OrNop(log)
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	userAgent := opts.UserAgent
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}

	log.Debug("Starting headless browser", logger.String("url", url))
	start := time.Now()

	allocCtx, cancel := chromedp.NewExecAllocator(ctx,
		append(chromedp.DefaultExecAllocatorOptions[:],
			chromedp.Flag("headless", true),
			chromedp.Flag("disable-gpu", true),
			chromedp.Flag("no-sandbox", true),
			chromedp.Flag("disable-dev-shm-usage", true),
			chromedp.UserAgent(userAgent),
		)...,
	)
	defer cancel()

	browserCtx, cancel := chromedp.NewContext(allocCtx)
	defer cancel()

	browserCtx, cancel = context.WithTimeout(browserCtx, timeout)
	defer cancel()

	var html string
	err := chromedp.Run(browserCtx,
		chromedp.Navigate(url),
		chromedp.WaitReady("body"),
		chromedp.Sleep(BrowserSettleDelay),
		chromedp.OuterHTML("html", &html),
	)
	if err != nil {
		return "", &Error{Kind: KindRequest, URL: url, Message: "browser rendering failed", Cause: err}
	}

	log.Debug("Rendered page",
		logger.String("url", url),
		logger.Int("bytes", len(html)),
		logger.Duration("elapsed", time.Since(start)),
	)
	return html, nil
}
