// Package fetch provides the HTTP plumbing shared by the upstream fetchers:
// a single GET with browser-like headers, typed upstream errors, and
// extraction of data embedded in HTML pages.
package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// DefaultTimeout bounds every upstream request.
const DefaultTimeout = 10 * time.Second

// DefaultUserAgent mimics a desktop browser; both upstreams serve degraded
// or blocked responses to obvious bots.
const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// DefaultAcceptLanguage keeps upstream pages in English.
const DefaultAcceptLanguage = "en-US,en;q=0.9"

// Kind classifies an upstream failure.
type Kind int

const (
	// KindRequest covers network errors, timeouts and non-200 statuses.
	KindRequest Kind = iota
	// KindParse covers bodies that are not the expected format.
	KindParse
	// KindExtraction covers pages missing the expected embedded data.
	KindExtraction
)

func (k Kind) String() string {
	switch k {
	case KindRequest:
		return "request"
	case KindParse:
		return "parse"
	case KindExtraction:
		return "extraction"
	default:
		return "unknown"
	}
}

// Sentinels matched by errors.Is against any *Error of the same kind.
var (
	ErrUpstreamRequest = errors.New("upstream request failed")
	ErrUpstreamParse   = errors.New("upstream response could not be parsed")
	ErrExtraction      = errors.New("embedded data not found")
)

// Error represents a failed upstream fetch.
type Error struct {
	Kind    Kind
	URL     string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s error for %s: %s: %v", e.Kind, e.URL, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s error for %s: %s", e.Kind, e.URL, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Is matches the sentinel for the error's kind.
func (e *Error) Is(target error) bool {
	switch target {
	case ErrUpstreamRequest:
		return e.Kind == KindRequest
	case ErrUpstreamParse:
		return e.Kind == KindParse
	case ErrExtraction:
		return e.Kind == KindExtraction
	}
	return false
}

// Result holds the raw response from a URL fetch.
type Result struct {
	URL         string
	Body        []byte
	ContentType string
	StatusCode  int
}

// Options configures the fetch behavior.
type Options struct {
	Timeout   time.Duration
	UserAgent string
	Headers   map[string]string
	// Client overrides the HTTP client; Timeout still applies per request.
	Client *http.Client
}

// DefaultOptions returns the browser-like defaults used for both upstreams.
func DefaultOptions() *Options {
	return &Options{
		Timeout:   DefaultTimeout,
		UserAgent: DefaultUserAgent,
		Headers: map[string]string{
			"Accept-Language": DefaultAcceptLanguage,
		},
	}
}

// URL performs a single GET. The request is bounded by opts.Timeout and is
// not retried. Any non-200 status is a KindRequest error; the partial result
// is still returned so callers can log the status.
func URL(ctx context.Context, urlStr string, opts *Options) (*Result, error) {
	if opts == nil {
		opts = DefaultOptions()
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	parsedURL, err := url.Parse(urlStr)
	if err != nil || parsedURL.Scheme == "" || parsedURL.Host == "" {
		return nil, &Error{
			Kind:    KindRequest,
			URL:     urlStr,
			Message: "invalid URL",
			Cause:   err,
		}
	}

	client := opts.Client
	if client == nil {
		client = http.DefaultClient
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, urlStr, nil)
	if err != nil {
		return nil, &Error{
			Kind:    KindRequest,
			URL:     urlStr,
			Message: "failed to create request",
			Cause:   err,
		}
	}

	userAgent := opts.UserAgent
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	req.Header.Set("User-Agent", userAgent)
	for key, value := range opts.Headers {
		req.Header.Set(key, value)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, &Error{
			Kind:    KindRequest,
			URL:     urlStr,
			Message: "HTTP request failed",
			Cause:   err,
		}
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &Error{
			Kind:    KindRequest,
			URL:     urlStr,
			Message: "failed to read response body",
			Cause:   err,
		}
	}

	result := &Result{
		URL:         urlStr,
		Body:        body,
		ContentType: resp.Header.Get("Content-Type"),
		StatusCode:  resp.StatusCode,
	}

	if resp.StatusCode != http.StatusOK {
		return result, &Error{
			Kind:    KindRequest,
			URL:     urlStr,
			Message: fmt.Sprintf("HTTP status %d", resp.StatusCode),
		}
	}

	return result, nil
}
