package tmdb

import (
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/okian/marquee/internal/domain/dedupe"
	"github.com/okian/marquee/pkg/logger"
)

// Option applies a configuration option to the Client.
type Option func(*Client)

// WithBaseURL overrides the API base URL, used by tests to point at a
// local server.
func WithBaseURL(u string) Option {
	return func(c *Client) {
		if u != "" {
			c.baseURL = u
		}
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		if h != nil {
			c.http = h
		}
	}
}

// WithRateLimit sets the request rate ceiling.
func WithRateLimit(perSecond float64) Option {
	return func(c *Client) {
		if perSecond > 0 {
			c.limiter = rate.NewLimiter(rate.Limit(perSecond), 1)
		}
	}
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.http.Timeout = d
		}
	}
}

// FetcherOption applies a configuration option to the Fetcher.
type FetcherOption func(*Fetcher)

// WithWorkers sets the number of concurrent page workers.
func WithWorkers(n int) FetcherOption {
	return func(f *Fetcher) {
		if n > 0 {
			f.workers = n
		}
	}
}

// WithPagesPerYear sets how many discover pages to walk per year.
func WithPagesPerYear(n int) FetcherOption {
	return func(f *Fetcher) {
		if n > 0 {
			f.pages = n
		}
	}
}

// WithDeduper replaces the id deduper.
func WithDeduper(d dedupe.Deduper) FetcherOption {
	return func(f *Fetcher) {
		if d != nil {
			f.deduper = d
		}
	}
}

// WithLogger replaces the fetcher's logger.
func WithLogger(l logger.Logger) FetcherOption {
	return func(f *Fetcher) {
		if l != nil {
			f.log = l
		}
	}
}
