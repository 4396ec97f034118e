// Package tmdb fetches the raw movie corpus from the TMDB HTTP API.
//
// Acquisition is a boundary concern: everything downstream consumes
// the raw CSV this package produces and never talks to the network.
package tmdb

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	json "github.com/goccy/go-json"
	"golang.org/x/time/rate"

	"github.com/okian/marquee/internal/adapters/corpus"
	"github.com/okian/marquee/pkg/metrics"
)

// Default client configuration constants.
const (
	defaultBaseURL       = "https://api.themoviedb.org/3"
	defaultTimeout       = 15 * time.Second
	defaultRatePerSecond = 20 // provider allows ~50/s; stay well under
)

// Client is a rate-limited TMDB API client.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
	limiter *rate.Limiter
}

// NewClient creates a client authenticated with apiKey.
func NewClient(apiKey string, opts ...Option) *Client {
	c := &Client{
		baseURL: defaultBaseURL,
		apiKey:  apiKey,
		http:    &http.Client{Timeout: defaultTimeout},
		limiter: rate.NewLimiter(rate.Limit(defaultRatePerSecond), 1),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// discoverResponse carries the subset of the discover payload we read.
type discoverResponse struct {
	Results []struct {
		ID int64 `json:"id"`
	} `json:"results"`
}

// DiscoverYear returns the movie ids on one popularity-sorted discover
// page for a release year, restricted to US theatrical releases.
func (c *Client) DiscoverYear(ctx context.Context, year, page int) ([]int64, error) {
	q := url.Values{}
	q.Set("api_key", c.apiKey)
	q.Set("language", "en-US")
	q.Set("sort_by", "popularity.desc")
	q.Set("primary_release_year", strconv.Itoa(year))
	q.Set("page", strconv.Itoa(page))
	q.Set("with_release_type", "3|2")
	q.Set("region", "US")

	var resp discoverResponse
	if err := c.get(ctx, "discover", "/discover/movie", q, &resp); err != nil {
		return nil, err
	}
	ids := make([]int64, 0, len(resp.Results))
	for _, r := range resp.Results {
		ids = append(ids, r.ID)
	}
	return ids, nil
}

// detailsResponse keeps the nested columns as raw JSON so they can be
// stored verbatim in the corpus CSV and parsed later by the cleaner.
type detailsResponse struct {
	ID                  int64           `json:"id"`
	Title               string          `json:"title"`
	ReleaseDate         string          `json:"release_date"`
	Budget              float64         `json:"budget"`
	Revenue             float64         `json:"revenue"`
	Runtime             float64         `json:"runtime"`
	Popularity          float64         `json:"popularity"`
	VoteAverage         float64         `json:"vote_average"`
	VoteCount           int64           `json:"vote_count"`
	OriginalLanguage    string          `json:"original_language"`
	Genres              json.RawMessage `json:"genres"`
	BelongsToCollection json.RawMessage `json:"belongs_to_collection"`
	Credits             struct {
		Cast json.RawMessage `json:"cast"`
		Crew json.RawMessage `json:"crew"`
	} `json:"credits"`
}

// MovieDetails fetches financials, credits and franchise data for one
// movie id.
func (c *Client) MovieDetails(ctx context.Context, id int64) (corpus.RawMovie, error) {
	q := url.Values{}
	q.Set("api_key", c.apiKey)
	q.Set("language", "en-US")
	q.Set("append_to_response", "credits")

	var resp detailsResponse
	if err := c.get(ctx, "details", fmt.Sprintf("/movie/%d", id), q, &resp); err != nil {
		return corpus.RawMovie{}, err
	}
	return corpus.RawMovie{
		ID:                  resp.ID,
		Title:               resp.Title,
		ReleaseDate:         resp.ReleaseDate,
		Budget:              resp.Budget,
		Revenue:             resp.Revenue,
		Runtime:             resp.Runtime,
		Popularity:          resp.Popularity,
		VoteAverage:         resp.VoteAverage,
		VoteCount:           resp.VoteCount,
		OriginalLanguage:    resp.OriginalLanguage,
		GenresJSON:          rawString(resp.Genres),
		BelongsToCollection: rawString(resp.BelongsToCollection),
		CastJSON:            rawString(resp.Credits.Cast),
		CrewJSON:            rawString(resp.Credits.Crew),
	}, nil
}

// get performs one rate-limited GET and decodes the JSON body into out.
func (c *Client) get(ctx context.Context, endpoint, path string, q url.Values, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+q.Encode(), nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		metrics.RecordTMDBRequest(endpoint, "transport_error")
		return fmt.Errorf("%w: %w", ErrProviderUnavailable, err)
	}
	defer resp.Body.Close() //nolint:errcheck // response body
	if resp.StatusCode != http.StatusOK {
		metrics.RecordTMDBRequest(endpoint, strconv.Itoa(resp.StatusCode))
		return fmt.Errorf("%w: %s returned %d", ErrProviderUnavailable, path, resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		metrics.RecordTMDBRequest(endpoint, "decode_error")
		return fmt.Errorf("decode %s response: %w", path, err)
	}
	metrics.RecordTMDBRequest(endpoint, "ok")
	return nil
}

func rawString(raw json.RawMessage) string {
	if len(raw) == 0 {
		return "null"
	}
	return string(raw)
}
