package tmdb

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/okian/marquee/internal/adapters/corpus"
	"github.com/okian/marquee/internal/domain/dedupe"
	"github.com/okian/marquee/pkg/logger"
)

// Default fetcher configuration constants.
const (
	defaultWorkers      = 4
	defaultPagesPerYear = 10
)

// Fetcher walks discover pages year by year and resolves each movie id
// to a full detail record using a small worker pool. Duplicate ids
// across pages are dropped through the deduper.
type Fetcher struct {
	client  *Client
	log     logger.Logger
	deduper dedupe.Deduper
	workers int
	pages   int
}

// NewFetcher creates a fetcher around client.
func NewFetcher(client *Client, opts ...FetcherOption) *Fetcher {
	f := &Fetcher{
		client:  client,
		log:     logger.Named("tmdb"),
		deduper: dedupe.NewInMemoryDeduper(),
		workers: defaultWorkers,
		pages:   defaultPagesPerYear,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// pageJob identifies one discover page to resolve.
type pageJob struct {
	year int
	page int
}

// FetchYears fetches every discover page for the year range inclusive
// and returns the deduplicated detail records. Individual page and
// detail failures are logged and skipped; only context cancellation
// aborts the whole fetch.
func (f *Fetcher) FetchYears(ctx context.Context, startYear, endYear int) ([]corpus.RawMovie, error) {
	if startYear > endYear {
		return nil, fmt.Errorf("year range %d-%d: %w", startYear, endYear, ErrBadYearRange)
	}
	session := uuid.NewString()
	f.log.Info(ctx, "starting fetch",
		logger.String("session", session),
		logger.Int("start_year", startYear),
		logger.Int("end_year", endYear),
		logger.Int("workers", f.workers))

	jobs := make(chan pageJob)
	results := make(chan corpus.RawMovie)

	var wg sync.WaitGroup
	for i := 0; i < f.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			f.runWorker(ctx, jobs, results)
		}()
	}

	go func() {
		defer close(jobs)
		for year := startYear; year <= endYear; year++ {
			for page := 1; page <= f.pages; page++ {
				select {
				case jobs <- pageJob{year: year, page: page}:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	var out []corpus.RawMovie
	for m := range results {
		out = append(out, m)
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("fetch cancelled: %w", err)
	}

	f.log.Info(ctx, "fetch complete",
		logger.String("session", session),
		logger.Int("movies", len(out)))
	return out, nil
}

// runWorker resolves page jobs until the jobs channel closes or ctx is
// cancelled.
func (f *Fetcher) runWorker(ctx context.Context, jobs <-chan pageJob, results chan<- corpus.RawMovie) {
	for job := range jobs {
		ids, err := f.client.DiscoverYear(ctx, job.year, job.page)
		if err != nil {
			f.log.Warn(ctx, "discover page failed",
				logger.Int("year", job.year),
				logger.Int("page", job.page),
				logger.Error(err))
			continue
		}
		for _, id := range ids {
			if f.deduper.SeenAndRecord(ctx, id) {
				continue
			}
			detail, err := f.client.MovieDetails(ctx, id)
			if err != nil {
				f.log.Warn(ctx, "detail fetch failed",
					logger.Int64("movie_id", id),
					logger.Error(err))
				continue
			}
			select {
			case results <- detail:
			case <-ctx.Done():
				return
			}
		}
	}
}
