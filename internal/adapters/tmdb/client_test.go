package tmdb_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/okian/marquee/internal/adapters/tmdb"
	"github.com/okian/marquee/pkg/logger"
)

func TestMain(m *testing.M) {
	if err := logger.Init(); err != nil {
		os.Exit(1)
	}
	_ = logger.SetLevelString("error")
	os.Exit(m.Run())
}

// fakeProvider serves just enough of the provider API for the client
// and fetcher: one discover page per year and a details endpoint.
func fakeProvider(t *testing.T, idsPerPage map[int][]int64) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/discover/movie", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("api_key") == "" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		year := r.URL.Query().Get("primary_release_year")
		page := r.URL.Query().Get("page")
		var ids []int64
		if page == "1" {
			var y int
			fmt.Sscanf(year, "%d", &y)
			ids = idsPerPage[y]
		}
		parts := make([]string, len(ids))
		for i, id := range ids {
			parts[i] = fmt.Sprintf(`{"id":%d}`, id)
		}
		fmt.Fprintf(w, `{"results":[%s]}`, strings.Join(parts, ","))
	})
	mux.HandleFunc("/movie/", func(w http.ResponseWriter, r *http.Request) {
		var id int64
		fmt.Sscanf(strings.TrimPrefix(r.URL.Path, "/movie/"), "%d", &id)
		fmt.Fprintf(w, `{
			"id": %d,
			"title": "Feature %d",
			"release_date": "2010-06-01",
			"budget": 50000000,
			"revenue": 150000000,
			"runtime": 110,
			"original_language": "en",
			"genres": [{"id":28,"name":"Action"}],
			"belongs_to_collection": null,
			"credits": {
				"cast": [{"name":"Lead Actor","order":0}],
				"crew": [{"name":"The Director","job":"Director"}]
			}
		}`, id, id)
	})
	return httptest.NewServer(mux)
}

func TestClientDiscoverYear(t *testing.T) {
	Convey("Given a provider serving one discover page", t, func() {
		srv := fakeProvider(t, map[int][]int64{2010: {1, 2, 3}})
		defer srv.Close()
		c := tmdb.NewClient("key", tmdb.WithBaseURL(srv.URL))

		Convey("Then the page's ids come back in order", func() {
			ids, err := c.DiscoverYear(context.Background(), 2010, 1)
			So(err, ShouldBeNil)
			So(ids, ShouldResemble, []int64{1, 2, 3})
		})

		Convey("Then a page past the catalog is empty, not an error", func() {
			ids, err := c.DiscoverYear(context.Background(), 2010, 2)
			So(err, ShouldBeNil)
			So(ids, ShouldBeEmpty)
		})
	})

	Convey("Given a provider rejecting the key", t, func() {
		srv := fakeProvider(t, nil)
		defer srv.Close()
		c := tmdb.NewClient("", tmdb.WithBaseURL(srv.URL))

		Convey("Then the failure wraps the provider error", func() {
			_, err := c.DiscoverYear(context.Background(), 2010, 1)
			So(errors.Is(err, tmdb.ErrProviderUnavailable), ShouldBeTrue)
		})
	})
}

func TestClientMovieDetails(t *testing.T) {
	Convey("Given a provider serving movie details", t, func() {
		srv := fakeProvider(t, nil)
		defer srv.Close()
		c := tmdb.NewClient("key", tmdb.WithBaseURL(srv.URL))

		Convey("When details for one id are fetched", func() {
			m, err := c.MovieDetails(context.Background(), 42)
			So(err, ShouldBeNil)

			Convey("Then scalar fields are decoded", func() {
				So(m.ID, ShouldEqual, 42)
				So(m.Title, ShouldEqual, "Feature 42")
				So(m.Budget, ShouldEqual, 50000000)
				So(m.Revenue, ShouldEqual, 150000000)
			})

			Convey("Then nested columns are kept as raw JSON strings", func() {
				So(m.GenresJSON, ShouldContainSubstring, `"name":"Action"`)
				So(m.BelongsToCollection, ShouldEqual, "null")
				So(m.CastJSON, ShouldContainSubstring, "Lead Actor")
				So(m.CrewJSON, ShouldContainSubstring, `"job":"Director"`)
			})
		})
	})

	Convey("Given an unreachable provider", t, func() {
		c := tmdb.NewClient("key", tmdb.WithBaseURL("http://127.0.0.1:1"))

		Convey("Then the failure wraps the provider error", func() {
			_, err := c.MovieDetails(context.Background(), 1)
			So(errors.Is(err, tmdb.ErrProviderUnavailable), ShouldBeTrue)
		})
	})
}

func TestFetcher(t *testing.T) {
	Convey("Given a provider with overlapping discover results", t, func() {
		srv := fakeProvider(t, map[int][]int64{
			2010: {1, 2},
			2011: {2, 3}, // id 2 reappears the next year
		})
		defer srv.Close()
		c := tmdb.NewClient("key", tmdb.WithBaseURL(srv.URL))
		f := tmdb.NewFetcher(c, tmdb.WithWorkers(2), tmdb.WithPagesPerYear(1))

		Convey("When the year range is fetched", func() {
			rows, err := f.FetchYears(context.Background(), 2010, 2011)
			So(err, ShouldBeNil)

			Convey("Then each id is resolved exactly once", func() {
				So(rows, ShouldHaveLength, 3)
				seen := map[int64]bool{}
				for _, r := range rows {
					So(seen[r.ID], ShouldBeFalse)
					seen[r.ID] = true
				}
			})
		})

		Convey("When the year range is inverted", func() {
			_, err := f.FetchYears(context.Background(), 2011, 2010)
			So(errors.Is(err, tmdb.ErrBadYearRange), ShouldBeTrue)
		})

		Convey("When the context is already cancelled", func() {
			ctx, cancel := context.WithCancel(context.Background())
			cancel()
			_, err := f.FetchYears(ctx, 2010, 2011)
			So(err, ShouldNotBeNil)
		})
	})
}
