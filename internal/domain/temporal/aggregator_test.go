package temporal_test

import (
	"context"
	"errors"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/okian/marquee/internal/domain/model"
	"github.com/okian/marquee/internal/domain/temporal"
)

func day(year, month, d int) time.Time {
	return time.Date(year, time.Month(month), d, 0, 0, 0, 0, time.UTC)
}

func movie(id int64, released time.Time, director, actor string, revenue float64) model.Movie {
	return model.Movie{
		ID:          id,
		ReleaseDate: released,
		Director:    director,
		TopActor:    actor,
		RevenueAdj:  revenue,
	}
}

func TestAggregatorDirectorScores(t *testing.T) {
	Convey("Given three movies by director A with revenues 100, 200, 300 million", t, func() {
		movies := []model.Movie{
			movie(1, day(2001, 6, 1), "A", "X", 100e6),
			movie(2, day(2002, 6, 1), "A", "Y", 200e6),
			movie(3, day(2003, 6, 1), "A", "Z", 300e6),
		}

		Convey("When aggregated in release order", func() {
			_, scores, err := temporal.New().Run(context.Background(), movies)
			So(err, ShouldBeNil)

			Convey("Then director scores are 0, 100, 150", func() {
				So(scores[0].Director, ShouldEqual, 0)
				So(scores[1].Director, ShouldEqual, 100)
				So(scores[2].Director, ShouldEqual, 150)
			})
		})

		Convey("When a fourth movie by brand-new director B follows them all", func() {
			movies = append(movies, movie(4, day(2004, 6, 1), "B", "X", 999e6))
			_, scores, err := temporal.New().Run(context.Background(), movies)
			So(err, ShouldBeNil)

			Convey("Then B scores 0 regardless of A's history", func() {
				So(scores[3].Director, ShouldEqual, 0)
			})
		})
	})
}

func TestAggregatorNoLeakage(t *testing.T) {
	Convey("Given two movies featuring the same director", t, func() {
		earlier := movie(1, day(2001, 3, 1), "A", "X", 100e6)
		later := movie(2, day(2005, 3, 1), "A", "Y", 700e6)

		Convey("Then the later score is a function of the earlier revenue", func() {
			_, scores, err := temporal.New().Run(context.Background(), []model.Movie{earlier, later})
			So(err, ShouldBeNil)
			So(scores[1].Director, ShouldEqual, 100)

			Convey("And changing the earlier revenue changes the later score", func() {
				earlier.RevenueAdj = 400e6
				_, changed, err := temporal.New().Run(context.Background(), []model.Movie{earlier, later})
				So(err, ShouldBeNil)
				So(changed[1].Director, ShouldEqual, 400)
			})
		})

		Convey("Then deleting a movie released after M2 leaves M2's score untouched", func() {
			after := movie(3, day(2010, 1, 1), "A", "Z", 900e6)
			_, withAfter, err := temporal.New().Run(context.Background(), []model.Movie{earlier, later, after})
			So(err, ShouldBeNil)
			_, withoutAfter, err := temporal.New().Run(context.Background(), []model.Movie{earlier, later})
			So(err, ShouldBeNil)
			So(withAfter[1].Director, ShouldEqual, withoutAfter[1].Director)
		})

		Convey("Then the earlier movie never sees the later one", func() {
			_, scores, err := temporal.New().Run(context.Background(), []model.Movie{earlier, later})
			So(err, ShouldBeNil)
			So(scores[0].Director, ShouldEqual, 0)
		})
	})
}

func TestAggregatorFirstAppearanceAndUnknown(t *testing.T) {
	Convey("Given a corpus with unknown and first-time talent", t, func() {
		movies := []model.Movie{
			movie(1, day(2001, 1, 1), model.UnknownTalent, "X", 500e6),
			movie(2, day(2002, 1, 1), model.UnknownTalent, "X", 600e6),
			movie(3, day(2003, 1, 1), "Fresh Face", "Y", 100e6),
		}
		_, scores, err := temporal.New().Run(context.Background(), movies)
		So(err, ShouldBeNil)

		Convey("Then unknown directors always score 0, even after appearing before", func() {
			So(scores[0].Director, ShouldEqual, 0)
			So(scores[1].Director, ShouldEqual, 0)
		})

		Convey("Then a first appearance scores exactly 0", func() {
			So(scores[2].Director, ShouldEqual, 0)
		})

		Convey("Then a single prior appearance scores exactly that revenue", func() {
			So(scores[1].Actor, ShouldEqual, 500)
		})
	})
}

func TestAggregatorIndependentLedgers(t *testing.T) {
	Convey("Given a person who directed one film and acted in another", t, func() {
		movies := []model.Movie{
			movie(1, day(2001, 1, 1), "Dual Threat", "Someone Else", 300e6),
			movie(2, day(2002, 1, 1), "Other Director", "Dual Threat", 100e6),
			movie(3, day(2003, 1, 1), "Dual Threat", "Dual Threat", 100e6),
		}
		_, scores, err := temporal.New().Run(context.Background(), movies)
		So(err, ShouldBeNil)

		Convey("Then the two roles accumulate independently", func() {
			// Director ledger saw only movie 1; actor ledger only movie 2.
			So(scores[2].Director, ShouldEqual, 300)
			So(scores[2].Actor, ShouldEqual, 100)
		})
	})
}

func TestAggregatorOrderingAndReuse(t *testing.T) {
	Convey("Given movies with equal release dates", t, func() {
		same := day(2001, 7, 4)
		movies := []model.Movie{
			movie(10, same, "A", "X", 100e6),
			movie(11, same, "A", "X", 200e6),
		}

		Convey("Then the stable sort preserves input order among ties", func() {
			sorted, scores, err := temporal.New().Run(context.Background(), movies)
			So(err, ShouldBeNil)
			So(sorted[0].ID, ShouldEqual, 10)
			So(sorted[1].ID, ShouldEqual, 11)
			So(scores[0].Director, ShouldEqual, 0)
			So(scores[1].Director, ShouldEqual, 100)
		})
	})

	Convey("Given an aggregator that already ran", t, func() {
		agg := temporal.New()
		_, _, err := agg.Run(context.Background(), []model.Movie{
			movie(1, day(2001, 1, 1), "A", "X", 100e6),
		})
		So(err, ShouldBeNil)

		Convey("Then running it again is rejected", func() {
			_, _, err := agg.Run(context.Background(), nil)
			So(err, ShouldNotBeNil)
		})
	})

	Convey("Given an aggregator whose first run saw only unknown talent", t, func() {
		agg := temporal.New()
		_, _, err := agg.Run(context.Background(), []model.Movie{
			movie(1, day(2001, 1, 1), model.UnknownTalent, model.UnknownTalent, 100e6),
		})
		So(err, ShouldBeNil)

		Convey("Then reuse is still rejected despite empty ledgers", func() {
			_, _, err := agg.Run(context.Background(), nil)
			So(errors.Is(err, temporal.ErrAlreadyRan), ShouldBeTrue)
		})
	})

	Convey("Given unsorted input", t, func() {
		movies := []model.Movie{
			movie(2, day(2003, 1, 1), "A", "X", 300e6),
			movie(1, day(2001, 1, 1), "A", "X", 100e6),
		}

		Convey("Then processing still follows release order", func() {
			sorted, scores, err := temporal.New().Run(context.Background(), movies)
			So(err, ShouldBeNil)
			So(sorted[0].ID, ShouldEqual, 1)
			So(scores[1].Director, ShouldEqual, 100)
		})
	})
}
